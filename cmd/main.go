package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"preflight/analyzer"
	"preflight/config"
	"preflight/contracts"
	"preflight/decoder"
	"preflight/files_manager"
	"preflight/report_writer"
)

type InputFlags = contracts.InputFlags

func main() {
	inputPath := flag.String("input", "", "Image file or directory to analyze")
	reportPath := flag.String("report", "", "Write a PDF report to this path")
	jsonPath := flag.String("json", "", "Write results as JSON to this path")
	configPath := flag.String("config", "", "Optional YAML config file")
	workers := flag.Int("workers", 0, "Concurrent analyses (0 = CPUs minus one)")
	minScore := flag.Int("min-score", 0, "Exit 1 if any score falls below this (0 disables)")
	timeout := flag.Duration("timeout", 0, "Per-image decode timeout (0 = config default)")
	logFormat := flag.String("log", "", "Log format: text or json")
	flag.Parse()

	args := InputFlags{
		InputPath:     *inputPath,
		ReportPath:    *reportPath,
		JSONPath:      *jsonPath,
		ConfigPath:    *configPath,
		LogFormat:     *logFormat,
		Workers:       *workers,
		MinScore:      *minScore,
		DecodeTimeout: *timeout,
	}

	cfg := config.Default()
	if args.ConfigPath != "" {
		var err error
		cfg, err = config.Load(args.ConfigPath)
		if err != nil {
			fmt.Printf("[ERROR]: %v\n", err)
			os.Exit(1)
		}
	}
	applyConfig(&args, cfg)
	setupLogging(args.LogFormat)

	paths, totalSize, err := files_manager.ResolveInput(args.InputPath)
	if err != nil {
		fmt.Printf("[ERROR]: %v\n", err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		fmt.Println("No supported images found in the input directory.")
		os.Exit(0)
	}
	fmt.Printf("Found %d images (%d bytes total).\n", len(paths), totalSize)

	startTime := time.Now()
	defer func() {
		fmt.Printf("Total time taken: %s\n", time.Since(startTime))
	}()

	eng := analyzer.New(decoder.StdDecoder{}, args.DecodeTimeout)

	maxAnalyses := args.Workers
	if maxAnalyses <= 0 {
		maxAnalyses = max(runtime.NumCPU()-1, 1)
	}

	sem := make(chan struct{}, maxAnalyses)

	var wg sync.WaitGroup

	fmt.Println("Starting analysis...")

	entries := make([]report_writer.Entry, len(paths))
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()

			sem <- struct{}{}        // Acquire a token
			defer func() { <-sem }() // Release the token

			entries[i] = report_writer.Entry{
				Name:   filepath.Base(path),
				Result: analyzeFile(eng, path),
			}
		}(i, path)
	}
	wg.Wait()

	lowest := printResults(entries)

	if args.JSONPath != "" {
		if err := writeJSON(args.JSONPath, entries); err != nil {
			fmt.Printf("[ERROR]: %v\n", err)
			os.Exit(1)
		}
		if args.JSONPath != "-" {
			fmt.Println("JSON results written to", args.JSONPath)
		}
	}

	if args.ReportPath != "" {
		if err := writePDFReport(args.ReportPath, entries); err != nil {
			fmt.Printf("[ERROR]: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("PDF report written to", args.ReportPath)
	}

	if args.MinScore > 0 && lowest < args.MinScore {
		fmt.Printf("Lowest score %d is below the required minimum of %d.\n", lowest, args.MinScore)
		os.Exit(1)
	}
	fmt.Println("Analysis completed successfully.")
}

// applyConfig fills in flags left at their zero value from the config
// file. Explicit flags always win.
func applyConfig(args *InputFlags, cfg config.Config) {
	if args.Workers == 0 {
		args.Workers = cfg.Workers
	}
	if args.MinScore == 0 {
		args.MinScore = cfg.MinScore
	}
	if args.DecodeTimeout == 0 {
		args.DecodeTimeout = cfg.Timeout()
	}
	if args.ReportPath == "" {
		args.ReportPath = cfg.ReportPath
	}
	if args.JSONPath == "" {
		args.JSONPath = cfg.JSONPath
	}
	if args.LogFormat == "" {
		args.LogFormat = cfg.LogFormat
	}
}

func setupLogging(format string) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// analyzeFile never fails: unreadable files go through the analyzer
// with no bytes and come back as degraded verdicts.
func analyzeFile(eng *analyzer.Analyzer, path string) contracts.DPIExtractionResult {
	format, _ := files_manager.DeclaredFormat(path)

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("reading image failed", "path", path, "error", err)
		return eng.Analyze(context.Background(), nil, 0, format)
	}
	return eng.Analyze(context.Background(), data, int64(len(data)), format)
}

func printResults(entries []report_writer.Entry) int {
	lowest := 100
	printReady := 0
	for _, entry := range entries {
		res := entry.Result
		verdict := "NOT PRINT READY"
		if res.IsPrintReady {
			verdict = "PRINT READY"
			printReady++
		}
		fmt.Printf("%s: score %d/100, %.0f DPI, %s (%s)\n",
			entry.Name, res.QualityScore, res.Metadata.DPI, verdict, res.SuggestedUse)
		for _, warning := range res.Metadata.Warnings {
			fmt.Printf("  warning: %s\n", warning)
		}
		if res.QualityScore < lowest {
			lowest = res.QualityScore
		}
	}
	fmt.Printf("%d of %d images are print ready.\n", printReady, len(entries))
	return lowest
}

// writeJSON dumps all results to the given path, or to stdout when the
// path is "-".
func writeJSON(path string, entries []report_writer.Entry) error {
	var out io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating JSON output: %w", err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	return nil
}

func writePDFReport(path string, entries []report_writer.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	if err := report_writer.WriteReport(f, entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
