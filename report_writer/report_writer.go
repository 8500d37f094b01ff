package report_writer

import (
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"

	"preflight/contracts"
)

type Entry struct {
	Name   string                        `json:"name"`
	Result contracts.DPIExtractionResult `json:"result"`
}

// WriteReport renders the preflight verdicts as a PDF: a summary page
// with pass counts followed by one page per analyzed asset.
func WriteReport(w io.Writer, entries []Entry) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Print preflight report", false)
	pdf.SetMargins(15, 15, 15)

	writeSummaryPage(pdf, entries)
	for _, entry := range entries {
		writeAssetPage(pdf, entry)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func writeSummaryPage(pdf *gofpdf.Fpdf, entries []Entry) {
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Print preflight report", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	printReady := 0
	highQuality := 0
	for _, entry := range entries {
		if entry.Result.IsPrintReady {
			printReady++
		}
		if entry.Result.IsHighQuality {
			highQuality++
		}
	}

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Assets analyzed: %d", len(entries)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Print ready: %d", printReady), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("High quality: %d", highQuality), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(90, 7, "Asset", "B", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Score", "B", 0, "R", false, 0, "")
	pdf.CellFormat(25, 7, "DPI", "B", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "Suggested use", "B", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, entry := range entries {
		pdf.CellFormat(90, 6, entry.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d/100", entry.Result.QualityScore), "", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.0f", entry.Result.Metadata.DPI), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, string(entry.Result.SuggestedUse), "", 1, "L", false, 0, "")
	}
}

func writeAssetPage(pdf *gofpdf.Fpdf, entry Entry) {
	meta := entry.Result.Metadata

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 9, entry.Name, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	labelValue(pdf, "Declared format", meta.DeclaredFormat)
	labelValue(pdf, "File size", fmt.Sprintf("%d bytes", meta.FileSizeBytes))
	labelValue(pdf, "Pixel dimensions", fmt.Sprintf("%d x %d", meta.Width, meta.Height))
	labelValue(pdf, "Resolution", fmt.Sprintf("%.1f DPI", meta.DPI))
	if meta.PhysicalWidthIn > 0 {
		labelValue(pdf, "Physical size",
			fmt.Sprintf("%.1f x %.1f in", meta.PhysicalWidthIn, meta.PhysicalHeightIn))
	}
	labelValue(pdf, "Quality score", fmt.Sprintf("%d/100", entry.Result.QualityScore))
	labelValue(pdf, "High quality", yesNo(entry.Result.IsHighQuality))
	labelValue(pdf, "Print ready", yesNo(entry.Result.IsPrintReady))
	labelValue(pdf, "Suggested use", string(entry.Result.SuggestedUse))

	if len(meta.Warnings) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, "Warnings", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, warning := range meta.Warnings {
			pdf.MultiCell(0, 5.5, "- "+warning, "", "L", false)
		}
	}

	if len(meta.Recommendations) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, "Recommendations", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, rec := range meta.Recommendations {
			pdf.MultiCell(0, 5.5, "- "+rec, "", "L", false)
		}
	}
}

func labelValue(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(50, 6, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
