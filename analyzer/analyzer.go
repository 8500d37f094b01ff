// Package analyzer drives the print-readiness analysis of one uploaded
// asset: resolution metadata extraction with fallbacks, pixel dimension
// acquisition and the quality verdict.
package analyzer

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"preflight/contracts"
	"preflight/decoder"
	"preflight/dpi"
)

const degradedScore = 30

type Analyzer struct {
	Decoder contracts.PixelDecoder
	// Surface is optional; when absent the chain goes straight from the
	// format extractors to the density estimate.
	Surface contracts.RenderingSurface
	Timeout time.Duration
	Log     *slog.Logger
}

func New(dec contracts.PixelDecoder, timeout time.Duration) *Analyzer {
	return &Analyzer{Decoder: dec, Timeout: timeout}
}

func (a *Analyzer) logger() *slog.Logger {
	if a.Log != nil {
		return a.Log
	}
	return slog.Default()
}

// Analyze runs the whole pipeline over one in-memory asset. It always
// returns a populated result; undecodable input degrades the verdict
// instead of surfacing an error.
func (a *Analyzer) Analyze(ctx context.Context, data []byte, fileSize int64, declaredFormat string) contracts.DPIExtractionResult {
	meta := contracts.NewImageMetadata(fileSize, declaredFormat)

	if meta.IsVector {
		a.logger().Debug("vector format, raster analysis skipped", "format", declaredFormat)
		return Score(meta)
	}

	dpiFound := false
	for _, extract := range extractorsFor(declaredFormat) {
		x, _, err := extract(data)
		if err != nil {
			continue
		}
		meta.SetDPI(x)
		dpiFound = true
		a.logger().Debug("resolution metadata extracted", "format", declaredFormat, "dpi", x)
		break
	}

	width, height, err := decoder.Acquire(ctx, a.Decoder, data, a.Timeout)
	if err != nil {
		a.logger().Debug("dimension acquisition failed", "format", declaredFormat, "error", err)
		return degraded(meta)
	}
	meta.SetPixelSize(width, height)

	if !dpiFound {
		if estimate, err := dpi.SurfaceEstimate(a.Surface); err == nil {
			meta.SetDPI(estimate)
			a.logger().Debug("dpi estimated from rendering surface", "dpi", estimate)
		} else {
			estimate := dpi.DensityEstimate(fileSize, width, height)
			meta.SetDPI(estimate)
			meta.AddWarning("DPI estimated from file size, not measured from metadata")
			a.logger().Debug("dpi estimated from byte density", "dpi", estimate)
		}
	}

	return Score(meta)
}

// extractorsFor picks the binary extractors matching the declared
// format, most confident first. Unknown formats get none and rely on
// the estimators.
func extractorsFor(declaredFormat string) []dpi.Extractor {
	format := strings.ToLower(declaredFormat)
	switch {
	case strings.Contains(format, "jpeg"), strings.Contains(format, "jpg"):
		return []dpi.Extractor{dpi.GetJPEGDPI}
	case strings.Contains(format, "png"):
		return []dpi.Extractor{dpi.GetPNGDPI}
	}
	return nil
}

// degraded is the verdict for assets whose pixel dimensions could not
// be acquired at all. The caller still gets a usable result, just a
// maximally conservative one.
func degraded(meta *contracts.ImageMetadata) contracts.DPIExtractionResult {
	meta.AddWarning("Image could not be decoded, assuming low quality")
	meta.SetDPI(72)
	return contracts.DPIExtractionResult{
		Metadata:      *meta,
		IsHighQuality: false,
		IsPrintReady:  false,
		QualityScore:  degradedScore,
		SuggestedUse:  contracts.UseWebOnly,
	}
}
