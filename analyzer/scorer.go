package analyzer

import (
	"math"
	"strings"

	"preflight/contracts"
)

const (
	vectorScore = 95

	highQualityScore = 70
	printReadyScore  = 60

	// pixel counts forcing the high quality verdict on their own
	highResPixels = 16_000_000
)

var standardAspectRatios = []float64{1, 4.0 / 3.0, 3.0 / 2.0, 16.0 / 9.0, 5.0 / 4.0}

// Score turns accumulated metadata into the final verdict. It is
// deterministic and does no I/O; warnings and recommendations produced
// by the rules are appended to the metadata before it is snapshotted
// into the result.
func Score(meta *contracts.ImageMetadata) contracts.DPIExtractionResult {
	if meta.IsVector {
		return contracts.DPIExtractionResult{
			Metadata:      *meta,
			IsHighQuality: true,
			IsPrintReady:  true,
			QualityScore:  vectorScore,
			SuggestedUse:  contracts.UseCommercialPrint,
		}
	}

	score := 0
	printReadyFlag := false
	forcedHighQuality := false

	switch {
	case meta.DPI >= 300:
		score += 40
		printReadyFlag = true
	case meta.DPI >= 150:
		score += 30
	case meta.DPI >= 96:
		score += 20
	default:
		score += 10
	}

	totalPixels := meta.TotalPixels()
	switch {
	case totalPixels >= highResPixels:
		score += 30
		forcedHighQuality = true
	case totalPixels >= 8_000_000:
		score += 25
	case totalPixels >= 2_000_000:
		score += 20
	case totalPixels >= 1_000_000:
		score += 15
	default:
		score += 5
	}

	bytesPerPixel := meta.BytesPerPixel()
	switch {
	case bytesPerPixel >= 3:
		score += 20
	case bytesPerPixel >= 1.5:
		score += 15
	case bytesPerPixel >= 0.5:
		score += 10
	default:
		score += 5
	}

	format := strings.ToLower(meta.DeclaredFormat)
	switch {
	case strings.Contains(format, "pdf"):
		score += 15
		printReadyFlag = true
	case strings.Contains(format, "png"):
		score += 10
	case strings.Contains(format, "jpeg"), strings.Contains(format, "jpg"):
		score += 5
	case strings.Contains(format, "webp"), strings.Contains(format, "gif"):
		score -= 10
		meta.AddWarning("Format " + meta.DeclaredFormat + " may cause issues in print reproduction")
	}

	if meta.Height > 0 {
		ratio := float64(meta.Width) / float64(meta.Height)
		for _, standard := range standardAspectRatios {
			if math.Abs(ratio-standard) <= 0.1 {
				score += 10
				break
			}
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	if meta.DPI < 150 {
		meta.AddRecommendation("Use an image with at least 150 DPI for acceptable print quality")
	}
	if totalPixels < 2_000_000 {
		meta.AddRecommendation("Use a higher resolution image for better print results")
	}
	if bytesPerPixel < 0.5 {
		meta.AddRecommendation("Image is heavily compressed and may show artifacts in print")
	}

	return contracts.DPIExtractionResult{
		Metadata:      *meta,
		IsHighQuality: score >= highQualityScore || forcedHighQuality,
		IsPrintReady:  printReadyFlag && score >= printReadyScore,
		QualityScore:  score,
		SuggestedUse:  suggestedUse(score, meta.DPI),
	}
}

func suggestedUse(score int, dpi float64) contracts.SuggestedUse {
	switch {
	case score >= 90 && dpi >= 300:
		return contracts.UseCommercialPrint
	case score >= 75 && dpi >= 200:
		return contracts.UseLargePrint
	case score >= 60 && dpi >= 150:
		return contracts.UseMediumPrint
	case score >= 40 && dpi >= 96:
		return contracts.UseSmallPrint
	default:
		return contracts.UseWebOnly
	}
}
