package contracts

type SuggestedUse string

const (
	UseWebOnly         SuggestedUse = "web-only"
	UseSmallPrint      SuggestedUse = "small-print"
	UseMediumPrint     SuggestedUse = "medium-print"
	UseLargePrint      SuggestedUse = "large-print"
	UseCommercialPrint SuggestedUse = "commercial-print"
)

// DPIExtractionResult is the verdict handed back to the upload flow.
// Always produced, possibly degraded, never replaced by an error.
type DPIExtractionResult struct {
	Metadata      ImageMetadata `json:"metadata"`
	IsHighQuality bool          `json:"is_high_quality"`
	IsPrintReady  bool          `json:"is_print_ready"`
	QualityScore  int           `json:"quality_score"`
	SuggestedUse  SuggestedUse  `json:"suggested_use"`
}
