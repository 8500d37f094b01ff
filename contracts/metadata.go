package contracts

import "strings"

// ImageMetadata accumulates everything known about one uploaded asset
// during a single analysis call. One instance per call, owned by the
// orchestrator, discarded with the result.
type ImageMetadata struct {
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	DPI              float64 `json:"dpi"`
	PPI              float64 `json:"ppi"`
	PhysicalWidthIn  float64 `json:"physical_width_in"`
	PhysicalHeightIn float64 `json:"physical_height_in"`

	FileSizeBytes  int64  `json:"file_size_bytes"`
	DeclaredFormat string `json:"declared_format"`
	IsVector       bool   `json:"is_vector"`

	Warnings        []string `json:"warnings"`
	Recommendations []string `json:"recommendations"`
}

func NewImageMetadata(fileSize int64, declaredFormat string) *ImageMetadata {
	return &ImageMetadata{
		FileSizeBytes:  fileSize,
		DeclaredFormat: declaredFormat,
		IsVector:       strings.Contains(strings.ToLower(declaredFormat), "svg"),
	}
}

// SetDPI records an isotropic resolution. X and Y are collapsed to one
// value on purpose, the scorer only ever consumes a single scalar.
func (m *ImageMetadata) SetDPI(dpi float64) {
	m.DPI = dpi
	m.PPI = dpi
	m.refreshPhysicalSize()
}

func (m *ImageMetadata) SetPixelSize(width, height int) {
	m.Width = width
	m.Height = height
	m.refreshPhysicalSize()
}

// Both physical dimensions are recomputed together, never one at a time.
func (m *ImageMetadata) refreshPhysicalSize() {
	if m.DPI <= 0 || m.Width <= 0 || m.Height <= 0 {
		return
	}
	m.PhysicalWidthIn = float64(m.Width) / m.DPI
	m.PhysicalHeightIn = float64(m.Height) / m.DPI
}

func (m *ImageMetadata) TotalPixels() int64 {
	return int64(m.Width) * int64(m.Height)
}

func (m *ImageMetadata) BytesPerPixel() float64 {
	px := m.TotalPixels()
	if px <= 0 {
		return 0
	}
	return float64(m.FileSizeBytes) / float64(px)
}

func (m *ImageMetadata) AddWarning(msg string) {
	m.Warnings = append(m.Warnings, msg)
}

func (m *ImageMetadata) AddRecommendation(msg string) {
	m.Recommendations = append(m.Recommendations, msg)
}
