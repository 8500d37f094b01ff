package contracts

import "context"

// PixelDecoder is the platform image-decoding capability. The engine
// never decodes pixel buffers itself; it only needs the natural pixel
// size of the asset.
type PixelDecoder interface {
	DecodeSize(ctx context.Context, data []byte) (width int, height int, err error)
}

// RenderingSurface reports drawing-surface scale factors. Optional, only
// consulted by the lowest-confidence DPI estimate.
type RenderingSurface interface {
	PixelRatios() (devicePixelRatio float64, backingStoreRatio float64, err error)
}
