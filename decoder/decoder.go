// Package decoder resolves pixel dimensions through the registered
// image format readers. Only headers are parsed; pixel data stays
// untouched.
package decoder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"preflight/contracts"
)

var ErrUndecodable = errors.New("decoder: not a decodable raster image")

type StdDecoder struct{}

func (StdDecoder) DecodeSize(ctx context.Context, data []byte) (int, int, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, ErrUndecodable
	}
	return cfg.Width, cfg.Height, nil
}

// Acquire runs dec under a timeout. A slow or hung decoder reports the
// same way as undecodable bytes, so the analysis degrades instead of
// blocking the upload flow.
func Acquire(ctx context.Context, dec contracts.PixelDecoder, data []byte, timeout time.Duration) (int, int, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type sizeResult struct {
		width  int
		height int
		err    error
	}
	resultCh := make(chan sizeResult, 1)
	go func() {
		w, h, err := dec.DecodeSize(ctx, data)
		resultCh <- sizeResult{width: w, height: h, err: err}
	}()

	select {
	case res := <-resultCh:
		return res.width, res.height, res.err
	case <-ctx.Done():
		return 0, 0, fmt.Errorf("%w: %v", ErrUndecodable, ctx.Err())
	}
}
