package raster

import (
	"fmt"
	"image"
)

// PixelBuffer is an uncompressed raster: Width*Height samples of
// non-premultiplied R, G, B, A bytes in row-major order.
//
// A PixelBuffer is frozen once Decode returns it. Encoders read it and
// may share it across goroutines; nothing writes to Pix afterwards.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []byte

	format string
}

// Format returns the source format the buffer was decoded from
// (jpeg, png, webp, gif, bmp, tiff).
func (b *PixelBuffer) Format() string { return b.format }

// Len returns the number of samples, always Width*Height*4 for a valid buffer.
func (b *PixelBuffer) Len() int { return len(b.Pix) }

// Validate checks the length invariant.
func (b *PixelBuffer) Validate() error {
	if b == nil {
		return fmt.Errorf("nil pixel buffer")
	}
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", b.Width, b.Height)
	}
	if want := b.Width * b.Height * 4; len(b.Pix) != want {
		return fmt.Errorf("pixel buffer length %d, want %d for %dx%d", len(b.Pix), want, b.Width, b.Height)
	}
	return nil
}

// Image returns an image.NRGBA view over the buffer. The view shares Pix;
// callers must treat it as read-only.
func (b *PixelBuffer) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// Opaque reports whether every sample has full alpha.
func (b *PixelBuffer) Opaque() bool {
	for i := 3; i < len(b.Pix); i += 4 {
		if b.Pix[i] != 0xff {
			return false
		}
	}
	return true
}
