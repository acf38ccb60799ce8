package raster

import "github.com/AnyUserName/imgsqueeze/internal/imgerr"

// Limits bounds the memory a single decode may use. A zero field disables
// that guard.
type Limits struct {
	MaxWidth  int
	MaxHeight int
	MaxPixels int64
	MaxBytes  int64
}

// DefaultLimits returns the guards used when the caller configures none.
func DefaultLimits() Limits {
	return Limits{
		MaxWidth:  16384,
		MaxHeight: 16384,
		MaxPixels: 100_000_000,
		MaxBytes:  50 << 20,
	}
}

func (l Limits) checkBytes(n int) error {
	if l.MaxBytes > 0 && int64(n) > l.MaxBytes {
		return &imgerr.TooLargeError{Bytes: int64(n), Limit: "max_bytes", Max: l.MaxBytes}
	}
	return nil
}

func (l Limits) checkDimensions(w, h int) error {
	switch {
	case l.MaxWidth > 0 && w > l.MaxWidth:
		return &imgerr.TooLargeError{Width: w, Height: h, Limit: "max_width", Max: int64(l.MaxWidth)}
	case l.MaxHeight > 0 && h > l.MaxHeight:
		return &imgerr.TooLargeError{Width: w, Height: h, Limit: "max_height", Max: int64(l.MaxHeight)}
	case l.MaxPixels > 0 && int64(w)*int64(h) > l.MaxPixels:
		return &imgerr.TooLargeError{Width: w, Height: h, Limit: "max_pixels", Max: l.MaxPixels}
	}
	return nil
}
