package encoder

import (
	"image"
	"image/color"

	"github.com/AnyUserName/imgsqueeze/internal/hasher"
	"github.com/AnyUserName/imgsqueeze/internal/imgerr"
	"github.com/AnyUserName/imgsqueeze/internal/raster"
	pkgerrors "github.com/pkg/errors"
)

// Options selects the output format and the background used when a
// transparent buffer is written to a format without alpha.
type Options struct {
	Format     string
	Background color.NRGBA
}

// DefaultOptions encodes JPEG over opaque black, which is what a browser
// canvas produces for transparent pixels on JPEG export.
func DefaultOptions() Options {
	return Options{
		Format:     DefaultFormat,
		Background: color.NRGBA{A: 0xff},
	}
}

// Result is one encoded output. It is never mutated after Encode returns.
type Result struct {
	Data      []byte
	Size      int64
	Quality   Quality
	Format    string
	Extension string
	Width     int
	Height    int
	// Digest is the xxHash64 of Data (16 hex chars).
	Digest string
}

var defaultRegistry = NewRegistry()

// Encode encodes buf at quality q using the default registry.
func Encode(buf *raster.PixelBuffer, q Quality, opts Options) (*Result, error) {
	return defaultRegistry.Encode(buf, q, opts)
}

// Encode re-encodes buf with the encoder registered for opts.Format.
// buf is only read; one buffer may be encoded concurrently at several
// qualities.
func (r *Registry) Encode(buf *raster.PixelBuffer, q Quality, opts Options) (*Result, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	enc, err := r.Resolve(opts.Format)
	if err != nil {
		return nil, &imgerr.EncodeError{Format: opts.Format, Err: err}
	}
	if err := buf.Validate(); err != nil {
		return nil, &imgerr.EncodeError{Format: enc.Format(), Err: err}
	}

	var img image.Image = buf.Image()
	if !enc.Alpha() && !buf.Opaque() {
		img = Flatten(img, opts.Background)
	}

	data, err := enc.Encode(img, int(q))
	if err != nil {
		return nil, &imgerr.EncodeError{
			Format: enc.Format(),
			Err:    pkgerrors.Wrapf(err, "%dx%d at quality %d", buf.Width, buf.Height, q),
		}
	}
	if len(data) == 0 {
		return nil, &imgerr.EncodeError{Format: enc.Format(), Err: pkgerrors.New("encoder produced no output")}
	}

	return &Result{
		Data:      data,
		Size:      int64(len(data)),
		Quality:   q,
		Format:    enc.Format(),
		Extension: enc.Extension(),
		Width:     buf.Width,
		Height:    buf.Height,
		Digest:    hasher.ContentHash(data, 16),
	}, nil
}
