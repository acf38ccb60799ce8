package raster

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/AnyUserName/imgsqueeze/internal/imgerr"
	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	pkgerrors "github.com/pkg/errors"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// supported maps filetype extensions to the format names used across
// the repo.
var supported = map[string]string{
	"jpg":  "jpeg",
	"png":  "png",
	"webp": "webp",
	"gif":  "gif",
	"bmp":  "bmp",
	"tif":  "tiff",
}

// Info describes an image from its header alone.
type Info struct {
	Format string
	Width  int
	Height int
	Bytes  int64
}

// Inspect sniffs the format and reads the header without decoding pixels.
// The same guards as Decode apply.
func Inspect(data []byte, limits Limits) (Info, error) {
	format, cfg, err := probe(data, limits)
	if err != nil {
		return Info{}, err
	}
	return Info{
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
		Bytes:  int64(len(data)),
	}, nil
}

// Decode rasterizes encoded image bytes into a new PixelBuffer.
//
// Decoding is all-or-nothing: either a complete buffer with the source's
// exact pixel dimensions is returned, or a *imgerr.DecodeError /
// *imgerr.TooLargeError. The input slice is never modified.
func Decode(data []byte, limits Limits) (*PixelBuffer, error) {
	format, cfg, err := probe(data, limits)
	if err != nil {
		return nil, err
	}

	var img image.Image
	if format == "gif" {
		// GIF is the only registered format that can carry several frames.
		g, err := gif.DecodeAll(bytes.NewReader(data))
		if err != nil {
			return nil, decodeFailure(imgerr.ReasonData, pkgerrors.Wrap(err, "decode gif"))
		}
		if len(g.Image) != 1 {
			return nil, &imgerr.DecodeError{Reason: imgerr.ReasonAnimated}
		}
		img = g.Image[0]
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, decodeFailure(imgerr.ReasonData, pkgerrors.Wrapf(err, "decode %s", format))
		}
	}

	nrgba := rasterize(img, cfg.Width, cfg.Height)
	return &PixelBuffer{
		Width:  cfg.Width,
		Height: cfg.Height,
		Pix:    nrgba.Pix,
		format: format,
	}, nil
}

// probe runs every check that does not need the pixels: size guard,
// container sniffing, header parse and dimension guards.
func probe(data []byte, limits Limits) (string, image.Config, error) {
	if len(data) == 0 {
		return "", image.Config{}, &imgerr.DecodeError{Reason: imgerr.ReasonEmpty}
	}
	if err := limits.checkBytes(len(data)); err != nil {
		return "", image.Config{}, err
	}

	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return "", image.Config{}, &imgerr.DecodeError{Reason: imgerr.ReasonUnrecognized, Err: err}
	}
	format, ok := supported[kind.Extension]
	if !ok {
		return "", image.Config{}, &imgerr.DecodeError{
			Reason: imgerr.ReasonUnsupported,
			Err:    pkgerrors.Errorf("%s (%s)", kind.Extension, kind.MIME.Value),
		}
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", image.Config{}, decodeFailure(imgerr.ReasonHeader, pkgerrors.Wrapf(err, "read %s header", format))
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return "", image.Config{}, &imgerr.DecodeError{
			Reason: imgerr.ReasonDimensions,
			Err:    pkgerrors.Errorf("%dx%d", cfg.Width, cfg.Height),
		}
	}
	if err := limits.checkDimensions(cfg.Width, cfg.Height); err != nil {
		return "", image.Config{}, err
	}
	return format, cfg, nil
}

// rasterize converts any decoded image into a tightly packed NRGBA image
// of exactly w×h. Frames smaller than the declared canvas (GIF) are placed
// at their offset over transparent pixels.
func rasterize(img image.Image, w, h int) *image.NRGBA {
	b := img.Bounds()
	if b.Min == (image.Point{}) && b.Dx() == w && b.Dy() == h {
		return imaging.Clone(img)
	}
	canvas := imaging.New(w, h, color.NRGBA{})
	return imaging.Paste(canvas, img, b.Min)
}

// errShortJPEG is what image/jpeg reports when the entropy-coded segment
// ends early.
const errShortJPEG = jpeg.FormatError("short Huffman data")

func decodeFailure(reason string, err error) error {
	var jpegErr jpeg.FormatError
	switch {
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		reason = imgerr.ReasonTruncated
	case errors.As(err, &jpegErr) && jpegErr == errShortJPEG:
		reason = imgerr.ReasonTruncated
	}
	return &imgerr.DecodeError{Reason: reason, Err: err}
}
