package encoder

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
)

// Flatten composites img over an opaque background of color bg.
func Flatten(img image.Image, bg color.NRGBA) *image.NRGBA {
	bg.A = 0xff
	b := img.Bounds()
	canvas := imaging.New(b.Dx(), b.Dy(), bg)
	return imaging.Overlay(canvas, img, image.Point{}, 1.0)
}

// ParseBackground parses "#rrggbb", "#rgb", "#rrggbbaa" or "#rgba" (leading
// '#' optional) into an opaque color. An alpha component is accepted and
// dropped.
func ParseBackground(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	c := color.NRGBA{A: 0xff}
	var err error
	switch len(hex) {
	case 8:
		hex = hex[:6]
		fallthrough
	case 6:
		_, err = fmt.Sscanf(hex, "%2x%2x%2x", &c.R, &c.G, &c.B)
	case 4:
		hex = hex[:3]
		fallthrough
	case 3:
		_, err = fmt.Sscanf(hex, "%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R *= 17
		c.G *= 17
		c.B *= 17
	default:
		err = fmt.Errorf("want 3, 4, 6 or 8 hex digits")
	}
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse background %q: %w", s, err)
	}
	return c, nil
}
