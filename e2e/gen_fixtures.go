//go:build ignore

// gen_fixtures writes the sample images used by the compress/sweep smoke run.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	if err := os.MkdirAll(dir, 0o755); err != nil {
		panic(err)
	}

	// Photo-like JPEG, the common compress case.
	writeJPEG(filepath.Join(dir, "banner.jpg"), noisyGradient(800, 450))
	// Lossless PNG of the same content; large reductions expected.
	writePNG(filepath.Join(dir, "banner.png"), noisyGradient(800, 450))
	// Transparent PNG, flattened onto the background when written as JPEG.
	writePNG(filepath.Join(dir, "logo.png"), alphaGradient(200, 200))
	// Tiny flat PNG that usually grows when re-encoded.
	writePNG(filepath.Join(dir, "dot.png"), solid(8, 8, color.NRGBA{R: 255, A: 255}))
	// Two-frame GIF, rejected as animated.
	writeAnimatedGIF(filepath.Join(dir, "spinner.gif"))
	// Not an image.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not an image\n"), 0o644); err != nil {
		panic(err)
	}

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 6 fixtures in %s\n", dir)
}

func noisyGradient(w, h int) *image.NRGBA {
	rng := rand.New(rand.NewSource(7))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			n := rng.Intn(40)
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8((x*255/w + n) % 256),
				G: uint8((y*255/h + n/2) % 256),
				B: uint8(128 + n),
				A: 255,
			})
		}
	}
	return img
}

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func alphaGradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: 220, G: 60, B: 30,
				A: uint8(x * 255 / w),
			})
		}
	}
	return img
}

func writeAnimatedGIF(path string) {
	pal := color.Palette{color.Black, color.White}
	anim := &gif.GIF{}
	for i := 0; i < 2; i++ {
		frame := image.NewPaletted(image.Rect(0, 0, 16, 16), pal)
		for j := range frame.Pix {
			frame.Pix[j] = uint8((j + i) % 2)
		}
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 10)
	}
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := gif.EncodeAll(f, anim); err != nil {
		panic(err)
	}
}

func writePNG(path string, img *image.NRGBA) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		panic(err)
	}
}

func writeJPEG(path string, img *image.NRGBA) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 92}); err != nil {
		panic(err)
	}
}
