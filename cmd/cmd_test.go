package cmd

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/AnyUserName/imgsqueeze/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGradient(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 120, 90))
	for y := 0; y < 90; y++ {
		for x := 0; x < 120; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 2), G: uint8(y * 2), B: uint8(x ^ y), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "0 B", formatBytes(0))
	assert.Equal(t, "1.5 KiB", formatBytes(1536))
	assert.Equal(t, "-1.0 KiB", formatBytes(-1024))
}

func TestRelativeTo(t *testing.T) {
	assert.Equal(t, "out/a.jpg", relativeTo("/tmp/x", "/tmp/x/out/a.jpg"))
	assert.Equal(t, "../a.jpg", relativeTo("/tmp/x", "/tmp/a.jpg"))
}

func TestCompressAndValidate(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	input := filepath.Join(dir, "photo.png")
	writeGradient(t, input)
	reportPath := filepath.Join(dir, "report.json")

	rootCmd.SetArgs([]string{"compress", input, "-q", "60", "--out-dir", filepath.Join(dir, "out"), "--report", reportPath})
	require.NoError(t, rootCmd.Execute())

	out := filepath.Join(dir, "out", "photo_compressed.jpg")
	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	r, err := report.ReadJSON(reportPath)
	require.NoError(t, err)
	assert.Equal(t, 60, r.Output.Quality)
	assert.Equal(t, "out/photo_compressed.jpg", r.Output.Path)

	rootCmd.SetArgs([]string{"validate", reportPath})
	assert.NoError(t, rootCmd.Execute())
}

func TestCompressRejectsNonImage(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	input := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(input, []byte("definitely not an image"), 0o644))

	rootCmd.SetArgs([]string{"compress", input})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported image format")
}
