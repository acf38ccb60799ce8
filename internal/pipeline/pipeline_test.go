package pipeline

import (
	"math/rand"
	"testing"

	"github.com/AnyUserName/imgsqueeze/internal/encoder"
	"github.com/AnyUserName/imgsqueeze/internal/imgerr"
	"github.com/AnyUserName/imgsqueeze/internal/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func noisyBuffer(w, h int) *raster.PixelBuffer {
	rng := rand.New(rand.NewSource(7))
	pix := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			n := rng.Intn(40)
			pix[i] = uint8((x*200/w + n) % 256)
			pix[i+1] = uint8((y*200/h + n) % 256)
			pix[i+2] = uint8((x*y/(w+1) + n) % 256)
			pix[i+3] = 0xff
		}
	}
	return &raster.PixelBuffer{Width: w, Height: h, Pix: pix}
}

func TestSweep_OrderAndTrend(t *testing.T) {
	buf := noisyBuffer(200, 140)
	p := New(Config{Workers: 2, Options: encoder.DefaultOptions(), Logger: zaptest.NewLogger(t)})

	qualities := []encoder.Quality{90, 10, 50, 30, 70}
	points, err := p.Sweep(buf, int64(buf.Len()), qualities)
	require.NoError(t, err)
	require.Len(t, points, len(qualities))

	for i, pt := range points {
		require.NoError(t, pt.Err)
		assert.Equal(t, qualities[i], pt.Quality)
		assert.Positive(t, pt.Size)
		assert.Len(t, pt.Digest, 16)
		assert.True(t, pt.Outcome.Applicable())
	}

	tr := Trend(points)
	assert.True(t, tr.Overall)
	assert.LessOrEqual(t, len(tr.Inversions), 1)
}

func TestSweep_MatchesSingleEncode(t *testing.T) {
	buf := noisyBuffer(64, 64)
	p := New(Config{Workers: 4})

	points, err := p.Sweep(buf, 10_000, []encoder.Quality{40, 40, 80})
	require.NoError(t, err)

	single, err := encoder.Encode(buf, 40, encoder.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, single.Size, points[0].Size)
	assert.Equal(t, single.Digest, points[0].Digest)
	assert.Equal(t, points[0].Digest, points[1].Digest)
}

func TestSweep_DefaultQualities(t *testing.T) {
	p := New(Config{})
	points, err := p.Sweep(noisyBuffer(32, 32), 5000, nil)
	require.NoError(t, err)
	require.Len(t, points, len(DefaultQualities))
	assert.Equal(t, DefaultQualities[0], points[0].Quality)
}

func TestSweep_RejectsInvalidInput(t *testing.T) {
	p := New(Config{})
	buf := noisyBuffer(8, 8)

	_, err := p.Sweep(buf, 100, []encoder.Quality{50, 0})
	var qErr *imgerr.InvalidQualityError
	require.ErrorAs(t, err, &qErr)

	_, err = p.Sweep(buf, -1, nil)
	var mErr *imgerr.InvalidMetricError
	require.ErrorAs(t, err, &mErr)

	_, err = p.Sweep(&raster.PixelBuffer{Width: 2, Height: 2}, 100, nil)
	assert.Error(t, err)
}

func TestSweep_AllFail(t *testing.T) {
	p := New(Config{Options: encoder.Options{Format: "avif"}})
	_, err := p.Sweep(noisyBuffer(8, 8), 100, []encoder.Quality{50, 60})
	var encErr *imgerr.EncodeError
	require.ErrorAs(t, err, &encErr)
}

func TestSweep_ZeroOriginal(t *testing.T) {
	p := New(Config{})
	points, err := p.Sweep(noisyBuffer(16, 16), 0, []encoder.Quality{50})
	require.NoError(t, err)
	assert.False(t, points[0].Outcome.Applicable())
	assert.Equal(t, "n/a", points[0].Outcome.String())
}

func TestTrend(t *testing.T) {
	points := []Point{
		{Quality: 90, Size: 900},
		{Quality: 10, Size: 100},
		{Quality: 50, Size: 520},
		{Quality: 30, Size: 530},
		{Quality: 70, Size: 700},
		{Quality: 60, Err: assert.AnError},
	}
	tr := Trend(points)
	assert.False(t, tr.Monotonic)
	assert.True(t, tr.Overall)
	require.Len(t, tr.Inversions, 1)
	assert.Equal(t, Inversion{Lower: 30, Higher: 50, LowerSize: 530, HigherSize: 520}, tr.Inversions[0])

	clean := Trend([]Point{{Quality: 10, Size: 1}, {Quality: 20, Size: 1}, {Quality: 30, Size: 2}})
	assert.True(t, clean.Monotonic)
	assert.Empty(t, clean.Inversions)

	single := Trend([]Point{{Quality: 10, Size: 1}})
	assert.True(t, single.Monotonic)
	assert.False(t, single.Overall)
}
