package pipeline

import (
	"sort"

	"github.com/AnyUserName/imgsqueeze/internal/encoder"
)

// Inversion is a pair of neighbouring qualities where the lower quality
// produced the larger output.
type Inversion struct {
	Lower      encoder.Quality
	Higher     encoder.Quality
	LowerSize  int64
	HigherSize int64
}

// TrendReport summarizes how output size follows quality.
type TrendReport struct {
	// Monotonic is true when size never decreases as quality increases.
	Monotonic  bool
	Inversions []Inversion
	// Overall is true when the lowest quality is strictly smaller than the
	// highest one, the property that matters for typical content.
	Overall bool
}

// Trend checks the size ordering of successful points. Inversions are
// expected occasionally from quantization rounding and are reported, not
// treated as errors.
func Trend(points []Point) TrendReport {
	var ok []Point
	for _, pt := range points {
		if pt.Err == nil {
			ok = append(ok, pt)
		}
	}
	sort.SliceStable(ok, func(i, j int) bool { return ok[i].Quality < ok[j].Quality })

	r := TrendReport{Monotonic: true}
	for i := 1; i < len(ok); i++ {
		lo, hi := ok[i-1], ok[i]
		if lo.Quality == hi.Quality {
			continue
		}
		if lo.Size > hi.Size {
			r.Monotonic = false
			r.Inversions = append(r.Inversions, Inversion{
				Lower:      lo.Quality,
				Higher:     hi.Quality,
				LowerSize:  lo.Size,
				HigherSize: hi.Size,
			})
		}
	}
	if len(ok) >= 2 {
		r.Overall = ok[0].Size < ok[len(ok)-1].Size
	}
	return r
}
