package outcome

import (
	"fmt"
	"math"

	"github.com/AnyUserName/imgsqueeze/internal/imgerr"
	jsoniter "github.com/json-iterator/go"
)

// NotApplicable is how an undefined reduction is rendered.
const NotApplicable = "n/a"

// Outcome compares an original size with a compressed size.
//
// The reduction is only defined for a non-zero original size. When it is
// undefined, ReductionPercent reports ok=false; callers must not treat that
// as 0%.
type Outcome struct {
	OriginalSize   int64
	CompressedSize int64

	reduction  float64
	applicable bool
}

// Compute builds an Outcome. Negative sizes are rejected.
func Compute(originalSize, compressedSize int64) (Outcome, error) {
	if originalSize < 0 {
		return Outcome{}, &imgerr.InvalidMetricError{Field: "original size", Value: originalSize}
	}
	if compressedSize < 0 {
		return Outcome{}, &imgerr.InvalidMetricError{Field: "compressed size", Value: compressedSize}
	}

	o := Outcome{OriginalSize: originalSize, CompressedSize: compressedSize}
	if originalSize > 0 {
		o.reduction = (1 - float64(compressedSize)/float64(originalSize)) * 100
		o.applicable = true
	}
	return o, nil
}

// Applicable reports whether a reduction percentage is defined.
func (o Outcome) Applicable() bool { return o.applicable }

// ReductionPercent returns (1 - compressed/original) * 100. Negative when
// the output grew.
func (o Outcome) ReductionPercent() (float64, bool) {
	return o.reduction, o.applicable
}

// Rounded returns the reduction rounded to one decimal place.
func (o Outcome) Rounded() (float64, bool) {
	if !o.applicable {
		return 0, false
	}
	return math.Round(o.reduction*10) / 10, true
}

// SavedBytes is original minus compressed; negative when the output grew.
func (o Outcome) SavedBytes() int64 {
	return o.OriginalSize - o.CompressedSize
}

// Smaller reports whether the compressed output is strictly smaller.
func (o Outcome) Smaller() bool {
	return o.CompressedSize < o.OriginalSize
}

func (o Outcome) String() string {
	r, ok := o.Rounded()
	if !ok {
		return NotApplicable
	}
	return fmt.Sprintf("%.1f%%", r)
}

// MarshalJSON writes the rounded reduction, or null when not applicable.
func (o Outcome) MarshalJSON() ([]byte, error) {
	type wire struct {
		OriginalSize     int64    `json:"original_size"`
		CompressedSize   int64    `json:"compressed_size"`
		ReductionPercent *float64 `json:"reduction_percent"`
	}
	w := wire{OriginalSize: o.OriginalSize, CompressedSize: o.CompressedSize}
	if r, ok := o.Rounded(); ok {
		w.ReductionPercent = &r
	}
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(w)
}
