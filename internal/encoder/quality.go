package encoder

import "github.com/AnyUserName/imgsqueeze/internal/imgerr"

// Quality bounds.
const (
	MinQuality = 1
	MaxQuality = 100
)

// Quality is the lossy quality factor: 100 keeps the most detail,
// 1 compresses hardest.
type Quality int

// Validate rejects values outside [MinQuality, MaxQuality]. Values are
// never clamped.
func (q Quality) Validate() error {
	if q < MinQuality || q > MaxQuality {
		return &imgerr.InvalidQualityError{Quality: int(q)}
	}
	return nil
}
