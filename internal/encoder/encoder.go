package encoder

import (
	"image"
)

// Encoder encodes an image to a specific lossy format.
type Encoder interface {
	// Format returns the output format name (e.g. "jpeg", "webp").
	Format() string

	// Encode converts the image to bytes at the given quality (1-100).
	// Quality has already been validated by the caller.
	Encode(img image.Image, quality int) ([]byte, error)

	// Available returns true if the encoder is ready to use.
	Available() bool

	// Extension returns the file extension without dot.
	Extension() string

	// Alpha reports whether the format stores an alpha channel. Buffers
	// with transparency are flattened before reaching encoders that don't.
	Alpha() bool
}
