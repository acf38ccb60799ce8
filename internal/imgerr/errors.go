package imgerr

import (
	"errors"
	"fmt"
)

// Decode failure reasons.
const (
	ReasonEmpty        = "empty input"
	ReasonUnrecognized = "unrecognized image format"
	ReasonUnsupported  = "unsupported format"
	ReasonHeader       = "malformed header"
	ReasonTruncated    = "truncated data"
	ReasonDimensions   = "invalid dimensions"
	ReasonAnimated     = "animated images are not supported"
	ReasonData         = "malformed image data"
)

// DecodeError reports input that is not a valid image of a supported format.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode: %s: %v", e.Reason, e.Err)
	}
	return "decode: " + e.Reason
}

func (e *DecodeError) Unwrap() error { return e.Err }

// TooLargeError reports input that exceeds a configured guard. Limit names
// the guard that tripped (max_bytes, max_width, max_height, max_pixels).
type TooLargeError struct {
	Width  int
	Height int
	Bytes  int64
	Limit  string
	Max    int64
}

func (e *TooLargeError) Error() string {
	if e.Limit == "max_bytes" {
		return fmt.Sprintf("image too large: %d bytes exceeds %s=%d", e.Bytes, e.Limit, e.Max)
	}
	return fmt.Sprintf("image too large: %dx%d exceeds %s=%d", e.Width, e.Height, e.Limit, e.Max)
}

// InvalidQualityError reports a quality factor outside [1,100].
type InvalidQualityError struct {
	Quality int
}

func (e *InvalidQualityError) Error() string {
	return fmt.Sprintf("invalid quality %d: must be between 1 and 100", e.Quality)
}

// InvalidMetricError reports a negative size handed to the metrics code.
type InvalidMetricError struct {
	Field string
	Value int64
}

func (e *InvalidMetricError) Error() string {
	return fmt.Sprintf("invalid %s: %d is negative", e.Field, e.Value)
}

// EncodeError reports an internal encoder failure. Not retried.
type EncodeError struct {
	Format string
	Err    error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s: %v", e.Format, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// UserMessage maps an error to text suitable for showing to an end user.
func UserMessage(err error) string {
	var (
		decErr   *DecodeError
		largeErr *TooLargeError
		qErr     *InvalidQualityError
		mErr     *InvalidMetricError
		encErr   *EncodeError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &decErr):
		switch decErr.Reason {
		case ReasonUnrecognized, ReasonUnsupported:
			return "unsupported image format"
		case ReasonEmpty:
			return "the selected file is empty"
		case ReasonTruncated:
			return "the image file is incomplete"
		case ReasonAnimated:
			return "animated images are not supported"
		default:
			return "the image file is damaged or invalid"
		}
	case errors.As(err, &largeErr):
		return "image is too large"
	case errors.As(err, &qErr):
		return "quality must be between 1 and 100"
	case errors.As(err, &mErr):
		return "invalid size information"
	case errors.As(err, &encErr):
		return "the image could not be compressed"
	}
	return "an unexpected error occurred"
}

// Recoverable reports whether the caller can recover by supplying
// different input (another file, a smaller image).
func Recoverable(err error) bool {
	var (
		decErr   *DecodeError
		largeErr *TooLargeError
	)
	return errors.As(err, &decErr) || errors.As(err, &largeErr)
}
