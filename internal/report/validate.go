package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/imgsqueeze/internal/encoder"
	"github.com/AnyUserName/imgsqueeze/internal/hasher"
)

// Validate checks a report for internal consistency and, when the output
// has a path, checks the artifact under baseDir. It returns one message per
// problem found.
func Validate(r *Report, baseDir string) []string {
	var errs []string

	if r.Version != SupportedVersion {
		errs = append(errs, fmt.Sprintf("unsupported report version: %d", r.Version))
	}

	if r.Source.Width <= 0 || r.Source.Height <= 0 {
		errs = append(errs, fmt.Sprintf("source: invalid dimensions %dx%d", r.Source.Width, r.Source.Height))
	}
	if r.Source.Size < 0 {
		errs = append(errs, fmt.Sprintf("source: negative size %d", r.Source.Size))
	}

	o := r.Output
	if o.Format == "" {
		errs = append(errs, "output: empty format")
	}
	if err := encoder.Quality(o.Quality).Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("output: %v", err))
	}
	if o.Width != r.Source.Width || o.Height != r.Source.Height {
		errs = append(errs, fmt.Sprintf("output: dimensions %dx%d differ from source %dx%d",
			o.Width, o.Height, r.Source.Width, r.Source.Height))
	}
	if o.Size <= 0 {
		errs = append(errs, fmt.Sprintf("output: invalid size %d", o.Size))
	}
	if o.Hash == "" {
		errs = append(errs, "output: missing hash")
	}

	if o.Path != "" {
		errs = append(errs, checkArtifact(o, filepath.Join(baseDir, o.Path))...)
	}

	// Stats must match what the sizes imply.
	want := *r
	want.ComputeStats()
	if r.Stats.OriginalBytes != want.Stats.OriginalBytes || r.Stats.CompressedBytes != want.Stats.CompressedBytes {
		errs = append(errs, fmt.Sprintf("stats: sizes %d/%d, want %d/%d",
			r.Stats.OriginalBytes, r.Stats.CompressedBytes, want.Stats.OriginalBytes, want.Stats.CompressedBytes))
	}
	switch {
	case (r.Stats.ReductionPercent == nil) != (want.Stats.ReductionPercent == nil):
		errs = append(errs, "stats: reduction_percent presence does not match original size")
	case r.Stats.ReductionPercent != nil && *r.Stats.ReductionPercent != *want.Stats.ReductionPercent:
		errs = append(errs, fmt.Sprintf("stats: reduction_percent %.1f, want %.1f",
			*r.Stats.ReductionPercent, *want.Stats.ReductionPercent))
	}

	for i, e := range r.Sweep {
		if err := encoder.Quality(e.Quality).Validate(); err != nil {
			errs = append(errs, fmt.Sprintf("sweep[%d]: %v", i, err))
		}
		if e.Error == "" && e.Size <= 0 {
			errs = append(errs, fmt.Sprintf("sweep[%d]: invalid size %d", i, e.Size))
		}
	}

	return errs
}

func checkArtifact(o OutputInfo, fullPath string) []string {
	f, err := os.Open(fullPath)
	if err != nil {
		return []string{fmt.Sprintf("output: file not found: %s", o.Path)}
	}
	defer f.Close()

	var errs []string
	info, err := f.Stat()
	if err == nil && info.Size() != o.Size {
		errs = append(errs, fmt.Sprintf("output: size mismatch: report=%d, disk=%d", o.Size, info.Size()))
	}
	sum, err := hasher.ContentHashReader(f, len(o.Hash))
	if err != nil {
		errs = append(errs, fmt.Sprintf("output: read %s: %v", o.Path, err))
	} else if o.Hash != "" && sum != o.Hash {
		errs = append(errs, fmt.Sprintf("output: hash mismatch: report=%s, disk=%s", o.Hash, sum))
	}
	return errs
}
