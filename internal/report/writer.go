package report

import (
	"os"
	"time"

	"github.com/AnyUserName/imgsqueeze/internal/outcome"
	"github.com/AnyUserName/imgsqueeze/internal/pipeline"
	"github.com/AnyUserName/imgsqueeze/internal/session"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// New creates an empty report with defaults.
func New(sessionID, profileName string) *Report {
	return &Report{
		Version:     SupportedVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		SessionID:   sessionID,
		Profile:     profileName,
	}
}

// FromCompression fills a report from a session compression. path is the
// artifact location relative to the report, or empty.
func FromCompression(c *session.Compression, profileName, path string) *Report {
	r := New(c.SessionID, profileName)
	r.Source = SourceInfo{
		Name:     c.Source.Name(),
		Format:   c.SourceFormat,
		Width:    c.Width,
		Height:   c.Height,
		Size:     c.Source.Size(),
		HasAlpha: c.HasAlpha,
	}
	r.Output = OutputInfo{
		Format:  c.Result.Format,
		Quality: int(c.Result.Quality),
		Width:   c.Result.Width,
		Height:  c.Result.Height,
		Size:    c.Result.Size,
		Hash:    c.Result.Digest,
		Path:    path,
	}
	r.ComputeStats()
	return r
}

// AddSweep records sweep points in the order given.
func (r *Report) AddSweep(points []pipeline.Point) {
	for _, pt := range points {
		e := SweepEntry{Quality: int(pt.Quality)}
		if pt.Err != nil {
			e.Error = pt.Err.Error()
		} else {
			e.Size = pt.Size
			e.Hash = pt.Digest
			if v, ok := pt.Outcome.Rounded(); ok {
				e.ReductionPercent = &v
			}
		}
		r.Sweep = append(r.Sweep, e)
	}
}

// ComputeStats recalculates the size comparison from Source and Output.
func (r *Report) ComputeStats() {
	r.Stats = Stats{
		OriginalBytes:   r.Source.Size,
		CompressedBytes: r.Output.Size,
		SavedBytes:      r.Source.Size - r.Output.Size,
	}
	if o, err := outcome.Compute(r.Source.Size, r.Output.Size); err == nil {
		if v, ok := o.Rounded(); ok {
			r.Stats.ReductionPercent = &v
		}
	}
}

// WriteJSON serializes the report to a JSON file.
func WriteJSON(r *Report, path string) error {
	r.ComputeStats()

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// ReadJSON loads a report. Unknown fields are ignored.
func ReadJSON(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
