package report

// Report is the record of one compression, written next to the artifact.
type Report struct {
	Version     int          `json:"version"`
	GeneratedAt string       `json:"generated_at"`
	SessionID   string       `json:"session_id"`
	Profile     string       `json:"profile"`
	Source      SourceInfo   `json:"source"`
	Output      OutputInfo   `json:"output"`
	Stats       Stats        `json:"stats"`
	Sweep       []SweepEntry `json:"sweep,omitempty"`
}

// SourceInfo holds metadata about the original image.
type SourceInfo struct {
	Name     string `json:"name"`
	Format   string `json:"format"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Size     int64  `json:"size"`
	HasAlpha bool   `json:"has_alpha"`
}

// OutputInfo describes the encoded artifact.
type OutputInfo struct {
	Format  string `json:"format"`  // "jpeg", "webp"
	Quality int    `json:"quality"` // 1-100
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Size    int64  `json:"size"` // bytes on disk
	Hash    string `json:"hash"` // first 16 hex chars of xxhash64
	Path    string `json:"path"` // relative to the report, empty if not written
}

// Stats compares input and output sizes. ReductionPercent is null when the
// original size is zero.
type Stats struct {
	OriginalBytes    int64    `json:"original_bytes"`
	CompressedBytes  int64    `json:"compressed_bytes"`
	SavedBytes       int64    `json:"saved_bytes"`
	ReductionPercent *float64 `json:"reduction_percent"`
}

// SweepEntry is one sample of a quality sweep.
type SweepEntry struct {
	Quality          int      `json:"quality"`
	Size             int64    `json:"size,omitempty"`
	Hash             string   `json:"hash,omitempty"`
	ReductionPercent *float64 `json:"reduction_percent,omitempty"`
	Error            string   `json:"error,omitempty"`
}

// SupportedVersion is the current schema version.
const SupportedVersion = 1
