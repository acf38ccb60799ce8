package pipeline

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/AnyUserName/imgsqueeze/internal/encoder"
	"github.com/AnyUserName/imgsqueeze/internal/outcome"
	"github.com/AnyUserName/imgsqueeze/internal/raster"
	"go.uber.org/zap"
)

// DefaultQualities are the sample points of a sweep when none are given.
var DefaultQualities = []encoder.Quality{10, 30, 50, 70, 90}

// Config holds all parameters for a quality sweep.
type Config struct {
	Workers int
	Options encoder.Options
	Logger  *zap.Logger
}

// Pipeline encodes one decoded image at several qualities in parallel.
type Pipeline struct {
	cfg      Config
	registry *encoder.Registry
	log      *zap.Logger
}

// Point is the encode result for one quality.
type Point struct {
	Quality encoder.Quality
	Size    int64
	Digest  string
	Outcome outcome.Outcome
	Err     error
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		cfg:      cfg,
		registry: encoder.NewRegistry(),
		log:      log,
	}
}

// Sweep encodes buf once per quality and returns the points in the order
// requested. buf is shared read-only between workers. Individual encode
// failures are reported on their Point; Sweep fails only on invalid input
// or when every encode failed.
func (p *Pipeline) Sweep(buf *raster.PixelBuffer, originalSize int64, qualities []encoder.Quality) ([]Point, error) {
	if len(qualities) == 0 {
		qualities = DefaultQualities
	}
	for _, q := range qualities {
		if err := q.Validate(); err != nil {
			return nil, err
		}
	}
	if err := buf.Validate(); err != nil {
		return nil, fmt.Errorf("sweep: %w", err)
	}
	if _, err := outcome.Compute(originalSize, 0); err != nil {
		return nil, err
	}

	p.log.Debug("sweep start",
		zap.Int("qualities", len(qualities)),
		zap.Int("workers", p.cfg.Workers),
		zap.String("registry", p.registry.String()),
	)

	points := make([]Point, len(qualities))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, q := range qualities {
		wg.Add(1)
		go func(idx int, q encoder.Quality) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			points[idx] = p.encodePoint(buf, originalSize, q)
		}(i, q)
	}
	wg.Wait()

	var failed int
	for _, pt := range points {
		if pt.Err != nil {
			failed++
			p.log.Warn("sweep encode failed", zap.Int("quality", int(pt.Quality)), zap.Error(pt.Err))
		}
	}
	if failed == len(points) {
		return nil, fmt.Errorf("all %d encodes failed: %w", failed, points[0].Err)
	}
	return points, nil
}

func (p *Pipeline) encodePoint(buf *raster.PixelBuffer, originalSize int64, q encoder.Quality) Point {
	pt := Point{Quality: q}
	res, err := p.registry.Encode(buf, q, p.cfg.Options)
	if err != nil {
		pt.Err = err
		return pt
	}
	pt.Size = res.Size
	pt.Digest = res.Digest
	pt.Outcome, pt.Err = outcome.Compute(originalSize, res.Size)
	p.log.Debug("sweep point", zap.Int("quality", int(q)), zap.Int64("size", res.Size))
	return pt
}
