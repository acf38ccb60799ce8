package session

import (
	"errors"
	"sync"

	"github.com/AnyUserName/imgsqueeze/internal/encoder"
	"github.com/AnyUserName/imgsqueeze/internal/outcome"
	"github.com/AnyUserName/imgsqueeze/internal/raster"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNoSource is returned by Compress before any image was loaded.
var ErrNoSource = errors.New("no source image loaded")

// Options configures a Session.
type Options struct {
	Limits raster.Limits
	Encode encoder.Options
}

// Compression is the outcome of one compress request.
type Compression struct {
	SessionID    string
	Source       SourceImage
	SourceFormat string
	Width        int
	Height       int
	HasAlpha     bool
	Result       *encoder.Result
	Outcome      outcome.Outcome
	DownloadName string
}

// Session holds the image currently being worked on: the source, its
// decoded buffer and the latest compression. The buffer is decoded at most
// once per source; every Compress call encodes afresh.
type Session struct {
	id   uuid.UUID
	opts Options
	log  *zap.Logger

	decode func([]byte, raster.Limits) (*raster.PixelBuffer, error)
	encode func(*raster.PixelBuffer, encoder.Quality, encoder.Options) (*encoder.Result, error)

	mu     sync.Mutex
	source *SourceImage
	buf    *raster.PixelBuffer
	last   *Compression
	gen    uint64
}

// New creates an empty session. A nil logger disables logging.
func New(opts Options, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	id := uuid.New()
	return &Session{
		id:     id,
		opts:   opts,
		log:    log.With(zap.String("session", id.String())),
		decode: raster.Decode,
		encode: encoder.Encode,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id.String() }

// Load replaces the current source. The header is checked right away so an
// unsupported or oversized file is rejected at selection time; on error the
// previous source stays in place.
func (s *Session) Load(name string, data []byte) (SourceImage, error) {
	info, err := raster.Inspect(data, s.opts.Limits)
	if err != nil {
		s.log.Debug("load rejected", zap.String("name", name), zap.Int("bytes", len(data)), zap.Error(err))
		return SourceImage{}, err
	}

	src := NewSourceImage(name, data)

	s.mu.Lock()
	s.source = &src
	s.buf = nil
	s.last = nil
	s.gen++
	s.mu.Unlock()

	s.log.Debug("source loaded",
		zap.String("name", name),
		zap.String("format", info.Format),
		zap.Int("width", info.Width),
		zap.Int("height", info.Height),
		zap.Int64("bytes", src.Size()),
	)
	return src, nil
}

// Source returns the current source, if any.
func (s *Session) Source() (SourceImage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.source == nil {
		return SourceImage{}, false
	}
	return *s.source, true
}

// Compress encodes the current source at quality q.
func (s *Session) Compress(q encoder.Quality) (*Compression, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.source == nil {
		s.mu.Unlock()
		return nil, ErrNoSource
	}
	src := *s.source
	gen := s.gen
	buf, err := s.bufferLocked()
	s.mu.Unlock()
	if err != nil {
		s.log.Warn("decode failed", zap.String("name", src.Name()), zap.Error(err))
		return nil, err
	}

	res, err := s.encode(buf, q, s.opts.Encode)
	if err != nil {
		s.log.Error("encode failed", zap.Int("quality", int(q)), zap.Error(err))
		return nil, err
	}

	out, err := outcome.Compute(src.Size(), res.Size)
	if err != nil {
		return nil, err
	}

	c := &Compression{
		SessionID:    s.ID(),
		Source:       src,
		SourceFormat: buf.Format(),
		Width:        buf.Width,
		Height:       buf.Height,
		HasAlpha:     !buf.Opaque(),
		Result:       res,
		Outcome:      out,
		DownloadName: DownloadName(src.Name(), res.Extension),
	}

	s.mu.Lock()
	if s.gen == gen {
		s.last = c
	}
	s.mu.Unlock()

	s.log.Info("compressed",
		zap.String("name", src.Name()),
		zap.Int("quality", int(q)),
		zap.String("format", res.Format),
		zap.Int64("original", src.Size()),
		zap.Int64("compressed", res.Size),
		zap.Stringer("reduction", out),
	)
	return c, nil
}

// Buffer returns the decoded buffer of the current source, decoding it if
// that has not happened yet.
func (s *Session) Buffer() (*raster.PixelBuffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.source == nil {
		return nil, ErrNoSource
	}
	return s.bufferLocked()
}

// bufferLocked decodes the source on first use. s.mu must be held.
func (s *Session) bufferLocked() (*raster.PixelBuffer, error) {
	if s.buf != nil {
		return s.buf, nil
	}
	buf, err := s.decode(s.source.data, s.opts.Limits)
	if err != nil {
		return nil, err
	}
	s.buf = buf
	s.log.Debug("decoded", zap.Int("width", buf.Width), zap.Int("height", buf.Height))
	return buf, nil
}

// Last returns the most recent compression of the current source.
func (s *Session) Last() (*Compression, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.last != nil
}

// Reset drops the source, its buffer and the last compression.
func (s *Session) Reset() {
	s.mu.Lock()
	s.source = nil
	s.buf = nil
	s.last = nil
	s.gen++
	s.mu.Unlock()
	s.log.Debug("session reset")
}
