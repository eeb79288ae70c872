// Package mjpegwriter writes frames directly to a Motion-JPEG AVI file
// without an external process.
package mjpegwriter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/jpeg"
	"strings"
	"sync"

	"github.com/icza/mjpeg"

	"github.com/user/resampler/pkg/ports"
)

// CodecTag is the only four-character code this writer produces.
const CodecTag = "MJPG"

// DefaultQuality is the JPEG quality used for each frame.
const DefaultQuality = 95

// ErrWriterClosed is returned when feeding a finalized session.
var ErrWriterClosed = errors.New("mjpegwriter: writer closed")

// Backend opens MJPEG AVI writers.
type Backend struct {
	quality int
	logger  ports.Logger
}

// New creates a Backend with DefaultQuality.
func New(logger ports.Logger) *Backend {
	return &Backend{
		quality: DefaultQuality,
		logger:  logger.WithComponent("mjpeg"),
	}
}

// WithQuality sets the JPEG quality (1-100).
func (b *Backend) WithQuality(q int) *Backend {
	if q >= 1 && q <= 100 {
		b.quality = q
	}
	return b
}

// Open creates the AVI file. An empty codec tag means MJPG; any other tag
// fails with ports.ErrWriterOpenFailed.
func (b *Backend) Open(ctx context.Context, opts ports.EncoderOptions) (ports.EncoderSession, error) {
	tag := strings.TrimSpace(opts.Settings.CodecTag)
	if tag != "" && !strings.EqualFold(tag, CodecTag) {
		return nil, &ports.EncoderError{
			Kind:        ports.ErrWriterOpenFailed,
			Encoder:     tag,
			Diagnostics: fmt.Sprintf("unsupported codec tag %q, only %s is available", tag, CodecTag),
		}
	}
	if opts.Width <= 0 || opts.Height <= 0 || opts.FPS <= 0 {
		return nil, &ports.EncoderError{
			Kind:        ports.ErrWriterOpenFailed,
			Encoder:     CodecTag,
			Diagnostics: fmt.Sprintf("invalid geometry %dx%d at %d fps", opts.Width, opts.Height, opts.FPS),
		}
	}

	w, err := mjpeg.New(opts.OutputPath, int32(opts.Width), int32(opts.Height), int32(opts.FPS))
	if err != nil {
		return nil, &ports.EncoderError{Kind: ports.ErrWriterOpenFailed, Encoder: CodecTag, Err: err}
	}
	b.logger.Debug("Writing %s %dx%d at %d fps to %s", CodecTag, opts.Width, opts.Height, opts.FPS, opts.OutputPath)

	return &Session{
		writer:  w,
		width:   opts.Width,
		height:  opts.Height,
		quality: b.quality,
		logger:  b.logger,
	}, nil
}

// Session appends JPEG frames to an open AVI writer.
type Session struct {
	mu      sync.Mutex
	writer  mjpeg.AviWriter
	width   int
	height  int
	quality int
	logger  ports.Logger
	closed  bool
	frames  int
	buf     bytes.Buffer
}

// Encoder returns the codec tag.
func (s *Session) Encoder() string {
	return CodecTag
}

// Frames returns how many frames were written.
func (s *Session) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Feed JPEG-encodes frame and appends it.
func (s *Session) Feed(frame ports.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrWriterClosed
	}
	if !frame.SameShape(s.width, s.height) {
		return fmt.Errorf("mjpegwriter: frame is %dx%d, writer expects %dx%d", frame.Width, frame.Height, s.width, s.height)
	}

	s.buf.Reset()
	if err := jpeg.Encode(&s.buf, frame.Image(), &jpeg.Options{Quality: s.quality}); err != nil {
		return fmt.Errorf("encode frame %d as JPEG: %w", s.frames, err)
	}
	if err := s.writer.AddFrame(s.buf.Bytes()); err != nil {
		return fmt.Errorf("add frame %d: %w", s.frames, err)
	}
	s.frames++
	return nil
}

// Finalize writes the AVI index and closes the file.
func (s *Session) Finalize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrWriterClosed
	}
	s.closed = true
	if err := s.writer.Close(); err != nil {
		return fmt.Errorf("close writer: %w", err)
	}
	s.logger.Debug("Writer finished after %d frames", s.frames)
	return nil
}

// Abort closes the file, leaving whatever was written.
func (s *Session) Abort() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.writer.Close()
}

var (
	_ ports.EncoderBackend = (*Backend)(nil)
	_ ports.EncoderSession = (*Session)(nil)
)
