package ffmpegencoder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/user/resampler/pkg/adapters/ffmpegcmd"
	"github.com/user/resampler/pkg/ports"
)

// ErrSessionClosed is returned when feeding a finalized or aborted session.
var ErrSessionClosed = errors.New("ffmpegencoder: session closed")

// DefaultKillGrace is how long a broken encoder may take to exit before it is killed.
const DefaultKillGrace = 5 * time.Second

// Backend opens ffmpeg processes that read raw frames from stdin.
type Backend struct {
	prober    ports.EncoderProber
	logger    ports.Logger
	killGrace time.Duration
}

// New creates a Backend. A nil prober skips the encoder capability check.
func New(prober ports.EncoderProber, logger ports.Logger) *Backend {
	return &Backend{
		prober:    prober,
		logger:    logger.WithComponent("ffmpeg"),
		killGrace: DefaultKillGrace,
	}
}

// WithKillGrace sets the exit grace period after a broken pipe.
func (b *Backend) WithKillGrace(d time.Duration) *Backend {
	b.killGrace = d
	return b
}

// Open validates the requested encoder, falling back to libx264 with a
// warning when it is missing, and starts ffmpeg. Non-positive geometry
// fails with ports.ErrEncoderOpenFailed before any process is started.
func (b *Backend) Open(ctx context.Context, opts ports.EncoderOptions) (ports.EncoderSession, error) {
	settings := withDefaults(opts.Settings)
	if opts.Width <= 0 || opts.Height <= 0 || opts.FPS <= 0 {
		return nil, &ports.EncoderError{
			Kind:        ports.ErrEncoderOpenFailed,
			Encoder:     settings.Encoder,
			Diagnostics: fmt.Sprintf("invalid geometry %dx%d at %d fps", opts.Width, opts.Height, opts.FPS),
		}
	}

	fallback := false
	if b.prober != nil && settings.Encoder != DefaultEncoder {
		available, err := b.prober.Encoders(ctx)
		if err != nil {
			b.logger.Warn("Could not list encoders: %s", err)
		}
		if !slices.Contains(available, settings.Encoder) {
			b.logger.Warn("Encoder '%s' not available, falling back to %s", settings.Encoder, DefaultEncoder)
			settings.Encoder = DefaultEncoder
			fallback = true
		}
	}

	ffmpegPath, err := ffmpegcmd.FindFFmpeg()
	if err != nil {
		return nil, err
	}

	args := BuildArgs(opts.Width, opts.Height, opts.FPS, settings, opts.OutputPath)
	b.logger.Debug("Starting %s %s", ffmpegPath, strings.Join(args, " "))

	s := &Session{
		encoder:   settings.Encoder,
		fallback:  fallback,
		width:     opts.Width,
		height:    opts.Height,
		stderr:    ffmpegcmd.NewLastLines(ffmpegcmd.DiagnosticLines),
		killGrace: b.killGrace,
		logger:    b.logger,
		done:      make(chan struct{}),
	}
	s.cmd = exec.Command(ffmpegPath, args...)
	s.cmd.Stderr = s.stderr
	s.cmd.WaitDelay = b.killGrace

	stdin, err := s.cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to get stdin pipe: %w", err)
	}
	s.stdin = stdin

	if err := s.cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start ffmpeg: %w", err)
	}
	go func() {
		s.waitErr = s.cmd.Wait()
		close(s.done)
	}()

	return s, nil
}

// Session is a running ffmpeg encoder.
type Session struct {
	encoder  string
	fallback bool
	width    int
	height   int

	mu        sync.Mutex
	cmd       *exec.Cmd
	stdin     io.WriteCloser
	stderr    *ffmpegcmd.LastLines
	killGrace time.Duration
	logger    ports.Logger
	closed    bool
	frames    int

	done    chan struct{}
	waitErr error
}

// Encoder returns the encoder actually in use.
func (s *Session) Encoder() string {
	return s.encoder
}

// FallbackUsed reports whether the default encoder was substituted.
func (s *Session) FallbackUsed() bool {
	return s.fallback
}

// Frames returns how many frames were written.
func (s *Session) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Feed writes one frame to ffmpeg's stdin. If ffmpeg has exited or closed
// its input, the process is reaped and an EncoderError wrapping
// ports.ErrEncoderPipeBroken is returned with ffmpeg's stderr tail.
func (s *Session) Feed(frame ports.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if !frame.SameShape(s.width, s.height) {
		return fmt.Errorf("ffmpegencoder: frame is %dx%d, session expects %dx%d", frame.Width, frame.Height, s.width, s.height)
	}

	if _, err := s.stdin.Write(frame.Pix); err != nil {
		s.closed = true
		s.stdin.Close()
		s.reap(s.killGrace)
		return &ports.EncoderError{
			Kind:        ports.ErrEncoderPipeBroken,
			Encoder:     s.encoder,
			Diagnostics: s.diagnostics(),
			Err:         err,
		}
	}
	s.frames++
	return nil
}

// Finalize closes stdin and waits for ffmpeg to exit.
func (s *Session) Finalize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	s.closed = true

	s.stdin.Close()
	<-s.done

	if s.waitErr != nil {
		return &ports.EncoderError{
			Kind:        ports.ErrEncoderExitedNonZero,
			Encoder:     s.encoder,
			Diagnostics: s.diagnostics(),
			Err:         s.waitErr,
		}
	}
	s.logger.Debug("Encoder finished after %d frames", s.frames)
	return nil
}

// Abort stops ffmpeg without waiting for it to finish the output.
func (s *Session) Abort() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.stdin.Close()
	s.reap(0)
}

// reap waits up to grace for the process to exit, then kills it.
func (s *Session) reap(grace time.Duration) {
	if grace > 0 {
		select {
		case <-s.done:
			return
		case <-time.After(grace):
			s.logger.Warn("Encoder did not exit, killing it")
		}
	}
	select {
	case <-s.done:
	default:
		if s.cmd.Process != nil {
			s.cmd.Process.Kill()
		}
		<-s.done
	}
}

func (s *Session) diagnostics() string {
	s.stderr.Close()
	return strings.TrimSpace(s.stderr.String())
}

var (
	_ ports.EncoderBackend = (*Backend)(nil)
	_ ports.EncoderSession = (*Session)(nil)
)
