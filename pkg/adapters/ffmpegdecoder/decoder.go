// Package ffmpegdecoder reads video files as raw RGB24 frames through ffmpeg.
package ffmpegdecoder

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/user/resampler/pkg/adapters/ffmpegcmd"
	"github.com/user/resampler/pkg/ports"
)

// ErrSourceClosed is returned when reading from a closed source.
var ErrSourceClosed = errors.New("ffmpegdecoder: source closed")

const waitDelay = 5 * time.Second

// Decoder opens video files with ffprobe and ffmpeg.
type Decoder struct {
	logger ports.Logger
}

// New creates a Decoder.
func New(logger ports.Logger) *Decoder {
	return &Decoder{logger: logger.WithComponent("decode")}
}

// Open probes path and returns a source that starts decoding on the first read.
func (d *Decoder) Open(ctx context.Context, path string) (ports.FrameSource, error) {
	info, err := Probe(ctx, path)
	if err != nil {
		return nil, err
	}
	if info.Width <= 0 || info.Height <= 0 {
		return nil, fmt.Errorf("ffmpegdecoder: %s reports size %dx%d", path, info.Width, info.Height)
	}
	d.logger.Debug("Opened %s: %dx%d at %.3f fps, %d frames", path, info.Width, info.Height, info.FPS, info.FrameCount)
	return &Source{path: path, info: info, logger: d.logger}, nil
}

// Source streams frames from a running ffmpeg process.
type Source struct {
	path   string
	info   ports.SourceInfo
	logger ports.Logger

	mu     sync.Mutex
	cmd    *exec.Cmd
	stdout *bufio.Reader
	stderr *ffmpegcmd.LastLines
	closed bool
	eof    bool
	read   int
}

// Info returns the probed stream properties.
func (s *Source) Info() ports.SourceInfo {
	return s.info
}

// ReadFrame returns the next frame. A truncated trailing frame is treated as end of stream.
func (s *Source) ReadFrame(ctx context.Context) (ports.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ports.Frame{}, ErrSourceClosed
	}
	if s.eof {
		return ports.Frame{}, io.EOF
	}
	if err := ctx.Err(); err != nil {
		return ports.Frame{}, err
	}
	if s.cmd == nil {
		if err := s.start(); err != nil {
			return ports.Frame{}, err
		}
	}

	frame := ports.NewFrame(s.info.Width, s.info.Height)
	_, err := io.ReadFull(s.stdout, frame.Pix)
	switch {
	case err == nil:
		s.read++
		return frame, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		if errors.Is(err, io.ErrUnexpectedEOF) {
			s.logger.Debug("Dropping truncated frame after %d frames", s.read)
		}
		s.eof = true
		if werr := s.stop(); werr != nil {
			return ports.Frame{}, werr
		}
		return ports.Frame{}, io.EOF
	default:
		return ports.Frame{}, fmt.Errorf("read frame %d: %w", s.read, err)
	}
}

// Rewind restarts decoding from the first frame.
func (s *Source) Rewind() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSourceClosed
	}
	s.kill()
	s.eof = false
	s.read = 0
	return nil
}

// Close stops ffmpeg.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.kill()
	return nil
}

func (s *Source) start() error {
	ffmpegPath, err := ffmpegcmd.FindFFmpeg()
	if err != nil {
		return err
	}

	s.stderr = ffmpegcmd.NewLastLines(ffmpegcmd.DiagnosticLines)
	cmd := exec.Command(ffmpegPath,
		"-hide_banner",
		"-nostdin",
		"-i", s.path,
		"-map", "0:v:0",
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"pipe:1",
	)
	cmd.Stderr = s.stderr
	cmd.WaitDelay = waitDelay

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to get stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	s.cmd = cmd
	s.stdout = bufio.NewReaderSize(stdout, s.info.Width*s.info.Height*ports.BytesPerPixel)
	return nil
}

// stop waits for a process that reached end of output.
func (s *Source) stop() error {
	cmd := s.cmd
	s.cmd = nil
	s.stdout = nil
	if cmd == nil {
		return nil
	}
	if err := cmd.Wait(); err != nil {
		s.stderr.Close()
		return fmt.Errorf("ffmpeg decode %s: %w: %s", s.path, err, strings.TrimSpace(s.stderr.String()))
	}
	s.logger.Debug("Decoded %d frames from %s", s.read, s.path)
	return nil
}

func (s *Source) kill() {
	if s.cmd == nil {
		return
	}
	if s.cmd.Process != nil {
		s.cmd.Process.Kill()
	}
	s.cmd.Wait()
	s.cmd = nil
	s.stdout = nil
}

var (
	_ ports.VideoDecoder = (*Decoder)(nil)
	_ ports.FrameSource  = (*Source)(nil)
)
