package mocks

import (
	"context"
	"io"

	"github.com/user/resampler/pkg/ports"
)

// FrameSource is a mock implementation of ports.FrameSource backed by a slice.
type FrameSource struct {
	SourceInfo ports.SourceInfo
	Frames     []ports.Frame

	ReadFrameFunc func(ctx context.Context) (ports.Frame, error)

	// Recorded calls for verification
	Reads        int
	RewindCalled bool
	CloseCalled  bool

	pos int
}

// NewFrameSource creates a source that yields frames and then io.EOF.
func NewFrameSource(fps float64, frames ...ports.Frame) *FrameSource {
	info := ports.SourceInfo{FPS: fps, FrameCount: len(frames)}
	if len(frames) > 0 {
		info.Width = frames[0].Width
		info.Height = frames[0].Height
	}
	return &FrameSource{SourceInfo: info, Frames: frames}
}

func (m *FrameSource) Info() ports.SourceInfo {
	return m.SourceInfo
}

func (m *FrameSource) ReadFrame(ctx context.Context) (ports.Frame, error) {
	m.Reads++
	if m.ReadFrameFunc != nil {
		return m.ReadFrameFunc(ctx)
	}
	if m.pos >= len(m.Frames) {
		return ports.Frame{}, io.EOF
	}
	f := m.Frames[m.pos]
	m.pos++
	return f, nil
}

func (m *FrameSource) Rewind() error {
	m.RewindCalled = true
	m.pos = 0
	return nil
}

func (m *FrameSource) Close() error {
	m.CloseCalled = true
	return nil
}

// VideoDecoder is a mock implementation of ports.VideoDecoder.
type VideoDecoder struct {
	Source   ports.FrameSource
	OpenFunc func(ctx context.Context, path string) (ports.FrameSource, error)

	OpenedPaths []string
}

func (m *VideoDecoder) Open(ctx context.Context, path string) (ports.FrameSource, error) {
	m.OpenedPaths = append(m.OpenedPaths, path)
	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, path)
	}
	return m.Source, nil
}

// Resizer is a mock implementation of ports.Resizer.
// By default it returns a black frame of the requested size.
type Resizer struct {
	ResizeFunc func(frame ports.Frame, width, height int) ports.Frame

	Calls int
}

func (m *Resizer) Resize(frame ports.Frame, width, height int) ports.Frame {
	m.Calls++
	if m.ResizeFunc != nil {
		return m.ResizeFunc(frame, width, height)
	}
	return ports.NewFrame(width, height)
}

// SolidFrame returns a frame with every sample set to v.
func SolidFrame(width, height int, v byte) ports.Frame {
	f := ports.NewFrame(width, height)
	for i := range f.Pix {
		f.Pix[i] = v
	}
	return f
}

var (
	_ ports.FrameSource  = (*FrameSource)(nil)
	_ ports.VideoDecoder = (*VideoDecoder)(nil)
	_ ports.Resizer      = (*Resizer)(nil)
)
