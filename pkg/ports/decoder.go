package ports

import (
	"context"
)

// SourceInfo describes the video stream exposed by a FrameSource.
type SourceInfo struct {
	Width      int
	Height     int
	FPS        float64
	FrameCount int // 0 when the container does not report it
}

// FrameSource yields decoded frames in presentation order.
type FrameSource interface {
	// Info returns the stream properties probed when the source was opened.
	Info() SourceInfo

	// ReadFrame returns the next frame, or io.EOF at end of stream.
	ReadFrame(ctx context.Context) (Frame, error)

	// Rewind seeks back to the first frame.
	Rewind() error

	// Close releases decoder resources.
	Close() error
}

// VideoDecoder opens video files as frame sources.
type VideoDecoder interface {
	Open(ctx context.Context, path string) (FrameSource, error)
}

// Resizer scales a single frame to explicit dimensions.
type Resizer interface {
	Resize(frame Frame, width, height int) Frame
}
