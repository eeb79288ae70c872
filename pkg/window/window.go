// Package window implements the sliding frame buffer fed by a decoder.
package window

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/user/resampler/pkg/plan"
	"github.com/user/resampler/pkg/ports"
)

// ErrInsufficientFrames is returned when the source ends before the window is complete.
var ErrInsufficientFrames = errors.New("window: insufficient frames")

// Window holds the most recent decoded frames, oldest first.
// It is owned by a single goroutine.
type Window struct {
	source   ports.FrameSource
	resizer  ports.Resizer
	target   plan.Size
	capacity int
	frames   []ports.Frame
}

// New creates an empty window. Frames whose size differs from target are
// scaled with resizer before insertion. With a nil resizer frames are
// buffered as decoded and a wrong-sized frame is left for the blend to reject.
func New(source ports.FrameSource, resizer ports.Resizer, capacity int, target plan.Size) *Window {
	return &Window{
		source:   source,
		resizer:  resizer,
		target:   target,
		capacity: capacity,
		frames:   make([]ports.Frame, 0, capacity),
	}
}

// Fill pulls exactly Capacity frames to establish the initial window.
func (w *Window) Fill(ctx context.Context) error {
	w.release(len(w.frames))
	for len(w.frames) < w.capacity {
		f, err := w.next(ctx, true)
		if err != nil {
			return err
		}
		w.frames = append(w.frames, f)
	}
	return nil
}

// Advance evicts the oldest n frames and appends the next n decoded frames.
// When n exceeds the capacity, the frames that would be evicted within the
// same step are read and dropped without resizing. On ErrInsufficientFrames
// the window is incomplete and must not be blended.
func (w *Window) Advance(ctx context.Context, n int) error {
	if n <= 0 {
		return nil
	}

	skip := n - w.capacity
	for i := 0; i < skip; i++ {
		if _, err := w.next(ctx, false); err != nil {
			w.release(len(w.frames))
			return err
		}
	}

	w.release(min(n, len(w.frames)))
	for len(w.frames) < w.capacity {
		f, err := w.next(ctx, true)
		if err != nil {
			return err
		}
		w.frames = append(w.frames, f)
	}
	return nil
}

// Frames returns the buffered frames, oldest first. The slice is only valid
// until the next Fill or Advance.
func (w *Window) Frames() []ports.Frame {
	return w.frames
}

// Len returns the number of buffered frames.
func (w *Window) Len() int {
	return len(w.frames)
}

// Capacity returns the window size.
func (w *Window) Capacity() int {
	return w.capacity
}

// release drops the oldest n frames and clears their slots so the pixel
// buffers can be collected.
func (w *Window) release(n int) {
	if n <= 0 {
		return
	}
	remaining := copy(w.frames, w.frames[n:])
	for i := remaining; i < len(w.frames); i++ {
		w.frames[i] = ports.Frame{}
	}
	w.frames = w.frames[:remaining]
}

func (w *Window) next(ctx context.Context, keep bool) (ports.Frame, error) {
	f, err := w.source.ReadFrame(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ports.Frame{}, fmt.Errorf("%w: have %d of %d", ErrInsufficientFrames, len(w.frames), w.capacity)
		}
		return ports.Frame{}, fmt.Errorf("read frame: %w", err)
	}
	if keep && w.resizer != nil && (f.Width != w.target.Width || f.Height != w.target.Height) {
		f = w.resizer.Resize(f, w.target.Width, w.target.Height)
	}
	return f, nil
}
