package window

import (
	"context"
	"errors"
	"testing"

	"github.com/user/resampler/pkg/mocks"
	"github.com/user/resampler/pkg/plan"
	"github.com/user/resampler/pkg/ports"
)

// numbered returns n 2x2 frames whose samples equal their index.
func numbered(n int) []ports.Frame {
	frames := make([]ports.Frame, n)
	for i := range frames {
		frames[i] = mocks.SolidFrame(2, 2, byte(i))
	}
	return frames
}

func ids(frames []ports.Frame) []int {
	out := make([]int, len(frames))
	for i, f := range frames {
		out[i] = int(f.Pix[0])
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestWindow_FillAndAdvance(t *testing.T) {
	src := mocks.NewFrameSource(240, numbered(12)...)
	w := New(src, nil, 4, plan.Size{Width: 2, Height: 2})
	ctx := context.Background()

	if err := w.Fill(ctx); err != nil {
		t.Fatalf("Fill failed: %v", err)
	}
	if w.Len() != 4 {
		t.Fatalf("Len after Fill = %d, want 4", w.Len())
	}
	if got := ids(w.Frames()); !equalInts(got, []int{0, 1, 2, 3}) {
		t.Errorf("after Fill got %v", got)
	}

	if err := w.Advance(ctx, 2); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if got := ids(w.Frames()); !equalInts(got, []int{2, 3, 4, 5}) {
		t.Errorf("after first Advance got %v", got)
	}

	if err := w.Advance(ctx, 4); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if got := ids(w.Frames()); !equalInts(got, []int{6, 7, 8, 9}) {
		t.Errorf("after second Advance got %v", got)
	}
	if w.Len() != w.Capacity() {
		t.Errorf("Len = %d, want %d", w.Len(), w.Capacity())
	}
}

func TestWindow_AdvanceLargerThanCapacity(t *testing.T) {
	// Ratio 4 with a window of 2: each step keeps the first two frames of a
	// four-frame group.
	src := mocks.NewFrameSource(240, numbered(12)...)
	resizer := &mocks.Resizer{ResizeFunc: func(f ports.Frame, w, h int) ports.Frame { return f }}
	w := New(src, resizer, 2, plan.Size{Width: 1, Height: 1})
	ctx := context.Background()

	if err := w.Fill(ctx); err != nil {
		t.Fatalf("Fill failed: %v", err)
	}
	if err := w.Advance(ctx, 4); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if got := ids(w.Frames()); !equalInts(got, []int{4, 5}) {
		t.Errorf("got %v, want [4 5]", got)
	}
	if src.Reads != 6 {
		t.Errorf("Reads = %d, want 6", src.Reads)
	}
	// Frames 2 and 3 are dropped without being resized.
	if resizer.Calls != 4 {
		t.Errorf("resizer called %d times, want 4", resizer.Calls)
	}
}

func TestWindow_InsufficientFramesOnFill(t *testing.T) {
	src := mocks.NewFrameSource(240, numbered(3)...)
	w := New(src, nil, 4, plan.Size{Width: 2, Height: 2})

	err := w.Fill(context.Background())
	if !errors.Is(err, ErrInsufficientFrames) {
		t.Fatalf("expected ErrInsufficientFrames, got %v", err)
	}
}

func TestWindow_InsufficientFramesOnAdvance(t *testing.T) {
	src := mocks.NewFrameSource(240, numbered(6)...)
	w := New(src, nil, 4, plan.Size{Width: 2, Height: 2})
	ctx := context.Background()

	if err := w.Fill(ctx); err != nil {
		t.Fatalf("Fill failed: %v", err)
	}
	err := w.Advance(ctx, 4)
	if !errors.Is(err, ErrInsufficientFrames) {
		t.Fatalf("expected ErrInsufficientFrames, got %v", err)
	}
	if w.Len() == w.Capacity() {
		t.Error("incomplete window must not report full length")
	}
}

func TestWindow_ResizesMismatchedFrames(t *testing.T) {
	frames := []ports.Frame{
		mocks.SolidFrame(4, 4, 10),
		mocks.SolidFrame(2, 2, 20),
	}
	src := mocks.NewFrameSource(60, frames...)
	resizer := &mocks.Resizer{}
	w := New(src, resizer, 2, plan.Size{Width: 2, Height: 2})

	if err := w.Fill(context.Background()); err != nil {
		t.Fatalf("Fill failed: %v", err)
	}
	if resizer.Calls != 1 {
		t.Errorf("resizer called %d times, want 1", resizer.Calls)
	}
	for i, f := range w.Frames() {
		if !f.SameShape(2, 2) {
			t.Errorf("frame %d has shape %dx%d", i, f.Width, f.Height)
		}
	}
}

func TestWindow_NilResizerKeepsDecodedShape(t *testing.T) {
	src := mocks.NewFrameSource(60, mocks.SolidFrame(2, 2, 1), mocks.SolidFrame(3, 3, 2))
	w := New(src, nil, 2, plan.Size{Width: 2, Height: 2})

	if err := w.Fill(context.Background()); err != nil {
		t.Fatalf("Fill failed: %v", err)
	}
	if got := w.Frames()[1]; got.Width != 3 || got.Height != 3 {
		t.Errorf("frame 1 has shape %dx%d, want the decoded 3x3", got.Width, got.Height)
	}
}

func TestWindow_ReleasesEvictedSlots(t *testing.T) {
	src := mocks.NewFrameSource(240, numbered(6)...)
	w := New(src, nil, 4, plan.Size{Width: 2, Height: 2})
	ctx := context.Background()

	if err := w.Fill(ctx); err != nil {
		t.Fatalf("Fill failed: %v", err)
	}
	backing := w.frames[:cap(w.frames)]
	if err := w.Advance(ctx, 4); !errors.Is(err, ErrInsufficientFrames) {
		t.Fatalf("expected ErrInsufficientFrames, got %v", err)
	}
	if w.Len() != 2 {
		t.Fatalf("Len = %d, want 2", w.Len())
	}
	// Slots past the live length hold no pixel data.
	for i := w.Len(); i < len(backing); i++ {
		if backing[i].Pix != nil {
			t.Errorf("slot %d still references pixels", i)
		}
	}
}

func TestWindow_ReadError(t *testing.T) {
	boom := errors.New("decoder crashed")
	src := &mocks.FrameSource{
		ReadFrameFunc: func(ctx context.Context) (ports.Frame, error) {
			return ports.Frame{}, boom
		},
	}
	w := New(src, nil, 2, plan.Size{Width: 2, Height: 2})
	err := w.Fill(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected decoder error, got %v", err)
	}
	if errors.Is(err, ErrInsufficientFrames) {
		t.Error("decoder failure must not be reported as end of stream")
	}
}
