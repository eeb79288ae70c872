package resample

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/user/resampler/pkg/adapters/ffmpegencoder"
	"github.com/user/resampler/pkg/adapters/logger"
	"github.com/user/resampler/pkg/mocks"
	"github.com/user/resampler/pkg/pipeline"
	"github.com/user/resampler/pkg/plan"
	"github.com/user/resampler/pkg/ports"
	"github.com/user/resampler/pkg/window"
)

// rampSource yields n 4x2 frames where frame i has every sample set to i*10.
func rampSource(fps float64, n int) *mocks.FrameSource {
	frames := make([]ports.Frame, n)
	for i := range frames {
		frames[i] = mocks.SolidFrame(4, 2, byte(i*10))
	}
	return mocks.NewFrameSource(fps, frames...)
}

func testConfig() pipeline.ResampleConfig {
	cfg := pipeline.DefaultResampleConfig()
	cfg.OutputPath = "no-audio_out.mp4"
	cfg.UseExternalEncoder = true
	return cfg
}

type fixture struct {
	streaming *mocks.EncoderBackend
	writer    *mocks.EncoderBackend
	resizer   *mocks.Resizer
	confirmer *mocks.Confirmer
	progress  *mocks.ProgressReporter
	stage     *Stage
}

func newFixture() *fixture {
	f := &fixture{
		streaming: &mocks.EncoderBackend{},
		writer:    &mocks.EncoderBackend{},
		resizer:   &mocks.Resizer{},
		confirmer: &mocks.Confirmer{},
		progress:  &mocks.ProgressReporter{},
	}
	f.stage = New(Backends{Streaming: f.streaming, Writer: f.writer}, f.resizer, f.confirmer, f.progress, logger.NewNoop(), Options{Workers: 2})
	return f
}

func TestExecute_240To60(t *testing.T) {
	f := newFixture()
	src := rampSource(240, 8)

	result, err := f.stage.Execute(context.Background(), pipeline.ResampleInput{Source: src, Config: testConfig()})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if result.Plan.FPSRatio != 4 || result.Plan.BlendedFrameCount != 4 || result.Plan.OutputFrameCount != 2 {
		t.Errorf("unexpected plan: %+v", result.Plan)
	}
	if result.State != StateDone.String() {
		t.Errorf("State = %q, want done", result.State)
	}
	if result.FramesWritten != 2 || result.EarlyStop {
		t.Errorf("FramesWritten = %d EarlyStop = %v, want 2 false", result.FramesWritten, result.EarlyStop)
	}

	sess := f.streaming.Session
	if len(sess.Fed) != 2 {
		t.Fatalf("fed %d frames, want 2", len(sess.Fed))
	}
	// EQUAL weights average frames 0..3 and 4..7.
	for i, want := range []byte{15, 55} {
		for j, v := range sess.Fed[i].Pix {
			if v != want {
				t.Fatalf("output %d sample %d = %d, want %d", i, j, v, want)
			}
		}
	}
	if !sess.FinalizeCalled || sess.AbortCalled {
		t.Errorf("FinalizeCalled = %v AbortCalled = %v", sess.FinalizeCalled, sess.AbortCalled)
	}
	if len(f.writer.OpenCalls) != 0 {
		t.Error("writer backend must not be opened")
	}

	opts := f.streaming.OpenCalls[0]
	if opts.Width != 4 || opts.Height != 2 || opts.FPS != 60 || opts.OutputPath != "no-audio_out.mp4" {
		t.Errorf("unexpected encoder options: %+v", opts)
	}
	if f.resizer.Calls != 0 {
		t.Errorf("resizer called %d times for an unchanged resolution", f.resizer.Calls)
	}

	if f.progress.Total != 2 || len(f.progress.Updates) != 1 || !f.progress.Finished {
		t.Errorf("progress total=%d updates=%d finished=%v", f.progress.Total, len(f.progress.Updates), f.progress.Finished)
	}
	if u := f.progress.Updates[0]; u.Index != 1 || u.Total != 2 {
		t.Errorf("unexpected progress update: %+v", u)
	}
}

func TestExecute_UpsamplingFailsBeforeDecoding(t *testing.T) {
	f := newFixture()
	src := rampSource(60, 8)
	cfg := testConfig()
	cfg.OutputFPS = 120

	result, err := f.stage.Execute(context.Background(), pipeline.ResampleInput{Source: src, Config: cfg})
	if !errors.Is(err, plan.ErrUpsamplingNotSupported) {
		t.Fatalf("expected ErrUpsamplingNotSupported, got %v", err)
	}
	if src.Reads != 0 {
		t.Errorf("decoded %d frames before failing", src.Reads)
	}
	if len(f.streaming.OpenCalls) != 0 {
		t.Error("encoder opened before validation passed")
	}
	if result.State != StateFailed.String() {
		t.Errorf("State = %q, want failed", result.State)
	}
}

func TestExecute_PipeBrokenAborts(t *testing.T) {
	f := newFixture()
	feeds := 0
	f.streaming.Session = &mocks.EncoderSession{
		FeedFunc: func(ports.Frame) error {
			feeds++
			if feeds == 2 {
				return &ports.EncoderError{Kind: ports.ErrEncoderPipeBroken, Encoder: "libx264", Diagnostics: "Conversion failed!"}
			}
			return nil
		},
	}

	result, err := f.stage.Execute(context.Background(), pipeline.ResampleInput{Source: rampSource(240, 16), Config: testConfig()})
	if !errors.Is(err, ports.ErrEncoderPipeBroken) {
		t.Fatalf("expected ErrEncoderPipeBroken, got %v", err)
	}
	var encErr *ports.EncoderError
	if !errors.As(err, &encErr) || encErr.Diagnostics != "Conversion failed!" {
		t.Errorf("diagnostics not surfaced: %v", err)
	}
	if !f.streaming.Session.AbortCalled {
		t.Error("session not aborted")
	}
	if f.streaming.Session.FinalizeCalled {
		t.Error("session finalized after a broken pipe")
	}
	if result.State != StateFailed.String() || result.FramesWritten != 1 {
		t.Errorf("State = %q FramesWritten = %d", result.State, result.FramesWritten)
	}
}

func TestExecute_FinalizeFailure(t *testing.T) {
	f := newFixture()
	f.streaming.Session = &mocks.EncoderSession{
		FinalizeFunc: func() error {
			return &ports.EncoderError{Kind: ports.ErrEncoderExitedNonZero, Encoder: "libx264"}
		},
	}

	result, err := f.stage.Execute(context.Background(), pipeline.ResampleInput{Source: rampSource(240, 8), Config: testConfig()})
	if !errors.Is(err, ports.ErrEncoderExitedNonZero) {
		t.Fatalf("expected ErrEncoderExitedNonZero, got %v", err)
	}
	if f.streaming.Session.AbortCalled {
		t.Error("finalized session must not be aborted")
	}
	if result.State != StateFailed.String() {
		t.Errorf("State = %q, want failed", result.State)
	}
}

func TestExecute_NonDivisibleRate(t *testing.T) {
	testCases := []struct {
		name      string
		answer    bool
		assumeYes bool
		err       error
		prompts   int
	}{
		{name: "declined", answer: false, err: ErrAborted, prompts: 1},
		{name: "confirmed", answer: true, prompts: 1},
		{name: "assume yes", assumeYes: true, prompts: 0},
	}
	for _, tC := range testCases {
		t.Run(tC.name, func(t *testing.T) {
			f := newFixture()
			f.confirmer.Answer = tC.answer
			cfg := testConfig()
			cfg.AssumeYes = tC.assumeYes

			// 144 / 60 truncates to a ratio of 2.
			_, err := f.stage.Execute(context.Background(), pipeline.ResampleInput{Source: rampSource(144, 8), Config: cfg})
			if !errors.Is(err, tC.err) {
				t.Fatalf("expected %v, got %v", tC.err, err)
			}
			if len(f.confirmer.Prompts) != tC.prompts {
				t.Errorf("prompted %d times, want %d", len(f.confirmer.Prompts), tC.prompts)
			}
			if tC.err != nil && len(f.streaming.OpenCalls) != 0 {
				t.Error("encoder opened after the user declined")
			}
			if tC.err == nil && len(f.streaming.Session.Fed) != 4 {
				t.Errorf("fed %d frames, want 4", len(f.streaming.Session.Fed))
			}
		})
	}
}

func TestExecute_NoConfirmerDeclines(t *testing.T) {
	stage := New(Backends{Streaming: &mocks.EncoderBackend{}}, nil, nil, nil, logger.NewNoop(), Options{})
	_, err := stage.Execute(context.Background(), pipeline.ResampleInput{Source: rampSource(144, 8), Config: testConfig()})
	if !errors.Is(err, ErrAborted) {
		t.Errorf("expected ErrAborted, got %v", err)
	}
}

func TestExecute_EarlyStop(t *testing.T) {
	f := newFixture()
	src := rampSource(240, 9)
	src.SourceInfo.FrameCount = 12 // the container over-reports

	result, err := f.stage.Execute(context.Background(), pipeline.ResampleInput{Source: src, Config: testConfig()})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !result.EarlyStop {
		t.Error("expected EarlyStop")
	}
	if result.FramesWritten != 2 || result.Plan.OutputFrameCount != 3 {
		t.Errorf("FramesWritten = %d of %d, want 2 of 3", result.FramesWritten, result.Plan.OutputFrameCount)
	}
	if !f.streaming.Session.FinalizeCalled {
		t.Error("partial output must be finalized")
	}
}

func TestExecute_UnknownLengthStreamsToEOF(t *testing.T) {
	f := newFixture()
	src := rampSource(240, 12)
	src.SourceInfo.FrameCount = 0

	result, err := f.stage.Execute(context.Background(), pipeline.ResampleInput{Source: src, Config: testConfig()})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.FramesWritten != 3 || result.EarlyStop {
		t.Errorf("FramesWritten = %d EarlyStop = %v, want 3 false", result.FramesWritten, result.EarlyStop)
	}
	if f.progress.Total != 0 {
		t.Errorf("progress total = %d, want 0 for unknown length", f.progress.Total)
	}
}

func TestExecute_FillTooShortIsFatal(t *testing.T) {
	f := newFixture()
	src := rampSource(240, 2)
	src.SourceInfo.FrameCount = 8

	_, err := f.stage.Execute(context.Background(), pipeline.ResampleInput{Source: src, Config: testConfig()})
	if !errors.Is(err, window.ErrInsufficientFrames) {
		t.Fatalf("expected ErrInsufficientFrames, got %v", err)
	}
	if !f.streaming.Session.AbortCalled {
		t.Error("session not aborted")
	}
	if len(f.streaming.Session.Fed) != 0 {
		t.Error("no frame may be fed from an incomplete window")
	}
}

func TestExecute_WriterBackend(t *testing.T) {
	f := newFixture()
	cfg := testConfig()
	cfg.UseExternalEncoder = false

	if _, err := f.stage.Execute(context.Background(), pipeline.ResampleInput{Source: rampSource(240, 8), Config: cfg}); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(f.writer.OpenCalls) != 1 || len(f.streaming.OpenCalls) != 0 {
		t.Errorf("writer opened %d times, streaming %d times", len(f.writer.OpenCalls), len(f.streaming.OpenCalls))
	}
	if f.writer.OpenCalls[0].Settings.CodecTag != "MJPG" {
		t.Errorf("codec tag not passed: %+v", f.writer.OpenCalls[0].Settings)
	}
}

func TestExecute_MissingBackend(t *testing.T) {
	stage := New(Backends{}, nil, nil, nil, logger.NewNoop(), Options{})
	_, err := stage.Execute(context.Background(), pipeline.ResampleInput{Source: rampSource(240, 8), Config: testConfig()})
	if !errors.Is(err, ErrNoBackend) {
		t.Errorf("expected ErrNoBackend, got %v", err)
	}
}

func TestExecute_Resize(t *testing.T) {
	f := newFixture()
	cfg := testConfig()
	cfg.Resolution = "2x1"

	result, err := f.stage.Execute(context.Background(), pipeline.ResampleInput{Source: rampSource(240, 8), Config: cfg})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if f.resizer.Calls != 8 {
		t.Errorf("resizer called %d times, want 8", f.resizer.Calls)
	}
	if result.BlackFrames != 0 {
		t.Errorf("BlackFrames = %d, want 0", result.BlackFrames)
	}
	for _, fr := range f.streaming.Session.Fed {
		if !fr.SameShape(2, 1) {
			t.Errorf("fed frame %dx%d, want 2x1", fr.Width, fr.Height)
		}
	}
}

func TestExecute_ShapeMismatchBecomesBlack(t *testing.T) {
	f := newFixture()
	cfg := testConfig()
	cfg.Resolution = "2x1"
	// A broken resizer returns the wrong size for every frame.
	f.resizer.ResizeFunc = func(frame ports.Frame, w, h int) ports.Frame { return ports.NewFrame(3, 3) }

	result, err := f.stage.Execute(context.Background(), pipeline.ResampleInput{Source: rampSource(240, 8), Config: cfg})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.BlackFrames != 2 || result.FramesWritten != 2 {
		t.Errorf("BlackFrames = %d FramesWritten = %d, want 2 2", result.BlackFrames, result.FramesWritten)
	}
}

func TestExecute_WrongSizedFrameWithoutResizeIsBlack(t *testing.T) {
	f := newFixture()
	frames := make([]ports.Frame, 8)
	for i := range frames {
		frames[i] = mocks.SolidFrame(4, 2, byte(i*10))
	}
	// A decode glitch in the second window.
	frames[5] = mocks.SolidFrame(3, 3, 50)
	src := mocks.NewFrameSource(240, frames...)

	result, err := f.stage.Execute(context.Background(), pipeline.ResampleInput{Source: src, Config: testConfig()})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if f.resizer.Calls != 0 {
		t.Errorf("resizer called %d times, want 0 for an unchanged resolution", f.resizer.Calls)
	}
	if result.BlackFrames != 1 || result.FramesWritten != 2 {
		t.Errorf("BlackFrames = %d FramesWritten = %d, want 1 2", result.BlackFrames, result.FramesWritten)
	}
	fed := f.streaming.Session.Fed
	if len(fed) != 2 || fed[1].Pix[0] != 0 {
		t.Errorf("second output frame should be black, got %d frames", len(fed))
	}
}

func TestExecute_NegativeResolutionFailsToOpen(t *testing.T) {
	f := newFixture()
	stage := New(Backends{Streaming: ffmpegencoder.New(nil, logger.NewNoop())}, f.resizer, nil, nil, logger.NewNoop(), Options{})
	cfg := testConfig()
	cfg.Resolution = "-4x2"
	src := rampSource(240, 8)

	result, err := stage.Execute(context.Background(), pipeline.ResampleInput{Source: src, Config: cfg})
	if !errors.Is(err, ports.ErrEncoderOpenFailed) {
		t.Fatalf("expected ErrEncoderOpenFailed, got %v", err)
	}
	if result.State != StateFailed.String() || result.FramesWritten != 0 {
		t.Errorf("State = %q FramesWritten = %d", result.State, result.FramesWritten)
	}
	if src.Reads != 0 {
		t.Errorf("read %d frames before the encoder opened", src.Reads)
	}
}

func TestExecute_NoResizer(t *testing.T) {
	stage := New(Backends{Streaming: &mocks.EncoderBackend{}}, nil, nil, nil, logger.NewNoop(), Options{})
	cfg := testConfig()
	cfg.Resolution = "2x1"

	if _, err := stage.Execute(context.Background(), pipeline.ResampleInput{Source: rampSource(240, 8), Config: cfg}); !errors.Is(err, ErrNoResizer) {
		t.Errorf("expected ErrNoResizer, got %v", err)
	}
}

func TestExecute_ContextCancelled(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := f.stage.Execute(ctx, pipeline.ResampleInput{Source: rampSource(240, 16), Config: testConfig()})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if !f.streaming.Session.AbortCalled {
		t.Error("session not aborted on cancellation")
	}
	if result.State != StateFailed.String() {
		t.Errorf("State = %q, want failed", result.State)
	}
}

type fallbackSession struct {
	mocks.EncoderSession
}

func (s *fallbackSession) FallbackUsed() bool { return true }

func TestExecute_ReportsFallback(t *testing.T) {
	f := newFixture()
	sess := &fallbackSession{EncoderSession: mocks.EncoderSession{Name: "libx264"}}
	f.streaming.OpenFunc = func(ctx context.Context, opts ports.EncoderOptions) (ports.EncoderSession, error) {
		return sess, nil
	}
	cfg := testConfig()
	cfg.Encoder.Encoder = "h264_nvenc"

	result, err := f.stage.Execute(context.Background(), pipeline.ResampleInput{Source: rampSource(240, 8), Config: cfg})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !result.FallbackUsed || result.Encoder != "libx264" {
		t.Errorf("Encoder = %q FallbackUsed = %v", result.Encoder, result.FallbackUsed)
	}
}

func TestRollingTimer(t *testing.T) {
	timer := newRollingTimer(3)
	steps := []struct {
		add  time.Duration
		want time.Duration
	}{
		{add: 30 * time.Millisecond, want: 30 * time.Millisecond},
		{add: 10 * time.Millisecond, want: 20 * time.Millisecond},
		{add: 20 * time.Millisecond, want: 20 * time.Millisecond},
		{add: 60 * time.Millisecond, want: 30 * time.Millisecond},
	}
	for i, s := range steps {
		if got := timer.add(s.add); got != s.want {
			t.Errorf("step %d: average = %s, want %s", i, got, s.want)
		}
	}
}

func TestProgressAt(t *testing.T) {
	p := progressAt(10, 110, 50*time.Millisecond)
	if math.Abs(p.FPS-20) > 1e-9 {
		t.Errorf("FPS = %f, want 20", p.FPS)
	}
	if p.Remaining != 5*time.Second {
		t.Errorf("Remaining = %s, want 5s", p.Remaining)
	}
	if p := progressAt(3, 0, time.Millisecond); p.Remaining != 0 {
		t.Errorf("Remaining = %s for unknown total", p.Remaining)
	}
}

func TestStateString(t *testing.T) {
	if StateStreaming.String() != "streaming" || State(99).String() != "unknown" {
		t.Error("unexpected state names")
	}
}
