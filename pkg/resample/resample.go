// Package resample drives the decode, window, blend and encode loop that
// turns a high frame rate source into a lower frame rate output.
package resample

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/user/resampler/pkg/blend"
	"github.com/user/resampler/pkg/pipeline"
	"github.com/user/resampler/pkg/plan"
	"github.com/user/resampler/pkg/ports"
	"github.com/user/resampler/pkg/weights"
	"github.com/user/resampler/pkg/window"
)

var (
	// ErrAborted is returned when the user declines to continue past a warning.
	ErrAborted = errors.New("resample: aborted by user")

	// ErrNoBackend is returned when the selected encoder backend is not configured.
	ErrNoBackend = errors.New("resample: encoder backend not configured")

	// ErrNoResizer is returned when the output size differs from the source and no resizer is set.
	ErrNoResizer = errors.New("resample: resizer required for a resolution change")
)

// DefaultRollingWindow is the number of iterations averaged for the rate estimate.
const DefaultRollingWindow = 15

// Config is the configuration of one run.
type Config = pipeline.ResampleConfig

// Backends holds the two encoder backends. UseExternalEncoder picks Streaming,
// otherwise Writer is used.
type Backends struct {
	Streaming ports.EncoderBackend
	Writer    ports.EncoderBackend
}

// Options tunes the loop.
type Options struct {
	// Workers is the blend parallelism; 0 uses all CPUs.
	Workers int
	// RollingWindow is the number of iterations averaged for progress; 0 uses DefaultRollingWindow.
	RollingWindow int
}

// fallbackReporter is implemented by sessions that may substitute the requested encoder.
type fallbackReporter interface {
	FallbackUsed() bool
}

// Stage resamples a frame source into an encoder session.
type Stage struct {
	backends  Backends
	resizer   ports.Resizer
	confirmer ports.Confirmer
	progress  ports.ProgressReporter
	logger    ports.Logger
	opts      Options
	now       func() time.Time
}

// New creates a resample stage. confirmer and progress may be nil; without a
// confirmer a non-divisible frame rate is declined unless AssumeYes is set.
func New(backends Backends, resizer ports.Resizer, confirmer ports.Confirmer, progress ports.ProgressReporter, logger ports.Logger, opts Options) *Stage {
	if opts.RollingWindow <= 0 {
		opts.RollingWindow = DefaultRollingWindow
	}
	return &Stage{
		backends:  backends,
		resizer:   resizer,
		confirmer: confirmer,
		progress:  progress,
		logger:    logger,
		opts:      opts,
		now:       time.Now,
	}
}

// run carries the per-execution state.
type run struct {
	s       *Stage
	state   State
	result  pipeline.ResampleResult
	session ports.EncoderSession
	start   time.Time
}

func (r *run) enter(next State) {
	r.s.logger.Debug("State %s -> %s", r.state, next)
	r.state = next
	r.result.State = next.String()
}

func (r *run) fail(err error) (pipeline.ResampleResult, error) {
	if r.session != nil {
		r.session.Abort()
	}
	r.s.logger.Debug("Failed while %s: %v", r.state, err)
	r.state = StateFailed
	r.result.State = StateFailed.String()
	r.result.Elapsed = r.s.now().Sub(r.start)
	return r.result, err
}

// Execute runs the state machine Validating, Filling, Streaming, Finalizing, Done.
// Any failure after the encoder session is opened aborts the session.
func (s *Stage) Execute(ctx context.Context, input pipeline.ResampleInput) (pipeline.ResampleResult, error) {
	r := &run{s: s, start: s.now()}
	r.enter(StateValidating)

	cfg := input.Config
	if input.Source == nil {
		return r.fail(errors.New("resample: no source"))
	}
	info := input.Source.Info()

	p, err := plan.New(plan.Params{
		InputSize:       plan.Size{Width: info.Width, Height: info.Height},
		InputFPS:        info.FPS,
		InputFrameCount: info.FrameCount,
		OutputFPS:       cfg.OutputFPS,
		BlendRange:      cfg.BlendRange,
		Resolution:      cfg.Resolution,
	})
	if err != nil {
		return r.fail(err)
	}
	r.result.Plan = p
	s.logger.Info("Input %s at %d fps, output %s at %d fps", p.InputSize, p.InputFPS, p.OutputSize, p.OutputFPS)

	if p.NeedsResize() && s.resizer == nil {
		return r.fail(ErrNoResizer)
	}
	if !p.Divisible {
		if err := s.confirmMismatch(p, cfg.AssumeYes); err != nil {
			return r.fail(err)
		}
	}

	w, err := weights.Generate(cfg.BlendMode, p.BlendedFrameCount)
	if err != nil {
		return r.fail(err)
	}
	r.result.Weights = w
	s.logger.Info("Blending %d frames per output frame (%s, ratio %d)", p.BlendedFrameCount, cfg.BlendMode, p.FPSRatio)

	backend := s.backends.Writer
	if cfg.UseExternalEncoder {
		backend = s.backends.Streaming
	}
	if backend == nil {
		return r.fail(ErrNoBackend)
	}
	session, err := backend.Open(ctx, ports.EncoderOptions{
		OutputPath: cfg.OutputPath,
		Width:      p.OutputSize.Width,
		Height:     p.OutputSize.Height,
		FPS:        p.OutputFPS,
		Settings:   cfg.Encoder,
	})
	if err != nil {
		return r.fail(fmt.Errorf("open encoder: %w", err))
	}
	r.session = session
	r.result.Encoder = session.Encoder()
	if fr, ok := session.(fallbackReporter); ok {
		r.result.FallbackUsed = fr.FallbackUsed()
	}
	s.logger.Info("Encoding with %s", r.result.Encoder)

	engine := blend.NewEngine(p.OutputSize.Width, p.OutputSize.Height, s.logger, s.opts.Workers)
	// Without a resolution change a wrong-sized frame is a decode fault and
	// must reach the blend as a mismatch rather than be rescaled.
	var resizer ports.Resizer
	if p.NeedsResize() {
		resizer = s.resizer
	}
	win := window.New(input.Source, resizer, p.BlendedFrameCount, p.OutputSize)

	r.enter(StateFilling)
	if err := win.Fill(ctx); err != nil {
		return r.fail(fmt.Errorf("fill window: %w", err))
	}
	if err := r.emit(engine, win, w); err != nil {
		return r.fail(err)
	}

	r.enter(StateStreaming)
	if err := r.stream(ctx, engine, win, w); err != nil {
		return r.fail(err)
	}

	r.enter(StateFinalizing)
	r.result.BlackFrames = int(engine.Mismatches())
	if err := session.Finalize(); err != nil {
		r.session = nil
		return r.fail(err)
	}
	r.session = nil

	r.enter(StateDone)
	r.result.Elapsed = s.now().Sub(r.start)
	s.logger.Info("Wrote %d frames in %s", r.result.FramesWritten, r.result.Elapsed.Round(time.Millisecond))
	return r.result, nil
}

func (s *Stage) confirmMismatch(p plan.Plan, assumeYes bool) error {
	s.logger.Warn("Input fps %d is not divisible by output fps %d, audio may drift out of sync", p.InputFPS, p.OutputFPS)
	if assumeYes {
		return nil
	}
	if s.confirmer == nil {
		return ErrAborted
	}
	ok, err := s.confirmer.Confirm("Continue?")
	if err != nil {
		return fmt.Errorf("confirm: %w", err)
	}
	if !ok {
		return ErrAborted
	}
	return nil
}

// emit blends the current window and feeds the result.
func (r *run) emit(engine *blend.Engine, win *window.Window, w []float64) error {
	frame, _ := engine.Blend(win.Frames(), w)
	if err := r.session.Feed(frame); err != nil {
		return fmt.Errorf("feed frame %d: %w", r.result.FramesWritten, err)
	}
	r.result.FramesWritten++
	return nil
}

// stream produces output frames 1..OutputFrameCount-1, or until the source
// ends when the length is unknown.
func (r *run) stream(ctx context.Context, engine *blend.Engine, win *window.Window, w []float64) error {
	s := r.s
	p := r.result.Plan
	timer := newRollingTimer(s.opts.RollingWindow)

	if s.progress != nil {
		s.progress.Start(p.OutputFrameCount)
		defer s.progress.Finish()
	}

	for i := 1; p.OutputFrameCount == 0 || i < p.OutputFrameCount; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		started := s.now()

		if err := win.Advance(ctx, p.FPSRatio); err != nil {
			if errors.Is(err, window.ErrInsufficientFrames) {
				if p.OutputFrameCount > 0 {
					r.result.EarlyStop = true
					s.logger.Warn("Source ended after %d of %d output frames", r.result.FramesWritten, p.OutputFrameCount)
				}
				return nil
			}
			return err
		}
		if err := r.emit(engine, win, w); err != nil {
			return err
		}

		if s.progress != nil {
			avg := timer.add(s.now().Sub(started))
			s.progress.Update(progressAt(i, p.OutputFrameCount, avg))
		}
	}
	return nil
}

func progressAt(i, total int, avg time.Duration) ports.Progress {
	pr := ports.Progress{
		Index:           i,
		Total:           total,
		SecondsPerFrame: avg.Seconds(),
	}
	if avg > 0 {
		pr.FPS = 1 / avg.Seconds()
	}
	if total > i {
		pr.Remaining = avg * time.Duration(total-i)
	}
	return pr
}

var _ pipeline.Stage[pipeline.ResampleInput, pipeline.ResampleResult] = (*Stage)(nil)
