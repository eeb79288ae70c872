// Package orchestrator coordinates all pipeline stages.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/user/resampler/pkg/pipeline"
	"github.com/user/resampler/pkg/ports"
	"github.com/user/resampler/pkg/stages/colourfix"
)

// ErrInputNotFound is returned when the source video does not exist.
var ErrInputNotFound = errors.New("orchestrator: input file not found")

// Config contains all configuration for the orchestrator.
type Config struct {
	InputPath  string
	OutputPath string

	// ColourFix re-encodes the source with a colour-matrix correction before decoding.
	ColourFix bool

	// Resample settings. OutputPath is replaced by the no-audio_ intermediate.
	Resample pipeline.ResampleConfig
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Resample: pipeline.DefaultResampleConfig(),
	}
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	colourFixStage pipeline.Stage[pipeline.ColourFixInput, pipeline.ColourFixResult]
	resampleStage  pipeline.Stage[pipeline.ResampleInput, pipeline.ResampleResult]
	muxStage       pipeline.Stage[pipeline.MuxInput, pipeline.MuxResult]
	decoder        ports.VideoDecoder
	fs             ports.FileSystem
	logger         ports.Logger
}

// New creates a new Orchestrator.
func New(
	colourFixStage pipeline.Stage[pipeline.ColourFixInput, pipeline.ColourFixResult],
	resampleStage pipeline.Stage[pipeline.ResampleInput, pipeline.ResampleResult],
	muxStage pipeline.Stage[pipeline.MuxInput, pipeline.MuxResult],
	decoder ports.VideoDecoder,
	fs ports.FileSystem,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		colourFixStage: colourFixStage,
		resampleStage:  resampleStage,
		muxStage:       muxStage,
		decoder:        decoder,
		fs:             fs,
		logger:         logger,
	}
}

// Run executes the complete pipeline. On every exit path a colour-fixed
// source is restored, and the no-audio_ intermediate is either muxed and
// removed or left in place and named in RunResult.FailedArtifact.
func (o *Orchestrator) Run(ctx context.Context, config Config) (result RunResult, err error) {
	start := time.Now()
	result.InputPath = config.InputPath
	result.OutputPath = config.OutputPath

	exists, err := o.fs.Exists(config.InputPath)
	if err != nil {
		return result, fmt.Errorf("check input: %w", err)
	}
	if !exists {
		return result, fmt.Errorf("%w: %s", ErrInputNotFound, config.InputPath)
	}

	o.logger.Info("Starting pipeline")

	// 1. Colour fix (optional)
	if config.ColourFix {
		o.logger.Info("Fixing colour matrix of %s", config.InputPath)
		fixed, ferr := o.colourFixStage.Execute(ctx, pipeline.ColourFixInput{InputPath: config.InputPath})
		if ferr != nil {
			o.logger.Error("Failed to fix colours: %s", ferr)
			return result, fmt.Errorf("colourfix stage: %w", ferr)
		}
		result.ColourFixed = true
		result.ColourFixElapsed = fixed.Elapsed

		defer func() {
			if rerr := colourfix.Restore(o.fs, fixed); rerr != nil {
				o.logger.Error("Failed to restore original source: %s", rerr)
				err = errors.Join(err, fmt.Errorf("restore source: %w", rerr))
			}
		}()
	}

	// 2. Open the source
	source, err := o.decoder.Open(ctx, config.InputPath)
	if err != nil {
		o.logger.Error("Failed to open source: %s", err)
		return result, fmt.Errorf("open source: %w", err)
	}
	defer source.Close()
	result.Source = source.Info()

	// 3. Resample into the intermediate file
	tempPath := pipeline.SiblingPath(config.OutputPath, pipeline.NoAudioPrefix)
	resampleConfig := config.Resample
	resampleConfig.OutputPath = tempPath

	resampled, err := o.resampleStage.Execute(ctx, pipeline.ResampleInput{
		Source: source,
		Config: resampleConfig,
	})
	result.Resample = resampled
	if err != nil {
		o.keepArtifact(&result, tempPath)
		o.logger.Error("Failed to resample: %s", err)
		return result, fmt.Errorf("resample stage: %w", err)
	}

	// The decoder must release the source before the muxer reads its audio
	// and before a colour-fixed copy is removed.
	source.Close()

	// 4. Copy the audio track
	o.logger.Info("Adding audio from %s", config.InputPath)
	muxed, err := o.muxStage.Execute(ctx, pipeline.MuxInput{
		VideoPath:       tempPath,
		AudioSourcePath: config.InputPath,
		OutputPath:      config.OutputPath,
	})
	if err != nil {
		o.keepArtifact(&result, tempPath)
		o.logger.Error("Failed to add audio: %s", err)
		return result, fmt.Errorf("mux stage: %w", err)
	}
	result.MuxElapsed = muxed.Elapsed
	result.Elapsed = time.Since(start)

	o.logger.Info("Pipeline completed successfully")
	return result, nil
}

func (o *Orchestrator) keepArtifact(result *RunResult, path string) {
	if ok, _ := o.fs.Exists(path); ok {
		result.FailedArtifact = path
		o.logger.Warn("Intermediate file kept: %s", path)
	}
}

// RunResult contains the results of a pipeline run for summary generation.
type RunResult struct {
	InputPath  string
	OutputPath string

	Source ports.SourceInfo

	ColourFixed      bool
	ColourFixElapsed time.Duration

	Resample   pipeline.ResampleResult
	MuxElapsed time.Duration
	Elapsed    time.Duration

	// FailedArtifact is the intermediate video left behind by a failed run.
	FailedArtifact string
}
