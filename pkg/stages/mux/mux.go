// Package mux implements the stage that copies the source audio into the
// resampled video.
package mux

import (
	"context"
	"fmt"
	"time"

	"github.com/user/resampler/pkg/pipeline"
	"github.com/user/resampler/pkg/ports"
)

// Stage muxes and then removes the intermediate video.
type Stage struct {
	muxer  ports.Muxer
	fs     ports.FileSystem
	logger ports.Logger
}

// NewStage creates a new mux stage.
func NewStage(muxer ports.Muxer, fs ports.FileSystem, logger ports.Logger) *Stage {
	return &Stage{
		muxer:  muxer,
		fs:     fs,
		logger: logger.WithComponent("mux"),
	}
}

// Execute writes OutputPath from VideoPath and the audio of AudioSourcePath.
// VideoPath is removed only after a successful mux.
func (s *Stage) Execute(ctx context.Context, input pipeline.MuxInput) (pipeline.MuxResult, error) {
	start := time.Now()

	if err := s.muxer.Mux(ctx, input.VideoPath, input.AudioSourcePath, input.OutputPath); err != nil {
		return pipeline.MuxResult{}, err
	}
	if err := s.fs.Remove(input.VideoPath); err != nil {
		return pipeline.MuxResult{}, fmt.Errorf("remove intermediate %s: %w", input.VideoPath, err)
	}

	result := pipeline.MuxResult{
		OutputPath: input.OutputPath,
		Elapsed:    time.Since(start),
	}
	s.logger.Debug("Muxed %s in %s", input.OutputPath, result.Elapsed.Round(time.Millisecond))
	return result, nil
}

var _ pipeline.Stage[pipeline.MuxInput, pipeline.MuxResult] = (*Stage)(nil)
