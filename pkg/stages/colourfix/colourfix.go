// Package colourfix implements the stage that corrects the colour matrix of
// the source before it is decoded.
package colourfix

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/user/resampler/pkg/pipeline"
	"github.com/user/resampler/pkg/ports"
)

// Stage moves the source to to-fix_<name> and writes a corrected copy under the original name.
type Stage struct {
	fixer  ports.ColourFixer
	fs     ports.FileSystem
	logger ports.Logger
}

// NewStage creates a new colour fix stage.
func NewStage(fixer ports.ColourFixer, fs ports.FileSystem, logger ports.Logger) *Stage {
	return &Stage{
		fixer:  fixer,
		fs:     fs,
		logger: logger.WithComponent("colourfix"),
	}
}

// Execute renames the input aside and re-encodes it back to the input path.
// On failure the original is moved back before returning.
func (s *Stage) Execute(ctx context.Context, input pipeline.ColourFixInput) (pipeline.ColourFixResult, error) {
	start := time.Now()
	original := pipeline.SiblingPath(input.InputPath, pipeline.ToFixPrefix)

	if exists, err := s.fs.Exists(original); err != nil {
		return pipeline.ColourFixResult{}, err
	} else if exists {
		return pipeline.ColourFixResult{}, fmt.Errorf("colourfix: %s already exists, restore or remove it first", original)
	}

	if err := s.fs.Rename(input.InputPath, original); err != nil {
		return pipeline.ColourFixResult{}, fmt.Errorf("move source aside: %w", err)
	}
	s.logger.Debug("Moved %s to %s", input.InputPath, original)

	result := pipeline.ColourFixResult{
		SourcePath:   input.InputPath,
		OriginalPath: original,
	}
	if err := s.fixer.Fix(ctx, original, input.InputPath); err != nil {
		if rerr := Restore(s.fs, result); rerr != nil {
			return pipeline.ColourFixResult{}, errors.Join(err, rerr)
		}
		return pipeline.ColourFixResult{}, err
	}

	result.Elapsed = time.Since(start)
	s.logger.Debug("Colour fix finished in %s", result.Elapsed.Round(time.Millisecond))
	return result, nil
}

// Restore removes the corrected copy and moves the original back to its name.
func Restore(fs ports.FileSystem, result pipeline.ColourFixResult) error {
	if exists, err := fs.Exists(result.SourcePath); err != nil {
		return err
	} else if exists {
		if err := fs.Remove(result.SourcePath); err != nil {
			return fmt.Errorf("remove corrected copy: %w", err)
		}
	}
	if err := fs.Rename(result.OriginalPath, result.SourcePath); err != nil {
		return fmt.Errorf("restore original %s: %w", result.OriginalPath, err)
	}
	return nil
}

var _ pipeline.Stage[pipeline.ColourFixInput, pipeline.ColourFixResult] = (*Stage)(nil)
