// Package ffmpegmux runs the ffmpeg post-passes around resampling: copying
// the source audio into the output and correcting the colour matrix.
package ffmpegmux

import (
	"context"
	"fmt"
	"strings"

	"github.com/user/resampler/pkg/adapters/ffmpegcmd"
	"github.com/user/resampler/pkg/ports"
)

// ColourFilter converts BT.601 to BT.709 and lifts green gamma slightly.
const ColourFilter = "colormatrix=bt601:bt709,eq=gamma_g=0.97"

// Muxer copies the video stream of one file and the audio of another into a new file.
type Muxer struct {
	logger ports.Logger
}

// NewMuxer creates a Muxer.
func NewMuxer(logger ports.Logger) *Muxer {
	return &Muxer{logger: logger.WithComponent("mux")}
}

// MuxArgs builds the stream-copy arguments. The audio map is optional so a
// silent source still produces an output.
func MuxArgs(videoPath, audioSourcePath, outputPath string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", videoPath,
		"-i", audioSourcePath,
		"-map", "0:v",
		"-map", "1:a?",
		"-c", "copy",
		outputPath,
	}
}

// Mux runs ffmpeg with MuxArgs.
func (m *Muxer) Mux(ctx context.Context, videoPath, audioSourcePath, outputPath string) error {
	args := MuxArgs(videoPath, audioSourcePath, outputPath)
	m.logger.Debug("Running ffmpeg %s", strings.Join(args, " "))
	if err := ffmpegcmd.Run(ctx, args...); err != nil {
		return fmt.Errorf("mux audio into %s: %w", outputPath, err)
	}
	return nil
}

// ColourFixer re-encodes a video through ColourFilter at near-lossless quality.
type ColourFixer struct {
	logger ports.Logger
}

// NewColourFixer creates a ColourFixer.
func NewColourFixer(logger ports.Logger) *ColourFixer {
	return &ColourFixer{logger: logger.WithComponent("colourfix")}
}

// ColourFixArgs builds the colour-correction arguments.
func ColourFixArgs(srcPath, dstPath string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", srcPath,
		"-vcodec", "libx264",
		"-preset", "ultrafast",
		"-crf", "1",
		"-vf", ColourFilter,
		"-c:a", "copy",
		dstPath,
	}
}

// Fix runs ffmpeg with ColourFixArgs.
func (c *ColourFixer) Fix(ctx context.Context, srcPath, dstPath string) error {
	args := ColourFixArgs(srcPath, dstPath)
	c.logger.Debug("Running ffmpeg %s", strings.Join(args, " "))
	if err := ffmpegcmd.Run(ctx, args...); err != nil {
		return fmt.Errorf("colour fix %s: %w", srcPath, err)
	}
	return nil
}

var (
	_ ports.Muxer       = (*Muxer)(nil)
	_ ports.ColourFixer = (*ColourFixer)(nil)
)
