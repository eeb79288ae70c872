package main

import (
	"os"

	"github.com/ideamans/go-l10n"

	"github.com/user/resampler/pkg/adapters/mp4inspect"
	"github.com/user/resampler/pkg/config"
	"github.com/user/resampler/pkg/orchestrator"
	"github.com/user/resampler/pkg/ports"
	"github.com/user/resampler/pkg/summarizer"
)

func newSummaryWriter(fs ports.FileSystem) *summarizer.Writer {
	formatter := summarizer.NewMarkdownFormatter(
		summarizer.WithTranslator(l10n.T),
		summarizer.WithVersion(toolName+" "+version),
	)
	return summarizer.NewWriter(formatter, fs)
}

// inspectOutput reads the size of the final file and, for MP4 containers, its video track.
func inspectOutput(path string, log ports.Logger) summarizer.OutputInfo {
	out := summarizer.OutputInfo{Path: path}
	if info, err := os.Stat(path); err == nil {
		out.FileSize = info.Size()
	}
	if !mp4inspect.Supported(path) {
		return out
	}

	info, err := mp4inspect.Inspect(path)
	if err != nil {
		log.Debug("Could not inspect %s: %s", path, err)
		return out
	}
	out.Inspected = true
	out.Codec = info.Codec
	out.Width = info.Width
	out.Height = info.Height
	out.Samples = info.Samples
	out.Duration = info.Duration
	out.HasAudio = info.HasAudio
	log.Info("Output video: %s %dx%d, %d frames, audio: %t", info.Codec, info.Width, info.Height, info.Samples, info.HasAudio)
	return out
}

func buildSummary(s config.Settings, result orchestrator.RunResult, output summarizer.OutputInfo, runErr error) *summarizer.Summary {
	settings := summarizer.Settings{
		OutputFPS:  s.Framerate,
		BlendMode:  s.BlendMode,
		BlendRange: s.BlendRange,
		Resolution: s.Resolution,
		ColourFix:  s.ColourFix,
		Backend:    "frame writer",
		Encoder:    s.FourCC,
	}
	if s.UseFFmpegEncoder {
		settings.Backend = "ffmpeg"
		settings.Encoder = s.Encoder.Encoder
		settings.Preset = s.Encoder.Preset
		settings.CRF = s.Encoder.CRF
	}

	r := result.Resample
	b := summarizer.NewBuilder().
		WithSource(summarizer.SourceInfo{
			Path:       result.InputPath,
			Width:      result.Source.Width,
			Height:     result.Source.Height,
			FPS:        result.Source.FPS,
			FrameCount: result.Source.FrameCount,
		}).
		WithSettings(settings).
		WithResample(summarizer.ResampleInfo{
			Width:             r.Plan.OutputSize.Width,
			Height:            r.Plan.OutputSize.Height,
			InputFPS:          r.Plan.InputFPS,
			OutputFPS:         r.Plan.OutputFPS,
			FPSRatio:          r.Plan.FPSRatio,
			BlendedFrameCount: r.Plan.BlendedFrameCount,
			Weights:           r.Weights,
			PlannedFrames:     r.Plan.OutputFrameCount,
			FramesWritten:     r.FramesWritten,
			EarlyStop:         r.EarlyStop,
			BlackFrames:       r.BlackFrames,
			Encoder:           r.Encoder,
			FallbackUsed:      r.FallbackUsed,
			Elapsed:           r.Elapsed,
		}).
		WithFailure(runErr, result.FailedArtifact)
	if runErr == nil {
		b.WithOutput(output)
	}
	return b.Build()
}
