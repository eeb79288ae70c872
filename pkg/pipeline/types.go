package pipeline

import (
	"time"

	"github.com/user/resampler/pkg/plan"
	"github.com/user/resampler/pkg/ports"
)

// =============================================================================
// Colour Fix Stage Types
// =============================================================================

// ColourFixInput names the source video to correct in place.
type ColourFixInput struct {
	InputPath string
}

// ColourFixResult describes the corrected source and the original kept aside.
type ColourFixResult struct {
	// SourcePath is the corrected file to decode (same path as the input).
	SourcePath string
	// OriginalPath holds the untouched original (to-fix_<name>) until it is restored.
	OriginalPath string
	Elapsed      time.Duration
}

// =============================================================================
// Resample Stage Types
// =============================================================================

// ResampleConfig holds the settings of one resampling run.
type ResampleConfig struct {
	OutputPath string  // encoder target, normally the no-audio_ intermediate
	OutputFPS  int     // default: 60
	BlendMode  string  // default: EQUAL
	BlendRange float64 // default: 1.0
	Resolution string  // "<w>x<h>" or UNCHANGED (default)

	// UseExternalEncoder selects the ffmpeg process backend instead of the frame writer.
	UseExternalEncoder bool
	Encoder            ports.EncoderSettings

	// AssumeYes continues past a non-divisible frame rate without asking.
	AssumeYes bool
}

// DefaultResampleConfig returns ResampleConfig with default values.
func DefaultResampleConfig() ResampleConfig {
	return ResampleConfig{
		OutputFPS:  60,
		BlendMode:  "EQUAL",
		BlendRange: 1.0,
		Resolution: plan.Unchanged,
		Encoder: ports.EncoderSettings{
			Encoder:     "libx264",
			Preset:      "medium",
			Quality:     18,
			PixelFormat: "yuv420p",
			CodecTag:    "MJPG",
		},
	}
}

// ResampleInput is a decoded source and the run settings.
type ResampleInput struct {
	Source ports.FrameSource
	Config ResampleConfig
}

// ResampleResult reports what the resample stage produced.
type ResampleResult struct {
	Plan    plan.Plan
	Weights []float64

	// Encoder is the encoder or codec tag actually used.
	Encoder      string
	FallbackUsed bool

	FramesWritten int
	// EarlyStop is set when the source ended before the planned frame count.
	EarlyStop bool
	// BlackFrames counts blends replaced by a black frame after a shape mismatch.
	BlackFrames int

	// State is the last state of the run ("done" on success).
	State   string
	Elapsed time.Duration
}

// =============================================================================
// Mux Stage Types
// =============================================================================

// MuxInput names the encoded video, the file to take audio from, and the final output.
type MuxInput struct {
	VideoPath       string
	AudioSourcePath string
	OutputPath      string
}

// MuxResult contains the final output path.
type MuxResult struct {
	OutputPath string
	Elapsed    time.Duration
}
