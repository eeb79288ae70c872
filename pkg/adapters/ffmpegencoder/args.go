// Package ffmpegencoder streams raw frames into an external ffmpeg encoder process.
package ffmpegencoder

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/user/resampler/pkg/ports"
)

// DefaultEncoder is substituted when the requested encoder is unavailable.
const DefaultEncoder = "libx264"

var (
	presetEncoders = []string{"libx264", "libx265", "h264_nvenc", "hevc_nvenc", "h264_qsv", "hevc_qsv"}
	crfEncoders    = []string{"libx264", "libx265"}
	nvencEncoders  = []string{"h264_nvenc", "hevc_nvenc"}
	qsvEncoders    = []string{"h264_qsv", "hevc_qsv"}
)

// DefaultSettings returns libx264, preset medium, CRF 18, yuv420p.
func DefaultSettings() ports.EncoderSettings {
	return ports.EncoderSettings{
		Encoder:     DefaultEncoder,
		Preset:      "medium",
		Quality:     18,
		PixelFormat: "yuv420p",
	}
}

// withDefaults fills empty string settings. Quality is kept as given since 0 is a valid CRF.
func withDefaults(s ports.EncoderSettings) ports.EncoderSettings {
	d := DefaultSettings()
	if s.Encoder == "" {
		s.Encoder = d.Encoder
	}
	if s.Preset == "" {
		s.Preset = d.Preset
	}
	if s.PixelFormat == "" {
		s.PixelFormat = d.PixelFormat
	}
	return s
}

// BuildArgs returns the ffmpeg arguments that read packed RGB24 frames of
// the given size from stdin and encode them to output.
func BuildArgs(width, height, fps int, s ports.EncoderSettings, output string) []string {
	s = withDefaults(s)
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-vcodec", "rawvideo",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-pix_fmt", "rgb24",
		"-r", strconv.Itoa(fps),
		"-i", "-",
		"-c:v", s.Encoder,
	}

	if slices.Contains(presetEncoders, s.Encoder) {
		args = append(args, "-preset", s.Preset)
	}

	quality := strconv.Itoa(s.Quality)
	switch {
	case slices.Contains(crfEncoders, s.Encoder):
		args = append(args, "-crf", quality)
	case slices.Contains(nvencEncoders, s.Encoder):
		args = append(args, "-cq", quality)
	case slices.Contains(qsvEncoders, s.Encoder):
		args = append(args, "-global_quality", quality)
	case s.Encoder == "h264_amf":
		args = append(args, "-quality", "quality", "-qp_i", quality)
	}

	args = append(args, "-pix_fmt", s.PixelFormat)
	args = append(args, s.ExtraParams...)
	return append(args, output)
}
