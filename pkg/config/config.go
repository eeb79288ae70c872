// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/user/resampler/pkg/orchestrator"
	"github.com/user/resampler/pkg/pipeline"
	"github.com/user/resampler/pkg/plan"
	"github.com/user/resampler/pkg/ports"
	"github.com/user/resampler/pkg/weights"
	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingSetting is returned when a required setting is absent.
	ErrMissingSetting = errors.New("config: missing required setting")

	// ErrInvalidSetting is returned when a setting has an unusable value.
	ErrInvalidSetting = errors.New("config: invalid setting")
)

// DefaultFileNames are searched, in order, when no settings file is given.
var DefaultFileNames = []string{"settings.json", "settings.yaml", "settings.yml"}

// requiredKeys must be present in a settings file.
var requiredKeys = []string{"framerate", "blend_mode", "blend_range", "resolution", "fourcc", "cv_colourfix"}

// Settings represents the full configuration for a resampling run.
// JSON settings files are read by the YAML decoder as well.
type Settings struct {
	// Input/Output, set from the command line
	InputPath  string `yaml:"-"`
	OutputPath string `yaml:"-"`

	// Resampling
	Framerate  int     `yaml:"framerate"`
	BlendMode  string  `yaml:"blend_mode"`
	BlendRange float64 `yaml:"blend_range"`
	Resolution string  `yaml:"resolution"`
	ColourFix  bool    `yaml:"cv_colourfix"`
	AssumeYes  bool    `yaml:"assume_yes"`

	// Frame writer
	FourCC       string `yaml:"fourcc"`
	MJPEGQuality int    `yaml:"mjpeg_quality"`

	// External encoder
	UseFFmpegEncoder bool            `yaml:"use_ffmpeg_encoder"`
	Encoder          EncoderSettings `yaml:"encoder_settings"`

	// Resizing
	ScaleKernel string `yaml:"scale_kernel"`

	// Drag and drop
	OutputSuffix    string `yaml:"output_suffix"`
	OutputExtension string `yaml:"output_extension"`

	// Tools and logging
	FFmpegPath string `yaml:"ffmpeg_path"`
	LogLevel   string `yaml:"log_level"`
}

// EncoderSettings configures the external ffmpeg encoder.
type EncoderSettings struct {
	Encoder     string   `yaml:"encoder"`
	Preset      string   `yaml:"preset"`
	CRF         int      `yaml:"crf"`
	PixelFormat string   `yaml:"pixel_format"`
	ExtraParams []string `yaml:"extra_params"`
}

// Defaults returns Settings with default values.
func Defaults() Settings {
	return Settings{
		Framerate:  60,
		BlendMode:  string(weights.Equal),
		BlendRange: 1.0,
		Resolution: plan.Unchanged,

		FourCC:       "MJPG",
		MJPEGQuality: 95,

		Encoder: EncoderSettings{
			Encoder:     "libx264",
			Preset:      "medium",
			CRF:         18,
			PixelFormat: "yuv420p",
		},

		ScaleKernel: "bilinear",

		OutputSuffix:    "_resampled",
		OutputExtension: ".mp4",

		LogLevel: "info",
	}
}

// LoadFromFile loads settings from a JSON or YAML file on top of Defaults.
// The keys the original settings.json always carried must be present.
func LoadFromFile(path string) (Settings, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	var keys map[string]any
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	for _, key := range requiredKeys {
		if _, ok := keys[key]; !ok {
			return cfg, fmt.Errorf("%w: %s in %s", ErrMissingSetting, key, path)
		}
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// FindFile returns the first DefaultFileNames entry found in dirs, or "".
func FindFile(dirs ...string) string {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		for _, name := range DefaultFileNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}
	}
	return ""
}

// DragAndDropOutput derives the output name from the input by replacing
// its extension with suffix+extension.
func DragAndDropOutput(input, suffix, extension string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix + extension
}

// Validate reports the first setting that would stop a run before any processing starts.
func (s Settings) Validate() error {
	if s.InputPath == "" {
		return fmt.Errorf("%w: input", ErrMissingSetting)
	}
	if s.OutputPath == "" {
		return fmt.Errorf("%w: output", ErrMissingSetting)
	}
	if filepath.Clean(s.InputPath) == filepath.Clean(s.OutputPath) {
		return fmt.Errorf("%w: output %s would overwrite the input", ErrInvalidSetting, s.OutputPath)
	}
	if s.Framerate <= 0 {
		return fmt.Errorf("%w: framerate %d", ErrInvalidSetting, s.Framerate)
	}
	if s.BlendRange <= 0 {
		return fmt.Errorf("%w: blend_range %g", ErrInvalidSetting, s.BlendRange)
	}
	if _, err := weights.ParseMode(s.BlendMode); err != nil {
		return err
	}
	if _, err := plan.ResolveResolution(plan.Size{}, s.Resolution); err != nil {
		return err
	}
	if s.MJPEGQuality < 0 || s.MJPEGQuality > 100 {
		return fmt.Errorf("%w: mjpeg_quality %d", ErrInvalidSetting, s.MJPEGQuality)
	}
	if _, err := ports.ParseLogLevel(s.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %w", ErrInvalidSetting, err)
	}
	return nil
}

// ToResampleConfig converts Settings to pipeline.ResampleConfig.
func (s Settings) ToResampleConfig() pipeline.ResampleConfig {
	return pipeline.ResampleConfig{
		OutputPath:         s.OutputPath,
		OutputFPS:          s.Framerate,
		BlendMode:          strings.ToUpper(s.BlendMode),
		BlendRange:         s.BlendRange,
		Resolution:         s.Resolution,
		UseExternalEncoder: s.UseFFmpegEncoder,
		Encoder: ports.EncoderSettings{
			Encoder:     s.Encoder.Encoder,
			Preset:      s.Encoder.Preset,
			Quality:     s.Encoder.CRF,
			PixelFormat: s.Encoder.PixelFormat,
			ExtraParams: s.Encoder.ExtraParams,
			CodecTag:    s.FourCC,
		},
		AssumeYes: s.AssumeYes,
	}
}

// ToOrchestratorConfig converts Settings to orchestrator.Config.
func (s Settings) ToOrchestratorConfig() orchestrator.Config {
	return orchestrator.Config{
		InputPath:  s.InputPath,
		OutputPath: s.OutputPath,
		ColourFix:  s.ColourFix,
		Resample:   s.ToResampleConfig(),
	}
}
