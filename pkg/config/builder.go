package config

import "strings"

// Builder applies command-line overrides on top of loaded Settings.
type Builder struct {
	settings Settings
}

// NewBuilder creates a Builder starting from base.
func NewBuilder(base Settings) *Builder {
	return &Builder{settings: base}
}

// Build returns the final Settings with names normalised.
func (b *Builder) Build() Settings {
	s := b.settings
	s.BlendMode = strings.ToUpper(strings.TrimSpace(s.BlendMode))
	s.Resolution = strings.TrimSpace(s.Resolution)
	if s.Encoder.ExtraParams != nil {
		s.Encoder.ExtraParams = append([]string(nil), s.Encoder.ExtraParams...)
	}
	return s
}

// WithInput sets the source video path.
func (b *Builder) WithInput(path string) *Builder {
	b.settings.InputPath = path
	return b
}

// WithOutput sets the output video path.
func (b *Builder) WithOutput(path string) *Builder {
	b.settings.OutputPath = path
	return b
}

// WithDragAndDrop sets the input and derives the output from the
// configured suffix and extension.
func (b *Builder) WithDragAndDrop(input string) *Builder {
	b.settings.InputPath = input
	b.settings.OutputPath = DragAndDropOutput(input, b.settings.OutputSuffix, b.settings.OutputExtension)
	return b
}

// WithFramerate sets the output frame rate.
func (b *Builder) WithFramerate(fps int) *Builder {
	b.settings.Framerate = fps
	return b
}

// WithBlendMode sets the weighting mode.
func (b *Builder) WithBlendMode(mode string) *Builder {
	b.settings.BlendMode = mode
	return b
}

// WithBlendRange sets the blend range.
func (b *Builder) WithBlendRange(r float64) *Builder {
	b.settings.BlendRange = r
	return b
}

// WithResolution sets the output resolution ("<w>x<h>" or UNCHANGED).
func (b *Builder) WithResolution(res string) *Builder {
	b.settings.Resolution = res
	return b
}

// WithFourCC sets the frame writer codec tag.
func (b *Builder) WithFourCC(tag string) *Builder {
	b.settings.FourCC = tag
	return b
}

// WithColourFix enables the colour-matrix correction of the source.
func (b *Builder) WithColourFix(enabled bool) *Builder {
	b.settings.ColourFix = enabled
	return b
}

// WithEncoder selects an ffmpeg encoder. Naming an encoder implies the external encoder backend.
func (b *Builder) WithEncoder(encoder string) *Builder {
	b.settings.Encoder.Encoder = encoder
	b.settings.UseFFmpegEncoder = true
	return b
}

// WithPreset sets the encoder preset.
func (b *Builder) WithPreset(preset string) *Builder {
	b.settings.Encoder.Preset = preset
	return b
}

// WithCRF sets the encoder quality value.
func (b *Builder) WithCRF(crf int) *Builder {
	b.settings.Encoder.CRF = crf
	return b
}

// WithAssumeYes continues past frame-rate warnings without asking.
func (b *Builder) WithAssumeYes(yes bool) *Builder {
	b.settings.AssumeYes = yes
	return b
}

// WithFFmpegPath sets a custom ffmpeg binary.
func (b *Builder) WithFFmpegPath(path string) *Builder {
	b.settings.FFmpegPath = path
	return b
}

// WithLogLevel sets the log level name.
func (b *Builder) WithLogLevel(level string) *Builder {
	b.settings.LogLevel = level
	return b
}
