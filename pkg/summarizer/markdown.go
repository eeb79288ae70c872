package summarizer

import (
	"fmt"
	"strings"
	"time"
)

// MarkdownFormatter renders a Summary as a Markdown document.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the function used to translate labels.
func WithTranslator(t func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = t
	}
}

// WithVersion adds the tool version to the footer.
func WithVersion(v string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = v
	}
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Resampling Summary"))
	if s.Failure != nil {
		fmt.Fprintf(&b, "> **%s**: %s\n", t("Failed"), firstLine(s.Failure.Error))
		if s.Failure.Artifact != "" {
			fmt.Fprintf(&b, ">\n> %s: `%s`\n", t("Intermediate file kept"), s.Failure.Artifact)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## %s\n\n", t("Source"))
	f.table(&b, [][2]string{
		{t("File"), code(s.Source.Path)},
		{t("Resolution"), size(s.Source.Width, s.Source.Height)},
		{t("Frame Rate"), fmt.Sprintf("%.3f fps", s.Source.FPS)},
		{t("Frames"), countOrUnknown(s.Source.FrameCount, t)},
	})

	fmt.Fprintf(&b, "## %s\n\n", t("Settings"))
	rows := [][2]string{
		{t("Output Frame Rate"), fmt.Sprintf("%d fps", s.Settings.OutputFPS)},
		{t("Blend Mode"), s.Settings.BlendMode},
		{t("Blend Range"), fmt.Sprintf("%.2f", s.Settings.BlendRange)},
		{t("Resolution"), s.Settings.Resolution},
		{t("Colour Fix"), yesNo(s.Settings.ColourFix, t)},
		{t("Backend"), s.Settings.Backend},
		{t("Encoder"), s.Settings.Encoder},
	}
	if s.Settings.Preset != "" {
		rows = append(rows,
			[2]string{t("Preset"), s.Settings.Preset},
			[2]string{t("Quality"), fmt.Sprintf("%d", s.Settings.CRF)},
		)
	}
	f.table(&b, rows)

	r := s.Resample
	fmt.Fprintf(&b, "## %s\n\n", t("Resampling"))
	encoder := r.Encoder
	if r.FallbackUsed {
		encoder += fmt.Sprintf(" (%s)", t("fallback"))
	}
	rows = [][2]string{
		{t("Output Resolution"), size(r.Width, r.Height)},
		{t("Frame Rate"), fmt.Sprintf("%d → %d fps", r.InputFPS, r.OutputFPS)},
		{t("Frames per Output Frame"), fmt.Sprintf("%d", r.FPSRatio)},
		{t("Blended Frames"), fmt.Sprintf("%d", r.BlendedFrameCount)},
		{t("Weights"), formatWeights(r.Weights)},
		{t("Frames Written"), framesWritten(r, t)},
		{t("Encoder Used"), encoder},
		{t("Elapsed"), r.Elapsed.Round(time.Millisecond).String()},
	}
	if r.BlackFrames > 0 {
		rows = append(rows, [2]string{t("Black Frames"), fmt.Sprintf("%d", r.BlackFrames)})
	}
	f.table(&b, rows)

	if s.Output.Path != "" {
		fmt.Fprintf(&b, "## %s\n\n", t("Output"))
		rows = [][2]string{
			{t("File"), code(s.Output.Path)},
			{t("File Size"), formatBytes(s.Output.FileSize)},
		}
		if s.Output.Inspected {
			rows = append(rows,
				[2]string{t("Codec"), s.Output.Codec},
				[2]string{t("Resolution"), size(s.Output.Width, s.Output.Height)},
				[2]string{t("Samples"), fmt.Sprintf("%d", s.Output.Samples)},
				[2]string{t("Duration"), s.Output.Duration.Round(time.Millisecond).String()},
				[2]string{t("Audio"), yesNo(s.Output.HasAudio, t)},
			)
		}
		f.table(&b, rows)
	}

	b.WriteString("---\n\n")
	footer := fmt.Sprintf("%s %s", t("Generated at"), s.GeneratedAt.Format(time.RFC3339))
	if f.version != "" {
		footer += " · " + f.version
	}
	b.WriteString(footer + "\n")
	return b.String()
}

func (f *MarkdownFormatter) table(b *strings.Builder, rows [][2]string) {
	fmt.Fprintf(b, "| %s | %s |\n", f.translate("Item"), f.translate("Value"))
	b.WriteString("|---|---|\n")
	for _, row := range rows {
		fmt.Fprintf(b, "| %s | %s |\n", row[0], row[1])
	}
	b.WriteString("\n")
}

func framesWritten(r ResampleInfo, t func(string) string) string {
	s := fmt.Sprintf("%d", r.FramesWritten)
	if r.PlannedFrames > 0 {
		s += fmt.Sprintf(" / %d", r.PlannedFrames)
	}
	if r.EarlyStop {
		s += fmt.Sprintf(" (%s)", t("source ended early"))
	}
	return s
}

func formatWeights(w []float64) string {
	parts := make([]string, len(w))
	for i, v := range w {
		parts[i] = fmt.Sprintf("%.3f", v)
	}
	return strings.Join(parts, ", ")
}

func formatBytes(n int64) string {
	switch {
	case n >= 1024*1024*1024:
		return fmt.Sprintf("%.2f GB", float64(n)/(1024*1024*1024))
	case n >= 1024*1024:
		return fmt.Sprintf("%.2f MB", float64(n)/(1024*1024))
	case n >= 1024:
		return fmt.Sprintf("%.2f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func size(w, h int) string {
	return fmt.Sprintf("%dx%d", w, h)
}

func code(s string) string {
	return "`" + s + "`"
}

func countOrUnknown(n int, t func(string) string) string {
	if n <= 0 {
		return t("unknown")
	}
	return fmt.Sprintf("%d", n)
}

func yesNo(v bool, t func(string) string) string {
	if v {
		return t("yes")
	}
	return t("no")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
