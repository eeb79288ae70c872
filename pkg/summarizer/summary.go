package summarizer

import "time"

// Summary contains all data collected during a resampling run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	Source   SourceInfo
	Settings Settings
	Resample ResampleInfo
	Output   OutputInfo

	// Failure is set when the run did not complete.
	Failure *FailureInfo
}

// SourceInfo describes the input video.
type SourceInfo struct {
	Path       string
	Width      int
	Height     int
	FPS        float64
	FrameCount int // 0 when unknown
}

// Settings contains the requested run configuration.
type Settings struct {
	OutputFPS  int
	BlendMode  string
	BlendRange float64
	Resolution string
	ColourFix  bool

	// Backend is "ffmpeg" or "frame writer".
	Backend string
	Encoder string // requested encoder or codec tag
	Preset  string
	CRF     int
}

// ResampleInfo contains what the resampling stage derived and produced.
type ResampleInfo struct {
	Width             int
	Height            int
	InputFPS          int
	OutputFPS         int
	FPSRatio          int
	BlendedFrameCount int
	Weights           []float64

	PlannedFrames int // 0 when the source length is unknown
	FramesWritten int
	EarlyStop     bool
	BlackFrames   int

	Encoder      string // encoder actually used
	FallbackUsed bool
	Elapsed      time.Duration
}

// OutputInfo describes the final file.
type OutputInfo struct {
	Path     string
	FileSize int64

	// Filled from the container when it could be inspected.
	Inspected bool
	Codec     string
	Width     int
	Height    int
	Samples   int
	Duration  time.Duration
	HasAudio  bool
}

// FailureInfo records why a run stopped and what it left behind.
type FailureInfo struct {
	Error    string
	Artifact string // intermediate video kept on disk, if any
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSource sets input video information.
func (b *Builder) WithSource(source SourceInfo) *Builder {
	b.summary.Source = source
	return b
}

// WithSettings sets the run configuration.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithResample sets the resampling results.
func (b *Builder) WithResample(resample ResampleInfo) *Builder {
	b.summary.Resample = resample
	return b
}

// WithOutput sets output file information.
func (b *Builder) WithOutput(output OutputInfo) *Builder {
	b.summary.Output = output
	return b
}

// WithFailure marks the run as failed.
func (b *Builder) WithFailure(err error, artifact string) *Builder {
	if err == nil {
		return b
	}
	b.summary.Failure = &FailureInfo{
		Error:    err.Error(),
		Artifact: artifact,
	}
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
