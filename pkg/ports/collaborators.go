package ports

import (
	"context"
	"time"
)

// Muxer combines the video of one file with the audio of another.
type Muxer interface {
	Mux(ctx context.Context, videoPath, audioSourcePath, outputPath string) error
}

// ColourFixer re-encodes a video with a fixed colour-matrix correction.
type ColourFixer interface {
	Fix(ctx context.Context, srcPath, dstPath string) error
}

// Confirmer asks whether to continue past a non-fatal warning.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// Progress is a throughput snapshot of the streaming loop.
type Progress struct {
	Index           int           // output frames written so far
	Total           int           // expected output frames, 0 when unknown
	SecondsPerFrame float64       // rolling average
	FPS             float64       // 1 / SecondsPerFrame
	Remaining       time.Duration // SecondsPerFrame * frames remaining
}

// ProgressReporter receives throughput updates from the streaming loop.
type ProgressReporter interface {
	Start(total int)
	Update(p Progress)
	Finish()
}
