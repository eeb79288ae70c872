// Package blend computes the weighted average of a frame window.
package blend

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/user/resampler/pkg/ports"
)

// Engine blends windows of frames of a fixed shape.
type Engine struct {
	width      int
	height     int
	logger     ports.Logger
	numWorkers int
	mismatches atomic.Int64
}

// NewEngine creates an engine for frames of the given size. Rows are split
// across numWorkers goroutines; numWorkers <= 0 uses runtime.NumCPU.
func NewEngine(width, height int, logger ports.Logger, numWorkers int) *Engine {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Engine{
		width:      width,
		height:     height,
		logger:     logger.WithComponent("blend"),
		numWorkers: numWorkers,
	}
}

// Blend returns sum(weights[i] * frames[i]) per sample, rounded and clamped
// to 0..255. If the frame and weight counts differ, or any frame does not
// match the engine's shape, it logs the anomaly and returns a black frame
// with ok == false.
func (e *Engine) Blend(frames []ports.Frame, weights []float64) (out ports.Frame, ok bool) {
	if len(frames) == 0 || len(frames) != len(weights) {
		return e.mismatch("Blend input mismatch: %d frames, %d weights", len(frames), len(weights))
	}
	for i, f := range frames {
		if !f.SameShape(e.width, e.height) {
			return e.mismatch("Frame %d has shape %dx%d (%d bytes), expected %dx%d",
				i, f.Width, f.Height, len(f.Pix), e.width, e.height)
		}
	}

	out = ports.NewFrame(e.width, e.height)
	workers := min(e.numWorkers, e.height)
	if workers <= 1 {
		accumulate(out.Pix, frames, weights, 0, len(out.Pix))
		return out, true
	}

	rowBytes := e.width * ports.BytesPerPixel
	rowsPer := (e.height + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < e.height; start += rowsPer {
		end := min(start+rowsPer, e.height)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			accumulate(out.Pix, frames, weights, lo, hi)
		}(start*rowBytes, end*rowBytes)
	}
	wg.Wait()

	return out, true
}

// Mismatches returns how many black frames have been substituted.
func (e *Engine) Mismatches() int {
	return int(e.mismatches.Load())
}

func (e *Engine) mismatch(msg string, args ...interface{}) (ports.Frame, bool) {
	e.mismatches.Add(1)
	e.logger.Warn(msg, args...)
	return ports.NewFrame(e.width, e.height), false
}

// accumulate writes the blended samples in dst[lo:hi].
func accumulate(dst []byte, frames []ports.Frame, weights []float64, lo, hi int) {
	for p := lo; p < hi; p++ {
		var sum float64
		for i, f := range frames {
			sum += weights[i] * float64(f.Pix[p])
		}
		dst[p] = clamp(sum)
	}
}

func clamp(v float64) byte {
	v += 0.5
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return byte(v)
}
