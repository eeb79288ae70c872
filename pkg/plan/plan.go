// Package plan resolves the output geometry and frame-rate ratio of a resampling run.
package plan

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unchanged requests the source resolution.
const Unchanged = "UNCHANGED"

var (
	// ErrInvalidResolution is returned for a resolution that is not "<w>x<h>".
	ErrInvalidResolution = errors.New("plan: invalid resolution")

	// ErrUpsamplingNotSupported is returned when the output rate exceeds the input rate.
	ErrUpsamplingNotSupported = errors.New("plan: output fps is higher than input fps")

	// ErrInvalidFrameRate is returned for a non-positive frame rate.
	ErrInvalidFrameRate = errors.New("plan: frame rate must be positive")

	// ErrEmptyBlendWindow is returned when blend range and ratio leave no frame to blend.
	ErrEmptyBlendWindow = errors.New("plan: blend window is empty")
)

// Size is a frame resolution in pixels.
type Size struct {
	Width  int
	Height int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// ResolveResolution returns input for "UNCHANGED" (or an empty request),
// otherwise the parsed "<width>x<height>" token. Magnitudes are not checked.
func ResolveResolution(input Size, requested string) (Size, error) {
	requested = strings.TrimSpace(requested)
	if requested == "" || strings.EqualFold(requested, Unchanged) {
		return input, nil
	}

	parts := strings.Split(strings.ToLower(requested), "x")
	if len(parts) != 2 {
		return Size{}, fmt.Errorf("%w: %q", ErrInvalidResolution, requested)
	}
	w, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Size{}, fmt.Errorf("%w: %q", ErrInvalidResolution, requested)
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Size{}, fmt.Errorf("%w: %q", ErrInvalidResolution, requested)
	}
	return Size{Width: w, Height: h}, nil
}

// Params are the inputs of a plan.
type Params struct {
	InputSize       Size
	InputFPS        float64
	InputFrameCount int // 0 when unknown
	OutputFPS       int
	BlendRange      float64
	Resolution      string
}

// Plan holds the derived parameters of one run.
type Plan struct {
	InputSize  Size
	OutputSize Size
	InputFPS   int
	OutputFPS  int

	// FPSRatio is the number of source frames consumed per output frame.
	FPSRatio int
	// BlendedFrameCount is the window size blended into each output frame.
	BlendedFrameCount int
	// OutputFrameCount is the nominal number of output frames, 0 when the input length is unknown.
	OutputFrameCount int
	// Divisible is false when the input rate is not a multiple of the output rate.
	Divisible bool
}

// NeedsResize reports whether frames must be scaled before blending.
func (p Plan) NeedsResize() bool {
	return p.InputSize != p.OutputSize
}

// New validates params and derives the plan. The input rate is rounded to
// an integer and the ratio is truncated.
func New(p Params) (Plan, error) {
	out, err := ResolveResolution(p.InputSize, p.Resolution)
	if err != nil {
		return Plan{}, err
	}

	inFPS := int(math.Round(p.InputFPS))
	if inFPS <= 0 || p.OutputFPS <= 0 {
		return Plan{}, fmt.Errorf("%w: input %.3f, output %d", ErrInvalidFrameRate, p.InputFPS, p.OutputFPS)
	}
	ratio, err := FPSRatio(inFPS, p.OutputFPS)
	if err != nil {
		return Plan{}, err
	}
	blended, err := BlendedFrameCount(p.BlendRange, ratio)
	if err != nil {
		return Plan{}, err
	}

	return Plan{
		InputSize:         p.InputSize,
		OutputSize:        out,
		InputFPS:          inFPS,
		OutputFPS:         p.OutputFPS,
		FPSRatio:          ratio,
		BlendedFrameCount: blended,
		OutputFrameCount:  OutputFrameCount(p.InputFrameCount, ratio),
		Divisible:         inFPS%p.OutputFPS == 0,
	}, nil
}

// FPSRatio returns inputFPS / outputFPS truncated to an integer.
func FPSRatio(inputFPS, outputFPS int) (int, error) {
	if outputFPS <= 0 {
		return 0, fmt.Errorf("%w: output %d", ErrInvalidFrameRate, outputFPS)
	}
	if outputFPS > inputFPS {
		return 0, fmt.Errorf("%w: %d > %d", ErrUpsamplingNotSupported, outputFPS, inputFPS)
	}
	return inputFPS / outputFPS, nil
}

// BlendedFrameCount returns floor(blendRange * ratio), which must be at least 1.
func BlendedFrameCount(blendRange float64, ratio int) (int, error) {
	n := int(math.Floor(blendRange * float64(ratio)))
	if n < 1 {
		return 0, fmt.Errorf("%w: blend range %.3f with ratio %d", ErrEmptyBlendWindow, blendRange, ratio)
	}
	return n, nil
}

// OutputFrameCount returns floor(inputFrames / ratio).
func OutputFrameCount(inputFrames, ratio int) int {
	if ratio <= 0 || inputFrames <= 0 {
		return 0
	}
	return inputFrames / ratio
}
