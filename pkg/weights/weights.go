// Package weights generates the temporal weight vectors used to blend a frame window.
package weights

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrUnknownBlendMode is returned for a mode outside the supported set.
	ErrUnknownBlendMode = errors.New("weights: unknown blend mode")

	// ErrInvalidWindowSize is returned when the window holds no frames.
	ErrInvalidWindowSize = errors.New("weights: window size must be at least 1")
)

// Mode names a weighting scheme. Index 0 of a weight vector is the oldest frame.
type Mode string

const (
	Equal       Mode = "EQUAL"
	Gaussian    Mode = "GAUSSIAN"
	GaussianSym Mode = "GAUSSIAN_SYM"
	PyramidSym  Mode = "PYRAMID_SYM"
	Ascending   Mode = "ASCENDING"
	Descending  Mode = "DESCENDING"
)

type kernel func(size int) []float64

var kernels = map[Mode]kernel{
	Equal:       equal,
	Gaussian:    gaussian,
	GaussianSym: gaussianSym,
	PyramidSym:  pyramidSym,
	Ascending:   ascending,
	Descending:  descending,
}

// Modes returns the supported modes in a stable order.
func Modes() []Mode {
	return []Mode{Equal, Gaussian, GaussianSym, PyramidSym, Ascending, Descending}
}

// ParseMode matches a mode name case-insensitively.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := kernels[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownBlendMode, s)
	}
	return m, nil
}

// Generate returns a weight vector of the given size that sums to 1.
func Generate(mode string, size int) ([]float64, error) {
	m, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}
	if size < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWindowSize, size)
	}
	if size == 1 {
		return []float64{1.0}, nil
	}
	return normalize(kernels[m](size)), nil
}

func normalize(w []float64) []float64 {
	var sum float64
	for _, v := range w {
		sum += v
	}
	if sum == 0 {
		return equal(len(w))
	}
	for i := range w {
		w[i] /= sum
	}
	return w
}

func equal(size int) []float64 {
	w := make([]float64, size)
	for i := range w {
		w[i] = 1.0 / float64(size)
	}
	return w
}

func sigma(size int) float64 {
	return math.Max(float64(size)/4, 0.5)
}

// gaussianSym peaks at the window centre, the output sample instant.
func gaussianSym(size int) []float64 {
	w := make([]float64, size)
	centre := float64(size-1) / 2
	s := sigma(size)
	for i := range w {
		d := float64(i) - centre
		w[i] = math.Exp(-(d * d) / (2 * s * s))
	}
	return w
}

// gaussian is the trailing half of a Gaussian, peaking at the newest frame.
func gaussian(size int) []float64 {
	w := make([]float64, size)
	s := sigma(size) * 2
	for i := range w {
		d := float64(size - 1 - i)
		w[i] = math.Exp(-(d * d) / (2 * s * s))
	}
	return w
}

func pyramidSym(size int) []float64 {
	w := make([]float64, size)
	for i := range w {
		w[i] = float64(min(i+1, size-i))
	}
	return w
}

func ascending(size int) []float64 {
	w := make([]float64, size)
	for i := range w {
		w[i] = float64(i+1) / float64(size)
	}
	return w
}

func descending(size int) []float64 {
	w := ascending(size)
	for i, j := 0, len(w)-1; i < j; i, j = i+1, j-1 {
		w[i], w[j] = w[j], w[i]
	}
	return w
}
