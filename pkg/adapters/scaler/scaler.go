// Package scaler resizes frames with golang.org/x/image/draw.
package scaler

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/draw"

	"github.com/user/resampler/pkg/ports"
)

// ErrUnknownKernel is returned for an unsupported interpolation name.
var ErrUnknownKernel = errors.New("scaler: unknown interpolation")

// Kernels maps interpolation names to x/image scalers.
var Kernels = map[string]draw.Scaler{
	"nearest":    draw.NearestNeighbor,
	"bilinear":   draw.BiLinear,
	"catmullrom": draw.CatmullRom,
}

// Scaler implements ports.Resizer.
type Scaler struct {
	kernel draw.Scaler
}

// New returns a bilinear Scaler.
func New() *Scaler {
	return &Scaler{kernel: draw.BiLinear}
}

// NewWithKernel returns a Scaler using the named interpolation.
func NewWithKernel(name string) (*Scaler, error) {
	k, ok := Kernels[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKernel, name)
	}
	return &Scaler{kernel: k}, nil
}

// Resize scales frame to width x height. A frame already at that size is returned as is.
func (s *Scaler) Resize(frame ports.Frame, width, height int) ports.Frame {
	if frame.SameShape(width, height) {
		return frame
	}
	src := frame.Image()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	s.kernel.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return ports.FrameFromImage(dst)
}

var _ ports.Resizer = (*Scaler)(nil)
