package ports

import (
	"image"
	"image/draw"
)

// BytesPerPixel is the sample count of a packed RGB24 pixel.
const BytesPerPixel = 3

// Frame is a decoded raster in packed RGB24 order (row-major, 8-bit samples).
// Frames are treated as immutable once produced.
type Frame struct {
	Width  int
	Height int
	Pix    []byte
}

// NewFrame allocates a zero-filled (black) frame.
func NewFrame(width, height int) Frame {
	return Frame{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*BytesPerPixel),
	}
}

// Valid reports whether Pix holds exactly Width*Height pixels.
func (f Frame) Valid() bool {
	return f.Width > 0 && f.Height > 0 && len(f.Pix) == f.Width*f.Height*BytesPerPixel
}

// SameShape reports whether the frame has the given dimensions and a matching buffer.
func (f Frame) SameShape(width, height int) bool {
	return f.Width == width && f.Height == height && f.Valid()
}

// Image converts the frame to an RGBA image.
func (f Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for i, j := 0, 0; i+2 < len(f.Pix) && j+3 < len(img.Pix); i, j = i+3, j+4 {
		img.Pix[j] = f.Pix[i]
		img.Pix[j+1] = f.Pix[i+1]
		img.Pix[j+2] = f.Pix[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}

// FrameFromImage packs any image into an RGB24 frame.
func FrameFromImage(img image.Image) Frame {
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) || rgba.Stride != b.Dx()*4 {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}

	f := NewFrame(b.Dx(), b.Dy())
	for i, j := 0, 0; j+2 < len(f.Pix); i, j = i+4, j+3 {
		f.Pix[j] = rgba.Pix[i]
		f.Pix[j+1] = rgba.Pix[i+1]
		f.Pix[j+2] = rgba.Pix[i+2]
	}
	return f
}
