package ports

import (
	"context"
)

// EncoderSettings selects and tunes the external encoder.
type EncoderSettings struct {
	Encoder     string   // encoder identifier, e.g. libx264, h264_nvenc
	Preset      string   // encoder preset, e.g. medium
	Quality     int      // CRF or the encoder's equivalent quality value
	PixelFormat string   // output pixel format, e.g. yuv420p
	ExtraParams []string // appended verbatim before the output path
	CodecTag    string   // FOURCC for frame writers, e.g. MJPG
}

// EncoderOptions configures one encoder session.
type EncoderOptions struct {
	OutputPath string
	Width      int
	Height     int
	FPS        int
	Settings   EncoderSettings
}

// EncoderBackend opens encoder sessions that turn frames into a video file.
type EncoderBackend interface {
	Open(ctx context.Context, opts EncoderOptions) (EncoderSession, error)
}

// EncoderSession is an open handle to an encoding backend.
// It is owned by a single caller between Open and Finalize.
type EncoderSession interface {
	// Feed appends one frame to the output.
	Feed(frame Frame) error

	// Finalize flushes the output and releases the session.
	Finalize() error

	// Abort releases the session without completing the output.
	Abort()

	// Encoder returns the encoder identifier actually in use.
	Encoder() string
}

// EncoderProber lists the encoder identifiers an external tool supports.
type EncoderProber interface {
	Encoders(ctx context.Context) ([]string, error)
}
