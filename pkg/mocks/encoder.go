package mocks

import (
	"context"

	"github.com/user/resampler/pkg/ports"
)

// EncoderBackend is a mock implementation of ports.EncoderBackend.
// Every Open returns Session (created on first use).
type EncoderBackend struct {
	OpenFunc func(ctx context.Context, opts ports.EncoderOptions) (ports.EncoderSession, error)
	Session  *EncoderSession

	// Recorded calls for verification
	OpenCalls []ports.EncoderOptions
}

func (m *EncoderBackend) Open(ctx context.Context, opts ports.EncoderOptions) (ports.EncoderSession, error) {
	m.OpenCalls = append(m.OpenCalls, opts)
	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, opts)
	}
	if m.Session == nil {
		m.Session = &EncoderSession{}
	}
	if m.Session.Name == "" {
		m.Session.Name = opts.Settings.Encoder
	}
	return m.Session, nil
}

// EncoderSession is a mock implementation of ports.EncoderSession that keeps
// copies of every fed frame.
type EncoderSession struct {
	Name         string
	FeedFunc     func(frame ports.Frame) error
	FinalizeFunc func() error

	// Recorded calls for verification
	Fed            []ports.Frame
	FinalizeCalled bool
	AbortCalled    bool
}

func (m *EncoderSession) Feed(frame ports.Frame) error {
	if m.FeedFunc != nil {
		if err := m.FeedFunc(frame); err != nil {
			return err
		}
	}
	pix := make([]byte, len(frame.Pix))
	copy(pix, frame.Pix)
	m.Fed = append(m.Fed, ports.Frame{Width: frame.Width, Height: frame.Height, Pix: pix})
	return nil
}

func (m *EncoderSession) Finalize() error {
	m.FinalizeCalled = true
	if m.FinalizeFunc != nil {
		return m.FinalizeFunc()
	}
	return nil
}

func (m *EncoderSession) Abort() {
	m.AbortCalled = true
}

func (m *EncoderSession) Encoder() string {
	return m.Name
}

// EncoderProber is a mock implementation of ports.EncoderProber.
type EncoderProber struct {
	Available []string
	Err       error

	Calls int
}

func (m *EncoderProber) Encoders(ctx context.Context) ([]string, error) {
	m.Calls++
	return m.Available, m.Err
}

var (
	_ ports.EncoderBackend = (*EncoderBackend)(nil)
	_ ports.EncoderSession = (*EncoderSession)(nil)
	_ ports.EncoderProber  = (*EncoderProber)(nil)
)
