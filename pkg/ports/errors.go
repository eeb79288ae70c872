package ports

import (
	"errors"
	"fmt"
)

var (
	// ErrEncoderUnavailable is recorded when the requested encoder is missing and a default was substituted.
	ErrEncoderUnavailable = errors.New("encoder unavailable")

	// ErrEncoderOpenFailed is returned when an encoder process cannot be started for the requested output.
	ErrEncoderOpenFailed = errors.New("encoder open failed")

	// ErrEncoderPipeBroken is returned when the encoder process stops accepting input.
	ErrEncoderPipeBroken = errors.New("encoder pipe broken")

	// ErrEncoderExitedNonZero is returned when the encoder process exits with a failure status.
	ErrEncoderExitedNonZero = errors.New("encoder exited with non-zero status")

	// ErrWriterOpenFailed is returned when a frame writer cannot be opened.
	ErrWriterOpenFailed = errors.New("frame writer open failed")
)

// EncoderError carries the diagnostic output of a failed encoder.
type EncoderError struct {
	Kind        error // one of the Err* sentinels above
	Encoder     string
	Diagnostics string
	Err         error // underlying cause, may be nil
}

func (e *EncoderError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Encoder, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Diagnostics != "" {
		msg += "\n" + e.Diagnostics
	}
	return msg
}

// Unwrap exposes both the sentinel and the underlying cause to errors.Is.
func (e *EncoderError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
