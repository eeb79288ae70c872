package ffmpegcmd

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// DiagnosticLines is the number of stderr lines kept for error reports.
const DiagnosticLines = 100

// Run executes ffmpeg with args and waits for it. A failure is returned
// with the tail of ffmpeg's stderr.
func Run(ctx context.Context, args ...string) error {
	ffmpegPath, err := FindFFmpeg()
	if err != nil {
		return err
	}

	stderr := NewLastLines(DiagnosticLines)
	cmd := exec.CommandContext(ctx, ffmpegPath, args...)
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		stderr.Close()
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// Output executes ffmpeg with args and returns its stdout.
func Output(ctx context.Context, args ...string) ([]byte, error) {
	ffmpegPath, err := FindFFmpeg()
	if err != nil {
		return nil, err
	}
	return output(ctx, ffmpegPath, args...)
}

// Probe executes ffprobe with args and returns its stdout.
func Probe(ctx context.Context, args ...string) ([]byte, error) {
	ffprobePath, err := FindFFprobe()
	if err != nil {
		return nil, err
	}
	return output(ctx, ffprobePath, args...)
}

func output(ctx context.Context, path string, args ...string) ([]byte, error) {
	stderr := NewLastLines(DiagnosticLines)
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stderr = stderr

	out, err := cmd.Output()
	if err != nil {
		stderr.Close()
		return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}
