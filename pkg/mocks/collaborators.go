package mocks

import (
	"context"

	"github.com/user/resampler/pkg/ports"
)

// Muxer is a mock implementation of ports.Muxer.
type Muxer struct {
	MuxFunc func(ctx context.Context, videoPath, audioSourcePath, outputPath string) error

	Calls []MuxCall
}

// MuxCall records a call to Mux.
type MuxCall struct {
	VideoPath       string
	AudioSourcePath string
	OutputPath      string
}

func (m *Muxer) Mux(ctx context.Context, videoPath, audioSourcePath, outputPath string) error {
	m.Calls = append(m.Calls, MuxCall{videoPath, audioSourcePath, outputPath})
	if m.MuxFunc != nil {
		return m.MuxFunc(ctx, videoPath, audioSourcePath, outputPath)
	}
	return nil
}

// ColourFixer is a mock implementation of ports.ColourFixer.
type ColourFixer struct {
	FixFunc func(ctx context.Context, srcPath, dstPath string) error

	Calls [][2]string
}

func (m *ColourFixer) Fix(ctx context.Context, srcPath, dstPath string) error {
	m.Calls = append(m.Calls, [2]string{srcPath, dstPath})
	if m.FixFunc != nil {
		return m.FixFunc(ctx, srcPath, dstPath)
	}
	return nil
}

// Confirmer is a mock implementation of ports.Confirmer with a fixed answer.
type Confirmer struct {
	Answer bool
	Err    error

	Prompts []string
}

func (m *Confirmer) Confirm(prompt string) (bool, error) {
	m.Prompts = append(m.Prompts, prompt)
	return m.Answer, m.Err
}

// ProgressReporter is a mock implementation of ports.ProgressReporter.
type ProgressReporter struct {
	Total    int
	Updates  []ports.Progress
	Finished bool
}

func (m *ProgressReporter) Start(total int) {
	m.Total = total
}

func (m *ProgressReporter) Update(p ports.Progress) {
	m.Updates = append(m.Updates, p)
}

func (m *ProgressReporter) Finish() {
	m.Finished = true
}

var (
	_ ports.Muxer            = (*Muxer)(nil)
	_ ports.ColourFixer      = (*ColourFixer)(nil)
	_ ports.Confirmer        = (*Confirmer)(nil)
	_ ports.ProgressReporter = (*ProgressReporter)(nil)
)
