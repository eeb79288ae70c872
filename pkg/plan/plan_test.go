package plan

import (
	"errors"
	"testing"
)

func TestResolveResolution(t *testing.T) {
	input := Size{Width: 1920, Height: 1080}

	tests := []struct {
		requested string
		want      Size
		wantErr   bool
	}{
		{"UNCHANGED", input, false},
		{"unchanged", input, false},
		{"", input, false},
		{"1280x720", Size{1280, 720}, false},
		{"1280X720", Size{1280, 720}, false},
		{"0x0", Size{0, 0}, false},
		{"bogus", Size{}, true},
		{"1280", Size{}, true},
		{"1280x720x3", Size{}, true},
		{"1280xabc", Size{}, true},
		{"x720", Size{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.requested, func(t *testing.T) {
			got, err := ResolveResolution(input, tt.requested)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidResolution) {
					t.Errorf("expected ErrInvalidResolution, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveResolution(%q) = %v, want %v", tt.requested, got, tt.want)
			}
		})
	}
}

func TestNew_240To60(t *testing.T) {
	p, err := New(Params{
		InputSize:       Size{1920, 1080},
		InputFPS:        240,
		InputFrameCount: 1003,
		OutputFPS:       60,
		BlendRange:      1.0,
		Resolution:      "UNCHANGED",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.FPSRatio != 4 {
		t.Errorf("FPSRatio = %d, want 4", p.FPSRatio)
	}
	if p.BlendedFrameCount != 4 {
		t.Errorf("BlendedFrameCount = %d, want 4", p.BlendedFrameCount)
	}
	if p.OutputFrameCount != 250 {
		t.Errorf("OutputFrameCount = %d, want 250", p.OutputFrameCount)
	}
	if !p.Divisible {
		t.Error("expected 240/60 to be divisible")
	}
	if p.NeedsResize() {
		t.Error("expected no resize for UNCHANGED")
	}
}

func TestNew_Upsampling(t *testing.T) {
	_, err := New(Params{
		InputSize:  Size{640, 480},
		InputFPS:   60,
		OutputFPS:  120,
		BlendRange: 1.0,
	})
	if !errors.Is(err, ErrUpsamplingNotSupported) {
		t.Errorf("expected ErrUpsamplingNotSupported, got %v", err)
	}
}

func TestNew_NonDivisible(t *testing.T) {
	p, err := New(Params{
		InputSize:  Size{640, 480},
		InputFPS:   144,
		OutputFPS:  60,
		BlendRange: 1.5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Divisible {
		t.Error("expected 144/60 to be non-divisible")
	}
	if p.FPSRatio != 2 {
		t.Errorf("FPSRatio = %d, want 2", p.FPSRatio)
	}
	if p.BlendedFrameCount != 3 {
		t.Errorf("BlendedFrameCount = %d, want 3", p.BlendedFrameCount)
	}
}

func TestNew_RoundsInputFPS(t *testing.T) {
	p, err := New(Params{
		InputSize:  Size{640, 480},
		InputFPS:   239.76,
		OutputFPS:  60,
		BlendRange: 1.0,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.InputFPS != 240 || p.FPSRatio != 4 || !p.Divisible {
		t.Errorf("unexpected plan for 239.76 fps: %+v", p)
	}
}

func TestNew_EmptyBlendWindow(t *testing.T) {
	_, err := New(Params{
		InputSize:  Size{640, 480},
		InputFPS:   120,
		OutputFPS:  60,
		BlendRange: 0.4,
	})
	if !errors.Is(err, ErrEmptyBlendWindow) {
		t.Errorf("expected ErrEmptyBlendWindow, got %v", err)
	}
}

func TestNew_InvalidFrameRate(t *testing.T) {
	_, err := New(Params{InputSize: Size{640, 480}, InputFPS: 60, OutputFPS: 0, BlendRange: 1})
	if !errors.Is(err, ErrInvalidFrameRate) {
		t.Errorf("expected ErrInvalidFrameRate, got %v", err)
	}
}

func TestNew_Resize(t *testing.T) {
	p, err := New(Params{
		InputSize:  Size{1920, 1080},
		InputFPS:   120,
		OutputFPS:  60,
		BlendRange: 1,
		Resolution: "1280x720",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.NeedsResize() {
		t.Error("expected resize")
	}
	if p.OutputSize.String() != "1280x720" {
		t.Errorf("OutputSize = %s", p.OutputSize)
	}
}

func TestOutputFrameCount_Unknown(t *testing.T) {
	if got := OutputFrameCount(0, 4); got != 0 {
		t.Errorf("OutputFrameCount(0, 4) = %d, want 0", got)
	}
	if got := OutputFrameCount(8, 4); got != 2 {
		t.Errorf("OutputFrameCount(8, 4) = %d, want 2", got)
	}
}
