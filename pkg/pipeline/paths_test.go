package pipeline

import (
	"path/filepath"
	"testing"
)

func TestSiblingPath(t *testing.T) {
	testCases := []struct {
		path     string
		prefix   string
		expected string
	}{
		{path: "out.mp4", prefix: NoAudioPrefix, expected: "no-audio_out.mp4"},
		{path: filepath.Join("videos", "in.mp4"), prefix: ToFixPrefix, expected: filepath.Join("videos", "to-fix_in.mp4")},
		{path: filepath.Join("a", "b", "c.mkv"), prefix: NoAudioPrefix, expected: filepath.Join("a", "b", "no-audio_c.mkv")},
	}
	for _, tC := range testCases {
		if got := SiblingPath(tC.path, tC.prefix); got != tC.expected {
			t.Errorf("SiblingPath(%q, %q) = %q, want %q", tC.path, tC.prefix, got, tC.expected)
		}
	}
}

func TestDefaultResampleConfig(t *testing.T) {
	cfg := DefaultResampleConfig()
	if cfg.OutputFPS != 60 || cfg.BlendMode != "EQUAL" || cfg.BlendRange != 1.0 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.UseExternalEncoder {
		t.Error("the frame writer is the default backend")
	}
}
