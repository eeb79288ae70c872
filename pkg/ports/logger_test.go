package ports

import (
	"errors"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	testCases := []struct {
		name     string
		expected LogLevel
		err      error
	}{
		{name: "", expected: LevelInfo},
		{name: "debug", expected: LevelDebug},
		{name: " INFO ", expected: LevelInfo},
		{name: "Warning", expected: LevelWarn},
		{name: "warn", expected: LevelWarn},
		{name: "error", expected: LevelError},
		{name: "quiet", expected: LevelQuiet},
		{name: "verbose", expected: LevelInfo, err: ErrUnknownLogLevel},
	}
	for _, tC := range testCases {
		t.Run(tC.name, func(t *testing.T) {
			got, err := ParseLogLevel(tC.name)
			if !errors.Is(err, tC.err) {
				t.Fatalf("ParseLogLevel(%q) error = %v, want %v", tC.name, err, tC.err)
			}
			if got != tC.expected {
				t.Errorf("ParseLogLevel(%q) = %d, want %d", tC.name, got, tC.expected)
			}
		})
	}
}

func TestLogLevelOrdering(t *testing.T) {
	if !(LevelDebug < LevelInfo && LevelInfo < LevelWarn && LevelWarn < LevelError && LevelError < LevelQuiet) {
		t.Error("levels must be ordered by severity")
	}
}
