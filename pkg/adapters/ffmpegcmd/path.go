// Package ffmpegcmd locates and runs the ffmpeg command-line tools.
package ffmpegcmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

var (
	// ErrFFmpegNotFound is returned when no ffmpeg binary can be located.
	ErrFFmpegNotFound = errors.New("ffmpegcmd: ffmpeg not found")

	// ErrFFprobeNotFound is returned when no ffprobe binary can be located.
	ErrFFprobeNotFound = errors.New("ffmpegcmd: ffprobe not found")
)

var (
	pathMu           sync.RWMutex
	customFFmpegPath string
)

// SetFFmpegPath overrides the ffmpeg lookup. An empty path restores the default search.
func SetFFmpegPath(path string) {
	pathMu.Lock()
	defer pathMu.Unlock()
	customFFmpegPath = path
}

// IsAvailable reports whether ffmpeg can be located.
func IsAvailable() bool {
	_, err := FindFFmpeg()
	return err == nil
}

// FindFFmpeg searches for ffmpeg.
// Priority: 1) SetFFmpegPath, 2) FFMPEG_PATH env, 3) PATH, 4) common locations
func FindFFmpeg() (string, error) {
	pathMu.RLock()
	custom := customFFmpegPath
	pathMu.RUnlock()

	if custom != "" {
		if _, err := os.Stat(custom); err == nil {
			return custom, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", ErrFFmpegNotFound, custom)
	}

	if envPath := os.Getenv("FFMPEG_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: FFMPEG_PATH %s not found", ErrFFmpegNotFound, envPath)
	}

	if p, ok := lookup("ffmpeg"); ok {
		return p, nil
	}
	return "", ErrFFmpegNotFound
}

// FindFFprobe prefers the ffprobe installed next to ffmpeg.
func FindFFprobe() (string, error) {
	if ffmpegPath, err := FindFFmpeg(); err == nil {
		dir := filepath.Dir(ffmpegPath)
		name := strings.Replace(filepath.Base(ffmpegPath), "ffmpeg", "ffprobe", 1)
		candidate := filepath.Join(dir, name)
		if candidate != ffmpegPath {
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
	}
	if p, ok := lookup("ffprobe"); ok {
		return p, nil
	}
	return "", ErrFFprobeNotFound
}

func lookup(tool string) (string, bool) {
	execName := tool
	if runtime.GOOS == "windows" {
		execName += ".exe"
	}
	if p, err := exec.LookPath(execName); err == nil {
		return p, true
	}

	var dirs []string
	switch runtime.GOOS {
	case "windows":
		dirs = []string{`C:\ffmpeg\bin`, `C:\Program Files\ffmpeg\bin`, `C:\Program Files (x86)\ffmpeg\bin`}
	case "darwin":
		dirs = []string{"/opt/homebrew/bin", "/usr/local/bin", "/usr/bin"}
	default:
		dirs = []string{"/usr/bin", "/usr/local/bin", "/opt/homebrew/bin", "/snap/bin"}
	}
	for _, d := range dirs {
		p := filepath.Join(d, execName)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}
