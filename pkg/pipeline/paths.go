package pipeline

import "path/filepath"

const (
	// NoAudioPrefix marks the encoder output before audio is copied in.
	NoAudioPrefix = "no-audio_"
	// ToFixPrefix marks the original source kept aside during a colour fix.
	ToFixPrefix = "to-fix_"
)

// SiblingPath returns prefix+base(path) in the directory of path.
func SiblingPath(path, prefix string) string {
	return filepath.Join(filepath.Dir(path), prefix+filepath.Base(path))
}
