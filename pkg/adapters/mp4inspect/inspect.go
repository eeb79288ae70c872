// Package mp4inspect reads track metadata from finished MP4 files.
package mp4inspect

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Eyevinn/mp4ff/mp4"
)

// ErrNoVideoTrack is returned when the file has no video track.
var ErrNoVideoTrack = errors.New("mp4inspect: no video track")

// Info describes the video track of an MP4 file.
type Info struct {
	Codec    string // sample entry type: avc1, hvc1, av01, ...
	Width    int
	Height   int
	Samples  int // 0 for fragmented files
	Duration time.Duration
	HasAudio bool
}

// Supported reports whether path has an extension this package can read.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".m4v", ".mov":
		return true
	}
	return false
}

// Inspect opens path and reads its video track.
func Inspect(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return InspectReader(f)
}

// InspectReader reads the video track from an MP4 stream.
func InspectReader(r io.ReadSeeker) (Info, error) {
	file, err := mp4.DecodeFile(r)
	if err != nil {
		return Info{}, fmt.Errorf("decode mp4: %w", err)
	}

	var moov *mp4.MoovBox
	switch {
	case file.Moov != nil:
		moov = file.Moov
	case file.Init != nil && file.Init.Moov != nil:
		moov = file.Init.Moov
	default:
		return Info{}, ErrNoVideoTrack
	}

	var info Info
	found := false
	for _, trak := range moov.Traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil {
			continue
		}
		switch trak.Mdia.Hdlr.HandlerType {
		case "soun":
			info.HasAudio = true
		case "vide":
			if !found {
				found = true
				readVideoTrack(trak, &info)
			}
		}
	}
	if !found {
		return Info{}, ErrNoVideoTrack
	}
	return info, nil
}

func readVideoTrack(trak *mp4.TrakBox, info *Info) {
	if mdhd := trak.Mdia.Mdhd; mdhd != nil && mdhd.Timescale > 0 {
		info.Duration = time.Duration(float64(mdhd.Duration) / float64(mdhd.Timescale) * float64(time.Second))
	}
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil {
		return
	}
	stbl := trak.Mdia.Minf.Stbl
	if stbl.Stsz != nil {
		info.Samples = int(stbl.Stsz.SampleNumber)
	}
	if stbl.Stsd == nil {
		return
	}
	for _, child := range stbl.Stsd.Children {
		if vse, ok := child.(*mp4.VisualSampleEntryBox); ok {
			info.Codec = vse.Type()
			info.Width = int(vse.Width)
			info.Height = int(vse.Height)
			return
		}
	}
}
