package ffmpegdecoder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/user/resampler/pkg/adapters/ffmpegcmd"
	"github.com/user/resampler/pkg/ports"
)

var (
	// ErrNoVideoStream is returned when ffprobe reports no video stream.
	ErrNoVideoStream = errors.New("ffmpegdecoder: no video stream")

	// ErrInvalidRate is returned for a frame rate that is not "num/den" or a number.
	ErrInvalidRate = errors.New("ffmpegdecoder: invalid frame rate")
)

type probeStream struct {
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	RFrameRate   string `json:"r_frame_rate"`
	AvgFrameRate string `json:"avg_frame_rate"`
	NbFrames     string `json:"nb_frames"`
	Duration     string `json:"duration"`
}

type probeOutput struct {
	Streams []probeStream `json:"streams"`
	Format  struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe reads the first video stream's properties with ffprobe.
func Probe(ctx context.Context, path string) (ports.SourceInfo, error) {
	out, err := ffmpegcmd.Probe(ctx,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height,r_frame_rate,avg_frame_rate,nb_frames,duration:format=duration",
		"-of", "json",
		path,
	)
	if err != nil {
		return ports.SourceInfo{}, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	return ParseProbe(out)
}

// ParseProbe converts ffprobe JSON output into SourceInfo. The frame count
// falls back to duration × fps when the container omits nb_frames.
func ParseProbe(data []byte) (ports.SourceInfo, error) {
	var out probeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return ports.SourceInfo{}, fmt.Errorf("parse ffprobe output: %w", err)
	}
	if len(out.Streams) == 0 {
		return ports.SourceInfo{}, ErrNoVideoStream
	}
	s := out.Streams[0]

	fps, err := ParseRate(s.RFrameRate)
	if err != nil || fps == 0 {
		if fps, err = ParseRate(s.AvgFrameRate); err != nil {
			return ports.SourceInfo{}, err
		}
	}

	info := ports.SourceInfo{
		Width:  s.Width,
		Height: s.Height,
		FPS:    fps,
	}

	if n, err := strconv.Atoi(s.NbFrames); err == nil && n > 0 {
		info.FrameCount = n
		return info, nil
	}
	for _, d := range []string{s.Duration, out.Format.Duration} {
		if seconds, err := strconv.ParseFloat(d, 64); err == nil && seconds > 0 {
			info.FrameCount = int(math.Round(seconds * fps))
			break
		}
	}
	return info, nil
}

// ParseRate parses "30000/1001" or "60" into frames per second.
func ParseRate(rate string) (float64, error) {
	num, den, found := strings.Cut(strings.TrimSpace(rate), "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRate, rate)
	}
	if !found {
		return n, nil
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRate, rate)
	}
	return n / d, nil
}
