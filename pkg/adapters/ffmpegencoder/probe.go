package ffmpegencoder

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/user/resampler/pkg/adapters/ffmpegcmd"
	"github.com/user/resampler/pkg/ports"
)

/*
Encoders:
 V..... = Video
 A..... = Audio
 ...
 ------
 V....D libx264              libx264 H.264 / AVC / MPEG-4 AVC (codec h264)
*/
var encoderLineRe = regexp.MustCompile(`^\s*[A-Z.]{6,7}\s+(\S+)`)

// Prober lists the encoders of the installed ffmpeg. The list is cached
// after the first successful query.
type Prober struct {
	mu       sync.Mutex
	encoders []string
}

// NewProber creates a new Prober.
func NewProber() *Prober {
	return &Prober{}
}

// Encoders runs "ffmpeg -hide_banner -encoders" and returns the encoder identifiers.
func (p *Prober) Encoders(ctx context.Context) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.encoders != nil {
		return p.encoders, nil
	}

	out, err := ffmpegcmd.Output(ctx, "-hide_banner", "-encoders")
	if err != nil {
		return nil, fmt.Errorf("list encoders: %w", err)
	}
	p.encoders = ParseEncoders(out)
	return p.encoders, nil
}

// ParseEncoders extracts encoder identifiers from "ffmpeg -encoders" output.
func ParseEncoders(out []byte) []string {
	encoders := []string{}
	inList := false
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		if !inList {
			if strings.HasPrefix(strings.TrimSpace(line), "------") {
				inList = true
			}
			continue
		}
		if m := encoderLineRe.FindStringSubmatch(line); m != nil {
			encoders = append(encoders, m[1])
		}
	}
	return encoders
}

var _ ports.EncoderProber = (*Prober)(nil)
