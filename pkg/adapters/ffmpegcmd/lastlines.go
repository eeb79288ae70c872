package ffmpegcmd

import (
	"bytes"
	"strings"
	"sync"
)

// LastLines is an io.Writer that keeps the last n lines written to it.
// It is used to capture the diagnostic tail of a long-running process
// without buffering its whole stderr.
type LastLines struct {
	mu      sync.Mutex
	partial bytes.Buffer
	lines   []string
	current int
	full    bool
}

// NewLastLines creates a buffer holding at most limit lines.
func NewLastLines(limit int) *LastLines {
	if limit < 1 {
		limit = 1
	}
	return &LastLines{lines: make([]string, limit)}
}

func (l *LastLines) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.partial.Write(p)
	b := l.partial.Bytes()
	pos := 0
	for {
		i := bytes.IndexAny(b[pos:], "\n\r")
		if i < 0 {
			break
		}
		l.add(string(b[pos : pos+i+1]))
		pos += i + 1
	}
	rest := append([]byte(nil), b[pos:]...)
	l.partial.Reset()
	l.partial.Write(rest)

	return len(p), nil
}

// Close flushes a trailing unterminated line.
func (l *LastLines) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.partial.Len() > 0 {
		l.add(l.partial.String())
		l.partial.Reset()
	}
	return nil
}

// String returns the buffered lines oldest first, including any unterminated tail.
func (l *LastLines) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	var sb strings.Builder
	if l.full {
		for _, s := range l.lines[l.current:] {
			sb.WriteString(s)
		}
	}
	for _, s := range l.lines[:l.current] {
		sb.WriteString(s)
	}
	sb.Write(l.partial.Bytes())
	return sb.String()
}

func (l *LastLines) add(line string) {
	l.lines[l.current] = line
	l.current++
	if l.current == len(l.lines) {
		l.current = 0
		l.full = true
	}
}
