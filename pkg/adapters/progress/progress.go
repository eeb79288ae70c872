// Package progress reports streaming throughput to the user.
package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/user/resampler/pkg/ports"
)

// Bar draws a terminal progress bar.
type Bar struct {
	out io.Writer
	bar *progressbar.ProgressBar
}

// NewBar creates a Bar writing to stderr.
func NewBar() *Bar {
	return NewBarWithWriter(os.Stderr)
}

// NewBarWithWriter creates a Bar writing to out.
func NewBarWithWriter(out io.Writer) *Bar {
	return &Bar{out: out}
}

// Start creates the bar. An unknown total shows a spinner.
func (b *Bar) Start(total int) {
	n := total
	if n <= 0 {
		n = -1
	}
	b.bar = progressbar.NewOptions(n,
		progressbar.OptionSetWriter(b.out),
		progressbar.OptionSetDescription("Resampling"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(b.out) }),
	)
}

// Update moves the bar to p.Index and shows the rolling rate and ETA.
func (b *Bar) Update(p ports.Progress) {
	if b.bar == nil {
		return
	}
	desc := fmt.Sprintf("Resampling %.2f fps", p.FPS)
	if p.Total > 0 {
		desc += fmt.Sprintf(" ETA %s", p.Remaining.Round(time.Second))
	}
	b.bar.Describe(desc)
	b.bar.Set(p.Index)
}

// Finish completes the bar.
func (b *Bar) Finish() {
	if b.bar == nil {
		return
	}
	b.bar.Finish()
}

// Log writes a progress line through the logger every few percent.
type Log struct {
	logger ports.Logger
	step   int
	next   int
}

// NewLog creates a Log reporter.
func NewLog(logger ports.Logger) *Log {
	return &Log{logger: logger.WithComponent("progress")}
}

// Start sets the reporting step to 5% of total, or every 100 frames when unknown.
func (l *Log) Start(total int) {
	l.step = 100
	if total > 0 {
		l.step = max(total/20, 1)
	}
	l.next = l.step
}

// Update logs once each step is reached.
func (l *Log) Update(p ports.Progress) {
	if l.step == 0 || p.Index < l.next {
		return
	}
	for l.next <= p.Index {
		l.next += l.step
	}
	if p.Total > 0 {
		l.logger.Info("Frame %d/%d, %.2f fps, ETA %s", p.Index, p.Total, p.FPS, p.Remaining.Round(time.Second))
		return
	}
	l.logger.Info("Frame %d, %.2f fps", p.Index, p.FPS)
}

// Finish does nothing; the run summary follows.
func (l *Log) Finish() {}

var (
	_ ports.ProgressReporter = (*Bar)(nil)
	_ ports.ProgressReporter = (*Log)(nil)
)
