package resample

import "time"

// rollingTimer averages the most recent iteration durations.
type rollingTimer struct {
	samples []time.Duration
	next    int
	filled  int
	sum     time.Duration
}

func newRollingTimer(size int) *rollingTimer {
	return &rollingTimer{samples: make([]time.Duration, max(size, 1))}
}

// add records d and returns the average of the filled samples.
func (t *rollingTimer) add(d time.Duration) time.Duration {
	t.sum -= t.samples[t.next]
	t.samples[t.next] = d
	t.sum += d
	t.next = (t.next + 1) % len(t.samples)
	if t.filled < len(t.samples) {
		t.filled++
	}
	return t.sum / time.Duration(t.filled)
}
