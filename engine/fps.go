package engine

import "time"

// FPSCounter averages the presentation rate over a sliding window of frame intervals
type FPSCounter struct {
	intervals []time.Duration
	next      int
	filled    int
	sum       time.Duration
}

func NewFPSCounter(window int) *FPSCounter {
	if window < 1 {
		window = 1
	}
	return &FPSCounter{intervals: make([]time.Duration, window)}
}

// Record adds one frame interval; zero intervals are ignored
func (c *FPSCounter) Record(d time.Duration) {
	if d <= 0 {
		return
	}
	c.sum -= c.intervals[c.next]
	c.intervals[c.next] = d
	c.sum += d
	c.next = (c.next + 1) % len(c.intervals)
	if c.filled < len(c.intervals) {
		c.filled++
	}
}

// FPS returns frames per second over the window, 0 before the first interval
func (c *FPSCounter) FPS() float64 {
	if c.filled == 0 || c.sum <= 0 {
		return 0
	}
	return float64(c.filled) / c.sum.Seconds()
}
