package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// sweep generates a sine whose frequency glides linearly from start to end over its duration
type sweep struct {
	rate       beep.SampleRate
	start, end float64
	phase      float64
	position   int
	total      int
}

// NewSweep creates a finite gliding tone
func NewSweep(start, end float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sweep{rate: rate, start: start, end: end, total: rate.N(duration)}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.total {
			return i, i > 0
		}
		progress := float64(s.position) / float64(s.total)
		freq := s.start + (s.end-s.start)*progress

		val := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// decay scales a stream by gain with an exponential fade
type decay struct {
	streamer beep.Streamer
	gain     float64
	tau      float64 // samples per e-fold
	position int
}

// NewDecay applies gain and an exponential release with the given time constant
func NewDecay(s beep.Streamer, gain float64, timeConstant time.Duration, rate beep.SampleRate) beep.Streamer {
	return &decay{streamer: s, gain: gain, tau: float64(rate.N(timeConstant))}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := d.gain
		if d.tau > 0 {
			vol *= math.Exp(-float64(d.position) / d.tau)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// noise is deterministic white noise for clicks, xorshift keeps it allocation free
type noise struct {
	state    uint64
	position int
	total    int
}

// NewNoise creates a finite burst of white noise
func NewNoise(duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &noise{state: 0x9e3779b97f4a7c15, total: rate.N(duration)}
}

func (n *noise) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if n.position >= n.total {
			return i, i > 0
		}
		n.state ^= n.state << 13
		n.state ^= n.state >> 7
		n.state ^= n.state << 17
		val := float64(n.state>>11)/(1<<53)*2 - 1
		samples[i][0] = val
		samples[i][1] = val
		n.position++
	}
	return len(samples), true
}

func (n *noise) Err() error { return nil }
