package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

type waveType int

const (
	waveSine waveType = iota
	waveSquare
	waveSaw
)

// oscillator generates a fixed-length raw wave.
type oscillator struct {
	freq     float64
	phase    float64
	position int
	length   int
	wave     waveType
}

func newOscillator(freq float64, dur time.Duration, wave waveType) beep.Streamer {
	return &oscillator{freq: freq, length: sampleRate.N(dur), wave: wave}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case waveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case waveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case waveSaw:
			val = 2 * (o.phase - 0.5)
		}

		samples[i][0] = val * 0.5
		samples[i][1] = val * 0.5

		o.phase += o.freq / float64(sampleRate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a streamer in and out over ramp to avoid clicks.
type envelope struct {
	streamer beep.Streamer
	position int
	total    int
	ramp     int
}

func newEnvelope(s beep.Streamer, dur, ramp time.Duration) beep.Streamer {
	return &envelope{streamer: s, total: sampleRate.N(dur), ramp: sampleRate.N(ramp)}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.ramp > 0 {
			if e.position < e.ramp {
				vol = float64(e.position) / float64(e.ramp)
			}
			if left := e.total - e.position; left < e.ramp {
				vol = math.Max(float64(left)/float64(e.ramp), 0)
			}
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }
