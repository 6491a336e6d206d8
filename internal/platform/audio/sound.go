// Package audio plays short synthesized cues for game events.
// Every cue is generated on the fly; there are no sample files.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Sound identifies a cue.
type Sound int

const (
	SoundRotate   Sound = iota // A rotation was accepted
	SoundRejected              // A move or rotation did not fit
	SoundLock                  // A piece settled
	SoundClear                 // Rows were removed
	SoundGameOver              // The stack reached the top
)

func (s Sound) String() string {
	switch s {
	case SoundRotate:
		return "rotate"
	case SoundRejected:
		return "rejected"
	case SoundLock:
		return "lock"
	case SoundClear:
		return "clear"
	case SoundGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// note is one tone in a cue.
type note struct {
	freq float64
	dur  time.Duration
	wave waveType
}

var cues = map[Sound][]note{
	SoundRotate:   {{freq: 660, dur: 40 * time.Millisecond, wave: waveSine}},
	SoundRejected: {{freq: 110, dur: 80 * time.Millisecond, wave: waveSaw}},
	SoundLock:     {{freq: 220, dur: 50 * time.Millisecond, wave: waveSquare}},
	SoundClear: {
		{freq: 523.25, dur: 60 * time.Millisecond, wave: waveSine},
		{freq: 659.25, dur: 60 * time.Millisecond, wave: waveSine},
		{freq: 783.99, dur: 90 * time.Millisecond, wave: waveSine},
	},
	SoundGameOver: {
		{freq: 392, dur: 150 * time.Millisecond, wave: waveSquare},
		{freq: 311.13, dur: 150 * time.Millisecond, wave: waveSquare},
		{freq: 261.63, dur: 300 * time.Millisecond, wave: waveSquare},
	},
}

// Duration returns how long a cue plays.
func Duration(s Sound) time.Duration {
	var total time.Duration
	for _, n := range cues[s] {
		total += n.dur
	}
	return total
}

// Streamer builds a fresh, finite streamer for a cue scaled to volume
// (0 silences it, 1 is full scale). It returns nil for unknown sounds.
func Streamer(s Sound, volume float64) beep.Streamer {
	notes, ok := cues[s]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, newEnvelope(newOscillator(n.freq, n.dur, n.wave), n.dur, 5*time.Millisecond))
	}
	return newVolume(beep.Seq(parts...), volume)
}

func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(math.Min(vol, 1))}
}

// SoundBox owns the speaker and mixes cues into it.
// A nil or uninitialized SoundBox ignores Play.
type SoundBox struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewSoundBox creates a sound box; call Init before playing.
func NewSoundBox(volume float64) *SoundBox {
	return &SoundBox{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Init opens the audio device.
func (b *SoundBox) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(b.mixer)
	b.initialized = true
	return nil
}

// Play queues a cue. It never blocks on the device.
func (b *SoundBox) Play(s Sound) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	st := Streamer(s, b.volume)
	if st == nil {
		return
	}
	speaker.Lock()
	b.mixer.Add(st)
	speaker.Unlock()
}

// Close silences pending cues and releases the device.
func (b *SoundBox) Close() {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	b.initialized = false
}
