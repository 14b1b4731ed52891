// Package audio plays short synthesized cues for machine events: a whoosh
// when the reels start, a click as each reel lands, and a chime once the
// whole spin has finished.
package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave selects an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveNoise
)

// tone is a fixed-length oscillator with an exponential decay.
type tone struct {
	freq     float64
	phase    float64
	decay    float64 // amplitude multiplier per sample
	amp      float64
	position int
	length   int
	wave     Wave
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewTone returns a streamer that plays freq for d, fading out with the
// given half-life.
func NewTone(freq float64, d, halfLife time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	decay := 1.0
	if n := rate.N(halfLife); n > 0 {
		decay = math.Pow(0.5, 1/float64(n))
	}
	return &tone{
		freq:   freq,
		decay:  decay,
		amp:    1,
		length: rate.N(d),
		wave:   wave,
		rate:   rate,
		rng:    rand.New(rand.NewPCG(uint64(freq), uint64(d))),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.length {
			return i, i > 0
		}
		var v float64
		switch t.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			if t.phase < 0.5 {
				v = 1
			} else {
				v = -1
			}
		case WaveNoise:
			v = t.rng.Float64()*2 - 1
		}
		v *= t.amp
		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.amp *= t.decay
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// withVolume scales s linearly; zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Whoosh is a burst of decaying noise.
func Whoosh(rate beep.SampleRate, vol float64) beep.Streamer {
	return withVolume(NewTone(0, 180*time.Millisecond, 50*time.Millisecond, WaveNoise, rate), vol*0.4)
}

// Click is a short square pulse. Pitch rises with the reel index so a full
// stop sounds like a run up the scale.
func Click(rate beep.SampleRate, reel int, vol float64) beep.Streamer {
	freq := 330 * math.Pow(2, float64(reel)/12*2)
	return withVolume(NewTone(freq, 60*time.Millisecond, 12*time.Millisecond, WaveSquare, rate), vol*0.5)
}

// Chime is two sine partials a fifth apart, the second delayed slightly.
func Chime(rate beep.SampleRate, vol float64) beep.Streamer {
	low := NewTone(880, 500*time.Millisecond, 150*time.Millisecond, WaveSine, rate)
	high := beep.Seq(
		beep.Silence(rate.N(80*time.Millisecond)),
		NewTone(1320, 420*time.Millisecond, 120*time.Millisecond, WaveSine, rate),
	)
	return withVolume(beep.Mix(withVolume(low, 0.6), withVolume(high, 0.4)), vol)
}
