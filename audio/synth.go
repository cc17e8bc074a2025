package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType selects an oscillator shape
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator is a fixed-length single-voice tone
type oscillator struct {
	freq   float64
	sweep  float64 // Hz per second, negative falls
	phase  float64
	length int
	pos    int
	wave   WaveType
	rate   beep.SampleRate
	noise  *rand.Rand
}

func newOscillator(freq, sweep float64, d time.Duration, wave WaveType, rate beep.SampleRate) *oscillator {
	return &oscillator{
		freq:   freq,
		sweep:  sweep,
		length: rate.N(d),
		wave:   wave,
		rate:   rate,
		noise:  rand.New(rand.NewPCG(uint64(freq), uint64(d))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.pos >= o.length {
			return i, i > 0
		}

		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (o.phase - 0.5)
		case WaveNoise:
			v = o.noise.Float64()*2 - 1
		}
		samples[i][0], samples[i][1] = v, v

		t := float64(o.pos) / float64(o.rate)
		f := max(o.freq+o.sweep*t, 20)
		o.phase += f / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.pos++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and exponential decay over a fixed length
type envelope struct {
	streamer beep.Streamer
	attack   int
	decay    float64 // per-sample multiplier after attack
	pos      int
	gain     float64
}

func newEnvelope(s beep.Streamer, attack, d time.Duration, rate beep.SampleRate) *envelope {
	// Decay reaches about -60 dB at the end of d
	n := max(rate.N(d)-rate.N(attack), 1)
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		decay:    math.Pow(0.001, 1/float64(n)),
		gain:     1,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := e.gain
		if e.pos < e.attack {
			g = float64(e.pos) / float64(e.attack)
		} else {
			e.gain *= e.decay
		}
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain; zero or less is silent
// effects.Volume works in log2 units, so log2(0) is special-cased
func newVolume(s beep.Streamer, gain float64) *effects.Volume {
	v := &effects.Volume{Streamer: s, Base: 2}
	setGain(v, gain)
	return v
}

func setGain(v *effects.Volume, gain float64) {
	if gain <= 0 {
		v.Volume, v.Silent = 0, true
		return
	}
	v.Volume, v.Silent = math.Log2(gain), false
}
