package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/crash-cars/constant"
	"github.com/lixenwraith/crash-cars/engine"
)

// crashSound is a noise burst over a falling thump; stronger hits ring lower
func crashSound(rate beep.SampleRate, strength float64) beep.Streamer {
	d := constant.CrashSoundDuration
	thumpFreq := 110 / math.Max(1, math.Sqrt(strength))
	noise := newEnvelope(newOscillator(1, 0, d, WaveNoise, rate), 2*time.Millisecond, d, rate)
	thump := newEnvelope(newOscillator(thumpFreq, -120, d, WaveSine, rate), 5*time.Millisecond, d, rate)
	return beep.Mix(newVolume(noise, 0.5), newVolume(thump, 0.8))
}

// pickupSound is a two-note arpeggio whose interval depends on the power-up
func pickupSound(rate beep.SampleRate, t engine.PowerUpType) beep.Streamer {
	base, interval := 660.0, 1.5
	switch t {
	case engine.PowerUpBoost:
		interval = 2
	case engine.PowerUpJump:
		base = 523.25
	case engine.PowerUpDamage:
		base, interval = 330, 0.75
	case engine.PowerUpHealth:
		interval = 1.25
	}
	half := constant.PickupSoundDuration / 2
	n1 := newEnvelope(newOscillator(base, 0, half, WaveSquare, rate), time.Millisecond, half, rate)
	n2 := newEnvelope(newOscillator(base*interval, 0, half, WaveSquare, rate), time.Millisecond, half, rate)
	return newVolume(beep.Seq(n1, n2), 0.3)
}

// menuSound is a short click
func menuSound(rate beep.SampleRate) beep.Streamer {
	d := constant.MenuSoundDuration
	return newVolume(newEnvelope(newOscillator(1200, -4000, d, WaveSine, rate), time.Millisecond, d, rate), 0.4)
}

// musicGenerator is an endless kick and bass loop
type musicGenerator struct {
	rate beep.SampleRate
	beat int
	kick int
	pos  int
}

func newMusicGenerator(rate beep.SampleRate) *musicGenerator {
	return &musicGenerator{
		rate: rate,
		beat: rate.N(constant.MusicBeatDuration),
		kick: rate.N(100 * time.Millisecond),
	}
}

// Bass line in Hz, one note per bar of four beats
var bassLine = [...]float64{55, 55, 65.41, 49}

func (g *musicGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		inBeat := g.pos % g.beat
		t := float64(inBeat) / float64(g.rate)

		var kick float64
		if inBeat < g.kick {
			env := 1 - float64(inBeat)/float64(g.kick)
			kick = 0.5 * env * math.Sin(2*math.Pi*50*(1+2*env)*t)
		}

		bar := (g.pos / (g.beat * 4)) % len(bassLine)
		bt := float64(g.pos) / float64(g.rate)
		bass := 0.2 * math.Sin(2*math.Pi*bassLine[bar]*bt)

		s := kick + bass
		samples[i][0], samples[i][1] = s, s
		g.pos++
	}
	return len(samples), true
}

func (g *musicGenerator) Err() error { return nil }
