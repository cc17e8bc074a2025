package audio

import (
	"math"
	"testing"

	"github.com/gopxl/beep"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/crash-cars/constant"
	"github.com/lixenwraith/crash-cars/engine"
	"github.com/lixenwraith/crash-cars/vmath"
)

// deviceless returns a manager that mixes voices without owning the speaker
func deviceless(t *testing.T) *SoundManager {
	t.Helper()
	sm := NewSoundManager(zerolog.Nop())
	sm.mu.Lock()
	sm.startLocked()
	sm.mu.Unlock()
	t.Cleanup(sm.Cleanup)
	return sm
}

func peak(s beep.Streamer, n int) (float64, int) {
	buf := make([][2]float64, 512)
	total, top := 0, 0.0
	for total < n {
		got, ok := s.Stream(buf[:min(len(buf), n-total)])
		for i := 0; i < got; i++ {
			top = math.Max(top, math.Abs(buf[i][0]))
		}
		total += got
		if !ok {
			break
		}
	}
	return top, total
}

func TestSoundManager_InactiveIsSafe(t *testing.T) {
	sm := NewSoundManager(zerolog.Nop())

	sm.PlayCollision(vmath.Zero, 1)
	sm.PlayPickup(engine.PowerUpBoost, vmath.Zero)
	sm.PlayMenu()
	sm.SetListener(vmath.V3(1, 0, 1))
	sm.Cleanup()

	assert.Equal(t, uint64(0), sm.Played())
	assert.Equal(t, constant.VolumeDefault, sm.Volume())
}

func TestSoundManager_VolumeClamp(t *testing.T) {
	sm := NewSoundManager(zerolog.Nop())

	sm.AdjustVolume(0.7)
	assert.Equal(t, 1.0, sm.Volume())

	sm.AdjustVolume(-3)
	assert.Equal(t, 0.0, sm.Volume())

	sm.SetVolume(0.25)
	assert.Equal(t, 0.25, sm.Volume())
}

func TestSoundManager_MuteRestoresVolume(t *testing.T) {
	sm := deviceless(t)
	sm.SetVolume(0.8)

	assert.True(t, sm.ToggleMute())
	assert.True(t, sm.Muted())
	assert.Equal(t, 0.0, sm.Volume())
	assert.True(t, sm.music.Silent, "music follows master volume")

	assert.False(t, sm.ToggleMute())
	assert.Equal(t, 0.8, sm.Volume())
	assert.False(t, sm.music.Silent)
	assert.InDelta(t, math.Log2(0.8/constant.MusicVolumeDivisor), sm.music.Volume, 1e-12)
}

func TestSoundManager_MutedPlaysNothing(t *testing.T) {
	sm := deviceless(t)
	sm.ToggleMute()

	sm.PlayCollision(vmath.Zero, 1)
	sm.PlayMenu()
	assert.Equal(t, uint64(0), sm.Played())
}

func TestSoundManager_QueuesVoices(t *testing.T) {
	sm := deviceless(t)

	sm.PlayCollision(vmath.V3(5, 0, 0), 1.3)
	sm.PlayPickup(engine.PowerUpJump, vmath.Zero)
	sm.PlayMenu()

	assert.Equal(t, uint64(3), sm.Played())
	assert.Equal(t, 4, sm.mixer.Len(), "music plus three voices")

	top, _ := peak(sm.mixer, sm.rate.N(constant.MenuSoundDuration))
	assert.Greater(t, top, 0.0)
}

func TestSoundManager_SpatialFalloff(t *testing.T) {
	sm := NewSoundManager(zerolog.Nop())
	sm.SetListener(vmath.V3(10, 0, 0))

	near, pan := sm.spatial(vmath.V3(10, 0, 0))
	assert.Equal(t, 1.0, near)
	assert.Equal(t, 0.0, pan)

	half, pan := sm.spatial(vmath.V3(10+constant.ListenerFalloff, 0, 0))
	assert.InDelta(t, 0.5, half, 1e-12)
	assert.Equal(t, 1.0, pan)

	_, pan = sm.spatial(vmath.V3(-100, 0, 0))
	assert.Less(t, pan, -1.0, "clamped when queued")
}

func TestSounds_FiniteLength(t *testing.T) {
	rate := beep.SampleRate(constant.AudioSampleRate)

	tests := []struct {
		name string
		s    beep.Streamer
		want int
	}{
		{"crash", crashSound(rate, 1), rate.N(constant.CrashSoundDuration)},
		{"pickup", pickupSound(rate, engine.PowerUpBoost), 2 * rate.N(constant.PickupSoundDuration/2)},
		{"menu", menuSound(rate), rate.N(constant.MenuSoundDuration)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top, n := peak(tt.s, 10*tt.want)
			require.Equal(t, tt.want, n)
			assert.Greater(t, top, 0.0)
			assert.LessOrEqual(t, top, 2.0)
		})
	}
}

func TestMusicGenerator_Endless(t *testing.T) {
	g := newMusicGenerator(beep.SampleRate(constant.AudioSampleRate))
	buf := make([][2]float64, 1024)
	for i := 0; i < 100; i++ {
		n, ok := g.Stream(buf)
		require.True(t, ok)
		require.Equal(t, len(buf), n)
	}
}
