package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/crash-cars/constant"
	"github.com/lixenwraith/crash-cars/engine"
	"github.com/lixenwraith/crash-cars/vmath"
)

// SoundManager is the beep-backed audio collaborator
// Volume and mute state are tracked even when no device could be opened
type SoundManager struct {
	mu   sync.Mutex
	rate beep.SampleRate
	log  zerolog.Logger

	mixer *beep.Mixer
	music *effects.Volume

	// active accepts voices; device means the speaker is owned and needs locking
	active bool
	device bool

	volume        float64
	unmutedVolume float64
	muted         bool
	listener      vmath.Vec3

	played uint64
}

// NewSoundManager creates an inactive manager at the default volume
func NewSoundManager(log zerolog.Logger) *SoundManager {
	return &SoundManager{
		rate:   beep.SampleRate(constant.AudioSampleRate),
		log:    log.With().Str("component", "audio").Logger(),
		mixer:  &beep.Mixer{},
		volume: constant.VolumeDefault,
	}
}

// Initialize opens the speaker and starts background music
// A failure leaves the manager silent; callers may continue without sound
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.active {
		return nil
	}
	if err := speaker.Init(sm.rate, sm.rate.N(constant.AudioBufferDuration)); err != nil {
		return err
	}
	sm.device = true
	sm.startLocked()
	speaker.Play(sm.mixer)
	return nil
}

// startLocked activates the mixer and queues the music loop
func (sm *SoundManager) startLocked() {
	sm.active = true
	sm.music = newVolume(newMusicGenerator(sm.rate), sm.volume/constant.MusicVolumeDivisor)
	sm.mixer.Add(sm.music)
}

// Cleanup silences everything and releases the device
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.active {
		return
	}
	sm.withSpeaker(sm.mixer.Clear)
	if sm.device {
		speaker.Close()
		sm.device = false
	}
	sm.active = false
	sm.music = nil
}

// withSpeaker runs fn under the speaker lock when a device is streaming the mixer
func (sm *SoundManager) withSpeaker(fn func()) {
	if sm.device {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn()
}

// play queues a one-shot voice at gain, panned by pan in [-1, 1]
func (sm *SoundManager) play(s beep.Streamer, gain, pan float64) {
	if !sm.active || gain <= 0 {
		return
	}
	voice := &effects.Pan{Streamer: newVolume(s, gain), Pan: vmath.Clamp(pan, -1, 1)}
	sm.withSpeaker(func() { sm.mixer.Add(voice) })
	sm.played++
}

// spatial returns gain falloff and stereo pan for a source relative to the listener
func (sm *SoundManager) spatial(pos vmath.Vec3) (gain, pan float64) {
	d := vmath.Distance(vmath.Planar(sm.listener), vmath.Planar(pos))
	gain = constant.ListenerFalloff / (constant.ListenerFalloff + d)
	pan = (pos[0] - sm.listener[0]) / constant.ListenerFalloff
	return gain, pan
}

// PlayCollision plays a crash at pos; strength 1 is a base knockback
func (sm *SoundManager) PlayCollision(pos vmath.Vec3, strength float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	falloff, pan := sm.spatial(pos)
	gain := sm.volume * falloff * vmath.Clamp(strength, 0.25, 2)
	sm.play(crashSound(sm.rate, strength), gain, pan)
}

func (sm *SoundManager) PlayPickup(t engine.PowerUpType, pos vmath.Vec3) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	falloff, pan := sm.spatial(pos)
	sm.play(pickupSound(sm.rate, t), sm.volume*falloff, pan)
}

func (sm *SoundManager) PlayMenu() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.play(menuSound(sm.rate), sm.volume, 0)
}

func (sm *SoundManager) SetListener(pos vmath.Vec3) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.listener = pos
}

// SetVolume clamps v to [0, 1] and rescales the music
func (sm *SoundManager) SetVolume(v float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.setVolumeLocked(v)
}

func (sm *SoundManager) setVolumeLocked(v float64) {
	sm.volume = vmath.Clamp(v, 0, 1)
	if sm.music != nil {
		sm.withSpeaker(func() { setGain(sm.music, sm.volume/constant.MusicVolumeDivisor) })
	}
}

func (sm *SoundManager) AdjustVolume(delta float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.setVolumeLocked(sm.volume + delta)
}

// ToggleMute silences output, remembering the volume to restore on unmute
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.muted {
		sm.setVolumeLocked(sm.unmutedVolume)
		sm.muted = false
	} else {
		sm.unmutedVolume = sm.volume
		sm.setVolumeLocked(0)
		sm.muted = true
	}
	return sm.muted
}

func (sm *SoundManager) Volume() float64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.volume
}

func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// Played returns the number of voices queued since start
func (sm *SoundManager) Played() uint64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played
}

var _ engine.Audio = (*SoundManager)(nil)
