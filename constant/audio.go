package constant

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate     = 48000
	AudioBufferDuration = 100 * time.Millisecond
)

// Volume
const (
	// VolumeDefault is the master volume at startup
	VolumeDefault = 0.6

	// MusicVolumeDivisor scales background music below effects
	MusicVolumeDivisor = 5.0

	// VolumeStep is the change per volume key press
	VolumeStep = 0.1

	// ListenerFalloff is the distance at which positional sounds reach half gain
	ListenerFalloff = 30.0
)

// Sound Shapes
const (
	CrashSoundDuration  = 350 * time.Millisecond
	PickupSoundDuration = 250 * time.Millisecond
	MenuSoundDuration   = 60 * time.Millisecond
	MusicBeatDuration   = 500 * time.Millisecond
)
