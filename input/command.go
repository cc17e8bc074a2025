package input

// Command is a discrete per-tick input event
type Command uint8

const (
	CommandNone Command = iota

	// Global commands, processed even while paused
	CommandQuit        // Ctrl+C, Ctrl+Q
	CommandPause       // Esc, p
	CommandMute        // m
	CommandVolumeUp    // +, =
	CommandVolumeDown  // -
	CommandMenuConfirm // Enter

	// Vehicle commands, human vehicles only
	CommandAccelerate // w, Up
	CommandReverse    // s, Down
	CommandTurnLeft   // a, Left
	CommandTurnRight  // d, Right
	CommandHandbrake  // Space
	CommandBoost      // Shift/Tab
	CommandJump       // j
	CommandReset      // r
)

var commandNames = [...]string{
	CommandNone:        "none",
	CommandQuit:        "quit",
	CommandPause:       "pause",
	CommandMute:        "mute",
	CommandVolumeUp:    "volume_up",
	CommandVolumeDown:  "volume_down",
	CommandMenuConfirm: "menu_confirm",
	CommandAccelerate:  "accelerate",
	CommandReverse:     "reverse",
	CommandTurnLeft:    "turn_left",
	CommandTurnRight:   "turn_right",
	CommandHandbrake:   "handbrake",
	CommandBoost:       "boost",
	CommandJump:        "jump",
	CommandReset:       "reset",
}

func (c Command) String() string {
	if int(c) < len(commandNames) {
		return commandNames[c]
	}
	return "unknown"
}

// IsGlobal reports whether the command is handled by the session rather than a vehicle
func (c Command) IsGlobal() bool {
	return c >= CommandQuit && c <= CommandMenuConfirm
}
