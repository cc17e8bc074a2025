package input

import "github.com/gdamore/tcell/v2"

// KeyTable maps terminal keys to commands
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, named keys)
	SpecialKeys map[tcell.Key]Command

	// Rune bindings, matched case-insensitively
	Runes map[rune]Command
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]Command{
			tcell.KeyCtrlC:  CommandQuit,
			tcell.KeyCtrlQ:  CommandQuit,
			tcell.KeyEscape: CommandPause,
			tcell.KeyEnter:  CommandMenuConfirm,
			tcell.KeyUp:     CommandAccelerate,
			tcell.KeyDown:   CommandReverse,
			tcell.KeyLeft:   CommandTurnLeft,
			tcell.KeyRight:  CommandTurnRight,
			tcell.KeyTab:    CommandBoost,
		},
		Runes: map[rune]Command{
			'w': CommandAccelerate,
			's': CommandReverse,
			'a': CommandTurnLeft,
			'd': CommandTurnRight,
			' ': CommandHandbrake,
			'j': CommandJump,
			'r': CommandReset,
			'p': CommandPause,
			'm': CommandMute,
			'+': CommandVolumeUp,
			'=': CommandVolumeUp,
			'-': CommandVolumeDown,
		},
	}
}

// Lookup resolves a key event, CommandNone when unbound
func (kt *KeyTable) Lookup(ev *tcell.EventKey) Command {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		return kt.Runes[r]
	}
	return kt.SpecialKeys[ev.Key()]
}
