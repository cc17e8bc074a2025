package input

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyTable_Lookup(t *testing.T) {
	kt := DefaultKeyTable()

	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Command
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), CommandAccelerate},
		{"upper rune", tcell.NewEventKey(tcell.KeyRune, 'J', tcell.ModShift), CommandJump},
		{"arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), CommandTurnLeft},
		{"ctrl c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), CommandQuit},
		{"unbound", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), CommandNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, kt.Lookup(tt.ev))
		})
	}
}

func TestSource_PollDrainsInOrder(t *testing.T) {
	s := NewSource(nil, nil, 8)

	s.Handle(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone))
	s.Handle(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone)) // unbound
	s.Handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))

	assert.Equal(t, []Command{CommandAccelerate, CommandPause}, s.Poll())
	assert.Empty(t, s.Poll())
}

func TestSource_FullBufferDrops(t *testing.T) {
	s := NewSource(nil, nil, 2)
	for i := 0; i < 5; i++ {
		s.Handle(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))
	}

	assert.Len(t, s.Poll(), 2)
	assert.Equal(t, uint64(3), s.Dropped())
}

func TestSource_Resize(t *testing.T) {
	s := NewSource(nil, nil, 2)
	assert.False(t, s.TakeResize())

	s.Handle(tcell.NewEventResize(80, 24))
	assert.True(t, s.TakeResize())
	assert.False(t, s.TakeResize(), "resize flag must clear")
}

func TestSource_PollsSimulationScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()

	s := NewSource(screen, nil, 16)
	s.Start()
	defer s.Stop()

	screen.InjectKey(tcell.KeyRune, 'j', tcell.ModNone)

	var got []Command
	require.Eventually(t, func() bool {
		got = append(got, s.Poll()...)
		return len(got) > 0
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, CommandJump, got[0])
}

func TestCommand_IsGlobal(t *testing.T) {
	assert.True(t, CommandPause.IsGlobal())
	assert.True(t, CommandVolumeDown.IsGlobal())
	assert.False(t, CommandJump.IsGlobal())
	assert.Equal(t, "volume_up", CommandVolumeUp.String())
}
