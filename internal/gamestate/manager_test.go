package gamestate

import (
	"testing"

	"github.com/l1jgo/engine/internal/core/command"
	"github.com/l1jgo/engine/internal/core/ecs"
	"github.com/l1jgo/engine/internal/core/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newManager(t *testing.T) (*Manager, *event.Bus, *command.Buffer) {
	t.Helper()
	bus := event.NewGameLoopBus()
	m, err := NewManager("loading", []string{"loading", "running", "paused"},
		event.SinkOf[event.StateChanged](bus), zap.NewNop())
	require.NoError(t, err)
	b := command.NewBuffer(zap.NewNop())
	m.Register(b)
	return m, bus, b
}

func TestLastTransitionWins(t *testing.T) {
	m, bus, b := newManager(t)
	w := ecs.NewWorld()

	command.Add(b, TransitionCommand{To: "paused"})
	command.Add(b, TransitionCommand{To: "running"})
	b.Flush(w)

	assert.Equal(t, "loading", m.Current(), "nothing applied until Flush")
	assert.True(t, m.Flush())
	assert.Equal(t, "running", m.Current())

	bus.SwapBuffers()
	assert.Equal(t, []event.StateChanged{{From: "loading", To: "running"}}, event.Read[event.StateChanged](bus))

	assert.False(t, m.Flush(), "pending list is cleared")
}

func TestUnknownAndSameStateIgnored(t *testing.T) {
	m, bus, b := newManager(t)
	w := ecs.NewWorld()

	command.Add(b, TransitionCommand{To: "menu"})
	b.Flush(w)
	assert.False(t, m.Flush())

	command.Add(b, TransitionCommand{To: "loading"})
	b.Flush(w)
	assert.False(t, m.Flush())

	bus.SwapBuffers()
	assert.Empty(t, event.Read[event.StateChanged](bus))
}

func TestInitialStateMustBeKnown(t *testing.T) {
	_, err := NewManager("nowhere", []string{"running"}, event.SinkOf[event.StateChanged](event.NewGameLoopBus()), zap.NewNop())
	assert.Error(t, err)
}
