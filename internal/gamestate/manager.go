// Package gamestate tracks the top-level game state ("loading", "running",
// "paused", ...) and applies transitions requested through the command buffer.
package gamestate

import (
	"fmt"
	"time"

	"github.com/l1jgo/engine/internal/core/command"
	"github.com/l1jgo/engine/internal/core/ecs"
	"github.com/l1jgo/engine/internal/core/event"
	coresys "github.com/l1jgo/engine/internal/core/system"
	"go.uber.org/zap"
)

// TransitionCommand requests a switch to state To.
type TransitionCommand struct {
	To string
}

// Execute is a no-op: without a Manager there is no state to change.
func (TransitionCommand) Execute(*ecs.World) {}

// Manager collects transition requests during a command flush and applies
// them in its own Update, Phase 5 (Cleanup).
//
// Only the most recent request of a frame is applied; earlier ones are
// dropped. Several systems asking for a transition in the same frame
// resolve to the last one, rather than the game stepping through each state
// for one frame.
type Manager struct {
	states  map[string]struct{}
	current string
	pending []TransitionCommand
	changed event.Sink[event.StateChanged]
	log     *zap.Logger
}

func NewManager(initial string, states []string, changed event.Sink[event.StateChanged], log *zap.Logger) (*Manager, error) {
	m := &Manager{
		states:  make(map[string]struct{}, len(states)),
		current: initial,
		changed: changed,
		log:     log,
	}
	for _, s := range states {
		m.states[s] = struct{}{}
	}
	if !m.Known(initial) {
		return nil, fmt.Errorf("initial state %q is not in the state list", initial)
	}
	return m, nil
}

// Register installs m as the TransitionCommand dispatcher on b.
func (m *Manager) Register(b *command.Buffer) {
	command.AddDispatcher[TransitionCommand](b, m)
}

func (m *Manager) Dispatch(_ *ecs.World, cmd TransitionCommand) {
	m.pending = append(m.pending, cmd)
}

func (m *Manager) Current() string { return m.current }

func (m *Manager) Known(state string) bool {
	_, ok := m.states[state]
	return ok
}

// Flush applies the latest pending transition and discards the rest.
// It reports whether the state changed.
func (m *Manager) Flush() bool {
	if len(m.pending) == 0 {
		return false
	}
	last := m.pending[len(m.pending)-1]
	if dropped := len(m.pending) - 1; dropped > 0 {
		m.log.Debug("state transitions superseded", zap.Int("dropped", dropped), zap.String("to", last.To))
	}
	m.pending = m.pending[:0]

	if !m.Known(last.To) {
		m.log.Warn("unknown game state requested", zap.String("state", last.To))
		return false
	}
	if last.To == m.current {
		return false
	}
	from := m.current
	m.current = last.To
	m.changed.Push(event.StateChanged{From: from, To: last.To})
	m.log.Info("game state changed", zap.String("from", from), zap.String("to", last.To))
	return true
}

func (m *Manager) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (m *Manager) Update(_ time.Duration) {
	m.Flush()
}
