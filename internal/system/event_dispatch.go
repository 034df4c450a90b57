package system

import (
	"time"

	"github.com/l1jgo/engine/internal/core/event"
	coresys "github.com/l1jgo/engine/internal/core/system"
)

// EventDispatchSystem delivers last frame's frame-bus events to the
// handlers registered with event.Subscribe. Phase 1 (PreUpdate).
// Swapping is the runner's job; this system only dispatches.
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *EventDispatchSystem) Update(_ time.Duration) {
	s.bus.DispatchAll()
}
