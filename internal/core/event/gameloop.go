package event

import "github.com/l1jgo/engine/internal/core/typeidx"

// NewGameLoopBus returns a Bus keyed by the game-loop index-space.
func NewGameLoopBus() *Bus {
	return NewBus(typeidx.GameLoop)
}

// Scopes holds the three game-loop buses. They behave identically; only the
// swap cadence differs, and that is driven by system.Runner:
//
//   - Pass: swapped at every commit point inside a phase, cleared at phase end.
//   - Phase: swapped at every phase boundary.
//   - Frame: swapped once at the end of the frame.
type Scopes struct {
	Pass  *Bus
	Phase *Bus
	Frame *Bus
}

func NewScopes() *Scopes {
	return &Scopes{
		Pass:  NewGameLoopBus(),
		Phase: NewGameLoopBus(),
		Frame: NewGameLoopBus(),
	}
}
