package event

import "github.com/l1jgo/engine/internal/core/ecs"

// Engine event types. Game code is free to define its own; any Go type can
// travel on a bus.

// Collision is pushed on the pass bus when two colliders overlap.
type Collision struct {
	A ecs.EntityID
	B ecs.EntityID
}

// EntityDied is pushed on the phase bus when health reaches zero.
type EntityDied struct {
	ID     ecs.EntityID
	Killer ecs.EntityID
}

// EntitySpawned is pushed on the frame bus by the spawn manager.
type EntitySpawned struct {
	ID       ecs.EntityID
	Template string
}

// StateChanged is pushed on the frame bus by the game-state manager.
type StateChanged struct {
	From string
	To   string
}

// ScriptEvent is pushed on the frame bus from Lua via emit(name, payload).
type ScriptEvent struct {
	Name    string
	Payload map[string]any
}
