// Package command defers world mutations to a single flush point per frame.
//
// Systems enqueue commands while they run; Buffer.Flush later executes them
// against the world. World-scoped commands (spawns, global changes) all run
// before target-scoped ones so that targets created this frame can resolve.
// A command type may have one dispatcher, which then receives every command
// of that type instead of the command's own Execute.
package command

import "github.com/l1jgo/engine/internal/core/ecs"

// WorldCommand is a command with no target entity.
type WorldCommand interface {
	Execute(w *ecs.World)
}

// TargetCommand is a command aimed at one entity. The target is resolved
// right before execution; commands whose target is gone are skipped.
type TargetCommand interface {
	Execute(w *ecs.World, target ecs.EntityID)
}

// WorldDispatcher intercepts world commands of type T.
type WorldDispatcher[T WorldCommand] interface {
	Dispatch(w *ecs.World, cmd T)
}

// TargetDispatcher intercepts target commands of type T.
type TargetDispatcher[T TargetCommand] interface {
	Dispatch(w *ecs.World, target ecs.EntityID, cmd T)
}

type WorldDispatcherFunc[T WorldCommand] func(w *ecs.World, cmd T)

func (f WorldDispatcherFunc[T]) Dispatch(w *ecs.World, cmd T) { f(w, cmd) }

type TargetDispatcherFunc[T TargetCommand] func(w *ecs.World, target ecs.EntityID, cmd T)

func (f TargetDispatcherFunc[T]) Dispatch(w *ecs.World, target ecs.EntityID, cmd T) {
	f(w, target, cmd)
}

// Func runs an arbitrary closure as a world command.
type Func func(w *ecs.World)

func (f Func) Execute(w *ecs.World) { f(w) }

// Destroy queues the target for end-of-frame destruction.
type Destroy struct{}

func (Destroy) Execute(w *ecs.World, target ecs.EntityID) {
	w.MarkForDestruction(target)
}
