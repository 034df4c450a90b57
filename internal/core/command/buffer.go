package command

import (
	"fmt"

	"github.com/l1jgo/engine/internal/core/ecs"
	"github.com/l1jgo/engine/internal/core/typeidx"
	"go.uber.org/zap"
)

type worldEntry struct {
	kind int
	cmd  WorldCommand
}

type targetEntry struct {
	kind   int
	target ecs.EntityID
	cmd    TargetCommand
}

type (
	worldRoute  func(w *ecs.World, cmd WorldCommand)
	targetRoute func(w *ecs.World, target ecs.EntityID, cmd TargetCommand)
)

// FlushStats summarizes one Flush.
type FlushStats struct {
	World      int // world-scoped commands processed
	Target     int // target-scoped commands processed, skipped ones included
	Executed   int // ran their own Execute
	Dispatched int // went to a registered dispatcher
	Skipped    int // target no longer alive
}

// Buffer queues commands until Flush. Not safe for concurrent use.
type Buffer struct {
	space *typeidx.Space
	log   *zap.Logger

	world  []worldEntry
	target []targetEntry

	// queues handed back after a flush, reused for the next frame
	spareWorld  []worldEntry
	spareTarget []targetEntry

	worldRoutes  []worldRoute
	targetRoutes []targetRoute

	flushing bool
}

func NewBuffer(log *zap.Logger) *Buffer {
	return &Buffer{
		space:  typeidx.Commands,
		log:    log,
		world:  make([]worldEntry, 0, 64),
		target: make([]targetEntry, 0, 64),
	}
}

func (b *Buffer) worldRouteFor(idx int) worldRoute {
	if idx < len(b.worldRoutes) {
		return b.worldRoutes[idx]
	}
	return nil
}

func (b *Buffer) targetRouteFor(idx int) targetRoute {
	if idx < len(b.targetRoutes) {
		return b.targetRoutes[idx]
	}
	return nil
}

func grow[R any](routes []R, idx int) []R {
	if idx < len(routes) {
		return routes
	}
	return append(routes, make([]R, idx+1-len(routes))...)
}

// AddDispatcher routes every world command of type T to d. Registering a
// second dispatcher for the same type panics.
func AddDispatcher[T WorldCommand](b *Buffer, d WorldDispatcher[T]) {
	idx := typeidx.IndexOf[T](b.space)
	if b.worldRouteFor(idx) != nil {
		panic(fmt.Sprintf("command: dispatcher for %s already registered", b.space.TypeAt(idx)))
	}
	b.worldRoutes = grow(b.worldRoutes, idx)
	b.worldRoutes[idx] = func(w *ecs.World, cmd WorldCommand) {
		d.Dispatch(w, cmd.(T))
	}
}

// AddTargetDispatcher routes every target command of type T to d.
// Registering a second dispatcher for the same type panics.
func AddTargetDispatcher[T TargetCommand](b *Buffer, d TargetDispatcher[T]) {
	idx := typeidx.IndexOf[T](b.space)
	if b.targetRouteFor(idx) != nil {
		panic(fmt.Sprintf("command: target dispatcher for %s already registered", b.space.TypeAt(idx)))
	}
	b.targetRoutes = grow(b.targetRoutes, idx)
	b.targetRoutes[idx] = func(w *ecs.World, target ecs.EntityID, cmd TargetCommand) {
		d.Dispatch(w, target, cmd.(T))
	}
}

// Add queues a world command. Dispatch is keyed by the command's dynamic
// type, so adding through an interface still reaches T's dispatcher.
func Add[T WorldCommand](b *Buffer, cmd T) {
	b.world = append(b.world, worldEntry{kind: b.space.IndexOfValue(cmd), cmd: cmd})
}

// AddTo queues a command for target. The target is not checked until Flush.
func AddTo[T TargetCommand](b *Buffer, target ecs.EntityID, cmd T) {
	b.target = append(b.target, targetEntry{kind: b.space.IndexOfValue(cmd), target: target, cmd: cmd})
}

// Len reports the queued world and target command counts.
func (b *Buffer) Len() (world, target int) {
	return len(b.world), len(b.target)
}

// Clear drops every queued command without running it.
func (b *Buffer) Clear() {
	clear(b.world)
	clear(b.target)
	b.world = b.world[:0]
	b.target = b.target[:0]
}

// Flush runs every queued command: all world commands in FIFO order, then
// all target commands in FIFO order. Commands queued while Flush is running
// land in the next flush.
//
// Commands are expected not to panic. If one does, the panic propagates, the
// rest of this flush is abandoned and the abandoned commands are dropped.
func (b *Buffer) Flush(w *ecs.World) FlushStats {
	if b.flushing {
		panic("command: Flush called from inside a command")
	}
	b.flushing = true

	world, target := b.world, b.target
	b.world, b.target = b.spareWorld[:0], b.spareTarget[:0]
	defer func() {
		clear(world)
		clear(target)
		b.spareWorld, b.spareTarget = world[:0], target[:0]
		b.flushing = false
	}()

	var stats FlushStats
	for _, e := range world {
		stats.World++
		if route := b.worldRouteFor(e.kind); route != nil {
			route(w, e.cmd)
			stats.Dispatched++
			continue
		}
		e.cmd.Execute(w)
		stats.Executed++
	}

	for _, e := range target {
		stats.Target++
		resolved, ok := w.Resolve(e.target)
		if !ok {
			stats.Skipped++
			b.log.Warn("command target no longer exists",
				zap.String("command", b.space.TypeAt(e.kind).String()),
				zap.Stringer("target", e.target))
			continue
		}
		if route := b.targetRouteFor(e.kind); route != nil {
			route(w, resolved, e.cmd)
			stats.Dispatched++
			continue
		}
		e.cmd.Execute(w, resolved)
		stats.Executed++
	}
	return stats
}
