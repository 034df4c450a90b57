package ecs

// World owns the entity pool, the component registry and a deferred
// destruction queue. The command buffer resolves targets against it and the
// cleanup system drains the queue at the end of the frame.
type World struct {
	pool         *EntityPool
	registry     *Registry
	destroyQueue []EntityID
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		destroyQueue: make([]EntityID, 0, 64),
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Resolve reports whether id still names a live entity.
func (w *World) Resolve(id EntityID) (EntityID, bool) {
	if id.IsZero() || !w.pool.Alive(id) {
		return 0, false
	}
	return id, true
}

// Destroy removes id and its components immediately.
func (w *World) Destroy(id EntityID) bool {
	if !w.pool.Alive(id) {
		return false
	}
	w.registry.RemoveAll(id)
	return w.pool.Destroy(id)
}

// MarkForDestruction queues id for FlushDestroyQueue.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// FlushDestroyQueue destroys every queued entity and returns how many were
// still alive.
func (w *World) FlushDestroyQueue() int {
	n := 0
	for _, id := range w.destroyQueue {
		if w.Destroy(id) {
			n++
		}
	}
	w.destroyQueue = w.destroyQueue[:0]
	return n
}

// EntityCount reports the number of live entities.
func (w *World) EntityCount() int { return w.pool.Len() }
