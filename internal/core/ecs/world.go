package ecs

// World owns the entity pool, the component registry and a deferred
// destruction queue flushed once per frame by the cleanup system.
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

// DestroyEntity removes every component of id and retires the handle.
// Destroying an already destroyed entity is a no-op.
func (w *World) DestroyEntity(id EntityID) {
	if !w.pool.Alive(id) {
		return
	}
	w.registry.RemoveAll(id)
	w.pool.Destroy(id)
}

// MarkForDestruction queues an entity for end-of-frame cleanup. Use it while
// iterating a store that the destruction would mutate.
func (w *World) MarkForDestruction(id EntityID) {
	w.destroyQueue = append(w.destroyQueue, id)
}

// Pending returns the number of queued destructions.
func (w *World) Pending() int { return len(w.destroyQueue) }

// FlushDestroyQueue destroys all queued entities. Duplicates are harmless.
func (w *World) FlushDestroyQueue() []EntityID {
	flushed := make([]EntityID, 0, len(w.destroyQueue))
	for _, id := range w.destroyQueue {
		if !w.pool.Alive(id) {
			continue
		}
		w.DestroyEntity(id)
		flushed = append(flushed, id)
	}
	w.destroyQueue = w.destroyQueue[:0]
	return flushed
}

// Reset drops every component and queued destruction. Handles issued before
// the reset stay dead.
func (w *World) Reset() {
	w.registry.ClearAll()
	w.destroyQueue = w.destroyQueue[:0]
	w.pool.Reset()
}
