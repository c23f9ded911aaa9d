package ecs

// Removable is implemented by every component store so the Registry can purge
// an entity from all tables at once.
type Removable interface {
	Remove(id EntityID)
	Clear()
}

// Store is a sparse table mapping entities to one component kind. Components
// sit in a dense slice with a parallel entity slice; index maps entity to
// slot. Remove swaps the last element into the freed slot, so removal is O(1)
// and never disturbs other stores.
//
// The dense slice holds pointers: a *T returned by Get stays valid until the
// entity's component is removed, even if other rows move.
type Store[T any] struct {
	dense    []*T
	entities []EntityID
	index    map[EntityID]int
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		dense:    make([]*T, 0, 64),
		entities: make([]EntityID, 0, 64),
		index:    make(map[EntityID]int, 64),
	}
}

// Set inserts c for id, replacing any existing component.
func (s *Store[T]) Set(id EntityID, c *T) {
	if i, ok := s.index[id]; ok {
		s.dense[i] = c
		return
	}
	s.index[id] = len(s.dense)
	s.dense = append(s.dense, c)
	s.entities = append(s.entities, id)
}

// Add stores a copy of c and returns the stored pointer.
func (s *Store[T]) Add(id EntityID, c T) *T {
	p := &c
	s.Set(id, p)
	return p
}

func (s *Store[T]) Get(id EntityID) (*T, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.dense[i], true
}

func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.index[id]
	return ok
}

// Remove drops id's component. Removing an absent entity is a no-op.
func (s *Store[T]) Remove(id EntityID) {
	i, ok := s.index[id]
	if !ok {
		return
	}
	last := len(s.dense) - 1
	if i != last {
		moved := s.entities[last]
		s.dense[i] = s.dense[last]
		s.entities[i] = moved
		s.index[moved] = i
	}
	s.dense[last] = nil
	s.dense = s.dense[:last]
	s.entities = s.entities[:last]
	delete(s.index, id)
}

func (s *Store[T]) Len() int {
	return len(s.dense)
}

// Each visits every row in dense order. fn must not add or remove rows of
// this store; iterate Entities() when the loop body destroys entities.
func (s *Store[T]) Each(fn func(EntityID, *T)) {
	for i, c := range s.dense {
		fn(s.entities[i], c)
	}
}

// Entities returns a copy of the entity column.
func (s *Store[T]) Entities() []EntityID {
	out := make([]EntityID, len(s.entities))
	copy(out, s.entities)
	return out
}

// Clear drops every row.
func (s *Store[T]) Clear() {
	for i := range s.dense {
		s.dense[i] = nil
	}
	s.dense = s.dense[:0]
	s.entities = s.entities[:0]
	clear(s.index)
}
