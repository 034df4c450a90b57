package ecs

// Removable is implemented by every component store so the Registry can
// strip a destroyed entity from all of them.
type Removable interface {
	Remove(id EntityID)
}

// Store is a sparse set of *T keyed by EntityID. Iteration follows the dense
// array, so it is deterministic: insertion order, except that a removal moves
// the last element into the hole.
type Store[T any] struct {
	sparse map[EntityID]int
	ids    []EntityID
	data   []*T
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		sparse: make(map[EntityID]int, 256),
		ids:    make([]EntityID, 0, 256),
		data:   make([]*T, 0, 256),
	}
}

func (s *Store[T]) Set(id EntityID, c *T) {
	if i, ok := s.sparse[id]; ok {
		s.data[i] = c
		return
	}
	s.sparse[id] = len(s.ids)
	s.ids = append(s.ids, id)
	s.data = append(s.data, c)
}

func (s *Store[T]) Get(id EntityID) (*T, bool) {
	i, ok := s.sparse[id]
	if !ok {
		return nil, false
	}
	return s.data[i], true
}

func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.sparse[id]
	return ok
}

func (s *Store[T]) Remove(id EntityID) {
	i, ok := s.sparse[id]
	if !ok {
		return
	}
	last := len(s.ids) - 1
	if i != last {
		s.ids[i] = s.ids[last]
		s.data[i] = s.data[last]
		s.sparse[s.ids[i]] = i
	}
	s.data[last] = nil
	s.ids = s.ids[:last]
	s.data = s.data[:last]
	delete(s.sparse, id)
}

func (s *Store[T]) Len() int { return len(s.ids) }

func (s *Store[T]) Each(fn func(EntityID, *T)) {
	for i, id := range s.ids {
		fn(id, s.data[i])
	}
}
