// Package typeidx assigns dense integer indices to Go types.
//
// Each Space is an independent index-space: the first type seen gets 0, the
// next new type gets 1, and so on. Lookups are stable for the life of the
// process. A Space is not safe for concurrent use; index assignment happens
// on the game-loop goroutine.
package typeidx

import "reflect"

// Space is one index-space.
type Space struct {
	name  string
	index map[reflect.Type]int
	types []reflect.Type
}

// Process-wide spaces used by the engine.
var (
	GameLoop = NewSpace("game-loop")
	UI       = NewSpace("ui")
	Commands = NewSpace("commands")
)

func NewSpace(name string) *Space {
	return &Space{
		name:  name,
		index: make(map[reflect.Type]int, 32),
		types: make([]reflect.Type, 0, 32),
	}
}

func (s *Space) Name() string { return s.name }

// Len reports how many distinct types have been indexed so far.
func (s *Space) Len() int { return len(s.types) }

// TypeAt returns the type holding index i, or nil if none does.
func (s *Space) TypeAt(i int) reflect.Type {
	if i < 0 || i >= len(s.types) {
		return nil
	}
	return s.types[i]
}

// Lookup returns the index of t without assigning one.
func (s *Space) Lookup(t reflect.Type) (int, bool) {
	i, ok := s.index[t]
	return i, ok
}

func (s *Space) indexOf(t reflect.Type) int {
	if i, ok := s.index[t]; ok {
		return i
	}
	i := len(s.types)
	s.index[t] = i
	s.types = append(s.types, t)
	return i
}

// IndexOf returns T's index in s, assigning the next free one on first use.
func IndexOf[T any](s *Space) int {
	return s.indexOf(reflect.TypeOf((*T)(nil)).Elem())
}

// Peek returns T's index in s without assigning one. ok is false if T has
// never been indexed.
func Peek[T any](s *Space) (idx int, ok bool) {
	return s.Lookup(reflect.TypeOf((*T)(nil)).Elem())
}

// IndexOfValue indexes the dynamic type of v. Used where only an interface
// value is at hand, e.g. a queued command.
func (s *Space) IndexOfValue(v any) int {
	return s.indexOf(reflect.TypeOf(v))
}
