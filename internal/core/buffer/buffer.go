// Package buffer holds the append-and-clear containers that back the event
// buses: producer-side WriteBuffer, consumer-side ReadBuffer, the
// immediate-visibility ReadWriteBuffer and the two-generation DoubleBuffer.
//
// Slices returned by Read are borrowed. Any later Push, Clear or Swap on
// the same buffer may overwrite them; copy if the data must outlive that.
package buffer

// seq is the storage shared by every buffer kind.
type seq[T any] struct {
	items []T
}

func (s *seq[T]) push(v T) {
	s.items = append(s.items, v)
}

func (s *seq[T]) reserve(n int) {
	if n <= cap(s.items)-len(s.items) {
		return
	}
	grown := make([]T, len(s.items), len(s.items)+n)
	copy(grown, s.items)
	s.items = grown
}

// clear drops the elements but keeps the backing array for the next
// generation. Elements are zeroed so pointers they hold can be collected.
func (s *seq[T]) clear() {
	clear(s.items)
	s.items = s.items[:0]
}

func (s *seq[T]) view() []T {
	if len(s.items) == 0 {
		return nil
	}
	return s.items[:len(s.items):len(s.items)]
}

// WriteBuffer is the producer side of a message stream.
type WriteBuffer[T any] struct {
	s seq[T]
}

// Push appends v and returns the buffer so calls can be chained.
func (b *WriteBuffer[T]) Push(v T) *WriteBuffer[T] {
	b.s.push(v)
	return b
}

// Reserve makes room for at least n more elements.
func (b *WriteBuffer[T]) Reserve(n int) { b.s.reserve(n) }
func (b *WriteBuffer[T]) Clear()        { b.s.clear() }
func (b *WriteBuffer[T]) Len() int      { return len(b.s.items) }

// ReadBuffer is the consumer side of a message stream.
type ReadBuffer[T any] struct {
	s seq[T]
}

// Read returns the visible elements in insertion order.
func (b *ReadBuffer[T]) Read() []T { return b.s.view() }
func (b *ReadBuffer[T]) Clear()    { b.s.clear() }
func (b *ReadBuffer[T]) Len() int  { return len(b.s.items) }

// ReadWriteBuffer is a single sequence: whatever is pushed is visible to the
// next Read on the same buffer. Used for producer/consumer pairs that run in
// the same phase.
type ReadWriteBuffer[T any] struct {
	s seq[T]
}

func (b *ReadWriteBuffer[T]) Push(v T) *ReadWriteBuffer[T] {
	b.s.push(v)
	return b
}

func (b *ReadWriteBuffer[T]) Read() []T     { return b.s.view() }
func (b *ReadWriteBuffer[T]) Reserve(n int) { b.s.reserve(n) }
func (b *ReadWriteBuffer[T]) Clear()        { b.s.clear() }
func (b *ReadWriteBuffer[T]) Len() int      { return len(b.s.items) }
