package event

import (
	"github.com/l1jgo/engine/internal/core/buffer"
	"github.com/l1jgo/engine/internal/core/typeidx"
)

// slot is the type-erased face of one per-type buffer, so the bus can swap
// and clear every type without knowing it.
type slot interface {
	swap()
	clearRead()
	clearWrite()
	clear()
	pending() int
	visible() int
	dispatch(handlers []any)
}

type doubleSlot[T any] struct {
	buf buffer.DoubleBuffer[T]
}

func (s *doubleSlot[T]) swap()        { s.buf.Swap() }
func (s *doubleSlot[T]) clearRead()   { s.buf.ClearRead() }
func (s *doubleSlot[T]) clearWrite()  { s.buf.ClearWrite() }
func (s *doubleSlot[T]) clear()       { s.buf.Clear() }
func (s *doubleSlot[T]) pending() int { return s.buf.Pending() }
func (s *doubleSlot[T]) visible() int { return s.buf.Visible() }

func (s *doubleSlot[T]) dispatch(handlers []any) {
	for _, ev := range s.buf.Read() {
		for _, h := range handlers {
			h.(func(T))(ev)
		}
	}
}

// Bus is a double-buffered, type-indexed event bus. Events pushed during one
// generation become readable after the next SwapBuffers and are discarded at
// the SwapBuffers after that. When SwapBuffers runs is up to the owner; the
// game loop keeps one bus per pass, phase and frame scope.
//
// Not safe for concurrent use. All access happens on the game-loop goroutine.
type Bus struct {
	space    *typeidx.Space
	slots    []slot
	handlers [][]any
}

func NewBus(space *typeidx.Space) *Bus {
	return &Bus{
		space: space,
		slots: make([]slot, 0, 16),
	}
}

// Space returns the index-space the bus keys its slots by.
func (b *Bus) Space() *typeidx.Space { return b.space }

func (b *Bus) grow(idx int) {
	if idx < len(b.slots) {
		return
	}
	b.slots = append(b.slots, make([]slot, idx+1-len(b.slots))...)
}

// slotFor returns T's buffer, creating it on first use.
func slotFor[T any](b *Bus) *buffer.DoubleBuffer[T] {
	idx := typeidx.IndexOf[T](b.space)
	b.grow(idx)
	s := b.slots[idx]
	if s == nil {
		s = &doubleSlot[T]{}
		b.slots[idx] = s
	}
	return &s.(*doubleSlot[T]).buf
}

// existing returns T's buffer or nil if nothing of type T was ever pushed or
// reserved on this bus.
func existing[T any](b *Bus) *buffer.DoubleBuffer[T] {
	idx, ok := typeidx.Peek[T](b.space)
	if !ok || idx >= len(b.slots) || b.slots[idx] == nil {
		return nil
	}
	return &b.slots[idx].(*doubleSlot[T]).buf
}

// Push queues an event; it becomes readable after the next SwapBuffers.
func Push[T any](b *Bus, ev T) {
	slotFor[T](b).Push(ev)
}

// Read returns the readable events of type T in push order. A type that was
// never pushed reads as empty. The slice is only valid until the next
// mutating call on the bus.
func Read[T any](b *Bus) []T {
	if buf := existing[T](b); buf != nil {
		return buf.Read()
	}
	return nil
}

// Reserve pre-sizes T's write side.
func Reserve[T any](b *Bus, n int) {
	slotFor[T](b).Reserve(n)
}

// SwapBuffers advances every type one generation. Types are independent;
// there is no ordering between them.
func (b *Bus) SwapBuffers() {
	for _, s := range b.slots {
		if s != nil {
			s.swap()
		}
	}
}

// ClearReadBuffers drops what is readable without advancing a generation.
func (b *Bus) ClearReadBuffers() {
	for _, s := range b.slots {
		if s != nil {
			s.clearRead()
		}
	}
}

// ClearWriteBuffers drops what is pending without advancing a generation.
func (b *Bus) ClearWriteBuffers() {
	for _, s := range b.slots {
		if s != nil {
			s.clearWrite()
		}
	}
}

func (b *Bus) ClearAll() {
	for _, s := range b.slots {
		if s != nil {
			s.clear()
		}
	}
}

// Subscribe registers a handler for events of type T. DispatchAll feeds it
// the read side.
func Subscribe[T any](b *Bus, fn func(T)) {
	idx := typeidx.IndexOf[T](b.space)
	slotFor[T](b)
	if idx >= len(b.handlers) {
		b.handlers = append(b.handlers, make([][]any, idx+1-len(b.handlers))...)
	}
	b.handlers[idx] = append(b.handlers[idx], fn)
}

// DispatchAll delivers every readable event to its subscribers: types in
// index order, events in push order, handlers in subscription order.
func (b *Bus) DispatchAll() {
	for idx, hs := range b.handlers {
		if len(hs) == 0 || b.slots[idx] == nil {
			continue
		}
		b.slots[idx].dispatch(hs)
	}
}

// SlotStats describes one per-type buffer.
type SlotStats struct {
	Type    string
	Pending int
	Visible int
}

// Stats lists every slot that holds at least one event.
func (b *Bus) Stats() []SlotStats {
	var out []SlotStats
	for idx, s := range b.slots {
		if s == nil || (s.pending() == 0 && s.visible() == 0) {
			continue
		}
		out = append(out, SlotStats{
			Type:    b.space.TypeAt(idx).String(),
			Pending: s.pending(),
			Visible: s.visible(),
		})
	}
	return out
}
