package event

import (
	"github.com/l1jgo/engine/internal/core/buffer"
	"github.com/l1jgo/engine/internal/core/typeidx"
)

type immediateSlot interface {
	clear()
}

type rwSlot[T any] struct {
	buf buffer.ReadWriteBuffer[T]
}

func (s *rwSlot[T]) clear() { s.buf.Clear() }

// ImmediateBus is the single-buffered sibling of Bus: a pushed event is
// readable right away. Use it when producer and consumer run in the same
// phase and a one-pass delay is not wanted.
type ImmediateBus struct {
	space *typeidx.Space
	slots []immediateSlot
}

func NewImmediateBus(space *typeidx.Space) *ImmediateBus {
	return &ImmediateBus{
		space: space,
		slots: make([]immediateSlot, 0, 16),
	}
}

func immediateFor[T any](b *ImmediateBus) *buffer.ReadWriteBuffer[T] {
	idx := typeidx.IndexOf[T](b.space)
	if idx >= len(b.slots) {
		b.slots = append(b.slots, make([]immediateSlot, idx+1-len(b.slots))...)
	}
	s := b.slots[idx]
	if s == nil {
		s = &rwSlot[T]{}
		b.slots[idx] = s
	}
	return &s.(*rwSlot[T]).buf
}

func PushNow[T any](b *ImmediateBus, ev T) {
	immediateFor[T](b).Push(ev)
}

// ReadNow returns everything pushed since the last clear, in push order.
func ReadNow[T any](b *ImmediateBus) []T {
	idx, ok := typeidx.Peek[T](b.space)
	if !ok || idx >= len(b.slots) || b.slots[idx] == nil {
		return nil
	}
	return b.slots[idx].(*rwSlot[T]).buf.Read()
}

func ReserveNow[T any](b *ImmediateBus, n int) {
	immediateFor[T](b).Reserve(n)
}

func (b *ImmediateBus) ClearAll() {
	for _, s := range b.slots {
		if s != nil {
			s.clear()
		}
	}
}
