package event

// Sink is write-only access to one event type on some bus.
type Sink[T any] interface {
	Push(ev T)
}

// Source is read-only access to one event type on some bus.
type Source[T any] interface {
	Read() []T
}

// WriteSink lets a system push T onto a Bus without being able to swap or
// clear it. It keeps a plain pointer to the bus, so the bus must outlive it.
type WriteSink[T any] struct {
	bus *Bus
}

func SinkOf[T any](b *Bus) WriteSink[T] { return WriteSink[T]{bus: b} }

func (s WriteSink[T]) Push(ev T) { Push(s.bus, ev) }

// ReadSource lets a system read T from a Bus and nothing else. Same lifetime
// rule as WriteSink.
type ReadSource[T any] struct {
	bus *Bus
}

func SourceOf[T any](b *Bus) ReadSource[T] { return ReadSource[T]{bus: b} }

func (s ReadSource[T]) Read() []T { return Read[T](s.bus) }

// NowSink and NowSource are the ImmediateBus counterparts.
type NowSink[T any] struct {
	bus *ImmediateBus
}

func NowSinkOf[T any](b *ImmediateBus) NowSink[T] { return NowSink[T]{bus: b} }

func (s NowSink[T]) Push(ev T) { PushNow(s.bus, ev) }

type NowSource[T any] struct {
	bus *ImmediateBus
}

func NowSourceOf[T any](b *ImmediateBus) NowSource[T] { return NowSource[T]{bus: b} }

func (s NowSource[T]) Read() []T { return ReadNow[T](s.bus) }

var (
	_ Sink[struct{}]   = WriteSink[struct{}]{}
	_ Source[struct{}] = ReadSource[struct{}]{}
	_ Sink[struct{}]   = NowSink[struct{}]{}
	_ Source[struct{}] = NowSource[struct{}]{}
)
