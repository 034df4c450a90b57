package buffer

// DoubleBuffer pairs a WriteBuffer and a ReadBuffer for one message type.
//
// Everything pushed between two Swap calls (one generation) becomes readable
// at the second Swap and stays readable until the Swap after that, when it is
// discarded. Readers never see the generation currently being written.
type DoubleBuffer[T any] struct {
	write WriteBuffer[T]
	read  ReadBuffer[T]
}

func NewDoubleBuffer[T any]() *DoubleBuffer[T] {
	return &DoubleBuffer[T]{}
}

// Push appends v to the write side.
func (d *DoubleBuffer[T]) Push(v T) *DoubleBuffer[T] {
	d.write.Push(v)
	return d
}

// Read returns the read side in push order.
func (d *DoubleBuffer[T]) Read() []T { return d.read.Read() }

// Reserve grows the write side. The read side inherits the capacity after
// the next Swap.
func (d *DoubleBuffer[T]) Reserve(n int) { d.write.Reserve(n) }

// Swap discards the read side and promotes the write side in its place. The
// backing arrays change hands; nothing is copied.
func (d *DoubleBuffer[T]) Swap() {
	d.read.s.clear()
	d.read.s, d.write.s = d.write.s, d.read.s
}

func (d *DoubleBuffer[T]) ClearRead()  { d.read.Clear() }
func (d *DoubleBuffer[T]) ClearWrite() { d.write.Clear() }

func (d *DoubleBuffer[T]) Clear() {
	d.read.Clear()
	d.write.Clear()
}

// Pending reports how many elements wait on the write side.
func (d *DoubleBuffer[T]) Pending() int { return d.write.Len() }

// Visible reports how many elements are readable.
func (d *DoubleBuffer[T]) Visible() int { return d.read.Len() }
