package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collision struct{ A, B int }

func TestDoubleBufferVisibleOnlyAfterSwap(t *testing.T) {
	d := NewDoubleBuffer[collision]()
	d.Push(collision{1, 2}).Push(collision{3, 4})

	assert.Empty(t, d.Read())
	assert.Equal(t, 2, d.Pending())

	d.Swap()
	assert.Equal(t, []collision{{1, 2}, {3, 4}}, d.Read())
	assert.Equal(t, 0, d.Pending())

	d.Swap()
	assert.Empty(t, d.Read())
}

func TestDoubleBufferOneGenerationDeep(t *testing.T) {
	d := NewDoubleBuffer[int]()

	d.Push(1)
	d.Swap()
	d.Push(2)
	// generation 2 is being written; generation 1 is still the read side
	assert.Equal(t, []int{1}, d.Read())

	d.Swap()
	assert.Equal(t, []int{2}, d.Read())
}

func TestDoubleBufferClearSides(t *testing.T) {
	d := NewDoubleBuffer[int]()
	d.Push(1)
	d.Swap()
	d.Push(2)

	d.ClearWrite()
	assert.Equal(t, 0, d.Pending())
	assert.Equal(t, []int{1}, d.Read())

	d.ClearRead()
	assert.Empty(t, d.Read())

	d.Push(3)
	d.Swap()
	d.Push(4)
	d.Clear()
	assert.Equal(t, 0, d.Pending())
	assert.Equal(t, 0, d.Visible())
}

func TestDoubleBufferReserveIsInvisible(t *testing.T) {
	d := NewDoubleBuffer[int]()
	d.Reserve(64)
	assert.Equal(t, 0, d.Pending())
	d.Swap()
	assert.Empty(t, d.Read())
}

func TestReadWriteBufferImmediate(t *testing.T) {
	var b ReadWriteBuffer[string]
	assert.Empty(t, b.Read())

	b.Push("a")
	assert.Equal(t, []string{"a"}, b.Read())

	b.Push("b").Push("c")
	assert.Equal(t, []string{"a", "b", "c"}, b.Read())

	b.Clear()
	b.Clear()
	assert.Empty(t, b.Read())
}

func TestReadViewCannotGrowIntoBuffer(t *testing.T) {
	var b ReadWriteBuffer[int]
	b.Reserve(8)
	b.Push(1)

	view := b.Read()
	view = append(view, 99)
	b.Push(2)

	require.Len(t, view, 2)
	assert.Equal(t, 99, view[1])
	assert.Equal(t, []int{1, 2}, b.Read())
}

func TestWriteReadBuffers(t *testing.T) {
	var w WriteBuffer[int]
	w.Push(1).Push(2)
	assert.Equal(t, 2, w.Len())
	w.Clear()
	assert.Equal(t, 0, w.Len())

	var r ReadBuffer[int]
	assert.Nil(t, r.Read())
	assert.Equal(t, 0, r.Len())
}
