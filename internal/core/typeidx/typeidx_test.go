package typeidx

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collision struct{ A, B int }
type died struct{ ID uint64 }
type label string

func TestIndexOfStable(t *testing.T) {
	s := NewSpace("test")

	a := IndexOf[collision](s)
	b := IndexOf[died](s)
	c := IndexOf[label](s)

	assert.Equal(t, 0, a)
	assert.Equal(t, 1, b)
	assert.Equal(t, 2, c)

	for i := 0; i < 3; i++ {
		assert.Equal(t, a, IndexOf[collision](s))
		assert.Equal(t, b, IndexOf[died](s))
	}
	assert.Equal(t, 3, s.Len())
}

func TestSpacesAreIndependent(t *testing.T) {
	s1 := NewSpace("one")
	s2 := NewSpace("two")

	IndexOf[collision](s1)
	assert.Equal(t, 1, IndexOf[died](s1))
	assert.Equal(t, 0, IndexOf[died](s2))
}

func TestPointerAndValueTypesDiffer(t *testing.T) {
	s := NewSpace("ptr")
	assert.NotEqual(t, IndexOf[collision](s), IndexOf[*collision](s))
}

func TestPeekDoesNotAssign(t *testing.T) {
	s := NewSpace("peek")

	_, ok := Peek[collision](s)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())

	want := IndexOf[collision](s)
	got, ok := Peek[collision](s)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestIndexOfValueMatchesGeneric(t *testing.T) {
	s := NewSpace("value")
	idx := s.IndexOfValue(died{ID: 7})
	assert.Equal(t, idx, IndexOf[died](s))
	assert.Equal(t, reflect.TypeOf((*died)(nil)).Elem(), s.TypeAt(idx))
	assert.Nil(t, s.TypeAt(42))
}
