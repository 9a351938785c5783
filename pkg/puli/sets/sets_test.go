package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOfAndElements(t *testing.T) {
	s := Of("a", "b", "a")
	assert.Equal(t, 2, s.Len())
	assert.ElementsMatch(t, []string{"a", "b"}, s.Elements())
}

func TestAddRemove(t *testing.T) {
	s := New[string]()
	assert.True(t, s.Add("a"))
	assert.False(t, s.Add("a"))
	assert.True(t, s.Has("a"))
	assert.True(t, s.Remove("a"))
	assert.False(t, s.Remove("a"))
	assert.False(t, s.Has("a"))
}

func TestContainsAll(t *testing.T) {
	tests := []struct {
		name string
		s    Set[int]
		sub  Set[int]
		want bool
	}{
		{"empty in empty", Of[int](), Of[int](), true},
		{"empty in any", Of(1, 2), Of[int](), true},
		{"subset", Of(1, 2, 3), Of(1, 3), true},
		{"equal", Of(1, 2), Of(1, 2), true},
		{"superset", Of(1), Of(1, 2), false},
		{"disjoint", Of(1, 2), Of(3), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.s.ContainsAll(tt.sub))
		})
	}
}

func TestUnionReusesSides(t *testing.T) {
	a := Of("x")
	empty := New[string]()

	// union with an empty side returns the other side unchanged
	u := Union(a, empty)
	assert.Equal(t, a, u)
	u = Union(empty, a)
	assert.Equal(t, a, u)

	b := Of("y")
	u = Union(a, b)
	assert.ElementsMatch(t, []string{"x", "y"}, u.Elements())
	// inputs untouched
	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 1, b.Len())
}

func TestUnionLen(t *testing.T) {
	assert.Equal(t, 0, UnionLen(New[int](), New[int]()))
	assert.Equal(t, 3, UnionLen(Of(1, 2), Of(2, 3)))
	assert.Equal(t, 2, UnionLen(Of(1, 2), Of(1, 2)))
	assert.Equal(t, 4, UnionLen(Of(1), Of(2, 3, 4)))
}

func TestCloneOnNil(t *testing.T) {
	var s Set[string]
	c := s.Clone()
	assert.NotNil(t, c)
	assert.True(t, c.Add("a"))
}

func TestEqual(t *testing.T) {
	assert.True(t, Of(1, 2).Equal(Of(2, 1)))
	assert.False(t, Of(1).Equal(Of(1, 2)))
	assert.False(t, Of(1, 3).Equal(Of(1, 2)))
}
