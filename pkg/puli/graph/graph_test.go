package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OmOmofonmwan/puli/pkg/puli/sets"
)

func TestIsTautology(t *testing.T) {
	assert.True(t, IsTautology(NewInference("c", []string{"a", "c"}, "t")))
	assert.False(t, IsTautology(NewInference("c", []string{"a", "b"}, "i")))
	assert.False(t, IsTautology(NewInference("c", nil, "axiom")))
}

func TestBuilderInferencesOf(t *testing.T) {
	b := NewBuilder[string]()
	b.Add("c", []string{"a", "b"}, "I1")
	b.Add("c", []string{"d"}, "I2")
	b.Add("a", nil, "I3")

	infs := b.InferencesOf("c")
	require.Len(t, infs, 2)
	assert.Equal(t, "I1", infs[0].Name())
	assert.Equal(t, []string{"a", "b"}, infs[0].Premises())
	assert.Empty(t, b.InferencesOf("unknown"))
}

func TestBuilderGeneratesNames(t *testing.T) {
	b := NewBuilder[string]()
	b.Add("c", nil, "")
	b.Add("c", nil, "")

	infs := b.InferencesOf("c")
	require.Len(t, infs, 2)
	assert.NotEmpty(t, infs[0].Name())
	assert.NotEmpty(t, infs[1].Name())
	assert.NotEqual(t, infs[0].Name(), infs[1].Name())
}

type countingListener struct {
	changes int
}

func (l *countingListener) InferencesChanged() { l.changes++ }

func TestBuilderChangeNotifications(t *testing.T) {
	b := NewBuilder[string]()
	listener := &countingListener{}
	b.AddListener(listener)

	// adding to a conclusion never handed out fires nothing
	b.Add("c", nil, "I1")
	assert.Equal(t, 0, listener.changes)

	// once handed out, a new inference for it fires a change
	b.InferencesOf("c")
	b.Add("c", nil, "I2")
	assert.Equal(t, 1, listener.changes)

	// the handed-out record was reset by the notification
	b.Add("c", nil, "I3")
	assert.Equal(t, 1, listener.changes)

	b.InferencesOf("c")
	b.Clear()
	assert.Equal(t, 2, listener.changes)

	// clearing an empty builder is silent
	b.Clear()
	assert.Equal(t, 2, listener.changes)

	b.RemoveListener(listener)
	b.InferencesOf("c")
	b.Add("c", nil, "I4")
	assert.Equal(t, 2, listener.changes)
}

func TestByNameJustifier(t *testing.T) {
	j := ByName[string, string]{
		"I1": sets.Of("x"),
	}
	assert.True(t, j.JustificationOf(NewInference("c", nil, "I1")).Equal(sets.Of("x")))
	assert.Equal(t, 0, j.JustificationOf(NewInference("c", nil, "I2")).Len())
}

func TestNoAxioms(t *testing.T) {
	j := NoAxioms[string, int]()
	assert.Equal(t, 0, j.JustificationOf(NewInference("c", nil, "I1")).Len())
}
