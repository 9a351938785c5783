package puli

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OmOmofonmwan/puli/pkg/puli/graph"
	"github.com/OmOmofonmwan/puli/pkg/puli/internalerr"
	"github.com/OmOmofonmwan/puli/pkg/puli/justifications"
	"github.com/OmOmofonmwan/puli/pkg/puli/sets"
)

func sorted(justs []sets.Set[string]) [][]string {
	out := make([][]string, 0, len(justs))
	for _, j := range justs {
		elems := j.Elements()
		sort.Strings(elems)
		out = append(out, elems)
	}
	return out
}

// pinpointGraph is the classical axiom-pinpointing shape: leaf inferences
// carry one axiom each, internal inferences none.
func pinpointGraph() (*graph.Builder[string], graph.ByName[string, string]) {
	b := graph.NewBuilder[string]()
	b.Add("goal", []string{"mid1"}, "viaMid1")
	b.Add("goal", []string{"mid2"}, "viaMid2")
	b.Add("mid1", []string{"leaf1", "leaf2"}, "mkMid1")
	b.Add("mid2", []string{"leaf2", "leaf3"}, "mkMid2")
	b.Add("leaf1", nil, "L1")
	b.Add("leaf2", nil, "L2")
	b.Add("leaf3", nil, "L3")
	j := graph.ByName[string, string]{
		"L1": sets.Of("a1"),
		"L2": sets.Of("a2"),
		"L3": sets.Of("a3"),
	}
	return b, j
}

func TestFacadeEndToEnd(t *testing.T) {
	b, j := pinpointGraph()
	p, err := New(Options[string, string]{Graph: b, Justifier: j})
	require.NoError(t, err)

	assert.True(t, p.IsDerivable("goal"))

	justs, err := p.Justifications("goal")
	require.NoError(t, err)
	assert.ElementsMatch(t, [][]string{{"a1", "a2"}, {"a2", "a3"}}, sorted(justs))

	stats := p.Stats()
	assert.Positive(t, stats.ProducedInferences)
	p.ResetStats()
	assert.Zero(t, p.Stats().ProducedInferences)
}

// removing the leaves of all axioms of any emitted justification must make
// the goal underivable
func TestJustificationsPinpointAxioms(t *testing.T) {
	b, j := pinpointGraph()
	p, err := New(Options[string, string]{Graph: b, Justifier: j})
	require.NoError(t, err)

	justs, err := p.Justifications("goal")
	require.NoError(t, err)
	require.NotEmpty(t, justs)

	leafFor := map[string]string{"a1": "leaf1", "a2": "leaf2", "a3": "leaf3"}
	for _, just := range justs {
		b2, j2 := pinpointGraph()
		p2, err := New(Options[string, string]{Graph: b2, Justifier: j2})
		require.NoError(t, err)
		// block the leaf carrying each axiom of the justification
		for axiom := range just {
			p2.Block(leafFor[axiom])
		}
		assert.False(t, p2.IsDerivable("goal"),
			"goal should not survive removing all of %v", just.Elements())
	}
}

func TestFacadeBlockingAndProof(t *testing.T) {
	b, j := pinpointGraph()
	p, err := New(Options[string, string]{Graph: b, Justifier: j})
	require.NoError(t, err)

	p.Block("mid1")
	assert.True(t, p.IsDerivable("goal"))
	assert.True(t, p.BlockedConclusions().Has("mid1"))

	tree, err := p.ProofTree("goal")
	require.NoError(t, err)
	assert.Equal(t, "viaMid2", tree.Inference.Name())

	p.Block("mid2")
	assert.False(t, p.IsDerivable("goal"))
	_, err = p.ProofTree("goal")
	assert.ErrorIs(t, err, internalerr.ErrNotDerivable)

	p.Unblock("mid1")
	assert.True(t, p.IsDerivable("goal"))
}

func TestFacadeSelectionOption(t *testing.T) {
	b, j := pinpointGraph()
	p, err := New(Options[string, string]{
		Graph:     b,
		Justifier: j,
		Selection: justifications.TopDown[string, string](),
	})
	require.NoError(t, err)

	justs, err := p.Justifications("goal")
	require.NoError(t, err)
	assert.ElementsMatch(t, [][]string{{"a1", "a2"}, {"a2", "a3"}}, sorted(justs))
}

func TestOneShotHelpers(t *testing.T) {
	b, j := pinpointGraph()

	derivable, err := IsDerivable[string](b, "goal")
	require.NoError(t, err)
	assert.True(t, derivable)

	justs, err := Justifications[string, string](b, j, "goal")
	require.NoError(t, err)
	assert.Len(t, justs, 2)

	hittingSets, err := MinimalHittingSets([]sets.Set[string]{
		sets.Of("a", "b"),
		sets.Of("b", "c"),
		sets.Of("c"),
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, [][]string{{"b", "c"}, {"a", "c"}}, sorted(hittingSets))
}

func TestNewRequiresGraph(t *testing.T) {
	_, err := New(Options[string, string]{Justifier: graph.NoAxioms[string, string]()})
	assert.ErrorIs(t, err, internalerr.ErrInvalidInput)
}
