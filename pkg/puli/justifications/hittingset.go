package justifications

import (
	"fmt"

	"github.com/OmOmofonmwan/puli/pkg/puli/graph"
	"github.com/OmOmofonmwan/puli/pkg/puli/internalerr"
	"github.com/OmOmofonmwan/puli/pkg/puli/interrupt"
	"github.com/OmOmofonmwan/puli/pkg/puli/sets"
)

// transversal is the conclusion type of the synthetic hitting-set graph: a
// distinct variant rather than a runtime-distinguished sentinel value. The
// value {goal: true} is the root; {member: i} stands for "set i is hit".
type transversal struct {
	goal   bool
	member int
}

func (t transversal) String() string {
	if t.goal {
		return "hit-all"
	}
	return fmt.Sprintf("hit-%d", t.member)
}

// transversalGraph derives the root from one premise per input set, and
// each premise from one premise-free inference per element of that
// set, justified by the element alone. Minimal justifications of the root
// are then exactly the minimal hitting sets of the family.
type transversalGraph[E comparable] struct {
	root     graph.Inference[transversal]
	elements map[transversal][]graph.Inference[transversal]
	axioms   map[graph.Inference[transversal]]sets.Set[E]
}

func newTransversalGraph[E comparable](family []sets.Set[E]) *transversalGraph[E] {
	g := &transversalGraph[E]{
		elements: make(map[transversal][]graph.Inference[transversal], len(family)),
		axioms:   make(map[graph.Inference[transversal]]sets.Set[E]),
	}
	premises := make([]transversal, len(family))
	for i, set := range family {
		member := transversal{member: i}
		premises[i] = member
		for e := range set {
			inf := graph.NewInference(member, nil, fmt.Sprintf("element(%d,%v)", i, e))
			g.elements[member] = append(g.elements[member], inf)
			g.axioms[inf] = sets.Of(e)
		}
	}
	g.root = graph.NewInference(transversal{goal: true}, premises, "hit-all")
	return g
}

func (g *transversalGraph[E]) InferencesOf(conclusion transversal) []graph.Inference[transversal] {
	if conclusion.goal {
		return []graph.Inference[transversal]{g.root}
	}
	return g.elements[conclusion]
}

func (g *transversalGraph[E]) JustificationOf(inf graph.Inference[transversal]) sets.Set[E] {
	return g.axioms[inf]
}

// NewHittingSetEnumerator returns an enumerator of the subset-minimal
// hitting sets of the family: the minimal sets intersecting every member.
// An empty member set makes the family unhittable and nothing is emitted.
// A nil monitor means the enumeration is never interrupted.
func NewHittingSetEnumerator[E comparable](family []sets.Set[E], monitor interrupt.Monitor) (MinimalSubsetEnumerator[E], error) {
	if family == nil {
		return nil, fmt.Errorf("%w: nil set family", internalerr.ErrInvalidInput)
	}
	g := newTransversalGraph(family)
	engine, err := NewEngine[transversal, E](g, graph.JustifierFunc[transversal, E](g.JustificationOf), monitor)
	if err != nil {
		return nil, err
	}
	return engine.NewEnumerator(transversal{goal: true}), nil
}

// MinimalHittingSets computes all minimal hitting sets of the family in
// ascending size.
func MinimalHittingSets[E comparable](family []sets.Set[E]) ([]sets.Set[E], error) {
	en, err := NewHittingSetEnumerator(family, interrupt.Never)
	if err != nil {
		return nil, err
	}
	return Collect(en)
}
