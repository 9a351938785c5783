// Package prooftree reconstructs derivation trees from an inference graph
// and renders them for terminals. A tree uses only inferences whose
// premises are all derivable; forbidden conclusions are treated as if no
// inference produced them.
package prooftree

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/OmOmofonmwan/puli/pkg/puli/graph"
	"github.com/OmOmofonmwan/puli/pkg/puli/internalerr"
	"github.com/OmOmofonmwan/puli/pkg/puli/sets"
)

// Node is one step of a derivation tree: the conclusion, the inference that
// derived it, and one subtree per premise.
type Node[C comparable] struct {
	Conclusion C
	Inference  graph.Inference[C]
	Premises   []*Node[C]
}

// Derive builds one derivation tree for goal, skipping inferences with
// non-derivable premises and treating forbidden conclusions as
// underivable. Returns internalerr.ErrNotDerivable when no derivation
// exists. The tree is well-founded even on cyclic graphs: each conclusion
// is derived by the first inference all of whose premises were derived
// before it.
func Derive[C comparable](g graph.InferenceSet[C], goal C, forbidden sets.Set[C]) (*Node[C], error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil inference set", internalerr.ErrInvalidInput)
	}

	// collect the conclusions reachable from the goal
	reachable := []C{goal}
	seen := sets.Of(goal)
	for i := 0; i < len(reachable); i++ {
		if forbidden.Has(reachable[i]) {
			continue
		}
		for _, inf := range g.InferencesOf(reachable[i]) {
			for _, p := range inf.Premises() {
				if seen.Add(p) {
					reachable = append(reachable, p)
				}
			}
		}
	}

	// saturate: fire inferences whose premises all fired already, keeping
	// the first firing per conclusion
	firedBy := make(map[C]graph.Inference[C])
	for changed := true; changed; {
		changed = false
		for _, c := range reachable {
			if forbidden.Has(c) {
				continue
			}
			if _, ok := firedBy[c]; ok {
				continue
			}
			for _, inf := range g.InferencesOf(c) {
				if premisesFired(inf, firedBy, forbidden) {
					firedBy[c] = inf
					changed = true
					break
				}
			}
		}
	}

	if _, ok := firedBy[goal]; !ok {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrNotDerivable, goal)
	}
	return build(goal, firedBy), nil
}

func premisesFired[C comparable](inf graph.Inference[C], firedBy map[C]graph.Inference[C], forbidden sets.Set[C]) bool {
	for _, p := range inf.Premises() {
		if forbidden.Has(p) {
			return false
		}
		if _, ok := firedBy[p]; !ok {
			return false
		}
	}
	return true
}

func build[C comparable](conclusion C, firedBy map[C]graph.Inference[C]) *Node[C] {
	inf := firedBy[conclusion]
	node := &Node[C]{Conclusion: conclusion, Inference: inf}
	for _, p := range inf.Premises() {
		node.Premises = append(node.Premises, build(p, firedBy))
	}
	return node
}

// Printer renders derivation trees with optional axiom annotations.
type Printer[C, A comparable] struct {
	// Justifier, when set, annotates each step with its axioms.
	Justifier graph.Justifier[C, A]
}

var (
	conclusionColor = color.New(color.FgCyan)
	inferenceColor  = color.New(color.FgYellow)
	axiomColor      = color.New(color.FgGreen)
)

// Print writes an indented rendering of the tree to w.
func (p *Printer[C, A]) Print(w io.Writer, root *Node[C]) {
	p.print(w, root, "", "")
}

func (p *Printer[C, A]) print(w io.Writer, n *Node[C], prefix, childPrefix string) {
	fmt.Fprintf(w, "%s%s", prefix, conclusionColor.Sprintf("%v", n.Conclusion))
	fmt.Fprintf(w, "  %s", inferenceColor.Sprintf("[%s]", n.Inference.Name()))
	if p.Justifier != nil {
		if axioms := p.Justifier.JustificationOf(n.Inference); axioms.Len() > 0 {
			fmt.Fprintf(w, "  %s", axiomColor.Sprintf("%v", axioms.Elements()))
		}
	}
	fmt.Fprintln(w)
	for i, child := range n.Premises {
		if i == len(n.Premises)-1 {
			p.print(w, child, childPrefix+"└─ ", childPrefix+"   ")
		} else {
			p.print(w, child, childPrefix+"├─ ", childPrefix+"│  ")
		}
	}
}
