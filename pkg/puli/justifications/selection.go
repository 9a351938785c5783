package justifications

import (
	"math"

	"github.com/OmOmofonmwan/puli/pkg/puli/graph"
)

// DefaultThreshold is the premise-inference-count threshold of the default
// selection strategy.
const DefaultThreshold = 2

// Selection picks the literal of a derived inference on which resolution
// pivots. Returning ok=false selects the conclusion; otherwise the returned
// premise is selected. Selecting the conclusion of an inference whose
// conclusion is the current goal while premises remain is an internal
// error: the goal is the terminal sink of resolution.
type Selection[C, A comparable] interface {
	ResolvingAtom(inf *DerivedInference[C, A], g graph.InferenceSet[C], goal C) (premise C, ok bool)
}

// SelectionFactory creates the selection strategy for an engine.
type SelectionFactory[C, A comparable] func(e *Engine[C, A]) Selection[C, A]

// minCountPremise returns the premise derived by the fewest inferences of
// the graph and that count; ok=false when there are no premises.
func minCountPremise[C, A comparable](inf *DerivedInference[C, A], g graph.InferenceSet[C]) (premise C, count int, ok bool) {
	count = math.MaxInt
	for p := range inf.premises {
		if n := len(g.InferencesOf(p)); n < count {
			premise = p
			count = n
			ok = true
		}
	}
	return premise, count, ok
}

// BottomUp always selects the premise derived by the fewest inferences;
// with no premises the conclusion is selected.
func BottomUp[C, A comparable]() SelectionFactory[C, A] {
	return func(*Engine[C, A]) Selection[C, A] { return bottomUp[C, A]{} }
}

type bottomUp[C, A comparable] struct{}

func (bottomUp[C, A]) ResolvingAtom(inf *DerivedInference[C, A], g graph.InferenceSet[C], goal C) (C, bool) {
	p, _, ok := minCountPremise(inf, g)
	return p, ok
}

// TopDown selects the conclusion unless it is the goal and premises remain,
// in which case the premise derived by the fewest inferences is selected.
func TopDown[C, A comparable]() SelectionFactory[C, A] {
	return func(*Engine[C, A]) Selection[C, A] { return topDown[C, A]{} }
}

type topDown[C, A comparable] struct{}

func (topDown[C, A]) ResolvingAtom(inf *DerivedInference[C, A], g graph.InferenceSet[C], goal C) (C, bool) {
	if inf.conclusion == goal {
		p, _, ok := minCountPremise(inf, g)
		return p, ok
	}
	var zero C
	return zero, false
}

// Threshold selects the premise derived by the fewest inferences unless
// that count exceeds the threshold and the conclusion is not the goal, in
// which case the conclusion is selected. This is the default strategy.
func Threshold[C, A comparable](threshold int) SelectionFactory[C, A] {
	return func(*Engine[C, A]) Selection[C, A] { return thresholdSelection[C, A]{threshold: threshold} }
}

type thresholdSelection[C, A comparable] struct {
	threshold int
}

func (s thresholdSelection[C, A]) ResolvingAtom(inf *DerivedInference[C, A], g graph.InferenceSet[C], goal C) (C, bool) {
	p, count, ok := minCountPremise(inf, g)
	if ok && count > s.threshold && inf.conclusion != goal {
		// resolve on the conclusion instead
		var zero C
		return zero, false
	}
	return p, ok
}
