// Package graph defines the inference-graph contracts consumed by the
// engines: inferences, inference sets, and justifiers. An inference derives
// one conclusion from a finite ordered sequence of premises; a justifier
// maps each inference to the set of atomic axioms it depends on.
package graph

import "github.com/OmOmofonmwan/puli/pkg/puli/sets"

// Inference derives a conclusion from premises.
//
// Premises may repeat; the engines treat them as a set where set semantics
// matter. Implementations must be valid map keys, engines index inferences
// directly (the Builder returns pointers, which always qualify).
type Inference[C comparable] interface {
	// Conclusion returns the derived conclusion.
	Conclusion() C

	// Premises returns the ordered premise sequence. Callers must not
	// modify the returned slice.
	Premises() []C

	// Name returns a diagnostic label for the inference.
	Name() string
}

// InferenceSet yields, for a conclusion, the finite collection of inferences
// producing it. The result must be semantically stable within a query; each
// call may return a freshly built slice.
type InferenceSet[C comparable] interface {
	InferencesOf(conclusion C) []Inference[C]
}

// Justifier maps an inference to the set of axioms it depends on.
type Justifier[C, A comparable] interface {
	JustificationOf(inf Inference[C]) sets.Set[A]
}

// ChangeListener is notified when inferences already returned by an
// InferenceSet may have changed, i.e. calling InferencesOf again with the
// same conclusion may produce a different result.
type ChangeListener interface {
	InferencesChanged()
}

// DynamicInferenceSet is an InferenceSet whose changes can be monitored.
// Engines do not subscribe automatically; callers invalidate engine state
// themselves when notified.
type DynamicInferenceSet[C comparable] interface {
	InferenceSet[C]

	AddListener(l ChangeListener)
	RemoveListener(l ChangeListener)

	// Dispose releases external resources. The set must not be used after
	// Dispose returns.
	Dispose()
}

// IsTautology reports whether the conclusion of inf appears among its
// premises. Tautologies are excluded from resolution.
func IsTautology[C comparable](inf Inference[C]) bool {
	c := inf.Conclusion()
	for _, p := range inf.Premises() {
		if p == c {
			return true
		}
	}
	return false
}

// inference is the plain value implementation returned by NewInference.
type inference[C comparable] struct {
	conclusion C
	premises   []C
	name       string
}

// NewInference creates an inference deriving conclusion from premises.
func NewInference[C comparable](conclusion C, premises []C, name string) Inference[C] {
	return &inference[C]{conclusion: conclusion, premises: premises, name: name}
}

func (i *inference[C]) Conclusion() C  { return i.conclusion }
func (i *inference[C]) Premises() []C  { return i.premises }
func (i *inference[C]) Name() string   { return i.name }
func (i *inference[C]) String() string { return i.name }
