package graph

import "github.com/OmOmofonmwan/puli/pkg/puli/sets"

// JustifierFunc adapts a function to the Justifier interface.
type JustifierFunc[C, A comparable] func(inf Inference[C]) sets.Set[A]

func (f JustifierFunc[C, A]) JustificationOf(inf Inference[C]) sets.Set[A] {
	return f(inf)
}

// ByName justifies inferences by their diagnostic name. Inferences without
// an entry get an empty justification.
type ByName[C, A comparable] map[string]sets.Set[A]

func (j ByName[C, A]) JustificationOf(inf Inference[C]) sets.Set[A] {
	return j[inf.Name()]
}

// NoAxioms returns a justifier assigning the empty justification to every
// inference.
func NoAxioms[C, A comparable]() Justifier[C, A] {
	return JustifierFunc[C, A](func(Inference[C]) sets.Set[A] {
		return nil
	})
}
