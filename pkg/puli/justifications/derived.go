// Package justifications enumerates all subset-minimal justifications of a
// goal conclusion by resolving derived inferences. An inference X resolves
// with an inference Y when the conclusion of X is a premise of Y; the result
// keeps the conclusion of Y, the remaining premises of both, and the union
// of both justifications.
package justifications

import (
	"fmt"

	"github.com/OmOmofonmwan/puli/pkg/puli/minimality"
	"github.com/OmOmofonmwan/puli/pkg/puli/sets"
)

// fingerprint salts keep the three member kinds of a derived inference on
// distinct Bloom bits.
const (
	saltConclusion = 0x51ed270b
	saltPremise    = 0x9f34c3e6
	saltAxiom      = 0x27220a95
)

// DerivedInference is an inference obtained either by lifting an original
// inference of the graph or by resolving two derived inferences. Premises
// are a set; the justification is the union of axiom sets along the way.
type DerivedInference[C, A comparable] struct {
	conclusion    C
	premises      sets.Set[C]
	justification sets.Set[A]

	// minimal records that the inference passed the per-conclusion
	// minimality test; it survives requeueing.
	minimal bool

	fp     uint64
	fpDone bool
}

// Conclusion returns the derived conclusion.
func (d *DerivedInference[C, A]) Conclusion() C { return d.conclusion }

// Premises returns the premise set. Callers must not modify it.
func (d *DerivedInference[C, A]) Premises() sets.Set[C] { return d.premises }

// Justification returns the justification set. Callers must not modify it.
func (d *DerivedInference[C, A]) Justification() sets.Set[A] { return d.justification }

// IsTautology reports whether the conclusion is among the premises.
func (d *DerivedInference[C, A]) IsTautology() bool {
	return d.premises.Has(d.conclusion)
}

func (d *DerivedInference[C, A]) String() string {
	return fmt.Sprintf("%v -| %v: %v", d.conclusion, d.premises.Elements(), d.justification.Elements())
}

// fingerprint computes (once) the Bloom fingerprint over the conclusion,
// premises, and justification axioms, salted per kind.
func (d *DerivedInference[C, A]) fingerprint(hashC func(C) uint64, hashA func(A) uint64) uint64 {
	if d.fpDone {
		return d.fp
	}
	fp := uint64(1) << (minimality.Mix(hashC(d.conclusion), saltConclusion) & 63)
	for p := range d.premises {
		fp |= 1 << (minimality.Mix(hashC(p), saltPremise) & 63)
	}
	for a := range d.justification {
		fp |= 1 << (minimality.Mix(hashA(a), saltAxiom) & 63)
	}
	d.fp = fp
	d.fpDone = true
	return fp
}

// subsumes reports whether x dominates y: same conclusion, premises of x a
// subset of those of y, justification of x a subset of that of y.
func subsumes[C, A comparable](x, y *DerivedInference[C, A]) bool {
	return x.conclusion == y.conclusion &&
		y.premises.ContainsAll(x.premises) &&
		y.justification.ContainsAll(x.justification)
}

// resolve combines first and second on the conclusion of first, which must
// be a premise of second. Neither input may be a tautology.
func resolve[C, A comparable](first, second *DerivedInference[C, A]) *DerivedInference[C, A] {
	var premises sets.Set[C]
	if second.premises.Len() == 1 {
		// the only premise of second is eliminated
		premises = first.premises
	} else {
		premises = make(sets.Set[C], first.premises.Len()+second.premises.Len()-1)
		for p := range first.premises {
			premises[p] = struct{}{}
		}
		for p := range second.premises {
			if p != first.conclusion {
				premises[p] = struct{}{}
			}
		}
	}
	return &DerivedInference[C, A]{
		conclusion:    second.conclusion,
		premises:      premises,
		justification: sets.Union(first.justification, second.justification),
	}
}
