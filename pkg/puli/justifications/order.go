package justifications

import (
	"cmp"

	"github.com/OmOmofonmwan/puli/pkg/puli/sets"
)

// JustificationOrder assigns each justification a priority key and compares
// keys. The order must be monotone under strict set inclusion: if A ⊂ B
// then the priority of A compares less than the priority of B. This is a
// caller precondition; the engine does not detect violations and may emit
// non-minimal sets under a non-monotone order.
//
// Priorities are opaque to the engine, so one order implementation can
// serve any key type.
type JustificationOrder[A comparable] interface {
	// PriorityOf computes the priority key of a justification.
	PriorityOf(justification sets.Set[A]) any

	// Compare orders two keys previously returned by PriorityOf.
	Compare(p, q any) int
}

// CardinalityOrder orders justifications by ascending size. This is the
// default order; it is trivially monotone under inclusion.
func CardinalityOrder[A comparable]() JustificationOrder[A] {
	return cardinalityOrder[A]{}
}

type cardinalityOrder[A comparable] struct{}

func (cardinalityOrder[A]) PriorityOf(justification sets.Set[A]) any {
	return justification.Len()
}

func (cardinalityOrder[A]) Compare(p, q any) int {
	return cmp.Compare(p.(int), q.(int))
}

// OrderBy adapts a set comparator to a JustificationOrder; the set itself
// is the priority key. The comparator must be monotone under inclusion.
func OrderBy[A comparable](compare func(a, b sets.Set[A]) int) JustificationOrder[A] {
	return comparatorOrder[A]{compare: compare}
}

type comparatorOrder[A comparable] struct {
	compare func(a, b sets.Set[A]) int
}

func (o comparatorOrder[A]) PriorityOf(justification sets.Set[A]) any {
	return justification
}

func (o comparatorOrder[A]) Compare(p, q any) int {
	return o.compare(p.(sets.Set[A]), q.(sets.Set[A]))
}

// KeyOrder builds a JustificationOrder from a wrapper mapping each set to a
// naturally ordered key. The natural order of keys must be monotone under
// inclusion of the wrapped sets.
func KeyOrder[A comparable, K cmp.Ordered](wrap func(justification sets.Set[A]) K) JustificationOrder[A] {
	return keyOrder[A, K]{wrap: wrap}
}

type keyOrder[A comparable, K cmp.Ordered] struct {
	wrap func(sets.Set[A]) K
}

func (o keyOrder[A, K]) PriorityOf(justification sets.Set[A]) any {
	return o.wrap(justification)
}

func (o keyOrder[A, K]) Compare(p, q any) int {
	return cmp.Compare(p.(K), q.(K))
}
