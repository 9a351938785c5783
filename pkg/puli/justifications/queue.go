package justifications

import "github.com/OmOmofonmwan/puli/pkg/puli/sets"

// queueElement is a carrier on the production queue. Elements expose their
// ordering fields without materializing the derived inference; resolvents
// build theirs only when popped.
type queueElement[C, A comparable] interface {
	// inference materializes the derived inference.
	inference() *DerivedInference[C, A]

	// premiseCount returns the premise count of the materialized
	// inference without computing it.
	premiseCount() int

	// isTautology reports whether the materialized inference would be a
	// tautology.
	isTautology() bool

	// priority returns the key the element is ordered by.
	priority() any
}

// direct wraps an already materialized derived inference.
type direct[C, A comparable] struct {
	inf  *DerivedInference[C, A]
	prio any
}

func (d *direct[C, A]) inference() *DerivedInference[C, A] { return d.inf }
func (d *direct[C, A]) premiseCount() int                  { return d.inf.premises.Len() }
func (d *direct[C, A]) isTautology() bool                  { return d.inf.IsTautology() }
func (d *direct[C, A]) priority() any                      { return d.prio }

// resolvent is the lazy pair form: the resolved inference of first and
// second is built only on extraction. The justification union is shared
// with the materialized inference, the premise union is never built here.
type resolvent[C, A comparable] struct {
	first, second *DerivedInference[C, A]
	justification sets.Set[A]
	nPremises     int
	prio          any
}

// newResolvent pairs two non-tautological inferences where the conclusion
// of first is a premise of second.
func newResolvent[C, A comparable](first, second *DerivedInference[C, A], order JustificationOrder[A]) *resolvent[C, A] {
	justification := sets.Union(first.justification, second.justification)
	return &resolvent[C, A]{
		first:         first,
		second:        second,
		justification: justification,
		// the resolved premise is eliminated; correct while first is
		// not a tautology
		nPremises: sets.UnionLen(first.premises, second.premises) - 1,
		prio:      order.PriorityOf(justification),
	}
}

func (r *resolvent[C, A]) inference() *DerivedInference[C, A] {
	inf := resolve(r.first, r.second)
	inf.justification = r.justification
	return inf
}

func (r *resolvent[C, A]) premiseCount() int { return r.nPremises }

func (r *resolvent[C, A]) isTautology() bool {
	// correct while second is not a tautology
	return r.first.premises.Has(r.second.conclusion)
}

func (r *resolvent[C, A]) priority() any { return r.prio }

// productionQueue is a binary min-heap of queue elements, ordered by
// priority first and ascending premise count on ties. Single-threaded, like
// the engine that owns it.
type productionQueue[C, A comparable] struct {
	heap  []queueElement[C, A]
	order JustificationOrder[A]
}

func newProductionQueue[C, A comparable](order JustificationOrder[A]) *productionQueue[C, A] {
	return &productionQueue[C, A]{order: order}
}

func (q *productionQueue[C, A]) less(x, y queueElement[C, A]) bool {
	if c := q.order.Compare(x.priority(), y.priority()); c != 0 {
		return c < 0
	}
	return x.premiseCount() < y.premiseCount()
}

func (q *productionQueue[C, A]) push(el queueElement[C, A]) {
	q.heap = append(q.heap, el)
	q.bubbleUp(len(q.heap) - 1)
}

func (q *productionQueue[C, A]) pop() (queueElement[C, A], bool) {
	if len(q.heap) == 0 {
		return nil, false
	}
	root := q.heap[0]
	last := len(q.heap) - 1
	q.heap[0] = q.heap[last]
	q.heap[last] = nil
	q.heap = q.heap[:last]
	if len(q.heap) > 0 {
		q.bubbleDown(0)
	}
	return root, true
}

func (q *productionQueue[C, A]) bubbleUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !q.less(q.heap[i], q.heap[parent]) {
			return
		}
		q.heap[i], q.heap[parent] = q.heap[parent], q.heap[i]
		i = parent
	}
}

func (q *productionQueue[C, A]) bubbleDown(i int) {
	n := len(q.heap)
	for {
		smallest := i
		if l := 2*i + 1; l < n && q.less(q.heap[l], q.heap[smallest]) {
			smallest = l
		}
		if r := 2*i + 2; r < n && q.less(q.heap[r], q.heap[smallest]) {
			smallest = r
		}
		if smallest == i {
			return
		}
		q.heap[i], q.heap[smallest] = q.heap[smallest], q.heap[i]
		i = smallest
	}
}
