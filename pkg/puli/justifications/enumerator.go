package justifications

import (
	"fmt"

	"github.com/OmOmofonmwan/puli/pkg/puli/internalerr"
	"github.com/OmOmofonmwan/puli/pkg/puli/minimality"
	"github.com/OmOmofonmwan/puli/pkg/puli/sets"
)

// Listener receives each minimal set exactly once, in the enumeration
// order. The listener may read the set but must not modify it, and must not
// call back into the engine that emitted it.
type Listener[E comparable] func(set sets.Set[E])

// MinimalSubsetEnumerator enumerates subset-minimal sets. When the method
// returns without error or interruption, the listener has been notified
// about all of them.
type MinimalSubsetEnumerator[E comparable] interface {
	// Enumerate emits in ascending set size, the default order.
	Enumerate(listener Listener[E]) error

	// EnumerateOrdered emits in the order of the given set comparator,
	// which must be monotone under set inclusion.
	EnumerateOrdered(compare func(a, b sets.Set[E]) int, listener Listener[E]) error

	// EnumerateWith emits in the order of the given JustificationOrder.
	EnumerateWith(order JustificationOrder[E], listener Listener[E]) error
}

// Collect runs en with the default order and gathers the emitted sets.
func Collect[E comparable](en MinimalSubsetEnumerator[E]) ([]sets.Set[E], error) {
	var out []sets.Set[E]
	err := en.Enumerate(func(set sets.Set[E]) {
		out = append(out, set)
	})
	return out, err
}

// Enumerator enumerates the minimal justifications of one goal.
type Enumerator[C, A comparable] struct {
	engine *Engine[C, A]
	goal   C
}

var _ MinimalSubsetEnumerator[int] = (*Enumerator[string, int])(nil)

// Enumerate emits the minimal justifications in ascending size.
func (en *Enumerator[C, A]) Enumerate(listener Listener[A]) error {
	return en.EnumerateWith(CardinalityOrder[A](), listener)
}

// EnumerateOrdered emits the minimal justifications in the order of the
// given comparator, which must be monotone under set inclusion.
func (en *Enumerator[C, A]) EnumerateOrdered(compare func(a, b sets.Set[A]) int, listener Listener[A]) error {
	if compare == nil {
		return en.Enumerate(listener)
	}
	return en.EnumerateWith(OrderBy(compare), listener)
}

// EnumerateWith emits the minimal justifications in the order given. A nil
// order falls back to the default.
func (en *Enumerator[C, A]) EnumerateWith(order JustificationOrder[A], listener Listener[A]) error {
	if listener == nil {
		return fmt.Errorf("%w: nil listener", internalerr.ErrInvalidInput)
	}
	if order == nil {
		order = CardinalityOrder[A]()
	}
	q := &query[C, A]{
		engine:   en.engine,
		goal:     en.goal,
		order:    order,
		listener: listener,
		minimalJustifications: minimality.NewIndex(
			func(s sets.Set[A]) uint64 { return minimality.SetFingerprint(s, en.engine.hashA) },
			func(x, y sets.Set[A]) bool { return y.ContainsAll(x) },
		),
		queue: newProductionQueue[C, A](order),
	}
	q.initialize()
	q.unblockJobs()
	q.changeSelection()
	q.process()
	return nil
}

// query holds the state of a single enumeration run.
type query[C, A comparable] struct {
	engine   *Engine[C, A]
	goal     C
	order    JustificationOrder[A]
	listener Listener[A]

	// justifications already emitted for this goal
	minimalJustifications *minimality.Index[sets.Set[A]]

	// produced queue elements pending processing
	queue *productionQueue[C, A]

	// conclusions whose inferences still have to be lifted
	toInitialize []C
}

// initialize lifts every inference reachable from the goal that was not
// lifted by an earlier enumeration of this engine.
func (q *query[C, A]) initialize() {
	q.enqueueInit(q.goal)
	for len(q.toInitialize) > 0 {
		next := q.toInitialize[0]
		q.toInitialize = q.toInitialize[1:]
		for _, inf := range q.engine.graph.InferencesOf(next) {
			q.produce(q.direct(q.engine.lift(inf)))
			for _, p := range inf.Premises() {
				q.enqueueInit(p)
			}
		}
	}
}

func (q *query[C, A]) enqueueInit(conclusion C) {
	if q.engine.initialized.Add(conclusion) {
		q.toInitialize = append(q.toInitialize, conclusion)
	}
}

// unblockJobs requeues inferences shelved by earlier enumerations; they may
// be minimal for this goal.
func (q *query[C, A]) unblockJobs() {
	for _, inf := range q.engine.blockedInferences {
		q.produce(q.direct(inf))
	}
	q.engine.blockedInferences = q.engine.blockedInferences[:0]
}

// changeSelection requeues inferences previously indexed under the goal as
// selected conclusion: a selection rule may decide differently now that
// this conclusion is the goal.
func (q *query[C, A]) changeSelection() {
	for _, inf := range q.engine.bySelectedConclusion[q.goal] {
		q.produce(q.direct(inf))
	}
	delete(q.engine.bySelectedConclusion, q.goal)
}

func (q *query[C, A]) direct(inf *DerivedInference[C, A]) queueElement[C, A] {
	return &direct[C, A]{inf: inf, prio: q.order.PriorityOf(inf.justification)}
}

// produce admits an element to the queue, dropping tautologies before they
// can pollute it.
func (q *query[C, A]) produce(el queueElement[C, A]) {
	if el.isTautology() {
		return
	}
	q.engine.producedCount++
	q.queue.push(el)
}

func (q *query[C, A]) process() {
	e := q.engine
	for {
		if e.monitor.IsInterrupted() {
			break
		}
		next, ok := q.queue.pop()
		if !ok {
			break
		}
		inf := next.inference()
		if !q.minimalJustifications.IsMinimal(inf.justification) {
			e.shelve(inf)
			continue
		}
		if inf.premises.Len() == 0 && inf.conclusion == q.goal {
			q.minimalJustifications.Add(inf.justification)
			e.log.WithField("justification", inf.justification.Elements()).Trace("minimal justification")
			q.listener(inf.justification)
			e.shelve(inf)
			continue
		}
		if !inf.minimal {
			minimalInferences := e.minimalInferences(inf.conclusion)
			if !minimalInferences.IsMinimal(inf) {
				// subsumed by a stored inference
				continue
			}
			inf.minimal = true
			minimalInferences.Add(inf)
			e.minimalCount++
		}
		if selected, ok := e.selection.ResolvingAtom(inf, e.graph, q.goal); ok {
			// resolve on the selected premise
			e.bySelectedPremise[selected] = append(e.bySelectedPremise[selected], inf)
			for _, other := range e.bySelectedConclusion[selected] {
				q.produce(newResolvent(other, inf, q.order))
			}
		} else {
			// resolve on the conclusion
			selected := inf.conclusion
			if selected == q.goal {
				panic(fmt.Errorf("%w: goal conclusion selected while premises remain", internalerr.ErrImpossibleState))
			}
			e.bySelectedConclusion[selected] = append(e.bySelectedConclusion[selected], inf)
			for _, other := range e.bySelectedPremise[selected] {
				q.produce(newResolvent(inf, other, q.order))
			}
		}
	}
}
