// Package derivability checks whether conclusions are derivable by the
// inferences of a graph. A conclusion is derivable when it is the conclusion
// of an inference whose premises are all (recursively) derivable.
//
// The checker is incremental: state built by one query is reused by the
// next. Conclusions can be dynamically blocked, which excludes them from
// every derivation and retracts every conclusion derived through them;
// retracted conclusions with other support are derived again by later
// queries.
package derivability

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/OmOmofonmwan/puli/pkg/puli/graph"
	"github.com/OmOmofonmwan/puli/pkg/puli/internalerr"
	"github.com/OmOmofonmwan/puli/pkg/puli/sets"
)

// Checker answers derivability queries with dynamic blocking. It is
// stateful and single-threaded; concurrent use is undefined.
type Checker[C comparable] struct {
	graph graph.InferenceSet[C]

	// conclusions that cannot be used in derivations
	blocked sets.Set[C]

	// conclusions for which a derivability test was initiated
	goals sets.Set[C]

	// goals found derivable
	derivable sets.Set[C]

	// goals whose inference list has not been pulled from the graph yet
	toCheck []C

	// LIFO stack of cursors over unexpanded inferences; every cursor on
	// the stack has at least one unexamined inference
	toExpand []*infCursor[C]

	// derivable goals not yet propagated to waiting inferences
	toPropagate []C

	// for each not-yet-derivable premise, the suspended premise scans
	// waiting on it
	watched map[C][]*scan[C]

	// for each premise, the inferences that fired using it
	fired map[C]map[graph.Inference[C]]struct{}

	log logrus.FieldLogger
}

// infCursor walks the inference snapshot of one conclusion.
type infCursor[C comparable] struct {
	infs []graph.Inference[C]
	next int
}

// scan records where the premise walk of a waiting inference stopped. The
// entry under watched[p] always has p as its next un-derived premise.
type scan[C comparable] struct {
	inf      graph.Inference[C]
	premises []C
	next     int
}

// NewChecker creates a checker over the given inference graph.
func NewChecker[C comparable](g graph.InferenceSet[C]) (*Checker[C], error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil inference set", internalerr.ErrInvalidInput)
	}
	return &Checker[C]{
		graph:     g,
		blocked:   sets.New[C](),
		goals:     sets.New[C](),
		derivable: sets.New[C](),
		watched:   make(map[C][]*scan[C]),
		fired:     make(map[C]map[graph.Inference[C]]struct{}),
		log:       logrus.StandardLogger(),
	}, nil
}

// SetLogger replaces the logger used for trace output.
func (ch *Checker[C]) SetLogger(log logrus.FieldLogger) {
	ch.log = log
}

// IsDerivable reports whether conclusion is derivable by the inferences of
// the graph, excluding blocked conclusions.
func (ch *Checker[C]) IsDerivable(conclusion C) bool {
	if ch.blocked.Has(conclusion) {
		return false
	}
	ch.log.WithField("conclusion", conclusion).Trace("checking derivability")
	ch.enqueueGoal(conclusion)
	ch.process()
	derivable := ch.derivable.Has(conclusion)
	ch.log.WithFields(logrus.Fields{
		"conclusion": conclusion,
		"derivable":  derivable,
	}).Trace("derivability checked")
	return derivable
}

// Block excludes conclusion from all derivations and retracts everything
// that was derived through it. It reports whether the conclusion was not
// blocked before.
func (ch *Checker[C]) Block(conclusion C) bool {
	if !ch.blocked.Add(conclusion) {
		return false
	}
	ch.log.WithField("conclusion", conclusion).Trace("blocked")
	ch.unCheck(conclusion)
	return true
}

// Unblock removes conclusion from the blocked set and, if it is still
// wanted by suspended inferences, re-runs derivability for it. It reports
// whether the conclusion was blocked before.
func (ch *Checker[C]) Unblock(conclusion C) bool {
	if !ch.blocked.Remove(conclusion) {
		return false
	}
	ch.log.WithField("conclusion", conclusion).Trace("unblocked")
	if ch.goals.Remove(conclusion) && len(ch.watched[conclusion]) > 0 {
		ch.enqueueGoal(conclusion)
		ch.process()
	}
	return true
}

// BlockedConclusions returns the currently blocked conclusions. The result
// is the live set and must not be modified.
func (ch *Checker[C]) BlockedConclusions() sets.Set[C] {
	return ch.blocked
}

// NonDerivableConclusions returns the conclusions currently blocking
// progress of some pending inference, i.e. the premises that suspended
// inferences wait on. A queried conclusion for which IsDerivable returned
// false is included only when some pending inference waits on it. For each
// element that is not blocked, the set holds at least one premise of every
// inference producing it; it may also contain blocked conclusions and
// premises of alternative inferences for derivable conclusions. Useful for
// diagnosing why something is not derivable.
func (ch *Checker[C]) NonDerivableConclusions() sets.Set[C] {
	out := make(sets.Set[C], len(ch.watched))
	for c := range ch.watched {
		out[c] = struct{}{}
	}
	return out
}

// process runs the two-phase loop to fixpoint: pending goals are expanded
// LIFO for depth-first descent, fresh derivations are propagated FIFO to
// the scans waiting on them.
func (ch *Checker[C]) process() {
	for {
		if len(ch.toCheck) > 0 {
			next := ch.toCheck[0]
			ch.toCheck = ch.toCheck[1:]
			if ch.blocked.Has(next) {
				continue
			}
			infs := ch.graph.InferencesOf(next)
			if len(infs) > 0 {
				ch.toExpand = append(ch.toExpand, &infCursor[C]{infs: infs})
			}
			continue
		}

		if len(ch.toPropagate) > 0 {
			next := ch.toPropagate[0]
			ch.toPropagate = ch.toPropagate[1:]
			waiting := ch.watched[next]
			delete(ch.watched, next)
			for _, sc := range waiting {
				ch.check(sc)
			}
			continue
		}

		if n := len(ch.toExpand); n > 0 {
			cursor := ch.toExpand[n-1]
			inf := cursor.infs[cursor.next]
			cursor.next++
			if ch.derivable.Has(inf.Conclusion()) {
				// remaining inferences cannot add anything
				ch.toExpand = ch.toExpand[:n-1]
				continue
			}
			ch.log.WithField("inference", inf.Name()).Trace("expanding")
			ch.check(&scan[C]{inf: inf, premises: inf.Premises()})
			if cursor.next == len(cursor.infs) {
				ch.toExpand = ch.toExpand[:n-1]
			}
			continue
		}

		return
	}
}

func (ch *Checker[C]) enqueueGoal(conclusion C) {
	if ch.goals.Add(conclusion) {
		ch.log.WithField("conclusion", conclusion).Trace("new goal")
		ch.toCheck = append(ch.toCheck, conclusion)
	}
}

// check advances the premise scan to the first un-derived premise and
// suspends there; when all premises are derived the inference fires.
func (ch *Checker[C]) check(sc *scan[C]) {
	for sc.next < len(sc.premises) {
		p := sc.premises[sc.next]
		if !ch.derivable.Has(p) {
			ch.addWatch(p, sc)
			return
		}
		sc.next++
	}
	ch.log.WithField("inference", sc.inf.Name()).Trace("fire")
	ch.fire(sc.inf)
}

func (ch *Checker[C]) addWatch(premise C, sc *scan[C]) {
	ch.watched[premise] = append(ch.watched[premise], sc)
	ch.enqueueGoal(premise)
}

func (ch *Checker[C]) fire(inf graph.Inference[C]) {
	conclusion := inf.Conclusion()
	if ch.derivable.Add(conclusion) {
		ch.log.WithField("conclusion", conclusion).Trace("derived")
		ch.toPropagate = append(ch.toPropagate, conclusion)
	}
	for _, p := range inf.Premises() {
		byPremise := ch.fired[p]
		if byPremise == nil {
			byPremise = make(map[graph.Inference[C]]struct{})
			ch.fired[p] = byPremise
		}
		byPremise[inf] = struct{}{}
	}
}

// unCheck retracts conclusion and, transitively, every conclusion with a
// recorded derivation through it, even when other derivations exist; those
// are found again when the conclusion is next checked. Watch lists are left
// alone; Unblock re-enters a goal that is still wanted.
func (ch *Checker[C]) unCheck(conclusion C) {
	queue := []C{conclusion}
	for len(queue) > 0 {
		conclusion, queue = queue[0], queue[1:]
		if !ch.goals.Remove(conclusion) {
			continue
		}
		if !ch.derivable.Remove(conclusion) {
			continue
		}
		firedOn := ch.fired[conclusion]
		delete(ch.fired, conclusion)
		for inf := range firedOn {
			queue = append(queue, inf.Conclusion())
			for _, p := range inf.Premises() {
				if p == conclusion {
					continue
				}
				if byPremise := ch.fired[p]; byPremise != nil {
					delete(byPremise, inf)
				}
			}
		}
	}
}
