package justifications

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/OmOmofonmwan/puli/pkg/puli/graph"
	"github.com/OmOmofonmwan/puli/pkg/puli/internalerr"
	"github.com/OmOmofonmwan/puli/pkg/puli/interrupt"
	"github.com/OmOmofonmwan/puli/pkg/puli/minimality"
	"github.com/OmOmofonmwan/puli/pkg/puli/sets"
)

// Engine computes minimal justifications by resolution. It accumulates
// derived state across enumerations, also across different goals: inferences
// shelved while enumerating one goal are revisited when the goal changes.
// Single-threaded; concurrent use is undefined.
type Engine[C, A comparable] struct {
	graph     graph.InferenceSet[C]
	justifier graph.Justifier[C, A]
	monitor   interrupt.Monitor
	selection Selection[C, A]

	hashC func(C) uint64
	hashA func(A) uint64

	// conclusions whose original inferences have been lifted already
	initialized sets.Set[C]

	// subsumption index per conclusion
	minimalByConclusion map[C]*minimality.Index[*DerivedInference[C, A]]

	// derived inferences partitioned by their selected literal
	bySelectedConclusion map[C][]*DerivedInference[C, A]
	bySelectedPremise    map[C][]*DerivedInference[C, A]

	// inferences not needed for the current goal: their justification was
	// a superset of an already emitted one when processed; revisited on
	// every new enumeration
	blockedInferences []*DerivedInference[C, A]

	producedCount int
	minimalCount  int

	log logrus.FieldLogger
}

// Option configures an Engine.
type Option[C, A comparable] func(*Engine[C, A])

// WithSelection installs a selection strategy. The default is
// Threshold(DefaultThreshold).
func WithSelection[C, A comparable](factory SelectionFactory[C, A]) Option[C, A] {
	return func(e *Engine[C, A]) { e.selection = factory(e) }
}

// WithLogger replaces the logger used for trace output.
func WithLogger[C, A comparable](log logrus.FieldLogger) Option[C, A] {
	return func(e *Engine[C, A]) { e.log = log }
}

// WithHashers replaces the element hash functions used for Bloom
// fingerprints. Any functions work as long as they are deterministic.
func WithHashers[C, A comparable](hashC func(C) uint64, hashA func(A) uint64) Option[C, A] {
	return func(e *Engine[C, A]) {
		e.hashC = hashC
		e.hashA = hashA
	}
}

// NewEngine creates a justification engine over the graph and justifier. A
// nil monitor means the engine is never interrupted.
func NewEngine[C, A comparable](g graph.InferenceSet[C], justifier graph.Justifier[C, A], monitor interrupt.Monitor, opts ...Option[C, A]) (*Engine[C, A], error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil inference set", internalerr.ErrInvalidInput)
	}
	if justifier == nil {
		return nil, fmt.Errorf("%w: nil justifier", internalerr.ErrInvalidInput)
	}
	if monitor == nil {
		monitor = interrupt.Never
	}
	e := &Engine[C, A]{
		graph:                g,
		justifier:            justifier,
		monitor:              monitor,
		hashC:                minimality.Hasher[C](),
		hashA:                minimality.Hasher[A](),
		initialized:          sets.New[C](),
		minimalByConclusion:  make(map[C]*minimality.Index[*DerivedInference[C, A]]),
		bySelectedConclusion: make(map[C][]*DerivedInference[C, A]),
		bySelectedPremise:    make(map[C][]*DerivedInference[C, A]),
		log:                  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.selection == nil {
		e.selection = Threshold[C, A](DefaultThreshold)(e)
	}
	return e, nil
}

// NewEnumerator returns an enumerator of the minimal justifications of
// goal. Enumerators of the same engine share derived state and must not be
// used concurrently.
func (e *Engine[C, A]) NewEnumerator(goal C) *Enumerator[C, A] {
	return &Enumerator[C, A]{engine: e, goal: goal}
}

// Stats reports the observational counters of the engine.
type Stats struct {
	ProducedInferences int
	MinimalInferences  int
}

// Stats returns the current counter values.
func (e *Engine[C, A]) Stats() Stats {
	return Stats{
		ProducedInferences: e.producedCount,
		MinimalInferences:  e.minimalCount,
	}
}

// ResetStats zeroes the counters.
func (e *Engine[C, A]) ResetStats() {
	e.producedCount = 0
	e.minimalCount = 0
}

func (e *Engine[C, A]) minimalInferences(conclusion C) *minimality.Index[*DerivedInference[C, A]] {
	ix := e.minimalByConclusion[conclusion]
	if ix == nil {
		ix = minimality.NewIndex(
			func(d *DerivedInference[C, A]) uint64 { return d.fingerprint(e.hashC, e.hashA) },
			subsumes[C, A],
		)
		e.minimalByConclusion[conclusion] = ix
	}
	return ix
}

// lift copies an original inference of the graph into a derived inference.
func (e *Engine[C, A]) lift(inf graph.Inference[C]) *DerivedInference[C, A] {
	return &DerivedInference[C, A]{
		conclusion:    inf.Conclusion(),
		premises:      sets.FromSlice(inf.Premises()),
		justification: e.justifier.JustificationOf(inf).Clone(),
	}
}

// shelve parks an inference for later enumerations.
func (e *Engine[C, A]) shelve(inf *DerivedInference[C, A]) {
	e.blockedInferences = append(e.blockedInferences, inf)
}
