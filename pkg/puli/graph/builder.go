package graph

import (
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

// Builder is an in-memory modifiable inference set. It implements
// DynamicInferenceSet: listeners are notified whenever a conclusion whose
// inferences were already handed out gains new ones or the set is cleared.
type Builder[C comparable] struct {
	inferences map[C][]Inference[C]

	// conclusions for which InferencesOf was called and whose result did
	// not change since then
	queried   map[C]struct{}
	listeners []ChangeListener

	log logrus.FieldLogger
}

// NewBuilder creates an empty Builder.
func NewBuilder[C comparable]() *Builder[C] {
	return &Builder[C]{
		inferences: make(map[C][]Inference[C]),
		queried:    make(map[C]struct{}),
		log:        logrus.StandardLogger(),
	}
}

// SetLogger replaces the logger used for trace output.
func (b *Builder[C]) SetLogger(log logrus.FieldLogger) {
	b.log = log
}

// InferencesOf returns the inferences producing conclusion.
func (b *Builder[C]) InferencesOf(conclusion C) []Inference[C] {
	b.queried[conclusion] = struct{}{}
	return b.inferences[conclusion]
}

// Produce adds an inference to the set. An inference with an empty name is
// assigned a generated ULID name so it stays identifiable in diagnostics.
func (b *Builder[C]) Produce(inf Inference[C]) {
	if inf.Name() == "" {
		inf = NewInference(inf.Conclusion(), inf.Premises(), "inf-"+ulid.Make().String())
	}
	b.log.WithField("inference", inf.Name()).Trace("inference added")
	conclusion := inf.Conclusion()
	b.inferences[conclusion] = append(b.inferences[conclusion], inf)
	if _, ok := b.queried[conclusion]; ok {
		b.fireChanged()
	}
}

// Add is a convenience for Produce(NewInference(...)).
func (b *Builder[C]) Add(conclusion C, premises []C, name string) {
	b.Produce(NewInference(conclusion, premises, name))
}

// Clear removes all inferences.
func (b *Builder[C]) Clear() {
	if len(b.inferences) == 0 {
		return
	}
	b.log.Debug("inferences cleared")
	b.inferences = make(map[C][]Inference[C])
	if len(b.queried) > 0 {
		b.fireChanged()
	}
}

// AddListener registers l for change notifications.
func (b *Builder[C]) AddListener(l ChangeListener) {
	b.listeners = append(b.listeners, l)
}

// RemoveListener unregisters l.
func (b *Builder[C]) RemoveListener(l ChangeListener) {
	for i, reg := range b.listeners {
		if reg == l {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			return
		}
	}
}

// Dispose implements DynamicInferenceSet. The Builder holds no external
// resources.
func (b *Builder[C]) Dispose() {}

func (b *Builder[C]) fireChanged() {
	b.queried = make(map[C]struct{})
	for _, l := range b.listeners {
		l.InferencesChanged()
	}
}
