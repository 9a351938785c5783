// Package puli is the facade of the inference-graph reasoning library. It
// wires the derivability checker and the justification engine over one
// graph and justifier; the subpackages remain usable on their own.
package puli

import (
	"github.com/sirupsen/logrus"

	"github.com/OmOmofonmwan/puli/pkg/puli/derivability"
	"github.com/OmOmofonmwan/puli/pkg/puli/graph"
	"github.com/OmOmofonmwan/puli/pkg/puli/interrupt"
	"github.com/OmOmofonmwan/puli/pkg/puli/justifications"
	"github.com/OmOmofonmwan/puli/pkg/puli/prooftree"
	"github.com/OmOmofonmwan/puli/pkg/puli/sets"
)

// Options configures a Puli instance.
type Options[C, A comparable] struct {
	Graph     graph.InferenceSet[C]
	Justifier graph.Justifier[C, A]

	// Monitor interrupts justification enumeration; nil means never.
	Monitor interrupt.Monitor

	// Selection overrides the default threshold selection strategy.
	Selection justifications.SelectionFactory[C, A]

	Logger logrus.FieldLogger
}

// Puli bundles the two engines over a shared inference graph.
type Puli[C, A comparable] struct {
	graph   graph.InferenceSet[C]
	checker *derivability.Checker[C]
	engine  *justifications.Engine[C, A]
}

// New creates a Puli instance with the given dependencies.
func New[C, A comparable](opts Options[C, A]) (*Puli[C, A], error) {
	checker, err := derivability.NewChecker(opts.Graph)
	if err != nil {
		return nil, err
	}
	var engineOpts []justifications.Option[C, A]
	if opts.Selection != nil {
		engineOpts = append(engineOpts, justifications.WithSelection(opts.Selection))
	}
	if opts.Logger != nil {
		checker.SetLogger(opts.Logger)
		engineOpts = append(engineOpts, justifications.WithLogger[C, A](opts.Logger))
	}
	engine, err := justifications.NewEngine(opts.Graph, opts.Justifier, opts.Monitor, engineOpts...)
	if err != nil {
		return nil, err
	}
	return &Puli[C, A]{graph: opts.Graph, checker: checker, engine: engine}, nil
}

// IsDerivable reports whether conclusion is derivable under the current
// blocked set.
func (p *Puli[C, A]) IsDerivable(conclusion C) bool {
	return p.checker.IsDerivable(conclusion)
}

// Block excludes conclusion from derivations.
func (p *Puli[C, A]) Block(conclusion C) bool {
	return p.checker.Block(conclusion)
}

// Unblock re-admits conclusion to derivations.
func (p *Puli[C, A]) Unblock(conclusion C) bool {
	return p.checker.Unblock(conclusion)
}

// BlockedConclusions returns the currently blocked conclusions.
func (p *Puli[C, A]) BlockedConclusions() sets.Set[C] {
	return p.checker.BlockedConclusions()
}

// NonDerivableConclusions returns the derivability checker's diagnostic
// set of conclusions blocking pending inferences.
func (p *Puli[C, A]) NonDerivableConclusions() sets.Set[C] {
	return p.checker.NonDerivableConclusions()
}

// Enumerator returns a minimal-justification enumerator for goal.
func (p *Puli[C, A]) Enumerator(goal C) *justifications.Enumerator[C, A] {
	return p.engine.NewEnumerator(goal)
}

// Justifications computes all minimal justifications of goal in ascending
// size.
func (p *Puli[C, A]) Justifications(goal C) ([]sets.Set[A], error) {
	return justifications.Collect[A](p.engine.NewEnumerator(goal))
}

// ProofTree reconstructs one derivation tree for goal, honoring the
// currently blocked conclusions.
func (p *Puli[C, A]) ProofTree(goal C) (*prooftree.Node[C], error) {
	return prooftree.Derive(p.graph, goal, p.checker.BlockedConclusions())
}

// Stats returns the justification engine counters.
func (p *Puli[C, A]) Stats() justifications.Stats {
	return p.engine.Stats()
}

// ResetStats zeroes the justification engine counters.
func (p *Puli[C, A]) ResetStats() {
	p.engine.ResetStats()
}

// IsDerivable answers a one-shot derivability query.
func IsDerivable[C comparable](g graph.InferenceSet[C], goal C) (bool, error) {
	checker, err := derivability.NewChecker(g)
	if err != nil {
		return false, err
	}
	return checker.IsDerivable(goal), nil
}

// Justifications computes all minimal justifications of goal in ascending
// size with a one-shot engine.
func Justifications[C, A comparable](g graph.InferenceSet[C], justifier graph.Justifier[C, A], goal C) ([]sets.Set[A], error) {
	engine, err := justifications.NewEngine(g, justifier, nil)
	if err != nil {
		return nil, err
	}
	return justifications.Collect[A](engine.NewEnumerator(goal))
}

// MinimalHittingSets computes all minimal hitting sets of the family in
// ascending size.
func MinimalHittingSets[E comparable](family []sets.Set[E]) ([]sets.Set[E], error) {
	return justifications.MinimalHittingSets(family)
}
