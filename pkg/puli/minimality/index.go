// Package minimality provides a container that answers subset-minimality
// queries over a growing collection of sets. A candidate is minimal when no
// stored set is a subset of it. Lookups are accelerated by a 64-bit Bloom
// fingerprint per stored set: one bit per element hash, so a stored X can
// only be a subset of a candidate S when fp(X) & fp(S) == fp(X). The
// fingerprint is a prefilter; survivors always undergo the exact test.
package minimality

import "github.com/OmOmofonmwan/puli/pkg/puli/sets"

// Index stores values of type S and answers IsMinimal queries.
type Index[S any] struct {
	fingerprint func(S) uint64
	subsumes    func(x, y S) bool // reports x ⊆ y
	entries     []entry[S]
}

type entry[S any] struct {
	fp    uint64
	value S
}

// NewIndex creates an index over values fingerprinted and compared by the
// given functions. subsumes(x, y) must report whether x is a subset of y;
// fingerprint must be consistent with it: x ⊆ y implies
// fingerprint(x) & fingerprint(y) == fingerprint(x).
func NewIndex[S any](fingerprint func(S) uint64, subsumes func(x, y S) bool) *Index[S] {
	return &Index[S]{fingerprint: fingerprint, subsumes: subsumes}
}

// NewSetIndex creates an index over plain sets with subset order, hashing
// elements with hash.
func NewSetIndex[E comparable](hash func(E) uint64) *Index[sets.Set[E]] {
	return NewIndex(
		func(s sets.Set[E]) uint64 { return SetFingerprint(s, hash) },
		func(x, y sets.Set[E]) bool { return y.ContainsAll(x) },
	)
}

// Add stores s. Add does not check s for minimality; callers combine
// IsMinimal and Add as needed.
func (ix *Index[S]) Add(s S) {
	ix.entries = append(ix.entries, entry[S]{fp: ix.fingerprint(s), value: s})
}

// IsMinimal reports whether no stored value is a subset of s.
func (ix *Index[S]) IsMinimal(s S) bool {
	fp := ix.fingerprint(s)
	for i := range ix.entries {
		e := &ix.entries[i]
		if e.fp&fp != e.fp {
			// some element of the stored set misses s
			continue
		}
		if ix.subsumes(e.value, s) {
			return false
		}
	}
	return true
}

// Len returns the number of stored values.
func (ix *Index[S]) Len() int {
	return len(ix.entries)
}

// SetFingerprint computes the Bloom fingerprint of a set: the OR of one bit
// per element, taken from the low bits of the element hash.
func SetFingerprint[E comparable](s sets.Set[E], hash func(E) uint64) uint64 {
	var fp uint64
	for e := range s {
		fp |= 1 << (hash(e) & 63)
	}
	return fp
}
