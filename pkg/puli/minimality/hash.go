package minimality

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/mitchellh/hashstructure"
)

// HashValue hashes an arbitrary value for use in Bloom fingerprints.
// Strings take the xxhash fast path; other values go through structural
// hashing, falling back to hashing the printed form for types the
// structural hasher cannot handle (channels, functions).
func HashValue(v any) uint64 {
	if s, ok := v.(string); ok {
		return xxhash.Sum64String(s)
	}
	h, err := hashstructure.Hash(v, nil)
	if err != nil {
		return xxhash.Sum64String(fmt.Sprint(v))
	}
	return h
}

// Hasher returns a typed hash function over E backed by HashValue.
func Hasher[E comparable]() func(E) uint64 {
	return func(e E) uint64 { return HashValue(e) }
}

// Mix folds a salt into a hash so that the same value used in different
// roles (conclusion, premise, axiom) lands on different fingerprint bits.
func Mix(h, salt uint64) uint64 {
	h ^= salt
	h *= 0x9e3779b97f4a7c15
	return h ^ (h >> 29)
}
