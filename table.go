// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package patricia

import (
	"fmt"
	"net/netip"

	"github.com/gaissmai/patricia/internal/trie"
)

// maxBitsLimit is the hard upper limit for the key length.
const maxBitsLimit = 128

// Table is a prefix table with payload V, keyed by netip.Prefix with
// longest-prefix-match semantics. A table holds one address family,
// IPv4 for maxBits <= 32, IPv6 otherwise.
//
// A Table is not safe for concurrent use.
type Table[V any] struct {
	trie    *trie.Trie[V]
	maxBits int
	is4     bool
}

// New returns an empty table for keys up to maxBits bits, 32 for
// IPv4, 128 for IPv6. Returns [ErrInvalidMaxBits] if maxBits lies
// outside [0, 128].
func New[V any](maxBits int) (*Table[V], error) {
	if maxBits < 0 || maxBits > maxBitsLimit {
		return nil, fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidMaxBits, maxBits, maxBitsLimit)
	}

	return &Table[V]{
		trie:    trie.New[V](maxBits),
		maxBits: maxBits,
		is4:     maxBits <= 32,
	}, nil
}

// New4 returns an empty IPv4 table, the 32 bit default.
func New4[V any]() *Table[V] {
	t, _ := New[V](32)
	return t
}

// New6 returns an empty IPv6 table.
func New6[V any]() *Table[V] {
	t, _ := New[V](maxBitsLimit)
	return t
}

// MaxBits returns the maximum key length in bits.
func (t *Table[V]) MaxBits() int { return t.maxBits }

// Size returns the number of prefixes in the table.
func (t *Table[V]) Size() int { return t.trie.Size() }

// Insert adds pfx to the table with value val. If pfx is already
// present its value is overwritten in place, the size does not grow.
func (t *Table[V]) Insert(pfx netip.Prefix, val V) error {
	key, bitlen, err := t.keyOf(pfx)
	if err != nil {
		return err
	}

	t.trie.Insert(key, bitlen).SetValue(val)
	return nil
}

// Delete removes the exact prefix pfx from the table. A missing
// prefix is reported with [ErrNotFound], not silently ignored.
func (t *Table[V]) Delete(pfx netip.Prefix) error {
	key, bitlen, err := t.keyOf(pfx)
	if err != nil {
		return err
	}

	n := t.trie.FindExact(key, bitlen)
	if n == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, pfx)
	}

	t.trie.Remove(n)
	return nil
}

// Get does a longest-prefix-match for pfx and returns the value of
// the most specific covering prefix and true, or false if no stored
// prefix covers pfx. Malformed keys just miss.
func (t *Table[V]) Get(pfx netip.Prefix) (val V, ok bool) {
	key, bitlen, err := t.keyOf(pfx)
	if err != nil {
		return val, false
	}

	n := t.trie.FindBest(key, bitlen)
	if n == nil {
		return val, false
	}
	return n.Value(), true
}

// Lookup is like [Table.Get] but also returns the matched prefix.
func (t *Table[V]) Lookup(pfx netip.Prefix) (lpm netip.Prefix, val V, ok bool) {
	key, bitlen, err := t.keyOf(pfx)
	if err != nil {
		return lpm, val, false
	}

	n := t.trie.FindBest(key, bitlen)
	if n == nil {
		return lpm, val, false
	}
	return t.prefixOf(n), n.Value(), true
}

// GetExact returns the value for the exact prefix pfx and true, or
// false if the exact prefix is not in the table. No containment
// semantics, 10.0.0.0/8 does not answer for 10.0.0.0/16.
func (t *Table[V]) GetExact(pfx netip.Prefix) (val V, ok bool) {
	key, bitlen, err := t.keyOf(pfx)
	if err != nil {
		return val, false
	}

	n := t.trie.FindExact(key, bitlen)
	if n == nil {
		return val, false
	}
	return n.Value(), true
}

// Contains reports whether any stored prefix covers pfx, the
// containment predicate backed by longest-prefix-match.
func (t *Table[V]) Contains(pfx netip.Prefix) bool {
	_, ok := t.Get(pfx)
	return ok
}

// HasKey reports whether the exact prefix pfx is in the table.
func (t *Table[V]) HasKey(pfx netip.Prefix) bool {
	_, ok := t.GetExact(pfx)
	return ok
}
