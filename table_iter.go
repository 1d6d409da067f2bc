// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package patricia

import "net/netip"

// All may be used in a for/range loop to iterate through all the
// prefixes and their values. The order is the trie pre-order, more
// general prefixes before their refinements, and stable for an
// unmodified table.
//
// Prefixes must not be inserted or deleted during iteration,
// otherwise the behavior is undefined. However, value updates are
// permitted.
//
// If the yield function returns false, the iteration ends prematurely.
func (t *Table[V]) All() func(yield func(pfx netip.Prefix, val V) bool) {
	return func(yield func(pfx netip.Prefix, val V) bool) {
		cursor := t.trie.Cursor()

		for {
			n, ok := cursor.Next()
			if !ok {
				return
			}

			if !yield(t.prefixOf(n), n.Value()) {
				return
			}
		}
	}
}

// Keys returns all prefixes in the table, in the same order as
// [Table.All].
func (t *Table[V]) Keys() []netip.Prefix {
	keys := make([]netip.Prefix, 0, t.Size())

	for pfx := range t.All() {
		keys = append(keys, pfx)
	}
	return keys
}
