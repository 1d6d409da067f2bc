// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package trie

import "math/bits"

// Node is a single trie node. A node is either real, representing a
// caller-inserted prefix with an attached value, or pure glue,
// a branch point spliced in where two keys diverge.
//
// The key buffer always holds the full path from the root, not just
// the bits below the branch point, so every comparison is
// self-contained per node. Bits beyond bitlen are insignificant.
type Node[V any] struct {
	left  *Node[V]
	right *Node[V]

	key    []byte
	bitlen int

	value   V
	present bool
}

// Key returns the node's key bytes. The slice is owned by the trie
// and must not be modified, bits beyond Bits() are insignificant.
func (n *Node[V]) Key() []byte { return n.key }

// Bits returns the number of significant key bits.
func (n *Node[V]) Bits() int { return n.bitlen }

// Value returns the attached value, the zero value for glue nodes.
func (n *Node[V]) Value() V { return n.value }

// SetValue overwrites the attached value. The trie never inspects it.
func (n *Node[V]) SetValue(val V) { n.value = val }

// bitSet reports whether bit i is set in key, bit 0 is the MSB of
// the first byte, the radix tree bit order.
func bitSet(key []byte, i int) bool {
	return key[i>>3]&(0x80>>(i&7)) != 0
}

// sameBits reports whether a and b are equal in their first nbits bits.
func sameBits(a, b []byte, nbits int) bool {
	whole := nbits >> 3
	for i := range whole {
		if a[i] != b[i] {
			return false
		}
	}

	if rest := nbits & 7; rest != 0 {
		mask := byte(0xFF) << (8 - rest)
		return (a[whole]^b[whole])&mask == 0
	}
	return true
}

// firstDiff returns the position of the first differing bit between
// a and b, capped at nbits. Equal keys return nbits.
func firstDiff(a, b []byte, nbits int) int {
	for i := 0; i*8 < nbits; i++ {
		if xor := a[i] ^ b[i]; xor != 0 {
			return min(i*8+bits.LeadingZeros8(xor), nbits)
		}
	}
	return nbits
}
