// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package trie implements the path-compressed binary trie (Patricia
// trie) underneath the patricia.Table façade.
//
// The trie stores variable-length bit strings, keys are byte buffers
// with an explicit bit length, capped by a per-trie maxBits fixed at
// construction. The payload V is opaque, the trie never inspects it.
//
// Nodes carry no parent pointers, ancestors are tracked with a
// transient stack during descent. Along any downward path the bit
// length is strictly increasing.
//
// The trie is not safe for concurrent use.
package trie

import "slices"

// Trie is the node graph with its maxBits constant and the count of
// real nodes. The zero value is not ready for use, see New.
type Trie[V any] struct {
	root    *Node[V]
	maxBits int
	size    int
}

// New returns an empty trie for keys up to maxBits bits.
// The range of maxBits is validated by the caller.
func New[V any](maxBits int) *Trie[V] {
	return &Trie[V]{maxBits: maxBits}
}

// MaxBits returns the maximum key length in bits.
func (t *Trie[V]) MaxBits() int { return t.maxBits }

// Size returns the number of real nodes, maintained incrementally.
func (t *Trie[V]) Size() int { return t.size }

// newNode allocates a node with its own copy of key.
func (t *Trie[V]) newNode(key []byte, bitlen int, present bool) *Node[V] {
	return &Node[V]{
		key:     slices.Clone(key),
		bitlen:  bitlen,
		present: present,
	}
}

// Insert returns the node for (key, bitlen), creating it if missing.
// An existing node is returned unchanged, the caller overwrites its
// value. Splicing happens at the first bit where the new key and the
// closest existing key diverge: no extra node when one prefix is a
// strict ancestor of the other, a fresh glue node otherwise.
//
// key must hold at least (maxBits+7)/8 bytes, bitlen <= maxBits.
func (t *Trie[V]) Insert(key []byte, bitlen int) *Node[V] {
	if t.root == nil {
		t.root = t.newNode(key, bitlen, true)
		t.size++
		return t.root
	}

	// descend to the closest candidate, record the path for
	// backtracking, there are no parent pointers
	stack := make([]*Node[V], 0, t.maxBits+1)

	n := t.root
	for n.bitlen < bitlen || !n.present {
		var next *Node[V]
		if n.bitlen < t.maxBits && bitSet(key, n.bitlen) {
			next = n.right
		} else {
			next = n.left
		}
		if next == nil {
			break
		}
		stack = append(stack, n)
		n = next
	}

	// first divergence between the new key and the candidate
	checkBit := min(n.bitlen, bitlen)
	differ := firstDiff(key, n.key, checkBit)

	// back up to the topmost node at or below the divergence
	for len(stack) > 0 && stack[len(stack)-1].bitlen >= differ {
		n = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
	}

	var parent *Node[V]
	if len(stack) > 0 {
		parent = stack[len(stack)-1]
	}

	// the key already has its node, real or glue
	if differ == bitlen && n.bitlen == bitlen {
		if n.present {
			return n
		}

		// promote the glue node
		copy(n.key, key)
		n.present = true
		t.size++
		return n
	}

	leaf := t.newNode(key, bitlen, true)
	t.size++

	switch {
	case n.bitlen == differ:
		// the new leaf hangs directly below n, the slot on the
		// diverging side is free, otherwise the descent would
		// have passed through it
		if n.bitlen < t.maxBits && bitSet(key, n.bitlen) {
			n.right = leaf
		} else {
			n.left = leaf
		}

	case bitlen == differ:
		// the new leaf is a strict ancestor of n, splice it
		// into the path, shorter bitlen wins the tie-break
		if bitlen < t.maxBits && bitSet(n.key, bitlen) {
			leaf.right = n
		} else {
			leaf.left = n
		}
		t.replaceChild(parent, n, leaf)

	default:
		// keys fork below both, a glue node at the differing
		// bit takes n and the new leaf as its two children
		glue := t.newNode(key, differ, false)
		if differ < t.maxBits && bitSet(key, differ) {
			glue.left, glue.right = n, leaf
		} else {
			glue.left, glue.right = leaf, n
		}
		t.replaceChild(parent, n, glue)
	}

	return leaf
}

// replaceChild relinks the edge parent -> old to now, parent == nil
// means old was the root.
func (t *Trie[V]) replaceChild(parent, old, now *Node[V]) {
	switch {
	case parent == nil:
		t.root = now
	case parent.right == old:
		parent.right = now
	default:
		parent.left = now
	}
}

// FindExact returns the real node matching (key, bitlen) exactly,
// or nil. Glue nodes are never returned.
func (t *Trie[V]) FindExact(key []byte, bitlen int) *Node[V] {
	n := t.root
	if n == nil {
		return nil
	}

	for n.bitlen < bitlen {
		if n.bitlen < t.maxBits && bitSet(key, n.bitlen) {
			n = n.right
		} else {
			n = n.left
		}
		if n == nil {
			return nil
		}
	}

	if n.bitlen > bitlen || !n.present {
		return nil
	}

	if !sameBits(key, n.key, bitlen) {
		return nil
	}
	return n
}

// FindBest returns the most specific real node whose prefix covers
// (key, bitlen), inclusive: an exact match counts. Returns nil if no
// stored prefix covers the query.
//
// The descent collects candidate ancestors on a stack and unwinds
// from the deepest, the first full-key match is the longest match.
func (t *Trie[V]) FindBest(key []byte, bitlen int) *Node[V] {
	n := t.root
	if n == nil {
		return nil
	}

	stack := make([]*Node[V], 0, t.maxBits+1)

	for n.bitlen < bitlen {
		if n.present {
			stack = append(stack, n)
		}

		if n.bitlen < t.maxBits && bitSet(key, n.bitlen) {
			n = n.right
		} else {
			n = n.left
		}
		if n == nil {
			break
		}
	}

	if n != nil && n.present && n.bitlen <= bitlen {
		stack = append(stack, n)
	}

	// backtrack, longest prefix first
	for i := len(stack) - 1; i >= 0; i-- {
		if c := stack[i]; sameBits(key, c.key, c.bitlen) {
			return c
		}
	}
	return nil
}

// Remove deletes the real node n from the trie. A node with two
// children is only demoted to glue, its subtrees stay intact. A node
// with fewer children is spliced out, and a glue parent left with a
// single child collapses with it.
//
// n must be a handle obtained from this trie. Removing an already
// removed or foreign node is a no-op.
func (t *Trie[V]) Remove(n *Node[V]) {
	if n == nil || !n.present {
		return
	}

	// locate parent and grandparent by descending along n's own
	// key, the handle carries its full path
	var parent, grand *Node[V]
	for cur := t.root; cur != n; {
		if cur == nil {
			// not a node of this trie
			return
		}
		grand, parent = parent, cur
		if cur.bitlen < t.maxBits && bitSet(n.key, cur.bitlen) {
			cur = cur.right
		} else {
			cur = cur.left
		}
	}

	n.present = false
	var zero V
	n.value = zero
	t.size--

	// branch point, demote to glue and keep the structure
	if n.left != nil && n.right != nil {
		return
	}

	// leaf node, unlink it and collapse a glue parent
	if n.left == nil && n.right == nil {
		if parent == nil {
			t.root = nil
			return
		}

		var sibling *Node[V]
		if parent.right == n {
			parent.right = nil
			sibling = parent.left
		} else {
			parent.left = nil
			sibling = parent.right
		}

		if parent.present {
			return
		}

		// glue parent with one child left, splice it out
		t.replaceChild(grand, parent, sibling)
		return
	}

	// one child, reconnect it to the parent
	child := n.left
	if child == nil {
		child = n.right
	}
	t.replaceChild(parent, n, child)
}
