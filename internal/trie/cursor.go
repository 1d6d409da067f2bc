// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package trie

// Cursor is a resumable single-step pre-order traversal over a live
// trie. Right subtrees are parked on an explicit pending stack,
// bounded by maxBits+1, so a step is a pure state transition and the
// walk survives between calls without a suspended call frame.
//
// A cursor borrows the trie for its lifetime. The trie must not be
// mutated while a cursor is in use, insert or remove during a walk
// leaves the cursor undefined. There is no restart, create a new
// cursor instead.
type Cursor[V any] struct {
	next    *Node[V]
	pending []*Node[V]
}

// Cursor returns a new cursor positioned before the first node.
func (t *Trie[V]) Cursor() *Cursor[V] {
	return &Cursor[V]{
		next:    t.root,
		pending: make([]*Node[V], 0, t.maxBits+1),
	}
}

// Next returns the next real node in pre-order, left child before
// right child. Glue nodes are skipped transparently. After the last
// node every call returns (nil, false).
func (c *Cursor[V]) Next() (*Node[V], bool) {
	for {
		node := c.next
		if node == nil {
			return nil, false
		}

		// advance before yielding, the walk must not depend on
		// the returned node afterwards
		switch {
		case node.left != nil:
			if node.right != nil {
				c.pending = append(c.pending, node.right)
			}
			c.next = node.left
		case node.right != nil:
			c.next = node.right
		case len(c.pending) > 0:
			c.next = c.pending[len(c.pending)-1]
			c.pending = c.pending[:len(c.pending)-1]
		default:
			c.next = nil
		}

		if node.present {
			return node, true
		}
	}
}
