// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package trie

import (
	"fmt"
	"io"
	"strings"
)

// ##################################################
//  useful during development, debugging and testing
// ##################################################

// dumpString is just a wrapper for dump.
func (t *Trie[V]) dumpString() string {
	w := new(strings.Builder)
	t.dump(w)

	return w.String()
}

// dump the trie structure with all nodes, glue included, to w.
func (t *Trie[V]) dump(w io.Writer) {
	if t == nil {
		return
	}

	fmt.Fprintf(w, "### maxBits(%d), size(%d)\n", t.maxBits, t.size)
	t.root.dumpRec(w, 0)
}

// dumpRec, rec-descent the trie.
func (n *Node[V]) dumpRec(w io.Writer, depth int) {
	if n == nil {
		return
	}

	indent := strings.Repeat(".", depth)

	kind := "GLUE"
	if n.present {
		kind = "REAL"
	}

	fmt.Fprintf(w, "%s[%s] bits: %d key: %s\n", indent, kind, n.bitlen, keyString(n.key, n.bitlen))

	n.left.dumpRec(w, depth+1)
	n.right.dumpRec(w, depth+1)
}

// keyString, the significant bits as hex bytes, the last partial
// byte included.
func keyString(key []byte, bitlen int) string {
	nbytes := (bitlen + 7) / 8
	return fmt.Sprintf("%x/%d", key[:nbytes], bitlen)
}
