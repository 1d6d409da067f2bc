// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package patricia

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// MarshalText implements the [encoding.TextMarshaler] interface,
// just a wrapper for [Table.Fprint].
func (t *Table[V]) MarshalText() ([]byte, error) {
	w := new(bytes.Buffer)
	if err := t.Fprint(w); err != nil {
		return nil, err
	}

	return w.Bytes(), nil
}

// String returns a hierarchical tree diagram of the ordered CIDRs
// as string, just a wrapper for [Table.Fprint].
// If Fprint returns an error, String panics.
func (t *Table[V]) String() string {
	w := new(strings.Builder)
	if err := t.Fprint(w); err != nil {
		panic(err)
	}

	return w.String()
}

// Fprint writes a hierarchical tree diagram of the ordered CIDRs
// with default formatted payload V to w. If w is nil, Fprint panics.
//
// The order from top to bottom is in ascending order of the prefix
// address and the subtree structure is determined by the CIDRs
// coverage.
//
//	▼
//	├─ 10.0.0.0/8 (V)
//	│  ├─ 10.0.0.0/24 (V)
//	│  └─ 10.0.1.0/24 (V)
//	├─ 127.0.0.0/8 (V)
//	│  └─ 127.0.0.1/32 (V)
//	└─ 192.168.0.0/16 (V)
//	   └─ 192.168.1.0/24 (V)
func (t *Table[V]) Fprint(w io.Writer) error {
	list := t.DumpList()
	if list == nil {
		return nil
	}

	if _, err := fmt.Fprint(w, "▼\n"); err != nil {
		return err
	}

	return fprintRec(w, list, "")
}

// fprintRec, the nodes are the direct subnets of the parent.
func fprintRec[V any](w io.Writer, nodes []DumpListNode[V], pad string) error {
	for i, n := range nodes {
		// last child gets the closing glyph
		glyph := "├─ "
		space := "│  "
		if i == len(nodes)-1 {
			glyph = "└─ "
			space = "   "
		}

		if _, err := fmt.Fprintf(w, "%s%s%s (%v)\n", pad, glyph, n.CIDR, n.Value); err != nil {
			return err
		}

		if err := fprintRec(w, n.Subnets, pad+space); err != nil {
			return err
		}
	}

	return nil
}
