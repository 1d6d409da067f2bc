// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package patricia

import (
	"encoding/json"
	"net/netip"
)

// DumpListNode contains CIDR, value and list of subnets (tree childs).
type DumpListNode[V any] struct {
	CIDR    netip.Prefix      `json:"cidr"`
	Value   V                 `json:"value"`
	Subnets []DumpListNode[V] `json:"subnets,omitempty"`
}

// MarshalJSON dumps the table into a list of roots and their subnets,
// array and not map (cidr -> {value,subnets}), because the order
// matters.
func (t *Table[V]) MarshalJSON() ([]byte, error) {
	list := t.DumpList()
	if list == nil {
		return []byte("[]"), nil
	}

	return json.Marshal(list)
}

// DumpList dumps the table into a list of roots and their subnets.
// Nesting follows CIDR coverage, siblings are in ascending address
// order.
func (t *Table[V]) DumpList() []DumpListNode[V] {
	type tnode struct {
		pfx    netip.Prefix
		val    V
		childs []*tnode
	}

	var roots []*tnode

	// the iteration is in pre-order, every covering prefix is seen
	// before its subnets, a stack of open supernets gives the nesting
	var stack []*tnode

	for pfx, val := range t.All() {
		for len(stack) > 0 && !covers(stack[len(stack)-1].pfx, pfx) {
			stack = stack[:len(stack)-1]
		}

		n := &tnode{pfx: pfx, val: val}
		if len(stack) == 0 {
			roots = append(roots, n)
		} else {
			top := stack[len(stack)-1]
			top.childs = append(top.childs, n)
		}

		stack = append(stack, n)
	}

	var convert func([]*tnode) []DumpListNode[V]
	convert = func(nodes []*tnode) []DumpListNode[V] {
		if nodes == nil {
			return nil
		}

		result := make([]DumpListNode[V], 0, len(nodes))
		for _, n := range nodes {
			result = append(result, DumpListNode[V]{
				CIDR:    n.pfx,
				Value:   n.val,
				Subnets: convert(n.childs),
			})
		}
		return result
	}

	return convert(roots)
}

// covers reports whether prefix a covers prefix b.
func covers(a, b netip.Prefix) bool {
	return a.Bits() <= b.Bits() && a.Overlaps(b)
}
