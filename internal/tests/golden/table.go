// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package golden implements a simple and slow prefix table as a
// reference for the patricia trie in randomized differential tests.
package golden

import (
	"cmp"
	"fmt"
	"net/netip"
	"slices"
)

// Table is a slow prefix table, implemented as a slice of prefixes
// and values.
type Table[V any] []Item[V]

type Item[V any] struct {
	Pfx netip.Prefix
	Val V
}

func (item Item[V]) String() string {
	return fmt.Sprintf("(%s, %v)", item.Pfx, item.Val)
}

func (t *Table[V]) Insert(pfx netip.Prefix, val V) {
	pfx = pfx.Masked()
	for i, item := range *t {
		if item.Pfx == pfx {
			(*t)[i].Val = val // de-dupe
			return
		}
	}
	*t = append(*t, Item[V]{pfx, val})
}

func (t *Table[V]) Delete(pfx netip.Prefix) (exists bool) {
	pfx = pfx.Masked()

	for i, item := range *t {
		if item.Pfx == pfx {
			*t = slices.Delete(*t, i, i+1)
			return true
		}
	}
	return false
}

// Get, the exact match.
func (t Table[V]) Get(pfx netip.Prefix) (val V, ok bool) {
	pfx = pfx.Masked()
	for _, item := range t {
		if item.Pfx == pfx {
			return item.Val, true
		}
	}
	return val, false
}

// Lookup, the longest-prefix-match for pfx, inclusive.
func (t Table[V]) Lookup(pfx netip.Prefix) (lpm netip.Prefix, val V, ok bool) {
	pfx = pfx.Masked()
	bestLen := -1

	for _, item := range t {
		if item.Pfx.Overlaps(pfx) && item.Pfx.Bits() <= pfx.Bits() && item.Pfx.Bits() > bestLen {
			lpm = item.Pfx
			val = item.Val
			ok = true
			bestLen = item.Pfx.Bits()
		}
	}
	return lpm, val, ok
}

// AllSorted returns the prefixes in natural CIDR sort order.
func (t Table[V]) AllSorted() []netip.Prefix {
	var result []netip.Prefix

	for _, item := range t {
		result = append(result, item.Pfx)
	}
	slices.SortFunc(result, CmpPrefix)
	return result
}

// CmpPrefix, helper function, compare func for prefix sort,
// all cidrs are already normalized.
func CmpPrefix(a, b netip.Prefix) int {
	if cmpAddr := a.Addr().Compare(b.Addr()); cmpAddr != 0 {
		return cmpAddr
	}

	return cmp.Compare(a.Bits(), b.Bits())
}
