// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package trie

import (
	"net/netip"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// key, the raw 4 or 16 key bytes for an address string.
func key(s string) []byte {
	return netip.MustParseAddr(s).AsSlice()
}

func TestInsertFirstNode(t *testing.T) {
	t.Parallel()

	tr := New[string](32)
	require.Equal(t, 0, tr.Size())

	n := tr.Insert(key("10.0.0.0"), 8)
	n.SetValue("a")

	require.Equal(t, 1, tr.Size())
	require.Same(t, tr.root, n)
	require.Equal(t, 8, n.Bits())
	require.True(t, n.present)
	require.Nil(t, n.left)
	require.Nil(t, n.right)
}

func TestInsertIdempotent(t *testing.T) {
	t.Parallel()

	tr := New[string](32)

	n1 := tr.Insert(key("10.0.0.0"), 8)
	n1.SetValue("a")

	// same (key, bitlen) must return the same node unchanged
	n2 := tr.Insert(key("10.0.0.0"), 8)
	require.Same(t, n1, n2)
	require.Equal(t, "a", n2.Value())
	require.Equal(t, 1, tr.Size())
}

func TestInsertFork(t *testing.T) {
	t.Parallel()

	tr := New[string](32)

	a := tr.Insert(key("10.0.0.0"), 8)
	b := tr.Insert(key("11.0.0.0"), 8)
	require.Equal(t, 2, tr.Size())

	// 10 = 0000_1010, 11 = 0000_1011, the keys fork at bit 7,
	// the root must now be a glue node with both leaves
	glue := tr.root
	require.False(t, glue.present)
	require.Equal(t, 7, glue.Bits())
	require.Same(t, a, glue.left)
	require.Same(t, b, glue.right)
}

func TestInsertPromotesGlue(t *testing.T) {
	t.Parallel()

	tr := New[string](32)

	tr.Insert(key("10.0.0.0"), 8).SetValue("a")
	tr.Insert(key("11.0.0.0"), 8).SetValue("b")

	// the glue node sits exactly at 10.0.0.0/7, inserting that
	// prefix must promote it in place, not allocate
	glue := tr.root
	n := tr.Insert(key("10.0.0.0"), 7)
	n.SetValue("glue no more")

	require.Same(t, glue, n)
	require.True(t, n.present)
	require.Equal(t, 3, tr.Size())

	require.Same(t, n, tr.FindExact(key("10.0.0.0"), 7))
}

func TestInsertAncestorSplice(t *testing.T) {
	t.Parallel()

	tr := New[string](32)

	sub := tr.Insert(key("10.1.0.0"), 16)

	// the shorter prefix is inserted after its refinement and must
	// end up as its ancestor, no glue node needed
	super := tr.Insert(key("10.0.0.0"), 8)

	require.Same(t, super, tr.root)
	require.True(t, super.left == sub || super.right == sub)
	require.Equal(t, 2, tr.Size())
}

func TestInsertChainBothDirections(t *testing.T) {
	t.Parallel()

	// increasing and decreasing specificity must end up in the
	// same structure
	insertOrders := [][]int{
		{8, 16, 24, 32},
		{32, 24, 16, 8},
		{16, 32, 8, 24},
	}

	for _, order := range insertOrders {
		tr := New[int](32)
		for _, bits := range order {
			tr.Insert(key("10.1.1.1"), bits).SetValue(bits)
		}
		require.Equal(t, len(order), tr.Size())

		for _, bits := range order {
			n := tr.FindExact(key("10.1.1.1"), bits)
			require.NotNil(t, n, "insert order %v, bits %d", order, bits)
			require.Equal(t, bits, n.Value())
		}
	}
}

func TestFindExact(t *testing.T) {
	t.Parallel()

	tr := New[string](32)
	tr.Insert(key("10.0.0.0"), 8).SetValue("a")
	tr.Insert(key("10.1.0.0"), 16).SetValue("b")

	require.NotNil(t, tr.FindExact(key("10.0.0.0"), 8))
	require.NotNil(t, tr.FindExact(key("10.1.0.0"), 16))

	// not stored, only covered
	require.Nil(t, tr.FindExact(key("10.1.0.0"), 24))
	require.Nil(t, tr.FindExact(key("10.0.0.0"), 7))
	require.Nil(t, tr.FindExact(key("12.0.0.0"), 8))
}

func TestFindExactNeverGlue(t *testing.T) {
	t.Parallel()

	tr := New[string](32)
	tr.Insert(key("10.0.0.0"), 8)
	tr.Insert(key("11.0.0.0"), 8)

	// glue node exists at bit 7 but is not a stored prefix
	require.False(t, tr.root.present)
	require.Nil(t, tr.FindExact(key("10.0.0.0"), 7))
}

func TestFindBest(t *testing.T) {
	t.Parallel()

	tr := New[string](32)
	tr.Insert(key("10.0.0.0"), 8).SetValue("a")
	tr.Insert(key("10.1.0.0"), 16).SetValue("b")
	tr.Insert(key("10.1.1.0"), 24).SetValue("c")

	testCases := []struct {
		addr string
		bits int
		want string
		ok   bool
	}{
		{"10.1.1.5", 32, "c", true},
		{"10.1.2.5", 32, "b", true},
		{"10.2.0.0", 32, "a", true},
		{"11.0.0.0", 32, "", false},
		// inclusive, the exact prefix matches itself
		{"10.1.0.0", 16, "b", true},
		// more general than anything stored
		{"10.0.0.0", 4, "", false},
	}

	for _, tc := range testCases {
		n := tr.FindBest(key(tc.addr), tc.bits)
		if !tc.ok {
			require.Nil(t, n, "FindBest(%s/%d)", tc.addr, tc.bits)
			continue
		}
		require.NotNil(t, n, "FindBest(%s/%d)", tc.addr, tc.bits)
		require.Equal(t, tc.want, n.Value(), "FindBest(%s/%d)", tc.addr, tc.bits)
	}
}

func TestFindBestDefaultRoute(t *testing.T) {
	t.Parallel()

	tr := New[string](32)
	tr.Insert(key("0.0.0.0"), 0).SetValue("default")
	tr.Insert(key("10.0.0.0"), 8).SetValue("a")

	require.Equal(t, "a", tr.FindBest(key("10.1.1.1"), 32).Value())
	require.Equal(t, "default", tr.FindBest(key("192.0.2.1"), 32).Value())
}

func TestRemoveLeafCollapsesGlue(t *testing.T) {
	t.Parallel()

	tr := New[string](32)
	a := tr.Insert(key("10.0.0.0"), 8)
	b := tr.Insert(key("11.0.0.0"), 8)

	// removing one leaf must splice out the glue root as well
	tr.Remove(b)

	require.Equal(t, 1, tr.Size())
	require.Same(t, a, tr.root)
	require.NotNil(t, tr.FindExact(key("10.0.0.0"), 8))
	require.Nil(t, tr.FindExact(key("11.0.0.0"), 8))
}

func TestRemoveBranchPointDemotes(t *testing.T) {
	t.Parallel()

	tr := New[string](32)
	tr.Insert(key("10.0.0.0"), 15).SetValue("super")
	tr.Insert(key("10.0.0.0"), 16).SetValue("left")
	tr.Insert(key("10.1.0.0"), 16).SetValue("right")

	// 10.0.0.0/15 is a branch point with two children, removal
	// must demote it to glue and keep both subtrees reachable
	n := tr.FindExact(key("10.0.0.0"), 15)
	require.NotNil(t, n)
	require.NotNil(t, n.left)
	require.NotNil(t, n.right)

	tr.Remove(n)
	require.Equal(t, 2, tr.Size())
	require.False(t, n.present)

	require.Nil(t, tr.FindExact(key("10.0.0.0"), 15))
	require.Equal(t, "left", tr.FindExact(key("10.0.0.0"), 16).Value())
	require.Equal(t, "right", tr.FindExact(key("10.1.0.0"), 16).Value())

	// LPM must no longer report the demoted node
	require.Equal(t, "left", tr.FindBest(key("10.0.0.1"), 32).Value())
	require.Nil(t, tr.FindBest(key("10.0.0.0"), 15))
}

func TestRemoveSingleChildSplice(t *testing.T) {
	t.Parallel()

	tr := New[string](32)
	super := tr.Insert(key("10.0.0.0"), 8)
	sub := tr.Insert(key("10.1.0.0"), 16)

	tr.Remove(super)

	require.Equal(t, 1, tr.Size())
	require.Same(t, sub, tr.root)
	require.NotNil(t, tr.FindExact(key("10.1.0.0"), 16))
}

func TestRemoveLastNode(t *testing.T) {
	t.Parallel()

	tr := New[string](32)
	n := tr.Insert(key("10.0.0.0"), 8)

	tr.Remove(n)
	require.Nil(t, tr.root)
	require.Equal(t, 0, tr.Size())
}

func TestRemoveTwiceIsNoop(t *testing.T) {
	t.Parallel()

	tr := New[string](32)
	n := tr.Insert(key("10.0.0.0"), 8)
	tr.Insert(key("10.1.0.0"), 16)

	tr.Remove(n)
	require.Equal(t, 1, tr.Size())

	tr.Remove(n)
	require.Equal(t, 1, tr.Size())
}

func TestRemoveForeignNodeIsNoop(t *testing.T) {
	t.Parallel()

	tr := New[string](32)
	tr.Insert(key("10.0.0.0"), 8)

	other := New[string](32)
	foreign := other.Insert(key("192.168.0.0"), 16)

	tr.Remove(foreign)
	require.Equal(t, 1, tr.Size())
	require.Equal(t, 1, other.Size())
}

func TestRemoveThenRefine(t *testing.T) {
	t.Parallel()

	tr := New[string](32)
	tr.Insert(key("10.0.0.0"), 8).SetValue("a")
	tr.Insert(key("10.1.0.0"), 16).SetValue("b")
	tr.Insert(key("10.1.1.0"), 24).SetValue("c")

	// delete the middle prefix, lookups must fall back to /8
	tr.Remove(tr.FindExact(key("10.1.0.0"), 16))

	require.Nil(t, tr.FindExact(key("10.1.0.0"), 16))
	require.Equal(t, "c", tr.FindBest(key("10.1.1.5"), 32).Value())
	require.Equal(t, "a", tr.FindBest(key("10.1.2.5"), 32).Value())
}

func TestDumpContainsGlue(t *testing.T) {
	t.Parallel()

	tr := New[string](32)
	tr.Insert(key("10.0.0.0"), 8)
	tr.Insert(key("11.0.0.0"), 8)

	dump := tr.dumpString()
	require.Contains(t, dump, "GLUE")
	require.Equal(t, 2, strings.Count(dump, "REAL"))
}

func TestBitHelpers(t *testing.T) {
	t.Parallel()

	a := key("10.0.0.0") // 0000_1010 ...
	b := key("11.0.0.0") // 0000_1011 ...
	c := key("10.0.0.0")

	require.False(t, bitSet(a, 7))
	require.True(t, bitSet(b, 7))

	require.Equal(t, 7, firstDiff(a, b, 32))
	require.Equal(t, 7, firstDiff(a, b, 8))
	require.Equal(t, 7, firstDiff(a, b, 7))
	require.Equal(t, 4, firstDiff(a, b, 4))
	require.Equal(t, 0, firstDiff(a, b, 0))
	require.Equal(t, 32, firstDiff(a, c, 32))

	require.True(t, sameBits(a, b, 7))
	require.False(t, sameBits(a, b, 8))
	require.True(t, sameBits(a, b, 0))
	require.True(t, sameBits(a, c, 32))
}
