// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package patricia

import (
	"encoding/binary"
	"fmt"
	"net/netip"
	"strings"

	"github.com/gaissmai/patricia/internal/trie"
)

// keyOf is the key codec, it normalizes pfx into the trie key bytes
// and the significant bit length. 4-in-6 prefixes are unmapped, the
// address is always masked.
func (t *Table[V]) keyOf(pfx netip.Prefix) (key []byte, bitlen int, err error) {
	if !pfx.IsValid() {
		return nil, 0, fmt.Errorf("%w: invalid prefix", ErrInvalidKey)
	}

	ip := pfx.Addr()
	bitlen = pfx.Bits()

	if ip.Is4In6() {
		if bitlen < 96 {
			return nil, 0, fmt.Errorf("%w: 4-in-6 prefix %s with less than 96 bits", ErrInvalidKey, pfx)
		}
		ip = ip.Unmap()
		bitlen -= 96
	}

	if ip.Is4() != t.is4 {
		return nil, 0, fmt.Errorf("%w: %s has the wrong address family for a %d bit table",
			ErrInvalidKey, pfx, t.maxBits)
	}

	if bitlen > t.maxBits {
		return nil, 0, fmt.Errorf("%w: %s exceeds the maximum of %d bits",
			ErrInvalidKey, pfx, t.maxBits)
	}

	// always normalize the prefix
	masked := netip.PrefixFrom(ip, bitlen).Masked()

	return masked.Addr().AsSlice(), bitlen, nil
}

// prefixOf rebuilds the canonical prefix from a trie node, the node
// key holds the full masked path from the root.
func (t *Table[V]) prefixOf(n *trie.Node[V]) netip.Prefix {
	var ip netip.Addr
	if t.is4 {
		ip = netip.AddrFrom4([4]byte(n.Key()[:4]))
	} else {
		ip = netip.AddrFrom16([16]byte(n.Key()[:16]))
	}

	return netip.PrefixFrom(ip, n.Bits())
}

// ParseKey parses s as a key: CIDR notation, or a bare address which
// gets the full bit length of its family, 10.0.0.1 means 10.0.0.1/32.
// Parse failures wrap [ErrInvalidKey].
func ParseKey(s string) (netip.Prefix, error) {
	if strings.ContainsRune(s, '/') {
		pfx, err := netip.ParsePrefix(s)
		if err != nil {
			return netip.Prefix{}, fmt.Errorf("%w: %s", ErrInvalidKey, err)
		}
		return pfx, nil
	}

	ip, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("%w: %s", ErrInvalidKey, err)
	}

	return netip.PrefixFrom(ip, ip.BitLen()), nil
}

// KeyFromUint32 returns the host prefix for an IPv4 address given as
// integer in host byte order, 0x0a000001 means 10.0.0.1/32.
func KeyFromUint32(u uint32) netip.Prefix {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], u)

	return netip.PrefixFrom(netip.AddrFrom4(b), 32)
}
