// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package patricia provides a prefix-keyed lookup table for IP
// network prefixes with exact-match and longest-prefix-match
// retrieval, built on a path-compressed binary trie.
//
// A [Table] behaves like a dictionary keyed by CIDR prefixes with
// CIDR containment semantics: a lookup for an address or prefix
// returns the value of the most specific stored prefix covering it.
//
// Tables are generic over their payload V and keyed by
// [net/netip.Prefix]. A table holds keys of a single address family,
// selected by the maximum key length given at construction, 32 bits
// for IPv4 and up to 128 for IPv6.
//
// Overlapping prefixes of different specificity are first-class:
// inserting 10.0.0.0/8 and 10.1.0.0/16 keeps both, a lookup falls
// back to the next less specific covering prefix when the more
// specific one is deleted.
//
// A Table is not safe for concurrent use, and the table must not be
// mutated while an [Table.All] iteration is running.
package patricia
