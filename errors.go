// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package patricia

import "errors"

var (
	// ErrInvalidKey is returned when a key cannot be parsed or does
	// not fit the table, wrong family or too many bits. A malformed
	// key is reported distinctly from a missing one.
	ErrInvalidKey = errors.New("invalid key")

	// ErrInvalidMaxBits is returned by New when the maximum key
	// length lies outside [0, 128].
	ErrInvalidMaxBits = errors.New("invalid max bits")

	// ErrNotFound is returned by Delete when the exact prefix is not
	// in the table. Lookups report absence with ok == false instead.
	ErrNotFound = errors.New("prefix not found")
)
