// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"fmt"
	"net/netip"
	"os"
	"strings"

	"github.com/gaissmai/patricia"
)

// tables is the dual-stack pair, one single-family table per address
// family, values are the free-form rest of the table file line.
type tables struct {
	v4 *patricia.Table[string]
	v6 *patricia.Table[string]
}

// loadTables reads the table file, one "prefix value" pair per line,
// blank lines and #-comments are skipped, malformed lines are logged
// and skipped.
func loadTables(path string) (*tables, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table file: %w", err)
	}
	defer file.Close()

	tbl := &tables{
		v4: patricia.New4[string](),
		v6: patricia.New6[string](),
	}

	lineNo := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		pfx, err := patricia.ParseKey(fields[0])
		if err != nil {
			log.Warn("skipping malformed line", "file", path, "line", lineNo, "err", err)
			continue
		}

		val := strings.Join(fields[1:], " ")
		if err := tbl.byFamily(pfx).Insert(pfx, val); err != nil {
			log.Warn("skipping prefix", "file", path, "line", lineNo, "err", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read table file: %w", err)
	}

	log.Debug("table loaded", "file", path,
		"ipv4", tbl.v4.Size(), "ipv6", tbl.v6.Size())

	return tbl, nil
}

// byFamily returns the table matching the prefix family.
func (t *tables) byFamily(pfx netip.Prefix) *patricia.Table[string] {
	if pfx.Addr().Unmap().Is4() {
		return t.v4
	}
	return t.v6
}

// lookup parses key and runs the longest-prefix-match in the table
// of the matching family.
func (t *tables) lookup(key string) (lpm netip.Prefix, val string, ok bool, err error) {
	pfx, err := patricia.ParseKey(key)
	if err != nil {
		return lpm, val, false, err
	}

	lpm, val, ok = t.byFamily(pfx).Lookup(pfx)
	return lpm, val, ok, nil
}
