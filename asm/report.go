// Copyright 2026 the asm80 authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// WriteSymbolTable writes one line per symbol in the form "AAAA NAME":
// the address as uppercase 4-digit hex and the symbol name uppercased
// and truncated to 16 characters. Symbols are sorted by name.
func (a *Assembler) WriteSymbolTable(w io.Writer) error {
	for _, name := range sortedSymbols(a.symbols) {
		display := strings.ToUpper(name)
		if len(display) > 16 {
			display = display[:16]
		}
		if _, err := fmt.Fprintf(w, "%04X %s\n", a.symbols[name], display); err != nil {
			return err
		}
	}
	return nil
}

// WriteCrossReference writes the cross-reference report: for each
// symbol, the 20-column left-justified name, its 4-digit hex address,
// and the line numbers that mention it sorted by absolute value. The
// defining line is prefixed with '#'.
func (a *Assembler) WriteCrossReference(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "--- Cross-Reference Listing ---\n\n"); err != nil {
		return err
	}

	names := make([]string, 0, len(a.xref))
	for name := range a.xref {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		lines := make([]int, len(a.xref[name]))
		copy(lines, a.xref[name])
		sort.SliceStable(lines, func(i, j int) bool {
			return abs(lines[i]) < abs(lines[j])
		})

		var sb strings.Builder
		fmt.Fprintf(&sb, "%-20s%04X   ", name, a.symbols[name])
		for _, line := range lines {
			if line < 0 {
				fmt.Fprintf(&sb, "#%d ", -line)
			} else {
				fmt.Fprintf(&sb, "%d ", line)
			}
		}
		if _, err := fmt.Fprintln(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

func sortedSymbols(symbols map[string]uint16) []string {
	names := make([]string, 0, len(symbols))
	for name := range symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
