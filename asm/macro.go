// Copyright 2026 the asm80 authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"strconv"
	"strings"
)

// A macro is a named parameterized template of source lines captured
// between MACRO and ENDM/MEND. Parameter names keep their original
// case; substitution is textual.
type macro struct {
	name   string
	params []string
	body   []string
}

// preprocessMacros scans the source once, before pass 1, and collects
// every macro definition. Nested definitions are not supported.
func (a *Assembler) preprocessMacros(lines []string) error {
	inMacroDef := false
	var current *macro

	for i := 0; i < len(lines); i++ {
		first, second, rest := firstTwoWords(lines[i])
		lowerFirst := strings.ToLower(first)

		switch {
		case strings.ToLower(second) == "macro":
			if inMacroDef {
				return a.errorAt(i, "nested macro definitions are not supported")
			}
			inMacroDef = true
			current = &macro{
				name:   lowerFirst,
				params: splitArgs(rest, ','),
			}

		case lowerFirst == "endm" || lowerFirst == "mend":
			if !inMacroDef {
				return a.errorAt(i, "ENDM without MACRO")
			}
			inMacroDef = false
			a.macros[current.name] = current
			a.log("macro %s (%d params, %d lines)",
				current.name, len(current.params), len(current.body))

		case inMacroDef:
			current.body = append(current.body, lines[i])
		}
	}

	if inMacroDef {
		return a.errorAt(len(lines), "MACRO definition not closed with ENDM")
	}
	return nil
}

// expandAndProcessLine handles conditional directives, expands macro
// invocations recursively, and passes ordinary instructions on to the
// parser and dispatcher. Expanded macro body lines report errors at
// the invocation site's line number.
func (a *Assembler) expandAndProcessLine(line string, originalLineno int) error {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || trimmed[0] == ';' {
		return nil
	}
	a.lineno = originalLineno

	first, rest := nextWord(trimmed)
	lowerFirst := strings.ToLower(first)

	switch lowerFirst {
	case "if":
		// Track nesting even inside a suppressed region, but only
		// evaluate the condition when the region is active.
		active := !a.shouldSkip()
		result := false
		if active {
			var err error
			result, err = a.evaluateConditional(rest)
			if err != nil {
				return err
			}
		}
		a.ifStack = append(a.ifStack, result)
		return nil

	case "endif":
		if len(a.ifStack) == 0 {
			return a.errorAt(originalLineno, "ENDIF without IF")
		}
		a.ifStack = a.ifStack[:len(a.ifStack)-1]
		return nil
	}

	if a.shouldSkip() {
		return nil
	}

	// ERROR and LOCAL lines emit nothing. LOCAL declarations take
	// effect through collectLocals when a macro expands; ERROR is
	// ignored everywhere.
	if lowerFirst == "error" || lowerFirst == "local" {
		return nil
	}

	if def, ok := a.macros[lowerFirst]; ok {
		return a.expandMacro(def, rest, originalLineno)
	}

	a.parseLine(line)
	return a.processInstruction()
}

// expandMacro substitutes arguments for parameters and unique names
// for LOCAL labels, then processes each body line recursively.
func (a *Assembler) expandMacro(def *macro, argsPart string, originalLineno int) error {
	a.macroCounter++
	expansion := a.macroCounter
	a.log("expand %s #%d", def.name, expansion)

	args := splitArgs(argsPart, ',')
	if len(args) != len(def.params) {
		return a.errorAt(originalLineno,
			"macro %q argument count mismatch", def.name)
	}

	locals := a.collectLocals(def, expansion)

	for _, bodyLine := range def.body {
		expanded := bodyLine
		for i, param := range def.params {
			if param == "" {
				continue
			}
			expanded = strings.ReplaceAll(expanded, param, args[i])
		}
		for _, l := range locals {
			expanded = strings.ReplaceAll(expanded, l.name, l.unique)
		}
		if err := a.expandAndProcessLine(expanded, originalLineno); err != nil {
			return err
		}
	}
	return nil
}

type localLabel struct {
	name   string
	unique string
}

// collectLocals pre-scans a macro body for LOCAL declarations and
// assigns each declared name its per-expansion unique form name_N.
func (a *Assembler) collectLocals(def *macro, expansion int) []localLabel {
	var locals []localLabel
	seen := make(map[string]bool)
	for _, bodyLine := range def.body {
		first, rest := nextWord(strings.TrimSpace(bodyLine))
		if strings.ToLower(first) != "local" {
			continue
		}
		for _, name := range splitArgs(rest, ',') {
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			locals = append(locals, localLabel{
				name:   name,
				unique: name + "_" + strconv.Itoa(expansion),
			})
		}
	}
	return locals
}

// shouldSkip reports whether the current line sits under a false IF.
func (a *Assembler) shouldSkip() bool {
	for _, condition := range a.ifStack {
		if !condition {
			return true
		}
	}
	return false
}
