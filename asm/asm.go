// Copyright 2026 the asm80 authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package asm implements a two-pass Intel 8080 macro assembler.
//
// Pass 1 scans the source to build the symbol table, pass 2 emits the
// machine code. A macro pre-pass runs before pass 1 and collects all
// MACRO definitions. Assembly stops at the first error.
package asm

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/asm80/asm80"
)

// An Error describes a fatal assembly problem and the 1-indexed source
// line that caused it.
type Error struct {
	Line int    // 1-indexed source line number
	Msg  string // description of the problem
}

func (e Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// An Assembler holds all state used while assembling a source file.
// The zero value is not usable; call New.
type Assembler struct {
	listing io.Writer // optional listing sink, written during pass 2
	octal   bool      // listing addresses and bytes in octal
	verbose bool      // verbose trace output
	out     io.Writer // trace output sink

	lineno       int    // current 0-indexed source line
	address      uint16 // location counter
	origin       uint16 // image base address, set by the first ORG
	emitted      bool   // true once any byte-producing line has been seen
	pass         int    // 1 or 2
	finished     bool   // set by the END directive
	macroCounter int    // incremented per macro expansion

	output  []byte            // generated machine code (pass 2)
	symbols map[string]uint16 // label -> address
	macros  map[string]*macro // macro name -> definition
	ifStack []bool            // IF/ENDIF nesting; a false entry suppresses code
	xref    map[string][]int  // label -> line numbers (negative = definition)

	// fields of the most recently parsed line
	label    string
	mnemonic string
	operand1 string
	operand2 string
	comment  string
}

// New returns an assembler ready to process a source file.
func New() *Assembler {
	return &Assembler{out: os.Stdout}
}

// SetListingStream attaches a sink that receives an annotated listing
// during pass 2.
func (a *Assembler) SetListingStream(w io.Writer) {
	a.listing = w
}

// SetOctalMode selects octal instead of hexadecimal rendering of
// addresses and bytes in the listing.
func (a *Assembler) SetOctalMode(enabled bool) {
	a.octal = enabled
}

// SetVerbose enables a trace of the assembly on w (os.Stdout if w is
// nil).
func (a *Assembler) SetVerbose(enabled bool, w io.Writer) {
	a.verbose = enabled
	if w != nil {
		a.out = w
	}
}

// Output returns the assembled machine code image. Valid after
// Assemble returns nil.
func (a *Assembler) Output() []byte {
	return a.output
}

// Origin returns the image base address, i.e. the target of the first
// ORG directive.
func (a *Assembler) Origin() uint16 {
	return a.origin
}

// SymbolTable returns the label-to-address map built during pass 1.
// The map is owned by the assembler; callers must not modify it.
func (a *Assembler) SymbolTable() map[string]uint16 {
	return a.symbols
}

// CrossReference returns the label-to-line-numbers map. A negative
// entry -n marks the definition at line n; positive entries are
// references. Line numbers are 1-indexed.
func (a *Assembler) CrossReference() map[string][]int {
	return a.xref
}

func (a *Assembler) resetState() {
	a.lineno = 0
	a.address = 0
	a.origin = 0
	a.emitted = false
	a.pass = 1
	a.finished = false
	a.macroCounter = 0
	a.output = nil
	a.symbols = make(map[string]uint16)
	a.macros = make(map[string]*macro)
	a.ifStack = nil
	a.xref = make(map[string][]int)
}

// Assemble processes the source lines and produces the machine code
// image. It returns the first error encountered, or nil.
func (a *Assembler) Assemble(lines []string) error {
	a.resetState()

	a.logSection("Scanning macro definitions")
	if err := a.preprocessMacros(lines); err != nil {
		return err
	}

	a.logSection("Pass 1")
	a.pass = 1
	if err := a.doPass(lines); err != nil {
		return err
	}

	// Pass 2 restarts the location counter and the expansion counter
	// but keeps the symbol and macro tables.
	a.address = 0
	a.origin = 0
	a.emitted = false
	a.output = nil
	a.finished = false
	a.macroCounter = 0

	a.logSection("Pass 2")
	a.pass = 2
	return a.doPass(lines)
}

// doPass runs one full traversal of the source. Macro definition lines
// are suppressed here; everything else goes through the expander.
func (a *Assembler) doPass(lines []string) error {
	inMacroDef := false
	a.ifStack = a.ifStack[:0]

	for i := 0; i < len(lines); i++ {
		if a.finished {
			break
		}
		a.lineno = i
		current := lines[i]

		lineAddress := a.address
		bytesBefore := len(a.output)

		trimmed := strings.TrimSpace(current)
		if trimmed == "" {
			if a.pass == 2 && a.listing != nil {
				fmt.Fprintln(a.listing, current)
			}
			continue
		}

		first, second, _ := firstTwoWords(trimmed)
		if strings.ToLower(second) == "macro" {
			inMacroDef = true
		}
		if inMacroDef {
			lf := strings.ToLower(first)
			if lf == "endm" || lf == "mend" {
				inMacroDef = false
			}
			continue
		}

		if err := a.expandAndProcessLine(current, i); err != nil {
			return err
		}

		if a.pass == 2 && a.listing != nil {
			a.writeListingLine(current, lineAddress, bytesBefore)
		}
	}

	if len(a.ifStack) != 0 {
		return a.errorAt(len(lines), "IF block not closed with ENDIF")
	}
	return nil
}

// writeListingLine emits one listing line: the line's starting address
// and the bytes it produced, left-justified in 20 columns, followed by
// the verbatim source line.
func (a *Assembler) writeListingLine(line string, lineAddress uint16, bytesBefore int) {
	var data strings.Builder
	if a.octal {
		fmt.Fprintf(&data, "%06o  ", lineAddress)
		for _, b := range a.output[bytesBefore:] {
			fmt.Fprintf(&data, "%03o ", b)
		}
	} else {
		fmt.Fprintf(&data, "%04X  ", lineAddress)
		for _, b := range a.output[bytesBefore:] {
			fmt.Fprintf(&data, "%02X ", b)
		}
	}
	fmt.Fprintf(a.listing, "%-20s%s\n", data.String(), line)
}

// directives maps directive names to their handlers. Instruction
// mnemonics are resolved through the asm80 instruction set instead.
var directives = map[string]func(*Assembler) error{
	"db":    (*Assembler).db,
	"ds":    (*Assembler).ds,
	"dw":    (*Assembler).dw,
	"end":   (*Assembler).end,
	"equ":   (*Assembler).equ,
	"name":  (*Assembler).nameDirective,
	"org":   (*Assembler).org,
	"title": (*Assembler).titleDirective,
}

// processInstruction dispatches the parsed line to an instruction
// encoder or directive handler.
func (a *Assembler) processInstruction() error {
	if a.mnemonic == "" && a.label == "" {
		return nil
	}
	if inst, ok := asm80.Lookup(a.mnemonic); ok {
		return a.encodeInstruction(inst)
	}
	if fn, ok := directives[a.mnemonic]; ok {
		return fn(a)
	}
	if a.mnemonic == "" {
		// A bare label line defines the label at the current address.
		return a.passAction(0, nil)
	}
	return a.errorf("unknown mnemonic %q", a.mnemonic)
}

// passAction is the single funnel through which every line advances
// the location counter: pass 1 registers the line's label, pass 2
// appends the encoded bytes. Both passes advance the address by size,
// which keeps the two passes byte-for-byte consistent.
func (a *Assembler) passAction(size int, b []byte) error {
	return a.passActionLabel(size, b, true)
}

func (a *Assembler) passActionLabel(size int, b []byte, addLabel bool) error {
	if a.pass == 1 {
		if a.label != "" && addLabel {
			if err := a.addLabel(); err != nil {
				return err
			}
		}
	} else {
		a.output = append(a.output, b...)
	}
	if size > 0 {
		a.emitted = true
	}
	a.address += uint16(size)
	return nil
}

// addLabel records the current line's label at the current address.
// Labels are inserted exactly once, during pass 1.
func (a *Assembler) addLabel() error {
	if _, found := a.symbols[a.label]; found {
		return a.errorf("duplicate label: %q", a.label)
	}
	a.symbols[a.label] = a.address
	a.xref[a.label] = append(a.xref[a.label], -(a.lineno + 1))
	a.log("%-15s $%04X", a.label, a.address)
	return nil
}

// checkOperands reports an invalid-operands error when valid is false.
func (a *Assembler) checkOperands(valid bool, name string) error {
	if !valid {
		return a.errorf("invalid operands for mnemonic %q", name)
	}
	return nil
}

// errorf formats a fatal error at the current line.
func (a *Assembler) errorf(format string, args ...any) error {
	return a.errorAt(a.lineno, format, args...)
}

// errorAt formats a fatal error at the given 0-indexed line.
func (a *Assembler) errorAt(lineno int, format string, args ...any) error {
	return Error{Line: lineno + 1, Msg: fmt.Sprintf(format, args...)}
}

// In verbose mode, log a string to the trace output.
func (a *Assembler) log(format string, args ...any) {
	if a.verbose {
		fmt.Fprintf(a.out, format, args...)
		fmt.Fprintln(a.out)
	}
}

// In verbose mode, log a section header to the trace output.
func (a *Assembler) logSection(name string) {
	if a.verbose {
		fmt.Fprintln(a.out, strings.Repeat("-", len(name)+6))
		fmt.Fprintf(a.out, "-- %s --\n", name)
		fmt.Fprintln(a.out, strings.Repeat("-", len(name)+6))
	}
}
