// Copyright 2026 the asm80 authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "strings"

// db emits a list of bytes. Each operand may be a <...> group of
// byte expressions, a quoted string (one byte per character), or an
// arbitrary expression truncated to 8 bits. The line's label is
// registered by the first emitted byte only.
func (a *Assembler) db() error {
	allOperands := a.operand1
	if a.operand2 != "" {
		allOperands += "," + a.operand2
	}
	if err := a.checkOperands(allOperands != "", "db"); err != nil {
		return err
	}

	shouldAddLabel := true
	for _, arg := range splitArgs(allOperands, ',') {
		arg = strings.TrimSpace(arg)
		switch {
		case len(arg) > 2 && arg[0] == '<' && arg[len(arg)-1] == '>':
			for _, byteArg := range splitArgs(arg[1:len(arg)-1], ',') {
				if err := a.passActionLabel(1, nil, a.label != "" && shouldAddLabel); err != nil {
					return err
				}
				if a.pass == 2 {
					v, err := a.evaluateExpression(byteArg)
					if err != nil {
						return err
					}
					a.output = append(a.output, byte(v&0xff))
				}
				shouldAddLabel = false
			}

		case isQuoteDelimited(arg):
			str := arg[1 : len(arg)-1]
			if err := a.passActionLabel(len(str), nil, a.label != "" && shouldAddLabel); err != nil {
				return err
			}
			if a.pass == 2 {
				a.output = append(a.output, str...)
			}

		default:
			if err := a.passActionLabel(1, nil, a.label != "" && shouldAddLabel); err != nil {
				return err
			}
			if a.pass == 2 {
				v, err := a.evaluateExpression(arg)
				if err != nil {
					return err
				}
				a.output = append(a.output, byte(v&0xff))
			}
		}
		shouldAddLabel = false
	}
	return nil
}

// dw emits a list of expressions as 16-bit little-endian words.
func (a *Assembler) dw() error {
	allOperands := a.operand1
	if a.operand2 != "" {
		allOperands += "," + a.operand2
	}
	if err := a.checkOperands(allOperands != "", "dw"); err != nil {
		return err
	}

	shouldAddLabel := true
	for _, arg := range splitArgs(allOperands, ',') {
		arg = strings.TrimSpace(arg)
		if err := a.passActionLabel(2, nil, a.label != "" && shouldAddLabel); err != nil {
			return err
		}
		if err := a.address16(arg); err != nil {
			return err
		}
		shouldAddLabel = false
	}
	return nil
}

// ds reserves space. Pass 2 fills it with the optional second operand
// (default 0).
func (a *Assembler) ds() error {
	if err := a.checkOperands(a.operand1 != "", "ds"); err != nil {
		return err
	}
	size, err := a.evaluateExpression(a.operand1)
	if err != nil {
		return err
	}
	if size < 0 {
		return a.errorf("DS size cannot be negative")
	}
	fill := byte(0)
	if a.operand2 != "" {
		v, err := a.evaluateExpression(a.operand2)
		if err != nil {
			return err
		}
		fill = byte(v & 0xff)
	}
	if a.pass == 2 {
		for i := 0; i < size; i++ {
			a.output = append(a.output, fill)
		}
	}
	return a.passAction(size, nil)
}

// equ assigns an expression's value to the line's label. The symbol is
// inserted on pass 1; pass 2 re-evaluates the expression but does not
// touch the table.
func (a *Assembler) equ() error {
	if a.label == "" {
		return a.errorf("missing 'equ' label")
	}
	if err := a.checkOperands(a.operand1 != "" && a.operand2 == "", "equ"); err != nil {
		return err
	}
	v, err := a.evaluateExpression(a.operand1)
	if err != nil {
		return err
	}
	if a.pass == 1 {
		if _, found := a.symbols[a.label]; found {
			return a.errorf("duplicate label: %q", a.label)
		}
		a.symbols[a.label] = uint16(v)
		a.log("%-15s $%04X (equ)", a.label, uint16(v))
	}
	return nil
}

// org repositions the location counter. The first ORG of a pass, seen
// before any byte has been emitted, fixes the image base address; a
// later forward ORG pads the output with zeros so that the output
// length stays equal to address minus origin.
func (a *Assembler) org() error {
	if err := a.checkOperands(a.operand1 != "" && a.label == "" && a.operand2 == "", "org"); err != nil {
		return err
	}
	v, err := a.evaluateExpression(a.operand1)
	if err != nil {
		return err
	}
	newAddress := uint16(v)
	if !a.emitted {
		a.origin = newAddress
		a.address = newAddress
		return nil
	}
	if a.pass == 2 && newAddress > a.address {
		for n := newAddress - a.address; n > 0; n-- {
			a.output = append(a.output, 0)
		}
	}
	a.address = newAddress
	return nil
}

// end stops assembly; remaining lines are ignored on both passes.
func (a *Assembler) end() error {
	if err := a.checkOperands(a.label == "" && a.operand1 == "" && a.operand2 == "", "end"); err != nil {
		return err
	}
	a.finished = true
	return nil
}

// NAME and TITLE are accepted for source compatibility and ignored.
func (a *Assembler) nameDirective() error  { return nil }
func (a *Assembler) titleDirective() error { return nil }
