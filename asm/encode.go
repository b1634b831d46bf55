// Copyright 2026 the asm80 authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"strings"

	"github.com/asm80/asm80"
)

// encodeInstruction emits the bytes for one 8080 instruction. The
// operand shape is validated first; the encoding class then selects
// how registers, immediates and addresses fold into the opcode.
// Immediate and address expressions are evaluated on pass 2 only;
// pass 1 advances the location counter by the same byte count.
func (a *Assembler) encodeInstruction(inst asm80.Instruction) error {
	switch inst.Class {
	case asm80.Implied:
		if err := a.checkOperands(a.operand1 == "" && a.operand2 == "", inst.Name); err != nil {
			return err
		}
		return a.passAction(1, []byte{inst.Opcode})

	case asm80.Reg8Dst:
		if err := a.checkOperands(a.operand1 != "" && a.operand2 == "", inst.Name); err != nil {
			return err
		}
		r, err := a.reg8(a.operand1)
		if err != nil {
			return err
		}
		return a.passAction(1, []byte{inst.Opcode + byte(r<<3)})

	case asm80.Reg8Src:
		if err := a.checkOperands(a.operand1 != "" && a.operand2 == "", inst.Name); err != nil {
			return err
		}
		r, err := a.reg8(a.operand1)
		if err != nil {
			return err
		}
		return a.passAction(1, []byte{inst.Opcode + byte(r)})

	case asm80.Move:
		if err := a.checkOperands(a.operand1 != "" && a.operand2 != "", inst.Name); err != nil {
			return err
		}
		dst, err := a.reg8(a.operand1)
		if err != nil {
			return err
		}
		src, err := a.reg8(a.operand2)
		if err != nil {
			return err
		}
		return a.passAction(1, []byte{inst.Opcode + byte(dst<<3) + byte(src)})

	case asm80.Pair:
		if err := a.checkOperands(a.operand1 != "" && a.operand2 == "", inst.Name); err != nil {
			return err
		}
		p, err := a.pair16()
		if err != nil {
			return err
		}
		return a.passAction(1, []byte{inst.Opcode + byte(p)})

	case asm80.PairImm16:
		if err := a.checkOperands(a.operand1 != "" && a.operand2 != "", inst.Name); err != nil {
			return err
		}
		p, err := a.pair16()
		if err != nil {
			return err
		}
		if err := a.passAction(3, []byte{inst.Opcode + byte(p)}); err != nil {
			return err
		}
		return a.immediateOperand(16)

	case asm80.Imm8:
		if err := a.checkOperands(a.operand1 != "" && a.operand2 == "", inst.Name); err != nil {
			return err
		}
		if err := a.passAction(2, []byte{inst.Opcode}); err != nil {
			return err
		}
		return a.immediateOperand(8)

	case asm80.Reg8Imm8:
		if err := a.checkOperands(a.operand1 != "" && a.operand2 != "", inst.Name); err != nil {
			return err
		}
		r, err := a.reg8(a.operand1)
		if err != nil {
			return err
		}
		if err := a.passAction(2, []byte{inst.Opcode + byte(r<<3)}); err != nil {
			return err
		}
		return a.immediateOperand(8)

	case asm80.Addr16:
		if err := a.checkOperands(a.operand1 != "" && a.operand2 == "", inst.Name); err != nil {
			return err
		}
		if err := a.passAction(3, []byte{inst.Opcode}); err != nil {
			return err
		}
		return a.address16(a.operand1)

	case asm80.Restart:
		if err := a.checkOperands(a.operand1 != "" && a.operand2 == "", inst.Name); err != nil {
			return err
		}
		vector, err := a.getNumber(a.operand1)
		if err != nil {
			return err
		}
		if vector < 0 || vector > 7 {
			return a.errorf("invalid restart vector")
		}
		return a.passAction(1, []byte{inst.Opcode + byte(vector<<3)})

	default: // asm80.IndexPair
		if err := a.checkOperands(a.operand1 != "" && a.operand2 == "", inst.Name); err != nil {
			return err
		}
		switch strings.ToLower(a.operand1) {
		case "b":
			return a.passAction(1, []byte{inst.Opcode})
		case "d":
			return a.passAction(1, []byte{inst.Opcode + 0x10})
		default:
			return a.errorf("%q only takes \"b\" or \"d\"", inst.Name)
		}
	}
}

// reg8 resolves an 8-bit register operand to its encoding 0..7.
func (a *Assembler) reg8(raw string) (int, error) {
	r, ok := asm80.Reg8(strings.ToLower(raw))
	if !ok {
		return 0, a.errorf("invalid 8-bit register %q", raw)
	}
	return r, nil
}

// pair16 resolves the register-pair operand of the current line to its
// opcode offset. PSW is only valid with PUSH and POP; SP with
// everything but PUSH and POP. Both share the same encoding.
func (a *Assembler) pair16() (int, error) {
	op := strings.ToLower(a.operand1)
	if p, ok := asm80.Pair16(op); ok {
		return p, nil
	}
	switch op {
	case "psw":
		if a.mnemonic == "push" || a.mnemonic == "pop" {
			return asm80.PairSP, nil
		}
		return 0, a.errorf("\"psw\" cannot be used with instruction %q", a.mnemonic)
	case "sp":
		if a.mnemonic != "push" && a.mnemonic != "pop" {
			return asm80.PairSP, nil
		}
		return 0, a.errorf("\"sp\" cannot be used with instruction %q", a.mnemonic)
	}
	return 0, a.errorf("invalid 16-bit register %q for instruction %q", a.operand1, a.mnemonic)
}

// immediateOperand evaluates and appends an immediate value on pass 2.
// LXI and MVI carry their immediate in the second operand.
func (a *Assembler) immediateOperand(bits int) error {
	if a.pass != 2 {
		return nil
	}
	operand := a.operand1
	if a.mnemonic == "lxi" || a.mnemonic == "mvi" {
		operand = a.operand2
	}
	number, err := a.evaluateExpression(operand)
	if err != nil {
		return err
	}
	a.output = append(a.output, byte(number&0xff))
	if bits == 16 {
		a.output = append(a.output, byte((number>>8)&0xff))
	}
	return nil
}

// address16 evaluates and appends a 16-bit little-endian address on
// pass 2.
func (a *Assembler) address16(operand string) error {
	if a.pass != 2 {
		return nil
	}
	number, err := a.evaluateExpression(operand)
	if err != nil {
		return err
	}
	a.output = append(a.output, byte(number&0xff), byte((number>>8)&0xff))
	return nil
}
