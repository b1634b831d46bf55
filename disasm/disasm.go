// Copyright 2026 the asm80 authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disasm implements an Intel 8080 instruction set
// disassembler.
package disasm

import (
	"fmt"
	"strings"

	"github.com/asm80/asm80"
)

// pairNames maps the register-pair encodings in opcode bits 5..4 to
// their names. Encoding 3 is SP, or PSW for PUSH and POP.
var pairNames = []string{"B", "D", "H", "SP"}

// Disassemble decodes the instruction at offset within the image.
// It returns the instruction rendered in assembler syntax and the
// offset of the next instruction. Undocumented opcodes render as DB
// lines. Truncated operands at the end of the image are padded with
// zeros.
func Disassemble(image []byte, offset int) (line string, next int) {
	opcode := image[offset]
	d := asm80.Decode(opcode)
	next = offset + int(d.Length)

	if d.Name == "" {
		return fmt.Sprintf("DB %s", immString(int(opcode), 2)), next
	}

	operand := operandBytes(image, offset+1, int(d.Length)-1)
	name := strings.ToUpper(d.Name)

	switch d.Class {
	case asm80.Reg8Dst, asm80.Reg8Imm8:
		r := asm80.RegName(int(opcode) >> 3)
		if d.Class == asm80.Reg8Imm8 {
			return fmt.Sprintf("%s %s,%s", name, r, immString(operand, 2)), next
		}
		return fmt.Sprintf("%s %s", name, r), next

	case asm80.Reg8Src:
		return fmt.Sprintf("%s %s", name, asm80.RegName(int(opcode))), next

	case asm80.Move:
		dst := asm80.RegName(int(opcode) >> 3)
		src := asm80.RegName(int(opcode))
		return fmt.Sprintf("%s %s,%s", name, dst, src), next

	case asm80.Pair, asm80.PairImm16:
		pair := pairNames[(opcode>>4)&3]
		if pair == "SP" && (d.Name == "push" || d.Name == "pop") {
			pair = "PSW"
		}
		if d.Class == asm80.PairImm16 {
			return fmt.Sprintf("%s %s,%s", name, pair, immString(operand, 4)), next
		}
		return fmt.Sprintf("%s %s", name, pair), next

	case asm80.Imm8:
		return fmt.Sprintf("%s %s", name, immString(operand, 2)), next

	case asm80.Addr16:
		return fmt.Sprintf("%s %s", name, immString(operand, 4)), next

	case asm80.Restart:
		return fmt.Sprintf("%s %d", name, (opcode>>3)&7), next

	case asm80.IndexPair:
		pair := "B"
		if opcode&0x10 != 0 {
			pair = "D"
		}
		return fmt.Sprintf("%s %s", name, pair), next

	default: // asm80.Implied
		return name, next
	}
}

// operandBytes assembles up to two little-endian operand bytes into a
// value, reading zeros past the end of the image.
func operandBytes(image []byte, offset, n int) int {
	v := 0
	for i := n - 1; i >= 0; i-- {
		v <<= 8
		if offset+i < len(image) {
			v |= int(image[offset+i])
		}
	}
	return v
}

// immString renders a value in assembler syntax: uppercase hex with a
// trailing H, zero-prefixed so it cannot start with a letter.
func immString(v, digits int) string {
	return fmt.Sprintf("0%0*XH", digits, v)
}
