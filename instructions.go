// Copyright 2026 the asm80 authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package asm80 provides Intel 8080 instruction set data shared by the
// cross-assembler and the disassembler.
package asm80

// A Class identifies how an instruction encodes its operand(s) into the
// opcode byte and any trailing bytes.
type Class byte

// All 8080 encoding classes
const (
	Implied   Class = iota // no operand, fixed 1-byte opcode
	Reg8Dst                // 8-bit register in bits 5..3 (INR, DCR)
	Reg8Src                // 8-bit register in bits 2..0 (ADD .. CMP)
	Move                   // MOV dst,src
	Pair                   // register pair in bits 5..4 (INX, DCX, DAD, PUSH, POP)
	PairImm16              // LXI rp,imm16
	Imm8                   // fixed opcode + 8-bit immediate (ADI .. CPI, IN, OUT)
	Reg8Imm8               // MVI r,imm8
	Addr16                 // fixed opcode + 16-bit address (jumps, calls, loads, stores)
	Restart                // RST n, vector in bits 5..3
	IndexPair              // LDAX/STAX, B or D pair only
)

// 8-bit register encodings
const (
	RegB = 0
	RegC = 1
	RegD = 2
	RegE = 3
	RegH = 4
	RegL = 5
	RegM = 6
	RegA = 7
)

// PairSP is the register-pair encoding shared by SP and PSW. Which of
// the two a mnemonic accepts is up to the assembler.
const PairSP = 0x30

// regNames maps the 8-bit register encodings 0..7 to their names.
const regNames = "BCDEHLMA"

// RegName returns the name of the 8-bit register with encoding r.
func RegName(r int) string {
	return regNames[r&7 : r&7+1]
}

var reg8 = map[string]int{
	"b": RegB, "c": RegC, "d": RegD, "e": RegE,
	"h": RegH, "l": RegL, "m": RegM, "a": RegA,
}

// Reg8 returns the encoding of an 8-bit register name. The name must
// already be lower case.
func Reg8(name string) (int, bool) {
	r, ok := reg8[name]
	return r, ok
}

var pair16 = map[string]int{
	"b": 0x00, "bc": 0x00,
	"d": 0x10, "de": 0x10,
	"h": 0x20, "hl": 0x20,
}

// Pair16 returns the opcode offset of a BC/DE/HL register pair name,
// accepting both the short and long spellings. SP and PSW are not
// resolved here; both encode as PairSP and their validity depends on
// the mnemonic.
func Pair16(name string) (int, bool) {
	p, ok := pair16[name]
	return p, ok
}

// An Instruction describes one 8080 mnemonic: its encoding class and
// the base opcode the operand encodings are added to.
type Instruction struct {
	Name   string // lower-case mnemonic
	Class  Class  // operand encoding class
	Opcode byte   // base opcode
}

// All 8080 mnemonics, in base opcode order. SIM and RIM are 8085
// opcodes retained by convention.
var instructions = []Instruction{
	{"nop", Implied, 0x00},
	{"lxi", PairImm16, 0x01},
	{"stax", IndexPair, 0x02},
	{"inx", Pair, 0x03},
	{"inr", Reg8Dst, 0x04},
	{"dcr", Reg8Dst, 0x05},
	{"mvi", Reg8Imm8, 0x06},
	{"rlc", Implied, 0x07},
	{"dad", Pair, 0x09},
	{"ldax", IndexPair, 0x0a},
	{"dcx", Pair, 0x0b},
	{"rrc", Implied, 0x0f},
	{"ral", Implied, 0x17},
	{"rar", Implied, 0x1f},
	{"rim", Implied, 0x20},
	{"shld", Addr16, 0x22},
	{"daa", Implied, 0x27},
	{"lhld", Addr16, 0x2a},
	{"cma", Implied, 0x2f},
	{"sim", Implied, 0x30},
	{"sta", Addr16, 0x32},
	{"stc", Implied, 0x37},
	{"lda", Addr16, 0x3a},
	{"cmc", Implied, 0x3f},
	{"mov", Move, 0x40},
	{"hlt", Implied, 0x76},
	{"add", Reg8Src, 0x80},
	{"adc", Reg8Src, 0x88},
	{"sub", Reg8Src, 0x90},
	{"sbb", Reg8Src, 0x98},
	{"ana", Reg8Src, 0xa0},
	{"xra", Reg8Src, 0xa8},
	{"ora", Reg8Src, 0xb0},
	{"cmp", Reg8Src, 0xb8},
	{"rnz", Implied, 0xc0},
	{"pop", Pair, 0xc1},
	{"jnz", Addr16, 0xc2},
	{"jmp", Addr16, 0xc3},
	{"cnz", Addr16, 0xc4},
	{"push", Pair, 0xc5},
	{"adi", Imm8, 0xc6},
	{"rst", Restart, 0xc7},
	{"rz", Implied, 0xc8},
	{"ret", Implied, 0xc9},
	{"jz", Addr16, 0xca},
	{"cz", Addr16, 0xcc},
	{"call", Addr16, 0xcd},
	{"aci", Imm8, 0xce},
	{"rnc", Implied, 0xd0},
	{"jnc", Addr16, 0xd2},
	{"out", Imm8, 0xd3},
	{"cnc", Addr16, 0xd4},
	{"sui", Imm8, 0xd6},
	{"rc", Implied, 0xd8},
	{"jc", Addr16, 0xda},
	{"in", Imm8, 0xdb},
	{"cc", Addr16, 0xdc},
	{"sbi", Imm8, 0xde},
	{"rpo", Implied, 0xe0},
	{"jpo", Addr16, 0xe2},
	{"xthl", Implied, 0xe3},
	{"cpo", Addr16, 0xe4},
	{"ani", Imm8, 0xe6},
	{"rpe", Implied, 0xe8},
	{"pchl", Implied, 0xe9},
	{"jpe", Addr16, 0xea},
	{"xchg", Implied, 0xeb},
	{"cpe", Addr16, 0xec},
	{"xri", Imm8, 0xee},
	{"rp", Implied, 0xf0},
	{"jp", Addr16, 0xf2},
	{"di", Implied, 0xf3},
	{"cp", Addr16, 0xf4},
	{"ori", Imm8, 0xf6},
	{"rm", Implied, 0xf8},
	{"sphl", Implied, 0xf9},
	{"jm", Addr16, 0xfa},
	{"ei", Implied, 0xfb},
	{"cm", Addr16, 0xfc},
	{"cpi", Imm8, 0xfe},
}

var byName map[string]Instruction

// A Decoded describes the instruction behind a single opcode byte, for
// use by the disassembler.
type Decoded struct {
	Name   string // lower-case mnemonic, empty for undocumented opcodes
	Class  Class  // operand encoding class
	Length byte   // total instruction length in bytes (1..3)
}

var decode [256]Decoded

func init() {
	byName = make(map[string]Instruction, len(instructions))
	for _, inst := range instructions {
		byName[inst.Name] = inst

		switch inst.Class {
		case Implied:
			setDecode(inst, inst.Opcode, 1)
		case Reg8Dst:
			for r := 0; r < 8; r++ {
				setDecode(inst, inst.Opcode+byte(r<<3), 1)
			}
		case Reg8Imm8:
			for r := 0; r < 8; r++ {
				setDecode(inst, inst.Opcode+byte(r<<3), 2)
			}
		case Reg8Src:
			for r := 0; r < 8; r++ {
				setDecode(inst, inst.Opcode+byte(r), 1)
			}
		case Move:
			for dst := 0; dst < 8; dst++ {
				for src := 0; src < 8; src++ {
					op := inst.Opcode + byte(dst<<3) + byte(src)
					if op == 0x76 {
						continue // MOV M,M encodes as HLT
					}
					setDecode(inst, op, 1)
				}
			}
		case Pair:
			for p := 0; p < 4; p++ {
				setDecode(inst, inst.Opcode+byte(p<<4), 1)
			}
		case PairImm16:
			for p := 0; p < 4; p++ {
				setDecode(inst, inst.Opcode+byte(p<<4), 3)
			}
		case Imm8:
			setDecode(inst, inst.Opcode, 2)
		case Addr16:
			setDecode(inst, inst.Opcode, 3)
		case Restart:
			for n := 0; n < 8; n++ {
				setDecode(inst, inst.Opcode+byte(n<<3), 1)
			}
		case IndexPair:
			setDecode(inst, inst.Opcode, 1)
			setDecode(inst, inst.Opcode+0x10, 1)
		}
	}
}

func setDecode(inst Instruction, opcode byte, length byte) {
	decode[opcode] = Decoded{Name: inst.Name, Class: inst.Class, Length: length}
}

// Lookup returns the instruction data for a lower-case mnemonic.
func Lookup(name string) (Instruction, bool) {
	inst, ok := byName[name]
	return inst, ok
}

// Decode returns the decode-table entry for an opcode byte. Entries for
// undocumented opcodes have an empty Name and Length 1.
func Decode(opcode byte) Decoded {
	d := decode[opcode]
	if d.Name == "" {
		d.Length = 1
	}
	return d
}
