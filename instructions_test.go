package asm80

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		name   string
		class  Class
		opcode byte
	}{
		{"nop", Implied, 0x00},
		{"mov", Move, 0x40},
		{"mvi", Reg8Imm8, 0x06},
		{"lxi", PairImm16, 0x01},
		{"jmp", Addr16, 0xc3},
		{"rst", Restart, 0xc7},
		{"ldax", IndexPair, 0x0a},
		{"cpi", Imm8, 0xfe},
	}
	for _, tt := range tests {
		inst, ok := Lookup(tt.name)
		if !ok {
			t.Errorf("Lookup(%q) not found", tt.name)
			continue
		}
		if inst.Class != tt.class || inst.Opcode != tt.opcode {
			t.Errorf("Lookup(%q) = {%d %02X}, want {%d %02X}",
				tt.name, inst.Class, inst.Opcode, tt.class, tt.opcode)
		}
	}

	if _, ok := Lookup("brk"); ok {
		t.Error("Lookup(\"brk\") should not resolve")
	}
}

func TestDecodeTable(t *testing.T) {
	tests := []struct {
		opcode byte
		name   string
		length byte
	}{
		{0x00, "nop", 1},
		{0x76, "hlt", 1}, // not MOV M,M
		{0x47, "mov", 1},
		{0x3e, "mvi", 2},
		{0x31, "lxi", 3},
		{0xc3, "jmp", 3},
		{0xff, "rst", 1},
		{0x1a, "ldax", 1},
		{0xdb, "in", 2},
		{0x08, "", 1}, // undocumented
	}
	for _, tt := range tests {
		d := Decode(tt.opcode)
		if d.Name != tt.name || d.Length != tt.length {
			t.Errorf("Decode(%02X) = {%q %d}, want {%q %d}",
				tt.opcode, d.Name, d.Length, tt.name, tt.length)
		}
	}
}

func TestRegisterEncodings(t *testing.T) {
	order := []string{"b", "c", "d", "e", "h", "l", "m", "a"}
	for want, name := range order {
		got, ok := Reg8(name)
		if !ok || got != want {
			t.Errorf("Reg8(%q) = %d,%v, want %d,true", name, got, ok, want)
		}
		if RegName(want) != []string{"B", "C", "D", "E", "H", "L", "M", "A"}[want] {
			t.Errorf("RegName(%d) = %q", want, RegName(want))
		}
	}

	pairs := map[string]int{"b": 0x00, "bc": 0x00, "d": 0x10, "de": 0x10, "h": 0x20, "hl": 0x20}
	for name, want := range pairs {
		got, ok := Pair16(name)
		if !ok || got != want {
			t.Errorf("Pair16(%q) = %02X,%v, want %02X,true", name, got, ok, want)
		}
	}
	if _, ok := Pair16("sp"); ok {
		t.Error("Pair16(\"sp\") should not resolve; encoding depends on mnemonic")
	}
}
