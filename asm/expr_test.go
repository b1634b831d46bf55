package asm

import (
	"fmt"
	"testing"
)

// evalAsm returns an assembler prepared for direct expression
// evaluation with a few predefined symbols.
func evalAsm() *Assembler {
	a := New()
	a.resetState()
	a.symbols["base"] = 0x1234
	a.symbols["one"] = 1
	return a
}

func checkExpr(t *testing.T, expr string, want int) {
	t.Helper()
	a := evalAsm()
	got, err := a.evaluateExpression(expr)
	if err != nil {
		t.Errorf("%q: unexpected error: %v", expr, err)
		return
	}
	if got != want {
		t.Errorf("%q = %d, want %d", expr, got, want)
	}
}

func TestExprPrecedence(t *testing.T) {
	checkExpr(t, "1+2*3", 7)
	checkExpr(t, "2*3+1", 7)
	checkExpr(t, "10 - 2 - 3", 5)
	checkExpr(t, "100/10/2", 5)
	checkExpr(t, "(1+2)*3", 9)
	checkExpr(t, "1 OR 2 AND 6", 3)
	checkExpr(t, "6 AND 3 OR 8", 10)
	checkExpr(t, "5 XOR 3", 6)
	checkExpr(t, "7 / 2", 3)
	checkExpr(t, "2*(3+(4-1))", 12)
}

func TestExprSingleTerms(t *testing.T) {
	checkExpr(t, "", 0)
	checkExpr(t, "42", 42)
	checkExpr(t, "-5", -5)
	checkExpr(t, "0FFH", 255)
	checkExpr(t, "17Q", 15)
	checkExpr(t, "1010B", 10)
	checkExpr(t, "'A'", 65)
	checkExpr(t, "'a'", 97)
	checkExpr(t, "' '", 32)
	checkExpr(t, "BASE", 0x1234)
	checkExpr(t, "base", 0x1234)
	checkExpr(t, "LOW BASE", 0x34)
	checkExpr(t, "HIGH BASE", 0x12)
	checkExpr(t, "ONE + 'A'", 66)
}

func TestExprLocationCounter(t *testing.T) {
	a := evalAsm()
	a.address = 0x210
	got, err := a.evaluateExpression("$ + 2")
	if err != nil {
		t.Fatal(err)
	}
	if got != 0x212 {
		t.Errorf("$ + 2 = %d, want %d", got, 0x212)
	}
}

func TestExprUndefinedSymbolByPass(t *testing.T) {
	a := evalAsm()
	a.pass = 1
	got, err := a.evaluateExpression("missing")
	if err != nil || got != 0 {
		t.Errorf("pass 1: got %d, %v; want 0, nil", got, err)
	}

	a.pass = 2
	_, err = a.evaluateExpression("missing")
	if err == nil {
		t.Error("pass 2: expected undefined-label error")
	}
}

func TestNumberRoundTrip(t *testing.T) {
	a := evalAsm()
	for n := 0; n <= 0xffff; n++ {
		for _, s := range []string{
			fmt.Sprintf("%XH", n),
			fmt.Sprintf("%oQ", n),
			fmt.Sprintf("%bB", n),
			fmt.Sprintf("%d", n),
		} {
			got, err := a.getNumber(s)
			if err != nil {
				t.Fatalf("%q: unexpected error: %v", s, err)
			}
			if got != n {
				t.Fatalf("%q = %d, want %d", s, got, n)
			}
		}
	}
}

func TestNumberSuffixCase(t *testing.T) {
	a := evalAsm()
	for _, tt := range []struct {
		in   string
		want int
	}{
		{"0ffh", 255},
		{"0FFh", 255},
		{"10q", 8},
		{"101b", 5},
		{"-128", -128},
	} {
		got, err := a.getNumber(tt.in)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestScanToken(t *testing.T) {
	tests := []struct {
		in   string
		toks []string
	}{
		{"1+2", []string{"1", "+", "2"}},
		{"  FOO_1 + $", []string{"FOO_1", "+", "$"}},
		{"0FFH AND 0F0H", []string{"0FFH", "AND", "0F0H"}},
		{"-1+-2", []string{"-1", "+", "-2"}},
		{"'A'+1", []string{"'A'", "+", "1"}},
		{"(1)", []string{"(", "1", ")"}},
		{"a >= b", []string{"a", ">", "=", "b"}},
	}

	for _, tt := range tests {
		var toks []string
		pos := 0
		for {
			tok, _, next := scanToken(tt.in, pos)
			if tok == "" {
				break
			}
			toks = append(toks, tok)
			pos = next
		}
		if len(toks) != len(tt.toks) {
			t.Errorf("%q: got %v, want %v", tt.in, toks, tt.toks)
			continue
		}
		for i := range toks {
			if toks[i] != tt.toks[i] {
				t.Errorf("%q: got %v, want %v", tt.in, toks, tt.toks)
				break
			}
		}
	}
}

func TestEvaluateConditional(t *testing.T) {
	tests := []struct {
		expr string
		want bool
	}{
		{"1 EQ 1", true},
		{"1 eq 2", false},
		{"1 NE 2", true},
		{"2 GE 2", true},
		{"1 GT 2", false},
		{"1 LT 2", true},
		{"3 LE 2", false},
		{"1 = 1", true},
		{"1 != 1", false},
		{"2 > 1", true},
		{"2 >= 3", false},
		{"1 < 2", true},
		{"2 <= 2", true},
		{"5", true},
		{"0", false},
		{"2 - 2", false},
		{"BASE EQ 1234H", true},
		// A relational word inside an identifier must not split the
		// expression.
		{"general EQ 0", true}, // 'general' is undefined, 0 on pass 1
	}

	for _, tt := range tests {
		a := evalAsm()
		got, err := a.evaluateConditional(tt.expr)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tt.expr, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q = %v, want %v", tt.expr, got, tt.want)
		}
	}
}
