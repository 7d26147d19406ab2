package declparse

import "testing"

type lineSource []string

func (s lineSource) Elided(i int) string { return s[i] }
func (s lineSource) Lines(i int) string  { return s[i] }
func (s lineSource) NumLines() int       { return len(s) - 1 }

func src(lines ...string) lineSource {
	return append(lineSource{""}, lines...)
}

func TestMatchSignalDeclaration(t *testing.T) {
	s := src(`signal my_sig : std_logic := '0';`)
	d, ok := Match(s, 1, 0, KindSignal, 0)
	if !ok {
		t.Fatalf("Match: expected ok")
	}
	if len(d.Names) != 1 || d.Names[0] != "my_sig" {
		t.Fatalf("Names = %v", d.Names)
	}
	if d.Type != "std_logic" {
		t.Fatalf("Type = %q", d.Type)
	}
}

func TestMatchRejectsWrongKind(t *testing.T) {
	s := src(`constant C_FOO : integer := 3;`)
	if _, ok := Match(s, 1, 0, KindSignal, 0); ok {
		t.Fatalf("Match: expected rejection of constant when requesting signal")
	}
}

func TestMultipleNamesParsed(t *testing.T) {
	s := src(`signal a, b, c : std_logic;`)
	d, ok := Match(s, 1, 0, KindSignal, 0)
	if !ok || len(d.Names) != 3 {
		t.Fatalf("Names = %v, ok=%v", d.Names, ok)
	}
}

func TestNeedsIntegerRangeForUnrangedInteger(t *testing.T) {
	s := src(`signal cnt : integer;`)
	d, ok := Match(s, 1, 0, KindSignal, 0)
	if !ok {
		t.Fatalf("Match: expected ok")
	}
	if !d.NeedsIntegerRange() {
		t.Fatalf("expected NeedsIntegerRange true for unranged integer signal")
	}
}

func TestConstantIntegerExemptFromRangeCheck(t *testing.T) {
	s := src(`constant C_MAX : integer := 10;`)
	d, ok := Match(s, 1, 0, KindConstant, 0)
	if !ok {
		t.Fatalf("Match: expected ok")
	}
	if d.NeedsIntegerRange() {
		t.Fatalf("constants are exempt from the integer-range check")
	}
}

func TestPortDirectionParsed(t *testing.T) {
	s := src(`clk : in std_logic;`)
	d, ok := Match(s, 1, 0, "", 0)
	if !ok {
		t.Fatalf("Match: expected ok")
	}
	if d.Direction != "in" {
		t.Fatalf("Direction = %q", d.Direction)
	}
}

func TestMultilineAggregateInit(t *testing.T) {
	s := src(
		`constant C_TABLE : my_array_t := (`,
		`  0, 1, 2);`,
	)
	d, ok := Match(s, 1, 0, KindConstant, 0)
	if !ok {
		t.Fatalf("Match: expected ok")
	}
	if !d.HasInit || d.Init != "(0,1,2)" {
		t.Fatalf("Init = %q, HasInit=%v", d.Init, d.HasInit)
	}
}
