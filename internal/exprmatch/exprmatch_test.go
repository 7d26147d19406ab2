package exprmatch

import "testing"

func src(lines ...string) BufferSource {
	elided := append([]string{""}, lines...)
	return BufferSource{ElidedLines: elided, PlainLines: elided}
}

func TestCloseSameLine(t *testing.T) {
	s := src(`process(a, b, c)`)
	col := 7 // index of '('
	line, col2, ok := Close(s, 1, col)
	if !ok {
		t.Fatalf("Close: not ok")
	}
	if line != 1 || s.Elided(line)[col2-1] != ')' {
		t.Fatalf("Close returned (%d,%d), want close paren", line, col2)
	}
}

func TestCloseAcrossLines(t *testing.T) {
	s := src(
		`foo (a,`,
		` b,`,
		` c);`,
	)
	line, col, ok := Close(s, 1, 4)
	if !ok {
		t.Fatalf("Close: not ok")
	}
	if line != 3 {
		t.Fatalf("Close line = %d, want 3", line)
	}
	if s.Elided(line)[col-1] != ')' {
		t.Fatalf("Close col %d does not point past ')'", col)
	}
}

func TestCloseUnclosedReturnsNotOK(t *testing.T) {
	s := src(`foo (a, b`)
	_, _, ok := Close(s, 1, 4)
	if ok {
		t.Fatalf("Close: expected not ok for unclosed expression")
	}
}

func TestExtractSameLine(t *testing.T) {
	s := src(`process(a, b, c)`)
	got, _, _, ok := Extract(s, 1, 7)
	if !ok || got != "a, b, c" {
		t.Fatalf("Extract = %q, ok=%v", got, ok)
	}
}

func TestLessThanShiftDoesNotOpenExpression(t *testing.T) {
	s := src(`x <= a;`)
	_, _, ok := Close(s, 1, 2) // position of '<' in "<="
	if ok {
		t.Fatalf("Close: '<=' should not be treated as an opening bracket")
	}
}
