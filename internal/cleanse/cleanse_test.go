package cleanse

import "testing"

func TestStripsLineComment(t *testing.T) {
	b := New([]string{`signal a : std_logic; -- trailing note`})
	if got := b.Lines[1]; got != `signal a : std_logic;` {
		t.Fatalf("Lines[1] = %q", got)
	}
}

func TestCommentInsideStringNotStripped(t *testing.T) {
	b := New([]string{`report "a -- b" severity note;`})
	if got := b.Lines[1]; got != `report "a -- b" severity note;` {
		t.Fatalf("Lines[1] = %q, comment marker inside string should not truncate", got)
	}
}

func TestCollapsesDoubleQuotedStrings(t *testing.T) {
	b := New([]string{`x <= "1010";`})
	if got := b.Elided[1]; got != `x <= "";` {
		t.Fatalf("Elided[1] = %q", got)
	}
}

func TestLeavesCharLiteralsUncollapsed(t *testing.T) {
	// Mirrors dead code in the reference tool: single-quoted literals are
	// never collapsed, so '0' remains visible in the elided view.
	b := New([]string{`x <= '0';`})
	if got := b.Elided[1]; got != `x <= '0';` {
		t.Fatalf("Elided[1] = %q, want char literal preserved", got)
	}
}

func TestMultiLineBlockCommentBlanked(t *testing.T) {
	b := New([]string{
		`signal a : std_logic;`,
		`/* this is`,
		`   a block comment */`,
		`signal b : std_logic;`,
	})
	if got := b.Lines[2]; got != "/**/" {
		t.Fatalf("Lines[2] = %q, want /**/ ", got)
	}
	if got := b.Lines[3]; got != "/**/" {
		t.Fatalf("Lines[3] = %q, want /**/ ", got)
	}
	if got := b.Raw[2]; got != "/**/" {
		t.Fatalf("Raw[2] = %q, want multi-line spans blanked in raw too", got)
	}
	if b.UnterminatedComment != 0 {
		t.Fatalf("UnterminatedComment = %d, want 0", b.UnterminatedComment)
	}
}

func TestUnterminatedBlockCommentReported(t *testing.T) {
	b := New([]string{
		`signal a : std_logic;`,
		`/* never closed`,
	})
	if b.UnterminatedComment != 2 {
		t.Fatalf("UnterminatedComment = %d, want 2", b.UnterminatedComment)
	}
}

func TestNumLines(t *testing.T) {
	b := New([]string{"a", "b", "c"})
	if n := b.NumLines(); n != 3 {
		t.Fatalf("NumLines() = %d, want 3", n)
	}
}
