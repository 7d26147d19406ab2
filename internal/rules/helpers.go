package rules

import (
	"strconv"
	"strings"

	"github.com/intrepidcs/vhdllint/internal/diag"
	"github.com/intrepidcs/vhdllint/internal/lineref"
	"github.com/intrepidcs/vhdllint/internal/lintstate"
	"github.com/intrepidcs/vhdllint/internal/symbols"
)

func diagnostic(st *lintstate.State, ref lineref.LineRef, category string, confidence int, message string) diag.Diagnostic {
	return diag.Diagnostic{
		File:       st.Filename,
		Ref:        ref,
		Category:   category,
		Confidence: confidence,
		Message:    message,
	}
}

func itoa(n int) string { return strconv.Itoa(n) }

// newPlainOther builds a Plain identifier at name's first occurrence on
// line, the shape every AddOtherIdentifier call in the reference tool uses
// for libraries, architecture/entity/package names, and statement labels.
func newPlainOther(st *lintstate.State, name string, linenum int, line string) *symbols.Plain {
	return symbols.NewPlain(name, lineref.FromSubstring(linenum, line, name))
}

// capitalize upper-cases the first rune of s, used for the integer-range
// diagnostic's "Integer/Natural/Positive types must have a range..." text.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
