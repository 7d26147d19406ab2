package rules

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"

	"github.com/intrepidcs/vhdllint/internal/lineref"
	"github.com/intrepidcs/vhdllint/internal/lintstate"
)

var (
	reOthersZeros = regexp.MustCompile(`.*(<=|:=|=>)\s*([xX]?"0+")`)
	reOthersOnesX = regexp.MustCompile(`.*(<=|:=|=>)\s*([xX]"[fF]+")`)
	reOthersOnesB = regexp.MustCompile(`.*(<=|:=|=>)\s*[^xX]("1+")`)
	reTimeUnit    = regexp.MustCompile(`\b(\d+)(ps|ns|us|ms|sec|min|hr)\b`)
	reWordOrStr   = regexp.MustCompile(`"[^"]*"|'[^']*'|(\w+)`)
	reLatch       = regexp.MustCompile(`.*?\b\w+\b\s*<=\s*.*?\bwhen\b`)
)

// CheckForOthers flags hand-written all-zero/all-one bit patterns that
// should use the "(others => '0')"/"(others => '1')" idiom instead.
func CheckForOthers(st *lintstate.State, line string, linenum int) {
	if m := reOthersZeros.FindStringSubmatchIndex(line); m != nil {
		val := line[m[4]:m[5]]
		st.Sink.Emit(diagnostic(st, lineref.New(linenum, m[4], m[5]), "readability/others", 1,
			"Use '(others=>'0')' instead of '"+val+"'"))
		return
	}
	if m := reOthersOnesX.FindStringSubmatchIndex(line); m != nil {
		val := line[m[4]:m[5]]
		st.Sink.Emit(diagnostic(st, lineref.New(linenum, m[4], m[5]), "readability/others", 1,
			"Use '(others=>'1')' instead of '"+val+"'"))
		return
	}
	if m := reOthersOnesB.FindStringSubmatchIndex(line); m != nil {
		val := line[m[4]:m[5]]
		st.Sink.Emit(diagnostic(st, lineref.New(linenum, m[4], m[5]), "readability/others", 1,
			"Use '(others=>'1')' instead of '"+val+"'"))
	}
}

// CheckTimeUnits flags a time literal with no space before its unit suffix.
func CheckTimeUnits(st *lintstate.State, line string, linenum int) {
	for _, m := range reTimeUnit.FindAllStringSubmatchIndex(line, -1) {
		orig := line[m[0]:m[1]]
		val := line[m[2]:m[3]]
		unit := line[m[4]:m[5]]
		st.Sink.Emit(diagnostic(st, lineref.FromSubstring(linenum, line, orig), "readability/units", 2,
			"Missing space before time units. Use '"+val+" "+unit+"' instead of '"+orig+"'"))
	}
}

// CheckReservedWords flags a reserved word spelled with anything but all
// lower case, and a bare word that looks like a one-letter-off typo of a
// reserved word ("architectue", "proces") rather than a declared
// identifier.
func CheckReservedWords(st *lintstate.State, line string, linenum int) {
	for _, m := range reWordOrStr.FindAllStringSubmatchIndex(line, -1) {
		if m[2] < 0 {
			continue
		}
		w := line[m[2]:m[3]]
		lw := strings.ToLower(w)
		if Reserved[lw] {
			if !isAllLower(w) {
				st.Sink.Emit(diagnostic(st, lineref.FromSubstring(linenum, line, w), "readability/reserved", 2,
					"Invalid capitalization on '"+w+"'. Reserved words should use all lower case."))
			}
			continue
		}
		if suggestion, ok := nearReservedWord(st, lw); ok {
			st.Sink.Emit(diagnostic(st, lineref.FromSubstring(linenum, line, w), "readability/reserved", 1,
				"Unrecognized word '"+w+"'. Did you mean reserved word '"+suggestion+"'?"))
		}
	}
}

// nearReservedWord reports the reserved word within edit distance 1 of lw,
// if any, excluding words already declared as identifiers in this file
// (those are legitimate names, not keyword typos).
func nearReservedWord(st *lintstate.State, lw string) (string, bool) {
	if len(lw) < 4 {
		return "", false
	}
	if _, ok := st.Symbols.Get(lw); ok {
		return "", false
	}
	for word := range Reserved {
		if len(word) < 4 {
			continue
		}
		if abs(len(word)-len(lw)) > 1 {
			continue
		}
		if levenshtein.ComputeDistance(lw, word) == 1 {
			return word, true
		}
	}
	return "", false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func isAllLower(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// CheckLatches flags "x <= y when z;" with no accompanying "else", the
// shape that synthesizes into an inferred latch.
func CheckLatches(st *lintstate.State, line string, linenum int) {
	if !reLatch.MatchString(line) {
		return
	}
	rest := line[strings.Index(line, "when"):]
	// Manual negative-lookahead reimplementation: RE2 has no (?!...), so scan
	// rest for a top-level "else" before the terminating ";" by hand instead
	// of translating the original's "((?!\belse\b).)*;" pattern.
	if containsWordBeforeSemicolon(rest, "else") {
		return
	}
	st.Sink.Emit(diagnostic(st, lineref.New(linenum, 0, 0), "runtime/latches", 5,
		"Inferred latch detected. Output must be defined for all branch paths."))
}

func containsWordBeforeSemicolon(s, word string) bool {
	semi := strings.IndexByte(s, ';')
	if semi < 0 {
		semi = len(s)
	}
	return wordIndex(s[:semi], word) >= 0
}

func wordIndex(s, word string) int {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(word) + `\b`)
	loc := re.FindStringIndex(s)
	if loc == nil {
		return -1
	}
	return loc[0]
}
