package rules

import (
	"regexp"
	"strings"

	"github.com/intrepidcs/vhdllint/internal/lineref"
	"github.com/intrepidcs/vhdllint/internal/lintstate"
)

var (
	reBoolEquality = regexp.MustCompile(`.*?\s*((\w+)\s*(/?=)\s*(\w+))`)
	reIfThen       = regexp.MustCompile(`\b(if|elsif)\b(.*?)\bthen\b`)
	reWhenElse     = regexp.MustCompile(`.*?\b\w+\b\s*[<:]=\s*(.*?\bwhen\b.*?(\belse\b.*?)?)+;`)
	reWhenClause   = regexp.MustCompile(`\bwhen\b\s*(.*?)\s*(\belse\b|;)`)
	reArith        = regexp.MustCompile(`(` + patternIdentifierUse + `\s*([+\-*/])\s*` + patternIdentifierUse + `)`)
	reConjunctSplit = regexp.MustCompile(`(?i)\bnot\b|\band\b|\bor\b|\bnand\b|\bnor\b|\bxor\b`)
	reHasOperator   = regexp.MustCompile(`<=|>=|/=|[<>=+\-*/]`)
	reBareIdent     = regexp.MustCompile(`^\w[\w.]*(\s*\(.*\))?$`)
)

// CheckBooleans flags redundant "= true"/"= false" comparisons and recurses
// into if/elsif and when/else conditions to run CheckCondition on each.
func CheckBooleans(st *lintstate.State, linenum int) {
	line := st.Line(linenum)
	for _, m := range reBoolEquality.FindAllStringSubmatch(line, -1) {
		expr, w1, w2 := m[1], m[2], m[4]
		lw1, lw2 := strings.ToLower(w1), strings.ToLower(w2)
		if lw1 == "true" || lw1 == "false" || lw2 == "true" || lw2 == "false" {
			st.Sink.Emit(diagnostic(st, lineref.FromSubstring(linenum, line, expr), "readability/booleans", 1,
				"Redundant boolean equality check. Use 'VALUE' instead of 'VALUE = true', and 'not VALUE' instead of 'VALUE = false'"))
		}
	}

	if m := reIfThen.FindStringSubmatch(line); m != nil {
		CheckCondition(st, linenum, m[2])
	}

	if reWhenElse.MatchString(line) {
		for _, m := range reWhenClause.FindAllStringSubmatch(line, -1) {
			CheckCondition(st, linenum, m[1])
		}
	}
}

// CheckCondition flags arithmetic on signals/variables inside a conditional
// expression and VHDL-2008 "boolean style" bare-signal conditionals.
func CheckCondition(st *lintstate.State, linenum int, cond string) {
	line := st.Line(linenum)
	for _, m := range reArith.FindAllStringSubmatch(cond, -1) {
		expr, w1, w2 := m[1], m[2], m[5]
		if st.Symbols.IsSignalOrVariable(w1) || st.Symbols.IsSignalOrVariable(w2) {
			st.Sink.Emit(diagnostic(st, lineref.FromSubstring(linenum, line, expr), "build/arithmetic", 4,
				"Avoid arithmetic operations on signals in conditional checks."))
		}
	}

	// A bare conjunct with no relational/arithmetic operator of its own is a
	// VHDL-2008 "boolean style" conditional unless it actually resolves to a
	// boolean-typed identifier. Splitting on and/or/not, rather than
	// translating the original's quoted-string/operator-expression/
	// bare-identifier alternation verbatim, sidesteps an alternation whose
	// group numbering only makes sense against Python's re engine.
	for _, conjunct := range reConjunctSplit.Split(cond, -1) {
		w := strings.TrimSpace(conjunct)
		if w == "" || reHasOperator.MatchString(w) || !reBareIdent.MatchString(w) {
			continue
		}
		typed, ok := st.Symbols.GetTyped(w)
		if !ok {
			continue
		}
		if !isBooleanType(typed.Type()) {
			st.Sink.Emit(diagnostic(st, lineref.FromSubstring(linenum, line, w), "build/vhdl2008", 4,
				"Avoid VHDL2008 'boolean style' conditional on '"+w+"'."))
		}
	}

	_, readVars, _ := FindUsedVariables(st, line, false)
	CheckReadIdentifiers(st, linenum, readVars)
}

func isBooleanType(t string) bool {
	return strings.EqualFold(t, "boolean")
}

// CheckAsserts extracts a single-line "assert <cond> report ..." statement
// and runs CheckCondition on its condition.
func CheckAsserts(st *lintstate.State, linenum int) {
	line := st.Line(linenum)
	m := regexp.MustCompile(`\s*\bassert\b\s+(.*?)\s+(report|$)`).FindStringSubmatch(line)
	if m == nil {
		return
	}
	CheckCondition(st, linenum, m[1])
}
