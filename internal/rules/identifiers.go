package rules

import (
	"regexp"
	"strings"

	"github.com/intrepidcs/vhdllint/internal/lineref"
	"github.com/intrepidcs/vhdllint/internal/lintstate"
	"github.com/intrepidcs/vhdllint/internal/symbols"
)

// patternIdentifierUse matches a dotted identifier optionally followed by a
// call or index parenthesis group, e.g. "foo.bar(3)".
const patternIdentifierUse = `(\w[\w.]*)(\s*\(.*?\))?`

var (
	reWord       = regexp.MustCompile(`[\w']+`)
	reQuoted     = regexp.MustCompile(`"[^"]*"|'[^']*'|(\w+)`)
	reAssignStmt = regexp.MustCompile(`.*?` + patternIdentifierUse + `\s*[<:]=(.*);`)
)

// CheckIdentifiersString scans line for bare identifier references, marks
// each known identifier as used, and flags inconsistent capitalization
// against its declaration.
func CheckIdentifiersString(st *lintstate.State, line string, linenum int) {
	for _, m := range reQuoted.FindAllStringSubmatchIndex(line, -1) {
		if m[2] < 0 {
			continue
		}
		w := line[m[2]:m[3]]
		id, ok := st.Symbols.Get(w)
		if !ok {
			continue
		}
		id.AddRef()
		if w != id.Name() {
			st.Sink.Emit(diagnostic(st, lineref.FromSubstring(linenum, line, w), "readability/capitalization", 1,
				"Inconsistent capitalization on identifier '"+w+"'. Declared as '"+id.Name()+"' on line "+itoa(id.DeclaredAt().Line)))
		}
	}
}

// CheckIdentifiers is the combined per-line identifier pass: it marks
// references as used and, if the line is an assignment, checks the
// right-hand side against the output-port-read rule.
func CheckIdentifiers(st *lintstate.State, linenum int) {
	line := st.Line(linenum)
	CheckIdentifiersString(st, line, linenum)

	_, readVars, isAssign := FindUsedVariables(st, line, false)
	if isAssign {
		CheckReadIdentifiers(st, linenum, readVars)
	}
}

// CheckReadIdentifiers flags reading an "out" port, a VHDL-2008 idiom the
// linter's target dialect disallows.
func CheckReadIdentifiers(st *lintstate.State, linenum int, readVars map[string]bool) {
	line := st.Line(linenum)
	for r := range readVars {
		typed, ok := st.Symbols.GetTyped(r)
		if !ok {
			continue
		}
		if port, ok := typed.(*symbols.Port); ok && strings.EqualFold(port.Mode, "out") {
			st.Sink.Emit(diagnostic(st, lineref.FromSubstring(linenum, line, r), "build/vhdl2008/outputs", 4,
				"Avoid VHDL2008 reading of output port on '"+r+"'."))
		}
	}
}

// FindUsedVariables splits line into the signals written (if it is an
// assignment) and the signals read. directLHSName, when true, keeps the
// full left-hand-side expression as the sole "written" entry instead of
// tokenizing it (used when the caller wants the raw target, e.g. a case
// state-assignment check).
func FindUsedVariables(st *lintstate.State, line string, directLHSName bool) (write, read map[string]bool, isAssign bool) {
	write = map[string]bool{}
	read = map[string]bool{}

	m := reAssignStmt.FindStringSubmatchIndex(line)
	if m == nil {
		for _, w := range reWord.FindAllString(line, -1) {
			if st.Symbols.IsSignal(w) {
				read[w] = true
			}
		}
		return write, read, false
	}

	isAssign = true
	lhs := line[m[2]:m[3]]
	var writeWords []string
	if directLHSName {
		writeWords = []string{lhs}
	} else {
		writeWords = reWord.FindAllString(lhs, -1)
	}
	for _, w := range writeWords {
		if st.Symbols.IsSignal(w) {
			write[w] = true
		}
	}

	rhs := line[m[4]:m[5]]
	for _, w := range reWord.FindAllString(rhs, -1) {
		if st.Symbols.IsSignal(w) {
			read[w] = true
		}
	}
	return write, read, true
}
