package region

import (
	"regexp"

	"github.com/intrepidcs/vhdllint/internal/lineref"
	"github.com/intrepidcs/vhdllint/internal/lintstate"
	"github.com/intrepidcs/vhdllint/internal/rules"
	"github.com/intrepidcs/vhdllint/internal/symbols"
)

var (
	reArchOpen  = regexp.MustCompile(`\s*\barchitecture\s+(.+?)\s+of\s+(.+?)\s+is`)
	reBeginOnly = regexp.MustCompile(`\s*\bbegin\b`)
)

func reArchClose(name string) *regexp.Regexp {
	return regexp.MustCompile(`.*\bend\s+(architecture|` + regexp.QuoteMeta(name) + `|architecture\s+` + regexp.QuoteMeta(name) + `)\b`)
}

// DetectArchitecture finds an "architecture NAME of ENTITY is ... end;"
// block, grounded on CheckArchitectures/CheckArchitecture.
func DetectArchitecture(st *lintstate.State, lineNum int) (bool, int) {
	line := st.Line(lineNum)
	m := reArchOpen.FindStringSubmatch(line)
	if m == nil {
		return false, 0
	}
	name := m[1]
	closeRe := reArchClose(name)
	endLine := -1
	for l := lineNum; l < st.NumLines(); l++ {
		if closeRe.MatchString(st.Line(l)) {
			endLine = l
			break
		}
	}
	if endLine < 0 {
		return false, 0
	}
	checkArchitecture(st, lineNum, endLine, name)
	return true, endLine
}

func checkArchitecture(st *lintstate.State, startLine, endLine int, name string) {
	line := st.Line(startLine)
	st.Verbose("Detected architecture '%s' on lines %d-%d\n", name, startLine, endLine)
	st.Symbols.AddOther(symbols.NewPlain(name, lineref.FromSubstring(startLine, line, name)))

	if !rules.IsPrevLineBlankOrComment(st, startLine) {
		blankLineBefore(st, startLine, "architecture declaration")
	}
	if !rules.IsNextLineBlankOrComment(st, startLine) {
		blankLineAfter(st, startLine, "architecture declaration")
	}

	l := startLine
	for l <= endLine {
		if ok, fEnd := DetectFunction(st, l); ok {
			l = fEnd + 1
			continue
		}
		if ok, fEnd := DetectProcedure(st, l); ok {
			l = fEnd + 1
			continue
		}
		if ok, fEnd := DetectComponent(st, l); ok {
			l = fEnd + 1
			continue
		}
		if ok, fEnd := DetectRecord(st, l); ok {
			l = fEnd + 1
			continue
		}

		if reBeginOnly.MatchString(st.Line(l)) {
			break
		}

		rules.CheckIdentifiers(st, l)
		rules.CheckConstants(st, l, false)
		rules.CheckSignals(st, l)
		rules.CheckTypes(st, l, false)
		rules.CheckAsserts(st, l)

		l++
	}

	if !rules.IsPrevLineBlankOrComment(st, l) {
		blankLineBefore(st, l, "architecture begin")
	}
	if !rules.IsNextLineBlankOrComment(st, l) {
		blankLineAfter(st, l, "architecture begin")
	}

	for l <= endLine {
		if ok, fEnd := DetectPortMap(st, l); ok {
			l = fEnd + 1
			continue
		}
		if ok, fEnd := DetectProcess(st, l); ok {
			l = fEnd + 1
			continue
		}

		rules.CheckIdentifiers(st, l)
		rules.CheckAsserts(st, l)

		l++
	}

	if !rules.IsPrevLineBlankOrComment(st, endLine) {
		blankLineBefore(st, endLine, "architecture end")
	}
}
