package region

import (
	"regexp"
	"strings"

	"github.com/intrepidcs/vhdllint/internal/declparse"
	"github.com/intrepidcs/vhdllint/internal/lineref"
	"github.com/intrepidcs/vhdllint/internal/lintstate"
	"github.com/intrepidcs/vhdllint/internal/rules"
	"github.com/intrepidcs/vhdllint/internal/symbols"
)

var (
	reComponentHead = regexp.MustCompile(`\s*\bcomponent\s+(\w+)`)
	reRecordHead    = regexp.MustCompile(`.*\btype\s+(\w+)\s+is\s+record\b`)
)

// DetectComponent finds a "component NAME ... end component;" declaration
// and flags it, grounded on CheckComponents/CheckComponent: the linter
// prefers direct entity instantiation over the component/configuration
// style, except for a short allow-list of third-party IP blocks.
func DetectComponent(st *lintstate.State, lineNum int) (bool, int) {
	line := st.Line(lineNum)
	m := reComponentHead.FindStringSubmatch(line)
	if m == nil {
		return false, 0
	}
	name := m[1]
	closeRe := regexp.MustCompile(`.*\bend\s+(component|` + regexp.QuoteMeta(name) + `|component\s+` + regexp.QuoteMeta(name) + `)\b`)
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

	st.Verbose("Detected component '%s' on lines %d-%d\n", name, lineNum, endLine)
	ref := lineref.FromSubstring(lineNum, line, name)
	st.Symbols.AddReferenced(symbols.NewReferenced(name, ref), true)
	if !rules.IgnoredComponents[strings.ToLower(name)] {
		emit(st, ref, "readability/components", 1,
			"Detected component '"+name+"'. Direct instantiation is preferred over component where possible.")
	}
	return true, endLine
}

// DetectRecord finds a "type NAME is record ... end record;" declaration
// and walks its field declarations, grounded on CheckRecords/CheckRecord.
func DetectRecord(st *lintstate.State, lineNum int) (bool, int) {
	line := st.Line(lineNum)
	m := reRecordHead.FindStringSubmatch(line)
	if m == nil {
		return false, 0
	}
	name := m[1]
	closeRe := regexp.MustCompile(`.*\bend\b\s*(record|record\s+` + regexp.QuoteMeta(name) + `)?\s*;`)
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

	st.Verbose("Detected record '%s' on lines %d-%d\n", name, lineNum, endLine)
	st.Symbols.AddReferenced(symbols.NewReferenced(name, lineref.FromSubstring(lineNum, line, name)), true)

	for l := lineNum; l < endLine; l++ {
		rules.CheckIdentifiers(st, l)
		d, ok := declparse.Match(st, l, 0, declparse.KindNone, 0)
		if !ok {
			continue
		}
		for _, fname := range d.Names {
			st.Verbose("Detected record element declaration '%s' : %s\n", fname, d.Type)
		}
	}

	return true, endLine
}
