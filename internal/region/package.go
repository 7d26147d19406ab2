package region

import (
	"regexp"

	"github.com/intrepidcs/vhdllint/internal/exprmatch"
	"github.com/intrepidcs/vhdllint/internal/lineref"
	"github.com/intrepidcs/vhdllint/internal/lintstate"
	"github.com/intrepidcs/vhdllint/internal/rules"
	"github.com/intrepidcs/vhdllint/internal/symbols"
)

var (
	rePackageOpen = regexp.MustCompile(`\s*\bpackage\s+(\w+?)\s+is`)
	rePkgBodyOpen = regexp.MustCompile(`\s*\bpackage\s+body\s+(\w+?)\s+is`)
)

// DetectPackage finds a "package NAME is ... end package;" declarative
// region (no body), grounded on CheckPackages/CheckPackage.
func DetectPackage(st *lintstate.State, lineNum int) (bool, int) {
	line := st.Line(lineNum)
	m := rePackageOpen.FindStringSubmatch(line)
	if m == nil {
		return false, 0
	}
	name := m[1]
	closeRe := regexp.MustCompile(`.*\bend\s+(package|` + regexp.QuoteMeta(name) + `|package\s+` + regexp.QuoteMeta(name) + `)\b`)
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
	checkPackage(st, lineNum, endLine, name)
	return true, endLine
}

func checkPackage(st *lintstate.State, startLine, endLine int, name string) {
	line := st.Line(startLine)
	st.Verbose("Detected package '%s' on lines %d-%d\n", name, startLine, endLine)
	st.Symbols.AddOther(symbols.NewPlain(name, lineref.FromSubstring(startLine, line, name)))

	if !rules.IsPrevLineBlankOrComment(st, startLine) {
		blankLineBefore(st, startLine, "package declaration")
	}
	if !rules.IsNextLineBlankOrComment(st, startLine) {
		blankLineAfter(st, startLine, "package declaration")
	}

	l := startLine
	for l <= endLine {
		if ok, fEnd := DetectFunctionDeclaration(st, l); ok {
			l = fEnd + 1
			continue
		}
		if ok, fEnd := DetectProcedureDeclaration(st, l); ok {
			l = fEnd + 1
			continue
		}
		if ok, fEnd := DetectRecord(st, l); ok {
			l = fEnd + 1
			continue
		}

		rules.CheckIdentifiers(st, l)
		rules.CheckConstants(st, l, true)
		rules.CheckTypes(st, l, true)

		l++
	}

	if !rules.IsPrevLineBlankOrComment(st, endLine) {
		blankLineBefore(st, endLine, "package end")
	}
	if !rules.IsNextLineBlankOrComment(st, endLine) {
		blankLineAfter(st, endLine, "package end")
	}
}

// DetectPackageBody finds a "package body NAME is ... end;" region,
// grounded on CheckPackageBodies/CheckPackageBody.
func DetectPackageBody(st *lintstate.State, lineNum int) (bool, int) {
	line := st.Line(lineNum)
	m := rePkgBodyOpen.FindStringSubmatch(line)
	if m == nil {
		return false, 0
	}
	name := m[1]
	closeRe := regexp.MustCompile(`.*\bend\s+(package\s+body|` + regexp.QuoteMeta(name) + `|package\s+body\s+` + regexp.QuoteMeta(name) + `)\b`)
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
	checkPackageBody(st, lineNum, endLine, name)
	return true, endLine
}

func checkPackageBody(st *lintstate.State, startLine, endLine int, name string) {
	line := st.Line(startLine)
	st.Verbose("Detected package body '%s' on lines %d-%d\n", name, startLine, endLine)
	st.Symbols.AddOther(symbols.NewPlain(name, lineref.FromSubstring(startLine, line, name)))

	if !rules.IsPrevLineBlankOrComment(st, startLine) {
		blankLineBefore(st, startLine, "package body declaration")
	}
	if !rules.IsNextLineBlankOrComment(st, startLine) {
		blankLineAfter(st, startLine, "package body declaration")
	}

	l := startLine
	for l <= endLine {
		if ok, fEnd := DetectFunctionInPkg(st, l); ok {
			l = fEnd + 1
			continue
		}
		if ok, fEnd := DetectProcedureInPkg(st, l); ok {
			l = fEnd + 1
			continue
		}

		rules.CheckConstants(st, l, true)
		rules.CheckIdentifiers(st, l)

		l++
	}

	if !rules.IsPrevLineBlankOrComment(st, endLine) {
		blankLineBefore(st, endLine, "package body end")
	}
}

// DetectProcedureDeclaration mirrors DetectFunctionDeclaration for a
// forward-declared procedure signature with no body: its extent is the
// parenthesized parameter list, closed via bracket matching rather than a
// trailing semicolon, grounded on CheckProcedureDeclarations.
func DetectProcedureDeclaration(st *lintstate.State, lineNum int) (bool, int) {
	line := st.Line(lineNum)
	loc := reProcedureArgs.FindStringIndex(line)
	if loc == nil {
		return false, 0
	}
	m := reProcedureHead.FindStringSubmatch(line)
	if m == nil {
		return false, 0
	}
	name := m[1]
	openParen := loc[1] - 1
	endLine, _, ok := exprmatch.Close(st, lineNum, openParen)
	if !ok {
		return false, 0
	}
	st.Verbose("Detected procedure declaration '%s' on lines %d-%d\n", name, lineNum, endLine)
	ref := lineref.FromSubstring(lineNum, line, name)
	st.Symbols.AddReferenced(symbols.NewReferenced(name, ref), true)
	if id, ok := st.Symbols.Get(name); ok {
		id.AddRef()
	}
	return true, endLine
}
