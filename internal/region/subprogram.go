package region

import (
	"regexp"

	"github.com/intrepidcs/vhdllint/internal/declparse"
	"github.com/intrepidcs/vhdllint/internal/exprmatch"
	"github.com/intrepidcs/vhdllint/internal/lineref"
	"github.com/intrepidcs/vhdllint/internal/lintstate"
	"github.com/intrepidcs/vhdllint/internal/rules"
	"github.com/intrepidcs/vhdllint/internal/symbols"
)

var (
	reFunctionHead = regexp.MustCompile(`\s*(\b(pure|impure)\s+)?\bfunction\s+(\w+)`)
	reFunctionArgs = regexp.MustCompile(`\s*\bfunction\s+\w+\s*\(`)
	reFunctionEnd  = regexp.MustCompile(`.*\bend\b\s*(function|\w+|function\s+\w+)?\s*;`)
	reReturnStmt   = regexp.MustCompile(`.*\breturn\b.*;`)

	reProcedureHead = regexp.MustCompile(`\s*\bprocedure\s+(\w+)`)
	reProcedureArgs = regexp.MustCompile(`\s*\bprocedure\s+\w+\s*\(`)
	reProcedureEnd  = regexp.MustCompile(`.*\bend\s+(procedure|\w+|procedure\s+\w+)\b`)
)

// DetectFunction finds a "function NAME ... end function;" body and runs
// its checks, grounded on CheckFunctions/CheckFunction, with inPkg false;
// architectures and processes use it. The inPkg=true variant used by
// package bodies is DetectFunctionInPkg.
func DetectFunction(st *lintstate.State, lineNum int) (bool, int) {
	return detectFunction(st, lineNum, false)
}

// DetectFunctionInPkg is DetectFunction with the reference tool's
// in_pkg=True behavior: the function name is marked referenced immediately,
// matching a package body's assumption that its functions are called from
// outside the file.
func DetectFunctionInPkg(st *lintstate.State, lineNum int) (bool, int) {
	return detectFunction(st, lineNum, true)
}

func detectFunction(st *lintstate.State, lineNum int, inPkg bool) (bool, int) {
	line := st.Line(lineNum)
	m := reFunctionHead.FindStringSubmatch(line)
	if m == nil {
		return false, 0
	}
	name := m[3]
	endLine := -1
	for l := lineNum; l < st.NumLines(); l++ {
		if reFunctionEnd.MatchString(st.Line(l)) {
			endLine = l
			break
		}
	}
	if endLine < 0 {
		return false, 0
	}
	checkFunction(st, lineNum, endLine, name, inPkg)
	return true, endLine
}

func checkFunction(st *lintstate.State, startLine, endLine int, name string, inPkg bool) {
	line := st.Line(startLine)
	st.Verbose("Detected function '%s' on lines %d-%d\n", name, startLine, endLine)
	ref := symbols.NewReferenced(name, lineref.FromSubstring(startLine, line, name))
	st.Symbols.AddReferenced(ref, true)
	st.Symbols.PushScope()

	if inPkg {
		if id, ok := st.Symbols.Get(name); ok {
			id.AddRef()
		}
	}

	el := startLine
	if loc := reFunctionArgs.FindStringIndex(line); loc != nil {
		openParen := loc[1] - 1
		argEnd, endCol, ok := exprmatch.Close(st, startLine, openParen)
		if ok {
			el = argEnd
			for l := startLine + 1; l <= el; l++ {
				rules.CheckIdentifiers(st, l)
			}
			walkDeclarations(st, startLine, el, openParen+1, endCol-1, declparse.KindNone, func(l int, d *declparse.Declaration) {
				pline := st.Line(l)
				for _, pname := range d.Names {
					pref := lineref.FromSubstring(l, pline, pname)
					st.Verbose("Detected local '%s' : %s := %s on line %d\n", pname, d.Type, d.Init, l)
					st.Symbols.AddLocal(symbols.NewVariable(pname, d.Type, d.Init, d.HasInit, pref))
				}
			})
		}
	}

	for l := el + 1; l < endLine; l++ {
		rules.CheckBooleans(st, l)
		rules.CheckIdentifiers(st, l)
		rules.CheckVariables(st, l, false)
		rules.CheckLocalConstants(st, l)
		rules.CheckAsserts(st, l)
	}

	popLocalScope(st)
}

// DetectFunctionDeclaration finds a standalone forward "function NAME(...)
// return TYPE;" declaration (no body), grounded on CheckFunctionDeclarations.
func DetectFunctionDeclaration(st *lintstate.State, lineNum int) (bool, int) {
	line := st.Line(lineNum)
	m := reFunctionHead.FindStringSubmatch(line)
	if m == nil {
		return false, 0
	}
	name := m[3]
	endLine := -1
	for l := lineNum; l < st.NumLines(); l++ {
		if reReturnStmt.MatchString(st.Line(l)) {
			endLine = l
			break
		}
	}
	if endLine < 0 {
		return false, 0
	}
	st.Verbose("Detected function declaration '%s' on lines %d-%d\n", name, lineNum, endLine)
	ref := lineref.FromSubstring(lineNum, line, name)
	st.Symbols.AddReferenced(symbols.NewReferenced(name, ref), true)
	if id, ok := st.Symbols.Get(name); ok {
		id.AddRef()
	}
	return true, endLine
}

// DetectProcedure is CheckProcedures/CheckProcedure's counterpart of
// DetectFunction.
func DetectProcedure(st *lintstate.State, lineNum int) (bool, int) {
	return detectProcedure(st, lineNum, false)
}

// DetectProcedureInPkg mirrors DetectFunctionInPkg for procedures.
func DetectProcedureInPkg(st *lintstate.State, lineNum int) (bool, int) {
	return detectProcedure(st, lineNum, true)
}

func detectProcedure(st *lintstate.State, lineNum int, inPkg bool) (bool, int) {
	line := st.Line(lineNum)
	m := reProcedureHead.FindStringSubmatch(line)
	if m == nil {
		return false, 0
	}
	name := m[1]
	endLine := -1
	closeRe := regexp.MustCompile(`.*\bend\s+(procedure|` + regexp.QuoteMeta(name) + `|procedure\s+` + regexp.QuoteMeta(name) + `)\b`)
	for l := lineNum; l < st.NumLines(); l++ {
		if closeRe.MatchString(st.Line(l)) {
			endLine = l
			break
		}
	}
	if endLine < 0 {
		return false, 0
	}
	checkProcedure(st, lineNum, endLine, name, inPkg)
	return true, endLine
}

func checkProcedure(st *lintstate.State, startLine, endLine int, name string, inPkg bool) {
	line := st.Line(startLine)
	st.Verbose("Detected procedure '%s' on lines %d-%d\n", name, startLine, endLine)
	st.Symbols.AddReferenced(symbols.NewReferenced(name, lineref.FromSubstring(startLine, line, name)), true)
	st.Symbols.PushScope()

	if inPkg {
		if id, ok := st.Symbols.Get(name); ok {
			id.AddRef()
		}
	}

	el := startLine
	if loc := reProcedureArgs.FindStringIndex(line); loc != nil {
		openParen := loc[1] - 1
		argEnd, endCol, ok := exprmatch.Close(st, startLine, openParen)
		if ok {
			el = argEnd
			for l := startLine + 1; l <= el; l++ {
				rules.CheckIdentifiers(st, l)
			}
			walkDeclarations(st, startLine, el, openParen+1, endCol-1, declparse.KindNone, func(l int, d *declparse.Declaration) {
				pline := st.Line(l)
				for _, pname := range d.Names {
					pref := lineref.FromSubstring(l, pline, pname)
					st.Verbose("Detected local '%s' : %s := %s on line %d\n", pname, d.Type, d.Init, l)
					st.Symbols.AddLocal(symbols.NewVariable(pname, d.Type, d.Init, d.HasInit, pref))
				}
			})
		}
	}

	for l := el + 1; l < endLine; l++ {
		rules.CheckBooleans(st, l)
		rules.CheckIdentifiers(st, l)
		rules.CheckVariables(st, l, false)
		rules.CheckLocalConstants(st, l)
		rules.CheckAsserts(st, l)
	}

	popLocalScope(st)
}

// popLocalScope closes the innermost scope and routes every local that was
// never referenced through the diagnostic sink as build/unused, the shape
// every scope-popping detector shares (functions, procedures, processes).
func popLocalScope(st *lintstate.State) {
	for _, u := range st.Symbols.PopScope() {
		emit(st, u.At.DeclaredAt(), "build/unused", 3, "Unused identifier '"+u.Name+"'.")
	}
}
