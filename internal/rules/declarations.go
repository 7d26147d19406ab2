package rules

import (
	"regexp"
	"strings"

	"github.com/intrepidcs/vhdllint/internal/declparse"
	"github.com/intrepidcs/vhdllint/internal/exprmatch"
	"github.com/intrepidcs/vhdllint/internal/lineref"
	"github.com/intrepidcs/vhdllint/internal/lintstate"
	"github.com/intrepidcs/vhdllint/internal/symbols"
)

// CheckConstants matches a "constant NAME : TYPE := INIT;" declaration and
// registers each named constant, flagging capitalization and the C_ naming
// convention. inPkg marks the declaration as implicitly referenced from
// outside the file (a package's public constants).
func CheckConstants(st *lintstate.State, linenum int, inPkg bool) {
	line := st.Line(linenum)
	d, ok := declparse.Match(st, linenum, 0, declparse.KindConstant, 0)
	if !ok {
		return
	}
	for _, name := range d.Names {
		ref := lineref.FromSubstring(linenum, line, name)
		c := symbols.NewConstant(name, d.Type, d.Init, d.HasInit, ref)
		st.Symbols.AddConstant(c)
		c.AddDriver(symbols.NewLineDriver(0, linenum))
		if inPkg {
			c.AddRef()
		}
		emitConstantNamingDiagnostics(st, ref, name, "Constant")
	}
}

// CheckSignals matches a "signal NAME : TYPE := INIT;" declaration.
func CheckSignals(st *lintstate.State, linenum int) {
	line := st.Line(linenum)
	d, ok := declparse.Match(st, linenum, 0, declparse.KindSignal, 0)
	if !ok {
		return
	}
	for _, name := range d.Names {
		ref := lineref.FromSubstring(linenum, line, name)
		s := symbols.NewSignal(name, d.Type, d.Init, d.HasInit, ref)
		st.Symbols.AddSignal(s)
		if d.NeedsIntegerRange() {
			st.Sink.Emit(diagnostic(st, lineref.FromSubstring(linenum, line, d.Type), "runtime/integers", 5,
				capitalize(d.Type)+" types must have a range specified."))
		}
	}
}

var (
	reTypeEnum    = regexp.MustCompile(`.*\btype\s+(\w+)\s+is\s*\(`)
	reSubtype     = regexp.MustCompile(`.*\bsubtype\s+(\w+)\s+is\s*`)
	reAlias       = regexp.MustCompile(`.*\balias\s+(\w+)\b`)
	reFSMSuffix   = regexp.MustCompile(`(?i).*_ST$`)
	reFSMPrefix   = regexp.MustCompile(`(?i)^ST_.*`)
)

// CheckTypes detects enum type, subtype, and alias declarations.
func CheckTypes(st *lintstate.State, linenum int, inPkg bool) {
	line := st.Line(linenum)

	if m := reTypeEnum.FindStringSubmatchIndex(line); m != nil {
		name := line[m[2]:m[3]]
		openParen := m[1] - 1
		enumBody, _, _, ok := exprmatch.Extract(st, linenum, openParen)
		ref := lineref.FromSubstring(linenum, line, name)
		st.Symbols.AddReferenced(symbols.NewReferenced(name, ref), true)
		if inPkg {
			if id, ok := st.Symbols.Get(name); ok {
				id.AddRef()
			}
		}
		if ok {
			isFSM := strings.Contains(strings.ToLower(name), "state") || strings.Contains(strings.ToLower(name), "fsm")
			for _, val := range splitCSV(enumBody) {
				if val == "" {
					continue
				}
				if !isAllUpper(val) {
					st.Sink.Emit(diagnostic(st, lineref.FromSubstring(linenum, line, val), "readability/constants", 1,
						"Invalid capitalization on '"+val+"'. Enum values should use all upper case."))
				}
				if isFSM && !reFSMSuffix.MatchString(strings.ToUpper(val)) && !reFSMPrefix.MatchString(strings.ToUpper(val)) {
					st.Sink.Emit(diagnostic(st, lineref.FromSubstring(linenum, line, val), "readability/naming", 1,
						"Invalid naming convention on enum FSM type '"+val+"'. Enum type names should use ST_ or _ST."))
				}
			}
		}
	}

	if m := reSubtype.FindStringSubmatch(line); m != nil {
		name := m[1]
		st.Symbols.AddReferenced(symbols.NewReferenced(name, lineref.FromSubstring(linenum, line, name)), false)
		if inPkg {
			if id, ok := st.Symbols.Get(name); ok {
				id.AddRef()
			}
		}
	}

	if m := reAlias.FindStringSubmatch(line); m != nil {
		name := m[1]
		st.Symbols.AddReferenced(symbols.NewReferenced(name, lineref.FromSubstring(linenum, line, name)), true)
		if inPkg {
			if id, ok := st.Symbols.Get(name); ok {
				id.AddRef()
			}
		}
	}
}

// CheckVariables matches a "variable NAME : TYPE := INIT;" declaration
// inside a local scope, flagging shadowing of a global of the same name.
// checkIntRange follows the reference tool's check_int_range=false callers
// for simulation processes, functions and procedures.
func CheckVariables(st *lintstate.State, linenum int, checkIntRange bool) (names []string, stype string) {
	line := st.Line(linenum)
	d, ok := declparse.Match(st, linenum, 0, declparse.KindVariable, 0)
	if !ok {
		return nil, ""
	}
	for _, name := range d.Names {
		reportShadow(st, linenum, line, name, "variable")
		ref := lineref.FromSubstring(linenum, line, name)
		v := symbols.NewVariable(name, d.Type, d.Init, d.HasInit, ref)
		st.Symbols.AddLocal(v)
		if checkIntRange && d.NeedsIntegerRange() {
			st.Sink.Emit(diagnostic(st, lineref.FromSubstring(linenum, line, d.Type), "runtime/integers", 5,
				capitalize(d.Type)+" types must have a range specified."))
		}
	}
	return d.Names, d.Type
}

// CheckLocalConstants matches a "constant NAME : TYPE := INIT;" declaration
// inside a local scope.
func CheckLocalConstants(st *lintstate.State, linenum int) (names []string, stype string) {
	line := st.Line(linenum)
	d, ok := declparse.Match(st, linenum, 0, declparse.KindConstant, 0)
	if !ok {
		return nil, ""
	}
	for _, name := range d.Names {
		reportShadow(st, linenum, line, name, "constant")
		ref := lineref.FromSubstring(linenum, line, name)
		emitConstantNamingDiagnostics(st, ref, name, "Constant")
		c := symbols.NewLocalConstant(name, d.Type, d.Init, d.HasInit, ref)
		st.Symbols.AddLocal(c)
	}
	return d.Names, d.Type
}

func reportShadow(st *lintstate.State, linenum int, line, name, kind string) {
	if !st.Symbols.IsReferenceable(name) {
		return
	}
	prev, ok := st.Symbols.Get(name)
	if !ok {
		return
	}
	if _, isLocal := prev.(*symbols.Variable); isLocal {
		return
	}
	if _, isLocal := prev.(*symbols.LocalConstant); isLocal {
		return
	}
	st.Sink.Emit(diagnostic(st, lineref.FromSubstring(linenum, line, name), "build/shadow", 4,
		"Local "+kind+" '"+name+"' shadows previously declared identifier. Previous declared on line "+itoa(prev.DeclaredAt().Line)+"."))
	st.Sink.Emit(diagnostic(st, prev.DeclaredAt(), "build/shadow", 4,
		"Identifier is shadowed by later declared local "+kind+" '"+name+"'."))
}

func emitConstantNamingDiagnostics(st *lintstate.State, ref lineref.LineRef, name, what string) {
	if !isAllUpper(name) {
		st.Sink.Emit(diagnostic(st, ref, "readability/constants", 1,
			"Invalid capitalization on '"+name+"'. "+what+" names should use all upper case."))
	}
	if !strings.HasPrefix(strings.ToUpper(name), "C_") {
		st.Sink.Emit(diagnostic(st, ref, "readability/naming", 1,
			"Invalid naming convention on '"+name+"'. "+what+" names should use prefix 'C_'."))
	}
}

func isAllUpper(s string) bool {
	return s == strings.ToUpper(s) && s != strings.ToLower(s)
}
