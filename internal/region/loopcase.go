package region

import (
	"regexp"
	"strings"

	"github.com/intrepidcs/vhdllint/internal/lineref"
	"github.com/intrepidcs/vhdllint/internal/lintstate"
	"github.com/intrepidcs/vhdllint/internal/symbols"
)

var (
	reLoopHead   = regexp.MustCompile(`\s*((.*?)\s*:)?.*\bloop\b\s*$`)
	reWhileLoop  = regexp.MustCompile(`.*?\bwhile.*?\bloop\b`)
	reForLoop    = regexp.MustCompile(`.*?\bfor.*?\bloop\b`)
	reWaitStmt   = regexp.MustCompile(`.*?\bwait\b`)
	reExitStmt   = regexp.MustCompile(`.*?\bexit\b`)
	reCaseHead   = regexp.MustCompile(`\s*((.*?)\s*:)?.*\bcase\s+(.+?)\s+is`)
	reWhenState  = regexp.MustCompile(`.*?\bwhen\s+(.*?)\s*=>`)
	reStateAssgn = regexp.MustCompile(`.*?((.*?)\s*[<:]=(.*?))\s*;`)
)

// detectLoop finds a "[label:] ... loop ... end loop [label];" block inside
// a process body and checks it, grounded on CheckLoop's detection inline in
// CheckProcess.
func detectLoop(st *lintstate.State, lineNum, searchEnd int) (bool, int) {
	line := st.Line(lineNum)
	m := reLoopHead.FindStringSubmatch(line)
	if m == nil {
		return false, 0
	}
	label := m[2]
	closeRe := regexp.MustCompile(`.*\bend\s+loop(\s+` + regexp.QuoteMeta(label) + `)?\b`)
	endLine := -1
	for l := lineNum; l < searchEnd; l++ {
		if closeRe.MatchString(st.Line(l)) {
			endLine = l
			break
		}
	}
	if endLine < 0 {
		return false, 0
	}
	checkLoop(st, lineNum, endLine, label)
	return true, endLine
}

func checkLoop(st *lintstate.State, startLine, endLine int, label string) {
	line := st.Line(startLine)
	st.Verbose("Detected loop '%s' on lines %d-%d\n", label, startLine, endLine)
	if label != "" {
		st.Symbols.AddOther(symbols.NewPlain(label, lineref.FromSubstring(startLine, line, label)))
	}

	switch {
	case reWhileLoop.MatchString(line), reForLoop.MatchString(line):
		// bounded loop kind, no wait/exit requirement
	default:
		waitFound, exitFound := false, false
		for l := startLine; l < endLine; l++ {
			pl := st.Line(l)
			if reWaitStmt.MatchString(pl) {
				waitFound = true
				break
			}
			if reExitStmt.MatchString(pl) {
				exitFound = true
				break
			}
		}
		if !waitFound && !exitFound {
			emit(st, onlyLine(startLine), "runtime/loops", 4, "Infinite loop. Loop must contain wait or exit statement.")
		}
	}
}

// detectCaseStatement finds a "[label:] case NAME is ... end case [label];"
// block inside a process body, grounded on CheckCaseStatement's detection
// inline in CheckProcess.
func detectCaseStatement(st *lintstate.State, lineNum, searchEnd int, isSequential bool) (bool, int) {
	line := st.Line(lineNum)
	m := reCaseHead.FindStringSubmatch(line)
	if m == nil {
		return false, 0
	}
	label, name := m[2], m[3]
	closeRe := regexp.MustCompile(`.*\bend\s+case(\s+` + regexp.QuoteMeta(label) + `)?\b`)
	endLine := -1
	for l := lineNum; l < searchEnd; l++ {
		if closeRe.MatchString(st.Line(l)) {
			endLine = l
			break
		}
	}
	if endLine < 0 {
		return false, 0
	}
	checkCaseStatement(st, lineNum, endLine, label, name, isSequential)
	return true, endLine
}

func checkCaseStatement(st *lintstate.State, startLine, endLine int, label, name string, isSequential bool) {
	line := st.Line(startLine)
	st.Verbose("Detected case statement '%s' on lines %d-%d\n", name, startLine, endLine)
	if label != "" {
		st.Symbols.AddOther(symbols.NewPlain(label, lineref.FromSubstring(startLine, line, label)))
	}

	currentState := ""
	for l := startLine; l < endLine; l++ {
		pline := st.Line(l)

		if m := reWhenState.FindStringSubmatch(pline); m != nil {
			currentState = m[1]
		}

		if isSequential {
			if m := reStateAssgn.FindStringSubmatch(pline); m != nil {
				stmt := strings.TrimSpace(m[1])
				lhs := strings.TrimSpace(m[2])
				rhs := strings.TrimSpace(m[3])
				if strings.EqualFold(lhs, name) && strings.EqualFold(rhs, currentState) {
					emit(st, lineref.FromSubstring(l, pline, stmt), "readability/fsm", 4,
						"Redundant assignment of state '"+name+"' to '"+currentState+"'")
				}
			}
		}
	}
}
