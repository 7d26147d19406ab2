package region

import (
	"regexp"
	"strings"

	"github.com/intrepidcs/vhdllint/internal/declparse"
	"github.com/intrepidcs/vhdllint/internal/discover"
	"github.com/intrepidcs/vhdllint/internal/exprmatch"
	"github.com/intrepidcs/vhdllint/internal/lineref"
	"github.com/intrepidcs/vhdllint/internal/lintstate"
	"github.com/intrepidcs/vhdllint/internal/rules"
	"github.com/intrepidcs/vhdllint/internal/symbols"
)

var (
	reEntityOpen = regexp.MustCompile(`\s*\bentity\s+(.+?)\s+is`)
	reGeneric    = regexp.MustCompile(`\bgeneric\s*\(`)
	rePort       = regexp.MustCompile(`\bport\s*\(`)
	reStypeHead  = regexp.MustCompile(`^(\w+)\s*(\(.*?\))?`)
)

func reEntityClose(name string) *regexp.Regexp {
	return regexp.MustCompile(`.*\bend\s+(entity|` + regexp.QuoteMeta(name) + `|entity\s+` + regexp.QuoteMeta(name) + `)\b`)
}

// DetectEntity finds an "entity NAME is ... end entity;" block and runs its
// checks, grounded on CheckEntities/CheckEntity.
func DetectEntity(st *lintstate.State, lineNum int) (bool, int) {
	line := st.Line(lineNum)
	m := reEntityOpen.FindStringSubmatch(line)
	if m == nil {
		return false, 0
	}
	name := m[1]
	closeRe := reEntityClose(name)
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
	checkEntity(st, lineNum, endLine, name)
	return true, endLine
}

func checkEntity(st *lintstate.State, startLine, endLine int, name string) {
	line := st.Line(startLine)
	st.Verbose("Detected entity '%s' on lines %d-%d\n", name, startLine, endLine)
	st.Symbols.AddOther(symbols.NewPlain(name, lineref.FromSubstring(startLine, line, name)))

	if !rules.IsPrevLineBlankOrComment(st, startLine) {
		blankLineBefore(st, startLine, "entity declaration")
	}

	fname := discover.StripRoot(st.Filename, st.Root)
	if !strings.Contains(strings.ToLower(fname), strings.ToLower(name)) {
		emit(st, onlyLine(startLine), "build/filename", 1, "Filename should contain entity name '"+strings.ToLower(name)+"'")
	}

	for l := startLine; l < endLine; l++ {
		CheckGenerics(st, l)
		CheckPorts(st, l)
	}

	if !rules.IsNextLineBlankOrComment(st, endLine) {
		blankLineAfter(st, endLine, "entity end")
	}
}

// CheckGenerics matches a "generic ( ... );" clause and registers each named
// generic as an upper-case, G_-prefixed constant.
func CheckGenerics(st *lintstate.State, lineNum int) {
	line := st.Line(lineNum)
	loc := reGeneric.FindStringIndex(line)
	if loc == nil {
		return
	}
	openParen := loc[1] - 1
	endLine, endCol, ok := exprmatch.Close(st, lineNum, openParen)
	if !ok {
		return
	}

	walkDeclarations(st, lineNum, endLine, openParen+1, endCol-1, declparse.KindNone, func(l int, d *declparse.Declaration) {
		pline := st.Line(l)
		for _, name := range d.Names {
			ref := lineref.FromSubstring(l, pline, name)
			st.Verbose("Detected generic declaration '%s' : %s := %s\n", name, d.Type, d.Init)
			c := symbols.NewConstant(name, d.Type, d.Init, d.HasInit, ref)
			st.Symbols.AddConstant(c)
			c.AddDriver(symbols.NewLineDriver(0, l))

			if name != strings.ToUpper(name) {
				emit(st, ref, "readability/constants", 1, "Invalid capitalization on '"+name+"'. Generic names should use all upper case.")
			}
			if !strings.HasPrefix(strings.ToUpper(name), "G_") {
				emit(st, ref, "readability/naming", 1, "Invalid naming convention on '"+name+"'. Generic names should use prefix 'G_'.")
			}
		}
	})
}

// CheckPorts matches a "port ( ... );" clause and registers each named port,
// flagging an unrecognized mode or base type.
func CheckPorts(st *lintstate.State, lineNum int) {
	line := st.Line(lineNum)
	loc := rePort.FindStringIndex(line)
	if loc == nil {
		return
	}
	openParen := loc[1] - 1
	endLine, endCol, ok := exprmatch.Close(st, lineNum, openParen)
	if !ok {
		return
	}

	for l := lineNum; l <= endLine; l++ {
		rules.CheckIdentifiers(st, l)
	}

	walkDeclarations(st, lineNum, endLine, openParen+1, endCol-1, declparse.KindNone, func(l int, d *declparse.Declaration) {
		pline := st.Line(l)
		baseType := d.Type
		if m := reStypeHead.FindStringSubmatch(d.Type); m != nil {
			baseType = m[1]
		}
		for _, name := range d.Names {
			ref := lineref.FromSubstring(l, pline, name)
			st.Verbose("Detected port declaration '%s'/%s/%s/%s\n", name, d.Direction, d.Type, d.Init)
			p := symbols.NewPort(name, d.Type, d.Init, d.HasInit, d.Direction, ref)
			st.Symbols.AddPort(p)
			mode := strings.ToLower(d.Direction)
			if mode == "in" || mode == "inout" {
				p.AddDriver(symbols.NewLineDriver(0, l))
			}
			if mode != "in" && mode != "out" && mode != "inout" {
				emit(st, lineref.FromSubstring(l, pline, d.Direction), "build/port_modes", 1,
					"Invalid port mode '"+d.Direction+"'. Allowed modes are [in out inout]")
			}
			lbt := strings.ToLower(baseType)
			if lbt != "std_logic" && lbt != "std_logic_vector" {
				emit(st, lineref.FromSubstring(l, pline, baseType), "build/port_types", 1,
					"Invalid port type '"+baseType+"'. Allowed types are [std_logic std_logic_vector]")
			}
		}
	})
}
