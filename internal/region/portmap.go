package region

import (
	"regexp"
	"strings"

	"github.com/intrepidcs/vhdllint/internal/exprmatch"
	"github.com/intrepidcs/vhdllint/internal/lineref"
	"github.com/intrepidcs/vhdllint/internal/lintstate"
	"github.com/intrepidcs/vhdllint/internal/rules"
	"github.com/intrepidcs/vhdllint/internal/symbols"
)

var (
	rePortMapHead = regexp.MustCompile(`\s*((.*?)\s*:)?\s*\bport map`)
	rePortMapOpen = regexp.MustCompile(`\bport\s+map\s*\(`)
	reHasFatArrow = regexp.MustCompile(`.*=>.*`)
)

// DetectPortMap finds a "[label:] ... port map ( ... );" instantiation and
// checks its association list, grounded on CheckPortMaps/CheckPortMap. The
// end of the region is the close of the "port map(" parenthesis itself,
// resolved via exprmatch instead of the reference tool's separate "find
// closing semicolon" scan, since the parenthesis close is unambiguous and
// always comes first.
func DetectPortMap(st *lintstate.State, lineNum int) (bool, int) {
	line := st.Line(lineNum)
	m := rePortMapHead.FindStringSubmatch(line)
	if m == nil {
		return false, 0
	}
	name := m[2]

	endLine := lineNum
	for l := lineNum; l < st.NumLines(); l++ {
		if loc := rePortMapOpen.FindStringIndex(st.Line(l)); loc != nil {
			if closeLine, _, ok := exprmatch.Close(st, l, loc[1]-1); ok {
				endLine = closeLine
			}
			break
		}
	}
	checkPortMap(st, lineNum, endLine, name)
	return true, endLine
}

func checkPortMap(st *lintstate.State, startLine, endLine int, name string) {
	line := st.Line(startLine)
	st.Verbose("Detected port map '%s' on lines %d-%d\n", name, startLine, endLine)
	if name != "" {
		st.Symbols.AddOther(symbols.NewPlain(name, lineref.FromSubstring(startLine, line, name)))
	}

	for l := startLine; l <= endLine; l++ {
		pline := st.Line(l)
		loc := rePortMapOpen.FindStringIndex(pline)
		if loc == nil {
			continue
		}
		openParen := loc[1] - 1
		body, _, _, ok := exprmatch.Extract(st, l, openParen)
		if !ok {
			return
		}
		for _, mapping := range splitPortMapList(removeWhitespace(body)) {
			rhs := mapping
			hasArrow := reHasFatArrow.MatchString(mapping)
			if !hasArrow {
				emit(st, onlyLine(l), "readability/portmaps", 4, "Positional port mapping not allowed. Use named mapping.")
			} else if idx := strings.Index(mapping, "=>"); idx >= 0 {
				rhs = mapping[idx+2:]
			}

			rules.CheckIdentifiersString(st, rhs, l)
			if typed, ok := st.Symbols.GetTyped(rhs); ok {
				typed.AddDriver(symbols.NewPossibleDriver(0, l))
			}
		}
		return
	}
}

func removeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// splitPortMapList splits a port-map association list on commas that are not
// nested inside a parenthesized actual (e.g. a slice or concatenation). It
// walks the string tracking parenthesis depth and splits only at depth 0, so
// no split ever needs re-merging.
func splitPortMapList(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}
