package region

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/intrepidcs/vhdllint/internal/exprmatch"
	"github.com/intrepidcs/vhdllint/internal/lineref"
	"github.com/intrepidcs/vhdllint/internal/lintstate"
	"github.com/intrepidcs/vhdllint/internal/rules"
	"github.com/intrepidcs/vhdllint/internal/symbols"
)

var (
	reProcessHead    = regexp.MustCompile(`\s*((.*?)\s*:)?\s*\bprocess\b\s*(\((.*)\))?`)
	reProcessSens    = regexp.MustCompile(`\bprocess\s*\(`)
	reEventAttr      = regexp.MustCompile(`.*?(` + patternIdentifierUseForProcess + `)'event`)
	reRisingEdge     = regexp.MustCompile(`.*\brising_edge\s*\((` + patternIdentifierUseForProcess + `)\)`)
	reFallingEdge    = regexp.MustCompile(`.*\bfalling_edge\s*\((` + patternIdentifierUseForProcess + `)\)`)
	reEventAttrBare  = regexp.MustCompile(`.*?(\w+)'event`)
	reWord2          = regexp.MustCompile(`[\w']+`)
	reClkPrefix      = regexp.MustCompile(`(?i)^(\w+\.)?clk.*`)
	reClkSuffix      = regexp.MustCompile(`(?i).*clk$`)
	reClkISuffix     = regexp.MustCompile(`(?i).*clk_i$`)
)

// patternIdentifierUseForProcess mirrors patternIdentifierUse from
// internal/rules (unexported there); process detection needs the same
// dotted-identifier shape to find a clock signal's name.
const patternIdentifierUseForProcess = `\w[\w.]*`

// DetectProcess finds a "[label:] process [(sensitivity)] ... end process
// [label];" block and runs its checks, grounded on
// CheckProcesses/CheckProcess.
func DetectProcess(st *lintstate.State, lineNum int) (bool, int) {
	line := st.Line(lineNum)
	m := reProcessHead.FindStringSubmatch(line)
	if m == nil {
		return false, 0
	}
	label := m[2]
	closeRe := regexp.MustCompile(`.*\bend\s+(process|` + regexp.QuoteMeta(label) + `|process\s+` + regexp.QuoteMeta(label) + `)\b`)
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

	var sensitivity []string
	if loc := reProcessSens.FindStringIndex(line); loc != nil {
		pos := loc[1] - 1
		if body, _, _, ok := exprmatch.Extract(st, lineNum, pos); ok {
			for _, w := range reWord2.FindAllString(strings.ToLower(body), -1) {
				if allowedInSensitivity(st, w) {
					sensitivity = append(sensitivity, w)
				}
			}
		}
	}

	checkProcess(st, lineNum, endLine, label, sensitivity)
	return true, endLine
}

func allowedInSensitivity(st *lintstate.State, w string) bool {
	if strings.EqualFold(w, "all") {
		return true
	}
	return st.Symbols.IsSignal(w)
}

func checkProcess(st *lintstate.State, startLine, endLine int, label string, sensitivity []string) {
	sline := st.Line(startLine)
	st.Verbose("Detected process '%s' on lines %d-%d (%v)\n", label, startLine, endLine, sensitivity)
	if label != "" {
		st.Symbols.AddOther(symbols.NewPlain(label, lineref.FromSubstring(startLine, sline, label)))
	}

	processDrivers := map[string]bool{}
	processInputs := map[string]bool{}
	containsAll := false

	st.Symbols.PushScope()

	for _, s := range sensitivity {
		if s == "all" {
			containsAll = true
			emit(st, lineref.FromSubstring(startLine, sline, "all"), "build/vhdl2008/sensitivity", 4,
				"Avoid VHDL2008 construct 'all' in sensitivity list.")
		}
	}
	for _, d := range duplicates(sensitivity) {
		emit(st, lineref.FromSubstring(startLine, sline, d), "runtime/sensitivity", 4,
			"Duplicate signal '"+d+"' in sensitivity list.")
	}

	simProcess := len(sensitivity) == 0

	sequential := false
	clkName := ""
	clkLine := startLine
	for l := startLine; l < endLine; l++ {
		pline := st.Line(l)
		clkLine = l
		if m := reEventAttr.FindStringSubmatch(pline); m != nil {
			sequential = true
			clkName = m[1]
			break
		}
		if m := reRisingEdge.FindStringSubmatch(pline); m != nil {
			sequential = true
			clkName = m[1]
			break
		}
		if m := reFallingEdge.FindStringSubmatch(pline); m != nil {
			sequential = true
			clkName = m[1]
			break
		}
	}

	if !simProcess && sequential {
		if !containsInsensitivity(sensitivity, clkName) && !containsAll {
			emit(st, lineref.FromSubstring(clkLine, st.Line(clkLine), clkName), "runtime/sensitivity", 5,
				"Missing clock '"+clkName+"' from sensitivity list")
		}
		if !reClkPrefix.MatchString(clkName) && !reClkSuffix.MatchString(clkName) && !reClkISuffix.MatchString(clkName) {
			emit(st, lineref.FromSubstring(clkLine, st.Line(clkLine), clkName), "readability/naming", 1,
				"Invalid naming convention on clock signal '"+clkName+"'. Allowed conventions are [clk_*, *_clk, *_clk_i].")
		}
		if len(sensitivity) > 2 {
			emit(st, onlyLine(startLine), "runtime/sensitivity", 4,
				"Superfluous items in sensitivity list. Sequential processes should have at most 2 items (clock, async reset).")
		}
	}

	l := startLine
	for l <= endLine {
		pline := st.Line(l)

		rules.CheckIdentifiers(st, l)

		if ok, fEnd := DetectFunction(st, l); ok {
			l = fEnd + 1
			continue
		}
		if ok, fEnd := DetectProcedure(st, l); ok {
			l = fEnd + 1
			continue
		}

		names, _ := rules.CheckVariables(st, l, !simProcess)
		if len(names) > 0 && !simProcess {
			emit(st, lineref.FromSubstring(l, pline, names[0]), "runtime/variables", 4,
				"Variables are easily misused and should be avoided.")
		}

		rules.CheckLocalConstants(st, l)

		if reBeginOnly.MatchString(pline) {
			l++
			break
		}
		l++
	}

	bodyLine := l
	for l := bodyLine; l < endLine; l++ {
		pline := st.Line(l)

		detectCaseStatement(st, l, endLine, sequential)
		detectLoop(st, l, endLine)

		if !simProcess {
			if m := reEventAttrBare.FindStringSubmatch(pline); m != nil {
				name := m[1]
				ref := lineref.FromSubstring(l, pline, name+"'event")
				emit(st, ref, "runtime/rising_edge", 4,
					"Use 'rising_edge/falling_edge("+name+")' instead of '"+name+"'event'")
			}
		}

		writeVars, readVars, _ := rules.FindUsedVariables(st, pline, false)
		for w := range writeVars {
			processDrivers[strings.ToLower(w)] = true
			if typed, ok := st.Symbols.GetTyped(w); ok {
				typed.AddDriver(symbols.NewProcessDriver(startLine, l))
			}
		}
		for r := range readVars {
			processInputs[strings.ToLower(r)] = true
		}

		rules.CheckIdentifiers(st, l)
		rules.CheckAsserts(st, l)

		for w := range writeVars {
			if typed, ok := st.Symbols.GetTyped(w); ok && typed.HasMultipleDrivers() {
				lines := driverLines(typed.Drivers())
				emit(st, lineref.FromSubstring(l, pline, w), "runtime/multiple_drivers", 5,
					"Multiple drivers on signal '"+w+"'. Previous drivers are on line(s): "+lines+".")
			}
		}

		if !simProcess && !sequential {
			for r := range readVars {
				if !containsInsensitivity(sensitivity, strings.ToLower(r)) && !containsAll {
					emit(st, lineref.FromSubstring(l, pline, r), "runtime/sensitivity", 5,
						"Missing signal '"+r+"' from sensitivity list")
				}
			}
		}
	}

	for _, item := range sensitivity {
		if !processInputs[item] && item != "all" {
			emit(st, lineref.FromSubstring(startLine, sline, item), "runtime/sensitivity", 4,
				"Extra signal '"+item+"' in sensitivity list.")
		}
	}

	if !simProcess && !sequential {
		for i := range processDrivers {
			if processInputs[i] {
				emit(st, onlyLine(startLine), "runtime/combinational_loop", 5,
					"Possible combinational loop detected on signal '"+i+"'.")
			}
		}
	}

	for w := range processDrivers {
		st.Drivers[w] = true
	}

	popLocalScope(st)
}

func duplicates(items []string) []string {
	seen := map[string]int{}
	var order []string
	for _, i := range items {
		if seen[i] == 0 {
			order = append(order, i)
		}
		seen[i]++
	}
	var out []string
	for _, i := range order {
		if seen[i] > 1 {
			out = append(out, i)
		}
	}
	return out
}

func containsInsensitivity(list []string, item string) bool {
	item = strings.ToLower(item)
	for _, i := range list {
		if i == item {
			return true
		}
	}
	return false
}

func driverLines(drivers []symbols.Driver) string {
	var parts []string
	for i, d := range drivers {
		if i == len(drivers)-1 {
			break
		}
		parts = append(parts, strconv.Itoa(d.Line()))
	}
	return strings.Join(parts, ",")
}
