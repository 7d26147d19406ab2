package rules

import (
	"regexp"
	"strings"

	"github.com/intrepidcs/vhdllint/internal/lineref"
	"github.com/intrepidcs/vhdllint/internal/lintstate"
)

var (
	reLibraryClause = regexp.MustCompile(`\s*\blibrary\b\s+(.*?);`)
	reUseClause     = regexp.MustCompile(`\s*\buse\b\s+(.*?);`)
)

// CheckUsedPackages registers every library named in a "library x, y;"
// clause as an other-identifier and flags "use"d packages the project has
// deprecated in favor of ieee.numeric_std.
func CheckUsedPackages(st *lintstate.State, linenum int) {
	line := st.Line(linenum)

	if m := reLibraryClause.FindStringSubmatch(line); m != nil {
		for _, lib := range splitCSV(m[1]) {
			if lib == "" {
				continue
			}
			st.Symbols.AddOther(newPlainOther(st, lib, linenum, line))
		}
		CheckIdentifiers(st, linenum)
	}

	if m := reUseClause.FindStringSubmatch(line); m != nil {
		for _, w := range splitDotted(m[1]) {
			if w == "" || Reserved[strings.ToLower(w)] {
				continue
			}
			st.Symbols.AddOther(newPlainOther(st, w, linenum, line))
			if DeprecatedPackageSet[strings.ToLower(w)] {
				st.Sink.Emit(diagnostic(st, lineref.FromSubstring(linenum, line, w), "build/deprecated", 5,
					"Non-standard package '"+w+"'. Use ieee.numeric_std instead."))
			}
		}
		CheckIdentifiers(st, linenum)
	}
}

func splitCSV(s string) []string {
	return strings.Split(strings.Join(strings.Fields(s), ""), ",")
}

func splitDotted(s string) []string {
	joined := strings.Join(strings.Fields(s), "")
	var out []string
	for _, part := range strings.Split(joined, ",") {
		out = append(out, strings.Split(part, ".")...)
	}
	return out
}
