package rules

import (
	"regexp"
	"strings"

	"github.com/intrepidcs/vhdllint/internal/lineref"
	"github.com/intrepidcs/vhdllint/internal/lintstate"
)

var (
	reTODO          = regexp.MustCompile(`^--(\s*)TODO(\([^)]*\))?:?(\s|$)?`)
	reCommentNoSpace = regexp.MustCompile(`--[^ ]*\w`)
	reTripleDash    = regexp.MustCompile(`^(---)(\s+|$)`)
)

// CheckComment flags TODO-comment formatting and a missing space between
// "--" and the comment body.
func CheckComment(st *lintstate.State, line string, linenum int) {
	commentPos := strings.Index(line, "--")
	if commentPos == -1 {
		return
	}
	// Ignore a "--" inside a string literal: an odd number of unescaped
	// quotes before it means we're inside one.
	before := line[:commentPos]
	if strings.Count(stripEscapes(before), `"`)%2 != 0 {
		return
	}

	comment := line[commentPos:]
	if m := reTODO.FindStringSubmatchIndex(comment); m != nil {
		leading := ""
		if m[2] >= 0 {
			leading = comment[m[2]:m[3]]
		}
		wpos := commentPos + 2
		wepos := wpos + len(leading)
		if len(leading) > 1 {
			st.Sink.Emit(diagnostic(st, lineref.New(linenum, wpos, wepos), "whitespace/todo", 2,
				"Too many spaces before TODO"))
		}

		hasUsername := m[4] >= 0
		if !hasUsername {
			st.Sink.Emit(diagnostic(st, lineref.Point(linenum, wepos+4), "readability/todo", 2,
				"Missing username in TODO; it should look like \"-- TODO(my_username): Stuff.\""))
		}

		if m[6] >= 0 {
			middle := comment[m[6]:m[7]]
			if middle != " " && middle != "" {
				st.Sink.Emit(diagnostic(st, lineref.Point(linenum, commentPos+m[7]), "whitespace/todo", 2,
					"TODO(my_username) should be followed by a space"))
			}
		}
	}

	if reCommentNoSpace.MatchString(comment) && !reTripleDash.MatchString(comment) {
		st.Sink.Emit(diagnostic(st, lineref.Point(linenum, commentPos+2), "whitespace/comments", 4,
			"Should have a space between -- and comment"))
	}
}

func stripEscapes(s string) string {
	return regexp.MustCompile(`\\.`).ReplaceAllString(s, "")
}
