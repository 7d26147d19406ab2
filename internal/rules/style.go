// Package rules holds the per-line checks: the ones that look at one line
// (or a line and its immediate neighbor) in isolation, as opposed to the
// structural block detectors in internal/region.
package rules

import (
	"regexp"
	"strings"

	"github.com/intrepidcs/vhdllint/internal/lineref"
	"github.com/intrepidcs/vhdllint/internal/lintstate"
)

var (
	reCallPrev   = regexp.MustCompile(`\w+\s*\(`)
	reAssignPrev = regexp.MustCompile(`<=`)
)

// CheckStyle flags tabs, odd indentation, trailing whitespace and runs of
// blank lines, the way the reference tool's whitespace/* family does.
func CheckStyle(st *lintstate.State, linenum int) {
	line := st.RawLine(linenum)
	var prev string
	if linenum > 0 {
		prev = st.RawLine(linenum - 1)
	}

	if idx := strings.IndexByte(line, '\t'); idx >= 0 {
		st.Sink.Emit(diagnostic(st, lineref.New(linenum, idx, idx+1), "whitespace/tab", 1,
			"Tab found; better to use spaces"))
	}

	initialSpaces := 0
	for initialSpaces < len(line) && line[initialSpaces] == ' ' {
		initialSpaces++
	}

	prevIsCall := reCallPrev.MatchString(prev)
	prevIsAssign := reAssignPrev.MatchString(prev) && !strings.HasSuffix(strings.TrimRight(prev, " \t"), ";") &&
		!strings.HasSuffix(strings.ToLower(strings.TrimRight(prev, " \t")), "then")

	if initialSpaces%2 != 0 && !prevIsCall && !prevIsAssign {
		prevInitialSpaces := 0
		for prevInitialSpaces < len(prev) && prev[prevInitialSpaces] == ' ' {
			prevInitialSpaces++
		}
		if prevInitialSpaces != initialSpaces {
			st.Sink.Emit(diagnostic(st, lineref.New(linenum, 0, initialSpaces), "whitespace/indent", 3,
				"Weird number of spaces at line-start. Are you using a 2-space indent?"))
		}
	}

	if len(line) > 0 && isSpaceByte(line[len(line)-1]) {
		st.Sink.Emit(diagnostic(st, lineref.Point(linenum, len(line)-1), "whitespace/end_of_line", 4,
			"Line ends in whitespace. Consider deleting these extra spaces."))
	}

	const blankThresh = 3
	blankCount := 0
	limit := linenum + blankThresh
	if n := st.NumLines(); limit > n {
		limit = n
	}
	for l := linenum; l < limit; l++ {
		if IsBlankLine(st.RawLine(l)) {
			blankCount++
		}
		if blankCount >= blankThresh {
			st.Sink.Emit(diagnostic(st, lineref.New(linenum, 0, 0), "whitespace/blank_line", 4,
				"Redundant blank lines. Consider deleting some of these extra lines."))
			break
		}
	}
}

// CheckLineLength flags lines over the configured limit; limit <= 0 disables
// the check.
func CheckLineLength(st *lintstate.State, linenum, limit int) {
	if limit <= 0 {
		return
	}
	line := st.RawLine(linenum)
	if len(line) > limit {
		st.Sink.Emit(diagnostic(st, lineref.New(linenum, 0, 0), "whitespace/line_length", 2,
			formatLineLength(len(line), limit)))
	}
}

func formatLineLength(got, limit int) string {
	return "Line length is " + itoa(got) + " characters. Lines should be <= " + itoa(limit) + " characters long"
}

func isSpaceByte(b byte) bool { return b == ' ' || b == '\t' || b == '\r' || b == '\n' }

// IsCommentLine reports whether line is entirely a VHDL comment.
func IsCommentLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "--")
}

// IsBlankLine reports whether line has no non-whitespace content.
func IsBlankLine(line string) bool { return strings.TrimSpace(line) == "" }

// IsBlankOrCommentLine reports whether line is blank or a full-line comment.
func IsBlankOrCommentLine(line string) bool {
	return IsBlankLine(line) || IsCommentLine(line)
}

// IsPrevLineBlankOrComment reports whether the raw line before linenum
// is blank or a comment; used by the region detectors to require a
// separating blank line around entity/architecture/package blocks.
func IsPrevLineBlankOrComment(st *lintstate.State, linenum int) bool {
	if linenum <= 0 {
		return true
	}
	return IsBlankOrCommentLine(st.RawLine(linenum - 1))
}

// IsNextLineBlankOrComment is the forward-looking counterpart of
// IsPrevLineBlankOrComment.
func IsNextLineBlankOrComment(st *lintstate.State, linenum int) bool {
	if linenum+1 >= st.NumLines() {
		return true
	}
	return IsBlankOrCommentLine(st.RawLine(linenum + 1))
}
