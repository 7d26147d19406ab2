// Package cleanse produces the three parallel line views every other
// component consults: raw source text, comments stripped, and string
// literals collapsed.
package cleanse

import (
	"regexp"
	"strings"
)

var (
	escapeSeq      = regexp.MustCompile(`\\([abfnrtv?"\\']|\d+|x[0-9a-fA-F]+)`)
	firstQuote     = regexp.MustCompile(`^([^'"]*)(['"])(.*)$`)
	singleLineCRe  = regexp.MustCompile(`\s*/\*.*?\*/\s*`)
)

// Buffer holds the three parallel views of a file's lines, 1-indexed via a
// prepended sentinel so callers can address lines by their natural line
// number. Raw, Lines and Elided always have equal length.
type Buffer struct {
	Raw    []string // verbatim source
	Lines  []string // "--" comments stripped
	Elided []string // strings/block comments collapsed; Lines with quotes blanked

	// UnterminatedComment is the 1-based line of a "/*" that never found a
	// matching "*/", or 0 if every block comment in the file closed.
	UnterminatedComment int
}

// New builds a Buffer from the raw lines of a file (no sentinel; New adds
// one empty line at index 0 so real line numbers start at 1). Multi-line
// "/* ... */" spans are blanked to "/**/" in-place before any other view is
// derived, matching the reference tool's RemoveMultiLineComments pass,
// which runs directly on the raw line list before per-line cleansing.
func New(rawLines []string) *Buffer {
	working := make([]string, 0, len(rawLines)+1)
	working = append(working, "")
	working = append(working, rawLines...)
	unterminated := removeMultiLineComments(working)

	b := &Buffer{
		Raw:                 working,
		Lines:               make([]string, 0, len(working)),
		Elided:              make([]string, 0, len(working)),
		UnterminatedComment: unterminated,
	}
	b.Lines = append(b.Lines, "")
	b.Elided = append(b.Elided, "")

	for i := 1; i < len(working); i++ {
		stripped := stripLineComment(working[i])
		b.Lines = append(b.Lines, stripped)
		collapsed := collapseStrings(stripped)
		b.Elided = append(b.Elided, singleLineCRe.ReplaceAllString(stripLineComment(collapsed), ""))
	}
	return b
}

// NumLines returns the count of real (non-sentinel) lines.
func (b *Buffer) NumLines() int {
	if len(b.Raw) == 0 {
		return 0
	}
	return len(b.Raw) - 1
}

// isOpenString reports whether the prefix of a line (up to a candidate "--")
// leaves an odd number of unescaped double quotes open, meaning the "--" is
// actually inside a string literal and not a comment marker.
func isOpenString(prefix string) bool {
	// "--" inside the prefix would itself have already been consumed by an
	// earlier comment marker search, so here we only count quotes.
	n := strings.Count(prefix, `"`) - strings.Count(prefix, `\"`) - strings.Count(prefix, `'"'`)
	return n&1 == 1
}

// stripLineComment removes a trailing "--" comment that is not inside an
// open string literal. "/* ... */" spans that close on the same line are
// removed only when New builds the Elided view.
func stripLineComment(line string) string {
	pos := strings.Index(line, "--")
	if pos != -1 && !isOpenString(line[:pos]) {
		line = strings.TrimRight(line[:pos], " \t")
	}
	return line
}

// collapseStrings replaces escape sequences and double-quoted string
// contents with an empty pair of quotes; single-quoted character literals
// are left untouched. This intentionally mirrors dead code in the reference
// implementation: its single-quote branch always breaks immediately after
// appending the quote verbatim, so VHDL character literals (e.g. '0', '1')
// remain visible to every downstream regex rather than being collapsed.
func collapseStrings(line string) string {
	line = escapeSeq.ReplaceAllString(line, "")

	var collapsed strings.Builder
	for {
		m := firstQuote.FindStringSubmatch(line)
		if m == nil {
			collapsed.WriteString(line)
			break
		}
		head, quote, tail := m[1], m[2], m[3]
		if quote == `"` {
			second := strings.Index(tail, `"`)
			if second >= 0 {
				collapsed.WriteString(head)
				collapsed.WriteString(`""`)
				line = tail[second+1:]
				continue
			}
			// Unmatched quote: probably a multiline string, stop processing.
			collapsed.WriteString(line)
			break
		}
		// Single quote: left uncollapsed, see doc comment above.
		collapsed.WriteString(line)
		break
	}
	return collapsed.String()
}

// removeMultiLineComments finds "/* ... */" spans (possibly spanning many
// lines) and blanks every line of the span to the literal "/**/", matching
// RemoveMultiLineComments in the reference tool line for line. Fully
// single-line "/* ... */" comments are left for the Elided view's regex
// cleanup in New; this pass only handles spans that do not close on the line they
// open on. Returns the 1-based line of an unterminated "/*", or 0.
func removeMultiLineComments(lines []string) int {
	i := 1
	n := len(lines)
	for i < n {
		start := findCommentStart(lines, i, n)
		if start >= n {
			return 0
		}
		end := findCommentEnd(lines, start, n)
		if end >= n {
			return start
		}
		for j := start; j <= end; j++ {
			lines[j] = "/**/"
		}
		i = end + 1
	}
	return 0
}

func findCommentStart(lines []string, from, n int) int {
	for from < n {
		t := strings.TrimSpace(lines[from])
		if strings.HasPrefix(t, "/*") {
			if !strings.Contains(t[2:], "*/") {
				return from
			}
		}
		from++
	}
	return n
}

func findCommentEnd(lines []string, from, n int) int {
	for from < n {
		if strings.HasSuffix(strings.TrimSpace(lines[from]), "*/") {
			return from
		}
		from++
	}
	return n
}
