// Package declparse parses a single VHDL declaration fragment — the shape
// shared by signal, port, constant, variable and local-constant
// declarations — and enforces the multi-name and integer-range rules that
// apply regardless of which kind of declaration it turns out to be.
package declparse

import (
	"regexp"
	"strings"

	"github.com/intrepidcs/vhdllint/internal/exprmatch"
)

// Kind is the optional leading keyword of a declaration.
type Kind string

const (
	KindNone     Kind = ""
	KindVariable Kind = "variable"
	KindSignal   Kind = "signal"
	KindConstant Kind = "constant"
)

// Declaration is the parsed result of a declaration fragment.
type Declaration struct {
	Kind      Kind
	Names     []string
	Direction string // "in", "out", "inout", or "" if absent
	Type      string
	Init      string
	HasInit   bool
	// EndPos is the column just past the parsed declaration within the
	// fragment that was passed to Match, so callers composing multiple
	// declarations on one pass can continue from there.
	EndPos int
}

var declRe = regexp.MustCompile(`^\s*(\b(variable|signal|constant)\b)?\s*(.+?)\s*:\s*(\b\w+\b)?\s*(\b\w[^;:]+)\s*(:=\s*([^;]+))?;?`)
var multilineInit = regexp.MustCompile(`:=\s*\(\s*`)

// Match parses a declaration starting at col in src's cleansed line
// lineNum. reqKind, if non-empty, restricts the match to that leading
// keyword; a declaration with a different (or absent, when reqKind is
// non-empty) keyword reports ok=false so callers composing specialized
// passes (one per kind) only react to their own kind. endPos, if non-zero,
// truncates the line before matching (used for parameter lists parsed out
// of a multi-line signature via exprmatch first). Whether the unranged
// integer/natural/positive diagnostic applies is left to the caller via
// Declaration.NeedsIntegerRange — function/procedure parameter lists pass
// through Match the same way a signal declaration does but ignore that
// check, matching the reference tool's check_int_range=false callers.
func Match(src exprmatch.Source, lineNum, col int, reqKind Kind, endPos int) (*Declaration, bool) {
	line := src.Lines(lineNum)
	if endPos > 0 && endPos <= len(line) {
		line = line[:endPos]
	}
	if col > len(line) {
		return nil, false
	}
	frag := line[col:]

	m := declRe.FindStringSubmatchIndex(frag)
	if m == nil {
		return nil, false
	}
	group := func(i int) (string, bool) {
		if m[2*i] < 0 {
			return "", false
		}
		return frag[m[2*i]:m[2*i+1]], true
	}

	declTypeRaw, hasDeclType := group(2)
	namesRaw, _ := group(3)
	direction, hasDirection := group(4)
	stype, hasType := group(5)
	init, hasInit := group(7)
	endOfMatch := m[1]

	declType := Kind("")
	if hasDeclType {
		declType = Kind(strings.ToLower(strings.TrimSpace(declTypeRaw)))
	}
	if reqKind != "" && declType != reqKind {
		return nil, false
	}

	if hasDirection {
		direction = strings.TrimSpace(direction)
	} else {
		direction = ""
	}
	if hasType {
		stype = strings.TrimSpace(stype)
	}
	if hasInit {
		init = strings.TrimSpace(init)
	}

	var names []string
	for _, n := range strings.Split(stripWhitespace(namesRaw), ",") {
		if n != "" {
			names = append(names, n)
		}
	}

	// Multi-line aggregate initializer: ":= (" possibly spanning lines.
	// The main pattern has already consumed ":= (", so search from the start
	// of the initializer group rather than from the end of the match.
	if initStart := m[12]; hasInit && initStart >= 0 {
		if loc := multilineInit.FindStringIndex(frag[initStart:]); loc != nil && loc[0] == 0 {
			openParenPos := col + initStart + strings.IndexByte(frag[initStart:], '(')
			extracted, _, _, ok := exprmatch.Extract(src, lineNum, openParenPos)
			if ok {
				init = "(" + stripWhitespace(extracted) + ")"
				hasInit = true
			}
		}
	}

	return &Declaration{
		Kind:      declType,
		Names:     names,
		Direction: direction,
		Type:      stype,
		Init:      init,
		HasInit:   hasInit,
		EndPos:    col + endOfMatch,
	}, true
}

// NeedsIntegerRange reports whether d's type is one of the unranged
// integer-family types that the §4.D post-check flags as an error when it
// is not a constant declaration.
func (d *Declaration) NeedsIntegerRange() bool {
	switch d.Type {
	case "integer", "natural", "positive":
		return d.Kind != KindConstant
	default:
		return false
	}
}

func stripWhitespace(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
