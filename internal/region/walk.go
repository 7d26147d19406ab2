package region

import (
	"github.com/intrepidcs/vhdllint/internal/declparse"
	"github.com/intrepidcs/vhdllint/internal/lintstate"
)

// walkDeclarations re-parses a bracketed declaration list (generics, ports,
// function/procedure parameters) line by line starting at (startLine,
// startCol) and ending at (endLine, endCol). A successful parse re-tries the
// same line from the position just past what it consumed, so "a, b : in
// std_logic; c : out std_logic" on one line yields two calls to handle; a
// failed parse moves to the next line and resets the column to 0, matching
// the reference tool's MatchDeclaration loop (whose pos argument is only
// ever nonzero on the line it was explicitly passed in on).
func walkDeclarations(st *lintstate.State, startLine, endLine, startCol, endCol int, kind declparse.Kind, handle func(l int, d *declparse.Declaration)) {
	l := startLine
	col := startCol
	for l <= endLine {
		ep := 0
		if l == endLine {
			ep = endCol
		}
		d, ok := declparse.Match(st, l, col, kind, ep)
		if !ok {
			l++
			col = 0
			continue
		}
		handle(l, d)
		col = d.EndPos
	}
}
