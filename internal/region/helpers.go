package region

import (
	"github.com/intrepidcs/vhdllint/internal/diag"
	"github.com/intrepidcs/vhdllint/internal/lineref"
	"github.com/intrepidcs/vhdllint/internal/lintstate"
)

// emit routes a region-detector diagnostic through the sink the same way
// internal/rules' unexported diagnostic helper does; region can't import
// that helper (it's unexported), so it gets its own copy of the same shape.
func emit(st *lintstate.State, ref lineref.LineRef, category string, confidence int, message string) {
	st.Sink.Emit(diag.Diagnostic{
		File:       st.Filename,
		Ref:        ref,
		Category:   category,
		Confidence: confidence,
		Message:    message,
	})
}

// onlyLine builds a whole-line LineRef, the region detectors' equivalent of
// the reference tool's LineRef.OnlyLine.
func onlyLine(linenum int) lineref.LineRef { return lineref.New(linenum, 0, 0) }

// blankLineBefore/blankLineAfter centralize the "blank line should come
// before/after X" diagnostic every block detector emits around its open and
// close lines.
func blankLineBefore(st *lintstate.State, linenum int, what string) {
	emit(st, onlyLine(linenum), "whitespace/blank_line", 4, "Blank line should come before "+what+".")
}

func blankLineAfter(st *lintstate.State, linenum int, what string) {
	emit(st, onlyLine(linenum), "whitespace/blank_line", 4, "Blank line should come after "+what+".")
}
