// Package region detects VHDL structural blocks — entities, architectures,
// packages, processes, subprograms, components, records, loops, case
// statements and port maps — by scanning for a line that opens the block and
// a later line that closes it, the same line-range-then-recurse approach the
// reference tool's CheckXxx/CheckXxxs function pairs use. There is no AST:
// each detector is a pair of regexes (open, close) plus a body walk that
// dispatches to the next-smaller detector or to internal/rules for the lines
// in between.
package region

import "github.com/intrepidcs/vhdllint/internal/lintstate"

// Detector scans starting at lineNum for one instance of the block it
// knows how to find. Detected reports whether a match started at lineNum;
// endLine is the line the block closes on (only meaningful if Detected).
type Detector func(st *lintstate.State, lineNum int) (detected bool, endLine int)

// DetectFirst tries each detector in order and returns the first match,
// mirroring the architecture/package body loops that try functions, then
// procedures, then components, then records before falling through to plain
// line checks.
func DetectFirst(st *lintstate.State, lineNum int, detectors ...Detector) (bool, int) {
	for _, d := range detectors {
		if ok, end := d(st, lineNum); ok {
			return ok, end
		}
	}
	return false, 0
}
