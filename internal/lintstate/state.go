// Package lintstate carries the per-file state threaded through the region
// detectors and line rules: the cleansed source, the symbol table, the
// diagnostic sink, and the set of signals already driven somewhere in the
// file. It exists so that internal/region and internal/rules, which call
// into each other (a process body detects case statements, a case statement
// checks conditions, a condition check looks up identifiers), can share one
// struct without importing each other.
package lintstate

import (
	"github.com/intrepidcs/vhdllint/internal/cleanse"
	"github.com/intrepidcs/vhdllint/internal/diag"
	"github.com/intrepidcs/vhdllint/internal/symbols"
)

// State is the state of a single file being linted, rebuilt fresh for each
// file (mirroring ResetFileData/ResetNolintSuppressions in the reference
// tool, but carried explicitly instead of through module globals).
type State struct {
	Filename  string
	Buf       *cleanse.Buffer
	Symbols   *symbols.Table
	Sink      *diag.Sink
	Verbose   func(format string, args ...any)

	LineLength int

	// Root, when set, is stripped from the front of Filename before the
	// entity/filename-match rule compares it against an entity name,
	// matching the --root flag's effect on that rule (SPEC_FULL.md §6.2).
	Root string

	// Drivers records, lowercased, every signal name written by some
	// process seen so far in the file; CheckProcess adds to it but does
	// not read it. Multiple-driver detection uses each identifier's own
	// driver list instead.
	Drivers map[string]bool
}

// New builds a fresh per-file State.
func New(filename string, buf *cleanse.Buffer, sink *diag.Sink, verbose func(string, ...any)) *State {
	if verbose == nil {
		verbose = func(string, ...any) {}
	}
	return &State{
		Filename: filename,
		Buf:      buf,
		Symbols:  symbols.New(),
		Sink:     sink,
		Verbose:  verbose,
		Drivers:  map[string]bool{},
	}
}

// Line returns the cleansed text of line l ("--" comments stripped, string
// literals intact), the view most rules match against.
func (s *State) Line(l int) string {
	if l < 0 || l >= len(s.Buf.Lines) {
		return ""
	}
	return s.Buf.Lines[l]
}

// RawLine returns the raw, uncleansed text of line l.
func (s *State) RawLine(l int) string {
	if l < 0 || l >= len(s.Buf.Raw) {
		return ""
	}
	return s.Buf.Raw[l]
}

// NumLines reports the number of real lines in the file, not counting the
// sentinel at index 0.
func (s *State) NumLines() int { return s.Buf.NumLines() }

// exprmatch.Source adapter methods, so region/rules code can pass *State
// directly wherever an exprmatch.Source or declparse source is expected.

// Elided returns the elided view of line l, used for bracket/expression
// matching so string contents never confuse the bracket-depth scanner.
func (s *State) Elided(l int) string {
	if l < 0 || l >= len(s.Buf.Elided) {
		return ""
	}
	return s.Buf.Elided[l]
}

// Lines returns the cleansed view of line l; declparse.Match parses against
// this view.
func (s *State) Lines(l int) string { return s.Line(l) }
