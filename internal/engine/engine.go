// Package engine ties the lower-level packages together into the one
// operation a caller actually wants: lint one file's lines and route every
// finding through a diag.Sink. It is the Go counterpart of
// ProcessFileData/ProcessLine, minus the file-system and CLI concerns
// (config discovery, CRLF detection, extension filtering), which belong to
// the command layer instead.
package engine

import (
	"strings"

	"github.com/intrepidcs/vhdllint/internal/cleanse"
	"github.com/intrepidcs/vhdllint/internal/diag"
	"github.com/intrepidcs/vhdllint/internal/lineref"
	"github.com/intrepidcs/vhdllint/internal/lintstate"
	"github.com/intrepidcs/vhdllint/internal/region"
	"github.com/intrepidcs/vhdllint/internal/rules"
)

// ProcessFileData lints one file's raw lines (as produced by splitting the
// file's contents on "\n", trailing empty element included when the file
// ends in a newline) and emits every finding through sink. lineLength <= 0
// disables the line-length check. root, if non-empty, is stripped from
// filename before the entity/filename-match rule compares it against an
// entity name (the --root flag's effect, resolved by the caller from either
// the flag or a VHDLLINT.cfg "root=" directive).
func ProcessFileData(filename string, rawLines []string, sink *diag.Sink, verbose func(string, ...any), lineLength int, root string) {
	sink.ResetFile()

	buf := cleanse.New(rawLines)
	st := lintstate.New(filename, buf, sink, verbose)
	st.LineLength = lineLength
	st.Root = root

	checkForHeader(st, rawLines)
	checkForCopyright(st, rawLines)

	for l := 1; l <= buf.NumLines(); l++ {
		sink.ParseNolint(filename, st.RawLine(l), l)
	}

	for l := 1; l <= buf.NumLines(); l++ {
		processLine(st, l)
	}

	for _, u := range st.Symbols.UnusedGlobals() {
		sink.Emit(diag.Diagnostic{
			File:       filename,
			Ref:        u.At.DeclaredAt(),
			Category:   "build/unused",
			Confidence: 2,
			Message:    "Unused identifier '" + u.Name + "'.",
		})
	}

	// Bad-character and trailing-newline checks run on raw lines, after the
	// per-line pass, so they see the untouched source rather than any
	// cleansed view.
	checkForBadCharacters(st, rawLines)
	checkForNewlineAtEOF(st, rawLines)
}

// processLine runs every per-line check and block detector at line l, the
// Go counterpart of ProcessLine. None of the block detectors skip the outer
// loop forward on a match: they consume their own line range internally
// (recursing into nested detectors and rules.Check* calls), but the line
// that opens a block is still subject to every other top-level check too,
// matching the reference tool's flat per-line dispatch.
func processLine(st *lintstate.State, l int) {
	rules.CheckStyle(st, l)
	rules.CheckUsedPackages(st, l)
	region.DetectEntity(st, l)
	region.DetectArchitecture(st, l)
	region.DetectPackage(st, l)
	region.DetectPackageBody(st, l)
	rules.CheckLineLength(st, l, st.LineLength)

	line := st.Line(l)
	rules.CheckForOthers(st, line, l)
	rules.CheckTimeUnits(st, line, l)
	rules.CheckReservedWords(st, line, l)
	rules.CheckLatches(st, line, l)
	rules.CheckBooleans(st, l)
	rules.CheckComment(st, st.RawLine(l), l)
}

func emit(st *lintstate.State, ref lineref.LineRef, category string, confidence int, message string) {
	st.Sink.Emit(diag.Diagnostic{File: st.Filename, Ref: ref, Category: category, Confidence: confidence, Message: message})
}

// checkForHeader flags a missing "--" header comment on the file's first
// real line, grounded on CheckForHeader. It reads rawLines directly rather
// than st.RawLine: cleanse.New blanks multi-line "/* ... */" spans to
// "/**/" in place before building st's buffer (RemoveMultiLineComments runs
// before any other cleansing pass, vhdllint.py:3330-3337), so a header
// comment written as a block comment would already be gone by the time
// st.RawLine could see it.
func checkForHeader(st *lintstate.State, rawLines []string) {
	if len(rawLines) == 0 || !strings.HasPrefix(rawLines[0], "--") {
		emit(st, lineref.Point(0, 0), "readability/header", 5, "No file header found.")
	}
}

// checkForCopyright flags a missing "Copyright" mention anywhere in the
// first 30 real lines, grounded on CheckForCopyright. Like checkForHeader,
// it reads rawLines directly so a "Copyright" notice inside a multi-line
// "/* ... */" block is still seen, matching the pre-mutation ordering of
// CheckForHeader/CheckForCopyright against RemoveMultiLineComments in the
// reference tool.
func checkForCopyright(st *lintstate.State, rawLines []string) {
	limit := len(rawLines)
	if limit > 30 {
		limit = 30
	}
	for i := 0; i < limit; i++ {
		if strings.Contains(rawLines[i], "Copyright") {
			return
		}
	}
	emit(st, lineref.Point(0, 0), "legal/copyright", 5,
		`No copyright message found.  You should have a line: "Copyright [year] <Copyright Owner>"`)
}

// checkForBadCharacters flags the Unicode replacement character and NUL
// bytes on every raw line, grounded on CheckForBadCharacters.
func checkForBadCharacters(st *lintstate.State, rawLines []string) {
	for i, line := range rawLines {
		linenum := i + 1
		if strings.Contains(line, "�") {
			emit(st, lineref.Point(linenum, 0), "readability/utf8", 5,
				"Line contains invalid UTF-8 (or Unicode replacement character).")
		}
		if strings.Contains(line, "\x00") {
			emit(st, lineref.FromSubstring(linenum, line, "\x00"), "readability/nul", 5, "Line contains NUL byte.")
		}
	}
}

// checkForNewlineAtEOF flags a missing trailing newline: splitting a
// properly terminated file's contents on "\n" always leaves a trailing
// empty element, grounded on CheckForNewlineAtEOF.
func checkForNewlineAtEOF(st *lintstate.State, rawLines []string) {
	if len(rawLines) == 0 || rawLines[len(rawLines)-1] != "" {
		last := len(rawLines)
		lastLen := 0
		if last > 0 {
			lastLen = len(rawLines[last-1])
		}
		emit(st, lineref.Point(last, lastLen), "whitespace/ending_newline", 5,
			"Could not find a newline character at the end of the file.")
	}
}
