package engine

import (
	"strings"
	"testing"

	"github.com/intrepidcs/vhdllint/internal/diag"
)

type recordingFormatter struct {
	diags []diag.Diagnostic
}

func (f *recordingFormatter) Format(d diag.Diagnostic) { f.diags = append(f.diags, d) }
func (f *recordingFormatter) Flush()                   {}

func (f *recordingFormatter) hasCategory(cat string) bool {
	for _, d := range f.diags {
		if d.Category == cat {
			return true
		}
	}
	return false
}

func newTestSink(formatter *recordingFormatter) *diag.Sink {
	return diag.New(0, diag.CountingTotal, formatter, []string{
		"readability/header", "legal/copyright", "readability/utf8", "readability/nul",
		"whitespace/ending_newline", "build/filename", "readability/naming",
		"readability/constants", "build/port_modes", "build/port_types",
		"whitespace/blank_line", "build/unused",
	})
}

func TestProcessFileDataFlagsMissingHeaderAndCopyright(t *testing.T) {
	formatter := &recordingFormatter{}
	sink := newTestSink(formatter)

	lines := strings.Split("entity foo is\nend entity;\n", "\n")
	ProcessFileData("foo.vhd", lines, sink, nil, 80, "")

	if !formatter.hasCategory("readability/header") {
		t.Error("expected a missing-header diagnostic")
	}
	if !formatter.hasCategory("legal/copyright") {
		t.Error("expected a missing-copyright diagnostic")
	}
}

func TestProcessFileDataAcceptsHeaderedCopyrightedFile(t *testing.T) {
	formatter := &recordingFormatter{}
	sink := newTestSink(formatter)

	content := "-- Copyright 2026 Example Corp\n\nentity foo is\nend entity;\n"
	lines := strings.Split(content, "\n")
	ProcessFileData("foo.vhd", lines, sink, nil, 80, "")

	if formatter.hasCategory("readability/header") {
		t.Error("did not expect a missing-header diagnostic")
	}
	if formatter.hasCategory("legal/copyright") {
		t.Error("did not expect a missing-copyright diagnostic")
	}
}

// TestProcessFileDataAcceptsCopyrightInsideBlockComment guards against a
// regression where checkForHeader/checkForCopyright read the cleansed
// buffer instead of the pristine source: cleanse.New blanks multi-line
// "/* ... */" spans to "/**/" before any other view is built, so a header
// written as a block comment must still be visible to these two checks.
func TestProcessFileDataAcceptsCopyrightInsideBlockComment(t *testing.T) {
	formatter := &recordingFormatter{}
	sink := newTestSink(formatter)

	content := "-- header\n" +
		"/* Copyright 2026 Example Corp\n" +
		" * All rights reserved.\n" +
		" */\n" +
		"entity foo is\n" +
		"end entity;\n"
	lines := strings.Split(content, "\n")
	ProcessFileData("foo.vhd", lines, sink, nil, 80, "")

	if formatter.hasCategory("legal/copyright") {
		t.Error("did not expect a missing-copyright diagnostic for a copyright notice inside a block comment")
	}
}

func TestProcessFileDataFlagsMissingTrailingNewline(t *testing.T) {
	formatter := &recordingFormatter{}
	sink := newTestSink(formatter)

	lines := []string{"-- Copyright 2026 Example Corp", "", "entity foo is", "end entity;"}
	ProcessFileData("foo.vhd", lines, sink, nil, 80, "")

	if !formatter.hasCategory("whitespace/ending_newline") {
		t.Error("expected a missing-trailing-newline diagnostic")
	}
}

func TestProcessFileDataFlagsBadCharacters(t *testing.T) {
	formatter := &recordingFormatter{}
	sink := newTestSink(formatter)

	content := "-- Copyright 2026 Example Corp\n\nentity foo is\nend entity;\n-- bad\x00byte\n"
	lines := strings.Split(content, "\n")
	ProcessFileData("foo.vhd", lines, sink, nil, 80, "")

	if !formatter.hasCategory("readability/nul") {
		t.Error("expected a NUL-byte diagnostic")
	}
}

func TestProcessFileDataFlagsFilenameEntityMismatch(t *testing.T) {
	formatter := &recordingFormatter{}
	sink := newTestSink(formatter)

	content := "-- Copyright 2026 Example Corp\n\nentity counter is\nend entity;\n"
	lines := strings.Split(content, "\n")
	ProcessFileData("src/lib/mismatch.vhd", lines, sink, nil, 80, "")

	if !formatter.hasCategory("build/filename") {
		t.Error("expected a filename/entity-name mismatch diagnostic")
	}
}

func TestProcessFileDataRootStrippingSatisfiesFilenameMatch(t *testing.T) {
	formatter := &recordingFormatter{}
	sink := newTestSink(formatter)

	content := "-- Copyright 2026 Example Corp\n\nentity counter is\nend entity;\n"
	lines := strings.Split(content, "\n")
	ProcessFileData("src/counter.vhd", lines, sink, nil, 80, "src")

	if formatter.hasCategory("build/filename") {
		t.Error("did not expect a filename mismatch once root is stripped")
	}
}

func TestProcessFileDataResetsPerFileSuppressionState(t *testing.T) {
	formatter := &recordingFormatter{}
	sink := newTestSink(formatter)

	lines := strings.Split("entity foo is\nend entity;\n", "\n")
	ProcessFileData("foo.vhd", lines, sink, nil, 80, "")
	first := len(formatter.diags)

	ProcessFileData("foo.vhd", lines, sink, nil, 80, "")
	if len(formatter.diags) != first*2 {
		t.Fatalf("expected the same diagnostics again on a second run, got %d then %d", first, len(formatter.diags)-first)
	}

	if sink.ActiveRegionSuppressions() != 0 {
		t.Error("expected no open NOLINTBEGIN regions after a file completes")
	}
}
