package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/intrepidcs/vhdllint/internal/diag"
	"github.com/intrepidcs/vhdllint/internal/lineref"
)

func sampleDiag() diag.Diagnostic {
	return diag.Diagnostic{
		File:       "foo.vhd",
		Ref:        lineref.New(12, 3, 7),
		Category:   "readability/naming",
		Confidence: 1,
		Message:    "Invalid naming convention on 'foo'.",
	}
}

func TestEmacsFormat(t *testing.T) {
	var buf bytes.Buffer
	Emacs{W: &buf}.Format(sampleDiag())
	got := buf.String()
	want := "foo.vhd:12:[4,8]: Invalid naming convention on 'foo'. [readability/naming] [1]\n"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestVS7Format(t *testing.T) {
	var buf bytes.Buffer
	VS7{W: &buf}.Format(sampleDiag())
	if got := buf.String(); !strings.HasPrefix(got, "foo.vhd(12): error vhdllint: [readability/naming]") {
		t.Fatalf("unexpected vs7 output: %q", got)
	}
}

func TestEclipseFormat(t *testing.T) {
	var buf bytes.Buffer
	Eclipse{W: &buf}.Format(sampleDiag())
	if got := buf.String(); !strings.HasPrefix(got, "foo.vhd:12: warning:") {
		t.Fatalf("unexpected eclipse output: %q", got)
	}
}

func TestSedFormatKnownFixup(t *testing.T) {
	var fixed, unfixed bytes.Buffer
	s := Sed{W: &fixed, Unfixed: &unfixed, Program: "sed", Fixups: map[string]string{
		"Tab found; better to use spaces": `s/\t/  /g`,
	}}
	s.Format(diag.Diagnostic{File: "foo.vhd", Ref: lineref.New(3, 0, 1), Category: "whitespace/tab", Confidence: 1, Message: "Tab found; better to use spaces"})
	if unfixed.Len() != 0 {
		t.Fatalf("expected no unfixed output, got %q", unfixed.String())
	}
	if got := fixed.String(); !strings.HasPrefix(got, `sed -i '3s/\t/  /g' foo.vhd #`) {
		t.Fatalf("unexpected sed output: %q", got)
	}
}

func TestSedFormatUnknownFixupFallsBackToComment(t *testing.T) {
	var fixed, unfixed bytes.Buffer
	s := Sed{W: &fixed, Unfixed: &unfixed, Fixups: map[string]string{}}
	s.Format(sampleDiag())
	if fixed.Len() != 0 {
		t.Fatalf("expected no fixed output, got %q", fixed.String())
	}
	if got := unfixed.String(); !strings.Contains(got, "Invalid naming convention on 'foo'.") {
		t.Fatalf("unexpected unfixed output: %q", got)
	}
}

func TestJUnitFlushProducesOneTestCasePerFile(t *testing.T) {
	var buf bytes.Buffer
	j := NewJUnit(&buf)
	j.Format(sampleDiag())
	j.Format(diag.Diagnostic{File: "bar.vhd", Ref: lineref.New(1, 0, 1), Category: "build/unused", Confidence: 2, Message: "Unused identifier 'c_foo'."})
	j.AddToolError("Skipping baz.vhd: can't open for reading")
	j.Flush()

	out := buf.String()
	for _, want := range []string{`<?xml version="1.0" encoding="UTF-8" ?>`, `name="foo.vhd"`, `name="bar.vhd"`, `name="errors"`, "Unused identifier"} {
		if !strings.Contains(out, want) {
			t.Errorf("junit output missing %q; got:\n%s", want, out)
		}
	}
}
