package main

import (
	"os"
	"testing"

	"github.com/intrepidcs/vhdllint/internal/format"
)

// TestBuildFormatterWritesDiagnosticsToStderr pins emacs/vs7/eclipse to
// os.Stderr: spec.md §5/§6 and the Python original (Error/PrintError)
// route every diagnostic line to stderr, reserving stdout for sed/gsed
// fixups (and leaving room for a future machine-readable summary on
// stdout without interleaving with diagnostic text).
func TestBuildFormatterWritesDiagnosticsToStderr(t *testing.T) {
	cases := []struct {
		output string
		check  func(t *testing.T, f interface{})
	}{
		{"emacs", func(t *testing.T, f interface{}) {
			e, ok := f.(format.Emacs)
			if !ok {
				t.Fatalf("expected format.Emacs, got %T", f)
			}
			if e.W != os.Stderr {
				t.Fatalf("emacs formatter must write to os.Stderr, got %v", e.W)
			}
		}},
		{"vs7", func(t *testing.T, f interface{}) {
			v, ok := f.(format.VS7)
			if !ok {
				t.Fatalf("expected format.VS7, got %T", f)
			}
			if v.W != os.Stderr {
				t.Fatalf("vs7 formatter must write to os.Stderr, got %v", v.W)
			}
		}},
		{"eclipse", func(t *testing.T, f interface{}) {
			e, ok := f.(format.Eclipse)
			if !ok {
				t.Fatalf("expected format.Eclipse, got %T", f)
			}
			if e.W != os.Stderr {
				t.Fatalf("eclipse formatter must write to os.Stderr, got %v", e.W)
			}
		}},
	}

	for _, c := range cases {
		t.Run(c.output, func(t *testing.T) {
			f, cleanup, err := buildFormatter(c.output)
			if err != nil {
				t.Fatalf("buildFormatter(%q): %v", c.output, err)
			}
			defer cleanup()
			c.check(t, f)
		})
	}
}

// TestBuildFormatterSedWritesFixupsToStdout pins sed/gsed's fixed-line
// output to os.Stdout (the fixup a caller would pipe into `sh`), with
// unfixed commentary still routed to os.Stderr.
func TestBuildFormatterSedWritesFixupsToStdout(t *testing.T) {
	for _, program := range []string{"sed", "gsed"} {
		f, cleanup, err := buildFormatter(program)
		if err != nil {
			t.Fatalf("buildFormatter(%q): %v", program, err)
		}
		defer cleanup()
		s, ok := f.(format.Sed)
		if !ok {
			t.Fatalf("expected format.Sed, got %T", f)
		}
		if s.W != os.Stdout {
			t.Fatalf("%s formatter must write fixups to os.Stdout, got %v", program, s.W)
		}
		if s.Unfixed != os.Stderr {
			t.Fatalf("%s formatter must write unfixed commentary to os.Stderr, got %v", program, s.Unfixed)
		}
	}
}

func TestBuildFormatterUnknownOutputIsAnError(t *testing.T) {
	if _, _, err := buildFormatter("bogus"); err == nil {
		t.Fatal("expected an error for an unrecognized --output value")
	}
}
