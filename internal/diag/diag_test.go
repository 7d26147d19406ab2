package diag

import (
	"testing"

	"github.com/intrepidcs/vhdllint/internal/lineref"
)

type recordingFormatter struct {
	formatted []Diagnostic
	flushed   bool
}

func (f *recordingFormatter) Format(d Diagnostic) { f.formatted = append(f.formatted, d) }
func (f *recordingFormatter) Flush()              { f.flushed = true }

var knownCats = []string{"whitespace/tab", "readability/todo", "build/unused"}

func TestSetFiltersRejectsMissingSign(t *testing.T) {
	s := New(1, CountingTotal, &recordingFormatter{}, knownCats)
	if err := s.SetFilters([]string{"whitespace/tab"}); err == nil {
		t.Fatalf("expected error for filter missing +/- prefix")
	}
}

func TestFilterLastMatchWins(t *testing.T) {
	f := &recordingFormatter{}
	s := New(1, CountingTotal, f, knownCats)
	if err := s.SetFilters([]string{"-whitespace", "+whitespace/tab"}); err != nil {
		t.Fatalf("SetFilters: %v", err)
	}
	s.ResetFile()
	s.Emit(Diagnostic{File: "f.vhd", Ref: lineref.Point(1, 0), Category: "whitespace/tab", Confidence: 3})
	if len(f.formatted) != 1 {
		t.Fatalf("expected whitespace/tab to survive the more specific +filter, got %d", len(f.formatted))
	}

	f2 := &recordingFormatter{}
	s2 := New(1, CountingTotal, f2, knownCats)
	s2.SetFilters([]string{"-whitespace", "+whitespace/tab"})
	s2.ResetFile()
	s2.Emit(Diagnostic{File: "f.vhd", Ref: lineref.Point(1, 0), Category: "whitespace/blank_line", Confidence: 3})
	if len(f2.formatted) != 0 {
		t.Fatalf("expected whitespace/blank_line to stay filtered out")
	}
}

func TestVerbosityGate(t *testing.T) {
	f := &recordingFormatter{}
	s := New(4, CountingTotal, f, knownCats)
	s.ResetFile()
	s.Emit(Diagnostic{File: "f.vhd", Ref: lineref.Point(1, 0), Category: "build/unused", Confidence: 2})
	if len(f.formatted) != 0 {
		t.Fatalf("expected low-confidence diagnostic suppressed by verbose_level")
	}
	s.Emit(Diagnostic{File: "f.vhd", Ref: lineref.Point(2, 0), Category: "build/unused", Confidence: 5})
	if len(f.formatted) != 1 {
		t.Fatalf("expected high-confidence diagnostic to pass")
	}
}

func TestNolintWholeLineSuppression(t *testing.T) {
	f := &recordingFormatter{}
	s := New(1, CountingTotal, f, knownCats)
	s.ResetFile()
	s.ParseNolint("f.vhd", "  foo <= bar;  -- NOLINT", 5)
	s.Emit(Diagnostic{File: "f.vhd", Ref: lineref.Point(5, 0), Category: "whitespace/tab", Confidence: 5})
	if len(f.formatted) != 0 {
		t.Fatalf("expected bare NOLINT to suppress every category on its line")
	}
}

func TestNolintCategorySuppressesOnlyThatCategory(t *testing.T) {
	f := &recordingFormatter{}
	s := New(1, CountingTotal, f, knownCats)
	s.ResetFile()
	s.ParseNolint("f.vhd", "  foo <= bar;  -- NOLINT(whitespace/tab)", 5)
	s.Emit(Diagnostic{File: "f.vhd", Ref: lineref.Point(5, 0), Category: "whitespace/tab", Confidence: 5})
	s.Emit(Diagnostic{File: "f.vhd", Ref: lineref.Point(5, 0), Category: "build/unused", Confidence: 5})
	if len(f.formatted) != 1 || f.formatted[0].Category != "build/unused" {
		t.Fatalf("expected only the untargeted category to survive, got %+v", f.formatted)
	}
}

func TestNolintNextline(t *testing.T) {
	f := &recordingFormatter{}
	s := New(1, CountingTotal, f, knownCats)
	s.ResetFile()
	s.ParseNolint("f.vhd", "-- NOLINTNEXTLINE(whitespace/tab)", 5)
	s.Emit(Diagnostic{File: "f.vhd", Ref: lineref.Point(6, 0), Category: "whitespace/tab", Confidence: 5})
	if len(f.formatted) != 0 {
		t.Fatalf("expected NOLINTNEXTLINE to suppress the following line")
	}
}

func TestNolintBeginEndRegion(t *testing.T) {
	f := &recordingFormatter{}
	s := New(1, CountingTotal, f, knownCats)
	s.ResetFile()
	s.ParseNolint("f.vhd", "-- NOLINTBEGIN(whitespace/tab)", 1)
	s.ParseNolint("f.vhd", "\tsignal x : std_logic;", 2)
	s.ParseNolint("f.vhd", "-- NOLINTEND(whitespace/tab)", 3)
	s.Emit(Diagnostic{File: "f.vhd", Ref: lineref.Point(2, 0), Category: "whitespace/tab", Confidence: 5})
	if len(f.formatted) != 0 {
		t.Fatalf("expected line inside NOLINTBEGIN/END region to be suppressed")
	}
	if s.ActiveRegionSuppressions() != 0 {
		t.Fatalf("expected region to be closed by NOLINTEND")
	}
}

func TestNolintUnknownCategoryEmitsDiagnostic(t *testing.T) {
	f := &recordingFormatter{}
	s := New(1, CountingTotal, f, knownCats)
	s.ResetFile()
	got := s.ParseNolint("f.vhd", "-- NOLINT(bogus/category)", 1)
	if got == nil || got.Category != "readability/nolint" {
		t.Fatalf("expected readability/nolint diagnostic for unknown category, got %+v", got)
	}
	if len(f.formatted) != 1 {
		t.Fatalf("expected the unknown-category diagnostic itself to be emitted")
	}
}

func TestCountingModes(t *testing.T) {
	f := &recordingFormatter{}
	s := New(1, CountingDetailed, f, knownCats)
	s.ResetFile()
	s.Emit(Diagnostic{File: "f.vhd", Ref: lineref.Point(1, 0), Category: "build/unused", Confidence: 5})
	s.Emit(Diagnostic{File: "f.vhd", Ref: lineref.Point(2, 0), Category: "build/unused", Confidence: 5})
	counts := s.Counts()
	if counts["build/unused"] != 2 {
		t.Fatalf("detailed counting: got %v", counts)
	}

	f2 := &recordingFormatter{}
	s2 := New(1, CountingTopLevel, f2, knownCats)
	s2.ResetFile()
	s2.Emit(Diagnostic{File: "f.vhd", Ref: lineref.Point(1, 0), Category: "build/unused", Confidence: 5})
	counts2 := s2.Counts()
	if counts2["build"] != 1 {
		t.Fatalf("toplevel counting: got %v", counts2)
	}
}

func TestFlushCallsFormatter(t *testing.T) {
	f := &recordingFormatter{}
	s := New(1, CountingTotal, f, knownCats)
	s.Flush()
	if !f.flushed {
		t.Fatalf("expected Flush to reach the formatter")
	}
}
