package symbols

import (
	"testing"

	"github.com/intrepidcs/vhdllint/internal/lineref"
)

func TestAddSignalAndLookup(t *testing.T) {
	tbl := New()
	tbl.AddSignal(NewSignal("my_sig", "std_logic", "", false, lineref.Point(1, 0)))

	if !tbl.IsSignal("MY_SIG") {
		t.Fatalf("IsSignal should be case-insensitive")
	}
	s, ok := tbl.GetSignal("my_sig")
	if !ok || s.Type() != "std_logic" {
		t.Fatalf("GetSignal = %v, %v", s, ok)
	}
}

func TestCapitalizationViolationReportedForMixedCase(t *testing.T) {
	tbl := New()
	tbl.AddSignal(NewSignal("MySig", "std_logic", "", false, lineref.Point(1, 0)))
	v := tbl.CapitalizationViolations()
	if len(v) != 1 || v[0].Name != "MySig" {
		t.Fatalf("CapitalizationViolations = %v", v)
	}
}

func TestConstantExemptFromCapsCheck(t *testing.T) {
	tbl := New()
	tbl.AddConstant(NewConstant("C_FOO", "integer", "3", true, lineref.Point(1, 0)))
	if v := tbl.CapitalizationViolations(); len(v) != 0 {
		t.Fatalf("constants should not trigger capitalization checks, got %v", v)
	}
}

func TestUnusedGlobalDetection(t *testing.T) {
	tbl := New()
	c := NewConstant("c_foo", "integer", "3", true, lineref.Point(5, 0))
	tbl.AddConstant(c)

	unused := tbl.UnusedGlobals()
	if len(unused) != 1 || unused[0].Name != "c_foo" {
		t.Fatalf("UnusedGlobals = %v", unused)
	}

	c.AddRef()
	if u := tbl.UnusedGlobals(); len(u) != 0 {
		t.Fatalf("expected no unused after reference, got %v", u)
	}
}

func TestPlainIdentifiersNeverUnused(t *testing.T) {
	tbl := New()
	tbl.AddOther(NewPlain("my_entity", lineref.Point(1, 0)))
	if u := tbl.UnusedGlobals(); len(u) != 0 {
		t.Fatalf("Plain identifiers must not be flagged unused, got %v", u)
	}
}

func TestScopePushPopUnusedLocal(t *testing.T) {
	tbl := New()
	tbl.PushScope()
	v := NewVariable("tmp", "integer", "", false, lineref.Point(3, 0))
	tbl.AddLocal(v)

	unused := tbl.PopScope()
	if len(unused) != 1 || unused[0].Name != "tmp" {
		t.Fatalf("PopScope unused = %v", unused)
	}
	if tbl.ScopeDepth() != 0 {
		t.Fatalf("ScopeDepth after pop = %d, want 0", tbl.ScopeDepth())
	}
	if _, ok := tbl.Get("tmp"); ok {
		t.Fatalf("local should be removed from all_ids after pop")
	}
}

func TestScopedLocalShadowsNothingAfterPop(t *testing.T) {
	tbl := New()
	tbl.AddSignal(NewSignal("x", "std_logic", "", false, lineref.Point(1, 0)))
	tbl.PushScope()
	tbl.AddLocal(NewVariable("y", "integer", "", false, lineref.Point(2, 0)))
	tbl.PopScope()

	if !tbl.IsSignal("x") {
		t.Fatalf("global signal x should still be present after unrelated scope pop")
	}
}

func TestMultipleDriversDetection(t *testing.T) {
	sig := NewSignal("sig", "std_logic", "", false, lineref.Point(1, 0))
	sig.AddDriver(NewProcessDriver(10, 11))
	if sig.HasMultipleDrivers() {
		t.Fatalf("single driver should not be multiple")
	}
	sig.AddDriver(NewProcessDriver(20, 21))
	if !sig.HasMultipleDrivers() {
		t.Fatalf("two distinct process drivers should count as multiple")
	}
}

func TestPossibleDriverExcludedFromMultipleCount(t *testing.T) {
	sig := NewSignal("sig", "std_logic", "", false, lineref.Point(1, 0))
	sig.AddDriver(NewLineDriver(0, 5))
	sig.AddDriver(NewPossibleDriver(0, 9))
	if sig.HasMultipleDrivers() {
		t.Fatalf("a possible driver must not count toward multiple-driver detection")
	}
}

func TestProcessDriverSameScopeIsOneDriver(t *testing.T) {
	sig := NewSignal("sig", "std_logic", "", false, lineref.Point(1, 0))
	sig.AddDriver(NewProcessDriver(10, 11))
	sig.AddDriver(NewProcessDriver(10, 15))
	if sig.HasMultipleDrivers() {
		t.Fatalf("two writes from the same process scope must count as one driver")
	}
}

func TestIdentifierOrderPreserved(t *testing.T) {
	tbl := New()
	tbl.AddSignal(NewSignal("b_sig", "std_logic", "", false, lineref.Point(2, 0)))
	tbl.AddSignal(NewSignal("a_sig", "std_logic", "", false, lineref.Point(1, 0)))
	if tbl.order[0] != "b_sig" || tbl.order[1] != "a_sig" {
		t.Fatalf("order = %v, want declaration order preserved", tbl.order)
	}
}
