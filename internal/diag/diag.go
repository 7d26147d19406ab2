// Package diag is the diagnostic sink (component G): it gates every
// finding through NOLINT suppression, the verbosity threshold and the
// category filter list, then counts and formats it.
package diag

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/intrepidcs/vhdllint/internal/lineref"
)

// Diagnostic is a single finding ready for formatting.
type Diagnostic struct {
	File       string
	Ref        lineref.LineRef
	Category   string
	Confidence int
	Message    string
}

// Counting selects how the summary counts are bucketed.
type Counting string

const (
	CountingTotal    Counting = "total"
	CountingTopLevel Counting = "toplevel"
	CountingDetailed Counting = "detailed"
)

// Formatter renders an accepted Diagnostic to its destination stream(s).
// See internal/format for the emacs/vs7/eclipse/sed/gsed/junit
// implementations.
type Formatter interface {
	Format(d Diagnostic)
	// Flush is called once after every file has been processed; junit uses
	// it to emit the buffered XML document.
	Flush()
}

// Sink is the per-run diagnostic gate and counter. Suppression state
// (NOLINT) is reset per file via ResetFile; verbosity is set once at
// construction, and filters are set by SetFilters and extended by
// AddFilters, which are never reset between files.
type Sink struct {
	verboseLevel int
	counting     Counting
	filters      []string // validated "+prefix"/"-prefix" entries, applied left to right
	formatter    Formatter
	knownCats    map[string]bool

	// per-file suppression state
	lineSuppressions map[string]map[int]bool // category (or "" = all) -> line set
	regionActive     map[string]bool

	total  int
	counts map[string]int

	emitted bool
}

// New constructs a Sink. knownCategories is the full set of valid category
// strings, used to validate NOLINT(cat) directives and --filter prefixes.
func New(verboseLevel int, counting Counting, formatter Formatter, knownCategories []string) *Sink {
	known := make(map[string]bool, len(knownCategories))
	for _, c := range knownCategories {
		known[c] = true
	}
	return &Sink{
		verboseLevel: verboseLevel,
		counting:     counting,
		formatter:    formatter,
		knownCats:    known,
		counts:       map[string]int{},
	}
}

// SetFilters replaces the active filter list. Every entry must start with
// '+' or '-'; this is the fix for the reference tool's assert-False
// fallthrough (spec §9): a malformed filter is rejected here, at
// configuration time, rather than discovered mid-scan.
func (s *Sink) SetFilters(filters []string) error {
	validated, err := validateFilters(filters)
	if err != nil {
		return err
	}
	s.filters = validated
	return nil
}

// AddFilters appends to the active filter list without resetting it,
// validating the same way SetFilters does.
func (s *Sink) AddFilters(filters []string) error {
	validated, err := validateFilters(filters)
	if err != nil {
		return err
	}
	s.filters = append(s.filters, validated...)
	return nil
}

func validateFilters(filters []string) ([]string, error) {
	out := make([]string, 0, len(filters))
	for _, f := range filters {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if f[0] != '+' && f[0] != '-' {
			return nil, fmt.Errorf("invalid filter %q: must start with + or -", f)
		}
		out = append(out, f)
	}
	return out, nil
}

// ResetFile clears per-file suppression state; call at the start of every
// file, matching ResetNolintSuppressions in the reference tool.
func (s *Sink) ResetFile() {
	s.lineSuppressions = map[string]map[int]bool{}
	s.regionActive = map[string]bool{}
}

// ActiveRegionSuppressions returns the number of NOLINTBEGIN regions still
// open; must be zero at end of file (spec §8 invariant).
func (s *Sink) ActiveRegionSuppressions() int {
	return len(s.regionActive)
}

var nolintRe = regexp.MustCompile(`\bNOLINT(NEXTLINE|BEGIN|END)?\b(\([^)]+\))?`)

// ParseNolint scans a raw source line for NOLINT directives and updates
// suppression state. It returns a readability/nolint diagnostic (already
// routed through Emit) if an unknown category was named; callers do not
// need to do anything further with the return value, it is provided only
// for tests.
func (s *Sink) ParseNolint(file, rawLine string, linenum int) *Diagnostic {
	m := nolintRe.FindStringSubmatch(rawLine)
	if m == nil {
		s.applyActiveRegions(linenum)
		return nil
	}

	kind := m[1] // "", "NEXTLINE", "BEGIN", "END"
	catGroup := m[2]

	suppressedLine := linenum
	if kind == "NEXTLINE" {
		suppressedLine = linenum + 1
	}

	var result *Diagnostic
	switch {
	case catGroup == "" || catGroup == "(*)":
		s.suppress("", suppressedLine)
	case strings.HasPrefix(catGroup, "(") && strings.HasSuffix(catGroup, ")"):
		category := catGroup[1 : len(catGroup)-1]
		if s.knownCats[category] {
			switch kind {
			case "BEGIN":
				s.regionActive[category] = true
			case "END":
				delete(s.regionActive, category)
			}
			s.suppress(category, suppressedLine)
		} else {
			d := Diagnostic{
				File:       file,
				Ref:        lineref.FromSubstring(linenum, rawLine, category),
				Category:   "readability/nolint",
				Confidence: 5,
				Message:    "Unknown NOLINT error category: " + category,
			}
			s.Emit(d)
			result = &d
		}
	}

	s.applyActiveRegions(linenum)
	return result
}

func (s *Sink) applyActiveRegions(linenum int) {
	for category := range s.regionActive {
		s.suppress(category, linenum)
	}
}

func (s *Sink) suppress(category string, line int) {
	set, ok := s.lineSuppressions[category]
	if !ok {
		set = map[int]bool{}
		s.lineSuppressions[category] = set
	}
	set[line] = true
}

func (s *Sink) suppressedByNolint(category string, line int) bool {
	if set, ok := s.lineSuppressions[""]; ok && set[line] {
		return true
	}
	if set, ok := s.lineSuppressions[category]; ok && set[line] {
		return true
	}
	return false
}

// shouldPrint applies the three gates of §4.G in order: NOLINT, verbosity,
// then the filter list (left to right, last match wins).
func (s *Sink) shouldPrint(d Diagnostic) bool {
	if s.suppressedByNolint(d.Category, d.Ref.Line) {
		return false
	}
	if d.Confidence < s.verboseLevel {
		return false
	}
	filtered := false
	for _, f := range s.filters {
		prefix := f[1:]
		if strings.HasPrefix(d.Category, prefix) {
			filtered = f[0] == '-'
		}
	}
	return !filtered
}

// Emit gates d through the sink and, if accepted, counts and formats it.
func (s *Sink) Emit(d Diagnostic) {
	if !s.shouldPrint(d) {
		return
	}
	s.emitted = true
	s.total++
	s.counts[s.countKey(d.Category)]++
	s.formatter.Format(d)
}

func (s *Sink) countKey(category string) string {
	switch s.counting {
	case CountingTotal:
		return "total"
	case CountingTopLevel:
		if i := strings.IndexByte(category, '/'); i >= 0 {
			return category[:i]
		}
		return category
	default: // detailed
		return category
	}
}

// Flush finalizes output (the junit formatter buffers until this point).
func (s *Sink) Flush() { s.formatter.Flush() }

// AnyEmitted reports whether any diagnostic passed all three gates across
// the whole run; the CLI uses this to decide the process exit code.
func (s *Sink) AnyEmitted() bool { return s.emitted }

// Counts returns a copy of the category -> count map; map iteration order
// is not stable.
func (s *Sink) Counts() map[string]int {
	out := make(map[string]int, len(s.counts))
	for k, v := range s.counts {
		out[k] = v
	}
	return out
}

// Total returns the number of diagnostics emitted across the whole run.
func (s *Sink) Total() int { return s.total }

// Itoa is a tiny helper used by formatters that build fixed-width strings;
// kept here so format implementations need no extra import for one call.
func Itoa(n int) string { return strconv.Itoa(n) }
