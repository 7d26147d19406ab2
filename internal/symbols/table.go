package symbols

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// foldCaser does Unicode-correct lower-casing for identifier comparison:
// VHDL-1993-and-later extended identifiers permit non-ASCII letters, which
// strings.ToLower handles correctly for most but not all scripts (Turkish
// dotless i, German ß expansion). cases.Lower is the ecosystem-standard fix.
var foldCaser = cases.Lower(language.Und)

// Unused is reported by the table for every identifier that should have
// been referenced but wasn't, discovered either at scope-pop time (locals)
// or at end-of-file (globals). The category/confidence match spec §4.F's
// build/unused rule; callers route these through the diagnostic sink.
type Unused struct {
	Name string
	At   Identifier
}

// CapitalizationViolation is reported at Add time for any non-constant
// identifier whose declared spelling is not all lower case, matching the
// reference tool's inline check inside every AddXIdentifier function.
type CapitalizationViolation struct {
	Name string
	At   Identifier
}

// Table is the per-file scoped symbol table described in spec §3/§4.C. A
// fresh Table must be constructed per file; it carries no package-level
// state, per the "thread an explicit analyzer context" design note.
type Table struct {
	signals   map[string]Identifier // Signal or Port, keyed lower-case
	constants map[string]Identifier // Constant
	others    map[string]Identifier // Plain or Referenced
	all       map[string]Identifier
	order     []string // insertion order of all, for stable iteration

	scopes []map[string]Identifier // stack of local scopes (Variable/LocalConstant)

	caps []CapitalizationViolation
}

// New returns an empty symbol table ready for a single file.
func New() *Table {
	return &Table{
		signals:   map[string]Identifier{},
		constants: map[string]Identifier{},
		others:    map[string]Identifier{},
		all:       map[string]Identifier{},
	}
}

func fold(name string) string { return foldCaser.String(name) }

func (t *Table) insertAll(name string, id Identifier) {
	key := fold(name)
	if _, exists := t.all[key]; !exists {
		t.order = append(t.order, key)
	}
	t.all[key] = id
}

func (t *Table) checkCaps(id Identifier) {
	if id.Name() != strings.ToLower(id.Name()) {
		t.caps = append(t.caps, CapitalizationViolation{Name: id.Name(), At: id})
	}
}

// AddSignal declares a global signal.
func (t *Table) AddSignal(s *Signal) {
	t.signals[fold(s.Name())] = s
	t.insertAll(s.Name(), s)
	t.checkCaps(s)
}

// AddPort declares an entity port (stored alongside signals, per spec §3's
// signal_ids map holding Signal|Port).
func (t *Table) AddPort(p *Port) {
	t.signals[fold(p.Name())] = p
	t.insertAll(p.Name(), p)
	t.checkCaps(p)
}

// AddConstant declares a global constant. Constants are exempt from the
// lower-case check (they use the UPPER/G_-prefixed convention enforced by
// the generic-clause region detector instead).
func (t *Table) AddConstant(c *Constant) {
	t.constants[fold(c.Name())] = c
	t.insertAll(c.Name(), c)
}

// AddOther declares a Plain identifier (library, architecture, entity,
// package, label).
func (t *Table) AddOther(p *Plain) {
	t.others[fold(p.Name())] = p
	t.insertAll(p.Name(), p)
	t.checkCaps(p)
}

// AddReferenced declares a Referenced identifier (type, function,
// procedure, record, alias, subtype). enforceCaps mirrors the reference
// tool's enforce_caps parameter: some callers (e.g. type names following a
// different convention) opt out.
func (t *Table) AddReferenced(r *Referenced, enforceCaps bool) {
	t.others[fold(r.Name())] = r
	t.insertAll(r.Name(), r)
	if enforceCaps {
		t.checkCaps(r)
	}
}

// CapitalizationViolations drains and returns the capitalization
// violations accumulated by Add* calls since the last drain.
func (t *Table) CapitalizationViolations() []CapitalizationViolation {
	v := t.caps
	t.caps = nil
	return v
}

// PushScope opens a new local scope for a function/procedure/process body.
func (t *Table) PushScope() {
	t.scopes = append(t.scopes, map[string]Identifier{})
}

// PopScope closes the innermost local scope, returning every identifier
// declared in it that was never referenced (for the caller to route
// through the diagnostic sink as build/unused), and removes those locals
// from the global `all` map — but only if the global slot still points at
// the same record, matching the reference tool's identity check before
// deleting from _all_identifiers.
func (t *Table) PopScope() []Unused {
	if len(t.scopes) == 0 {
		return nil
	}
	scope := t.scopes[len(t.scopes)-1]
	t.scopes = t.scopes[:len(t.scopes)-1]

	var unused []Unused
	for key, id := range scope {
		if id.Refs() == 0 {
			unused = append(unused, Unused{Name: id.Name(), At: id})
		}
		if cur, ok := t.all[key]; ok && cur == id {
			delete(t.all, key)
		}
	}
	return unused
}

// AddLocal declares a Variable or LocalConstant in the innermost scope.
func (t *Table) AddLocal(id Identifier) {
	if len(t.scopes) == 0 {
		t.PushScope()
	}
	key := fold(id.Name())
	t.scopes[len(t.scopes)-1][key] = id
	t.all[key] = id
	if _, exists := t.all[key]; !exists {
		t.order = append(t.order, key)
	}
	if _, isConst := id.(*LocalConstant); !isConst {
		t.checkCaps(id)
	}
}

// Get looks up any identifier by name (case-insensitive).
func (t *Table) Get(name string) (Identifier, bool) {
	id, ok := t.all[fold(name)]
	return id, ok
}

// IsSignal reports whether name is a declared Signal or Port.
func (t *Table) IsSignal(name string) bool {
	_, ok := t.signals[fold(name)]
	return ok
}

// GetSignal returns the Signal or Port declared under name, if any.
func (t *Table) GetSignal(name string) (Typed, bool) {
	id, ok := t.signals[fold(name)]
	if !ok {
		return nil, false
	}
	typed, ok := id.(Typed)
	return typed, ok
}

// IsConstant reports whether name is a declared global Constant.
func (t *Table) IsConstant(name string) bool {
	_, ok := t.constants[fold(name)]
	return ok
}

// GetConstant returns the Constant declared under name, if any.
func (t *Table) GetConstant(name string) (Typed, bool) {
	id, ok := t.constants[fold(name)]
	if !ok {
		return nil, false
	}
	typed, ok := id.(Typed)
	return typed, ok
}

// IsVariable reports whether name is a Variable (not a LocalConstant) in
// any enclosing local scope, searching innermost-first.
func (t *Table) IsVariable(name string) bool {
	key := fold(name)
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if id, ok := t.scopes[i][key]; ok {
			_, isConst := id.(*LocalConstant)
			return !isConst
		}
	}
	return false
}

// GetLocal returns the Variable or LocalConstant declared under name in
// the nearest enclosing scope, if any.
func (t *Table) GetLocal(name string) (Identifier, bool) {
	key := fold(name)
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if id, ok := t.scopes[i][key]; ok {
			return id, true
		}
	}
	return nil, false
}

// IsSignalOrVariable reports whether name is a variable or a signal/port.
func (t *Table) IsSignalOrVariable(name string) bool {
	return t.IsVariable(name) || t.IsSignal(name)
}

// IsTyped reports whether name resolves to a Typed identifier (variable,
// signal/port, or constant) in the current scope chain.
func (t *Table) IsTyped(name string) bool {
	return t.IsVariable(name) || t.IsSignal(name) || t.IsConstant(name)
}

// GetTyped returns the Typed identifier resolving to name, preferring the
// nearest local scope over globals.
func (t *Table) GetTyped(name string) (Typed, bool) {
	if id, ok := t.GetLocal(name); ok {
		if typed, ok := id.(Typed); ok {
			return typed, true
		}
	}
	if s, ok := t.GetSignal(name); ok {
		return s, true
	}
	if c, ok := t.GetConstant(name); ok {
		return c, true
	}
	return nil, false
}

// IsReferenceable reports whether name resolves to an identifier the
// unused-identifier scan should check (everything but Plain).
func (t *Table) IsReferenceable(name string) bool {
	id, ok := t.Get(name)
	if !ok {
		return false
	}
	_, ok = id.(Referenceable)
	return ok
}

// UnusedGlobals scans every globally-declared identifier (in declaration
// order, per the all_ids ordering invariant) and returns those that are
// Referenceable but never referenced.
func (t *Table) UnusedGlobals() []Unused {
	var unused []Unused
	for _, key := range t.order {
		id, ok := t.all[key]
		if !ok {
			continue
		}
		if _, ok := id.(Referenceable); !ok {
			continue
		}
		if id.Refs() == 0 {
			unused = append(unused, Unused{Name: id.Name(), At: id})
		}
	}
	return unused
}

// ScopeDepth reports how many local scopes are currently open, used by
// tests and by the end-of-file invariant check (must be 0 after a file).
func (t *Table) ScopeDepth() int { return len(t.scopes) }
