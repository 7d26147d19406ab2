// Package symbols implements the per-file scoped symbol table: identifier
// kinds, driver tracking, and lexical scoping for locals.
package symbols

import "github.com/intrepidcs/vhdllint/internal/lineref"

// Kind discriminates the capability variants of Identifier. VHDL source
// entities map onto a closed set of kinds; region detectors and rules
// switch on Kind (or type-assert the narrower capability interfaces below)
// rather than relying on a single shared struct with unused fields.
type Kind int

const (
	KindPlain Kind = iota
	KindReferenced
	KindSignal
	KindPort
	KindConstant
	KindVariable
	KindLocalConstant
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindReferenced:
		return "referenced"
	case KindSignal:
		return "signal"
	case KindPort:
		return "port"
	case KindConstant:
		return "constant"
	case KindVariable:
		return "variable"
	case KindLocalConstant:
		return "local_constant"
	default:
		return "unknown"
	}
}

// Identifier is the capability every declared name supports: a kind, its
// original-cased spelling, where it was declared, and a reference count.
// Identifiers are compared for table lookups by case-folded name, never by
// this interface's identity.
type Identifier interface {
	Kind() Kind
	Name() string
	DeclaredAt() lineref.LineRef
	Refs() int
	AddRef()
}

// Referenceable marks identifiers the unused-identifier scan should never
// flag even with zero references (types, functions, procedures, records,
// aliases, subtypes) — they are expected to be read from outside the file.
type Referenceable interface {
	Identifier
	referenceable()
}

// Typed is the capability of signals, ports, constants, variables and
// local constants: a VHDL type string, an optional initializer, and a
// driver list. Driver bookkeeping only makes sense for these kinds.
type Typed interface {
	Identifier
	Type() string
	Init() (string, bool)
	Drivers() []Driver
	AddDriver(d Driver)
	HasMultipleDrivers() bool
}

type base struct {
	name       string
	declaredAt lineref.LineRef
	refs       int
}

func (b *base) Name() string                  { return b.name }
func (b *base) DeclaredAt() lineref.LineRef    { return b.declaredAt }
func (b *base) Refs() int                     { return b.refs }
func (b *base) AddRef()                       { b.refs++ }

// Plain identifies libraries, architectures, entities, packages and labels:
// declared once, never driven, never flagged for being unused.
type Plain struct{ base }

func NewPlain(name string, at lineref.LineRef) *Plain {
	return &Plain{base{name: name, declaredAt: at}}
}
func (*Plain) Kind() Kind { return KindPlain }

// Referenced identifies types, functions, procedures, records, aliases and
// subtypes: expected to be read somewhere, so the unused scan skips them.
type Referenced struct{ base }

func NewReferenced(name string, at lineref.LineRef) *Referenced {
	return &Referenced{base{name: name, declaredAt: at}}
}
func (*Referenced) Kind() Kind    { return KindReferenced }
func (*Referenced) referenceable() {}

type typedBase struct {
	base
	stype   string
	init    string
	hasInit bool
	drivers []Driver
}

func (t *typedBase) Type() string { return t.stype }
func (t *typedBase) Init() (string, bool) {
	return t.init, t.hasInit
}
func (t *typedBase) Drivers() []Driver { return t.drivers }
func (*typedBase) referenceable()      {}
func (t *typedBase) AddDriver(d Driver) {
	for _, existing := range t.drivers {
		if existing.Equal(d) {
			return
		}
	}
	t.drivers = append(t.drivers, d)
}

// HasMultipleDrivers implements the §3 rule: more than one driver, under
// each driver kind's own equality, excluding PossibleDriver entries.
func (t *typedBase) HasMultipleDrivers() bool {
	var distinct []Driver
	for _, d := range t.drivers {
		if d.IsPossible() {
			continue
		}
		dup := false
		for _, seen := range distinct {
			if seen.Equal(d) {
				dup = true
				break
			}
		}
		if !dup {
			distinct = append(distinct, d)
		}
	}
	return len(distinct) > 1
}

func newTypedBase(name, stype string, init string, hasInit bool, at lineref.LineRef) typedBase {
	return typedBase{base: base{name: name, declaredAt: at}, stype: stype, init: init, hasInit: hasInit}
}

// Signal is a declared VHDL signal.
type Signal struct{ typedBase }

func NewSignal(name, stype, init string, hasInit bool, at lineref.LineRef) *Signal {
	return &Signal{newTypedBase(name, stype, init, hasInit, at)}
}
func (*Signal) Kind() Kind { return KindSignal }

// Constant is a declared VHDL constant (global scope).
type Constant struct{ typedBase }

func NewConstant(name, stype, init string, hasInit bool, at lineref.LineRef) *Constant {
	return &Constant{newTypedBase(name, stype, init, hasInit, at)}
}
func (*Constant) Kind() Kind { return KindConstant }

// Variable is a declared VHDL variable in a local (function/procedure/
// process) scope.
type Variable struct{ typedBase }

func NewVariable(name, stype, init string, hasInit bool, at lineref.LineRef) *Variable {
	return &Variable{newTypedBase(name, stype, init, hasInit, at)}
}
func (*Variable) Kind() Kind { return KindVariable }

// LocalConstant is a declared VHDL constant in a local scope.
type LocalConstant struct{ typedBase }

func NewLocalConstant(name, stype, init string, hasInit bool, at lineref.LineRef) *LocalConstant {
	return &LocalConstant{newTypedBase(name, stype, init, hasInit, at)}
}
func (*LocalConstant) Kind() Kind { return KindLocalConstant }

// Port is a declared entity port, adding a direction mode to Signal's
// shape. An "in" or "inout" port receives an implicit Driver at its own
// declaration line (the outside world drives it).
type Port struct {
	typedBase
	Mode string // "in", "out", or "inout"
}

func NewPort(name, stype, init string, hasInit bool, mode string, at lineref.LineRef) *Port {
	return &Port{typedBase: newTypedBase(name, stype, init, hasInit, at), Mode: mode}
}
func (*Port) Kind() Kind { return KindPort }
