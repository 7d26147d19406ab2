package symbols

// Driver records a location that assigns (drives) a signal or port. The
// three concrete kinds differ only in equality/possible-ness, matching the
// reference tool's Driver/ProcessDriver/PossibleDriver class split — a
// single shared equality here would silently merge distinct driver kinds.
type Driver interface {
	Scope() int
	Line() int
	Equal(other Driver) bool
	IsPossible() bool
}

type driverBase struct {
	scope int
	line  int
}

func (d driverBase) Scope() int { return d.scope }
func (d driverBase) Line() int  { return d.line }

// LineDriver treats two drivers as the same iff they share a source line:
// "one location = one driver".
type LineDriver struct{ driverBase }

func NewLineDriver(scope, line int) LineDriver { return LineDriver{driverBase{scope, line}} }
func (d LineDriver) Equal(other Driver) bool {
	o, ok := other.(LineDriver)
	return ok && o.line == d.line
}
func (LineDriver) IsPossible() bool { return false }

// ProcessDriver treats two drivers as the same iff they share an enclosing
// process (its start line is used as the scope key): "same containing
// process = one driver", regardless of how many assignments it contains.
type ProcessDriver struct{ driverBase }

func NewProcessDriver(scope, line int) ProcessDriver { return ProcessDriver{driverBase{scope, line}} }
func (d ProcessDriver) Equal(other Driver) bool {
	o, ok := other.(ProcessDriver)
	return ok && o.scope == d.scope
}
func (ProcessDriver) IsPossible() bool { return false }

// PossibleDriver behaves like LineDriver for equality (same line = same
// driver) but is always excluded when counting unique drivers for
// multiple-driver detection, e.g. the RHS target of a port map whose
// direction is not statically known.
type PossibleDriver struct{ driverBase }

func NewPossibleDriver(scope, line int) PossibleDriver {
	return PossibleDriver{driverBase{scope, line}}
}
func (d PossibleDriver) Equal(other Driver) bool {
	o, ok := other.(PossibleDriver)
	return ok && o.line == d.line
}
func (PossibleDriver) IsPossible() bool { return true }
