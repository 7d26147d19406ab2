package rules

// Categories is the full, explicit list of diagnostic categories the
// linter can emit, used to validate --filter prefixes and NOLINT(category)
// directives. Grounded verbatim on _ERROR_CATEGORIES in the reference
// tool; keep new rules' categories added here.
var Categories = []string{
	"build/arithmetic",
	"build/deprecated",
	"build/filename",
	"build/include_alpha",
	"build/port_modes",
	"build/port_types",
	"build/shadow",
	"build/unused",
	"build/vhdl2008",
	"build/vhdl2008/sensitivity",
	"build/vhdl2008/outputs",
	"legal/copyright",
	"readability/booleans",
	"readability/capitalization",
	"readability/constants",
	"readability/declarations",
	"readability/components",
	"readability/fsm",
	"readability/header",
	"readability/identifiers",
	"readability/multiline_comment",
	"readability/naming",
	"readability/nolint",
	"readability/nul",
	"readability/others",
	"readability/portmaps",
	"readability/reserved",
	"readability/todo",
	"readability/units",
	"readability/utf8",
	"runtime/combinational_loop",
	"runtime/integers",
	"runtime/latches",
	"runtime/loops",
	"runtime/multiple_drivers",
	"runtime/rising_edge",
	"runtime/sensitivity",
	"runtime/variables",
	"whitespace/blank_line",
	"whitespace/comments",
	"whitespace/end_of_line",
	"whitespace/ending_newline",
	"whitespace/indent",
	"whitespace/line_length",
	"whitespace/newline",
	"whitespace/tab",
	"whitespace/todo",
}

// DefaultFilters is prepended to every run's filter list before any
// --filter/VHDLLINT.cfg entries are applied.
var DefaultFilters = []string{"-build/include_alpha"}

// Reserved holds every VHDL reserved word and standard-library type name
// the reserved-word-casing rule checks against.
var Reserved = map[string]bool{
	"abs": true, "access": true, "after": true, "alias": true, "all": true,
	"and": true, "architecture": true, "array": true, "assert": true,
	"attribute": true, "begin": true, "block": true, "body": true,
	"buffer": true, "bus": true, "case": true, "component": true,
	"configuration": true, "constant": true, "disconnect": true, "downto": true,
	"else": true, "elsif": true, "end": true, "entity": true, "exit": true,
	"file": true, "for": true, "function": true, "generate": true,
	"generic": true, "group": true, "guarded": true, "if": true,
	"impure": true, "in": true, "inertial": true, "inout": true, "is": true,
	"label": true, "library": true, "linkage": true, "literal": true,
	"loop": true, "map": true, "mod": true, "nand": true, "new": true,
	"next": true, "nor": true, "not": true, "null": true, "of": true,
	"on": true, "open": true, "or": true, "others": true, "out": true,
	"package": true, "port": true, "postponed": true, "procedure": true,
	"process": true, "pure": true, "range": true, "record": true,
	"register": true, "reject": true, "rem": true, "report": true,
	"return": true, "rol": true, "ror": true, "select": true, "severity": true,
	"signal": true, "shared": true, "sla": true, "sll": true, "sra": true,
	"srl": true, "subtype": true, "then": true, "to": true, "transport": true,
	"type": true, "unaffected": true, "units": true, "until": true,
	"use": true, "variable": true, "wait": true, "when": true, "while": true,
	"with": true, "xnor": true, "xor": true,
	// types from standard
	"bit": true, "bit_vector": true, "integer": true, "natural": true,
	"positive": true, "boolean": true, "string": true, "character": true,
	"real": true, "time": true, "delay_length": true,
	// types from std_logic_1164
	"std_ulogic": true, "std_ulogic_vector": true, "std_logic": true,
	"std_logic_vector": true,
	// types from numeric_std
	"signed": true, "unsigned": true,
	// types from text_io
	"line": true, "text": true, "side": true, "width": true,
}

// DeprecatedPackages lists std_logic_* packages superseded by numeric_std.
var DeprecatedPackages = []string{
	"std_logic_arith",
	"std_logic_signed",
	"std_logic_unsigned",
}

// DeprecatedPackageSet is DeprecatedPackages as a lookup set.
var DeprecatedPackageSet = map[string]bool{
	"std_logic_arith":    true,
	"std_logic_signed":   true,
	"std_logic_unsigned": true,
}

// IgnoredComponents are third-party IP blocks exempted from the
// "prefer direct instantiation" component rule.
var IgnoredComponents = map[string]bool{
	"axis_register_slice_v1_1_15_axis_register_slice": true,
	"axis_dwidth_converter_v1_1_14_axis_dwidth_converter": true,
	"axis_clock_converter_v1_1_20_axis_clock_converter": true,
	"iobuf": true,
}

// SedFixups maps a diagnostic message to the sed expression that would fix
// it, consulted by the sed/gsed formatters. Messages without an entry are
// reported as a comment instead of an executable fixup. Only messages with
// no variable interpolation qualify: a fixup keyed by a message containing
// an identifier or line fragment would never match twice.
var SedFixups = map[string]string{
	"Tab found; better to use spaces":                               `s/\t/  /g`,
	"Line ends in whitespace. Consider deleting these extra spaces.": `s/[ \t]*$//`,
	"Should have a space between -- and comment":                     `s/--\([^ -]\)/-- \1/`,
	"Unexpected \\r (^M) found; better to use only \\n":              `s/\r$//`,
	"Too many spaces before TODO":                                    `s/^--  *TODO/-- TODO/`,
}
