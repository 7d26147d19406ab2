// Package format implements the diag.Formatter variants named in spec §6:
// emacs (the default), vs7, eclipse, sed/gsed and junit. Each one renders a
// single diag.Diagnostic to an io.Writer in its own line shape; junit
// instead buffers everything until Flush, since JUnit's XML document can
// only be emitted once the whole run is known.
package format

import (
	"fmt"
	"io"

	"github.com/intrepidcs/vhdllint/internal/diag"
)

// Emacs renders "file:line:[col+1,endcol+1]: msg [cat] [conf]", the
// default format, to w (conventionally stderr).
type Emacs struct{ W io.Writer }

func (f Emacs) Format(d diag.Diagnostic) {
	fmt.Fprintf(f.W, "%s:%d:[%d,%d]: %s [%s] [%d]\n",
		d.File, d.Ref.Line, d.Ref.Start+1, d.Ref.End+1, d.Message, d.Category, d.Confidence)
}
func (f Emacs) Flush() {}

// VS7 renders "file(line): error vhdllint: [cat] msg [conf]", matching
// Visual Studio's error-list parser.
type VS7 struct{ W io.Writer }

func (f VS7) Format(d diag.Diagnostic) {
	fmt.Fprintf(f.W, "%s(%d): error vhdllint: [%s] %s [%d]\n", d.File, d.Ref.Line, d.Category, d.Message, d.Confidence)
}
func (f VS7) Flush() {}

// Eclipse renders "file:line: warning: msg [cat] [conf]", matching
// Eclipse's console problem-marker parser.
type Eclipse struct{ W io.Writer }

func (f Eclipse) Format(d diag.Diagnostic) {
	fmt.Fprintf(f.W, "%s:%d: warning: %s [%s] [%d]\n", d.File, d.Ref.Line, d.Message, d.Category, d.Confidence)
}
func (f Eclipse) Flush() {}

// Sed renders a ready-to-run "sed -i '<line><fixup>' <file> # <msg> [<cat>]
// [<conf>]" line to W (conventionally stdout) when Fixups has an entry for
// the diagnostic's exact message, or a "# <file>:<line>: <msg> [<cat>]
// [<conf>]" comment to Unfixed (conventionally stderr) otherwise. The gsed
// output uses the same type with Program set to "gsed", matching the
// reference tool's separate --output=sed/--output=gsed choices for BSD vs.
// GNU sed users.
type Sed struct {
	W       io.Writer
	Unfixed io.Writer
	Program string // "sed" or "gsed"
	Fixups  map[string]string
}

func (f Sed) Format(d diag.Diagnostic) {
	program := f.Program
	if program == "" {
		program = "sed"
	}
	if expr, ok := f.Fixups[d.Message]; ok {
		fmt.Fprintf(f.W, "%s -i '%d%s' %s # %s [%s] [%d]\n",
			program, d.Ref.Line, expr, d.File, d.Message, d.Category, d.Confidence)
		return
	}
	fmt.Fprintf(f.Unfixed, "# %s:%d: %s [%s] [%d]\n", d.File, d.Ref.Line, d.Message, d.Category, d.Confidence)
}
func (f Sed) Flush() {}
