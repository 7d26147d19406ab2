package exprmatch

// BufferSource adapts any struct with Elided/Lines slices (e.g.
// cleanse.Buffer) to the Source interface without introducing an import
// cycle between cleanse and exprmatch.
type BufferSource struct {
	ElidedLines []string
	PlainLines  []string
}

func (s BufferSource) Elided(line int) string { return s.ElidedLines[line] }
func (s BufferSource) Lines(line int) string  { return s.PlainLines[line] }
func (s BufferSource) NumLines() int          { return len(s.ElidedLines) - 1 }
