package format

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/intrepidcs/vhdllint/internal/diag"
)

// junitFailure is one diagnostic rendered as a JUnit <failure>.
type junitFailure struct {
	XMLName xml.Name `xml:"failure"`
	Message string   `xml:"message,attr"`
	Body    string   `xml:",chardata"`
}

// junitTestCase groups every diagnostic for one file (or, for the
// synthetic "errors" case, every tool failure) under one <testcase>.
type junitTestCase struct {
	XMLName  xml.Name       `xml:"testcase"`
	Name     string         `xml:"name,attr"`
	Failures []junitFailure `xml:"failure"`
}

type junitTestSuite struct {
	XMLName   xml.Name        `xml:"testsuite"`
	Name      string          `xml:"name,attr"`
	Tests     int             `xml:"tests,attr"`
	Failures  int             `xml:"failures,attr"`
	TestCases []junitTestCase `xml:"testcase"`
}

// JUnit buffers every diagnostic across the whole run and emits one XML
// document to W on Flush, one <testcase> per file plus a synthetic
// name="errors" case for tool failures (added via AddToolError), matching
// spec §6's junit format description.
type JUnit struct {
	W io.Writer

	cases map[string]*junitTestCase
	order []string
}

// NewJUnit constructs an empty JUnit formatter ready to accumulate
// diagnostics for the run.
func NewJUnit(w io.Writer) *JUnit {
	return &JUnit{W: w, cases: map[string]*junitTestCase{}}
}

func (f *JUnit) caseFor(name string) *junitTestCase {
	if tc, ok := f.cases[name]; ok {
		return tc
	}
	tc := &junitTestCase{Name: name}
	f.cases[name] = tc
	f.order = append(f.order, name)
	return tc
}

func (f *JUnit) Format(d diag.Diagnostic) {
	tc := f.caseFor(d.File)
	tc.Failures = append(tc.Failures, junitFailure{
		Message: fmt.Sprintf("%s [%s] [%d]", d.Message, d.Category, d.Confidence),
		Body:    fmt.Sprintf("%s:%d:[%d,%d]: %s [%s] [%d]", d.File, d.Ref.Line, d.Ref.Start+1, d.Ref.End+1, d.Message, d.Category, d.Confidence),
	})
}

// AddToolError records a tool failure (unrelated to any one diagnostic)
// under the synthetic "errors" testcase.
func (f *JUnit) AddToolError(message string) {
	tc := f.caseFor("errors")
	tc.Failures = append(tc.Failures, junitFailure{Message: message, Body: message})
}

func (f *JUnit) Flush() {
	suite := junitTestSuite{Name: "vhdllint"}
	for _, name := range f.order {
		tc := f.cases[name]
		suite.Tests++
		suite.Failures += len(tc.Failures)
		suite.TestCases = append(suite.TestCases, *tc)
	}
	io.WriteString(f.W, `<?xml version="1.0" encoding="UTF-8" ?>`+"\n")
	enc := xml.NewEncoder(f.W)
	enc.Indent("", "  ")
	enc.Encode(suite)
	io.WriteString(f.W, "\n")
}
