package framework

import (
	"fmt"
	"strings"
)

// Results is the outcome of a test run, including the tests that were deselected before
// the run started.
type Results struct {
	Tests      []TestResult
	Failures   []TestResult
	Deselected []TestID
}

type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Outcome returns "passed", "failed", or "skipped".
func (r TestResult) Outcome() string {
	switch {
	case r.Skipped:
		return "skipped"
	case len(r.Errors) != 0:
		return "failed"
	default:
		return "passed"
	}
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// Plus returns a new TestID with name appended. The receiver is not modified.
func (t TestID) Plus(name string) TestID {
	path := make([]string, 0, len(t.Path)+1)
	path = append(path, t.Path...)
	return TestID{Path: append(path, name)}
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}
