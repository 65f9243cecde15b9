package suite

import (
	"fmt"
	"strings"
)

// AssertionFailure is raised by a failed check. It always fails the test.
type AssertionFailure struct {
	Message string
}

func (e *AssertionFailure) Error() string { return e.Message }

// AssumptionNotMet is raised by an unmet precondition. It aborts the test
// without failing it.
type AssumptionNotMet struct {
	Message string
}

func (e *AssumptionNotMet) Error() string {
	if e.Message == "" {
		return "assumption not met"
	}
	return "assumption not met: " + e.Message
}

// MultipleFailures aggregates the failures collected by T.All.
type MultipleFailures struct {
	Heading  string
	Failures []error
}

func (e *MultipleFailures) Error() string {
	var b strings.Builder
	heading := e.Heading
	if heading == "" {
		heading = "multiple failures"
	}
	fmt.Fprintf(&b, "%s (%d failure", heading, len(e.Failures))
	if len(e.Failures) != 1 {
		b.WriteString("s")
	}
	b.WriteString(")")
	for _, f := range e.Failures {
		b.WriteString("\n\t")
		b.WriteString(f.Error())
	}
	return b.String()
}

func (e *MultipleFailures) Unwrap() []error { return e.Failures }
