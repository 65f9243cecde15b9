package domain

// TestFailure represents a failed invocation
type TestFailure struct {
	Seq         int    `json:"seq"`
	Suite       string `json:"suite"`
	TestName    string `json:"test_name"`
	DisplayName string `json:"display_name"`
	Arguments   string `json:"arguments,omitempty"`
	Message     string `json:"message"`
	Resolved    bool   `json:"resolved,omitempty"` // Track if the failure is marked as resolved
}

// NewTestFailure converts a failed result into its persisted form.
func NewTestFailure(r TestResult) TestFailure {
	f := TestFailure{
		Seq:         r.Invocation.Seq,
		Suite:       r.Invocation.SuiteName,
		TestName:    r.Invocation.TestID,
		DisplayName: r.Invocation.DisplayName,
		Message:     r.Message,
	}
	if len(r.Invocation.Args) > 0 {
		f.Arguments = r.Invocation.Args.String()
	}
	return f
}
