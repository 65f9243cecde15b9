package domain

import (
	"sort"
	"time"
)

// Status is the outcome of a single invocation
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusAborted Status = "aborted"
	StatusSkipped Status = "skipped"
)

// ReportEntry is a free-text entry published by a running test
type ReportEntry struct {
	TestID      string    `json:"test_id"`
	DisplayName string    `json:"display_name"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
}

// TestResult represents the result of executing one invocation
type TestResult struct {
	Invocation Invocation
	Status     Status
	Message    string        // Failure, abort or skip reason
	Error      error         // Underlying error for failed and aborted invocations
	Duration   time.Duration // Time taken to execute
	Entries    []ReportEntry
	WorkerID   int
}

// TestRecord is the persisted form of a TestResult
type TestRecord struct {
	Seq         int      `json:"seq"`
	Suite       string   `json:"suite"`
	TestID      string   `json:"test_id"`
	DisplayName string   `json:"display_name"`
	Status      Status   `json:"status"`
	Message     string   `json:"message,omitempty"`
	DurationMS  float64  `json:"duration_ms"`
	Tags        []string `json:"tags,omitempty"`
	Entries     []string `json:"entries,omitempty"`
}

// TestResultsMeta contains metadata about a test run
type TestResultsMeta struct {
	RunID           string  `json:"run_id"`
	TotalTests      int     `json:"total_tests"`
	PassedTests     int     `json:"passed_tests"`
	FailedTests     int     `json:"failed_tests"`
	AbortedTests    int     `json:"aborted_tests"`
	SkippedTests    int     `json:"skipped_tests"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Workers         int     `json:"workers"`
	Timestamp       string  `json:"timestamp"`
}

// TestResultsOutput is the complete output structure for test results
type TestResultsOutput struct {
	Meta    TestResultsMeta `json:"meta"`
	Tests   []TestRecord    `json:"tests"`
	Details []TestFailure   `json:"details"`
}

// Summarize builds the persisted report for a finished run.
// Records are ordered by invocation sequence.
func Summarize(runID string, results []TestResult, duration time.Duration, workers int, now time.Time) *TestResultsOutput {
	sorted := make([]TestResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Invocation.Seq < sorted[j].Invocation.Seq
	})

	output := &TestResultsOutput{
		Meta: TestResultsMeta{
			RunID:           runID,
			TotalTests:      len(sorted),
			Duration:        duration.String(),
			DurationSeconds: duration.Seconds(),
			Workers:         workers,
			Timestamp:       now.Format(time.RFC3339),
		},
		Tests:   make([]TestRecord, 0, len(sorted)),
		Details: []TestFailure{},
	}

	for _, r := range sorted {
		switch r.Status {
		case StatusPassed:
			output.Meta.PassedTests++
		case StatusFailed:
			output.Meta.FailedTests++
			output.Details = append(output.Details, NewTestFailure(r))
		case StatusAborted:
			output.Meta.AbortedTests++
		case StatusSkipped:
			output.Meta.SkippedTests++
		}

		var entries []string
		for _, e := range r.Entries {
			entries = append(entries, e.Message)
		}
		output.Tests = append(output.Tests, TestRecord{
			Seq:         r.Invocation.Seq,
			Suite:       r.Invocation.SuiteName,
			TestID:      r.Invocation.TestID,
			DisplayName: r.Invocation.DisplayName,
			Status:      r.Status,
			Message:     r.Message,
			DurationMS:  float64(r.Duration.Microseconds()) / 1000,
			Tags:        r.Invocation.Tags,
			Entries:     entries,
		})
	}

	return output
}
