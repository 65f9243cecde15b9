package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTuple_String(t *testing.T) {
	tests := []struct {
		name     string
		tuple    Tuple
		expected string
	}{
		{name: "empty", tuple: Tuple{}, expected: ""},
		{name: "single string", tuple: Tuple{"radar"}, expected: "radar"},
		{name: "absent value", tuple: Tuple{nil}, expected: "<nil>"},
		{name: "mixed", tuple: Tuple{"apple", 1, []string{"a", "b"}}, expected: "apple, 1, [a b]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.tuple.String())
			assert.Equal(t, len(tt.tuple), tt.tuple.Arity())
		})
	}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	results := []TestResult{
		{Invocation: Invocation{Seq: 3, SuiteName: "demo", TestID: "c", DisplayName: "c"}, Status: StatusSkipped, Message: "later"},
		{Invocation: Invocation{Seq: 1, SuiteName: "demo", TestID: "a", DisplayName: "a"}, Status: StatusPassed},
		{
			Invocation: Invocation{Seq: 2, SuiteName: "demo", TestID: "b", DisplayName: "[1] x", Args: Tuple{"x"}},
			Status:     StatusFailed,
			Message:    "boom",
			Error:      errors.New("boom"),
			Entries:    []ReportEntry{{Message: "hello"}},
		},
		{Invocation: Invocation{Seq: 4, SuiteName: "demo", TestID: "d", DisplayName: "d"}, Status: StatusAborted},
	}

	output := Summarize("run-1", results, 1500*time.Millisecond, 2, now)
	require.NotNil(t, output)

	assert.Equal(t, "run-1", output.Meta.RunID)
	assert.Equal(t, 4, output.Meta.TotalTests)
	assert.Equal(t, 1, output.Meta.PassedTests)
	assert.Equal(t, 1, output.Meta.FailedTests)
	assert.Equal(t, 1, output.Meta.AbortedTests)
	assert.Equal(t, 1, output.Meta.SkippedTests)
	assert.Equal(t, 1.5, output.Meta.DurationSeconds)
	assert.Equal(t, "2026-10-15T12:00:00Z", output.Meta.Timestamp)

	require.Len(t, output.Tests, 4)
	for i, rec := range output.Tests {
		assert.Equal(t, i+1, rec.Seq, "records are ordered by sequence")
	}
	assert.Equal(t, []string{"hello"}, output.Tests[1].Entries)

	require.Len(t, output.Details, 1)
	assert.Equal(t, "b", output.Details[0].TestName)
	assert.Equal(t, "x", output.Details[0].Arguments)
	assert.Equal(t, "boom", output.Details[0].Message)
}
