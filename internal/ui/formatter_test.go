package ui

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suitekit/internal/config"
	"suitekit/internal/domain"
	"suitekit/internal/source"
	"suitekit/internal/suite"
)

func init() {
	color.NoColor = true
}

func samplePlan(t *testing.T) *suite.Plan {
	t.Helper()
	s := suite.New("demo").DisplayNames(suite.ReplaceUnderscores)
	require.NoError(t, s.Add(
		suite.Definition{Name: "succeeding_test", Body: func(*suite.T) {}},
		suite.Definition{Name: "skipped_test", Skip: "for demonstration purposes", Body: func(*suite.T) {}},
		suite.Definition{
			Name:          "palindromes",
			Tags:          []string{"fast"},
			Source:        source.Values("racecar", "radar"),
			Parameterized: func(*suite.T, domain.Tuple) {},
		},
		suite.Definition{
			Name:          "missing_producer",
			Source:        source.Factory{ProducerID: "nope"},
			Parameterized: func(*suite.T, domain.Tuple) {},
		},
	))
	return suite.BuildPlan(s.Tests())
}

func TestFormatter_PrintPlan(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(config.New(), &buf)

	f.PrintPlan(samplePlan(t), false, map[string]struct{}{"demo::palindromes": {}})

	expected := "Found 4 test(s) with 5 invocation(s):\n" +
		"└── demo\n" +
		"    ├── succeeding test\n" +
		"    ├── skipped test\n" +
		"    ├── palindromes [fast] [F]\n" +
		"    └── missing producer\n"
	assert.Equal(t, expected, buf.String())
}

func TestFormatter_PrintPlanWithInvocations(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(config.New(), &buf)

	f.PrintPlan(samplePlan(t), true, nil)

	out := buf.String()
	assert.Contains(t, out, "    │   └── skipped test (skipped: for demonstration purposes)\n")
	assert.Contains(t, out, "    │   ├── [1] racecar\n")
	assert.Contains(t, out, "    │   └── [2] radar\n")
	assert.Contains(t, out, "        └── missing producer (error: ")
	assert.Contains(t, out, "no producer registered")
}

func TestFormatter_PrintResults(t *testing.T) {
	results := []domain.TestResult{
		{Invocation: domain.Invocation{SuiteName: "demo", TestDisplayName: "succeeding test", DisplayName: "succeeding test"}, Status: domain.StatusPassed},
		{
			Invocation: domain.Invocation{SuiteName: "demo", TestDisplayName: "failing test", DisplayName: "failing test"},
			Status:     domain.StatusFailed,
			Message:    "This is a failing test",
			Entries:    []domain.ReportEntry{{Message: "before each"}},
		},
		{Invocation: domain.Invocation{SuiteName: "demo", TestDisplayName: "repeating test", DisplayName: "repetition 1 of 3"}, Status: domain.StatusPassed},
		{Invocation: domain.Invocation{SuiteName: "demo", TestDisplayName: "aborted test", DisplayName: "aborted test"}, Status: domain.StatusAborted, Message: "assumption not met"},
	}

	t.Run("compact", func(t *testing.T) {
		var buf bytes.Buffer
		NewFormatter(config.New(), &buf).PrintResults(results)

		expected := "demo\n" +
			"  ✓ succeeding test\n" +
			"  ✗ failing test\n" +
			"      This is a failing test\n" +
			"  ✓ repeating test repetition 1 of 3\n" +
			"  ⊘ aborted test\n" +
			"      assumption not met\n"
		assert.Equal(t, expected, buf.String())
	})

	t.Run("verbose shows entries", func(t *testing.T) {
		cfg := config.New()
		cfg.Flags.Verbose = true
		var buf bytes.Buffer
		NewFormatter(cfg, &buf).PrintResults(results)
		assert.Contains(t, buf.String(), "      > before each\n")
	})
}

func TestFormatter_PrintMetaStats(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	t.Run("all passed", func(t *testing.T) {
		var buf bytes.Buffer
		output := domain.Summarize("run-1", []domain.TestResult{
			{Invocation: domain.Invocation{Seq: 1, SuiteName: "demo", TestID: "a"}, Status: domain.StatusPassed},
		}, time.Second, 4, now)

		NewFormatter(config.New(), &buf).PrintMetaStats(output)
		assert.Contains(t, buf.String(), "│ Passed                          │ 1")
		assert.Contains(t, buf.String(), "✓ All tests passed!")
	})

	t.Run("failure tree", func(t *testing.T) {
		var buf bytes.Buffer
		output := domain.Summarize("run-2", []domain.TestResult{
			{Invocation: domain.Invocation{Seq: 1, SuiteName: "demo", TestID: "failing_test", DisplayName: "failing test"}, Status: domain.StatusFailed, Message: "This is a failing test"},
			{Invocation: domain.Invocation{Seq: 2, SuiteName: "demo", TestID: "palindromes", DisplayName: "[1] apple"}, Status: domain.StatusFailed, Message: "expected true"},
			{Invocation: domain.Invocation{Seq: 3, SuiteName: "demo", TestID: "palindromes", DisplayName: "[2] banana"}, Status: domain.StatusFailed, Message: "expected true\nmore"},
		}, time.Second, 1, now)

		NewFormatter(config.New(), &buf).PrintMetaStats(output)

		assert.Contains(t, buf.String(), "✗ 3 invocation(s) failed\n\n"+
			"└── demo\n"+
			"    ├── failing_test\n"+
			"    │   └── failing test: This is a failing test\n"+
			"    └── palindromes\n"+
			"        ├── [1] apple: expected true\n"+
			"        └── [2] banana: expected true\n")
	})
}

func TestFormatter_PrintHistory(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(config.New(), &buf)

	f.PrintHistory(nil)
	assert.Equal(t, "No recorded runs\n", buf.String())

	buf.Reset()
	f.PrintHistory([]domain.TestResultsMeta{{RunID: "run-b", TotalTests: 3, FailedTests: 1}, {RunID: "run-a", TotalTests: 3}})
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.True(t, bytes.HasPrefix(lines[1], []byte("run-b")))
	assert.True(t, bytes.HasPrefix(lines[2], []byte("run-a")))
}

type memoryStorage struct {
	saved *domain.TestResultsOutput
	err   error
}

func (m *memoryStorage) SaveOutput(output *domain.TestResultsOutput) error {
	if m.err != nil {
		return m.err
	}
	m.saved = output
	return nil
}

func (m *memoryStorage) Load() (*domain.TestResultsOutput, error) { return m.saved, m.err }

func TestFailureList_Toggle(t *testing.T) {
	results := &domain.TestResultsOutput{Details: []domain.TestFailure{
		{Seq: 2, Suite: "demo", TestName: "failing_test", DisplayName: "failing test", Message: "This is a failing test"},
		{Seq: 5, Suite: "demo", TestName: "palindromes", DisplayName: "[2] apple", Arguments: "apple"},
	}}
	store := &memoryStorage{}
	list := &failureList{results: results, store: store}

	assert.Equal(t, 2, list.unresolved())
	require.NoError(t, list.toggle(1))
	assert.True(t, results.Details[1].Resolved)
	assert.Same(t, results, store.saved)
	assert.Equal(t, 1, list.unresolved())
	assert.Equal(t, "[gray]✓ [yellow]2.[gray] palindromes [2[] apple[white]", list.itemText(1))
	assert.Contains(t, list.header(), "(2 total, 1 unresolved)")

	require.NoError(t, list.toggle(1))
	assert.False(t, results.Details[1].Resolved)
	require.NoError(t, list.toggle(7))

	store.err = errors.New("disk full")
	err := list.toggle(0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestFormatFailureDetails(t *testing.T) {
	failure := domain.TestFailure{Seq: 4, Suite: "demo", TestName: "palindromes", DisplayName: "[1] apple", Arguments: "apple", Message: "expected true"}

	details := formatFailureDetails(failure)
	assert.Contains(t, details, "[red]✗ Test: palindromes[white]")
	assert.Contains(t, details, "[yellow]Arguments: apple[white]")
	assert.Contains(t, details, "expected true")

	stats := formatFailureStats(failure, 1)
	assert.Equal(t, "[cyan]test:[white] [yellow]demo[white]::[yellow]palindromes[white] #4 ([red]open[white])\n", stats)
}
