package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"

	"suitekit/internal/config"
	"suitekit/internal/domain"
	"suitekit/internal/suite"
)

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	gray   = color.New(color.FgHiBlack)
	white  = color.New(color.FgWhite)
)

// statusMarks maps each status to its console marker
var statusMarks = map[domain.Status]string{
	domain.StatusPassed:  "✓",
	domain.StatusFailed:  "✗",
	domain.StatusSkipped: "↷",
	domain.StatusAborted: "⊘",
}

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	out    io.Writer
}

// NewFormatter creates a new Formatter writing to out
func NewFormatter(cfg *config.Config, out io.Writer) *Formatter {
	return &Formatter{
		config: cfg,
		out:    out,
	}
}

func statusColor(status domain.Status) *color.Color {
	switch status {
	case domain.StatusPassed:
		return green
	case domain.StatusFailed:
		return red
	case domain.StatusAborted:
		return yellow
	default:
		return gray
	}
}

// PrintResults prints one line per invocation, grouped by suite. In verbose
// mode report entries and durations are included.
func (f *Formatter) PrintResults(results []domain.TestResult) {
	verbose := f.config != nil && f.config.Flags.Verbose
	currentSuite := ""
	for _, r := range results {
		inv := r.Invocation
		if inv.SuiteName != currentSuite {
			currentSuite = inv.SuiteName
			cyan.Fprintf(f.out, "%s\n", currentSuite)
		}

		name := inv.DisplayName
		if inv.TestDisplayName != "" && inv.TestDisplayName != inv.DisplayName {
			name = inv.TestDisplayName + " " + inv.DisplayName
		}
		line := fmt.Sprintf("  %s %s", statusMarks[r.Status], name)
		if verbose {
			line += gray.Sprintf(" (%s)", r.Duration.Round(time.Microsecond))
		}
		statusColor(r.Status).Fprintf(f.out, "%s\n", line)

		if r.Message != "" && r.Status != domain.StatusPassed {
			for _, msgLine := range strings.Split(r.Message, "\n") {
				fmt.Fprintf(f.out, "      %s\n", msgLine)
			}
		}
		if verbose {
			for _, e := range r.Entries {
				gray.Fprintf(f.out, "      > %s\n", e.Message)
			}
		}
	}
}

// PrintMetaStats displays the statistics table of a run, followed by a
// tree of failures when there are any.
func (f *Formatter) PrintMetaStats(output *domain.TestResultsOutput) {
	meta := output.Meta
	w := f.out

	fmt.Fprint(w, "\n")
	cyan.Fprintln(w, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(w, "║                    Test Execution Statistics                  ║")
	cyan.Fprintln(w, "╚═══════════════════════════════════════════════════════════════╝")

	rows := []struct {
		label string
		value string
		c     *color.Color
	}{
		{"Run ID", meta.RunID, white},
		{"Total Invocations", fmt.Sprint(meta.TotalTests), white},
		{"Passed", fmt.Sprint(meta.PassedTests), green},
		{"Failed", fmt.Sprint(meta.FailedTests), red},
		{"Aborted", fmt.Sprint(meta.AbortedTests), yellow},
		{"Skipped", fmt.Sprint(meta.SkippedTests), gray},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), white},
		{"Workers", fmt.Sprint(meta.Workers), white},
		{"Timestamp", meta.Timestamp, white},
	}

	fmt.Fprintln(w, "┌─────────────────────────────────┬──────────────────────────────────────┐")
	for i, row := range rows {
		fmt.Fprintf(w, "│ %-31s │ ", row.label)
		row.c.Fprintf(w, "%-36s", row.value)
		fmt.Fprintln(w, " │")
		if i < len(rows)-1 {
			fmt.Fprintln(w, "├─────────────────────────────────┼──────────────────────────────────────┤")
		}
	}
	fmt.Fprintln(w, "└─────────────────────────────────┴──────────────────────────────────────┘")

	fmt.Fprintln(w)
	if meta.FailedTests == 0 {
		green.Fprintln(w, "✓ All tests passed!")
		return
	}
	red.Fprintf(w, "✗ %d invocation(s) failed\n", meta.FailedTests)
	fmt.Fprintln(w)
	f.printFailedTestsTree(output.Details)
}

// printFailedTestsTree prints failures grouped as suite > test > invocation
func (f *Formatter) printFailedTestsTree(failures []domain.TestFailure) {
	if len(failures) == 0 {
		return
	}

	bySuite := make(map[string]map[string][]domain.TestFailure)
	for _, failure := range failures {
		if bySuite[failure.Suite] == nil {
			bySuite[failure.Suite] = make(map[string][]domain.TestFailure)
		}
		bySuite[failure.Suite][failure.TestName] = append(bySuite[failure.Suite][failure.TestName], failure)
	}

	suites := sortedKeys(bySuite)
	for i, suiteName := range suites {
		lastSuite := i == len(suites)-1
		cyan.Fprintf(f.out, "%s%s\n", branch(lastSuite), suiteName)
		suitePrefix := indent(lastSuite)

		tests := sortedKeys(bySuite[suiteName])
		for j, testName := range tests {
			lastTest := j == len(tests)-1
			yellow.Fprintf(f.out, "%s%s%s\n", suitePrefix, branch(lastTest), testName)
			testPrefix := suitePrefix + indent(lastTest)

			invs := bySuite[suiteName][testName]
			for k, failure := range invs {
				lastInv := k == len(invs)-1
				label := failure.DisplayName
				if failure.Message != "" {
					label += ": " + strings.SplitN(failure.Message, "\n", 2)[0]
				}
				red.Fprintf(f.out, "%s%s%s\n", testPrefix, branch(lastInv), label)
			}
		}
	}
}

// PrintPlan lists the selected tests by suite, optionally with their
// invocations. Tests listed in failed ("suite::test") are marked with [F].
func (f *Formatter) PrintPlan(plan *suite.Plan, showInvocations bool, failed map[string]struct{}) {
	tests := 0
	for _, sp := range plan.Suites {
		tests += countTests(sp)
	}
	green.Fprintf(f.out, "Found %d test(s) with %d invocation(s):\n", tests, plan.Len())

	for i, sp := range plan.Suites {
		lastSuite := i == len(plan.Suites)-1
		cyan.Fprintf(f.out, "%s%s\n", branch(lastSuite), sp.Suite.Name())
		suitePrefix := indent(lastSuite)

		groups := groupByTest(sp.Invocations)
		for j, group := range groups {
			lastTest := j == len(groups)-1
			test := group[0].Test()

			marker := ""
			if _, ok := failed[sp.Suite.Name()+"::"+test.Name()]; ok {
				marker = " " + red.Sprint("[F]")
			}
			tags := ""
			if t := test.Tags(); len(t) > 0 {
				tags = " " + gray.Sprintf("[%s]", strings.Join(t, ", "))
			}
			fmt.Fprintf(f.out, "%s%s%s%s%s\n", suitePrefix, branch(lastTest), yellow.Sprint(test.DisplayName()), tags, marker)

			if !showInvocations {
				continue
			}
			testPrefix := suitePrefix + indent(lastTest)
			for k, inv := range group {
				label := inv.Record.DisplayName
				switch {
				case inv.Err() != nil:
					label = red.Sprintf("%s (error: %v)", label, inv.Err())
				default:
					if reason, skipped := test.SkipReason(); skipped {
						label = gray.Sprintf("%s (skipped: %s)", label, reason)
					}
				}
				fmt.Fprintf(f.out, "%s%s%s\n", testPrefix, branch(k == len(group)-1), label)
			}
		}
	}
}

// PrintHistory prints recorded runs, newest first.
func (f *Formatter) PrintHistory(runs []domain.TestResultsMeta) {
	if len(runs) == 0 {
		yellow.Fprintln(f.out, "No recorded runs")
		return
	}
	fmt.Fprintf(f.out, "%-36s  %-25s  %6s  %6s  %6s  %7s  %7s  %9s\n",
		"RUN", "STARTED", "TOTAL", "PASSED", "FAILED", "ABORTED", "SKIPPED", "DURATION")
	for _, m := range runs {
		c := green
		if m.FailedTests > 0 {
			c = red
		}
		c.Fprintf(f.out, "%-36s  %-25s  %6d  %6d  %6d  %7d  %7d  %8.2fs\n",
			m.RunID, m.Timestamp, m.TotalTests, m.PassedTests, m.FailedTests, m.AbortedTests, m.SkippedTests, m.DurationSeconds)
	}
}

func branch(last bool) string {
	if last {
		return "└── "
	}
	return "├── "
}

func indent(last bool) string {
	if last {
		return "    "
	}
	return "│   "
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// groupByTest splits a suite's invocations into runs of the same test.
func groupByTest(invs []*suite.Invocation) [][]*suite.Invocation {
	var groups [][]*suite.Invocation
	for _, inv := range invs {
		n := len(groups)
		if n > 0 && groups[n-1][0].Test() == inv.Test() {
			groups[n-1] = append(groups[n-1], inv)
			continue
		}
		groups = append(groups, []*suite.Invocation{inv})
	}
	return groups
}

func countTests(sp *suite.SuitePlan) int {
	return len(groupByTest(sp.Invocations))
}
