package domain

import (
	"fmt"
	"strings"
)

// Tuple is one ordered set of arguments for a single invocation of a
// parameterized test body. A nil element is an absent value.
type Tuple []any

// Arity returns the number of positional values in the tuple.
func (t Tuple) Arity() int {
	return len(t)
}

// String renders the tuple the way invocation display names show arguments.
func (t Tuple) String() string {
	parts := make([]string, len(t))
	for i, v := range t {
		parts[i] = FormatArg(v)
	}
	return strings.Join(parts, ", ")
}

// FormatArg renders a single argument value for display.
func FormatArg(v any) string {
	switch val := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// Invocation is one scheduled execution of a registered test body
type Invocation struct {
	Seq              int      `json:"seq"`
	SuiteName        string   `json:"suite"`
	TestID           string   `json:"test_id"`
	TestDisplayName  string   `json:"test_display_name"`
	DisplayName      string   `json:"display_name"`
	Index            int      `json:"index,omitempty"`      // 1-based argument index for parameterized tests
	Repetition       int      `json:"repetition,omitempty"` // 1-based repetition for repeated tests
	TotalRepetitions int      `json:"total_repetitions,omitempty"`
	Tags             []string `json:"tags,omitempty"`
	Args             Tuple    `json:"-"`
}

// QualifiedName returns suite and test ID joined the way results are keyed.
func (i Invocation) QualifiedName() string {
	return i.SuiteName + "::" + i.TestID
}
