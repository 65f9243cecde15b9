// Package demo registers the demonstration suite shipped with suitekit.
package demo

import (
	"strings"

	"suitekit/internal/domain"
	"suitekit/internal/source"
	"suitekit/internal/suite"
)

// SuiteName is the name the demonstration suite registers under.
const SuiteName = "demo"

const weekdays = `
	MONDAY,      'Monday'
	TUESDAY,     'Tuesday'
	WEDNESDAY,   'Wednesday'
	THURSDAY,    'Thursday'
	FRIDAY,      'Friday'
	SATURDAY,    'Saturday'
	SUNDAY,      'Sunday'
`

var palindromes = []string{"racecar", "radar", "able was I ere I saw elba"}

// Register adds the demonstration suite to r.
func Register(r *suite.Registry) error {
	s, err := New()
	if err != nil {
		return err
	}
	return r.Add(s)
}

// New builds the demonstration suite.
func New() (*suite.Suite, error) {
	s := suite.New(SuiteName).
		Tag(SuiteName).
		DisplayNames(suite.ReplaceUnderscores)

	s.BeforeAll(func() error { return nil })
	s.BeforeEach(func(t *suite.T) {
		info := t.Info()
		t.Publish("before each test")
		t.Publishf("Method %s DisplayName %s", info.TestID, info.DisplayName)
	})
	s.AfterEach(func(t *suite.T) {
		info := t.Info()
		t.Publish("after each test")
		t.Publishf("Method %s DisplayName %s", info.TestID, info.DisplayName)
	})
	s.AfterAll(func() error { return nil })

	if err := s.Producer("palindromes", func() ([]any, error) {
		out := make([]any, len(palindromes))
		for i, p := range palindromes {
			out[i] = p
		}
		return out, nil
	}); err != nil {
		return nil, err
	}
	if err := s.Producer("string_int_and_list", func() ([]any, error) {
		return []any{
			source.Arguments("apple", 1, []string{"a", "b"}),
			source.Arguments("lemon", 2, []string{"x", "y"}),
		}, nil
	}); err != nil {
		return nil, err
	}

	err := s.Add(
		suite.Definition{
			Name: "succeeding_test",
			Body: func(*suite.T) {},
		},
		suite.Definition{
			Name:        "failing_test",
			DisplayName: "This is a failing test",
			Body: func(t *suite.T) {
				t.Fail("a failing test")
			},
		},
		suite.Definition{
			Name: "skipped_test",
			Skip: "for demonstration purposes",
			Body: func(*suite.T) {},
		},
		suite.Definition{
			Name: "aborted_test",
			Body: func(t *suite.T) {
				t.Assume(strings.Contains("abc", "Z"), `"abc" does not contain "Z"`)
				t.Fail("test should have been aborted")
			},
		},
		suite.Definition{
			Name:        "repeating_test",
			DisplayName: "This is a repeating test",
			Repeat:      3,
			Body: func(t *suite.T) {
				info := t.Info()
				t.Publishf("Method %s DisplayName %s Repeat %d", info.TestID, info.DisplayName, info.Repetition)
			},
		},
		suite.Definition{
			// Unit, scenario, expected result.
			Name: "unit_scenario_expected",
			Body: func(*suite.T) {},
		},
		suite.Definition{
			Name:          "parameterized_test_value_source",
			Source:        source.Values(palindromes...),
			Parameterized: checkPalindrome,
		},
		suite.Definition{
			Name:          "parameterized_test_method_source",
			Source:        source.Factory{ProducerID: "palindromes"},
			Parameterized: checkPalindrome,
		},
		suite.Definition{
			Name:   "parameterized_test_method_source_arguments",
			Source: source.Factory{ProducerID: "string_int_and_list"},
			Parameterized: func(t *suite.T, args domain.Tuple) {
				str, num, list := args[0].(string), args[1].(int), args[2].([]string)
				t.Equal(5, len(str))
				t.True(num >= 1 && num <= 2, "num %d out of range", num)
				t.Len(list, 2)
			},
		},
		suite.Definition{
			Name:       "parameterized_test_csv_source",
			NameFormat: "[{index}] {0} {1}",
			Source:     source.Tabular{TextBlock: weekdays, Arity: 2},
			Parameterized: func(t *suite.T, args domain.Tuple) {
				day, err := ParseDay(args[0].(string))
				if err != nil {
					t.Fail(err.Error())
				}
				t.True(strings.EqualFold(day.String(), args[1].(string)), "%s does not match %v", day, args[1])
			},
		},
		suite.Definition{
			Name:   "parameterized_test_null_source",
			Source: source.NullSentinel{},
			Parameterized: func(t *suite.T, args domain.Tuple) {
				t.Nil(args[0])
			},
		},
		suite.Definition{
			Name:   "parameterized_test_empty_source",
			Source: source.EmptyOf[string](),
			Parameterized: func(t *suite.T, args domain.Tuple) {
				t.Equal("", args[0])
			},
		},
		suite.Definition{
			Name:   "parameterized_test_empty_list_source",
			Source: source.EmptyOf[[]string](),
			Parameterized: func(t *suite.T, args domain.Tuple) {
				t.NotNil(args[0])
				t.Equal([]string{}, args[0])
			},
		},
		suite.Definition{
			Name:   "day_of_week_members",
			Source: source.EnumOf("DayOfWeek", Days...),
			Parameterized: func(t *suite.T, args domain.Tuple) {
				day := args[0].(DayOfWeek)
				t.All(func(c *suite.Collector) {
					c.True(day.Valid(), "%d is not a declared day", int(day))
					parsed, err := ParseDay(day.String())
					c.Nil(err)
					c.Equal(day, parsed)
					c.Equal(Days[int(day)-1], day)
				})
			},
		},
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func checkPalindrome(t *suite.T, args domain.Tuple) {
	candidate := args[0].(string)
	t.Equal(reverse(candidate), candidate)
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}
