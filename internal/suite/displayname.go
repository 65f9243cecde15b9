package suite

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"suitekit/internal/domain"
)

// DisplayNameGenerator derives a display name from a test name.
type DisplayNameGenerator func(name string) string

var (
	// Standard renders the test name as a call, e.g. "succeeding_test()".
	Standard DisplayNameGenerator = func(name string) string {
		return name + "()"
	}

	// Simple renders the test name unchanged.
	Simple DisplayNameGenerator = func(name string) string {
		return name
	}

	// ReplaceUnderscores turns "unit_scenario_expected" into "unit scenario expected".
	ReplaceUnderscores DisplayNameGenerator = func(name string) string {
		return strings.TrimSpace(strings.ReplaceAll(name, "_", " "))
	}

	// TitleCase turns "unit_scenario_expected" into "Unit Scenario Expected".
	TitleCase DisplayNameGenerator = func(name string) string {
		return cases.Title(language.English).String(ReplaceUnderscores(name))
	}
)

// GeneratorByName resolves a generator from its configuration name.
func GeneratorByName(name string) (DisplayNameGenerator, bool) {
	switch strings.ToLower(name) {
	case "standard", "":
		return Standard, true
	case "simple":
		return Simple, true
	case "replace-underscores", "replace_underscores":
		return ReplaceUnderscores, true
	case "title", "title-case":
		return TitleCase, true
	}
	return nil, false
}

const (
	// DefaultParameterizedName is the invocation name pattern for parameterized tests.
	DefaultParameterizedName = "[{index}] {arguments}"
	// DefaultRepeatedName is the invocation name pattern for repeated tests.
	DefaultRepeatedName = "repetition {currentRepetition} of {totalRepetitions}"
)

func formatParameterizedName(pattern, displayName string, index int, args domain.Tuple) string {
	if pattern == "" {
		pattern = DefaultParameterizedName
	}
	pairs := []string{
		"{displayName}", displayName,
		"{index}", strconv.Itoa(index),
		"{arguments}", args.String(),
	}
	for i, v := range args {
		pairs = append(pairs, "{"+strconv.Itoa(i)+"}", domain.FormatArg(v))
	}
	return strings.NewReplacer(pairs...).Replace(pattern)
}

func formatRepeatedName(pattern, displayName string, current, total int) string {
	if pattern == "" {
		pattern = DefaultRepeatedName
	}
	return strings.NewReplacer(
		"{displayName}", displayName,
		"{currentRepetition}", strconv.Itoa(current),
		"{totalRepetitions}", strconv.Itoa(total),
	).Replace(pattern)
}
