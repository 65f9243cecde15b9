package discovery

import (
	"path/filepath"
	"slices"
	"strings"

	"suitekit/internal/suite"
)

// Filter selects registered tests by name pattern and tags
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps tests whose name, display name or "suite::name" match
// pattern. Supports patterns like "parameterized*" or "*source*".
func (f *Filter) FilterByName(tests []*suite.Test, pattern string) []*suite.Test {
	if pattern == "" {
		return tests
	}

	var filtered []*suite.Test
	for _, test := range tests {
		candidates := []string{
			test.Name(),
			test.DisplayName(),
			test.Suite().Name() + "::" + test.Name(),
		}
		for _, name := range candidates {
			if matchName(pattern, name) {
				filtered = append(filtered, test)
				break
			}
		}
	}
	return filtered
}

// matchName reports whether name matches pattern using wildcard matching.
func matchName(pattern, name string) bool {
	// Try to match using filepath.Match (supports * and ? wildcards)
	matched, err := filepath.Match(pattern, name)
	if err == nil && matched {
		return true
	}

	// If pattern contains wildcards but filepath.Match didn't match,
	// try a more flexible substring match for patterns like "*source*"
	if strings.Contains(pattern, "*") {
		hasNonEmptyPart := false
		for _, part := range strings.Split(pattern, "*") {
			if part == "" {
				continue
			}
			hasNonEmptyPart = true
			if !strings.Contains(name, part) {
				return false
			}
		}
		return hasNonEmptyPart
	}

	// If no wildcards, do a simple contains check
	if !strings.Contains(pattern, "?") {
		return strings.Contains(name, pattern)
	}
	return false
}

// FilterByTags keeps tests carrying at least one include tag (when any are
// given) and none of the exclude tags.
func (f *Filter) FilterByTags(tests []*suite.Test, include, exclude []string) []*suite.Test {
	if len(include) == 0 && len(exclude) == 0 {
		return tests
	}

	var filtered []*suite.Test
	for _, test := range tests {
		tags := test.Tags()
		if len(include) > 0 && !containsAny(tags, include) {
			continue
		}
		if containsAny(tags, exclude) {
			continue
		}
		filtered = append(filtered, test)
	}
	return filtered
}

func containsAny(tags, wanted []string) bool {
	for _, w := range wanted {
		if slices.Contains(tags, w) {
			return true
		}
	}
	return false
}
