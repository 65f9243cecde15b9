package source

import (
	"strings"
	"unicode/utf8"

	"suitekit/internal/domain"
)

const quote = '\''

func tabular(s Tabular) Sequence {
	return func(yield func(domain.Tuple, error) bool) {
		delim := s.Delimiter
		if delim == 0 {
			delim = ','
		}
		nulls := make(map[string]bool, len(s.NullValues))
		for _, n := range s.NullValues {
			nulls[n] = true
		}

		arity := s.Arity
		row := 0
		for _, line := range tabularLines(s) {
			row++
			fields, err := splitRow(line, delim, nulls)
			if err != nil {
				yield(nil, &MalformedRowError{Row: row, Line: line, Reason: err.Error()})
				return
			}
			if arity == 0 {
				arity = len(fields)
			}
			if len(fields) != arity {
				yield(nil, &MalformedRowError{Row: row, Line: line, Want: arity, Got: len(fields)})
				return
			}
			if !yield(fields, nil) {
				return
			}
		}
	}
}

// tabularLines returns the data rows of s with blank and comment lines removed.
func tabularLines(s Tabular) []string {
	var lines []string
	add := func(line string) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			return
		}
		lines = append(lines, line)
	}
	for _, line := range strings.Split(s.TextBlock, "\n") {
		add(line)
	}
	for _, line := range s.Rows {
		add(line)
	}
	return lines
}

type rowError string

func (e rowError) Error() string { return string(e) }

// splitRow splits one row into fields. Unquoted fields are trimmed, and an
// empty unquoted field or one listed in nulls becomes an absent value.
// Quoted fields keep their content verbatim, with '' standing for one quote.
func splitRow(line string, delim rune, nulls map[string]bool) (domain.Tuple, error) {
	var fields domain.Tuple
	rest := line

	for {
		rest = strings.TrimLeft(rest, " \t")

		if strings.HasPrefix(rest, string(quote)) {
			value, remainder, err := readQuoted(rest[1:])
			if err != nil {
				return nil, err
			}
			fields = append(fields, value)

			remainder = strings.TrimLeft(remainder, " \t")
			if remainder == "" {
				return fields, nil
			}
			r, size := utf8.DecodeRuneInString(remainder)
			if r != delim {
				return nil, rowError("unexpected text after quoted field")
			}
			rest = remainder[size:]
			continue
		}

		idx := strings.IndexRune(rest, delim)
		raw := rest
		if idx >= 0 {
			raw = rest[:idx]
		}
		raw = strings.TrimSpace(raw)
		if strings.ContainsRune(raw, quote) {
			return nil, rowError("quote inside unquoted field")
		}
		if raw == "" || nulls[raw] {
			fields = append(fields, nil)
		} else {
			fields = append(fields, raw)
		}

		if idx < 0 {
			return fields, nil
		}
		rest = rest[idx+utf8.RuneLen(delim):]
	}
}

// readQuoted reads a quoted field body starting just past the opening quote.
func readQuoted(s string) (string, string, error) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != quote {
			b.WriteByte(s[i])
			continue
		}
		if i+1 < len(s) && s[i+1] == quote {
			b.WriteByte(quote)
			i++
			continue
		}
		return b.String(), s[i+1:], nil
	}
	return "", "", rowError("unterminated quoted field")
}
