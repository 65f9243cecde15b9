package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suitekit/internal/domain"
)

const daysBlock = `
    MONDAY,      'Monday'
    TUESDAY,     'Tuesday'
`

func TestResolve_Tabular(t *testing.T) {
	r := NewResolver(nil)

	tests := []struct {
		name     string
		source   Tabular
		expected []domain.Tuple
	}{
		{
			name:     "text block rows in order",
			source:   Tabular{TextBlock: daysBlock},
			expected: []domain.Tuple{{"MONDAY", "Monday"}, {"TUESDAY", "Tuesday"}},
		},
		{
			name:     "rows follow the text block",
			source:   Tabular{TextBlock: "a, 1", Rows: []string{"b, 2"}},
			expected: []domain.Tuple{{"a", "1"}, {"b", "2"}},
		},
		{
			name:     "quoted field keeps embedded delimiter",
			source:   Tabular{Rows: []string{"'Hello, world', 1"}},
			expected: []domain.Tuple{{"Hello, world", "1"}},
		},
		{
			name:     "doubled quote inside quotes",
			source:   Tabular{Rows: []string{"'it''s', x"}},
			expected: []domain.Tuple{{"it's", "x"}},
		},
		{
			name:     "quoted whitespace is preserved",
			source:   Tabular{Rows: []string{"'  padded  ', x"}},
			expected: []domain.Tuple{{"  padded  ", "x"}},
		},
		{
			name:     "empty quoted field is empty text",
			source:   Tabular{Rows: []string{"'', x"}},
			expected: []domain.Tuple{{"", "x"}},
		},
		{
			name:     "empty unquoted field is absent",
			source:   Tabular{Rows: []string{"a, , c", "d,e,"}},
			expected: []domain.Tuple{{"a", nil, "c"}, {"d", "e", nil}},
		},
		{
			name:     "null values",
			source:   Tabular{Rows: []string{"N/A, x", "'N/A', y"}, NullValues: []string{"N/A"}},
			expected: []domain.Tuple{{nil, "x"}, {"N/A", "y"}},
		},
		{
			name:     "comments and blank lines skipped",
			source:   Tabular{TextBlock: "# header\n\n a , b \n  # trailing\n"},
			expected: []domain.Tuple{{"a", "b"}},
		},
		{
			name:     "custom delimiter",
			source:   Tabular{Rows: []string{"a | 'b|c'"}, Delimiter: '|'},
			expected: []domain.Tuple{{"a", "b|c"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tuples, err := Collect(r.Resolve(tt.source))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tuples)
		})
	}
}

func TestResolve_TabularIsIdempotent(t *testing.T) {
	r := NewResolver(nil)
	seq := r.Resolve(Tabular{TextBlock: daysBlock})

	first, err := Collect(seq)
	require.NoError(t, err)
	second, err := Collect(seq)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolve_TabularMalformed(t *testing.T) {
	r := NewResolver(nil)

	t.Run("arity mismatch against declared arity", func(t *testing.T) {
		tuples, err := Collect(r.Resolve(Tabular{Rows: []string{"a, b", "c"}, Arity: 2}))
		assert.Equal(t, []domain.Tuple{{"a", "b"}}, tuples, "earlier rows are still produced")

		var rowErr *MalformedRowError
		require.ErrorAs(t, err, &rowErr)
		assert.Equal(t, 2, rowErr.Row)
		assert.Equal(t, 2, rowErr.Want)
		assert.Equal(t, 1, rowErr.Got)
	})

	t.Run("arity taken from first row", func(t *testing.T) {
		_, err := Collect(r.Resolve(Tabular{Rows: []string{"a, b, c", "d, e"}}))
		var rowErr *MalformedRowError
		require.ErrorAs(t, err, &rowErr)
		assert.Equal(t, 3, rowErr.Want)
	})

	t.Run("unterminated quote", func(t *testing.T) {
		_, err := Collect(r.Resolve(Tabular{Rows: []string{"'open, b"}}))
		var rowErr *MalformedRowError
		require.ErrorAs(t, err, &rowErr)
		assert.Contains(t, rowErr.Error(), "unterminated")
	})

	t.Run("text after quoted field", func(t *testing.T) {
		_, err := Collect(r.Resolve(Tabular{Rows: []string{"'a' b, c"}}))
		require.Error(t, err)
	})
}
