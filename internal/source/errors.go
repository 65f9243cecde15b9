package source

import "fmt"

// SourceResolutionError reports a source that could not produce arguments.
type SourceResolutionError struct {
	Source     string
	ProducerID string
	Err        error
}

func (e *SourceResolutionError) Error() string {
	if e.ProducerID != "" {
		return fmt.Sprintf("resolve %s: producer %q: %v", e.Source, e.ProducerID, e.Err)
	}
	return fmt.Sprintf("resolve %s: %v", e.Source, e.Err)
}

func (e *SourceResolutionError) Unwrap() error {
	return e.Err
}

// MalformedRowError reports a tabular row that cannot become a tuple.
type MalformedRowError struct {
	Row    int // 1-based among data rows
	Line   string
	Want   int
	Got    int
	Reason string
}

func (e *MalformedRowError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("row %d %q: %s", e.Row, e.Line, e.Reason)
	}
	return fmt.Sprintf("row %d %q: expected %d fields, got %d", e.Row, e.Line, e.Want, e.Got)
}
