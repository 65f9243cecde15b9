// Package source resolves declarative argument sources into the ordered
// argument tuples that drive parameterized test invocations.
package source

import (
	"fmt"
	"reflect"

	"suitekit/internal/domain"
)

// Source describes where a parameterized test's inputs come from.
// Implementations are immutable once constructed.
type Source interface {
	// Kind names the source variant for reporting.
	Kind() string
	isSource()
}

// FixedList yields one single-element tuple per literal value.
type FixedList struct {
	Values []any
}

// Values builds a FixedList from typed literals.
func Values[V any](values ...V) FixedList {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return FixedList{Values: out}
}

// Factory yields the items returned by a registered zero-argument producer.
type Factory struct {
	ProducerID string
}

// Tabular yields one tuple per row of comma-separated text.
type Tabular struct {
	// TextBlock holds rows separated by newlines.
	TextBlock string
	// Rows holds rows given one per element. They follow TextBlock rows.
	Rows []string
	// Arity is the expected field count per row. Zero takes the first row's count.
	Arity int
	// Delimiter defaults to ','.
	Delimiter rune
	// NullValues are unquoted field values resolved to an absent value.
	NullValues []string
}

// NullSentinel yields exactly one tuple holding an absent value.
type NullSentinel struct{}

// EmptySentinel yields exactly one tuple holding the empty instance of Target.
type EmptySentinel struct {
	Target reflect.Type
}

// EmptyOf returns an EmptySentinel for the parameter type T.
func EmptyOf[T any]() EmptySentinel {
	return EmptySentinel{Target: reflect.TypeFor[T]()}
}

// EnumMode selects how EnumExpansion.Names filters members.
type EnumMode int

const (
	Include EnumMode = iota
	Exclude
)

// EnumExpansion yields one tuple per member of an enumerated type, in
// declaration order.
type EnumExpansion struct {
	Type    string
	Members []any
	Names   []string
	Mode    EnumMode
}

// EnumOf builds an EnumExpansion from the declared members of E.
func EnumOf[E comparable](typeName string, members ...E) EnumExpansion {
	out := make([]any, len(members))
	for i, m := range members {
		out[i] = m
	}
	return EnumExpansion{Type: typeName, Members: out}
}

// Only restricts the expansion to the named members.
func (e EnumExpansion) Only(names ...string) EnumExpansion {
	e.Names = names
	e.Mode = Include
	return e
}

// Without drops the named members from the expansion.
func (e EnumExpansion) Without(names ...string) EnumExpansion {
	e.Names = names
	e.Mode = Exclude
	return e
}

func (FixedList) Kind() string     { return "fixed-list" }
func (Factory) Kind() string       { return "factory" }
func (Tabular) Kind() string       { return "tabular" }
func (NullSentinel) Kind() string  { return "null" }
func (EmptySentinel) Kind() string { return "empty" }
func (EnumExpansion) Kind() string { return "enum" }

func (FixedList) isSource()     {}
func (Factory) isSource()       {}
func (Tabular) isSource()       {}
func (NullSentinel) isSource()  {}
func (EmptySentinel) isSource() {}
func (EnumExpansion) isSource() {}

// Arguments groups values into one tuple. Producers return it to supply
// multi-argument invocations.
func Arguments(values ...any) domain.Tuple {
	return domain.Tuple(values)
}

// Describe renders a short human-readable form of src.
func Describe(src Source) string {
	switch s := src.(type) {
	case FixedList:
		return fmt.Sprintf("fixed-list(%d values)", len(s.Values))
	case Factory:
		return fmt.Sprintf("factory(%s)", s.ProducerID)
	case Tabular:
		return "tabular"
	case NullSentinel:
		return "null"
	case EmptySentinel:
		return fmt.Sprintf("empty(%v)", s.Target)
	case EnumExpansion:
		return fmt.Sprintf("enum(%s)", s.Type)
	default:
		return fmt.Sprintf("%T", src)
	}
}
