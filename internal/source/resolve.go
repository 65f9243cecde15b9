package source

import (
	"fmt"
	"iter"
	"reflect"

	"suitekit/internal/domain"
)

// Sequence is a lazy, finite, restartable stream of argument tuples.
// A failing resolution yields a single (nil, err) pair and stops.
type Sequence = iter.Seq2[domain.Tuple, error]

// Resolver turns sources into tuple sequences
type Resolver struct {
	producers *Producers
}

// NewResolver creates a Resolver that looks up Factory producers in producers.
func NewResolver(producers *Producers) *Resolver {
	return &Resolver{producers: producers}
}

// Resolve returns the tuple sequence for src. Nothing is produced until the
// sequence is ranged over, and every range starts from the beginning.
func (r *Resolver) Resolve(src Source) Sequence {
	switch s := src.(type) {
	case FixedList:
		return fixedList(s)
	case Factory:
		return r.factory(s)
	case Tabular:
		return tabular(s)
	case NullSentinel:
		return single(nil)
	case EmptySentinel:
		return emptySentinel(s)
	case EnumExpansion:
		return enumExpansion(s)
	default:
		return failed(&SourceResolutionError{
			Source: Describe(src),
			Err:    fmt.Errorf("unsupported source type %T", src),
		})
	}
}

// Collect drains seq. It returns the tuples produced before the first error
// together with that error.
func Collect(seq Sequence) ([]domain.Tuple, error) {
	var tuples []domain.Tuple
	for tuple, err := range seq {
		if err != nil {
			return tuples, err
		}
		tuples = append(tuples, tuple)
	}
	return tuples, nil
}

func fixedList(s FixedList) Sequence {
	return func(yield func(domain.Tuple, error) bool) {
		for _, v := range s.Values {
			if !yield(domain.Tuple{v}, nil) {
				return
			}
		}
	}
}

func single(v any) Sequence {
	return func(yield func(domain.Tuple, error) bool) {
		yield(domain.Tuple{v}, nil)
	}
}

func failed(err error) Sequence {
	return func(yield func(domain.Tuple, error) bool) {
		yield(nil, err)
	}
}

func (r *Resolver) factory(s Factory) Sequence {
	return func(yield func(domain.Tuple, error) bool) {
		fn, ok := r.producers.Lookup(s.ProducerID)
		if !ok {
			yield(nil, &SourceResolutionError{
				Source:     Describe(s),
				ProducerID: s.ProducerID,
				Err:        fmt.Errorf("no producer registered"),
			})
			return
		}

		items, err := callProducer(fn)
		if err != nil {
			yield(nil, &SourceResolutionError{Source: Describe(s), ProducerID: s.ProducerID, Err: err})
			return
		}

		for _, item := range items {
			tuple, ok := item.(domain.Tuple)
			if !ok {
				tuple = domain.Tuple{item}
			}
			if !yield(tuple, nil) {
				return
			}
		}
	}
}

// callProducer invokes fn, converting a panic into an error.
func callProducer(fn Producer) (items []any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("producer panicked: %v", rec)
		}
	}()
	return fn()
}

func emptySentinel(s EmptySentinel) Sequence {
	return func(yield func(domain.Tuple, error) bool) {
		v, err := emptyValue(s.Target)
		if err != nil {
			yield(nil, &SourceResolutionError{Source: Describe(s), Err: err})
			return
		}
		yield(domain.Tuple{v}, nil)
	}
}

// emptyValue returns the canonical empty instance of t.
func emptyValue(t reflect.Type) (any, error) {
	if t == nil {
		return nil, fmt.Errorf("empty source requires a target type")
	}
	switch t.Kind() {
	case reflect.String:
		return reflect.Zero(t).Interface(), nil
	case reflect.Slice:
		return reflect.MakeSlice(t, 0, 0).Interface(), nil
	case reflect.Map:
		return reflect.MakeMap(t).Interface(), nil
	case reflect.Array:
		if t.Len() != 0 {
			return nil, fmt.Errorf("array type %v is not empty-able", t)
		}
		return reflect.Zero(t).Interface(), nil
	default:
		return nil, fmt.Errorf("type %v has no empty instance", t)
	}
}

func enumExpansion(s EnumExpansion) Sequence {
	return func(yield func(domain.Tuple, error) bool) {
		members, err := selectMembers(s)
		if err != nil {
			yield(nil, &SourceResolutionError{Source: Describe(s), Err: err})
			return
		}
		for _, m := range members {
			if !yield(domain.Tuple{m}, nil) {
				return
			}
		}
	}
}

func selectMembers(s EnumExpansion) ([]any, error) {
	if len(s.Members) == 0 {
		return nil, fmt.Errorf("enum %s declares no members", s.Type)
	}

	byName := make(map[string]bool, len(s.Members))
	for _, m := range s.Members {
		name := domain.FormatArg(m)
		if byName[name] {
			return nil, fmt.Errorf("enum %s declares member %s twice", s.Type, name)
		}
		byName[name] = true
	}

	if len(s.Names) == 0 {
		return s.Members, nil
	}

	filter := make(map[string]bool, len(s.Names))
	for _, n := range s.Names {
		if !byName[n] {
			return nil, fmt.Errorf("enum %s has no member named %s", s.Type, n)
		}
		filter[n] = true
	}

	var selected []any
	for _, m := range s.Members {
		named := filter[domain.FormatArg(m)]
		if (s.Mode == Include && named) || (s.Mode == Exclude && !named) {
			selected = append(selected, m)
		}
	}
	return selected, nil
}
