package suite

import (
	"fmt"
	"reflect"

	"github.com/google/go-cmp/cmp"
)

// The check functions return nil on success and an *AssertionFailure
// describing the mismatch otherwise.

func checkEqual(expected, actual any) error {
	if cmp.Equal(expected, actual) {
		return nil
	}
	return &AssertionFailure{Message: fmt.Sprintf(
		"expected: %#v, actual: %#v\ndiff (-expected +actual):\n%s",
		expected, actual, cmp.Diff(expected, actual))}
}

func checkNotEqual(unexpected, actual any) error {
	if !cmp.Equal(unexpected, actual) {
		return nil
	}
	return &AssertionFailure{Message: fmt.Sprintf("expected values to differ, both are %#v", actual)}
}

func checkTrue(cond bool) error {
	if cond {
		return nil
	}
	return &AssertionFailure{Message: "expected: true, actual: false"}
}

func checkFalse(cond bool) error {
	if !cond {
		return nil
	}
	return &AssertionFailure{Message: "expected: false, actual: true"}
}

func checkNil(v any) error {
	if isNil(v) {
		return nil
	}
	return &AssertionFailure{Message: fmt.Sprintf("expected: <nil>, actual: %#v", v)}
}

func checkNotNil(v any) error {
	if !isNil(v) {
		return nil
	}
	return &AssertionFailure{Message: "expected: not <nil>"}
}

func checkLen(v any, n int) error {
	l, ok := length(v)
	if !ok {
		return &AssertionFailure{Message: fmt.Sprintf("%#v has no length", v)}
	}
	if l != n {
		return &AssertionFailure{Message: fmt.Sprintf("expected length %d, actual %d", n, l)}
	}
	return nil
}

func checkEmpty(v any) error {
	l, ok := length(v)
	if !ok {
		return &AssertionFailure{Message: fmt.Sprintf("%#v has no length", v)}
	}
	if l != 0 {
		return &AssertionFailure{Message: fmt.Sprintf("expected empty, actual length %d", l)}
	}
	return nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

func length(v any) (int, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Array, reflect.Chan, reflect.Map, reflect.Slice, reflect.String:
		return rv.Len(), true
	}
	return 0, false
}

func annotate(err error, msgAndArgs []any) error {
	if err == nil || len(msgAndArgs) == 0 {
		return err
	}
	msg := fmt.Sprint(msgAndArgs[0])
	if format, ok := msgAndArgs[0].(string); ok && len(msgAndArgs) > 1 {
		msg = fmt.Sprintf(format, msgAndArgs[1:]...)
	}
	return &AssertionFailure{Message: msg + ": " + err.Error()}
}
