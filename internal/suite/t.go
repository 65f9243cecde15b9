package suite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"suitekit/internal/domain"
)

// Info describes the running invocation.
type Info struct {
	Suite            string
	TestID           string
	TestDisplayName  string
	DisplayName      string
	Tags             []string
	Index            int
	Repetition       int
	TotalRepetitions int
}

// stop unwinds a hook or body after a fatal check.
type stop struct{}

// T is the handle passed to hooks and test bodies. Its failing methods stop
// the current hook or body, so they must be called from the goroutine
// running it.
type T struct {
	ctx     context.Context
	info    Info
	entries []domain.ReportEntry
	errs    []error
	now     func() time.Time
}

func newT(ctx context.Context, rec domain.Invocation) *T {
	return &T{
		ctx: ctx,
		info: Info{
			Suite:            rec.SuiteName,
			TestID:           rec.TestID,
			TestDisplayName:  rec.TestDisplayName,
			DisplayName:      rec.DisplayName,
			Tags:             rec.Tags,
			Index:            rec.Index,
			Repetition:       rec.Repetition,
			TotalRepetitions: rec.TotalRepetitions,
		},
		now: time.Now,
	}
}

// Context returns the run context.
func (t *T) Context() context.Context { return t.ctx }

// Info describes the running invocation.
func (t *T) Info() Info { return t.info }

// Publish records a report entry keyed by the running test.
func (t *T) Publish(msg string) {
	t.entries = append(t.entries, domain.ReportEntry{
		TestID:      t.info.TestID,
		DisplayName: t.info.DisplayName,
		Message:     msg,
		Timestamp:   t.now(),
	})
}

// Publishf is Publish with formatting.
func (t *T) Publishf(format string, args ...any) {
	t.Publish(fmt.Sprintf(format, args...))
}

// Fail fails the test and stops the current hook or body.
func (t *T) Fail(msg string) {
	t.failNow(&AssertionFailure{Message: msg})
}

// Failf is Fail with formatting.
func (t *T) Failf(format string, args ...any) {
	t.Fail(fmt.Sprintf(format, args...))
}

// Assume aborts the test without failing it when cond is false.
func (t *T) Assume(cond bool, msg string) {
	if !cond {
		t.failNow(&AssumptionNotMet{Message: msg})
	}
}

// Equal fails the test unless actual equals expected (go-cmp).
func (t *T) Equal(expected, actual any, msgAndArgs ...any) {
	t.check(checkEqual(expected, actual), msgAndArgs)
}

// NotEqual fails the test unless actual differs from unexpected.
func (t *T) NotEqual(unexpected, actual any, msgAndArgs ...any) {
	t.check(checkNotEqual(unexpected, actual), msgAndArgs)
}

// True fails the test unless cond holds.
func (t *T) True(cond bool, msgAndArgs ...any) {
	t.check(checkTrue(cond), msgAndArgs)
}

// False fails the test if cond holds.
func (t *T) False(cond bool, msgAndArgs ...any) {
	t.check(checkFalse(cond), msgAndArgs)
}

// Nil fails the test unless v is nil.
func (t *T) Nil(v any, msgAndArgs ...any) {
	t.check(checkNil(v), msgAndArgs)
}

// NotNil fails the test if v is nil.
func (t *T) NotNil(v any, msgAndArgs ...any) {
	t.check(checkNotNil(v), msgAndArgs)
}

// Len fails the test unless v has length n.
func (t *T) Len(v any, n int, msgAndArgs ...any) {
	t.check(checkLen(v, n), msgAndArgs)
}

// Empty fails the test unless v has length zero.
func (t *T) Empty(v any, msgAndArgs ...any) {
	t.check(checkEmpty(v), msgAndArgs)
}

// All runs fn with a Collector and fails once with every collected
// failure if any check in fn failed. A panic inside fn is collected as one
// more failure; a fatal check on t inside fn still reports the group.
func (t *T) All(fn func(c *Collector)) {
	c := &Collector{}
	defer func() {
		if rec := recover(); rec != nil {
			if _, isStop := rec.(stop); isStop {
				if len(c.failures) > 0 {
					t.errs = append(t.errs, &MultipleFailures{Failures: c.failures})
				}
				panic(rec)
			}
			c.failures = append(c.failures, &AssertionFailure{Message: fmt.Sprintf("panic: %v", rec)})
		}
		if len(c.failures) > 0 {
			t.failNow(&MultipleFailures{Failures: c.failures})
		}
	}()
	fn(c)
}

func (t *T) check(err error, msgAndArgs []any) {
	if err != nil {
		t.failNow(annotate(err, msgAndArgs))
	}
}

func (t *T) failNow(err error) {
	t.errs = append(t.errs, err)
	panic(stop{})
}

// run calls fn, converting a stop or a panic into a recorded error.
// It reports whether fn completed without recording one.
func (t *T) run(fn func()) (ok bool) {
	before := len(t.errs)
	defer func() {
		if rec := recover(); rec != nil {
			if _, isStop := rec.(stop); !isStop {
				t.errs = append(t.errs, &AssertionFailure{Message: fmt.Sprintf("panic: %v", rec)})
			}
		}
		ok = len(t.errs) == before
	}()
	fn()
	return
}

// outcome derives the invocation status from the recorded errors.
func (t *T) outcome() (domain.Status, error) {
	if len(t.errs) == 0 {
		return domain.StatusPassed, nil
	}
	for _, err := range t.errs {
		var notMet *AssumptionNotMet
		if !errors.As(err, &notMet) {
			return domain.StatusFailed, errors.Join(t.errs...)
		}
	}
	return domain.StatusAborted, errors.Join(t.errs...)
}

// Collector accumulates check failures instead of stopping at the first.
type Collector struct {
	failures []error
}

// Failures returns the failures collected so far.
func (c *Collector) Failures() []error { return c.failures }

func (c *Collector) add(err error, msgAndArgs []any) {
	if err != nil {
		c.failures = append(c.failures, annotate(err, msgAndArgs))
	}
}

// Fail records a failure.
func (c *Collector) Fail(msg string) {
	c.failures = append(c.failures, &AssertionFailure{Message: msg})
}

// Equal records a failure unless actual equals expected (go-cmp).
func (c *Collector) Equal(expected, actual any, msgAndArgs ...any) {
	c.add(checkEqual(expected, actual), msgAndArgs)
}

// NotEqual records a failure unless actual differs from unexpected.
func (c *Collector) NotEqual(unexpected, actual any, msgAndArgs ...any) {
	c.add(checkNotEqual(unexpected, actual), msgAndArgs)
}

// True records a failure unless cond holds.
func (c *Collector) True(cond bool, msgAndArgs ...any) {
	c.add(checkTrue(cond), msgAndArgs)
}

// False records a failure if cond holds.
func (c *Collector) False(cond bool, msgAndArgs ...any) {
	c.add(checkFalse(cond), msgAndArgs)
}

// Nil records a failure unless v is nil.
func (c *Collector) Nil(v any, msgAndArgs ...any) {
	c.add(checkNil(v), msgAndArgs)
}

// NotNil records a failure if v is nil.
func (c *Collector) NotNil(v any, msgAndArgs ...any) {
	c.add(checkNotNil(v), msgAndArgs)
}

// Len records a failure unless v has length n.
func (c *Collector) Len(v any, n int, msgAndArgs ...any) {
	c.add(checkLen(v, n), msgAndArgs)
}

// Empty records a failure unless v has length zero.
func (c *Collector) Empty(v any, msgAndArgs ...any) {
	c.add(checkEmpty(v), msgAndArgs)
}
