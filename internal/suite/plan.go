package suite

import (
	"context"
	"errors"
	"time"

	"suitekit/internal/domain"
	"suitekit/internal/source"
)

// ErrNoArguments reports a parameterized test whose source produced nothing.
var ErrNoArguments = errors.New("source produced no arguments")

// Invocation is one scheduled execution of a test
type Invocation struct {
	Record domain.Invocation
	test   *Test
	err    error
}

// Test returns the registered test behind the invocation.
func (inv *Invocation) Test() *Test { return inv.test }

// Err returns the argument resolution error attached to the invocation.
func (inv *Invocation) Err() error { return inv.err }

// SuitePlan holds the invocations of one suite, in order.
type SuitePlan struct {
	Suite       *Suite
	Invocations []*Invocation
}

// Plan is the ordered expansion of a test selection.
type Plan struct {
	Suites []*SuitePlan
}

// BuildPlan expands tests into invocations. Suites keep the order in which
// their first selected test appears, tests keep their order, and sequence
// numbers are assigned from 1 across the whole plan. Argument resolution
// failures become a single failing invocation for the affected test only.
func BuildPlan(tests []*Test) *Plan {
	plan := &Plan{}
	bySuite := make(map[*Suite]*SuitePlan)
	seq := 0

	for _, test := range tests {
		sp, ok := bySuite[test.suite]
		if !ok {
			sp = &SuitePlan{Suite: test.suite}
			bySuite[test.suite] = sp
			plan.Suites = append(plan.Suites, sp)
		}
		sp.Invocations = append(sp.Invocations, test.expand(&seq)...)
	}
	return plan
}

// Invocations flattens the plan in sequence order.
func (p *Plan) Invocations() []*Invocation {
	var out []*Invocation
	for _, sp := range p.Suites {
		out = append(out, sp.Invocations...)
	}
	return out
}

// Len returns the number of invocations in the plan.
func (p *Plan) Len() int {
	n := 0
	for _, sp := range p.Suites {
		n += len(sp.Invocations)
	}
	return n
}

func (t *Test) record(seq int) domain.Invocation {
	return domain.Invocation{
		Seq:             seq,
		SuiteName:       t.suite.name,
		TestID:          t.def.Name,
		TestDisplayName: t.displayName,
		DisplayName:     t.displayName,
		Tags:            t.tags,
	}
}

func (t *Test) expand(seq *int) []*Invocation {
	next := func() domain.Invocation {
		*seq++
		return t.record(*seq)
	}

	// Disabled tests are reported once, without resolving their arguments.
	if t.def.Skip != "" {
		return []*Invocation{{Record: next(), test: t}}
	}

	if t.def.Parameterized == nil {
		if t.def.Repeat == 0 {
			return []*Invocation{{Record: next(), test: t}}
		}
		invs := make([]*Invocation, 0, t.def.Repeat)
		for i := 1; i <= t.def.Repeat; i++ {
			rec := next()
			rec.Repetition = i
			rec.TotalRepetitions = t.def.Repeat
			rec.DisplayName = formatRepeatedName(t.def.NameFormat, t.displayName, i, t.def.Repeat)
			invs = append(invs, &Invocation{Record: rec, test: t})
		}
		return invs
	}

	var invs []*Invocation
	resolver := source.NewResolver(t.suite.producers)
	index := 0
	for args, err := range resolver.Resolve(t.def.Source) {
		if err != nil {
			invs = append(invs, &Invocation{Record: next(), test: t, err: err})
			return invs
		}
		index++
		rec := next()
		rec.Index = index
		rec.Args = args
		rec.DisplayName = formatParameterizedName(t.def.NameFormat, t.displayName, index, args)
		invs = append(invs, &Invocation{Record: rec, test: t})
	}
	if index == 0 {
		invs = append(invs, &Invocation{Record: next(), test: t, err: ErrNoArguments})
	}
	return invs
}

// Run executes the invocation: BeforeEach hooks, the body when every hook
// completed, then AfterEach hooks. Skipped tests and resolution failures
// run no hooks.
func (inv *Invocation) Run(ctx context.Context) domain.TestResult {
	start := time.Now()
	result := domain.TestResult{Invocation: inv.Record}

	if reason, skipped := inv.test.SkipReason(); skipped {
		result.Status = domain.StatusSkipped
		result.Message = reason
		return result
	}
	if inv.err != nil {
		result.Status = domain.StatusFailed
		result.Error = inv.err
		result.Message = inv.err.Error()
		result.Duration = time.Since(start)
		return result
	}

	t := newT(ctx, inv.Record)
	s := inv.test.suite

	ready := true
	for _, hook := range s.beforeEach {
		if !t.run(func() { hook(t) }) {
			ready = false
			break
		}
	}
	if ready {
		def := inv.test.def
		if def.Parameterized != nil {
			t.run(func() { def.Parameterized(t, inv.Record.Args) })
		} else {
			t.run(func() { def.Body(t) })
		}
	}
	for _, hook := range s.afterEach {
		t.run(func() { hook(t) })
	}

	status, err := t.outcome()
	result.Status = status
	result.Error = err
	if err != nil {
		result.Message = err.Error()
	}
	result.Entries = t.entries
	result.Duration = time.Since(start)
	return result
}
