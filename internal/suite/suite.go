package suite

import (
	"errors"
	"fmt"
	"slices"

	"suitekit/internal/domain"
	"suitekit/internal/source"
)

// Definition is the configuration attached to a test at registration time.
type Definition struct {
	// Name identifies the test within its suite.
	Name string
	// DisplayName overrides the suite's display-name generator.
	DisplayName string
	Tags        []string
	// Skip disables the test with the given reason.
	Skip string
	// Repeat runs Body this many times.
	Repeat int
	// Source supplies arguments to Parameterized.
	Source source.Source
	// NameFormat is the invocation name pattern for repeated and
	// parameterized tests.
	NameFormat string

	Body          func(t *T)
	Parameterized func(t *T, args domain.Tuple)
}

// Test is a registered test body
type Test struct {
	suite       *Suite
	def         Definition
	displayName string
	tags        []string
}

// Suite groups tests sharing lifecycle hooks, tags and argument producers
type Suite struct {
	name       string
	tags       []string
	generator  DisplayNameGenerator
	producers  *source.Producers
	beforeAll  []func() error
	afterAll   []func() error
	beforeEach []func(t *T)
	afterEach  []func(t *T)
	tests      []*Test
	names      map[string]bool
}

// New creates an empty suite using the Standard display-name generator.
func New(name string) *Suite {
	return &Suite{
		name:      name,
		generator: Standard,
		producers: source.NewProducers(),
		names:     make(map[string]bool),
	}
}

// Name returns the suite name.
func (s *Suite) Name() string { return s.name }

// Tags returns the tags inherited by every test of the suite.
func (s *Suite) Tags() []string { return slices.Clone(s.tags) }

// Tag adds suite-level tags. Call it before registering tests.
func (s *Suite) Tag(tags ...string) *Suite {
	s.tags = append(s.tags, tags...)
	return s
}

// DisplayNames sets the generator applied to tests without an explicit
// display name. Call it before registering tests.
func (s *Suite) DisplayNames(gen DisplayNameGenerator) *Suite {
	if gen != nil {
		s.generator = gen
	}
	return s
}

// BeforeAll registers a hook run once before any test of the suite.
func (s *Suite) BeforeAll(fn func() error) { s.beforeAll = append(s.beforeAll, fn) }

// AfterAll registers a hook run once after every test of the suite.
func (s *Suite) AfterAll(fn func() error) { s.afterAll = append(s.afterAll, fn) }

// BeforeEach registers a hook run before each invocation.
func (s *Suite) BeforeEach(fn func(t *T)) { s.beforeEach = append(s.beforeEach, fn) }

// AfterEach registers a hook run after each invocation, even a failed one.
func (s *Suite) AfterEach(fn func(t *T)) { s.afterEach = append(s.afterEach, fn) }

// Producer registers a Factory producer visible to this suite's tests.
func (s *Suite) Producer(id string, fn source.Producer) error {
	if err := s.producers.Register(id, fn); err != nil {
		return fmt.Errorf("suite %s: %w", s.name, err)
	}
	return nil
}

// Test validates the definition and registers it.
func (s *Suite) Test(def Definition) error {
	if err := s.validate(def); err != nil {
		return fmt.Errorf("suite %s: test %q: %w", s.name, def.Name, err)
	}

	displayName := def.DisplayName
	if displayName == "" {
		displayName = s.generator(def.Name)
	}

	tags := slices.Clone(s.tags)
	for _, tag := range def.Tags {
		if !slices.Contains(tags, tag) {
			tags = append(tags, tag)
		}
	}

	s.names[def.Name] = true
	s.tests = append(s.tests, &Test{
		suite:       s,
		def:         def,
		displayName: displayName,
		tags:        tags,
	})
	return nil
}

// Add registers several definitions, stopping at the first invalid one.
func (s *Suite) Add(defs ...Definition) error {
	for _, def := range defs {
		if err := s.Test(def); err != nil {
			return err
		}
	}
	return nil
}

func (s *Suite) validate(def Definition) error {
	switch {
	case def.Name == "":
		return errors.New("name must not be empty")
	case s.names[def.Name]:
		return errors.New("already registered")
	case def.Body == nil && def.Parameterized == nil:
		return errors.New("no body")
	case def.Body != nil && def.Parameterized != nil:
		return errors.New("both Body and Parameterized set")
	case def.Parameterized != nil && def.Source == nil:
		return errors.New("parameterized test without a source")
	case def.Body != nil && def.Source != nil:
		return errors.New("source set on a non-parameterized test")
	case def.Repeat < 0:
		return errors.New("negative repeat count")
	case def.Repeat > 0 && def.Parameterized != nil:
		return errors.New("repeat is not supported on parameterized tests")
	}
	return nil
}

// Tests returns the suite's tests in registration order.
func (s *Suite) Tests() []*Test { return slices.Clone(s.tests) }

// RunBeforeAll runs the BeforeAll hooks in order and stops at the first error.
func (s *Suite) RunBeforeAll() error {
	for _, fn := range s.beforeAll {
		if err := callHook(fn); err != nil {
			return fmt.Errorf("before all: %w", err)
		}
	}
	return nil
}

// RunAfterAll runs every AfterAll hook and joins their errors.
func (s *Suite) RunAfterAll() error {
	var errs []error
	for _, fn := range s.afterAll {
		if err := callHook(fn); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("after all: %w", err)
	}
	return nil
}

func callHook(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return fn()
}

// Suite returns the suite the test belongs to.
func (t *Test) Suite() *Suite { return t.suite }

// Name returns the test name.
func (t *Test) Name() string { return t.def.Name }

// DisplayName returns the explicit or generated display name.
func (t *Test) DisplayName() string { return t.displayName }

// Tags returns suite and test tags.
func (t *Test) Tags() []string { return slices.Clone(t.tags) }

// SkipReason reports whether the test is disabled.
func (t *Test) SkipReason() (string, bool) { return t.def.Skip, t.def.Skip != "" }

// Source returns the argument source of a parameterized test, or nil.
func (t *Test) Source() source.Source { return t.def.Source }

// Registry holds the suites registered at startup
type Registry struct {
	suites []*Suite
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers s. Suite names must be unique.
func (r *Registry) Add(s *Suite) error {
	for _, existing := range r.suites {
		if existing.name == s.name {
			return fmt.Errorf("suite %q already registered", s.name)
		}
	}
	r.suites = append(r.suites, s)
	return nil
}

// Suites returns the registered suites in registration order.
func (r *Registry) Suites() []*Suite { return slices.Clone(r.suites) }

// Tests returns every registered test in registration order.
func (r *Registry) Tests() []*Test {
	var tests []*Test
	for _, s := range r.suites {
		tests = append(tests, s.tests...)
	}
	return tests
}
