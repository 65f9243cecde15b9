// Package suite registers test bodies explicitly and expands them into
// invocations.
//
// A Suite groups tests that share lifecycle hooks, tags, a display-name
// generator and a set of argument producers. Tests are attached with a Definition:
//
//	s := suite.New("calendar")
//	s.BeforeEach(func(t *suite.T) { t.Publish("starting") })
//	err := s.Test(suite.Definition{
//	    Name:   "weekday_names",
//	    Source: source.EnumOf("DayOfWeek", Monday, Tuesday),
//	    Parameterized: func(t *suite.T, args domain.Tuple) {
//	        t.NotNil(args[0])
//	    },
//	})
//
// Registered suites are collected in a Registry, and BuildPlan expands a
// selection of tests into ordered invocation records. Each invocation runs
// BeforeEach hooks, the body, then AfterEach hooks; BeforeAll and AfterAll
// hooks are the caller's responsibility (see the execution package).
package suite
