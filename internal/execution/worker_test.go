package execution

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suitekit/internal/config"
	"suitekit/internal/domain"
	"suitekit/internal/source"
	"suitekit/internal/suite"
)

type countingProgress struct {
	updates  int
	passed   int
	failed   int
	finished bool
}

func (p *countingProgress) Update(successCount, failCount int) {
	p.updates++
	p.passed, p.failed = successCount, failCount
}

func (p *countingProgress) Finish() { p.finished = true }

func newPool(processors int) *WorkerPool {
	cfg := config.New()
	cfg.Processors = processors
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewWorkerPool(cfg, NewRunner(logger), NewRoundRobinScheduler(), logger)
}

func TestRoundRobinScheduler_Schedule(t *testing.T) {
	s := suite.New("sched")
	require.NoError(t, s.Test(suite.Definition{
		Name:          "values",
		Source:        source.Values(1, 2, 3, 4, 5),
		Parameterized: func(*suite.T, domain.Tuple) {},
	}))
	invs := suite.BuildPlan(s.Tests()).Invocations()

	shards := NewRoundRobinScheduler().Schedule(invs, 2)
	require.Len(t, shards, 2)
	assert.Len(t, shards[0], 3)
	assert.Len(t, shards[1], 2)
	assert.Equal(t, 1, shards[0][0].Record.Seq)
	assert.Equal(t, 2, shards[1][0].Record.Seq)

	assert.Len(t, NewRoundRobinScheduler().Schedule(invs, 0), 1)
}

func TestWorkerPool_Execute(t *testing.T) {
	var ran atomic.Int32
	s := suite.New("pool")
	require.NoError(t, s.Add(
		suite.Definition{Name: "ok", Body: func(*suite.T) { ran.Add(1) }},
		suite.Definition{Name: "bad", Body: func(t *suite.T) { ran.Add(1); t.Fail("nope") }},
		suite.Definition{
			Name:          "values",
			Source:        source.Values("a", "b", "c"),
			Parameterized: func(*suite.T, domain.Tuple) { ran.Add(1) },
		},
	))

	pool := newPool(3)
	progress := &countingProgress{}
	pool.SetProgress(progress)

	results, _, err := pool.Execute(context.Background(), suite.BuildPlan(s.Tests()))
	require.NoError(t, err)
	require.Len(t, results, 5)
	assert.EqualValues(t, 5, ran.Load())

	for i, r := range results {
		assert.Equal(t, i+1, r.Invocation.Seq)
		assert.NotZero(t, r.WorkerID)
	}
	assert.Equal(t, domain.StatusFailed, results[1].Status)
	assert.Equal(t, "nope", results[1].Message)

	assert.Equal(t, 5, progress.updates)
	assert.Equal(t, 4, progress.passed)
	assert.Equal(t, 1, progress.failed)
	assert.True(t, progress.finished)
}

func TestWorkerPool_BeforeAllFailure(t *testing.T) {
	var ran atomic.Int32
	var afterAll atomic.Bool
	s := suite.New("setup")
	s.BeforeAll(func() error { return errors.New("database unavailable") })
	s.AfterAll(func() error { afterAll.Store(true); return nil })
	require.NoError(t, s.Add(
		suite.Definition{Name: "one", Body: func(*suite.T) { ran.Add(1) }},
		suite.Definition{Name: "two", Body: func(*suite.T) { ran.Add(1) }},
	))

	results, _, err := newPool(2).Execute(context.Background(), suite.BuildPlan(s.Tests()))
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Zero(t, ran.Load())
	assert.True(t, afterAll.Load())
	for _, r := range results {
		assert.Equal(t, domain.StatusFailed, r.Status)
		assert.Equal(t, "database unavailable", r.Message)
	}
}

func TestWorkerPool_AfterAllFailure(t *testing.T) {
	s := suite.New("teardown")
	s.AfterAll(func() error { return errors.New("cleanup failed") })
	require.NoError(t, s.Test(suite.Definition{Name: "one", Body: func(*suite.T) {}}))

	plan := suite.BuildPlan(s.Tests())
	pool := newPool(1)
	progress := &countingProgress{}
	pool.SetProgress(progress)

	results, _, err := pool.Execute(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, domain.StatusPassed, results[0].Status)
	assert.Equal(t, plan.Len(), progress.updates)
	assert.Equal(t, plan.Len(), progress.passed+progress.failed)

	teardown := results[1]
	assert.Equal(t, "after_all", teardown.Invocation.TestID)
	assert.Equal(t, domain.StatusFailed, teardown.Status)
	assert.Equal(t, "cleanup failed", teardown.Message)
}

func TestWorkerPool_FailFast(t *testing.T) {
	var ran atomic.Int32
	first := suite.New("first")
	require.NoError(t, first.Add(
		suite.Definition{Name: "a", Body: func(*suite.T) { ran.Add(1) }},
		suite.Definition{Name: "b", Body: func(t *suite.T) { ran.Add(1); t.Fail("stop here") }},
		suite.Definition{Name: "c", Body: func(*suite.T) { ran.Add(1) }},
	))
	second := suite.New("second")
	require.NoError(t, second.Test(suite.Definition{Name: "d", Body: func(*suite.T) { ran.Add(1) }}))

	registry := suite.NewRegistry()
	require.NoError(t, registry.Add(first))
	require.NoError(t, registry.Add(second))

	results, _, err := newPool(1).ExecuteWithOptions(context.Background(), suite.BuildPlan(registry.Tests()), true)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.EqualValues(t, 2, ran.Load())
	assert.Equal(t, domain.StatusFailed, results[1].Status)
}

func TestWorkerPool_Cancelled(t *testing.T) {
	s := suite.New("cancelled")
	require.NoError(t, s.Test(suite.Definition{Name: "a", Body: func(*suite.T) {}}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, _, err := newPool(1).Execute(ctx, suite.BuildPlan(s.Tests()))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestWorkerPool_EmptyPlan(t *testing.T) {
	results, duration, err := newPool(2).Execute(context.Background(), &suite.Plan{})
	require.NoError(t, err)
	assert.Nil(t, results)
	assert.Zero(t, duration)
}
