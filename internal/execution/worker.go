package execution

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"suitekit/internal/config"
	"suitekit/internal/domain"
	"suitekit/internal/suite"
)

// WorkerPool manages a pool of workers for parallel test execution
type WorkerPool struct {
	config    *config.Config
	runner    *Runner
	scheduler Scheduler
	progress  Progress
	logger    *slog.Logger
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, runner *Runner, scheduler Scheduler, logger *slog.Logger) *WorkerPool {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkerPool{
		config:    cfg,
		runner:    runner,
		scheduler: scheduler,
		logger:    logger,
	}
}

// SetProgress sets the progress reporter for the worker pool
func (wp *WorkerPool) SetProgress(progress Progress) {
	wp.progress = progress
}

// Execute runs the plan using the configured fail-fast setting.
func (wp *WorkerPool) Execute(ctx context.Context, plan *suite.Plan) ([]domain.TestResult, time.Duration, error) {
	return wp.ExecuteWithOptions(ctx, plan, wp.config.Flags.FailFast)
}

// ExecuteWithOptions runs every suite of the plan in order. Within a suite,
// BeforeAll hooks run once, invocations run in parallel, then AfterAll hooks
// run once. With failFast, outstanding invocations are dropped after the
// first failure. Results are ordered by invocation sequence.
func (wp *WorkerPool) ExecuteWithOptions(ctx context.Context, plan *suite.Plan, failFast bool) ([]domain.TestResult, time.Duration, error) {
	if plan == nil || plan.Len() == 0 {
		return nil, 0, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	startTime := time.Now()
	tracker := &progressTracker{progress: wp.progress}
	var allResults []domain.TestResult

	for _, sp := range plan.Suites {
		if ctx.Err() != nil {
			break
		}
		allResults = append(allResults, wp.executeSuite(ctx, cancel, sp, failFast, tracker)...)
	}

	if wp.progress != nil {
		wp.progress.Finish()
	}
	if err := ctx.Err(); err != nil && !failFast {
		return allResults, time.Since(startTime), fmt.Errorf("execution interrupted: %w", err)
	}
	return allResults, time.Since(startTime), nil
}

func (wp *WorkerPool) executeSuite(ctx context.Context, cancel context.CancelFunc, sp *suite.SuitePlan, failFast bool, tracker *progressTracker) []domain.TestResult {
	name := sp.Suite.Name()
	wp.logger.Debug("suite started", "suite", name, "invocations", len(sp.Invocations))

	var results []domain.TestResult
	if err := sp.Suite.RunBeforeAll(); err != nil {
		wp.logger.Warn("suite setup failed", "suite", name, "error", err)
		for _, inv := range sp.Invocations {
			result := domain.TestResult{
				Invocation: inv.Record,
				Status:     domain.StatusFailed,
				Error:      err,
				Message:    err.Error(),
			}
			tracker.record(result)
			results = append(results, result)
		}
		if failFast {
			cancel()
		}
	} else {
		results = wp.executeInvocations(ctx, cancel, sp.Invocations, failFast, tracker)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Invocation.Seq < results[j].Invocation.Seq
	})

	if err := sp.Suite.RunAfterAll(); err != nil {
		wp.logger.Warn("suite teardown failed", "suite", name, "error", err)
		last := 0
		if n := len(sp.Invocations); n > 0 {
			last = sp.Invocations[n-1].Record.Seq
		}
		result := domain.TestResult{
			Invocation: domain.Invocation{
				Seq:             last,
				SuiteName:       name,
				TestID:          "after_all",
				TestDisplayName: "after all",
				DisplayName:     "after all",
			},
			Status:  domain.StatusFailed,
			Error:   err,
			Message: err.Error(),
		}
		// Not counted in progress, which is sized to the plan's invocations.
		results = append(results, result)
	}

	wp.logger.Debug("suite finished", "suite", name, "results", len(results))
	return results
}

// executeInvocations runs one suite's invocations on the worker shards.
func (wp *WorkerPool) executeInvocations(ctx context.Context, cancel context.CancelFunc, invs []*suite.Invocation, failFast bool, tracker *progressTracker) []domain.TestResult {
	workerCount := wp.config.Processors
	if workerCount <= 0 {
		workerCount = 1
	}
	shards := wp.scheduler.Schedule(invs, workerCount)

	var mu sync.Mutex
	var results []domain.TestResult
	var wg sync.WaitGroup
	for i, shard := range shards {
		if len(shard) == 0 {
			continue
		}
		wg.Add(1)
		go func(workerID int, shard []*suite.Invocation) {
			defer wg.Done()
			for _, inv := range shard {
				if ctx.Err() != nil {
					return
				}
				result := wp.runner.Run(ctx, inv, workerID)

				mu.Lock()
				results = append(results, result)
				tracker.record(result)
				mu.Unlock()

				if failFast && result.Status == domain.StatusFailed {
					cancel()
				}
			}
		}(i+1, shard)
	}
	wg.Wait()
	return results
}

// progressTracker counts completed invocations for the progress reporter.
type progressTracker struct {
	mu       sync.Mutex
	progress Progress
	passed   int
	failed   int
}

func (p *progressTracker) record(result domain.TestResult) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if result.Status == domain.StatusFailed {
		p.failed++
	} else {
		p.passed++
	}
	if p.progress != nil {
		p.progress.Update(p.passed, p.failed)
	}
}
