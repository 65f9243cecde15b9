package execution

import (
	"context"
	"time"

	"suitekit/internal/domain"
	"suitekit/internal/suite"
)

// Executor executes a plan and returns results
type Executor interface {
	Execute(ctx context.Context, plan *suite.Plan) ([]domain.TestResult, time.Duration, error)
}

// Progress receives updates as invocations complete
type Progress interface {
	Update(successCount, failCount int)
	Finish()
}
