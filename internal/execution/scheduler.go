package execution

import "suitekit/internal/suite"

// Scheduler distributes invocations across workers
type Scheduler interface {
	Schedule(invs []*suite.Invocation, workerCount int) [][]*suite.Invocation
}

// RoundRobinScheduler distributes invocations evenly across workers
type RoundRobinScheduler struct{}

// NewRoundRobinScheduler creates a new RoundRobinScheduler
func NewRoundRobinScheduler() *RoundRobinScheduler {
	return &RoundRobinScheduler{}
}

// Schedule distributes invocations evenly across workers using round-robin
func (s *RoundRobinScheduler) Schedule(invs []*suite.Invocation, workerCount int) [][]*suite.Invocation {
	if workerCount <= 0 {
		workerCount = 1
	}

	distribution := make([][]*suite.Invocation, workerCount)
	for i := range distribution {
		distribution[i] = make([]*suite.Invocation, 0)
	}

	for i, inv := range invs {
		workerIndex := i % workerCount
		distribution[workerIndex] = append(distribution[workerIndex], inv)
	}

	return distribution
}
