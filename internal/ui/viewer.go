package ui

import "suitekit/internal/domain"

// Viewer displays run failures interactively
type Viewer interface {
	View(results *domain.TestResultsOutput) error
}

var _ Viewer = (*ErrorViewer)(nil)
