package storage

import (
	"context"

	"suitekit/internal/config"
	"suitekit/internal/domain"
)

// Storage persists and loads the last run report (e.g. for the faills viewer).
type Storage interface {
	// SaveOutput writes the full report, replacing the previous one.
	SaveOutput(output *domain.TestResultsOutput) error
	Load() (*domain.TestResultsOutput, error)
}

// History keeps every run for later inspection.
type History interface {
	Record(ctx context.Context, output *domain.TestResultsOutput) error
	Runs(ctx context.Context, limit int) ([]domain.TestResultsMeta, error)
	Close() error
}

// JSONStorage stores results in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
