package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/corpora-cli/internal/corpus"
)

// RunRecord is a completed import run to persist.
type RunRecord struct {
	// ID is the unique identifier for the run.
	ID string

	// Root is the scan root the run ingested.
	Root string

	// StartedAt is when the run began.
	StartedAt time.Time

	// Corpus is the assembled table; may be nil for a failed run.
	Corpus *corpus.Corpus

	// Errors are the human-readable per-file error entries.
	Errors []string
}

// CorpusStore persists import runs.
type CorpusStore interface {
	// SaveRun stores the run, its corpus rows and its error entries.
	SaveRun(ctx context.Context, run *RunRecord) error

	// Close releases resources.
	Close() error
}
