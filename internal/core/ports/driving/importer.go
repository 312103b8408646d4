package driving

import (
	"context"

	"github.com/custodia-labs/corpora-cli/internal/core/domain"
	"github.com/custodia-labs/corpora-cli/internal/corpus"
)

// Progress is one progress notification from a running import.
type Progress struct {
	// Fraction is documents completed so far over the candidate count,
	// in [0, 1].
	Fraction float64

	// LastPath is the most recently processed path.
	LastPath string

	// Batch holds the records accumulated since the previous report.
	Batch []domain.TextRecord
}

// ProgressFunc receives progress notifications. The pipeline calls it
// on its own goroutine; implementations must not block for long.
type ProgressFunc func(Progress)

// RunResult is the outcome of one import run.
type RunResult struct {
	// Corpus is the assembled table, or nil when every candidate failed
	// to read or the run was cancelled.
	Corpus *corpus.Corpus

	// Records are the successfully read documents in scan order. On a
	// cancelled run they carry the partial accumulation read before the
	// cancellation point.
	Records []domain.TextRecord

	// Errors lists one human-readable entry per failed document or
	// metadata file, text errors first.
	Errors []string

	// Cancelled reports that the run stopped early at a cancellation
	// point. Records and errors accumulated up to that point are kept
	// but no corpus is built.
	Cancelled bool
}

// Importer runs the document ingestion pipeline.
type Importer interface {
	// Run scans for documents, reads them, reads sidecar metadata,
	// assembles the corpus and joins the metadata onto it. It returns
	// domain.ErrNoDocuments when the document scan finds no candidates.
	// Cancellation is observed through ctx once per completed document.
	Run(ctx context.Context) (*RunResult, error)
}
