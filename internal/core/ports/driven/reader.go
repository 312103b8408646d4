package driven

import (
	"context"

	"github.com/custodia-labs/corpora-cli/internal/core/domain"
)

// Payload is the raw output of a format reader before record derivation.
// Document formats populate Text; metadata formats populate Table and
// leave Text empty.
type Payload struct {
	// Text is the extracted plain text of a document format.
	Text string

	// Table is the structured content of a metadata format. CSV files
	// parse into a multi-row table; YAML mappings into a one-row table.
	Table *domain.Table
}

// FormatReader extracts content from files of one recognised format.
// Implementations must not let parse panics or errors escape undeclared:
// every failure is returned as an error for the read boundary to convert
// into a domain.ReadError.
type FormatReader interface {
	// Extensions returns the file suffixes this reader handles,
	// including the leading dot (e.g. [".pdf"]).
	Extensions() []string

	// ReadFile extracts the file's content.
	ReadFile(ctx context.Context, path string) (*Payload, error)
}
