package domain

import "fmt"

// ReadError records one file that failed to read or parse.
// It is reporting data, never joined into the corpus.
type ReadError struct {
	// Path is the full source identifier of the failed file.
	Path string

	// Label is the short human label, typically the file's display name.
	Label string

	// Detail is the diagnostic message from the underlying failure.
	Detail string
}

// String renders the human-readable error line shown to callers.
func (e ReadError) String() string {
	return fmt.Sprintf("%s: %s", e.Label, e.Detail)
}
