package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNoDocuments indicates the document scan yielded zero candidate
	// paths. This is the only fatal condition: the run produces no corpus.
	ErrNoDocuments = errors.New("no documents found")

	// ErrUnsupportedFormat indicates no reader is registered for a
	// file's extension.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrListingUnavailable indicates the remote listing service could
	// not be reached. The scan treats this as zero files but surfaces
	// the condition so callers can distinguish it from an empty listing.
	ErrListingUnavailable = errors.New("remote listing unavailable")
)
