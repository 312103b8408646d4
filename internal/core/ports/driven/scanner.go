package driven

import "context"

// Scanner enumerates candidate file paths under a root location.
// Implementations exist for local directory trees and remote listings.
type Scanner interface {
	// Scan returns the paths under root whose names match at least one
	// include pattern and no exclude pattern. Patterns are shell-style
	// globs matched against the lowercased candidate. A nil include set
	// matches everything; a nil exclude set defaults to hidden files
	// (".*"). The returned order is the walk order and callers must not
	// assume it is lexicographic.
	Scan(ctx context.Context, root string, include, exclude []string) ([]string, error)
}

// FileLister fetches a flat file listing from a remote listing service.
// The wire protocol is the service's concern; implementations return
// paths relative to the base URL, slash-separated.
type FileLister interface {
	List(ctx context.Context, base string) ([]string, error)
}
