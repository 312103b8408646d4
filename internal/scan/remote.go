package scan

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/corpora-cli/internal/core/domain"
	"github.com/custodia-labs/corpora-cli/internal/core/ports/driven"
	"github.com/custodia-labs/corpora-cli/internal/logger"
)

// Ensure Remote implements the interface.
var _ driven.Scanner = (*Remote)(nil)

// Remote scans a flat remote file listing.
type Remote struct {
	lister driven.FileLister
}

// NewRemote creates a scanner backed by a remote listing service.
func NewRemote(lister driven.FileLister) *Remote {
	return &Remote{lister: lister}
}

// Scan requests the listing under base and applies the include/exclude
// globs to each full constructed path, lowercased. When the listing
// service cannot be reached the result is empty and the error wraps
// domain.ErrListingUnavailable, so callers can tell a dead service from
// a genuinely empty location.
func (r *Remote) Scan(ctx context.Context, base string, include, exclude []string) ([]string, error) {
	if include == nil {
		include = []string{"*"}
	}
	if exclude == nil {
		exclude = []string{hiddenGlob}
	}

	files, err := r.lister.List(ctx, base)
	if err != nil {
		logger.Warn("Remote listing failed for %s: %v", base, err)
		return nil, fmt.Errorf("%w: %w", domain.ErrListingUnavailable, err)
	}

	var paths []string
	for _, file := range files {
		path := base + file
		lowered := strings.ToLower(path)
		if matchesAnyPath(lowered, include) && !matchesAnyPath(lowered, exclude) {
			paths = append(paths, path)
		}
	}
	return paths, nil
}

// matchesAnyPath reports whether the path matches at least one pattern.
// Unlike file-name globbing, "*" here crosses path separators, since
// patterns apply to the full constructed URL string.
func matchesAnyPath(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchPath(pattern, path) {
			return true
		}
	}
	return false
}

// matchPath matches a shell-style glob where "*" matches any sequence
// of characters, separators included, and "?" matches one character.
func matchPath(pattern, s string) bool {
	re := globToRegexp(pattern)
	if re == nil {
		return false
	}
	return re.MatchString(s)
}

func globToRegexp(pattern string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil
	}
	return re
}
