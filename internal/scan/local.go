// Package scan enumerates candidate file paths under a scan root,
// either a local directory tree or a remote file listing, with
// include/exclude glob filtering.
package scan

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/custodia-labs/corpora-cli/internal/core/ports/driven"
)

// hiddenGlob matches the directory names that are never descended into.
const hiddenGlob = ".*"

// Ensure Local implements the interface.
var _ driven.Scanner = (*Local)(nil)

// Local walks a directory tree.
type Local struct{}

// NewLocal creates a local filesystem scanner.
func NewLocal() *Local {
	return &Local{}
}

// Scan recursively walks root, pruning hidden directories before
// descending into them, and keeps each file whose lowercased name
// matches at least one include pattern and no exclude pattern. Patterns
// themselves keep their case. Paths are returned in walk order.
func (l *Local) Scan(ctx context.Context, root string, include, exclude []string) ([]string, error) {
	if include == nil {
		include = []string{"*"}
	}
	if exclude == nil {
		exclude = []string{hiddenGlob}
	}

	root = filepath.Clean(root)
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if path != root && matchesAny(d.Name(), []string{hiddenGlob}) {
				return fs.SkipDir
			}
			return nil
		}
		name := strings.ToLower(d.Name())
		if matchesAny(name, include) && !matchesAny(name, exclude) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// matchesAny reports whether name matches at least one glob pattern.
// Invalid patterns match nothing.
func matchesAny(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
