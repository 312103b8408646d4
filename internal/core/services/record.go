package services

import (
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/custodia-labs/corpora-cli/internal/core/domain"
)

// whitespaceRun matches any run of whitespace for the optional
// collapsing normalisation.
var whitespaceRun = regexp.MustCompile(`\s+`)

// deriveRecord builds a TextRecord from a successfully extracted file:
// the path's stem becomes the name, the immediate parent directory the
// category.
func deriveRecord(p, content string, extensions []string, collapse, isURL bool) *domain.TextRecord {
	if collapse {
		content = whitespaceRun.ReplaceAllString(content, " ")
	}
	exts := make([]string, len(extensions))
	copy(exts, extensions)
	return &domain.TextRecord{
		Name:       stem(p, isURL),
		Path:       p,
		Extensions: exts,
		Category:   category(p, isURL),
		Content:    content,
	}
}

// displayName returns the file's base name, used as the short label of
// a ReadError.
func displayName(p string) string {
	if strings.Contains(p, "://") {
		if u, err := url.Parse(p); err == nil {
			return path.Base(u.Path)
		}
	}
	return filepath.Base(p)
}

// stem returns the base name without its final suffix.
func stem(p string, isURL bool) string {
	base := baseName(p, isURL)
	return strings.TrimSuffix(base, path.Ext(base))
}

// category returns the name of the path's immediate parent directory,
// or domain.CategoryNone when the path has no parent segment.
func category(p string, isURL bool) string {
	var dir string
	if isURL {
		if u, err := url.Parse(p); err == nil {
			dir = path.Base(path.Dir(u.Path))
		}
	} else {
		dir = filepath.Base(filepath.Dir(p))
	}
	if dir == "" || dir == "." || dir == "/" || dir == string(filepath.Separator) {
		return domain.CategoryNone
	}
	return dir
}

// urlSuffix returns the final suffix of the URL's path component.
func urlSuffix(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		return path.Ext(u.Path)
	}
	return path.Ext(rawURL)
}

func baseName(p string, isURL bool) string {
	if isURL {
		if u, err := url.Parse(p); err == nil {
			return path.Base(u.Path)
		}
		return path.Base(p)
	}
	return filepath.Base(p)
}
