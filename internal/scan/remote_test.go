package scan

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/corpora-cli/internal/core/domain"
)

// fakeLister serves a fixed listing or a fixed error.
type fakeLister struct {
	files []string
	err   error
}

func (f *fakeLister) List(_ context.Context, _ string) ([]string, error) {
	return f.files, f.err
}

func TestRemote_Scan(t *testing.T) {
	lister := &fakeLister{files: []string{"a.txt", "sub/b.txt", "sub/c.pdf"}}
	scanner := NewRemote(lister)

	paths, err := scanner.Scan(context.Background(), "http://host/data/", []string{"*.txt"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"http://host/data/a.txt",
		"http://host/data/sub/b.txt",
	}, paths)
}

func TestRemote_Scan_PatternsCrossSegments(t *testing.T) {
	// Include globs apply to the full URL, so "*" must match through
	// path separators.
	lister := &fakeLister{files: []string{"deep/nested/doc.txt"}}
	scanner := NewRemote(lister)

	paths, err := scanner.Scan(context.Background(), "http://host/", []string{"*.txt"}, nil)
	require.NoError(t, err)
	assert.Len(t, paths, 1)
}

func TestRemote_Scan_CaseInsensitive(t *testing.T) {
	lister := &fakeLister{files: []string{"REPORT.TXT"}}
	scanner := NewRemote(lister)

	paths, err := scanner.Scan(context.Background(), "http://host/", []string{"*.txt"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://host/REPORT.TXT"}, paths)
}

func TestRemote_Scan_ExcludeWins(t *testing.T) {
	lister := &fakeLister{files: []string{"keep.txt", "drop.txt"}}
	scanner := NewRemote(lister)

	paths, err := scanner.Scan(context.Background(), "http://host/", []string{"*.txt"}, []string{"*drop*"})
	require.NoError(t, err)
	assert.Equal(t, []string{"http://host/keep.txt"}, paths)
}

func TestRemote_Scan_ListingUnavailable(t *testing.T) {
	cause := errors.New("connection refused")
	scanner := NewRemote(&fakeLister{err: cause})

	paths, err := scanner.Scan(context.Background(), "http://host/", nil, nil)
	assert.Nil(t, paths)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrListingUnavailable)
	assert.ErrorIs(t, err, cause)
}

func TestMatchPath(t *testing.T) {
	tests := []struct {
		pattern string
		s       string
		want    bool
	}{
		{"*.txt", "http://host/a/b.txt", true},
		{"*.txt", "http://host/a/b.pdf", false},
		{"*b?.txt", "http://host/ab1.txt", true},
		{"http://host/*", "http://host/x/y", true},
		{"", "", true},
		{"", "x", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, matchPath(tt.pattern, tt.s), "pattern %q against %q", tt.pattern, tt.s)
	}
}
