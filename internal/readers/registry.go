// Package readers provides the extension-keyed reader registry and the
// FormatReader implementations for each supported file format.
//
// Readers are registered with the Registry at startup. Dispatch is a
// lookup over the registered extension sets: adding a format means
// adding a reader package and one Register call, nothing else.
package readers

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/corpora-cli/internal/core/domain"
	"github.com/custodia-labs/corpora-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ReaderRegistry = (*Registry)(nil)

// Registry maps file extensions to format readers. Registration order
// is preserved: when two readers declare the same extension, the first
// registered wins.
type Registry struct {
	readers []driven.FormatReader
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a reader to the registry.
func (r *Registry) Register(reader driven.FormatReader) {
	r.readers = append(r.readers, reader)
}

// Get returns the first registered reader whose extension set contains
// the path's final suffix. The suffix comparison is exact-case on the
// literal suffix text. When no reader matches, Get returns a fallback
// whose ReadFile always fails.
func (r *Registry) Get(path string) driven.FormatReader {
	ext := filepath.Ext(path)
	for _, reader := range r.readers {
		for _, e := range reader.Extensions() {
			if e == ext {
				return reader
			}
		}
	}
	return &fallbackReader{ext: ext}
}

// Extensions returns all registered extensions in registration order.
func (r *Registry) Extensions() []string {
	var exts []string
	for _, reader := range r.readers {
		exts = append(exts, reader.Extensions()...)
	}
	return exts
}

// fallbackReader is the explicit "unsupported format" variant returned
// for unregistered extensions.
type fallbackReader struct {
	ext string
}

func (f *fallbackReader) Extensions() []string {
	return nil
}

func (f *fallbackReader) ReadFile(_ context.Context, _ string) (*driven.Payload, error) {
	return nil, fmt.Errorf("no reader for %q: %w", f.ext, domain.ErrUnsupportedFormat)
}
