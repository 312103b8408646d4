// Package yamlmeta reads key-value sidecar metadata files. The parsed
// mapping stays structured; it is never flattened to document text.
package yamlmeta

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/goccy/go-yaml"

	"github.com/custodia-labs/corpora-cli/internal/core/domain"
	"github.com/custodia-labs/corpora-cli/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.FormatReader = (*Reader)(nil)

// Reader handles YAML metadata files.
type Reader struct{}

// New creates a new YAML metadata reader.
func New() *Reader {
	return &Reader{}
}

// Extensions returns the suffixes this reader handles.
func (r *Reader) Extensions() []string {
	return []string{".yaml", ".yml"}
}

// ReadFile parses the file into a mapping and returns it as a one-row
// table with columns in sorted key order, so repeated runs produce the
// same column ordering.
func (r *Reader) ReadFile(_ context.Context, path string) (*driven.Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var mapping map[string]any
	if err := yaml.Unmarshal(data, &mapping); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if mapping == nil {
		return nil, fmt.Errorf("yaml is not a mapping: %w", domain.ErrInvalidInput)
	}

	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	row := make([]string, len(keys))
	for i, k := range keys {
		row[i] = fmt.Sprint(mapping[k])
	}

	return &driven.Payload{Table: &domain.Table{Columns: keys, Rows: [][]string{row}}}, nil
}
