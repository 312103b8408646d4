// Package csvmeta reads tabular sidecar metadata files. The parsed
// table stays structured; it is never flattened to document text.
package csvmeta

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/custodia-labs/corpora-cli/internal/core/domain"
	"github.com/custodia-labs/corpora-cli/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.FormatReader = (*Reader)(nil)

// Reader handles CSV metadata files.
type Reader struct{}

// New creates a new CSV metadata reader.
func New() *Reader {
	return &Reader{}
}

// Extensions returns the suffixes this reader handles.
func (r *Reader) Extensions() []string {
	return []string{".csv"}
}

// ReadFile parses the file into a row/column table. The first record is
// the header; short rows are padded so every row aligns with it.
func (r *Reader) ReadFile(_ context.Context, path string) (*driven.Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty csv: %w", domain.ErrInvalidInput)
	}

	header := records[0]
	table := &domain.Table{Columns: header}
	for _, record := range records[1:] {
		row := make([]string, len(header))
		copy(row, record)
		table.Rows = append(table.Rows, row)
	}

	return &driven.Payload{Table: table}, nil
}
