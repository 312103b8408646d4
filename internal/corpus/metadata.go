package corpus

import (
	"github.com/custodia-labs/corpora-cli/internal/core/domain"
	"github.com/custodia-labs/corpora-cli/internal/logger"
)

// FileKeyColumn is the well-known metadata column holding the path
// fragment, relative to the scan root, that ties a row to a document.
const FileKeyColumn = "Text file"

// MetadataTable is the concatenation of all parsed metadata files.
// Columns are the union of the source tables' columns in first-seen
// order; cells absent from a source table are empty.
type MetadataTable struct {
	columns []string
	rows    [][]string
}

// Concat builds a MetadataTable from tables in scan order. It returns
// nil when no tables were read.
func Concat(tables []*domain.Table) *MetadataTable {
	if len(tables) == 0 {
		return nil
	}

	m := &MetadataTable{}
	colIdx := make(map[string]int)
	for _, t := range tables {
		for _, col := range t.Columns {
			if _, ok := colIdx[col]; !ok {
				colIdx[col] = len(m.columns)
				m.columns = append(m.columns, col)
			}
		}
	}
	for _, t := range tables {
		for _, src := range t.Rows {
			row := make([]string, len(m.columns))
			for i, col := range t.Columns {
				if i < len(src) {
					row[colIdx[col]] = src[i]
				}
			}
			m.rows = append(m.rows, row)
		}
	}
	return m
}

// Len returns the number of rows.
func (m *MetadataTable) Len() int {
	return len(m.rows)
}

// Columns returns the column names in order.
func (m *MetadataTable) Columns() []string {
	out := make([]string, len(m.columns))
	copy(out, m.columns)
	return out
}

// Join appends the metadata columns onto the corpus. It is a no-op when
// the corpus is nil, the table is nil, or the table has no file-key
// column. Each row's lookup key is root prefixed to its file-key value;
// duplicate keys keep the first occurrence in scan order. Rows are
// matched to the corpus via its path column, preserving corpus row
// order; unmatched corpus rows get empty values. Every column except
// the key itself is appended under a name uniquified against the
// corpus's existing columns.
func Join(c *Corpus, m *MetadataTable, root string) error {
	if c == nil || m == nil {
		return nil
	}
	keyIdx := -1
	for i, col := range m.columns {
		if col == FileKeyColumn {
			keyIdx = i
			break
		}
	}
	if keyIdx < 0 {
		return nil
	}

	// First occurrence wins on duplicate keys.
	byKey := make(map[string][]string, len(m.rows))
	for _, row := range m.rows {
		key := root + row[keyIdx]
		if _, ok := byKey[key]; ok {
			logger.Debug("Duplicate metadata key dropped: %s", key)
			continue
		}
		byKey[key] = row
	}

	paths := c.Column(ColPath)
	for i, col := range m.columns {
		if i == keyIdx {
			continue
		}
		values := make([]string, len(paths))
		for j, p := range paths {
			if row, ok := byKey[p]; ok {
				values[j] = row[i]
			}
		}
		if _, err := c.AppendColumn(col, values); err != nil {
			return err
		}
	}
	return nil
}
