// Package corpus implements the tabular corpus assembled from read
// documents, and the join of sidecar metadata onto it.
package corpus

import (
	"fmt"
	"sort"

	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/corpora-cli/internal/core/domain"
)

// Intrinsic column names. The name column doubles as the title column.
const (
	ColName    = "name"
	ColPath    = "path"
	ColContent = "content"
)

// Corpus is one row per successfully read document. Row order is fixed
// at construction: metadata joins append columns positionally and must
// never remove or reorder rows.
type Corpus struct {
	columns []string
	rows    [][]string

	// categories holds the per-row category value when the batch spans
	// more than one distinct category; nil otherwise.
	categories     []string
	categoryValues []string
}

// Build assembles a corpus from the accumulated records. It returns nil
// when records is empty: the fatal no-documents condition belongs to the
// scan phase, an empty record list here means every candidate failed.
//
// Name, path and content are normalised to Unicode NFC so decomposed
// sequences compare equal to their precomposed forms. The category
// column is created only when more than one distinct category occurs,
// with its values sorted so the encoding is stable across runs.
func Build(records []domain.TextRecord) *Corpus {
	if len(records) == 0 {
		return nil
	}

	c := &Corpus{
		columns: []string{ColName, ColPath, ColContent},
		rows:    make([][]string, 0, len(records)),
	}

	distinct := make(map[string]struct{})
	categories := make([]string, 0, len(records))
	for _, r := range records {
		c.rows = append(c.rows, []string{
			norm.NFC.String(r.Name),
			norm.NFC.String(r.Path),
			norm.NFC.String(r.Content),
		})
		distinct[r.Category] = struct{}{}
		categories = append(categories, r.Category)
	}

	if len(distinct) > 1 {
		values := make([]string, 0, len(distinct))
		for v := range distinct {
			values = append(values, v)
		}
		sort.Strings(values)
		c.categories = categories
		c.categoryValues = values
	}

	return c
}

// Len returns the number of rows.
func (c *Corpus) Len() int {
	return len(c.rows)
}

// Columns returns the column names in order.
func (c *Corpus) Columns() []string {
	out := make([]string, len(c.columns))
	copy(out, c.columns)
	return out
}

// Row returns a copy of row i.
func (c *Corpus) Row(i int) []string {
	out := make([]string, len(c.rows[i]))
	copy(out, c.rows[i])
	return out
}

// Column returns the values of the named column in row order, or nil
// when the column does not exist.
func (c *Corpus) Column(name string) []string {
	idx := -1
	for i, col := range c.columns {
		if col == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	out := make([]string, len(c.rows))
	for i, row := range c.rows {
		out[i] = row[idx]
	}
	return out
}

// TitleColumn returns the name of the conceptual title/display column.
func (c *Corpus) TitleColumn() string {
	return ColName
}

// HasCategory reports whether the corpus carries a categorical column.
func (c *Corpus) HasCategory() bool {
	return c.categories != nil
}

// CategoryValues returns the sorted distinct category values, or nil
// when the corpus has no categorical column.
func (c *Corpus) CategoryValues() []string {
	if c.categoryValues == nil {
		return nil
	}
	out := make([]string, len(c.categoryValues))
	copy(out, c.categoryValues)
	return out
}

// Categories returns the per-row category values, or nil when the
// corpus has no categorical column.
func (c *Corpus) Categories() []string {
	if c.categories == nil {
		return nil
	}
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// AppendColumn adds a string column aligned with the existing rows and
// returns the name actually used, uniquified against existing columns.
// values must have exactly Len entries.
func (c *Corpus) AppendColumn(name string, values []string) (string, error) {
	if len(values) != len(c.rows) {
		return "", fmt.Errorf("column %q: %d values for %d rows", name, len(values), len(c.rows))
	}
	unique := uniqueColumnName(c.columns, name)
	c.columns = append(c.columns, unique)
	for i := range c.rows {
		c.rows[i] = append(c.rows[i], values[i])
	}
	return unique, nil
}

// uniqueColumnName makes name unique against existing by appending the
// lowest free " (n)" suffix, counting from 1.
func uniqueColumnName(existing []string, name string) string {
	taken := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		taken[e] = struct{}{}
	}
	if _, ok := taken[name]; !ok {
		return name
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s (%d)", name, n)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}
