package cli

import (
	"encoding/csv"
	"os"

	"github.com/custodia-labs/corpora-cli/internal/corpus"
)

// writeCSV exports the corpus to path, one row per document. The
// categorical column, when present, is emitted after the intrinsic
// columns under the header "category".
func writeCSV(path string, c *corpus.Corpus) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)

	header := c.Columns()
	categories := c.Categories()
	if categories != nil {
		header = append(header, "category")
	}
	if err := w.Write(header); err != nil {
		f.Close()
		return err
	}

	for i := 0; i < c.Len(); i++ {
		row := c.Row(i)
		if categories != nil {
			row = append(row, categories[i])
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
