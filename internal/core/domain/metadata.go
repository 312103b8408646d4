package domain

// Table is row-oriented structured content parsed from a metadata file.
// Rows are aligned with Columns; missing cells are empty strings.
type Table struct {
	Columns []string
	Rows    [][]string
}
