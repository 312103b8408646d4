package domain

// CategoryNone is the category assigned to documents whose path has no
// parent directory segment to derive a label from.
const CategoryNone = "none"

// TextRecord represents one successfully read document.
// It is immutable after creation and owned by the run that produced it.
type TextRecord struct {
	// Name is the file stem without extension.
	Name string

	// Path is the full source identifier (local path or URL).
	Path string

	// Extensions is the ordered sequence of suffixes (e.g. [".pdf"]).
	Extensions []string

	// Category is derived from the immediate parent directory name,
	// or CategoryNone when the path has no parent segment.
	Category string

	// Content is the extracted plain text.
	Content string
}
