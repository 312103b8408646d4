package driven

// ReaderRegistry dispatches a file path to the reader responsible for
// its extension.
type ReaderRegistry interface {
	// Get returns the first registered reader whose extension set
	// contains the path's final suffix (exact-case match). Registration
	// order is deterministic and first match wins. When no reader
	// matches, Get returns a fallback reader whose ReadFile always
	// fails with domain.ErrUnsupportedFormat.
	Get(path string) FormatReader

	// Register appends a reader to the registry.
	Register(reader FormatReader)

	// Extensions returns all registered extensions in registration order.
	Extensions() []string
}
