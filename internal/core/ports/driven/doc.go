// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the pipeline to function:
//
//   - FormatReader: Extracts content from one recognised file format
//   - ReaderRegistry: Dispatches a path to the reader for its extension
//   - Scanner: Enumerates candidate paths under a root location
//
// # Optional Interfaces
//
// These can be nil - the pipeline degrades gracefully:
//
//   - FileLister: Remote listing client. Only needed for URL roots.
//   - RemoteReader: Download-and-delegate reader. Only needed for URL roots.
//   - CorpusStore: Run persistence. Without it, results are in-memory only.
//
// # Import Rules
//
//   - Can Import: domain and corpus packages only
//   - Cannot Import: Any adapter, reader, or scanner package
package driven
