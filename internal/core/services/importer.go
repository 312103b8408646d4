package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/custodia-labs/corpora-cli/internal/core/domain"
	"github.com/custodia-labs/corpora-cli/internal/core/ports/driven"
	"github.com/custodia-labs/corpora-cli/internal/core/ports/driving"
	"github.com/custodia-labs/corpora-cli/internal/corpus"
	"github.com/custodia-labs/corpora-cli/internal/logger"
)

// DefaultFormats are the accepted document formats when none are
// configured.
var DefaultFormats = []string{"docx", "odt", "txt", "pdf", "xml"}

// metaPatterns select the sidecar metadata files.
var metaPatterns = []string{"*.csv", "*.yaml", "*.yml"}

// Ensure ImportService implements the interface.
var _ driving.Importer = (*ImportService)(nil)

// ImportService runs the document ingestion pipeline: scan, read,
// assemble, join. It runs synchronously on the caller's goroutine;
// callers wanting a responsive front-end run it on a worker and cancel
// through the context.
type ImportService struct {
	root     string
	formats  []string
	exclude  []string
	collapse bool

	registry driven.ReaderRegistry
	scanner  driven.Scanner
	remote   driven.RemoteReader

	progress driving.ProgressFunc
}

// Option configures an ImportService.
type Option func(*ImportService)

// WithFormats overrides the accepted document formats.
func WithFormats(formats []string) Option {
	return func(s *ImportService) {
		if len(formats) > 0 {
			s.formats = formats
		}
	}
}

// WithExcludePatterns sets additional exclude globs for the scan.
func WithExcludePatterns(patterns []string) Option {
	return func(s *ImportService) {
		s.exclude = patterns
	}
}

// WithProgress sets the progress notification sink.
func WithProgress(fn driving.ProgressFunc) Option {
	return func(s *ImportService) {
		s.progress = fn
	}
}

// WithCollapseWhitespace enables whitespace-collapsing normalisation of
// document content.
func WithCollapseWhitespace(collapse bool) Option {
	return func(s *ImportService) {
		s.collapse = collapse
	}
}

// WithRemoteReader switches the service into URL mode: paths are URLs
// read through the given download-and-delegate reader.
func WithRemoteReader(remote driven.RemoteReader) Option {
	return func(s *ImportService) {
		s.remote = remote
	}
}

// NewImportService creates a pipeline over root. The root is normalised
// to end in a separator so metadata path fragments can be prefixed with
// it directly.
func NewImportService(
	root string,
	registry driven.ReaderRegistry,
	scanner driven.Scanner,
	opts ...Option,
) *ImportService {
	s := &ImportService{
		formats:  DefaultFormats,
		registry: registry,
		scanner:  scanner,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.remote != nil {
		if !strings.HasSuffix(root, "/") {
			root += "/"
		}
	} else if !strings.HasSuffix(root, string(os.PathSeparator)) {
		root += string(os.PathSeparator)
	}
	s.root = root
	return s
}

// Run executes the pipeline. It returns domain.ErrNoDocuments when the
// document scan yields no candidates; every other per-file failure is
// accumulated into the result's error list. A cancelled run returns the
// partial result with Cancelled set and no corpus.
func (s *ImportService) Run(ctx context.Context) (*driving.RunResult, error) {
	logger.Info("Starting import for %s", s.root)

	records, textErrs, cancelled, err := s.readTextData(ctx)
	if err != nil {
		return nil, err
	}
	if cancelled {
		logger.Info("Import cancelled after %d documents", len(records))
		return &driving.RunResult{
			Records:   records,
			Errors:    renderErrors(textErrs, nil),
			Cancelled: true,
		}, nil
	}

	tables, metaErrs, cancelled := s.readMetaData(ctx)
	if cancelled {
		logger.Info("Import cancelled during metadata pass")
		return &driving.RunResult{
			Records:   records,
			Errors:    renderErrors(textErrs, metaErrs),
			Cancelled: true,
		}, nil
	}

	c := corpus.Build(records)
	if c != nil {
		if err := corpus.Join(c, corpus.Concat(tables), s.root); err != nil {
			return nil, fmt.Errorf("join metadata: %w", err)
		}
	}

	logger.Info("Import complete: %d documents, %d errors", len(records), len(textErrs)+len(metaErrs))
	return &driving.RunResult{
		Corpus:  c,
		Records: records,
		Errors:  renderErrors(textErrs, metaErrs),
	}, nil
}

// readTextData scans for document files and reads each one in scan
// order, accumulating successes and failures separately. Progress is
// emitted after each completed item; cancellation is observed at the
// same granularity.
func (s *ImportService) readTextData(ctx context.Context) ([]domain.TextRecord, []domain.ReadError, bool, error) {
	patterns := make([]string, 0, len(s.formats))
	for _, format := range s.formats {
		patterns = append(patterns, "*."+strings.ToLower(format))
	}

	paths, scanErr := s.scanner.Scan(ctx, s.root, patterns, s.exclude)
	if scanErr != nil && !errors.Is(scanErr, domain.ErrListingUnavailable) {
		return nil, nil, false, fmt.Errorf("scan documents: %w", scanErr)
	}
	if len(paths) == 0 {
		if scanErr != nil {
			return nil, nil, false, fmt.Errorf("%w: %w", domain.ErrNoDocuments, scanErr)
		}
		return nil, nil, false, domain.ErrNoDocuments
	}

	var records []domain.TextRecord
	var readErrs []domain.ReadError
	var batch []domain.TextRecord

	for _, path := range paths {
		logger.Debug("Reading %s", path)
		record, readErr := s.readDocument(ctx, path)
		if readErr != nil {
			readErrs = append(readErrs, *readErr)
		} else {
			records = append(records, *record)
			batch = append(batch, *record)
		}

		if len(batch) == 1 && s.progress != nil {
			s.progress(driving.Progress{
				Fraction: float64(len(records)) / float64(len(paths)),
				LastPath: path,
				Batch:    batch,
			})
			batch = nil
		}

		if ctx.Err() != nil {
			return records, readErrs, true, nil
		}
	}

	return records, readErrs, false, nil
}

// readMetaData scans for sidecar metadata files and parses each into a
// structured table, in scan order. A remote listing failure surfaces as
// one error entry and an empty table set.
func (s *ImportService) readMetaData(ctx context.Context) ([]*domain.Table, []domain.ReadError, bool) {
	paths, scanErr := s.scanner.Scan(ctx, s.root, metaPatterns, s.exclude)
	if scanErr != nil {
		return nil, []domain.ReadError{{
			Path:   s.root,
			Label:  "metadata scan",
			Detail: scanErr.Error(),
		}}, false
	}

	var tables []*domain.Table
	var readErrs []domain.ReadError

	for _, path := range paths {
		logger.Debug("Reading metadata %s", path)
		table, readErr := s.readTable(ctx, path)
		if readErr != nil {
			readErrs = append(readErrs, *readErr)
		} else {
			tables = append(tables, table)
		}

		if ctx.Err() != nil {
			return tables, readErrs, true
		}
	}

	return tables, readErrs, false
}

// readDocument is the per-file failure boundary: no error or panic from
// a reader escapes it. Failures are converted into a ReadError labelled
// with the file's display name.
func (s *ImportService) readDocument(ctx context.Context, path string) (record *domain.TextRecord, readErr *domain.ReadError) {
	defer func() {
		if rec := recover(); rec != nil {
			record = nil
			readErr = newReadError(path, fmt.Errorf("reader panic: %v", rec))
		}
	}()

	payload, extensions, err := s.readPayload(ctx, path)
	if err != nil {
		return nil, newReadError(path, err)
	}
	if payload.Text == "" && payload.Table != nil {
		return nil, newReadError(path, fmt.Errorf("structured content where document text expected: %w", domain.ErrInvalidInput))
	}

	return deriveRecord(path, payload.Text, extensions, s.collapse, s.remote != nil), nil
}

// readTable reads one metadata file behind the same failure boundary as
// readDocument.
func (s *ImportService) readTable(ctx context.Context, path string) (table *domain.Table, readErr *domain.ReadError) {
	defer func() {
		if rec := recover(); rec != nil {
			table = nil
			readErr = newReadError(path, fmt.Errorf("reader panic: %v", rec))
		}
	}()

	payload, _, err := s.readPayload(ctx, path)
	if err != nil {
		return nil, newReadError(path, err)
	}
	if payload.Table == nil {
		return nil, newReadError(path, fmt.Errorf("no structured content: %w", domain.ErrInvalidInput))
	}
	return payload.Table, nil
}

// readPayload dispatches one path to the matching reader: local format
// dispatch by default, the remote download-and-delegate reader in URL
// mode. It also reports the extensions the resulting record carries.
func (s *ImportService) readPayload(ctx context.Context, path string) (*driven.Payload, []string, error) {
	if s.remote != nil {
		payload, err := s.remote.ReadURL(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		return payload, []string{urlSuffix(path)}, nil
	}

	reader := s.registry.Get(path)
	payload, err := reader.ReadFile(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	return payload, reader.Extensions(), nil
}

// newReadError builds the ReadError for one failed file and logs the
// diagnostic; the error itself never propagates further.
func newReadError(path string, err error) *domain.ReadError {
	logger.Debug("Failed to read %s: %v", path, err)
	return &domain.ReadError{
		Path:   path,
		Label:  displayName(path),
		Detail: err.Error(),
	}
}

// renderErrors flattens the accumulated read errors into the returned
// error strings, text errors first, then metadata errors.
func renderErrors(textErrs, metaErrs []domain.ReadError) []string {
	out := make([]string, 0, len(textErrs)+len(metaErrs))
	for _, e := range textErrs {
		out = append(out, e.String())
	}
	for _, e := range metaErrs {
		out = append(out, e.String())
	}
	return out
}
