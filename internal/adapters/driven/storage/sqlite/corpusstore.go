// Package sqlite persists import runs for later inspection.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/corpora-cli/internal/core/ports/driven"
	"github.com/custodia-labs/corpora-cli/internal/corpus"
)

// Ensure Store implements the interface.
var _ driven.CorpusStore = (*Store)(nil)

// Store is a SQLite-backed corpus run store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a store under dataDir.
// If dataDir is empty, defaults to ~/.corpora/data/corpora.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".corpora", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "corpora.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// SaveRun stores the run, its corpus rows and its error entries in one
// transaction.
func (s *Store) SaveRun(ctx context.Context, run *driven.RunRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	documentCount := 0
	if run.Corpus != nil {
		documentCount = run.Corpus.Len()
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, root, started_at, document_count, error_count) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Root, run.StartedAt.UTC(), documentCount, len(run.Errors),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	if run.Corpus != nil {
		if err := insertDocuments(ctx, tx, run.ID, run.Corpus); err != nil {
			return err
		}
	}

	for i, message := range run.Errors {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO run_errors (run_id, position, message) VALUES (?, ?, ?)`,
			run.ID, i, message,
		)
		if err != nil {
			return fmt.Errorf("insert run error: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// insertDocuments writes one row per corpus row. Metadata columns
// beyond the intrinsic three are stored as a JSON object per document.
func insertDocuments(ctx context.Context, tx *sql.Tx, runID string, c *corpus.Corpus) error {
	columns := c.Columns()
	categories := c.Categories()

	for i := 0; i < c.Len(); i++ {
		row := c.Row(i)

		extras := make(map[string]string)
		for j, col := range columns {
			switch col {
			case corpus.ColName, corpus.ColPath, corpus.ColContent:
			default:
				extras[col] = row[j]
			}
		}
		extrasJSON, err := json.Marshal(extras)
		if err != nil {
			return fmt.Errorf("encode metadata columns: %w", err)
		}

		category := ""
		if categories != nil {
			category = categories[i]
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO documents (run_id, position, name, path, category, content, extras)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, i, row[0], row[1], category, row[2], string(extrasJSON),
		)
		if err != nil {
			return fmt.Errorf("insert document: %w", err)
		}
	}
	return nil
}

// migrate creates the schema when missing.
func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			root TEXT NOT NULL,
			started_at DATETIME NOT NULL,
			document_count INTEGER NOT NULL,
			error_count INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS documents (
			run_id TEXT NOT NULL REFERENCES runs(id),
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			path TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL,
			extras TEXT NOT NULL DEFAULT '{}',
			PRIMARY KEY (run_id, position)
		);
		CREATE TABLE IF NOT EXISTS run_errors (
			run_id TEXT NOT NULL REFERENCES runs(id),
			position INTEGER NOT NULL,
			message TEXT NOT NULL,
			PRIMARY KEY (run_id, position)
		);
	`)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
