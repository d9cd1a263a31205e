package source

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/vanderheijden86/navtree/pkg/navtree"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS nodes (
	code  TEXT PRIMARY KEY,
	label TEXT NOT NULL
)`

// SQLiteStore keeps entries in a SQLite table and serves children on demand.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &LoadError{Source: "sqlite", Path: path, Cause: err}
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, &LoadError{Source: "sqlite", Path: path, Cause: fmt.Errorf("create schema: %w", err)}
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// Close releases the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Put inserts or updates entries in one transaction.
func (s *SQLiteStore) Put(ctx context.Context, entries navtree.Entries) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO nodes (code, label) VALUES (?, ?)
		 ON CONFLICT(code) DO UPDATE SET label = excluded.label`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries.Sorted() {
		if _, err := stmt.ExecContext(ctx, e.Code, e.Label); err != nil {
			return fmt.Errorf("put %q: %w", e.Code, err)
		}
	}
	return tx.Commit()
}

// Count returns the number of stored entries.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM nodes`).Scan(&n)
	return n, err
}

// Initial returns every stored code whose depth is at most maxDepth.
func (s *SQLiteStore) Initial(ctx context.Context, maxDepth int) (navtree.Entries, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT code, label FROM nodes`)
	if err != nil {
		return nil, &LoadError{Source: "sqlite", Path: s.path, Cause: err}
	}
	return scanEntries(rows, func(code string) bool {
		return navtree.Depth(code) <= maxDepth
	})
}

// Children returns the direct children of code.
func (s *SQLiteStore) Children(ctx context.Context, code string) (navtree.Entries, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT code, label FROM nodes WHERE code LIKE ? ESCAPE '\'`,
		escapeLike(code+navtree.Delimiter)+"%")
	if err != nil {
		return nil, &LoadError{Source: "sqlite", Path: s.path, Cause: err}
	}
	depth := navtree.Depth(code) + 1
	// LIKE ignores ASCII case in SQLite, so the prefix is checked again.
	return scanEntries(rows, func(child string) bool {
		return navtree.IsDescendant(child, code) && navtree.Depth(child) == depth
	})
}

// Load implements navtree.Loader.
func (s *SQLiteStore) Load(code string) (navtree.Entries, error) {
	return s.Children(context.Background(), code)
}

func scanEntries(rows *sql.Rows, keep func(code string) bool) (navtree.Entries, error) {
	defer rows.Close()
	out := navtree.Entries{}
	for rows.Next() {
		var code, label string
		if err := rows.Scan(&code, &label); err != nil {
			return nil, err
		}
		if keep(code) {
			out[code] = label
		}
	}
	return out, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
