package gateway

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atomicstack/zkbrowse/internal/logging/events"

	_ "modernc.org/sqlite"
)

// SQLite keeps the node tree in a local database file.
type SQLite struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (creating when missing) the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	// modernc.org/sqlite registers the "sqlite" driver name.
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, opError("open", path, fmt.Errorf("%w: %v", ErrConnection, err))
	}
	db.SetMaxOpenConns(1)
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, opError("open", path, fmt.Errorf("%w: %v", ErrConnection, err))
		}
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS nodes (
			path TEXT PRIMARY KEY,
			parent TEXT NOT NULL,
			data BLOB
		);`,
		`CREATE INDEX IF NOT EXISTS idx_nodes_parent ON nodes(parent);`,
		`INSERT OR IGNORE INTO nodes(path, parent, data) VALUES ('/', '/', NULL);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate %s: %w", path, err)
		}
	}
	events.Gateway.Connect("sqlite", path)
	return &SQLite{db: db, path: path}, nil
}

func (s *SQLite) ListChildren(p string) ([]string, error) {
	p = Clean(p)
	ok, err := s.Exists(p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, opError("list", p, ErrNotFound)
	}
	rows, err := s.db.Query(`SELECT path FROM nodes WHERE parent = ? AND path <> '/'`, p)
	if err != nil {
		return nil, opError("list", p, fmt.Errorf("%w: %v", ErrConnection, err))
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var child string
		if err := rows.Scan(&child); err != nil {
			return nil, opError("list", p, fmt.Errorf("%w: %v", ErrConnection, err))
		}
		names = append(names, Base(child))
	}
	if err := rows.Err(); err != nil {
		return nil, opError("list", p, fmt.Errorf("%w: %v", ErrConnection, err))
	}
	return children(p, names)
}

func (s *SQLite) ReadValue(p string) (string, error) {
	p = Clean(p)
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM nodes WHERE path = ?`, p).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return "", opError("read", p, ErrNotFound)
	}
	if err != nil {
		return "", opError("read", p, fmt.Errorf("%w: %v", ErrConnection, err))
	}
	return decodeValue(p, data)
}

func (s *SQLite) Exists(p string) (bool, error) {
	p = Clean(p)
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM nodes WHERE path = ?`, p).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, opError("exists", p, fmt.Errorf("%w: %v", ErrConnection, err))
	}
	return true, nil
}

func (s *SQLite) Create(p string, data []byte) error {
	p = Clean(p)
	exists, err := s.Exists(p)
	if err != nil {
		return err
	}
	if exists {
		return opError("create", p, ErrNodeExists)
	}
	parent := Parent(p)
	ok, err := s.Exists(parent)
	if err != nil {
		return err
	}
	if !ok {
		return opError("create", p, ErrNotFound)
	}
	if data == nil {
		data = []byte{}
	}
	if _, err := s.db.Exec(`INSERT INTO nodes(path, parent, data) VALUES (?, ?, ?)`, p, parent, data); err != nil {
		return opError("create", p, fmt.Errorf("%w: %v", ErrConnection, err))
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
