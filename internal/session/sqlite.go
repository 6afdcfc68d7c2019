package session

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"resumescore/internal/errors"
)

const schema = `CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT NOT NULL,
	kind       TEXT NOT NULL,
	data       TEXT NOT NULL,
	created_at TEXT NOT NULL,
	PRIMARY KEY (id, kind)
)`

// SQLiteStore keeps results in a single SQLite table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig, "sqlite path is required", nil)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return nil, errors.NewIOError(errors.ErrCodeStorageOpen, "failed to create database directory", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.NewIOError(errors.ErrCodeStorageOpen, "failed to open session database", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.NewIOError(errors.ErrCodeStorageOpen, "failed to create sessions table", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Save upserts the result for (id, kind).
func (s *SQLiteStore) Save(ctx context.Context, id string, kind Kind, v any) error {
	if err := checkKey(id, kind); err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return errors.NewInternalError(errors.ErrCodeStorageFailed, "failed to encode session result", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, kind, data, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (id, kind) DO UPDATE SET data = excluded.data, created_at = excluded.created_at`,
		id, string(kind), string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return errors.NewIOError(errors.ErrCodeStorageFailed, "failed to save session result", err)
	}
	return nil
}

// Load decodes the stored result into v.
func (s *SQLiteStore) Load(ctx context.Context, id string, kind Kind, v any) error {
	if err := checkKey(id, kind); err != nil {
		return err
	}

	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM sessions WHERE id = ? AND kind = ?`, id, string(kind)).Scan(&data)
	if stderrors.Is(err, sql.ErrNoRows) {
		return notFound(id, kind)
	}
	if err != nil {
		return errors.NewIOError(errors.ErrCodeStorageFailed, "failed to load session result", err)
	}
	if err := json.Unmarshal([]byte(data), v); err != nil {
		return errors.NewIOError(errors.ErrCodeStorageFailed, "stored session result is corrupt", err).
			WithContext("session_id", id)
	}
	return nil
}

// Delete removes every result of the session.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	if !ValidID(id) {
		return checkKey(id, KindAnalysis)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return errors.NewIOError(errors.ErrCodeStorageFailed, "failed to delete session", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
