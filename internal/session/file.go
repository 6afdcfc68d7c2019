package session

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"resumescore/internal/errors"
)

const (
	dirPerm  = 0750
	filePerm = 0600
)

// FileStore keeps one directory per session under a root directory.
type FileStore struct {
	root string
}

// NewFileStore creates root if needed.
func NewFileStore(root string) (*FileStore, error) {
	if root == "" {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig, "file store directory is required", nil)
	}
	if err := os.MkdirAll(root, dirPerm); err != nil {
		return nil, errors.NewIOError(errors.ErrCodeStorageOpen, "failed to create session directory", err).
			WithContext("dir", root)
	}
	return &FileStore{root: root}, nil
}

func fileName(kind Kind) string {
	return string(kind) + "_result.json"
}

func (s *FileStore) path(id string, kind Kind) string {
	return filepath.Join(s.root, id, fileName(kind))
}

// Save writes v as JSON, replacing any previous result of the same kind.
func (s *FileStore) Save(ctx context.Context, id string, kind Kind, v any) error {
	if err := checkKey(id, kind); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.NewInternalError(errors.ErrCodeStorageFailed, "failed to encode session result", err)
	}
	if err := os.MkdirAll(filepath.Join(s.root, id), dirPerm); err != nil {
		return errors.NewIOError(errors.ErrCodeStorageFailed, "failed to create session directory", err)
	}

	// write-then-rename keeps readers from seeing a partial file
	dst := s.path(id, kind)
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, data, filePerm); err != nil {
		return errors.NewIOError(errors.ErrCodeStorageFailed, "failed to write session result", err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return errors.NewIOError(errors.ErrCodeStorageFailed, "failed to write session result", err)
	}
	return nil
}

// Load decodes the stored result into v.
func (s *FileStore) Load(ctx context.Context, id string, kind Kind, v any) error {
	if err := checkKey(id, kind); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(s.path(id, kind))
	if stderrors.Is(err, fs.ErrNotExist) {
		return notFound(id, kind)
	}
	if err != nil {
		return errors.NewIOError(errors.ErrCodeStorageFailed, "failed to read session result", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.NewIOError(errors.ErrCodeStorageFailed, "stored session result is corrupt", err).
			WithContext("session_id", id)
	}
	return nil
}

// Delete removes the session directory. Deleting an unknown session is not
// an error.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	if !ValidID(id) {
		return checkKey(id, KindAnalysis)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.RemoveAll(filepath.Join(s.root, id)); err != nil {
		return errors.NewIOError(errors.ErrCodeStorageFailed, "failed to delete session", err)
	}
	return nil
}

// Close is a no-op.
func (s *FileStore) Close() error { return nil }
