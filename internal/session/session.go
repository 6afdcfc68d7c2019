// Package session persists analysis results so reports can be rendered
// after the request that produced them.
package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"resumescore/internal/config"
	"resumescore/internal/errors"
)

// Kind names the result stored under a session.
type Kind string

const (
	KindAnalysis Kind = "analysis"
	KindMatch    Kind = "match"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindAnalysis || k == KindMatch
}

// Store saves and loads JSON-encoded results keyed by session id and kind.
type Store interface {
	Save(ctx context.Context, id string, kind Kind, v any) error
	Load(ctx context.Context, id string, kind Kind, v any) error
	Delete(ctx context.Context, id string) error
	Close() error
}

// NewID returns a fresh random session id.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id is a uuid in its canonical lower-case form.
// Anything else is rejected so ids can be used as path elements.
func ValidID(id string) bool {
	u, err := uuid.Parse(id)
	return err == nil && u.String() == id
}

func checkKey(id string, kind Kind) error {
	if !ValidID(id) {
		return errors.NewInvalidInputError(errors.ErrCodeInvalidSession, "Invalid session ID", nil).
			WithContext("session_id", id)
	}
	if !kind.Valid() {
		return errors.NewInvalidInputError(errors.ErrCodeInvalidSession,
			fmt.Sprintf("Unknown session result kind %q", kind), nil)
	}
	return nil
}

func notFound(id string, kind Kind) error {
	return errors.NewNotFoundError(errors.ErrCodeSessionNotFound, "Session not found", nil).
		WithContext("session_id", id).
		WithContext("kind", string(kind))
}

// Open builds the configured backend, wrapped in a circuit breaker when
// enabled.
func Open(cfg config.StorageConfig, logger *errors.Logger) (Store, error) {
	if logger == nil {
		logger = errors.NewNopLogger()
	}

	var (
		store Store
		err   error
	)
	switch cfg.Backend {
	case "", "file":
		store, err = NewFileStore(cfg.Dir)
	case "sqlite":
		store, err = NewSQLiteStore(cfg.SQLitePath)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("unknown storage backend %q", cfg.Backend), nil)
	}
	if err != nil {
		return nil, err
	}
	logger.Info("Session store opened", "backend", cfg.Backend, "circuit_breaker", cfg.CircuitBreaker.Enabled)

	if !cfg.CircuitBreaker.Enabled {
		return store, nil
	}
	return NewBreakerStore(store, cfg.CircuitBreaker, logger), nil
}
