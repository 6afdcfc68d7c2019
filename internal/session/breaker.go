package session

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/sony/gobreaker/v2"

	"resumescore/internal/config"
	"resumescore/internal/errors"
)

// BreakerStore guards a backend with a circuit breaker so a failing disk or
// database is not hammered by every request.
type BreakerStore struct {
	next Store
	cb   *gobreaker.CircuitBreaker[struct{}]
}

// NewBreakerStore wraps next. Only storage failures count against the
// breaker; a missing session or a bad id is the caller's problem.
func NewBreakerStore(next Store, cfg config.CircuitBreakerConfig, logger *errors.Logger) *BreakerStore {
	settings := gobreaker.Settings{
		Name:        "session-store",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests && failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("Circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
				"failure_threshold", cfg.FailureThreshold)
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.IsType(err, errors.ErrorTypeNotFound) ||
				errors.IsType(err, errors.ErrorTypeInvalidInput) ||
				stderrors.Is(err, context.Canceled)
		},
	}
	return &BreakerStore{next: next, cb: gobreaker.NewCircuitBreaker[struct{}](settings)}
}

func (b *BreakerStore) execute(op string, fn func() error) error {
	_, err := b.cb.Execute(func() (struct{}, error) {
		return struct{}{}, fn()
	})
	if stderrors.Is(err, gobreaker.ErrOpenState) || stderrors.Is(err, gobreaker.ErrTooManyRequests) {
		return errors.NewIOError(errors.ErrCodeStorageOpen,
			fmt.Sprintf("Session storage temporarily unavailable (%s)", op), err)
	}
	return err
}

func (b *BreakerStore) Save(ctx context.Context, id string, kind Kind, v any) error {
	return b.execute("save", func() error { return b.next.Save(ctx, id, kind, v) })
}

func (b *BreakerStore) Load(ctx context.Context, id string, kind Kind, v any) error {
	return b.execute("load", func() error { return b.next.Load(ctx, id, kind, v) })
}

func (b *BreakerStore) Delete(ctx context.Context, id string) error {
	return b.execute("delete", func() error { return b.next.Delete(ctx, id) })
}

func (b *BreakerStore) Close() error {
	return b.next.Close()
}

// State is the breaker's current state name.
func (b *BreakerStore) State() string {
	return b.cb.State().String()
}

// Stats returns circuit breaker statistics
func (b *BreakerStore) Stats() map[string]any {
	return map[string]any{
		"name":    b.cb.Name(),
		"state":   b.cb.State().String(),
		"counts":  b.cb.Counts(),
		"enabled": true,
	}
}
