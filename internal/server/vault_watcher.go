package server

import (
	"fmt"
	"sync"
	"time"

	"resumescore/internal/errors"
)

// APIKeySource returns the current API keys and the version of the secret
// they were read from. *config.VaultClient implements it.
type APIKeySource interface {
	APIKeys() ([]string, int64, error)
}

// APIKeyWatcher polls an APIKeySource and swaps the server's key set when
// the secret version moves forward. An empty key list is ignored so a bad
// write to Vault cannot turn authentication off.
type APIKeyWatcher struct {
	mu sync.RWMutex

	source       APIKeySource
	keys         *KeySet
	pollInterval time.Duration
	logger       *errors.Logger

	stopChan    chan struct{}
	running     bool
	lastVersion int64
	lastRefresh time.Time
	lastError   string
}

// NewAPIKeyWatcher creates a watcher that updates keys
func NewAPIKeyWatcher(source APIKeySource, keys *KeySet, pollInterval time.Duration, logger *errors.Logger) *APIKeyWatcher {
	if logger == nil {
		logger = errors.NewNopLogger()
	}
	return &APIKeyWatcher{
		source:       source,
		keys:         keys,
		pollInterval: pollInterval,
		logger:       logger,
		stopChan:     make(chan struct{}),
	}
}

// Start begins polling for key changes
func (w *APIKeyWatcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return fmt.Errorf("API key watcher is already running")
	}
	if w.pollInterval <= 0 {
		return fmt.Errorf("API key watcher needs a positive poll interval, got %s", w.pollInterval)
	}
	w.running = true
	go w.pollLoop()
	w.logger.Info("API key watcher started", "poll_interval", w.pollInterval)
	return nil
}

// Stop stops the watcher; stopping a stopped watcher is a no-op
func (w *APIKeyWatcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return nil
	}
	close(w.stopChan)
	w.running = false
	w.logger.Info("API key watcher stopped")
	return nil
}

func (w *APIKeyWatcher) pollLoop() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if _, err := w.refresh(); err != nil {
				w.logger.LogError(err, "Failed to refresh API keys")
			}
		case <-w.stopChan:
			return
		}
	}
}

// refresh reads the source once and reports whether the key set changed
func (w *APIKeyWatcher) refresh() (bool, error) {
	keys, version, err := w.source.APIKeys()

	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastRefresh = time.Now()
	if err != nil {
		w.lastError = err.Error()
		return false, fmt.Errorf("failed to read API keys: %w", err)
	}
	w.lastError = ""

	if version <= w.lastVersion {
		return false, nil
	}
	if len(keys) == 0 {
		w.logger.Warn("Ignoring empty API key set", "version", version)
		return false, nil
	}

	w.keys.Replace(keys)
	w.lastVersion = version
	w.logger.Info("API keys refreshed", "count", w.keys.Len(), "version", version)
	return true, nil
}

// Status returns the current status of the watcher for the stats endpoint
func (w *APIKeyWatcher) Status() map[string]any {
	w.mu.RLock()
	defer w.mu.RUnlock()
	status := map[string]any{
		"running":       w.running,
		"poll_interval": w.pollInterval.String(),
		"last_version":  w.lastVersion,
	}
	if !w.lastRefresh.IsZero() {
		status["last_refresh"] = w.lastRefresh.UTC().Format(time.RFC3339)
	}
	if w.lastError != "" {
		status["last_error"] = w.lastError
	}
	return status
}
