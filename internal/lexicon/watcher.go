package lexicon

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"resumescore/internal/errors"
)

// Watcher reloads a Store when its override file changes on disk.
type Watcher struct {
	mu sync.Mutex

	store   *Store
	logger  *errors.Logger
	onSwap  func(*Lexicon)
	lastMod time.Time

	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer

	stopChan   chan struct{}
	reloadChan chan struct{}

	running bool
}

// NewWatcher creates a watcher for store. onSwap, if set, is called with each
// newly published lexicon.
func NewWatcher(store *Store, debounceDelay time.Duration, onSwap func(*Lexicon), logger *errors.Logger) (*Watcher, error) {
	if store.Path() == "" {
		return nil, fmt.Errorf("lexicon store has no override file to watch")
	}
	if debounceDelay == 0 {
		debounceDelay = time.Second
	}
	if logger == nil {
		logger = errors.NewNopLogger()
	}

	return &Watcher{
		store:         store,
		logger:        logger,
		onSwap:        onSwap,
		debounceDelay: debounceDelay,
		stopChan:      make(chan struct{}),
		reloadChan:    make(chan struct{}, 1),
	}, nil
}

// Start begins watching the override file.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("lexicon watcher is already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Editors and config management replace files by rename, so the
	// directory is watched rather than the file itself.
	dir := filepath.Dir(w.store.Path())
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}
	if stat, err := os.Stat(w.store.Path()); err == nil {
		w.lastMod = stat.ModTime()
	}

	w.fsWatcher = watcher
	w.running = true
	go w.watchLoop()

	w.logger.Info("Lexicon file watcher started",
		"file", w.store.Path(),
		"debounce_delay", w.debounceDelay)
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	close(w.stopChan)
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.running = false

	if err := w.fsWatcher.Close(); err != nil {
		w.logger.LogError(err, "Failed to close lexicon file watcher")
		return err
	}

	w.logger.Info("Lexicon file watcher stopped")
	return nil
}

// IsRunning reports whether the watcher is active.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if w.isRelevant(event) {
				w.scheduleReload()
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.LogError(err, "Lexicon file watcher error")

		case <-w.reloadChan:
			if w.changed() {
				w.reload()
			}

		case <-w.stopChan:
			return
		}
	}
}

func (w *Watcher) isRelevant(event fsnotify.Event) bool {
	if filepath.Base(event.Name) != filepath.Base(w.store.Path()) {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (w *Watcher) changed() bool {
	stat, err := os.Stat(w.store.Path())
	if err != nil {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if stat.ModTime().After(w.lastMod) {
		w.lastMod = stat.ModTime()
		return true
	}
	return false
}

func (w *Watcher) reload() {
	if err := w.store.Reload(); err != nil {
		w.logger.LogError(errors.NewConfigError(errors.ErrCodeLexiconLoad, "lexicon reload rejected", err),
			"Keeping previous lexicon", "file", w.store.Path())
		return
	}
	w.logger.Info("Lexicon reloaded", "file", w.store.Path())
	if w.onSwap != nil {
		w.onSwap(w.store.Current())
	}
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounceDelay, func() {
		select {
		case w.reloadChan <- struct{}{}:
		default:
		}
	})
}
