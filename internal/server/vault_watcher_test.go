package server

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockKeySource is a mock implementation for testing
type mockKeySource struct {
	mu      sync.Mutex
	keys    []string
	version int64
	err     error
	calls   int
}

func (m *mockKeySource) APIKeys() ([]string, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.keys, m.version, m.err
}

func (m *mockKeySource) set(keys []string, version int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys, m.version = keys, version
}

func TestAPIKeyWatcherRefresh(t *testing.T) {
	source := &mockKeySource{keys: []string{"new-key"}, version: 2}
	keys := NewKeySet([]string{"old-key"})
	w := NewAPIKeyWatcher(source, keys, time.Minute, nil)

	// Initial check detects the change from version 0 to 2
	changed, err := w.refresh()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, keys.Valid("new-key"))
	assert.False(t, keys.Valid("old-key"))

	// Same version again is not a change
	changed, err = w.refresh()
	require.NoError(t, err)
	assert.False(t, changed)

	status := w.Status()
	assert.Equal(t, int64(2), status["last_version"])
	assert.Contains(t, status, "last_refresh")
}

func TestAPIKeyWatcherKeepsKeysOnEmptyOrFailedRead(t *testing.T) {
	source := &mockKeySource{keys: nil, version: 5}
	keys := NewKeySet([]string{"k1"})
	w := NewAPIKeyWatcher(source, keys, time.Minute, nil)

	changed, err := w.refresh()
	require.NoError(t, err)
	assert.False(t, changed)
	assert.True(t, keys.Valid("k1"))

	source.err = fmt.Errorf("permission denied")
	_, err = w.refresh()
	assert.ErrorContains(t, err, "permission denied")
	assert.True(t, keys.Valid("k1"))
	assert.Equal(t, "permission denied", w.Status()["last_error"])
}

func TestAPIKeyWatcherPolls(t *testing.T) {
	source := &mockKeySource{keys: []string{"k1"}, version: 1}
	keys := NewKeySet([]string{"k1"})
	w := NewAPIKeyWatcher(source, keys, 10*time.Millisecond, nil)

	require.NoError(t, w.Start())
	assert.Error(t, w.Start())
	t.Cleanup(func() { _ = w.Stop() })

	source.set([]string{"k2", "k3"}, 2)
	assert.Eventually(t, func() bool { return keys.Valid("k2") }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 2, keys.Len())

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
	assert.Equal(t, false, w.Status()["running"])
}

func TestAPIKeyWatcherRejectsZeroInterval(t *testing.T) {
	w := NewAPIKeyWatcher(&mockKeySource{}, NewKeySet(nil), 0, nil)
	assert.Error(t, w.Start())
}

func TestKeySet(t *testing.T) {
	ks := NewKeySet([]string{"a", "", "b"})
	assert.Equal(t, 2, ks.Len())
	assert.True(t, ks.Valid("a"))
	assert.False(t, ks.Valid(""))

	ks.Replace(nil)
	assert.Equal(t, 0, ks.Len())
	assert.False(t, ks.Valid("a"))
}
