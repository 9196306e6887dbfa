package watcher

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitSignal(w *Watcher, d time.Duration) bool {
	select {
	case <-w.Changes():
		return true
	case <-time.After(d):
		return false
	}
}

func newWatched(t *testing.T, debounce time.Duration) (string, *Watcher) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "toy.frag")
	require.NoError(t, os.WriteFile(path, []byte("// v1\n"), 0o644))

	w, err := New([]string{path}, debounce, log.New(&bytes.Buffer{}))
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })
	return path, w
}

func TestWriteSignals(t *testing.T) {
	path, w := newWatched(t, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("// v2\n"), 0o644))
	assert.True(t, waitSignal(w, 2*time.Second))
}

func TestBurstIsCoalesced(t *testing.T) {
	path, w := newWatched(t, 100*time.Millisecond)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("// edit\n"), 0o644))
	}
	require.True(t, waitSignal(w, 2*time.Second))
	assert.False(t, waitSignal(w, 300*time.Millisecond))
}

func TestRenameOverSignals(t *testing.T) {
	path, w := newWatched(t, 20*time.Millisecond)

	tmp := filepath.Join(filepath.Dir(path), ".toy.frag.swp")
	require.NoError(t, os.WriteFile(tmp, []byte("// saved\n"), 0o644))
	require.NoError(t, os.Rename(tmp, path))
	assert.True(t, waitSignal(w, 2*time.Second))
}

func TestUnrelatedFileIgnored(t *testing.T) {
	path, w := newWatched(t, 20*time.Millisecond)

	other := filepath.Join(filepath.Dir(path), "notes.txt")
	require.NoError(t, os.WriteFile(other, []byte("hello"), 0o644))
	assert.False(t, waitSignal(w, 300*time.Millisecond))
}

func TestCloseTwice(t *testing.T) {
	_, w := newWatched(t, 0)
	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestMissingDirectory(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "nope", "toy.frag")}, 0, nil)
	assert.Error(t, err)
}
