package watcher_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kalpruh/enrol/internal/watcher"
)

func startWatcher(t *testing.T, path string) <-chan struct{} {
	t.Helper()
	w, err := watcher.New(watcher.Config{Path: path, Debounce: 50 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ch, err := w.Start()
	require.NoError(t, err)
	return ch
}

func TestWatcher_DebouncesBurstOfWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("v0"), 0o644))

	onChange := startWatcher(t, path)

	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("v%d", i)), 0o644))
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-onChange:
	case <-time.After(time.Second):
		t.Fatal("expected a change notification")
	}

	select {
	case <-onChange:
		t.Fatal("burst should produce a single notification")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("v0"), 0o644))
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))

	onChange := startWatcher(t, path)

	require.NoError(t, os.WriteFile(other, []byte("y"), 0o644))

	select {
	case <-onChange:
		t.Fatal("writes to other files must not notify")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_SeesAtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("v0"), 0o644))

	onChange := startWatcher(t, path)

	tmp := filepath.Join(dir, ".catalog.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("v1"), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	select {
	case <-onChange:
	case <-time.After(time.Second):
		t.Fatal("expected notification after rename over the watched file")
	}
}

func TestNew_RequiresPath(t *testing.T) {
	_, err := watcher.New(watcher.Config{})
	require.Error(t, err)
}
