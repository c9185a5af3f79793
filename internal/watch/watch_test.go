package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const testDebounce = 50 * time.Millisecond

func startWatcher(t *testing.T, ctx context.Context, path string) *Watcher {
	t.Helper()
	w, err := New(Config{Path: path, Debounce: testDebounce})
	require.NoError(t, err)
	require.NoError(t, w.Start(ctx))
	t.Cleanup(func() { _ = w.Stop() })
	return w
}

func waitChange(t *testing.T, w *Watcher) {
	t.Helper()
	select {
	case _, ok := <-w.Changes():
		require.True(t, ok, "changes channel closed")
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWriteBurstReportsOneChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "products.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	w := startWatcher(t, context.Background(), path)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte(`[{"code":"A"}]`), 0o644))
	}
	waitChange(t, w)

	select {
	case <-w.Changes():
		t.Fatal("burst produced more than one change")
	case <-time.After(4 * testDebounce):
	}
}

func TestRenameOverFileReportsChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "products.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	w := startWatcher(t, context.Background(), path)

	tmp := filepath.Join(dir, "products.json.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("[]"), 0o644))
	require.NoError(t, os.Rename(tmp, path))
	waitChange(t, w)
}

func TestOtherFilesAreIgnored(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "products.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	w := startWatcher(t, context.Background(), path)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	select {
	case <-w.Changes():
		t.Fatal("change reported for unrelated file")
	case <-time.After(4 * testDebounce):
	}
}

func TestContextCancelClosesChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "products.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	w := startWatcher(t, ctx, path)
	cancel()

	select {
	case _, ok := <-w.Changes():
		require.False(t, ok, "expected closed channel")
	case <-time.After(5 * time.Second):
		t.Fatal("changes channel not closed after cancel")
	}
	require.NoError(t, w.Stop())
}

func TestStopIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	w, err := New(Config{Path: path})
	require.NoError(t, err)
	require.Equal(t, DefaultDebounce, w.debounce)
	require.NoError(t, w.Start(context.Background()))
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}

func TestNewRejectsEmptyPath(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}
