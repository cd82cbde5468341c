package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWatcher_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "programs.csv")
	require.NoError(t, os.WriteFile(path, []byte(sheet), 0644))

	w, err := NewWatcher(path, zap.NewNop())
	require.NoError(t, err)
	w.debounce = 20 * time.Millisecond
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.csv"), []byte("x"), 0644))
	select {
	case <-w.Changes():
		t.Fatal("unexpected change for unrelated file")
	case <-time.After(100 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(path, []byte(sheet+"Gamma PA,NY\n"), 0644))
	select {
	case _, ok := <-w.Changes():
		assert.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcher_StopClosesChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "programs.csv")
	require.NoError(t, os.WriteFile(path, []byte(sheet), 0644))

	w, err := NewWatcher(path, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	w.Stop()

	_, ok := <-w.Changes()
	assert.False(t, ok)
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "nope", "programs.csv"), nil)
	require.NoError(t, err)
	defer w.Stop()

	assert.Error(t, w.Start(context.Background()))
}
