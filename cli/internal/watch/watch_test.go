package watch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatcherRunsCallbackOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	file := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(file, []byte("Hello\n"), 0o644))

	calls := make(chan struct{}, 10)
	w, err := NewWatcher(file, 20*time.Millisecond, func() error {
		calls <- struct{}{}
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, w.Start())

	select {
	case <-calls:
	case <-time.After(time.Second):
		t.Fatal("initial callback not run")
	}

	require.NoError(t, os.WriteFile(file, []byte("Hello\nWorld\n"), 0o644))

	select {
	case <-calls:
	case <-time.After(5 * time.Second):
		t.Fatal("callback not run after write")
	}

	require.NoError(t, w.Stop())
}

func TestWatcherInitialCallbackError(t *testing.T) {
	defer goleak.VerifyNone(t)

	file := filepath.Join(t.TempDir(), "words.txt")
	boom := errors.New("boom")

	w, err := NewWatcher(file, DefaultDebounce, func() error { return boom })
	require.NoError(t, err)

	err = w.Start()
	assert.ErrorIs(t, err, boom)
	require.NoError(t, w.watcher.Close())
}

func TestNewWatcherMissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing", "words.txt"), DefaultDebounce, func() error { return nil })
	assert.Error(t, err)
}
