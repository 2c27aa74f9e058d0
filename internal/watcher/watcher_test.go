package watcher_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/dealboard/internal/pubsub"
	"github.com/zjrosen/dealboard/internal/watcher"
)

func startWatcher(t *testing.T, dbPath string) <-chan pubsub.Event[watcher.WatcherEvent] {
	t.Helper()
	w, err := watcher.New(watcher.Config{DBPath: dbPath, DebounceDur: 50 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	ch := w.Broker().Subscribe(ctx)

	require.NoError(t, w.Start())
	return ch
}

func TestWatcher_DebouncesBurstOfWrites(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "deals.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("x"), 0o644))

	ch := startWatcher(t, dbPath)

	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(dbPath, []byte(fmt.Sprintf("x%d", i)), 0o644))
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case ev := <-ch:
		require.Equal(t, pubsub.UpdatedEvent, ev.Type)
		require.Equal(t, "deals.db", filepath.Base(ev.Payload.Path))
	case <-time.After(2 * time.Second):
		t.Fatal("expected change event")
	}

	select {
	case <-ch:
		t.Fatal("burst should coalesce into one event")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_WALWriteTriggers(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "deals.db")
	ch := startWatcher(t, dbPath)

	require.NoError(t, os.WriteFile(dbPath+"-wal", []byte("wal"), 0o644))

	select {
	case ev := <-ch:
		require.Equal(t, "deals.db-wal", filepath.Base(ev.Payload.Path))
	case <-time.After(2 * time.Second):
		t.Fatal("expected change event for WAL file")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	ch := startWatcher(t, filepath.Join(dir, "deals.db"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644))

	select {
	case <-ch:
		t.Fatal("unrelated file should not trigger")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_StopIsIdempotentAndClosesBroker(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "deals.db")
	w, err := watcher.New(watcher.DefaultConfig(dbPath))
	require.NoError(t, err)
	ch := w.Broker().Subscribe(context.Background())
	require.NoError(t, w.Start())

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())

	_, ok := <-ch
	require.False(t, ok)
}

func TestWatcher_StartFailsForMissingDirectory(t *testing.T) {
	w, err := watcher.New(watcher.DefaultConfig(filepath.Join(t.TempDir(), "missing", "deals.db")))
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	require.Error(t, w.Start())
}
