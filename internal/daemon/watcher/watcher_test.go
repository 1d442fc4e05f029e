package watcher

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func TestWatcherDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "xstatus.yml")
	require.NoError(t, os.WriteFile(path, []byte("interval: 1s\n"), 0o600))

	changes := make(chan string, 10)
	w, err := New(path, 50*time.Millisecond, testLogger(), func(f string) { changes <- f })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("interval: 2s\n"), 0o600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o600))

	select {
	case f := <-changes:
		assert.Equal(t, "xstatus.yml", filepath.Base(f))
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	select {
	case f := <-changes:
		t.Fatalf("unexpected second change: %s", f)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestReloadsDeliversValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "xstatus.yml")
	require.NoError(t, os.WriteFile(path, []byte("interval: 1s\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloads, err := Reloads(ctx, path, testLogger())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("interval: [broken\n"), 0o600))
	time.Sleep(3 * DefaultDebounce)
	require.NoError(t, os.WriteFile(path, []byte("interval: 5s\nbatteries: [1]\n"), 0o600))

	select {
	case cfg := <-reloads:
		assert.Equal(t, "5s", cfg.Interval)
		assert.Equal(t, []int{1}, cfg.Batteries)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload delivered")
	}
}
