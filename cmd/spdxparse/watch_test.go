package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcher(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "sbom.spdx")
	other := filepath.Join(dir, "other.spdx")
	require.NoError(t, os.WriteFile(target, []byte("SPDXVersion: SPDX-2.3\n"), 0o644))
	require.NoError(t, os.WriteFile(other, []byte("SPDXVersion: SPDX-2.3\n"), 0o644))

	fw, err := newFileWatcher([]string{target}, 100*time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Close() //nolint:errcheck // test cleanup

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changed := make(chan string, 8)
	done := make(chan error, 1)
	go func() {
		done <- fw.Run(ctx, func(path string) { changed <- path })
	}()

	require.NoError(t, os.WriteFile(other, []byte("changed\n"), 0o644))
	// Several writes within the debounce interval collapse into one call.
	for range 3 {
		require.NoError(t, os.WriteFile(target, []byte("changed\n"), 0o644))
	}

	select {
	case path := <-changed:
		assert.Equal(t, target, path)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	select {
	case path := <-changed:
		t.Fatalf("unexpected second change for %s", path)
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func receiveFiring(t *testing.T, d *debouncer) firing {
	t.Helper()
	select {
	case f := <-d.fire:
		return f
	case <-time.After(5 * time.Second):
		t.Fatal("debounce timer did not fire")
		return firing{}
	}
}

// A touch that lands after a timer expired but before its firing was
// taken must not produce a second change.
func TestDebouncerDropsStaleFiring(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d := newDebouncer(ctx, 10*time.Millisecond)
	defer d.stop()

	d.touch("a.spdx")
	stale := receiveFiring(t, d)
	d.touch("a.spdx")
	assert.False(t, d.take(stale))

	current := receiveFiring(t, d)
	assert.Equal(t, "a.spdx", current.name)
	assert.True(t, d.take(current))
	assert.False(t, d.take(current), "a firing is taken once")

	select {
	case f := <-d.fire:
		t.Fatalf("unexpected firing %+v", f)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDebouncerNamesAreIndependent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d := newDebouncer(ctx, 10*time.Millisecond)
	defer d.stop()

	d.touch("a.spdx")
	d.touch("b.spdx")
	got := map[string]bool{}
	for range 2 {
		f := receiveFiring(t, d)
		require.True(t, d.take(f))
		got[f.name] = true
	}
	assert.Equal(t, map[string]bool{"a.spdx": true, "b.spdx": true}, got)
}

func TestFileWatcherMissingFile(t *testing.T) {
	_, err := newFileWatcher([]string{filepath.Join(t.TempDir(), "absent.json")}, defaultDebounce, nil)
	assert.Error(t, err)
}
