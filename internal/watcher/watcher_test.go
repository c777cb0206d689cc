package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_FiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "models.yaml")
	if err := os.WriteFile(path, []byte("models: []\n"), 0644); err != nil {
		t.Fatal(err)
	}

	changed := make(chan string, 1)
	w := New(path, func(p string) {
		select {
		case changed <- p:
		default:
		}
	}, WithDebounce(50*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte("models:\n  - name: A\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-changed:
		if filepath.Clean(p) != filepath.Clean(path) {
			t.Errorf("callback path = %s, want %s", p, path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change callback")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "models.yaml")
	if err := os.WriteFile(path, []byte("models: []\n"), 0644); err != nil {
		t.Fatal(err)
	}

	changed := make(chan string, 1)
	w := New(path, func(p string) { changed <- p }, WithDebounce(50*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-changed:
		t.Fatalf("unexpected callback for %s", p)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_StartTwice(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "models.yaml")
	if err := os.WriteFile(path, []byte("models: []\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w := New(path, func(string) {})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := w.Start(ctx); err != nil {
		t.Fatalf("second Start: %v", err)
	}
	w.Stop()
	w.Stop()
}
