package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitForEvent(t *testing.T, w *Watcher, want string) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case path := <-w.Events:
			if filepath.Base(path) == want {
				return
			}
		case err := <-w.Errors:
			t.Fatalf("watch error: %v", err)
		case <-deadline:
			t.Fatalf("no event for %s within deadline", want)
		}
	}
}

func TestWatcherReportsSpecAndScriptChanges(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "character.yaml"), []byte("name: x"), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	waitForEvent(t, w, "character.yaml")

	if err := os.WriteFile(filepath.Join(dir, "dash.tengo"), []byte("update := func(c, e, k) {}"), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	waitForEvent(t, w, "dash.tengo")
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write txt: %v", err)
	}

	select {
	case path := <-w.Events:
		t.Fatalf("unexpected event for %s", path)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
