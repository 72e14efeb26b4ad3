package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitForChange(t *testing.T, w *Watcher) *Config {
	t.Helper()
	select {
	case cfg := <-w.Changes():
		return cfg
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for config reload")
		return nil
	}
}

func TestWatchReloadsOnSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := Default().SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, err := Watch(ctx, path)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer w.Close()

	cfg := Default()
	cfg.Simulation.LoadKW = 4.25
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	got := waitForChange(t, w)
	if got.Simulation.LoadKW != 4.25 {
		t.Errorf("expected load 4.25, got %v", got.Simulation.LoadKW)
	}
}

func TestWatchSkipsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := Default().SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, err := Watch(ctx, path)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer w.Close()

	// Neither a bad panel nor a sibling file produces a reload.
	if err := os.WriteFile(path, []byte("simulation:\n  panel: 999\n"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	select {
	case cfg := <-w.Changes():
		t.Fatalf("unexpected reload: %+v", cfg.Simulation)
	case <-time.After(300 * time.Millisecond):
	}

	if err := os.WriteFile(path, []byte("simulation:\n  panel: 330\n"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if got := waitForChange(t, w); got.Simulation.Panel != 330 {
		t.Errorf("expected panel 330, got %d", got.Simulation.Panel)
	}
}

func TestWatchStopsWithContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := Default().SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w, err := Watch(ctx, path)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	cancel()

	select {
	case <-w.done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher still running after cancel")
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close returned %v", err)
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	if _, err := Watch(context.Background(), "/nonexistent/dir/config.yaml"); err == nil {
		t.Error("expected error watching a missing directory")
	}
}
