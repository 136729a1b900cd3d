package config

import (
	"os"
	"path/filepath"
	"testing"
)

func setTestDirs(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, ".local", "share"))
	return dir
}

func TestLoadWritesDefaultsOnFirstRun(t *testing.T) {
	home := setTestDirs(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if cfg.Theme != "default" {
		t.Errorf("expected default theme, got %q", cfg.Theme)
	}
	if cfg.StartPath != home {
		t.Errorf("expected start path %q, got %q", home, cfg.StartPath)
	}

	path := filepath.Join(home, ".config", "cadence", "config.yaml")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected defaults written to %s: %v", path, err)
	}
}

func TestLoadReadsSavedConfig(t *testing.T) {
	setTestDirs(t)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	cfg.Theme = "nord"
	cfg.LibraryDir = "/srv/music"
	if err := cfg.Save(); err != nil {
		t.Fatalf("saving config: %v", err)
	}

	reloaded, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Theme != "nord" || reloaded.LibraryDir != "/srv/music" {
		t.Errorf("expected saved values back, got %+v", reloaded)
	}
}

func TestLoadRejectsMalformedConfig(t *testing.T) {
	home := setTestDirs(t)

	dir := filepath.Join(home, ".config", "cadence")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("{not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("expected an error for malformed config")
	}
}

func TestDataDirUnderXDG(t *testing.T) {
	home := setTestDirs(t)

	dir, err := DataDir()
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(home, ".local", "share", "cadence")
	if dir != want {
		t.Errorf("expected %q, got %q", want, dir)
	}
}
