package home

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("with explicit path", func(t *testing.T) {
		dir, err := New("/tmp/test-pokedex")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dir.Path() != "/tmp/test-pokedex" {
			t.Errorf("expected path /tmp/test-pokedex, got %s", dir.Path())
		}
	})

	t.Run("with empty path uses default", func(t *testing.T) {
		dir, err := New("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		home, _ := os.UserHomeDir()
		expected := filepath.Join(home, DefaultDirName)
		if dir.Path() != expected {
			t.Errorf("expected path %s, got %s", expected, dir.Path())
		}
	})
}

func TestDir_Paths(t *testing.T) {
	dir, _ := New("/tmp/test-pokedex")

	if got, want := dir.ConfigPath(), "/tmp/test-pokedex/config.yaml"; got != want {
		t.Errorf("ConfigPath() = %s, want %s", got, want)
	}
	if got, want := dir.EnvPath(), "/tmp/test-pokedex/.env"; got != want {
		t.Errorf("EnvPath() = %s, want %s", got, want)
	}
}

func TestDir_ConfigFile(t *testing.T) {
	tmp := t.TempDir()
	dir, _ := New(filepath.Join(tmp, "home"))

	if got := dir.ConfigFile("/explicit.yaml"); got != "/explicit.yaml" {
		t.Errorf("explicit path not preferred, got %q", got)
	}
	if got := dir.ConfigFile(""); got != "" {
		t.Errorf("expected empty path before config exists, got %q", got)
	}

	if err := dir.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists() error = %v", err)
	}
	if err := os.WriteFile(dir.ConfigPath(), []byte("server:\n  port: \"4000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := dir.ConfigFile(""); got != dir.ConfigPath() {
		t.Errorf("ConfigFile(\"\") = %q, want %q", got, dir.ConfigPath())
	}
}
