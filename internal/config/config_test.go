package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
host = "https://archiva.example.com"
user = "deployer"
password = "secret"
set_referer = true
timeout = "45s"
verbose_level = "w"
`)

	f, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if f.Host != "https://archiva.example.com" {
		t.Errorf("Host = %q", f.Host)
	}
	if f.User != "deployer" || f.Password != "secret" {
		t.Errorf("credentials = %q/%q, want deployer/secret", f.User, f.Password)
	}
	if !f.SetReferer {
		t.Error("SetReferer should be true")
	}
	if f.TimeoutDuration() != 45*time.Second {
		t.Errorf("TimeoutDuration() = %v, want 45s", f.TimeoutDuration())
	}
	if f.VerboseLevel != "w" {
		t.Errorf("VerboseLevel = %q, want w", f.VerboseLevel)
	}
}

func TestLoadMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	f, err := Load(path, false)
	if err != nil {
		t.Fatalf("Load() of missing default file error: %v", err)
	}
	if *f != (File{}) {
		t.Errorf("Load() = %+v, want empty", f)
	}

	if _, err := Load(path, true); err == nil {
		t.Error("Load() of missing explicit file should fail")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", "hots = \"x\"\n", "unknown keys: hots"},
		{"bad timeout", "timeout = \"soon\"\n", "timeout"},
		{"negative timeout", "timeout = \"-1s\"\n", "positive"},
		{"wrong type", "set_referer = \"yes\"\n", "set_referer"},
		{"syntax", "host = \n", "load config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content), false)
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Run("xdg", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
		got, err := DefaultPath()
		if err != nil {
			t.Fatalf("DefaultPath() error: %v", err)
		}
		if want := filepath.Join("/tmp/xdg", "archiva-cli", "config.toml"); got != want {
			t.Errorf("DefaultPath() = %q, want %q", got, want)
		}
	})

	t.Run("home", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("HOME", home)
		got, err := DefaultPath()
		if err != nil {
			t.Fatalf("DefaultPath() error: %v", err)
		}
		if want := filepath.Join(home, ".config", "archiva-cli", "config.toml"); got != want {
			t.Errorf("DefaultPath() = %q, want %q", got, want)
		}
	})
}
