package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")
	if got, want := Dir(), filepath.Join("/tmp/xdg-test", "mapping-tools"); got != want {
		t.Errorf("Dir() = %q, want %q", got, want)
	}
}

func TestDir_HomeFallback(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home directory")
	}
	if got, want := Dir(), filepath.Join(home, ".config", "mapping-tools"); got != want {
		t.Errorf("Dir() = %q, want %q", got, want)
	}
}

func TestStore_LoadMissingReturnsDefault(t *testing.T) {
	s := NewStoreAt(filepath.Join(t.TempDir(), "config.json"))
	cfg, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_SaveLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	s := NewStore()
	want := &Config{Leniency: 5, Backup: true}
	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(filepath.Join(Dir(), "config.json")); err != nil {
		t.Errorf("config file not created: %v", err)
	}
}

func TestStore_PartialFileKeepsDefaults(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(p, []byte(`{"backup": true}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := NewStoreAt(p).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Leniency != Default().Leniency || !cfg.Backup {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestStore_Corrupt(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(p, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStoreAt(p).Load(); err == nil || !strings.Contains(err.Error(), "parsing config") {
		t.Errorf("err = %v, want parse error", err)
	}
}

func TestGetSet(t *testing.T) {
	cfg := Default()
	tests := []struct {
		key, value, want string
		wantErr          bool
	}{
		{"leniency", "7", "7", false},
		{"leniency", "-1", "7", true},
		{"leniency", "soon", "7", true},
		{"backup", "true", "true", false},
		{"backup", "maybe", "true", true},
	}
	for _, tt := range tests {
		err := cfg.Set(tt.key, tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Set(%q, %q) err = %v, wantErr %v", tt.key, tt.value, err, tt.wantErr)
		}
		got, err := cfg.Get(tt.key)
		if err != nil {
			t.Fatalf("Get(%q): %v", tt.key, err)
		}
		if got != tt.want {
			t.Errorf("after Set(%q, %q), Get = %q, want %q", tt.key, tt.value, got, tt.want)
		}
	}
}

func TestUnknownKey(t *testing.T) {
	cfg := Default()
	if _, err := cfg.Get("colour"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Get err = %v, want ErrUnknownKey", err)
	}
	err := cfg.Set("colour", "red")
	if !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Set err = %v, want ErrUnknownKey", err)
	}
	if !strings.Contains(err.Error(), "backup, leniency") {
		t.Errorf("error %q does not list supported keys", err)
	}
}
