// Package config persists user defaults for the mapping tools.
//
// Settings live in a single JSON file under the XDG config directory,
// $XDG_CONFIG_HOME/mapping-tools/config.json (~/.config when unset).
// Command-line flags always win over stored values.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/julianknutsen/mapping-tools/internal/hitsounds"
)

const appName = "mapping-tools"

// Config holds the stored defaults.
type Config struct {
	// Leniency is the default hitsound matching window in milliseconds.
	Leniency int `json:"leniency"`
	// Backup keeps a .bak copy of every file the tools rewrite.
	Backup bool `json:"backup"`
}

// Default returns the settings used when nothing is stored.
func Default() *Config {
	return &Config{Leniency: hitsounds.DefaultLeniency}
}

// ErrUnknownKey is returned for keys Get and Set do not know.
var ErrUnknownKey = errors.New("unknown config key")

var keys = map[string]struct {
	get func(*Config) string
	set func(*Config, string) error
}{
	"leniency": {
		get: func(c *Config) string { return strconv.Itoa(c.Leniency) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return fmt.Errorf("invalid leniency %q: must be a non-negative integer", v)
			}
			c.Leniency = n
			return nil
		},
	},
	"backup": {
		get: func(c *Config) string { return strconv.FormatBool(c.Backup) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid backup %q: must be true or false", v)
			}
			c.Backup = b
			return nil
		},
	},
}

// Keys lists the settable keys in sorted order.
func Keys() []string {
	out := make([]string, 0, len(keys))
	for k := range keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func unknown(key string) error {
	return fmt.Errorf("%w %q (supported: %s)", ErrUnknownKey, key, strings.Join(Keys(), ", "))
}

// Get renders the value of key.
func (c *Config) Get(key string) (string, error) {
	k, ok := keys[key]
	if !ok {
		return "", unknown(key)
	}
	return k.get(c), nil
}

// Set parses value into key.
func (c *Config) Set(key, value string) error {
	k, ok := keys[key]
	if !ok {
		return unknown(key)
	}
	return k.set(c, value)
}

// Store abstracts config persistence.
type Store interface {
	Load() (*Config, error)
	Save(cfg *Config) error
}

// NewStore returns the file-backed store under Dir().
func NewStore() Store {
	return &fileStore{path: filepath.Join(Dir(), "config.json")}
}

// NewStoreAt returns a file-backed store at an explicit path.
func NewStoreAt(path string) Store {
	return &fileStore{path: path}
}

type fileStore struct {
	path string
}

// Load returns Default() when the file does not exist yet. Keys missing from
// the file keep their defaults.
func (f *fileStore) Load() (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", f.path, err)
	}
	return cfg, nil
}

func (f *fileStore) Save(cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append(data, '\n')
	return os.WriteFile(f.path, data, 0o644)
}

// Dir is the mapping-tools config directory: $XDG_CONFIG_HOME/mapping-tools,
// falling back to ~/.config/mapping-tools.
func Dir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, appName)
}
