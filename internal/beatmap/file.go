package beatmap

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ReadFile parses the beatmap at path and also returns its raw bytes.
func ReadFile(path string) (*Beatmap, []byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	bm, err := Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return bm, raw, nil
}

// WriteFile encodes b to path. The beatmap is fully encoded before the file
// is touched. A zero mode means 0644.
func WriteFile(path string, b *Beatmap, mode os.FileMode) error {
	var buf bytes.Buffer
	if err := b.Write(&buf); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if mode == 0 {
		mode = 0o644
	}
	if err := os.WriteFile(path, buf.Bytes(), mode); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Difficulties lists the .osu files in dir, sorted by name.
func Difficulties(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading mapset directory: %w", err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".osu") {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}
