package metadata

import (
	"fmt"
	"os"

	"github.com/julianknutsen/mapping-tools/internal/beatmap"
)

// ExtractFile reads the metadata of the beatmap at path.
func ExtractFile(path string) (*Metadata, error) {
	bm, _, err := beatmap.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Extract(bm), nil
}

// ApplyFiles writes m into every beatmap in paths. Every file is parsed
// before any is written, so one malformed file leaves all of them untouched.
func ApplyFiles(m *Metadata, paths []string) error {
	type file struct {
		path string
		mode os.FileMode
		bm   *beatmap.Beatmap
	}
	files := make([]file, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("stat %s: %w", p, err)
		}
		bm, _, err := beatmap.ReadFile(p)
		if err != nil {
			return err
		}
		m.Apply(bm)
		files = append(files, file{path: p, mode: info.Mode().Perm(), bm: bm})
	}
	for _, f := range files {
		if err := beatmap.WriteFile(f.path, f.bm, f.mode); err != nil {
			return err
		}
	}
	return nil
}
