package hitsounds

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianknutsen/mapping-tools/internal/beatmap"
)

// ErrNoTargets is returned when a copy has nothing to write to.
var ErrNoTargets = errors.New("no target beatmaps")

// FileResult reports what happened to one target file.
type FileResult struct {
	Path    string
	Skipped bool // the target is the source file
	Backup  string
}

// FileCopier copies hitsounds between .osu files on disk.
type FileCopier struct {
	Options Options
	// Backup keeps the previous contents of every rewritten file next to it
	// with a .bak suffix.
	Backup bool
	// OnProgress, when set, is called before each target is written.
	OnProgress func(path string)
}

type target struct {
	path string
	mode os.FileMode
	raw  []byte
	bm   *beatmap.Beatmap
}

// CopyFiles copies the hitsounds of src into every dst. All targets are
// parsed before anything is written, so a malformed target leaves every
// file untouched. A dst that is the same file as src is skipped.
func (c *FileCopier) CopyFiles(ctx context.Context, src string, dsts []string) ([]FileResult, error) {
	if len(dsts) == 0 {
		return nil, ErrNoTargets
	}
	srcMap, _, err := beatmap.ReadFile(src)
	if err != nil {
		return nil, err
	}
	srcInfo, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", src, err)
	}

	results := make([]FileResult, len(dsts))
	var targets []*target
	for i, dst := range dsts {
		results[i].Path = dst
		info, err := os.Stat(dst)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", dst, err)
		}
		if os.SameFile(srcInfo, info) {
			results[i].Skipped = true
			continue
		}
		bm, raw, err := beatmap.ReadFile(dst)
		if err != nil {
			return nil, err
		}
		targets = append(targets, &target{path: dst, mode: info.Mode().Perm(), raw: raw, bm: bm})
	}

	data, err := Collect(srcMap, c.Options)
	if err != nil {
		return nil, fmt.Errorf("collecting hitsounds from %s: %w", src, err)
	}
	for _, t := range targets {
		if err := Apply(data, t.bm, c.Options); err != nil {
			return nil, fmt.Errorf("applying hitsounds to %s: %w", t.path, err)
		}
	}

	byPath := make(map[string]*FileResult, len(results))
	for i := range results {
		byPath[results[i].Path] = &results[i]
	}
	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		if c.OnProgress != nil {
			c.OnProgress(t.path)
		}
		if c.Backup {
			bak := t.path + ".bak"
			if err := os.WriteFile(bak, t.raw, t.mode); err != nil {
				return results, fmt.Errorf("writing backup %s: %w", bak, err)
			}
			byPath[t.path].Backup = bak
		}
		if err := beatmap.WriteFile(t.path, t.bm, t.mode); err != nil {
			return results, err
		}
		c.Options.logger().Infow("hitsounds copied", "src", src, "dst", t.path)
	}
	return results, nil
}

// Siblings lists the other difficulties in the same directory as src.
func Siblings(src string) ([]string, error) {
	all, err := beatmap.Difficulties(filepath.Dir(src))
	if err != nil {
		return nil, err
	}
	srcInfo, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", src, err)
	}
	var out []string
	for _, p := range all {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		if os.SameFile(srcInfo, info) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
