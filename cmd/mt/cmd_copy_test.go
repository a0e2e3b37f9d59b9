package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAppendUnique(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.osu")
	b := filepath.Join(dir, "b.osu")
	for _, p := range []string{a, b} {
		if err := os.WriteFile(p, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	dotted := filepath.Join(dir, ".", "a.osu")

	got := appendUnique([]string{dotted}, a, b)
	if len(got) != 2 || got[0] != dotted || got[1] != b {
		t.Errorf("appendUnique = %v, want [%s %s]", got, dotted, b)
	}

	missing := filepath.Join(dir, "missing.osu")
	got = appendUnique(nil, missing)
	if len(got) != 1 || got[0] != missing {
		t.Errorf("missing paths should pass through for the copier to report, got %v", got)
	}
}
