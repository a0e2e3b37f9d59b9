package beatmap

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReadWriteFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "map.osu")
	if err := os.WriteFile(p, []byte(sampleMap), 0o600); err != nil {
		t.Fatal(err)
	}
	b, raw, err := ReadFile(p)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(raw) != sampleMap {
		t.Error("raw bytes differ from file")
	}
	if err := WriteFile(p, b, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	again, _, err := ReadFile(p)
	if err != nil {
		t.Fatalf("ReadFile after write: %v", err)
	}
	if len(again.HitObjects) != len(b.HitObjects) {
		t.Errorf("got %d hit objects after rewrite, want %d", len(again.HitObjects), len(b.HitObjects))
	}
}

func TestReadFile_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := ReadFile(filepath.Join(dir, "missing.osu")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file err = %v, want ErrNotExist", err)
	}
	bad := filepath.Join(dir, "bad.osu")
	if err := os.WriteFile(bad, []byte("hello\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err := ReadFile(bad)
	if !errors.Is(err, ErrMissingHeader) {
		t.Errorf("bad file err = %v, want ErrMissingHeader", err)
	}
	if !strings.Contains(err.Error(), "bad.osu") {
		t.Errorf("error %q does not name the file", err)
	}
}

func TestDifficulties(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b-hard.osu", "a-easy.OSU", "audio.mp3", "bg.jpg"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.osu"), 0o755); err != nil {
		t.Fatal(err)
	}
	got, err := Difficulties(dir)
	if err != nil {
		t.Fatalf("Difficulties: %v", err)
	}
	want := []string{filepath.Join(dir, "a-easy.OSU"), filepath.Join(dir, "b-hard.osu")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Difficulties mismatch (-want +got):\n%s", diff)
	}
}
