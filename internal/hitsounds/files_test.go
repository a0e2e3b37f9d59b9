package hitsounds

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/julianknutsen/mapping-tools/internal/beatmap"
)

func writeMap(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestCopyFiles(t *testing.T) {
	dir := t.TempDir()
	src := writeMap(t, dir, "hard.osu", sourceMap)
	dst := writeMap(t, dir, "easy.osu", targetMap)

	c := &FileCopier{Options: Options{Leniency: DefaultLeniency}, Backup: true}
	var progress []string
	c.OnProgress = func(p string) { progress = append(progress, p) }

	results, err := c.CopyFiles(context.Background(), src, []string{dst, src})
	if err != nil {
		t.Fatalf("CopyFiles: %v", err)
	}
	want := []FileResult{
		{Path: dst, Backup: dst + ".bak"},
		{Path: src, Skipped: true},
	}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{dst}, progress); diff != "" {
		t.Errorf("progress mismatch (-want +got):\n%s", diff)
	}

	bak, err := os.ReadFile(dst + ".bak")
	if err != nil {
		t.Fatalf("reading backup: %v", err)
	}
	if string(bak) != targetMap {
		t.Error("backup does not hold the original target")
	}

	got, _, err := beatmap.ReadFile(dst)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got.HitObjects[0].Additions != beatmap.AdditionWhistle {
		t.Errorf("target circle additions = %v, want whistle", got.HitObjects[0].Additions)
	}

	srcAfter, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	if string(srcAfter) != sourceMap {
		t.Error("source file was rewritten")
	}
}

func TestCopyFiles_MalformedTargetWritesNothing(t *testing.T) {
	dir := t.TempDir()
	src := writeMap(t, dir, "hard.osu", sourceMap)
	good := writeMap(t, dir, "easy.osu", targetMap)
	bad := writeMap(t, dir, "broken.osu", "not a beatmap\n")

	c := &FileCopier{Options: Options{Leniency: DefaultLeniency}}
	_, err := c.CopyFiles(context.Background(), src, []string{good, bad})
	if err == nil {
		t.Fatal("expected error for malformed target")
	}
	if !strings.Contains(err.Error(), "broken.osu") {
		t.Errorf("error %q does not name the bad file", err)
	}
	raw, err := os.ReadFile(good)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != targetMap {
		t.Error("valid target was written despite a malformed sibling")
	}
}

func TestCopyFiles_NoTargets(t *testing.T) {
	c := &FileCopier{}
	if _, err := c.CopyFiles(context.Background(), "x.osu", nil); !errors.Is(err, ErrNoTargets) {
		t.Errorf("err = %v, want ErrNoTargets", err)
	}
}

func TestCopyFiles_Cancelled(t *testing.T) {
	dir := t.TempDir()
	src := writeMap(t, dir, "hard.osu", sourceMap)
	dst := writeMap(t, dir, "easy.osu", targetMap)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := &FileCopier{}
	if _, err := c.CopyFiles(ctx, src, []string{dst}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	raw, _ := os.ReadFile(dst)
	if string(raw) != targetMap {
		t.Error("target written after cancellation")
	}
}

func TestSiblings(t *testing.T) {
	dir := t.TempDir()
	hard := writeMap(t, dir, "b-hard.osu", sourceMap)
	easy := writeMap(t, dir, "a-easy.OSU", targetMap)
	writeMap(t, dir, "audio.mp3", "")

	sib, err := Siblings(hard)
	if err != nil {
		t.Fatalf("Siblings: %v", err)
	}
	if diff := cmp.Diff([]string{easy}, sib); diff != "" {
		t.Errorf("Siblings mismatch (-want +got):\n%s", diff)
	}
}
