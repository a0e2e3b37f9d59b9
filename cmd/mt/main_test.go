package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCommand_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(nil, &stdout, &stderr)
	if code != 0 {
		t.Errorf("run(nil) exit code = %d, want 0", code)
	}
	if stdout.Len() == 0 {
		t.Error("expected help output on stdout")
	}
}

func TestRootCommand_UnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"nonexistent"}, &stdout, &stderr)
	if code != 1 {
		t.Errorf("run(nonexistent) exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), `unknown command "nonexistent"`) {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRootCommand_BadColor(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--color=purple", "version"}, &stdout, &stderr)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "invalid --color") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestSubcommandRegistration(t *testing.T) {
	var stdout, stderr bytes.Buffer
	root := newRootCmd(&stdout, &stderr)

	expected := []string{"copy-hitsounds", "list-hitsounds", "reset-hitsounds", "extract-metadata", "apply-metadata", "config", "serve", "tui", "version"}
	for _, name := range expected {
		found := false
		for _, c := range root.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not found on root command", name)
		}
	}
}

func TestCopyRequiresSource(t *testing.T) {
	var stdout, stderr bytes.Buffer
	root := newRootCmd(&stdout, &stderr)
	for _, c := range root.Commands() {
		if c.Name() != "copy-hitsounds" {
			continue
		}
		if err := c.Args(c, []string{}); err == nil {
			t.Error("copy-hitsounds should reject zero arguments")
		}
		if err := c.Args(c, []string{"src.osu"}); err != nil {
			t.Errorf("copy-hitsounds should accept a lone source (for --mapset): %v", err)
		}
	}
}

func TestVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"version"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	want := "mt dev (commit: unknown, built: unknown)\n"
	if stdout.String() != want {
		t.Errorf("version = %q, want %q", stdout.String(), want)
	}
}

func TestRun_PrintsHint(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	var stdout, stderr bytes.Buffer
	code := run([]string{"list-hitsounds", "missing.osu"}, &stdout, &stderr)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "hint: Check the path") {
		t.Errorf("stderr missing hint: %q", stderr.String())
	}
}

func TestPlural(t *testing.T) {
	tests := map[int]string{0: "0 hits", 1: "1 hit", 2: "2 hits"}
	for n, want := range tests {
		if got := plural(n, "hit"); got != want {
			t.Errorf("plural(%d) = %q, want %q", n, got, want)
		}
	}
}
