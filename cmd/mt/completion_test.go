package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
)

func TestCompleteOsuFiles(t *testing.T) {
	exts, dir := completeOsuFiles(nil, nil, "")
	if dir != cobra.ShellCompDirectiveFilterFileExt {
		t.Errorf("directive = %v, want FilterFileExt", dir)
	}
	if diff := cmp.Diff([]string{"osu"}, exts); diff != "" {
		t.Errorf("extensions mismatch (-want +got):\n%s", diff)
	}
}

func TestCompleteConfigKeys(t *testing.T) {
	keys, dir := completeConfigKeys(nil, nil, "")
	if dir != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("directive = %v, want NoFileComp", dir)
	}
	if diff := cmp.Diff([]string{"backup", "leniency"}, keys); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}

	keys, _ = completeConfigKeys(nil, []string{"leniency"}, "")
	if len(keys) != 0 {
		t.Errorf("second argument should not complete keys, got %v", keys)
	}
}
