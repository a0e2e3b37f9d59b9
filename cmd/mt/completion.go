package main

import (
	"github.com/julianknutsen/mapping-tools/internal/config"
	"github.com/spf13/cobra"
)

// completeOsuFiles limits file completion to beatmaps.
func completeOsuFiles(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{"osu"}, cobra.ShellCompDirectiveFilterFileExt
}

// completeConfigKeys completes the first argument of config get/set.
func completeConfigKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return config.Keys(), cobra.ShellCompDirectiveNoFileComp
}

// completeTOMLFiles limits --from completion to TOML documents.
func completeTOMLFiles(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{"toml"}, cobra.ShellCompDirectiveFilterFileExt
}
