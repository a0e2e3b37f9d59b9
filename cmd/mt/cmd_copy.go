package main

import (
	"fmt"
	"io"
	"os"

	"github.com/julianknutsen/mapping-tools/internal/hitsounds"
	"github.com/julianknutsen/mapping-tools/internal/style"
	"github.com/spf13/cobra"
)

func newCopyCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		leniency int
		mapset   bool
	)
	cmd := &cobra.Command{
		Use:   "copy-hitsounds <source.osu> [target.osu...]",
		Short: "Copy hitsounds from one difficulty to others",
		Long: `Copy the hitsounds of a source difficulty onto target difficulties.

Every hit object, slider head, repeat and tail in a target that lands within
the leniency window of a source hit takes that hit's additions and sample
sets. Timing point volumes and custom sample indices are copied too; a green
line is inserted where the target has none.

All targets are parsed before any is written, so a malformed target leaves
every file untouched.`,
		Example: `  mt copy-hitsounds "Insane.osu" "Hard.osu" "Normal.osu"
  mt copy-hitsounds --mapset --backup "Insane.osu"`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeOsuFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("leniency") {
				leniency = cfg.Leniency
			}
			if leniency < 0 {
				return fmt.Errorf("invalid --leniency %d: must not be negative", leniency)
			}

			src := args[0]
			targets := args[1:]
			if mapset {
				siblings, err := hitsounds.Siblings(src)
				if err != nil {
					return hintWrap(err)
				}
				targets = appendUnique(targets, siblings...)
			}
			if len(targets) == 0 {
				return hintWrap(hitsounds.ErrNoTargets)
			}

			sp := style.StartSpinner(stderr, "Reading beatmaps...")
			copier := hitsounds.FileCopier{
				Options: hitsounds.Options{Leniency: leniency, Logger: cliLogger(cmd, stderr)},
				Backup:  backupFlag(cmd, cfg),
				OnProgress: func(path string) {
					sp.SetMessage("Writing " + base(path) + "...")
				},
			}
			ctx, stop := interruptContext(cmd.Context())
			defer stop()
			results, err := copier.CopyFiles(ctx, src, targets)
			sp.Stop()
			if err != nil {
				return hintWrap(err)
			}
			printCopyResults(stdout, results)

			written := 0
			for _, r := range results {
				if !r.Skipped {
					written++
				}
			}
			fmt.Fprintf(stdout, "\nCopied hitsounds from %s to %s.\n", style.Bold.Render(base(src)), plural(written, "difficulty"))
			return nil
		},
	}
	cmd.Flags().IntVarP(&leniency, "leniency", "l", hitsounds.DefaultLeniency, "Matching window in milliseconds (default from config)")
	cmd.Flags().BoolVar(&mapset, "mapset", false, "Also target every other difficulty in the source's directory")
	cmd.Flags().Bool("backup", false, "Keep a .bak copy of each target (default from config)")
	return cmd
}

// printCopyResults lists what happened to each target.
func printCopyResults(w io.Writer, results []hitsounds.FileResult) {
	for _, r := range results {
		switch {
		case r.Skipped:
			fmt.Fprintf(w, "  %s %s %s\n", style.Warning.Render(style.IconSkip), base(r.Path), style.Dim.Render("(source, skipped)"))
		case r.Backup != "":
			fmt.Fprintf(w, "  %s %s %s\n", style.Success.Render(style.IconPass), base(r.Path), style.Dim.Render("(backup: "+base(r.Backup)+")"))
		default:
			fmt.Fprintf(w, "  %s %s\n", style.Success.Render(style.IconPass), base(r.Path))
		}
	}
}

// appendUnique appends paths not already in dst, comparing by file identity
// so that "./a.osu" and "a.osu" collapse.
func appendUnique(dst []string, paths ...string) []string {
	infos := make([]os.FileInfo, 0, len(dst))
	for _, p := range dst {
		if info, err := os.Stat(p); err == nil {
			infos = append(infos, info)
		}
	}
next:
	for _, p := range paths {
		info, err := os.Stat(p)
		if err == nil {
			for _, seen := range infos {
				if os.SameFile(seen, info) {
					continue next
				}
			}
			infos = append(infos, info)
		}
		dst = append(dst, p)
	}
	return dst
}
