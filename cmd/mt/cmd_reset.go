package main

import (
	"fmt"
	"io"
	"os"

	"github.com/julianknutsen/mapping-tools/internal/beatmap"
	"github.com/julianknutsen/mapping-tools/internal/hitsounds"
	"github.com/julianknutsen/mapping-tools/internal/style"
	"github.com/spf13/cobra"
)

func newResetCmd(stdout, _ io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset-hitsounds <file.osu>...",
		Short: "Remove every hitsound from difficulties",
		Long: `Clear the additions and sample sets of every hit object and slider edge.
Timing points, volumes and sample indices are left alone.

Every file is parsed before any is written.`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeOsuFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			backup := backupFlag(cmd, cfg)

			type file struct {
				path string
				mode os.FileMode
				raw  []byte
				bm   *beatmap.Beatmap
			}
			files := make([]file, 0, len(args))
			for _, p := range args {
				info, err := os.Stat(p)
				if err != nil {
					return hintWrap(err)
				}
				bm, raw, err := beatmap.ReadFile(p)
				if err != nil {
					return hintWrap(err)
				}
				hitsounds.Reset(bm)
				files = append(files, file{path: p, mode: info.Mode().Perm(), raw: raw, bm: bm})
			}
			ctx, stop := interruptContext(cmd.Context())
			defer stop()
			for _, f := range files {
				if err := ctx.Err(); err != nil {
					return err
				}
				if backup {
					if err := os.WriteFile(f.path+".bak", f.raw, f.mode); err != nil {
						return fmt.Errorf("writing backup %s.bak: %w", f.path, err)
					}
				}
				if err := beatmap.WriteFile(f.path, f.bm, f.mode); err != nil {
					return err
				}
				fmt.Fprintf(stdout, "  %s %s\n", style.Success.Render(style.IconPass), base(f.path))
			}
			return nil
		},
	}
	cmd.Flags().Bool("backup", false, "Keep a .bak copy of each file (default from config)")
	return cmd
}
