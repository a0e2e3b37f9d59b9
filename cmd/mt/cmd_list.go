package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/julianknutsen/mapping-tools/internal/beatmap"
	"github.com/julianknutsen/mapping-tools/internal/hitsounds"
	"github.com/julianknutsen/mapping-tools/internal/style"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

func newListCmd(stdout, stderr io.Writer) *cobra.Command {
	var sections bool
	cmd := &cobra.Command{
		Use:               "list-hitsounds <file.osu>",
		Short:             "Show the hitsounds a difficulty would copy",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeOsuFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			bm, _, err := beatmap.ReadFile(args[0])
			if err != nil {
				return hintWrap(err)
			}
			data, err := hitsounds.Collect(bm, hitsounds.Options{Logger: cliLogger(cmd, stderr)})
			if err != nil {
				return hintWrap(err)
			}
			if err := renderHits(stdout, data.Hits); err != nil {
				return err
			}
			if sections {
				fmt.Fprintln(stdout)
				if err := renderSections(stdout, data.Points); err != nil {
					return err
				}
			}
			fmt.Fprintf(stdout, "\n%s, %s\n", plural(len(data.Hits), "hit"), plural(len(data.Points), "timing section"))
			return nil
		},
	}
	cmd.Flags().BoolVar(&sections, "sections", false, "Also list timing section volumes and sample indices")
	return cmd
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(
		w,
		tablewriter.WithRenderer(
			renderer.NewBlueprint(
				tw.Rendition{
					Symbols: tw.NewSymbolCustom("mt").
						WithColumn(" ").
						WithRow("-").
						WithCenter(" "),
					Borders: tw.Border{
						Left:   tw.Off,
						Top:    tw.Off,
						Right:  tw.Off,
						Bottom: tw.Off,
					},
				},
			),
		),
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.Fail},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
	)
}

func renderHits(w io.Writer, hits []hitsounds.Hit) error {
	table := newTable(w)
	table.Header([]string{"TIME", "ADDITIONS", "SAMPLESET", "ADDITIONSET"})
	rows := make([][]string, 0, len(hits))
	for _, h := range hits {
		rows = append(rows, []string{
			style.Timestamp(h.Time),
			style.Additions(h.Additions),
			h.SampleInfo.SampleSet.String(),
			h.SampleInfo.AdditionSet.String(),
		})
	}
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("building hitsound table: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering hitsound table: %w", err)
	}
	return nil
}

func renderSections(w io.Writer, points []hitsounds.SectionProps) error {
	table := newTable(w)
	table.Header([]string{"TIME", "VOLUME", "INDEX", "KIAI"})
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		kiai := ""
		if p.Kiai {
			kiai = "yes"
		}
		rows = append(rows, []string{
			style.Timestamp(p.Time),
			strconv.Itoa(p.Volume),
			strconv.Itoa(p.SampleIndex),
			kiai,
		})
	}
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("building section table: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering section table: %w", err)
	}
	return nil
}
