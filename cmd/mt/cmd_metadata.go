package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/julianknutsen/mapping-tools/internal/metadata"
	"github.com/julianknutsen/mapping-tools/internal/style"
	"github.com/spf13/cobra"
)

var errEmptyMetadata = errors.New("metadata document sets no fields")

func newExtractMetadataCmd(stdout, _ io.Writer) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "extract-metadata <file.osu>",
		Short: "Print the metadata of a difficulty as TOML",
		Long: `Print the [Metadata] section of a difficulty as a TOML document.

Edit the document and pass it to apply-metadata to sync metadata across a
mapset.`,
		Example: `  mt extract-metadata "Insane.osu" > meta.toml
  mt apply-metadata --from meta.toml *.osu`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeOsuFiles,
		RunE: func(_ *cobra.Command, args []string) error {
			m, err := metadata.ExtractFile(args[0])
			if err != nil {
				return hintWrap(err)
			}
			if output == "" {
				return metadata.Encode(stdout, m)
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			if err := metadata.Encode(f, m); err != nil {
				f.Close()
				return fmt.Errorf("writing %s: %w", output, err)
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}

func newApplyMetadataCmd(stdout, _ io.Writer) *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "apply-metadata <file.osu>...",
		Short: "Write TOML metadata into difficulties",
		Long: `Read a TOML metadata document from --from, or stdin, and write every field
it sets into each difficulty. Fields the document leaves out keep their
current values.`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeOsuFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if from != "" {
				f, err := os.Open(from)
				if err != nil {
					return hintWrap(err)
				}
				defer f.Close()
				r = f
			}
			m, err := metadata.Decode(r)
			if err != nil {
				return err
			}
			if m.IsEmpty() {
				return &HintedError{Err: errEmptyMetadata, Hint: "Generate a document with 'mt extract-metadata' and edit it."}
			}
			if err := metadata.ApplyFiles(m, args); err != nil {
				return hintWrap(err)
			}
			for _, p := range args {
				fmt.Fprintf(stdout, "  %s %s\n", style.Success.Render(style.IconPass), base(p))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "TOML document to apply (default stdin)")
	_ = cmd.RegisterFlagCompletionFunc("from", completeTOMLFiles)
	return cmd
}
