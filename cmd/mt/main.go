// mt is the mapping-tools CLI: hitsound copying and metadata sync for osu!
// mapsets.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/julianknutsen/mapping-tools/internal/style"
	"github.com/spf13/cobra"
)

// Version metadata injected via ldflags.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// errExit is a sentinel error returned by cobra RunE functions to signal
// non-zero exit. The command has already written its own error to stderr.
var errExit = errors.New("exit")

// run executes the mt CLI with the given args.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		if errors.Is(err, errExit) {
			return 1
		}
		fmt.Fprintf(stderr, "%s %v\n", style.Error.Render("mt:"), err)
		var h *HintedError
		if errors.As(err, &h) && h.Hint != "" {
			fmt.Fprintf(stderr, "%s %s\n", style.Dim.Render("hint:"), h.Hint)
		}
		return 1
	}
	return 0
}

// newRootCmd creates the root cobra command with all subcommands.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "mt",
		Short:         "Mapping tools for osu! beatmaps",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			fmt.Fprintf(stderr, "mt: unknown command %q\n", args[0]) //nolint:errcheck // best-effort stderr
			return errExit
		},
	}
	root.PersistentFlags().String("color", "auto", "Color output: always, auto, never")
	root.PersistentFlags().BoolP("verbose", "v", false, "Log every matched and unmatched hitsound")
	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		colorMode, _ := cmd.Flags().GetString("color")
		return style.SetColorMode(colorMode)
	}
	root.AddCommand(
		newCopyCmd(stdout, stderr),
		newListCmd(stdout, stderr),
		newResetCmd(stdout, stderr),
		newExtractMetadataCmd(stdout, stderr),
		newApplyMetadataCmd(stdout, stderr),
		newConfigCmd(stdout, stderr),
		newServeCmd(stdout, stderr),
		newTUICmd(stdout, stderr),
		newVersionCmd(stdout),
	)
	return root
}
