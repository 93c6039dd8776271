package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"rbfmt/internal/driver"
	"rbfmt/internal/format"
	"rbfmt/internal/project"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.rb|->",
	Short: "Show the formatter's token tree for a file",
	Long: `Parse prints the token stream the formatter builds before it picks
layouts: breakables with their delimiters and contents, heredocs, comment
blocks. Useful when the output of fmt looks wrong.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	opts := driver.FormatOptions{MaxDiagnostics: maxDiagnostics, Config: project.Default()}

	var res *driver.StreamResult
	if filePath == "-" {
		src, readErr := io.ReadAll(cmd.InOrStdin())
		if readErr != nil {
			return fmt.Errorf("read stdin: %w", readErr)
		}
		res, err = driver.StreamBytes(cmd.Context(), "<stdin>", src, opts)
	} else {
		res, err = driver.Stream(cmd.Context(), filePath, opts)
	}
	if err != nil {
		cmd.SilenceUsage = true
		reportFileError(cmd, filePath, err)
		return errSilent
	}
	return format.Dump(cmd.OutOrStdout(), res.Tokens)
}
