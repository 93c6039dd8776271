package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// colorEnabled resolves --color for the given stream.
func colorEnabled(cmd *cobra.Command, f *os.File) bool {
	v, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false
	}
	switch v {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}

// configureColor applies --color to version output and anything else that
// uses the fatih/color globals.
func configureColor(cmd *cobra.Command) {
	color.NoColor = !colorEnabled(cmd, os.Stdout)
}
