package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pgfplot/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "pgfplot",
	Short: "PGFPlots figure compiler",
	Long:  `pgfplot renders figure manifests to PGFPlots markup and compiles them to PDF`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
