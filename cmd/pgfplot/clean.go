package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pgfplot/internal/figcache"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the artifact cache",
	Long:  "Remove every cached compilation artifact. The cache is rebuilt on demand.",
	Args:  cobra.NoArgs,
	RunE:  runCleanCmd,
}

func runCleanCmd(_ *cobra.Command, _ []string) error {
	cache, err := figcache.Open(cacheAppName)
	if err != nil {
		return fmt.Errorf("failed to open artifact cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to drop artifact cache: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stdout, "removed %s\n", cache.Dir())
	return nil
}
