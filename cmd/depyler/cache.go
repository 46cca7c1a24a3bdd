package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"depyler/internal/driver"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the on-disk lowering cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached lowering result",
	RunE: func(_ *cobra.Command, _ []string) error {
		cache, err := driver.OpenDiskCache("depyler")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		dir := cache.Dir()
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("failed to clear %q: %w", dir, err)
		}
		_, _ = fmt.Fprintf(os.Stdout, "cleared %s\n", dir)
		return nil
	},
}

var cachePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the cache directory",
	RunE: func(_ *cobra.Command, _ []string) error {
		cache, err := driver.OpenDiskCache("depyler")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		_, _ = fmt.Fprintln(os.Stdout, cache.Dir())
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cachePathCmd)
}
