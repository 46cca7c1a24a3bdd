package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"depyler/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "depyler",
	Short: "Python-to-Rust transpiler driver",
	Long:  `depyler lowers typed Python HIR modules into Rust crates`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(transpileCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("jobs", 0, "parallel lowering jobs (0 = all CPUs)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
