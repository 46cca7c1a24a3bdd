package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"depyler/internal/driver"
	"depyler/internal/project"
	"depyler/internal/ui"
)

var (
	transpileOut    string
	transpileStrict bool
	transpileUI     string
	transpileNoCach bool
)

func init() {
	transpileCmd.Flags().StringVarP(&transpileOut, "out", "o", "", "output crate directory (default from depyler.toml)")
	transpileCmd.Flags().BoolVar(&transpileStrict, "strict", false, "forbid third-party crates in the generated Rust")
	transpileCmd.Flags().StringVar(&transpileUI, "ui", "auto", "progress UI (auto|on|off)")
	transpileCmd.Flags().BoolVar(&transpileNoCach, "no-cache", false, "skip the on-disk lowering cache")
}

var transpileCmd = &cobra.Command{
	Use:   "transpile <dir>",
	Short: "Lower HIR modules under a directory into a Rust crate",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]

		cfg, err := project.LoadOrDefault(dir)
		if err != nil {
			return err
		}
		if transpileStrict {
			cfg.Output.Strict = true
		}
		outDir := cfg.Output.Dir
		if transpileOut != "" {
			outDir = transpileOut
		}

		files, err := driver.ListHIRFiles(dir)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no .hir.json inputs under %s", dir)
		}

		var cache *driver.DiskCache
		if cfg.Cache.Enabled && !transpileNoCach {
			cache, err = driver.OpenDiskCache("depyler")
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: cache disabled: %v\n", err)
			}
		}

		opts := driver.Options{Strict: cfg.Output.Strict, CrateName: cfg.Package.Name}
		jobs, _ := cmd.Flags().GetInt("jobs")

		useTUI, err := resolveUIMode(transpileUI)
		if err != nil {
			return err
		}

		var events chan driver.Event
		var uiDone chan error
		if useTUI {
			events = make(chan driver.Event, 64)
			uiDone = make(chan error, 1)
			model := ui.NewProgressModel("transpiling "+dir, files, events)
			go func() {
				_, runErr := tea.NewProgram(model).Run()
				uiDone <- runErr
			}()
		}

		results, err := driver.TranspileFiles(cmd.Context(), files, opts, jobs, cache, events)
		if events != nil {
			close(events)
			<-uiDone
		}
		if err != nil {
			return err
		}

		srcByName := map[string]string{}
		var deps []string
		failed := 0
		for _, res := range results {
			if res.Err != nil {
				failed++
				color.Red("  %s: %v", res.Path, res.Err)
				continue
			}
			srcByName[driver.ModuleFileName(res.Path)] = res.Rust
			deps = append(deps, res.Deps...)
		}
		if len(srcByName) == 0 {
			return fmt.Errorf("all %d inputs failed", failed)
		}

		if err := driver.WriteCrate(outDir, cfg.Package.Name, cfg.Package.Version, srcByName, deps); err != nil {
			return err
		}

		ok := len(results) - failed
		color.Green("wrote %s: %d module(s)", outDir, ok)
		if failed > 0 {
			color.Yellow("%d input(s) failed", failed)
			return fmt.Errorf("%d of %d inputs failed", failed, len(results))
		}
		return nil
	},
}

func resolveUIMode(value string) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return isTerminal(os.Stdout), nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}
