package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"depyler/internal/codegen"
	"depyler/internal/diag"
	"depyler/internal/rtemit"
)

// AssembleFile renders one generated Rust source file: use lines first,
// then the lowered functions, then the runtime module when any flag
// asked for it.
func AssembleFile(moduleName string, fns []*FunctionResult, flags codegen.Flags) string {
	var sb strings.Builder
	sb.WriteString("// Generated by depyler from ")
	sb.WriteString(moduleName)
	sb.WriteString(". Do not edit.\n\n")

	for _, line := range rtemit.UseLines(flags) {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	if len(rtemit.UseLines(flags)) > 0 {
		sb.WriteString("\n")
	}

	for i, fn := range fns {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fn.Rust)
	}

	if rt := rtemit.Emit(flags); rt != "" {
		sb.WriteString(rt)
	}
	return sb.String()
}

// WriteCrate lays out a Cargo crate under dir: Cargo.toml plus one
// src/<module>.rs per input, with src/lib.rs declaring them.
func WriteCrate(dir, crateName, version string, files map[string]string, deps []string) error {
	srcDir := filepath.Join(dir, "src")
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		return diag.New(diag.DrvWrite, "create output dir: %v", err)
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var lib strings.Builder
	for _, name := range names {
		path := filepath.Join(srcDir, name+".rs")
		if err := os.WriteFile(path, []byte(files[name]), 0o644); err != nil {
			return diag.New(diag.DrvWrite, "write %s: %v", path, err)
		}
		fmt.Fprintf(&lib, "pub mod %s;\n", name)
	}
	if err := os.WriteFile(filepath.Join(srcDir, "lib.rs"), []byte(lib.String()), 0o644); err != nil {
		return diag.New(diag.DrvWrite, "write lib.rs: %v", err)
	}

	var manifest strings.Builder
	fmt.Fprintf(&manifest, "[package]\nname = %q\nversion = %q\nedition = \"2021\"\n", crateName, version)
	if len(deps) > 0 {
		manifest.WriteString("\n[dependencies]\n")
		seen := map[string]bool{}
		for _, d := range deps {
			if !seen[d] {
				seen[d] = true
				manifest.WriteString(d)
				manifest.WriteString("\n")
			}
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte(manifest.String()), 0o644); err != nil {
		return diag.New(diag.DrvWrite, "write Cargo.toml: %v", err)
	}
	return nil
}
