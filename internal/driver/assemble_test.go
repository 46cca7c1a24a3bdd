package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"depyler/internal/codegen"
)

func TestAssembleFile(t *testing.T) {
	fns := []*FunctionResult{
		{Name: "a", Rust: "pub fn a() {\n}\n"},
		{Name: "b", Rust: "pub fn b() {\n}\n"},
	}
	out := AssembleFile("util", fns, codegen.Flags{NeedsHashMap: true})
	if !strings.HasPrefix(out, "// Generated by depyler from util. Do not edit.\n\n") {
		t.Fatalf("header missing:\n%s", out)
	}
	if !strings.Contains(out, "use std::collections::HashMap;\n\n") {
		t.Fatalf("use line missing:\n%s", out)
	}
	ai, bi := strings.Index(out, "pub fn a"), strings.Index(out, "pub fn b")
	if ai < 0 || bi < 0 || ai > bi {
		t.Fatalf("functions out of order:\n%s", out)
	}
}

func TestAssembleFileRuntime(t *testing.T) {
	out := AssembleFile("util", nil, codegen.Flags{NeedsDepylerValue: true})
	if !strings.Contains(out, "DepylerValue") {
		t.Fatalf("runtime module missing:\n%s", out)
	}
}

func TestWriteCrate(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"utils":   "pub fn u() {\n}\n",
		"helpers": "pub fn h() {\n}\n",
	}
	deps := []string{`serde_json = "1"`, `serde_json = "1"`, `chrono = "0.4"`}
	if err := WriteCrate(dir, "myapp", "0.1.0", files, deps); err != nil {
		t.Fatalf("WriteCrate: %v", err)
	}

	lib, err := os.ReadFile(filepath.Join(dir, "src", "lib.rs"))
	if err != nil {
		t.Fatalf("read lib.rs: %v", err)
	}
	if string(lib) != "pub mod helpers;\npub mod utils;\n" {
		t.Fatalf("lib.rs = %q", lib)
	}

	for name, want := range files {
		data, err := os.ReadFile(filepath.Join(dir, "src", name+".rs"))
		if err != nil {
			t.Fatalf("read %s.rs: %v", name, err)
		}
		if string(data) != want {
			t.Fatalf("%s.rs = %q, want %q", name, data, want)
		}
	}

	manifest, err := os.ReadFile(filepath.Join(dir, "Cargo.toml"))
	if err != nil {
		t.Fatalf("read Cargo.toml: %v", err)
	}
	text := string(manifest)
	if !strings.Contains(text, `name = "myapp"`) || !strings.Contains(text, `version = "0.1.0"`) {
		t.Fatalf("package section wrong:\n%s", text)
	}
	if strings.Count(text, `serde_json = "1"`) != 1 {
		t.Fatalf("dependencies not deduplicated:\n%s", text)
	}
	if !strings.Contains(text, `chrono = "0.4"`) {
		t.Fatalf("chrono dep missing:\n%s", text)
	}
}

func TestWriteCrateNoDeps(t *testing.T) {
	dir := t.TempDir()
	if err := WriteCrate(dir, "bare", "0.1.0", map[string]string{"m": ""}, nil); err != nil {
		t.Fatalf("WriteCrate: %v", err)
	}
	manifest, err := os.ReadFile(filepath.Join(dir, "Cargo.toml"))
	if err != nil {
		t.Fatalf("read Cargo.toml: %v", err)
	}
	if strings.Contains(string(manifest), "[dependencies]") {
		t.Fatalf("empty dep list should omit the section:\n%s", manifest)
	}
}

func TestModuleFileName(t *testing.T) {
	cases := []struct {
		path, want string
	}{
		{"data_utils.hir.json", "data_utils"},
		{"/tmp/in/My-Module.hir.json", "my_module"},
		{"weird name.hir.json", "weird_name"},
		{"v2.api.hir.json", "v2_api"},
	}
	for _, tc := range cases {
		if got := ModuleFileName(tc.path); got != tc.want {
			t.Fatalf("ModuleFileName(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}
