package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "depyler.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Package.Name != "transpiled" || cfg.Package.Version != "0.1.0" {
		t.Fatalf("package defaults = %+v", cfg.Package)
	}
	if cfg.Output.Dir != "out" || cfg.Output.Strict {
		t.Fatalf("output defaults = %+v", cfg.Output)
	}
	if !cfg.Cache.Enabled {
		t.Fatalf("cache should default to enabled")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[package]
name = "mylib"
version = "2.0.0"

[output]
dir = "gen"
strict = true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Package.Name != "mylib" || cfg.Package.Version != "2.0.0" {
		t.Fatalf("package = %+v", cfg.Package)
	}
	if cfg.Output.Dir != "gen" || !cfg.Output.Strict {
		t.Fatalf("output = %+v", cfg.Output)
	}
	if !cfg.Cache.Enabled {
		t.Fatalf("cache.enabled should default to true when the section is absent")
	}
}

func TestLoadCacheDisabled(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[package]
name = "mylib"

[cache]
enabled = false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Cache.Enabled {
		t.Fatalf("explicit cache.enabled = false should stick")
	}
}

func TestLoadEmptyPackageName(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[package]
name = ""
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("empty package name should be rejected")
	}
}

func TestLoadBadTOML(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `[package`)
	if _, err := Load(path); err == nil {
		t.Fatalf("malformed TOML should fail")
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"x\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path, ok, err := FindManifest(nested)
	if err != nil {
		t.Fatalf("FindManifest: %v", err)
	}
	if !ok || path != filepath.Join(root, "depyler.toml") {
		t.Fatalf("FindManifest = (%q, %v)", path, ok)
	}
}

func TestLoadOrDefaultFallback(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadOrDefault(dir)
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if cfg.Package.Name != "transpiled" {
		t.Fatalf("fallback config = %+v", cfg.Package)
	}
}
