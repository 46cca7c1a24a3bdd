// Package project locates and parses the depyler.toml manifest that
// configures a transpilation run.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the parsed depyler.toml.
type Config struct {
	Package PackageConfig `toml:"package"`
	Output  OutputConfig  `toml:"output"`
	Cache   CacheConfig   `toml:"cache"`
}

// PackageConfig names the generated crate.
type PackageConfig struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// OutputConfig controls the emitted Rust.
type OutputConfig struct {
	Dir    string `toml:"dir"`
	Strict bool   `toml:"strict"` // forbid third-party crates in the output
}

// CacheConfig toggles the on-disk lowering cache.
type CacheConfig struct {
	Enabled bool `toml:"enabled"`
}

// Default returns the configuration used when no manifest exists.
func Default() *Config {
	return &Config{
		Package: PackageConfig{Name: "transpiled", Version: "0.1.0"},
		Output:  OutputConfig{Dir: "out"},
		Cache:   CacheConfig{Enabled: true},
	}
}

// FindManifest walks up from startDir to locate depyler.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "depyler.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses a manifest file; missing sections fall back to defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if meta.IsDefined("package", "name") && cfg.Package.Name == "" {
		return nil, fmt.Errorf("%s: [package].name must not be empty", path)
	}
	if !meta.IsDefined("cache", "enabled") {
		cfg.Cache.Enabled = true
	}
	return cfg, nil
}

// LoadOrDefault resolves the manifest from startDir, falling back to
// defaults when none is found.
func LoadOrDefault(startDir string) (*Config, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}
