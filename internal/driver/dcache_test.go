package driver

import (
	"path/filepath"
	"testing"
)

func TestHashInputDistinguishesOptions(t *testing.T) {
	data := []byte(`{"name": "m"}`)
	base := HashInput(data, Options{})
	if HashInput(data, Options{Strict: true}) == base {
		t.Fatalf("strict mode must change the digest")
	}
	if HashInput(data, Options{CrateName: "other"}) == base {
		t.Fatalf("crate name must change the digest")
	}
	if HashInput([]byte(`{"name": "n"}`), Options{}) == base {
		t.Fatalf("input bytes must change the digest")
	}
	if HashInput(data, Options{}) != base {
		t.Fatalf("digest must be deterministic")
	}
}

func TestDiskCacheRoundtrip(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("depyler-test")
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	key := HashInput([]byte("input"), Options{})

	var miss DiskPayload
	if hit, err := cache.Get(key, &miss); err != nil || hit {
		t.Fatalf("Get before Put = (%v, %v), want miss", hit, err)
	}

	in := DiskPayload{
		Schema:    1,
		Module:    "calc",
		Functions: []string{"double"},
		Rust:      []string{"pub fn double(n: i64) -> i64 {\n    n * 2\n}\n"},
		UseLines:  []string{"use std::collections::HashMap;"},
		CrateDeps: []string{`serde_json = "1"`},
		Runtime:   "",
	}
	if err := cache.Put(key, &in); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out DiskPayload
	hit, err := cache.Get(key, &out)
	if err != nil || !hit {
		t.Fatalf("Get after Put = (%v, %v), want hit", hit, err)
	}
	if out.Module != "calc" || len(out.Rust) != 1 || out.Rust[0] != in.Rust[0] {
		t.Fatalf("payload roundtrip mangled: %+v", out)
	}
	if len(out.UseLines) != 1 || out.UseLines[0] != in.UseLines[0] {
		t.Fatalf("use lines mangled: %v", out.UseLines)
	}
}

func TestDiskCacheSchemaMismatch(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("depyler-test")
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	key := HashInput([]byte("stale"), Options{})
	if err := cache.Put(key, &DiskPayload{Schema: 999, Module: "old"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	var out DiskPayload
	if hit, err := cache.Get(key, &out); err != nil || hit {
		t.Fatalf("schema mismatch should miss, got (%v, %v)", hit, err)
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("depyler-test")
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	key := HashInput([]byte("gone"), Options{})
	if err := cache.Put(key, &DiskPayload{Schema: 1, Module: "m"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	var out DiskPayload
	if hit, err := cache.Get(key, &out); err != nil || hit {
		t.Fatalf("Get after DropAll = (%v, %v), want miss", hit, err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll on empty cache: %v", err)
	}
}

func TestDiskCacheNilSafe(t *testing.T) {
	var cache *DiskCache
	key := HashInput([]byte("x"), Options{})
	if err := cache.Put(key, &DiskPayload{}); err != nil {
		t.Fatalf("nil Put: %v", err)
	}
	var out DiskPayload
	if hit, err := cache.Get(key, &out); err != nil || hit {
		t.Fatalf("nil Get = (%v, %v)", hit, err)
	}
	if cache.Dir() != "" {
		t.Fatalf("nil Dir = %q", cache.Dir())
	}
}

func TestOpenDiskCacheUsesXDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)
	cache, err := OpenDiskCache("depyler-test")
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	if cache.Dir() != filepath.Join(base, "depyler-test") {
		t.Fatalf("Dir = %q", cache.Dir())
	}
}
