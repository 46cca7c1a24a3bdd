package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const doubleModule = `{
	"name": "calc",
	"functions": [
		{
			"name": "double",
			"params": [{"name": "n", "type": "int"}],
			"ret": "int",
			"body": [
				{"kind": "binary", "op": "*", "left": {"kind": "var", "name": "n", "type": "int"}, "right": {"kind": "int", "value": 2}}
			]
		}
	]
}`

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestListHIRFiles(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "b.hir.json", "{}")
	writeInput(t, dir, "a.hir.json", "{}")
	writeInput(t, dir, "notes.txt", "skip me")
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeInput(t, sub, "c.hir.json", "{}")

	files, err := ListHIRFiles(dir)
	if err != nil {
		t.Fatalf("ListHIRFiles: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("files = %v", files)
	}
	if filepath.Base(files[0]) != "a.hir.json" || filepath.Base(files[1]) != "b.hir.json" {
		t.Fatalf("files not sorted: %v", files)
	}
}

func TestTranspileFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeInput(t, dir, "calc.hir.json", doubleModule)
	bad := writeInput(t, dir, "broken.hir.json", `{"name": "broken", "functions": [{"name": "f", "body": [{"kind": "walrus"}]}]}`)

	results, err := TranspileFiles(context.Background(), []string{good, bad}, Options{}, 2, nil, nil)
	if err != nil {
		t.Fatalf("TranspileFiles: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d", len(results))
	}
	if results[0].Err != nil {
		t.Fatalf("good input failed: %v", results[0].Err)
	}
	if results[0].Module != "calc" {
		t.Fatalf("Module = %q", results[0].Module)
	}
	if !strings.Contains(results[0].Rust, "pub fn double(n: i64) -> i64 {") {
		t.Fatalf("lowered Rust missing function:\n%s", results[0].Rust)
	}
	if !strings.Contains(results[0].Rust, "n * 2") {
		t.Fatalf("lowered Rust missing body:\n%s", results[0].Rust)
	}
	if results[1].Err == nil {
		t.Fatalf("broken input should carry an error")
	}
}

func TestTranspileFilesCacheHit(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("depyler-test")
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	dir := t.TempDir()
	path := writeInput(t, dir, "calc.hir.json", doubleModule)

	first, err := TranspileFiles(context.Background(), []string{path}, Options{}, 1, cache, nil)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first[0].Err != nil || first[0].Cached {
		t.Fatalf("first run should lower fresh: %+v", first[0])
	}

	second, err := TranspileFiles(context.Background(), []string{path}, Options{}, 1, cache, nil)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second[0].Err != nil || !second[0].Cached {
		t.Fatalf("second run should hit the cache: %+v", second[0])
	}
	if second[0].Rust != first[0].Rust {
		t.Fatalf("cached output diverged:\nfirst:\n%s\nsecond:\n%s", first[0].Rust, second[0].Rust)
	}
}

func TestTranspileFilesEvents(t *testing.T) {
	dir := t.TempDir()
	path := writeInput(t, dir, "calc.hir.json", doubleModule)

	events := make(chan Event, 16)
	if _, err := TranspileFiles(context.Background(), []string{path}, Options{}, 1, nil, events); err != nil {
		t.Fatalf("TranspileFiles: %v", err)
	}
	close(events)

	var sawDone bool
	for ev := range events {
		if ev.File != path {
			t.Fatalf("event for wrong file: %+v", ev)
		}
		if ev.Stage == StageAssemble && ev.Status == StatusDone {
			sawDone = true
		}
	}
	if !sawDone {
		t.Fatalf("no assemble-done event observed")
	}
}
