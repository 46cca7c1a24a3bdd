package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"depyler/internal/diag"
	"depyler/internal/hir"
	"depyler/internal/rtemit"
)

// FileResult is the outcome of transpiling one HIR input file.
type FileResult struct {
	Path   string
	Module string
	Rust   string
	Deps   []string
	Cached bool
	Err    error
}

// ListHIRFiles returns the sorted *.hir.json files under dir.
func ListHIRFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".hir.json") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// TranspileFiles lowers every input in parallel. Results keep input
// order; per-file failures land in FileResult.Err so one bad input does
// not sink the run.
func TranspileFiles(ctx context.Context, paths []string, opts Options, jobs int, cache *DiskCache, events chan<- Event) ([]FileResult, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(paths), 1)))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = transpileOne(path, opts, cache, events)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func transpileOne(path string, opts Options, cache *DiskCache, events chan<- Event) FileResult {
	emit(events, Event{File: path, Stage: StageDecode, Status: StatusWorking})

	data, err := os.ReadFile(path)
	if err != nil {
		emit(events, Event{File: path, Stage: StageDecode, Status: StatusError, Err: err})
		return FileResult{Path: path, Err: diag.New(diag.DrvDecode, "read %s: %v", path, err)}
	}

	key := HashInput(data, opts)
	var payload DiskPayload
	if hit, err := cache.Get(key, &payload); err == nil && hit {
		emit(events, Event{File: path, Stage: StageAssemble, Status: StatusDone})
		return FileResult{
			Path:   path,
			Module: payload.Module,
			Rust:   cachedRust(&payload),
			Deps:   payload.CrateDeps,
			Cached: true,
		}
	}

	mod, err := hir.DecodeModule(data)
	if err != nil {
		emit(events, Event{File: path, Stage: StageDecode, Status: StatusError, Err: err})
		return FileResult{Path: path, Err: diag.New(diag.DrvDecode, "decode %s: %v", path, err)}
	}

	emit(events, Event{File: path, Stage: StageLower, Status: StatusWorking})
	fns, flags, err := LowerModule(mod, opts)
	if err != nil {
		emit(events, Event{File: path, Stage: StageLower, Status: StatusError, Err: err})
		return FileResult{Path: path, Module: mod.Name, Err: err}
	}

	emit(events, Event{File: path, Stage: StageAssemble, Status: StatusWorking})
	rust := AssembleFile(mod.Name, fns, flags)
	deps := rtemit.CrateDeps(flags, opts.Strict)

	if cache != nil {
		names := make([]string, len(fns))
		bodies := make([]string, len(fns))
		for i, fn := range fns {
			names[i] = fn.Name
			bodies[i] = fn.Rust
		}
		_ = cache.Put(key, &DiskPayload{
			Schema:    diskCacheSchemaVersion,
			Module:    mod.Name,
			Functions: names,
			Rust:      bodies,
			UseLines:  rtemit.UseLines(flags),
			CrateDeps: deps,
			Runtime:   rtemit.Emit(flags),
		})
	}

	emit(events, Event{File: path, Stage: StageAssemble, Status: StatusDone})
	return FileResult{Path: path, Module: mod.Name, Rust: rust, Deps: deps}
}

// cachedRust rebuilds the assembled file text from a cached payload
// without re-running the generator.
func cachedRust(p *DiskPayload) string {
	var sb strings.Builder
	sb.WriteString("// Generated by depyler from ")
	sb.WriteString(p.Module)
	sb.WriteString(". Do not edit.\n\n")
	for _, line := range p.UseLines {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	if len(p.UseLines) > 0 {
		sb.WriteString("\n")
	}
	for i, body := range p.Rust {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(body)
	}
	sb.WriteString(p.Runtime)
	return sb.String()
}

// ModuleFileName derives the Rust module name for an input path.
func ModuleFileName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".hir.json")
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, base)
}
