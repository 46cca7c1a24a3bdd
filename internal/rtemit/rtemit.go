// Package rtemit holds the Rust runtime support code appended to
// generated crates. Each fragment is included only when the matching
// capability flag was raised during lowering.
package rtemit

import (
	"strings"

	"depyler/internal/codegen"
)

// UseLines returns the `use` declarations a generated file needs, in a
// stable order.
func UseLines(f codegen.Flags) []string {
	var lines []string
	if f.NeedsHashMap {
		lines = append(lines, "use std::collections::HashMap;")
	}
	if f.NeedsHashSet {
		lines = append(lines, "use std::collections::HashSet;")
	}
	if f.NeedsVecDeque {
		lines = append(lines, "use std::collections::VecDeque;")
	}
	if f.NeedsBufRead {
		lines = append(lines, "use std::io::BufRead;")
		lines = append(lines, "use std::io::BufReader;")
	}
	if f.NeedsIoWrite {
		lines = append(lines, "use std::io::Write;")
	}
	if f.NeedsArc {
		lines = append(lines, "use std::sync::Arc;")
	}
	if f.NeedsCmpReverse {
		lines = append(lines, "use std::cmp::Reverse;")
	}
	if f.NeedsSerdeJson {
		lines = append(lines, "use serde_json::json;")
	}
	if f.NeedsRegex {
		lines = append(lines, "use regex::Regex;")
	}
	if f.NeedsCsv {
		lines = append(lines, "use csv;")
	}
	return lines
}

// CrateDeps returns Cargo dependency lines for the third-party crates
// the generated code reaches for. Strict mode never returns any.
func CrateDeps(f codegen.Flags, strict bool) []string {
	if strict {
		return nil
	}
	var deps []string
	if f.NeedsSerdeJson {
		deps = append(deps, `serde_json = "1"`)
	}
	if f.NeedsChrono {
		deps = append(deps, `chrono = "0.4"`)
	}
	if f.NeedsTokio {
		deps = append(deps, `tokio = { version = "1", features = ["full"] }`)
	}
	if f.NeedsRegex {
		deps = append(deps, `regex = "1"`)
	}
	if f.NeedsCsv {
		deps = append(deps, `csv = "1"`)
	}
	if f.NeedsHex {
		deps = append(deps, `hex = "0.4"`)
	}
	if f.NeedsDigest {
		deps = append(deps, `digest = "0.10"`)
		deps = append(deps, `sha2 = "0.10"`)
		deps = append(deps, `md-5 = "0.10"`)
	}
	return deps
}

// Emit returns the runtime module text for the raised flags, or an
// empty string when no runtime support is needed.
func Emit(f codegen.Flags) string {
	var sb strings.Builder
	if f.NeedsDepylerValue {
		sb.WriteString(depylerValueSource)
	}
	if f.NeedsDepylerDate || f.NeedsDepylerDateTime || f.NeedsDepylerDelta {
		sb.WriteString(depylerDateSource)
	}
	return sb.String()
}
