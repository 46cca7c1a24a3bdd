// Package rust holds small helpers for building Rust source text:
// identifier escaping, literal quoting, and precedence-safe wrapping.
// The expression generator composes these into full expressions.
package rust

import (
	"strings"
)

var keywords = map[string]struct{}{
	"as": {}, "break": {}, "const": {}, "continue": {}, "crate": {},
	"else": {}, "enum": {}, "extern": {}, "false": {}, "fn": {},
	"for": {}, "if": {}, "impl": {}, "in": {}, "let": {}, "loop": {},
	"match": {}, "mod": {}, "move": {}, "mut": {}, "pub": {}, "ref": {},
	"return": {}, "self": {}, "Self": {}, "static": {}, "struct": {},
	"super": {}, "trait": {}, "true": {}, "type": {}, "unsafe": {},
	"use": {}, "where": {}, "while": {}, "async": {}, "await": {},
	"dyn": {}, "abstract": {}, "become": {}, "box": {}, "do": {},
	"final": {}, "macro": {}, "override": {}, "priv": {}, "typeof": {},
	"unsized": {}, "virtual": {}, "yield": {}, "try": {},
}

// nonRaw are keywords that cannot be escaped with r# syntax.
var nonRaw = map[string]struct{}{
	"self": {}, "Self": {}, "super": {}, "crate": {},
}

// IsKeyword reports whether name collides with a Rust keyword.
func IsKeyword(name string) bool {
	_, ok := keywords[name]
	return ok
}

// IsNonRawKeyword reports whether name is a keyword that r# cannot
// escape; such Python identifiers must be renamed upstream.
func IsNonRawKeyword(name string) bool {
	_, ok := nonRaw[name]
	return ok
}

// Ident renders a Python identifier as a Rust identifier, applying raw
// syntax for keyword collisions.
func Ident(name string) string {
	if IsKeyword(name) && !IsNonRawKeyword(name) {
		return "r#" + name
	}
	return name
}

// StrLit renders s as a Rust string literal.
func StrLit(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case '\x00':
			sb.WriteString(`\0`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
