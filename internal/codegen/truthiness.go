package codegen

import (
	"depyler/internal/hir"
	"depyler/internal/rust"
	"depyler/internal/types"
)

// truthyCond converts an already-lowered expression into an explicit
// Rust bool per Python truthiness rules. code must be the lowering of
// e.
func (g *Generator) truthyCond(e *hir.Expr, code string) string {
	t := g.typeOf(e)
	switch t.Kind {
	case types.KindBool:
		return code
	case types.KindStr, types.KindList, types.KindDict, types.KindSet, types.KindFrozenSet:
		return "!" + rust.Method(code, "is_empty")
	case types.KindOptional:
		return rust.Method(code, "is_some")
	case types.KindInt:
		return rust.Paren(code) + " != 0"
	case types.KindFloat:
		return rust.Paren(code) + " != 0.0"
	case types.KindNone:
		return "false"
	}
	// Comparisons and boolean operators are already bool.
	if b, ok := e.Data.(hir.BinaryData); ok {
		if b.Op.IsComparison() || b.Op == hir.OpAnd || b.Op == hir.OpOr {
			return code
		}
	}
	if u, ok := e.Data.(hir.UnaryData); ok && u.Op == hir.OpNot {
		return code
	}
	if g.isDepylerValue(e) {
		g.ctx.Flags.NeedsDepylerValue = true
		return rust.Method(code, "is_true")
	}
	// Name heuristics as last resort: string-looking unknowns get the
	// emptiness check.
	if name, ok := varName(e); ok && looksLikeString(name) {
		return "!" + rust.Method(code, "is_empty")
	}
	return code
}

// asOwnedString appends .to_string() when the expression is a string
// literal or &str parameter that must become an owned String.
func (g *Generator) asOwnedString(e *hir.Expr, code string) string {
	if _, ok := strLiteral(e); ok {
		return code + ".to_string()"
	}
	if name, ok := varName(e); ok && g.ctx.FnStrParams[name] {
		return rust.Ident(name) + ".to_string()"
	}
	return code
}

// borrowKey prepares a dict-key argument: string literals pass bare
// (Borrow<str> covers them), known &str parameters are already
// borrowed, everything else takes &.
func (g *Generator) borrowKey(e *hir.Expr, code string) string {
	if _, ok := strLiteral(e); ok {
		return code
	}
	if name, ok := varName(e); ok && g.ctx.FnStrParams[name] {
		return code
	}
	return "&" + rust.Paren(code)
}

// wrapDepylerValue lifts a concretely-typed lowering into the runtime
// value type.
func (g *Generator) wrapDepylerValue(e *hir.Expr, code string) string {
	g.ctx.Flags.NeedsDepylerValue = true
	t := g.typeOf(e)
	switch t.Kind {
	case types.KindInt:
		return "DepylerValue::Int(" + code + ")"
	case types.KindFloat:
		return "DepylerValue::Float(" + code + ")"
	case types.KindBool:
		return "DepylerValue::Bool(" + code + ")"
	case types.KindStr:
		if _, lit := strLiteral(e); lit {
			return "DepylerValue::Str(" + code + ".to_string())"
		}
		return "DepylerValue::Str(" + rust.Paren(code) + ".to_string())"
	case types.KindNone:
		return "DepylerValue::None"
	default:
		return "DepylerValue::from(" + code + ")"
	}
}
