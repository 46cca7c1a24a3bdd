package codegen

import (
	"strings"

	"depyler/internal/types"
)

// rustType renders the Rust spelling of a reconstructed Python type,
// setting the capability flags the spelling depends on. Unknown falls
// back to the DepylerValue runtime type.
func (g *Generator) rustType(t *types.Type) string {
	if t.IsUnknown() {
		g.ctx.Flags.NeedsDepylerValue = true
		return "DepylerValue"
	}
	switch t.Kind {
	case types.KindInt:
		return "i64"
	case types.KindFloat:
		return "f64"
	case types.KindBool:
		return "bool"
	case types.KindStr:
		return "String"
	case types.KindNone:
		return "()"
	case types.KindList:
		return "Vec<" + g.rustType(t.Elem) + ">"
	case types.KindDict:
		g.ctx.Flags.NeedsHashMap = true
		return "HashMap<" + g.rustType(t.Key) + ", " + g.rustType(t.Value) + ">"
	case types.KindSet:
		g.ctx.Flags.NeedsHashSet = true
		return "HashSet<" + g.rustType(t.Elem) + ">"
	case types.KindFrozenSet:
		g.ctx.Flags.NeedsHashSet = true
		g.ctx.Flags.NeedsArc = true
		return "Arc<HashSet<" + g.rustType(t.Elem) + ">>"
	case types.KindTuple:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = g.rustType(e)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case types.KindOptional:
		return "Option<" + g.rustType(t.Elem) + ">"
	case types.KindCustom:
		return t.Name
	case types.KindGeneric:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = g.rustType(e)
		}
		return t.Name + "<" + strings.Join(parts, ", ") + ">"
	case types.KindFunction:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = g.rustType(e)
		}
		return "Box<dyn Fn(" + strings.Join(parts, ", ") + ") -> " + g.rustType(t.Ret) + ">"
	default:
		g.ctx.Flags.NeedsDepylerValue = true
		return "DepylerValue"
	}
}

// RustType is the exported form of rustType for the driver's function
// signatures.
func (g *Generator) RustType(t *types.Type) string {
	return g.rustType(t)
}

// jsonValueType is the Rust spelling for a heterogeneous value slot:
// serde_json::Value normally, DepylerValue in strict mode.
func (g *Generator) jsonValueType() string {
	if g.ctx.StrictMode {
		g.ctx.Flags.NeedsDepylerValue = true
		return "DepylerValue"
	}
	g.ctx.Flags.NeedsSerdeJson = true
	return "serde_json::Value"
}
