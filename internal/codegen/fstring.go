package codegen

import (
	"strings"

	"depyler/internal/hir"
	"depyler/internal/rust"
	"depyler/internal/types"
)

// convertFString lowers an f-string to format!. Each embedded
// expression picks {} or {:?} from its type evidence; PathBuf values go
// through .display() so Display works.
func (g *Generator) convertFString(d hir.FStringData) (string, error) {
	allLiteral := true
	for _, p := range d.Parts {
		if p.Expr != nil {
			allLiteral = false
			break
		}
	}
	if allLiteral {
		var sb strings.Builder
		for _, p := range d.Parts {
			sb.WriteString(p.Literal)
		}
		return rust.StrLit(sb.String()) + ".to_string()", nil
	}

	var tmpl strings.Builder
	var args []string
	for _, p := range d.Parts {
		if p.Expr == nil {
			tmpl.WriteString(escapeFormatLiteral(p.Literal))
			continue
		}
		code, err := g.ConvertExpression(p.Expr)
		if err != nil {
			return "", err
		}
		if g.isPathBufExpr(p.Expr) {
			tmpl.WriteString("{}")
			args = append(args, rust.Method(code, "display"))
			continue
		}
		tmpl.WriteString(g.formatSpec(p.Expr))
		args = append(args, code)
	}
	return "format!(" + rust.StrLit(tmpl.String()) + ", " + strings.Join(args, ", ") + ")", nil
}

// formatSpec picks the format placeholder for one interpolated value.
// Debug is the default for anything not known to implement Display.
func (g *Generator) formatSpec(e *hir.Expr) string {
	t := g.typeOf(e)
	switch t.Kind {
	case types.KindInt, types.KindFloat, types.KindBool, types.KindStr, types.KindNone:
		return "{}"
	case types.KindList, types.KindDict, types.KindSet, types.KindFrozenSet,
		types.KindTuple, types.KindOptional:
		return "{:?}"
	case types.KindCustom:
		if g.ctx.ClassNames[t.Name] {
			return "{:?}"
		}
		return "{}"
	}
	switch d := e.Data.(type) {
	case hir.MethodCallData:
		// Vec-returning methods have no Display.
		switch d.Method {
		case "split", "rsplit", "splitlines", "keys", "values", "items":
			return "{:?}"
		}
		return "{}"
	case hir.ListData, hir.DictData, hir.CompData, hir.DictCompData:
		return "{:?}"
	}
	if g.isDepylerValue(e) {
		// The runtime value implements Display with Python str()
		// semantics.
		g.ctx.Flags.NeedsDepylerValue = true
		return "{}"
	}
	return "{:?}"
}

func (g *Generator) isPathBufExpr(e *hir.Expr) bool {
	t := g.typeOf(e)
	return t.Is(types.KindCustom) && isPathType(t.Name)
}

// escapeFormatLiteral doubles braces so literal chunks survive format!.
func escapeFormatLiteral(s string) string {
	s = strings.ReplaceAll(s, "{", "{{")
	return strings.ReplaceAll(s, "}", "}}")
}
