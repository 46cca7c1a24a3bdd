package codegen

import (
	"depyler/internal/diag"
	"depyler/internal/hir"
	"depyler/internal/rust"
	"depyler/internal/types"
)

func (g *Generator) convertDictMethod(recv string, d hir.MethodCallData, args []string) (string, error) {
	m := d.Method
	switch m {
	case "get":
		return g.convertDictGet(recv, d, args)
	case "keys":
		if len(args) != 0 {
			return "", diag.Arity("dict.keys", "no", len(args))
		}
		return rust.Method(recv, "keys") + ".cloned().collect::<Vec<_>>()", nil
	case "values":
		if len(args) != 0 {
			return "", diag.Arity("dict.values", "no", len(args))
		}
		return rust.Method(recv, "values") + ".cloned().collect::<Vec<_>>()", nil
	case "items":
		if len(args) != 0 {
			return "", diag.Arity("dict.items", "no", len(args))
		}
		return rust.Method(recv, "iter") + ".map(|(_dv_k, _dv_v)| (_dv_k.clone(), _dv_v.clone())).collect::<Vec<_>>()", nil
	case "pop":
		switch len(args) {
		case 1:
			return rust.Method(recv, "remove", g.borrowKey(d.Args[0], args[0])) +
				".expect(\"KeyError\")", nil
		case 2:
			return rust.Method(recv, "remove", g.borrowKey(d.Args[0], args[0])) +
				".unwrap_or_else(|| " + g.asOwnedString(d.Args[1], args[1]) + ")", nil
		}
		return "", diag.Arity("dict.pop", "1 or 2", len(args))
	case "update":
		if len(args) != 1 {
			return "", diag.Arity("dict.update", "exactly 1", len(args))
		}
		return rust.Method(recv, "extend",
			rust.Method(args[0], "iter")+".map(|(_dv_k, _dv_v)| (_dv_k.clone(), _dv_v.clone()))"), nil
	case "setdefault":
		if len(args) != 2 {
			return "", diag.Arity("dict.setdefault", "exactly 2", len(args))
		}
		key := g.asOwnedString(d.Args[0], args[0])
		return rust.Method(recv, "entry", key) + ".or_insert_with(|| " +
			g.asOwnedString(d.Args[1], args[1]) + ").clone()", nil
	case "clear":
		return rust.Method(recv, "clear"), nil
	case "copy":
		return rust.Method(recv, "clone"), nil
	case "fromkeys":
		if len(args) != 2 {
			return "", diag.Arity("dict.fromkeys", "exactly 2", len(args))
		}
		g.ctx.Flags.NeedsHashMap = true
		return rust.Method(args[0], "iter") + ".map(|_dv_k| (_dv_k.clone(), " +
			g.asOwnedString(d.Args[1], args[1]) + ")).collect::<HashMap<_, _>>()", nil
	}
	return "", diag.UnknownMethod("dict", m)
}

// convertDictGet keeps Python's two shapes apart: one-argument get
// yields an Option, two-argument get yields the value type directly.
func (g *Generator) convertDictGet(recv string, d hir.MethodCallData, args []string) (string, error) {
	if g.isJSONValue(d.Object) {
		return g.convertJSONValueGet(recv, d, args)
	}
	switch len(args) {
	case 1:
		key := g.borrowKey(d.Args[0], args[0])
		if g.ctx.ForceDictValueOptionWrap {
			return rust.Method(recv, "get", key) + ".cloned().flatten()", nil
		}
		return rust.Method(recv, "get", key) + ".cloned()", nil
	case 2:
		key := g.borrowKey(d.Args[0], args[0])
		def := g.asOwnedString(d.Args[1], args[1])
		bt := g.typeOf(d.Object)
		if isNoneLiteral(d.Args[1]) && bt.Is(types.KindDict) && !bt.Value.Is(types.KindOptional) {
			return rust.Method(recv, "get", key) + ".cloned()", nil
		}
		return rust.Method(recv, "get", key) + ".cloned().unwrap_or_else(|| " + def + ")", nil
	}
	return "", diag.Arity("dict.get", "1 or 2", len(args))
}

// convertJSONValueGet lowers get on a serde_json object. With a
// default, the accessor follows the default's type so the expression
// yields a concrete Rust value instead of another Value.
func (g *Generator) convertJSONValueGet(recv string, d hir.MethodCallData, args []string) (string, error) {
	g.ctx.Flags.NeedsSerdeJson = true
	if len(args) < 1 || len(args) > 2 {
		return "", diag.Arity("dict.get", "1 or 2", len(args))
	}
	lookup := rust.Method(recv, "get", g.borrowKey(d.Args[0], args[0]))
	if len(args) == 1 {
		return lookup + ".cloned()", nil
	}
	switch dt := g.typeOf(d.Args[1]); {
	case dt.Is(types.KindStr):
		return lookup + ".and_then(|_dv_v| _dv_v.as_str()).map(|_dv_s| _dv_s.to_string()).unwrap_or_else(|| " +
			g.asOwnedString(d.Args[1], args[1]) + ")", nil
	case dt.Is(types.KindInt):
		return lookup + ".and_then(|_dv_v| _dv_v.as_i64()).unwrap_or(" + args[1] + ")", nil
	case dt.Is(types.KindFloat):
		return lookup + ".and_then(|_dv_v| _dv_v.as_f64()).unwrap_or(" + args[1] + ")", nil
	case dt.Is(types.KindBool):
		return lookup + ".and_then(|_dv_v| _dv_v.as_bool()).unwrap_or(" + args[1] + ")", nil
	}
	return lookup + ".cloned().unwrap_or_else(|| json!(" + args[1] + "))", nil
}

// isJSONValue reports whether the expression is typed as a serde_json
// value.
func (g *Generator) isJSONValue(e *hir.Expr) bool {
	t := g.typeOf(e)
	return t.Is(types.KindCustom) && isJSONValueType(t.Name)
}
