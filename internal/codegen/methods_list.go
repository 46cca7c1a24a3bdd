package codegen

import (
	"depyler/internal/diag"
	"depyler/internal/hir"
	"depyler/internal/rust"
	"depyler/internal/types"
)

// convertListMethod handles the Vec-backed family. It reports handled
// false for names it does not own so the router can keep probing.
func (g *Generator) convertListMethod(recv string, d hir.MethodCallData, args []string) (string, bool, error) {
	m := d.Method
	switch m {
	case "append":
		if len(args) != 1 {
			return "", true, diag.Arity("list.append", "exactly 1", len(args))
		}
		arg := g.asOwnedString(d.Args[0], args[0])
		if g.isDepylerValue(d.Object) {
			g.ctx.Flags.NeedsDepylerValue = true
			arg = g.wrapDepylerValue(d.Args[0], args[0])
		}
		return rust.Method(recv, "push", arg), true, nil
	case "extend":
		if len(args) != 1 {
			return "", true, diag.Arity("list.extend", "exactly 1", len(args))
		}
		// A borrow marker means the argument stays live after the
		// call, so its elements are cloned in. Anything else is a
		// temporary the extend may consume.
		if b, ok := d.Args[0].Data.(hir.BorrowData); ok {
			inner, err := g.ConvertExpression(b.Expr)
			if err != nil {
				return "", true, err
			}
			return rust.Method(recv, "extend", rust.Method(inner, "iter")+".cloned()"), true, nil
		}
		return rust.Method(recv, "extend", rust.Method(args[0], "into_iter")), true, nil
	case "insert":
		if len(args) != 2 {
			return "", true, diag.Arity("list.insert", "exactly 2", len(args))
		}
		return rust.Method(recv, "insert", rust.Paren(args[0])+" as usize", g.asOwnedString(d.Args[1], args[1])), true, nil
	case "pop":
		return g.convertListPop(recv, d, args)
	case "remove":
		if len(args) != 1 {
			return "", true, diag.Arity("list.remove", "exactly 1", len(args))
		}
		return "{ let _dv_pos = " + rust.Method(recv, "iter") + ".position(|_dv_x| *_dv_x == " + args[0] +
			").expect(\"ValueError: list.remove(x): x not in list\"); " +
			rust.Method(recv, "remove", "_dv_pos") + " }", true, nil
	case "sort":
		return g.convertListSort(recv, d)
	case "reverse":
		if len(args) != 0 {
			return "", true, diag.Arity("list.reverse", "no", len(args))
		}
		return rust.Method(recv, "reverse"), true, nil
	case "clear":
		if len(args) != 0 {
			return "", true, diag.Arity("list.clear", "no", len(args))
		}
		return rust.Method(recv, "clear"), true, nil
	case "copy":
		if g.isDict(d.Object) {
			return rust.Method(recv, "clone"), true, nil
		}
		return rust.Method(recv, "to_vec"), true, nil
	case "index":
		if len(args) != 1 {
			return "", true, diag.Arity("list.index", "exactly 1", len(args))
		}
		return rust.Method(recv, "iter") + ".position(|_dv_x| *_dv_x == " + args[0] +
			").expect(\"ValueError: value not in list\") as i64", true, nil
	case "count":
		if len(args) != 1 {
			return "", true, diag.Arity("list.count", "exactly 1", len(args))
		}
		return rust.Method(recv, "iter") + ".filter(|_dv_x| **_dv_x == " + args[0] + ").count() as i64", true, nil
	}
	return "", false, nil
}

// convertListPop covers both list.pop() forms. Python raises on an
// empty list; the Vec lowering mirrors that with expect.
func (g *Generator) convertListPop(recv string, d hir.MethodCallData, args []string) (string, bool, error) {
	switch len(args) {
	case 0:
		return rust.Method(recv, "pop") + ".expect(\"IndexError: pop from empty list\")", true, nil
	case 1:
		if n, ok := intLiteral(d.Args[0]); ok {
			if n == 0 {
				return rust.Method(recv, "remove", "0"), true, nil
			}
			if n < 0 {
				return "{ let _dv_i = " + rust.Method(recv, "len") + " as i64 + " + rust.IntLit(n) + "; " +
					rust.Method(recv, "remove", "_dv_i as usize") + " }", true, nil
			}
			return rust.Method(recv, "remove", rust.IntLit(n)+" as usize"), true, nil
		}
		return "{ let mut _dv_i = " + rust.Paren(args[0]) + " as i64; if _dv_i < 0 { _dv_i += " +
			rust.Method(recv, "len") + " as i64; } " + rust.Method(recv, "remove", "_dv_i as usize") + " }", true, nil
	}
	return "", true, diag.Arity("list.pop", "0 or 1", len(args))
}

func (g *Generator) convertListSort(recv string, d hir.MethodCallData) (string, bool, error) {
	reverse := false
	for _, kw := range d.Keywords {
		switch kw.Name {
		case "reverse":
			if b, ok := kw.Value.Data.(hir.LiteralData); ok && b.Kind == hir.LiteralBool {
				reverse = b.BoolValue
			}
		case "key":
			return "", true, diag.Unsupported("list.sort(key=...) arrives desugared as a sort-by-key node")
		}
	}
	elem := types.Unknown()
	if t := g.typeOf(d.Object); t.Is(types.KindList) {
		elem = t.Elem
	}
	// Descending order flips the comparator instead of sorting then
	// reversing, which keeps the sort stable for equal keys.
	switch {
	case elem.Is(types.KindFloat) && reverse:
		return rust.Method(recv, "sort_by",
			"|_dv_a, _dv_b| _dv_b.partial_cmp(_dv_a).unwrap_or(std::cmp::Ordering::Equal)"), true, nil
	case elem.Is(types.KindFloat):
		return rust.Method(recv, "sort_by",
			"|_dv_a, _dv_b| _dv_a.partial_cmp(_dv_b).unwrap_or(std::cmp::Ordering::Equal)"), true, nil
	case reverse:
		return rust.Method(recv, "sort_by", "|_dv_a, _dv_b| _dv_b.cmp(_dv_a)"), true, nil
	}
	return rust.Method(recv, "sort"), true, nil
}
