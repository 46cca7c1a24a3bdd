package codegen

import (
	"depyler/internal/hir"
)

// walkExpr visits e and every subexpression until visit returns false.
func walkExpr(e *hir.Expr, visit func(*hir.Expr) bool) {
	if e == nil || !visit(e) {
		return
	}
	rec := func(child *hir.Expr) { walkExpr(child, visit) }
	switch d := e.Data.(type) {
	case hir.BinaryData:
		rec(d.Left)
		rec(d.Right)
	case hir.UnaryData:
		rec(d.Operand)
	case hir.CallData:
		for _, a := range d.Args {
			rec(a)
		}
		for _, kw := range d.Keywords {
			rec(kw.Value)
		}
	case hir.MethodCallData:
		rec(d.Object)
		for _, a := range d.Args {
			rec(a)
		}
		for _, kw := range d.Keywords {
			rec(kw.Value)
		}
	case hir.AttributeData:
		rec(d.Value)
	case hir.IndexData:
		rec(d.Base)
		rec(d.Index)
	case hir.SliceData:
		rec(d.Base)
		rec(d.Start)
		rec(d.Stop)
		rec(d.Step)
	case hir.ListData:
		for _, el := range d.Elems {
			rec(el)
		}
	case hir.DictData:
		for _, it := range d.Items {
			rec(it.Key)
			rec(it.Value)
		}
	case hir.CompData:
		rec(d.Element)
		for _, gen := range d.Generators {
			rec(gen.Iter)
			for _, c := range gen.Conditions {
				rec(c)
			}
		}
	case hir.DictCompData:
		rec(d.Key)
		rec(d.Value)
		for _, gen := range d.Generators {
			rec(gen.Iter)
			for _, c := range gen.Conditions {
				rec(c)
			}
		}
	case hir.FStringData:
		for _, p := range d.Parts {
			rec(p.Expr)
		}
	case hir.LambdaData:
		rec(d.Body)
	case hir.IfExprData:
		rec(d.Test)
		rec(d.Body)
		rec(d.Orelse)
	case hir.AwaitData:
		rec(d.Value)
	case hir.YieldData:
		rec(d.Value)
	case hir.NamedData:
		rec(d.Value)
	case hir.BorrowData:
		rec(d.Expr)
	case hir.SortByKeyData:
		rec(d.Iterable)
		rec(d.Body)
	}
}

// referencesVar reports whether name occurs as a free variable in e.
func referencesVar(e *hir.Expr, name string) bool {
	found := false
	walkExpr(e, func(x *hir.Expr) bool {
		if v, ok := x.Data.(hir.VarData); ok && v.Name == name {
			found = true
		}
		return !found
	})
	return found
}

// findWalrus returns the first walrus binding inside e, if any.
func findWalrus(e *hir.Expr) (string, *hir.Expr, bool) {
	var target string
	var value *hir.Expr
	walkExpr(e, func(x *hir.Expr) bool {
		if n, ok := x.Data.(hir.NamedData); ok && value == nil {
			target, value = n.Target, n.Value
		}
		return value == nil
	})
	return target, value, value != nil
}
