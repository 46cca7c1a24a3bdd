package codegen

import (
	"depyler/internal/hir"
	"depyler/internal/rust"
	"depyler/internal/types"
)

// convertTernary lowers `body if test else orelse`.
func (g *Generator) convertTernary(d hir.IfExprData) (string, error) {
	// `x if x else y` collapses: an if over a non-bool x would not
	// compile, and Python returns x itself anyway when truthy.
	if sameVar(d.Test, d.Body) {
		if g.typeOf(d.Test).Is(types.KindBool) {
			testCode, err := g.ConvertExpression(d.Test)
			if err != nil {
				return "", err
			}
			orelse, err := g.ConvertExpression(d.Orelse)
			if err != nil {
				return "", err
			}
			return "if " + testCode + " { " + testCode + " } else { " + orelse + " }", nil
		}
		return g.convertTruthyFallback(d)
	}

	if code, handled, err := g.convertOptionTernary(d); handled {
		return code, err
	}

	testCode, err := g.ConvertExpression(d.Test)
	if err != nil {
		return "", err
	}
	body, err := g.ConvertExpression(d.Body)
	if err != nil {
		return "", err
	}
	orelse, err := g.ConvertExpression(d.Orelse)
	if err != nil {
		return "", err
	}
	body, orelse = g.unifyBranches(d, body, orelse)
	return "if " + g.truthyCond(d.Test, testCode) + " { " + body + " } else { " + orelse + " }", nil
}

// convertTruthyFallback handles `x if x else y` for non-bool x: keep x
// when truthy, y otherwise, without evaluating x twice for Options.
func (g *Generator) convertTruthyFallback(d hir.IfExprData) (string, error) {
	testCode, err := g.ConvertExpression(d.Test)
	if err != nil {
		return "", err
	}
	orelse, err := g.ConvertExpression(d.Orelse)
	if err != nil {
		return "", err
	}
	t := g.typeOf(d.Test)
	if t.Is(types.KindOptional) {
		return rust.Method(testCode, "clone") + ".unwrap_or_else(|| " + g.asOwnedString(d.Orelse, orelse) + ")", nil
	}
	return "if " + g.truthyCond(d.Test, testCode) + " { " + rust.Method(testCode, "clone") +
		" } else { " + g.asOwnedString(d.Orelse, orelse) + " }", nil
}

// convertOptionTernary recognises `x.method() if x else alt` where x is
// an Option variable: map over the Option instead of unwrap-in-branch.
func (g *Generator) convertOptionTernary(d hir.IfExprData) (string, bool, error) {
	name, ok := varName(d.Test)
	if !ok || !g.typeOf(d.Test).Is(types.KindOptional) {
		return "", false, nil
	}
	if !referencesVar(d.Body, name) {
		return "", false, nil
	}
	sub := name + "_val"
	undo := g.bindOptionUnwrap(name, sub)
	body, err := g.ConvertExpression(d.Body)
	undo()
	if err != nil {
		return "", true, err
	}
	if isNoneLiteral(d.Orelse) {
		return rust.Method(rust.Ident(name), "as_ref") + ".map(|" + sub + "| " + body + ")", true, nil
	}
	orelse, err := g.ConvertExpression(d.Orelse)
	if err != nil {
		return "", true, err
	}
	return "if let Some(ref " + sub + ") = " + rust.Ident(name) + " { " + body +
		" } else { " + g.asOwnedString(d.Orelse, orelse) + " }", true, nil
}

func (g *Generator) bindOptionUnwrap(name, sub string) func() {
	prev, had := g.ctx.OptionUnwrapMap[name]
	g.ctx.OptionUnwrapMap[name] = sub
	return func() {
		if had {
			g.ctx.OptionUnwrapMap[name] = prev
		} else {
			delete(g.ctx.OptionUnwrapMap, name)
		}
	}
}

// unifyBranches nudges the two arms toward one type: write handles box
// to dyn Write, int literals widen next to floats, concrete values lift
// next to runtime values.
func (g *Generator) unifyBranches(d hir.IfExprData, body, orelse string) (string, string) {
	bt, ot := g.typeOf(d.Body), g.typeOf(d.Orelse)

	if g.isWriteHandle(d.Body) != g.isWriteHandle(d.Orelse) && (g.isWriteHandle(d.Body) || g.isWriteHandle(d.Orelse)) {
		g.ctx.Flags.NeedsIoWrite = true
		return "Box::new(" + body + ") as Box<dyn std::io::Write>",
			"Box::new(" + orelse + ") as Box<dyn std::io::Write>"
	}

	if bt.Is(types.KindFloat) && ot.Is(types.KindInt) {
		if n, ok := intLiteral(d.Orelse); ok {
			return body, rust.FloatLit(float64(n))
		}
		return body, rust.Paren(orelse) + " as f64"
	}
	if bt.Is(types.KindInt) && ot.Is(types.KindFloat) {
		if n, ok := intLiteral(d.Body); ok {
			return rust.FloatLit(float64(n)), orelse
		}
		return rust.Paren(body) + " as f64", orelse
	}

	if g.isDepylerValue(d.Body) && !g.isDepylerValue(d.Orelse) && !ot.IsUnknown() {
		return body, g.wrapDepylerValue(d.Orelse, orelse)
	}
	if g.isDepylerValue(d.Orelse) && !g.isDepylerValue(d.Body) && !bt.IsUnknown() {
		return g.wrapDepylerValue(d.Body, body), orelse
	}

	if bt.Is(types.KindStr) && ot.Is(types.KindStr) {
		return g.asOwnedString(d.Body, body), g.asOwnedString(d.Orelse, orelse)
	}
	return body, orelse
}

func (g *Generator) isWriteHandle(e *hir.Expr) bool {
	if c, ok := e.Data.(hir.CallData); ok && c.Func == "open" {
		return true
	}
	if a, ok := e.Data.(hir.AttributeData); ok {
		if v, ok := a.Value.Data.(hir.VarData); ok && v.Name == "sys" {
			return a.Attr == "stdout" || a.Attr == "stderr"
		}
	}
	t := g.typeOf(e)
	return t.Is(types.KindCustom) && isFileType(t.Name)
}

func sameVar(a, b *hir.Expr) bool {
	an, aok := varName(a)
	bn, bok := varName(b)
	return aok && bok && an == bn
}
