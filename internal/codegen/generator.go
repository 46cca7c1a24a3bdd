package codegen

import (
	"depyler/internal/diag"
	"depyler/internal/hir"
	"depyler/internal/rust"
)

// Generator lowers HIR expressions to Rust expression text. It is a
// pure tree walker; all state lives in the shared Context.
type Generator struct {
	ctx *Context
}

// New returns a generator over ctx. The context is borrowed, not
// copied: capability flags accumulate across calls.
func New(ctx *Context) *Generator {
	return &Generator{ctx: ctx}
}

// Context exposes the generation context for the statement generator.
func (g *Generator) Context() *Context {
	return g.ctx
}

// ConvertExpression lowers one expression tree. It returns either a
// syntactically valid Rust expression or an error, never both.
func (g *Generator) ConvertExpression(e *hir.Expr) (string, error) {
	if e == nil {
		return "", diag.Internal("nil expression")
	}
	switch d := e.Data.(type) {
	case hir.LiteralData:
		return g.convertLiteral(d), nil
	case hir.VarData:
		return g.convertVar(d.Name)
	case hir.BinaryData:
		return g.convertBinary(d)
	case hir.UnaryData:
		return g.convertUnary(d)
	case hir.CallData:
		return g.convertCall(d)
	case hir.MethodCallData:
		return g.convertMethodCall(d)
	case hir.AttributeData:
		return g.convertAttribute(d)
	case hir.IndexData:
		return g.convertIndex(d)
	case hir.SliceData:
		return g.convertSlice(d)
	case hir.ListData:
		switch e.Kind {
		case hir.ExprSet:
			return g.convertSetLiteral(d.Elems, false)
		case hir.ExprFrozenSet:
			return g.convertSetLiteral(d.Elems, true)
		case hir.ExprTuple:
			return g.convertTupleLiteral(d.Elems)
		default:
			return g.convertListLiteral(d.Elems)
		}
	case hir.DictData:
		return g.convertDictLiteral(d.Items)
	case hir.CompData:
		switch e.Kind {
		case hir.ExprSetComp:
			return g.convertComprehension(d, collectSet)
		case hir.ExprGeneratorExp:
			return g.convertComprehension(d, collectNone)
		default:
			return g.convertComprehension(d, collectVec)
		}
	case hir.DictCompData:
		return g.convertDictComp(d)
	case hir.FStringData:
		return g.convertFString(d)
	case hir.LambdaData:
		return g.convertLambda(d)
	case hir.IfExprData:
		return g.convertTernary(d)
	case hir.AwaitData:
		return g.convertAwait(d)
	case hir.YieldData:
		return g.convertYield(d)
	case hir.NamedData:
		return g.convertWalrus(d)
	case hir.BorrowData:
		return g.convertBorrow(d)
	case hir.SortByKeyData:
		return g.convertSortByKey(d)
	default:
		return "", diag.Internal("unhandled expression kind %s", e.Kind)
	}
}

func (g *Generator) convertLiteral(d hir.LiteralData) string {
	switch d.Kind {
	case hir.LiteralInt:
		return rust.IntLit(d.IntValue)
	case hir.LiteralFloat:
		return rust.FloatLit(d.FloatValue)
	case hir.LiteralString:
		return rust.StrLit(d.StringValue)
	case hir.LiteralBool:
		if d.BoolValue {
			return "true"
		}
		return "false"
	default:
		return "None"
	}
}

func (g *Generator) convertVar(name string) (string, error) {
	if rust.IsNonRawKeyword(name) {
		return "", diag.New(diag.GenBadIdentifier,
			"Python variable %q conflicts with a special Rust keyword that cannot be escaped; rename it (e.g. %q)",
			name, name+"_var")
	}
	// Variables already unwrapped inside an `if let Some` body refer to
	// the unwrapped binding.
	if sub, ok := g.ctx.OptionUnwrapMap[name]; ok {
		return rust.Ident(sub), nil
	}
	return rust.Ident(name), nil
}

// convertAll lowers a slice of expressions in order.
func (g *Generator) convertAll(exprs []*hir.Expr) ([]string, error) {
	out := make([]string, len(exprs))
	for i, e := range exprs {
		code, err := g.ConvertExpression(e)
		if err != nil {
			return nil, err
		}
		out[i] = code
	}
	return out, nil
}
