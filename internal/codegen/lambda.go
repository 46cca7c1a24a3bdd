package codegen

import (
	"depyler/internal/hir"
	"depyler/internal/rust"
	"depyler/internal/types"
)

// convertLambda lowers lambdas to move closures. Parameter types are
// annotated so the closure typechecks even without surrounding type
// context; move is unconditional because lowered closures routinely
// outlive their scope.
func (g *Generator) convertLambda(d hir.LambdaData) (string, error) {
	params := make([]string, len(d.Params))
	var undo []func()
	for i, p := range d.Params {
		t := inferLambdaParamType(p, d.Body)
		undo = append(undo, g.ctx.bindVar(p, t))
		params[i] = rust.Ident(p) + ": " + g.rustType(t)
	}
	body, err := g.ConvertExpression(d.Body)
	for i := len(undo) - 1; i >= 0; i-- {
		undo[i]()
	}
	if err != nil {
		return "", err
	}
	return rust.Closure(true, params, body), nil
}

// inferLambdaParamType applies the lambda parameter rules in order:
// iterated parameters are Vec<i64>, ternary tests are bool, arithmetic
// operands and everything else default to i64.
func inferLambdaParamType(name string, body *hir.Expr) *types.Type {
	iterated := false
	isTest := false
	walkExpr(body, func(e *hir.Expr) bool {
		switch d := e.Data.(type) {
		case hir.CompData:
			for _, gen := range d.Generators {
				if n, ok := varName(gen.Iter); ok && n == name {
					iterated = true
				}
			}
		case hir.DictCompData:
			for _, gen := range d.Generators {
				if n, ok := varName(gen.Iter); ok && n == name {
					iterated = true
				}
			}
		case hir.MethodCallData:
			if d.Method == "iter" || d.Method == "into_iter" {
				if n, ok := varName(d.Object); ok && n == name {
					iterated = true
				}
			}
		case hir.IfExprData:
			if n, ok := varName(d.Test); ok && n == name {
				isTest = true
			}
		}
		return true
	})
	if iterated {
		return types.ListOf(types.Int())
	}
	if isTest {
		return types.Bool()
	}
	return types.Int()
}
