package driver

import (
	"strings"

	"depyler/internal/codegen"
	"depyler/internal/hir"
	"depyler/internal/rust"
	"depyler/internal/types"
)

// Options configures one lowering run.
type Options struct {
	Strict    bool // no third-party crates in the generated Rust
	CrateName string
}

// FunctionResult is one lowered function plus the capability flags its
// body raised.
type FunctionResult struct {
	Name  string
	Rust  string
	Flags codegen.Flags
}

// newContext seeds a generation context from module-level tables.
func newContext(mod *hir.Module, opts Options) *codegen.Context {
	ctx := codegen.NewContext()
	ctx.StrictMode = opts.Strict
	for _, name := range mod.ClassNames {
		ctx.ClassNames[name] = true
	}
	for field, t := range mod.ClassFieldTypes {
		ctx.ClassFieldTypes[field] = t
	}
	for fn, t := range mod.FunctionReturnTypes {
		ctx.FunctionReturnTypes[fn] = t
	}
	for _, m := range mod.PropertyMethods {
		ctx.PropertyMethods[m] = true
	}
	for alias, path := range mod.ImportedModules {
		ctx.ImportedModules[alias] = path
	}
	return ctx
}

// LowerFunction generates one Rust fn. The body is a sequence of
// expression statements; with a non-None return type the final
// expression becomes the tail value.
func LowerFunction(mod *hir.Module, fn *hir.Function, opts Options) (*FunctionResult, error) {
	ctx := newContext(mod, opts)
	var undo []func()
	for _, p := range fn.Params {
		undo = append(undo, ctx.BindVar(p.Name, p.Type))
		if p.Type.Is(types.KindStr) {
			ctx.FnStrParams[p.Name] = true
		}
	}
	defer func() {
		for i := len(undo) - 1; i >= 0; i-- {
			undo[i]()
		}
	}()

	g := codegen.New(ctx)
	hasReturn := fn.Ret != nil && !fn.Ret.Is(types.KindNone) && !fn.Ret.IsUnknown()
	ctx.CurrentReturnType = fn.Ret

	var body []string
	for i, e := range fn.Body {
		last := i == len(fn.Body)-1
		stmt, err := lowerStatement(g, e, last && hasReturn)
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}

	var sb strings.Builder
	sb.WriteString("pub fn ")
	sb.WriteString(rust.Ident(fn.Name))
	sb.WriteString("(")
	for i, p := range fn.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(rust.Ident(p.Name))
		sb.WriteString(": ")
		sb.WriteString(paramType(g, p.Type))
	}
	sb.WriteString(")")
	if hasReturn {
		sb.WriteString(" -> ")
		sb.WriteString(g.RustType(fn.Ret))
	}
	sb.WriteString(" {\n")
	for _, stmt := range body {
		sb.WriteString("    ")
		sb.WriteString(stmt)
		sb.WriteString("\n")
	}
	sb.WriteString("}\n")

	return &FunctionResult{Name: fn.Name, Rust: sb.String(), Flags: ctx.Flags}, nil
}

// lowerStatement renders one body expression. Walrus nodes become let
// bindings; the tail expression stays bare so it is the return value.
func lowerStatement(g *codegen.Generator, e *hir.Expr, tail bool) (string, error) {
	if named, ok := e.Data.(hir.NamedData); ok && !tail {
		value, err := g.ConvertExpression(named.Value)
		if err != nil {
			return "", err
		}
		return "let mut " + rust.Ident(named.Target) + " = " + value + ";", nil
	}
	code, err := g.ConvertExpression(e)
	if err != nil {
		return "", err
	}
	if tail {
		return code, nil
	}
	if strings.HasSuffix(code, "}") || strings.HasSuffix(code, ";") {
		return code, nil
	}
	return code + ";", nil
}

// paramType renders a parameter type; strings pass as &str so call
// sites avoid needless clones.
func paramType(g *codegen.Generator, t *types.Type) string {
	if t.Is(types.KindStr) {
		return "&str"
	}
	return g.RustType(t)
}

// LowerModule lowers every function of a module sequentially, merging
// flags as it goes.
func LowerModule(mod *hir.Module, opts Options) ([]*FunctionResult, codegen.Flags, error) {
	var merged codegen.Flags
	results := make([]*FunctionResult, 0, len(mod.Functions))
	for _, fn := range mod.Functions {
		res, err := LowerFunction(mod, fn, opts)
		if err != nil {
			return nil, merged, err
		}
		merged.Merge(res.Flags)
		results = append(results, res)
	}
	return results, merged, nil
}
