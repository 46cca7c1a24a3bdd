package driver

import (
	"strings"
	"testing"

	"depyler/internal/hir"
	"depyler/internal/types"
)

func addFunction() *hir.Function {
	return &hir.Function{
		Name: "add",
		Params: []hir.Param{
			{Name: "a", Type: types.Int()},
			{Name: "b", Type: types.Int()},
		},
		Ret:  types.Int(),
		Body: []*hir.Expr{hir.Binary(hir.OpAdd, hir.TypedVar("a", types.Int()), hir.TypedVar("b", types.Int()))},
	}
}

func TestLowerFunctionSignature(t *testing.T) {
	res, err := LowerFunction(&hir.Module{Name: "m"}, addFunction(), Options{})
	if err != nil {
		t.Fatalf("LowerFunction: %v", err)
	}
	if res.Name != "add" {
		t.Fatalf("Name = %q", res.Name)
	}
	if !strings.Contains(res.Rust, "pub fn add(a: i64, b: i64) -> i64 {") {
		t.Fatalf("signature missing:\n%s", res.Rust)
	}
	if !strings.Contains(res.Rust, "\n    a + b\n") {
		t.Fatalf("tail expression missing:\n%s", res.Rust)
	}
}

func TestLowerFunctionStrParam(t *testing.T) {
	fn := &hir.Function{
		Name:   "shout",
		Params: []hir.Param{{Name: "s", Type: types.Str()}},
		Ret:    types.Str(),
		Body:   []*hir.Expr{hir.MethodCall(hir.TypedVar("s", types.Str()), "upper")},
	}
	res, err := LowerFunction(&hir.Module{Name: "m"}, fn, Options{})
	if err != nil {
		t.Fatalf("LowerFunction: %v", err)
	}
	if !strings.Contains(res.Rust, "pub fn shout(s: &str) -> String {") {
		t.Fatalf("str param should pass as &str:\n%s", res.Rust)
	}
	if !strings.Contains(res.Rust, "s.to_uppercase()") {
		t.Fatalf("body missing:\n%s", res.Rust)
	}
}

func TestLowerStatementWalrus(t *testing.T) {
	fn := &hir.Function{
		Name: "setup",
		Body: []*hir.Expr{hir.Named("y", hir.IntLit(3))},
	}
	res, err := LowerFunction(&hir.Module{Name: "m"}, fn, Options{})
	if err != nil {
		t.Fatalf("LowerFunction: %v", err)
	}
	if !strings.Contains(res.Rust, "let mut y = 3;") {
		t.Fatalf("walrus statement should become a let binding:\n%s", res.Rust)
	}
	if strings.Contains(res.Rust, "->") {
		t.Fatalf("void function should have no return type:\n%s", res.Rust)
	}
}

func TestLowerModuleMergesFlags(t *testing.T) {
	mod := &hir.Module{
		Name: "m",
		Functions: []*hir.Function{
			{
				Name: "make_map",
				Ret:  types.DictOf(types.Str(), types.Int()),
				Body: []*hir.Expr{hir.Dict(hir.Item(hir.StrLit("k"), hir.IntLit(1)))},
			},
			{
				Name: "make_set",
				Ret:  types.SetOf(types.Int()),
				Body: []*hir.Expr{hir.Set(hir.IntLit(1))},
			},
		},
	}
	results, flags, err := LowerModule(mod, Options{})
	if err != nil {
		t.Fatalf("LowerModule: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d", len(results))
	}
	if !flags.NeedsHashMap || !flags.NeedsHashSet {
		t.Fatalf("merged flags = %+v", flags)
	}
}

func TestLowerFunctionClassContext(t *testing.T) {
	mod := &hir.Module{
		Name:       "m",
		ClassNames: []string{"Point"},
	}
	fn := &hir.Function{
		Name:   "norm",
		Params: []hir.Param{{Name: "p", Type: types.Custom("Point")}},
		Ret:    types.Float(),
		Body:   []*hir.Expr{hir.MethodCall(hir.TypedVar("p", types.Custom("Point")), "norm")},
	}
	res, err := LowerFunction(mod, fn, Options{})
	if err != nil {
		t.Fatalf("LowerFunction: %v", err)
	}
	if !strings.Contains(res.Rust, "p.norm()") {
		t.Fatalf("class method call missing:\n%s", res.Rust)
	}
}

func TestLowerFunctionImportAliases(t *testing.T) {
	mod := &hir.Module{Name: "m", ImportedModules: map[string]string{"m": "math"}}
	fn := &hir.Function{
		Name:   "root",
		Params: []hir.Param{{Name: "x", Type: types.Float()}},
		Ret:    types.Float(),
		Body:   []*hir.Expr{hir.Call("m.sqrt", hir.TypedVar("x", types.Float()))},
	}
	res, err := LowerFunction(mod, fn, Options{})
	if err != nil {
		t.Fatalf("LowerFunction: %v", err)
	}
	if !strings.Contains(res.Rust, "x.sqrt()") {
		t.Fatalf("aliased math call missing:\n%s", res.Rust)
	}
}
