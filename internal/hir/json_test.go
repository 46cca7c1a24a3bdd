package hir

import (
	"testing"

	"depyler/internal/types"
)

func TestDecodeModule(t *testing.T) {
	data := []byte(`{
		"name": "calc",
		"class_names": ["Point"],
		"class_field_types": {"Point.x": "int"},
		"function_return_types": {"double": "int"},
		"imported_modules": {"np": "numpy"},
		"functions": [
			{
				"name": "double",
				"params": [{"name": "n", "type": "int"}],
				"ret": "int",
				"body": [
					{"kind": "binary", "op": "*", "left": {"kind": "var", "name": "n", "type": "int"}, "right": {"kind": "int", "value": 2}}
				]
			}
		]
	}`)
	mod, err := DecodeModule(data)
	if err != nil {
		t.Fatalf("DecodeModule: %v", err)
	}
	if mod.Name != "calc" {
		t.Fatalf("Name = %q", mod.Name)
	}
	if len(mod.ClassNames) != 1 || mod.ClassNames[0] != "Point" {
		t.Fatalf("ClassNames = %v", mod.ClassNames)
	}
	if !types.Equal(mod.ClassFieldTypes["Point.x"], types.Int()) {
		t.Fatalf("ClassFieldTypes[Point.x] = %s", mod.ClassFieldTypes["Point.x"])
	}
	if mod.ImportedModules["np"] != "numpy" {
		t.Fatalf("ImportedModules = %v", mod.ImportedModules)
	}
	if len(mod.Functions) != 1 {
		t.Fatalf("Functions = %d", len(mod.Functions))
	}
	fn := mod.Functions[0]
	if fn.Name != "double" || len(fn.Params) != 1 || fn.Params[0].Name != "n" {
		t.Fatalf("function header decoded wrong: %+v", fn)
	}
	if !types.Equal(fn.Ret, types.Int()) {
		t.Fatalf("Ret = %s", fn.Ret)
	}
	if len(fn.Body) != 1 {
		t.Fatalf("Body = %d exprs", len(fn.Body))
	}
	expr := fn.Body[0]
	if expr.Kind != ExprBinary {
		t.Fatalf("body kind = %v", expr.Kind)
	}
	bin := expr.Data.(BinaryData)
	if bin.Op != OpMul {
		t.Fatalf("op = %v", bin.Op)
	}
	if bin.Left.Kind != ExprVar || !types.Equal(bin.Left.Type, types.Int()) {
		t.Fatalf("left operand decoded wrong: %+v", bin.Left)
	}
	if bin.Right.Data.(LiteralData).IntValue != 2 {
		t.Fatalf("right operand decoded wrong: %+v", bin.Right)
	}
}

func TestDecodeExprKinds(t *testing.T) {
	cases := []struct {
		json string
		kind ExprKind
	}{
		{`{"kind": "str", "value": "hi"}`, ExprLiteral},
		{`{"kind": "none"}`, ExprLiteral},
		{`{"kind": "list", "elems": [{"kind": "int", "value": 1}]}`, ExprList},
		{`{"kind": "dict", "items": [{"key": {"kind": "str", "value": "k"}, "value": {"kind": "int", "value": 1}}]}`, ExprDict},
		{`{"kind": "ifexpr", "test": {"kind": "var", "name": "x"}, "body": {"kind": "int", "value": 1}, "orelse": {"kind": "int", "value": 2}}`, ExprIfExpr},
		{`{"kind": "lambda", "params": ["x"], "body": {"kind": "var", "name": "x"}}`, ExprLambda},
		{`{"kind": "fstring", "parts": [{"literal": "n="}, {"expr": {"kind": "var", "name": "n"}}]}`, ExprFString},
		{`{"kind": "named", "target": "y", "body": {"kind": "int", "value": 3}}`, ExprNamed},
		{`{"kind": "listcomp", "elt": {"kind": "var", "name": "x"}, "generators": [{"target": ["x"], "iter": {"kind": "var", "name": "xs"}}]}`, ExprListComp},
	}
	for _, tc := range cases {
		var e Expr
		if err := e.UnmarshalJSON([]byte(tc.json)); err != nil {
			t.Fatalf("decode %s: %v", tc.json, err)
		}
		if e.Kind != tc.kind {
			t.Fatalf("decoded kind %v, want %v for %s", e.Kind, tc.kind, tc.json)
		}
	}
}

func TestDecodeUnknownKind(t *testing.T) {
	var e Expr
	if err := e.UnmarshalJSON([]byte(`{"kind": "walrus"}`)); err == nil {
		t.Fatalf("unknown kind should fail to decode")
	}
}
