package codegen

import (
	"strings"
	"testing"

	"depyler/internal/hir"
	"depyler/internal/types"
)

func testGen() *Generator {
	return New(NewContext())
}

func mustConvert(t *testing.T, g *Generator, e *hir.Expr) string {
	t.Helper()
	code, err := g.ConvertExpression(e)
	if err != nil {
		t.Fatalf("ConvertExpression: %v", err)
	}
	return code
}

func intVar(name string) *hir.Expr   { return hir.TypedVar(name, types.Int()) }
func floatVar(name string) *hir.Expr { return hir.TypedVar(name, types.Float()) }
func strVar(name string) *hir.Expr   { return hir.TypedVar(name, types.Str()) }

func intListVar(name string) *hir.Expr {
	return hir.TypedVar(name, types.ListOf(types.Int()))
}

func TestConvertLiterals(t *testing.T) {
	g := testGen()
	cases := []struct {
		expr *hir.Expr
		want string
	}{
		{hir.IntLit(7), "7"},
		{hir.IntLit(-3), "(-3)"},
		{hir.FloatLit(1), "1.0"},
		{hir.StrLit("hi"), `"hi"`},
		{hir.BoolLit(true), "true"},
		{hir.NoneLit(), "None"},
	}
	for _, tc := range cases {
		if got := mustConvert(t, g, tc.expr); got != tc.want {
			t.Fatalf("literal lowered to %q, want %q", got, tc.want)
		}
	}
}

func TestNumericArithmetic(t *testing.T) {
	g := testGen()
	if got := mustConvert(t, g, hir.Binary(hir.OpAdd, intVar("a"), intVar("b"))); got != "a + b" {
		t.Fatalf("a + b = %q", got)
	}
	if got := mustConvert(t, g, hir.Binary(hir.OpMul, intVar("a"), floatVar("x"))); got != "(a as f64) * x" {
		t.Fatalf("a * x = %q", got)
	}
	if got := mustConvert(t, g, hir.Binary(hir.OpDiv, intVar("a"), intVar("b"))); got != "(a as f64) / (b as f64)" {
		t.Fatalf("a / b = %q", got)
	}
}

func TestFloorDivBlock(t *testing.T) {
	g := testGen()
	got := mustConvert(t, g, hir.Binary(hir.OpFloorDiv, intVar("a"), intVar("b")))
	for _, frag := range []string{"if _dv_b == 0 { 0 }", "let q = _dv_a / _dv_b", "q - 1"} {
		if !strings.Contains(got, frag) {
			t.Fatalf("floor division %q missing %q", got, frag)
		}
	}
}

func TestModuloBlock(t *testing.T) {
	g := testGen()
	got := mustConvert(t, g, hir.Binary(hir.OpMod, intVar("a"), intVar("b")))
	for _, frag := range []string{"if _dv_b == 0 { 0 }", "m + _dv_b"} {
		if !strings.Contains(got, frag) {
			t.Fatalf("modulo %q missing %q", got, frag)
		}
	}
	got = mustConvert(t, g, hir.Binary(hir.OpMod, floatVar("a"), floatVar("b")))
	if !strings.Contains(got, "f64::NAN") {
		t.Fatalf("float modulo %q missing NaN guard", got)
	}
}

func TestConstantFolding(t *testing.T) {
	g := testGen()
	cases := []struct {
		expr *hir.Expr
		want string
	}{
		{hir.Binary(hir.OpAdd, hir.IntLit(1), hir.IntLit(2)), "3"},
		{hir.Binary(hir.OpFloorDiv, hir.IntLit(-7), hir.IntLit(2)), "(-4)"},
		{hir.Binary(hir.OpMod, hir.IntLit(7), hir.IntLit(-3)), "(-2)"},
		{hir.Binary(hir.OpMul, hir.StrLit("ab"), hir.IntLit(3)), `"ababab"`},
	}
	for _, tc := range cases {
		if got := mustConvert(t, g, tc.expr); got != tc.want {
			t.Fatalf("folded to %q, want %q", got, tc.want)
		}
	}
}

func TestStringConcatAndRepeat(t *testing.T) {
	g := testGen()
	got := mustConvert(t, g, hir.Binary(hir.OpAdd, hir.StrLit("a"), strVar("s")))
	if got != `format!("{}{}", "a", s)` {
		t.Fatalf("concat = %q", got)
	}
	got = mustConvert(t, g, hir.Binary(hir.OpMul, strVar("s"), intVar("n")))
	if got != "s.repeat(n.max(0) as usize)" {
		t.Fatalf("repeat = %q", got)
	}
}

func TestListConcat(t *testing.T) {
	g := testGen()
	got := mustConvert(t, g, hir.Binary(hir.OpAdd, intListVar("a"), intListVar("b")))
	if !strings.Contains(got, "_dv_cat.extend(b.iter().cloned())") {
		t.Fatalf("list concat = %q", got)
	}
}

func TestComparisons(t *testing.T) {
	g := testGen()
	if got := mustConvert(t, g, hir.Binary(hir.OpLt, intVar("i"), floatVar("f"))); got != "(i as f64) < f" {
		t.Fatalf("mixed comparison = %q", got)
	}
	if got := mustConvert(t, g, hir.Binary(hir.OpEq, strVar("s"), hir.StrLit("x"))); got != `s.as_str() == "x"` {
		t.Fatalf("string comparison = %q", got)
	}
}

func TestMembership(t *testing.T) {
	g := testGen()
	d := hir.TypedVar("d", types.DictOf(types.Str(), types.Int()))
	if got := mustConvert(t, g, hir.Binary(hir.OpIn, hir.StrLit("k"), d)); got != `d.contains_key("k")` {
		t.Fatalf("dict membership = %q", got)
	}
	if got := mustConvert(t, g, hir.Binary(hir.OpNotIn, intVar("x"), intListVar("xs"))); got != "!xs.contains(&x)" {
		t.Fatalf("list membership = %q", got)
	}
	if got := mustConvert(t, g, hir.Binary(hir.OpIn, hir.StrLit("ell"), strVar("s"))); got != `s.contains("ell")` {
		t.Fatalf("substring membership = %q", got)
	}
}

func TestIdentityNone(t *testing.T) {
	g := testGen()
	x := hir.TypedVar("x", types.OptionalOf(types.Int()))
	if got := mustConvert(t, g, hir.Binary(hir.OpIs, x, hir.NoneLit())); got != "x.is_none()" {
		t.Fatalf("is None = %q", got)
	}
	if got := mustConvert(t, g, hir.Binary(hir.OpIsNot, x, hir.NoneLit())); got != "x.is_some()" {
		t.Fatalf("is not None = %q", got)
	}
}

func TestBoolOpTruthiness(t *testing.T) {
	g := testGen()
	got := mustConvert(t, g, hir.Binary(hir.OpAnd, intListVar("xs"), hir.TypedVar("b", types.Bool())))
	if got != "!xs.is_empty() && b" {
		t.Fatalf("and = %q", got)
	}
}

func TestSetOperators(t *testing.T) {
	g := testGen()
	a := hir.TypedVar("a", types.SetOf(types.Int()))
	b := hir.TypedVar("b", types.SetOf(types.Int()))
	got := mustConvert(t, g, hir.Binary(hir.OpBitAnd, a, b))
	if got != "a.intersection(&b).cloned().collect::<HashSet<_>>()" {
		t.Fatalf("set intersection = %q", got)
	}
	if !g.Context().Flags.NeedsHashSet {
		t.Fatalf("set operator should flag HashSet")
	}
}

func TestDictMerge(t *testing.T) {
	g := testGen()
	a := hir.TypedVar("a", types.DictOf(types.Str(), types.Int()))
	b := hir.TypedVar("b", types.DictOf(types.Str(), types.Int()))
	got := mustConvert(t, g, hir.Binary(hir.OpBitOr, a, b))
	if !strings.Contains(got, "_dv_merged.extend(") {
		t.Fatalf("dict merge = %q", got)
	}
}

func TestListLiteralHomogeneous(t *testing.T) {
	g := testGen()
	if got := mustConvert(t, g, hir.List(hir.IntLit(1), hir.IntLit(2))); got != "vec![1, 2]" {
		t.Fatalf("list literal = %q", got)
	}
}

func TestListLiteralHeterogeneous(t *testing.T) {
	g := testGen()
	got := mustConvert(t, g, hir.List(hir.IntLit(1), hir.StrLit("a")))
	if got != `vec![json!(1), json!("a")]` {
		t.Fatalf("heterogeneous list = %q", got)
	}
	if !g.Context().Flags.NeedsSerdeJson {
		t.Fatalf("heterogeneous list should flag serde_json")
	}
}

func TestListLiteralHeterogeneousStrict(t *testing.T) {
	g := testGen()
	g.Context().StrictMode = true
	got := mustConvert(t, g, hir.List(hir.IntLit(1), hir.StrLit("a")))
	if !strings.Contains(got, `format!("{:?}", 1)`) {
		t.Fatalf("strict heterogeneous list = %q", got)
	}
	if g.Context().Flags.NeedsSerdeJson {
		t.Fatalf("strict mode must not flag serde_json")
	}
}

func TestListLiteralWithNone(t *testing.T) {
	g := testGen()
	got := mustConvert(t, g, hir.List(hir.IntLit(1), hir.NoneLit()))
	if got != "vec![Some(1), None]" {
		t.Fatalf("optional list = %q", got)
	}
}

func TestDictLiteralHomogeneous(t *testing.T) {
	g := testGen()
	got := mustConvert(t, g, hir.Dict(hir.Item(hir.StrLit("a"), hir.IntLit(1))))
	if !strings.Contains(got, `map.insert("a".to_string(), 1)`) {
		t.Fatalf("dict literal = %q", got)
	}
	if !g.Context().Flags.NeedsHashMap {
		t.Fatalf("dict literal should flag HashMap")
	}
}

func TestDictLiteralHeterogeneousValues(t *testing.T) {
	g := testGen()
	got := mustConvert(t, g, hir.Dict(
		hir.Item(hir.StrLit("n"), hir.IntLit(1)),
		hir.Item(hir.StrLit("s"), hir.StrLit("x")),
	))
	for _, frag := range []string{`map.insert("n".to_string(), json!(1))`, `map.insert("s".to_string(), json!("x"))`} {
		if !strings.Contains(got, frag) {
			t.Fatalf("heterogeneous dict %q missing %q", got, frag)
		}
	}
	if !g.Context().Flags.NeedsSerdeJson {
		t.Fatalf("heterogeneous dict should flag serde_json")
	}
}

func TestSetLiteral(t *testing.T) {
	g := testGen()
	if got := mustConvert(t, g, hir.Set(hir.IntLit(1), hir.IntLit(2))); got != "HashSet::from([1, 2])" {
		t.Fatalf("set literal = %q", got)
	}
}

func TestTupleLiteral(t *testing.T) {
	g := testGen()
	if got := mustConvert(t, g, hir.Tuple(hir.IntLit(1), hir.StrLit("a"))); got != `(1, "a".to_string())` {
		t.Fatalf("tuple = %q", got)
	}
	if got := mustConvert(t, g, hir.Tuple(hir.IntLit(1))); got != "(1,)" {
		t.Fatalf("single tuple = %q", got)
	}
}

func TestIndexing(t *testing.T) {
	g := testGen()
	d := hir.TypedVar("d", types.DictOf(types.Str(), types.Int()))
	if got := mustConvert(t, g, hir.Index(d, hir.StrLit("k"))); got != `d.get("k").cloned().unwrap_or_default()` {
		t.Fatalf("dict index = %q", got)
	}
	if got := mustConvert(t, g, hir.Index(strVar("s"), hir.IntLit(1))); !strings.HasPrefix(got, "s.chars().nth(1)") {
		t.Fatalf("string index = %q", got)
	}
	if got := mustConvert(t, g, hir.Index(strVar("s"), hir.IntLit(-1))); !strings.HasPrefix(got, "s.chars().rev().nth(0)") {
		t.Fatalf("negative string index = %q", got)
	}
	tup := hir.TypedVar("t", types.TupleOf(types.Int(), types.Str()))
	if got := mustConvert(t, g, hir.Index(tup, hir.IntLit(1))); got != "t.1" {
		t.Fatalf("tuple index = %q", got)
	}
	neg := mustConvert(t, g, hir.Index(intListVar("xs"), hir.IntLit(-1)))
	if !strings.Contains(neg, "_dv_list.len() as i64 + _dv_i") {
		t.Fatalf("negative list index %q lacks normalisation", neg)
	}
}

func TestEnvironIndex(t *testing.T) {
	g := testGen()
	got := mustConvert(t, g, hir.Index(hir.Attribute(hir.Var("os"), "environ"), hir.StrLit("HOME")))
	if got != `std::env::var("HOME").unwrap_or_default()` {
		t.Fatalf("os.environ index = %q", got)
	}
}

func TestSliceForms(t *testing.T) {
	g := testGen()
	if got := mustConvert(t, g, hir.Slice(strVar("s"), nil, nil, nil)); got != "s.to_string()" {
		t.Fatalf("full string slice = %q", got)
	}
	rev := mustConvert(t, g, hir.Slice(intListVar("xs"), nil, nil, hir.IntLit(-1)))
	if rev != "xs.iter().rev().cloned().collect::<Vec<_>>()" {
		t.Fatalf("reversal slice = %q", rev)
	}
	neg := mustConvert(t, g, hir.Slice(strVar("s"), hir.IntLit(-3), nil, nil))
	for _, frag := range []string{"chars().count() as i64", "chars().skip(_dv_start as usize)", "collect::<String>()"} {
		if !strings.Contains(neg, frag) {
			t.Fatalf("negative string slice %q missing %q", neg, frag)
		}
	}
}

func TestListCompFilter(t *testing.T) {
	g := testGen()
	comp := hir.ListComp(hir.Var("x"),
		hir.Gen("x", intListVar("xs"), hir.Binary(hir.OpGt, hir.Var("x"), hir.IntLit(0))))
	got := mustConvert(t, g, comp)
	want := "xs.iter().cloned().filter(|&x| { let x = x; x > 0 }).collect::<Vec<_>>()"
	if got != want {
		t.Fatalf("comprehension = %q, want %q", got, want)
	}
}

func TestListCompFilterMap(t *testing.T) {
	g := testGen()
	comp := hir.ListComp(hir.Binary(hir.OpMul, hir.Var("x"), hir.Var("x")),
		hir.Gen("x", intListVar("xs"), hir.Binary(hir.OpGt, hir.Var("x"), hir.IntLit(0))))
	got := mustConvert(t, g, comp)
	want := "xs.iter().cloned().filter(|&x| { let x = x; x > 0 }).map(|x| x * x).collect::<Vec<_>>()"
	if got != want {
		t.Fatalf("comprehension = %q, want %q", got, want)
	}
}

func TestEmptyLiterals(t *testing.T) {
	g := testGen()
	cases := []struct {
		expr *hir.Expr
		want string
	}{
		{hir.List(), "vec![]"},
		{hir.Dict(), "HashMap::new()"},
		{hir.Set(), "HashSet::new()"},
		{hir.Tuple(), "()"},
	}
	for _, tc := range cases {
		if got := mustConvert(t, g, tc.expr); got != tc.want {
			t.Fatalf("empty literal lowered to %q, want %q", got, tc.want)
		}
	}
}

func TestDictComp(t *testing.T) {
	g := testGen()
	comp := hir.DictComp(hir.Var("x"), hir.Binary(hir.OpMul, hir.Var("x"), hir.IntLit(2)),
		hir.Gen("x", intListVar("xs")))
	got := mustConvert(t, g, comp)
	for _, frag := range []string{"(_dv_key, _dv_value)", "collect::<HashMap<_, _>>()"} {
		if !strings.Contains(got, frag) {
			t.Fatalf("dict comprehension %q missing %q", got, frag)
		}
	}
}

func TestFStringFormatSpecs(t *testing.T) {
	g := testGen()
	fs := hir.FString(
		hir.FLit("n="), hir.FExpr(intVar("n")),
		hir.FLit(", xs="), hir.FExpr(intListVar("xs")),
	)
	got := mustConvert(t, g, fs)
	if got != `format!("n={}, xs={:?}", n, xs)` {
		t.Fatalf("fstring = %q", got)
	}
}

func TestFStringAllLiteral(t *testing.T) {
	g := testGen()
	got := mustConvert(t, g, hir.FString(hir.FLit("plain {text}")))
	if got != `"plain {text}".to_string()` {
		t.Fatalf("literal fstring = %q", got)
	}
}

func TestTernaryTruthiness(t *testing.T) {
	g := testGen()
	got := mustConvert(t, g, hir.IfExpr(intListVar("xs"), hir.IntLit(1), hir.IntLit(2)))
	if got != "if !xs.is_empty() { 1 } else { 2 }" {
		t.Fatalf("ternary = %q", got)
	}
}

func TestTernarySelfFallback(t *testing.T) {
	g := testGen()
	x := hir.TypedVar("x", types.OptionalOf(types.Str()))
	got := mustConvert(t, g, hir.IfExpr(x, hir.TypedVar("x", types.OptionalOf(types.Str())), hir.StrLit("d")))
	if got != `x.clone().unwrap_or_else(|| "d".to_string())` {
		t.Fatalf("option fallback = %q", got)
	}
}

func TestTernaryFloatUnification(t *testing.T) {
	g := testGen()
	got := mustConvert(t, g, hir.IfExpr(hir.TypedVar("b", types.Bool()), hir.FloatLit(1.5), hir.IntLit(2)))
	if got != "if b { 1.5 } else { 2.0 }" {
		t.Fatalf("unified ternary = %q", got)
	}
}

func TestWalrus(t *testing.T) {
	g := testGen()
	got := mustConvert(t, g, hir.Named("y", hir.IntLit(3)))
	if got != "{ let y = 3; y }" {
		t.Fatalf("walrus = %q", got)
	}
}

func TestLenBuiltin(t *testing.T) {
	g := testGen()
	if got := mustConvert(t, g, hir.Call("len", strVar("s"))); got != "s.chars().count() as i64" {
		t.Fatalf("len(str) = %q", got)
	}
	if got := mustConvert(t, g, hir.Call("len", intListVar("xs"))); got != "xs.len() as i64" {
		t.Fatalf("len(list) = %q", got)
	}
}

func TestRangeForms(t *testing.T) {
	g := testGen()
	// A standalone range expression materialises to a Vec, matching
	// the List[int] type the rest of the lowering assigns it.
	if got := mustConvert(t, g, hir.Call("range", hir.IntLit(5))); got != "(0..5).collect::<Vec<i64>>()" {
		t.Fatalf("range(5) = %q", got)
	}
	got := mustConvert(t, g, hir.Call("range", hir.IntLit(10), hir.IntLit(0), hir.IntLit(-1)))
	if got != "(((0 + 1)..(10 + 1)).rev()).collect::<Vec<i64>>()" {
		t.Fatalf("descending range = %q", got)
	}
}

func TestRangeIterationStaysNative(t *testing.T) {
	g := testGen()
	comp := hir.ListComp(
		hir.Binary(hir.OpMul, hir.Var("i"), hir.IntLit(2)),
		hir.Gen("i", hir.Call("range", hir.IntLit(4))),
	)
	got := mustConvert(t, g, comp)
	if !strings.Contains(got, "(0..4).map(") {
		t.Fatalf("range comprehension = %q, want bare range source", got)
	}
	if strings.Contains(got, "collect::<Vec<i64>>().") {
		t.Fatalf("range comprehension = %q, range should not materialise before iterating", got)
	}
}

func TestStrMethodDispatch(t *testing.T) {
	g := testGen()
	if got := mustConvert(t, g, hir.MethodCall(strVar("s"), "upper")); got != "s.to_uppercase()" {
		t.Fatalf("upper = %q", got)
	}
	if got := mustConvert(t, g, hir.MethodCall(strVar("s"), "count", hir.StrLit("a"))); got != `s.matches("a").count() as i64` {
		t.Fatalf("str count = %q", got)
	}
}

func TestCountFallsBackToList(t *testing.T) {
	g := testGen()
	got := mustConvert(t, g, hir.MethodCall(intListVar("xs"), "count", hir.IntLit(1)))
	if got != "xs.iter().filter(|_dv_x| **_dv_x == 1).count() as i64" {
		t.Fatalf("list count = %q", got)
	}
	got = mustConvert(t, g, hir.MethodCall(intListVar("xs"), "index", hir.IntLit(1)))
	if !strings.Contains(got, ".position(|_dv_x| *_dv_x == 1)") {
		t.Fatalf("list index = %q", got)
	}
}

func TestDictGet(t *testing.T) {
	g := testGen()
	d := hir.TypedVar("d", types.DictOf(types.Str(), types.Int()))
	got := mustConvert(t, g, hir.MethodCall(d, "get", hir.StrLit("k"), hir.IntLit(0)))
	if got != `d.get("k").cloned().unwrap_or_else(|| 0)` {
		t.Fatalf("dict.get 2-arg = %q", got)
	}
	got = mustConvert(t, g, hir.MethodCall(d, "get", hir.StrLit("k")))
	if got != `d.get("k").cloned()` {
		t.Fatalf("dict.get 1-arg = %q", got)
	}
}

func TestUserClassMethod(t *testing.T) {
	g := testGen()
	g.Context().ClassNames["Point"] = true
	obj := hir.TypedVar("p", types.Custom("Point"))
	got := mustConvert(t, g, hir.MethodCall(obj, "norm"))
	if got != "p.norm()" {
		t.Fatalf("user method = %q", got)
	}
}

func TestVarKeywordEscape(t *testing.T) {
	g := testGen()
	if got := mustConvert(t, g, hir.Var("type")); got != "r#type" {
		t.Fatalf("keyword var = %q", got)
	}
	if _, err := g.ConvertExpression(hir.Var("self")); err == nil {
		t.Fatalf("self should be rejected")
	}
}

func TestComprehensionRestoresBindings(t *testing.T) {
	g := testGen()
	comp := hir.ListComp(hir.Var("x"),
		hir.Gen("x", intListVar("xs"), hir.Binary(hir.OpGt, hir.Var("x"), hir.IntLit(0))))
	mustConvert(t, g, comp)
	if _, ok := g.Context().VarTypes["x"]; ok {
		t.Fatalf("comprehension target leaked into VarTypes")
	}
	if len(g.Context().OptionUnwrapMap) != 0 {
		t.Fatalf("unwrap map leaked: %v", g.Context().OptionUnwrapMap)
	}
}

func TestComprehensionMoveClosures(t *testing.T) {
	g := testGen()
	g.Context().ReturnsImplIterator = true
	comp := hir.ListComp(hir.Var("x"),
		hir.Gen("x", intListVar("xs"), hir.Binary(hir.OpGt, hir.Var("x"), hir.IntLit(0))))
	got := mustConvert(t, g, comp)
	if !strings.Contains(got, ".filter(move |") {
		t.Fatalf("iterator-returning context should force move closures: %q", got)
	}
}

func TestFlagsAreSticky(t *testing.T) {
	g := testGen()
	mustConvert(t, g, hir.Dict(hir.Item(hir.StrLit("a"), hir.IntLit(1))))
	mustConvert(t, g, hir.IntLit(1))
	if !g.Context().Flags.NeedsHashMap {
		t.Fatalf("capability flags must survive later conversions")
	}
}

func TestUnsupportedPrintfFormatting(t *testing.T) {
	g := testGen()
	if _, err := g.ConvertExpression(hir.Binary(hir.OpMod, strVar("s"), hir.StrLit("x"))); err == nil {
		t.Fatalf("printf-style formatting should be rejected")
	}
}

func TestModuleCallAliasRouting(t *testing.T) {
	g := testGen()
	g.Context().ImportedModules["m"] = "math"
	got := mustConvert(t, g, hir.Call("m.sqrt", floatVar("x")))
	if got != "x.sqrt()" {
		t.Fatalf("aliased sqrt = %q, want %q", got, "x.sqrt()")
	}
	if _, err := g.ConvertExpression(hir.Call("mystery.frob", hir.IntLit(1))); err == nil {
		t.Fatalf("unknown module call should be rejected")
	}
}

func TestComprehensionOverFallbackValue(t *testing.T) {
	g := testGen()
	comp := hir.ListComp(hir.Var("v"), hir.Gen("v", hir.Var("data")))
	got := mustConvert(t, g, comp)
	if !strings.Contains(got, "data.clone().into_iter()") {
		t.Fatalf("fallback iteration = %q, want clone().into_iter() source", got)
	}
	if !g.Context().Flags.NeedsDepylerValue {
		t.Fatalf("fallback iteration should raise the runtime flag")
	}
}

func TestListExtendBorrowedVsOwned(t *testing.T) {
	g := testGen()
	borrowed := hir.MethodCall(intListVar("xs"), "extend", hir.Borrow(intListVar("more"), false))
	if got := mustConvert(t, g, borrowed); got != "xs.extend(more.iter().cloned())" {
		t.Fatalf("extend borrowed = %q", got)
	}
	owned := hir.MethodCall(intListVar("xs"), "extend", hir.List(hir.IntLit(1), hir.IntLit(2)))
	if got := mustConvert(t, g, owned); got != "xs.extend(vec![1, 2].into_iter())" {
		t.Fatalf("extend owned = %q", got)
	}
}

func TestJSONValueGet(t *testing.T) {
	g := testGen()
	cfg := hir.TypedVar("cfg", types.Custom("Value"))
	if got := mustConvert(t, g, hir.MethodCall(cfg, "get", hir.StrLit("port"))); got != `cfg.get("port").cloned()` {
		t.Fatalf("json get = %q", got)
	}
	got := mustConvert(t, g, hir.MethodCall(cfg, "get", hir.StrLit("port"), hir.IntLit(8080)))
	if got != `cfg.get("port").and_then(|_dv_v| _dv_v.as_i64()).unwrap_or(8080)` {
		t.Fatalf("json get with int default = %q", got)
	}
	got = mustConvert(t, g, hir.MethodCall(cfg, "get", hir.StrLit("host"), hir.StrLit("localhost")))
	want := `cfg.get("host").and_then(|_dv_v| _dv_v.as_str()).map(|_dv_s| _dv_s.to_string()).unwrap_or_else(|| "localhost".to_string())`
	if got != want {
		t.Fatalf("json get with str default = %q, want %q", got, want)
	}
	if !g.Context().Flags.NeedsSerdeJson {
		t.Fatalf("json get should raise NeedsSerdeJson")
	}
}

func TestSortDescendingComparator(t *testing.T) {
	g := testGen()
	desc := &hir.Expr{Kind: hir.ExprMethodCall, Data: hir.MethodCallData{
		Object: intListVar("xs"), Method: "sort",
		Keywords: []hir.Keyword{{Name: "reverse", Value: hir.BoolLit(true)}},
	}}
	if got := mustConvert(t, g, desc); got != "xs.sort_by(|_dv_a, _dv_b| _dv_b.cmp(_dv_a))" {
		t.Fatalf("sort reverse = %q", got)
	}
	floats := &hir.Expr{Kind: hir.ExprMethodCall, Data: hir.MethodCallData{
		Object: hir.TypedVar("ys", types.ListOf(types.Float())), Method: "sort",
		Keywords: []hir.Keyword{{Name: "reverse", Value: hir.BoolLit(true)}},
	}}
	got := mustConvert(t, g, floats)
	if got != "ys.sort_by(|_dv_a, _dv_b| _dv_b.partial_cmp(_dv_a).unwrap_or(std::cmp::Ordering::Equal))" {
		t.Fatalf("float sort reverse = %q", got)
	}
}

func TestLambdaParamInference(t *testing.T) {
	g := testGen()
	got := mustConvert(t, g, hir.Lambda([]string{"x"}, hir.Binary(hir.OpAdd, hir.Var("x"), hir.IntLit(1))))
	if got != "move |x: i64| x + 1" {
		t.Fatalf("lambda = %q", got)
	}
	flag := mustConvert(t, g, hir.Lambda([]string{"b"},
		hir.IfExpr(hir.Var("b"), hir.IntLit(1), hir.IntLit(0))))
	if flag != "move |b: bool| if b { 1 } else { 0 }" {
		t.Fatalf("lambda with ternary test = %q", flag)
	}
	iter := mustConvert(t, g, hir.Lambda([]string{"xs"},
		hir.ListComp(hir.Var("v"), hir.Gen("v", hir.Var("xs")))))
	if !strings.Contains(iter, "|xs: Vec<i64>|") {
		t.Fatalf("iterated lambda param = %q", iter)
	}
}

func TestNestedDictStaysJSON(t *testing.T) {
	g := testGen()
	d := hir.Dict(hir.Item(hir.StrLit("outer"), hir.Dict(hir.Item(hir.StrLit("inner"), hir.IntLit(1)))))
	got := mustConvert(t, g, d)
	if !strings.Contains(got, `map.insert("outer".to_string(), serde_json::json!({"inner": 1}))`) {
		t.Fatalf("nested dict = %q", got)
	}
	if g.Context().InJSONContext {
		t.Fatalf("json context must be restored after the literal")
	}
}
