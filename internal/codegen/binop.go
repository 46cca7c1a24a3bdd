package codegen

import (
	"depyler/internal/diag"
	"depyler/internal/hir"
	"depyler/internal/pyval"
	"depyler/internal/rust"
	"depyler/internal/types"
)

func (g *Generator) convertBinary(d hir.BinaryData) (string, error) {
	switch d.Op {
	case hir.OpAnd, hir.OpOr:
		return g.convertBoolOp(d)
	case hir.OpIn, hir.OpNotIn:
		return g.convertMembership(d)
	case hir.OpIs, hir.OpIsNot:
		return g.convertIdentity(d)
	}
	if d.Op.IsComparison() {
		return g.convertComparison(d)
	}
	return g.convertArithmetic(d)
}

func (g *Generator) convertBoolOp(d hir.BinaryData) (string, error) {
	left, err := g.ConvertExpression(d.Left)
	if err != nil {
		return "", err
	}
	right, err := g.ConvertExpression(d.Right)
	if err != nil {
		return "", err
	}
	op := "&&"
	if d.Op == hir.OpOr {
		op = "||"
	}
	return rust.Paren(g.truthyCond(d.Left, left)) + " " + op + " " + rust.Paren(g.truthyCond(d.Right, right)), nil
}

func (g *Generator) convertMembership(d hir.BinaryData) (string, error) {
	member, err := g.ConvertExpression(d.Left)
	if err != nil {
		return "", err
	}
	container, err := g.ConvertExpression(d.Right)
	if err != nil {
		return "", err
	}
	ct := g.typeOf(d.Right)
	var test string
	switch {
	case ct.Is(types.KindDict):
		test = rust.Method(container, "contains_key", g.borrowKey(d.Left, member))
	case ct.Is(types.KindStr) || g.isStr(d.Right):
		// &str patterns work bare for literals; String members borrow.
		arg := member
		if _, lit := strLiteral(d.Left); !lit {
			arg = "&" + rust.Paren(member)
		}
		test = rust.Method(container, "contains", arg)
	case g.isDepylerValue(d.Right):
		g.ctx.Flags.NeedsDepylerValue = true
		test = rust.Method(container, "py_contains", g.valueArg(d.Left, member))
	default:
		test = rust.Method(container, "contains", "&"+rust.Paren(member))
	}
	if d.Op == hir.OpNotIn {
		return "!" + test, nil
	}
	return test, nil
}

func (g *Generator) convertIdentity(d hir.BinaryData) (string, error) {
	// `x is None` / `x is not None` dominate; identity on other values
	// degrades to equality, which matches how the bridge uses it.
	if isNoneLiteral(d.Right) {
		left, err := g.ConvertExpression(d.Left)
		if err != nil {
			return "", err
		}
		if g.isDepylerValue(d.Left) {
			g.ctx.Flags.NeedsDepylerValue = true
			cmp := rust.Paren(left) + " == DepylerValue::None"
			if d.Op == hir.OpIsNot {
				return rust.Paren(left) + " != DepylerValue::None", nil
			}
			return cmp, nil
		}
		if d.Op == hir.OpIsNot {
			return rust.Method(left, "is_some"), nil
		}
		return rust.Method(left, "is_none"), nil
	}
	eq := d
	if d.Op == hir.OpIs {
		eq.Op = hir.OpEq
	} else {
		eq.Op = hir.OpNotEq
	}
	return g.convertComparison(eq)
}

var cmpTokens = map[hir.BinOp]string{
	hir.OpEq:    "==",
	hir.OpNotEq: "!=",
	hir.OpLt:    "<",
	hir.OpLtEq:  "<=",
	hir.OpGt:    ">",
	hir.OpGtEq:  ">=",
}

func (g *Generator) convertComparison(d hir.BinaryData) (string, error) {
	left, err := g.ConvertExpression(d.Left)
	if err != nil {
		return "", err
	}
	right, err := g.ConvertExpression(d.Right)
	if err != nil {
		return "", err
	}
	tok := cmpTokens[d.Op]
	lt, rt := g.typeOf(d.Left), g.typeOf(d.Right)

	// Mixed int/float comparisons widen the integer side.
	if lt.Is(types.KindInt) && rt.Is(types.KindFloat) {
		left = rust.Paren(left) + " as f64"
	} else if lt.Is(types.KindFloat) && rt.Is(types.KindInt) {
		right = rust.Paren(right) + " as f64"
	}

	// DepylerValue on one side lifts the other.
	if g.isDepylerValue(d.Left) && !g.isDepylerValue(d.Right) && !rt.IsUnknown() {
		right = g.wrapDepylerValue(d.Right, right)
	} else if g.isDepylerValue(d.Right) && !g.isDepylerValue(d.Left) && !lt.IsUnknown() {
		left = g.wrapDepylerValue(d.Left, left)
	}

	// String literal vs String: compare through &str.
	if lt.Is(types.KindStr) && rt.Is(types.KindStr) {
		if _, lit := strLiteral(d.Right); lit {
			left = rust.Method(left, "as_str")
		} else if _, lit := strLiteral(d.Left); lit {
			right = rust.Method(right, "as_str")
		}
	}
	return rust.Paren(left) + " " + tok + " " + rust.Paren(right), nil
}

var pyOpMethods = map[hir.BinOp]string{
	hir.OpAdd:      "py_add",
	hir.OpSub:      "py_sub",
	hir.OpMul:      "py_mul",
	hir.OpDiv:      "py_div",
	hir.OpFloorDiv: "py_floordiv",
	hir.OpMod:      "py_mod",
}

func (g *Generator) convertArithmetic(d hir.BinaryData) (string, error) {
	// Constant folding: literal-only numeric subtrees evaluate at
	// transpile time with reference Python semantics.
	if folded, ok := g.foldArithmetic(d); ok {
		return folded, nil
	}
	left, err := g.ConvertExpression(d.Left)
	if err != nil {
		return "", err
	}
	right, err := g.ConvertExpression(d.Right)
	if err != nil {
		return "", err
	}
	lt, rt := g.typeOf(d.Left), g.typeOf(d.Right)

	switch d.Op {
	case hir.OpBitAnd, hir.OpBitOr, hir.OpBitXor:
		if g.isSet(d.Left) {
			return g.convertSetOperator(d.Op, left, right), nil
		}
		// Python 3.9 dict merge.
		if d.Op == hir.OpBitOr && (g.isDict(d.Left) || g.isDict(d.Right)) {
			g.ctx.Flags.NeedsHashMap = true
			return "{ let mut _dv_merged = " + rust.Paren(left) + ".clone(); _dv_merged.extend(" +
				rust.Paren(right) + ".iter().map(|(k, v)| (k.clone(), v.clone()))); _dv_merged }", nil
		}
		tok := map[hir.BinOp]string{hir.OpBitAnd: "&", hir.OpBitOr: "|", hir.OpBitXor: "^"}[d.Op]
		return rust.Paren(left) + " " + tok + " " + rust.Paren(right), nil
	case hir.OpLShift:
		return rust.Paren(left) + " << " + rust.Paren(right), nil
	case hir.OpRShift:
		return rust.Paren(left) + " >> " + rust.Paren(right), nil
	case hir.OpSub:
		if g.isSet(d.Left) {
			return g.convertSetOperator(d.Op, left, right), nil
		}
	case hir.OpPow:
		return g.convertPow(d, left, right)
	}

	// String concatenation stays on format! so &str/String mixes never
	// fight the borrow checker.
	if d.Op == hir.OpAdd && lt.Is(types.KindStr) && rt.Is(types.KindStr) {
		return "format!(\"{}{}\", " + left + ", " + right + ")", nil
	}
	if d.Op == hir.OpMod && lt.Is(types.KindStr) {
		return "", diag.Unsupported("printf-style %% formatting on strings; use an f-string")
	}
	if d.Op == hir.OpMul {
		// str * int repeats; negative counts clamp to empty.
		if lt.Is(types.KindStr) && rt.Is(types.KindInt) {
			return rust.Method(left, "repeat", rust.Paren(right)+".max(0) as usize"), nil
		}
		if lt.Is(types.KindInt) && rt.Is(types.KindStr) {
			return rust.Method(right, "repeat", rust.Paren(left)+".max(0) as usize"), nil
		}
		if code, ok := g.convertListRepeat(d, left, right, lt, rt); ok {
			return code, nil
		}
	}
	if d.Op == hir.OpAdd && lt.Is(types.KindList) && rt.Is(types.KindList) {
		return "{ let mut _dv_cat = " + rust.Paren(left) + ".clone(); _dv_cat.extend(" +
			rust.Paren(right) + ".iter().cloned()); _dv_cat }", nil
	}

	if lt.IsNumeric() && rt.IsNumeric() {
		return g.convertNumeric(d.Op, left, right, lt, rt)
	}

	method, ok := pyOpMethods[d.Op]
	if !ok {
		return "", diag.Internal("unhandled arithmetic operator %s", d.Op)
	}
	g.ctx.Flags.NeedsDepylerValue = true
	rightArg := right
	if g.isDepylerValue(d.Left) && !rt.IsUnknown() {
		rightArg = g.wrapDepylerValue(d.Right, right)
	} else if g.isDepylerValue(d.Right) && !lt.IsUnknown() {
		left = g.wrapDepylerValue(d.Left, left)
	}
	return rust.Method(left, method, rightArg), nil
}

// convertNumeric lowers arithmetic where both sides carry numeric
// evidence. Floor division and modulo become inline blocks keeping
// Python's floor/divisor-sign semantics and the division-by-zero
// sentinels; everything else maps to the native operator with f64
// widening when one side is a float.
func (g *Generator) convertNumeric(op hir.BinOp, left, right string, lt, rt *types.Type) (string, error) {
	isFloat := lt.Is(types.KindFloat) || rt.Is(types.KindFloat)
	widen := func(code string, t *types.Type) string {
		if isFloat && !t.Is(types.KindFloat) {
			return rust.Paren(code) + " as f64"
		}
		return code
	}
	switch op {
	case hir.OpAdd, hir.OpSub, hir.OpMul:
		tok := map[hir.BinOp]string{hir.OpAdd: "+", hir.OpSub: "-", hir.OpMul: "*"}[op]
		return rust.Paren(widen(left, lt)) + " " + tok + " " + rust.Paren(widen(right, rt)), nil
	case hir.OpDiv:
		l, r := rust.Paren(left), rust.Paren(right)
		if !lt.Is(types.KindFloat) {
			l = "(" + l + " as f64)"
		}
		if !rt.Is(types.KindFloat) {
			r = "(" + r + " as f64)"
		}
		return l + " / " + r, nil
	case hir.OpFloorDiv:
		if isFloat {
			return "{ let _dv_b = " + widen(right, rt) + "; if _dv_b == 0.0 { f64::NAN } else { (" +
				widen(left, lt) + " / _dv_b).floor() } }", nil
		}
		return "{ let _dv_a = " + left + "; let _dv_b = " + right +
			"; if _dv_b == 0 { 0 } else { let q = _dv_a / _dv_b; let r = _dv_a % _dv_b; " +
			"if r != 0 && (r < 0) != (_dv_b < 0) { q - 1 } else { q } } }", nil
	case hir.OpMod:
		if isFloat {
			return "{ let _dv_b = " + widen(right, rt) + "; if _dv_b == 0.0 { f64::NAN } else { " +
				"let m = " + rust.Paren(widen(left, lt)) + " % _dv_b; " +
				"if m != 0.0 && (m < 0.0) != (_dv_b < 0.0) { m + _dv_b } else { m } } }", nil
		}
		return "{ let _dv_a = " + left + "; let _dv_b = " + right +
			"; if _dv_b == 0 { 0 } else { let m = _dv_a % _dv_b; " +
			"if m != 0 && (m < 0) != (_dv_b < 0) { m + _dv_b } else { m } } }", nil
	}
	return "", diag.Internal("unhandled numeric operator %s", op)
}

// convertListRepeat handles list * int. A one-element literal list with
// a positive literal count becomes vec![elem; n]; other shapes build
// the repetition in a block.
func (g *Generator) convertListRepeat(d hir.BinaryData, left, right string, lt, rt *types.Type) (string, bool) {
	listSide, intSide := d.Left, d.Right
	listCode, intCode := left, right
	if lt.Is(types.KindInt) && rt.Is(types.KindList) {
		listSide, intSide = d.Right, d.Left
		listCode, intCode = right, left
	} else if !(lt.Is(types.KindList) && rt.Is(types.KindInt)) {
		return "", false
	}
	if ld, ok := listSide.Data.(hir.ListData); ok && len(ld.Elems) == 1 {
		if n, ok := intLiteral(intSide); ok && n > 0 {
			elem, err := g.ConvertExpression(ld.Elems[0])
			if err == nil {
				return "vec![" + elem + "; " + rust.IntLit(n) + " as usize]", true
			}
		}
	}
	return "{ let mut _dv_rep = Vec::new(); for _ in 0.." + rust.Paren(intCode) + ".max(0) { _dv_rep.extend(" +
		rust.Paren(listCode) + ".iter().cloned()); } _dv_rep }", true
}

// foldArithmetic evaluates literal-only arithmetic with the pyval
// reference semantics.
func (g *Generator) foldArithmetic(d hir.BinaryData) (string, bool) {
	lv, ok := literalValue(d.Left)
	if !ok {
		return "", false
	}
	rv, ok := literalValue(d.Right)
	if !ok {
		return "", false
	}
	var out pyval.Value
	switch d.Op {
	case hir.OpAdd:
		out = lv.Add(rv)
	case hir.OpSub:
		out = lv.Sub(rv)
	case hir.OpMul:
		out = lv.Mul(rv)
	case hir.OpFloorDiv:
		out = lv.FloorDiv(rv)
	case hir.OpMod:
		out = lv.Mod(rv)
	default:
		return "", false
	}
	switch out.Kind() {
	case pyval.KindInt:
		return rust.IntLit(out.ToI64()), true
	case pyval.KindFloat:
		f := out.ToF64()
		if f != f {
			return "f64::NAN", true
		}
		return rust.FloatLit(f), true
	case pyval.KindStr:
		return rust.StrLit(out.StrVal()), true
	default:
		return "", false
	}
}

func literalValue(e *hir.Expr) (pyval.Value, bool) {
	d, ok := e.Data.(hir.LiteralData)
	if !ok {
		return pyval.None(), false
	}
	switch d.Kind {
	case hir.LiteralInt:
		return pyval.Int(d.IntValue), true
	case hir.LiteralFloat:
		return pyval.Float(d.FloatValue), true
	case hir.LiteralString:
		return pyval.Str(d.StringValue), true
	case hir.LiteralBool:
		return pyval.Bool(d.BoolValue), true
	default:
		return pyval.None(), false
	}
}

var setOpMethods = map[hir.BinOp]string{
	hir.OpBitAnd: "intersection",
	hir.OpBitOr:  "union",
	hir.OpSub:    "difference",
	hir.OpBitXor: "symmetric_difference",
}

func (g *Generator) convertSetOperator(op hir.BinOp, left, right string) string {
	g.ctx.Flags.NeedsHashSet = true
	method := setOpMethods[op]
	return rust.Method(left, method, "&"+rust.Paren(right)) + ".cloned().collect::<HashSet<_>>()"
}

func (g *Generator) convertPow(d hir.BinaryData, left, right string) (string, error) {
	lt, rt := g.typeOf(d.Left), g.typeOf(d.Right)
	if lt.Is(types.KindInt) && rt.Is(types.KindInt) {
		if n, ok := intLiteral(d.Right); ok && n >= 0 {
			return rust.Method(left, "pow", rust.IntLit(n)+" as u32"), nil
		}
		// Negative or unknown exponent goes through floats, like
		// Python's int ** int producing float for negative powers.
		return "(" + rust.Paren(left) + " as f64).powf(" + rust.Paren(right) + " as f64)", nil
	}
	if lt.Is(types.KindFloat) || rt.Is(types.KindFloat) {
		r := rust.Paren(right)
		if rt.Is(types.KindInt) {
			r = r + " as f64"
		}
		l := rust.Paren(left)
		if lt.Is(types.KindInt) {
			l = "(" + l + " as f64)"
		}
		return rust.Method(l, "powf", r), nil
	}
	g.ctx.Flags.NeedsDepylerValue = true
	return rust.Method(left, "py_pow", right), nil
}

func (g *Generator) convertUnary(d hir.UnaryData) (string, error) {
	operand, err := g.ConvertExpression(d.Operand)
	if err != nil {
		return "", err
	}
	switch d.Op {
	case hir.OpNot:
		return "!" + rust.Paren(g.truthyCond(d.Operand, operand)), nil
	case hir.OpNeg:
		return "-" + rust.Paren(operand), nil
	case hir.OpPos:
		return rust.Paren(operand), nil
	case hir.OpBitNot:
		return "!" + rust.Paren(operand), nil
	default:
		return "", diag.Internal("unhandled unary operator %s", d.Op)
	}
}

// valueArg lifts an argument to DepylerValue unless it already is one.
func (g *Generator) valueArg(e *hir.Expr, code string) string {
	if g.isDepylerValue(e) {
		return code
	}
	return g.wrapDepylerValue(e, code)
}
