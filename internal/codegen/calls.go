package codegen

import (
	"strings"

	"depyler/internal/diag"
	"depyler/internal/hir"
	"depyler/internal/rust"
	"depyler/internal/types"
)

func (g *Generator) convertCall(d hir.CallData) (string, error) {
	if strings.Contains(d.Func, ".") {
		return g.convertModuleCall(d)
	}
	if code, handled, err := g.convertBuiltin(d); handled {
		return code, err
	}

	// Constructor call for a user-defined class.
	if g.ctx.ClassNames[d.Func] {
		args, err := g.convertCallArgs(d.Args)
		if err != nil {
			return "", err
		}
		return d.Func + "::new(" + strings.Join(args, ", ") + ")", nil
	}

	args, err := g.convertCallArgs(d.Args)
	if err != nil {
		return "", err
	}
	call := rust.Call(rust.Ident(d.Func), args...)
	if g.ctx.ResultReturningFunctions[d.Func] {
		if g.ctx.CurrentFunctionCanFail {
			return call + "?", nil
		}
		return call + ".expect(" + rust.StrLit(d.Func+" failed") + ")", nil
	}
	return call, nil
}

// convertCallArgs lowers positional arguments, auto-borrowing
// class-instance values since user methods usually take &self peers.
func (g *Generator) convertCallArgs(args []*hir.Expr) ([]string, error) {
	out := make([]string, len(args))
	for i, a := range args {
		code, err := g.ConvertExpression(a)
		if err != nil {
			return nil, err
		}
		if _, isClass := g.isClassInstance(a); isClass {
			if _, isVar := varName(a); isVar {
				code = "&" + code
			}
		}
		out[i] = code
	}
	return out, nil
}

func (g *Generator) convertBuiltin(d hir.CallData) (string, bool, error) {
	arg := func(i int) *hir.Expr {
		if i < len(d.Args) {
			return d.Args[i]
		}
		return nil
	}
	one := func() (string, error) {
		if len(d.Args) != 1 {
			return "", diag.Arity(d.Func, "exactly 1", len(d.Args))
		}
		return g.ConvertExpression(d.Args[0])
	}

	switch d.Func {
	case "len":
		code, err := one()
		if err != nil {
			return "", true, err
		}
		if g.isStr(arg(0)) {
			return rust.Method(code, "chars") + ".count() as i64", true, nil
		}
		return rust.Method(code, "len") + " as i64", true, nil
	case "str":
		if len(d.Args) == 0 {
			return `String::new()`, true, nil
		}
		code, err := one()
		if err != nil {
			return "", true, err
		}
		return rust.Method(code, "to_string"), true, nil
	case "int":
		code, err := one()
		if err != nil {
			return "", true, err
		}
		t := g.typeOf(arg(0))
		switch {
		case t.Is(types.KindStr):
			return rust.Method(code, "trim") + ".parse::<i64>().unwrap_or(0)", true, nil
		case t.Is(types.KindFloat):
			return rust.Paren(code) + " as i64", true, nil
		case t.Is(types.KindBool):
			return rust.Paren(code) + " as i64", true, nil
		case g.isDepylerValue(arg(0)):
			g.ctx.Flags.NeedsDepylerValue = true
			return rust.Method(code, "to_i64"), true, nil
		default:
			return code, true, nil
		}
	case "float":
		code, err := one()
		if err != nil {
			return "", true, err
		}
		t := g.typeOf(arg(0))
		switch {
		case t.Is(types.KindStr):
			return rust.Method(code, "trim") + ".parse::<f64>().unwrap_or(0.0)", true, nil
		case t.Is(types.KindInt):
			return rust.Paren(code) + " as f64", true, nil
		case g.isDepylerValue(arg(0)):
			g.ctx.Flags.NeedsDepylerValue = true
			return rust.Method(code, "to_f64"), true, nil
		default:
			return code, true, nil
		}
	case "bool":
		code, err := one()
		if err != nil {
			return "", true, err
		}
		return g.truthyCond(arg(0), code), true, nil
	case "abs":
		code, err := one()
		if err != nil {
			return "", true, err
		}
		return rust.Method(code, "abs"), true, nil
	case "ord":
		code, err := one()
		if err != nil {
			return "", true, err
		}
		return rust.Method(code, "chars") + ".next().map(|_dv_c| _dv_c as i64).unwrap_or(0)", true, nil
	case "chr":
		code, err := one()
		if err != nil {
			return "", true, err
		}
		return "char::from_u32(" + rust.Paren(code) + " as u32).map(|_dv_c| _dv_c.to_string()).unwrap_or_default()", true, nil
	case "min", "max":
		code, err := g.convertMinMax(d)
		return code, true, err
	case "sum":
		code, err := one()
		if err != nil {
			return "", true, err
		}
		elem := g.iterElemType(arg(0))
		spec := "i64"
		if elem.Is(types.KindFloat) {
			spec = "f64"
		}
		return rust.Method(code, "iter") + ".cloned().sum::<" + spec + ">()", true, nil
	case "sorted":
		code, err := g.convertSorted(d)
		return code, true, err
	case "range":
		code, err := g.convertRange(d)
		if err != nil {
			return "", true, err
		}
		return code + ".collect::<Vec<i64>>()", true, nil
	case "enumerate":
		code, err := one()
		if err != nil {
			return "", true, err
		}
		return rust.Method(code, "iter") + ".cloned().enumerate().map(|(_dv_i, _dv_x)| (_dv_i as i64, _dv_x))", true, nil
	case "zip":
		if len(d.Args) != 2 {
			return "", true, diag.Arity("zip", "exactly 2", len(d.Args))
		}
		a, err := g.ConvertExpression(d.Args[0])
		if err != nil {
			return "", true, err
		}
		b, err := g.ConvertExpression(d.Args[1])
		if err != nil {
			return "", true, err
		}
		return rust.Method(a, "iter") + ".cloned().zip(" + rust.Method(b, "iter") + ".cloned())", true, nil
	case "reversed":
		code, err := one()
		if err != nil {
			return "", true, err
		}
		return rust.Method(code, "iter") + ".rev().cloned().collect::<Vec<_>>()", true, nil
	case "list":
		if len(d.Args) == 0 {
			return "vec![]", true, nil
		}
		code, err := one()
		if err != nil {
			return "", true, err
		}
		if g.isStr(arg(0)) {
			return rust.Method(code, "chars") + ".map(|_dv_c| _dv_c.to_string()).collect::<Vec<String>>()", true, nil
		}
		return rust.Method(code, "iter") + ".cloned().collect::<Vec<_>>()", true, nil
	case "set":
		g.ctx.Flags.NeedsHashSet = true
		if len(d.Args) == 0 {
			return "HashSet::new()", true, nil
		}
		code, err := one()
		if err != nil {
			return "", true, err
		}
		return rust.Method(code, "iter") + ".cloned().collect::<HashSet<_>>()", true, nil
	case "dict":
		g.ctx.Flags.NeedsHashMap = true
		if len(d.Args) == 0 {
			return "HashMap::new()", true, nil
		}
		code, err := one()
		if err != nil {
			return "", true, err
		}
		return rust.Method(code, "iter") + ".cloned().collect::<HashMap<_, _>>()", true, nil
	case "tuple":
		code, err := one()
		if err != nil {
			return "", true, err
		}
		return code, true, nil
	case "print":
		code, err := g.convertPrint(d)
		return code, true, err
	case "input":
		return "{ let mut _dv_line = String::new(); std::io::stdin().read_line(&mut _dv_line).ok(); _dv_line.trim_end().to_string() }", true, nil
	case "open":
		code, err := g.convertOpen(d)
		return code, true, err
	case "isinstance", "issubclass", "eval", "exec", "globals", "locals":
		return "", true, diag.Unsupported("builtin %s() has no static Rust equivalent", d.Func)
	case "repr":
		code, err := one()
		if err != nil {
			return "", true, err
		}
		return "format!(\"{:?}\", " + code + ")", true, nil
	case "round":
		code, err := g.ConvertExpression(d.Args[0])
		if err != nil {
			return "", true, err
		}
		if len(d.Args) == 2 {
			digits, err := g.ConvertExpression(d.Args[1])
			if err != nil {
				return "", true, err
			}
			return "{ let _dv_p = 10f64.powi(" + rust.Paren(digits) + " as i32); (" + rust.Paren(code) + " as f64 * _dv_p).round() / _dv_p }", true, nil
		}
		return "(" + rust.Paren(code) + " as f64).round() as i64", true, nil
	}
	return "", false, nil
}

func (g *Generator) convertMinMax(d hir.CallData) (string, error) {
	method := d.Func // "min" or "max"
	if len(d.Args) == 0 {
		return "", diag.Arity(method, "at least 1", 0)
	}
	if len(d.Args) == 1 {
		code, err := g.ConvertExpression(d.Args[0])
		if err != nil {
			return "", err
		}
		elem := g.iterElemType(d.Args[0])
		chain := rust.Method(code, "iter") + ".cloned()"
		if elem.Is(types.KindFloat) {
			// f64 is not Ord; fold through partial_cmp.
			cmp := "|a, b| a.partial_cmp(&b).unwrap_or(std::cmp::Ordering::Equal)"
			if method == "min" {
				return chain + ".min_by(" + cmp + ").expect(\"ValueError: min() arg is an empty sequence\")", nil
			}
			return chain + ".max_by(" + cmp + ").expect(\"ValueError: max() arg is an empty sequence\")", nil
		}
		return chain + "." + method + "().expect(" + rust.StrLit("ValueError: "+method+"() arg is an empty sequence") + ")", nil
	}
	out, err := g.ConvertExpression(d.Args[0])
	if err != nil {
		return "", err
	}
	for _, a := range d.Args[1:] {
		next, err := g.ConvertExpression(a)
		if err != nil {
			return "", err
		}
		out = rust.Method(out, method, next)
	}
	return out, nil
}

func (g *Generator) convertSorted(d hir.CallData) (string, error) {
	if len(d.Args) != 1 {
		return "", diag.Arity("sorted", "exactly 1 positional", len(d.Args))
	}
	code, err := g.ConvertExpression(d.Args[0])
	if err != nil {
		return "", err
	}
	reverse := false
	for _, kw := range d.Keywords {
		switch kw.Name {
		case "reverse":
			if b, ok := kw.Value.Data.(hir.LiteralData); ok && b.Kind == hir.LiteralBool {
				reverse = b.BoolValue
			}
		case "key":
			return "", diag.Unsupported("sorted(key=...) arrives desugared as a sort-by-key node")
		}
	}
	stmts := []string{
		"let mut _dv_v = " + rust.Method(code, "to_vec"),
		"_dv_v.sort()",
	}
	if reverse {
		stmts = append(stmts, "_dv_v.reverse()")
	}
	return rust.Block(stmts, "_dv_v"), nil
}

// convertRange renders range(...) as a native Rust range, always
// parenthesised so later method calls bind to the range itself.
func (g *Generator) convertRange(d hir.CallData) (string, error) {
	lower := func(e *hir.Expr) (string, error) {
		code, err := g.ConvertExpression(e)
		if err != nil {
			return "", err
		}
		return rust.Paren(code), nil
	}
	switch len(d.Args) {
	case 1:
		stop, err := lower(d.Args[0])
		if err != nil {
			return "", err
		}
		return "(0.." + stop + ")", nil
	case 2:
		start, err := lower(d.Args[0])
		if err != nil {
			return "", err
		}
		stop, err := lower(d.Args[1])
		if err != nil {
			return "", err
		}
		return "(" + start + ".." + stop + ")", nil
	case 3:
		start, err := lower(d.Args[0])
		if err != nil {
			return "", err
		}
		stop, err := lower(d.Args[1])
		if err != nil {
			return "", err
		}
		if n, ok := intLiteral(d.Args[2]); ok && n < 0 {
			// Descending range walks the mirrored ascending range in
			// reverse.
			inner := "((" + stop + " + 1).." + "(" + start + " + 1))"
			chain := inner + ".rev()"
			if n != -1 {
				chain += ".step_by(" + rust.IntLit(-n) + " as usize)"
			}
			return "(" + chain + ")", nil
		}
		step, err := lower(d.Args[2])
		if err != nil {
			return "", err
		}
		return "((" + start + ".." + stop + ").step_by(" + step + " as usize))", nil
	default:
		return "", diag.Arity("range", "1 to 3", len(d.Args))
	}
}

func (g *Generator) convertPrint(d hir.CallData) (string, error) {
	if len(d.Args) == 0 {
		return `println!()`, nil
	}
	specs := make([]string, len(d.Args))
	args := make([]string, len(d.Args))
	for i, a := range d.Args {
		code, err := g.ConvertExpression(a)
		if err != nil {
			return "", err
		}
		specs[i] = g.formatSpec(a)
		args[i] = code
	}
	return "println!(" + rust.StrLit(strings.Join(specs, " ")) + ", " + strings.Join(args, ", ") + ")", nil
}

func (g *Generator) convertOpen(d hir.CallData) (string, error) {
	if len(d.Args) == 0 {
		return "", diag.Arity("open", "at least 1", 0)
	}
	path, err := g.ConvertExpression(d.Args[0])
	if err != nil {
		return "", err
	}
	mode := "r"
	if len(d.Args) >= 2 {
		if m, ok := strLiteral(d.Args[1]); ok {
			mode = m
		}
	}
	switch {
	case strings.ContainsAny(mode, "wa"):
		g.ctx.Flags.NeedsIoWrite = true
		if strings.Contains(mode, "a") {
			return "std::fs::OpenOptions::new().append(true).create(true).open(" + path + ").expect(\"IOError: cannot open file\")", nil
		}
		return "std::fs::File::create(" + path + ").expect(\"IOError: cannot create file\")", nil
	default:
		return "std::fs::File::open(" + path + ").expect(\"FileNotFoundError: cannot open file\")", nil
	}
}
