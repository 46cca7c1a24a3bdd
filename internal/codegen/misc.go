package codegen

import (
	"depyler/internal/diag"
	"depyler/internal/hir"
	"depyler/internal/rust"
	"depyler/internal/types"
)

// convertWalrus lowers (x := expr) to a block that binds and yields.
func (g *Generator) convertWalrus(d hir.NamedData) (string, error) {
	value, err := g.ConvertExpression(d.Value)
	if err != nil {
		return "", err
	}
	name := rust.Ident(d.Target)
	return "{ let " + name + " = " + value + "; " + name + " }", nil
}

// convertAwait appends .await; strict mode erases async entirely and
// runs the expression synchronously.
func (g *Generator) convertAwait(d hir.AwaitData) (string, error) {
	code, err := g.ConvertExpression(d.Value)
	if err != nil {
		return "", err
	}
	if g.ctx.StrictMode {
		return code, nil
	}
	g.ctx.Flags.NeedsTokio = true
	return rust.Paren(code) + ".await", nil
}

// convertYield only applies inside lowered generator functions, where
// next() bodies return Option.
func (g *Generator) convertYield(d hir.YieldData) (string, error) {
	if !g.ctx.InGenerator {
		return "", diag.Unsupported("yield outside a lowered generator function")
	}
	if d.Value == nil {
		return "return None", nil
	}
	code, err := g.ConvertExpression(d.Value)
	if err != nil {
		return "", err
	}
	return "return Some(" + code + ")", nil
}

func (g *Generator) convertBorrow(d hir.BorrowData) (string, error) {
	code, err := g.ConvertExpression(d.Expr)
	if err != nil {
		return "", err
	}
	if d.Mutable {
		return "&mut " + rust.Paren(code), nil
	}
	return "&" + rust.Paren(code), nil
}

// convertSortByKey lowers the desugared sorted(xs, key=lambda p: body).
func (g *Generator) convertSortByKey(d hir.SortByKeyData) (string, error) {
	iter, err := g.ConvertExpression(d.Iterable)
	if err != nil {
		return "", err
	}
	if len(d.Params) != 1 {
		return "", diag.New(diag.GenArgShape, "sort key lambda takes exactly one parameter")
	}
	param := d.Params[0]
	undo := g.ctx.bindVar(param, g.iterElemType(d.Iterable))
	body, err := g.ConvertExpression(d.Body)
	undo()
	if err != nil {
		return "", err
	}
	key := "|" + rust.Ident(param) + "| " + body
	if d.Reverse {
		g.ctx.Flags.NeedsCmpReverse = true
		key = "|" + rust.Ident(param) + "| Reverse(" + body + ")"
	}
	return "{ let mut _dv_v = " + rust.Method(iter, "to_vec") + "; _dv_v.sort_by_key(" + key + "); _dv_v }", nil
}

// convertAttribute lowers obj.attr: module attributes, pathlib
// pseudo-fields, @property calls, then plain field access.
func (g *Generator) convertAttribute(d hir.AttributeData) (string, error) {
	if v, ok := d.Value.Data.(hir.VarData); ok {
		switch v.Name {
		case "sys":
			switch d.Attr {
			case "stdout":
				return "std::io::stdout()", nil
			case "stderr":
				return "std::io::stderr()", nil
			case "argv":
				return "std::env::args().collect::<Vec<String>>()", nil
			}
		case "math":
			switch d.Attr {
			case "pi":
				return "std::f64::consts::PI", nil
			case "e":
				return "std::f64::consts::E", nil
			case "inf":
				return "f64::INFINITY", nil
			case "nan":
				return "f64::NAN", nil
			case "tau":
				return "std::f64::consts::TAU", nil
			}
		case "os":
			if d.Attr == "environ" {
				return "std::env::vars().collect::<std::collections::HashMap<String, String>>()", nil
			}
		}
	}

	recv, err := g.ConvertExpression(d.Value)
	if err != nil {
		return "", err
	}

	t := g.typeOf(d.Value)
	if t.Is(types.KindCustom) && isPathType(t.Name) {
		switch d.Attr {
		case "name":
			return rust.Method(recv, "file_name") + ".map(|_dv_n| _dv_n.to_string_lossy().into_owned()).unwrap_or_default()", nil
		case "stem":
			return rust.Method(recv, "file_stem") + ".map(|_dv_n| _dv_n.to_string_lossy().into_owned()).unwrap_or_default()", nil
		case "suffix":
			return rust.Method(recv, "extension") + ".map(|_dv_e| format!(\".{}\", _dv_e.to_string_lossy())).unwrap_or_default()", nil
		case "parent":
			return rust.Method(recv, "parent") + ".map(std::path::Path::to_path_buf).unwrap_or_default()", nil
		}
	}

	if rust.IsNonRawKeyword(d.Attr) {
		return "", diag.New(diag.GenBadIdentifier,
			"attribute %q conflicts with a special Rust keyword", d.Attr)
	}

	// Python @property reads become method calls.
	if g.ctx.PropertyMethods[d.Attr] {
		return rust.Method(recv, rust.Ident(d.Attr)), nil
	}
	// Pre-wrapped argparse optionals read through their display form.
	if g.ctx.PrecomputedOptionFields[d.Attr] {
		return "match " + rust.Receiver(recv) + "." + rust.Ident(d.Attr) +
			" { Some(ref _dv_v) => format!(\"{}\", _dv_v), None => \"None\".to_string() }", nil
	}
	return rust.Receiver(recv) + "." + rust.Ident(d.Attr), nil
}
