package codegen

import (
	"depyler/internal/diag"
	"depyler/internal/hir"
	"depyler/internal/rust"
)

// convertRegexMethod lowers calls on a compiled pattern.
func (g *Generator) convertRegexMethod(d hir.MethodCallData) (string, error) {
	recv, err := g.ConvertExpression(d.Object)
	if err != nil {
		return "", err
	}
	args, err := g.convertAll(d.Args)
	if err != nil {
		return "", err
	}
	g.ctx.Flags.NeedsRegex = true
	switch d.Method {
	case "search", "match":
		if len(args) != 1 {
			return "", diag.Arity("pattern."+d.Method, "exactly 1", len(args))
		}
		return rust.Method(recv, "find", "&"+rust.Paren(args[0])), nil
	case "findall":
		if len(args) != 1 {
			return "", diag.Arity("pattern.findall", "exactly 1", len(args))
		}
		return rust.Method(recv, "find_iter", "&"+rust.Paren(args[0])) +
			".map(|_dv_m| _dv_m.as_str().to_string()).collect::<Vec<String>>()", nil
	case "sub":
		if len(args) != 2 {
			return "", diag.Arity("pattern.sub", "exactly 2", len(args))
		}
		return rust.Method(recv, "replace_all", "&"+rust.Paren(args[1]), rust.Paren(args[0])+".as_str()") +
			".into_owned()", nil
	case "split":
		if len(args) != 1 {
			return "", diag.Arity("pattern.split", "exactly 1", len(args))
		}
		return rust.Method(recv, "split", "&"+rust.Paren(args[0])) +
			".map(str::to_string).collect::<Vec<String>>()", nil
	case "fullmatch":
		if len(args) != 1 {
			return "", diag.Arity("pattern.fullmatch", "exactly 1", len(args))
		}
		return rust.Method(recv, "find", "&"+rust.Paren(args[0])) +
			".filter(|_dv_m| _dv_m.start() == 0 && _dv_m.end() == " + rust.Paren(args[0]) + ".len())", nil
	}
	return "", diag.UnknownMethod("regex pattern", d.Method)
}

// convertMatchMethod lowers calls on a match object. group(0) is the
// whole match; numbered capture groups need the captures API the
// lowering does not retain, so they are rejected.
func (g *Generator) convertMatchMethod(d hir.MethodCallData) (string, error) {
	recv, err := g.ConvertExpression(d.Object)
	if err != nil {
		return "", err
	}
	switch d.Method {
	case "group":
		if len(d.Args) == 0 {
			return rust.Method(recv, "as_str") + ".to_string()", nil
		}
		if n, ok := intLiteral(d.Args[0]); ok && n == 0 {
			return rust.Method(recv, "as_str") + ".to_string()", nil
		}
		return "", diag.Unsupported("match.group(n) with n > 0: capture groups are not retained")
	case "start":
		return rust.Method(recv, "start") + " as i64", nil
	case "end":
		return rust.Method(recv, "end") + " as i64", nil
	case "span":
		return "(" + rust.Method(recv, "start") + " as i64, " + rust.Method(recv, "end") + " as i64)", nil
	}
	return "", diag.UnknownMethod("regex match", d.Method)
}
