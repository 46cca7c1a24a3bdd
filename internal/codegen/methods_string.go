package codegen

import (
	"strings"

	"depyler/internal/diag"
	"depyler/internal/hir"
	"depyler/internal/pyval"
	"depyler/internal/rust"
	"depyler/internal/types"
)

// charPredicates maps Python str.is* names to char methods, used both
// for single-char receivers and inside chars().all closures.
var charPredicates = map[string]string{
	"isdigit":   "is_ascii_digit",
	"isnumeric": "is_numeric",
	"isdecimal": "is_ascii_digit",
	"isalpha":   "is_alphabetic",
	"isalnum":   "is_alphanumeric",
	"isspace":   "is_whitespace",
	"isupper":   "is_uppercase",
	"islower":   "is_lowercase",
	"isascii":   "is_ascii",
}

func (g *Generator) convertStrMethod(recv string, d hir.MethodCallData, args []string) (string, error) {
	m := d.Method
	isChar := g.isCharReceiver(d.Object)

	if cm, ok := charPredicates[m]; ok {
		if len(args) != 0 {
			return "", diag.Arity("str."+m, "no", len(args))
		}
		if isChar {
			return rust.Method(recv, cm), nil
		}
		return rust.Method(recv, "chars") + ".all(|_dv_c| _dv_c." + cm + "())", nil
	}

	switch m {
	case "upper":
		if isChar {
			return rust.Method(recv, "to_uppercase") + ".to_string()", nil
		}
		return rust.Method(recv, "to_uppercase"), nil
	case "lower":
		if isChar {
			return rust.Method(recv, "to_lowercase") + ".to_string()", nil
		}
		return rust.Method(recv, "to_lowercase"), nil
	case "strip", "lstrip", "rstrip":
		return g.convertStrip(recv, d, args)
	case "startswith":
		if len(args) != 1 {
			return "", diag.Arity("str.startswith", "exactly 1", len(args))
		}
		return rust.Method(recv, "starts_with", g.borrowKey(d.Args[0], args[0])), nil
	case "endswith":
		if len(args) != 1 {
			return "", diag.Arity("str.endswith", "exactly 1", len(args))
		}
		return rust.Method(recv, "ends_with", g.borrowKey(d.Args[0], args[0])), nil
	case "split", "rsplit":
		return g.convertSplit(recv, d, args)
	case "splitlines":
		return rust.Method(recv, "lines") + ".map(str::to_string).collect::<Vec<String>>()", nil
	case "join":
		return g.convertJoin(recv, d, args)
	case "replace":
		switch len(args) {
		case 2:
			return rust.Method(recv, "replace", g.borrowKey(d.Args[0], args[0]), g.borrowKey(d.Args[1], args[1])), nil
		case 3:
			return rust.Method(recv, "replacen",
				g.borrowKey(d.Args[0], args[0]), g.borrowKey(d.Args[1], args[1]),
				rust.Paren(args[2])+" as usize"), nil
		}
		return "", diag.Arity("str.replace", "2 or 3", len(args))
	case "find", "rfind":
		if len(args) != 1 {
			return "", diag.Arity("str."+m, "exactly 1", len(args))
		}
		rm := "find"
		if m == "rfind" {
			rm = "rfind"
		}
		return "match " + rust.Method(recv, rm, g.borrowKey(d.Args[0], args[0])) +
			" { Some(_dv_i) => _dv_i as i64, None => -1 }", nil
	case "index", "rindex":
		if len(args) != 1 {
			return "", diag.Arity("str."+m, "exactly 1", len(args))
		}
		rm := "find"
		if m == "rindex" {
			rm = "rfind"
		}
		return rust.Method(recv, rm, g.borrowKey(d.Args[0], args[0])) +
			".expect(\"ValueError: substring not found\") as i64", nil
	case "count":
		if len(args) != 1 {
			return "", diag.Arity("str.count", "exactly 1", len(args))
		}
		return rust.Method(recv, "matches", g.borrowKey(d.Args[0], args[0])) + ".count() as i64", nil
	case "title", "capitalize", "swapcase", "casefold":
		return g.convertCaseMethod(recv, m, d, args)
	case "istitle":
		return rust.Method(recv, "split_whitespace") +
			".all(|_dv_w| _dv_w.chars().next().map(|_dv_c| _dv_c.is_uppercase()).unwrap_or(false))", nil
	case "isidentifier":
		return "(!" + rust.Method(recv, "is_empty") + " && " + rust.Method(recv, "chars") +
			".enumerate().all(|(_dv_i, _dv_c)| if _dv_i == 0 { _dv_c.is_alphabetic() || _dv_c == '_' } else { _dv_c.is_alphanumeric() || _dv_c == '_' }))", nil
	case "isprintable":
		return rust.Method(recv, "chars") + ".all(|_dv_c| !_dv_c.is_control())", nil
	case "center", "ljust", "rjust", "zfill":
		return g.convertPad(recv, m, d, args)
	case "encode":
		return rust.Method(recv, "as_bytes") + ".to_vec()", nil
	case "decode":
		return "String::from_utf8_lossy(&" + recv + ").into_owned()", nil
	case "format":
		return g.convertStrFormat(recv, d, args)
	case "removeprefix":
		if len(args) != 1 {
			return "", diag.Arity("str.removeprefix", "exactly 1", len(args))
		}
		return rust.Method(recv, "strip_prefix", g.borrowKey(d.Args[0], args[0])) +
			".map(str::to_string).unwrap_or_else(|| " + rust.Method(recv, "to_string") + ")", nil
	case "removesuffix":
		if len(args) != 1 {
			return "", diag.Arity("str.removesuffix", "exactly 1", len(args))
		}
		return rust.Method(recv, "strip_suffix", g.borrowKey(d.Args[0], args[0])) +
			".map(str::to_string).unwrap_or_else(|| " + rust.Method(recv, "to_string") + ")", nil
	case "partition", "rpartition":
		return g.convertPartition(recv, m, d, args)
	case "expandtabs":
		width := 8
		if len(args) == 1 {
			if n, ok := intLiteral(d.Args[0]); ok {
				width = int(n)
			}
		}
		return rust.Method(recv, "replace", "'\\t'", rust.StrLit(strings.Repeat(" ", width))), nil
	case "hex":
		g.ctx.Flags.NeedsHex = true
		return "hex::encode(&" + recv + ")", nil
	}
	return "", diag.UnknownMethod("string", m)
}

func (g *Generator) isCharReceiver(e *hir.Expr) bool {
	name, ok := varName(e)
	return ok && g.ctx.CharIterVars[name]
}

func (g *Generator) convertStrip(recv string, d hir.MethodCallData, args []string) (string, error) {
	trim := map[string]string{"strip": "trim", "lstrip": "trim_start", "rstrip": "trim_end"}[d.Method]
	switch len(args) {
	case 0:
		return rust.Method(recv, trim) + ".to_string()", nil
	case 1:
		return rust.Method(recv, trim+"_matches",
			"|_dv_c: char| "+rust.Paren(args[0])+".contains(_dv_c)") + ".to_string()", nil
	}
	return "", diag.Arity("str."+d.Method, "0 or 1", len(args))
}

func (g *Generator) convertSplit(recv string, d hir.MethodCallData, args []string) (string, error) {
	collect := ".map(str::to_string).collect::<Vec<String>>()"
	switch len(args) {
	case 0:
		return rust.Method(recv, "split_whitespace") + collect, nil
	case 1:
		return rust.Method(recv, "split", g.splitPattern(d.Args[0], args[0])) + collect, nil
	case 2:
		n, ok := intLiteral(d.Args[1])
		if !ok {
			return "", diag.New(diag.GenArgShape, "str.%s maxsplit must be an integer literal", d.Method)
		}
		if d.Method == "rsplit" {
			// rsplitn yields segments right to left; Python keeps source
			// order.
			return "{ let mut _dv_parts = " +
				rust.Method(recv, "rsplitn", rust.IntLit(n+1), g.splitPattern(d.Args[0], args[0])) +
				collect + "; _dv_parts.reverse(); _dv_parts }", nil
		}
		return rust.Method(recv, "splitn", rust.IntLit(n+1), g.splitPattern(d.Args[0], args[0])) + collect, nil
	}
	return "", diag.Arity("str."+d.Method, "0 to 2", len(args))
}

// splitPattern prefers a char literal for one-character separators so
// the fast char path is used.
func (g *Generator) splitPattern(e *hir.Expr, code string) string {
	if s, ok := strLiteral(e); ok {
		if r := []rune(s); len(r) == 1 && r[0] != '\'' && r[0] >= ' ' && r[0] < 127 {
			return "'" + string(r) + "'"
		}
		return code
	}
	return g.borrowKey(e, code)
}

func (g *Generator) convertJoin(recv string, d hir.MethodCallData, args []string) (string, error) {
	if len(args) != 1 {
		return "", diag.Arity("str.join", "exactly 1", len(args))
	}
	sep := recv
	if _, ok := strLiteral(d.Object); !ok {
		sep = "&" + rust.Paren(recv)
	}
	elem := g.iterElemType(d.Args[0])
	if elem.Is(types.KindStr) {
		return rust.Method(args[0], "join", sep), nil
	}
	return rust.Method(args[0], "iter") +
		".map(|_dv_x| _dv_x.to_string()).collect::<Vec<String>>().join(" + sep + ")", nil
}

// convertCaseMethod folds literal receivers at compile time and emits
// explicit char loops otherwise.
func (g *Generator) convertCaseMethod(recv, m string, d hir.MethodCallData, args []string) (string, error) {
	if len(args) != 0 {
		return "", diag.Arity("str."+m, "no", len(args))
	}
	if lit, ok := strLiteral(d.Object); ok {
		var folded string
		switch m {
		case "title":
			folded = pyval.Title(lit)
		case "capitalize":
			folded = pyval.Capitalize(lit)
		case "swapcase":
			folded = pyval.Swapcase(lit)
		case "casefold":
			folded = pyval.Casefold(lit)
		}
		return rust.StrLit(folded) + ".to_string()", nil
	}
	switch m {
	case "casefold":
		return rust.Method(recv, "to_lowercase"), nil
	case "capitalize":
		return "{ let mut _dv_cs = " + rust.Method(recv, "chars") +
			"; match _dv_cs.next() { Some(_dv_f) => _dv_f.to_uppercase().collect::<String>() + &_dv_cs.as_str().to_lowercase(), None => String::new() } }", nil
	case "swapcase":
		return rust.Method(recv, "chars") +
			".map(|_dv_c| if _dv_c.is_uppercase() { _dv_c.to_lowercase().to_string() } else { _dv_c.to_uppercase().to_string() }).collect::<String>()", nil
	case "title":
		return rust.Method(recv, "split_whitespace") +
			".map(|_dv_w| { let mut _dv_cs = _dv_w.chars(); match _dv_cs.next() { Some(_dv_f) => _dv_f.to_uppercase().collect::<String>() + &_dv_cs.as_str().to_lowercase(), None => String::new() } }).collect::<Vec<String>>().join(\" \")", nil
	}
	return "", diag.Internal("unreachable case method %s", m)
}

func (g *Generator) convertPad(recv, m string, d hir.MethodCallData, args []string) (string, error) {
	if len(args) < 1 || len(args) > 2 {
		return "", diag.Arity("str."+m, "1 or 2", len(args))
	}
	fill := " "
	if m == "zfill" {
		fill = "0"
	}
	if len(args) == 2 {
		lit, ok := strLiteral(d.Args[1])
		if !ok || len([]rune(lit)) != 1 {
			return "", diag.New(diag.GenArgShape, "str.%s fill must be a one-character literal", m)
		}
		fill = lit
	}
	align := map[string]string{"center": "^", "ljust": "<", "rjust": ">", "zfill": ">"}[m]
	spec := "{:" + escapeFill(fill) + align + "_dv_w$}"
	return "format!(" + rust.StrLit(spec) + ", " + recv + ", _dv_w = " + rust.Paren(args[0]) + " as usize)", nil
}

func escapeFill(fill string) string {
	if fill == "{" || fill == "}" {
		return fill + fill
	}
	return fill
}

func (g *Generator) convertStrFormat(recv string, d hir.MethodCallData, args []string) (string, error) {
	lit, ok := strLiteral(d.Object)
	if !ok {
		return "", diag.Unsupported("str.format on a non-literal template")
	}
	if strings.Contains(lit, "{0") || strings.Contains(lit, "{name") {
		return "", diag.Unsupported("str.format with positional or named fields")
	}
	return "format!(" + rust.StrLit(lit) + ", " + strings.Join(args, ", ") + ")", nil
}

func (g *Generator) convertPartition(recv, m string, d hir.MethodCallData, args []string) (string, error) {
	if len(args) != 1 {
		return "", diag.Arity("str."+m, "exactly 1", len(args))
	}
	find := "find"
	if m == "rpartition" {
		find = "rfind"
	}
	return "{ let _dv_s = " + rust.Method(recv, "to_string") + "; let _dv_sep = " + g.asOwnedString(d.Args[0], args[0]) +
		"; match _dv_s." + find + "(&_dv_sep) { Some(_dv_i) => (_dv_s[.._dv_i].to_string(), _dv_sep.clone(), _dv_s[_dv_i + _dv_sep.len()..].to_string()), None => (_dv_s.clone(), String::new(), String::new()) } }", nil
}
