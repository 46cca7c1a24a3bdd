package rust

import (
	"strconv"
	"strings"
)

// IsSimple reports whether code can safely receive a method call or
// field access without wrapping parentheses: a bare identifier, a call
// chain, a literal, or an already-parenthesised expression.
func IsSimple(code string) bool {
	if code == "" {
		return false
	}
	depth := 0
	for i := 0; i < len(code); i++ {
		switch code[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ' ':
			// A top-level space means an operator, cast, or block form.
			if depth == 0 {
				return false
			}
		}
	}
	return true
}

// Paren wraps code in parentheses when it is not simple. Used before
// attaching .method() or field access to an arbitrary subexpression.
func Paren(code string) string {
	if IsSimple(code) {
		return code
	}
	return "(" + code + ")"
}

// Receiver prepares code to be a method-call receiver. Ranges always
// get wrapped: `0..n.iter()` binds the call to `n`, not the range.
func Receiver(code string) string {
	if strings.Contains(code, "..") && !strings.HasPrefix(code, "(") {
		return "(" + code + ")"
	}
	return Paren(code)
}

// IntLit renders an i-suffix-free Rust integer literal. Negative values
// are parenthesised so unary minus does not fuse with a following
// method call.
func IntLit(v int64) string {
	s := strconv.FormatInt(v, 10)
	if v < 0 {
		return "(" + s + ")"
	}
	return s
}

// FloatLit renders a Rust float literal, keeping a trailing ".0" so the
// token stays a float.
func FloatLit(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	if v < 0 {
		return "(" + s + ")"
	}
	return s
}

// Call renders fn(args...).
func Call(fn string, args ...string) string {
	return fn + "(" + strings.Join(args, ", ") + ")"
}

// Method renders recv.method(args...) with receiver wrapping.
func Method(recv, method string, args ...string) string {
	return Receiver(recv) + "." + method + "(" + strings.Join(args, ", ") + ")"
}

// Block renders a { stmts...; tail } expression.
func Block(stmts []string, tail string) string {
	var sb strings.Builder
	sb.WriteString("{ ")
	for _, s := range stmts {
		sb.WriteString(s)
		if !strings.HasSuffix(s, ";") && !strings.HasSuffix(s, "}") {
			sb.WriteString(";")
		}
		sb.WriteString(" ")
	}
	sb.WriteString(tail)
	sb.WriteString(" }")
	return sb.String()
}

// Closure renders |params| body, optionally with move.
func Closure(moveKw bool, params []string, body string) string {
	var sb strings.Builder
	if moveKw {
		sb.WriteString("move ")
	}
	sb.WriteString("|")
	sb.WriteString(strings.Join(params, ", "))
	sb.WriteString("| ")
	sb.WriteString(body)
	return sb.String()
}

// TuplePattern renders a closure pattern for one or more bound names.
func TuplePattern(names []string) string {
	idents := make([]string, len(names))
	for i, n := range names {
		idents[i] = Ident(n)
	}
	if len(idents) == 1 {
		return idents[0]
	}
	return "(" + strings.Join(idents, ", ") + ")"
}
