package hir

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dump writes a readable rendering of the module for debugging and for
// golden assertions in tests.
func Dump(w io.Writer, m *Module) error {
	for _, fn := range m.Functions {
		params := make([]string, len(fn.Params))
		for i, p := range fn.Params {
			params[i] = p.Name + ": " + p.Type.String()
		}
		head := "fn"
		if fn.IsAsync {
			head = "async fn"
		}
		if _, err := fmt.Fprintf(w, "%s %s(%s) -> %s\n", head, fn.Name, strings.Join(params, ", "), fn.Ret.String()); err != nil {
			return err
		}
		for _, e := range fn.Body {
			if _, err := fmt.Fprintf(w, "  %s\n", Sprint(e)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Sprint renders one expression as a compact S-expression.
func Sprint(e *Expr) string {
	if e == nil {
		return "<nil>"
	}
	switch d := e.Data.(type) {
	case LiteralData:
		switch d.Kind {
		case LiteralInt:
			return strconv.FormatInt(d.IntValue, 10)
		case LiteralFloat:
			return strconv.FormatFloat(d.FloatValue, 'g', -1, 64)
		case LiteralString:
			return strconv.Quote(d.StringValue)
		case LiteralBool:
			if d.BoolValue {
				return "True"
			}
			return "False"
		default:
			return "None"
		}
	case VarData:
		return d.Name
	case BinaryData:
		return "(" + d.Op.String() + " " + Sprint(d.Left) + " " + Sprint(d.Right) + ")"
	case UnaryData:
		return "(" + d.Op.String() + " " + Sprint(d.Operand) + ")"
	case CallData:
		return "(call " + d.Func + sprintArgs(d.Args) + ")"
	case MethodCallData:
		return "(method " + Sprint(d.Object) + " " + d.Method + sprintArgs(d.Args) + ")"
	case AttributeData:
		return "(attr " + Sprint(d.Value) + " " + d.Attr + ")"
	case IndexData:
		return "(index " + Sprint(d.Base) + " " + Sprint(d.Index) + ")"
	case SliceData:
		return "(slice " + Sprint(d.Base) + " " + sprintOpt(d.Start) + " " + sprintOpt(d.Stop) + " " + sprintOpt(d.Step) + ")"
	case ListData:
		return "(" + strings.ToLower(e.Kind.String()) + sprintArgs(d.Elems) + ")"
	case DictData:
		var sb strings.Builder
		sb.WriteString("(dict")
		for _, it := range d.Items {
			sb.WriteString(" " + Sprint(it.Key) + ":" + Sprint(it.Value))
		}
		sb.WriteString(")")
		return sb.String()
	case CompData:
		return "(" + strings.ToLower(e.Kind.String()) + " " + Sprint(d.Element) + sprintGens(d.Generators) + ")"
	case DictCompData:
		return "(dictcomp " + Sprint(d.Key) + ":" + Sprint(d.Value) + sprintGens(d.Generators) + ")"
	case FStringData:
		var sb strings.Builder
		sb.WriteString("(fstring")
		for _, p := range d.Parts {
			if p.Expr != nil {
				sb.WriteString(" " + Sprint(p.Expr))
			} else {
				sb.WriteString(" " + strconv.Quote(p.Literal))
			}
		}
		sb.WriteString(")")
		return sb.String()
	case LambdaData:
		return "(lambda (" + strings.Join(d.Params, " ") + ") " + Sprint(d.Body) + ")"
	case IfExprData:
		return "(if " + Sprint(d.Test) + " " + Sprint(d.Body) + " " + Sprint(d.Orelse) + ")"
	case AwaitData:
		return "(await " + Sprint(d.Value) + ")"
	case YieldData:
		if d.Value == nil {
			return "(yield)"
		}
		return "(yield " + Sprint(d.Value) + ")"
	case NamedData:
		return "(walrus " + d.Target + " " + Sprint(d.Value) + ")"
	case BorrowData:
		if d.Mutable {
			return "(&mut " + Sprint(d.Expr) + ")"
		}
		return "(& " + Sprint(d.Expr) + ")"
	case SortByKeyData:
		return "(sort-by-key " + Sprint(d.Iterable) + " (" + strings.Join(d.Params, " ") + ") " + Sprint(d.Body) + ")"
	default:
		return "<" + e.Kind.String() + ">"
	}
}

func sprintArgs(args []*Expr) string {
	var sb strings.Builder
	for _, a := range args {
		sb.WriteString(" " + Sprint(a))
	}
	return sb.String()
}

func sprintOpt(e *Expr) string {
	if e == nil {
		return "_"
	}
	return Sprint(e)
}

func sprintGens(gens []Comprehension) string {
	var sb strings.Builder
	for _, g := range gens {
		sb.WriteString(" (for " + strings.Join(g.Target, ",") + " in " + Sprint(g.Iter))
		for _, c := range g.Conditions {
			sb.WriteString(" if " + Sprint(c))
		}
		sb.WriteString(")")
	}
	return sb.String()
}
