package codegen

import (
	"depyler/internal/diag"
	"depyler/internal/hir"
	"depyler/internal/rust"
)

// convertDatetimeMethod lowers methods on datetime/date values. The
// chrono forms apply in normal mode; strict mode routes to the bundled
// runtime date types instead.
func (g *Generator) convertDatetimeMethod(d hir.MethodCallData) (string, error) {
	recv, err := g.ConvertExpression(d.Object)
	if err != nil {
		return "", err
	}
	args, err := g.convertAll(d.Args)
	if err != nil {
		return "", err
	}
	if g.ctx.StrictMode {
		g.ctx.Flags.NeedsDepylerDateTime = true
		switch d.Method {
		case "isoformat":
			return rust.Method(recv, "isoformat"), nil
		case "strftime":
			if len(args) != 1 {
				return "", diag.Arity("datetime.strftime", "exactly 1", len(args))
			}
			return rust.Method(recv, "strftime", "&"+rust.Paren(args[0])), nil
		case "timestamp":
			return rust.Method(recv, "timestamp"), nil
		case "date":
			g.ctx.Flags.NeedsDepylerDate = true
			return rust.Method(recv, "date"), nil
		case "weekday":
			return rust.Method(recv, "weekday"), nil
		}
		return "", diag.UnknownMethod("datetime", d.Method)
	}

	g.ctx.Flags.NeedsChrono = true
	switch d.Method {
	case "isoformat":
		return rust.Method(recv, "to_rfc3339"), nil
	case "strftime":
		if len(args) != 1 {
			return "", diag.Arity("datetime.strftime", "exactly 1", len(args))
		}
		return rust.Method(recv, "format", "&"+rust.Paren(args[0])) + ".to_string()", nil
	case "timestamp":
		return rust.Method(recv, "timestamp") + " as f64", nil
	case "date":
		return rust.Method(recv, "date_naive"), nil
	case "weekday":
		return "chrono::Datelike::weekday(&" + recv + ").num_days_from_monday() as i64", nil
	case "year":
		return "chrono::Datelike::year(&" + recv + ") as i64", nil
	case "month":
		return "chrono::Datelike::month(&" + recv + ") as i64", nil
	case "day":
		return "chrono::Datelike::day(&" + recv + ") as i64", nil
	case "total_seconds":
		return rust.Method(recv, "num_seconds") + " as f64", nil
	}
	return "", diag.UnknownMethod("datetime", d.Method)
}
