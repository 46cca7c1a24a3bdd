package codegen

import (
	"depyler/internal/diag"
	"depyler/internal/hir"
	"depyler/internal/rust"
)

// convertDequeMethod lowers collections.deque onto VecDeque.
func (g *Generator) convertDequeMethod(recv string, d hir.MethodCallData, args []string) (string, error) {
	g.ctx.Flags.NeedsVecDeque = true
	m := d.Method
	one := func() (string, error) {
		if len(args) != 1 {
			return "", diag.Arity("deque."+m, "exactly 1", len(args))
		}
		return args[0], nil
	}
	switch m {
	case "append":
		a, err := one()
		if err != nil {
			return "", err
		}
		return rust.Method(recv, "push_back", g.asOwnedString(d.Args[0], a)), nil
	case "appendleft":
		a, err := one()
		if err != nil {
			return "", err
		}
		return rust.Method(recv, "push_front", g.asOwnedString(d.Args[0], a)), nil
	case "pop":
		return rust.Method(recv, "pop_back") + ".expect(\"IndexError: pop from an empty deque\")", nil
	case "popleft":
		return rust.Method(recv, "pop_front") + ".expect(\"IndexError: pop from an empty deque\")", nil
	case "extend":
		a, err := one()
		if err != nil {
			return "", err
		}
		return rust.Method(recv, "extend", rust.Method(a, "iter")+".cloned()"), nil
	case "clear":
		return rust.Method(recv, "clear"), nil
	}
	return "", diag.UnknownMethod("deque", m)
}

// convertCounterMethod lowers collections.Counter, represented as a
// HashMap<_, i64>.
func (g *Generator) convertCounterMethod(recv string, d hir.MethodCallData, args []string) (string, error) {
	g.ctx.Flags.NeedsHashMap = true
	switch d.Method {
	case "most_common":
		switch len(args) {
		case 0:
			return "{ let mut _dv_v = " + rust.Method(recv, "iter") +
				".map(|(_dv_k, _dv_v)| (_dv_k.clone(), *_dv_v)).collect::<Vec<_>>(); _dv_v.sort_by(|_dv_a, _dv_b| _dv_b.1.cmp(&_dv_a.1)); _dv_v }", nil
		case 1:
			return "{ let mut _dv_v = " + rust.Method(recv, "iter") +
				".map(|(_dv_k, _dv_v)| (_dv_k.clone(), *_dv_v)).collect::<Vec<_>>(); _dv_v.sort_by(|_dv_a, _dv_b| _dv_b.1.cmp(&_dv_a.1)); _dv_v.truncate(" +
				rust.Paren(args[0]) + " as usize); _dv_v }", nil
		}
		return "", diag.Arity("Counter.most_common", "0 or 1", len(args))
	case "update":
		if len(args) != 1 {
			return "", diag.Arity("Counter.update", "exactly 1", len(args))
		}
		return "for _dv_x in " + rust.Method(args[0], "iter") + " { *" +
			rust.Method(recv, "entry", "_dv_x.clone()") + ".or_insert(0) += 1; }", nil
	case "elements":
		return rust.Method(recv, "iter") +
			".flat_map(|(_dv_k, _dv_n)| std::iter::repeat(_dv_k.clone()).take(*_dv_n as usize)).collect::<Vec<_>>()", nil
	}
	return g.convertDictMethod(recv, d, args)
}

// convertNumpyMethod lowers the handful of array methods the bridge
// lets through; arrays are plain Vec<f64> on the Rust side.
func (g *Generator) convertNumpyMethod(recv string, d hir.MethodCallData, args []string) (string, error) {
	switch d.Method {
	case "sum":
		return rust.Method(recv, "iter") + ".sum::<f64>()", nil
	case "mean":
		return "(" + rust.Method(recv, "iter") + ".sum::<f64>() / " + rust.Method(recv, "len") + " as f64)", nil
	case "min":
		return rust.Method(recv, "iter") +
			".cloned().fold(f64::INFINITY, f64::min)", nil
	case "max":
		return rust.Method(recv, "iter") +
			".cloned().fold(f64::NEG_INFINITY, f64::max)", nil
	case "tolist":
		return rust.Method(recv, "to_vec"), nil
	}
	_ = args
	return "", diag.UnknownMethod("array", d.Method)
}

// convertValueMethod lowers method calls whose receiver is the runtime
// fallback type; all of these exist on DepylerValue itself.
func (g *Generator) convertValueMethod(recv string, d hir.MethodCallData, args []string) (string, error) {
	g.ctx.Flags.NeedsDepylerValue = true
	m := d.Method
	switch m {
	case "get":
		switch len(args) {
		case 1:
			return rust.Method(recv, "get", "&"+g.valueArg(d.Args[0], args[0])), nil
		case 2:
			return rust.Method(recv, "get", "&"+g.valueArg(d.Args[0], args[0])) +
				".unwrap_or(" + g.valueArg(d.Args[1], args[1]) + ")", nil
		}
		return "", diag.Arity("get", "1 or 2", len(args))
	case "keys", "values", "items":
		return rust.Method(recv, m), nil
	case "append":
		if len(args) != 1 {
			return "", diag.Arity("append", "exactly 1", len(args))
		}
		return rust.Method(recv, "append", g.valueArg(d.Args[0], args[0])), nil
	case "upper", "lower", "strip":
		// String methods round-trip through the concrete string form.
		return rust.Method(rust.Method(recv, "to_str"), strMethodName(m)) + ".to_string()", nil
	}
	return g.genericMethodCall(recv, d)
}

func strMethodName(m string) string {
	switch m {
	case "upper":
		return "to_uppercase"
	case "lower":
		return "to_lowercase"
	default:
		return "trim"
	}
}

// convertCSVWriterMethod lowers csv.writer calls onto the csv crate.
func (g *Generator) convertCSVWriterMethod(d hir.MethodCallData) (string, error) {
	recv, err := g.ConvertExpression(d.Object)
	if err != nil {
		return "", err
	}
	args, err := g.convertAll(d.Args)
	if err != nil {
		return "", err
	}
	g.ctx.Flags.NeedsCsv = true
	switch d.Method {
	case "writerow":
		if len(args) != 1 {
			return "", diag.Arity("writer.writerow", "exactly 1", len(args))
		}
		return rust.Method(recv, "write_record", "&"+rust.Paren(args[0])) +
			".expect(\"IOError: csv write failed\")", nil
	case "writerows":
		if len(args) != 1 {
			return "", diag.Arity("writer.writerows", "exactly 1", len(args))
		}
		return "for _dv_row in " + rust.Method(args[0], "iter") + " { " +
			rust.Method(recv, "write_record", "_dv_row") + ".expect(\"IOError: csv write failed\"); }", nil
	}
	return "", diag.UnknownMethod("csv writer", d.Method)
}

// convertHasherMethod lowers hashlib hashers onto the digest crate.
// Dict/set update calls never reach here: the router filters collection
// receivers first.
func (g *Generator) convertHasherMethod(d hir.MethodCallData) (string, error) {
	recv, err := g.ConvertExpression(d.Object)
	if err != nil {
		return "", err
	}
	args, err := g.convertAll(d.Args)
	if err != nil {
		return "", err
	}
	g.ctx.Flags.NeedsDigest = true
	switch d.Method {
	case "update":
		if len(args) != 1 {
			return "", diag.Arity("hasher.update", "exactly 1", len(args))
		}
		return "digest::DynDigest::update(&mut " + recv + ", &" + rust.Paren(args[0]) + ")", nil
	case "hexdigest":
		g.ctx.Flags.NeedsHex = true
		return "hex::encode(" + rust.Method(recv, "finalize_reset") + ")", nil
	case "digest":
		return rust.Method(recv, "finalize_reset") + ".to_vec()", nil
	}
	return "", diag.UnknownMethod("hasher", d.Method)
}
