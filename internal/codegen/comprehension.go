package codegen

import (
	"strings"

	"depyler/internal/diag"
	"depyler/internal/hir"
	"depyler/internal/rust"
	"depyler/internal/types"
)

type collectKind uint8

const (
	collectVec collectKind = iota
	collectSet
	collectMap
	collectNone
)

func (k collectKind) suffix(g *Generator) string {
	switch k {
	case collectVec:
		return ".collect::<Vec<_>>()"
	case collectSet:
		g.ctx.Flags.NeedsHashSet = true
		return ".collect::<HashSet<_>>()"
	case collectMap:
		g.ctx.Flags.NeedsHashMap = true
		return ".collect::<HashMap<_, _>>()"
	default:
		return ""
	}
}

func (g *Generator) convertComprehension(d hir.CompData, kind collectKind) (string, error) {
	if len(d.Generators) == 0 {
		return "", diag.Internal("comprehension has no generators")
	}
	chain, err := g.lowerGenerators(d.Generators, 0, func() (string, bool, error) {
		code, err := g.ConvertExpression(d.Element)
		if err != nil {
			return "", false, err
		}
		identity := false
		if v, ok := varName(d.Element); ok {
			last := d.Generators[len(d.Generators)-1]
			identity = len(last.Target) == 1 && last.Target[0] == v
		}
		return code, identity, nil
	})
	if err != nil {
		return "", err
	}
	return chain + kind.suffix(g), nil
}

func (g *Generator) convertDictComp(d hir.DictCompData) (string, error) {
	if len(d.Generators) == 0 {
		return "", diag.Internal("dict comprehension has no generators")
	}
	chain, err := g.lowerGenerators(d.Generators, 0, func() (string, bool, error) {
		// Value first, key second: the value expression usually
		// references the key variable, so binding the key first would
		// move it out from under the value computation.
		value, err := g.ConvertExpression(d.Value)
		if err != nil {
			return "", false, err
		}
		key, err := g.ConvertExpression(d.Key)
		if err != nil {
			return "", false, err
		}
		body := "{ let _dv_value = " + value + "; let _dv_key = " + key + "; (_dv_key, _dv_value) }"
		return body, false, nil
	})
	if err != nil {
		return "", err
	}
	return chain + collectMap.suffix(g), nil
}

// lowerGenerators lowers generators[idx:] into an iterator chain. The
// innermost level maps to the element produced by makeElement; outer
// levels flat_map into the next generator.
func (g *Generator) lowerGenerators(gens []hir.Comprehension, idx int, makeElement func() (string, bool, error)) (string, error) {
	gen := gens[idx]
	src, elemType, isChar, err := g.iterSource(gen.Iter)
	if err != nil {
		return "", err
	}

	// Bind the comprehension target so conditions and the element see
	// the right numeric/string forms; undone on all exit paths.
	var undo []func()
	defer func() {
		for i := len(undo) - 1; i >= 0; i-- {
			undo[i]()
		}
	}()
	if len(gen.Target) == 1 {
		undo = append(undo, g.ctx.bindVar(gen.Target[0], elemType))
		if isChar {
			undo = append(undo, g.ctx.bindCharVar(gen.Target[0]))
		}
	} else {
		for i, name := range gen.Target {
			t := types.Unknown()
			if elemType.Is(types.KindTuple) && i < len(elemType.Elems) {
				t = elemType.Elems[i]
			}
			undo = append(undo, g.ctx.bindVar(name, t))
		}
	}

	pattern := rust.TuplePattern(gen.Target)
	moveKw := g.ctx.ReturnsImplIterator || idx > 0
	innermost := idx == len(gens)-1

	// A walrus in a filter whose binding feeds the element merges the
	// filter and map into one filter_map.
	if innermost {
		if code, ok, err := g.tryWalrusFilterMap(gen, pattern, moveKw, src, makeElement); ok || err != nil {
			return code, err
		}
	}

	chain := src
	for _, cond := range gen.Conditions {
		filterPat := pattern
		wrapLet := false
		if len(gen.Target) == 1 && elemType.IsNumeric() {
			filterPat = "&" + pattern
			wrapLet = true
		}
		condCode, err := g.ConvertExpression(cond)
		if err != nil {
			return "", err
		}
		body := g.truthyCond(cond, condCode)
		if wrapLet {
			body = "{ let " + pattern + " = " + pattern + "; " + body + " }"
		}
		chain += ".filter(" + rust.Closure(moveKw, []string{filterPat}, body) + ")"
	}

	if innermost {
		element, identity, err := makeElement()
		if err != nil {
			return "", err
		}
		if identity {
			return chain, nil
		}
		return chain + ".map(" + rust.Closure(moveKw, []string{pattern}, element) + ")", nil
	}

	inner, err := g.lowerGenerators(gens, idx+1, makeElement)
	if err != nil {
		return "", err
	}
	return chain + ".flat_map(" + rust.Closure(true, []string{pattern}, inner) + ")", nil
}

func (g *Generator) tryWalrusFilterMap(gen hir.Comprehension, pattern string, moveKw bool, src string, makeElement func() (string, bool, error)) (string, bool, error) {
	for i, cond := range gen.Conditions {
		target, walrusValue, ok := findWalrus(cond)
		if !ok {
			continue
		}
		element, _, err := makeElement()
		if err != nil {
			return "", true, err
		}
		elementUses := strings.Contains(element, rust.Ident(target))
		if !elementUses {
			continue
		}
		valueCode, err := g.ConvertExpression(walrusValue)
		if err != nil {
			return "", true, err
		}
		undo := g.ctx.bindVar(target, g.typeOf(walrusValue))
		condCode, err := g.walrusStripped(cond, target)
		undo()
		if err != nil {
			return "", true, err
		}
		// Remaining conditions stay ordinary filters before the merge.
		var prefix string
		for j, other := range gen.Conditions {
			if j == i {
				continue
			}
			otherCode, err := g.ConvertExpression(other)
			if err != nil {
				return "", true, err
			}
			prefix += ".filter(" + rust.Closure(moveKw, []string{pattern}, g.truthyCond(other, otherCode)) + ")"
		}
		body := "{ let " + rust.Ident(target) + " = " + valueCode + "; " +
			"if " + condCode + " { Some(" + element + ") } else { None } }"
		return src + prefix + ".filter_map(" + rust.Closure(moveKw, []string{pattern}, body) + ")", true, nil
	}
	return "", false, nil
}

// walrusStripped lowers cond with the walrus node replaced by a plain
// reference to its target (the let binding above supplies the value).
func (g *Generator) walrusStripped(cond *hir.Expr, target string) (string, error) {
	replaced := substituteWalrus(cond, target)
	code, err := g.ConvertExpression(replaced)
	if err != nil {
		return "", err
	}
	return g.truthyCond(replaced, code), nil
}

// substituteWalrus returns a shallow rewrite of e with the first walrus
// binding of target replaced by Var(target).
func substituteWalrus(e *hir.Expr, target string) *hir.Expr {
	if e == nil {
		return nil
	}
	if n, ok := e.Data.(hir.NamedData); ok && n.Target == target {
		return hir.TypedVar(target, e.Type)
	}
	out := *e
	switch d := e.Data.(type) {
	case hir.BinaryData:
		d.Left = substituteWalrus(d.Left, target)
		d.Right = substituteWalrus(d.Right, target)
		out.Data = d
	case hir.UnaryData:
		d.Operand = substituteWalrus(d.Operand, target)
		out.Data = d
	case hir.CallData:
		args := make([]*hir.Expr, len(d.Args))
		for i, a := range d.Args {
			args[i] = substituteWalrus(a, target)
		}
		d.Args = args
		out.Data = d
	case hir.MethodCallData:
		d.Object = substituteWalrus(d.Object, target)
		args := make([]*hir.Expr, len(d.Args))
		for i, a := range d.Args {
			args[i] = substituteWalrus(a, target)
		}
		d.Args = args
		out.Data = d
	}
	return &out
}

// iterSource selects the iterator form for a generator's iterable,
// returning the chain prefix, the element type, and whether iteration
// yields chars.
func (g *Generator) iterSource(iter *hir.Expr) (string, *types.Type, bool, error) {
	elemType := g.iterElemType(iter)

	// range(...) lowers to a native Rust range, parenthesised so a
	// following method call binds to the range and not its bound.
	if c, ok := iter.Data.(hir.CallData); ok && c.Func == "range" {
		code, err := g.convertRange(c)
		if err != nil {
			return "", nil, false, err
		}
		return code, types.Int(), false, nil
	}

	code, err := g.ConvertExpression(iter)
	if err != nil {
		return "", nil, false, err
	}
	t := g.typeOf(iter)

	if name, ok := varName(iter); ok {
		if g.ctx.NumpyVars[name] {
			return rust.Method(code, "as_slice") + ".iter().cloned()", types.Float(), false, nil
		}
		if t.Is(types.KindCustom) {
			switch {
			case isCSVReaderType(t.Name):
				g.ctx.Flags.NeedsCsv = true
				g.ctx.Flags.NeedsHashMap = true
				return rust.Method(code, "deserialize::<HashMap<String, String>>") + ".filter_map(Result::ok)",
					types.DictOf(types.Str(), types.Str()), false, nil
			case isFileType(t.Name):
				g.ctx.Flags.NeedsBufRead = true
				return "BufReader::new(" + code + ").lines().map(|_dv_line| _dv_line.unwrap_or_default())",
					types.Str(), false, nil
			case isJSONValueType(t.Name):
				g.ctx.Flags.NeedsSerdeJson = true
				return rust.Method(code, "as_array") + ".unwrap_or(&vec![]).iter().cloned()",
					types.Unknown(), false, nil
			}
		}
		if t.Is(types.KindStr) {
			return rust.Method(code, "chars"), types.Str(), true, nil
		}
		// Runtime-fallback values iterate through their IntoIterator
		// impl, which yields items, dict keys, or chars per Python.
		if g.isDepylerValue(iter) {
			g.ctx.Flags.NeedsDepylerValue = true
			return rust.Method(code, "clone") + ".into_iter()", types.Unknown(), false, nil
		}
		return rust.Method(code, "iter") + ".cloned()", elemType, false, nil
	}

	if t.Is(types.KindStr) {
		return rust.Method(code, "chars"), types.Str(), true, nil
	}
	return rust.Receiver(code) + ".into_iter()", elemType, false, nil
}

func isCSVReaderType(name string) bool {
	return name == "csv.DictReader" || name == "DictReader" || name == "csv.reader"
}

func isFileType(name string) bool {
	switch name {
	case "TextIO", "TextIOWrapper", "IO", "file", "File", "BinaryIO":
		return true
	}
	return false
}

func isJSONValueType(name string) bool {
	return name == "Value" || name == "serde_json.Value" || name == "Json"
}
