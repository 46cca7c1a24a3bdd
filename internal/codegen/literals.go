package codegen

import (
	"strings"

	"depyler/internal/hir"
	"depyler/internal/rust"
	"depyler/internal/types"
)

// elemLabel classifies one collection element for heterogeneity
// detection. Complex expressions with no type evidence count as their
// own kind so that [1, f()] takes the tagged-value path.
func (g *Generator) elemLabel(e *hir.Expr) string {
	if isNoneLiteral(e) {
		return "none"
	}
	t := g.typeOf(e)
	switch t.Kind {
	case types.KindInt:
		return "int"
	case types.KindFloat:
		return "float"
	case types.KindStr:
		return "str"
	case types.KindBool:
		return "bool"
	case types.KindList:
		return "list:" + g.elemLabelOfType(t.Elem)
	case types.KindDict:
		return "dict"
	}
	switch e.Data.(type) {
	case hir.CallData, hir.MethodCallData, hir.AttributeData:
		return "dyn"
	}
	return "dyn"
}

func (g *Generator) elemLabelOfType(t *types.Type) string {
	if t.IsUnknown() {
		return "dyn"
	}
	return t.Kind.String()
}

// heterogeneous reports whether the elements span two or more distinct
// kinds (None excluded: it triggers Option wrapping, not tagging).
func (g *Generator) heterogeneous(elems []*hir.Expr) bool {
	kinds := map[string]bool{}
	for _, e := range elems {
		label := g.elemLabel(e)
		if label == "none" {
			continue
		}
		kinds[label] = true
	}
	return len(kinds) >= 2
}

func (g *Generator) convertListLiteral(elems []*hir.Expr) (string, error) {
	if len(elems) == 0 {
		return "vec![]", nil
	}
	hasNone := false
	hasStrVar := false
	for _, e := range elems {
		if isNoneLiteral(e) {
			hasNone = true
		}
		if _, lit := strLiteral(e); !lit && g.typeOf(e).Is(types.KindStr) {
			hasStrVar = true
		}
	}

	if g.heterogeneous(elems) {
		parts := make([]string, len(elems))
		for i, e := range elems {
			code, err := g.ConvertExpression(e)
			if err != nil {
				return "", err
			}
			if g.ctx.StrictMode {
				parts[i] = "format!(\"{:?}\", " + code + ")"
			} else {
				g.ctx.Flags.NeedsSerdeJson = true
				parts[i] = "json!(" + code + ")"
			}
		}
		return "vec![" + strings.Join(parts, ", ") + "]", nil
	}

	elemType := g.listElemType(elems)
	parts := make([]string, len(elems))
	for i, e := range elems {
		code, err := g.ConvertExpression(e)
		if err != nil {
			return "", err
		}
		if hasNone {
			if isNoneLiteral(e) {
				parts[i] = "None"
				continue
			}
			code = g.maybeOwnString(e, code, elemType, hasStrVar)
			parts[i] = "Some(" + code + ")"
			continue
		}
		if elemType.IsUnknown() && g.typeOf(e).IsUnknown() {
			// No element evidence at all: tagged fallback keeps Python
			// semantics.
			code = g.valueArg(e, code)
		} else {
			code = g.maybeOwnString(e, code, elemType, hasStrVar)
		}
		parts[i] = code
	}
	return "vec![" + strings.Join(parts, ", ") + "]", nil
}

// maybeOwnString converts string literals to owned Strings when the
// list mixes literals with String-typed expressions or the target
// element type is String.
func (g *Generator) maybeOwnString(e *hir.Expr, code string, elemType *types.Type, hasStrVar bool) string {
	if _, lit := strLiteral(e); !lit {
		return code
	}
	if hasStrVar || (elemType.Is(types.KindStr) && g.assignWantsOwnedStrings()) {
		return code + ".to_string()"
	}
	return code
}

func (g *Generator) assignWantsOwnedStrings() bool {
	t := g.ctx.CurrentAssignType
	if t == nil {
		t = g.ctx.CurrentReturnType
	}
	if t == nil {
		return false
	}
	switch t.Kind {
	case types.KindList, types.KindSet, types.KindFrozenSet:
		return t.Elem.Is(types.KindStr)
	}
	return false
}

func (g *Generator) listElemType(elems []*hir.Expr) *types.Type {
	elem := types.Unknown()
	for i, e := range elems {
		if isNoneLiteral(e) {
			continue
		}
		t := g.typeOf(e)
		if i == 0 || elem.IsUnknown() {
			elem = t
		} else {
			elem = types.Unify(elem, t)
		}
	}
	return elem
}

func (g *Generator) convertDictLiteral(items []hir.DictItem) (string, error) {
	if len(items) == 0 {
		g.ctx.Flags.NeedsHashMap = true
		return "HashMap::new()", nil
	}

	keys := make([]*hir.Expr, len(items))
	values := make([]*hir.Expr, len(items))
	for i, it := range items {
		keys[i] = it.Key
		values[i] = it.Value
	}
	nonStringKeys := false
	nestedDict := false
	for _, it := range items {
		if !g.typeOf(it.Key).Is(types.KindStr) {
			nonStringKeys = true
		}
		if it.Value.Kind == hir.ExprDict {
			nestedDict = true
		}
	}
	hetero := g.heterogeneous(values)

	// Strict mode with mixed shapes or non-string keys: the tagged
	// runtime map is the only stdlib-only representation left.
	if g.ctx.StrictMode && (hetero || nonStringKeys || g.bareDict()) {
		return g.buildDepylerValueMap(items)
	}

	// Nested dict inside a json! literal keeps the whole tree in json.
	if g.ctx.InJSONContext {
		return g.buildJSONObject(items)
	}

	if hetero || nestedDict || g.dictWantsJSONValues() {
		return g.buildJSONValueMap(items)
	}

	return g.buildHomogeneousMap(items)
}

func (g *Generator) bareDict() bool {
	t := g.ctx.CurrentAssignType
	if t == nil {
		t = g.ctx.CurrentReturnType
	}
	return t.Is(types.KindDict) && t.Key.IsUnknown() && t.Value.IsUnknown()
}

func (g *Generator) dictWantsJSONValues() bool {
	t := g.ctx.CurrentAssignType
	if t == nil {
		t = g.ctx.CurrentReturnType
	}
	return t.Is(types.KindDict) && t.Key.Is(types.KindStr) && t.Value.IsUnknown()
}

func (g *Generator) buildDepylerValueMap(items []hir.DictItem) (string, error) {
	g.ctx.Flags.NeedsHashMap = true
	g.ctx.Flags.NeedsDepylerValue = true
	stmts := []string{"let mut map = HashMap::new()"}
	for _, it := range items {
		k, err := g.ConvertExpression(it.Key)
		if err != nil {
			return "", err
		}
		v, err := g.ConvertExpression(it.Value)
		if err != nil {
			return "", err
		}
		stmts = append(stmts, "map.insert("+g.valueArg(it.Key, k)+", "+g.valueArg(it.Value, v)+")")
	}
	return rust.Block(stmts, "map"), nil
}

func (g *Generator) buildJSONObject(items []hir.DictItem) (string, error) {
	g.ctx.Flags.NeedsSerdeJson = true
	restore := g.ctx.setJSONContext(true)
	defer restore()
	parts := make([]string, len(items))
	for i, it := range items {
		k, err := g.ConvertExpression(it.Key)
		if err != nil {
			return "", err
		}
		v, err := g.ConvertExpression(it.Value)
		if err != nil {
			return "", err
		}
		parts[i] = k + ": " + v
	}
	return "serde_json::json!({" + strings.Join(parts, ", ") + "})", nil
}

func (g *Generator) buildJSONValueMap(items []hir.DictItem) (string, error) {
	g.ctx.Flags.NeedsHashMap = true
	g.ctx.Flags.NeedsSerdeJson = true
	stmts := []string{"let mut map = HashMap::new()"}
	for _, it := range items {
		k, err := g.ConvertExpression(it.Key)
		if err != nil {
			return "", err
		}
		restore := g.ctx.setJSONContext(true)
		v, err := g.ConvertExpression(it.Value)
		restore()
		if err != nil {
			return "", err
		}
		key := k
		if _, lit := strLiteral(it.Key); lit {
			key = k + ".to_string()"
		} else if g.typeOf(it.Key).Is(types.KindStr) {
			key = rust.Paren(k) + ".to_string()"
		}
		val := v
		if it.Value.Kind != hir.ExprDict {
			val = "json!(" + v + ")"
		}
		stmts = append(stmts, "map.insert("+key+", "+val+")")
	}
	return rust.Block(stmts, "map"), nil
}

func (g *Generator) buildHomogeneousMap(items []hir.DictItem) (string, error) {
	g.ctx.Flags.NeedsHashMap = true
	stmts := []string{"let mut map = HashMap::new()"}
	for _, it := range items {
		k, err := g.ConvertExpression(it.Key)
		if err != nil {
			return "", err
		}
		v, err := g.ConvertExpression(it.Value)
		if err != nil {
			return "", err
		}
		if _, lit := strLiteral(it.Key); lit {
			k += ".to_string()"
		}
		if _, lit := strLiteral(it.Value); lit {
			v += ".to_string()"
		}
		stmts = append(stmts, "map.insert("+k+", "+v+")")
	}
	return rust.Block(stmts, "map"), nil
}

func (g *Generator) convertSetLiteral(elems []*hir.Expr, frozen bool) (string, error) {
	g.ctx.Flags.NeedsHashSet = true
	if frozen {
		g.ctx.Flags.NeedsArc = true
	}
	if len(elems) == 0 {
		if frozen {
			return "Arc::new(HashSet::new())", nil
		}
		return "HashSet::new()", nil
	}
	hasNone := false
	for _, e := range elems {
		if isNoneLiteral(e) {
			hasNone = true
		}
	}
	elemType := g.listElemType(elems)
	parts := make([]string, len(elems))
	for i, e := range elems {
		code, err := g.ConvertExpression(e)
		if err != nil {
			return "", err
		}
		if _, lit := strLiteral(e); lit && elemType.Is(types.KindStr) {
			code += ".to_string()"
		}
		if hasNone {
			if isNoneLiteral(e) {
				code = "None"
			} else {
				code = "Some(" + code + ")"
			}
		}
		parts[i] = code
	}
	inner := "HashSet::from([" + strings.Join(parts, ", ") + "])"
	if frozen {
		return "Arc::new(" + inner + ")", nil
	}
	return inner, nil
}

func (g *Generator) convertTupleLiteral(elems []*hir.Expr) (string, error) {
	parts := make([]string, len(elems))
	for i, e := range elems {
		code, err := g.ConvertExpression(e)
		if err != nil {
			return "", err
		}
		// Owned strings keep tuples storable inside Vec-compatible
		// types.
		if _, lit := strLiteral(e); lit {
			code += ".to_string()"
		}
		parts[i] = code
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)", nil
	}
	return "(" + strings.Join(parts, ", ") + ")", nil
}
