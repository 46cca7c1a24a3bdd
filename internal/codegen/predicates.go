package codegen

import (
	"strings"

	"depyler/internal/hir"
	"depyler/internal/types"
)

// Method-name whitelists used both for receiver classification and for
// result typing. Keep these sorted roughly by how often Python code
// uses them.

var strReturningMethods = map[string]bool{
	"upper": true, "lower": true, "strip": true, "lstrip": true,
	"rstrip": true, "replace": true, "join": true, "format": true,
	"title": true, "capitalize": true, "swapcase": true, "casefold": true,
	"center": true, "ljust": true, "rjust": true, "zfill": true,
	"removeprefix": true, "removesuffix": true, "expandtabs": true,
}

var strPredicateMethods = map[string]bool{
	"isdigit": true, "isalpha": true, "isalnum": true, "isspace": true,
	"isupper": true, "islower": true, "istitle": true, "isnumeric": true,
	"isascii": true, "isdecimal": true, "isidentifier": true,
	"isprintable": true, "startswith": true, "endswith": true,
}

var strOnlyMethods = map[string]bool{
	"split": true, "rsplit": true, "splitlines": true, "encode": true,
	"decode": true, "find": true, "rfind": true, "rindex": true,
	"partition": true, "rpartition": true,
}

var dictOnlyMethods = map[string]bool{
	"keys": true, "values": true, "items": true, "setdefault": true,
	"fromkeys": true,
}

var setOnlyMethods = map[string]bool{
	"add": true, "discard": true, "intersection": true, "union": true,
	"difference": true, "symmetric_difference": true, "issubset": true,
	"issuperset": true, "isdisjoint": true,
}

// Identifier-name heuristics, the predicates of last resort.

var stringishNames = map[string]bool{
	"name": true, "key": true, "text": true, "word": true, "s": true,
	"msg": true, "message": true, "line": true, "path": true,
	"prefix": true, "suffix": true, "label": true, "title": true,
	"url": true, "token": true, "char": true, "ch": true,
}

var dictKeyNames = map[string]bool{
	"key": true, "k": true, "name": true, "id": true, "field": true,
	"attr": true, "prop": true,
}

func looksLikeString(name string) bool {
	lower := strings.ToLower(name)
	if stringishNames[lower] {
		return true
	}
	return strings.HasSuffix(lower, "_name") || strings.HasSuffix(lower, "_str") ||
		strings.HasSuffix(lower, "_text") || strings.HasSuffix(lower, "_key")
}

func looksLikeDictKey(name string) bool {
	lower := strings.ToLower(name)
	return dictKeyNames[lower] || strings.HasSuffix(lower, "_key") || strings.HasSuffix(lower, "_id")
}

// typeOf reconstructs the best-evidence type of an expression. The
// explicit annotation wins; then tracking tables, literal shape, and
// method/call whitelists. Returns Unknown when no evidence is found.
func (g *Generator) typeOf(e *hir.Expr) *types.Type {
	if e == nil {
		return types.Unknown()
	}
	if e.Type != nil && !e.Type.IsUnknown() {
		return e.Type
	}
	switch d := e.Data.(type) {
	case hir.LiteralData:
		switch d.Kind {
		case hir.LiteralInt:
			return types.Int()
		case hir.LiteralFloat:
			return types.Float()
		case hir.LiteralString:
			return types.Str()
		case hir.LiteralBool:
			return types.Bool()
		default:
			return types.None()
		}
	case hir.VarData:
		if g.ctx.CharIterVars[d.Name] {
			return types.Str()
		}
		if g.ctx.FnStrParams[d.Name] {
			return types.Str()
		}
		if t := g.ctx.VarType(d.Name); t != nil {
			return t
		}
		return types.Unknown()
	case hir.BinaryData:
		if d.Op.IsComparison() {
			return types.Bool()
		}
		if d.Op == hir.OpAnd || d.Op == hir.OpOr {
			return g.typeOf(d.Left)
		}
		if d.Op == hir.OpDiv {
			return types.Float()
		}
		lt, rt := g.typeOf(d.Left), g.typeOf(d.Right)
		if lt.Is(types.KindStr) || rt.Is(types.KindStr) {
			if d.Op == hir.OpAdd || d.Op == hir.OpMul || d.Op == hir.OpMod {
				return types.Str()
			}
		}
		if lt.Is(types.KindList) && d.Op == hir.OpAdd {
			return lt
		}
		if lt.Is(types.KindSet) || lt.Is(types.KindFrozenSet) {
			return lt
		}
		return types.Unify(lt, rt)
	case hir.UnaryData:
		if d.Op == hir.OpNot {
			return types.Bool()
		}
		return g.typeOf(d.Operand)
	case hir.ListData:
		elem := types.Unknown()
		for i, el := range d.Elems {
			t := g.typeOf(el)
			if i == 0 {
				elem = t
			} else {
				elem = types.Unify(elem, t)
			}
		}
		switch e.Kind {
		case hir.ExprSet:
			return types.SetOf(elem)
		case hir.ExprFrozenSet:
			return types.FrozenSetOf(elem)
		case hir.ExprTuple:
			elems := make([]*types.Type, len(d.Elems))
			for i, el := range d.Elems {
				elems[i] = g.typeOf(el)
			}
			return types.TupleOf(elems...)
		default:
			return types.ListOf(elem)
		}
	case hir.DictData:
		key, val := types.Unknown(), types.Unknown()
		for i, it := range d.Items {
			kt, vt := g.typeOf(it.Key), g.typeOf(it.Value)
			if i == 0 {
				key, val = kt, vt
			} else {
				key, val = types.Unify(key, kt), types.Unify(val, vt)
			}
		}
		return types.DictOf(key, val)
	case hir.IndexData:
		return g.indexResultType(d)
	case hir.SliceData:
		return g.typeOf(d.Base)
	case hir.MethodCallData:
		return g.methodResultType(d)
	case hir.CallData:
		return g.callResultType(d)
	case hir.AttributeData:
		if t, ok := g.ctx.ClassFieldTypes[d.Attr]; ok {
			return t
		}
		if v, ok := d.Value.Data.(hir.VarData); ok {
			if t, ok := g.ctx.ClassFieldTypes[v.Name+"."+d.Attr]; ok {
				return t
			}
		}
		return types.Unknown()
	case hir.IfExprData:
		return types.Unify(g.typeOf(d.Body), g.typeOf(d.Orelse))
	case hir.NamedData:
		return g.typeOf(d.Value)
	case hir.FStringData:
		return types.Str()
	case hir.CompData:
		elem := g.compElementType(d)
		switch e.Kind {
		case hir.ExprSetComp:
			return types.SetOf(elem)
		case hir.ExprGeneratorExp:
			return types.ListOf(elem)
		default:
			return types.ListOf(elem)
		}
	case hir.DictCompData:
		return types.DictOf(types.Unknown(), types.Unknown())
	case hir.AwaitData:
		return g.typeOf(d.Value)
	case hir.BorrowData:
		return g.typeOf(d.Expr)
	case hir.SortByKeyData:
		return g.typeOf(d.Iterable)
	default:
		return types.Unknown()
	}
}

func (g *Generator) compElementType(d hir.CompData) *types.Type {
	if len(d.Generators) == 0 {
		return types.Unknown()
	}
	gen := d.Generators[0]
	var undo []func()
	for _, name := range gen.Target {
		undo = append(undo, g.ctx.bindVar(name, g.iterElemType(gen.Iter)))
	}
	t := g.typeOf(d.Element)
	for i := len(undo) - 1; i >= 0; i-- {
		undo[i]()
	}
	return t
}

// iterElemType answers "what does one step of iterating e yield?".
func (g *Generator) iterElemType(e *hir.Expr) *types.Type {
	t := g.typeOf(e)
	switch t.Kind {
	case types.KindList, types.KindSet, types.KindFrozenSet:
		return t.Elem
	case types.KindDict:
		return t.Key
	case types.KindStr:
		return types.Str()
	case types.KindTuple:
		elem := types.Unknown()
		for i, el := range t.Elems {
			if i == 0 {
				elem = el
			} else {
				elem = types.Unify(elem, el)
			}
		}
		return elem
	}
	if c, ok := e.Data.(hir.CallData); ok {
		switch c.Func {
		case "range":
			return types.Int()
		case "enumerate":
			inner := types.Unknown()
			if len(c.Args) > 0 {
				inner = g.iterElemType(c.Args[0])
			}
			return types.TupleOf(types.Int(), inner)
		}
	}
	return types.Unknown()
}

func (g *Generator) indexResultType(d hir.IndexData) *types.Type {
	base := g.typeOf(d.Base)
	switch base.Kind {
	case types.KindList:
		return base.Elem
	case types.KindDict:
		return base.Value
	case types.KindStr:
		return types.Str()
	case types.KindTuple:
		if lit, ok := intLiteral(d.Index); ok && lit >= 0 && int(lit) < len(base.Elems) {
			return base.Elems[lit]
		}
	}
	return types.Unknown()
}

func (g *Generator) methodResultType(d hir.MethodCallData) *types.Type {
	m := d.Method
	switch {
	case strReturningMethods[m]:
		return types.Str()
	case strPredicateMethods[m]:
		return types.Bool()
	case m == "split" || m == "rsplit" || m == "splitlines":
		return types.ListOf(types.Str())
	case m == "find" || m == "rfind" || m == "rindex" || m == "count" || m == "index":
		return types.Int()
	case m == "get":
		bt := g.typeOf(d.Object)
		if bt.Is(types.KindDict) {
			if len(d.Args) >= 2 {
				return bt.Value
			}
			return types.OptionalOf(bt.Value)
		}
	case m == "keys":
		if bt := g.typeOf(d.Object); bt.Is(types.KindDict) {
			return types.ListOf(bt.Key)
		}
	case m == "values":
		if bt := g.typeOf(d.Object); bt.Is(types.KindDict) {
			return types.ListOf(bt.Value)
		}
	case m == "items":
		if bt := g.typeOf(d.Object); bt.Is(types.KindDict) {
			return types.ListOf(types.TupleOf(bt.Key, bt.Value))
		}
	case m == "pop":
		bt := g.typeOf(d.Object)
		switch bt.Kind {
		case types.KindList, types.KindSet:
			return bt.Elem
		case types.KindDict:
			return bt.Value
		}
	case m == "copy":
		return g.typeOf(d.Object)
	}
	return types.Unknown()
}

func (g *Generator) callResultType(d hir.CallData) *types.Type {
	switch d.Func {
	case "len", "int", "abs", "ord", "sum":
		return types.Int()
	case "float":
		return types.Float()
	case "str", "repr", "chr", "input":
		return types.Str()
	case "bool":
		return types.Bool()
	case "list", "sorted":
		if len(d.Args) > 0 {
			return types.ListOf(g.iterElemType(d.Args[0]))
		}
		return types.ListOf(types.Unknown())
	case "set":
		if len(d.Args) > 0 {
			return types.SetOf(g.iterElemType(d.Args[0]))
		}
		return types.SetOf(types.Unknown())
	case "dict":
		return types.DictOf(types.Unknown(), types.Unknown())
	case "tuple":
		return types.TupleOf()
	case "range":
		return types.ListOf(types.Int())
	case "min", "max":
		if len(d.Args) == 1 {
			return g.iterElemType(d.Args[0])
		}
		if len(d.Args) > 1 {
			return g.typeOf(d.Args[0])
		}
	}
	if g.ctx.ClassNames[d.Func] {
		return types.Custom(d.Func)
	}
	if t, ok := g.ctx.FunctionReturnTypes[d.Func]; ok {
		return t
	}
	return types.Unknown()
}

// Receiver classification shortcuts.

func (g *Generator) isStr(e *hir.Expr) bool {
	if g.typeOf(e).Is(types.KindStr) {
		return true
	}
	if v, ok := e.Data.(hir.VarData); ok && g.typeOf(e).IsUnknown() {
		return looksLikeString(v.Name)
	}
	return false
}

func (g *Generator) isDict(e *hir.Expr) bool {
	return g.typeOf(e).Is(types.KindDict)
}

func (g *Generator) isList(e *hir.Expr) bool {
	return g.typeOf(e).Is(types.KindList)
}

func (g *Generator) isSet(e *hir.Expr) bool {
	t := g.typeOf(e)
	return t.Is(types.KindSet) || t.Is(types.KindFrozenSet)
}

func (g *Generator) isTuple(e *hir.Expr) bool {
	return g.typeOf(e).Is(types.KindTuple)
}

func (g *Generator) isNumpy(e *hir.Expr) bool {
	v, ok := e.Data.(hir.VarData)
	return ok && g.ctx.NumpyVars[v.Name]
}

// isDepylerValue reports whether the expression lowers to the runtime
// fallback type.
func (g *Generator) isDepylerValue(e *hir.Expr) bool {
	t := g.typeOf(e)
	if !t.IsUnknown() {
		return false
	}
	switch e.Data.(type) {
	case hir.VarData, hir.IndexData, hir.AttributeData:
		return true
	}
	return false
}

// isResultCall reports whether the expression is a call into a
// Result-returning function.
func (g *Generator) isResultCall(e *hir.Expr) bool {
	c, ok := e.Data.(hir.CallData)
	return ok && g.ctx.ResultReturningFunctions[c.Func]
}

func (g *Generator) isOptionCall(e *hir.Expr) bool {
	c, ok := e.Data.(hir.CallData)
	return ok && g.ctx.OptionReturningFunctions[c.Func]
}

// isClassInstance reports whether e is an instance of a user-defined
// class, returning the class name.
func (g *Generator) isClassInstance(e *hir.Expr) (string, bool) {
	t := g.typeOf(e)
	if t.Is(types.KindCustom) && g.ctx.ClassNames[t.Name] {
		return t.Name, true
	}
	return "", false
}

func intLiteral(e *hir.Expr) (int64, bool) {
	if e == nil {
		return 0, false
	}
	if d, ok := e.Data.(hir.LiteralData); ok && d.Kind == hir.LiteralInt {
		return d.IntValue, true
	}
	if u, ok := e.Data.(hir.UnaryData); ok && u.Op == hir.OpNeg {
		if v, ok := intLiteral(u.Operand); ok {
			return -v, true
		}
	}
	return 0, false
}

func strLiteral(e *hir.Expr) (string, bool) {
	if e == nil {
		return "", false
	}
	d, ok := e.Data.(hir.LiteralData)
	if !ok || d.Kind != hir.LiteralString {
		return "", false
	}
	return d.StringValue, true
}

func isNoneLiteral(e *hir.Expr) bool {
	d, ok := e.Data.(hir.LiteralData)
	return ok && d.Kind == hir.LiteralNone
}

func varName(e *hir.Expr) (string, bool) {
	v, ok := e.Data.(hir.VarData)
	if !ok {
		return "", false
	}
	return v.Name, true
}
