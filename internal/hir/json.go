package hir

import (
	"encoding/json"
	"fmt"

	"depyler/internal/types"
)

// JSON decoding of bridge output. The bridge serializes each expression
// as a kind-tagged object; types travel as Python annotation strings.

type rawExpr struct {
	Kind   string          `json:"kind"`
	Type   string          `json:"type,omitempty"`
	Value  json.RawMessage `json:"value,omitempty"`
	Name   string          `json:"name,omitempty"`
	Op     string          `json:"op,omitempty"`
	Left   *rawExpr        `json:"left,omitempty"`
	Right  *rawExpr        `json:"right,omitempty"`
	Func   string          `json:"func,omitempty"`
	Args   []*rawExpr      `json:"args,omitempty"`
	Kwargs []rawKeyword    `json:"kwargs,omitempty"`
	Object *rawExpr        `json:"object,omitempty"`
	Method string          `json:"method,omitempty"`
	Attr   string          `json:"attr,omitempty"`
	Base   *rawExpr        `json:"base,omitempty"`
	Index  *rawExpr        `json:"index,omitempty"`
	Start  *rawExpr        `json:"start,omitempty"`
	Stop   *rawExpr        `json:"stop,omitempty"`
	Step   *rawExpr        `json:"step,omitempty"`
	Elems  []*rawExpr      `json:"elems,omitempty"`
	Items  []rawDictItem   `json:"items,omitempty"`
	Elt    *rawExpr        `json:"elt,omitempty"`
	Key    *rawExpr        `json:"key,omitempty"`
	Val    *rawExpr        `json:"val,omitempty"`
	Gens   []rawGenerator  `json:"generators,omitempty"`
	Parts  []rawFPart      `json:"parts,omitempty"`
	Params []string        `json:"params,omitempty"`
	Body   *rawExpr        `json:"body,omitempty"`
	Test   *rawExpr        `json:"test,omitempty"`
	Orelse *rawExpr        `json:"orelse,omitempty"`
	Target string          `json:"target,omitempty"`
	Mut    bool            `json:"mut,omitempty"`
	Rev    bool            `json:"reverse,omitempty"`
	Iter   *rawExpr        `json:"iter,omitempty"`
}

type rawKeyword struct {
	Name  string   `json:"name"`
	Value *rawExpr `json:"value"`
}

type rawDictItem struct {
	Key   *rawExpr `json:"key"`
	Value *rawExpr `json:"value"`
}

type rawGenerator struct {
	Target     []string   `json:"target"`
	Iter       *rawExpr   `json:"iter"`
	Conditions []*rawExpr `json:"conditions,omitempty"`
}

type rawFPart struct {
	Literal string   `json:"literal,omitempty"`
	Expr    *rawExpr `json:"expr,omitempty"`
}

var binOpNames = map[string]BinOp{
	"+": OpAdd, "-": OpSub, "*": OpMul, "/": OpDiv, "//": OpFloorDiv,
	"%": OpMod, "**": OpPow, "==": OpEq, "!=": OpNotEq, "<": OpLt,
	"<=": OpLtEq, ">": OpGt, ">=": OpGtEq, "and": OpAnd, "or": OpOr,
	"&": OpBitAnd, "|": OpBitOr, "^": OpBitXor, "<<": OpLShift,
	">>": OpRShift, "in": OpIn, "not in": OpNotIn, "is": OpIs,
	"is not": OpIsNot,
}

var unaryOpNames = map[string]UnaryOp{
	"-": OpNeg, "not": OpNot, "+": OpPos, "~": OpBitNot,
}

// UnmarshalJSON decodes a kind-tagged expression object.
func (e *Expr) UnmarshalJSON(data []byte) error {
	var raw rawExpr
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoded, err := raw.decode()
	if err != nil {
		return err
	}
	*e = *decoded
	return nil
}

func decodeOpt(r *rawExpr) (*Expr, error) {
	if r == nil {
		return nil, nil
	}
	return r.decode()
}

func decodeList(rs []*rawExpr) ([]*Expr, error) {
	out := make([]*Expr, 0, len(rs))
	for _, r := range rs {
		e, err := r.decode()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *rawExpr) decode() (*Expr, error) {
	if r == nil {
		return nil, fmt.Errorf("missing expression object")
	}
	var ty *types.Type
	if r.Type != "" {
		t, err := types.ParseAnnotation(r.Type)
		if err != nil {
			return nil, err
		}
		ty = t
	}
	e, err := r.decodeKind()
	if err != nil {
		return nil, err
	}
	if ty != nil {
		e.Type = ty
	}
	return e, nil
}

func (r *rawExpr) decodeKind() (*Expr, error) {
	switch r.Kind {
	case "int":
		var v int64
		if err := json.Unmarshal(r.Value, &v); err != nil {
			return nil, fmt.Errorf("int literal: %w", err)
		}
		return IntLit(v), nil
	case "float":
		var v float64
		if err := json.Unmarshal(r.Value, &v); err != nil {
			return nil, fmt.Errorf("float literal: %w", err)
		}
		return FloatLit(v), nil
	case "str":
		var v string
		if err := json.Unmarshal(r.Value, &v); err != nil {
			return nil, fmt.Errorf("string literal: %w", err)
		}
		return StrLit(v), nil
	case "bool":
		var v bool
		if err := json.Unmarshal(r.Value, &v); err != nil {
			return nil, fmt.Errorf("bool literal: %w", err)
		}
		return BoolLit(v), nil
	case "none":
		return NoneLit(), nil
	case "var":
		return Var(r.Name), nil
	case "binary":
		op, ok := binOpNames[r.Op]
		if !ok {
			return nil, fmt.Errorf("unknown binary operator %q", r.Op)
		}
		left, err := decodeOpt(r.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeOpt(r.Right)
		if err != nil {
			return nil, err
		}
		return Binary(op, left, right), nil
	case "unary":
		op, ok := unaryOpNames[r.Op]
		if !ok {
			return nil, fmt.Errorf("unknown unary operator %q", r.Op)
		}
		operand, err := decodeOpt(r.Left)
		if err != nil {
			return nil, err
		}
		return Unary(op, operand), nil
	case "call":
		args, err := decodeList(r.Args)
		if err != nil {
			return nil, err
		}
		kws, err := decodeKeywords(r.Kwargs)
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: ExprCall, Data: CallData{Func: r.Func, Args: args, Keywords: kws}}, nil
	case "method":
		obj, err := decodeOpt(r.Object)
		if err != nil {
			return nil, err
		}
		args, err := decodeList(r.Args)
		if err != nil {
			return nil, err
		}
		kws, err := decodeKeywords(r.Kwargs)
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: ExprMethodCall, Data: MethodCallData{Object: obj, Method: r.Method, Args: args, Keywords: kws}}, nil
	case "attribute":
		v, err := decodeOpt(r.Object)
		if err != nil {
			return nil, err
		}
		return Attribute(v, r.Attr), nil
	case "index":
		base, err := decodeOpt(r.Base)
		if err != nil {
			return nil, err
		}
		idx, err := decodeOpt(r.Index)
		if err != nil {
			return nil, err
		}
		return Index(base, idx), nil
	case "slice":
		base, err := decodeOpt(r.Base)
		if err != nil {
			return nil, err
		}
		start, err := decodeOpt(r.Start)
		if err != nil {
			return nil, err
		}
		stop, err := decodeOpt(r.Stop)
		if err != nil {
			return nil, err
		}
		step, err := decodeOpt(r.Step)
		if err != nil {
			return nil, err
		}
		return Slice(base, start, stop, step), nil
	case "list", "set", "frozenset", "tuple":
		elems, err := decodeList(r.Elems)
		if err != nil {
			return nil, err
		}
		kind := map[string]ExprKind{
			"list": ExprList, "set": ExprSet,
			"frozenset": ExprFrozenSet, "tuple": ExprTuple,
		}[r.Kind]
		return &Expr{Kind: kind, Data: ListData{Elems: elems}}, nil
	case "dict":
		items := make([]DictItem, 0, len(r.Items))
		for _, it := range r.Items {
			k, err := decodeOpt(it.Key)
			if err != nil {
				return nil, err
			}
			v, err := decodeOpt(it.Value)
			if err != nil {
				return nil, err
			}
			items = append(items, DictItem{Key: k, Value: v})
		}
		return Dict(items...), nil
	case "listcomp", "setcomp", "genexp":
		elt, err := decodeOpt(r.Elt)
		if err != nil {
			return nil, err
		}
		gens, err := decodeGenerators(r.Gens)
		if err != nil {
			return nil, err
		}
		kind := map[string]ExprKind{
			"listcomp": ExprListComp, "setcomp": ExprSetComp, "genexp": ExprGeneratorExp,
		}[r.Kind]
		return &Expr{Kind: kind, Data: CompData{Element: elt, Generators: gens}}, nil
	case "dictcomp":
		k, err := decodeOpt(r.Key)
		if err != nil {
			return nil, err
		}
		v, err := decodeOpt(r.Val)
		if err != nil {
			return nil, err
		}
		gens, err := decodeGenerators(r.Gens)
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: ExprDictComp, Data: DictCompData{Key: k, Value: v, Generators: gens}}, nil
	case "fstring":
		parts := make([]FStringPart, 0, len(r.Parts))
		for _, p := range r.Parts {
			if p.Expr != nil {
				e, err := p.Expr.decode()
				if err != nil {
					return nil, err
				}
				parts = append(parts, FStringPart{Expr: e})
			} else {
				parts = append(parts, FStringPart{Literal: p.Literal})
			}
		}
		return FString(parts...), nil
	case "lambda":
		body, err := decodeOpt(r.Body)
		if err != nil {
			return nil, err
		}
		return Lambda(r.Params, body), nil
	case "ifexpr":
		test, err := decodeOpt(r.Test)
		if err != nil {
			return nil, err
		}
		body, err := decodeOpt(r.Body)
		if err != nil {
			return nil, err
		}
		orelse, err := decodeOpt(r.Orelse)
		if err != nil {
			return nil, err
		}
		return IfExpr(test, body, orelse), nil
	case "await":
		v, err := decodeOpt(r.Body)
		if err != nil {
			return nil, err
		}
		return Await(v), nil
	case "yield":
		v, err := decodeOpt(r.Body)
		if err != nil {
			return nil, err
		}
		return Yield(v), nil
	case "named":
		v, err := decodeOpt(r.Body)
		if err != nil {
			return nil, err
		}
		return Named(r.Target, v), nil
	case "borrow":
		v, err := decodeOpt(r.Body)
		if err != nil {
			return nil, err
		}
		return Borrow(v, r.Mut), nil
	case "sortbykey":
		it, err := decodeOpt(r.Iter)
		if err != nil {
			return nil, err
		}
		body, err := decodeOpt(r.Body)
		if err != nil {
			return nil, err
		}
		return SortByKey(it, r.Params, body, r.Rev), nil
	default:
		return nil, fmt.Errorf("unknown expression kind %q", r.Kind)
	}
}

func decodeKeywords(raw []rawKeyword) ([]Keyword, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]Keyword, 0, len(raw))
	for _, kw := range raw {
		v, err := decodeOpt(kw.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, Keyword{Name: kw.Name, Value: v})
	}
	return out, nil
}

func decodeGenerators(raw []rawGenerator) ([]Comprehension, error) {
	out := make([]Comprehension, 0, len(raw))
	for _, g := range raw {
		iter, err := decodeOpt(g.Iter)
		if err != nil {
			return nil, err
		}
		conds, err := decodeList(g.Conditions)
		if err != nil {
			return nil, err
		}
		out = append(out, Comprehension{Target: g.Target, Iter: iter, Conditions: conds})
	}
	return out, nil
}

type rawParam struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

type rawFunction struct {
	Name    string     `json:"name"`
	Params  []rawParam `json:"params,omitempty"`
	Ret     string     `json:"ret,omitempty"`
	Body    []*Expr    `json:"body"`
	IsAsync bool       `json:"async,omitempty"`
}

type rawModule struct {
	Name                string            `json:"name"`
	Functions           []rawFunction     `json:"functions"`
	ClassNames          []string          `json:"class_names,omitempty"`
	ClassFieldTypes     map[string]string `json:"class_field_types,omitempty"`
	FunctionReturnTypes map[string]string `json:"function_return_types,omitempty"`
	PropertyMethods     []string          `json:"property_methods,omitempty"`
	ImportedModules     map[string]string `json:"imported_modules,omitempty"`
}

// DecodeModule reads one bridge-serialized module.
func DecodeModule(data []byte) (*Module, error) {
	var raw rawModule
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode module: %w", err)
	}
	m := &Module{
		Name:                raw.Name,
		ClassNames:          raw.ClassNames,
		PropertyMethods:     raw.PropertyMethods,
		ImportedModules:     raw.ImportedModules,
		ClassFieldTypes:     map[string]*types.Type{},
		FunctionReturnTypes: map[string]*types.Type{},
	}
	for name, ann := range raw.ClassFieldTypes {
		t, err := types.ParseAnnotation(ann)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		m.ClassFieldTypes[name] = t
	}
	for name, ann := range raw.FunctionReturnTypes {
		t, err := types.ParseAnnotation(ann)
		if err != nil {
			return nil, fmt.Errorf("function %s: %w", name, err)
		}
		m.FunctionReturnTypes[name] = t
	}
	for _, rf := range raw.Functions {
		fn := &Function{Name: rf.Name, Body: rf.Body, IsAsync: rf.IsAsync}
		for _, rp := range rf.Params {
			t, err := types.ParseAnnotation(rp.Type)
			if err != nil {
				return nil, fmt.Errorf("param %s.%s: %w", rf.Name, rp.Name, err)
			}
			fn.Params = append(fn.Params, Param{Name: rp.Name, Type: t})
		}
		if rf.Ret != "" {
			t, err := types.ParseAnnotation(rf.Ret)
			if err != nil {
				return nil, fmt.Errorf("return of %s: %w", rf.Name, err)
			}
			fn.Ret = t
		}
		m.Functions = append(m.Functions, fn)
	}
	return m, nil
}
