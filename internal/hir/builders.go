package hir

import (
	"depyler/internal/types"
)

// Construction helpers used by the AST bridge and by tests. Types left
// nil default to Unknown at code-generation time.

func IntLit(v int64) *Expr {
	return &Expr{Kind: ExprLiteral, Type: types.Int(), Data: LiteralData{Kind: LiteralInt, IntValue: v}}
}

func FloatLit(v float64) *Expr {
	return &Expr{Kind: ExprLiteral, Type: types.Float(), Data: LiteralData{Kind: LiteralFloat, FloatValue: v}}
}

func StrLit(s string) *Expr {
	return &Expr{Kind: ExprLiteral, Type: types.Str(), Data: LiteralData{Kind: LiteralString, StringValue: s}}
}

func BoolLit(b bool) *Expr {
	return &Expr{Kind: ExprLiteral, Type: types.Bool(), Data: LiteralData{Kind: LiteralBool, BoolValue: b}}
}

func NoneLit() *Expr {
	return &Expr{Kind: ExprLiteral, Type: types.None(), Data: LiteralData{Kind: LiteralNone}}
}

func Var(name string) *Expr {
	return &Expr{Kind: ExprVar, Data: VarData{Name: name}}
}

func TypedVar(name string, t *types.Type) *Expr {
	return &Expr{Kind: ExprVar, Type: t, Data: VarData{Name: name}}
}

func Binary(op BinOp, left, right *Expr) *Expr {
	return &Expr{Kind: ExprBinary, Data: BinaryData{Op: op, Left: left, Right: right}}
}

func Unary(op UnaryOp, operand *Expr) *Expr {
	return &Expr{Kind: ExprUnary, Data: UnaryData{Op: op, Operand: operand}}
}

func Call(fn string, args ...*Expr) *Expr {
	return &Expr{Kind: ExprCall, Data: CallData{Func: fn, Args: args}}
}

func MethodCall(obj *Expr, method string, args ...*Expr) *Expr {
	return &Expr{Kind: ExprMethodCall, Data: MethodCallData{Object: obj, Method: method, Args: args}}
}

func Attribute(value *Expr, attr string) *Expr {
	return &Expr{Kind: ExprAttribute, Data: AttributeData{Value: value, Attr: attr}}
}

func Index(base, index *Expr) *Expr {
	return &Expr{Kind: ExprIndex, Data: IndexData{Base: base, Index: index}}
}

func Slice(base, start, stop, step *Expr) *Expr {
	return &Expr{Kind: ExprSlice, Data: SliceData{Base: base, Start: start, Stop: stop, Step: step}}
}

func List(elems ...*Expr) *Expr {
	return &Expr{Kind: ExprList, Data: ListData{Elems: elems}}
}

func Set(elems ...*Expr) *Expr {
	return &Expr{Kind: ExprSet, Data: ListData{Elems: elems}}
}

func FrozenSet(elems ...*Expr) *Expr {
	return &Expr{Kind: ExprFrozenSet, Data: ListData{Elems: elems}}
}

func Tuple(elems ...*Expr) *Expr {
	return &Expr{Kind: ExprTuple, Data: ListData{Elems: elems}}
}

func Dict(items ...DictItem) *Expr {
	return &Expr{Kind: ExprDict, Data: DictData{Items: items}}
}

func Item(key, value *Expr) DictItem {
	return DictItem{Key: key, Value: value}
}

func Gen(target string, iter *Expr, conditions ...*Expr) Comprehension {
	return Comprehension{Target: []string{target}, Iter: iter, Conditions: conditions}
}

func TupleGen(targets []string, iter *Expr, conditions ...*Expr) Comprehension {
	return Comprehension{Target: targets, Iter: iter, Conditions: conditions}
}

func ListComp(element *Expr, generators ...Comprehension) *Expr {
	return &Expr{Kind: ExprListComp, Data: CompData{Element: element, Generators: generators}}
}

func SetComp(element *Expr, generators ...Comprehension) *Expr {
	return &Expr{Kind: ExprSetComp, Data: CompData{Element: element, Generators: generators}}
}

func GeneratorExp(element *Expr, generators ...Comprehension) *Expr {
	return &Expr{Kind: ExprGeneratorExp, Data: CompData{Element: element, Generators: generators}}
}

func DictComp(key, value *Expr, generators ...Comprehension) *Expr {
	return &Expr{Kind: ExprDictComp, Data: DictCompData{Key: key, Value: value, Generators: generators}}
}

func FString(parts ...FStringPart) *Expr {
	return &Expr{Kind: ExprFString, Data: FStringData{Parts: parts}}
}

func FLit(s string) FStringPart {
	return FStringPart{Literal: s}
}

func FExpr(e *Expr) FStringPart {
	return FStringPart{Expr: e}
}

func Lambda(params []string, body *Expr) *Expr {
	return &Expr{Kind: ExprLambda, Data: LambdaData{Params: params, Body: body}}
}

func IfExpr(test, body, orelse *Expr) *Expr {
	return &Expr{Kind: ExprIfExpr, Data: IfExprData{Test: test, Body: body, Orelse: orelse}}
}

func Await(value *Expr) *Expr {
	return &Expr{Kind: ExprAwait, Data: AwaitData{Value: value}}
}

func Yield(value *Expr) *Expr {
	return &Expr{Kind: ExprYield, Data: YieldData{Value: value}}
}

func Named(target string, value *Expr) *Expr {
	return &Expr{Kind: ExprNamed, Data: NamedData{Target: target, Value: value}}
}

func Borrow(e *Expr, mutable bool) *Expr {
	return &Expr{Kind: ExprBorrow, Data: BorrowData{Expr: e, Mutable: mutable}}
}

func SortByKey(iterable *Expr, params []string, body *Expr, reverse bool) *Expr {
	return &Expr{Kind: ExprSortByKey, Data: SortByKeyData{Iterable: iterable, Params: params, Body: body, Reverse: reverse}}
}
