package hir

import (
	"depyler/internal/source"
	"depyler/internal/types"
)

// ExprKind enumerates HIR expression kinds. The HIR is the typed,
// desugared form of the Python source produced by the upstream bridge;
// the code generator only consumes it.
type ExprKind uint8

const (
	// ExprLiteral represents literals (int, float, string, bool, None).
	ExprLiteral ExprKind = iota
	// ExprVar represents a variable reference.
	ExprVar
	// ExprBinary represents binary operators (+, -, ==, in, and, ...).
	ExprBinary
	// ExprUnary represents unary operators (-, not, ~, +).
	ExprUnary
	// ExprCall represents a free-function call f(args).
	ExprCall
	// ExprMethodCall represents obj.method(args).
	ExprMethodCall
	// ExprAttribute represents attribute access obj.attr.
	ExprAttribute
	// ExprIndex represents base[index].
	ExprIndex
	// ExprSlice represents base[start:stop:step].
	ExprSlice
	// ExprList represents a list literal [a, b, c].
	ExprList
	// ExprDict represents a dict literal {k: v, ...}.
	ExprDict
	// ExprSet represents a set literal {a, b, c}.
	ExprSet
	// ExprFrozenSet represents frozenset({...}).
	ExprFrozenSet
	// ExprTuple represents a tuple literal (a, b, c).
	ExprTuple
	// ExprListComp represents [elt for t in it if cond].
	ExprListComp
	// ExprSetComp represents {elt for t in it if cond}.
	ExprSetComp
	// ExprDictComp represents {k: v for t in it if cond}.
	ExprDictComp
	// ExprGeneratorExp represents (elt for t in it if cond).
	ExprGeneratorExp
	// ExprFString represents an f-string with literal and embedded parts.
	ExprFString
	// ExprLambda represents lambda params: body.
	ExprLambda
	// ExprIfExpr represents the ternary body if test else orelse.
	ExprIfExpr
	// ExprAwait represents await value.
	ExprAwait
	// ExprYield represents yield [value].
	ExprYield
	// ExprNamed represents the walrus (target := value).
	ExprNamed
	// ExprBorrow is a bridge-inserted borrow marker (&expr / &mut expr).
	ExprBorrow
	// ExprSortByKey is the desugared sorted(iterable, key=lambda ...).
	ExprSortByKey
)

// String returns a human-readable name for the expression kind.
func (k ExprKind) String() string {
	switch k {
	case ExprLiteral:
		return "Literal"
	case ExprVar:
		return "Var"
	case ExprBinary:
		return "Binary"
	case ExprUnary:
		return "Unary"
	case ExprCall:
		return "Call"
	case ExprMethodCall:
		return "MethodCall"
	case ExprAttribute:
		return "Attribute"
	case ExprIndex:
		return "Index"
	case ExprSlice:
		return "Slice"
	case ExprList:
		return "List"
	case ExprDict:
		return "Dict"
	case ExprSet:
		return "Set"
	case ExprFrozenSet:
		return "FrozenSet"
	case ExprTuple:
		return "Tuple"
	case ExprListComp:
		return "ListComp"
	case ExprSetComp:
		return "SetComp"
	case ExprDictComp:
		return "DictComp"
	case ExprGeneratorExp:
		return "GeneratorExp"
	case ExprFString:
		return "FString"
	case ExprLambda:
		return "Lambda"
	case ExprIfExpr:
		return "IfExpr"
	case ExprAwait:
		return "Await"
	case ExprYield:
		return "Yield"
	case ExprNamed:
		return "Named"
	case ExprBorrow:
		return "Borrow"
	case ExprSortByKey:
		return "SortByKey"
	default:
		return "Unknown"
	}
}

// Expr represents an HIR expression with type information.
type Expr struct {
	Kind ExprKind
	Type *types.Type // Filled by upstream inference; nil means Unknown
	Span source.Span
	Data ExprData
}

// ExprData is the interface for expression-specific payloads.
type ExprData interface {
	exprData()
}

// LiteralKind enumerates literal value kinds.
type LiteralKind uint8

const (
	LiteralInt LiteralKind = iota
	LiteralFloat
	LiteralString
	LiteralBool
	LiteralNone
)

// LiteralData holds data for ExprLiteral.
type LiteralData struct {
	Kind        LiteralKind
	IntValue    int64
	FloatValue  float64
	BoolValue   bool
	StringValue string
}

func (LiteralData) exprData() {}

// VarData holds data for ExprVar.
type VarData struct {
	Name string
}

func (VarData) exprData() {}

// BinaryData holds data for ExprBinary.
type BinaryData struct {
	Op    BinOp
	Left  *Expr
	Right *Expr
}

func (BinaryData) exprData() {}

// UnaryData holds data for ExprUnary.
type UnaryData struct {
	Op      UnaryOp
	Operand *Expr
}

func (UnaryData) exprData() {}

// Keyword is one keyword argument at a call site.
type Keyword struct {
	Name  string
	Value *Expr
}

// CallData holds data for ExprCall. Func is the callee name after
// desugaring; module calls arrive as "module.func".
type CallData struct {
	Func     string
	Args     []*Expr
	Keywords []Keyword
}

func (CallData) exprData() {}

// MethodCallData holds data for ExprMethodCall.
type MethodCallData struct {
	Object   *Expr
	Method   string
	Args     []*Expr
	Keywords []Keyword
}

func (MethodCallData) exprData() {}

// AttributeData holds data for ExprAttribute.
type AttributeData struct {
	Value *Expr
	Attr  string
}

func (AttributeData) exprData() {}

// IndexData holds data for ExprIndex.
type IndexData struct {
	Base  *Expr
	Index *Expr
}

func (IndexData) exprData() {}

// SliceData holds data for ExprSlice. Absent bounds are nil.
type SliceData struct {
	Base  *Expr
	Start *Expr
	Stop  *Expr
	Step  *Expr
}

func (SliceData) exprData() {}

// ListData holds data for ExprList, ExprSet, ExprFrozenSet, ExprTuple.
type ListData struct {
	Elems []*Expr
}

func (ListData) exprData() {}

// DictItem is one key/value pair in a dict literal.
type DictItem struct {
	Key   *Expr
	Value *Expr
}

// DictData holds data for ExprDict.
type DictData struct {
	Items []DictItem
}

func (DictData) exprData() {}

// Comprehension is one `for target in iter [if cond]*` clause. Target
// holds one name, or several for a tuple-pattern target.
type Comprehension struct {
	Target     []string
	Iter       *Expr
	Conditions []*Expr
}

// CompData holds data for ExprListComp, ExprSetComp, ExprGeneratorExp.
type CompData struct {
	Element    *Expr
	Generators []Comprehension
}

func (CompData) exprData() {}

// DictCompData holds data for ExprDictComp.
type DictCompData struct {
	Key        *Expr
	Value      *Expr
	Generators []Comprehension
}

func (DictCompData) exprData() {}

// FStringPart is either a literal chunk or an embedded expression.
type FStringPart struct {
	Literal string
	Expr    *Expr // nil for literal parts
}

// FStringData holds data for ExprFString.
type FStringData struct {
	Parts []FStringPart
}

func (FStringData) exprData() {}

// LambdaData holds data for ExprLambda.
type LambdaData struct {
	Params []string
	Body   *Expr
}

func (LambdaData) exprData() {}

// IfExprData holds data for ExprIfExpr.
type IfExprData struct {
	Test   *Expr
	Body   *Expr
	Orelse *Expr
}

func (IfExprData) exprData() {}

// AwaitData holds data for ExprAwait.
type AwaitData struct {
	Value *Expr
}

func (AwaitData) exprData() {}

// YieldData holds data for ExprYield. Value is nil for a bare yield.
type YieldData struct {
	Value *Expr
}

func (YieldData) exprData() {}

// NamedData holds data for ExprNamed (walrus).
type NamedData struct {
	Target string
	Value  *Expr
}

func (NamedData) exprData() {}

// BorrowData holds data for ExprBorrow.
type BorrowData struct {
	Expr    *Expr
	Mutable bool
}

func (BorrowData) exprData() {}

// SortByKeyData holds data for ExprSortByKey.
type SortByKeyData struct {
	Iterable *Expr
	Params   []string
	Body     *Expr
	Reverse  bool
}

func (SortByKeyData) exprData() {}
