package hir

// BinOp enumerates Python binary operators after desugaring. Boolean
// `and`/`or` and the membership/identity tests are kept as binary forms;
// chained comparisons are split by the bridge.
type BinOp uint8

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpFloorDiv
	OpMod
	OpPow
	OpEq
	OpNotEq
	OpLt
	OpLtEq
	OpGt
	OpGtEq
	OpAnd
	OpOr
	OpBitAnd
	OpBitOr
	OpBitXor
	OpLShift
	OpRShift
	OpIn
	OpNotIn
	OpIs
	OpIsNot
)

// String returns the Python surface syntax for the operator.
func (op BinOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpFloorDiv:
		return "//"
	case OpMod:
		return "%"
	case OpPow:
		return "**"
	case OpEq:
		return "=="
	case OpNotEq:
		return "!="
	case OpLt:
		return "<"
	case OpLtEq:
		return "<="
	case OpGt:
		return ">"
	case OpGtEq:
		return ">="
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpBitAnd:
		return "&"
	case OpBitOr:
		return "|"
	case OpBitXor:
		return "^"
	case OpLShift:
		return "<<"
	case OpRShift:
		return ">>"
	case OpIn:
		return "in"
	case OpNotIn:
		return "not in"
	case OpIs:
		return "is"
	case OpIsNot:
		return "is not"
	default:
		return "?"
	}
}

// IsComparison reports whether the operator yields a bool.
func (op BinOp) IsComparison() bool {
	switch op {
	case OpEq, OpNotEq, OpLt, OpLtEq, OpGt, OpGtEq, OpIn, OpNotIn, OpIs, OpIsNot:
		return true
	}
	return false
}

// UnaryOp enumerates Python unary operators.
type UnaryOp uint8

const (
	OpNeg UnaryOp = iota
	OpNot
	OpPos
	OpBitNot
)

func (op UnaryOp) String() string {
	switch op {
	case OpNeg:
		return "-"
	case OpNot:
		return "not"
	case OpPos:
		return "+"
	case OpBitNot:
		return "~"
	default:
		return "?"
	}
}
