package types

import (
	"strings"
)

// Kind enumerates the Python-level type shapes the generator can track.
type Kind uint8

const (
	// KindUnknown means no evidence is available; code generation falls
	// back to the DepylerValue runtime representation.
	KindUnknown Kind = iota
	KindInt
	KindFloat
	KindBool
	KindStr
	KindNone
	KindList
	KindDict
	KindSet
	KindFrozenSet
	KindTuple
	KindOptional
	KindCustom
	KindGeneric
	KindFunction
)

// String returns a human-readable name for the type kind.
func (k Kind) String() string {
	switch k {
	case KindUnknown:
		return "Unknown"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindBool:
		return "Bool"
	case KindStr:
		return "Str"
	case KindNone:
		return "None"
	case KindList:
		return "List"
	case KindDict:
		return "Dict"
	case KindSet:
		return "Set"
	case KindFrozenSet:
		return "FrozenSet"
	case KindTuple:
		return "Tuple"
	case KindOptional:
		return "Optional"
	case KindCustom:
		return "Custom"
	case KindGeneric:
		return "Generic"
	case KindFunction:
		return "Function"
	default:
		return "Unknown"
	}
}

// Type is a Python type as reconstructed by the upstream inference pass.
// It is a plain tree; the generator only reads it.
type Type struct {
	Kind Kind

	// Name holds the class name for KindCustom and the base name for
	// KindGeneric.
	Name string

	// Elem is the element type for List/Set/FrozenSet/Optional.
	Elem *Type

	// Key and Value are set for KindDict.
	Key   *Type
	Value *Type

	// Elems holds tuple element types, generic parameters, or function
	// parameter types depending on Kind.
	Elems []*Type

	// Ret is the return type for KindFunction.
	Ret *Type
}

var (
	unknownType = &Type{Kind: KindUnknown}
	intType     = &Type{Kind: KindInt}
	floatType   = &Type{Kind: KindFloat}
	boolType    = &Type{Kind: KindBool}
	strType     = &Type{Kind: KindStr}
	noneType    = &Type{Kind: KindNone}
)

func Unknown() *Type { return unknownType }
func Int() *Type     { return intType }
func Float() *Type   { return floatType }
func Bool() *Type    { return boolType }
func Str() *Type     { return strType }
func None() *Type    { return noneType }

func ListOf(elem *Type) *Type {
	return &Type{Kind: KindList, Elem: orUnknown(elem)}
}

func SetOf(elem *Type) *Type {
	return &Type{Kind: KindSet, Elem: orUnknown(elem)}
}

func FrozenSetOf(elem *Type) *Type {
	return &Type{Kind: KindFrozenSet, Elem: orUnknown(elem)}
}

func DictOf(key, value *Type) *Type {
	return &Type{Kind: KindDict, Key: orUnknown(key), Value: orUnknown(value)}
}

func TupleOf(elems ...*Type) *Type {
	return &Type{Kind: KindTuple, Elems: elems}
}

func OptionalOf(inner *Type) *Type {
	return &Type{Kind: KindOptional, Elem: orUnknown(inner)}
}

func Custom(name string) *Type {
	return &Type{Kind: KindCustom, Name: name}
}

func Generic(base string, params ...*Type) *Type {
	return &Type{Kind: KindGeneric, Name: base, Elems: params}
}

func Func(params []*Type, ret *Type) *Type {
	return &Type{Kind: KindFunction, Elems: params, Ret: orUnknown(ret)}
}

func orUnknown(t *Type) *Type {
	if t == nil {
		return unknownType
	}
	return t
}

// IsUnknown reports whether t carries no usable evidence. A nil type is
// treated as unknown so callers can pass lookups through directly.
func (t *Type) IsUnknown() bool {
	return t == nil || t.Kind == KindUnknown
}

func (t *Type) Is(k Kind) bool {
	return t != nil && t.Kind == k
}

// IsNumeric reports whether t is int, float, or bool (Python treats bool
// as an int subtype in arithmetic).
func (t *Type) IsNumeric() bool {
	if t == nil {
		return false
	}
	switch t.Kind {
	case KindInt, KindFloat, KindBool:
		return true
	}
	return false
}

// IsCollection reports whether t is a container with Python truthiness
// driven by emptiness.
func (t *Type) IsCollection() bool {
	if t == nil {
		return false
	}
	switch t.Kind {
	case KindList, KindDict, KindSet, KindFrozenSet, KindTuple, KindStr:
		return true
	}
	return false
}

// Equal compares two types structurally. Nil is equal to Unknown.
func Equal(a, b *Type) bool {
	if a.IsUnknown() && b.IsUnknown() {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Kind != b.Kind || a.Name != b.Name {
		return false
	}
	if !Equal(a.Elem, b.Elem) || !Equal(a.Key, b.Key) || !Equal(a.Value, b.Value) || !Equal(a.Ret, b.Ret) {
		return false
	}
	if len(a.Elems) != len(b.Elems) {
		return false
	}
	for i := range a.Elems {
		if !Equal(a.Elems[i], b.Elems[i]) {
			return false
		}
	}
	return true
}

// Unify returns the least common type of a and b for collection-literal
// element inference: identical types unify to themselves, int and float
// unify to float, anything else collapses to Unknown.
func Unify(a, b *Type) *Type {
	if Equal(a, b) {
		return orUnknown(a)
	}
	if a.IsNumeric() && b.IsNumeric() {
		if a.Is(KindFloat) || b.Is(KindFloat) {
			return floatType
		}
		return intType
	}
	if a.Is(KindNone) && !b.IsUnknown() {
		return OptionalOf(b)
	}
	if b.Is(KindNone) && !a.IsUnknown() {
		return OptionalOf(a)
	}
	return unknownType
}

// String renders the type in Python annotation syntax.
func (t *Type) String() string {
	if t == nil {
		return "Unknown"
	}
	switch t.Kind {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindStr:
		return "str"
	case KindNone:
		return "None"
	case KindList:
		return "list[" + t.Elem.String() + "]"
	case KindDict:
		return "dict[" + t.Key.String() + ", " + t.Value.String() + "]"
	case KindSet:
		return "set[" + t.Elem.String() + "]"
	case KindFrozenSet:
		return "frozenset[" + t.Elem.String() + "]"
	case KindTuple:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = e.String()
		}
		return "tuple[" + strings.Join(parts, ", ") + "]"
	case KindOptional:
		return "Optional[" + t.Elem.String() + "]"
	case KindCustom:
		return t.Name
	case KindGeneric:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = e.String()
		}
		return t.Name + "[" + strings.Join(parts, ", ") + "]"
	case KindFunction:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = e.String()
		}
		return "Callable[[" + strings.Join(parts, ", ") + "], " + t.Ret.String() + "]"
	default:
		return "Unknown"
	}
}
