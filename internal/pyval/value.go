// Package pyval models Python runtime values with Python semantics:
// truthiness, floor division, divisor-sign modulo, negative indexing,
// and the builtin coercions. The code generator uses it to fold
// constant subexpressions, and the test suite uses it as the reference
// for the semantics the emitted DepylerValue runtime must preserve.
package pyval

import (
	"math"
	"strconv"
	"strings"
)

// Kind is the value discriminant.
type Kind uint8

const (
	KindNone Kind = iota
	KindInt
	KindFloat
	KindStr
	KindBool
	KindList
	KindDict
	KindTuple
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindStr:
		return "Str"
	case KindBool:
		return "Bool"
	case KindList:
		return "List"
	case KindDict:
		return "Dict"
	case KindTuple:
		return "Tuple"
	default:
		return "None"
	}
}

// Value is a tagged Python value.
type Value struct {
	kind  Kind
	i     int64
	f     float64
	s     string
	b     bool
	elems []Value
	items []DictEntry
}

// DictEntry is one key/value pair; dicts preserve insertion order.
type DictEntry struct {
	Key   Value
	Value Value
}

func None() Value           { return Value{kind: KindNone} }
func Int(v int64) Value     { return Value{kind: KindInt, i: v} }
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }
func Str(s string) Value    { return Value{kind: KindStr, s: s} }
func Bool(b bool) Value     { return Value{kind: KindBool, b: b} }

func List(elems ...Value) Value {
	return Value{kind: KindList, elems: elems}
}

func Tuple(elems ...Value) Value {
	return Value{kind: KindTuple, elems: elems}
}

func Dict(items ...DictEntry) Value {
	return Value{kind: KindDict, items: items}
}

func (v Value) Kind() Kind { return v.kind }

// IsTrue implements Python truthiness: None, zero numbers, False, and
// empty containers are false.
func (v Value) IsTrue() bool {
	switch v.kind {
	case KindNone:
		return false
	case KindInt:
		return v.i != 0
	case KindFloat:
		return v.f != 0
	case KindStr:
		return v.s != ""
	case KindBool:
		return v.b
	case KindList, KindTuple:
		return len(v.elems) > 0
	case KindDict:
		return len(v.items) > 0
	default:
		return false
	}
}

// Len returns the Python len() of the value; -1 for unsized values.
func (v Value) Len() int {
	switch v.kind {
	case KindStr:
		return len([]rune(v.s))
	case KindList, KindTuple:
		return len(v.elems)
	case KindDict:
		return len(v.items)
	default:
		return -1
	}
}

// ToI64 is Python's int() widening: bools become 0/1, floats truncate
// toward zero, numeric strings parse, everything else is 0.
func (v Value) ToI64() int64 {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return int64(v.f)
	case KindBool:
		if v.b {
			return 1
		}
		return 0
	case KindStr:
		n, err := strconv.ParseInt(strings.TrimSpace(v.s), 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// ToF64 is Python's float() widening.
func (v Value) ToF64() float64 {
	switch v.kind {
	case KindInt:
		return float64(v.i)
	case KindFloat:
		return v.f
	case KindBool:
		if v.b {
			return 1
		}
		return 0
	case KindStr:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// String renders the value the way Python's str() does.
func (v Value) String() string {
	switch v.kind {
	case KindNone:
		return "None"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return formatFloat(v.f)
	case KindStr:
		return v.s
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	case KindList, KindTuple:
		lb, rb := "[", "]"
		if v.kind == KindTuple {
			lb, rb = "(", ")"
		}
		parts := make([]string, len(v.elems))
		for i, e := range v.elems {
			parts[i] = e.Repr()
		}
		inner := strings.Join(parts, ", ")
		if v.kind == KindTuple && len(v.elems) == 1 {
			inner += ","
		}
		return lb + inner + rb
	case KindDict:
		parts := make([]string, len(v.items))
		for i, it := range v.items {
			parts[i] = it.Key.Repr() + ": " + it.Value.Repr()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "None"
	}
}

// Repr renders the value the way Python's repr() does; only strings
// differ from String.
func (v Value) Repr() string {
	if v.kind == KindStr {
		return "'" + strings.ReplaceAll(v.s, "'", "\\'") + "'"
	}
	return v.String()
}

func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return "nan"
	}
	if math.IsInf(f, 1) {
		return "inf"
	}
	if math.IsInf(f, -1) {
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Iter yields the Python iteration order of the value: elements for
// sequences, keys for dicts, one-character strings for strings.
func (v Value) Iter() []Value {
	switch v.kind {
	case KindList, KindTuple:
		out := make([]Value, len(v.elems))
		copy(out, v.elems)
		return out
	case KindDict:
		out := make([]Value, len(v.items))
		for i, it := range v.items {
			out[i] = it.Key
		}
		return out
	case KindStr:
		runes := []rune(v.s)
		out := make([]Value, len(runes))
		for i, r := range runes {
			out[i] = Str(string(r))
		}
		return out
	default:
		return nil
	}
}

// Elems exposes the underlying sequence elements.
func (v Value) Elems() []Value {
	return v.elems
}

// Items exposes the underlying dict entries.
func (v Value) Items() []DictEntry {
	return v.items
}

// StrVal returns the string payload (empty for non-strings).
func (v Value) StrVal() string {
	return v.s
}

// Hash mirrors the emitted runtime's hashing rules: floats hash their
// bit pattern so NaN keys behave like Python's (NaN is a valid dict
// key); dicts hash only their discriminant.
func (v Value) Hash() uint64 {
	const prime = 1099511628211
	h := uint64(14695981039346656037)
	mix := func(x uint64) {
		h ^= x
		h *= prime
	}
	mix(uint64(v.kind))
	switch v.kind {
	case KindInt:
		mix(uint64(v.i))
	case KindFloat:
		mix(math.Float64bits(v.f))
	case KindBool:
		if v.b {
			mix(1)
		}
	case KindStr:
		for _, c := range []byte(v.s) {
			mix(uint64(c))
		}
	case KindList, KindTuple:
		for _, e := range v.elems {
			mix(e.Hash())
		}
	case KindDict:
		// Discriminant only: dicts never key other dicts in generated
		// code.
	}
	return h
}
