package pyval

import (
	"math"
	"strings"

	"fortio.org/safecast"
)

// FloorDivI64 floors toward negative infinity, matching Python's //.
// Division by zero returns the 0 sentinel instead of panicking.
func FloorDivI64(a, b int64) int64 {
	if b == 0 {
		return 0
	}
	q := a / b
	r := a % b
	if r != 0 && (r < 0) != (b < 0) {
		q--
	}
	return q
}

// ModI64 follows the sign of the divisor, matching Python's %.
func ModI64(a, b int64) int64 {
	if b == 0 {
		return 0
	}
	r := a % b
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

// ModF64 is Python's float modulo; division by zero yields NaN.
func ModF64(a, b float64) float64 {
	if b == 0 {
		return math.NaN()
	}
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

// RepeatStr is Python's str * int; non-positive counts yield "".
func RepeatStr(s string, n int64) string {
	if n <= 0 {
		return ""
	}
	count, err := safecast.Conv[int](n)
	if err != nil {
		return ""
	}
	return strings.Repeat(s, count)
}

func (v Value) isNumber() bool {
	switch v.kind {
	case KindInt, KindFloat, KindBool:
		return true
	}
	return false
}

func (v Value) isFloatLike() bool {
	return v.kind == KindFloat
}

// Add implements Python +: numeric addition with int→float promotion,
// string concatenation, and list concatenation.
func (v Value) Add(other Value) Value {
	switch {
	case v.kind == KindStr && other.kind == KindStr:
		return Str(v.s + other.s)
	case v.kind == KindList && other.kind == KindList:
		out := make([]Value, 0, len(v.elems)+len(other.elems))
		out = append(out, v.elems...)
		out = append(out, other.elems...)
		return List(out...)
	case v.isNumber() && other.isNumber():
		if v.isFloatLike() || other.isFloatLike() {
			return Float(v.ToF64() + other.ToF64())
		}
		return Int(v.ToI64() + other.ToI64())
	default:
		return None()
	}
}

// Sub implements Python -.
func (v Value) Sub(other Value) Value {
	if v.isNumber() && other.isNumber() {
		if v.isFloatLike() || other.isFloatLike() {
			return Float(v.ToF64() - other.ToF64())
		}
		return Int(v.ToI64() - other.ToI64())
	}
	return None()
}

// Mul implements Python *: numeric product, string repetition in both
// operand orders, and list repetition.
func (v Value) Mul(other Value) Value {
	switch {
	case v.kind == KindStr && other.kind == KindInt:
		return Str(RepeatStr(v.s, other.i))
	case v.kind == KindInt && other.kind == KindStr:
		return Str(RepeatStr(other.s, v.i))
	case v.kind == KindList && other.kind == KindInt:
		return List(repeatElems(v.elems, other.i)...)
	case v.kind == KindInt && other.kind == KindList:
		return List(repeatElems(other.elems, v.i)...)
	case v.isNumber() && other.isNumber():
		if v.isFloatLike() || other.isFloatLike() {
			return Float(v.ToF64() * other.ToF64())
		}
		return Int(v.ToI64() * other.ToI64())
	default:
		return None()
	}
}

func repeatElems(elems []Value, n int64) []Value {
	if n <= 0 {
		return nil
	}
	count, err := safecast.Conv[int](n)
	if err != nil {
		return nil
	}
	out := make([]Value, 0, len(elems)*count)
	for i := 0; i < count; i++ {
		out = append(out, elems...)
	}
	return out
}

// Div implements Python /: true division always produces a float;
// division by zero yields NaN rather than a panic.
func (v Value) Div(other Value) Value {
	if !v.isNumber() || !other.isNumber() {
		return None()
	}
	d := other.ToF64()
	if d == 0 {
		return Float(math.NaN())
	}
	return Float(v.ToF64() / d)
}

// FloorDiv implements Python //.
func (v Value) FloorDiv(other Value) Value {
	if !v.isNumber() || !other.isNumber() {
		return None()
	}
	if v.isFloatLike() || other.isFloatLike() {
		d := other.ToF64()
		if d == 0 {
			return Float(math.NaN())
		}
		return Float(math.Floor(v.ToF64() / d))
	}
	return Int(FloorDivI64(v.ToI64(), other.ToI64()))
}

// Mod implements Python % with divisor-sign semantics.
func (v Value) Mod(other Value) Value {
	if !v.isNumber() || !other.isNumber() {
		return None()
	}
	if v.isFloatLike() || other.isFloatLike() {
		return Float(ModF64(v.ToF64(), other.ToF64()))
	}
	return Int(ModI64(v.ToI64(), other.ToI64()))
}

// Neg implements Python unary -.
func (v Value) Neg() Value {
	switch v.kind {
	case KindInt:
		return Int(-v.i)
	case KindFloat:
		return Float(-v.f)
	case KindBool:
		return Int(-v.ToI64())
	default:
		return None()
	}
}

// Equal implements Python ==: numbers compare across widths, sequences
// compare element-wise, dicts compare entries ignoring order.
func (v Value) Equal(other Value) bool {
	if v.isNumber() && other.isNumber() {
		return v.ToF64() == other.ToF64()
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNone:
		return true
	case KindStr:
		return v.s == other.s
	case KindList, KindTuple:
		if len(v.elems) != len(other.elems) {
			return false
		}
		for i := range v.elems {
			if !v.elems[i].Equal(other.elems[i]) {
				return false
			}
		}
		return true
	case KindDict:
		if len(v.items) != len(other.items) {
			return false
		}
		for _, it := range v.items {
			got, ok := other.Get(it.Key)
			if !ok || !got.Equal(it.Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Less implements Python <: numbers, strings, and sequences
// (lexicographic). Incomparable kinds order by discriminant so sorting
// stays total.
func (v Value) Less(other Value) bool {
	if v.isNumber() && other.isNumber() {
		return v.ToF64() < other.ToF64()
	}
	if v.kind == KindStr && other.kind == KindStr {
		return v.s < other.s
	}
	if (v.kind == KindList || v.kind == KindTuple) && v.kind == other.kind {
		n := len(v.elems)
		if len(other.elems) < n {
			n = len(other.elems)
		}
		for i := 0; i < n; i++ {
			if v.elems[i].Less(other.elems[i]) {
				return true
			}
			if other.elems[i].Less(v.elems[i]) {
				return false
			}
		}
		return len(v.elems) < len(other.elems)
	}
	return v.kind < other.kind
}

// Get looks a key up in a dict value.
func (v Value) Get(key Value) (Value, bool) {
	if v.kind != KindDict {
		return None(), false
	}
	for _, it := range v.items {
		if it.Key.Equal(key) {
			return it.Value, true
		}
	}
	return None(), false
}

// Index implements Python subscription with negative-index support for
// sequences and strings; misses return None so chained fallbacks keep
// dict-get semantics.
func (v Value) Index(idx Value) Value {
	switch v.kind {
	case KindDict:
		got, _ := v.Get(idx)
		return got
	case KindList, KindTuple:
		i, ok := normalizeIndex(idx.ToI64(), len(v.elems))
		if !ok {
			return None()
		}
		return v.elems[i]
	case KindStr:
		runes := []rune(v.s)
		i, ok := normalizeIndex(idx.ToI64(), len(runes))
		if !ok {
			return None()
		}
		return Str(string(runes[i]))
	default:
		return None()
	}
}

func normalizeIndex(i int64, length int) (int, bool) {
	n := int64(length)
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, false
	}
	idx, err := safecast.Conv[int](i)
	if err != nil {
		return 0, false
	}
	return idx, true
}

// Contains implements Python `in`: substring test for strings, element
// test for sequences, key test for dicts.
func (v Value) Contains(member Value) bool {
	switch v.kind {
	case KindStr:
		return member.kind == KindStr && strings.Contains(v.s, member.s)
	case KindList, KindTuple:
		for _, e := range v.elems {
			if e.Equal(member) {
				return true
			}
		}
		return false
	case KindDict:
		_, ok := v.Get(member)
		return ok
	default:
		return false
	}
}
