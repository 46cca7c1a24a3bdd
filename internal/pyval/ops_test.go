package pyval

import (
	"math"
	"testing"
)

func TestFloorDivI64(t *testing.T) {
	cases := []struct {
		a, b, want int64
	}{
		{7, 2, 3},
		{-7, 2, -4},
		{7, -2, -4},
		{-7, -2, 3},
		{6, 3, 2},
		{0, 5, 0},
		{5, 0, 0},
	}
	for _, tc := range cases {
		if got := FloorDivI64(tc.a, tc.b); got != tc.want {
			t.Fatalf("FloorDivI64(%d, %d) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestModI64(t *testing.T) {
	cases := []struct {
		a, b, want int64
	}{
		{7, 3, 1},
		{-7, 3, 2},
		{7, -3, -2},
		{-7, -3, -1},
		{0, 4, 0},
		{9, 0, 0},
	}
	for _, tc := range cases {
		if got := ModI64(tc.a, tc.b); got != tc.want {
			t.Fatalf("ModI64(%d, %d) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestModF64DivisorSign(t *testing.T) {
	if got := ModF64(-7, 3); got != 2 {
		t.Fatalf("ModF64(-7, 3) = %v, want 2", got)
	}
	if got := ModF64(7, -3); got != -2 {
		t.Fatalf("ModF64(7, -3) = %v, want -2", got)
	}
	if got := ModF64(1, 0); !math.IsNaN(got) {
		t.Fatalf("ModF64(1, 0) = %v, want NaN", got)
	}
}

func TestFloorDivModIdentity(t *testing.T) {
	// a == (a // b) * b + (a % b) for every nonzero divisor.
	for a := int64(-20); a <= 20; a++ {
		for b := int64(-5); b <= 5; b++ {
			if b == 0 {
				continue
			}
			if got := FloorDivI64(a, b)*b + ModI64(a, b); got != a {
				t.Fatalf("identity broke for a=%d b=%d: got %d", a, b, got)
			}
		}
	}
}

func TestDivAlwaysFloat(t *testing.T) {
	got := Int(7).Div(Int(2))
	if got.Kind() != KindFloat || got.ToF64() != 3.5 {
		t.Fatalf("7 / 2 = %v, want 3.5 float", got)
	}
	if !math.IsNaN(Int(1).Div(Int(0)).ToF64()) {
		t.Fatalf("1 / 0 should be NaN")
	}
	if !math.IsNaN(Float(1.5).Div(Float(0)).ToF64()) {
		t.Fatalf("1.5 / 0.0 should be NaN")
	}
}

func TestAddPromotion(t *testing.T) {
	if got := Int(1).Add(Float(2.5)); got.Kind() != KindFloat || got.ToF64() != 3.5 {
		t.Fatalf("1 + 2.5 = %v", got)
	}
	if got := Int(1).Add(Int(2)); got.Kind() != KindInt || got.ToI64() != 3 {
		t.Fatalf("1 + 2 = %v", got)
	}
	if got := Str("ab").Add(Str("cd")); got.StrVal() != "abcd" {
		t.Fatalf("'ab' + 'cd' = %q", got.StrVal())
	}
	sum := List(Int(1)).Add(List(Int(2), Int(3)))
	if sum.Len() != 3 || !sum.Index(Int(2)).Equal(Int(3)) {
		t.Fatalf("[1] + [2, 3] = %v", sum)
	}
}

func TestMulRepetition(t *testing.T) {
	if got := Str("ab").Mul(Int(3)); got.StrVal() != "ababab" {
		t.Fatalf("'ab' * 3 = %q", got.StrVal())
	}
	if got := Int(3).Mul(Str("x")); got.StrVal() != "xxx" {
		t.Fatalf("3 * 'x' = %q", got.StrVal())
	}
	if got := Str("ab").Mul(Int(-1)); got.StrVal() != "" {
		t.Fatalf("'ab' * -1 = %q, want empty", got.StrVal())
	}
	rep := List(Int(1), Int(2)).Mul(Int(2))
	if rep.Len() != 4 {
		t.Fatalf("[1, 2] * 2 has len %d, want 4", rep.Len())
	}
}

func TestEqualCrossNumeric(t *testing.T) {
	if !Int(1).Equal(Float(1.0)) {
		t.Fatalf("1 == 1.0 should hold")
	}
	if !Bool(true).Equal(Int(1)) {
		t.Fatalf("True == 1 should hold")
	}
	if Int(1).Equal(Str("1")) {
		t.Fatalf("1 == '1' should not hold")
	}
	a := List(Int(1), Str("a"))
	b := List(Int(1), Str("a"))
	if !a.Equal(b) {
		t.Fatalf("equal lists compared unequal")
	}
	d1 := Dict(DictEntry{Key: Str("k"), Value: Int(1)}, DictEntry{Key: Str("j"), Value: Int(2)})
	d2 := Dict(DictEntry{Key: Str("j"), Value: Int(2)}, DictEntry{Key: Str("k"), Value: Int(1)})
	if !d1.Equal(d2) {
		t.Fatalf("dict equality should ignore entry order")
	}
}

func TestLessLexicographic(t *testing.T) {
	if !Str("abc").Less(Str("abd")) {
		t.Fatalf("'abc' < 'abd' should hold")
	}
	if !List(Int(1), Int(2)).Less(List(Int(1), Int(3))) {
		t.Fatalf("[1,2] < [1,3] should hold")
	}
	if !List(Int(1)).Less(List(Int(1), Int(0))) {
		t.Fatalf("shorter prefix should compare less")
	}
	if List(Int(2)).Less(List(Int(1), Int(9))) {
		t.Fatalf("[2] < [1,9] should not hold")
	}
}

func TestIndexNegative(t *testing.T) {
	xs := List(Int(10), Int(20), Int(30))
	if got := xs.Index(Int(-1)); !got.Equal(Int(30)) {
		t.Fatalf("xs[-1] = %v, want 30", got)
	}
	if got := xs.Index(Int(-4)); got.Kind() != KindNone {
		t.Fatalf("out-of-range index should be None, got %v", got)
	}
	if got := Str("héllo").Index(Int(1)); got.StrVal() != "é" {
		t.Fatalf("'héllo'[1] = %q, want é", got.StrVal())
	}
	if got := Str("héllo").Index(Int(-1)); got.StrVal() != "o" {
		t.Fatalf("'héllo'[-1] = %q, want o", got.StrVal())
	}
}

func TestContains(t *testing.T) {
	if !Str("hello").Contains(Str("ell")) {
		t.Fatalf("'ell' in 'hello' should hold")
	}
	d := Dict(DictEntry{Key: Str("k"), Value: Int(1)})
	if !d.Contains(Str("k")) {
		t.Fatalf("'k' in dict should hold")
	}
	if d.Contains(Int(1)) {
		t.Fatalf("dict membership tests keys, not values")
	}
}
