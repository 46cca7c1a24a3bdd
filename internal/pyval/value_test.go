package pyval

import "testing"

func TestIsTrue(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want bool
	}{
		{"none", None(), false},
		{"zero int", Int(0), false},
		{"nonzero int", Int(-3), true},
		{"zero float", Float(0), false},
		{"empty str", Str(""), false},
		{"str", Str("x"), true},
		{"false", Bool(false), false},
		{"empty list", List(), false},
		{"list", List(Int(0)), true},
		{"empty dict", Dict(), false},
	}
	for _, tc := range cases {
		if got := tc.v.IsTrue(); got != tc.want {
			t.Fatalf("%s: IsTrue() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestStringRendering(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Bool(true), "True"},
		{None(), "None"},
		{Float(1), "1.0"},
		{Float(2.5), "2.5"},
		{Str("hi"), "hi"},
		{List(Int(1), Str("a")), "[1, 'a']"},
		{Tuple(Int(1)), "(1,)"},
		{Tuple(Int(1), Int(2)), "(1, 2)"},
		{Dict(DictEntry{Key: Str("k"), Value: Int(1)}), "{'k': 1}"},
	}
	for _, tc := range cases {
		if got := tc.v.String(); got != tc.want {
			t.Fatalf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestRepr(t *testing.T) {
	if got := Str("it's").Repr(); got != `'it\'s'` {
		t.Fatalf("Repr() = %q", got)
	}
	if got := Int(5).Repr(); got != "5" {
		t.Fatalf("Repr() = %q", got)
	}
}

func TestLenCountsRunes(t *testing.T) {
	if got := Str("héllo").Len(); got != 5 {
		t.Fatalf("len('héllo') = %d, want 5", got)
	}
	if got := Int(3).Len(); got != -1 {
		t.Fatalf("len(3) = %d, want -1", got)
	}
}

func TestToI64(t *testing.T) {
	cases := []struct {
		v    Value
		want int64
	}{
		{Float(3.9), 3},
		{Float(-3.9), -3},
		{Bool(true), 1},
		{Str(" 42 "), 42},
		{Str("nope"), 0},
	}
	for _, tc := range cases {
		if got := tc.v.ToI64(); got != tc.want {
			t.Fatalf("ToI64(%v) = %d, want %d", tc.v, got, tc.want)
		}
	}
}

func TestTitleFolding(t *testing.T) {
	if got := Title("hello world"); got != "Hello World" {
		t.Fatalf("Title = %q", got)
	}
	if got := Capitalize("hELLO"); got != "Hello" {
		t.Fatalf("Capitalize = %q", got)
	}
	if got := Swapcase("AbC"); got != "aBc" {
		t.Fatalf("Swapcase = %q", got)
	}
}
