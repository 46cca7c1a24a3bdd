package rust

import "testing"

func TestIdent(t *testing.T) {
	cases := []struct {
		input, want string
	}{
		{"x", "x"},
		{"type", "r#type"},
		{"match", "r#match"},
		{"move", "r#move"},
		{"self", "self"},
		{"count", "count"},
	}
	for _, tc := range cases {
		if got := Ident(tc.input); got != tc.want {
			t.Fatalf("Ident(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestIsNonRawKeyword(t *testing.T) {
	if !IsNonRawKeyword("self") {
		t.Fatalf("self cannot be raw-escaped")
	}
	if IsNonRawKeyword("type") {
		t.Fatalf("type escapes as r#type")
	}
}

func TestStrLit(t *testing.T) {
	cases := []struct {
		input, want string
	}{
		{"hi", `"hi"`},
		{`a"b`, `"a\"b"`},
		{"a\nb", `"a\nb"`},
		{`back\slash`, `"back\\slash"`},
		{"tab\there", `"tab\there"`},
	}
	for _, tc := range cases {
		if got := StrLit(tc.input); got != tc.want {
			t.Fatalf("StrLit(%q) = %s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestParen(t *testing.T) {
	cases := []struct {
		input, want string
	}{
		{"x", "x"},
		{"a + b", "(a + b)"},
		{"f(a, b)", "f(a, b)"},
		{"xs.iter().sum::<i64>()", "xs.iter().sum::<i64>()"},
		{"(a + b)", "(a + b)"},
		{"x as i64", "(x as i64)"},
	}
	for _, tc := range cases {
		if got := Paren(tc.input); got != tc.want {
			t.Fatalf("Paren(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestReceiverWrapsRanges(t *testing.T) {
	if got := Receiver("0..n"); got != "(0..n)" {
		t.Fatalf("Receiver(0..n) = %q", got)
	}
	if got := Receiver("(0..n)"); got != "(0..n)" {
		t.Fatalf("Receiver((0..n)) = %q", got)
	}
	if got := Receiver("xs"); got != "xs" {
		t.Fatalf("Receiver(xs) = %q", got)
	}
}

func TestLiterals(t *testing.T) {
	if got := IntLit(-3); got != "(-3)" {
		t.Fatalf("IntLit(-3) = %q", got)
	}
	if got := IntLit(7); got != "7" {
		t.Fatalf("IntLit(7) = %q", got)
	}
	if got := FloatLit(1); got != "1.0" {
		t.Fatalf("FloatLit(1) = %q", got)
	}
	if got := FloatLit(2.5); got != "2.5" {
		t.Fatalf("FloatLit(2.5) = %q", got)
	}
	if got := FloatLit(-1.5); got != "(-1.5)" {
		t.Fatalf("FloatLit(-1.5) = %q", got)
	}
}

func TestBlockAndClosure(t *testing.T) {
	got := Block([]string{"let x = 1", "x += 1;"}, "x")
	want := "{ let x = 1; x += 1; x }"
	if got != want {
		t.Fatalf("Block = %q, want %q", got, want)
	}
	if got := Closure(true, []string{"x"}, "x + 1"); got != "move |x| x + 1" {
		t.Fatalf("Closure = %q", got)
	}
	if got := TuplePattern([]string{"k", "v"}); got != "(k, v)" {
		t.Fatalf("TuplePattern = %q", got)
	}
	if got := TuplePattern([]string{"type"}); got != "r#type" {
		t.Fatalf("TuplePattern = %q", got)
	}
}
