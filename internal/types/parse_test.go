package types

import "testing"

func TestParseAnnotation(t *testing.T) {
	cases := []struct {
		input string
		want  *Type
	}{
		{"", Unknown()},
		{"int", Int()},
		{"str", Str()},
		{"Any", Unknown()},
		{"list[int]", ListOf(Int())},
		{"List[int]", ListOf(Int())},
		{"dict[str, int]", DictOf(Str(), Int())},
		{"Dict[str,int]", DictOf(Str(), Int())},
		{"set[str]", SetOf(Str())},
		{"tuple[int, str]", TupleOf(Int(), Str())},
		{"Optional[str]", OptionalOf(Str())},
		{"Optional[list[int]]", OptionalOf(ListOf(Int()))},
		{"Point", Custom("Point")},
		{"collections.Counter", Custom("collections.Counter")},
		{"Callable[int, str]", Func([]*Type{Int()}, Str())},
	}
	for _, tc := range cases {
		got, err := ParseAnnotation(tc.input)
		if err != nil {
			t.Fatalf("ParseAnnotation(%q) error: %v", tc.input, err)
		}
		if !Equal(got, tc.want) {
			t.Fatalf("ParseAnnotation(%q) = %s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestParseAnnotationErrors(t *testing.T) {
	for _, input := range []string{"list[int", "list[int]]", "[int]"} {
		if _, err := ParseAnnotation(input); err == nil {
			t.Fatalf("ParseAnnotation(%q) should fail", input)
		}
	}
}

func TestUnify(t *testing.T) {
	cases := []struct {
		a, b, want *Type
	}{
		{Int(), Int(), Int()},
		{Int(), Float(), Float()},
		{Bool(), Int(), Int()},
		{None(), Str(), OptionalOf(Str())},
		{Str(), None(), OptionalOf(Str())},
		{Str(), Int(), Unknown()},
		{ListOf(Int()), ListOf(Int()), ListOf(Int())},
		{ListOf(Int()), ListOf(Str()), Unknown()},
	}
	for _, tc := range cases {
		got := Unify(tc.a, tc.b)
		if !Equal(got, tc.want) {
			t.Fatalf("Unify(%s, %s) = %s, want %s", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestTypeString(t *testing.T) {
	cases := []struct {
		t    *Type
		want string
	}{
		{DictOf(Str(), ListOf(Int())), "dict[str, list[int]]"},
		{OptionalOf(Custom("Node")), "Optional[Node]"},
		{TupleOf(Int(), Str()), "tuple[int, str]"},
		{nil, "Unknown"},
	}
	for _, tc := range cases {
		if got := tc.t.String(); got != tc.want {
			t.Fatalf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestIsCollectionIncludesStr(t *testing.T) {
	if !Str().IsCollection() {
		t.Fatalf("str should count as a collection for truthiness")
	}
	if Int().IsCollection() {
		t.Fatalf("int is not a collection")
	}
	var nilType *Type
	if !nilType.IsUnknown() {
		t.Fatalf("nil type should be unknown")
	}
}
