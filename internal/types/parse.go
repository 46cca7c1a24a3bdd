package types

import (
	"fmt"
	"strings"
)

// ParseAnnotation converts a Python type annotation string into a Type.
// Both lowercase builtin generics ("list[int]") and typing-module names
// ("List[int]", "Optional[str]") are accepted. Unrecognised names become
// Custom types; an empty string is Unknown.
func ParseAnnotation(s string) (*Type, error) {
	p := &annotParser{src: s}
	p.skipSpace()
	if p.pos >= len(p.src) {
		return Unknown(), nil
	}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("trailing input in annotation %q at offset %d", s, p.pos)
	}
	return t, nil
}

type annotParser struct {
	src string
	pos int
}

func (p *annotParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *annotParser) parseType() (*Type, error) {
	p.skipSpace()
	name := p.ident()
	if name == "" {
		return nil, fmt.Errorf("expected type name at offset %d in %q", p.pos, p.src)
	}
	var args []*Type
	if p.peek() == '[' {
		p.pos++
		for {
			arg, err := p.parseType()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			p.skipSpace()
			if p.peek() == ',' {
				p.pos++
				continue
			}
			break
		}
		if p.peek() != ']' {
			return nil, fmt.Errorf("unclosed '[' in annotation %q", p.src)
		}
		p.pos++
	}
	return fromName(name, args)
}

func (p *annotParser) ident() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '.' {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *annotParser) peek() byte {
	p.skipSpace()
	if p.pos < len(p.src) {
		return p.src[p.pos]
	}
	return 0
}

func fromName(name string, args []*Type) (*Type, error) {
	arg := func(i int) *Type {
		if i < len(args) {
			return args[i]
		}
		return Unknown()
	}
	switch strings.ToLower(name) {
	case "int":
		return Int(), nil
	case "float":
		return Float(), nil
	case "bool":
		return Bool(), nil
	case "str", "string":
		return Str(), nil
	case "none", "nonetype":
		return None(), nil
	case "any", "object":
		return Unknown(), nil
	case "list", "sequence", "iterable":
		return ListOf(arg(0)), nil
	case "dict", "mapping":
		return DictOf(arg(0), arg(1)), nil
	case "set":
		return SetOf(arg(0)), nil
	case "frozenset":
		return FrozenSetOf(arg(0)), nil
	case "tuple":
		return TupleOf(args...), nil
	case "optional":
		return OptionalOf(arg(0)), nil
	case "callable":
		if len(args) == 0 {
			return Func(nil, Unknown()), nil
		}
		return Func(args[:len(args)-1], args[len(args)-1]), nil
	}
	if len(args) > 0 {
		return Generic(name, args...), nil
	}
	return Custom(name), nil
}
