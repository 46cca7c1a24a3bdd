package codegen

import (
	"depyler/internal/diag"
	"depyler/internal/hir"
	"depyler/internal/rust"
)

func (g *Generator) convertSetMethod(recv string, d hir.MethodCallData, args []string) (string, error) {
	m := d.Method
	one := func() (string, error) {
		if len(args) != 1 {
			return "", diag.Arity("set."+m, "exactly 1", len(args))
		}
		return args[0], nil
	}
	switch m {
	case "add":
		a, err := one()
		if err != nil {
			return "", err
		}
		return rust.Method(recv, "insert", g.asOwnedString(d.Args[0], a)), nil
	case "discard":
		a, err := one()
		if err != nil {
			return "", err
		}
		return rust.Method(recv, "remove", g.borrowKey(d.Args[0], a)), nil
	case "remove":
		a, err := one()
		if err != nil {
			return "", err
		}
		return "if !" + rust.Method(recv, "remove", g.borrowKey(d.Args[0], a)) +
			" { panic!(\"KeyError\"); }", nil
	case "pop":
		if len(args) != 0 {
			return "", diag.Arity("set.pop", "no", len(args))
		}
		return "{ let _dv_x = " + rust.Method(recv, "iter") +
			".next().cloned().expect(\"KeyError: pop from an empty set\"); " +
			rust.Method(recv, "remove", "&_dv_x") + "; _dv_x }", nil
	case "clear":
		return rust.Method(recv, "clear"), nil
	case "copy":
		return rust.Method(recv, "clone"), nil
	case "update":
		a, err := one()
		if err != nil {
			return "", err
		}
		return rust.Method(recv, "extend", rust.Method(a, "iter")+".cloned()"), nil
	case "union", "intersection", "difference", "symmetric_difference":
		a, err := one()
		if err != nil {
			return "", err
		}
		g.ctx.Flags.NeedsHashSet = true
		return rust.Method(recv, m, "&"+rust.Paren(a)) + ".cloned().collect::<HashSet<_>>()", nil
	case "issubset":
		a, err := one()
		if err != nil {
			return "", err
		}
		return rust.Method(recv, "is_subset", "&"+rust.Paren(a)), nil
	case "issuperset":
		a, err := one()
		if err != nil {
			return "", err
		}
		return rust.Method(recv, "is_superset", "&"+rust.Paren(a)), nil
	case "isdisjoint":
		a, err := one()
		if err != nil {
			return "", err
		}
		return rust.Method(recv, "is_disjoint", "&"+rust.Paren(a)), nil
	}
	return "", diag.UnknownMethod("set", m)
}
