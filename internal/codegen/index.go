package codegen

import (
	"strconv"
	"strings"

	"depyler/internal/hir"
	"depyler/internal/rust"
	"depyler/internal/types"
)

const indexErrorMsg = `"IndexError: list index out of range"`

func (g *Generator) convertIndex(d hir.IndexData) (string, error) {
	// os.environ[k] reads the process environment directly.
	if attr, ok := d.Base.Data.(hir.AttributeData); ok && attr.Attr == "environ" {
		if v, ok := varName(attr.Value); ok && v == "os" {
			key, err := g.ConvertExpression(d.Index)
			if err != nil {
				return "", err
			}
			return "std::env::var(" + key + ").unwrap_or_default()", nil
		}
	}

	base, err := g.ConvertExpression(d.Base)
	if err != nil {
		return "", err
	}
	index, err := g.ConvertExpression(d.Index)
	if err != nil {
		return "", err
	}

	baseType := g.typeOf(d.Base)

	if g.isDepylerValue(d.Base) {
		g.ctx.Flags.NeedsDepylerValue = true
		return rust.Method(base, "clone") + ".py_index(DepylerValue::from(" + index + "))", nil
	}

	switch baseType.Kind {
	case types.KindTuple:
		return g.indexTuple(d, base, index, baseType)
	case types.KindDict:
		return g.indexDict(d, base, index, baseType), nil
	case types.KindStr:
		return g.indexString(d, base, index), nil
	case types.KindList:
		return g.indexList(d, base, index), nil
	}

	// Ambiguous base: break the tie the way the receiver evidence
	// leans, defaulting to the numeric (Vec) route.
	if _, ok := strLiteral(d.Index); ok {
		return g.indexDict(d, base, index, types.DictOf(types.Str(), types.Unknown())), nil
	}
	if _, ok := intLiteral(d.Index); ok {
		return g.indexList(d, base, index), nil
	}
	if name, ok := varName(d.Index); ok {
		if g.typeOf(d.Index).Is(types.KindStr) || looksLikeDictKey(name) {
			return g.indexDict(d, base, index, types.DictOf(types.Str(), types.Unknown())), nil
		}
	}
	return g.indexList(d, base, index), nil
}

func (g *Generator) indexTuple(d hir.IndexData, base, index string, baseType *types.Type) (string, error) {
	if n, ok := intLiteral(d.Index); ok {
		if n < 0 {
			n += int64(len(baseType.Elems))
		}
		return rust.Paren(base) + "." + strconv.FormatInt(n, 10), nil
	}
	// Tuples have no runtime indexing; splat the fields into an array.
	fields := make([]string, len(baseType.Elems))
	for i := range baseType.Elems {
		fields[i] = rust.Paren(base) + "." + strconv.Itoa(i)
	}
	return "[" + strings.Join(fields, ", ") + "][" + rust.Paren(index) + " as usize]", nil
}

func (g *Generator) indexDict(d hir.IndexData, base, index string, baseType *types.Type) string {
	key := g.borrowKey(d.Index, index)
	if baseType.Key.IsUnknown() {
		// Non-string-key dict under the tagged representation.
		if n, ok := intLiteral(d.Index); ok {
			g.ctx.Flags.NeedsDepylerValue = true
			key = "&DepylerValue::Int(" + strconv.FormatInt(n, 10) + ")"
		} else if f, ok := d.Index.Data.(hir.LiteralData); ok && f.Kind == hir.LiteralFloat {
			g.ctx.Flags.NeedsDepylerValue = true
			key = "&DepylerValue::Float(" + rust.FloatLit(f.FloatValue) + ")"
		}
	}
	return rust.Method(base, "get", key) + ".cloned().unwrap_or_default()"
}

func (g *Generator) indexString(d hir.IndexData, base, index string) string {
	charToStr := ".map(|_dv_c| _dv_c.to_string()).unwrap_or_default()"
	if n, ok := intLiteral(d.Index); ok {
		if n >= 0 {
			return rust.Method(base, "chars") + ".nth(" + strconv.FormatInt(n, 10) + ")" + charToStr
		}
		// Negative literal indexes walk from the back.
		return rust.Method(base, "chars") + ".rev().nth(" + strconv.FormatInt(-n-1, 10) + ")" + charToStr
	}
	return "{ " +
		"let _dv_s = &" + rust.Paren(base) + "; " +
		"let _dv_i: i64 = " + rust.Paren(index) + " as i64; " +
		"let _dv_len = _dv_s.chars().count() as i64; " +
		"let _dv_idx = if _dv_i < 0 { _dv_i + _dv_len } else { _dv_i }; " +
		"_dv_s.chars().nth(_dv_idx as usize)" + charToStr +
		" }"
}

func (g *Generator) indexList(d hir.IndexData, base, index string) string {
	if n, ok := intLiteral(d.Index); ok && n >= 0 {
		return rust.Method(base, "get", strconv.FormatInt(n, 10)) + ".cloned().expect(" + indexErrorMsg + ")"
	}
	if name, ok := varName(d.Index); ok {
		if _, neg := intLiteral(d.Index); !neg {
			return rust.Method(base, "get", rust.Ident(name)+" as usize") + ".cloned().expect(" + indexErrorMsg + ")"
		}
	}
	// Negative or compound index: normalise inside a block so the base
	// expression is evaluated once.
	return "{ " +
		"let _dv_list = &" + rust.Paren(base) + "; " +
		"let _dv_i: i64 = " + rust.Paren(index) + " as i64; " +
		"let _dv_idx = if _dv_i < 0 { (_dv_list.len() as i64 + _dv_i) as usize } else { _dv_i as usize }; " +
		"_dv_list.get(_dv_idx).cloned().expect(" + indexErrorMsg + ")" +
		" }"
}
