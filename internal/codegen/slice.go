package codegen

import (
	"depyler/internal/hir"
	"depyler/internal/rust"
)

// Slicing follows Python semantics: negative bounds count from the
// back, out-of-range bounds clamp instead of panicking, and the step
// sign flips the defaults. Strings always slice by chars so non-ASCII
// input never lands on a byte boundary.
func (g *Generator) convertSlice(d hir.SliceData) (string, error) {
	base, err := g.ConvertExpression(d.Base)
	if err != nil {
		return "", err
	}
	isStr := g.isStr(d.Base)

	var start, stop, step string
	if d.Start != nil {
		if start, err = g.ConvertExpression(d.Start); err != nil {
			return "", err
		}
	}
	if d.Stop != nil {
		if stop, err = g.ConvertExpression(d.Stop); err != nil {
			return "", err
		}
	}
	if d.Step != nil {
		if step, err = g.ConvertExpression(d.Step); err != nil {
			return "", err
		}
	}

	stepLit, stepIsLit := int64(1), d.Step == nil
	if d.Step != nil {
		if n, ok := intLiteral(d.Step); ok {
			stepLit, stepIsLit = n, true
		}
	}

	// Full copy: s[:]
	if d.Start == nil && d.Stop == nil && stepIsLit && stepLit == 1 {
		if isStr {
			return rust.Method(base, "to_string"), nil
		}
		return rust.Method(base, "to_vec"), nil
	}

	// Plain reversal: s[::-1]
	if d.Start == nil && d.Stop == nil && stepIsLit && stepLit == -1 {
		if isStr {
			return rust.Method(base, "chars") + ".rev().collect::<String>()", nil
		}
		return rust.Method(base, "iter") + ".rev().cloned().collect::<Vec<_>>()", nil
	}

	if stepIsLit && stepLit == 1 {
		return g.sliceUnitStep(base, start, stop, d, isStr), nil
	}
	if stepIsLit && stepLit > 1 {
		return g.slicePositiveStep(base, start, stop, step, d, isStr), nil
	}
	return g.sliceGeneral(base, start, stop, step, d, isStr), nil
}

// boundStmt renders the normalisation of one slice bound into _dv_<name>.
func boundStmt(name, src string, present bool, def string) string {
	if !present {
		return "let _dv_" + name + ": i64 = " + def + ";"
	}
	return "let mut _dv_" + name + ": i64 = " + rust.Paren(src) + " as i64; " +
		"if _dv_" + name + " < 0 { _dv_" + name + " += _dv_len; } " +
		"let _dv_" + name + " = _dv_" + name + ".clamp(0, _dv_len);"
}

func (g *Generator) sliceUnitStep(base, start, stop string, d hir.SliceData, isStr bool) string {
	head := "{ let _dv_base = &" + rust.Paren(base) + "; " +
		"let _dv_len = " + sliceLen(isStr) + "; " +
		boundStmt("start", start, d.Start != nil, "0") + " " +
		boundStmt("stop", stop, d.Stop != nil, "_dv_len") + " "
	if isStr {
		return head +
			"if _dv_start < _dv_stop { _dv_base.chars().skip(_dv_start as usize).take((_dv_stop - _dv_start) as usize).collect::<String>() } else { String::new() } }"
	}
	return head +
		"if _dv_start < _dv_stop { _dv_base[_dv_start as usize.._dv_stop as usize].to_vec() } else { Vec::new() } }"
}

func (g *Generator) slicePositiveStep(base, start, stop, step string, d hir.SliceData, isStr bool) string {
	head := "{ let _dv_base = &" + rust.Paren(base) + "; " +
		"let _dv_len = " + sliceLen(isStr) + "; " +
		boundStmt("start", start, d.Start != nil, "0") + " " +
		boundStmt("stop", stop, d.Stop != nil, "_dv_len") + " " +
		"let _dv_take = (_dv_stop - _dv_start).max(0) as usize; "
	stepExpr := rust.Paren(step) + " as usize"
	if isStr {
		return head +
			"_dv_base.chars().skip(_dv_start as usize).take(_dv_take).step_by(" + stepExpr + ").collect::<String>() }"
	}
	return head +
		"_dv_base.iter().skip(_dv_start as usize).take(_dv_take).step_by(" + stepExpr + ").cloned().collect::<Vec<_>>() }"
}

// sliceGeneral handles negative and non-literal steps with an explicit
// walk, matching Python's bound defaults for either step sign.
func (g *Generator) sliceGeneral(base, start, stop, step string, d hir.SliceData, isStr bool) string {
	var sb []string
	sb = append(sb, "let _dv_base = &"+rust.Paren(base)+";")
	if isStr {
		sb = append(sb, "let _dv_chars: Vec<char> = _dv_base.chars().collect();")
		sb = append(sb, "let _dv_len = _dv_chars.len() as i64;")
	} else {
		sb = append(sb, "let _dv_len = _dv_base.len() as i64;")
	}
	sb = append(sb, "let _dv_step: i64 = "+rust.Paren(step)+" as i64;")
	if d.Start != nil {
		sb = append(sb,
			"let mut _dv_start: i64 = "+rust.Paren(start)+" as i64;",
			"if _dv_start < 0 { _dv_start += _dv_len; }",
			"let _dv_start = if _dv_step < 0 { _dv_start.clamp(-1, _dv_len - 1) } else { _dv_start.clamp(0, _dv_len) };")
	} else {
		sb = append(sb, "let _dv_start: i64 = if _dv_step < 0 { _dv_len - 1 } else { 0 };")
	}
	if d.Stop != nil {
		sb = append(sb,
			"let mut _dv_stop: i64 = "+rust.Paren(stop)+" as i64;",
			"if _dv_stop < 0 { _dv_stop += _dv_len; }",
			"let _dv_stop = if _dv_step < 0 { _dv_stop.clamp(-1, _dv_len - 1) } else { _dv_stop.clamp(0, _dv_len) };")
	} else {
		sb = append(sb, "let _dv_stop: i64 = if _dv_step < 0 { -1 } else { _dv_len };")
	}
	if isStr {
		sb = append(sb, "let mut _dv_out = String::new();")
	} else {
		sb = append(sb, "let mut _dv_out = Vec::new();")
	}
	sb = append(sb,
		"let mut _dv_i = _dv_start;",
		"while (_dv_step > 0 && _dv_i < _dv_stop) || (_dv_step < 0 && _dv_i > _dv_stop) {")
	if isStr {
		sb = append(sb, "    _dv_out.push(_dv_chars[_dv_i as usize]);")
	} else {
		sb = append(sb, "    _dv_out.push(_dv_base[_dv_i as usize].clone());")
	}
	sb = append(sb, "    _dv_i += _dv_step;", "}")
	body := "{ "
	for _, s := range sb {
		body += s + " "
	}
	return body + "_dv_out }"
}

func sliceLen(isStr bool) string {
	if isStr {
		return "_dv_base.chars().count() as i64"
	}
	return "_dv_base.len() as i64"
}
