package codegen

import (
	"strings"

	"depyler/internal/diag"
	"depyler/internal/hir"
	"depyler/internal/rust"
	"depyler/internal/types"
)

// convertModuleCall lowers qualified calls like json.dumps or
// math.sqrt. The module part is whatever the bridge recorded from the
// Python import, so only modules listed in ImportedModules (plus the
// always-available math/json) are routed here.
func (g *Generator) convertModuleCall(d hir.CallData) (string, error) {
	dot := strings.Index(d.Func, ".")
	mod, fn := d.Func[:dot], d.Func[dot+1:]

	// Resolve import aliases to the real module path, so that
	// `import numpy as np` style renames route like the canonical
	// name. The path may itself be dotted, as in os.path.
	if full, ok := g.ctx.ImportedModules[mod]; ok && full != "" && full != mod {
		qualified := full + "." + fn
		dot = strings.Index(qualified, ".")
		mod, fn = qualified[:dot], qualified[dot+1:]
	}

	args := make([]string, len(d.Args))
	for i, a := range d.Args {
		code, err := g.ConvertExpression(a)
		if err != nil {
			return "", err
		}
		args[i] = code
	}

	switch mod {
	case "json":
		return g.convertJSONCall(fn, d, args)
	case "os":
		return g.convertOSCall(fn, d, args)
	case "math":
		return g.convertMathCall(fn, d, args)
	case "time":
		return g.convertTimeCall(fn, d, args)
	case "random":
		return g.convertRandomCall(fn, d, args)
	case "sys":
		return g.convertSysCall(fn, d, args)
	case "re":
		return g.convertReCall(fn, d, args)
	case "datetime":
		return g.convertDatetimeCall(fn, d, args)
	case "subprocess":
		return g.convertSubprocessCall(fn, d, args)
	}
	return "", diag.Unsupported("module call %s()", d.Func)
}

func (g *Generator) convertJSONCall(fn string, d hir.CallData, args []string) (string, error) {
	switch fn {
	case "dumps":
		if len(args) != 1 {
			return "", diag.Arity("json.dumps", "exactly 1", len(args))
		}
		if g.ctx.StrictMode {
			return "format!(\"{:?}\", " + args[0] + ")", nil
		}
		g.ctx.Flags.NeedsSerdeJson = true
		restore := g.ctx.setJSONContext(true)
		code, err := g.ConvertExpression(d.Args[0])
		restore()
		if err != nil {
			return "", err
		}
		return "serde_json::to_string(&" + code + ").unwrap_or_default()", nil
	case "loads":
		if len(args) != 1 {
			return "", diag.Arity("json.loads", "exactly 1", len(args))
		}
		if g.ctx.StrictMode {
			g.ctx.Flags.NeedsDepylerValue = true
			return "DepylerValue::parse_json(&" + args[0] + ")", nil
		}
		g.ctx.Flags.NeedsSerdeJson = true
		return "serde_json::from_str::<serde_json::Value>(&" + args[0] + ").unwrap_or(serde_json::Value::Null)", nil
	case "dump":
		if len(args) != 2 {
			return "", diag.Arity("json.dump", "exactly 2", len(args))
		}
		if g.ctx.StrictMode {
			g.ctx.Flags.NeedsIoWrite = true
			return "write!(" + args[1] + ", \"{:?}\", " + args[0] + ").expect(\"IOError: write failed\")", nil
		}
		g.ctx.Flags.NeedsSerdeJson = true
		return "serde_json::to_writer(&mut " + args[1] + ", &" + args[0] + ").expect(\"IOError: write failed\")", nil
	case "load":
		if len(args) != 1 {
			return "", diag.Arity("json.load", "exactly 1", len(args))
		}
		if g.ctx.StrictMode {
			g.ctx.Flags.NeedsDepylerValue = true
			g.ctx.Flags.NeedsBufRead = true
			return "{ let mut _dv_s = String::new(); std::io::Read::read_to_string(&mut " + args[0] + ", &mut _dv_s).expect(\"IOError: read failed\"); DepylerValue::parse_json(&_dv_s) }", nil
		}
		g.ctx.Flags.NeedsSerdeJson = true
		return "serde_json::from_reader::<_, serde_json::Value>(" + args[0] + ").unwrap_or(serde_json::Value::Null)", nil
	}
	return "", diag.UnknownMethod("json module", fn)
}

func (g *Generator) convertOSCall(fn string, d hir.CallData, args []string) (string, error) {
	switch fn {
	case "getenv", "environ.get":
		switch len(args) {
		case 1:
			return "std::env::var(" + args[0] + ").unwrap_or_default()", nil
		case 2:
			return "std::env::var(" + args[0] + ").unwrap_or_else(|_| " + g.asOwnedString(d.Args[1], args[1]) + ")", nil
		}
		return "", diag.Arity("os.getenv", "1 or 2", len(args))
	case "getcwd":
		return "std::env::current_dir().map(|_dv_p| _dv_p.display().to_string()).unwrap_or_default()", nil
	case "listdir":
		path := "\".\""
		if len(args) >= 1 {
			path = args[0]
		}
		return "std::fs::read_dir(" + path + ").map(|_dv_rd| _dv_rd.filter_map(Result::ok).map(|_dv_e| _dv_e.file_name().to_string_lossy().into_owned()).collect::<Vec<String>>()).unwrap_or_default()", nil
	case "remove", "unlink":
		if len(args) != 1 {
			return "", diag.Arity("os."+fn, "exactly 1", len(args))
		}
		return "std::fs::remove_file(" + args[0] + ").expect(\"OSError: remove failed\")", nil
	case "makedirs":
		if len(args) < 1 {
			return "", diag.Arity("os.makedirs", "at least 1", len(args))
		}
		return "std::fs::create_dir_all(" + args[0] + ").expect(\"OSError: makedirs failed\")", nil
	case "path.exists":
		if len(args) != 1 {
			return "", diag.Arity("os.path.exists", "exactly 1", len(args))
		}
		return "std::path::Path::new(&" + args[0] + ").exists()", nil
	case "path.join":
		if len(args) < 2 {
			return "", diag.Arity("os.path.join", "at least 2", len(args))
		}
		code := "std::path::PathBuf::from(&" + args[0] + ")"
		for _, a := range args[1:] {
			code = rust.Method(code, "join", "&"+a)
		}
		return code + ".display().to_string()", nil
	case "path.basename":
		if len(args) != 1 {
			return "", diag.Arity("os.path.basename", "exactly 1", len(args))
		}
		return "std::path::Path::new(&" + args[0] + ").file_name().map(|_dv_n| _dv_n.to_string_lossy().into_owned()).unwrap_or_default()", nil
	case "path.dirname":
		if len(args) != 1 {
			return "", diag.Arity("os.path.dirname", "exactly 1", len(args))
		}
		return "std::path::Path::new(&" + args[0] + ").parent().map(|_dv_p| _dv_p.display().to_string()).unwrap_or_default()", nil
	}
	return "", diag.UnknownMethod("os module", fn)
}

var mathDirect = map[string]string{
	"sqrt":  "sqrt",
	"floor": "floor",
	"ceil":  "ceil",
	"sin":   "sin",
	"cos":   "cos",
	"tan":   "tan",
	"asin":  "asin",
	"acos":  "acos",
	"atan":  "atan",
	"exp":   "exp",
	"log2":  "log2",
	"log10": "log10",
	"fabs":  "abs",
	"trunc": "trunc",
}

func (g *Generator) convertMathCall(fn string, d hir.CallData, args []string) (string, error) {
	asF64 := func(i int) string {
		if !g.typeOf(d.Args[i]).Is(types.KindFloat) {
			return "(" + rust.Paren(args[i]) + " as f64)"
		}
		return rust.Paren(args[i])
	}
	if m, ok := mathDirect[fn]; ok {
		if len(args) != 1 {
			return "", diag.Arity("math."+fn, "exactly 1", len(args))
		}
		code := asF64(0) + "." + m + "()"
		if fn == "floor" || fn == "ceil" || fn == "trunc" {
			code = "(" + code + " as i64)"
		}
		return code, nil
	}
	switch fn {
	case "pow":
		if len(args) != 2 {
			return "", diag.Arity("math.pow", "exactly 2", len(args))
		}
		return asF64(0) + ".powf(" + asF64(1) + ")", nil
	case "log":
		switch len(args) {
		case 1:
			return asF64(0) + ".ln()", nil
		case 2:
			return asF64(0) + ".log(" + asF64(1) + ")", nil
		}
		return "", diag.Arity("math.log", "1 or 2", len(args))
	case "atan2", "hypot":
		if len(args) != 2 {
			return "", diag.Arity("math."+fn, "exactly 2", len(args))
		}
		return asF64(0) + "." + fn + "(" + asF64(1) + ")", nil
	case "gcd":
		if len(args) != 2 {
			return "", diag.Arity("math.gcd", "exactly 2", len(args))
		}
		return "{ let (mut _dv_a, mut _dv_b) = ((" + rust.Paren(args[0]) + " as i64).abs(), (" + rust.Paren(args[1]) + " as i64).abs()); while _dv_b != 0 { let _dv_t = _dv_b; _dv_b = _dv_a % _dv_b; _dv_a = _dv_t; } _dv_a }", nil
	case "isnan":
		if len(args) != 1 {
			return "", diag.Arity("math.isnan", "exactly 1", len(args))
		}
		return asF64(0) + ".is_nan()", nil
	case "isinf":
		if len(args) != 1 {
			return "", diag.Arity("math.isinf", "exactly 1", len(args))
		}
		return asF64(0) + ".is_infinite()", nil
	}
	return "", diag.UnknownMethod("math module", fn)
}

func (g *Generator) convertTimeCall(fn string, d hir.CallData, args []string) (string, error) {
	switch fn {
	case "time":
		return "std::time::SystemTime::now().duration_since(std::time::UNIX_EPOCH).map(|_dv_d| _dv_d.as_secs_f64()).unwrap_or(0.0)", nil
	case "sleep":
		if len(args) != 1 {
			return "", diag.Arity("time.sleep", "exactly 1", len(args))
		}
		return "std::thread::sleep(std::time::Duration::from_secs_f64(" + rust.Paren(args[0]) + " as f64))", nil
	case "monotonic", "perf_counter":
		return "std::time::Instant::now().elapsed().as_secs_f64()", nil
	}
	return "", diag.UnknownMethod("time module", fn)
}

func (g *Generator) convertRandomCall(fn string, d hir.CallData, args []string) (string, error) {
	// Standard-output Rust stays dependency-free here: a time-seeded
	// linear congruential step stands in for the rand crate.
	lcg := "{ let _dv_seed = std::time::SystemTime::now().duration_since(std::time::UNIX_EPOCH).map(|_dv_d| _dv_d.subsec_nanos() as u64).unwrap_or(0); (_dv_seed.wrapping_mul(6364136223846793005).wrapping_add(1442695040888963407) >> 33) }"
	switch fn {
	case "random":
		return "(" + lcg + " as f64 / (1u64 << 31) as f64)", nil
	case "randint":
		if len(args) != 2 {
			return "", diag.Arity("random.randint", "exactly 2", len(args))
		}
		return "{ let (_dv_lo, _dv_hi) = (" + args[0] + ", " + args[1] + "); _dv_lo + (" + lcg + " as i64).rem_euclid(_dv_hi - _dv_lo + 1) }", nil
	}
	return "", diag.UnknownMethod("random module", fn)
}

func (g *Generator) convertSysCall(fn string, d hir.CallData, args []string) (string, error) {
	switch fn {
	case "exit":
		code := "0"
		if len(args) >= 1 {
			code = rust.Paren(args[0]) + " as i32"
		}
		return "std::process::exit(" + code + ")", nil
	case "stdout.write":
		if len(args) != 1 {
			return "", diag.Arity("sys.stdout.write", "exactly 1", len(args))
		}
		g.ctx.Flags.NeedsIoWrite = true
		return "{ use std::io::Write as _; std::io::stdout().write_all(" + rust.Paren(args[0]) + ".as_bytes()).expect(\"IOError: write failed\") }", nil
	case "stderr.write":
		if len(args) != 1 {
			return "", diag.Arity("sys.stderr.write", "exactly 1", len(args))
		}
		return "eprint!(\"{}\", " + args[0] + ")", nil
	}
	return "", diag.UnknownMethod("sys module", fn)
}

func (g *Generator) convertReCall(fn string, d hir.CallData, args []string) (string, error) {
	g.ctx.Flags.NeedsRegex = true
	switch fn {
	case "compile":
		if len(args) < 1 {
			return "", diag.Arity("re.compile", "at least 1", len(args))
		}
		return "Regex::new(&" + args[0] + ").expect(\"re.error: invalid pattern\")", nil
	case "search", "match":
		if len(args) != 2 {
			return "", diag.Arity("re."+fn, "exactly 2", len(args))
		}
		pat := args[0]
		if fn == "match" {
			// re.match anchors at the start of the string.
			if lit, ok := strLiteral(d.Args[0]); ok {
				pat = rust.StrLit("^" + lit)
			} else {
				pat = "format!(\"^{}\", " + pat + ")"
			}
		}
		return "Regex::new(&" + pat + ").ok().and_then(|_dv_re| _dv_re.find(&" + args[1] + "))", nil
	case "sub":
		if len(args) != 3 {
			return "", diag.Arity("re.sub", "exactly 3", len(args))
		}
		return "Regex::new(&" + args[0] + ").map(|_dv_re| _dv_re.replace_all(&" + args[2] + ", " + args[1] + ".as_str()).into_owned()).unwrap_or_else(|_| " + args[2] + ".clone())", nil
	case "findall":
		if len(args) != 2 {
			return "", diag.Arity("re.findall", "exactly 2", len(args))
		}
		return "Regex::new(&" + args[0] + ").map(|_dv_re| _dv_re.find_iter(&" + args[1] + ").map(|_dv_m| _dv_m.as_str().to_string()).collect::<Vec<String>>()).unwrap_or_default()", nil
	case "split":
		if len(args) != 2 {
			return "", diag.Arity("re.split", "exactly 2", len(args))
		}
		return "Regex::new(&" + args[0] + ").map(|_dv_re| _dv_re.split(&" + args[1] + ").map(str::to_string).collect::<Vec<String>>()).unwrap_or_default()", nil
	}
	return "", diag.UnknownMethod("re module", fn)
}

func (g *Generator) convertDatetimeCall(fn string, d hir.CallData, args []string) (string, error) {
	if g.ctx.StrictMode {
		switch fn {
		case "datetime.now", "datetime.utcnow":
			g.ctx.Flags.NeedsDepylerDateTime = true
			return "DepylerDateTime::now()", nil
		case "date.today":
			g.ctx.Flags.NeedsDepylerDate = true
			return "DepylerDate::today()", nil
		case "timedelta":
			g.ctx.Flags.NeedsDepylerDelta = true
			return "DepylerDelta::new(" + strings.Join(args, ", ") + ")", nil
		}
		return "", diag.Unsupported("datetime.%s in dependency-free output", fn)
	}
	g.ctx.Flags.NeedsChrono = true
	switch fn {
	case "datetime.now":
		return "chrono::Local::now()", nil
	case "datetime.utcnow":
		return "chrono::Utc::now()", nil
	case "date.today":
		return "chrono::Local::now().date_naive()", nil
	case "datetime.fromtimestamp":
		if len(args) != 1 {
			return "", diag.Arity("datetime.fromtimestamp", "exactly 1", len(args))
		}
		return "chrono::DateTime::from_timestamp(" + rust.Paren(args[0]) + " as i64, 0).unwrap_or_default()", nil
	case "timedelta":
		secs := "0"
		for _, kw := range d.Keywords {
			switch kw.Name {
			case "seconds":
				c, err := g.ConvertExpression(kw.Value)
				if err != nil {
					return "", err
				}
				secs = rust.Paren(c) + " as i64"
			case "days":
				c, err := g.ConvertExpression(kw.Value)
				if err != nil {
					return "", err
				}
				secs = "(" + rust.Paren(c) + " as i64) * 86400"
			case "hours":
				c, err := g.ConvertExpression(kw.Value)
				if err != nil {
					return "", err
				}
				secs = "(" + rust.Paren(c) + " as i64) * 3600"
			case "minutes":
				c, err := g.ConvertExpression(kw.Value)
				if err != nil {
					return "", err
				}
				secs = "(" + rust.Paren(c) + " as i64) * 60"
			}
		}
		return "chrono::Duration::seconds(" + secs + ")", nil
	}
	return "", diag.UnknownMethod("datetime module", fn)
}

func (g *Generator) convertSubprocessCall(fn string, d hir.CallData, args []string) (string, error) {
	switch fn {
	case "run", "call":
		if len(d.Args) != 1 {
			return "", diag.Arity("subprocess."+fn, "exactly 1", len(d.Args))
		}
		// Expect the Python list-of-strings form: first element is the
		// program, the rest are its arguments.
		if ld, ok := d.Args[0].Data.(hir.ListData); ok && len(ld.Elems) >= 1 {
			prog, err := g.ConvertExpression(ld.Elems[0])
			if err != nil {
				return "", err
			}
			code := "std::process::Command::new(" + prog + ")"
			for _, a := range ld.Elems[1:] {
				c, err := g.ConvertExpression(a)
				if err != nil {
					return "", err
				}
				code = rust.Method(code, "arg", c)
			}
			return code + ".status().expect(\"OSError: command failed to start\")", nil
		}
		return "std::process::Command::new(\"sh\").arg(\"-c\").arg(&" + args[0] + ").status().expect(\"OSError: command failed to start\")", nil
	case "check_output":
		if len(d.Args) != 1 {
			return "", diag.Arity("subprocess.check_output", "exactly 1", len(d.Args))
		}
		if ld, ok := d.Args[0].Data.(hir.ListData); ok && len(ld.Elems) >= 1 {
			prog, err := g.ConvertExpression(ld.Elems[0])
			if err != nil {
				return "", err
			}
			code := "std::process::Command::new(" + prog + ")"
			for _, a := range ld.Elems[1:] {
				c, err := g.ConvertExpression(a)
				if err != nil {
					return "", err
				}
				code = rust.Method(code, "arg", c)
			}
			return "String::from_utf8_lossy(&" + code + ".output().expect(\"OSError: command failed to start\").stdout).into_owned()", nil
		}
		return "", diag.New(diag.GenArgShape, "subprocess.check_output expects a literal argv list")
	}
	return "", diag.UnknownMethod("subprocess module", fn)
}
