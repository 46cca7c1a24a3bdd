package codegen

import (
	"depyler/internal/diag"
	"depyler/internal/hir"
	"depyler/internal/rust"
)

// convertPathMethod lowers pathlib.Path calls onto std::path::PathBuf.
// Attribute-style pathlib members (name, stem, suffix, parent) arrive
// through attribute access, not here.
func (g *Generator) convertPathMethod(d hir.MethodCallData) (string, error) {
	recv, err := g.ConvertExpression(d.Object)
	if err != nil {
		return "", err
	}
	args, err := g.convertAll(d.Args)
	if err != nil {
		return "", err
	}
	switch d.Method {
	case "exists":
		return rust.Method(recv, "exists"), nil
	case "is_file":
		return rust.Method(recv, "is_file"), nil
	case "is_dir":
		return rust.Method(recv, "is_dir"), nil
	case "read_text":
		return "std::fs::read_to_string(&" + recv + ").expect(\"IOError: read failed\")", nil
	case "write_text":
		if len(args) != 1 {
			return "", diag.Arity("Path.write_text", "exactly 1", len(args))
		}
		return "std::fs::write(&" + recv + ", " + args[0] + ").expect(\"IOError: write failed\")", nil
	case "read_bytes":
		return "std::fs::read(&" + recv + ").expect(\"IOError: read failed\")", nil
	case "joinpath":
		if len(args) < 1 {
			return "", diag.Arity("Path.joinpath", "at least 1", len(args))
		}
		code := recv
		for i, a := range args {
			code = rust.Method(code, "join", g.borrowKey(d.Args[i], a))
		}
		return code, nil
	case "mkdir":
		return "std::fs::create_dir_all(&" + recv + ").expect(\"OSError: mkdir failed\")", nil
	case "unlink":
		return "std::fs::remove_file(&" + recv + ").expect(\"OSError: unlink failed\")", nil
	case "resolve":
		return rust.Method(recv, "canonicalize") + ".unwrap_or_else(|_| " + rust.Method(recv, "clone") + ")", nil
	case "glob":
		return "", diag.Unsupported("Path.glob requires a globbing crate the output does not carry")
	case "iterdir":
		return "std::fs::read_dir(&" + recv +
			").map(|_dv_rd| _dv_rd.filter_map(Result::ok).map(|_dv_e| _dv_e.path()).collect::<Vec<std::path::PathBuf>>()).unwrap_or_default()", nil
	case "with_suffix":
		if len(args) != 1 {
			return "", diag.Arity("Path.with_suffix", "exactly 1", len(args))
		}
		return "{ let mut _dv_p = " + rust.Method(recv, "clone") + "; _dv_p.set_extension(" +
			rust.Paren(args[0]) + ".trim_start_matches('.')); _dv_p }", nil
	}
	return "", diag.UnknownMethod("Path", d.Method)
}
