package codegen

import (
	"depyler/internal/diag"
	"depyler/internal/hir"
	"depyler/internal/rust"
)

func (g *Generator) convertStdinMethod(d hir.MethodCallData) (string, error) {
	switch d.Method {
	case "readline":
		return "{ let mut _dv_line = String::new(); std::io::stdin().read_line(&mut _dv_line).ok(); _dv_line }", nil
	case "read":
		g.ctx.Flags.NeedsBufRead = true
		return "{ let mut _dv_s = String::new(); std::io::Read::read_to_string(&mut std::io::stdin(), &mut _dv_s).ok(); _dv_s }", nil
	case "readlines":
		g.ctx.Flags.NeedsBufRead = true
		return "std::io::stdin().lock().lines().map(|_dv_l| _dv_l.unwrap_or_default()).collect::<Vec<String>>()", nil
	}
	return "", diag.UnknownMethod("stdin", d.Method)
}

func (g *Generator) convertFileMethod(d hir.MethodCallData) (string, error) {
	recv, err := g.ConvertExpression(d.Object)
	if err != nil {
		return "", err
	}
	args, err := g.convertAll(d.Args)
	if err != nil {
		return "", err
	}
	switch d.Method {
	case "read":
		if len(args) != 0 {
			return "", diag.Arity("file.read", "no", len(args))
		}
		return "{ let mut _dv_s = String::new(); std::io::Read::read_to_string(&mut " + recv +
			", &mut _dv_s).expect(\"IOError: read failed\"); _dv_s }", nil
	case "readline":
		g.ctx.Flags.NeedsBufRead = true
		return "{ let mut _dv_line = String::new(); std::io::BufRead::read_line(&mut std::io::BufReader::new(&" + recv +
			"), &mut _dv_line).expect(\"IOError: read failed\"); _dv_line }", nil
	case "readlines":
		g.ctx.Flags.NeedsBufRead = true
		return "std::io::BufReader::new(&" + recv +
			").lines().map(|_dv_l| _dv_l.unwrap_or_default()).collect::<Vec<String>>()", nil
	case "write":
		if len(args) != 1 {
			return "", diag.Arity("file.write", "exactly 1", len(args))
		}
		g.ctx.Flags.NeedsIoWrite = true
		return "{ use std::io::Write as _; " + rust.Method(recv, "write_all", rust.Paren(args[0])+".as_bytes()") +
			".expect(\"IOError: write failed\") }", nil
	case "writelines":
		if len(args) != 1 {
			return "", diag.Arity("file.writelines", "exactly 1", len(args))
		}
		g.ctx.Flags.NeedsIoWrite = true
		return "{ use std::io::Write as _; for _dv_line in " + rust.Method(args[0], "iter") + " { " +
			rust.Method(recv, "write_all", "_dv_line.as_bytes()") + ".expect(\"IOError: write failed\"); } }", nil
	case "close":
		// Rust files close on drop; an explicit close becomes a drop.
		return "drop(" + recv + ")", nil
	case "flush":
		g.ctx.Flags.NeedsIoWrite = true
		return "{ use std::io::Write as _; " + rust.Method(recv, "flush") + ".expect(\"IOError: flush failed\") }", nil
	case "seek":
		if len(args) != 1 {
			return "", diag.Arity("file.seek", "exactly 1", len(args))
		}
		return "std::io::Seek::seek(&mut " + recv + ", std::io::SeekFrom::Start(" +
			rust.Paren(args[0]) + " as u64)).expect(\"IOError: seek failed\")", nil
	}
	return "", diag.UnknownMethod("file", d.Method)
}
