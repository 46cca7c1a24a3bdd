package codegen

import (
	"depyler/internal/diag"
	"depyler/internal/hir"
	"depyler/internal/rust"
	"depyler/internal/types"
)

// convertMethodCall routes obj.method(args) to a family dispatcher.
// Order matters: exact special cases first, then user classes, then the
// string whitelist (pre-empting generic dispatch so string methods on
// loosely-typed parameters still lower), then receiver-type evidence,
// then name tables, then the generic fallback.
func (g *Generator) convertMethodCall(d hir.MethodCallData) (string, error) {
	if code, handled, err := g.convertSpecialMethod(d); handled {
		return code, err
	}

	recv, err := g.ConvertExpression(d.Object)
	if err != nil {
		return "", err
	}
	args, err := g.convertAll(d.Args)
	if err != nil {
		return "", err
	}

	if _, ok := g.isClassInstance(d.Object); ok {
		return g.convertUserMethod(recv, d)
	}

	m := d.Method
	if isStrWhitelisted(m) && !g.strMethodPreempted(m, d.Object) {
		return g.convertStrMethod(recv, d, args)
	}

	switch {
	case g.isSet(d.Object) || setOnlyMethods[m]:
		return g.convertSetMethod(recv, d, args)
	case g.isDeque(d.Object):
		return g.convertDequeMethod(recv, d, args)
	case g.isCounter(d.Object):
		return g.convertCounterMethod(recv, d, args)
	case g.isDict(d.Object) || dictOnlyMethods[m] || (m == "get" && g.isJSONValue(d.Object)):
		return g.convertDictMethod(recv, d, args)
	case g.isNumpy(d.Object):
		return g.convertNumpyMethod(recv, d, args)
	case g.isDepylerValue(d.Object):
		return g.convertValueMethod(recv, d, args)
	}

	if code, handled, err := g.convertListMethod(recv, d, args); handled {
		return code, err
	}
	if isStrWhitelisted(m) {
		return g.convertStrMethod(recv, d, args)
	}

	return g.genericMethodCall(recv, d)
}

// strMethodPreempted keeps ambiguous names away from the string path
// when receiver-type evidence points elsewhere. count and index live in
// both list and string tables; pop/update/clear are collection methods.
func (g *Generator) strMethodPreempted(m string, obj *hir.Expr) bool {
	// count/index exist on both lists and strings: the string path wins
	// only on positive string evidence, otherwise the list table takes
	// them.
	if m == "count" || m == "index" {
		return !g.isStr(obj)
	}
	t := g.typeOf(obj)
	return t.IsCollection() && !t.Is(types.KindStr)
}

func isStrWhitelisted(m string) bool {
	return strReturningMethods[m] || strPredicateMethods[m] || strOnlyMethods[m] ||
		m == "count" || m == "index" || m == "hex"
}

// convertUserMethod emits a direct call on a user-class instance,
// auto-borrowing class-instance arguments since methods typically take
// &Self peers. @property methods arrive as attribute reads, not here.
func (g *Generator) convertUserMethod(recv string, d hir.MethodCallData) (string, error) {
	args, err := g.convertCallArgs(d.Args)
	if err != nil {
		return "", err
	}
	return rust.Method(recv, rust.Ident(d.Method), args...), nil
}

// convertSpecialMethod catches exact patterns before family dispatch:
// sys stream reads, file I/O, regex match objects, pathlib, datetime,
// csv writers, and hashers.
func (g *Generator) convertSpecialMethod(d hir.MethodCallData) (string, bool, error) {
	// sys.stdin.readline() / sys.stdin.read()
	if attr, ok := d.Object.Data.(hir.AttributeData); ok {
		if v, ok := attr.Value.Data.(hir.VarData); ok && v.Name == "sys" && attr.Attr == "stdin" {
			code, err := g.convertStdinMethod(d)
			return code, true, err
		}
	}

	t := g.typeOf(d.Object)
	if t.Is(types.KindCustom) {
		switch {
		case isFileType(t.Name):
			code, err := g.convertFileMethod(d)
			return code, true, err
		case isRegexMatchType(t.Name):
			code, err := g.convertMatchMethod(d)
			return code, true, err
		case isRegexType(t.Name):
			code, err := g.convertRegexMethod(d)
			return code, true, err
		case isPathType(t.Name):
			code, err := g.convertPathMethod(d)
			return code, true, err
		case isDatetimeType(t.Name):
			code, err := g.convertDatetimeMethod(d)
			return code, true, err
		case isCSVWriterType(t.Name):
			code, err := g.convertCSVWriterMethod(d)
			return code, true, err
		case isHasherType(t.Name):
			code, err := g.convertHasherMethod(d)
			return code, true, err
		}
	}

	// bytes.hex() from hashlib digests.
	if d.Method == "hex" && len(d.Args) == 0 {
		if mc, ok := d.Object.Data.(hir.MethodCallData); ok && mc.Method == "digest" {
			inner, err := g.ConvertExpression(mc.Object)
			if err != nil {
				return "", true, err
			}
			g.ctx.Flags.NeedsHex = true
			g.ctx.Flags.NeedsDigest = true
			return "hex::encode(" + rust.Method(inner, "finalize_reset") + ")", true, nil
		}
	}

	return "", false, nil
}

// genericMethodCall is the last-resort lowering: receiver.method(args)
// with raw-identifier escaping and class-instance auto-borrow.
func (g *Generator) genericMethodCall(recv string, d hir.MethodCallData) (string, error) {
	if rust.IsNonRawKeyword(d.Method) {
		return "", diag.New(diag.GenBadIdentifier,
			"method name %q conflicts with a special Rust keyword", d.Method)
	}
	args, err := g.convertCallArgs(d.Args)
	if err != nil {
		return "", err
	}
	return rust.Method(recv, rust.Ident(d.Method), args...), nil
}

func (g *Generator) isDeque(e *hir.Expr) bool {
	t := g.typeOf(e)
	if t.Is(types.KindCustom) && (t.Name == "deque" || t.Name == "Deque") {
		return true
	}
	if c, ok := e.Data.(hir.CallData); ok && c.Func == "collections.deque" {
		return true
	}
	return false
}

func (g *Generator) isCounter(e *hir.Expr) bool {
	t := g.typeOf(e)
	if t.Is(types.KindCustom) && t.Name == "Counter" {
		return true
	}
	if c, ok := e.Data.(hir.CallData); ok && c.Func == "collections.Counter" {
		return true
	}
	return false
}

func isRegexType(name string) bool {
	return name == "Pattern" || name == "re.Pattern" || name == "Regex"
}

func isRegexMatchType(name string) bool {
	return name == "Match" || name == "re.Match"
}

func isPathType(name string) bool {
	return name == "Path" || name == "PosixPath" || name == "pathlib.Path" || name == "PathBuf"
}

func isDatetimeType(name string) bool {
	switch name {
	case "datetime", "date", "datetime.datetime", "datetime.date", "DateTime", "NaiveDate":
		return true
	}
	return false
}

func isCSVWriterType(name string) bool {
	return name == "csv.writer" || name == "Writer" || name == "DictWriter"
}

func isHasherType(name string) bool {
	switch name {
	case "md5", "sha1", "sha256", "sha512", "Hasher", "_Hash":
		return true
	}
	return false
}
