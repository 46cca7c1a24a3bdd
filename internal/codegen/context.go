// Package codegen lowers HIR expressions to Rust source text. It is
// the core of the transpiler: one recursive conversion function,
// parameterised by a mutable per-function context, with one dispatcher
// per Python collection/object family.
package codegen

import (
	"depyler/internal/types"
)

// Flags are the write-only capability outputs of lowering. The module
// generator reads them to emit `use` declarations and to append the
// DepylerValue runtime when required. Once set they stay set for the
// rest of the compilation.
type Flags struct {
	NeedsHashMap         bool
	NeedsHashSet         bool
	NeedsVecDeque        bool
	NeedsSerdeJson       bool
	NeedsChrono          bool
	NeedsTokio           bool
	NeedsBufRead         bool
	NeedsIoWrite         bool
	NeedsCsv             bool
	NeedsHex             bool
	NeedsDigest          bool
	NeedsArc             bool
	NeedsRegex           bool
	NeedsCmpReverse      bool
	NeedsDepylerValue    bool
	NeedsDepylerDate     bool
	NeedsDepylerDateTime bool
	NeedsDepylerDelta    bool
}

// Merge ors the other flag set into f.
func (f *Flags) Merge(other Flags) {
	if other.NeedsHashMap {
		f.NeedsHashMap = true
	}
	if other.NeedsHashSet {
		f.NeedsHashSet = true
	}
	if other.NeedsVecDeque {
		f.NeedsVecDeque = true
	}
	if other.NeedsSerdeJson {
		f.NeedsSerdeJson = true
	}
	if other.NeedsChrono {
		f.NeedsChrono = true
	}
	if other.NeedsTokio {
		f.NeedsTokio = true
	}
	if other.NeedsBufRead {
		f.NeedsBufRead = true
	}
	if other.NeedsIoWrite {
		f.NeedsIoWrite = true
	}
	if other.NeedsCsv {
		f.NeedsCsv = true
	}
	if other.NeedsHex {
		f.NeedsHex = true
	}
	if other.NeedsDigest {
		f.NeedsDigest = true
	}
	if other.NeedsArc {
		f.NeedsArc = true
	}
	if other.NeedsRegex {
		f.NeedsRegex = true
	}
	if other.NeedsCmpReverse {
		f.NeedsCmpReverse = true
	}
	if other.NeedsDepylerValue {
		f.NeedsDepylerValue = true
	}
	if other.NeedsDepylerDate {
		f.NeedsDepylerDate = true
	}
	if other.NeedsDepylerDateTime {
		f.NeedsDepylerDateTime = true
	}
	if other.NeedsDepylerDelta {
		f.NeedsDepylerDelta = true
	}
}

// Context is the mutable code-generation state threaded through the
// recursion. One expression tree is lowered at a time; every scoped
// mutation must be undone on all exit paths (see bindVar), while
// capability flags are deliberately sticky.
type Context struct {
	// Type tracking.
	VarTypes            map[string]*types.Type
	ClassFieldTypes     map[string]*types.Type
	ModuleConstantTypes map[string]*types.Type
	FunctionReturnTypes map[string]*types.Type
	FnStrParams         map[string]bool // parameters known to be &str
	MutOptionDictParams map[string]bool
	NumpyVars           map[string]bool
	CharIterVars        map[string]bool // loop vars bound to char via string iteration

	// Result/Option tracking.
	ResultReturningFunctions map[string]bool
	OptionReturningFunctions map[string]bool
	PrecomputedOptionFields  map[string]bool
	OptionUnwrapMap          map[string]string // var -> unwrapped binding name

	// Capability flags.
	Flags Flags

	// Mode flags.
	InJSONContext            bool
	CurrentFunctionCanFail   bool
	InGenerator              bool
	InCmdHandler             bool
	IsClassMethod            bool
	StrictMode               bool // stdlib-only output, no serde_json/chrono/tokio
	ReturnsImplIterator      bool
	ForceDictValueOptionWrap bool

	// Current statement context.
	CurrentAssignType *types.Type
	CurrentReturnType *types.Type

	// Name tracking.
	ClassNames      map[string]bool
	PropertyMethods map[string]bool
	ImportedModules map[string]string
}

// NewContext returns an empty context ready for one function.
func NewContext() *Context {
	return &Context{
		VarTypes:                 map[string]*types.Type{},
		ClassFieldTypes:          map[string]*types.Type{},
		ModuleConstantTypes:      map[string]*types.Type{},
		FunctionReturnTypes:      map[string]*types.Type{},
		FnStrParams:              map[string]bool{},
		MutOptionDictParams:      map[string]bool{},
		NumpyVars:                map[string]bool{},
		CharIterVars:             map[string]bool{},
		ResultReturningFunctions: map[string]bool{},
		OptionReturningFunctions: map[string]bool{},
		PrecomputedOptionFields:  map[string]bool{},
		OptionUnwrapMap:          map[string]string{},
		ClassNames:               map[string]bool{},
		PropertyMethods:          map[string]bool{},
		ImportedModules:          map[string]string{},
	}
}

// VarType looks a variable's tracked type up; nil means no evidence.
func (c *Context) VarType(name string) *types.Type {
	if t, ok := c.VarTypes[name]; ok {
		return t
	}
	if t, ok := c.ModuleConstantTypes[name]; ok {
		return t
	}
	return nil
}

// bindVar registers a scoped variable type and returns the restore
// function. Callers must defer the restore so the binding is undone on
// every exit path, keeping VarTypes idempotent across a lowering.
func (c *Context) bindVar(name string, t *types.Type) func() {
	prev, had := c.VarTypes[name]
	c.VarTypes[name] = t
	return func() {
		if had {
			c.VarTypes[name] = prev
		} else {
			delete(c.VarTypes, name)
		}
	}
}

// bindCharVar marks a loop variable as a char iteration binding, also
// scoped.
func (c *Context) bindCharVar(name string) func() {
	prev, had := c.CharIterVars[name]
	c.CharIterVars[name] = true
	return func() {
		if had {
			c.CharIterVars[name] = prev
		} else {
			delete(c.CharIterVars, name)
		}
	}
}

// BindVar is the exported form of bindVar for the driver, which scopes
// parameter types around a function body.
func (c *Context) BindVar(name string, t *types.Type) func() {
	return c.bindVar(name, t)
}

// setJSONContext saves and sets the nested-json mode; returns restore.
func (c *Context) setJSONContext(v bool) func() {
	prev := c.InJSONContext
	c.InJSONContext = v
	return func() { c.InJSONContext = prev }
}
