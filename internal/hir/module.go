package hir

import (
	"depyler/internal/source"
	"depyler/internal/types"
)

// Param is one function parameter with its reconstructed type.
type Param struct {
	Name string
	Type *types.Type
}

// Function is the unit of lowering handed to the driver. Statement-level
// lowering lives upstream; the body arrives as a flat list of expression
// statements, the last of which becomes the return value when the
// function returns something.
type Function struct {
	Name    string
	Params  []Param
	Ret     *types.Type
	Body    []*Expr
	IsAsync bool
	Span    source.Span
}

// Module is a set of functions plus the module-level facts the generator
// consumes.
type Module struct {
	Name      string
	Functions []*Function

	// ClassNames lists user-defined classes in the module.
	ClassNames []string

	// ClassFieldTypes maps "Class.field" to its reconstructed type.
	ClassFieldTypes map[string]*types.Type

	// FunctionReturnTypes maps function name to return type.
	FunctionReturnTypes map[string]*types.Type

	// PropertyMethods lists @property methods that need () in Rust.
	PropertyMethods []string

	// ImportedModules maps local alias to Python module path.
	ImportedModules map[string]string
}
