package diag

import (
	"fmt"
)

// Code identifies a diagnostic category. Codegen codes live in the
// 4000 range; driver-level codes in the 5000 range.
type Code uint16

const (
	UnknownCode Code = 0

	// Expression generator
	GenUnknownMethod Code = 4001
	GenArityMismatch Code = 4002
	GenArgShape      Code = 4003
	GenUnsupported   Code = 4004
	GenInternal      Code = 4005
	GenBadIdentifier Code = 4006

	// Driver
	DrvDecode Code = 5001
	DrvCache  Code = 5002
	DrvWrite  Code = 5003
)

func (c Code) String() string {
	return fmt.Sprintf("DEP%04d", uint16(c))
}
