package backends

// CompileStatus is the result of Kernel.Compile.
//
// CompileOK is the success sentinel; every other value describes a specific
// compilation failure. It is an inspectable result, not an error: callers may
// legitimately want to report which kernel failed to compile and why.
type CompileStatus int

//go:generate go tool enumer -type=CompileStatus -trimprefix=Compile -output=gen_compilestatus_enumer.go status.go

const (
	// CompileOK means the kernel compiled successfully.
	CompileOK CompileStatus = iota

	// CompileUnknownError is an unclassified failure inside the backend compiler.
	CompileUnknownError

	// CompileMissingRule means the backend has no lowering rule for an opcode,
	// even though the opcode is part of the instruction-set catalog.
	CompileMissingRule

	// CompileUnknownParseError is an unclassified failure while parsing the
	// registered instruction sequence.
	CompileUnknownParseError

	// CompileParseError means the registered instruction sequence is malformed:
	// an opcode outside the catalog, or operands not matching the opcode arity.
	CompileParseError

	// CompileVariableError means an operand references a name with no
	// corresponding array declaration (unresolved or mistyped operand).
	CompileVariableError
)

// Ok returns whether the status is the success sentinel.
func (i CompileStatus) Ok() bool { return i == CompileOK }
