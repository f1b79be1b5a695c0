package backends

// Buffer represents the flat storage backing one named array during execution.
// It is opaque from the VecJIT core perspective: the core receives it from the
// caller and hands it to Executor.BindArray untouched. Backends document which
// concrete types they accept -- the govec backend takes []byte and string.
type Buffer any

// Kernel is an opaque handle to one kernel under construction (and, after
// Compile, the compiled artifact). It is populated in place through the
// registration calls, in the order they are made -- order is execution order.
//
// The handle holds native (or otherwise non-garbage-collected) resources:
// the owner must call Finalize exactly when done. Finalize is idempotent.
//
// A Kernel and its derived Executors are not safe for concurrent use.
type Kernel interface {
	// Name of the kernel, given at creation.
	Name() string

	// AddSource declares a named input array with the given element size in bytes.
	// A non-nil error indicates a naming or capacity conflict inside the backend.
	AddSource(elemSize int, name string) error

	// AddDestination declares a named output array.
	AddDestination(elemSize int, name string) error

	// AddTemporary declares a named per-invocation scratch array, not exposed to
	// the caller at execution time.
	AddTemporary(elemSize int, name string) error

	// AddConstant declares a named immediate value, broadcast across all lanes.
	// The value is the raw lane bit pattern, truncated to elemSize bytes.
	AddConstant(elemSize int, name string, value int64) error

	// AddOp appends one operation. Opcodes and their arity are listed in OpArity;
	// op3 must be the empty string for arity-2 opcodes.
	AddOp(opcode, op1, op2, op3 string) error

	// Compile the registered sequence into an executable kernel. Compiling an
	// already-compiled kernel is valid and must not corrupt it.
	Compile() CompileStatus

	// NewExecutor creates a fresh single-invocation executor bound to this
	// compiled kernel. It fails if the kernel was not successfully compiled.
	NewExecutor() (Executor, error)

	// Finalize immediately frees the resources associated with the handle.
	// Idempotent: calling it a second time is a no-op.
	Finalize()
}

// Executor drives one invocation of a compiled Kernel: set the iteration count,
// bind one buffer per declared source and destination, and Run. Executors are
// cheap and short-lived; create a fresh one per invocation.
type Executor interface {
	// SetIterations sets the number of lanes (elements per array) to process.
	SetIterations(n int)

	// BindArray attaches the caller's buffer to the named source or destination
	// array. Buffer sizing is the caller's responsibility: no bounds checking is
	// performed against iterations x element size.
	BindArray(name string, buffer Buffer) error

	// Run executes the kernel to completion, synchronously.
	Run() error

	// Finalize releases the executor. Idempotent.
	Finalize()
}
