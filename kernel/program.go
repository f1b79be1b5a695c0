// Package kernel is the core of VecJIT: it builds and validates data-parallel
// compute kernels and drives their compilation and execution on a backend.
//
// The main elements in the package are:
//
//   - Sequence: a flat, ordered builder of array declarations (sources,
//     destinations, temporaries, constants) and operation invocations. See the
//     instruction-set catalog in package backends.
//
//   - Program: owns exactly one compiled-kernel handle from a backend,
//     composes one or more Sequences into it while enforcing global namespace
//     uniqueness, and drives the compile / bind / execute / release cycle.
//
// Typical use:
//
//	backend := backends.New() // e.g. import _ ".../backends/govec"
//	prog := kernel.New(backend)
//	defer prog.Finalize()
//	err := prog.Append(kernel.NewSequence().
//		Source(1, "input").
//		Dest(1, "output").
//		Const(1, "one", 1).
//		Op("addssb", "output", "input", "one"))
//	...
//	status, err := prog.Run(14, map[string]backends.Buffer{
//		"input":  "abcdefghijklmn",
//		"output": out, // a []byte of 14 bytes
//	})
//
// Programs are single-threaded: a Program, its handle and its executors are
// not safe for concurrent use. Callers needing parallelism use separate
// Programs with separate handles.
package kernel

import (
	"runtime"
	"slices"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"github.com/vecjit/vecjit/backends"
	"golang.org/x/exp/maps"
	"k8s.io/klog/v2"
)

// Program owns one backend kernel handle and composes instruction sequences
// into it. The handle is exclusively owned: it is created in New, never
// shared, and released exactly once by Finalize (or by the garbage collector's
// finalizer, whichever comes first).
type Program struct {
	handle backends.Kernel

	// Names accumulated across every appended sequence, in append order.
	sources []string
	dests   []string

	sourceSet map[string]bool
	destSet   map[string]bool
}

// New creates a Program holding a fresh kernel handle from the backend.
//
// The returned Program must be released with Finalize when done; a GC
// finalizer is registered as a safety net, but explicit release is the
// supported path.
func New(backend backends.Backend) *Program {
	p := &Program{
		handle:    backend.NewKernel(""),
		sourceSet: make(map[string]bool),
		destSet:   make(map[string]bool),
	}
	backends.RegisterFinalizer(p)
	return p
}

// Append validates seq against the Program's global namespace and, on success,
// registers its records with the backend handle and extends the tracked
// source/destination name lists.
//
// The disjointness checks run in a fixed order, each failing on the first
// violation with the offending name:
//
//	(a) incoming sources vs. already-appended sources;
//	(b) incoming destinations vs. already-appended destinations;
//	(c) incoming sources vs. incoming destinations;
//	(d) incoming sources vs. existing destinations and incoming destinations
//	    vs. existing sources (what remains of full cross-role disjointness
//	    after (a)-(c) passed).
//
// Append is atomic with respect to the Program's tracking state: a rejected
// append leaves the Program exactly as it was before the call.
func (p *Program) Append(seq *Sequence) error {
	p.assertValid()

	// (a) No source may be declared twice, whether by this sequence or an
	// earlier one.
	seen := make(map[string]bool, len(seq.sourceNames))
	for _, name := range seq.sourceNames {
		if seen[name] {
			return errors.Errorf("naming conflict: source %q is declared twice in the same sequence", name)
		}
		if p.sourceSet[name] {
			return errors.Errorf("naming conflict: source %q is already declared as a source of this program", name)
		}
		seen[name] = true
	}
	// (b) Same for destinations.
	clear(seen)
	for _, name := range seq.destNames {
		if seen[name] {
			return errors.Errorf("naming conflict: destination %q is declared twice in the same sequence", name)
		}
		if p.destSet[name] {
			return errors.Errorf("naming conflict: destination %q is already declared as a destination of this program", name)
		}
		seen[name] = true
	}
	// (c) No name may serve as both source and destination within the
	// incoming sequence itself.
	clear(seen)
	for _, name := range seq.sourceNames {
		seen[name] = true
	}
	for _, name := range seq.destNames {
		if seen[name] {
			return errors.Errorf("naming conflict: %q is declared as both a source and a destination in the same sequence", name)
		}
	}
	// (d) The merged source and destination sets must remain disjoint.
	for _, name := range seq.sourceNames {
		if p.destSet[name] {
			return errors.Errorf("naming conflict: source %q is already declared as a destination of this program", name)
		}
	}
	for _, name := range seq.destNames {
		if p.sourceSet[name] {
			return errors.Errorf("naming conflict: destination %q is already declared as a source of this program", name)
		}
	}

	if err := seq.EmitTo(p.handle); err != nil {
		return errors.WithMessage(err, "registering sequence with the backend")
	}

	for _, name := range seq.sourceNames {
		p.sources = append(p.sources, name)
		p.sourceSet[name] = true
	}
	for _, name := range seq.destNames {
		p.dests = append(p.dests, name)
		p.destSet[name] = true
	}
	klog.V(1).Infof("kernel: appended sequence with %d records to program %q (%d sources, %d destinations total)",
		seq.NumRecords(), p.handle.Name(), len(p.sources), len(p.dests))
	return nil
}

// Run compiles the kernel (idempotent across calls) and performs one
// bind-and-execute cycle: count lanes, one buffer per declared source and
// destination, results landing in the caller's destination buffers.
//
// The key set of args must be exactly the union of the Program's sources and
// destinations; mismatches fail before any backend call is made. Buffer sizing
// is the caller's responsibility: no bounds checking is performed against
// count x element size.
//
// The returned status is the backend's compile status: CompileOK on the happy
// path, the specific failure otherwise (also wrapped in err, so callers can
// inspect whichever is more convenient). Check err first -- on argument or
// execution errors the status carries no information.
func (p *Program) Run(count int, args map[string]backends.Buffer) (backends.CompileStatus, error) {
	p.assertValid()

	// Argument contract: wanted and supplied key sets must be equal.
	for _, name := range p.sources {
		if _, found := args[name]; !found {
			return backends.CompileOK, errors.Errorf("missing argument: no buffer supplied for source %q", name)
		}
	}
	for _, name := range p.dests {
		if _, found := args[name]; !found {
			return backends.CompileOK, errors.Errorf("missing argument: no buffer supplied for destination %q", name)
		}
	}
	if len(args) != len(p.sources)+len(p.dests) {
		keys := maps.Keys(args)
		slices.Sort(keys) // Deterministic pick of the reported key.
		for _, key := range keys {
			if !p.sourceSet[key] && !p.destSet[key] {
				return backends.CompileOK, errors.Errorf("unexpected argument %q: the program declares no source or destination with that name", key)
			}
		}
	}

	status := p.handle.Compile()
	if !status.Ok() {
		return status, errors.Errorf("kernel compilation failed: %s", status)
	}

	exec, err := p.handle.NewExecutor()
	if err != nil {
		return status, errors.WithMessage(err, "creating executor")
	}
	defer exec.Finalize()
	exec.SetIterations(count)
	for _, name := range p.sources {
		if err = exec.BindArray(name, args[name]); err != nil {
			return status, errors.WithMessagef(err, "binding source %q", name)
		}
	}
	for _, name := range p.dests {
		if err = exec.BindArray(name, args[name]); err != nil {
			return status, errors.WithMessagef(err, "binding destination %q", name)
		}
	}
	if err = exec.Run(); err != nil {
		return status, errors.WithMessage(err, "executing kernel")
	}
	return status, nil
}

// Sources returns a copy of the accumulated source names, in append order.
func (p *Program) Sources() []string { return slices.Clone(p.sources) }

// Dests returns a copy of the accumulated destination names, in append order.
func (p *Program) Dests() []string { return slices.Clone(p.dests) }

// IsFinalized returns whether the Program's handle has been released.
func (p *Program) IsFinalized() bool { return p.handle == nil }

// Finalize releases the backend handle. Idempotent: the second and subsequent
// calls are no-ops, so an explicit release followed by the GC finalizer (or
// repeated explicit releases) never double-frees.
//
// Using the Program after Finalize is a fatal precondition violation.
func (p *Program) Finalize() {
	if p == nil || p.handle == nil {
		return
	}
	klog.V(1).Infof("kernel: finalizing program %q", p.handle.Name())
	p.handle.Finalize()
	p.handle = nil
	// The handle is released; spare the GC a finalizer-queue pass.
	runtime.SetFinalizer(p, nil)
	p.sources = nil
	p.dests = nil
	p.sourceSet = nil
	p.destSet = nil
}

func (p *Program) assertValid() {
	if p.handle == nil {
		exceptions.Panicf("kernel.Program has already been finalized and can no longer be used")
	}
}
