package govec

import (
	"encoding/binary"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/vecjit/vecjit/backends"
	"k8s.io/klog/v2"
)

// Executor implements backends.Executor: one invocation of a compiled kernel.
type Executor struct {
	kernel     *Kernel
	plan       []planOp
	decls      []*decl
	iterations int
	bound      map[string][]byte
	finalized  bool
}

var _ backends.Executor = &Executor{}

// NewExecutor creates a fresh single-invocation executor.
// The executor snapshots the compiled plan, so a later recompilation of the
// kernel does not affect an executor already created.
func (k *Kernel) NewExecutor() (backends.Executor, error) {
	if k.finalized {
		return nil, errors.Errorf("kernel %q has been finalized", k.name)
	}
	if !k.compiled {
		return nil, errors.Errorf("kernel %q has not been (successfully) compiled", k.name)
	}
	return &Executor{
		kernel: k,
		plan:   k.plan,
		decls:  k.decls,
		bound:  make(map[string][]byte),
	}, nil
}

// SetIterations sets the number of lanes to process.
func (e *Executor) SetIterations(n int) {
	e.iterations = n
}

// BindArray attaches the caller's buffer to the named source or destination.
//
// It accepts []byte, which is used in place (destination results land in the
// caller's slice), or string for sources, which is copied.
func (e *Executor) BindArray(name string, buffer backends.Buffer) error {
	if e.finalized {
		return errors.Errorf("executor of kernel %q has been finalized", e.kernel.name)
	}
	d, found := e.kernel.byName[name]
	if !found {
		return errors.Errorf("kernel %q declares no array named %q", e.kernel.name, name)
	}
	if d.kind != declSource && d.kind != declDest {
		return errors.Errorf("array %q of kernel %q is not a source or destination, it cannot be bound", name, e.kernel.name)
	}
	switch buf := buffer.(type) {
	case []byte:
		e.bound[name] = buf
	case string:
		if d.kind == declDest {
			return errors.Errorf("destination %q of kernel %q requires a mutable []byte buffer, got a string", name, e.kernel.name)
		}
		e.bound[name] = []byte(buf)
	default:
		return errors.Errorf("binding array %q of kernel %q: unsupported buffer type %T, want []byte or string", name, e.kernel.name, buffer)
	}
	return nil
}

// Run executes the kernel to completion, synchronously.
func (e *Executor) Run() error {
	if e.finalized {
		return errors.Errorf("executor of kernel %q has been finalized", e.kernel.name)
	}
	n := e.iterations

	// One storage slice per declaration slot: bound buffers for sources and
	// destinations, fresh allocations for temporaries and constant lanes.
	slots := make([][]byte, len(e.decls))
	for _, d := range e.decls {
		switch d.kind {
		case declSource, declDest:
			buf, found := e.bound[d.name]
			if !found {
				return errors.Errorf("array %q of kernel %q was never bound", d.name, e.kernel.name)
			}
			slots[d.slot] = buf
		case declTemp:
			slots[d.slot] = make([]byte, n*d.elemSize)
		case declConst:
			slots[d.slot] = broadcast(d.value, d.elemSize, n)
		}
	}

	if klog.V(2).Enabled() {
		klog.Infof("govec: running %s", e)
	}
	for _, op := range e.plan {
		var b []byte
		if op.b >= 0 {
			b = slots[op.b]
		}
		op.fn(slots[op.dst], slots[op.a], b, n)
	}
	return nil
}

// Finalize releases the executor. Idempotent.
func (e *Executor) Finalize() {
	if e.finalized {
		return
	}
	e.finalized = true
	e.bound = nil
	e.plan = nil
	e.decls = nil
}

// String summarizes the executor for tracing.
func (e *Executor) String() string {
	var total uint64
	for _, buf := range e.bound {
		total += uint64(len(buf))
	}
	return fmt.Sprintf("govec.Executor(%s, %d lanes, %s bound)",
		e.kernel.name, e.iterations, humanize.Bytes(total))
}

// broadcast materializes a constant as n lanes of elemSize bytes each, taking
// the low elemSize bytes of the value in little-endian order.
func broadcast(value int64, elemSize, n int) []byte {
	var scratch [8]byte
	binary.LittleEndian.PutUint64(scratch[:], uint64(value))
	buf := make([]byte, n*elemSize)
	for i := 0; i < n; i++ {
		copy(buf[i*elemSize:(i+1)*elemSize], scratch[:elemSize])
	}
	return buf
}
