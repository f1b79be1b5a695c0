package govec

import (
	"github.com/pkg/errors"
	"github.com/vecjit/vecjit/backends"
	"k8s.io/klog/v2"
)

type declKind int

const (
	declSource declKind = iota
	declDest
	declTemp
	declConst
)

// decl is one registered array declaration.
type decl struct {
	kind     declKind
	elemSize int
	name     string
	value    int64 // Only for declConst: the raw lane bit pattern.
	slot     int   // Index into the executor's storage table.
}

// opRecord is one registered operation, still in wire form.
type opRecord struct {
	opcode        string
	op1, op2, op3 string
}

// Kernel implements backends.Kernel: the handle holding the registered
// declarations and operations, and after Compile the lowered plan.
type Kernel struct {
	backend *Backend
	name    string

	decls  []*decl
	byName map[string]*decl
	ops    []opRecord

	plan     []planOp
	compiled bool

	finalized bool
}

var _ backends.Kernel = &Kernel{}

// Name of the kernel, given at creation.
func (k *Kernel) Name() string { return k.name }

func (k *Kernel) addDecl(kind declKind, elemSize int, name string, value int64) error {
	if k.finalized {
		return errors.Errorf("kernel %q has been finalized", k.name)
	}
	if elemSize != 1 && elemSize != 2 && elemSize != 4 && elemSize != 8 {
		return errors.Errorf("kernel %q: invalid element size %d for array %q, must be 1, 2, 4 or 8", k.name, elemSize, name)
	}
	if name == "" {
		return errors.Errorf("kernel %q: array name cannot be empty", k.name)
	}
	if _, found := k.byName[name]; found {
		return errors.Errorf("kernel %q: name %q already registered", k.name, name)
	}
	d := &decl{
		kind:     kind,
		elemSize: elemSize,
		name:     name,
		value:    value,
		slot:     len(k.decls),
	}
	k.decls = append(k.decls, d)
	k.byName[name] = d
	// Redeclaring anything invalidates a previous compilation plan.
	k.compiled = false
	return nil
}

// AddSource declares a named input array.
func (k *Kernel) AddSource(elemSize int, name string) error {
	return k.addDecl(declSource, elemSize, name, 0)
}

// AddDestination declares a named output array.
func (k *Kernel) AddDestination(elemSize int, name string) error {
	return k.addDecl(declDest, elemSize, name, 0)
}

// AddTemporary declares a named scratch array, allocated per invocation.
func (k *Kernel) AddTemporary(elemSize int, name string) error {
	return k.addDecl(declTemp, elemSize, name, 0)
}

// AddConstant declares a named immediate, broadcast across all lanes at run time.
func (k *Kernel) AddConstant(elemSize int, name string, value int64) error {
	return k.addDecl(declConst, elemSize, name, value)
}

// AddOp appends one operation in registration order. Validation is deferred to
// Compile, matching the wire protocol where AddOp only records the request.
func (k *Kernel) AddOp(opcode, op1, op2, op3 string) error {
	if k.finalized {
		return errors.Errorf("kernel %q has been finalized", k.name)
	}
	k.ops = append(k.ops, opRecord{opcode: opcode, op1: op1, op2: op2, op3: op3})
	k.compiled = false
	return nil
}

// Finalize frees the handle. Idempotent.
func (k *Kernel) Finalize() {
	if k.finalized {
		return
	}
	klog.V(1).Infof("govec: finalizing kernel %q", k.name)
	k.finalized = true
	k.decls = nil
	k.byName = nil
	k.ops = nil
	k.plan = nil
	k.compiled = false
}
