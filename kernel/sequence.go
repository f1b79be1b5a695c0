package kernel

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"github.com/vecjit/vecjit/backends"
)

// DeclKind distinguishes the four roles an array declaration can have.
type DeclKind int

//go:generate go tool enumer -type=DeclKind -trimprefix=DeclKind -transform=lower -output=gen_declkind_enumer.go sequence.go

const (
	DeclKindSource DeclKind = iota
	DeclKindDest
	DeclKindTemp
	DeclKindConst
)

// instruction is one record of a Sequence: either a declaration or an
// operation invocation.
type instruction interface {
	renderLine() string
	emitTo(k backends.Kernel) error
}

type declaration struct {
	kind     DeclKind
	elemSize int
	name     string
	value    int64 // Only for DeclKindConst.
}

func (d *declaration) renderLine() string {
	if d.kind == DeclKindConst {
		return fmt.Sprintf("%s %d %s %d", d.kind, d.elemSize, d.name, d.value)
	}
	return fmt.Sprintf("%s %d %s", d.kind, d.elemSize, d.name)
}

func (d *declaration) emitTo(k backends.Kernel) error {
	switch d.kind {
	case DeclKindSource:
		return k.AddSource(d.elemSize, d.name)
	case DeclKindDest:
		return k.AddDestination(d.elemSize, d.name)
	case DeclKindTemp:
		return k.AddTemporary(d.elemSize, d.name)
	case DeclKindConst:
		return k.AddConstant(d.elemSize, d.name, d.value)
	}
	return errors.Errorf("invalid declaration kind %d for array %q", d.kind, d.name)
}

type invocation struct {
	opcode string
	// operands[2] holds the empty-string pad for arity-2 opcodes, so emission
	// to the fixed-arity wire protocol is uniform.
	operands [3]string
}

func (inv *invocation) renderLine() string {
	if inv.operands[2] == "" {
		return fmt.Sprintf("%s %s %s", inv.opcode, inv.operands[0], inv.operands[1])
	}
	return fmt.Sprintf("%s %s %s %s", inv.opcode, inv.operands[0], inv.operands[1], inv.operands[2])
}

func (inv *invocation) emitTo(k backends.Kernel) error {
	return k.AddOp(inv.opcode, inv.operands[0], inv.operands[1], inv.operands[2])
}

// Sequence is a flat, ordered list of array declarations and operation
// invocations -- one kernel fragment under construction. Order is execution
// order in the compiled kernel.
//
// Sequences are cheap value builders: no backend is touched and no uniqueness
// checking happens until the sequence is appended to a Program, which keeps
// them composable and free of side effects on each other.
//
// The declaration methods return the Sequence itself, so a kernel can be
// written as a fluent chain:
//
//	seq := kernel.NewSequence().
//		Source(1, "input").
//		Dest(1, "output").
//		Const(1, "one", 1).
//		Op("addssb", "output", "input", "one")
//
// or, equivalently, with the callback form (see Build):
//
//	seq := kernel.Build(func(s *kernel.Sequence) {
//		s.Source(1, "input")
//		s.Dest(1, "output")
//		s.Const(1, "one", 1)
//		s.Op("addssb", "output", "input", "one")
//	})
type Sequence struct {
	instructions []instruction
	sourceNames  []string
	destNames    []string
}

// NewSequence creates an empty Sequence.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Build creates a Sequence and populates it by calling fn with it. It is the
// callback construction mode; behaviorally identical to calling the methods
// on NewSequence() directly.
func Build(fn func(s *Sequence)) *Sequence {
	s := NewSequence()
	fn(s)
	return s
}

// Source declares a named input array with the given element size in bytes.
func (s *Sequence) Source(elemSize int, name string) *Sequence {
	s.instructions = append(s.instructions, &declaration{kind: DeclKindSource, elemSize: elemSize, name: name})
	s.sourceNames = append(s.sourceNames, name)
	return s
}

// Dest declares a named output array with the given element size in bytes.
func (s *Sequence) Dest(elemSize int, name string) *Sequence {
	s.instructions = append(s.instructions, &declaration{kind: DeclKindDest, elemSize: elemSize, name: name})
	s.destNames = append(s.destNames, name)
	return s
}

// Temp declares a named per-invocation scratch array, not exposed to the caller.
func (s *Sequence) Temp(elemSize int, name string) *Sequence {
	s.instructions = append(s.instructions, &declaration{kind: DeclKindTemp, elemSize: elemSize, name: name})
	return s
}

// Const declares a named immediate value. The value is the raw lane bit
// pattern, truncated to elemSize bytes.
func (s *Sequence) Const(elemSize int, name string, value int64) *Sequence {
	s.instructions = append(s.instructions, &declaration{kind: DeclKindConst, elemSize: elemSize, name: name, value: value})
	return s
}

// Op appends one operation invocation. The operand count must match the
// opcode's fixed arity in backends.OpArity (3 for binary-shaped ops, with the
// destination first; 2 for unary-shaped ops).
//
// An unknown opcode or a wrong operand count is a programmer error and throws
// (panics) with a stack trace.
func (s *Sequence) Op(opcode string, operands ...string) *Sequence {
	arity, known := backends.Arity(opcode)
	if !known {
		exceptions.Panicf("kernel: unknown opcode %q", opcode)
	}
	if len(operands) != arity {
		exceptions.Panicf("kernel: opcode %q takes %d operands, got %d (%q)", opcode, arity, len(operands), operands)
	}
	inv := &invocation{opcode: opcode}
	copy(inv.operands[:], operands)
	s.instructions = append(s.instructions, inv)
	return s
}

// Render yields one text line per record, in stored order: declarations in
// keyword form ("source 1 input", "const 1 one 1"), invocations as the bare
// operand list ("addssb output input one"). The returned sequence is lazy and
// can be ranged over multiple times. For diagnostics only; the backend never
// sees this form.
func (s *Sequence) Render() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, inst := range s.instructions {
			if !yield(inst.renderLine()) {
				return
			}
		}
	}
}

// String returns the rendered form, one record per line.
func (s *Sequence) String() string {
	var sb strings.Builder
	for line := range s.Render() {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// EmitTo replays every record against the backend registration protocol, in
// stored order. Pure forwarding: no validation, no transformation. It stops at
// and returns the first registration error reported by the backend.
func (s *Sequence) EmitTo(k backends.Kernel) error {
	for _, inst := range s.instructions {
		if err := inst.emitTo(k); err != nil {
			return err
		}
	}
	return nil
}

// NumRecords returns the number of stored declarations and invocations.
func (s *Sequence) NumRecords() int { return len(s.instructions) }

// SourceNames returns a copy of the declared source names, in declaration order.
func (s *Sequence) SourceNames() []string { return slices.Clone(s.sourceNames) }

// DestNames returns a copy of the declared destination names, in declaration order.
func (s *Sequence) DestNames() []string { return slices.Clone(s.destNames) }
