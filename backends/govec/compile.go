package govec

import (
	"github.com/vecjit/vecjit/backends"
	"k8s.io/klog/v2"
)

// planOp is one lowered operation: the lane function plus the storage slots of
// its operands. b is -1 for arity-2 opcodes.
type planOp struct {
	opcode    string
	fn        laneFn
	dst, a, b int
}

// Compile lowers the registered operations to a lane-function plan.
//
// Compiling an already-compiled kernel is valid: the plan is simply rebuilt.
// On failure, the kernel stays uncompiled and the status describes the first
// offending operation.
func (k *Kernel) Compile() (status backends.CompileStatus) {
	if k.finalized {
		return backends.CompileUnknownError
	}
	defer func() {
		if r := recover(); r != nil {
			klog.Errorf("govec: panic compiling kernel %q: %v", k.name, r)
			status = backends.CompileUnknownError
		}
	}()

	plan := make([]planOp, 0, len(k.ops))
	for _, op := range k.ops {
		arity, known := backends.Arity(op.opcode)
		if !known {
			klog.V(1).Infof("govec: kernel %q: opcode %q is not in the instruction-set catalog", k.name, op.opcode)
			return backends.CompileParseError
		}
		if op.op1 == "" || op.op2 == "" {
			return backends.CompileParseError
		}
		// Arity-2 ops must carry the empty-string pad in the 3rd slot.
		if (arity == 2) != (op.op3 == "") {
			return backends.CompileParseError
		}

		fn, implemented := laneKernels[op.opcode]
		if !implemented {
			klog.V(1).Infof("govec: kernel %q: no lowering rule for opcode %q", k.name, op.opcode)
			return backends.CompileMissingRule
		}

		lowered := planOp{opcode: op.opcode, fn: fn, b: -1}
		var resolved bool
		if lowered.dst, resolved = k.resolve(op.op1); !resolved {
			return backends.CompileVariableError
		}
		if lowered.a, resolved = k.resolve(op.op2); !resolved {
			return backends.CompileVariableError
		}
		if arity == 3 {
			if lowered.b, resolved = k.resolve(op.op3); !resolved {
				return backends.CompileVariableError
			}
		}
		plan = append(plan, lowered)
	}

	k.plan = plan
	k.compiled = true
	klog.V(1).Infof("govec: compiled kernel %q: %d arrays, %d ops", k.name, len(k.decls), len(k.plan))
	return backends.CompileOK
}

// resolve maps an operand name to its storage slot.
func (k *Kernel) resolve(name string) (slot int, found bool) {
	d, found := k.byName[name]
	if !found {
		klog.V(1).Infof("govec: kernel %q: operand %q does not resolve to any declared array", k.name, name)
		return -1, false
	}
	return d.slot, true
}
