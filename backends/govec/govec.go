// Package govec implements a simple, portable, pure-Go backend for VecJIT.
//
// It interprets the registered instruction sequence lane by lane instead of
// JIT-compiling it, so it is not fast, but it implements the complete backend
// protocol -- including the compile-status taxonomy -- with no cgo or native
// dependencies, and serves as the reference for what the protocol means.
package govec

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/klauspost/cpuid/v2"
	"github.com/vecjit/vecjit/backends"
)

// BackendName to be used in VECJIT_BACKEND to specify this backend.
const BackendName = "go"

// Registers New() as the constructor for the "go" backend.
func init() {
	backends.Register(BackendName, New)
}

// New constructs a new govec Backend.
// There are no configurations, the string is simply ignored.
func New(_ string) backends.Backend {
	return &Backend{}
}

// Backend implements the backends.Backend interface.
type Backend struct{}

// Compile-time check that govec.Backend implements backends.Backend.
var _ backends.Backend = &Backend{}

// Name returns the short name of the backend.
func (b *Backend) Name() string {
	return "GoVec (go)"
}

// String implements fmt.Stringer.
func (b *Backend) String() string { return BackendName }

// Description is a longer description of the Backend that can be used to pretty-print.
// It reports the host CPU this process runs on, since that is where the
// interpretation happens.
func (b *Backend) Description() string {
	var feats []string
	for _, f := range []cpuid.FeatureID{cpuid.SSE42, cpuid.AVX2, cpuid.AVX512F, cpuid.ASIMD} {
		if cpuid.CPU.Has(f) {
			feats = append(feats, f.String())
		}
	}
	desc := "Portable Go interpreter backend"
	if cpuid.CPU.BrandName != "" {
		desc += " (host: " + cpuid.CPU.BrandName
		if len(feats) > 0 {
			desc += "; " + strings.Join(feats, ", ")
		}
		desc += ")"
	}
	return desc
}

// NewKernel creates a fresh, empty kernel handle.
func (b *Backend) NewKernel(name string) backends.Kernel {
	if name == "" {
		name = fmt.Sprintf("kernel#%d", nextKernelID())
	}
	return &Kernel{
		backend: b,
		name:    name,
		byName:  make(map[string]*decl),
	}
}

// Finalize releases all the associated resources immediately, and makes the backend invalid.
// The govec backend holds no process-wide resources, so this is a no-op.
func (b *Backend) Finalize() {}

// Kernels may be created from separate goroutines (one Program per goroutine
// is the sanctioned parallelism model), so the counter must be atomic.
var kernelCount atomic.Int64

func nextKernelID() int64 {
	return kernelCount.Add(1)
}
