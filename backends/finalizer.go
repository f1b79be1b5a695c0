package backends

import "runtime"

// Finalizer is any object that implements Finalize, that can be called
// when an object is deallocated using runtime.SetFinalizer.
//
// Finalize must be idempotent: if called multiple times, subsequent calls
// are no-ops. This is what makes the explicit-release and the GC-triggered
// paths safe to race each other within the Go runtime's finalization model.
type Finalizer interface {
	// Finalize frees the underlying resources, presumably outside the
	// Go runtime's control.
	Finalize()
}

// RegisterFinalizer arranges for o.Finalize to be called when o is garbage
// collected. Explicit Finalize calls remain the preferred path; the finalizer
// is a safety net for handles the owner forgot to release.
func RegisterFinalizer[T Finalizer](o T) {
	runtime.SetFinalizer(o, func(o T) {
		o.Finalize()
	})
}
