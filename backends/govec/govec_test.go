package govec

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vecjit/vecjit/backends"
)

func TestBackendRegistry(t *testing.T) {
	b := backends.NewWithConfig("go")
	require.Equal(t, "GoVec (go)", b.Name())
	assert.NotEmpty(t, b.Description())

	t.Setenv(backends.VECJIT_BACKEND, "go")
	b = backends.New()
	require.Equal(t, "GoVec (go)", b.Name())

	// A colon-less config string selects the first registered backend and is
	// passed through as its configuration; naming a backend requires the
	// "<name>:<config>" form.
	require.NotPanics(t, func() { backends.NewWithConfig("no-such-backend") })
	require.Panics(t, func() { backends.NewWithConfig("no-such-backend:") })
}

func TestConcurrentKernelCreation(t *testing.T) {
	// Parallelism is done with separate kernels from separate goroutines;
	// default naming must not race and must hand out distinct names.
	const goroutines = 8
	b := New("")
	names := make(chan string, goroutines)
	var wg sync.WaitGroup
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			k := b.NewKernel("")
			defer k.Finalize()
			names <- k.Name()
		}()
	}
	wg.Wait()
	close(names)
	seen := make(map[string]bool)
	for name := range names {
		require.False(t, seen[name], "kernel name %q handed out twice", name)
		seen[name] = true
	}
	require.Len(t, seen, goroutines)
}

func TestRegistrationConflicts(t *testing.T) {
	k := New("").NewKernel("t")
	defer k.Finalize()
	require.NoError(t, k.AddSource(1, "a"))
	err := k.AddDestination(1, "a")
	require.ErrorContains(t, err, `"a"`)
	require.ErrorContains(t, err, "already registered")

	require.Error(t, k.AddSource(3, "odd")) // Element size must be 1, 2, 4 or 8.
	require.Error(t, k.AddSource(1, ""))
}

func TestCompileStatuses(t *testing.T) {
	newKernel := func(t *testing.T) backends.Kernel {
		k := New("").NewKernel("t")
		t.Cleanup(k.Finalize)
		require.NoError(t, k.AddSource(1, "a"))
		require.NoError(t, k.AddSource(1, "b"))
		require.NoError(t, k.AddDestination(1, "c"))
		return k
	}

	t.Run("ok", func(t *testing.T) {
		k := newKernel(t)
		require.NoError(t, k.AddOp("addb", "c", "a", "b"))
		require.Equal(t, backends.CompileOK, k.Compile())
		// Recompilation of an already-compiled kernel is safe.
		require.Equal(t, backends.CompileOK, k.Compile())
	})
	t.Run("unresolved-operand", func(t *testing.T) {
		k := newKernel(t)
		require.NoError(t, k.AddOp("addb", "c", "a", "nonesuch"))
		require.Equal(t, backends.CompileVariableError, k.Compile())
	})
	t.Run("opcode-outside-catalog", func(t *testing.T) {
		k := newKernel(t)
		require.NoError(t, k.AddOp("frobnicate", "c", "a", "b"))
		require.Equal(t, backends.CompileParseError, k.Compile())
	})
	t.Run("no-lowering-rule", func(t *testing.T) {
		k := newKernel(t)
		require.NoError(t, k.AddOp("msumwl", "c", "a", "b"))
		require.Equal(t, backends.CompileMissingRule, k.Compile())
	})
	t.Run("bad-padding", func(t *testing.T) {
		k := newKernel(t)
		require.NoError(t, k.AddOp("movb", "c", "a", "b")) // Arity-2 opcode with a 3rd operand.
		require.Equal(t, backends.CompileParseError, k.Compile())
	})
	t.Run("missing-operand", func(t *testing.T) {
		k := newKernel(t)
		require.NoError(t, k.AddOp("addb", "c", "a", "")) // Arity-3 opcode without its 3rd operand.
		require.Equal(t, backends.CompileParseError, k.Compile())
	})
	t.Run("failed-compile-leaves-kernel-uncompiled", func(t *testing.T) {
		k := newKernel(t)
		require.NoError(t, k.AddOp("addb", "c", "a", "nonesuch"))
		require.Equal(t, backends.CompileVariableError, k.Compile())
		_, err := k.NewExecutor()
		require.Error(t, err)
	})
}

func TestExecutorBindErrors(t *testing.T) {
	k := New("").NewKernel("t")
	defer k.Finalize()
	require.NoError(t, k.AddSource(1, "in"))
	require.NoError(t, k.AddTemporary(1, "tmp"))
	require.NoError(t, k.AddDestination(1, "out"))
	require.NoError(t, k.AddOp("movb", "tmp", "in", ""))
	require.NoError(t, k.AddOp("movb", "out", "tmp", ""))
	require.Equal(t, backends.CompileOK, k.Compile())

	exec, err := k.NewExecutor()
	require.NoError(t, err)
	defer exec.Finalize()
	exec.SetIterations(2)

	require.Error(t, exec.BindArray("nonesuch", []byte{0, 0}))
	require.Error(t, exec.BindArray("tmp", []byte{0, 0})) // Temporaries are not bindable.
	require.Error(t, exec.BindArray("out", "read-only"))  // Destinations need []byte.
	require.Error(t, exec.BindArray("in", 42))            // Unsupported buffer type.

	// An unbound array is reported at Run time.
	require.NoError(t, exec.BindArray("in", "ab"))
	err = exec.Run()
	require.ErrorContains(t, err, `"out"`)
	require.ErrorContains(t, err, "never bound")

	out := make([]byte, 2)
	require.NoError(t, exec.BindArray("out", out))
	require.NoError(t, exec.Run())
	assert.Equal(t, "ab", string(out))
}

func TestExecutorFinalizeIdempotent(t *testing.T) {
	k := New("").NewKernel("t")
	require.NoError(t, k.AddSource(1, "in"))
	require.NoError(t, k.AddDestination(1, "out"))
	require.NoError(t, k.AddOp("movb", "out", "in", ""))
	require.Equal(t, backends.CompileOK, k.Compile())
	exec, err := k.NewExecutor()
	require.NoError(t, err)
	require.NotPanics(t, func() {
		exec.Finalize()
		exec.Finalize()
	})
	require.Error(t, exec.Run())

	require.NotPanics(t, func() {
		k.Finalize()
		k.Finalize()
	})
	require.Error(t, k.AddSource(1, "late"))
	_, err = k.NewExecutor()
	require.Error(t, err)
}

func TestBroadcast(t *testing.T) {
	assert.Equal(t, []byte{1, 1, 1}, broadcast(1, 1, 3))
	assert.Equal(t, []byte{0x02, 0x01, 0x02, 0x01}, broadcast(0x0102, 2, 2))
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff}, broadcast(-1, 4, 1))
}
