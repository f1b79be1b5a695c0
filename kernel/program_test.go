package kernel_test

import (
	"testing"

	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vecjit/vecjit/backends"
	"github.com/vecjit/vecjit/backends/govec"
	"github.com/vecjit/vecjit/kernel"
)

func TestAppendDisjointSequences(t *testing.T) {
	prog := kernel.New(govec.New(""))
	defer prog.Finalize()

	a := kernel.NewSequence().
		Source(1, "x1").
		Source(1, "x2").
		Dest(1, "y1").
		Op("addb", "y1", "x1", "x2")
	b := kernel.NewSequence().
		Source(1, "x3").
		Dest(1, "y2").
		Op("movb", "y2", "x3")
	require.NoError(t, prog.Append(a))
	require.NoError(t, prog.Append(b))

	// Append order is preserved in the accumulated name lists.
	assert.Equal(t, []string{"x1", "x2", "x3"}, prog.Sources())
	assert.Equal(t, []string{"y1", "y2"}, prog.Dests())
}

func TestAppendNamingConflicts(t *testing.T) {
	newProg := func(t *testing.T) *kernel.Program {
		prog := kernel.New(govec.New(""))
		t.Cleanup(prog.Finalize)
		require.NoError(t, prog.Append(kernel.NewSequence().
			Source(1, "x1").
			Dest(1, "y1").
			Op("movb", "y1", "x1")))
		return prog
	}

	t.Run("source-vs-source", func(t *testing.T) {
		prog := newProg(t)
		err := prog.Append(kernel.NewSequence().Source(1, "x1"))
		require.ErrorContains(t, err, `"x1"`)
		require.ErrorContains(t, err, "naming conflict")
	})
	t.Run("dest-vs-dest", func(t *testing.T) {
		prog := newProg(t)
		err := prog.Append(kernel.NewSequence().Dest(1, "y1"))
		require.ErrorContains(t, err, `"y1"`)
	})
	t.Run("source-repeated-in-same-sequence", func(t *testing.T) {
		prog := newProg(t)
		err := prog.Append(kernel.NewSequence().Source(1, "d").Source(1, "d"))
		require.ErrorContains(t, err, `source "d" is declared twice in the same sequence`)
	})
	t.Run("dest-repeated-in-same-sequence", func(t *testing.T) {
		prog := newProg(t)
		err := prog.Append(kernel.NewSequence().Dest(1, "d").Dest(1, "d"))
		require.ErrorContains(t, err, `destination "d" is declared twice in the same sequence`)
	})
	t.Run("source-and-dest-in-same-sequence", func(t *testing.T) {
		prog := newProg(t)
		err := prog.Append(kernel.NewSequence().Source(1, "z").Dest(1, "z"))
		require.ErrorContains(t, err, `"z"`)
		require.ErrorContains(t, err, "same sequence")
	})
	t.Run("dest-vs-existing-source", func(t *testing.T) {
		prog := newProg(t)
		err := prog.Append(kernel.NewSequence().Dest(1, "x1"))
		require.ErrorContains(t, err, `"x1"`)
	})
	t.Run("source-vs-existing-dest", func(t *testing.T) {
		prog := newProg(t)
		err := prog.Append(kernel.NewSequence().Source(1, "y1"))
		require.ErrorContains(t, err, `"y1"`)
	})
}

func TestAppendIsAtomic(t *testing.T) {
	prog := kernel.New(govec.New(""))
	defer prog.Finalize()
	require.NoError(t, prog.Append(kernel.NewSequence().
		Source(1, "x1").
		Source(1, "x2").
		Dest(1, "y1").
		Op("addb", "y1", "x1", "x2")))

	// The offending sequence carries valid names ("x3", "y2") next to the
	// conflicting one ("x1" as destination): none of them may leak into the
	// program's tracking state.
	err := prog.Append(kernel.NewSequence().
		Source(1, "x3").
		Dest(1, "y2").
		Dest(1, "x1"))
	require.ErrorContains(t, err, `"x1"`)
	assert.Equal(t, []string{"x1", "x2"}, prog.Sources())
	assert.Equal(t, []string{"y1"}, prog.Dests())
}

func saturatingAddProgram(t *testing.T) *kernel.Program {
	prog := kernel.New(govec.New(""))
	t.Cleanup(prog.Finalize)
	require.NoError(t, prog.Append(kernel.NewSequence().
		Source(1, "input").
		Dest(1, "output").
		Const(1, "one", 1).
		Op("addssb", "output", "input", "one")))
	return prog
}

func TestRunArgumentContract(t *testing.T) {
	prog := saturatingAddProgram(t)
	out := make([]byte, 14)

	t.Run("missing-key", func(t *testing.T) {
		_, err := prog.Run(14, map[string]backends.Buffer{"input": "abcdefghijklmn"})
		require.ErrorContains(t, err, "missing argument")
		require.ErrorContains(t, err, `"output"`)
	})
	t.Run("unexpected-key", func(t *testing.T) {
		_, err := prog.Run(14, map[string]backends.Buffer{
			"input":  "abcdefghijklmn",
			"output": out,
			"extra":  out,
		})
		require.ErrorContains(t, err, "unexpected argument")
		require.ErrorContains(t, err, `"extra"`)
	})
	t.Run("both-wrong", func(t *testing.T) {
		// One wanted key absent, one unwanted key present: the reported key
		// must be a real mismatch, not an intersection artifact.
		_, err := prog.Run(14, map[string]backends.Buffer{
			"input": "abcdefghijklmn",
			"bogus": out,
		})
		require.Error(t, err)
		require.NotContains(t, err.Error(), `"input"`)
	})
}

func TestRunEndToEnd(t *testing.T) {
	prog := saturatingAddProgram(t)
	out := make([]byte, 14)
	args := map[string]backends.Buffer{
		"input":  "abcdefghijklmn",
		"output": out,
	}
	status := must.M1(prog.Run(14, args))
	assert.Equal(t, backends.CompileOK, status)
	assert.Equal(t, "bcdefghijklmno", string(out))

	// Appending a second sequence that redeclares "input" as a destination
	// must fail, identifying the name.
	err := prog.Append(kernel.NewSequence().Dest(1, "input"))
	require.ErrorContains(t, err, `"input"`)
}

func TestRunIsIdempotent(t *testing.T) {
	prog := saturatingAddProgram(t)
	out := make([]byte, 14)
	args := map[string]backends.Buffer{
		"input":  "abcdefghijklmn",
		"output": out,
	}
	first := must.M1(prog.Run(14, args))
	clear(out)
	second := must.M1(prog.Run(14, args))
	assert.Equal(t, first, second)
	assert.Equal(t, "bcdefghijklmno", string(out))
}

func TestRunCompileFailureIsInspectable(t *testing.T) {
	prog := kernel.New(govec.New(""))
	defer prog.Finalize()
	// mergelob is in the catalog but the govec backend has no lowering rule
	// for it.
	require.NoError(t, prog.Append(kernel.NewSequence().
		Source(1, "a").
		Source(1, "b").
		Dest(1, "c").
		Op("mergelob", "c", "a", "b")))
	status, err := prog.Run(4, map[string]backends.Buffer{
		"a": make([]byte, 4),
		"b": make([]byte, 4),
		"c": make([]byte, 4),
	})
	assert.Equal(t, backends.CompileMissingRule, status)
	require.ErrorContains(t, err, "MissingRule")
}

func TestFinalizeIsIdempotent(t *testing.T) {
	prog := saturatingAddProgram(t)
	require.False(t, prog.IsFinalized())
	require.NotPanics(t, func() {
		prog.Finalize()
		prog.Finalize()
	})
	require.True(t, prog.IsFinalized())

	// Any use after release is a fatal precondition violation.
	require.Panics(t, func() { prog.Append(kernel.NewSequence().Source(1, "late")) })
	require.Panics(t, func() {
		_, _ = prog.Run(1, map[string]backends.Buffer{})
	})
}

func TestMultiSequenceProgramRuns(t *testing.T) {
	prog := kernel.New(govec.New(""))
	defer prog.Finalize()
	// Two independently built sequences composed into one kernel: the second
	// reads nothing from the first, but both execute in append order.
	require.NoError(t, prog.Append(kernel.NewSequence().
		Source(1, "in1").
		Dest(1, "neg").
		Op("negb", "neg", "in1")))
	require.NoError(t, prog.Append(kernel.Build(func(s *kernel.Sequence) {
		s.Source(1, "in2")
		s.Dest(1, "masked")
		s.Const(1, "mask", 0x0f)
		s.Op("andb", "masked", "in2", "mask")
	})))

	neg := make([]byte, 3)
	masked := make([]byte, 3)
	status := must.M1(prog.Run(3, map[string]backends.Buffer{
		"in1":    []byte{1, 2, 3},
		"in2":    []byte{0xff, 0x21, 0x40},
		"neg":    neg,
		"masked": masked,
	}))
	assert.Equal(t, backends.CompileOK, status)
	assert.Equal(t, []byte{0xff, 0xfe, 0xfd}, neg)
	assert.Equal(t, []byte{0x0f, 0x01, 0x00}, masked)
}
