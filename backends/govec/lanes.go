package govec

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

// laneFn executes one lowered operation over n lanes. dst, a and b are the raw
// byte storage of the operand arrays; b is nil for arity-2 opcodes. No bounds
// checking happens against n: under-sized buffers are undefined behavior at
// this boundary, per the protocol contract.
type laneFn func(dst, a, b []byte, n int)

// lane is any element type a VecJIT array can hold.
type lane interface {
	constraints.Integer | constraints.Float
}

// lanesOf reinterprets raw byte storage as n lanes of type T.
func lanesOf[T lane](buf []byte, n int) []T {
	if n == 0 || len(buf) == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&buf[0])), n)
}

// binaryLanes lifts an element function f to a whole-vector lane function:
// dst[i] = f(a[i], b[i]).
func binaryLanes[T lane](f func(a, b T) T) laneFn {
	return func(dst, a, b []byte, n int) {
		d := lanesOf[T](dst, n)
		x := lanesOf[T](a, n)
		y := lanesOf[T](b, n)
		for i := 0; i < n; i++ {
			d[i] = f(x[i], y[i])
		}
	}
}

// accumLanes is binaryLanes for accumulating opcodes: dst[i] = f(dst[i], a[i], b[i]).
func accumLanes[T lane](f func(d, a, b T) T) laneFn {
	return func(dst, a, b []byte, n int) {
		d := lanesOf[T](dst, n)
		x := lanesOf[T](a, n)
		y := lanesOf[T](b, n)
		for i := 0; i < n; i++ {
			d[i] = f(d[i], x[i], y[i])
		}
	}
}

// unaryLanes lifts an element function to dst[i] = f(a[i]).
func unaryLanes[T lane](f func(a T) T) laneFn {
	return func(dst, a, _ []byte, n int) {
		d := lanesOf[T](dst, n)
		x := lanesOf[T](a, n)
		for i := 0; i < n; i++ {
			d[i] = f(x[i])
		}
	}
}

// convertLanes lifts an element conversion to dst[i] = f(a[i]), where source
// and destination lanes have different types (and possibly widths).
func convertLanes[S, D lane](f func(a S) D) laneFn {
	return func(dst, a, _ []byte, n int) {
		d := lanesOf[D](dst, n)
		x := lanesOf[S](a, n)
		for i := 0; i < n; i++ {
			d[i] = f(x[i])
		}
	}
}

// satAdd returns a lane-wise addition clamped to [lo, hi].
// Both int8/int16 and uint8/uint16 lanes fit int64 arithmetic exactly.
func satAdd[T constraints.Integer](lo, hi int64) func(a, b T) T {
	return func(a, b T) T {
		s := int64(a) + int64(b)
		if s < lo {
			s = lo
		}
		if s > hi {
			s = hi
		}
		return T(s)
	}
}

// satSub returns a lane-wise subtraction clamped to [lo, hi].
func satSub[T constraints.Integer](lo, hi int64) func(a, b T) T {
	return func(a, b T) T {
		s := int64(a) - int64(b)
		if s < lo {
			s = lo
		}
		if s > hi {
			s = hi
		}
		return T(s)
	}
}

// cmpMask returns all-ones when pred holds, zero otherwise.
func cmpMask[T constraints.Integer](pred func(a, b T) bool) func(a, b T) T {
	return func(a, b T) T {
		if pred(a, b) {
			var zero T
			return ^zero
		}
		return 0
	}
}

func minLane[T lane](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func maxLane[T lane](a, b T) T {
	if a > b {
		return a
	}
	return b
}
