package govec

import (
	"math"
)

// laneKernels maps each opcode this backend can lower to its lane function.
// Catalog opcodes absent from this table make Compile return
// backends.CompileMissingRule (currently the merge/split families and msumwl,
// whose lane counts differ between inputs and outputs).
var laneKernels = map[string]laneFn{
	// Arithmetic.
	"addb": binaryLanes(func(a, b int8) int8 { return a + b }),
	"addw": binaryLanes(func(a, b int16) int16 { return a + b }),
	"addl": binaryLanes(func(a, b int32) int32 { return a + b }),
	"addq": binaryLanes(func(a, b int64) int64 { return a + b }),
	"addf": binaryLanes(func(a, b float32) float32 { return a + b }),
	"addd": binaryLanes(func(a, b float64) float64 { return a + b }),
	"subb": binaryLanes(func(a, b int8) int8 { return a - b }),
	"subw": binaryLanes(func(a, b int16) int16 { return a - b }),
	"subl": binaryLanes(func(a, b int32) int32 { return a - b }),
	"subq": binaryLanes(func(a, b int64) int64 { return a - b }),
	"subf": binaryLanes(func(a, b float32) float32 { return a - b }),
	"subd": binaryLanes(func(a, b float64) float64 { return a - b }),
	"mulw": binaryLanes(func(a, b int16) int16 { return a * b }),
	"mull": binaryLanes(func(a, b int32) int32 { return a * b }),
	"mulq": binaryLanes(func(a, b int64) int64 { return a * b }),
	"mulf": binaryLanes(func(a, b float32) float32 { return a * b }),
	"muld": binaryLanes(func(a, b float64) float64 { return a * b }),
	"divf": binaryLanes(func(a, b float32) float32 { return a / b }),
	"divd": binaryLanes(func(a, b float64) float64 { return a / b }),

	// Saturating arithmetic.
	"addssb": binaryLanes(satAdd[int8](math.MinInt8, math.MaxInt8)),
	"addssw": binaryLanes(satAdd[int16](math.MinInt16, math.MaxInt16)),
	"addusb": binaryLanes(satAdd[uint8](0, math.MaxUint8)),
	"addusw": binaryLanes(satAdd[uint16](0, math.MaxUint16)),
	"subssb": binaryLanes(satSub[int8](math.MinInt8, math.MaxInt8)),
	"subssw": binaryLanes(satSub[int16](math.MinInt16, math.MaxInt16)),
	"subusb": binaryLanes(satSub[uint8](0, math.MaxUint8)),
	"subusw": binaryLanes(satSub[uint16](0, math.MaxUint16)),

	// Bitwise. andn follows Go's bit-clear: dst = a &^ b.
	"andb":  binaryLanes(func(a, b uint8) uint8 { return a & b }),
	"andw":  binaryLanes(func(a, b uint16) uint16 { return a & b }),
	"andl":  binaryLanes(func(a, b uint32) uint32 { return a & b }),
	"andq":  binaryLanes(func(a, b uint64) uint64 { return a & b }),
	"orb":   binaryLanes(func(a, b uint8) uint8 { return a | b }),
	"orw":   binaryLanes(func(a, b uint16) uint16 { return a | b }),
	"orl":   binaryLanes(func(a, b uint32) uint32 { return a | b }),
	"orq":   binaryLanes(func(a, b uint64) uint64 { return a | b }),
	"xorb":  binaryLanes(func(a, b uint8) uint8 { return a ^ b }),
	"xorw":  binaryLanes(func(a, b uint16) uint16 { return a ^ b }),
	"xorl":  binaryLanes(func(a, b uint32) uint32 { return a ^ b }),
	"xorq":  binaryLanes(func(a, b uint64) uint64 { return a ^ b }),
	"andnb": binaryLanes(func(a, b uint8) uint8 { return a &^ b }),
	"andnw": binaryLanes(func(a, b uint16) uint16 { return a &^ b }),
	"andnl": binaryLanes(func(a, b uint32) uint32 { return a &^ b }),
	"andnq": binaryLanes(func(a, b uint64) uint64 { return a &^ b }),

	// Compare.
	"cmpeqb": binaryLanes(cmpMask(func(a, b int8) bool { return a == b })),
	"cmpeqw": binaryLanes(cmpMask(func(a, b int16) bool { return a == b })),
	"cmpeql": binaryLanes(cmpMask(func(a, b int32) bool { return a == b })),
	"cmpgtb": binaryLanes(cmpMask(func(a, b int8) bool { return a > b })),
	"cmpgtw": binaryLanes(cmpMask(func(a, b int16) bool { return a > b })),
	"cmpgtl": binaryLanes(cmpMask(func(a, b int32) bool { return a > b })),

	// Shifts. Counts are masked to the lane width, as the hardware does.
	"sllw": binaryLanes(func(a, b uint16) uint16 { return a << (b & 15) }),
	"slll": binaryLanes(func(a, b uint32) uint32 { return a << (b & 31) }),
	"sllq": binaryLanes(func(a, b uint64) uint64 { return a << (b & 63) }),
	"srlw": binaryLanes(func(a, b uint16) uint16 { return a >> (b & 15) }),
	"srll": binaryLanes(func(a, b uint32) uint32 { return a >> (b & 31) }),
	"srlq": binaryLanes(func(a, b uint64) uint64 { return a >> (b & 63) }),
	"sraw": binaryLanes(func(a, b int16) int16 { return a >> (uint16(b) & 15) }),
	"sral": binaryLanes(func(a, b int32) int32 { return a >> (uint32(b) & 31) }),

	// Min/max.
	"minub": binaryLanes(minLane[uint8]),
	"maxub": binaryLanes(maxLane[uint8]),
	"minsw": binaryLanes(minLane[int16]),
	"maxsw": binaryLanes(maxLane[int16]),
	"minf":  binaryLanes(minLane[float32]),
	"maxf":  binaryLanes(maxLane[float32]),
	"mind":  binaryLanes(minLane[float64]),
	"maxd":  binaryLanes(maxLane[float64]),

	// Multiply-accumulate.
	"maccw": accumLanes(func(d, a, b int16) int16 { return d + a*b }),
	"maccl": accumLanes(func(d, a, b int32) int32 { return d + a*b }),
	"maccf": accumLanes(func(d, a, b float32) float32 { return d + a*b }),
	"maccd": accumLanes(func(d, a, b float64) float64 { return d + a*b }),

	// Moves.
	"movb": unaryLanes(func(a int8) int8 { return a }),
	"movw": unaryLanes(func(a int16) int16 { return a }),
	"movl": unaryLanes(func(a int32) int32 { return a }),
	"movq": unaryLanes(func(a int64) int64 { return a }),
	"movf": unaryLanes(func(a float32) float32 { return a }),
	"movd": unaryLanes(func(a float64) float64 { return a }),

	// Unary arithmetic.
	"negb":  unaryLanes(func(a int8) int8 { return -a }),
	"negw":  unaryLanes(func(a int16) int16 { return -a }),
	"negl":  unaryLanes(func(a int32) int32 { return -a }),
	"negq":  unaryLanes(func(a int64) int64 { return -a }),
	"negf":  unaryLanes(func(a float32) float32 { return -a }),
	"negd":  unaryLanes(func(a float64) float64 { return -a }),
	"notb":  unaryLanes(func(a uint8) uint8 { return ^a }),
	"notw":  unaryLanes(func(a uint16) uint16 { return ^a }),
	"notl":  unaryLanes(func(a uint32) uint32 { return ^a }),
	"notq":  unaryLanes(func(a uint64) uint64 { return ^a }),
	"absf":  unaryLanes(func(a float32) float32 { return float32(math.Abs(float64(a))) }),
	"absd":  unaryLanes(math.Abs),
	"sqrtf": unaryLanes(func(a float32) float32 { return float32(math.Sqrt(float64(a))) }),
	"sqrtd": unaryLanes(math.Sqrt),

	// Conversions. Narrowing conversions truncate.
	"cvtbw": convertLanes(func(a int8) int16 { return int16(a) }),
	"cvtwl": convertLanes(func(a int16) int32 { return int32(a) }),
	"cvtlq": convertLanes(func(a int32) int64 { return int64(a) }),
	"cvtwb": convertLanes(func(a int16) int8 { return int8(a) }),
	"cvtlw": convertLanes(func(a int32) int16 { return int16(a) }),
	"cvtql": convertLanes(func(a int64) int32 { return int32(a) }),
	"cvtlf": convertLanes(func(a int32) float32 { return float32(a) }),
	"cvtfl": convertLanes(func(a float32) int32 { return int32(a) }),
	"cvtqd": convertLanes(func(a int64) float64 { return float64(a) }),
	"cvtdq": convertLanes(func(a float64) int64 { return int64(a) }),
	"cvtfd": convertLanes(func(a float32) float64 { return float64(a) }),
	"cvtdf": convertLanes(func(a float64) float32 { return float32(a) }),
}
