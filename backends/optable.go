package backends

// Instruction-set catalog: every opcode a VecJIT backend may be asked to lower,
// with its fixed operand arity. This is data, not logic: backends are free to
// support only a subset (Compile returns CompileMissingRule for the rest), but
// nothing outside this table is ever emitted by the core.
//
// Naming convention, after the MMX/SSE mnemonics the original engines target:
// the suffix selects the lane type -- "b" 8-bit, "w" 16-bit, "l" 32-bit,
// "q" 64-bit integer lanes, "f" float32, "d" float64. "ss"/"us" mark signed and
// unsigned saturating variants. Conversions name source and destination lane
// ("cvtbw" widens bytes to words).
//
// Binary-shaped ops take 3 operands (dst, a, b); unary-shaped ops take 2
// (dst, src). At the wire level arity-2 ops pad the 3rd operand slot with the
// empty string.

// OpArity maps opcode name to its fixed operand count (2 or 3).
var OpArity = map[string]int{
	// Arithmetic.
	"addb": 3, "addw": 3, "addl": 3, "addq": 3, "addf": 3, "addd": 3,
	"subb": 3, "subw": 3, "subl": 3, "subq": 3, "subf": 3, "subd": 3,
	"mulw": 3, "mull": 3, "mulq": 3, "mulf": 3, "muld": 3,
	"divf": 3, "divd": 3,

	// Saturating arithmetic.
	"addssb": 3, "addssw": 3, "addusb": 3, "addusw": 3,
	"subssb": 3, "subssw": 3, "subusb": 3, "subusw": 3,

	// Bitwise.
	"andb": 3, "andw": 3, "andl": 3, "andq": 3,
	"orb": 3, "orw": 3, "orl": 3, "orq": 3,
	"xorb": 3, "xorw": 3, "xorl": 3, "xorq": 3,
	"andnb": 3, "andnw": 3, "andnl": 3, "andnq": 3,

	// Compare: lanes become all-ones on true, zero on false.
	"cmpeqb": 3, "cmpeqw": 3, "cmpeql": 3,
	"cmpgtb": 3, "cmpgtw": 3, "cmpgtl": 3,

	// Shifts, per-lane counts.
	"sllw": 3, "slll": 3, "sllq": 3,
	"srlw": 3, "srll": 3, "srlq": 3,
	"sraw": 3, "sral": 3,

	// Min/max.
	"minub": 3, "maxub": 3, "minsw": 3, "maxsw": 3,
	"minf": 3, "maxf": 3, "mind": 3, "maxd": 3,

	// Multiply-accumulate: dst += a * b.
	"maccw": 3, "maccl": 3, "maccf": 3, "maccd": 3,
	// Multiply adjacent word pairs, accumulate into longword lanes.
	"msumwl": 3,

	// Merge (interleave) low/high halves of two vectors.
	"mergelob": 3, "mergehib": 3,
	"mergelow": 3, "mergehiw": 3,
	"mergelol": 3, "mergehil": 3,

	// Moves (lane-wise copy / load / store).
	"movb": 2, "movw": 2, "movl": 2, "movq": 2, "movf": 2, "movd": 2,

	// Unary arithmetic.
	"negb": 2, "negw": 2, "negl": 2, "negq": 2, "negf": 2, "negd": 2,
	"notb": 2, "notw": 2, "notl": 2, "notq": 2,
	"absf": 2, "absd": 2,
	"sqrtf": 2, "sqrtd": 2,

	// Width/type conversions.
	"cvtbw": 2, "cvtwl": 2, "cvtlq": 2,
	"cvtwb": 2, "cvtlw": 2, "cvtql": 2,
	"cvtlf": 2, "cvtfl": 2, "cvtqd": 2, "cvtdq": 2,
	"cvtfd": 2, "cvtdf": 2,

	// Split a vector into its widened low/high half.
	"splitlob": 2, "splithib": 2,
	"splitlow": 2, "splithiw": 2,
}

// Arity returns the fixed operand count of opcode, and whether the opcode is
// part of the catalog.
func Arity(opcode string) (int, bool) {
	arity, found := OpArity[opcode]
	return arity, found
}

// KnownOp returns whether opcode is part of the instruction-set catalog.
func KnownOp(opcode string) bool {
	_, found := OpArity[opcode]
	return found
}
