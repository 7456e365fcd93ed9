package fpu

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Precision selects how the eight data registers are stored and how
// arithmetic on them is performed.
type Precision int

const (
	// Extended80 keeps registers in 80-bit extended format with correctly
	// rounded 64-bit mantissa arithmetic.
	Extended80 Precision = iota
	// HostDouble keeps registers as host float64 values. Extended operands
	// are converted by rebiasing the exponent on the way in and out.
	HostDouble
)

func (p Precision) String() string {
	switch p {
	case Extended80:
		return "extended80"
	case HostDouble:
		return "hostdouble"
	default:
		return "unknown"
	}
}

// arith is the value semantics a register bank is built on. Binary
// operations take the destination first.
type arith[R any] interface {
	fromInt(v int32) R
	fromSingle(b uint32) R
	fromDouble(b uint64) R
	fromExtended(x Float80) R
	toInt(x R) int64
	toSingle(x R) uint32
	toDouble(x R) uint64
	toExtended(x R) Float80

	add(d, s R) R
	sub(d, s R) R
	mul(d, s R) R
	div(d, s R) R
	sglMul(d, s R) R
	sglDiv(d, s R) R
	cmp(d, s R) R
	sqrt(x R) R
	abs(x R) R
	neg(x R) R
	intRN(x R) R
	intRZ(x R) R
	class(x R) class
}

// ext80 is the canonical backend.
type ext80 struct{}

func (ext80) fromInt(v int32) Float80        { return Int32ToFloat80(v) }
func (ext80) fromSingle(b uint32) Float80    { return SingleToFloat80(b) }
func (ext80) fromDouble(b uint64) Float80    { return DoubleToFloat80(b) }
func (ext80) fromExtended(x Float80) Float80 { return x }
func (ext80) toInt(x Float80) int64          { return float80ToInt64(x) }
func (ext80) toSingle(x Float80) uint32      { return Float80ToSingle(x) }
func (ext80) toDouble(x Float80) uint64      { return Float80ToDouble(x) }
func (ext80) toExtended(x Float80) Float80   { return x }

func (ext80) add(d, s Float80) Float80    { return add80(d, s, precExtended) }
func (ext80) sub(d, s Float80) Float80    { return sub80(d, s, precExtended) }
func (ext80) mul(d, s Float80) Float80    { return mul80(d, s, precExtended) }
func (ext80) div(d, s Float80) Float80    { return div80(d, s, precExtended) }
func (ext80) sglMul(d, s Float80) Float80 { return mul80(d, s, precSingle) }
func (ext80) sglDiv(d, s Float80) Float80 { return div80(d, s, precSingle) }
func (ext80) cmp(d, s Float80) Float80    { return cmp80(d, s) }
func (ext80) sqrt(x Float80) Float80      { return sqrt80(x) }
func (ext80) abs(x Float80) Float80       { return x.abs() }
func (ext80) neg(x Float80) Float80       { return x.neg() }
func (ext80) intRN(x Float80) Float80     { return roundInt80(x, false) }
func (ext80) intRZ(x Float80) Float80     { return roundInt80(x, true) }
func (ext80) class(x Float80) class       { return x.class() }

// host64 stores registers as float64 and uses the host FPU.
type host64 struct{}

func (host64) fromInt(v int32) float64        { return float64(v) }
func (host64) fromSingle(b uint32) float64    { return float64(math.Float32frombits(b)) }
func (host64) fromDouble(b uint64) float64    { return math.Float64frombits(b) }
func (host64) fromExtended(x Float80) float64 { return Float80ToFloat64(x) }
func (host64) toSingle(x float64) uint32      { return math.Float32bits(float32(x)) }
func (host64) toDouble(x float64) uint64      { return math.Float64bits(x) }
func (host64) toExtended(x float64) Float80   { return Float64ToFloat80(x) }

func (host64) toInt(x float64) int64 {
	switch {
	case math.IsNaN(x):
		return math.MaxInt64
	case x >= math.MaxInt64:
		return math.MaxInt64
	case x <= math.MinInt64:
		return math.MinInt64
	}
	return int64(math.RoundToEven(x))
}

func (host64) add(d, s float64) float64    { return invalid(d+s, d, s) }
func (host64) sub(d, s float64) float64    { return invalid(d-s, d, s) }
func (host64) mul(d, s float64) float64    { return invalid(d*s, d, s) }
func (host64) div(d, s float64) float64    { return invalid(d/s, d, s) }
func (host64) sglMul(d, s float64) float64 { return invalid(roundToSingle(d*s), d, s) }
func (host64) sglDiv(d, s float64) float64 { return invalid(roundToSingle(d/s), d, s) }
func (host64) sqrt(x float64) float64      { return invalid(math.Sqrt(x), x, 0) }
func (host64) abs(x float64) float64       { return math.Abs(x) }
func (host64) neg(x float64) float64       { return -x }
func (host64) intRN(x float64) float64     { return math.RoundToEven(x) }
func (host64) intRZ(x float64) float64     { return math.Trunc(x) }

func (host64) cmp(d, s float64) float64 {
	if math.IsInf(d, 0) && d == s {
		return math.Copysign(0, d)
	}
	return invalid(d-s, d, s)
}

// hostNaN is the default NaN in host format.
var hostNaN = Float80ToFloat64(defaultNaN)

// invalid replaces a NaN produced from non-NaN operands with the default
// NaN, whose sign is clear unlike the host's.
func invalid(r, d, s float64) float64 {
	if math.IsNaN(r) && !math.IsNaN(d) && !math.IsNaN(s) {
		return hostNaN
	}
	return r
}

func (host64) class(x float64) class {
	return class{
		neg:  math.Signbit(x),
		zero: x == 0,
		inf:  math.IsInf(x, 0),
		nan:  math.IsNaN(x),
	}
}

// registerFile is the non-generic view of a bank the dispatcher uses.
type registerFile interface {
	precision() Precision
	execute(opmode uint8, dst int, src operand) class
	encode(n int, f format) operand
	get(n int) Float80
	set(n int, x Float80)
	getFloat64(n int) float64
	setFloat64(n int, v float64)
}

// bank holds FP0-FP7 in the representation of its backend.
type bank[R any, A arith[R]] struct {
	fp   [8]R
	prec Precision
	ops  [128]func(d, s R) R
}

func newBank[R any, A arith[R]](p Precision) *bank[R, A] {
	var a A
	b := &bank[R, A]{prec: p}
	b.ops = [128]func(d, s R) R{
		opFMOVE:    func(_, s R) R { return s },
		opFINT:     func(_, s R) R { return a.intRN(s) },
		opFINTRZ:   func(_, s R) R { return a.intRZ(s) },
		opFSQRT:    func(_, s R) R { return a.sqrt(s) },
		opFABS:     func(_, s R) R { return a.abs(s) },
		opFNEG:     func(_, s R) R { return a.neg(s) },
		opFDIV:     a.div,
		opFADD:     a.add,
		opFMUL:     a.mul,
		opFSGLDIV:  a.sglDiv,
		opFSGLMUL:  a.sglMul,
		opFSUB:     a.sub,
		opFCMP:     a.cmp,
		opFTST:     func(_, s R) R { return s },
	}
	for i := range b.fp {
		b.fp[i] = a.fromExtended(defaultNaN)
	}
	return b
}

func (b *bank[R, A]) precision() Precision {
	return b.prec
}

func (b *bank[R, A]) value(src operand) R {
	var a A
	switch src.format {
	case fmtLong:
		return a.fromInt(int32(uint32(src.bits)))
	case fmtWord:
		return a.fromInt(signExtend[int16](uint32(src.bits)))
	case fmtByte:
		return a.fromInt(signExtend[int8](uint32(src.bits)))
	case fmtSingle:
		return a.fromSingle(uint32(src.bits))
	case fmtDouble:
		return a.fromDouble(src.bits)
	case fmtExtended:
		return a.fromExtended(src.x)
	default:
		return b.fp[src.reg&7]
	}
}

// execute applies a known opmode to FPn and src, stores the result unless
// the operation only compares or tests, and returns the class of the
// result the condition codes are taken from.
func (b *bank[R, A]) execute(opmode uint8, dst int, src operand) class {
	var a A
	r := b.ops[opmode](b.fp[dst], b.value(src))
	if aluTable[opmode].store {
		b.fp[dst] = r
	}
	return a.class(r)
}

func (b *bank[R, A]) encode(n int, f format) operand {
	var a A
	x := b.fp[n]
	out := operand{format: f}
	switch f {
	case fmtLong:
		out.bits = uint64(uint32(saturate[int32](a.toInt(x))))
	case fmtWord:
		out.bits = uint64(uint16(saturate[int16](a.toInt(x))))
	case fmtByte:
		out.bits = uint64(uint8(saturate[int8](a.toInt(x))))
	case fmtSingle:
		out.bits = uint64(a.toSingle(x))
	case fmtDouble:
		out.bits = a.toDouble(x)
	case fmtExtended:
		out.x = a.toExtended(x)
	}
	return out
}

func (b *bank[R, A]) get(n int) Float80 {
	var a A
	return a.toExtended(b.fp[n])
}

func (b *bank[R, A]) set(n int, x Float80) {
	var a A
	b.fp[n] = a.fromExtended(x)
}

func (b *bank[R, A]) getFloat64(n int) float64 {
	var a A
	return math.Float64frombits(a.toDouble(b.fp[n]))
}

func (b *bank[R, A]) setFloat64(n int, v float64) {
	var a A
	b.fp[n] = a.fromDouble(math.Float64bits(v))
}

func newRegisterFile(p Precision) registerFile {
	if p == HostDouble {
		return newBank[float64, host64](p)
	}
	return newBank[Float80, ext80](Extended80)
}

// signExtend widens the low bits of v, as selected by T, to 32 bits.
func signExtend[T constraints.Signed](v uint32) int32 {
	return int32(T(v))
}

// saturate narrows v to T, clamping to the range of T.
func saturate[T constraints.Signed](v int64) T {
	if t := T(v); int64(t) == v {
		return t
	}
	lo := minSigned[T]()
	if v < 0 {
		return lo
	}
	return ^lo
}

func minSigned[T constraints.Signed]() T {
	m := T(-1)
	for m<<1 != 0 {
		m <<= 1
	}
	return m
}
