package fpu

import (
	"math/big"
)

// Extended arithmetic is done with math/big at the target precision. Every
// big.Float operation is correctly rounded to its receiver's precision, so
// a result is only recomputed when it lands in the denormal range and the
// precision available there is smaller.

const (
	precExtended = 64
	precSingle   = 24
)

func newFloat(prec uint) *big.Float {
	return new(big.Float).SetPrec(prec).SetMode(big.ToNearestEven)
}

// bigOf returns the exact value of a finite x.
func bigOf(x Float80) *big.Float {
	e := x.exp()
	if e == 0 {
		e = 1
	}
	f := newFloat(precExtended).SetUint64(x.Mant)
	f.SetMantExp(f, e-extBias-63)
	if x.Signbit() {
		f.Neg(f)
	}
	return f
}

// pack converts a finite big.Float holding at most 64 significant bits
// into extended format.
func pack(z *big.Float) Float80 {
	neg := z.Signbit()
	if z.Sign() == 0 {
		return zero80(neg)
	}
	e := z.MantExp(nil)
	if e > extMaxExp {
		return inf80(neg)
	}
	m := new(big.Float).Abs(z)
	if e < extMinExp {
		m.SetMantExp(m, extBias+62)
		u, _ := m.Uint64()
		return signed80(neg, 0, u)
	}
	m.SetMantExp(m, 64-e)
	u, _ := m.Uint64()
	return signed80(neg, e+extBias-1, u)
}

// compute evaluates op into a fresh big.Float of precision prec and packs
// it, rounding once even when the result is denormal.
func compute(prec uint, op func(z *big.Float)) Float80 {
	z := newFloat(prec)
	op(z)
	if z.Sign() == 0 || z.IsInf() {
		if z.IsInf() {
			return inf80(z.Signbit())
		}
		return zero80(z.Signbit())
	}
	e := z.MantExp(nil)
	if e >= extMinExp {
		return pack(z)
	}
	p := precExtended - (extMinExp - e)
	if p > int(prec) {
		p = int(prec)
	}
	if p < 1 {
		// Below the smallest denormal: round to it or to zero. At p == 0
		// the value lies in [half, one) of the smallest denormal.
		if p == 0 {
			half := newFloat(prec).SetMantExp(newFloat(prec).SetInt64(1), e-1)
			if new(big.Float).Abs(z).Cmp(half) > 0 {
				return signed80(z.Signbit(), 0, 1)
			}
		}
		return zero80(z.Signbit())
	}
	z = newFloat(uint(p))
	op(z)
	return pack(z)
}

// propagate returns the NaN result for a two-operand operation, preferring
// the destination.
func propagate(dst, src Float80) Float80 {
	if dst.IsNaN() {
		return dst.quiet()
	}
	return src.quiet()
}

func add80(dst, src Float80, prec uint) Float80 {
	switch {
	case dst.IsNaN() || src.IsNaN():
		return propagate(dst, src)
	case dst.IsInf() && src.IsInf():
		if dst.Signbit() != src.Signbit() {
			return defaultNaN
		}
		return dst
	case dst.IsInf():
		return dst
	case src.IsInf():
		return src
	case dst.IsZero() && src.IsZero():
		return zero80(dst.Signbit() && src.Signbit())
	}
	a, b := bigOf(dst), bigOf(src)
	return compute(prec, func(z *big.Float) { z.Add(a, b) })
}

func sub80(dst, src Float80, prec uint) Float80 {
	if src.IsNaN() {
		return propagate(dst, src)
	}
	return add80(dst, src.neg(), prec)
}

func mul80(dst, src Float80, prec uint) Float80 {
	neg := dst.Signbit() != src.Signbit()
	switch {
	case dst.IsNaN() || src.IsNaN():
		return propagate(dst, src)
	case (dst.IsInf() && src.IsZero()) || (dst.IsZero() && src.IsInf()):
		return defaultNaN
	case dst.IsInf() || src.IsInf():
		return inf80(neg)
	case dst.IsZero() || src.IsZero():
		return zero80(neg)
	}
	a, b := bigOf(dst), bigOf(src)
	return compute(prec, func(z *big.Float) { z.Mul(a, b) })
}

// div80 computes dst / src.
func div80(dst, src Float80, prec uint) Float80 {
	neg := dst.Signbit() != src.Signbit()
	switch {
	case dst.IsNaN() || src.IsNaN():
		return propagate(dst, src)
	case (dst.IsInf() && src.IsInf()) || (dst.IsZero() && src.IsZero()):
		return defaultNaN
	case dst.IsInf() || src.IsZero():
		return inf80(neg)
	case dst.IsZero() || src.IsInf():
		return zero80(neg)
	}
	a, b := bigOf(dst), bigOf(src)
	return compute(prec, func(z *big.Float) { z.Quo(a, b) })
}

func sqrt80(x Float80) Float80 {
	switch {
	case x.IsNaN():
		return x.quiet()
	case x.IsZero():
		return x
	case x.Signbit():
		return defaultNaN
	case x.IsInf():
		return x
	}
	a := bigOf(x)
	return compute(precExtended, func(z *big.Float) { z.Sqrt(a) })
}

// cmp80 is the difference FCMP takes its condition codes from. Equal
// infinities compare equal instead of producing a NaN.
func cmp80(dst, src Float80) Float80 {
	if dst.IsInf() && src.IsInf() && dst.Signbit() == src.Signbit() {
		return zero80(dst.Signbit())
	}
	return sub80(dst, src, precExtended)
}

// roundInt80 rounds x to an integral value, to nearest even or toward zero.
// The result stays in extended format and keeps the sign of x.
func roundInt80(x Float80, trunc bool) Float80 {
	switch {
	case x.IsNaN():
		return x.quiet()
	case x.IsInf() || x.IsZero():
		return x
	}
	mag, whole := intMagnitude(x, trunc)
	if whole {
		return x
	}
	return normalize80(x.Signbit(), mag, 0)
}

// intMagnitude returns |x| rounded to an integer. whole is set when x has
// no fractional bits at all, in which case mag is not computed.
func intMagnitude(x Float80, trunc bool) (mag uint64, whole bool) {
	e := x.exp()
	if e == 0 {
		e = 1
	}
	shift := extBias + 63 - e
	if shift <= 0 {
		return 0, true
	}
	if trunc {
		if shift >= 64 {
			return 0, false
		}
		return x.Mant >> uint(shift), false
	}
	return roundShift(x.Mant, uint(shift)), false
}

// float80ToInt64 rounds x to the nearest integer, ties to even, and
// saturates. NaN converts to the positive maximum.
func float80ToInt64(x Float80) int64 {
	const maxInt64, minInt64 = 1<<63 - 1, -1 << 63
	switch {
	case x.IsNaN():
		return maxInt64
	case x.IsInf():
		if x.Signbit() {
			return minInt64
		}
		return maxInt64
	case x.IsZero():
		return 0
	}
	mag, whole := intMagnitude(x, false)
	if whole {
		// At least 2^63 unless the mantissa is unnormalized.
		e := x.exp() - extBias - 63
		if e >= 64 || x.Mant<<uint(e)>>uint(e) != x.Mant {
			mag = extIntBit
		} else {
			mag = x.Mant << uint(e)
		}
	}
	if x.Signbit() {
		if mag >= extIntBit {
			return minInt64
		}
		return -int64(mag)
	}
	if mag >= extIntBit {
		return maxInt64
	}
	return int64(mag)
}
