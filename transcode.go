package fpu

import (
	"math"
	"math/bits"
)

// normalize80 builds the extended value m * 2^k. Values below the normal
// range are stored as denormals, values above it become infinities.
func normalize80(neg bool, m uint64, k int) Float80 {
	if m == 0 {
		return zero80(neg)
	}
	lz := bits.LeadingZeros64(m)
	m <<= uint(lz)
	e := k + extBias + 63 - lz
	switch {
	case e >= extExpMax:
		return inf80(neg)
	case e <= 0:
		if 1-e >= 64 {
			return zero80(neg)
		}
		return signed80(neg, 0, m>>uint(1-e))
	}
	return signed80(neg, e, m)
}

// Int32ToFloat80 converts a signed integer. The conversion is exact.
func Int32ToFloat80(v int32) Float80 {
	mag := uint64(v)
	if v < 0 {
		mag = uint64(-int64(v))
	}
	return normalize80(v < 0, mag, 0)
}

// SingleToFloat80 widens an IEEE single image. The conversion is exact and
// NaN payloads are kept in the top of the mantissa.
func SingleToFloat80(b uint32) Float80 {
	return ieeeToFloat80(uint64(b), 8, 23)
}

// DoubleToFloat80 widens an IEEE double image by rebiasing the exponent
// and shifting the 52-bit fraction under the explicit integer bit.
func DoubleToFloat80(b uint64) Float80 {
	return ieeeToFloat80(b, 11, 52)
}

// Float64ToFloat80 is DoubleToFloat80 on a host float64.
func Float64ToFloat80(f float64) Float80 {
	return DoubleToFloat80(math.Float64bits(f))
}

func ieeeToFloat80(b uint64, expBits, fracBits uint) Float80 {
	neg := b>>(expBits+fracBits)&1 != 0
	expMax := uint64(1)<<expBits - 1
	bias := int(expMax >> 1)
	e := b >> fracBits & expMax
	frac := b & (uint64(1)<<fracBits - 1)
	switch {
	case e == expMax && frac == 0:
		return inf80(neg)
	case e == expMax:
		return signed80(neg, extExpMax, extIntBit|frac<<(63-fracBits))
	case e == 0:
		return normalize80(neg, frac, 1-bias-int(fracBits))
	}
	return signed80(neg, int(e)-bias+extBias, extIntBit|frac<<(63-fracBits))
}

// Float80ToSingle narrows x to an IEEE single image, rounding to nearest
// even. NaNs keep the top of their payload and come out quiet.
func Float80ToSingle(x Float80) uint32 {
	return uint32(float80ToIEEE(x, 8, 23))
}

// Float80ToDouble narrows x to an IEEE double image, rounding to nearest
// even.
func Float80ToDouble(x Float80) uint64 {
	return float80ToIEEE(x, 11, 52)
}

// Float80ToFloat64 is Float80ToDouble returning a host float64.
func Float80ToFloat64(x Float80) float64 {
	return math.Float64frombits(Float80ToDouble(x))
}

func float80ToIEEE(x Float80, expBits, fracBits uint) uint64 {
	var sign uint64
	if x.Signbit() {
		sign = 1 << (expBits + fracBits)
	}
	expMax := uint64(1)<<expBits - 1
	bias := int(expMax >> 1)
	switch {
	case x.IsNaN():
		frac := x.Mant << 1 >> (64 - fracBits)
		return sign | expMax<<fracBits | frac | 1<<(fracBits-1)
	case x.IsInf():
		return sign | expMax<<fracBits
	case x.IsZero():
		return sign
	}

	// Normalize so the integer bit is set, tracking the true exponent.
	m := x.Mant
	e := x.exp()
	if e == 0 {
		e = 1
	}
	lz := bits.LeadingZeros64(m)
	m <<= uint(lz)
	e -= lz

	biased := e - extBias + bias
	if biased >= int(expMax) {
		return sign | expMax<<fracBits
	}
	if biased >= 1 {
		// The hidden bit carries into the exponent field, so a mantissa
		// that rounds up to the next power of two bumps the exponent and
		// overflow lands exactly on the infinity encoding.
		r := roundShift(m, 63-fracBits)
		return sign | (uint64(biased-1)<<fracBits + r)
	}
	shift := 63 - fracBits + uint(1-biased)
	return sign | roundShift(m, shift)
}

// roundShift returns m >> shift rounded to nearest even.
func roundShift(m uint64, shift uint) uint64 {
	switch {
	case shift == 0:
		return m
	case shift == 64:
		if m > extIntBit {
			return 1
		}
		return 0
	case shift > 64:
		return 0
	}
	q := m >> shift
	rem := m & (uint64(1)<<shift - 1)
	half := uint64(1) << (shift - 1)
	if rem > half || (rem == half && q&1 != 0) {
		q++
	}
	return q
}

// roundToSingle rounds a finite double to a 24-bit mantissa while keeping
// the double exponent range.
func roundToSingle(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	b := math.Float64bits(f)
	const drop = 52 - 23
	b += 1<<(drop-1) - 1 + (b>>drop)&1
	return math.Float64frombits(b &^ (1<<drop - 1))
}
