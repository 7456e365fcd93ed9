package fpu

import "fmt"

// Extended precision layout constants.
const (
	extBias   = 16383
	extExpMax = 0x7FFF
	extIntBit = uint64(1) << 63
	extQuiet  = uint64(1) << 62

	// extMinExp and extMaxExp bound the binary exponent of normal values
	// in the convention of big.Float.MantExp (0.5 <= mant < 1).
	extMinExp = 1 - extBias + 1
	extMaxExp = extExpMax - 1 - extBias + 1
)

// Float80 is an 80-bit extended precision value: a 16-bit word holding the
// sign and 15-bit biased exponent, and a 64-bit mantissa with an explicit
// integer bit. It is also the payload of the 96-bit memory format, where
// a zero padding word sits between SignExp and Mant.
type Float80 struct {
	SignExp uint16
	Mant    uint64
}

// defaultNaN is the quiet NaN produced by invalid operations.
var defaultNaN = Float80{SignExp: extExpMax, Mant: ^uint64(0)}

// Signbit reports whether the sign bit is set.
func (x Float80) Signbit() bool {
	return x.SignExp&0x8000 != 0
}

func (x Float80) exp() int {
	return int(x.SignExp & extExpMax)
}

// IsZero reports whether the magnitude is exactly zero.
func (x Float80) IsZero() bool {
	return x.Mant == 0 && x.exp() != extExpMax
}

// IsInf reports whether x is an infinity. The integer bit is ignored.
func (x Float80) IsInf() bool {
	return x.exp() == extExpMax && x.Mant<<1 == 0
}

// IsNaN reports whether x is a NaN of either kind.
func (x Float80) IsNaN() bool {
	return x.exp() == extExpMax && x.Mant<<1 != 0
}

func (x Float80) isSignaling() bool {
	return x.IsNaN() && x.Mant&extQuiet == 0
}

func (x Float80) quiet() Float80 {
	x.Mant |= extIntBit | extQuiet
	return x
}

func (x Float80) neg() Float80 {
	x.SignExp ^= 0x8000
	return x
}

func (x Float80) abs() Float80 {
	x.SignExp &^= 0x8000
	return x
}

func (x Float80) class() class {
	return class{
		neg:  x.Signbit(),
		zero: x.IsZero(),
		inf:  x.IsInf(),
		nan:  x.IsNaN(),
	}
}

// String formats the raw fields, e.g. "4000:C90FDAA22168C235".
func (x Float80) String() string {
	return fmt.Sprintf("%04X:%016X", x.SignExp, x.Mant)
}

// Words returns the 96-bit memory image as three big-endian longs: the
// sign/exponent word followed by the zero padding word, then the mantissa.
func (x Float80) Words() [3]uint32 {
	return [3]uint32{uint32(x.SignExp) << 16, uint32(x.Mant >> 32), uint32(x.Mant)}
}

// Float80FromWords decodes the 96-bit memory image. The padding word is
// ignored.
func Float80FromWords(w [3]uint32) Float80 {
	return Float80{SignExp: uint16(w[0] >> 16), Mant: uint64(w[1])<<32 | uint64(w[2])}
}

func signed80(neg bool, exp int, mant uint64) Float80 {
	se := uint16(exp) & extExpMax
	if neg {
		se |= 0x8000
	}
	return Float80{SignExp: se, Mant: mant}
}

func zero80(neg bool) Float80 {
	return signed80(neg, 0, 0)
}

func inf80(neg bool) Float80 {
	return signed80(neg, extExpMax, extIntBit)
}

// class is the part of a result the condition codes depend on.
type class struct {
	neg, zero, inf, nan bool
}
