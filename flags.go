package fpu

// FPSR condition code bits.
const (
	ccNaN uint32 = 1 << (24 + iota) // Not a number
	ccI                             // Infinity
	ccZ                             // Zero
	ccN                             // Negative

	ccMask = ccN | ccZ | ccI | ccNaN
)

// bits returns the condition code byte for a result class.
func (c class) bits() uint32 {
	var cc uint32
	if c.neg {
		cc |= ccN
	}
	if c.zero {
		cc |= ccZ
	}
	if c.inf {
		cc |= ccI
	}
	if c.nan {
		cc |= ccNaN
	}
	return cc
}

// setFlags recomputes N, Z, I and NaN from a result. The other FPSR bits
// are left alone.
func (f *FPU) setFlags(c class) {
	f.fpsr = f.fpsr&^ccMask | c.bits()
}

// Condition evaluates a floating-point predicate (0x00-0x1F) against the
// current FPSR. Codes 0x10-0x1F behave like 0x00-0x0F.
func (f *FPU) Condition(code uint16) (bool, error) {
	return f.testCondition(code)
}

// testCondition evaluates a floating-point predicate.
func (f *FPU) testCondition(code uint16) (bool, error) {
	if code > 0x1F {
		return false, &DecodeError{What: "condition predicate", Value: uint32(code)}
	}
	sr := f.fpsr
	n := sr&ccN != 0
	z := sr&ccZ != 0
	nan := sr&ccNaN != 0

	switch code & 0x0F {
	case 0x00: // F - False
		return false, nil
	case 0x01: // EQ - Equal
		return z, nil
	case 0x02: // OGT - Greater Than
		return !(nan || z || n), nil
	case 0x03: // OGE - Greater or Equal
		return z || !(nan || n), nil
	case 0x04: // OLT - Less Than
		return n && !(nan || z), nil
	case 0x05: // OLE - Less or Equal
		return z || (n && !nan), nil
	case 0x06: // OGL - Ordered, not equal
		return !(nan || z), nil
	case 0x07: // OR - Ordered
		return !nan, nil
	case 0x08: // UN - Unordered
		return nan, nil
	case 0x09: // UEQ - Unordered or Equal
		return nan || z, nil
	case 0x0A: // UGT - Not Less or Equal
		return nan || !(n || z), nil
	case 0x0B: // UGE - Not Less Than
		return nan || z || !n, nil
	case 0x0C: // ULT - Not Greater or Equal
		return nan || (n && !z), nil
	case 0x0D: // ULE - Not Greater Than
		return nan || z || n, nil
	case 0x0E: // NE - Not Equal
		return !z, nil
	default: // T - True
		return true, nil
	}
}
