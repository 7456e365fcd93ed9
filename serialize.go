package fpu

import (
	"encoding/binary"
	"errors"
)

// fpuSerializeVersion is incremented whenever the binary layout changes.
const fpuSerializeVersion = 1

// fpuSerializeSize is the number of bytes produced by FPU.Serialize:
// version, precision, eight 12-byte registers, FPCR, FPSR, FPIAR, cycles
// and the halted flag. Update this constant whenever the layout changes.
const fpuSerializeSize = 1 + 1 + 8*12 + 3*4 + 8 + 1

// SerializeSize is the number of bytes needed for Serialize.
const SerializeSize = fpuSerializeSize

// Serialize writes the coprocessor state into buf, which must be at least
// SerializeSize bytes. Registers are stored in the 96-bit memory format.
// The host registers, bus and any latched fault are not included.
func (f *FPU) Serialize(buf []byte) error {
	if len(buf) < fpuSerializeSize {
		return errors.New("fpu: serialize buffer too small")
	}

	buf[0] = fpuSerializeVersion
	buf[1] = byte(f.fp.precision())
	be := binary.BigEndian
	off := 2

	for i := 0; i < 8; i++ {
		for _, w := range f.fp.get(i).Words() {
			be.PutUint32(buf[off:], w)
			off += 4
		}
	}

	be.PutUint32(buf[off:], f.fpcr)
	off += 4
	be.PutUint32(buf[off:], f.fpsr)
	off += 4
	be.PutUint32(buf[off:], f.fpiar)
	off += 4

	be.PutUint64(buf[off:], f.cycles)
	off += 8

	buf[off] = boolByte(f.halted)
	return nil
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// Deserialize restores state written by Serialize. The snapshot must have
// been taken with the same Precision. A restored halted state reports a
// placeholder fault, since the cause is not saved.
func (f *FPU) Deserialize(buf []byte) error {
	if len(buf) < fpuSerializeSize {
		return errors.New("fpu: deserialize buffer too small")
	}
	if buf[0] != fpuSerializeVersion {
		return errors.New("fpu: unsupported serialize version")
	}
	if Precision(buf[1]) != f.fp.precision() {
		return errors.New("fpu: snapshot precision does not match")
	}

	be := binary.BigEndian
	off := 2

	for i := 0; i < 8; i++ {
		var w [3]uint32
		for j := range w {
			w[j] = be.Uint32(buf[off:])
			off += 4
		}
		f.fp.set(i, Float80FromWords(w))
	}

	f.fpcr = be.Uint32(buf[off:])
	off += 4
	f.fpsr = be.Uint32(buf[off:])
	off += 4
	f.fpiar = be.Uint32(buf[off:])
	off += 4

	f.cycles = be.Uint64(buf[off:])
	off += 8

	f.halted = buf[off] != 0
	f.fault = nil
	if f.halted {
		f.fault = &Fault{Err: errors.New("fpu: halted in restored snapshot")}
	}
	return nil
}
