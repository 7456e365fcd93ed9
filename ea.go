package fpu

// EA addressing mode categories.
const (
	eaDataReg   = iota // Data register direct (Dn)
	eaAddrReg          // Address register direct (An)
	eaMemory           // All memory addressing modes
	eaImmediate        // Immediate (#imm)
)

// ea represents a resolved effective address operand.
type ea struct {
	mode uint8     // eaDataReg, eaAddrReg, eaMemory, eaImmediate
	reg  uint8     // register number (for register modes)
	addr uint32    // memory address (for memory modes)
	imm  [3]uint32 // immediate longs, most significant first
}

// read returns a byte, word or long operand.
func (e ea) read(f *FPU, sz Size) (uint32, error) {
	switch e.mode {
	case eaDataReg:
		return f.reg.D[e.reg] & sz.Mask(), nil
	case eaAddrReg:
		return f.reg.A[e.reg], nil
	case eaImmediate:
		return e.imm[0] & sz.Mask(), nil
	}
	return f.readBus(sz, e.addr)
}

// write stores a byte, word or long operand. Data register writes
// preserve the bits above the operand width.
func (e ea) write(f *FPU, sz Size, val uint32) error {
	switch e.mode {
	case eaDataReg:
		mask := sz.Mask()
		f.reg.D[e.reg] = f.reg.D[e.reg]&^mask | val&mask
		return nil
	case eaAddrReg:
		f.reg.A[e.reg] = val
		return nil
	}
	return f.writeBus(sz, e.addr, val)
}

// read64 returns a double precision image as two longs.
func (e ea) read64(f *FPU) (uint64, error) {
	if e.mode == eaImmediate {
		return uint64(e.imm[0])<<32 | uint64(e.imm[1]), nil
	}
	hi, err := f.readBus(Long, e.addr)
	if err != nil {
		return 0, err
	}
	lo, err := f.readBus(Long, e.addr+4)
	if err != nil {
		return 0, err
	}
	return uint64(hi)<<32 | uint64(lo), nil
}

func (e ea) write64(f *FPU, v uint64) error {
	if err := f.writeBus(Long, e.addr, uint32(v>>32)); err != nil {
		return err
	}
	return f.writeBus(Long, e.addr+4, uint32(v))
}

// readExt returns a 96-bit extended image: the sign/exponent word, a
// padding word that is skipped, then the mantissa as two longs.
func (e ea) readExt(f *FPU) (Float80, error) {
	if e.mode == eaImmediate {
		return Float80FromWords(e.imm), nil
	}
	se, err := f.readBus(Word, e.addr)
	if err != nil {
		return Float80{}, err
	}
	hi, err := f.readBus(Long, e.addr+4)
	if err != nil {
		return Float80{}, err
	}
	lo, err := f.readBus(Long, e.addr+8)
	if err != nil {
		return Float80{}, err
	}
	return Float80{SignExp: uint16(se), Mant: uint64(hi)<<32 | uint64(lo)}, nil
}

// writeExt stores a 96-bit extended image with a zero padding word.
func (e ea) writeExt(f *FPU, x Float80) error {
	w := x.Words()
	if err := f.writeBus(Word, e.addr, w[0]>>16); err != nil {
		return err
	}
	if err := f.writeBus(Word, e.addr+2, 0); err != nil {
		return err
	}
	if err := f.writeBus(Long, e.addr+4, w[1]); err != nil {
		return err
	}
	return f.writeBus(Long, e.addr+8, w[2])
}

// resolveEA decodes and resolves an effective address from a mode/register
// pair for an operand of width sz. Extension words are fetched from the
// instruction stream and address registers are stepped as a side effect.
// Modes that cannot hold an operand of this width, or cannot be written
// when write is set, return an *AddressingModeError before any side
// effect.
func (f *FPU) resolveEA(mode, reg uint8, sz Size, write bool) (ea, error) {
	bad := func() (ea, error) {
		return ea{}, &AddressingModeError{Mode: mode, Reg: reg, Width: sz, PC: f.pc, Write: write}
	}

	switch mode {
	case 0: // Dn - Data register direct
		if sz > Long {
			return bad()
		}
		return ea{mode: eaDataReg, reg: reg}, nil

	case 1: // An - Address register direct
		if sz != Long {
			return bad()
		}
		return ea{mode: eaAddrReg, reg: reg}, nil

	case 2: // (An) - Address register indirect
		return ea{mode: eaMemory, addr: f.reg.A[reg]}, nil

	case 3: // (An)+ - Address register indirect with postincrement
		addr := f.reg.A[reg]
		f.reg.A[reg] += stepSize(reg, sz)
		return ea{mode: eaMemory, addr: addr}, nil

	case 4: // -(An) - Address register indirect with predecrement
		f.reg.A[reg] -= stepSize(reg, sz)
		return ea{mode: eaMemory, addr: f.reg.A[reg]}, nil

	case 5: // d16(An) - Address register indirect with displacement
		disp, err := f.fetchPC()
		if err != nil {
			return ea{}, err
		}
		return ea{mode: eaMemory, addr: uint32(int32(f.reg.A[reg]) + int32(int16(disp)))}, nil

	case 6: // d8(An,Xn) - Address register indirect with index
		ext, err := f.fetchPC()
		if err != nil {
			return ea{}, err
		}
		return ea{mode: eaMemory, addr: f.calcIndex(f.reg.A[reg], ext)}, nil

	case 7:
		switch reg {
		case 0: // abs.W - Absolute short (sign-extended to 32 bits)
			addr, err := f.fetchPC()
			if err != nil {
				return ea{}, err
			}
			return ea{mode: eaMemory, addr: uint32(int32(int16(addr)))}, nil

		case 1: // abs.L - Absolute long
			addr, err := f.fetchPCLong()
			if err != nil {
				return ea{}, err
			}
			return ea{mode: eaMemory, addr: addr}, nil

		case 2: // d16(PC) - PC relative with displacement
			if write {
				return bad()
			}
			pc := f.reg.PC // PC points to the extension word
			disp, err := f.fetchPC()
			if err != nil {
				return ea{}, err
			}
			return ea{mode: eaMemory, addr: uint32(int32(pc) + int32(int16(disp)))}, nil

		case 3: // d8(PC,Xn) - PC relative with index
			if write {
				return bad()
			}
			pc := f.reg.PC
			ext, err := f.fetchPC()
			if err != nil {
				return ea{}, err
			}
			return ea{mode: eaMemory, addr: f.calcIndex(pc, ext)}, nil

		case 4: // #imm - Immediate
			if write {
				return bad()
			}
			return f.fetchImmediate(sz)
		}
	}
	return bad()
}

// stepSize is the postincrement/predecrement amount for an operand width.
func stepSize(reg uint8, sz Size) uint32 {
	if reg == 7 && sz == Byte {
		return 2 // SP always stays word-aligned
	}
	return uint32(sz)
}

// fetchImmediate consumes an immediate operand from the instruction
// stream. A byte immediate occupies the low half of a word.
func (f *FPU) fetchImmediate(sz Size) (ea, error) {
	e := ea{mode: eaImmediate}
	switch sz {
	case Byte, Word:
		w, err := f.fetchPC()
		if err != nil {
			return ea{}, err
		}
		e.imm[0] = uint32(w)
		return e, nil
	}
	for i := 0; i < int(sz)/4; i++ {
		v, err := f.fetchPCLong()
		if err != nil {
			return ea{}, err
		}
		e.imm[i] = v
	}
	return e, nil
}

// calcIndex computes a base + d8(Xn) indexed address from an extension word.
// Extension word format: D/A | Reg(3) | W/L | 0(3) | Disp(8)
func (f *FPU) calcIndex(base uint32, ext uint16) uint32 {
	disp := int8(ext & 0xFF)
	xn := (ext >> 12) & 7

	var idx int32
	if ext&0x8000 != 0 {
		idx = int32(f.reg.A[xn])
	} else {
		idx = int32(f.reg.D[xn])
	}

	// Bit 11: 0 = sign-extend word index, 1 = full long index
	if ext&0x0800 == 0 {
		idx = int32(int16(idx))
	}

	return uint32(int32(base) + idx + int32(disp))
}

// readEA resolves and reads an operand of up to 64 bits.
func (f *FPU) readEA(mode, reg uint8, sz Size) (uint64, error) {
	e, err := f.resolveEA(mode, reg, sz, false)
	if err != nil {
		return 0, err
	}
	if sz == Double {
		return e.read64(f)
	}
	v, err := e.read(f, sz)
	return uint64(v), err
}

// writeEA resolves and writes an operand of up to 64 bits.
func (f *FPU) writeEA(mode, reg uint8, sz Size, v uint64) error {
	e, err := f.resolveEA(mode, reg, sz, true)
	if err != nil {
		return err
	}
	if sz == Double {
		return e.write64(f, v)
	}
	return e.write(f, sz, uint32(v))
}

// readEAExt resolves and reads a 96-bit extended operand.
func (f *FPU) readEAExt(mode, reg uint8) (Float80, error) {
	e, err := f.resolveEA(mode, reg, Extended, false)
	if err != nil {
		return Float80{}, err
	}
	return e.readExt(f)
}

// writeEAExt resolves and writes a 96-bit extended operand.
func (f *FPU) writeEAExt(mode, reg uint8, x Float80) error {
	e, err := f.resolveEA(mode, reg, Extended, true)
	if err != nil {
		return err
	}
	return e.writeExt(f, x)
}
