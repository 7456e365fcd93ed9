package fpu

import "fmt"

// FMOVEM command word modes (bits 12-11).
const (
	fmovemStaticPredec  = 0 // static list, -(An)
	fmovemStaticPostinc = 2 // static list, (An)+ or control
)

// opFMOVEOut stores FPn to memory or a data register, converting to the
// destination format.
// Command word: 011 fff sss kkkkkkk
//
//	fff = destination format, sss = source FP register, k = k-factor
func (f *FPU) opFMOVEOut(w2 uint16) error {
	dstFmt := format(w2>>10) & 7
	src := int(w2>>7) & 7

	if dstFmt == fmtPacked || dstFmt == fmtPackedK {
		return &UnimplementedError{Feature: "packed decimal destination"}
	}

	out := f.fp.encode(src, dstFmt)
	mode, reg := f.eaField()
	var err error
	if dstFmt == fmtExtended {
		err = f.writeEAExt(mode, reg, out.x)
	} else {
		err = f.writeEA(mode, reg, formatSize[dstFmt], out.bits)
	}
	if err != nil {
		return err
	}
	f.cycles += cycFMOVEOut
	return nil
}

// opFMOVEM moves a static list of FP registers to or from memory.
// Command word: 11 d mm 000 llllllll
//
//	d=1: registers to <ea>, which must be -(An); list bit i is FPi
//	d=0: <ea> to registers, which must be (An)+; list bit i is FP(7-i)
func (f *FPU) opFMOVEM(w2 uint16) error {
	toMem := w2&0x2000 != 0
	mode := (w2 >> 11) & 3
	list := uint8(w2)
	eaMode, eaReg := f.eaField()

	switch {
	case toMem && mode == fmovemStaticPredec && eaMode == 4:
		for i := 0; i < 8; i++ {
			if list&(1<<i) == 0 {
				continue
			}
			if err := f.writeEAExt(eaMode, eaReg, f.fp.get(i)); err != nil {
				return err
			}
			f.cycles += cycFMOVEM
		}
		return nil

	case !toMem && mode == fmovemStaticPostinc && eaMode == 3:
		for i := 0; i < 8; i++ {
			if list&(1<<i) == 0 {
				continue
			}
			x, err := f.readEAExt(eaMode, eaReg)
			if err != nil {
				return err
			}
			f.fp.set(7-i, x)
			f.cycles += cycFMOVEM
		}
		return nil
	}

	return &UnimplementedError{Feature: fmt.Sprintf("FMOVEM mode %d with addressing mode %d", mode, eaMode)}
}
