package fpu

func init() {
	registerFBcc()
	registerFScc()
	registerFDBcc()
	registerFTRAPcc()
}

// --- FBcc ---

func registerFBcc() {
	// Encoding: 1111 001 01s pppppp
	// s = 0: 16-bit displacement, s = 1: 32-bit displacement
	for cond := uint16(0); cond < 64; cond++ {
		register(0xF280|cond, opFBcc16)
		register(0xF2C0|cond, opFBcc32)
	}
}

func opFBcc16(f *FPU) error {
	base := f.reg.PC // PC points to the displacement word
	disp, err := f.fetchPC()
	if err != nil {
		return err
	}
	return f.branch(base, int32(int16(disp)))
}

func opFBcc32(f *FPU) error {
	base := f.reg.PC
	disp, err := f.fetchPCLong()
	if err != nil {
		return err
	}
	return f.branch(base, int32(disp))
}

// branch jumps to base+disp when the predicate in the opcode holds. The
// displacement is relative to the start of the displacement field.
func (f *FPU) branch(base uint32, disp int32) error {
	ok, err := f.testCondition(f.ir & 0x3F)
	if err != nil {
		return err
	}
	if ok {
		f.reg.PC = uint32(int32(base) + disp)
	}
	f.cycles += cycFBcc
	return nil
}

// --- FScc ---

func registerFScc() {
	// Encoding: 1111 001 001 eeeeee, followed by the predicate word.
	// Mode 1 is FDBcc and mode 7 registers 2-4 are FTRAPcc.
	for mode := uint16(0); mode < 8; mode++ {
		if mode == 1 {
			continue
		}
		for reg := uint16(0); reg < 8; reg++ {
			if mode == 7 && reg > 1 {
				continue
			}
			register(0xF240|mode<<3|reg, opFScc)
		}
	}
}

// opFScc sets the destination to 0xFF when the predicate holds and to zero
// otherwise. The value is written as a long.
func opFScc(f *FPU) error {
	w2, err := f.fetchExt()
	if err != nil {
		return err
	}
	ok, err := f.testCondition(w2 & 0x3F)
	if err != nil {
		return err
	}
	var v uint64
	if ok {
		v = 0xFF
	}
	mode, reg := f.eaField()
	if err := f.writeEA(mode, reg, Long, v); err != nil {
		return err
	}
	f.cycles += cycFScc
	return nil
}

// --- FDBcc ---

func registerFDBcc() {
	// Encoding: 1111 001 001 001 DDD, predicate word, 16-bit displacement
	for dn := uint16(0); dn < 8; dn++ {
		register(0xF248|dn, opFDBcc)
	}
}

func opFDBcc(f *FPU) error {
	dn := f.ir & 7
	w2, err := f.fetchExt()
	if err != nil {
		return err
	}
	base := f.reg.PC
	disp, err := f.fetchPC()
	if err != nil {
		return err
	}
	ok, err := f.testCondition(w2 & 0x3F)
	if err != nil {
		return err
	}
	f.cycles += cycFDBcc
	if ok {
		// Condition true: no branch, no decrement
		return nil
	}

	// Decrement low word of Dn
	val := int16(f.reg.D[dn]&0xFFFF) - 1
	f.reg.D[dn] = (f.reg.D[dn] & 0xFFFF0000) | uint32(uint16(val))
	if val != -1 {
		f.reg.PC = uint32(int32(base) + int32(int16(disp)))
	}
	return nil
}

// --- FTRAPcc ---

func registerFTRAPcc() {
	// Encoding: 1111 001 001 111 ooo, ooo = 2 (word), 3 (long), 4 (none)
	for op := uint16(2); op <= 4; op++ {
		register(0xF278|op, opFTRAPcc)
	}
}

func opFTRAPcc(f *FPU) error {
	return &UnimplementedError{Feature: "FTRAPcc"}
}
