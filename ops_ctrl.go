package fpu

func init() {
	registerFSAVE()
	registerFRESTORE()
}

// Control register select field (command word bits 12-10).
const (
	ctlFPIAR = 1
	ctlFPSR  = 2
	ctlFPCR  = 4
)

// controlRegister returns the control register named by a select field.
func (f *FPU) controlRegister(sel uint16) (*uint32, error) {
	switch sel {
	case ctlFPIAR:
		return &f.fpiar, nil
	case ctlFPSR:
		return &f.fpsr, nil
	case ctlFPCR:
		return &f.fpcr, nil
	}
	return nil, &DecodeError{What: "control register select", Value: uint32(sel)}
}

// opFMOVEControl moves one control register to or from <ea>.
// Command word: 10 d rrr 0000000000
//
//	d=0: <ea> to register  d=1: register to <ea>
func (f *FPU) opFMOVEControl(w2 uint16) error {
	toEA := w2&0x2000 != 0
	cr, err := f.controlRegister((w2 >> 10) & 7)
	if err != nil {
		return err
	}

	mode, reg := f.eaField()
	if toEA {
		err = f.writeEA(mode, reg, Long, uint64(*cr))
	} else {
		var v uint64
		if v, err = f.readEA(mode, reg, Long); err == nil {
			*cr = uint32(v)
		}
	}
	if err != nil {
		return err
	}
	f.cycles += cycFMOVECtl
	return nil
}

// --- FSAVE / FRESTORE ---
//
// Neither instruction moves real coprocessor state. FSAVE writes a single
// zero long and FRESTORE reads and discards a single long, so only the bus
// traffic is reproduced.

func registerFSAVE() {
	// Encoding: 1111 001 100 eeeeee
	for ea := uint16(0); ea < 64; ea++ {
		register(0xF300|ea, opFSAVE)
	}
}

func opFSAVE(f *FPU) error {
	mode, reg := f.eaField()
	if err := f.writeEA(mode, reg, Long, 0); err != nil {
		return err
	}
	f.cycles += cycFSAVE
	return nil
}

func registerFRESTORE() {
	// Encoding: 1111 001 101 eeeeee
	for ea := uint16(0); ea < 64; ea++ {
		register(0xF340|ea, opFRESTORE)
	}
}

func opFRESTORE(f *FPU) error {
	mode, reg := f.eaField()
	if _, err := f.readEA(mode, reg, Long); err != nil {
		return err
	}
	f.cycles += cycFRESTORE
	return nil
}
