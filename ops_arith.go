package fpu

func init() {
	registerGeneral()
}

// format identifies how an operand is encoded.
type format uint8

// Source/destination format field values (command word bits 12-10).
const (
	fmtLong     format = 0
	fmtSingle   format = 1
	fmtExtended format = 2
	fmtPacked   format = 3
	fmtWord     format = 4
	fmtDouble   format = 5
	fmtByte     format = 6
	fmtPackedK  format = 7 // packed with dynamic k-factor (destination only)
	fmtConstROM format = 7 // FMOVECR (source only)

	fmtReg format = 0xFF // register-to-register source
)

// formatSize maps the format field to the operand width.
var formatSize = [8]Size{
	fmtLong:     Long,
	fmtSingle:   Long,
	fmtExtended: Extended,
	fmtPacked:   Extended,
	fmtWord:     Word,
	fmtDouble:   Double,
	fmtByte:     Byte,
	fmtPackedK:  Extended,
}

// operand is a source or destination value in transit between memory and
// the register bank. bits holds integer and IEEE images, x holds extended
// images and reg names the source register for register forms.
type operand struct {
	format format
	bits   uint64
	x      Float80
	reg    int
}

// Opmodes of the general arithmetic class (command word bits 6-0).
const (
	opFMOVE   = 0x00
	opFINT    = 0x01
	opFINTRZ  = 0x03
	opFSQRT   = 0x04
	opFABS    = 0x18
	opFNEG    = 0x1A
	opFDIV    = 0x20
	opFADD    = 0x22
	opFMUL    = 0x23
	opFSGLDIV = 0x24
	opFSGLMUL = 0x27
	opFSUB    = 0x28
	opFCMP    = 0x38
	opFTST    = 0x3A
)

// aluOp describes one arithmetic opmode.
type aluOp struct {
	name   string
	cycles uint64
	store  bool // false for compare and test
}

// aluTable is indexed by opmode. Entries with an empty name are undefined.
var aluTable = [128]aluOp{
	opFMOVE:   {"FMOVE", cycFMOVE, true},
	opFINT:    {"FINT", cycFINT, true},
	opFINTRZ:  {"FINTRZ", cycFINT, true},
	opFSQRT:   {"FSQRT", cycFSQRT, true},
	opFABS:    {"FABS", cycFABS, true},
	opFNEG:    {"FNEG", cycFNEG, true},
	opFDIV:    {"FDIV", cycFDIV, true},
	opFADD:    {"FADD", cycFADD, true},
	opFMUL:    {"FMUL", cycFMUL, true},
	opFSGLDIV: {"FSGLDIV", cycFDIV, true},
	opFSGLMUL: {"FSGLMUL", cycFMUL, true},
	opFSUB:    {"FSUB", cycFSUB, true},
	opFCMP:    {"FCMP", cycFCMP, false},
	opFTST:    {"FTST", cycFTST, false},
}

// Command word classes (bits 15-13) of the general opcode.
var commandClasses = [8]func(*FPU, uint16) error{
	0: (*FPU).opArith,        // FPm,FPn
	2: (*FPU).opArith,        // <ea>,FPn
	3: (*FPU).opFMOVEOut,     // FPn,<ea>
	4: (*FPU).opFMOVEControl, // <ea>,FPcr
	5: (*FPU).opFMOVEControl, // FPcr,<ea>
	6: (*FPU).opFMOVEM,       // <ea>,<list>
	7: (*FPU).opFMOVEM,       // <list>,<ea>
}

// registerGeneral registers the cpGEN opcodes.
// Encoding: 1111 001 000 eeeeee, followed by the command word.
func registerGeneral() {
	for ea := uint16(0); ea < 64; ea++ {
		register(0xF200|ea, opGeneral)
	}
}

func opGeneral(f *FPU) error {
	w2, err := f.fetchExt()
	if err != nil {
		return err
	}
	handler := commandClasses[w2>>13]
	if handler == nil {
		return &DecodeError{What: "command class", Value: uint32(w2 >> 13)}
	}
	return handler(f, w2)
}

// opArith executes an arithmetic operation.
// Command word: 0 R/M 0 sss ddd ooooooo
//
//	R/M=0: source is FPsss  R/M=1: source is <ea> in format sss
func (f *FPU) opArith(w2 uint16) error {
	rm := w2&0x4000 != 0
	src := format(w2>>10) & 7
	dst := int(w2>>7) & 7
	opmode := uint8(w2 & 0x7F)

	if rm && src == fmtConstROM {
		return f.opFMOVECR(dst, opmode)
	}

	op := aluTable[opmode]
	if op.name == "" {
		return &DecodeError{What: "arithmetic opmode", Value: uint32(opmode)}
	}

	in := operand{format: fmtReg, reg: int(src)}
	if rm {
		var err error
		if in, err = f.readSource(src); err != nil {
			return err
		}
	}

	f.setFlags(f.fp.execute(opmode, dst, in))
	f.cycles += op.cycles
	return nil
}

// readSource fetches a memory or immediate source operand.
func (f *FPU) readSource(src format) (operand, error) {
	if src == fmtPacked {
		return operand{}, &UnimplementedError{Feature: "packed decimal source"}
	}
	mode, reg := f.eaField()
	in := operand{format: src}
	var err error
	if src == fmtExtended {
		in.x, err = f.readEAExt(mode, reg)
	} else {
		in.bits, err = f.readEA(mode, reg, formatSize[src])
	}
	return in, err
}

// opFMOVECR loads a ROM constant. It behaves as a move: the opmode field
// holds the ROM offset.
func (f *FPU) opFMOVECR(dst int, offset uint8) error {
	x, err := loadConstant(offset)
	if err != nil {
		return err
	}
	f.setFlags(f.fp.execute(opFMOVE, dst, operand{format: fmtExtended, x: x}))
	f.cycles += cycFMOVECR
	return nil
}
