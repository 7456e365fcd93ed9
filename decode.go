package fpu

// opFunc is the handler signature for one coprocessor opcode. The opcode
// word is already in f.ir and the host PC points past it.
type opFunc func(*FPU) error

// opcodeBase is the first coprocessor ID 1 opcode (cpGEN).
const opcodeBase = 0xF200

// opcodeTable covers 0xF200-0xF3FF, indexed by opcode - opcodeBase. nil
// entries are undefined opcodes.
var opcodeTable [0x200]opFunc

func register(opcode uint16, fn opFunc) {
	opcodeTable[opcode-opcodeBase] = fn
}

// eaField splits the standard 6-bit EA field of the opcode word.
func (f *FPU) eaField() (mode, reg uint8) {
	return uint8(f.ir>>3) & 7, uint8(f.ir) & 7
}
