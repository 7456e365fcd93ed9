// Package fpu implements the Motorola 68881/68882 floating-point
// coprocessor as an attachment to a host 68k CPU emulator.
//
// The coprocessor provides:
//   - Eight floating-point data registers (FP0-FP7)
//   - A control register (FPCR), status register (FPSR) and instruction
//     address register (FPIAR)
//   - General arithmetic, moves, register list moves and conditional
//     branches and sets keyed on 32 floating-point predicates
//
// The host owns the integer registers and memory. It hands the FPU a
// pointer to its Registers with IR holding the F-line opcode and PC
// pointing just past it, then calls Exec (or ExecGeneral/ExecSaveRestore).
package fpu

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Bus provides memory access for operand transfers and extension word
// fetches. Size is Byte, Word or Long; wider operands are split into
// several accesses.
type Bus interface {
	Read(sz Size, addr uint32) (uint32, error)
	Write(sz Size, addr uint32, val uint32) error
}

// CycleBus is optionally implemented by a Bus that needs per-access
// cycle timestamps.
type CycleBus interface {
	Bus
	ReadCycle(cycle uint64, sz Size, addr uint32) (uint32, error)
	WriteCycle(cycle uint64, sz Size, addr uint32, val uint32) error
}

// Registers is the integer register state shared with the host CPU.
type Registers struct {
	D  [8]uint32 // Data registers
	A  [8]uint32 // Address registers (A7 is the active stack pointer)
	PC uint32    // Address of the next instruction word
	IR uint16    // Opcode word of the executing instruction
}

// FPU is one floating-point coprocessor context.
type FPU struct {
	reg      *Registers
	bus      Bus
	cycleBus CycleBus // non-nil when bus implements CycleBus
	cycles   uint64

	fp    registerFile
	fpcr  uint32
	fpsr  uint32
	fpiar uint32

	prec     Precision
	addrMask uint32
	log      *logrus.Logger

	// Latched for the executing instruction.
	ir  uint16
	ext uint16
	pc  uint32 // address of the opcode word

	halted bool
	fault  *Fault
}

// New creates an FPU that transfers operands through bus and works on the
// host registers in reg. A nil reg gets a private register set.
func New(bus Bus, reg *Registers, opts ...Option) *FPU {
	if reg == nil {
		reg = &Registers{}
	}
	f := &FPU{
		bus:      bus,
		reg:      reg,
		addrMask: 0xFFFFFFFF,
		log:      defaultLogger(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.Reset()
	return f
}

func defaultLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Reset puts the coprocessor in its power-up state: all data registers
// hold a quiet NaN and the control, status and address registers are
// cleared. A latched fault is discarded.
func (f *FPU) Reset() {
	f.cycleBus, _ = f.bus.(CycleBus)
	f.fp = newRegisterFile(f.prec)
	f.fpcr = 0
	f.fpsr = 0
	f.fpiar = 0
	f.cycles = 0
	f.halted = false
	f.fault = nil
}

// Registers returns the host register set the FPU operates on.
func (f *FPU) Registers() *Registers {
	return f.reg
}

// Precision returns the register representation in use.
func (f *FPU) Precision() Precision {
	return f.fp.precision()
}

// Halted reports whether a fatal fault has been latched.
func (f *FPU) Halted() bool {
	return f.halted
}

// Fault returns the latched fault, or nil.
func (f *FPU) Fault() *Fault {
	return f.fault
}

// Cycles returns the total cycle count since the last reset.
func (f *FPU) Cycles() uint64 {
	return f.cycles
}

// AddCycles advances the cycle counter by n without executing anything.
func (f *FPU) AddCycles(n uint64) {
	f.cycles += n
}

// FP returns FPn in extended format.
func (f *FPU) FP(n int) Float80 {
	return f.fp.get(n & 7)
}

// SetFP loads FPn from an extended value.
func (f *FPU) SetFP(n int, x Float80) {
	f.fp.set(n&7, x)
}

// FP64 returns FPn rounded to a host float64.
func (f *FPU) FP64(n int) float64 {
	return f.fp.getFloat64(n & 7)
}

// SetFP64 loads FPn from a host float64.
func (f *FPU) SetFP64(n int, v float64) {
	f.fp.setFloat64(n&7, v)
}

// FPCR returns the control register. Its rounding and exception enable
// fields are stored but do not affect arithmetic.
func (f *FPU) FPCR() uint32 { return f.fpcr }

// SetFPCR sets the control register.
func (f *FPU) SetFPCR(v uint32) { f.fpcr = v }

// FPSR returns the status register.
func (f *FPU) FPSR() uint32 { return f.fpsr }

// SetFPSR sets the status register.
func (f *FPU) SetFPSR(v uint32) { f.fpsr = v }

// FPIAR returns the instruction address register.
func (f *FPU) FPIAR() uint32 { return f.fpiar }

// SetFPIAR sets the instruction address register.
func (f *FPU) SetFPIAR(v uint32) { f.fpiar = v }

// Exec executes the coprocessor instruction whose opcode is in the host IR
// and returns the number of cycles consumed.
func (f *FPU) Exec() (int, error) {
	return f.run(0xF200, 0xF3FF)
}

// ExecGeneral executes a general coprocessor instruction (opcodes
// 0xF200-0xF2FF): arithmetic, moves, FScc, FDBcc and FBcc.
func (f *FPU) ExecGeneral() (int, error) {
	return f.run(0xF200, 0xF2FF)
}

// ExecSaveRestore executes FSAVE or FRESTORE (opcodes 0xF300-0xF3FF).
func (f *FPU) ExecSaveRestore() (int, error) {
	return f.run(0xF300, 0xF3FF)
}

func (f *FPU) run(lo, hi uint16) (int, error) {
	if f.halted {
		return 0, fmt.Errorf("%w: %w", ErrHalted, f.fault)
	}

	before := f.cycles
	f.ir = f.reg.IR
	f.ext = 0
	f.pc = f.reg.PC - 2

	var err error
	if f.ir < lo || f.ir > hi {
		err = &DecodeError{What: "coprocessor opcode", Value: uint32(f.ir)}
	} else if handler := opcodeTable[f.ir-opcodeBase]; handler == nil {
		err = &DecodeError{What: "coprocessor opcode", Value: uint32(f.ir)}
	} else {
		err = handler(f)
	}

	if err != nil {
		f.halt(err)
		return int(f.cycles - before), f.fault
	}
	return int(f.cycles - before), nil
}

// halt latches err as the fatal fault of the current instruction.
func (f *FPU) halt(err error) {
	f.fault = &Fault{PC: f.pc, IR: f.ir, Ext: f.ext, Err: err}
	f.halted = true
	f.log.WithFields(logrus.Fields{
		"pc":  fmt.Sprintf("%08X", f.pc),
		"ir":  fmt.Sprintf("%04X", f.ir),
		"ext": fmt.Sprintf("%04X", f.ext),
	}).Error(err)
}

// readBus reads from the bus with address masking.
func (f *FPU) readBus(sz Size, addr uint32) (uint32, error) {
	addr &= f.addrMask
	if f.cycleBus != nil {
		return f.cycleBus.ReadCycle(f.cycles, sz, addr)
	}
	return f.bus.Read(sz, addr)
}

// writeBus writes to the bus with address masking.
func (f *FPU) writeBus(sz Size, addr uint32, val uint32) error {
	addr &= f.addrMask
	val &= sz.Mask()
	if f.cycleBus != nil {
		return f.cycleBus.WriteCycle(f.cycles, sz, addr, val)
	}
	return f.bus.Write(sz, addr, val)
}

// fetchPC reads a 16-bit word at the current PC and advances PC by 2.
func (f *FPU) fetchPC() (uint16, error) {
	val, err := f.readBus(Word, f.reg.PC)
	if err != nil {
		return 0, err
	}
	f.reg.PC += 2
	return uint16(val), nil
}

// fetchPCLong reads a 32-bit long at the current PC and advances PC by 4.
func (f *FPU) fetchPCLong() (uint32, error) {
	hi, err := f.fetchPC()
	if err != nil {
		return 0, err
	}
	lo, err := f.fetchPC()
	if err != nil {
		return 0, err
	}
	return uint32(hi)<<16 | uint32(lo), nil
}

// fetchExt fetches the coprocessor command word and latches it for fault
// reports.
func (f *FPU) fetchExt() (uint16, error) {
	w, err := f.fetchPC()
	if err != nil {
		return 0, err
	}
	f.ext = w
	return w, nil
}
