package fpu

import (
	"errors"
	"fmt"
)

// ErrHalted is returned by the entry points once a fatal fault has been
// latched. Reset clears it.
var ErrHalted = errors.New("fpu: halted after fatal fault")

// UnimplementedError reports an instruction form the core deliberately
// does not emulate (packed decimal, dynamic FMOVEM lists, FTRAPcc).
type UnimplementedError struct {
	Feature string
}

func (e *UnimplementedError) Error() string {
	return "fpu: unimplemented: " + e.Feature
}

// AddressingModeError reports an effective address that is illegal or
// unsupported for the operand width and direction.
type AddressingModeError struct {
	Mode  uint8
	Reg   uint8
	Width Size
	PC    uint32
	Write bool
}

func (e *AddressingModeError) Error() string {
	dir := "read"
	if e.Write {
		dir = "write"
	}
	return fmt.Sprintf("fpu: unsupported addressing mode %d reg %d for %s %s at %08X",
		e.Mode, e.Reg, e.Width, dir, e.PC)
}

// AccessError is returned by a Bus for an access outside the configured
// memory or a write to a protected region.
type AccessError struct {
	Addr   uint32
	Size   Size
	Write  bool
	Reason string
}

func (e *AccessError) Error() string {
	op := "read"
	if e.Write {
		op = "write"
	}
	return fmt.Sprintf("fpu: %s %s at %08X: %s", op, e.Size, e.Addr, e.Reason)
}

// DecodeError reports a bit pattern with no defined meaning: an unknown
// condition predicate, opmode, register selector or constant ROM offset.
type DecodeError struct {
	What  string
	Value uint32
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("fpu: unknown %s %#x", e.What, e.Value)
}

// Fault wraps any fatal error raised while executing one instruction with
// the address and words of that instruction.
type Fault struct {
	PC  uint32 // address of the opcode word
	IR  uint16
	Ext uint16 // extension word, zero if none was fetched
	Err error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("fpu: fault at PC=%08X IR=%04X ext=%04X: %v", f.PC, f.IR, f.Ext, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
