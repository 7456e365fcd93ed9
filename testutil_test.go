package fpu

import (
	"math"
	"testing"
)

// testBus is a flat 1MB byte-array bus for testing.
type testBus struct {
	mem [1024 * 1024]byte
}

func (b *testBus) Read(sz Size, addr uint32) (uint32, error) {
	addr &= 0xFFFFF
	switch sz {
	case Byte:
		return uint32(b.mem[addr]), nil
	case Word:
		return uint32(b.mem[addr])<<8 | uint32(b.mem[addr+1]), nil
	case Long:
		return uint32(b.mem[addr])<<24 | uint32(b.mem[addr+1])<<16 |
			uint32(b.mem[addr+2])<<8 | uint32(b.mem[addr+3]), nil
	}
	return 0, &AccessError{Addr: addr, Size: sz, Reason: "unsupported width"}
}

func (b *testBus) Write(sz Size, addr uint32, val uint32) error {
	addr &= 0xFFFFF
	switch sz {
	case Byte:
		b.mem[addr] = byte(val)
	case Word:
		b.mem[addr] = byte(val >> 8)
		b.mem[addr+1] = byte(val)
	case Long:
		b.mem[addr] = byte(val >> 24)
		b.mem[addr+1] = byte(val >> 16)
		b.mem[addr+2] = byte(val >> 8)
		b.mem[addr+3] = byte(val)
	default:
		return &AccessError{Addr: addr, Size: sz, Write: true, Reason: "unsupported width"}
	}
	return nil
}

// spyBus wraps testBus and records the cycle value from each access.
type spyBus struct {
	testBus
	cycles []uint64
}

func (b *spyBus) ReadCycle(cycle uint64, sz Size, addr uint32) (uint32, error) {
	b.cycles = append(b.cycles, cycle)
	return b.testBus.Read(sz, addr)
}

func (b *spyBus) WriteCycle(cycle uint64, sz Size, addr uint32, val uint32) error {
	b.cycles = append(b.cycles, cycle)
	return b.testBus.Write(sz, addr, val)
}

// codeAddr is where test instructions are assembled.
const codeAddr uint32 = 0x1000

// writeWord stores a big-endian 16-bit word into the test bus memory.
func writeWord(bus *testBus, addr uint32, val uint16) {
	bus.mem[addr] = byte(val >> 8)
	bus.mem[addr+1] = byte(val)
}

// writeLong stores a big-endian 32-bit long into the test bus memory.
func writeLong(bus *testBus, addr uint32, val uint32) {
	writeWord(bus, addr, uint16(val>>16))
	writeWord(bus, addr+2, uint16(val))
}

func readLong(bus *testBus, addr uint32) uint32 {
	v, _ := bus.Read(Long, addr)
	return v
}

// newTestFPU creates an FPU of the given precision on a fresh test bus.
func newTestFPU(p Precision) (*FPU, *testBus) {
	bus := &testBus{}
	f := New(bus, nil, WithPrecision(p))
	return f, bus
}

// execWords assembles words at codeAddr, points the host registers at the
// instruction and executes it.
func execWords(t *testing.T, f *FPU, bus *testBus, words ...uint16) (int, error) {
	t.Helper()
	for i, w := range words {
		writeWord(bus, codeAddr+uint32(i*2), w)
	}
	reg := f.Registers()
	reg.IR = words[0]
	reg.PC = codeAddr + 2
	return f.Exec()
}

// mustExec is execWords failing the test on error.
func mustExec(t *testing.T, f *FPU, bus *testBus, words ...uint16) int {
	t.Helper()
	n, err := execWords(t, f, bus, words...)
	if err != nil {
		t.Fatalf("Exec(%04X) error: %v", words, err)
	}
	return n
}

// precisions runs fn once per register representation.
func precisions(t *testing.T, fn func(t *testing.T, p Precision)) {
	for _, p := range []Precision{Extended80, HostDouble} {
		t.Run(p.String(), func(t *testing.T) { fn(t, p) })
	}
}

// ccString renders the FPSR condition codes for failure messages.
func ccString(fpsr uint32) string {
	s := []byte("----")
	if fpsr&ccN != 0 {
		s[0] = 'N'
	}
	if fpsr&ccZ != 0 {
		s[1] = 'Z'
	}
	if fpsr&ccI != 0 {
		s[2] = 'I'
	}
	if fpsr&ccNaN != 0 {
		s[3] = 'U'
	}
	return string(s)
}

// same reports whether two host doubles are identical, treating all NaNs
// as equal.
func same(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return a == b && math.Signbit(a) == math.Signbit(b)
}
