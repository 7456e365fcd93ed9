package fpu

// Memory is a flat big-endian Bus backed by a byte slice. The first
// ROMSize bytes reject writes. It is meant for hosts without a bus of
// their own and for tests.
type Memory struct {
	mem     []byte
	romSize uint32
}

// NewMemory returns size bytes of zeroed memory whose first romSize bytes
// are write protected.
func NewMemory(size int, romSize uint32) *Memory {
	return &Memory{mem: make([]byte, size), romSize: romSize}
}

// Load copies data to addr, ignoring write protection.
func (m *Memory) Load(addr uint32, data []byte) error {
	if uint64(addr)+uint64(len(data)) > uint64(len(m.mem)) {
		return &AccessError{Addr: addr, Size: Size(len(data)), Write: true, Reason: "beyond end of memory"}
	}
	copy(m.mem[addr:], data)
	return nil
}

// Bytes returns the backing store.
func (m *Memory) Bytes() []byte {
	return m.mem
}

func (m *Memory) check(sz Size, addr uint32, write bool) error {
	if sz != Byte && sz != Word && sz != Long {
		return &AccessError{Addr: addr, Size: sz, Write: write, Reason: "unsupported width"}
	}
	if uint64(addr)+uint64(sz) > uint64(len(m.mem)) {
		return &AccessError{Addr: addr, Size: sz, Write: write, Reason: "beyond end of memory"}
	}
	if write && addr < m.romSize {
		return &AccessError{Addr: addr, Size: sz, Write: write, Reason: "write to ROM"}
	}
	return nil
}

func (m *Memory) Read(sz Size, addr uint32) (uint32, error) {
	if err := m.check(sz, addr, false); err != nil {
		return 0, err
	}
	var v uint32
	for i := uint32(0); i < uint32(sz); i++ {
		v = v<<8 | uint32(m.mem[addr+i])
	}
	return v, nil
}

func (m *Memory) Write(sz Size, addr uint32, val uint32) error {
	if err := m.check(sz, addr, true); err != nil {
		return err
	}
	for i := int(sz) - 1; i >= 0; i-- {
		m.mem[addr+uint32(i)] = byte(val)
		val >>= 8
	}
	return nil
}
