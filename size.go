package fpu

// Size is the width of an operand in bytes. Byte, Word and Long are also
// the bus access widths; Double and Extended exist only as operand widths
// and are moved as a sequence of long (and word) bus cycles.
type Size int

const (
	Byte     Size = 1
	Word     Size = 2
	Long     Size = 4
	Double   Size = 8
	Extended Size = 12
)

// Mask returns a bitmask covering the valid bits for bus-width sizes.
func (s Size) Mask() uint32 {
	switch s {
	case Byte:
		return 0xFF
	case Word:
		return 0xFFFF
	case Long:
		return 0xFFFFFFFF
	default:
		return 0
	}
}

// Bits returns the number of bits for this size.
func (s Size) Bits() int {
	return int(s) * 8
}

// String returns a human-readable name for this size.
func (s Size) String() string {
	switch s {
	case Byte:
		return "byte"
	case Word:
		return "word"
	case Long:
		return "long"
	case Double:
		return "double"
	case Extended:
		return "extended"
	default:
		return "unknown"
	}
}
