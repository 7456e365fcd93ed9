package fpu

import "math/big"

// constantROM holds the FMOVECR constants keyed by ROM offset.
var constantROM = buildConstantROM()

func buildConstantROM() map[uint8]Float80 {
	rom := map[uint8]Float80{
		0x00: {SignExp: 0x4000, Mant: 0xC90FDAA22168C235}, // pi
		0x0B: {SignExp: 0x3FFD, Mant: 0x9A209A84FBCFF798}, // log10(2)
		0x0C: {SignExp: 0x4000, Mant: 0xADF85458A2BB4A9B}, // e
		0x0D: {SignExp: 0x3FFF, Mant: 0xB8AA3B295C17F0BC}, // log2(e)
		0x0E: {SignExp: 0x3FFD, Mant: 0xDE5BD8A937287195}, // log10(e)
		0x0F: {},                                          // 0.0
		0x30: {SignExp: 0x3FFE, Mant: 0xB17217F7D1CF79AC}, // ln(2)
		0x31: {SignExp: 0x4000, Mant: 0x935D8DDDAAA8AC17}, // ln(10)
		0x32: Int32ToFloat80(1),
	}

	// 0x33-0x3F: 10^1, 10^2, 10^4 ... 10^4096
	ten := big.NewInt(10)
	for i := 0; i < 13; i++ {
		n := new(big.Int).Exp(ten, big.NewInt(1<<i), nil)
		rom[uint8(0x33+i)] = pack(newFloat(precExtended).SetInt(n))
	}
	return rom
}

// loadConstant returns the ROM constant at offset.
func loadConstant(offset uint8) (Float80, error) {
	x, ok := constantROM[offset]
	if !ok {
		return Float80{}, &DecodeError{What: "constant ROM offset", Value: uint32(offset)}
	}
	return x, nil
}
