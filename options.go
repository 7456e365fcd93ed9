package fpu

import "github.com/sirupsen/logrus"

// Option configures an FPU at construction.
type Option func(*FPU)

// WithPrecision selects the register representation. The default is
// Extended80.
func WithPrecision(p Precision) Option {
	return func(f *FPU) {
		f.prec = p
	}
}

// WithLogger routes fault reports to l. By default they are discarded.
func WithLogger(l *logrus.Logger) Option {
	return func(f *FPU) {
		if l != nil {
			f.log = l
		}
	}
}

// WithAddressMask masks every bus address, e.g. 0x00FFFFFF for a 24-bit
// address bus. The default passes all 32 bits.
func WithAddressMask(mask uint32) Option {
	return func(f *FPU) {
		f.addrMask = mask
	}
}
