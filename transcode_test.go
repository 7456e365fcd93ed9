package fpu

import (
	"math"
	"testing"
)

func TestInt32ToFloat80(t *testing.T) {
	tests := []struct {
		in   int32
		want Float80
	}{
		{0, Float80{}},
		{1, Float80{0x3FFF, 0x8000000000000000}},
		{-1, Float80{0xBFFF, 0x8000000000000000}},
		{5, Float80{0x4001, 0xA000000000000000}},
		{math.MaxInt32, Float80{0x401D, 0xFFFFFFFE00000000}},
		{math.MinInt32, Float80{0xC01E, 0x8000000000000000}},
	}
	for _, tt := range tests {
		if got := Int32ToFloat80(tt.in); got != tt.want {
			t.Errorf("Int32ToFloat80(%d) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDoubleToFloat80(t *testing.T) {
	tests := []struct {
		name string
		in   uint64
		want Float80
	}{
		{"1.0", 0x3FF0000000000000, Float80{0x3FFF, 0x8000000000000000}},
		{"-0", 0x8000000000000000, Float80{0x8000, 0}},
		{"0.1", 0x3FB999999999999A, Float80{0x3FFB, 0xCCCCCCCCCCCCD000}},
		{"max", 0x7FEFFFFFFFFFFFFF, Float80{0x43FE, 0xFFFFFFFFFFFFF800}},
		{"min denormal", 0x0000000000000001, Float80{0x3BCD, 0x8000000000000000}},
		{"+inf", 0x7FF0000000000000, Float80{0x7FFF, 0x8000000000000000}},
		{"-inf", 0xFFF0000000000000, Float80{0xFFFF, 0x8000000000000000}},
		{"qnan payload", 0x7FF8000000000001, Float80{0x7FFF, 0xC000000000000800}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DoubleToFloat80(tt.in); got != tt.want {
				t.Errorf("DoubleToFloat80(%016X) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSingleToFloat80(t *testing.T) {
	tests := []struct {
		name string
		in   uint32
		want Float80
	}{
		{"1.5", 0x3FC00000, Float80{0x3FFF, 0xC000000000000000}},
		{"-2", 0xC0000000, Float80{0xC000, 0x8000000000000000}},
		{"min denormal", 0x00000001, Float80{0x3F6A, 0x8000000000000000}},
		{"snan", 0x7F800001, Float80{0x7FFF, 0x8000010000000000}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SingleToFloat80(tt.in); got != tt.want {
				t.Errorf("SingleToFloat80(%08X) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDoubleRoundTrip(t *testing.T) {
	values := []float64{
		0, math.Copysign(0, -1), 1, -1, 0.1, math.Pi, 1e300, -1e-300,
		math.MaxFloat64, math.SmallestNonzeroFloat64, 2.2250738585072014e-308,
		2.225073858507201e-308, math.Inf(1), math.Inf(-1),
	}
	for _, v := range values {
		if got := Float80ToFloat64(Float64ToFloat80(v)); !same(got, v) {
			t.Errorf("round trip %v = %v", v, got)
		}
	}
	for _, b := range []uint64{0x7FF8000000000001, 0xFFF800000000BEEF} {
		if got := Float80ToDouble(DoubleToFloat80(b)); got != b {
			t.Errorf("NaN round trip %016X = %016X", b, got)
		}
	}
}

func TestSingleRoundTrip(t *testing.T) {
	for _, b := range []uint32{0, 0x80000000, 0x3F800000, 0x00000001, 0x007FFFFF, 0x7F7FFFFF, 0x7F800000, 0x7FC00123} {
		if got := Float80ToSingle(SingleToFloat80(b)); got != b {
			t.Errorf("round trip %08X = %08X", b, got)
		}
	}
}

func TestFloat80ToDoubleRounding(t *testing.T) {
	tests := []struct {
		name string
		in   Float80
		want uint64
	}{
		{"tie to even down", Float80{0x3FFF, 0x8000000000000400}, 0x3FF0000000000000},
		{"tie to even up", Float80{0x3FFF, 0x8000000000000C00}, 0x3FF0000000000002},
		{"above half", Float80{0x3FFF, 0x8000000000000401}, 0x3FF0000000000001},
		{"carry into exponent", Float80{0x3FFF, 0xFFFFFFFFFFFFFC00}, 0x4000000000000000},
		{"overflow", Float80{0x7FFE, 0x8000000000000000}, 0x7FF0000000000000},
		{"round up to inf", Float80{0x43FE, 0xFFFFFFFFFFFFFC00}, 0x7FF0000000000000},
		{"denormal tie", Float80{0x3BCD, 0xC000000000000000}, 0x0000000000000002},
		{"underflow to zero", Float80{0x8001, 0x8000000000000000}, 0x8000000000000000},
		{"unnormal", Float80{0x3FFF, 0x4000000000000000}, 0x3FE0000000000000},
		{"snan quieted", Float80{0x7FFF, 0x8000000000000800}, 0x7FF8000000000001},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Float80ToDouble(tt.in); got != tt.want {
				t.Errorf("Float80ToDouble(%v) = %016X, want %016X", tt.in, got, tt.want)
			}
		})
	}
}

func TestFloat80ToSingleRounding(t *testing.T) {
	tests := []struct {
		name string
		in   Float80
		want uint32
	}{
		{"one third", Float80{0x3FFD, 0xAAAAAAAAAAAAAAAB}, 0x3EAAAAAB},
		{"overflow", Float80{0x4080, 0x8000000000000000}, 0x7F800000},
		{"denormal", Float80{0x3F6B, 0x8000000000000000}, 0x00000002},
		{"snan quieted", Float80{0x7FFF, 0x8000010000000000}, 0x7FC00001},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Float80ToSingle(tt.in); got != tt.want {
				t.Errorf("Float80ToSingle(%v) = %08X, want %08X", tt.in, got, tt.want)
			}
		})
	}
}

func TestFloat80Words(t *testing.T) {
	x := Float80{SignExp: 0xC000, Mant: 0x8123456789ABCDEF}
	w := x.Words()
	want := [3]uint32{0xC0000000, 0x81234567, 0x89ABCDEF}
	if w != want {
		t.Errorf("Words = %08X, want %08X", w, want)
	}
	w[0] |= 0xBEEF // padding is ignored
	if got := Float80FromWords(w); got != x {
		t.Errorf("Float80FromWords = %v, want %v", got, x)
	}
}

func TestFloat80Classify(t *testing.T) {
	tests := []struct {
		name string
		in   Float80
		want class
	}{
		{"+0", Float80{}, class{zero: true}},
		{"-0", Float80{0x8000, 0}, class{neg: true, zero: true}},
		{"unnormal zero", Float80{0x1234, 0}, class{zero: true}},
		{"denormal", Float80{0, 1}, class{}},
		{"-inf", Float80{0xFFFF, 0x8000000000000000}, class{neg: true, inf: true}},
		{"pseudo inf", Float80{0x7FFF, 0}, class{inf: true}},
		{"nan", defaultNaN, class{nan: true}},
		{"-nan", Float80{0xFFFF, 0x4000000000000000}, class{neg: true, nan: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.class(); got != tt.want {
				t.Errorf("class(%v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRoundToSingle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1 + 0x1p-24, 1},
		{1 + 3*0x1p-24, 1 + 0x1p-22},
		{1 + 0x1p-23, 1 + 0x1p-23},
		{-(1 + 0x1p-25), -1},
		{0x1p-1040, 0x1p-1040},
	}
	for _, tt := range tests {
		if got := roundToSingle(tt.in); got != tt.want {
			t.Errorf("roundToSingle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSaturate(t *testing.T) {
	if got := saturate[int8](300); got != 127 {
		t.Errorf("saturate[int8](300) = %d", got)
	}
	if got := saturate[int8](-300); got != -128 {
		t.Errorf("saturate[int8](-300) = %d", got)
	}
	if got := saturate[int16](-5); got != -5 {
		t.Errorf("saturate[int16](-5) = %d", got)
	}
	if got := saturate[int32](math.MaxInt64); got != math.MaxInt32 {
		t.Errorf("saturate[int32](MaxInt64) = %d", got)
	}
	if got := signExtend[int8](0x1FF); got != -1 {
		t.Errorf("signExtend[int8](0x1FF) = %d", got)
	}
	if got := signExtend[int16](0x8000); got != -32768 {
		t.Errorf("signExtend[int16](0x8000) = %d", got)
	}
}
