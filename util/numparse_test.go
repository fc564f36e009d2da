package util

import (
	"math"
	"testing"
)

func TestParseU64(t *testing.T) {
	tests := []struct {
		input string
		want  uint64
		ok    bool
	}{
		{"0x1A", 26, true},
		{"0b101", 5, true},
		{"0o17", 15, true},
		{"1_000", 1000, true},
		{"+42", 42, true},
		{"0", 0, true},
		{"00", 0, true},
		{"0x", 0, false},
		{"0xff", 255, true},
		{"0xFF", 255, true},
		{"18446744073709551615", math.MaxUint64, true},
		{"-1", math.MaxUint64, true},
		{"", 0, false},
		{"+", 0, false},
		{"_", 0, false},
		{"12ab", 0, false},
		{"0b102", 0, false},
		{"0X1A", 0, false},
		{"1.5", 0, false},
	}

	for _, test := range tests {
		got, ok := ParseU64(test.input)
		if ok != test.ok {
			t.Errorf("ParseU64(%q): ok = %v, want %v", test.input, ok, test.ok)
			continue
		}

		if ok && got != test.want {
			t.Errorf("ParseU64(%q) = %d, want %d", test.input, got, test.want)
		}
	}
}

func TestParseU64Wraps(t *testing.T) {
	// 2^64 + 1 wraps around to 1.
	got, ok := ParseU64("18446744073709551617")
	if !ok || got != 1 {
		t.Errorf("ParseU64 = %d, %v; want 1, true", got, ok)
	}
}

func TestParseI64(t *testing.T) {
	tests := []struct {
		input string
		want  int64
		ok    bool
	}{
		{"-0o17", -15, true},
		{"-0x10", -16, true},
		{"123", 123, true},
		{"-1_0", -10, true},
		{"-", 0, false},
		{"-x", 0, false},
	}

	for _, test := range tests {
		got, ok := ParseI64(test.input)
		if ok != test.ok || (ok && got != test.want) {
			t.Errorf("ParseI64(%q) = %d, %v; want %d, %v", test.input, got, ok, test.want, test.ok)
		}
	}
}

func TestParseF64(t *testing.T) {
	if x, ok := ParseF64("1_000.25"); !ok || x != 1000.25 {
		t.Errorf("ParseF64 = %v, %v", x, ok)
	}

	if _, ok := ParseF64("1.2.3"); ok {
		t.Error("ParseF64 accepted 1.2.3")
	}

	if _, ok := ParseF64(""); ok {
		t.Error("ParseF64 accepted empty text")
	}
}

func TestDigitValue(t *testing.T) {
	if !IsDigitOf('7', 8) || IsDigitOf('8', 8) {
		t.Error("octal digit alphabet is wrong")
	}

	if !IsDigitOf('f', 16) || IsDigitOf('g', 16) {
		t.Error("hexadecimal digit alphabet is wrong")
	}

	if DigitValue('z') != -1 {
		t.Error("DigitValue('z') should be -1")
	}
}
