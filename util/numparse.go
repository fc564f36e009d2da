package util

import (
	"strconv"
	"strings"
)

// NOTE: Integer text has the following format: an optional sign, an optional
// base prefix (`0b`, `0o` or `0x`) which is only recognized when at least one
// character follows it, and then the digits of the selected base.  Underscores
// may appear anywhere among the digits and are ignored.  Any character outside
// the base's digit alphabet makes the whole parse fail: trailing garbage is
// never treated as a partial success.  Values wrap modulo 2^64.

// ParseU64 parses an unsigned 64-bit integer.  A leading `-` negates the value
// by two's-complement wraparound.  It returns false if the text is malformed.
func ParseU64(s string) (uint64, bool) {
	if s == "" {
		return 0, false
	}

	neg := false
	if len(s) > 1 {
		switch s[0] {
		case '+':
			s = s[1:]
		case '-':
			neg = true
			s = s[1:]
		}
	}

	base, digits := SplitBasePrefix(s)

	value, ok := parseDigits(digits, base)
	if !ok {
		return 0, false
	}

	if neg {
		value = -value
	}

	return value, true
}

// ParseI64 parses a signed 64-bit integer.  The result is the two's-complement
// reinterpretation of the value produced by ParseU64.
func ParseI64(s string) (int64, bool) {
	value, ok := ParseU64(s)
	return int64(value), ok
}

// ParseF64 parses a 64-bit floating point number.  Underscores between digits
// are ignored.
func ParseF64(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}

	x, err := strconv.ParseFloat(strings.ReplaceAll(s, "_", ""), 64)
	return x, err == nil
}

// SplitBasePrefix determines the base of an unsigned integer text and returns
// it along with the text following the base prefix.
func SplitBasePrefix(s string) (int, string) {
	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'b':
			return 2, s[2:]
		case 'o':
			return 8, s[2:]
		case 'x':
			return 16, s[2:]
		}
	}

	return 10, s
}

// parseDigits accumulates the digits of s in the given base.  At least one
// digit must be present.
func parseDigits(s string, base int) (uint64, bool) {
	var value uint64
	sawDigit := false

	for _, c := range s {
		if c == '_' {
			continue
		}

		if !IsDigitOf(c, base) {
			return 0, false
		}

		value = value*uint64(base) + uint64(DigitValue(c))
		sawDigit = true
	}

	return value, sawDigit
}

// -----------------------------------------------------------------------------

// DigitValue returns the numeric value of c as a digit of base up to 16 or -1 if
// c is not a digit at all.
func DigitValue(c rune) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'F':
		return int(c-'A') + 10
	default:
		return -1
	}
}

// IsDigitOf returns whether c is a digit of the given base.
func IsDigitOf(c rune, base int) bool {
	v := DigitValue(c)
	return v >= 0 && v < base
}
