package util

// SignExtend truncates a value to the given bit width and sign extends the
// result to 64 bits.
func SignExtend(value, bits uint64) int64 {
	if bits >= 64 {
		return int64(value)
	}

	shift := 64 - bits
	return int64(value<<shift) >> shift
}

// ZeroExtend truncates a value to the given bit width.
func ZeroExtend(value, bits uint64) uint64 {
	if bits >= 64 {
		return value
	}

	return value & (1<<bits - 1)
}
