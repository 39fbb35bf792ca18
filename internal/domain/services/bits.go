package services

// SetBit returns v with the given bit set. Other bits are untouched.
func SetBit(v uint16, bit uint) uint16 {
	return v | 1<<bit
}

// HasBit reports whether bit is set in v
func HasBit(v uint16, bit uint) bool {
	return v&(1<<bit) != 0
}
