// Package bits implements small helpers to work on the bit-level
// representation of values.
package bits

import "math/bits"

// ByteCount returns the number of bytes needed to hold count bits.
func ByteCount(count uint) int {
	return int((count + 7) / 8)
}

// Len8 returns the minimum number of bits required to represent i.
func Len8(i int8) int {
	return bits.Len8(uint8(i))
}
