// Package bitpack stores fixed-width unsigned entries in a stream of 64-bit
// words. Entry i occupies bits [i*bits, i*bits+bits) of the stream, so an
// entry may straddle two adjacent words.
package bitpack

import (
	"fmt"
	"math/bits"
)

// MaxBits is the widest entry supported.
const MaxBits = 32

// BitsFor returns the smallest width able to hold highest, never less than 1.
func BitsFor(highest uint32) uint8 {
	n := bits.Len32(highest)
	if n == 0 {
		n = 1
	}
	return uint8(n)
}

// MaxValue is the largest entry a width can hold.
func MaxValue(width uint8) uint32 {
	checkWidth(width)
	return uint32(uint64(1)<<width - 1)
}

// WordCount returns the number of words needed for n entries.
func WordCount(width uint8, n int) int {
	checkWidth(width)
	return (n*int(width) + 63) / 64
}

// Get reads entry i.
func Get(words []uint64, width uint8, i int) uint32 {
	checkWidth(width)
	mask := uint64(1)<<width - 1
	start := i * int(width)
	w := start >> 6
	off := uint(start & 63)

	v := words[w] >> off
	if off+uint(width) > 64 {
		v |= words[w+1] << (64 - off)
	}
	return uint32(v & mask)
}

// Set writes entry i. It panics if v does not fit in width bits.
func Set(words []uint64, width uint8, i int, v uint32) {
	checkWidth(width)
	mask := uint64(1)<<width - 1
	if uint64(v) > mask {
		panic(fmt.Sprintf("bitpack: value %d does not fit in %d bits", v, width))
	}
	start := i * int(width)
	w := start >> 6
	off := uint(start & 63)

	words[w] = words[w]&^(mask<<off) | uint64(v)<<off
	if off+uint(width) > 64 {
		low := 64 - off // bits of the entry held by words[w]
		words[w+1] = words[w+1]&^(mask>>low) | uint64(v)>>low
	}
}

func checkWidth(width uint8) {
	if width == 0 || width > MaxBits {
		panic(fmt.Sprintf("bitpack: width %d outside [1,%d]", width, MaxBits))
	}
}
