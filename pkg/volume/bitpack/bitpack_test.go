package bitpack

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitsFor(t *testing.T) {
	cases := map[uint32]uint8{
		0:          1,
		1:          1,
		2:          2,
		3:          2,
		15:         4,
		16:         5,
		255:        8,
		4095:       12,
		65535:      16,
		65536:      17,
		1<<32 - 1:  32,
		2799:       12,
		1<<31 + 17: 32,
	}
	for highest, want := range cases {
		assert.Equal(t, want, BitsFor(highest), "BitsFor(%d)", highest)
	}
}

func TestMaxValueAndWordCount(t *testing.T) {
	assert.Equal(t, uint32(1), MaxValue(1))
	assert.Equal(t, uint32(31), MaxValue(5))
	assert.Equal(t, uint32(1<<32-1), MaxValue(32))

	assert.Equal(t, 0, WordCount(5, 0))
	assert.Equal(t, 1, WordCount(5, 12))  // 60 bits
	assert.Equal(t, 2, WordCount(5, 13))  // 65 bits
	assert.Equal(t, 64, WordCount(1, 4096))
	assert.Equal(t, 320, WordCount(5, 4096))
	assert.Equal(t, 32, WordCount(32, 64))
}

func TestInvalidWidthPanics(t *testing.T) {
	assert.Panics(t, func() { MaxValue(0) })
	assert.Panics(t, func() { WordCount(33, 1) })
	assert.Panics(t, func() { Get(make([]uint64, 1), 0, 0) })
}

func TestSetRejectsOversizedValue(t *testing.T) {
	words := make([]uint64, 1)
	assert.Panics(t, func() { Set(words, 4, 0, 16) })
	assert.Equal(t, uint64(0), words[0], "failed Set must not write")
}

// Every width, every index, extreme and patterned values, including entries
// whose bit range crosses a word boundary.
func TestRoundTripAllWidths(t *testing.T) {
	const n = 200
	for width := uint8(1); width <= MaxBits; width++ {
		maxV := MaxValue(width)
		words := make([]uint64, WordCount(width, n))

		want := make([]uint32, n)
		for i := range want {
			switch i % 4 {
			case 0:
				want[i] = maxV
			case 1:
				want[i] = 0
			case 2:
				want[i] = uint32(i) & maxV
			default:
				want[i] = (maxV >> 1) | 1
			}
			Set(words, width, i, want[i])
		}
		for i := range want {
			require.Equal(t, want[i], Get(words, width, i), "width=%d index=%d", width, i)
		}
	}
}

// Writing one entry must never disturb its neighbours, straddling or not.
func TestSetPreservesNeighbours(t *testing.T) {
	for width := uint8(1); width <= MaxBits; width++ {
		const n = 130
		maxV := MaxValue(width)
		words := make([]uint64, WordCount(width, n))
		for i := 0; i < n; i++ {
			Set(words, width, i, maxV)
		}
		for i := 0; i < n; i += 3 {
			Set(words, width, i, 0)
		}
		for i := 0; i < n; i++ {
			want := maxV
			if i%3 == 0 {
				want = 0
			}
			require.Equal(t, want, Get(words, width, i), "width=%d index=%d", width, i)
		}
	}
}

func TestStraddlingEntryFiveBits(t *testing.T) {
	// Entry 12 with 5 bits occupies stream bits 60..64: four bits in word 0,
	// one bit in word 1.
	words := make([]uint64, WordCount(5, 13))
	Set(words, 5, 12, 0b10110)

	assert.Equal(t, uint64(0b0110)<<60, words[0])
	assert.Equal(t, uint64(0b1), words[1])
	assert.Equal(t, uint32(0b10110), Get(words, 5, 12))

	Set(words, 5, 12, 0b00001)
	assert.Equal(t, uint64(0b0001)<<60, words[0])
	assert.Equal(t, uint64(0), words[1])
	assert.Equal(t, uint32(1), Get(words, 5, 12))
}

func TestExhaustiveSmallWidths(t *testing.T) {
	// For narrow widths check every representable value at a straddling slot
	// and an aligned slot.
	for width := uint8(1); width <= 12; width++ {
		n := 64/int(width) + 2
		words := make([]uint64, WordCount(width, n))
		straddle := -1
		for i := 0; i < n; i++ {
			if off := i * int(width) % 64; off+int(width) > 64 {
				straddle = i
				break
			}
		}
		for v := uint32(0); v <= MaxValue(width); v++ {
			Set(words, width, 0, v)
			require.Equal(t, v, Get(words, width, 0))
			if straddle >= 0 {
				Set(words, width, straddle, v)
				require.Equal(t, v, Get(words, width, straddle), "width=%d straddle=%d", width, straddle)
			}
		}
	}
}

func TestRandomOverwrites(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, width := range []uint8{3, 5, 7, 11, 13, 17, 23, 31} {
		const n = 4096
		words := make([]uint64, WordCount(width, n))
		shadow := make([]uint32, n)
		maxV := uint64(MaxValue(width))
		for k := 0; k < 20000; k++ {
			i := rng.Intn(n)
			v := uint32(rng.Uint64() % (maxV + 1))
			Set(words, width, i, v)
			shadow[i] = v
		}
		for i, want := range shadow {
			require.Equal(t, want, Get(words, width, i), "width=%d index=%d", width, i)
		}
	}
}
