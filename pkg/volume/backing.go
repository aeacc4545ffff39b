package volume

import (
	"fmt"

	"github.com/go-theft-craft/volume/pkg/volume/bitpack"
)

type BackingKind uint8

const (
	BackingDense BackingKind = iota
	BackingPacked
)

func (k BackingKind) String() string {
	switch k {
	case BackingDense:
		return "dense"
	case BackingPacked:
		return "packed"
	default:
		return fmt.Sprintf("BackingKind(%d)", uint8(k))
	}
}

// Backing is a fixed-length array of palette ids. The interface is sealed:
// its implementations are DenseBacking and PackedBacking.
//
// Set panics when id exceeds Max or the index is out of range; both are
// programming errors in the caller.
type Backing interface {
	Kind() BackingKind
	Len() int
	Get(i int) uint32
	Set(i int, id uint32)
	Max() uint32
	// Bits is the width of one slot.
	Bits() uint8
	Clone() Backing

	backing()
}

const denseMax = 0xFFFF

// DenseBacking stores one 16-bit slot per cell.
type DenseBacking struct {
	data []uint16
}

func NewDenseBacking(n int) *DenseBacking {
	return &DenseBacking{data: make([]uint16, n)}
}

// DenseFrom copies raw into a new backing.
func DenseFrom(raw []uint16) *DenseBacking {
	data := make([]uint16, len(raw))
	copy(data, raw)
	return &DenseBacking{data: data}
}

func (d *DenseBacking) Kind() BackingKind { return BackingDense }
func (d *DenseBacking) Len() int          { return len(d.data) }
func (d *DenseBacking) Max() uint32       { return denseMax }
func (d *DenseBacking) Bits() uint8       { return 16 }

func (d *DenseBacking) Get(i int) uint32 {
	return uint32(d.data[i])
}

func (d *DenseBacking) Set(i int, id uint32) {
	if id > denseMax {
		panic(fmt.Sprintf("volume: id %d exceeds dense backing max %d", id, denseMax))
	}
	d.data[i] = uint16(id)
}

func (d *DenseBacking) Clone() Backing {
	return DenseFrom(d.data)
}

func (d *DenseBacking) backing() {}

// PackedBacking stores bits-wide slots back to back in 64-bit words.
type PackedBacking struct {
	bits  uint8
	n     int
	words []uint64
}

// NewPackedBacking returns a zeroed backing of n slots wide enough for
// highest.
func NewPackedBacking(n int, highest uint32) *PackedBacking {
	width := bitpack.BitsFor(highest)
	return &PackedBacking{
		bits:  width,
		n:     n,
		words: make([]uint64, bitpack.WordCount(width, n)),
	}
}

// PackedFromWords rebuilds a backing from its (bits, words) form, as produced
// by Words. The words are copied.
func PackedFromWords(n int, bits uint8, words []int64) (*PackedBacking, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrRepresentation, n)
	}
	if bits == 0 || bits > bitpack.MaxBits {
		return nil, fmt.Errorf("%w: bits per entry %d outside [1,%d]", ErrRepresentation, bits, bitpack.MaxBits)
	}
	if want := bitpack.WordCount(bits, n); len(words) != want {
		return nil, fmt.Errorf("%w: %d words for %d entries of %d bits, want %d", ErrRepresentation, len(words), n, bits, want)
	}
	p := &PackedBacking{bits: bits, n: n, words: make([]uint64, len(words))}
	for i, w := range words {
		p.words[i] = uint64(w)
	}
	return p, nil
}

// Words returns the bits per entry and a copy of the packed words.
func (p *PackedBacking) Words() (uint8, []int64) {
	out := make([]int64, len(p.words))
	for i, w := range p.words {
		out[i] = int64(w)
	}
	return p.bits, out
}

func (p *PackedBacking) Kind() BackingKind { return BackingPacked }
func (p *PackedBacking) Len() int          { return p.n }
func (p *PackedBacking) Max() uint32       { return bitpack.MaxValue(p.bits) }
func (p *PackedBacking) Bits() uint8       { return p.bits }

func (p *PackedBacking) Get(i int) uint32 {
	p.checkIndex(i)
	return bitpack.Get(p.words, p.bits, i)
}

func (p *PackedBacking) Set(i int, id uint32) {
	p.checkIndex(i)
	bitpack.Set(p.words, p.bits, i, id)
}

func (p *PackedBacking) Clone() Backing {
	c := &PackedBacking{bits: p.bits, n: p.n, words: make([]uint64, len(p.words))}
	copy(c.words, p.words)
	return c
}

func (p *PackedBacking) backing() {}

// The last word may have room past n; reject indexes that land there.
func (p *PackedBacking) checkIndex(i int) {
	if i < 0 || i >= p.n {
		panic(fmt.Sprintf("volume: index %d out of range [0,%d)", i, p.n))
	}
}

// repack copies every id of src into a new packed backing wide enough for
// highest.
func repack(src Backing, highest uint32) *PackedBacking {
	dst := NewPackedBacking(src.Len(), highest)
	for i := 0; i < src.Len(); i++ {
		dst.Set(i, src.Get(i))
	}
	return dst
}

func backingEqual(a, b Backing) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if a.Get(i) != b.Get(i) {
			return false
		}
	}
	return true
}
