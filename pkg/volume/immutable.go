package volume

import (
	"encoding/binary"
	"fmt"
	"iter"

	"github.com/cespare/xxhash/v2"

	"github.com/go-theft-craft/volume/pkg/block"
)

// Immutable is a read-only block buffer. It is safe for concurrent reads.
type Immutable struct {
	view
}

// NewImmutable builds a buffer from copies of p and data.
func NewImmutable(p Palette, data Backing, start, size Vec3i) (*Immutable, error) {
	b, err := newBounds(start, size)
	if err != nil {
		return nil, err
	}
	if data.Len() != b.volume() {
		return nil, fmt.Errorf("%w: backing holds %d ids for %d cells", ErrRawLength, data.Len(), b.volume())
	}
	return &Immutable{view: view{bounds: b, palette: p.AsImmutable(), data: data.Clone()}}, nil
}

func (im *Immutable) GetBlock(x, y, z int) (block.State, error) {
	i, err := im.index(x, y, z)
	if err != nil {
		return block.Air, err
	}
	return im.stateAt(i), nil
}

func (im *Immutable) Fluid(x, y, z int) (block.Fluid, error) {
	s, err := im.GetBlock(x, y, z)
	if err != nil {
		return block.Fluid{}, err
	}
	return s.Fluid(), nil
}

// BlockStateStream returns the states of the inclusive range [min, max] in
// the same order as Mutable.BlockStateStream.
func (im *Immutable) BlockStateStream(min, max Vec3i) (iter.Seq2[Vec3i, block.State], error) {
	if err := im.checkRange(min, max); err != nil {
		return nil, err
	}
	return stream(im.bounds, &im.view, min, max), nil
}

func (im *Immutable) Start() Vec3i              { return im.start }
func (im *Immutable) Size() Vec3i               { return im.size }
func (im *Immutable) End() Vec3i                { return im.end() }
func (im *Immutable) Volume() int               { return im.volume() }
func (im *Immutable) Contains(x, y, z int) bool { return im.contains(x, y, z) }
func (im *Immutable) HighestID() uint32         { return im.palette.HighestID() }
func (im *Immutable) PaletteKind() PaletteKind  { return im.palette.Kind() }
func (im *Immutable) BackingKind() BackingKind  { return im.data.Kind() }

// Palette returns the buffer's palette. It has no assign path.
func (im *Immutable) Palette() Palette {
	return im.palette
}

// Equal reports whether both buffers cover the same box with the same
// palette and the same id in every cell. The backing layout is not compared.
func (im *Immutable) Equal(o *Immutable) bool {
	if im == o {
		return true
	}
	if o == nil {
		return false
	}
	return im.start == o.start && im.size == o.size &&
		paletteEqual(im.palette, o.palette) &&
		backingEqual(im.data, o.data)
}

// Hash is consistent with Equal.
func (im *Immutable) Hash() uint64 {
	d := xxhash.New()
	var buf [8]byte
	putInt := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		d.Write(buf[:])
	}

	for _, v := range []Vec3i{im.start, im.size} {
		putInt(v.X)
		putInt(v.Y)
		putInt(v.Z)
	}

	d.Write([]byte{byte(im.palette.Kind())})
	if reg := im.palette.registry(); reg != nil {
		d.WriteString(reg.Version())
		putInt(int(reg.HighestID()))
	}
	for _, s := range im.palette.localStates() {
		binary.LittleEndian.PutUint16(buf[:2], s.Legacy())
		d.Write(buf[:2])
	}

	for i := 0; i < im.data.Len(); i++ {
		binary.LittleEndian.PutUint32(buf[:4], im.data.Get(i))
		d.Write(buf[:4])
	}
	return d.Sum64()
}
