package volume

import (
	"fmt"
	"iter"

	"github.com/go-theft-craft/volume/pkg/block"
)

// SmallAreaThreshold is the cell count from which New starts a buffer on the
// global palette instead of a local one.
const SmallAreaThreshold = 256

// Mutable is a block buffer over a fixed box. It owns its palette and
// backing exclusively.
//
// A Mutable is not safe for concurrent use: all writes to one buffer must
// come from one goroutine at a time, and reads must not overlap with writes.
//
// Its palette only moves forward: local palettes grow their backing as new
// states arrive and switch to the global palette once a local id would need
// more than half of the global id range. A global palette is never left.
type Mutable struct {
	bounds
	global   *GlobalPalette
	palette  MutablePalette
	data     Backing
	observer Observer
	sealed   bool
}

// New creates an all-air buffer. Boxes smaller than SmallAreaThreshold cells
// start with a local palette, larger ones with the global palette of reg.
func New(reg *block.Registry, start, size Vec3i, opts ...Option) (*Mutable, error) {
	b, err := newBounds(start, size)
	if err != nil {
		return nil, err
	}

	var p MutablePalette
	if b.volume() < SmallAreaThreshold {
		p = NewLocalPalette()
	} else {
		p = NewGlobalPalette(reg)
	}
	return newMutable(reg, b, p, NewPackedBacking(b.volume(), p.HighestID()), opts), nil
}

// NewWithPalette creates a buffer on a copy of p. Unwritten cells read as the
// state p maps to id 0. A global p must number states with reg.
func NewWithPalette(reg *block.Registry, p MutablePalette, start, size Vec3i, opts ...Option) (*Mutable, error) {
	b, err := newBounds(start, size)
	if err != nil {
		return nil, err
	}
	if err := checkRegistry(reg, p); err != nil {
		return nil, err
	}

	p = p.AsMutable()
	return newMutable(reg, b, p, NewPackedBacking(b.volume(), p.HighestID()), opts), nil
}

// NewFromRaw restores a buffer from one 16-bit id per cell, laid out x
// fastest, then z, then y. raw is copied.
func NewFromRaw(reg *block.Registry, p MutablePalette, start, size Vec3i, raw []uint16, opts ...Option) (*Mutable, error) {
	b, err := newBounds(start, size)
	if err != nil {
		return nil, err
	}
	if len(raw) != b.volume() {
		return nil, fmt.Errorf("%w: got %d ids for %d cells", ErrRawLength, len(raw), b.volume())
	}
	if err := checkRegistry(reg, p); err != nil {
		return nil, err
	}
	return newMutable(reg, b, p.AsMutable(), DenseFrom(raw), opts), nil
}

// checkRegistry rejects a global palette numbered by a registry other than
// reg.
func checkRegistry(reg *block.Registry, p Palette) error {
	if p.Kind() == PaletteGlobal && p.registry() != reg {
		return fmt.Errorf("%w: global palette of version %q", ErrRegistryMismatch, p.registry().Version())
	}
	return nil
}

func newMutable(reg *block.Registry, b bounds, p MutablePalette, data Backing, opts []Option) *Mutable {
	if reg == nil {
		panic("volume: nil block registry")
	}
	m := &Mutable{
		bounds:   b,
		global:   NewGlobalPalette(reg),
		palette:  p,
		data:     data,
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetBlock stores s at (x, y, z). On error the buffer is unchanged.
func (m *Mutable) SetBlock(x, y, z int, s block.State) error {
	if m.sealed {
		return ErrSealed
	}
	i, err := m.index(x, y, z)
	if err != nil {
		return err
	}

	id, err := m.palette.Probe(s)
	if err != nil {
		return err
	}
	if id > m.data.Max() || m.promotes(id) {
		if err := m.grow(s, id); err != nil {
			return err
		}
	}

	// After a promotion the palette is global and s has a different id.
	id, err = m.palette.GetOrAssign(s)
	if err != nil {
		return err
	}
	m.data.Set(i, id)
	return nil
}

// promotes reports whether a local id this high is past the point where the
// global palette is the cheaper encoding.
func (m *Mutable) promotes(id uint32) bool {
	return m.palette.Kind() == PaletteLocal && 2*uint64(id) > uint64(m.global.HighestID())
}

// grow makes room for id, the id s is about to receive. Every replacement
// structure is built before anything is swapped in.
func (m *Mutable) grow(s block.State, id uint32) error {
	if m.promotes(id) {
		return m.promote(s)
	}

	from := m.data.Bits()
	next := repack(m.data, id)
	m.data = next
	m.observer.Grew(from, next.Bits())
	return nil
}

// promote moves every cell onto the global palette.
func (m *Mutable) promote(s block.State) error {
	if _, err := m.global.Probe(s); err != nil {
		return fmt.Errorf("promote palette: %w", err)
	}

	n := m.data.Len()
	next := NewPackedBacking(n, m.global.HighestID())
	remap := make(map[uint32]uint32, m.palette.Len())
	for i := 0; i < n; i++ {
		local := m.data.Get(i)
		id, ok := remap[local]
		if !ok {
			var err error
			id, err = m.global.GetOrAssign(resolve(m.palette, local))
			if err != nil {
				return fmt.Errorf("promote palette: %w", err)
			}
			remap[local] = id
		}
		next.Set(i, id)
	}

	m.palette = m.global
	m.data = next
	m.observer.Promoted(n)
	return nil
}

// GetBlock returns the state at (x, y, z). Ids the palette cannot resolve
// read as air.
func (m *Mutable) GetBlock(x, y, z int) (block.State, error) {
	if m.sealed {
		return block.Air, ErrSealed
	}
	i, err := m.index(x, y, z)
	if err != nil {
		return block.Air, err
	}
	return m.stateAt(i), nil
}

// Fluid returns the fluid held by the block at (x, y, z).
func (m *Mutable) Fluid(x, y, z int) (block.Fluid, error) {
	s, err := m.GetBlock(x, y, z)
	if err != nil {
		return block.Fluid{}, err
	}
	return s.Fluid(), nil
}

func (m *Mutable) stateAt(i int) block.State {
	return resolve(m.palette, m.data.Get(i))
}

// Copy returns a deep copy sharing no mutable state with m.
func (m *Mutable) Copy() *Mutable {
	if m.sealed {
		return &Mutable{bounds: m.bounds, global: m.global, observer: m.observer, sealed: true}
	}
	return &Mutable{
		bounds:   m.bounds,
		global:   m.global,
		palette:  m.palette.AsMutable(),
		data:     m.data.Clone(),
		observer: m.observer,
	}
}

// Freeze returns an immutable copy of m. m stays usable.
func (m *Mutable) Freeze() (*Immutable, error) {
	if m.sealed {
		return nil, ErrSealed
	}
	return &Immutable{view: view{
		bounds:  m.bounds,
		palette: m.palette.AsImmutable(),
		data:    m.data.Clone(),
	}}, nil
}

// Seal turns m into an immutable buffer without copying. m hands over its
// palette and backing, so the returned buffer is the only owner of the data.
// Afterwards reads, writes and streams on m fail with ErrSealed; only the
// geometry accessors and Sealed remain usable.
func (m *Mutable) Seal() (*Immutable, error) {
	if m.sealed {
		return nil, ErrSealed
	}
	im := &Immutable{view: view{
		bounds:  m.bounds,
		palette: m.palette.seal(),
		data:    m.data,
	}}
	m.palette = nil
	m.data = nil
	m.sealed = true
	return im, nil
}

// BlockStateStream returns the states of the inclusive range [min, max], x
// fastest, then z, then y. Each call builds a new sequence; ranging over it
// again starts from min.
func (m *Mutable) BlockStateStream(min, max Vec3i, opts StreamOptions) (iter.Seq2[Vec3i, block.State], error) {
	if m.sealed {
		return nil, ErrSealed
	}
	if err := m.checkRange(min, max); err != nil {
		return nil, err
	}

	var r cellReader = m
	if opts.CarbonCopy {
		r = &view{bounds: m.bounds, palette: m.palette.AsImmutable(), data: m.data.Clone()}
	}
	return stream(m.bounds, r, min, max), nil
}

func (m *Mutable) Start() Vec3i { return m.start }
func (m *Mutable) Size() Vec3i  { return m.size }

// End is the inclusive upper corner.
func (m *Mutable) End() Vec3i                { return m.end() }
func (m *Mutable) Volume() int               { return m.volume() }
func (m *Mutable) Contains(x, y, z int) bool { return m.contains(x, y, z) }
func (m *Mutable) Sealed() bool              { return m.sealed }
func (m *Mutable) Registry() *block.Registry { return m.global.reg }

// The palette and backing accessors below report zero values once m is
// sealed.

func (m *Mutable) HighestID() uint32 {
	if m.sealed {
		return 0
	}
	return m.palette.HighestID()
}

func (m *Mutable) PaletteKind() PaletteKind {
	if m.sealed {
		return 0
	}
	return m.palette.Kind()
}

func (m *Mutable) BackingKind() BackingKind {
	if m.sealed {
		return 0
	}
	return m.data.Kind()
}

func (m *Mutable) BackingMax() uint32 {
	if m.sealed {
		return 0
	}
	return m.data.Max()
}

func (m *Mutable) BitsPerEntry() uint8 {
	if m.sealed {
		return 0
	}
	return m.data.Bits()
}

// Palette returns an immutable copy of the current palette, or nil once m is
// sealed.
func (m *Mutable) Palette() Palette {
	if m.sealed {
		return nil
	}
	return m.palette.AsImmutable()
}
