package volume

import (
	"fmt"
	"maps"
	"slices"

	"github.com/go-theft-craft/volume/pkg/block"
	"github.com/go-theft-craft/volume/pkg/volume/bitpack"
)

// Representation is the portable form of a buffer: a palette table plus the
// cell ids packed bits-wide into 64-bit words, in index order.
type Representation struct {
	Kind    PaletteKind
	Palette map[uint32]block.State
	Bits    uint8
	Words   []int64
	Length  int
}

// Representation exports im. Local palettes are exported whole; global ones
// list only the ids that occur in the data. Cells holding an id the palette
// cannot resolve are exported as air, which is what they read as.
func (im *Immutable) Representation() Representation {
	n := im.data.Len()
	ids := make([]uint32, n)
	table := make(map[uint32]block.State)

	if im.palette.Kind() == PaletteLocal {
		for i, s := range im.palette.localStates() {
			table[uint32(i)] = s
		}
	}

	airID, airKnown := im.palette.ID(block.Air)
	for i := 0; i < n; i++ {
		id := im.data.Get(i)
		s, ok := im.palette.Get(id)
		if !ok {
			if !airKnown {
				airID = uint32(len(table))
				airKnown = true
				table[airID] = block.Air
			}
			id, s = airID, block.Air
		}
		ids[i] = id
		table[id] = s
	}

	highest := im.palette.HighestID()
	if im.palette.Kind() == PaletteLocal {
		highest = uint32(len(table) - 1)
	}
	bits := bitpack.BitsFor(highest)
	packed := NewPackedBacking(n, highest)
	for i, id := range ids {
		packed.Set(i, id)
	}
	_, words := packed.Words()

	return Representation{
		Kind:    im.palette.Kind(),
		Palette: table,
		Bits:    bits,
		Words:   words,
		Length:  n,
	}
}

// FromRepresentation rebuilds a mutable buffer from rep. A local table must
// number its states densely from 0; a global table must use the canonical id
// of every state. Each cell id has to appear in the table.
func FromRepresentation(reg *block.Registry, start, size Vec3i, rep Representation, opts ...Option) (*Mutable, error) {
	b, err := newBounds(start, size)
	if err != nil {
		return nil, err
	}
	if rep.Length != b.volume() {
		return nil, fmt.Errorf("%w: representation holds %d cells, volume is %d", ErrRawLength, rep.Length, b.volume())
	}

	p, err := paletteFromTable(reg, rep.Kind, rep.Palette)
	if err != nil {
		return nil, err
	}

	data, err := PackedFromWords(rep.Length, rep.Bits, rep.Words)
	if err != nil {
		return nil, err
	}
	for i := 0; i < data.Len(); i++ {
		if id := data.Get(i); !hasKey(rep.Palette, id) {
			return nil, fmt.Errorf("%w: cell %d holds id %d missing from the palette", ErrRepresentation, i, id)
		}
	}
	return newMutable(reg, b, p, data, opts), nil
}

func paletteFromTable(reg *block.Registry, kind PaletteKind, table map[uint32]block.State) (MutablePalette, error) {
	switch kind {
	case PaletteGlobal:
		for id, s := range table {
			canon, ok := reg.ID(s)
			if !ok {
				return nil, fmt.Errorf("%w: %w: %v", ErrRepresentation, ErrUnknownState, s)
			}
			if canon != id {
				return nil, fmt.Errorf("%w: global id %d maps to %v, whose id is %d", ErrRepresentation, id, s, canon)
			}
		}
		return NewGlobalPalette(reg), nil

	case PaletteLocal:
		if len(table) == 0 {
			return nil, fmt.Errorf("%w: empty local palette", ErrRepresentation)
		}
		keys := slices.Sorted(maps.Keys(table))
		states := make([]block.State, len(keys))
		for i, id := range keys {
			if id != uint32(i) {
				return nil, fmt.Errorf("%w: local ids are not dense, found %d at position %d", ErrRepresentation, id, i)
			}
			states[i] = table[id]
		}
		p, err := LocalPaletteOf(states)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRepresentation, err)
		}
		return p, nil

	default:
		return nil, fmt.Errorf("%w: unknown palette kind %v", ErrRepresentation, kind)
	}
}

func hasKey(m map[uint32]block.State, k uint32) bool {
	_, ok := m[k]
	return ok
}
