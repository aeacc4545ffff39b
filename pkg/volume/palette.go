package volume

import (
	"fmt"
	"slices"

	"github.com/go-theft-craft/volume/pkg/block"
)

type PaletteKind uint8

const (
	// PaletteLocal numbers only the states a buffer uses, densely from 0.
	PaletteLocal PaletteKind = iota
	// PaletteGlobal uses the registry's canonical ids and never grows.
	PaletteGlobal
)

func (k PaletteKind) String() string {
	switch k {
	case PaletteLocal:
		return "local"
	case PaletteGlobal:
		return "global"
	default:
		return fmt.Sprintf("PaletteKind(%d)", uint8(k))
	}
}

// Palette maps compact ids to block states. The interface is sealed: its
// implementations are LocalPalette, FrozenPalette and GlobalPalette.
type Palette interface {
	Kind() PaletteKind
	// Get resolves id. It reports false for ids that were never assigned.
	Get(id uint32) (block.State, bool)
	// ID looks s up without assigning it.
	ID(s block.State) (uint32, bool)
	HighestID() uint32
	Len() int
	// AsMutable returns an independent palette that can assign ids.
	AsMutable() MutablePalette
	// AsImmutable returns an independent palette with no assign path.
	AsImmutable() Palette

	localStates() []block.State
	registry() *block.Registry
}

// MutablePalette is a Palette that hands out ids on demand.
type MutablePalette interface {
	Palette
	// GetOrAssign returns the id of s, assigning the next free id if s is
	// not mapped yet.
	GetOrAssign(s block.State) (uint32, error)
	// Probe returns the id GetOrAssign would return for s without
	// assigning it.
	Probe(s block.State) (uint32, error)

	// seal hands the palette's tables to an immutable palette. The receiver
	// must not be used afterwards.
	seal() Palette
}

// localTable is the id <-> state table shared by the local palette variants.
type localTable struct {
	ids    map[block.State]uint32
	states []block.State
}

func newLocalTable(capacity int) localTable {
	return localTable{
		ids:    make(map[block.State]uint32, capacity),
		states: make([]block.State, 0, capacity),
	}
}

func (t *localTable) Kind() PaletteKind {
	return PaletteLocal
}

func (t *localTable) Get(id uint32) (block.State, bool) {
	if uint64(id) >= uint64(len(t.states)) {
		return block.Air, false
	}
	return t.states[id], true
}

func (t *localTable) ID(s block.State) (uint32, bool) {
	id, ok := t.ids[s]
	return id, ok
}

// HighestID of an empty table is 0.
func (t *localTable) HighestID() uint32 {
	if len(t.states) == 0 {
		return 0
	}
	return uint32(len(t.states) - 1)
}

func (t *localTable) Len() int {
	return len(t.states)
}

func (t *localTable) AsMutable() MutablePalette {
	return &LocalPalette{localTable: t.clone()}
}

func (t *localTable) AsImmutable() Palette {
	return &FrozenPalette{localTable: t.clone()}
}

func (t *localTable) localStates() []block.State {
	return t.states
}

func (t *localTable) registry() *block.Registry {
	return nil
}

func (t *localTable) clone() localTable {
	c := newLocalTable(len(t.states))
	c.states = append(c.states, t.states...)
	for s, id := range t.ids {
		c.ids[s] = id
	}
	return c
}

func (t *localTable) assign(s block.State) uint32 {
	id := uint32(len(t.states))
	t.states = append(t.states, s)
	t.ids[s] = id
	return id
}

// LocalPalette assigns ids on first use. A fresh palette maps air to id 0, so
// unwritten cells of a new buffer read as air.
type LocalPalette struct {
	localTable
}

func NewLocalPalette() *LocalPalette {
	p := &LocalPalette{localTable: newLocalTable(16)}
	p.assign(block.Air)
	return p
}

// LocalPaletteOf builds a palette whose id i maps to states[i].
func LocalPaletteOf(states []block.State) (*LocalPalette, error) {
	if len(states) == 0 {
		return nil, fmt.Errorf("local palette: no states")
	}
	p := &LocalPalette{localTable: newLocalTable(len(states))}
	for _, s := range states {
		if _, dup := p.ids[s]; dup {
			return nil, fmt.Errorf("local palette: state %v listed twice", s)
		}
		p.assign(s)
	}
	return p, nil
}

func (p *LocalPalette) GetOrAssign(s block.State) (uint32, error) {
	if id, ok := p.ids[s]; ok {
		return id, nil
	}
	return p.assign(s), nil
}

func (p *LocalPalette) Probe(s block.State) (uint32, error) {
	if id, ok := p.ids[s]; ok {
		return id, nil
	}
	return uint32(len(p.states)), nil
}

func (p *LocalPalette) seal() Palette {
	frozen := &FrozenPalette{localTable: p.localTable}
	p.localTable = localTable{}
	return frozen
}

// FrozenPalette is a read-only local palette.
type FrozenPalette struct {
	localTable
}

// GlobalPalette numbers states by their canonical registry id.
type GlobalPalette struct {
	reg *block.Registry
}

func NewGlobalPalette(reg *block.Registry) *GlobalPalette {
	return &GlobalPalette{reg: reg}
}

func (p *GlobalPalette) Kind() PaletteKind {
	return PaletteGlobal
}

func (p *GlobalPalette) Get(id uint32) (block.State, bool) {
	return p.reg.State(id)
}

func (p *GlobalPalette) ID(s block.State) (uint32, bool) {
	return p.reg.ID(s)
}

func (p *GlobalPalette) HighestID() uint32 {
	return p.reg.HighestID()
}

func (p *GlobalPalette) Len() int {
	return p.reg.Len()
}

// AsMutable returns p itself: a global palette never changes, so sharing it
// is the same as copying it.
func (p *GlobalPalette) AsMutable() MutablePalette {
	return p
}

func (p *GlobalPalette) AsImmutable() Palette {
	return p
}

func (p *GlobalPalette) GetOrAssign(s block.State) (uint32, error) {
	return p.Probe(s)
}

func (p *GlobalPalette) Probe(s block.State) (uint32, error) {
	id, ok := p.reg.ID(s)
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrUnknownState, s)
	}
	return id, nil
}

func (p *GlobalPalette) seal() Palette {
	return p
}

func (p *GlobalPalette) localStates() []block.State {
	return nil
}

func (p *GlobalPalette) registry() *block.Registry {
	return p.reg
}

func paletteEqual(a, b Palette) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	if a.Kind() == PaletteGlobal {
		return a.registry() == b.registry()
	}
	return slices.Equal(a.localStates(), b.localStates())
}
