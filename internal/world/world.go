// Package world stores an unbounded block world as 16³ volume sections that
// are generated on first access.
package world

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-theft-craft/volume/pkg/block"
	"github.com/go-theft-craft/volume/pkg/volume"
	"github.com/go-theft-craft/volume/pkg/world/gen"
)

const (
	SectionSize = 16
	// Height is the build height; y outside [0, Height) is always air.
	Height = 256
)

var ErrOutOfWorld = errors.New("world: y outside build height")

// SectionPos identifies a section by section coordinates (block >> 4).
type SectionPos struct {
	X, Y, Z int
}

func sectionOf(x, y, z int) SectionPos {
	return SectionPos{x >> 4, y >> 4, z >> 4}
}

func (p SectionPos) origin() volume.Vec3i {
	return volume.Vec3i{X: p.X * SectionSize, Y: p.Y * SectionSize, Z: p.Z * SectionSize}
}

// World holds generated sections and the edits made to them. It is safe for
// concurrent use: reads share a lock, writes take it exclusively, which is
// the single-writer discipline each section buffer needs.
type World struct {
	mu        sync.RWMutex
	reg       *block.Registry
	generator gen.Generator
	sections  map[SectionPos]*volume.Mutable
	opts      []volume.Option
}

// New creates a World. opts are applied to every section buffer.
func New(reg *block.Registry, generator gen.Generator, opts ...volume.Option) *World {
	return &World{
		reg:       reg,
		generator: generator,
		sections:  make(map[SectionPos]*volume.Mutable),
		opts:      opts,
	}
}

// section returns the section at pos, generating and caching it if needed.
func (w *World) section(pos SectionPos) (*volume.Mutable, error) {
	w.mu.RLock()
	if s, ok := w.sections[pos]; ok {
		w.mu.RUnlock()
		return s, nil
	}
	w.mu.RUnlock()

	s, err := w.generate(pos)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	// Another goroutine may have generated it meanwhile.
	if existing, ok := w.sections[pos]; ok {
		return existing, nil
	}
	w.sections[pos] = s
	return s, nil
}

// Sections start on a local palette; most hold only a handful of states.
func (w *World) generate(pos SectionPos) (*volume.Mutable, error) {
	size := volume.Vec3i{X: SectionSize, Y: SectionSize, Z: SectionSize}
	s, err := volume.NewWithPalette(w.reg, volume.NewLocalPalette(), pos.origin(), size, w.opts...)
	if err != nil {
		return nil, err
	}
	if err := w.generator.Fill(s); err != nil {
		return nil, fmt.Errorf("generate section %v: %w", pos, err)
	}
	return s, nil
}

// GetBlock returns the state at a world position.
func (w *World) GetBlock(x, y, z int) (block.State, error) {
	if y < 0 || y >= Height {
		return block.Air, nil
	}
	s, err := w.section(sectionOf(x, y, z))
	if err != nil {
		return block.Air, err
	}

	w.mu.RLock()
	defer w.mu.RUnlock()
	return s.GetBlock(x, y, z)
}

// SetBlock stores a state at a world position.
func (w *World) SetBlock(x, y, z int, state block.State) error {
	if y < 0 || y >= Height {
		return fmt.Errorf("%w: y=%d", ErrOutOfWorld, y)
	}
	s, err := w.section(sectionOf(x, y, z))
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return s.SetBlock(x, y, z, state)
}

// PreGenerate generates every section of the chunk columns within radius
// of the origin and returns the number of columns.
func (w *World) PreGenerate(radius int) (int, error) {
	count := 0
	for cx := -radius; cx <= radius; cx++ {
		for cz := -radius; cz <= radius; cz++ {
			for cy := 0; cy < Height/SectionSize; cy++ {
				if _, err := w.section(SectionPos{cx, cy, cz}); err != nil {
					return count, err
				}
			}
			count++
		}
	}
	return count, nil
}

// SectionCount returns the number of generated sections.
func (w *World) SectionCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.sections)
}

// SpawnHeight returns the terrain height at (0, 0) plus one, where a player
// can stand.
func (w *World) SpawnHeight() int {
	return w.generator.HeightAt(0, 0) + 1
}
