// Package gen fills block volumes with terrain.
package gen

import (
	"fmt"

	"github.com/go-theft-craft/volume/pkg/block"
	"github.com/go-theft-craft/volume/pkg/volume"
)

var (
	air       = block.Air
	stone     = block.State{ID: 1}
	grass     = block.State{ID: 2}
	dirt      = block.State{ID: 3}
	bedrock   = block.State{ID: 7}
	water     = block.State{ID: 9} // stationary, source level
	lava      = block.State{ID: 11}
	sand      = block.State{ID: 12}
	gravel    = block.State{ID: 13}
	sandstone = block.State{ID: 24}
	snow      = block.State{ID: 78}

	goldOre     = block.State{ID: 14}
	ironOre     = block.State{ID: 15}
	coalOre     = block.State{ID: 16}
	lapisOre    = block.State{ID: 21}
	diamondOre  = block.State{ID: 56}
	redstoneOre = block.State{ID: 73}

	oakLog       = block.State{ID: 17, Meta: 0}
	spruceLog    = block.State{ID: 17, Meta: 1}
	birchLog     = block.State{ID: 17, Meta: 2}
	oakLeaves    = block.State{ID: 18, Meta: 0}
	spruceLeaves = block.State{ID: 18, Meta: 1}
	birchLeaves  = block.State{ID: 18, Meta: 2}

	tallGrass = block.State{ID: 31, Meta: 1}
	deadBush  = block.State{ID: 32}
	dandelion = block.State{ID: 37}
	cactus    = block.State{ID: 81}
)

const seaLevel = 62

// Target is anything a generator can write blocks into. *volume.Mutable
// satisfies it; so does a world that routes writes to its sections.
type Target interface {
	Start() volume.Vec3i
	Size() volume.Vec3i
	SetBlock(x, y, z int, s block.State) error
}

// Generator produces terrain deterministically from a seed. The state of a
// position never depends on the box being filled, so adjacent boxes line up.
type Generator interface {
	// Fill writes every non-air block of t's box.
	Fill(t Target) error
	// HeightAt is the y of the topmost solid block of a column.
	HeightAt(x, z int) int
}

// fillColumns calls state for every position of t's box, x fastest, then z,
// then y, and writes the non-air results. column runs once per (x, z) and
// its result is handed to state for each y of that column.
func fillColumns[C any](t Target, column func(x, z int) C, state func(c C, y int) block.State) error {
	start, size := t.Start(), t.Size()
	cols := make([]C, size.X*size.Z)
	for z := 0; z < size.Z; z++ {
		for x := 0; x < size.X; x++ {
			cols[z*size.X+x] = column(start.X+x, start.Z+z)
		}
	}

	for y := start.Y; y < start.Y+size.Y; y++ {
		for z := 0; z < size.Z; z++ {
			for x := 0; x < size.X; x++ {
				s := state(cols[z*size.X+x], y)
				if s == air {
					continue
				}
				if err := t.SetBlock(start.X+x, y, start.Z+z, s); err != nil {
					return fmt.Errorf("fill (%d, %d, %d): %w", start.X+x, y, start.Z+z, err)
				}
			}
		}
	}
	return nil
}
