package gen

import (
	"github.com/aquilax/go-perlin"

	"github.com/go-theft-craft/volume/pkg/block"
)

const (
	caveThreshold = 0.25
	lavaLevel     = 10
)

// caveGenerator carves tunnels where two 3D noise fields agree. Below
// lavaLevel the tunnels fill with lava.
type caveGenerator struct {
	shape  *perlin.Perlin
	detail *perlin.Perlin
}

func newCaveGenerator(seed int64) *caveGenerator {
	return &caveGenerator{
		shape:  newNoise(seed + 300),
		detail: newNoise(seed + 400),
	}
}

// carve reports the block a cave leaves at height y of col. Bedrock, the
// bottom layers and the four blocks under the surface are never carved.
func (g *caveGenerator) carve(col column, y int) (block.State, bool) {
	if y < 4 || y >= col.height-4 {
		return air, false
	}

	bx, by, bz := float64(col.x)+0.37, float64(y)+0.53, float64(col.z)+0.61
	n1 := g.shape.Noise3D(bx/32.0, by/24.0, bz/32.0)
	n2 := g.detail.Noise3D(bx/48.0, by/32.0, bz/48.0)
	if (n1+n2)/2 <= caveThreshold {
		return air, false
	}
	if y < lavaLevel {
		return lava, true
	}
	return air, true
}
