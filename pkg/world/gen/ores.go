package gen

import "github.com/go-theft-craft/volume/pkg/block"

// oreGenerator scatters ore veins through the stone of each chunk.
type oreGenerator struct {
	seed int64
}

func newOreGenerator(seed int64) *oreGenerator {
	return &oreGenerator{seed: seed}
}

type oreVein struct {
	state    block.State
	minY     int
	maxY     int
	size     int // blocks visited by one vein's walk
	attempts int // veins per chunk
}

var oreVeins = []oreVein{
	{coalOre, 0, 128, 12, 20},
	{ironOre, 0, 64, 8, 20},
	{goldOre, 0, 32, 8, 2},
	{diamondOre, 0, 16, 6, 1},
	{redstoneOre, 0, 16, 6, 8},
	{lapisOre, 0, 32, 6, 1},
}

func (g *oreGenerator) place(c *chunk) {
	rng := newChunkRNG(g.seed, c.cx, c.cz, 500)

	for _, ore := range oreVeins {
		for range ore.attempts {
			x := rng.intn(chunkSize)
			y := ore.minY + rng.intn(ore.maxY-ore.minY)
			z := rng.intn(chunkSize)
			if y >= c.height(x, z) {
				continue
			}
			g.walk(c, x, y, z, ore, rng)
		}
	}
}

// walk moves one block at a time in a random direction, turning the stone
// it crosses into ore.
func (g *oreGenerator) walk(c *chunk, x, y, z int, ore oreVein, rng *chunkRNG) {
	for range ore.size {
		if c.inside(x, y, z) && y >= 1 && y < c.height(x, z) && c.get(x, y, z) == stone {
			c.set(x, y, z, ore.state)
		}

		switch rng.intn(6) {
		case 0:
			x++
		case 1:
			x--
		case 2:
			y++
		case 3:
			y--
		case 4:
			z++
		case 5:
			z--
		}
	}
}
