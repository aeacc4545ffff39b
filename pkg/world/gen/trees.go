package gen

import "github.com/go-theft-craft/volume/pkg/block"

// treeGenerator grows trees on grass and scatters small plants, both
// weighted by biome.
type treeGenerator struct {
	seed int64
}

func newTreeGenerator(seed int64) *treeGenerator {
	return &treeGenerator{seed: seed}
}

func (g *treeGenerator) decorate(c *chunk) {
	rng := newChunkRNG(g.seed, c.cx, c.cz, 600)

	// Tree density follows the biome at the middle of the chunk.
	for range treesPerChunk(c.column(8, 8).biome) {
		x, z := rng.intn(chunkSize), rng.intn(chunkSize)
		y := c.height(x, z)
		if y <= seaLevel || y >= maxHeight {
			continue
		}
		if c.get(x, y, z) != grass {
			continue
		}

		switch c.column(x, z).biome {
		case BiomeTaiga, BiomeIcePlains:
			g.spruce(c, x, y+1, z, rng)
		case BiomeForest:
			if rng.intn(3) == 0 {
				g.broadleaf(c, x, y+1, z, birchLog, birchLeaves, 5+rng.intn(2), rng)
			} else {
				g.broadleaf(c, x, y+1, z, oakLog, oakLeaves, 4+rng.intn(3), rng)
			}
		default:
			g.broadleaf(c, x, y+1, z, oakLog, oakLeaves, 4+rng.intn(3), rng)
		}
	}

	g.plants(c, rng)
}

func treesPerChunk(b Biome) int {
	switch b {
	case BiomeDesert, BiomeOcean, BiomeBeach:
		return 0
	case BiomePlains:
		return 1
	case BiomeIcePlains:
		return 4
	case BiomeTaiga:
		return 6
	case BiomeForest:
		return 8
	default:
		return 2
	}
}

// broadleaf grows an oak or birch: a straight trunk under a rounded canopy
// two layers wide and two layers narrow.
func (g *treeGenerator) broadleaf(c *chunk, x, baseY, z int, trunk, leaves block.State, height int, rng *chunkRNG) {
	if baseY+height+2 >= worldHeight {
		return
	}
	for y := baseY; y < baseY+height; y++ {
		c.set(x, y, z, trunk)
	}

	leafBase := baseY + height - 2
	for dy := 0; dy < 4; dy++ {
		y := leafBase + dy
		radius := 2
		if dy >= 2 {
			radius = 1
		}
		for dx := -radius; dx <= radius; dx++ {
			for dz := -radius; dz <= radius; dz++ {
				lx, lz := x+dx, z+dz
				if !c.inside(lx, y, lz) {
					continue
				}
				// Corners of the wide layers are dropped at random.
				if radius == 2 && abs(dx) == 2 && abs(dz) == 2 && rng.intn(2) == 0 {
					continue
				}
				if c.get(lx, y, lz) == air {
					c.set(lx, y, lz, leaves)
				}
			}
		}
	}
}

// spruce grows a tall trunk under a cone of leaves that narrows upwards.
func (g *treeGenerator) spruce(c *chunk, x, baseY, z int, rng *chunkRNG) {
	height := 6 + rng.intn(4)
	if baseY+height+1 >= worldHeight {
		return
	}
	for y := baseY; y < baseY+height; y++ {
		c.set(x, y, z, spruceLog)
	}

	for dy := 1; dy <= height; dy++ {
		y := baseY + dy
		radius := min((height-dy)/2, 3)
		if radius <= 0 && dy < height {
			continue
		}
		if radius >= 2 && dy%2 == 0 {
			continue
		}
		for dx := -radius; dx <= radius; dx++ {
			for dz := -radius; dz <= radius; dz++ {
				lx, lz := x+dx, z+dz
				if (dx == 0 && dz == 0) || !c.inside(lx, y, lz) {
					continue
				}
				if c.get(lx, y, lz) == air {
					c.set(lx, y, lz, spruceLeaves)
				}
			}
		}
	}
	c.set(x, baseY+height, z, spruceLeaves)
}

// plants puts grass and flowers on grassland and cacti or dead bushes on
// sand. Snow-covered ground is left bare.
func (g *treeGenerator) plants(c *chunk, rng *chunkRNG) {
	for range 20 {
		x, z := rng.intn(chunkSize), rng.intn(chunkSize)
		y := c.height(x, z)
		if y <= seaLevel || y+1 >= worldHeight {
			continue
		}
		// A tree may already stand here.
		if c.get(x, y+1, z) != air {
			continue
		}
		top := c.get(x, y, z)

		switch c.column(x, z).biome {
		case BiomeDesert:
			if top != sand {
				continue
			}
			if rng.intn(8) == 0 {
				h := 1 + rng.intn(3)
				for dy := 1; dy <= h; dy++ {
					c.set(x, y+dy, z, cactus)
				}
			} else if rng.intn(4) == 0 {
				c.set(x, y+1, z, deadBush)
			}
		case BiomePlains, BiomeForest, BiomeHills:
			if top != grass {
				continue
			}
			if rng.intn(3) == 0 {
				c.set(x, y+1, z, tallGrass)
			} else if rng.intn(8) == 0 {
				c.set(x, y+1, z, dandelion)
			}
		case BiomeTaiga:
			if top == grass && rng.intn(6) == 0 {
				c.set(x, y+1, z, tallGrass)
			}
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
