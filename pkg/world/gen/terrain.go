package gen

import (
	"github.com/aquilax/go-perlin"

	"github.com/go-theft-craft/volume/pkg/block"
)

const (
	noiseAlpha   = 2.0
	noiseBeta    = 2.0
	noiseOctaves = 3

	minHeight = 1
	maxHeight = 250
)

func newNoise(seed int64) *perlin.Perlin {
	return perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed)
}

// TerrainGenerator produces rolling terrain with biomes, a bedrock floor and
// water up to sea level, then carves caves and places ore veins, trees and
// plants.
type TerrainGenerator struct {
	continent *perlin.Perlin
	detail    *perlin.Perlin
	climate   climate
	caves     *caveGenerator
	ores      *oreGenerator
	trees     *treeGenerator
}

func NewTerrainGenerator(seed int64) *TerrainGenerator {
	return &TerrainGenerator{
		continent: newNoise(seed),
		detail:    newNoise(seed + 1),
		climate:   newClimate(seed),
		caves:     newCaveGenerator(seed),
		ores:      newOreGenerator(seed),
		trees:     newTreeGenerator(seed),
	}
}

type column struct {
	x, z   int
	height int
	biome  Biome
}

func (g *TerrainGenerator) column(x, z int) column {
	// Perlin noise is zero at every lattice point; the offset keeps samples
	// off the lattice.
	fx, fz := float64(x)+0.37, float64(z)+0.61
	cont := g.continent.Noise2D(fx/128.0, fz/128.0)

	var biome Biome
	switch base := seaLevel + cont*24; {
	case base < seaLevel-8:
		biome = BiomeOcean
	case base < seaLevel-2:
		biome = BiomeBeach
	default:
		biome = g.climate.at(x, z)
	}

	amplitude, base := biome.shape()

	detail := g.detail.Noise2D(fx/32.0, fz/32.0)
	h := int(base + cont*amplitude + detail*4)
	return column{x: x, z: z, height: min(max(h, minHeight), maxHeight), biome: biome}
}

// BiomeAt returns the biome of the column at (x, z).
func (g *TerrainGenerator) BiomeAt(x, z int) Biome {
	return g.column(x, z).biome
}

func (g *TerrainGenerator) HeightAt(x, z int) int {
	return g.column(x, z).height
}

// Fill builds every chunk column the box touches and copies out the part
// of each that lies inside the box.
func (g *TerrainGenerator) Fill(t Target) error {
	start, size := t.Start(), t.Size()
	chunks := make(map[[2]int]*chunk)
	for cx := chunkOf(start.X); cx <= chunkOf(start.X+size.X-1); cx++ {
		for cz := chunkOf(start.Z); cz <= chunkOf(start.Z+size.Z-1); cz++ {
			chunks[[2]int{cx, cz}] = g.chunk(cx, cz)
		}
	}

	type cell struct {
		c    *chunk
		x, z int
	}
	return fillColumns(t, func(x, z int) cell {
		return cell{c: chunks[[2]int{chunkOf(x), chunkOf(z)}], x: x & (chunkSize - 1), z: z & (chunkSize - 1)}
	}, func(c cell, y int) block.State {
		if y < 0 || y >= worldHeight {
			return air
		}
		return c.c.get(c.x, y, c.z)
	})
}

// terrain is the block at height y of the column before caves and features.
func (c column) terrain(y int) block.State {
	switch {
	case y < 0:
		return air
	case y == 0:
		return bedrock
	case y > c.height:
		if y <= seaLevel {
			return water
		}
		if y == c.height+1 && c.biome == BiomeIcePlains {
			return snow
		}
		return air
	}
	if s, ok := c.biome.surface(c.height, c.height-y); ok {
		return s
	}
	return stone
}
