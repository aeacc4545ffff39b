package gen

import (
	"fmt"

	"github.com/aquilax/go-perlin"

	"github.com/go-theft-craft/volume/pkg/block"
)

// Biome is a 1.8 biome id.
type Biome uint8

const (
	BiomeOcean     Biome = 0
	BiomePlains    Biome = 1
	BiomeDesert    Biome = 2
	BiomeHills     Biome = 3
	BiomeForest    Biome = 4
	BiomeTaiga     Biome = 5
	BiomeIcePlains Biome = 12
	BiomeBeach     Biome = 16
)

func (b Biome) String() string {
	switch b {
	case BiomeOcean:
		return "ocean"
	case BiomePlains:
		return "plains"
	case BiomeDesert:
		return "desert"
	case BiomeHills:
		return "extreme_hills"
	case BiomeForest:
		return "forest"
	case BiomeTaiga:
		return "taiga"
	case BiomeIcePlains:
		return "ice_plains"
	case BiomeBeach:
		return "beach"
	default:
		return fmt.Sprintf("Biome(%d)", uint8(b))
	}
}

// climate picks land biomes from two slow noise fields. Ocean and beach are
// decided by the terrain height, not here.
type climate struct {
	temperature *perlin.Perlin
	rainfall    *perlin.Perlin
}

func newClimate(seed int64) climate {
	return climate{
		temperature: newNoise(seed + 100),
		rainfall:    newNoise(seed + 200),
	}
}

func (c climate) at(x, z int) Biome {
	fx, fz := float64(x)/512.0+0.5, float64(z)/512.0+0.5
	temp := c.temperature.Noise2D(fx, fz)
	rain := c.rainfall.Noise2D(fx+100, fz+100)

	switch {
	case temp < -0.25:
		if rain < 0 {
			return BiomeIcePlains
		}
		return BiomeTaiga
	case temp > 0.3:
		if rain < 0.1 {
			return BiomeDesert
		}
		return BiomeForest
	case rain > 0.3:
		return BiomeHills
	case rain > 0:
		return BiomeForest
	default:
		return BiomePlains
	}
}

// shape returns (amplitude, base height) for a biome's terrain.
func (b Biome) shape() (amplitude, base float64) {
	switch b {
	case BiomeOcean:
		return 8, seaLevel - 20
	case BiomeBeach:
		return 3, seaLevel
	case BiomeHills:
		return 40, seaLevel + 10
	case BiomeForest, BiomeTaiga:
		return 16, seaLevel + 3
	case BiomeDesert:
		return 10, seaLevel + 2
	case BiomeIcePlains:
		return 10, seaLevel + 1
	default:
		return 12, seaLevel + 1
	}
}

// surface returns the block depth levels below the top of a column whose top
// is at h. It reports false where the column turns to stone.
func (b Biome) surface(h, depth int) (block.State, bool) {
	switch b {
	case BiomeOcean:
		switch {
		case depth < 3:
			return gravel, true
		case depth < 5:
			return dirt, true
		}
	case BiomeBeach:
		switch {
		case depth < 4:
			return sand, true
		case depth < 5:
			return sandstone, true
		}
	case BiomeDesert:
		switch {
		case depth < 4:
			return sand, true
		case depth < 6:
			return sandstone, true
		}
	case BiomeHills:
		if h > 100 {
			return stone, false
		}
		return grassland(h, depth)
	default:
		return grassland(h, depth)
	}
	return stone, false
}

// grassland is grass over three dirt, or dirt alone where the top is under
// water.
func grassland(h, depth int) (block.State, bool) {
	switch {
	case depth == 0 && h > seaLevel:
		return grass, true
	case depth < 4:
		return dirt, true
	}
	return stone, false
}
