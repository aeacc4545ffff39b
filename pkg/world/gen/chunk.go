package gen

import (
	"github.com/go-theft-craft/volume/pkg/block"
	"github.com/go-theft-craft/volume/pkg/volume"
)

const (
	chunkSize   = 16
	worldHeight = 256
)

// chunk is one 16x16 column of the terrain with its features. Features never
// reach outside the chunk that placed them, so a block is decided by its own
// chunk alone. Coordinates are chunk local: x and z in [0, 16).
type chunk struct {
	cx, cz  int
	caves   *caveGenerator
	columns [chunkSize * chunkSize]column
	placed  map[volume.Vec3i]block.State
}

func chunkOf(v int) int {
	return v >> 4
}

func (g *TerrainGenerator) chunk(cx, cz int) *chunk {
	c := &chunk{cx: cx, cz: cz, caves: g.caves, placed: make(map[volume.Vec3i]block.State)}
	for z := 0; z < chunkSize; z++ {
		for x := 0; x < chunkSize; x++ {
			c.columns[z*chunkSize+x] = g.column(cx*chunkSize+x, cz*chunkSize+z)
		}
	}

	g.ores.place(c)
	g.trees.decorate(c)
	return c
}

func (c *chunk) column(x, z int) column {
	return c.columns[z*chunkSize+x]
}

func (c *chunk) height(x, z int) int {
	return c.column(x, z).height
}

func (c *chunk) inside(x, y, z int) bool {
	return x >= 0 && x < chunkSize && z >= 0 && z < chunkSize && y >= 0 && y < worldHeight
}

// natural is the block before any feature is placed: terrain with the caves
// carved out.
func (c *chunk) natural(x, y, z int) block.State {
	col := c.column(x, z)
	if s, ok := c.caves.carve(col, y); ok {
		return s
	}
	return col.terrain(y)
}

func (c *chunk) get(x, y, z int) block.State {
	if s, ok := c.placed[volume.Vec3i{X: x, Y: y, Z: z}]; ok {
		return s
	}
	return c.natural(x, y, z)
}

// set places s; positions outside the chunk are dropped.
func (c *chunk) set(x, y, z int, s block.State) {
	if c.inside(x, y, z) {
		c.placed[volume.Vec3i{X: x, Y: y, Z: z}] = s
	}
}
