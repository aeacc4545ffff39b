package gen

import "github.com/go-theft-craft/volume/pkg/block"

// FlatGenerator builds a superflat world: one layer per entry of its layer
// list, bottom first, starting at y=0. Everything above is air.
type FlatGenerator struct {
	layers []block.State
}

// NewFlatGenerator uses layers bottom to top. With no layers it builds the
// classic superflat: bedrock, two stone, dirt, grass.
func NewFlatGenerator(layers ...block.State) *FlatGenerator {
	if len(layers) == 0 {
		layers = []block.State{bedrock, stone, stone, dirt, grass}
	}
	return &FlatGenerator{layers: append([]block.State(nil), layers...)}
}

func (g *FlatGenerator) Fill(t Target) error {
	return fillColumns(t, func(_, _ int) struct{} { return struct{}{} }, func(_ struct{}, y int) block.State {
		if y < 0 || y >= len(g.layers) {
			return air
		}
		return g.layers[y]
	})
}

func (g *FlatGenerator) HeightAt(_, _ int) int {
	return len(g.layers) - 1
}
