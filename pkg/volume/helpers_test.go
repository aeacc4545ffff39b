package volume

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-theft-craft/volume/pkg/block"
	"github.com/go-theft-craft/volume/pkg/gamedata"
)

// testRegistry knows blocks 0..9 with all sixteen metas, so its highest
// canonical id is 159 and a local palette promotes at id 80.
func testRegistry() *block.Registry {
	blocks := make([]gamedata.Block, 10)
	for i := range blocks {
		blocks[i] = gamedata.Block{ID: i, Name: "block" + string(rune('0'+i))}
	}
	return block.NewRegistry(&gamedata.GameData{Version: "test", Blocks: gamedata.NewBlockList(blocks)})
}

// nthState returns the registry state with canonical id k.
func nthState(k int) block.State {
	return block.FromLegacy(uint16(k))
}

type recorder struct {
	grew     [][2]uint8
	promoted []int
}

func (r *recorder) Grew(from, to uint8) { r.grew = append(r.grew, [2]uint8{from, to}) }
func (r *recorder) Promoted(cells int)  { r.promoted = append(r.promoted, cells) }

func mustNew(t *testing.T, reg *block.Registry, start, size Vec3i, opts ...Option) *Mutable {
	t.Helper()
	m, err := New(reg, start, size, opts...)
	require.NoError(t, err)
	return m
}

// forEachCell visits the box of m in index order.
func forEachCell(m *Mutable, fn func(i, x, y, z int)) {
	i := 0
	s, e := m.Start(), m.End()
	for y := s.Y; y <= e.Y; y++ {
		for z := s.Z; z <= e.Z; z++ {
			for x := s.X; x <= e.X; x++ {
				fn(i, x, y, z)
				i++
			}
		}
	}
}
