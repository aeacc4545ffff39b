package volume

import (
	"iter"

	"github.com/go-theft-craft/volume/pkg/block"
)

// StreamOptions controls BlockStateStream.
type StreamOptions struct {
	// CarbonCopy snapshots the buffer before the stream is returned, so the
	// sequence is unaffected by later writes. Without it the stream reads the
	// live buffer and must not overlap with writes.
	CarbonCopy bool
}

// cellReader resolves the state stored at a linear index.
type cellReader interface {
	stateAt(i int) block.State
}

// view is a palette and backing over a geometry. It is the whole state of an
// Immutable buffer and of a carbon copy.
type view struct {
	bounds
	palette Palette
	data    Backing
}

// stateAt never fails: ids the palette cannot resolve read as air.
func (v *view) stateAt(i int) block.State {
	return resolve(v.palette, v.data.Get(i))
}

func resolve(p Palette, id uint32) block.State {
	s, ok := p.Get(id)
	if !ok {
		return block.Air
	}
	return s
}

// stream yields every position of the inclusive range [min, max], x fastest,
// then z, then y. min and max must already be checked against b.
func stream(b bounds, r cellReader, min, max Vec3i) iter.Seq2[Vec3i, block.State] {
	return func(yield func(Vec3i, block.State) bool) {
		for y := min.Y; y <= max.Y; y++ {
			for z := min.Z; z <= max.Z; z++ {
				for x := min.X; x <= max.X; x++ {
					if !yield(Vec3i{x, y, z}, r.stateAt(b.indexUnchecked(x, y, z))) {
						return
					}
				}
			}
		}
	}
}
