package volume

import "fmt"

// Vec3i is an integer block position or extent.
type Vec3i struct {
	X, Y, Z int
}

func (v Vec3i) Add(o Vec3i) Vec3i {
	return Vec3i{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3i) Sub(o Vec3i) Vec3i {
	return Vec3i{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3i) String() string {
	return fmt.Sprintf("(%d, %d, %d)", v.X, v.Y, v.Z)
}

// bounds is the box [start, start+size) every buffer is defined over.
// Cells are laid out x fastest, then z, then y, the same order as a chunk
// section: index = (y*sizeZ + z)*sizeX + x relative to start.
type bounds struct {
	start Vec3i
	size  Vec3i
}

func newBounds(start, size Vec3i) (bounds, error) {
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return bounds{}, fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}
	return bounds{start: start, size: size}, nil
}

func (b bounds) volume() int {
	return b.size.X * b.size.Y * b.size.Z
}

// end is the inclusive upper corner.
func (b bounds) end() Vec3i {
	return b.start.Add(b.size).Sub(Vec3i{1, 1, 1})
}

func (b bounds) contains(x, y, z int) bool {
	return x >= b.start.X && x < b.start.X+b.size.X &&
		y >= b.start.Y && y < b.start.Y+b.size.Y &&
		z >= b.start.Z && z < b.start.Z+b.size.Z
}

func (b bounds) index(x, y, z int) (int, error) {
	if !b.contains(x, y, z) {
		return 0, &BoundsError{Pos: Vec3i{x, y, z}, Min: b.start, Max: b.end()}
	}
	return b.indexUnchecked(x, y, z), nil
}

func (b bounds) indexUnchecked(x, y, z int) int {
	lx, ly, lz := x-b.start.X, y-b.start.Y, z-b.start.Z
	return (ly*b.size.Z+lz)*b.size.X + lx
}

// checkRange validates an inclusive sub-range for streaming.
func (b bounds) checkRange(min, max Vec3i) error {
	if !b.contains(min.X, min.Y, min.Z) {
		return &BoundsError{Pos: min, Min: b.start, Max: b.end()}
	}
	if !b.contains(max.X, max.Y, max.Z) {
		return &BoundsError{Pos: max, Min: b.start, Max: b.end()}
	}
	if min.X > max.X || min.Y > max.Y || min.Z > max.Z {
		return &BoundsError{Pos: min, Min: b.start, Max: max}
	}
	return nil
}
