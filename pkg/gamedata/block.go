package gamedata

// Block is one entry of a version's block table.
type Block struct {
	ID          int
	Name        string
	DisplayName string
	Hardness    *float64
	StackSize   int
	Diggable    bool
	BoundingBox string
	Transparent bool
	EmitLight   int
	FilterLight int
	Resistance  float64
	Variations  []Variation
}

// Variation names one metadata value of a block.
type Variation struct {
	Metadata    int
	DisplayName string
}

// Metas returns the metadata values the block can take. Blocks without
// declared variations encode orientation, age or level in their metadata, so
// all sixteen values are valid for them.
func (b Block) Metas() []int {
	if len(b.Variations) == 0 {
		metas := make([]int, 16)
		for i := range metas {
			metas[i] = i
		}
		return metas
	}
	metas := make([]int, 0, len(b.Variations))
	for _, v := range b.Variations {
		metas = append(metas, v.Metadata)
	}
	return metas
}
