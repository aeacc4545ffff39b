package gamedata

import "sort"

type BlockRegistry interface {
	ByID(id int) (Block, bool)
	ByName(name string) (Block, bool)
	All() []Block
}

// BlockList is a BlockRegistry backed by a slice sorted by ID.
type BlockList struct {
	blocks []Block
	byID   map[int]int
	byName map[string]int
}

// NewBlockList indexes blocks. Later duplicates of an ID or name replace
// earlier ones.
func NewBlockList(blocks []Block) *BlockList {
	sorted := make([]Block, len(blocks))
	copy(sorted, blocks)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	l := &BlockList{
		blocks: sorted,
		byID:   make(map[int]int, len(sorted)),
		byName: make(map[string]int, len(sorted)),
	}
	for i, b := range sorted {
		l.byID[b.ID] = i
		l.byName[b.Name] = i
	}
	return l
}

func (l *BlockList) ByID(id int) (Block, bool) {
	i, ok := l.byID[id]
	if !ok {
		return Block{}, false
	}
	return l.blocks[i], true
}

func (l *BlockList) ByName(name string) (Block, bool) {
	i, ok := l.byName[name]
	if !ok {
		return Block{}, false
	}
	return l.blocks[i], true
}

func (l *BlockList) All() []Block {
	out := make([]Block, len(l.blocks))
	copy(out, l.blocks)
	return out
}
