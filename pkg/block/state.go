// Package block defines block state values and their canonical numbering.
package block

import "fmt"

// State is one voxel's content: a block id plus its 4-bit metadata.
// States are comparable and usable as map keys.
type State struct {
	ID   uint16
	Meta uint8
}

// Air is the empty state and the zero value of State.
var Air = State{}

// Legacy packs the state the way 1.8 chunk sections store it: id<<4 | meta.
func (s State) Legacy() uint16 {
	return s.ID<<4 | uint16(s.Meta&0xF)
}

// FromLegacy unpacks an id<<4 | meta value.
func FromLegacy(v uint16) State {
	return State{ID: v >> 4, Meta: uint8(v & 0xF)}
}

func (s State) IsAir() bool {
	return s == Air
}

func (s State) String() string {
	return fmt.Sprintf("%d:%d", s.ID, s.Meta)
}
