package block

const (
	idFlowingWater = 8
	idWater        = 9
	idFlowingLava  = 10
	idLava         = 11
)

type FluidType uint8

const (
	FluidNone FluidType = iota
	FluidWater
	FluidLava
)

func (t FluidType) String() string {
	switch t {
	case FluidWater:
		return "water"
	case FluidLava:
		return "lava"
	default:
		return "none"
	}
}

// Fluid is the liquid content derived from a block state.
// Level 0 is a source block; higher levels are further from the source.
type Fluid struct {
	Type    FluidType
	Level   uint8
	Falling bool
}

func (f Fluid) IsEmpty() bool {
	return f.Type == FluidNone
}

func (f Fluid) IsSource() bool {
	return f.Type != FluidNone && f.Level == 0 && !f.Falling
}

// Fluid derives the fluid held by s. Metadata bits 0-2 carry the level and
// bit 3 marks falling liquid.
func (s State) Fluid() Fluid {
	var t FluidType
	switch s.ID {
	case idFlowingWater, idWater:
		t = FluidWater
	case idFlowingLava, idLava:
		t = FluidLava
	default:
		return Fluid{}
	}
	return Fluid{
		Type:    t,
		Level:   s.Meta & 0x7,
		Falling: s.Meta&0x8 != 0,
	}
}
