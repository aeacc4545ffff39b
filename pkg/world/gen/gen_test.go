package gen

import (
	"testing"

	"github.com/go-theft-craft/volume/pkg/block"
	pc18 "github.com/go-theft-craft/volume/pkg/gamedata/versions/pc_1_8"
	"github.com/go-theft-craft/volume/pkg/volume"
)

var registry = block.NewRegistry(pc18.New())

func newBox(t *testing.T, start, size volume.Vec3i) *volume.Mutable {
	t.Helper()
	m, err := volume.New(registry, start, size)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func freeze(t *testing.T, m *volume.Mutable) *volume.Immutable {
	t.Helper()
	im, err := m.Freeze()
	if err != nil {
		t.Fatalf("Freeze: %v", err)
	}
	return im
}

func TestFlatGeneratorLayers(t *testing.T) {
	g := NewFlatGenerator()
	m := newBox(t, volume.Vec3i{X: -4, Y: 0, Z: -4}, volume.Vec3i{X: 8, Y: 8, Z: 8})
	if err := g.Fill(m); err != nil {
		t.Fatalf("Fill: %v", err)
	}

	tests := []struct {
		y     int
		state block.State
		name  string
	}{
		{0, bedrock, "bedrock"},
		{1, stone, "stone"},
		{2, stone, "stone"},
		{3, dirt, "dirt"},
		{4, grass, "grass"},
		{5, air, "air"},
		{7, air, "air"},
	}
	for _, tt := range tests {
		got, err := m.GetBlock(-4, tt.y, 3)
		if err != nil {
			t.Fatalf("GetBlock: %v", err)
		}
		if got != tt.state {
			t.Errorf("y=%d: got %v, want %v (%s)", tt.y, got, tt.state, tt.name)
		}
	}
	if h := g.HeightAt(100, -100); h != 4 {
		t.Errorf("HeightAt = %d, want 4", h)
	}
}

func TestFlatGeneratorCustomLayers(t *testing.T) {
	g := NewFlatGenerator(bedrock, sand, sand)
	m := newBox(t, volume.Vec3i{Y: 1}, volume.Vec3i{X: 2, Y: 4, Z: 2})
	if err := g.Fill(m); err != nil {
		t.Fatalf("Fill: %v", err)
	}
	for y, want := range map[int]block.State{1: sand, 2: sand, 3: air, 4: air} {
		if got, _ := m.GetBlock(1, y, 1); got != want {
			t.Errorf("y=%d: got %v, want %v", y, got, want)
		}
	}
}

func TestTerrainGeneratorDeterministic(t *testing.T) {
	start, size := volume.Vec3i{X: 16, Y: 0, Z: -16}, volume.Vec3i{X: 16, Y: 80, Z: 16}

	a := newBox(t, start, size)
	b := newBox(t, start, size)
	if err := NewTerrainGenerator(42).Fill(a); err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if err := NewTerrainGenerator(42).Fill(b); err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if !freeze(t, a).Equal(freeze(t, b)) {
		t.Fatal("same seed produced different terrain")
	}
}

func TestTerrainGeneratorDifferentSeeds(t *testing.T) {
	g1, g2 := NewTerrainGenerator(1), NewTerrainGenerator(2)

	different := false
	for x := 0; x < 256 && !different; x += 7 {
		for z := 0; z < 256; z += 7 {
			if g1.HeightAt(x, z) != g2.HeightAt(x, z) {
				different = true
				break
			}
		}
	}
	if !different {
		t.Error("different seeds should produce different terrain")
	}
}

// aboveGround lists what may sit directly on top of a land column.
var aboveGround = map[block.State]bool{
	air: true, snow: true, tallGrass: true, dandelion: true, deadBush: true, cactus: true,
	oakLog: true, spruceLog: true, birchLog: true,
	oakLeaves: true, spruceLeaves: true, birchLeaves: true,
}

func TestTerrainGeneratorColumns(t *testing.T) {
	g := NewTerrainGenerator(12345)
	m := newBox(t, volume.Vec3i{}, volume.Vec3i{X: 16, Y: 128, Z: 16})
	if err := g.Fill(m); err != nil {
		t.Fatalf("Fill: %v", err)
	}

	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			if got, _ := m.GetBlock(x, 0, z); got != bedrock {
				t.Fatalf("(%d,0,%d) = %v, want bedrock", x, z, got)
			}

			h := g.HeightAt(x, z)
			if h < minHeight || h > maxHeight {
				t.Fatalf("HeightAt(%d,%d) = %d", x, z, h)
			}
			if h >= 127 {
				continue
			}
			if top, _ := m.GetBlock(x, h, z); top == air || top == water {
				t.Errorf("(%d,%d,%d) top of column is %v", x, h, z, top)
			}
			above, _ := m.GetBlock(x, h+1, z)
			switch {
			case h+1 <= seaLevel && above != water:
				t.Errorf("(%d,%d,%d) = %v, want water below sea level", x, h+1, z, above)
			case h+1 > seaLevel && !aboveGround[above]:
				t.Errorf("(%d,%d,%d) = %v, want air or vegetation above ground", x, h+1, z, above)
			}
		}
	}
}

// Filling a box in two halves gives the same blocks as filling it at once.
func TestTerrainGeneratorIndependentOfBox(t *testing.T) {
	g := NewTerrainGenerator(7)
	whole := newBox(t, volume.Vec3i{X: -8, Y: 40, Z: -8}, volume.Vec3i{X: 16, Y: 48, Z: 16})
	low := newBox(t, volume.Vec3i{X: -8, Y: 40, Z: -8}, volume.Vec3i{X: 16, Y: 24, Z: 16})
	high := newBox(t, volume.Vec3i{X: -8, Y: 64, Z: -8}, volume.Vec3i{X: 16, Y: 24, Z: 16})
	for _, m := range []*volume.Mutable{whole, low, high} {
		if err := g.Fill(m); err != nil {
			t.Fatalf("Fill: %v", err)
		}
	}

	seq, err := whole.BlockStateStream(whole.Start(), whole.End(), volume.StreamOptions{})
	if err != nil {
		t.Fatalf("BlockStateStream: %v", err)
	}
	for p, want := range seq {
		half := low
		if p.Y >= 64 {
			half = high
		}
		got, err := half.GetBlock(p.X, p.Y, p.Z)
		if err != nil {
			t.Fatalf("GetBlock: %v", err)
		}
		if got != want {
			t.Fatalf("%v: half has %v, whole has %v", p, got, want)
		}
	}
}

// Features stay inside their chunk, so splitting a box across a chunk
// border gives the same blocks as filling it whole.
func TestTerrainGeneratorIndependentOfChunkSplit(t *testing.T) {
	g := NewTerrainGenerator(99)
	whole := newBox(t, volume.Vec3i{X: -8, Y: 30, Z: 4}, volume.Vec3i{X: 16, Y: 64, Z: 8})
	west := newBox(t, volume.Vec3i{X: -8, Y: 30, Z: 4}, volume.Vec3i{X: 8, Y: 64, Z: 8})
	east := newBox(t, volume.Vec3i{X: 0, Y: 30, Z: 4}, volume.Vec3i{X: 8, Y: 64, Z: 8})
	for _, m := range []*volume.Mutable{whole, west, east} {
		if err := g.Fill(m); err != nil {
			t.Fatalf("Fill: %v", err)
		}
	}

	seq, err := whole.BlockStateStream(whole.Start(), whole.End(), volume.StreamOptions{})
	if err != nil {
		t.Fatalf("BlockStateStream: %v", err)
	}
	for p, want := range seq {
		half := west
		if p.X >= 0 {
			half = east
		}
		if got, _ := half.GetBlock(p.X, p.Y, p.Z); got != want {
			t.Fatalf("%v: half has %v, whole has %v", p, got, want)
		}
	}
}

func TestTerrainGeneratorPlacesOres(t *testing.T) {
	g := NewTerrainGenerator(12345)
	m := newBox(t, volume.Vec3i{}, volume.Vec3i{X: 16, Y: 128, Z: 16})
	if err := g.Fill(m); err != nil {
		t.Fatalf("Fill: %v", err)
	}

	counts := make(map[block.State]int)
	seq, err := m.BlockStateStream(m.Start(), m.End(), volume.StreamOptions{})
	if err != nil {
		t.Fatalf("BlockStateStream: %v", err)
	}
	for p, s := range seq {
		counts[s]++
		if s == coalOre || s == ironOre {
			if h := g.HeightAt(p.X, p.Z); p.Y >= h {
				t.Errorf("%v: ore at or above the surface (height %d)", p, h)
			}
		}
	}
	for _, ore := range []block.State{coalOre, ironOre} {
		if counts[ore] == 0 {
			t.Errorf("no %v in the chunk", ore)
		}
	}
}

func TestTerrainGeneratorGrowsTrees(t *testing.T) {
	g := NewTerrainGenerator(12345)

	logs := 0
	for cx := -40; cx <= 40; cx += 4 {
		for cz := -40; cz <= 40; cz += 4 {
			c := g.chunk(cx, cz)
			for p, s := range c.placed {
				if s.ID != oakLog.ID {
					continue
				}
				logs++
				if h := c.height(p.X, p.Z); p.Y <= h {
					t.Fatalf("chunk (%d,%d) %v: log at or below the surface (height %d)", cx, cz, p, h)
				}
			}
		}
	}
	if logs == 0 {
		t.Fatal("no trees in 441 chunks")
	}
}

func TestChunkRNGDeterministic(t *testing.T) {
	a, b := newChunkRNG(1, 3, -4, 500), newChunkRNG(1, 3, -4, 500)
	other := newChunkRNG(1, 3, -4, 600)

	same := true
	for range 32 {
		va, vb, vo := a.intn(1000), b.intn(1000), other.intn(1000)
		if va != vb {
			t.Fatalf("same seed diverged: %d vs %d", va, vb)
		}
		if va < 0 || va >= 1000 {
			t.Fatalf("intn(1000) = %d", va)
		}
		same = same && va == vo
	}
	if same {
		t.Error("different salts gave the same stream")
	}
}

func TestBiomeString(t *testing.T) {
	if BiomeHills.String() != "extreme_hills" {
		t.Errorf("BiomeHills = %q", BiomeHills.String())
	}
	if Biome(200).String() != "Biome(200)" {
		t.Errorf("unknown biome = %q", Biome(200).String())
	}
}

type failingTarget struct{ *volume.Mutable }

func (failingTarget) SetBlock(int, int, int, block.State) error {
	return volume.ErrSealed
}

func TestFillReportsTargetErrors(t *testing.T) {
	m := newBox(t, volume.Vec3i{}, volume.Vec3i{X: 1, Y: 1, Z: 1})
	err := NewFlatGenerator().Fill(failingTarget{m})
	if err == nil {
		t.Fatal("expected an error from the target")
	}
}
