package pc_1_8_test

import (
	"testing"

	"github.com/go-theft-craft/volume/pkg/gamedata"
	pc18 "github.com/go-theft-craft/volume/pkg/gamedata/versions/pc_1_8"
)

func newGameData(t *testing.T) *gamedata.GameData {
	t.Helper()
	gd := pc18.New()
	if gd == nil {
		t.Fatal("New() returned nil")
	}
	return gd
}

func TestInitRegistration(t *testing.T) {
	gd, err := gamedata.Load("pc-1.8")
	if err != nil {
		t.Fatalf("pc-1.8 should be registered via init(), got error: %v", err)
	}
	if gd == nil {
		t.Fatal("expected non-nil GameData from Load")
	}
	if gd.Version != pc18.Version {
		t.Errorf("Version = %q, want %q", gd.Version, pc18.Version)
	}
}

func TestBlocks_ByID(t *testing.T) {
	gd := newGameData(t)

	stone, ok := gd.Blocks.ByID(1)
	if !ok {
		t.Fatal("expected to find block with ID 1 (stone)")
	}
	if stone.Name != "stone" {
		t.Errorf("expected name 'stone', got %q", stone.Name)
	}
	if stone.DisplayName != "Stone" {
		t.Errorf("expected display name 'Stone', got %q", stone.DisplayName)
	}
	if stone.Hardness == nil || *stone.Hardness != 1.5 {
		t.Errorf("expected hardness 1.5, got %v", stone.Hardness)
	}
	if stone.StackSize != 64 {
		t.Errorf("expected stack size 64, got %d", stone.StackSize)
	}
	if got := len(stone.Variations); got != 7 {
		t.Errorf("expected 7 stone variations, got %d", got)
	}
}

func TestBlocks_ByName(t *testing.T) {
	gd := newGameData(t)

	air, ok := gd.Blocks.ByName("air")
	if !ok {
		t.Fatal("expected to find block 'air'")
	}
	if air.ID != 0 {
		t.Errorf("expected air ID 0, got %d", air.ID)
	}
	if air.Transparent != true {
		t.Error("expected air to be transparent")
	}

	water, ok := gd.Blocks.ByName("water")
	if !ok {
		t.Fatal("expected to find block 'water'")
	}
	if water.ID != 9 {
		t.Errorf("expected water ID 9, got %d", water.ID)
	}
}

func TestBlocks_All(t *testing.T) {
	gd := newGameData(t)

	all := gd.Blocks.All()
	if len(all) != 198 {
		t.Fatalf("expected 198 blocks, got %d", len(all))
	}
	for i, b := range all {
		if b.ID != i {
			t.Fatalf("block %d has id %d, want contiguous ids from 0", i, b.ID)
		}
	}
	if last := all[len(all)-1]; last.Name != "dark_oak_door" {
		t.Errorf("expected last block dark_oak_door, got %q", last.Name)
	}
}

func TestBlocks_NotFound(t *testing.T) {
	gd := newGameData(t)

	if _, ok := gd.Blocks.ByID(99999); ok {
		t.Error("expected block 99999 to be missing")
	}
	if _, ok := gd.Blocks.ByName("nonexistent"); ok {
		t.Error("expected block 'nonexistent' to be missing")
	}
}

func TestNewSharesDecodedTable(t *testing.T) {
	a := newGameData(t)
	b := newGameData(t)
	if a.Blocks != b.Blocks {
		t.Error("expected the decoded block table to be shared between calls")
	}
}
