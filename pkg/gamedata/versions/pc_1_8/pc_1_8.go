// Package pc_1_8 embeds the block table of Minecraft PC 1.8 and registers it
// as version "pc-1.8".
package pc_1_8

import (
	"bytes"
	_ "embed"
	"sync"

	"github.com/go-theft-craft/volume/pkg/gamedata"
)

const Version = "pc-1.8"

//go:embed blocks.json
var blocksJSON []byte

var (
	once   sync.Once
	blocks *gamedata.BlockList
)

func init() {
	gamedata.Register(Version, New)
}

// New returns the 1.8 game data. The block table is decoded once and shared;
// it is never mutated after decoding.
func New() *gamedata.GameData {
	once.Do(func() {
		list, err := gamedata.DecodeBlocks(bytes.NewReader(blocksJSON))
		if err != nil {
			panic("pc_1_8: embedded blocks.json: " + err.Error())
		}
		blocks = list
	})
	return &gamedata.GameData{Version: Version, Blocks: blocks}
}
