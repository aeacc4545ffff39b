package gamedata

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// rawBlock mirrors one element of minecraft-data's blocks.json.
type rawBlock struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	DisplayName string         `json:"displayName"`
	Hardness    *float64       `json:"hardness"`
	StackSize   int            `json:"stackSize"`
	Diggable    bool           `json:"diggable"`
	BoundingBox string         `json:"boundingBox"`
	Transparent bool           `json:"transparent"`
	EmitLight   int            `json:"emitLight"`
	FilterLight int            `json:"filterLight"`
	Resistance  float64        `json:"resistance"`
	Variations  []rawVariation `json:"variations"`
}

type rawVariation struct {
	Metadata    int    `json:"metadata"`
	DisplayName string `json:"displayName"`
}

// DecodeBlocks reads a minecraft-data blocks.json array.
func DecodeBlocks(r io.Reader) (*BlockList, error) {
	var raw []rawBlock
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode blocks: %w", err)
	}

	blocks := make([]Block, 0, len(raw))
	for _, rb := range raw {
		if rb.Name == "" {
			return nil, fmt.Errorf("decode blocks: block %d has no name", rb.ID)
		}
		if rb.ID < 0 || rb.ID > 0xFFF {
			return nil, fmt.Errorf("decode blocks: block %q id %d out of range", rb.Name, rb.ID)
		}

		b := Block{
			ID:          rb.ID,
			Name:        rb.Name,
			DisplayName: rb.DisplayName,
			Hardness:    rb.Hardness,
			StackSize:   rb.StackSize,
			Diggable:    rb.Diggable,
			BoundingBox: rb.BoundingBox,
			Transparent: rb.Transparent,
			EmitLight:   rb.EmitLight,
			FilterLight: rb.FilterLight,
			Resistance:  rb.Resistance,
		}
		for _, v := range rb.Variations {
			if v.Metadata < 0 || v.Metadata > 15 {
				return nil, fmt.Errorf("decode blocks: block %q variation metadata %d out of range", rb.Name, v.Metadata)
			}
			b.Variations = append(b.Variations, Variation{Metadata: v.Metadata, DisplayName: v.DisplayName})
		}
		blocks = append(blocks, b)
	}
	return NewBlockList(blocks), nil
}

// LoadBlocksFile decodes a blocks.json file from disk.
func LoadBlocksFile(path string) (*BlockList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open blocks file: %w", err)
	}
	defer f.Close()

	return DecodeBlocks(f)
}
