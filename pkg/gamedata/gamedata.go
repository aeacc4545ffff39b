package gamedata

// GameData is the per-version data the volume tooling needs.
type GameData struct {
	Version string
	Blocks  BlockRegistry
}
