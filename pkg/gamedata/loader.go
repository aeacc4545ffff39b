package gamedata

import (
	"fmt"
	"sort"
	"sync"
)

var (
	versionsMu sync.RWMutex
	versions   = map[string]func() *GameData{}
)

// Register makes a version loadable by name. It panics if the name is taken,
// the same way database/sql drivers register.
func Register(name string, factory func() *GameData) {
	versionsMu.Lock()
	defer versionsMu.Unlock()

	if factory == nil {
		panic("gamedata: Register factory is nil")
	}
	if _, dup := versions[name]; dup {
		panic("gamedata: Register called twice for version " + name)
	}
	versions[name] = factory
}

func Load(name string) (*GameData, error) {
	versionsMu.RLock()
	f, ok := versions[name]
	versionsMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown version: %s", name)
	}
	gd := f()
	if gd == nil || gd.Blocks == nil {
		return nil, fmt.Errorf("version %s has no block table", name)
	}
	return gd, nil
}

// RegisteredVersions returns the registered version names in sorted order.
func RegisteredVersions() []string {
	versionsMu.RLock()
	defer versionsMu.RUnlock()

	names := make([]string, 0, len(versions))
	for name := range versions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
