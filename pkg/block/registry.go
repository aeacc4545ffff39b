package block

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-theft-craft/volume/pkg/gamedata"
)

// Registry numbers every known block state with its canonical id, which is
// the state's Legacy value. It is immutable after construction and safe for
// concurrent use.
type Registry struct {
	version string
	known   map[State]struct{}
	names   map[uint16]string
	ids     map[string]uint16
	highest uint32
	count   int
}

// NewRegistry builds a registry from a version's block table.
func NewRegistry(gd *gamedata.GameData) *Registry {
	r := &Registry{
		version: gd.Version,
		known:   make(map[State]struct{}),
		names:   make(map[uint16]string),
		ids:     make(map[string]uint16),
	}
	for _, b := range gd.Blocks.All() {
		id := uint16(b.ID)
		r.names[id] = b.Name
		r.ids[b.Name] = id
		for _, meta := range b.Metas() {
			s := State{ID: id, Meta: uint8(meta)}
			if _, dup := r.known[s]; dup {
				continue
			}
			r.known[s] = struct{}{}
			r.count++
			if c := uint32(s.Legacy()); c > r.highest {
				r.highest = c
			}
		}
	}
	return r
}

func (r *Registry) Version() string {
	return r.version
}

// ID returns the canonical id of s, if s is a known state.
func (r *Registry) ID(s State) (uint32, bool) {
	if _, ok := r.known[s]; !ok {
		return 0, false
	}
	return uint32(s.Legacy()), true
}

// State returns the state numbered id, if any.
func (r *Registry) State(id uint32) (State, bool) {
	if id > 0xFFFF {
		return Air, false
	}
	s := FromLegacy(uint16(id))
	if _, ok := r.known[s]; !ok {
		return Air, false
	}
	return s, true
}

func (r *Registry) Contains(s State) bool {
	_, ok := r.known[s]
	return ok
}

// HighestID is the largest canonical id in use.
func (r *Registry) HighestID() uint32 {
	return r.highest
}

// Len returns the number of known states.
func (r *Registry) Len() int {
	return r.count
}

// Name formats s as "<block name>:<meta>". Unknown block ids fall back to the
// numeric form.
func (r *Registry) Name(s State) string {
	name, ok := r.names[s.ID]
	if !ok {
		name = strconv.Itoa(int(s.ID))
	}
	return name + ":" + strconv.Itoa(int(s.Meta))
}

// Parse is the inverse of Name. A missing ":<meta>" suffix means meta 0.
func (r *Registry) Parse(name string) (State, error) {
	blockName, metaStr, hasMeta := strings.Cut(name, ":")

	var meta int
	if hasMeta {
		m, err := strconv.Atoi(metaStr)
		if err != nil || m < 0 || m > 15 {
			return Air, fmt.Errorf("parse state %q: bad metadata", name)
		}
		meta = m
	}

	id, ok := r.ids[blockName]
	if !ok {
		n, err := strconv.Atoi(blockName)
		if err != nil || n < 0 || n > 0xFFF {
			return Air, fmt.Errorf("parse state %q: unknown block", name)
		}
		id = uint16(n)
	}
	return State{ID: id, Meta: uint8(meta)}, nil
}
