package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-theft-craft/volume/pkg/volume"
)

// vecFlag parses "x,y,z".
type vecFlag struct {
	v   *volume.Vec3i
	set bool
}

func (f *vecFlag) String() string {
	if f.v == nil {
		return ""
	}
	return fmt.Sprintf("%d,%d,%d", f.v.X, f.v.Y, f.v.Z)
}

func (f *vecFlag) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return fmt.Errorf("want x,y,z, got %q", s)
	}
	var xyz [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return fmt.Errorf("coordinate %q: %w", p, err)
		}
		xyz[i] = n
	}
	*f.v = volume.Vec3i{X: xyz[0], Y: xyz[1], Z: xyz[2]}
	f.set = true
	return nil
}
