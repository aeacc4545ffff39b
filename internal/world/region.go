package world

import (
	"fmt"

	"github.com/go-theft-craft/volume/pkg/block"
	"github.com/go-theft-craft/volume/pkg/volume"
)

// Region copies the inclusive box [min, max] out of the world into an
// immutable buffer. Sections the box touches are generated first.
func (w *World) Region(min, max volume.Vec3i) (*volume.Immutable, error) {
	if min.Y < 0 || max.Y >= Height {
		return nil, fmt.Errorf("%w: region %v..%v", ErrOutOfWorld, min, max)
	}
	out, err := volume.New(w.reg, min, max.Sub(min).Add(volume.Vec3i{X: 1, Y: 1, Z: 1}))
	if err != nil {
		return nil, fmt.Errorf("region %v..%v: %w", min, max, err)
	}

	lo, hi := sectionOf(min.X, min.Y, min.Z), sectionOf(max.X, max.Y, max.Z)
	for sy := lo.Y; sy <= hi.Y; sy++ {
		for sz := lo.Z; sz <= hi.Z; sz++ {
			for sx := lo.X; sx <= hi.X; sx++ {
				if err := w.copySection(out, SectionPos{sx, sy, sz}, min, max); err != nil {
					return nil, err
				}
			}
		}
	}
	return out.Seal()
}

// copySection copies the part of one section inside [lo, hi] into out.
func (w *World) copySection(out *volume.Mutable, pos SectionPos, lo, hi volume.Vec3i) error {
	s, err := w.section(pos)
	if err != nil {
		return err
	}

	start, end := s.Start(), s.End()
	from := volume.Vec3i{X: max(start.X, lo.X), Y: max(start.Y, lo.Y), Z: max(start.Z, lo.Z)}
	to := volume.Vec3i{X: min(end.X, hi.X), Y: min(end.Y, hi.Y), Z: min(end.Z, hi.Z)}

	w.mu.RLock()
	defer w.mu.RUnlock()
	seq, err := s.BlockStateStream(from, to, volume.StreamOptions{})
	if err != nil {
		return fmt.Errorf("read section %v: %w", pos, err)
	}
	for p, state := range seq {
		if state == block.Air {
			continue
		}
		if err := out.SetBlock(p.X, p.Y, p.Z, state); err != nil {
			return fmt.Errorf("copy %v: %w", p, err)
		}
	}
	return nil
}

// Paste writes every cell of src into the world at src's own position,
// air included.
func (w *World) Paste(src *volume.Immutable) error {
	seq, err := src.BlockStateStream(src.Start(), src.End())
	if err != nil {
		return err
	}
	for p, state := range seq {
		if err := w.SetBlock(p.X, p.Y, p.Z, state); err != nil {
			return fmt.Errorf("paste %v: %w", p, err)
		}
	}
	return nil
}

// Snapshot freezes every generated section and hands it to fn, ordered by
// nothing in particular. The world is read-locked for the whole call, so fn
// must not call back into w.
func (w *World) Snapshot(fn func(SectionPos, *volume.Immutable) error) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for pos, s := range w.sections {
		im, err := s.Freeze()
		if err != nil {
			return fmt.Errorf("snapshot section %v: %w", pos, err)
		}
		if err := fn(pos, im); err != nil {
			return err
		}
	}
	return nil
}
