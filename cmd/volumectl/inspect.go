package main

import (
	"cmp"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/go-theft-craft/volume/internal/config"
	"github.com/go-theft-craft/volume/internal/export"
	"github.com/go-theft-craft/volume/pkg/block"
	"github.com/go-theft-craft/volume/pkg/volume"
)

func runInspect(args []string) error {
	cfg := config.DefaultConfig()
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	path := commonFlags(fs, cfg)
	in := fs.String("i", "", "dump file to read")
	top := fs.Int("top", 10, "number of most common states to list")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errors.New("inspect: -i is required")
	}

	log, err := setup(fs, cfg, *path)
	if err != nil {
		return err
	}
	reg, err := loadRegistry(cfg.Version)
	if err != nil {
		return err
	}

	m, err := export.ReadFile(*in, reg)
	if err != nil {
		return fmt.Errorf("inspect: %w", err)
	}
	im, err := m.Seal()
	if err != nil {
		return err
	}
	log.Debug("dump verified", "file", *in)

	s, err := summarize(im)
	if err != nil {
		return err
	}
	s.print(os.Stdout, reg, *top)
	return nil
}

type stateCount struct {
	state block.State
	n     int
}

type summary struct {
	im     *volume.Immutable
	counts []stateCount
	fluids map[block.FluidType]int
}

func summarize(im *volume.Immutable) (*summary, error) {
	seq, err := im.BlockStateStream(im.Start(), im.End())
	if err != nil {
		return nil, err
	}

	byState := map[block.State]int{}
	fluids := map[block.FluidType]int{}
	for _, s := range seq {
		byState[s]++
		if f := s.Fluid(); f.IsSource() {
			fluids[f.Type]++
		}
	}

	counts := make([]stateCount, 0, len(byState))
	for s, n := range byState {
		counts = append(counts, stateCount{s, n})
	}
	slices.SortFunc(counts, func(a, b stateCount) int {
		if c := cmp.Compare(b.n, a.n); c != 0 {
			return c
		}
		return cmp.Compare(a.state.Legacy(), b.state.Legacy())
	})
	return &summary{im: im, counts: counts, fluids: fluids}, nil
}

func (s *summary) print(w io.Writer, reg *block.Registry, top int) {
	im := s.im
	fmt.Fprintf(w, "box:      %v .. %v (%d cells)\n", im.Start(), im.End(), im.Volume())
	fmt.Fprintf(w, "palette:  %v, highest id %d\n", im.PaletteKind(), im.HighestID())
	fmt.Fprintf(w, "states:   %d distinct\n", len(s.counts))
	fmt.Fprintf(w, "sources:  %d water, %d lava\n", s.fluids[block.FluidWater], s.fluids[block.FluidLava])
	fmt.Fprintf(w, "hash:     %016x\n", im.Hash())

	for i, c := range s.counts {
		if i == top {
			fmt.Fprintf(w, "  ... %d more\n", len(s.counts)-top)
			break
		}
		fmt.Fprintf(w, "  %-24s %8d  %5.1f%%\n", reg.Name(c.state), c.n, 100*float64(c.n)/float64(im.Volume()))
	}
}
