package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/go-theft-craft/volume/internal/config"
	"github.com/go-theft-craft/volume/internal/export"
	"github.com/go-theft-craft/volume/internal/metrics"
	"github.com/go-theft-craft/volume/internal/world"
	"github.com/go-theft-craft/volume/pkg/volume"
	"github.com/go-theft-craft/volume/pkg/world/gen"
)

func runFill(args []string) error {
	cfg := config.DefaultConfig()
	fs := flag.NewFlagSet("fill", flag.ContinueOnError)
	path := commonFlags(fs, cfg)
	fs.StringVar(&cfg.Generator, "generator", cfg.Generator, "terrain generator (terrain or flat)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "world seed")
	fs.BoolVar(&cfg.Compress, "compress", cfg.Compress, "wrap the dump in a zstd frame")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "write Prometheus metrics to this textfile")

	var min, max volume.Vec3i
	minFlag, maxFlag := &vecFlag{v: &min}, &vecFlag{v: &max}
	fs.Var(minFlag, "min", "lower corner x,y,z (inclusive)")
	fs.Var(maxFlag, "max", "upper corner x,y,z (inclusive)")
	out := fs.String("o", "", "output dump file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !minFlag.set || !maxFlag.set {
		return errors.New("fill: -min and -max are required")
	}
	if *out == "" {
		return errors.New("fill: -o is required")
	}

	log, err := setup(fs, cfg, *path)
	if err != nil {
		return err
	}
	reg, err := loadRegistry(cfg.Version)
	if err != nil {
		return err
	}

	var g gen.Generator = gen.NewTerrainGenerator(cfg.Seed)
	if cfg.Generator == config.GeneratorFlat {
		g = gen.NewFlatGenerator()
	}

	collector := metrics.New()
	w := world.New(reg, g, volume.WithObserver(collector))

	log.Info("generating region", "min", min, "max", max, "generator", cfg.Generator, "seed", cfg.Seed)
	region, err := w.Region(min, max)
	if err != nil {
		return fmt.Errorf("fill: %w", err)
	}
	log.Debug("sections generated", "count", w.SectionCount())

	if err := export.WriteFile(*out, reg, region, cfg.Compress); err != nil {
		return fmt.Errorf("fill: write %s: %w", *out, err)
	}
	log.Info("region written",
		"file", *out,
		"cells", region.Volume(),
		"palette", region.PaletteKind(),
		"hash", fmt.Sprintf("%016x", region.Hash()),
	)

	if cfg.MetricsFile != "" {
		if err := collector.WriteTextfile(cfg.MetricsFile); err != nil {
			return fmt.Errorf("fill: metrics: %w", err)
		}
		log.Debug("metrics written", "file", cfg.MetricsFile)
	}
	return nil
}
