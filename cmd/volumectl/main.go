// Command volumectl generates block volumes into dump files and inspects
// them.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-theft-craft/volume/internal/config"
	"github.com/go-theft-craft/volume/pkg/block"
	"github.com/go-theft-craft/volume/pkg/gamedata"
	_ "github.com/go-theft-craft/volume/pkg/gamedata/versions/pc_1_8"
)

func usage() {
	fmt.Fprint(os.Stderr, `usage: volumectl <command> [flags]

commands:
  fill     generate a region and write it to a dump file
  inspect  read a dump file, verify it and print a summary

Run "volumectl <command> -h" for the flags of a command.
`)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "fill":
		err = runFill(args)
	case "inspect":
		err = runInspect(args)
	case "-h", "-help", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "volumectl: unknown command %q\n", cmd)
		usage()
		os.Exit(2)
	}
	if err != nil {
		slog.Error("volumectl failed", "error", err)
		os.Exit(1)
	}
}

// commonFlags registers the flags shared by every command on fs.
func commonFlags(fs *flag.FlagSet, cfg *config.Config) *string {
	path := fs.String("config", "", "YAML config file")
	fs.StringVar(&cfg.Version, "version", cfg.Version, "game data version")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	return path
}

// setup merges the config file under the explicitly set flags and installs
// the logger.
func setup(fs *flag.FlagSet, cfg *config.Config, path string) (*slog.Logger, error) {
	if path != "" {
		fromFile, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		explicit := map[string]bool{}
		fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		config.Merge(cfg, fromFile, explicit)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, _ := cfg.Level()
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)
	return log, nil
}

func loadRegistry(version string) (*block.Registry, error) {
	gd, err := gamedata.Load(version)
	if err != nil {
		return nil, fmt.Errorf("%w (known: %v)", err, gamedata.RegisteredVersions())
	}
	return block.NewRegistry(gd), nil
}
