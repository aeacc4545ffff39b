// Command dmd downloads a minecraft-data version and checks that its block
// table loads into a registry. With -install the validated blocks.json is
// copied next to the embedded version data.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	get "github.com/hashicorp/go-getter"

	"github.com/go-theft-craft/volume/pkg/block"
	"github.com/go-theft-craft/volume/pkg/gamedata"
)

func main() {
	var (
		base     = flag.String("base", "https://github.com/PrismarineJS/minecraft-data.git", "base url")
		platform = flag.String("platform", "pc", "platform of schemas")
		ver      = flag.String("version", "1.8", "version of schemas")
		out      = flag.String("o", "./scheme", "output dir path")
		install  = flag.String("install", "", "copy the validated blocks.json to this path")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *out == "" || *platform == "" || *ver == "" {
		log.Error("-o, -platform and -version must not be empty")
		os.Exit(2)
	}

	path := filepath.Join(*out, fmt.Sprintf("%s-%s", *platform, *ver))
	if err := os.RemoveAll(path); err != nil {
		log.Error("clean output dir", "path", path, "error", err)
		os.Exit(1)
	}

	// https://github.com/PrismarineJS/minecraft-data/tree/master/data/pc/1.8
	url := fmt.Sprintf("git::%s//data/%s/%s", *base, *platform, *ver)

	log.Info("downloading data", "url", url, "path", path)
	if err := get.Get(path, url); err != nil {
		log.Error("download", "error", err)
		os.Exit(1)
	}

	blocksPath := filepath.Join(path, "blocks.json")
	reg, err := validate(blocksPath, *platform+"-"+*ver)
	if err != nil {
		log.Error("validate", "file", blocksPath, "error", err)
		os.Exit(1)
	}
	log.Info("block table ok", "states", reg.Len(), "highest_id", reg.HighestID())

	if *install != "" {
		if err := copyFile(*install, blocksPath); err != nil {
			log.Error("install", "error", err)
			os.Exit(1)
		}
		log.Info("installed", "path", *install)
	}
}

func validate(blocksPath, version string) (*block.Registry, error) {
	list, err := gamedata.LoadBlocksFile(blocksPath)
	if err != nil {
		return nil, err
	}
	reg := block.NewRegistry(&gamedata.GameData{Version: version, Blocks: list})
	if !reg.Contains(block.Air) {
		return nil, fmt.Errorf("no air block (id 0, meta 0)")
	}
	return reg, nil
}

func copyFile(dst, src string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
