package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/leonelquinteros/gotext"

	"worldmap/pkg/engine/input"
	"worldmap/pkg/viewer/assets"
	"worldmap/pkg/viewer/config"
	"worldmap/pkg/viewer/renderer"
	"worldmap/pkg/viewer/renderer/ebiten"
	"worldmap/pkg/viewer/world"
)

func initGettext(cfg *config.Config) {
	gotext.Configure(cfg.LocalesDir, cfg.Language, "default")
}

func main() {
	configPath := flag.String("config", "", "JSON config file")
	zoom := flag.Int("zoom", 0, "initial zoom level (for developer testing)")
	assetDir := flag.String("assets", ".", "directory containing the asset root")
	dataFile := flag.String("data", "", "JSON file with locations and quests")
	showKeys := flag.Bool("keys", false, "print the key bindings and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	if *zoom != 0 {
		cfg.InitialZoomLevel = *zoom
	}
	if *dataFile != "" {
		cfg.DataFile = *dataFile
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Error: %v", err)
	}

	if err := input.ApplyBindings(cfg.KeyBindings); err != nil {
		log.Fatalf("Error: %v", err)
	}
	if *showKeys {
		for _, line := range input.DescribeBindings() {
			fmt.Println(line)
		}
		return
	}

	initGettext(cfg)

	data, err := world.LoadOrDefault(cfg.DataFile)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	fetcher := assets.NewFetcher(cfg.TileBaseURL, *assetDir)
	if cfg.TileBaseURL != "" {
		log.Printf("Loading assets from %s", cfg.TileBaseURL)
	}

	renderer.SetRenderer(ebiten.New(cfg, fetcher, data))
	if err := renderer.Run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
