package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"folio3d/internal/config"
	"folio3d/internal/game"
	"folio3d/internal/prefs"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "scene configuration file")
	section := flag.Int("section", -1, "section to open (default: last visited)")
	flag.Parse()

	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Config: %v", err)
	}

	store, err := prefs.Open()
	if err != nil {
		log.Printf("[Prefs] Warning: %v (visits will not be saved)", err)
	}

	game.New(cfg, store, *section).Run()
}
