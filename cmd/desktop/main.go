package main

import (
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/nightsky/internal/config"
	"github.com/tomz197/nightsky/internal/gfx"
	"github.com/tomz197/nightsky/internal/site"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "nightsky",
	})
	if config.GetEnvBool("DEBUG", false) {
		logger.SetLevel(log.DebugLevel)
	}

	width := config.GetEnvInt("WINDOW_WIDTH", 960)
	height := config.GetEnvInt("WINDOW_HEIGHT", 640)
	cfg := site.ConfigFromEnv(site.DefaultConfig())

	game, err := gfx.NewGame(cfg, width, height, logger)
	if err != nil {
		logger.Fatal("Failed to build page", "err", err)
	}
	defer game.Close()

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("Window error", "err", err)
		return
	}
	logger.Debug("Window closed")
}
