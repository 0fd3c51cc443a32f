package main

import (
	"os"

	"github.com/tomz197/missiles/internal/config"
	"github.com/tomz197/missiles/internal/game"
	"github.com/tomz197/missiles/internal/gui"
)

func main() {
	logger := config.NewLogger(os.Stderr, "gui")

	tuning, err := config.TuningFromEnv()
	if err != nil {
		logger.Fatal("failed to load tuning", "err", err)
	}

	if err := gui.Run(game.Options{Tuning: tuning, Logger: logger}); err != nil {
		logger.Fatal("game error", "err", err)
	}
}
