package main

import (
	"os"

	"golang.org/x/term"

	"github.com/vovakirdan/tilt/internal/core"
	"github.com/vovakirdan/tilt/internal/storage"
)

// runtimeConfig builds the runtime config from the terminal size and the
// global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the score database, or returns nil with a warning so
// games still run without it.
func openStore() *storage.Store {
	store, err := storage.Open(dbPath())
	if err != nil {
		logger.Warn("could not open scores database", "path", dbPath(), "error", err)
		return nil
	}
	return store
}
