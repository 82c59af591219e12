package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/automoto/composite/server/core"
	"github.com/automoto/composite/shared/gamestate"
)

func main() {
	cfg, err := core.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	flag.UintVar(&cfg.Port, "port", cfg.Port, "Server port")
	flag.IntVar(&cfg.TickRate, "tickrate", cfg.TickRate, "Simulation ticks per second")
	flag.StringVar(&cfg.Level, "level", cfg.Level, "Default level for new sessions")
	flag.StringVar(&cfg.LevelsDir, "levels", cfg.LevelsDir, "Directory of .tmx levels (empty = embedded)")
	flag.StringVar(&cfg.Version, "version", cfg.Version, "Required client version (empty = accept any)")
	flag.BoolVar(&cfg.Dev, "dev", cfg.Dev, "Trace applied inputs and dropped packets")
	flag.BoolVar(&cfg.FreeMovement, "free", cfg.FreeMovement, "Disable gravity for debugging levels")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	catalog, err := core.LoadLevelCatalog(cfg.LevelsDir)
	if err != nil {
		log.Fatalf("Failed to load levels: %v", err)
	}
	if _, err := catalog.Get(gamestate.LevelID(cfg.Level)); err != nil {
		log.Fatalf("Default level: %v", err)
	}

	server := core.NewServer(cfg, catalog)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		server.Stop()
		os.Exit(0)
	}()

	log.Printf("Starting composite server on port %d (tick rate: %d/s, level: %s, version: %q)",
		cfg.Port, cfg.TickRate, cfg.Level, cfg.Version)
	if err := server.Start(cfg.Port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
