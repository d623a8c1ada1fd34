package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"picsum/grid/internal/config"
	"picsum/grid/internal/container"

	log "github.com/sirupsen/logrus"
)

func main() {
	log.Info("Starting picsum photo grid...")

	// Load configuration using viper
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	level, err := log.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Invalid log level %q: %v", cfg.Logging.Level, err)
	}
	log.SetLevel(level)
	log.Info("Configuration loaded successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize container with all dependencies
	app, err := container.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	// Run the application
	if err := app.Run(ctx); err != nil {
		log.Fatalf("Application exited with error: %v", err)
	}

	if err := app.Close(); err != nil {
		log.Errorf("Failed to close container: %v", err)
	}

	log.Info("Application finished successfully")
}
