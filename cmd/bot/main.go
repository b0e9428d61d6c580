package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pinkslip-racing/pinkslip/internal/app"
	"github.com/pinkslip-racing/pinkslip/internal/config"
	"github.com/pinkslip-racing/pinkslip/internal/logging"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// Initialize structured logging
	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	if err := cfg.Validate(); err != nil {
		logging.Fatal("Invalid configuration", "error", err.Error())
	}

	logging.Info("Pinkslip starting up",
		"environment", cfg.AppEnv,
		"db_driver", cfg.DBDriver,
		"twitch_enabled", cfg.TwitchEnabled(),
		"redis_enabled", cfg.RedisEnabled(),
		"timestamp", time.Now().Format(time.RFC3339),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		logging.Fatal("Failed to initialize application", "error", err.Error())
	}
	defer application.Close()

	if err := application.Run(ctx); err != nil {
		logging.Error("Pinkslip stopped with error", "error", err.Error())
		return
	}
	logging.Info("Pinkslip shut down cleanly")
}
