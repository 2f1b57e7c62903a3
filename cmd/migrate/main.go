package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/Apurer/go-gin-inventory-server/internal/app/api"
	platformobservability "github.com/Apurer/go-gin-inventory-server/internal/platform/observability"
)

func main() {
	_ = godotenv.Load()

	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := platformobservability.NewLogger(platformobservability.Settings{
		ServiceName: cfg.ServiceName,
		LogLevel:    cfg.Log.Level,
		LogFormat:   cfg.Log.Format,
	})
	if err := api.Migrate(ctx, cfg, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
}
