package main

import (
	"context"
	"log"

	"github.com/vscooter54-cell/VScooter-sub000/internal/config"
	"github.com/vscooter54-cell/VScooter-sub000/internal/pkg/logger"
	"github.com/vscooter54-cell/VScooter-sub000/internal/shared/connection"
	"github.com/vscooter54-cell/VScooter-sub000/internal/shared/database/seed"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	l, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatal(err)
	}
	defer l.Sync()

	db, err := connection.ConnectDBWithRetry(cfg.DBURL, cfg.DBRetry)
	if err != nil {
		l.Fatal("database", zap.Error(err))
	}
	defer db.Close()

	if err := seed.Run(context.Background(), db, l); err != nil {
		l.Fatal("seed failed", zap.Error(err))
	}
	l.Info("seed completed")
}
