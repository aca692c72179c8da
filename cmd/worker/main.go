package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/vscooter54-cell/VScooter-sub000/internal/app"
	"github.com/vscooter54-cell/VScooter-sub000/internal/config"
	"github.com/vscooter54-cell/VScooter-sub000/internal/pkg/logger"

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	infra, err := app.NewInfra(cfg, l)
	if err != nil {
		l.Fatal("infrastructure", zap.Error(err))
	}
	defer infra.Close()

	if err := app.RunWorker(ctx, infra); err != nil {
		l.Fatal("worker stopped", zap.Error(err))
	}
}
