package app

import (
	"context"

	"github.com/vscooter54-cell/VScooter-sub000/internal/bootstrap"
	"github.com/vscooter54-cell/VScooter-sub000/internal/messaging/kafka/producer"
	"github.com/vscooter54-cell/VScooter-sub000/internal/middleware"
	"github.com/vscooter54-cell/VScooter-sub000/internal/outbox"
	"github.com/vscooter54-cell/VScooter-sub000/internal/shared/connection"
	"github.com/vscooter54-cell/VScooter-sub000/internal/shared/database/dbgen"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func NewRouter(infra *Infra) *gin.Engine {
	if infra.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(infra.Logger.Named("http")),
		gin.Recovery(),
	)
	return r
}

// RunAPI serves HTTP and relays the outbox in the same process until ctx ends.
func RunAPI(ctx context.Context, infra *Infra) error {
	cfg := infra.Config

	m, err := buildModules(infra, true)
	if err != nil {
		return err
	}

	router := NewRouter(infra)
	registerRoutes(router, infra, m)

	writer, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, cfg.KafkaTopic, cfg.DBRetry)
	if err != nil {
		return err
	}
	defer writer.Close()

	worker := producer.NewWorker(infra.DB, outbox.NewRepository(dbgen.New(infra.DB)), writer, producer.Config{
		Interval:  cfg.OutboxInterval,
		BatchSize: cfg.OutboxBatchSize,
	}, infra.Logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return bootstrap.StartHTTPServer(gctx, router, bootstrap.ServerConfig{
			Port:         cfg.Port,
			ReadTimeout:  cfg.HTTPReadTimeout,
			WriteTimeout: cfg.HTTPWriteTimeout,
			IdleTimeout:  cfg.HTTPIdleTimeout,
		})
	})
	g.Go(func() error {
		return worker.Run(gctx)
	})

	infra.Logger.Info("api started", zap.String("port", cfg.Port))
	return g.Wait()
}
