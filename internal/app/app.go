package app

import (
	"database/sql"

	"github.com/vscooter54-cell/VScooter-sub000/internal/config"
	"github.com/vscooter54-cell/VScooter-sub000/internal/shared/connection"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Infra holds the long lived connections shared by every process.
type Infra struct {
	Config *config.Config
	Logger *zap.Logger
	DB     *sql.DB
	Redis  *redis.Client
}

func NewInfra(cfg *config.Config, logger *zap.Logger) (*Infra, error) {
	db, err := connection.ConnectDBWithRetry(cfg.DBURL, cfg.DBRetry)
	if err != nil {
		return nil, err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.RedisPassword, cfg.DBRetry)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Infra{Config: cfg, Logger: logger, DB: db, Redis: rdb}, nil
}

func (i *Infra) Close() {
	if err := i.Redis.Close(); err != nil {
		i.Logger.Warn("close redis", zap.Error(err))
	}
	if err := i.DB.Close(); err != nil {
		i.Logger.Warn("close database", zap.Error(err))
	}
}
