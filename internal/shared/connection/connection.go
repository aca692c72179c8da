package connection

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var retryDelay = 5 * time.Second

func ConnectDBWithRetry(dsn string, maxRetries int) (*sql.DB, error) {
	var db *sql.DB
	var err error

	for i := 1; i <= maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err == nil {
			err = db.Ping()
			if err == nil {
				zap.L().Info("connected to database")
				return db, nil
			}
			_ = db.Close()
		}

		zap.L().Warn("database connection failed",
			zap.Int("attempt", i),
			zap.Int("max_retries", maxRetries),
			zap.Error(err),
		)
		time.Sleep(retryDelay)
	}

	return nil, fmt.Errorf("connect database: %w", err)
}

func ConnectRedisWithRetry(addr, password string, maxRetries int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	var err error
	for i := 1; i <= maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err = rdb.Ping(ctx).Err()
		cancel()
		if err == nil {
			zap.L().Info("connected to redis")
			return rdb, nil
		}

		zap.L().Warn("redis connection failed",
			zap.Int("attempt", i),
			zap.Int("max_retries", maxRetries),
			zap.Error(err),
		)
		time.Sleep(retryDelay)
	}

	_ = rdb.Close()
	return nil, fmt.Errorf("connect redis: %w", err)
}

func ConnectKafkaWithRetry(broker, topic string, maxRetries int) (*kafka.Writer, error) {
	var err error
	for i := 1; i <= maxRetries; i++ {
		var conn *kafka.Conn
		conn, err = kafka.Dial("tcp", broker)
		if err == nil {
			conn.Close()
			zap.L().Info("connected to kafka", zap.String("topic", topic))
			return &kafka.Writer{
				Addr:     kafka.TCP(broker),
				Topic:    topic,
				Balancer: &kafka.LeastBytes{},
			}, nil
		}

		zap.L().Warn("kafka connection failed",
			zap.Int("attempt", i),
			zap.Int("max_retries", maxRetries),
			zap.Error(err),
		)
		time.Sleep(retryDelay)
	}

	return nil, fmt.Errorf("connect kafka: %w", err)
}
