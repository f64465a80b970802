// Command matching-service runs the Kafka/Redis-backed host around a
// single-instrument order book: it consumes order requests, matches
// them, publishes trades, and periodically snapshots book state.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kesslerquant/matchbook/internal/config"
	"github.com/kesslerquant/matchbook/internal/engine"
	"github.com/kesslerquant/matchbook/internal/matchpublisher"
	"github.com/kesslerquant/matchbook/internal/orderbook"
	"github.com/kesslerquant/matchbook/internal/orderreader"
	"github.com/kesslerquant/matchbook/internal/snapshot"
	"github.com/kesslerquant/matchbook/pkg/logger"
	"github.com/kesslerquant/matchbook/pkg/redis"
)

var (
	cfg *config.Config
	log *logger.Logger
)

func init() {
	cfg = &config.Config{}
	config.MustLoad(cfg)

	l, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	log = l
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	redisConfig := redis.DefaultConfig()
	redisConfig.Addrs = cfg.RedisConfig.Addrs
	redisConfig.Username = cfg.RedisConfig.Username
	redisConfig.Password = cfg.RedisConfig.Password
	redisConfig.DB = cfg.RedisConfig.DB

	redisClient := redis.NewClient(log, redisConfig)
	if err := redisClient.Connect(ctx); err != nil {
		log.Error(err, logger.NewField("action", "connect_redis"))
		return
	}

	book := orderbook.NewOrderBook(cfg.Instrument)
	reader := orderreader.NewReader(cfg.KafkaConfig, log)
	publisher := matchpublisher.NewPublisher(cfg.KafkaConfig, log)
	snapshots := snapshot.NewStore(redisClient, cfg.Instrument, log)

	eng := engine.New(book, reader, publisher, snapshots, log, cfg)
	eng.Start(ctx)

	log.Info("matching service started", logger.NewField("instrument", cfg.Instrument))

	sig := <-sigChan
	log.Info("received shutdown signal", logger.NewField("signal", sig.String()))
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := eng.Stop(shutdownCtx); err != nil {
		log.Error(err, logger.NewField("action", "stop_engine"))
	}
	if err := redisClient.Disconnect(shutdownCtx); err != nil {
		log.Error(err, logger.NewField("action", "disconnect_redis"))
	}

	log.Info("matching service shutdown complete")
}
