// Package config loads this service's configuration from the
// environment (and an optional .env file), the way the rest of this
// repository's ambient stack is done: caarlos0/env for struct tag
// parsing, godotenv for local development overrides.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MustLoad loads cfg from the environment and panics on failure. Used
// by cmd/matching-service at process startup, where there is no
// sensible recovery from a missing required variable.
func MustLoad[T any](cfg T) {
	_ = godotenv.Load()
	env.Must(cfg, env.Parse(cfg))
}

// Load loads cfg from the environment, returning any parse error.
func Load[T any](cfg T) error {
	_ = godotenv.Load()
	return env.Parse(cfg)
}

// Config holds the configuration for the matching service process.
type Config struct {
	Instrument string `env:"INSTRUMENT,required"`

	KafkaConfig  `envPrefix:"KAFKA_"`
	RedisConfig  `envPrefix:"REDIS_"`
	EngineConfig `envPrefix:"ENGINE_"`
}

// KafkaConfig holds the configuration shared by the order reader and
// the match publisher. Each uses its own topic; the brokers and
// consumer group are shared.
type KafkaConfig struct {
	OrderTopic string   `env:"ORDER_TOPIC,required"`
	TradeTopic string   `env:"TRADE_TOPIC,required"`
	GroupID    string   `env:"GROUP_ID" envDefault:"matchbook"`
	Brokers    []string `env:"BROKERS,required"`
}

// RedisConfig holds the configuration for the snapshot store's Redis
// client.
type RedisConfig struct {
	Addrs    []string `env:"ADDRS,required"`
	Password string   `env:"PASSWORD" envDefault:""`
	Username string   `env:"USERNAME" envDefault:""`
	DB       int      `env:"DB" envDefault:"0"`
}

// EngineConfig tunes the periodic snapshot cadence.
type EngineConfig struct {
	SnapshotInterval time.Duration `env:"SNAPSHOT_INTERVAL" envDefault:"30s"`
	// SnapshotTradeDelta is the minimum number of trades the engine
	// must have processed since the last snapshot before it takes
	// another one, mirroring the offset-delta throttle the teacher's
	// Kafka-offset-based engine uses.
	SnapshotTradeDelta int64 `env:"SNAPSHOT_TRADE_DELTA" envDefault:"1000"`
}
