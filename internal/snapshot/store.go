// Package snapshot persists and restores OrderBook state in Redis.
// Grounded on the teacher's usecase/snapshot store: same
// marshal/Set/Get-then-unmarshal shape, adapted to the decimal-priced
// Snapshot type in types.go instead of the teacher's float64 one.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kesslerquant/matchbook/pkg/errors"
	"github.com/kesslerquant/matchbook/pkg/logger"
	"github.com/kesslerquant/matchbook/pkg/redis"
)

// Store persists a single instrument's Snapshot in Redis, keyed by
// instrument.
type Store struct {
	instrument string
	logger     *logger.Logger
	redis      redis.Client
}

// NewStore creates a Store for instrument backed by redisClient.
func NewStore(redisClient redis.Client, instrument string, log *logger.Logger) *Store {
	return &Store{
		instrument: instrument,
		redis:      redisClient,
		logger:     log,
	}
}

// Save serializes snap and stores it under this store's instrument
// key, overwriting whatever was there.
func (s *Store) Save(ctx context.Context, snap *Snapshot) error {
	s.logger.InfoContext(ctx, fmt.Sprintf("storing snapshot for %s", s.instrument),
		logger.Field{Key: "instrument", Value: s.instrument},
		logger.Field{Key: "orders", Value: len(snap.Orders)},
	)

	buf, err := json.Marshal(snap)
	if err != nil {
		return errors.NewErrorDetails("failed to marshal snapshot", string(errors.GeneralInternalServerError), "snapshot")
	}

	if err := s.redis.Set(ctx, s.instrument, buf, 0); err != nil {
		s.logger.ErrorContext(ctx, err,
			logger.Field{Key: "instrument", Value: s.instrument},
		)
		return err
	}
	return nil
}

// Load fetches and deserializes the snapshot stored for this
// instrument, or returns (nil, nil) if none has been stored yet.
func (s *Store) Load(ctx context.Context) (*Snapshot, error) {
	data, err := s.redis.Get(ctx, s.instrument)
	if err != nil {
		s.logger.ErrorContext(ctx, err,
			logger.Field{Key: "instrument", Value: s.instrument},
		)
		return nil, err
	}
	if data == "" {
		return nil, nil
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, errors.NewErrorDetails("failed to unmarshal snapshot", string(errors.GeneralInternalServerError), "snapshot")
	}
	return &snap, nil
}
