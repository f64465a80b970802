package engine

import "time"

// Options configures the periodic snapshot cadence of an Engine. Kept
// as its own type, the way the teacher's engine package does, so
// tests can construct an Engine with a fast snapshot interval without
// going through config.Config.
type Options struct {
	SnapshotInterval   time.Duration
	SnapshotTradeDelta int64
}

// DefaultOptions returns conservative defaults matching config.EngineConfig's envDefault tags.
func DefaultOptions() *Options {
	return &Options{
		SnapshotInterval:   30 * time.Second,
		SnapshotTradeDelta: 1000,
	}
}
