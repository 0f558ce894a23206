package merge

import (
	"time"

	"go.uber.org/zap"
)

// Merger reconciles replica snapshots. It holds no mutable state, so one Merger
// may serve concurrent calls on different keys.
type Merger struct {
	now func() int64
	log *zap.Logger
}

// Option configures a Merger.
type Option func(*Merger)

// WithClock overrides the clock used for the merged updatedAt.
func WithClock(now func() int64) Option {
	return func(m *Merger) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLogger sets the diagnostics sink. Debug entries trace decisions, Info
// entries flag notable events such as collapsed duplicates.
func WithLogger(l *zap.Logger) Option {
	return func(m *Merger) {
		if l != nil {
			m.log = l
		}
	}
}

// New creates a Merger using wall-clock milliseconds and a no-op logger by default.
func New(opts ...Option) *Merger {
	m := &Merger{
		now: func() int64 { return time.Now().UnixMilli() },
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}
