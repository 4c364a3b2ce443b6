package cooldown

import (
	"context"
	"flight/internal/core/port"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	PolicyFixed   = "fixed"
	PolicySliding = "sliding"
	PolicyBucket  = "bucket"

	DefaultPruneInterval = time.Minute
)

// Tracker is a cooldown tracker that can prune its idle keys in the background.
type Tracker interface {
	port.CooldownTracker
	// Run prunes idle keys every prune interval until ctx is done.
	Run(ctx context.Context)
}

type options struct {
	now           func() time.Time
	pruneInterval time.Duration
}

type Option func(*options)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func WithPruneInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.pruneInterval = d
		}
	}
}

func newOptions(opts []Option) options {
	o := options{now: time.Now, pruneInterval: DefaultPruneInterval}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// New returns the tracker for a policy name. An empty name selects the fixed window.
func New(policy string, opts ...Option) (Tracker, error) {
	switch policy {
	case "", PolicyFixed:
		return NewFixedWindow(opts...), nil
	case PolicySliding:
		return NewSlidingWindow(opts...), nil
	case PolicyBucket:
		return NewTokenBucket(opts...), nil
	default:
		return nil, fmt.Errorf("unknown cooldown policy %q", policy)
	}
}

// Provider hands out a single tracker.
type Provider struct {
	tracker port.CooldownTracker
}

func NewProvider(tracker port.CooldownTracker) *Provider {
	return &Provider{tracker: tracker}
}

func (p *Provider) Tracker() port.CooldownTracker {
	return p.tracker
}

// reservation runs release at most once, and never after Commit.
type reservation struct {
	once    sync.Once
	release func()
}

func newReservation(release func()) *reservation {
	return &reservation{release: release}
}

func (r *reservation) Commit() {
	r.once.Do(func() {})
}

func (r *reservation) Release() {
	r.once.Do(r.release)
}

type noopReservation struct{}

func (noopReservation) Commit()  {}
func (noopReservation) Release() {}

// prunable is implemented by every tracker in this package.
type prunable interface {
	prune() int
}

func runPruner(ctx context.Context, name string, interval time.Duration, p prunable) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		log.Debug().Str("policy", name).Dur("interval", interval).Msg("running cooldown prune timer")
		select {
		case <-ticker.C:
			if n := p.prune(); n > 0 {
				log.Debug().Str("policy", name).Int("keys", n).Msg("pruned idle cooldown keys")
			}
		case <-ctx.Done():
			log.Debug().Str("policy", name).Msg("stopping cooldown pruning")
			return
		}
	}
}
