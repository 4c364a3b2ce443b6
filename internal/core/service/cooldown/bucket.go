package cooldown

import (
	"context"
	"flight/internal/core/domain"
	"flight/internal/core/port"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type bucket struct {
	limiter *rate.Limiter
	policy  domain.Cooldown
}

func newBucket(policy domain.Cooldown) *bucket {
	every := policy.Duration / time.Duration(policy.Limit())
	return &bucket{
		limiter: rate.NewLimiter(rate.Every(every), policy.Limit()),
		policy:  policy,
	}
}

// TokenBucket holds Uses tokens per key, refilled at Uses per Duration. Each invocation takes one token.
type TokenBucket struct {
	mutex     sync.Mutex
	buckets   map[domain.CooldownKey]*bucket
	opts      options
	lastPrune time.Time
}

func NewTokenBucket(opts ...Option) *TokenBucket {
	o := newOptions(opts)

	return &TokenBucket{
		buckets:   make(map[domain.CooldownKey]*bucket),
		opts:      o,
		lastPrune: o.now(),
	}
}

func (t *TokenBucket) Check(key domain.CooldownKey, policy domain.Cooldown) error {
	if !policy.Enabled() {
		return nil
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()

	b, ok := t.buckets[key]
	if !ok {
		return nil
	}

	now := t.opts.now()
	tokens := b.limiter.TokensAt(now)
	if tokens >= 1 {
		return nil
	}

	missing := (1 - tokens) / float64(b.limiter.Limit())
	return &domain.CooldownActive{Key: key, Remaining: time.Duration(missing * float64(time.Second))}
}

func (t *TokenBucket) Record(key domain.CooldownKey, policy domain.Cooldown) {
	if !policy.Enabled() {
		return
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.get(key, policy).limiter.AllowN(t.opts.now(), 1)
}

func (t *TokenBucket) Reserve(key domain.CooldownKey, policy domain.Cooldown) (port.Reservation, error) {
	if !policy.Enabled() {
		return noopReservation{}, nil
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()

	now := t.opts.now()
	t.maybePrune(now)

	r := t.get(key, policy).limiter.ReserveN(now, 1)
	if !r.OK() {
		return nil, &domain.CooldownActive{Key: key, Remaining: policy.Duration}
	}

	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return nil, &domain.CooldownActive{Key: key, Remaining: delay}
	}

	return newReservation(func() {
		t.mutex.Lock()
		defer t.mutex.Unlock()

		r.CancelAt(now)
	}), nil
}

func (t *TokenBucket) get(key domain.CooldownKey, policy domain.Cooldown) *bucket {
	b, ok := t.buckets[key]
	if !ok || b.policy != policy {
		b = newBucket(policy)
		t.buckets[key] = b
	}

	return b
}

func (t *TokenBucket) maybePrune(now time.Time) {
	if now.Sub(t.lastPrune) < t.opts.pruneInterval {
		return
	}
	t.pruneLocked(now)
}

// pruneLocked drops buckets that refilled completely.
func (t *TokenBucket) pruneLocked(now time.Time) int {
	t.lastPrune = now

	n := 0
	for key, b := range t.buckets {
		if b.limiter.TokensAt(now) >= float64(b.limiter.Burst()) {
			delete(t.buckets, key)
			n++
		}
	}

	return n
}

func (t *TokenBucket) prune() int {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return t.pruneLocked(t.opts.now())
}

func (t *TokenBucket) Len() int {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return len(t.buckets)
}

func (t *TokenBucket) Run(ctx context.Context) {
	runPruner(ctx, PolicyBucket, t.opts.pruneInterval, t)
}
