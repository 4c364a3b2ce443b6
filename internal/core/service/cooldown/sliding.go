package cooldown

import (
	"context"
	"flight/internal/core/domain"
	"flight/internal/core/port"
	"sync"
	"time"
)

type invocationLog struct {
	length time.Duration
	stamps []time.Time
}

// trim drops timestamps that fell out of the window.
func (l *invocationLog) trim(now time.Time) {
	cutoff := now.Add(-l.length)

	i := 0
	for i < len(l.stamps) && !l.stamps[i].After(cutoff) {
		i++
	}
	l.stamps = l.stamps[i:]
}

// SlidingWindow allows Uses invocations per key within any span of Duration.
type SlidingWindow struct {
	mutex     sync.Mutex
	logs      map[domain.CooldownKey]*invocationLog
	opts      options
	lastPrune time.Time
}

func NewSlidingWindow(opts ...Option) *SlidingWindow {
	o := newOptions(opts)

	return &SlidingWindow{
		logs:      make(map[domain.CooldownKey]*invocationLog),
		opts:      o,
		lastPrune: o.now(),
	}
}

func (t *SlidingWindow) Check(key domain.CooldownKey, policy domain.Cooldown) error {
	if !policy.Enabled() {
		return nil
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()

	return t.check(key, policy, t.opts.now())
}

func (t *SlidingWindow) Record(key domain.CooldownKey, policy domain.Cooldown) {
	if !policy.Enabled() {
		return
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.append(key, policy, t.opts.now())
}

func (t *SlidingWindow) Reserve(key domain.CooldownKey, policy domain.Cooldown) (port.Reservation, error) {
	if !policy.Enabled() {
		return noopReservation{}, nil
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()

	now := t.opts.now()
	t.maybePrune(now)

	if err := t.check(key, policy, now); err != nil {
		return nil, err
	}
	l := t.append(key, policy, now)

	return newReservation(func() {
		t.mutex.Lock()
		defer t.mutex.Unlock()

		for i := len(l.stamps) - 1; i >= 0; i-- {
			if l.stamps[i].Equal(now) {
				l.stamps = append(l.stamps[:i], l.stamps[i+1:]...)
				return
			}
		}
	}), nil
}

func (t *SlidingWindow) check(key domain.CooldownKey, policy domain.Cooldown, now time.Time) error {
	l, ok := t.logs[key]
	if !ok {
		return nil
	}

	l.length = policy.Duration
	l.trim(now)
	if len(l.stamps) < policy.Limit() {
		return nil
	}

	// the slot frees up when the oldest invocation that still counts leaves the window
	oldest := l.stamps[len(l.stamps)-policy.Limit()]
	return &domain.CooldownActive{Key: key, Remaining: oldest.Add(policy.Duration).Sub(now)}
}

func (t *SlidingWindow) append(key domain.CooldownKey, policy domain.Cooldown, now time.Time) *invocationLog {
	l, ok := t.logs[key]
	if !ok {
		l = &invocationLog{}
		t.logs[key] = l
	}
	l.length = policy.Duration
	l.stamps = append(l.stamps, now)

	return l
}

func (t *SlidingWindow) maybePrune(now time.Time) {
	if now.Sub(t.lastPrune) < t.opts.pruneInterval {
		return
	}
	t.pruneLocked(now)
}

func (t *SlidingWindow) pruneLocked(now time.Time) int {
	t.lastPrune = now

	n := 0
	for key, l := range t.logs {
		l.trim(now)
		if len(l.stamps) == 0 {
			delete(t.logs, key)
			n++
		}
	}

	return n
}

func (t *SlidingWindow) prune() int {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return t.pruneLocked(t.opts.now())
}

func (t *SlidingWindow) Len() int {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return len(t.logs)
}

func (t *SlidingWindow) Run(ctx context.Context) {
	runPruner(ctx, PolicySliding, t.opts.pruneInterval, t)
}
