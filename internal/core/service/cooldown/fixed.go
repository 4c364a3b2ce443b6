package cooldown

import (
	"context"
	"flight/internal/core/domain"
	"flight/internal/core/port"
	"sync"
	"time"
)

type window struct {
	start  time.Time
	length time.Duration
	used   int
}

func (w *window) expired(now time.Time) bool {
	return !now.Before(w.start.Add(w.length))
}

// FixedWindow allows Uses invocations per key in windows of Duration that start with the first invocation.
type FixedWindow struct {
	mutex     sync.Mutex
	windows   map[domain.CooldownKey]*window
	opts      options
	lastPrune time.Time
}

func NewFixedWindow(opts ...Option) *FixedWindow {
	o := newOptions(opts)

	return &FixedWindow{
		windows:   make(map[domain.CooldownKey]*window),
		opts:      o,
		lastPrune: o.now(),
	}
}

func (t *FixedWindow) Check(key domain.CooldownKey, policy domain.Cooldown) error {
	if !policy.Enabled() {
		return nil
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()

	_, err := t.current(key, policy, t.opts.now())
	return err
}

func (t *FixedWindow) Record(key domain.CooldownKey, policy domain.Cooldown) {
	if !policy.Enabled() {
		return
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()

	now := t.opts.now()
	w, _ := t.current(key, policy, now)
	t.take(key, w, policy, now)
}

func (t *FixedWindow) Reserve(key domain.CooldownKey, policy domain.Cooldown) (port.Reservation, error) {
	if !policy.Enabled() {
		return noopReservation{}, nil
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()

	now := t.opts.now()
	t.maybePrune(now)

	w, err := t.current(key, policy, now)
	if err != nil {
		return nil, err
	}
	w = t.take(key, w, policy, now)

	return newReservation(func() {
		t.mutex.Lock()
		defer t.mutex.Unlock()

		if t.windows[key] == w && w.used > 0 {
			w.used--
		}
	}), nil
}

// current returns the live window for key, or nil when there is none. It fails when the window is used up.
func (t *FixedWindow) current(key domain.CooldownKey, policy domain.Cooldown, now time.Time) (*window, error) {
	w, ok := t.windows[key]
	if !ok || w.expired(now) {
		return nil, nil
	}

	if w.used >= policy.Limit() {
		return w, &domain.CooldownActive{Key: key, Remaining: w.start.Add(w.length).Sub(now)}
	}

	return w, nil
}

func (t *FixedWindow) take(key domain.CooldownKey, w *window, policy domain.Cooldown, now time.Time) *window {
	if w == nil {
		w = &window{start: now, length: policy.Duration}
		t.windows[key] = w
	}
	w.used++

	return w
}

func (t *FixedWindow) maybePrune(now time.Time) {
	if now.Sub(t.lastPrune) < t.opts.pruneInterval {
		return
	}
	t.pruneLocked(now)
}

func (t *FixedWindow) pruneLocked(now time.Time) int {
	t.lastPrune = now

	n := 0
	for key, w := range t.windows {
		if w.expired(now) {
			delete(t.windows, key)
			n++
		}
	}

	return n
}

func (t *FixedWindow) prune() int {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return t.pruneLocked(t.opts.now())
}

// Len is the number of tracked keys.
func (t *FixedWindow) Len() int {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return len(t.windows)
}

func (t *FixedWindow) Run(ctx context.Context) {
	runPruner(ctx, PolicyFixed, t.opts.pruneInterval, t)
}
