package execution

import (
	"flight/internal/core/domain"
	"flight/internal/core/port"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
)

const (
	StrategyInline = "inline"
	StrategyPooled = "pooled"

	DefaultWorkers   = 4
	DefaultQueueSize = 64
)

// Strategy is an execution strategy that owns resources until closed.
type Strategy interface {
	port.ExecutionStrategy
	// Close waits for accepted tasks to finish. Execute fails afterwards.
	Close()
}

// New returns the strategy for a configured name. An empty name selects inline execution.
func New(strategy string, workers, queueSize int) (Strategy, error) {
	switch strategy {
	case "", StrategyInline:
		return Inline{}, nil
	case StrategyPooled:
		return NewPooled(workers, queueSize), nil
	default:
		return nil, fmt.Errorf("unknown execution strategy %q", strategy)
	}
}

// Inline runs tasks on the calling goroutine.
type Inline struct{}

func (Inline) Execute(task func()) error {
	task()
	return nil
}

func (Inline) Close() {}

// Pooled runs tasks on a bounded set of workers fed from a bounded queue. Execute never blocks.
type Pooled struct {
	queue chan func()
	pool  *pool.Pool
	done  chan struct{}

	mutex  sync.RWMutex
	closed bool
}

func NewPooled(workers, queueSize int) *Pooled {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if queueSize < 0 {
		queueSize = 0
	}

	p := &Pooled{
		queue: make(chan func(), queueSize),
		pool:  pool.New().WithMaxGoroutines(workers),
		done:  make(chan struct{}),
	}

	log.Debug().Int("workers", workers).Int("queue", queueSize).Msg("starting worker pool")
	go p.drain()

	return p
}

func (p *Pooled) drain() {
	for task := range p.queue {
		p.pool.Go(safe(task))
	}

	p.pool.Wait()
	close(p.done)
}

// Execute queues the task. It fails with domain.ErrPoolSaturated when the queue is full.
func (p *Pooled) Execute(task func()) error {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	if p.closed {
		return domain.ErrExecutorClosed
	}

	select {
	case p.queue <- task:
		return nil
	default:
		return domain.ErrPoolSaturated
	}
}

func (p *Pooled) Close() {
	p.mutex.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mutex.Unlock()

	<-p.done
	log.Debug().Msg("worker pool drained")
}

// safe keeps a panicking task from taking the pool down.
func safe(task func()) func() {
	return func() {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().Interface("panic", rec).Msg("task panicked in worker pool")
			}
		}()

		task()
	}
}
