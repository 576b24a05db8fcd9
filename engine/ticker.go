package engine

import (
	"context"
	"io"
	"log"
	"sync"
	"time"
)

// DefaultTickInterval is how often the world advances while a session runs.
const DefaultTickInterval = 30 * time.Second

// Ticker drives Engine.Tick on a fixed interval and hands non-empty tick
// output to a callback.
type Ticker struct {
	engine   *Engine
	interval time.Duration
	deliver  func([]string)
	logger   *log.Logger

	stopOnce sync.Once
	stopChan chan struct{}
	done     chan struct{}

	mu      sync.Mutex
	started bool
}

// NewTicker creates a ticker. A non-positive interval uses
// DefaultTickInterval; a nil logger discards.
func NewTicker(e *Engine, interval time.Duration, deliver func([]string), logger *log.Logger) *Ticker {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Ticker{
		engine:   e,
		interval: interval,
		deliver:  deliver,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs the tick loop until ctx is cancelled or Stop is called. It
// blocks, so callers usually run it on its own goroutine. A ticker runs
// at most once.
func (t *Ticker) Start(ctx context.Context) {
	t.mu.Lock()
	if t.started {
		t.mu.Unlock()
		return
	}
	t.started = true
	t.mu.Unlock()
	defer close(t.done)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	t.logger.Printf("ticker started (interval %s)", t.interval)

	for {
		select {
		case <-ctx.Done():
			t.logger.Printf("ticker stopped: %v", ctx.Err())
			return
		case <-t.stopChan:
			t.logger.Printf("ticker stopped")
			return
		case <-ticker.C:
			lines := t.engine.Tick()
			if len(lines) > 0 && t.deliver != nil {
				t.deliver(lines)
			}
		}
	}
}

// Stop ends the loop and waits for an in-flight tick to finish, so no
// callback runs after it returns. Stop must not be called from the
// callback itself.
func (t *Ticker) Stop() {
	t.stopOnce.Do(func() { close(t.stopChan) })

	t.mu.Lock()
	started := t.started
	t.mu.Unlock()
	if started {
		<-t.done
	}
}
