// Package scheduler serialises table work onto one goroutine and paces
// computer turns with an artificial thinking delay.
package scheduler

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

var (
	// ErrTurnPending is returned when an AI turn is already scheduled
	ErrTurnPending = errors.New("an AI turn is already pending")
	// ErrClosed is returned once Close has been called
	ErrClosed = errors.New("scheduler closed")
)

// Turns runs queued tasks one at a time on a single worker goroutine. At
// most one AI turn is waiting on the clock at any time. A fired AI turn is
// never cancelled.
type Turns struct {
	clock  quartz.Clock
	delay  time.Duration
	logger *log.Logger

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []func()
	pending bool
	timer   *quartz.Timer
	closed  bool
	done    chan struct{}
}

// New starts a scheduler. delay is the thinking time before an AI turn runs.
func New(clock quartz.Clock, delay time.Duration, logger *log.Logger) *Turns {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	t := &Turns{
		clock:  clock,
		delay:  delay,
		logger: logger.WithPrefix("scheduler"),
		done:   make(chan struct{}),
	}
	t.cond = sync.NewCond(&t.mu)
	go t.run()
	return t
}

func (t *Turns) run() {
	defer close(t.done)
	for {
		t.mu.Lock()
		for len(t.queue) == 0 && !t.closed {
			t.cond.Wait()
		}
		if len(t.queue) == 0 {
			t.mu.Unlock()
			return
		}
		fn := t.queue[0]
		t.queue = t.queue[1:]
		t.mu.Unlock()

		fn()
	}
}

func (t *Turns) enqueue(fn func()) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrClosed
	}
	t.queue = append(t.queue, fn)
	t.cond.Signal()
	return nil
}

// Do queues fn to run on the worker
func (t *Turns) Do(fn func()) error {
	return t.enqueue(fn)
}

// Run queues fn and waits for it to finish. The task still runs if ctx is
// cancelled first.
func (t *Turns) Run(ctx context.Context, fn func() error) error {
	result := make(chan error, 1)
	if err := t.enqueue(func() { result <- fn() }); err != nil {
		return err
	}
	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Query queues fn and returns its result. Values produced by fn are only
// handed back through the result channel, so a caller that gives up on ctx
// never shares memory with the task still running.
func Query[T any](ctx context.Context, t *Turns, fn func() (T, error)) (T, error) {
	type reply struct {
		v   T
		err error
	}
	result := make(chan reply, 1)
	err := t.enqueue(func() {
		v, err := fn()
		result <- reply{v, err}
	})
	if err != nil {
		var zero T
		return zero, err
	}
	select {
	case r := <-result:
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// ScheduleAI queues fn after the thinking delay. The pending flag is cleared
// before fn runs so fn may schedule the next turn.
func (t *Turns) ScheduleAI(fn func()) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return ErrClosed
	}
	if t.pending {
		return ErrTurnPending
	}
	t.pending = true

	t.timer = t.clock.AfterFunc(t.delay, func() {
		err := t.enqueue(func() {
			t.mu.Lock()
			t.pending = false
			t.timer = nil
			t.mu.Unlock()
			fn()
		})
		if err != nil {
			t.logger.Debug("Dropped AI turn", "error", err)
		}
	})
	return nil
}

// Pending reports whether an AI turn is scheduled but has not run yet
func (t *Turns) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

// Close stops accepting work, stops an AI turn that has not fired yet and
// waits for queued tasks to finish. It must not be called from a task.
func (t *Turns) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		<-t.done
		return
	}
	t.closed = true
	if t.timer != nil {
		t.timer.Stop()
	}
	t.cond.Broadcast()
	t.mu.Unlock()

	<-t.done
}
