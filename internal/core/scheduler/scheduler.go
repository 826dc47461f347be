// Package scheduler runs a callback on a fixed period, arming the next timer
// only after the previous call has returned so invocations never overlap.
package scheduler

import (
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultPeriod is used when a non-positive period is configured.
const DefaultPeriod = time.Second

// ErrStopped is returned by a TickFunc to end the loop without reporting a failure.
var ErrStopped = errors.New("scheduler stopped")

// TickFunc is invoked once per period with the clock reading taken as the call starts.
type TickFunc func(now time.Time) error

// Scheduler is a self re-arming one-shot timer.
type Scheduler struct {
	mu      sync.Mutex
	clock   clockwork.Clock
	period  time.Duration
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
	stopped bool
	err     error
}

// New creates a Scheduler on the given clock.
func New(clock clockwork.Clock, period time.Duration) *Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if period <= 0 {
		period = DefaultPeriod
	}
	return &Scheduler{
		clock:  clock,
		period: period,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// Period returns the delay between the end of one call and the start of the next.
func (scheduler *Scheduler) Period() time.Duration {
	return scheduler.period
}

// Start invokes fn synchronously, then keeps invoking it every period until
// Stop is called or fn returns an error. An error from the first call is
// returned and nothing is scheduled.
func (scheduler *Scheduler) Start(fn TickFunc) error {
	scheduler.mu.Lock()
	if scheduler.running || scheduler.stopped {
		scheduler.mu.Unlock()
		return nil
	}
	scheduler.running = true
	scheduler.mu.Unlock()

	if err := fn(scheduler.clock.Now()); err != nil {
		scheduler.finish(err)
		return err
	}

	go scheduler.run(fn)
	return nil
}

// Stop prevents any further invocation. A call already in progress completes.
func (scheduler *Scheduler) Stop() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.stopped {
		return
	}
	scheduler.stopped = true
	close(scheduler.stopCh)
	if !scheduler.running {
		close(scheduler.doneCh)
	}
}

// Done is closed once the scheduler will make no further calls.
func (scheduler *Scheduler) Done() <-chan struct{} {
	return scheduler.doneCh
}

// Err reports the error that ended the loop, if any. ErrStopped is not reported.
func (scheduler *Scheduler) Err() error {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.err
}

func (scheduler *Scheduler) run(fn TickFunc) {
	for {
		timer := scheduler.clock.NewTimer(scheduler.period)
		select {
		case <-scheduler.stopCh:
			timer.Stop()
			scheduler.finish(nil)
			return
		case <-timer.Chan():
			if scheduler.isStopped() {
				scheduler.finish(nil)
				return
			}
			if err := fn(scheduler.clock.Now()); err != nil {
				scheduler.finish(err)
				return
			}
		}
	}
}

func (scheduler *Scheduler) isStopped() bool {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.stopped
}

func (scheduler *Scheduler) finish(err error) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if !scheduler.running {
		return
	}
	scheduler.running = false
	if err != nil && !errors.Is(err, ErrStopped) {
		scheduler.err = err
	}
	if !scheduler.stopped {
		scheduler.stopped = true
		close(scheduler.stopCh)
	}
	close(scheduler.doneCh)
}
