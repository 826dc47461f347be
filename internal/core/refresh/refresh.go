package refresh

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"kiosk/internal/core/colorclock"
	"kiosk/internal/core/model"
	"kiosk/internal/core/scheduler"

	"github.com/jonboulle/clockwork"
)

// DefaultBanner is shown above the time.
const DefaultBanner = "WELCOME TO THE PI ACADEMY KIOSK!"

// TimeLayout renders a 12-hour clock with zero padding and an AM/PM suffix.
const TimeLayout = "03:04:05 PM"

// ErrSurfaceUnavailable indicates the presentation target no longer exists.
var ErrSurfaceUnavailable = errors.New("presentation surface unavailable")

// Surface receives the display state computed on every tick.
type Surface interface {
	Render(state model.DisplayState) error
}

// Config contains runtime options for Loop.
type Config struct {
	TickInterval time.Duration
	Banner       string
}

// Loop drives the kiosk: one render immediately, then one per tick interval.
type Loop struct {
	mu        sync.Mutex
	surface   Surface
	clock     clockwork.Clock
	options   Config
	scheduler *scheduler.Scheduler
	state     State
	ticks     uint64
}

// New creates a Loop rendering to surface.
func New(surface Surface, clock clockwork.Clock, options Config) *Loop {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Banner == "" {
		options.Banner = DefaultBanner
	}
	return &Loop{
		surface:   surface,
		clock:     clock,
		options:   options,
		scheduler: scheduler.New(clock, options.TickInterval),
		state:     StateInitializing,
	}
}

// FormatTime returns t as a 12-hour wall clock string, e.g. "01:05:09 PM".
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// Compose builds the display state for t.
func Compose(t time.Time, banner string) model.DisplayState {
	return model.DisplayState{
		Text:  banner + "\n\n" + FormatTime(t),
		Color: colorclock.ColorFor(t),
	}
}

// Start renders once synchronously and then keeps rendering every tick
// interval. A surface that has gone away ends the loop without an error.
func (loop *Loop) Start() error {
	loop.mu.Lock()
	if loop.state != StateInitializing {
		loop.mu.Unlock()
		return nil
	}
	loop.state = StateRunning
	loop.mu.Unlock()

	slog.Info("Starting refresh loop", "interval", loop.options.TickInterval)
	err := loop.scheduler.Start(loop.tick)
	go loop.watch()
	if err != nil && !errors.Is(err, scheduler.ErrStopped) {
		return fmt.Errorf("first render: %w", err)
	}
	return nil
}

// Stop ends the loop. Safe to call more than once.
func (loop *Loop) Stop() {
	loop.scheduler.Stop()
}

// Done is closed when no further renders will happen.
func (loop *Loop) Done() <-chan struct{} {
	return loop.scheduler.Done()
}

// Err reports an unexpected render failure that ended the loop.
func (loop *Loop) Err() error {
	return loop.scheduler.Err()
}

// State returns the current lifecycle state.
func (loop *Loop) State() State {
	loop.mu.Lock()
	defer loop.mu.Unlock()
	return loop.state
}

// Ticks returns how many renders have been pushed to the surface.
func (loop *Loop) Ticks() uint64 {
	loop.mu.Lock()
	defer loop.mu.Unlock()
	return loop.ticks
}

// Tick reads the clock and renders once.
func (loop *Loop) Tick() error {
	return loop.render(loop.clock.Now())
}

func (loop *Loop) tick(now time.Time) error {
	err := loop.render(now)
	if errors.Is(err, ErrSurfaceUnavailable) {
		slog.Info("Presentation surface closed, stopping refresh loop")
		return scheduler.ErrStopped
	}
	return err
}

func (loop *Loop) render(now time.Time) error {
	state := Compose(now, loop.options.Banner)
	if err := loop.surface.Render(state); err != nil {
		return err
	}

	loop.mu.Lock()
	loop.ticks++
	loop.mu.Unlock()

	slog.Debug("Rendered tick", "time", FormatTime(now), "color", state.Color.Hex())
	return nil
}

func (loop *Loop) watch() {
	<-loop.scheduler.Done()
	loop.mu.Lock()
	loop.state = StateStopped
	loop.mu.Unlock()
	if err := loop.scheduler.Err(); err != nil {
		slog.Error("Refresh loop failed", "error", err)
		return
	}
	slog.Info("Refresh loop stopped")
}
