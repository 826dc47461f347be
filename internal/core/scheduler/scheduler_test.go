package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitTimeout = 2 * time.Second

func waitForTimer(t *testing.T, clock *clockwork.FakeClock) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
}

func receive(t *testing.T, calls <-chan time.Time) time.Time {
	t.Helper()
	select {
	case now := <-calls:
		return now
	case <-time.After(waitTimeout):
		t.Fatal("tick not delivered")
		return time.Time{}
	}
}

func waitDone(t *testing.T, scheduler *Scheduler) {
	t.Helper()
	select {
	case <-scheduler.Done():
	case <-time.After(waitTimeout):
		t.Fatal("scheduler did not finish")
	}
}

func TestStartRunsFirstTickSynchronously(t *testing.T) {
	start := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(start)
	scheduler := New(clock, time.Second)
	defer scheduler.Stop()

	count := 0
	var first time.Time
	require.NoError(t, scheduler.Start(func(now time.Time) error {
		if count == 0 {
			first = now
		}
		count++
		return nil
	}))

	assert.Equal(t, 1, count)
	assert.Equal(t, start, first)
}

func TestTicksEveryPeriodAfterCompletion(t *testing.T) {
	start := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(start)
	scheduler := New(clock, time.Second)
	defer scheduler.Stop()

	calls := make(chan time.Time, 8)
	require.NoError(t, scheduler.Start(func(now time.Time) error {
		calls <- now
		return nil
	}))
	assert.Equal(t, start, receive(t, calls))

	for i := 1; i <= 3; i++ {
		waitForTimer(t, clock)
		clock.Advance(time.Second)
		assert.Equal(t, start.Add(time.Duration(i)*time.Second), receive(t, calls))
	}
}

func TestNoTickBeforePeriodElapses(t *testing.T) {
	clock := clockwork.NewFakeClock()
	scheduler := New(clock, time.Second)
	defer scheduler.Stop()

	calls := make(chan time.Time, 8)
	require.NoError(t, scheduler.Start(func(now time.Time) error {
		calls <- now
		return nil
	}))
	receive(t, calls)

	waitForTimer(t, clock)
	clock.Advance(999 * time.Millisecond)
	select {
	case <-calls:
		t.Fatal("tick delivered early")
	case <-time.After(50 * time.Millisecond):
	}

	clock.Advance(time.Millisecond)
	receive(t, calls)
}

func TestFirstTickErrorIsReturned(t *testing.T) {
	failure := errors.New("boom")
	scheduler := New(clockwork.NewFakeClock(), time.Second)

	err := scheduler.Start(func(time.Time) error { return failure })

	require.ErrorIs(t, err, failure)
	waitDone(t, scheduler)
	assert.ErrorIs(t, scheduler.Err(), failure)
}

func TestTickErrorEndsLoop(t *testing.T) {
	failure := errors.New("surface gone")
	clock := clockwork.NewFakeClock()
	scheduler := New(clock, time.Second)

	count := 0
	require.NoError(t, scheduler.Start(func(time.Time) error {
		count++
		if count == 2 {
			return failure
		}
		return nil
	}))

	waitForTimer(t, clock)
	clock.Advance(time.Second)
	waitDone(t, scheduler)

	assert.Equal(t, 2, count)
	assert.ErrorIs(t, scheduler.Err(), failure)
}

func TestErrStoppedIsNotReported(t *testing.T) {
	scheduler := New(clockwork.NewFakeClock(), time.Second)

	err := scheduler.Start(func(time.Time) error { return ErrStopped })

	require.ErrorIs(t, err, ErrStopped)
	waitDone(t, scheduler)
	assert.NoError(t, scheduler.Err())
}

func TestStopEndsLoop(t *testing.T) {
	clock := clockwork.NewFakeClock()
	scheduler := New(clock, time.Second)

	calls := make(chan time.Time, 8)
	require.NoError(t, scheduler.Start(func(now time.Time) error {
		calls <- now
		return nil
	}))
	receive(t, calls)
	waitForTimer(t, clock)

	scheduler.Stop()
	scheduler.Stop()
	waitDone(t, scheduler)

	clock.Advance(5 * time.Second)
	assert.Empty(t, calls)
	assert.NoError(t, scheduler.Err())
}

func TestStartAfterStopIsNoop(t *testing.T) {
	scheduler := New(clockwork.NewFakeClock(), time.Second)
	scheduler.Stop()
	waitDone(t, scheduler)

	called := false
	require.NoError(t, scheduler.Start(func(time.Time) error {
		called = true
		return nil
	}))
	assert.False(t, called)
}

func TestDefaultPeriod(t *testing.T) {
	assert.Equal(t, DefaultPeriod, New(clockwork.NewFakeClock(), 0).Period())
	assert.Equal(t, 3*time.Second, New(clockwork.NewFakeClock(), 3*time.Second).Period())
}

func TestTickReadsClockWhenCalled(t *testing.T) {
	start := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(start)
	scheduler := New(clock, time.Second)
	defer scheduler.Stop()

	calls := make(chan time.Time, 8)
	require.NoError(t, scheduler.Start(func(now time.Time) error {
		calls <- now
		return nil
	}))
	receive(t, calls)

	waitForTimer(t, clock)
	clock.Advance(1500 * time.Millisecond)

	assert.Equal(t, start.Add(1500*time.Millisecond), receive(t, calls))
}
