package scheduler_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/fightcrawl/internal/logger"
	"github.com/jonesrussell/fightcrawl/internal/scheduler"
)

func TestSchedule_InvalidExpression(t *testing.T) {
	t.Parallel()

	s := scheduler.New(logger.NewNoOp(), func(context.Context) error { return nil })
	err := s.Schedule("every tuesday")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse cron expression")
}

func TestStart_RequiresSchedule(t *testing.T) {
	t.Parallel()

	s := scheduler.New(logger.NewNoOp(), func(context.Context) error { return nil })
	require.ErrorIs(t, s.Start(context.Background()), scheduler.ErrNoSchedule)
}

func TestRunOnce_RecordsStatus(t *testing.T) {
	t.Parallel()

	failure := errors.New("index unavailable")
	var calls atomic.Int32
	s := scheduler.New(logger.NewNoOp(), func(context.Context) error {
		if calls.Add(1) == 1 {
			return failure
		}
		return nil
	})
	require.NoError(t, s.Schedule("@daily"))

	require.ErrorIs(t, s.RunOnce(context.Background()), failure)
	st := s.Status()
	assert.Equal(t, "@daily", st.Schedule)
	assert.EqualValues(t, 1, st.Runs)
	assert.Equal(t, failure.Error(), st.LastError)
	assert.False(t, st.Running)
	assert.False(t, st.NextRun.IsZero())

	require.NoError(t, s.RunOnce(context.Background()))
	st = s.Status()
	assert.EqualValues(t, 2, st.Runs)
	assert.Empty(t, st.LastError)
	assert.False(t, st.LastFinish.Before(st.LastStart))
}

func TestStop_CancelsRun(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	var cancelled atomic.Bool
	s := scheduler.New(logger.NewNoOp(), func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		cancelled.Store(true)
		return ctx.Err()
	})
	require.NoError(t, s.Schedule("* * * * *"))
	require.NoError(t, s.Start(context.Background()))

	go func() { _ = s.RunOnce(scheduler.RunContext(s)) }()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("run did not start")
	}
	s.Stop()
	assert.Eventually(t, cancelled.Load, 5*time.Second, 10*time.Millisecond)
}

func TestRunOnce_RejectsOverlappingRun(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	s := scheduler.New(logger.NewNoOp(), func(context.Context) error {
		close(started)
		<-release
		return nil
	})
	require.NoError(t, s.Schedule("@daily"))

	firstDone := make(chan error, 1)
	go func() { firstDone <- s.RunOnce(context.Background()) }()
	<-started

	require.ErrorIs(t, s.RunOnce(context.Background()), scheduler.ErrRunInProgress)
	st := s.Status()
	assert.True(t, st.Running)
	assert.EqualValues(t, 1, st.Runs)

	close(release)
	require.NoError(t, <-firstDone)
	assert.False(t, s.Status().Running)
}
