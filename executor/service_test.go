package executor

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutorServiceRunsQueuedJobToSuccess(t *testing.T) {
	svc, err := New("test", 2)
	require.NoError(t, err)
	defer svc.Shutdown()

	var ran atomic.Bool
	ok := svc.QueueJob("job", RunnableFunc(func(state *RunState) RunResult {
		ran.Store(true)
		return Success
	}), 1)
	require.True(t, ok)

	svc.StartJobs()
	require.Eventually(t, func() bool { return ran.Load() }, time.Second, time.Millisecond)
	require.Eventually(t, func() bool { return svc.NumCompletedJobs() == 1 }, time.Second, time.Millisecond)
	assert.EqualValues(t, 1, svc.NumTotalJobs())
}

func TestExecutorServicePausedJobsDoNotRun(t *testing.T) {
	svc, err := New("paused", 1)
	require.NoError(t, err)
	defer svc.Shutdown()

	var ran atomic.Bool
	svc.QueueJob("job", RunnableFunc(func(state *RunState) RunResult {
		ran.Store(true)
		return Success
	}), 1)

	time.Sleep(20 * time.Millisecond)
	assert.False(t, ran.Load())
	assert.Equal(t, 1, svc.NumJobs())
}

func TestExecutorServiceRequeueImmediateEventuallySucceeds(t *testing.T) {
	svc, err := New("requeue", 1)
	require.NoError(t, err)
	defer svc.Shutdown()

	var attempts atomic.Int32
	svc.QueueJob("flaky", RunnableFunc(func(state *RunState) RunResult {
		if attempts.Add(1) < 3 {
			return RequeueImmediate
		}
		return Success
	}), 5)

	svc.StartJobs()
	require.Eventually(t, func() bool { return svc.NumCompletedJobs() == 1 }, time.Second, time.Millisecond)
	assert.EqualValues(t, 3, attempts.Load())
}

func TestExecutorServiceDropsJobAfterMaxTries(t *testing.T) {
	svc, err := New("drop", 1)
	require.NoError(t, err)
	defer svc.Shutdown()

	var attempts atomic.Int32
	svc.QueueJob("always-fails", RunnableFunc(func(state *RunState) RunResult {
		attempts.Add(1)
		return RequeueBackoff
	}), 2)

	origNow := nowMs
	defer func() { nowMs = origNow }()
	var clock atomic.Int64
	clock.Store(origNow())
	nowMs = func() int64 { return clock.Add(100000) }

	svc.StartJobs()
	require.Eventually(t, func() bool { return attempts.Load() == 2 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.EqualValues(t, 2, attempts.Load())
	assert.EqualValues(t, 0, svc.NumCompletedJobs())
}

func TestExecutorServiceRecoversPanicAsFailureAndShutsDown(t *testing.T) {
	svc, err := New("panicky", 1)
	require.NoError(t, err)

	svc.QueueJob("boom", RunnableFunc(func(state *RunState) RunResult {
		panic("kaboom")
	}), 1)

	svc.StartJobs()
	require.Eventually(t, func() bool { return svc.RunState().RunningJobs() == 0 }, time.Second, time.Millisecond)
	assert.EqualValues(t, 0, svc.NumCompletedJobs())
	require.Eventually(t, func() bool { return svc.Metrics().Failed == 1 }, time.Second, time.Millisecond)

	svc.Shutdown()
	assert.True(t, svc.RunState().IsShutdown())
}

func TestExecutorServiceMetricsTracksQueuedAndCompleted(t *testing.T) {
	svc, err := New("metrics", 1)
	require.NoError(t, err)
	defer svc.Shutdown()

	svc.QueueJob("job", RunnableFunc(func(state *RunState) RunResult { return Success }), 1)
	before := svc.Metrics()
	assert.EqualValues(t, 1, before.Queued)

	svc.StartJobs()
	require.Eventually(t, func() bool { return svc.Metrics().Completed == 1 }, time.Second, time.Millisecond)
}

func TestExecutorServiceShutdownDrainsAndIsIdempotent(t *testing.T) {
	svc, err := New("shutdown", 2)
	require.NoError(t, err)

	svc.QueueJob("a", RunnableFunc(func(state *RunState) RunResult { return Success }), 1)
	svc.StartJobs()

	svc.Shutdown()
	assert.True(t, svc.RunState().IsShutdown())
	assert.EqualValues(t, 0, svc.RunState().RunningThreads())

	svc.Shutdown() // idempotent, must not hang or panic
}

func TestQueueJobRejectedAfterShutdown(t *testing.T) {
	svc, err := New("reject", 1)
	require.NoError(t, err)
	svc.StartJobs()
	svc.Shutdown()

	ok := svc.QueueJob("late", RunnableFunc(func(state *RunState) RunResult { return Success }), 1)
	assert.False(t, ok)
}
