package executor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/signalgraph/engine/internal/telemetry"
	"github.com/signalgraph/engine/log"
	"github.com/signalgraph/engine/telemetry/trace"
)

// defaultMaxQueued is the modest default backlog spec §4.2.3 reasons the
// linear scan over; workers drain it in parallel so it stays cheap.
const defaultMaxQueued = 2000

// noReadyJobPoll is how long a worker sleeps when the queue is non-empty
// but no entry's next-try has elapsed yet (spec §4.2.2).
const noReadyJobPoll = 50 * time.Millisecond

// shutdownBroadcastInterval is how often Shutdown re-broadcasts the
// condition variable while waiting for workers to drain (spec §4.2.4).
const shutdownBroadcastInterval = 50 * time.Millisecond

// defaultMaxTries bounds RequeueBackoff retries when QueueJob doesn't
// specify one.
const defaultMaxTries = 8

// ExecutorService is a bounded, multi-threaded job scheduler with
// per-job retry/back-off/cancel/shutdown semantics (spec §3.2, §4.2).
type ExecutorService struct {
	name      string
	maxQueued int

	mu    sync.Mutex
	cond  *sync.Cond
	queue []*queueEntry

	state RunState
	pool  *ants.Pool

	numTotalRequests int64
	numCompleted     int64
	numFailed        int64
}

// Option configures an ExecutorService at construction time.
type Option func(*ExecutorService)

// WithMaxQueued overrides the default queue capacity (2000).
func WithMaxQueued(n int) Option {
	return func(s *ExecutorService) { s.maxQueued = n }
}

// New spawns numThreads worker goroutines (via an ants pool, matching the
// bounded-worker-pool idiom this codebase uses elsewhere), all initially
// paused: callers must call StartJobs to begin draining the queue.
func New(name string, numThreads int, opts ...Option) (*ExecutorService, error) {
	if numThreads < 1 {
		numThreads = 1
	}
	s := &ExecutorService{name: name, maxQueued: defaultMaxQueued}
	for _, opt := range opts {
		opt(s)
	}
	s.cond = sync.NewCond(&s.mu)

	pool, err := ants.NewPool(numThreads, ants.WithNonblocking(false))
	if err != nil {
		return nil, fmt.Errorf("executor: create worker pool: %w", err)
	}
	s.pool = pool

	for i := 0; i < numThreads; i++ {
		if err := pool.Submit(s.workerLoop); err != nil {
			return nil, fmt.Errorf("executor: spawn worker: %w", err)
		}
	}
	return s, nil
}

// StartJobs allows workers to begin pulling from the queue.
func (s *ExecutorService) StartJobs() {
	s.mu.Lock()
	s.state.running.Store(true)
	s.mu.Unlock()
	s.cond.Broadcast()
}

// PauseJobs stops workers from pulling new jobs. In-flight jobs are not
// interrupted (spec §4.2.1).
func (s *ExecutorService) PauseJobs() {
	s.mu.Lock()
	s.state.running.Store(false)
	s.mu.Unlock()
	s.cond.Broadcast()
}

// ClearJobs atomically drops all pending (not yet started) runnables.
func (s *ExecutorService) ClearJobs() {
	s.mu.Lock()
	s.queue = nil
	s.mu.Unlock()
}

// QueueJob enqueues a runnable. Rejected (false) if the service is
// shutting down or the queue is at capacity (spec §4.2.1, §4.2.5).
func (s *ExecutorService) QueueJob(name string, r Runnable, maxTries int) bool {
	if name == "" {
		name = uuid.NewString()
	}
	if maxTries < 1 {
		maxTries = defaultMaxTries
	}
	s.mu.Lock()
	if s.state.destructing.Load() || len(s.queue) >= s.maxQueued {
		s.mu.Unlock()
		return false
	}
	s.queue = append(s.queue, &queueEntry{name: name, runnable: r, maxTries: maxTries})
	s.numTotalRequests++
	running := s.state.running.Load()
	s.mu.Unlock()
	s.recordQueued()
	if running {
		s.cond.Signal()
	}
	return true
}

// Shutdown sets destructing, wakes all workers so they drain (or, if
// paused, clears the queue first), then blocks until every worker has
// exited. Idempotent (spec §4.2.1, §4.2.4).
func (s *ExecutorService) Shutdown() {
	s.mu.Lock()
	alreadyDestructing := s.state.destructing.Load()
	s.state.destructing.Store(true)
	if !s.state.running.Load() {
		s.queue = nil
	}
	s.mu.Unlock()
	if alreadyDestructing {
		s.waitShutdown()
		return
	}
	s.cond.Broadcast()
	s.waitShutdown()
	s.pool.Release()
}

func (s *ExecutorService) waitShutdown() {
	for !s.state.IsShutdown() {
		s.cond.Broadcast()
		time.Sleep(shutdownBroadcastInterval)
	}
}

// NumJobs returns the current queue length (pending, not in-flight).
func (s *ExecutorService) NumJobs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// NumTotalJobs returns the lifetime count of jobs accepted by QueueJob.
func (s *ExecutorService) NumTotalJobs() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.numTotalRequests
}

// NumCompletedJobs returns the lifetime count of jobs that finished with
// RunResult Success.
func (s *ExecutorService) NumCompletedJobs() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.numCompleted
}

// RunState exposes the executor's shared run state to callers that need
// to pass it down to a Runnable constructed elsewhere.
func (s *ExecutorService) RunState() *RunState { return &s.state }

// workerLoop is the body submitted once per pool thread. It follows the
// pseudocode of spec §4.2.2 exactly: paused/empty waits on the condition
// variable; a non-empty queue with nothing yet eligible sleeps 50ms; an
// eligible entry is popped, run outside the lock, then dispatched.
func (s *ExecutorService) workerLoop() {
	s.state.incThreads()
	defer s.state.decThreads()

	for {
		entry, ok := s.waitForEntry()
		if !ok {
			return
		}
		s.runEntry(entry)
	}
}

// waitForEntry blocks (respecting pause/empty/not-yet-ready states) until
// an eligible entry is popped from the queue, or returns ok=false once
// shutdown has fully drained.
func (s *ExecutorService) waitForEntry() (*queueEntry, bool) {
	for {
		s.mu.Lock()
		for {
			if s.state.destructing.Load() && len(s.queue) == 0 {
				s.mu.Unlock()
				return nil, false
			}
			if !s.state.running.Load() {
				s.cond.Wait()
				continue
			}
			if len(s.queue) == 0 {
				s.cond.Wait()
				continue
			}
			break
		}
		now := nowMs()
		idx := -1
		for i, e := range s.queue {
			if e.canRun(now) {
				idx = i
				break
			}
		}
		if idx < 0 {
			s.mu.Unlock()
			time.Sleep(noReadyJobPoll)
			continue
		}
		entry := s.queue[idx]
		s.queue = append(s.queue[:idx], s.queue[idx+1:]...)
		s.mu.Unlock()
		return entry, true
	}
}

func (s *ExecutorService) runEntry(entry *queueEntry) {
	_, span := trace.Tracer.Start(context.Background(), telemetry.NewJobSpanName(entry.name))
	defer span.End()

	result := s.runGuarded(entry)
	s.dispatch(entry, result)
}

// runGuarded runs entry.runnable under the running_jobs counter, guaranteed
// to decrement it even if the runnable panics (spec §4.2.5: an exception
// escaping a runnable is treated as Failure, and running_jobs is always
// decremented under a scoped guard).
func (s *ExecutorService) runGuarded(entry *queueEntry) (result RunResult) {
	s.state.incJobs()
	s.recordRunning(1)
	defer s.state.decJobs()
	defer s.recordRunning(-1)

	defer func() {
		if r := recover(); r != nil {
			log.Warnf("executor %s: job %q panicked: %v", s.name, entry.name, r)
			result = Failure
		}
	}()

	return entry.runnable.Run(&s.state)
}

// dispatch applies the RunResult semantics of spec §4.2.2.
func (s *ExecutorService) dispatch(entry *queueEntry, result RunResult) {
	switch result {
	case Success:
		s.mu.Lock()
		s.numCompleted++
		s.mu.Unlock()
		s.recordCompleted()
	case Failure, Cancelled:
		s.mu.Lock()
		s.numFailed++
		s.mu.Unlock()
		s.recordFailed()
	case RequeueImmediate:
		s.requeue(entry)
	case RequeueDelayed:
		entry.nextTryEpochMs = requeueDelay(nowMs())
		s.requeue(entry)
	case RequeueBackoff:
		entry.tries++
		if entry.tries >= entry.maxTries {
			log.Warnf("executor %s: job %q dropped after %d tries", s.name, entry.name, entry.tries)
			s.mu.Lock()
			s.numFailed++
			s.mu.Unlock()
			s.recordFailed()
			return
		}
		entry.nextTryEpochMs = nowMs() + backoffDelayMs(entry.tries)
		s.requeue(entry)
	}
}

func (s *ExecutorService) requeue(entry *queueEntry) {
	s.mu.Lock()
	if !s.state.destructing.Load() {
		s.queue = append(s.queue, entry)
	}
	running := s.state.running.Load()
	s.mu.Unlock()
	if running {
		s.cond.Signal()
	}
}
