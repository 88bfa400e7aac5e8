// Package executor implements the bounded, multi-threaded job scheduler of
// spec §3.2/§4.2: retry/back-off/pause/cancel/shutdown semantics driving
// asynchronous work (network fetches, cache provisioning) queued off the
// node-graph's single-threaded pass.
package executor

import "sync/atomic"

// RunState is the shared-mutable state (four atomic fields) the executor and its runnables
// observe cooperatively (spec §3.2). It is the only process-wide mutable
// state in this engine; everything else is owned exclusively by its
// subsystem (spec §5).
type RunState struct {
	running      atomic.Bool
	destructing  atomic.Bool
	runningJobs  atomic.Int32
	runningThreads atomic.Int32
}

// IsRunning reports whether workers should actively pull jobs.
func (r *RunState) IsRunning() bool { return r.running.Load() }

// IsShuttingDown reports whether the executor is tearing down; runnables
// should poll this and return Failure/Cancelled promptly (spec §4.2.4).
func (r *RunState) IsShuttingDown() bool { return r.destructing.Load() }

// IsPaused reports the inverse of IsRunning — kept as a named predicate to
// mirror spec §3.2's derived-predicate list.
func (r *RunState) IsPaused() bool { return !r.running.Load() }

// HasRunningJobs reports whether any job is currently executing.
func (r *RunState) HasRunningJobs() bool { return r.runningJobs.Load() > 0 }

// IsShutdown reports the terminal state: destructing, no jobs, no threads.
func (r *RunState) IsShutdown() bool {
	return r.destructing.Load() && r.runningJobs.Load() == 0 && r.runningThreads.Load() == 0
}

func (r *RunState) incJobs() int32     { return r.runningJobs.Add(1) }
func (r *RunState) decJobs() int32     { return r.runningJobs.Add(-1) }
func (r *RunState) incThreads() int32  { return r.runningThreads.Add(1) }
func (r *RunState) decThreads() int32  { return r.runningThreads.Add(-1) }

// RunningJobs returns the current in-flight job count; never negative
// (spec invariant §3.3... see §3 Invariants).
func (r *RunState) RunningJobs() int32 { return r.runningJobs.Load() }

// RunningThreads returns the current live worker-thread count.
func (r *RunState) RunningThreads() int32 { return r.runningThreads.Load() }
