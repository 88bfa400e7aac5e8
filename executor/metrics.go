package executor

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	tmetric "github.com/signalgraph/engine/telemetry/metric"
)

// instruments are the OTel counters shared by every ExecutorService in the
// process; they resolve against telemetry/metric's Meter once, lazily, so
// construction order relative to metric.Start doesn't matter as long as
// Start runs before the first job is queued.
type instruments struct {
	queued    metric.Int64Counter
	completed metric.Int64Counter
	failed    metric.Int64Counter
	running   metric.Int64UpDownCounter
}

var (
	instrOnce sync.Once
	instr     instruments
)

func loadInstruments() instruments {
	instrOnce.Do(func() {
		m := tmetric.Meter
		instr.queued, _ = m.Int64Counter("executor.jobs.queued",
			metric.WithDescription("jobs accepted by QueueJob"))
		instr.completed, _ = m.Int64Counter("executor.jobs.completed",
			metric.WithDescription("jobs that finished with RunResult Success"))
		instr.failed, _ = m.Int64Counter("executor.jobs.failed",
			metric.WithDescription("jobs that finished Failure/Cancelled, or were dropped after max tries"))
		instr.running, _ = m.Int64UpDownCounter("executor.jobs.running",
			metric.WithDescription("jobs currently inside Runnable.Run"))
	})
	return instr
}

// Metrics is a point-in-time snapshot of one executor's counters (spec
// §4.2's running_jobs plus lifetime queue/completion totals).
type Metrics struct {
	Queued    int64
	Completed int64
	Failed    int64
	Running   int32
}

// Metrics returns a snapshot of this executor's lifetime job counters.
func (s *ExecutorService) Metrics() Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Metrics{
		Queued:    s.numTotalRequests,
		Completed: s.numCompleted,
		Failed:    s.numFailed,
		Running:   s.state.RunningJobs(),
	}
}

func (s *ExecutorService) recordQueued() {
	loadInstruments().queued.Add(context.Background(), 1, metric.WithAttributes(attribute.String("executor", s.name)))
}

func (s *ExecutorService) recordRunning(delta int64) {
	loadInstruments().running.Add(context.Background(), delta, metric.WithAttributes(attribute.String("executor", s.name)))
}

func (s *ExecutorService) recordCompleted() {
	loadInstruments().completed.Add(context.Background(), 1, metric.WithAttributes(attribute.String("executor", s.name)))
}

func (s *ExecutorService) recordFailed() {
	loadInstruments().failed.Add(context.Background(), 1, metric.WithAttributes(attribute.String("executor", s.name)))
}
