package reactivity

import (
	"context"
	"fmt"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Job is a unit of deferred work. Jobs are deduplicated by identity, so a
// job must be comparable.
type Job interface {
	Run()
}

type jobFunc struct {
	fn func()
}

func (j *jobFunc) Run() { j.fn() }

// JobFunc wraps fn in a job. Each call returns a distinct job; keep the
// result to queue the same job twice.
func JobFunc(fn func()) Job {
	return &jobFunc{fn: fn}
}

type jobQueue struct {
	jobs     []Job
	queued   mapset.Set[Job]
	pending  bool
	flushing bool
}

func (q *jobQueue) reset() {
	q.jobs = nil
	q.queued = mapset.NewThreadUnsafeSet[Job]()
	q.pending = false
	q.flushing = false
}

// QueueJob adds job to the pending set unless it is already there. A job
// that already ran in the current flush is not queued again until the flush
// ends, so it does not observe writes made by jobs after it.
func (rs *System) QueueJob(job Job) {
	q := &rs.queue
	if !q.queued.Add(job) {
		return
	}
	q.jobs = append(q.jobs, job)
	rs.metrics.jobQueued()

	if q.pending {
		return
	}
	q.pending = true
	if rs.flushHook != nil && rs.batchDepth == 0 && !q.flushing {
		rs.flushHook()
	}
}

// Pending reports whether a flush has work to do.
func (rs *System) Pending() bool {
	return rs.queue.pending
}

func (rs *System) Flush() int {
	return rs.FlushContext(context.Background())
}

// FlushContext runs every pending job once in the order it was queued. Jobs
// queued while flushing run in the same flush; a job already run in this
// flush is not queued again until the flush ends. It returns the number of
// jobs run. Flushing from inside a job is a no-op.
func (rs *System) FlushContext(ctx context.Context) (ran int) {
	q := &rs.queue
	if q.flushing || !q.pending {
		return 0
	}
	q.flushing = true

	_, span := rs.tracer.Start(ctx, "reactivity.flush")
	start := time.Now()
	defer func() {
		q.jobs = nil
		q.queued.Clear()
		q.pending = false
		q.flushing = false

		span.SetAttributes(attribute.Int("reactivity.jobs", ran))
		if r := recover(); r != nil {
			span.SetStatus(codes.Error, fmt.Sprint(r))
			span.End()
			panic(r)
		}
		span.End()

		rs.metrics.flush(time.Since(start))
		if rs.observer != nil {
			rs.observer(Event{Type: EventFlush, Jobs: ran})
		}
	}()

	for i := 0; i < len(q.jobs); i++ {
		q.jobs[i].Run()
		ran++
	}
	return ran
}

// Batch defers the flush of jobs queued by fn until the outermost batch
// returns.
func (rs *System) Batch(fn func()) {
	rs.StartBatch()
	defer rs.EndBatch()
	fn()
}

func (rs *System) StartBatch() {
	rs.batchDepth++
}

// EndBatch closes the innermost batch and flushes when it was the outermost.
// An unmatched call is reported and ignored.
func (rs *System) EndBatch() {
	if rs.batchDepth == 0 {
		rs.report("batch.end", nil, ErrUnbalancedBatch)
		return
	}
	rs.batchDepth--
	if rs.batchDepth == 0 {
		rs.Flush()
	}
}
