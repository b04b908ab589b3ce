package reactivity

import mapset "github.com/deckarep/golang-set/v2"

type ErrFn func() error

// EffectRunner is a registered side effect. Its subscriptions are rebuilt
// from scratch on every run.
type EffectRunner struct {
	id        uint64
	rs        *System
	fn        func() any
	deps      mapset.Set[*dep]
	lazy      bool
	scheduler func(e *EffectRunner)
	stopped   bool
}

type EffectOption func(e *EffectRunner)

// Lazy registers the effect without running it.
func Lazy() EffectOption {
	return func(e *EffectRunner) {
		e.lazy = true
	}
}

// WithScheduler hands the effect to fn instead of running it when one of
// its dependencies changes.
func WithScheduler(fn func(e *EffectRunner)) EffectOption {
	return func(e *EffectRunner) {
		e.scheduler = fn
	}
}

// Queued defers re-runs to the system job queue. A queued run is dropped if
// the effect is stopped before the flush.
func Queued() EffectOption {
	return func(e *EffectRunner) {
		job := &queuedEffect{e: e}
		e.scheduler = func(e *EffectRunner) {
			e.rs.QueueJob(job)
		}
	}
}

type queuedEffect struct {
	e *EffectRunner
}

func (j *queuedEffect) Run() {
	if j.e.stopped {
		return
	}
	j.e.run()
}

// Effect registers fn and, unless Lazy is given, runs it once. Errors
// returned by fn are reported to the system error handler.
func Effect(rs *System, fn ErrFn, opts ...EffectOption) *EffectRunner {
	e := newEffect(rs, func() any {
		if err := fn(); err != nil {
			rs.report("effect", nil, err)
		}
		return nil
	}, opts...)
	if !e.lazy {
		e.run()
	}
	return e
}

func newEffect(rs *System, fn func() any, opts ...EffectOption) *EffectRunner {
	e := &EffectRunner{
		id:   nextID(),
		rs:   rs,
		fn:   fn,
		deps: mapset.NewThreadUnsafeSet[*dep](),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *EffectRunner) ID() uint64 {
	return e.id
}

func (e *EffectRunner) Active() bool {
	return !e.stopped
}

// Run executes the effect now, bypassing its scheduler.
func (e *EffectRunner) Run() {
	e.run()
}

func (e *EffectRunner) run() any {
	rs := e.rs
	if e.stopped {
		return e.fn()
	}
	e.cleanup()

	prevTrack := rs.shouldTrack
	rs.shouldTrack = true
	rs.effectStack = append(rs.effectStack, e)
	rs.activeEffect = e
	defer func() {
		if n := len(rs.effectStack); n > 0 {
			rs.effectStack = rs.effectStack[:n-1]
		}
		rs.activeEffect = nil
		if n := len(rs.effectStack); n > 0 {
			rs.activeEffect = rs.effectStack[n-1]
		}
		rs.shouldTrack = prevTrack
	}()

	rs.metrics.effectRun()
	return e.fn()
}

// Stop detaches the effect from every dependency. A stopped effect is never
// re-run by a trigger.
func (e *EffectRunner) Stop() {
	if e.stopped {
		return
	}
	e.cleanup()
	e.stopped = true
}

func (e *EffectRunner) cleanup() {
	e.deps.Each(func(d *dep) bool {
		d.remove(e)
		return false
	})
	e.deps.Clear()
}
