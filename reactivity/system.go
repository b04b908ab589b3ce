package reactivity

import (
	"github.com/petermattis/goid"
	"go.opentelemetry.io/otel/trace"
)

// System owns every piece of mutable engine state. Independent systems never
// share subscriptions, proxies or queued jobs. A System is not safe for
// concurrent use; drive it from a single goroutine.
type System struct {
	bucket  map[any]map[any]*dep
	proxies [4]map[Container]Proxy

	effectStack  []*EffectRunner
	activeEffect *EffectRunner
	shouldTrack  bool
	trackStack   []bool

	queue      jobQueue
	batchDepth int

	onError   OnErrorFunc
	metrics   *Metrics
	tracer    trace.Tracer
	observer  func(Event)
	flushHook func()

	checkGoroutine bool
	ownerGID       int64
}

type Option func(rs *System)

// WithErrorHandler replaces the default handler, which logs every diagnostic.
func WithErrorHandler(fn OnErrorFunc) Option {
	return func(rs *System) {
		rs.onError = fn
	}
}

func WithMetrics(m *Metrics) Option {
	return func(rs *System) {
		rs.metrics = m
	}
}

func WithObserver(fn func(Event)) Option {
	return func(rs *System) {
		rs.observer = fn
	}
}

// WithFlushHook registers fn to be called whenever the job queue goes from
// empty to pending outside a batch. Hosts use it to schedule a Flush.
func WithFlushHook(fn func()) Option {
	return func(rs *System) {
		rs.flushHook = fn
	}
}

// WithGoroutineCheck pins the system to the goroutine calling New and
// reports ErrForeignGoroutine when it is tracked or triggered elsewhere.
func WithGoroutineCheck() Option {
	return func(rs *System) {
		rs.checkGoroutine = true
	}
}

func New(opts ...Option) *System {
	rs := &System{
		onError:     logDiagnostic,
		tracer:      defaultTracer(),
		shouldTrack: true,
	}
	rs.reset()
	for _, opt := range opts {
		opt(rs)
	}
	if rs.checkGoroutine {
		rs.ownerGID = goid.Get()
	}
	return rs
}

func (rs *System) reset() {
	rs.bucket = map[any]map[any]*dep{}
	for i := range rs.proxies {
		rs.proxies[i] = map[Container]Proxy{}
	}
	rs.effectStack = nil
	rs.activeEffect = nil
	rs.shouldTrack = true
	rs.trackStack = nil
	rs.queue.reset()
	rs.batchDepth = 0
}

// Dispose drops every subscription, cached proxy and queued job. Proxies
// handed out before Dispose keep working as plain accessors but no longer
// trigger anything.
func (rs *System) Dispose() {
	for _, keys := range rs.bucket {
		for _, d := range keys {
			for _, e := range d.subs {
				e.deps.Clear()
			}
		}
	}
	rs.reset()
}

// ActiveEffect returns the effect currently running, or nil.
func (rs *System) ActiveEffect() *EffectRunner {
	return rs.activeEffect
}

func (rs *System) PauseTracking() {
	rs.trackStack = append(rs.trackStack, rs.shouldTrack)
	rs.shouldTrack = false
}

func (rs *System) ResumeTracking() {
	lastIdx := len(rs.trackStack) - 1
	if lastIdx < 0 {
		rs.shouldTrack = true
		return
	}
	rs.shouldTrack = rs.trackStack[lastIdx]
	rs.trackStack = rs.trackStack[:lastIdx]
}

// Untrack runs fn without recording any dependency for the active effect.
func Untrack[T any](rs *System, fn func() T) T {
	rs.PauseTracking()
	defer rs.ResumeTracking()
	return fn()
}

func (rs *System) checkOwner(op string) {
	if rs.checkGoroutine && goid.Get() != rs.ownerGID {
		rs.report(op, nil, ErrForeignGoroutine)
	}
}
