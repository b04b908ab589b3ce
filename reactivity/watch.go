package reactivity

import mapset "github.com/deckarep/golang-set/v2"

// OnCleanup registers fn to run before the next callback, or when the
// watcher stops.
type OnCleanup func(fn func())

type WatchCallback[T any] func(newValue, oldValue T, onCleanup OnCleanup)

// StopHandle stops a watcher. Calling it more than once is harmless.
type StopHandle func()

type FlushMode uint8

const (
	FlushSync FlushMode = iota
	FlushPost
)

type watchOptions struct {
	immediate bool
	flush     FlushMode
}

type WatchOption func(o *watchOptions)

// Immediate runs the callback once at registration with a zero old value.
func Immediate() WatchOption {
	return func(o *watchOptions) {
		o.immediate = true
	}
}

// WithFlush selects when the callback runs after a change. FlushPost defers
// it to the job queue.
func WithFlush(mode FlushMode) WatchOption {
	return func(o *watchOptions) {
		o.flush = mode
	}
}

type watcher[T any] struct {
	runner   *EffectRunner
	cb       WatchCallback[T]
	oldValue T
	cleanup  func()
	stopped  bool
}

func (w *watcher[T]) Run() {
	if w.stopped {
		return
	}
	w.runCleanup()
	newValue, _ := w.runner.run().(T)
	w.cb(newValue, w.oldValue, w.onCleanup)
	w.oldValue = newValue
}

func (w *watcher[T]) onCleanup(fn func()) {
	w.cleanup = fn
}

func (w *watcher[T]) runCleanup() {
	if w.cleanup == nil {
		return
	}
	fn := w.cleanup
	w.cleanup = nil
	fn()
}

func (w *watcher[T]) stop() {
	if w.stopped {
		return
	}
	w.stopped = true
	w.runner.Stop()
	w.runCleanup()
}

// Watch calls cb whenever a dependency read by getter is triggered.
func Watch[T any](rs *System, getter func() T, cb WatchCallback[T], opts ...WatchOption) StopHandle {
	var o watchOptions
	for _, opt := range opts {
		opt(&o)
	}

	w := &watcher[T]{cb: cb}
	w.runner = newEffect(rs, func() any {
		return getter()
	}, Lazy(), WithScheduler(func(*EffectRunner) {
		if o.flush == FlushPost {
			rs.QueueJob(w)
			return
		}
		w.Run()
	}))

	if o.immediate {
		w.Run()
	} else {
		w.oldValue, _ = w.runner.run().(T)
	}
	return w.stop
}

// WatchProxy watches every key, index, member and entry reachable from
// source. Old and new values are both source itself.
func WatchProxy(rs *System, source Proxy, cb WatchCallback[Proxy], opts ...WatchOption) StopHandle {
	return Watch(rs, func() Proxy {
		traverse(source, mapset.NewThreadUnsafeSet[Container]())
		return source
	}, cb, opts...)
}

func traverse(v any, seen mapset.Set[Container]) {
	p, ok := v.(Proxy)
	if !ok || p == nil || !seen.Add(p.Raw()) {
		return
	}
	switch t := p.(type) {
	case *RecordProxy:
		for _, k := range t.Keys() {
			traverse(t.Get(k), seen)
		}
	case *ListProxy:
		for _, item := range t.Values() {
			traverse(item, seen)
		}
	case *SetProxy:
		for _, m := range t.Values() {
			traverse(m, seen)
		}
	case *MapProxy:
		for _, e := range t.Entries() {
			traverse(e.Key, seen)
			traverse(e.Value, seen)
		}
	}
}
