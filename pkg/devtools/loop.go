package devtools

import (
	"context"
	"errors"
	"fmt"

	"github.com/delaneyj/proxyparty/reactivity"
)

var ErrLoopClosed = errors.New("devtools: loop closed")

type task struct {
	fn   func(rs *reactivity.System)
	done chan error
}

// Loop owns a reactivity.System on one goroutine. Other goroutines reach the
// system only through Do, and the loop flushes queued jobs after every task.
type Loop struct {
	opts    []reactivity.Option
	tasks   chan task
	stopped chan struct{}
}

func NewLoop(opts ...reactivity.Option) *Loop {
	return &Loop{
		opts:    opts,
		tasks:   make(chan task),
		stopped: make(chan struct{}),
	}
}

// Run creates the system and serves tasks until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	opts := append([]reactivity.Option{reactivity.WithGoroutineCheck()}, l.opts...)
	rs := reactivity.New(opts...)
	defer func() {
		rs.Dispose()
		close(l.stopped)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case t := <-l.tasks:
			t.done <- l.exec(ctx, rs, t.fn)
		}
	}
}

func (l *Loop) exec(ctx context.Context, rs *reactivity.System, fn func(rs *reactivity.System)) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("devtools: task panicked: %v", r)
		}
	}()
	fn(rs)
	rs.FlushContext(ctx)
	return nil
}

// Do runs fn on the loop goroutine and waits for it and the flush that
// follows it.
func (l *Loop) Do(ctx context.Context, fn func(rs *reactivity.System)) error {
	t := task{fn: fn, done: make(chan error, 1)}
	select {
	case l.tasks <- t:
	case <-l.stopped:
		return ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-t.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
