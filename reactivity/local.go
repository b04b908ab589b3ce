package reactivity

import (
	"sync"

	"github.com/petermattis/goid"
)

var locals sync.Map

// Local returns the System bound to the calling goroutine, creating it with
// opts on first use.
func Local(opts ...Option) *System {
	gid := goid.Get()
	if rs, ok := locals.Load(gid); ok {
		return rs.(*System)
	}
	rs, _ := locals.LoadOrStore(gid, New(opts...))
	return rs.(*System)
}

// ReleaseLocal disposes the calling goroutine's System, if any.
func ReleaseLocal() {
	if rs, ok := locals.LoadAndDelete(goid.Get()); ok {
		rs.(*System).Dispose()
	}
}
