package reactivity_test

import (
	"testing"

	"github.com/delaneyj/proxyparty/reactivity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type change[T any] struct {
	newValue, oldValue T
}

func TestWatchGetter(t *testing.T) {
	rs := strictSystem(t)
	state := reactiveRecord(t, rs, map[string]any{"a": 1})

	var changes []change[int]
	reactivity.Watch(rs, func() int {
		return state.Get("a").(int)
	}, func(newValue, oldValue int, _ reactivity.OnCleanup) {
		changes = append(changes, change[int]{newValue, oldValue})
	})
	assert.Empty(t, changes)

	state.Set("a", 5)
	assert.Equal(t, []change[int]{{5, 1}}, changes)
}

// should fire on every trigger, even when the getter result repeats
func TestWatchFiresPerTrigger(t *testing.T) {
	rs := strictSystem(t)
	state := reactiveRecord(t, rs, map[string]any{"a": 1})

	var changes []change[bool]
	reactivity.Watch(rs, func() bool {
		return state.Get("a").(int)%2 == 1
	}, func(newValue, oldValue bool, _ reactivity.OnCleanup) {
		changes = append(changes, change[bool]{newValue, oldValue})
	})

	state.Set("a", 3)
	assert.Equal(t, []change[bool]{{true, true}}, changes)
}

func TestWatchImmediate(t *testing.T) {
	rs := strictSystem(t)
	state := reactiveRecord(t, rs, map[string]any{"a": 1})

	var changes []change[int]
	reactivity.Watch(rs, func() int {
		return state.Get("a").(int)
	}, func(newValue, oldValue int, _ reactivity.OnCleanup) {
		changes = append(changes, change[int]{newValue, oldValue})
	}, reactivity.Immediate())
	assert.Equal(t, []change[int]{{1, 0}}, changes)

	state.Set("a", 2)
	assert.Equal(t, []change[int]{{1, 0}, {2, 1}}, changes)
}

func TestWatchFlushPost(t *testing.T) {
	rs := strictSystem(t)
	state := reactiveRecord(t, rs, map[string]any{"a": 1})

	var changes []change[int]
	reactivity.Watch(rs, func() int {
		return state.Get("a").(int)
	}, func(newValue, oldValue int, _ reactivity.OnCleanup) {
		changes = append(changes, change[int]{newValue, oldValue})
	}, reactivity.WithFlush(reactivity.FlushPost))

	state.Set("a", 2)
	state.Set("a", 3)
	assert.Empty(t, changes)
	assert.True(t, rs.Pending())

	assert.Equal(t, 1, rs.Flush())
	assert.Equal(t, []change[int]{{3, 1}}, changes)
}

// should expire the previous callback before running the next
func TestWatchCleanup(t *testing.T) {
	rs := strictSystem(t)
	state := reactiveRecord(t, rs, map[string]any{"a": 1})

	var expired []int
	stop := reactivity.Watch(rs, func() int {
		return state.Get("a").(int)
	}, func(newValue, _ int, onCleanup reactivity.OnCleanup) {
		onCleanup(func() {
			expired = append(expired, newValue)
		})
	})

	state.Set("a", 2)
	assert.Empty(t, expired)
	state.Set("a", 3)
	assert.Equal(t, []int{2}, expired)

	stop()
	assert.Equal(t, []int{2, 3}, expired)
	stop()

	state.Set("a", 4)
	assert.Equal(t, []int{2, 3}, expired)
}

func TestWatchProxyDeep(t *testing.T) {
	rs := strictSystem(t)
	child := reactivity.NewRecord(map[string]any{"x": 1})
	items := reactivity.NewList(reactivity.NewMap().Put("k", 1))
	state := reactiveRecord(t, rs, map[string]any{"child": child, "items": items})
	child.Put("self", state.Raw())

	calls := 0
	reactivity.WatchProxy(rs, state, func(newValue, oldValue reactivity.Proxy, _ reactivity.OnCleanup) {
		calls++
		assert.Same(t, state, newValue)
		assert.Same(t, newValue, oldValue)
	})

	state.Get("child").(*reactivity.RecordProxy).Set("x", 2)
	assert.Equal(t, 1, calls)

	list := state.Get("items").(*reactivity.ListProxy)
	list.At(0).(*reactivity.MapProxy).Set("k", 2)
	assert.Equal(t, 2, calls)

	list.Push(3)
	assert.Equal(t, 3, calls)
}

func TestWatchStop(t *testing.T) {
	rs := strictSystem(t)
	state := reactiveRecord(t, rs, map[string]any{"a": 1})

	calls := 0
	stop := reactivity.Watch(rs, func() any {
		return state.Get("a")
	}, func(_, _ any, _ reactivity.OnCleanup) {
		calls++
	}, reactivity.WithFlush(reactivity.FlushPost))

	state.Set("a", 2)
	stop()
	require.Equal(t, 1, rs.Flush())
	assert.Equal(t, 0, calls)
}
