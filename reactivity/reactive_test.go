package reactivity_test

import (
	"testing"

	"github.com/delaneyj/proxyparty/reactivity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProxyIdentity(t *testing.T) {
	rs := strictSystem(t)
	raw := reactivity.NewRecord(map[string]any{"a": 1})

	p := reactivity.Reactive(rs, raw)
	assert.Same(t, p, reactivity.Reactive(rs, raw))
	assert.Same(t, p, reactivity.Reactive(rs, p))
	assert.Same(t, raw, p.Raw())

	ro := reactivity.Readonly(rs, raw)
	assert.NotSame(t, p, ro)
	assert.Same(t, ro, reactivity.Readonly(rs, p))
	assert.NotSame(t, ro, reactivity.ShallowReadonly(rs, raw))
	assert.NotSame(t, p, reactivity.ShallowReactive(rs, raw))

	assert.True(t, reactivity.IsReactive(p))
	assert.True(t, reactivity.IsReadonly(ro))
	assert.False(t, reactivity.IsProxy(raw))
	assert.Same(t, raw, reactivity.ToRaw(ro))
}

func TestContainerKinds(t *testing.T) {
	rs := strictSystem(t)
	cases := []struct {
		raw  reactivity.Container
		kind reactivity.Kind
	}{
		{reactivity.NewRecord(nil), reactivity.KindRecord},
		{reactivity.NewList(), reactivity.KindList},
		{reactivity.NewSet(), reactivity.KindSet},
		{reactivity.NewMap(), reactivity.KindMap},
	}
	for _, tc := range cases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			assert.Equal(t, tc.kind, tc.raw.Kind())
			p := reactivity.Reactive(rs, tc.raw)
			require.NotNil(t, p)
			assert.Same(t, tc.raw, p.Raw())
		})
	}
}

func TestReactiveRejectsNonContainers(t *testing.T) {
	rs, diags := recordingSystem(t)

	assert.Nil(t, reactivity.Reactive(rs, 42))
	require.Len(t, *diags, 1)
	assert.ErrorIs(t, (*diags)[0], reactivity.ErrNotContainer)
}

func TestNestedWrapping(t *testing.T) {
	rs := strictSystem(t)
	child := reactivity.NewRecord(map[string]any{"x": 1})
	state := reactiveRecord(t, rs, map[string]any{"child": child})

	nested, ok := state.Get("child").(*reactivity.RecordProxy)
	require.True(t, ok)
	assert.Same(t, nested, state.Get("child"))
	assert.Same(t, child, nested.Raw())

	runs := 0
	reactivity.Effect(rs, func() error {
		runs++
		state.Get("child").(*reactivity.RecordProxy).Get("x")
		return nil
	})
	nested.Set("x", 2)
	assert.Equal(t, 2, runs)

	ro := reactivity.Readonly(rs, state).(*reactivity.RecordProxy)
	assert.True(t, reactivity.IsReadonly(ro.Get("child")))
}

func TestShallowReactive(t *testing.T) {
	rs := strictSystem(t)
	child := reactivity.NewRecord(map[string]any{"x": 1})
	state := reactivity.ShallowReactive(rs, reactivity.NewRecord(map[string]any{"child": child})).(*reactivity.RecordProxy)

	assert.Same(t, child, state.Get("child"))

	runs := 0
	reactivity.Effect(rs, func() error {
		runs++
		state.Get("child")
		return nil
	})
	child.Put("x", 2)
	assert.Equal(t, 1, runs)

	state.Set("child", reactivity.NewRecord(nil))
	assert.Equal(t, 2, runs)
}

func TestReadonlyRejectsWrites(t *testing.T) {
	rs, diags := recordingSystem(t)
	raw := reactivity.NewRecord(map[string]any{"a": 1})
	ro := reactivity.Readonly(rs, raw).(*reactivity.RecordProxy)

	ro.Set("a", 2)
	assert.False(t, ro.Delete("a"))
	v, _ := raw.Get("a")
	assert.Equal(t, 1, v)

	require.Len(t, *diags, 2)
	for _, d := range *diags {
		assert.ErrorIs(t, d, reactivity.ErrReadonly)
	}
	assert.Equal(t, "set", (*diags)[0].Op)
	assert.Equal(t, "a", (*diags)[0].Key)
}

// should re-run enumeration on delete and add, but not on value writes
func TestRecordEnumeration(t *testing.T) {
	rs := strictSystem(t)
	state := reactiveRecord(t, rs, map[string]any{"foo": 1, "bar": 2})

	runs := 0
	var keys []string
	reactivity.Effect(rs, func() error {
		runs++
		keys = state.Keys()
		return nil
	})
	assert.Equal(t, []string{"bar", "foo"}, keys)

	state.Set("foo", 10)
	assert.Equal(t, 1, runs)

	state.Delete("foo")
	assert.Equal(t, 2, runs)
	assert.Equal(t, []string{"bar"}, keys)

	state.Set("baz", 3)
	assert.Equal(t, 3, runs)
	assert.Equal(t, []string{"bar", "baz"}, keys)

	assert.False(t, state.Delete("missing"))
	assert.Equal(t, 3, runs)
}

func TestRecordDeleteRerunsKeyReaders(t *testing.T) {
	rs := strictSystem(t)
	state := reactiveRecord(t, rs, map[string]any{"a": 1})

	var seen any = "unset"
	reactivity.Effect(rs, func() error {
		seen = state.Get("a")
		return nil
	})
	state.Delete("a")
	assert.Nil(t, seen)
}

func TestRecordHasTracksKey(t *testing.T) {
	rs := strictSystem(t)
	state := reactiveRecord(t, rs, nil)

	var has bool
	reactivity.Effect(rs, func() error {
		has = state.Has("x")
		return nil
	})
	assert.False(t, has)

	state.Set("x", nil)
	assert.True(t, has)
}

// should fall through to the prototype and trigger only once
func TestRecordPrototype(t *testing.T) {
	rs := strictSystem(t)
	parentRaw := reactivity.NewRecord(map[string]any{"bar": 1})
	childRaw := reactivity.NewRecord(nil).SetProto(parentRaw)
	parent := reactivity.Reactive(rs, parentRaw).(*reactivity.RecordProxy)
	child := reactivity.Reactive(rs, childRaw).(*reactivity.RecordProxy)

	runs := 0
	var seen any
	reactivity.Effect(rs, func() error {
		runs++
		seen = child.Get("bar")
		return nil
	})
	assert.Equal(t, 1, seen)
	assert.True(t, child.Has("bar"))

	parent.Set("bar", 2)
	assert.Equal(t, 2, runs)
	assert.Equal(t, 2, seen)

	child.Set("bar", 3)
	assert.Equal(t, 3, runs)
	assert.Equal(t, 3, seen)
	v, _ := parentRaw.Get("bar")
	assert.Equal(t, 2, v)
}

func TestStoredProxiesAreUnwrapped(t *testing.T) {
	rs := strictSystem(t)
	state := reactiveRecord(t, rs, nil)
	child := reactiveRecord(t, rs, map[string]any{"x": 1})

	state.Set("child", child)
	raw, _ := state.Record().Get("child")
	assert.Same(t, child.Raw(), raw)
	assert.Same(t, child, state.Get("child"))
}

func TestDisposeDropsSubscriptions(t *testing.T) {
	rs := strictSystem(t)
	state := reactiveRecord(t, rs, map[string]any{"a": 1})

	runs := 0
	reactivity.Effect(rs, func() error {
		runs++
		state.Get("a")
		return nil
	})
	rs.Dispose()

	state.Set("a", 2)
	assert.Equal(t, 1, runs)
	assert.Equal(t, 2, state.Get("a"))

	assert.NotSame(t, state, reactivity.Reactive(rs, state.Raw()))
}

func TestSnapshot(t *testing.T) {
	rs := strictSystem(t)
	state := reactiveRecord(t, rs, map[string]any{
		"list": reactivity.NewList(1, 2),
		"name": "x",
	})
	assert.Equal(t, map[string]any{
		"list": []any{1, 2},
		"name": "x",
	}, reactivity.Snapshot(state))
}
