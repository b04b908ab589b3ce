package reactivity_test

import (
	"testing"

	"github.com/delaneyj/proxyparty/reactivity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// should log 3 then 12 exactly once each
func TestComputedSum(t *testing.T) {
	rs := strictSystem(t)
	state := reactiveRecord(t, rs, map[string]any{"foo": 1, "bar": 2})

	sum := reactivity.Computed(rs, func() int {
		return state.Get("foo").(int) + state.Get("bar").(int)
	})
	var logged []int
	reactivity.Effect(rs, func() error {
		logged = append(logged, sum.Value())
		return nil
	})

	state.Set("foo", 10)
	assert.Equal(t, []int{3, 12}, logged)
}

func TestComputedIsLazyAndCached(t *testing.T) {
	rs := strictSystem(t)
	state := reactiveRecord(t, rs, map[string]any{"a": 1})

	calls := 0
	double := reactivity.Computed(rs, func() int {
		calls++
		return state.Get("a").(int) * 2
	})
	assert.Equal(t, 0, calls)
	assert.True(t, double.Dirty())

	assert.Equal(t, 2, double.Value())
	assert.Equal(t, 2, double.Value())
	assert.Equal(t, 1, calls)

	state.Set("a", 2)
	assert.True(t, double.Dirty())
	assert.Equal(t, 1, calls)
	assert.Equal(t, 4, double.Value())
	assert.Equal(t, 2, calls)
}

// should recompute once when both inputs change in one flush
func TestComputedBatchedRecompute(t *testing.T) {
	rs := strictSystem(t)
	state := reactiveRecord(t, rs, map[string]any{"foo": 1, "bar": 2})

	calls := 0
	sum := reactivity.Computed(rs, func() int {
		calls++
		return state.Get("foo").(int) + state.Get("bar").(int)
	})
	var logged []int
	reactivity.Effect(rs, func() error {
		logged = append(logged, sum.Value())
		return nil
	}, reactivity.Queued())
	assert.Equal(t, 1, calls)

	rs.Batch(func() {
		state.Set("foo", 2)
		state.Set("bar", 3)
	})
	assert.Equal(t, 2, calls)
	assert.Equal(t, []int{3, 5}, logged)
}

func TestComputedChain(t *testing.T) {
	rs := strictSystem(t)
	src := reactivity.NewRef(rs, 1)

	b := reactivity.Computed(rs, func() int { return src.Value() + 1 })
	c := reactivity.Computed(rs, func() int { return b.Value() * 10 })

	var seen int
	reactivity.Effect(rs, func() error {
		seen = c.Value()
		return nil
	})
	assert.Equal(t, 20, seen)

	src.SetValue(4)
	assert.Equal(t, 50, seen)
}

func TestComputedIsReadonly(t *testing.T) {
	rs, diags := recordingSystem(t)
	c := reactivity.Computed(rs, func() string { return "x" })

	c.SetValue("y")
	assert.Equal(t, "x", c.Value())
	require.Len(t, *diags, 1)
	assert.ErrorIs(t, (*diags)[0], reactivity.ErrComputedReadonly)
}

func TestComputedStop(t *testing.T) {
	rs := strictSystem(t)
	state := reactiveRecord(t, rs, map[string]any{"a": 1})
	c := reactivity.Computed(rs, func() int { return state.Get("a").(int) })

	assert.Equal(t, 1, c.Value())
	c.Stop()
	state.Set("a", 2)
	assert.False(t, c.Dirty())
	assert.Equal(t, 1, c.Value())
}
