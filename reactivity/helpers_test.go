package reactivity_test

import (
	"testing"

	"github.com/delaneyj/proxyparty/reactivity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// strictSystem fails the test on any diagnostic.
func strictSystem(t *testing.T) *reactivity.System {
	t.Helper()
	return reactivity.New(reactivity.WithErrorHandler(func(d *reactivity.Diagnostic) {
		assert.FailNow(t, d.Error())
	}))
}

// recordingSystem collects diagnostics instead of failing.
func recordingSystem(t *testing.T) (*reactivity.System, *[]*reactivity.Diagnostic) {
	t.Helper()
	var diags []*reactivity.Diagnostic
	rs := reactivity.New(reactivity.WithErrorHandler(func(d *reactivity.Diagnostic) {
		diags = append(diags, d)
	}))
	return rs, &diags
}

func reactiveRecord(t *testing.T, rs *reactivity.System, fields map[string]any) *reactivity.RecordProxy {
	t.Helper()
	p, ok := reactivity.Reactive(rs, reactivity.NewRecord(fields)).(*reactivity.RecordProxy)
	require.True(t, ok)
	return p
}

func reactiveList(t *testing.T, rs *reactivity.System, items ...any) *reactivity.ListProxy {
	t.Helper()
	p, ok := reactivity.Reactive(rs, reactivity.NewList(items...)).(*reactivity.ListProxy)
	require.True(t, ok)
	return p
}
