package devtools_test

import (
	"testing"

	"github.com/delaneyj/proxyparty/pkg/devtools"
	"github.com/delaneyj/proxyparty/reactivity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcast(t *testing.T) {
	hub := devtools.NewHub()
	a, cancelA := hub.Subscribe(1)
	b, cancelB := hub.Subscribe(1)
	defer cancelB()

	hub.Broadcast(reactivity.Event{Type: reactivity.EventFlush, Jobs: 1})
	hub.Broadcast(reactivity.Event{Type: reactivity.EventFlush, Jobs: 2})

	ev := <-a
	assert.Equal(t, 1, ev.Jobs)
	ev = <-b
	assert.Equal(t, 1, ev.Jobs)

	cancelA()
	_, ok := <-a
	assert.False(t, ok)
	cancelA()

	hub.Close()
	_, ok = <-b
	assert.False(t, ok)

	closed, _ := hub.Subscribe(1)
	_, ok = <-closed
	require.False(t, ok)
	hub.Broadcast(reactivity.Event{})
}

func TestNilHub(t *testing.T) {
	var hub *devtools.Hub
	ch, cancel := hub.Subscribe(1)
	assert.Nil(t, ch)
	assert.NotPanics(t, func() {
		cancel()
		hub.Broadcast(reactivity.Event{})
		hub.Close()
	})
}
