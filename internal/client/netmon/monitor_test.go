package netmon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonitor_InitialState(t *testing.T) {
	assert.True(t, NewMonitor(true).IsOnline())
	assert.False(t, NewMonitor(false).IsOnline())
}

func TestMonitor_FiresOnTransitionsOnly(t *testing.T) {
	m := NewMonitor(false)

	var onlineCalls, offlineCalls int
	m.OnOnline(func() { onlineCalls++ })
	m.OnOffline(func() { offlineCalls++ })

	m.SetOnline(false) // re-assertion, no transition
	assert.Equal(t, 0, onlineCalls)
	assert.Equal(t, 0, offlineCalls)

	m.SetOnline(true)
	assert.True(t, m.IsOnline())
	assert.Equal(t, 1, onlineCalls)
	assert.Equal(t, 0, offlineCalls)

	m.SetOnline(true) // re-assertion again
	assert.Equal(t, 1, onlineCalls)

	m.SetOnline(false)
	assert.Equal(t, 1, onlineCalls)
	assert.Equal(t, 1, offlineCalls)
}

func TestMonitor_Unsubscribe(t *testing.T) {
	m := NewMonitor(false)

	var calls int
	unsubscribe := m.OnOnline(func() { calls++ })

	m.SetOnline(true)
	assert.Equal(t, 1, calls)

	unsubscribe()
	m.SetOnline(false)
	m.SetOnline(true)
	assert.Equal(t, 1, calls)

	// Unsubscribing twice is harmless.
	unsubscribe()
}

func TestMonitor_MultipleSubscribers(t *testing.T) {
	m := NewMonitor(false)

	var a, b int
	m.OnOnline(func() { a++ })
	m.OnOnline(func() { b++ })

	m.SetOnline(true)
	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
}
