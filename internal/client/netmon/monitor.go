// Package netmon tracks the device's connectivity state. The Monitor is the
// single source of truth every component consults before choosing a live or
// cached code path; no component keeps its own connectivity flag.
package netmon

import "sync"

// Monitor holds the current online state and notifies subscribers on
// transitions. State changes are pushed in via SetOnline by whatever acts
// as the platform signal (see Watcher); the monitor itself never polls.
type Monitor struct {
	mu        sync.Mutex
	online    bool
	nextID    int
	onOnline  map[int]func()
	onOffline map[int]func()
}

// NewMonitor returns a monitor with the given initial state.
func NewMonitor(online bool) *Monitor {
	return &Monitor{
		online:    online,
		onOnline:  make(map[int]func()),
		onOffline: make(map[int]func()),
	}
}

// IsOnline reports the state as of the last platform signal.
func (m *Monitor) IsOnline() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// OnOnline registers cb to run on offline→online transitions and returns
// its unsubscribe function. Unsubscribing twice is harmless.
func (m *Monitor) OnOnline(cb func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.onOnline[id] = cb
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.onOnline, id)
	}
}

// OnOffline registers cb to run on online→offline transitions and returns
// its unsubscribe function.
func (m *Monitor) OnOffline(cb func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.onOffline[id] = cb
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.onOffline, id)
	}
}

// SetOnline records the platform signal. Subscribers fire only on an
// actual transition, never on re-assertion of the current state, and are
// invoked outside the monitor lock.
func (m *Monitor) SetOnline(online bool) {
	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online

	var cbs []func()
	src := m.onOffline
	if online {
		src = m.onOnline
	}
	for _, cb := range src {
		cbs = append(cbs, cb)
	}
	m.mu.Unlock()

	for _, cb := range cbs {
		cb()
	}
}
