// Package hub tracks the viewers connected to a shared server and delivers
// server-wide events to them.
package hub

import (
	"sync"
	"time"
)

// Registry is the interface clients use to join and leave the hub.
type Registry interface {
	Register(username string) *Handle
	Unregister(id int)
	Count() int
}

// Handle represents one viewer's membership.
type Handle struct {
	ID       int
	Username string
	Joined   time.Time
	Events   chan Event // Closed when the viewer is unregistered
}

// Event is sent from the hub to a viewer.
type Event struct {
	Type EventType
}

// EventType identifies the type of viewer event.
type EventType int

const (
	EventShutdown EventType = iota
)

// Hub is a concurrency-safe registry of viewers.
type Hub struct {
	mu     sync.RWMutex
	nextID int
	byID   map[int]*Handle

	// pollInterval is how often Shutdown checks for remaining viewers.
	pollInterval time.Duration
}

// Compile-time check that Hub implements Registry.
var _ Registry = (*Hub)(nil)

// New creates an empty hub.
func New() *Hub {
	return &Hub{
		nextID:       1,
		byID:         make(map[int]*Handle),
		pollInterval: 200 * time.Millisecond,
	}
}

// Register adds a viewer and returns its handle.
func (h *Hub) Register(username string) *Handle {
	h.mu.Lock()
	defer h.mu.Unlock()

	handle := &Handle{
		ID:       h.nextID,
		Username: username,
		Joined:   time.Now(),
		Events:   make(chan Event, 16),
	}
	h.nextID++
	h.byID[handle.ID] = handle
	return handle
}

// Unregister removes a viewer and closes its event channel. Unknown ids are
// ignored.
func (h *Hub) Unregister(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if handle, ok := h.byID[id]; ok {
		close(handle.Events)
		delete(h.byID, id)
	}
}

// Count returns the number of connected viewers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byID)
}

// Broadcast sends ev to every viewer. Viewers whose queue is full miss it.
func (h *Hub) Broadcast(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, handle := range h.byID {
		select {
		case handle.Events <- ev:
		default:
		}
	}
}

// Shutdown notifies all viewers that the server is going away and waits
// for them to disconnect, up to timeout. It reports whether every viewer
// left in time.
func (h *Hub) Shutdown(timeout time.Duration) bool {
	h.Broadcast(Event{Type: EventShutdown})

	deadline := time.After(timeout)
	ticker := time.NewTicker(h.pollInterval)
	defer ticker.Stop()

	for {
		if h.Count() == 0 {
			return true
		}
		select {
		case <-deadline:
			return false
		case <-ticker.C:
		}
	}
}
