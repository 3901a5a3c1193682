package hub

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	h := New()
	h.pollInterval = time.Millisecond
	return h
}

func TestRegisterUnregister(t *testing.T) {
	h := newTestHub()

	a := h.Register("ada")
	b := h.Register("bob")
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "ada", a.Username)
	assert.Equal(t, 2, h.Count())

	h.Unregister(a.ID)
	h.Unregister(a.ID)
	h.Unregister(999)
	assert.Equal(t, 1, h.Count())

	_, open := <-a.Events
	assert.False(t, open, "events closed on unregister")
}

func TestConcurrentRegistration(t *testing.T) {
	h := newTestHub()
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			handle := h.Register("viewer")
			h.Unregister(handle.ID)
		}()
	}
	wg.Wait()
	assert.Zero(t, h.Count())
}

func TestShutdownWaitsForViewers(t *testing.T) {
	h := newTestHub()
	handle := h.Register("ada")

	go func() {
		ev := <-handle.Events
		if ev.Type == EventShutdown {
			h.Unregister(handle.ID)
		}
	}()

	require.True(t, h.Shutdown(time.Second))
	assert.Zero(t, h.Count())
}

func TestShutdownTimesOut(t *testing.T) {
	h := newTestHub()
	handle := h.Register("stubborn")

	start := time.Now()
	assert.False(t, h.Shutdown(20*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	assert.Equal(t, EventShutdown, (<-handle.Events).Type)
}

func TestShutdownEmpty(t *testing.T) {
	assert.True(t, newTestHub().Shutdown(time.Hour))
}
