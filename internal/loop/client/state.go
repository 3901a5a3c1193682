package client

import (
	"time"

	"github.com/tomz197/nightsky/internal/input"
)

// ViewState represents what the viewer is currently looking at.
type ViewState int

const (
	ViewBrowsing ViewState = iota // Scrolling the page
	ViewShutdown                  // Server is shutting down
)

// ClientState holds per-viewer state. Each client has its own instance.
type ClientState struct {
	Input         input.Input
	ViewState     ViewState
	prevViewState ViewState
	Running       bool          // Client loop running
	delta         time.Duration // Frame delta time
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the inactivity warning is showing
	wasInactive   bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		ViewState: ViewBrowsing,
		Running:   true,
	}
}
