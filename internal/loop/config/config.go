// Package config centralizes the viewer loop's tunable parameters.
package config

import "time"

// Max render resolution in terminal cells. Larger terminals get the page
// centered with a border around it.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 60
)

// StatusRows is the number of terminal rows reserved below the page.
const StatusRows = 1

// Scrolling
const (
	ScrollSmoothing = 0.35 // Fraction of the remaining distance scrolled per frame
	ScrollSnap      = 0.02 // Remaining distance below which scrolling snaps to the target
	PageOverlap     = 2    // Rows kept on screen when paging
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Desktop window, in pixels per layout cell. Matches the debug font glyph.
const (
	DesktopCellWidth  = 6
	DesktopCellHeight = 16
)
