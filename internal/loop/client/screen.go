package client

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/nightsky/internal/draw"
	"github.com/tomz197/nightsky/internal/host"
	"github.com/tomz197/nightsky/internal/loop/config"
)

var (
	overlayTitle = draw.RGB{R: 255, G: 220, B: 140}
	overlayText  = draw.RGB{R: 200, G: 200, B: 230}
)

// drawFrame composes the page text over the starfield pixels and renders
// the changed cells plus the status bar.
func (c *Client) drawFrame() error {
	// On view or inactivity transitions, do a full terminal clear
	// so overlays from the previous state don't persist on screen.
	stateChanged := c.state.ViewState != c.state.prevViewState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.ClearScreen()
		c.canvas.ForceRedraw()
		c.status.invalidate()
		c.state.prevViewState = c.state.ViewState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.ClearText()

	switch {
	case c.state.ViewState == ViewShutdown:
		c.drawShutdownScreen()
	case c.state.isInactive:
		c.drawInactivityScreen()
	default:
		for _, run := range c.site.TextRuns() {
			c.canvas.SetText(run.Col, run.Row, run.Text, toRGB(run.Paint))
		}
	}

	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	c.drawStatusBar()

	return c.chunkWriter.Flush()
}

func toRGB(p host.Paint) draw.RGB {
	if p.A >= 1 {
		return draw.RGB{R: p.R, G: p.G, B: p.B}
	}
	a := math.Max(p.A, 0)
	return draw.RGB{
		R: uint8(math.Round(float64(p.R) * a)),
		G: uint8(math.Round(float64(p.G) * a)),
		B: uint8(math.Round(float64(p.B) * a)),
	}
}

// centerText writes s centered on a canvas row.
func (c *Client) centerText(row int, s string, fg draw.RGB) {
	col := (c.canvas.TerminalWidth() - lipgloss.Width(s)) / 2
	c.canvas.SetText(col, row, s, fg)
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen() {
	centerY := c.canvas.TerminalHeight() / 2
	c.centerText(centerY-2, "INACTIVITY WARNING", overlayTitle)

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	c.centerText(centerY, msg, overlayText)
	c.centerText(centerY+2, "Press any key to continue", overlayText)
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen() {
	centerY := c.canvas.TerminalHeight() / 2
	c.centerText(centerY-3, "SERVER SHUTTING DOWN", overlayTitle)
	c.centerText(centerY-1, "The server is restarting for maintenance.", overlayText)
	c.centerText(centerY, "Please reconnect in a moment.", overlayText)

	remaining := int(c.state.shutdownTimer) + 1
	c.centerText(centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining), overlayText)
	c.centerText(centerY+4, "Press Q to disconnect now", overlayText)
}

// drawStatusBar writes the bottom row when its content changed.
func (c *Client) drawStatusBar() {
	width := c.canvas.TerminalWidth()
	progress := 100
	if maxScroll := c.doc.MaxScroll(); maxScroll > 0 {
		progress = int(math.Round(c.doc.ScrollY() / maxScroll * 100))
	}
	line := c.status.render(width, statusInfo{
		Title:    c.siteCfg.Title,
		User:     c.username,
		Viewers:  c.hub.Count(),
		Progress: progress,
	})
	if line == "" {
		return
	}
	c.chunkWriter.WriteAt(1, c.canvas.TerminalHeight()+1, line)
}

// statusInfo is what the status bar shows.
type statusInfo struct {
	Title    string
	User     string
	Viewers  int
	Progress int
}

// statusBar renders the bottom row with lipgloss and remembers the last
// output so unchanged bars are not resent.
type statusBar struct {
	accent lipgloss.Style
	bar    lipgloss.Style
	last   string
}

func newStatusBar(r *lipgloss.Renderer) statusBar {
	return statusBar{
		accent: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFDC8C")).
			Background(lipgloss.Color("#2A2A4A")),
		bar: r.NewStyle().
			Foreground(lipgloss.Color("#A0A0C8")).
			Background(lipgloss.Color("#14142A")),
	}
}

func (s *statusBar) invalidate() {
	s.last = ""
}

// render returns the bar for width columns, or "" if it is unchanged.
func (s *statusBar) render(width int, info statusInfo) string {
	left := s.accent.Render(" ✦ " + info.Title + " ")

	who := fmt.Sprintf(" %d watching ", info.Viewers)
	if info.User != "" {
		who = " " + info.User + " ·" + who
	}
	right := fmt.Sprintf("%s %3d%%  j/k scroll · q quit ", who, info.Progress)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	var line string
	switch {
	case gap >= 0:
		line = left + s.bar.Render(strings.Repeat(" ", gap)+right)
	case width > lipgloss.Width(left):
		line = left + s.bar.Render(strings.Repeat(" ", width-lipgloss.Width(left)))
	default:
		line = s.bar.Render(strings.Repeat(" ", max(width, 0)))
	}

	if line == s.last {
		return ""
	}
	s.last = line
	return line
}
