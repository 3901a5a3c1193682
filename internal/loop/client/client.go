// Package client runs the page for a single terminal viewer: input, smooth
// scrolling, the page's animation frames and diffed rendering.
package client

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/tomz197/nightsky/internal/draw"
	"github.com/tomz197/nightsky/internal/input"
	"github.com/tomz197/nightsky/internal/loop/config"
	"github.com/tomz197/nightsky/internal/loop/hub"
	"github.com/tomz197/nightsky/internal/page"
	"github.com/tomz197/nightsky/internal/site"
)

// Client handles rendering and input for a single connection.
type Client struct {
	hub          hub.Registry
	handle       *hub.Handle
	state        *ClientState
	doc          *page.Document
	site         *site.Site
	scroller     *page.Scroller
	siteCfg      site.Config
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates the status bar for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
	status       statusBar
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Site         site.Config
	Logger       *log.Logger
}

// NewClient builds the page for one viewer and registers it with the hub.
func NewClient(reg hub.Registry, r *bufio.Reader, w io.Writer, opts ClientOptions) (*Client, error) {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	siteCfg := opts.Site
	if siteCfg.Title == "" {
		siteCfg = site.TerminalConfig()
	}

	termWidth, termHeight, err := termSizeFunc()
	if err != nil {
		return nil, fmt.Errorf("terminal size: %w", err)
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	pageRows := pageRowsFor(renderHeight)

	canvas := draw.NewCanvas(renderWidth, pageRows)
	canvas.SetOffset(offsetCol, offsetRow)

	doc := page.New(page.Options{
		Width:       float64(renderWidth),
		Height:      float64(pageRows),
		PixelScaleY: 2,
		Rasters: func(pw, ph int) page.Raster {
			ctx := draw.NewContext(canvas)
			ctx.Resize(pw, ph)
			return ctx
		},
	})

	s, err := site.Build(doc, siteCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("build page: %w", err)
	}

	renderer := lipgloss.NewRenderer(w, termenv.WithProfile(termenv.TrueColor))

	return &Client{
		hub:          reg,
		handle:       reg.Register(opts.Username),
		state:        NewClientState(),
		doc:          doc,
		site:         s,
		scroller:     doc.NewScroller(config.ScrollSmoothing, config.ScrollSnap),
		siteCfg:      siteCfg,
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		lastInput:    time.Now(),
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
		logger:       logger,
		status:       newStatusBar(renderer),
	}, nil
}

// Run starts the client loop. Blocks until the viewer leaves or the server
// stops.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	input.EnableMouse(c.writer)
	defer draw.ShowCursor(c.writer)
	defer input.DisableMouse(c.writer)
	draw.ClearScreen(c.writer)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processHubEvents()
		c.updateScreen()

		switch c.state.ViewState {
		case ViewBrowsing:
			c.updateScroll()
		case ViewShutdown:
			c.updateShutdownState()
		}

		// Effects tick inside the document's frame.
		c.doc.RunFrame(frameStart)

		if err := c.drawFrame(); err != nil {
			c.close()
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	c.close()
	draw.ClearScreen(c.writer)
	return nil
}

// close disposes the page and leaves the hub.
func (c *Client) close() {
	c.site.Close()
	c.hub.Unregister(c.handle.ID)
	c.logger.Debug("Viewer left", "user", c.username, "scroll", c.doc.ScrollY())
}

// processInput reads input and turns it into scroll intents.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit {
		c.state.Running = false
	}

	if c.state.ViewState == ViewBrowsing {
		c.applyScroll(c.state.Input)
	}
}

// applyScroll moves the scroll target. The document itself follows in
// updateScroll.
func (c *Client) applyScroll(in input.Input) {
	c.scroller.Apply(in.ScrollLines, in.Pages, in.Top, in.Bottom, config.PageOverlap)
}

// updateScroll eases the document toward the scroll target. Every step is
// a scroll event, which is what drives the parallax layers.
func (c *Client) updateScroll() {
	c.scroller.Step()
}

// processHubEvents handles events from the hub.
func (c *Client) processHubEvents() {
	for {
		select {
		case event, ok := <-c.handle.Events:
			if !ok {
				c.state.Running = false
				return
			}
			switch event.Type {
			case hub.EventShutdown:
				c.state.ViewState = ViewShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual cells
// outside the new canvas area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	pageRows := pageRowsFor(renderHeight)

	if renderWidth != c.canvas.TerminalWidth() || pageRows != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
		c.status.invalidate()
	}

	c.canvas.Resize(renderWidth, pageRows)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
	c.doc.SetViewport(float64(renderWidth), float64(pageRows))
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = max(min(termWidth, config.MaxTermWidth), 1)
	renderHeight = max(min(termHeight, config.MaxTermHeight), 1)
	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max((termHeight-renderHeight)/2, 0)
	return
}

// pageRowsFor is the page height left after the status bar.
func pageRowsFor(renderHeight int) int {
	return max(renderHeight-config.StatusRows, 1)
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
