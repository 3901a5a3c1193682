// Package starfield renders a field of twinkling stars crossed now and then
// by fading comets.
//
// A Field owns its star and comet populations and redraws them on every
// animation frame. Stars are created once per surface size; comets spawn at
// a random edge, drift inward leaving a short trail, and are dropped once
// their opacity reaches zero.
package starfield

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/nightsky/internal/host"
)

// Defaults for zero Options fields.
const (
	DefaultStarCount        = 200
	DefaultStarRadius       = 1.5
	DefaultCometProbability = 0.005
	DefaultCometFade        = 0.005
	DefaultTrailCap         = 20
	DefaultSeedComets       = 2
)

const (
	starMinSpeed   = 0.002
	starSpeedRange = 0.005
	trailLineWidth = 2
	trailAlpha     = 0.5
)

// Canvas is the drawing surface a Field paints on.
type Canvas interface {
	// GetContext2D returns the surface's 2D context, or false if the
	// surface cannot provide one.
	GetContext2D() (host.Context2D, bool)
	// ClientSize is the surface's current layout size in pixels.
	ClientSize() (w, h float64)
	// SetSize resizes the backing store.
	SetSize(w, h int)
}

// Rand is the random source a Field draws from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Options configures a Field. Zero, negative and non-finite fields take the
// package defaults.
type Options struct {
	StarCount        int
	StarRadius       float64
	Color            host.Paint
	CometProbability float64 // chance per frame of spawning a comet
	CometFade        float64 // opacity lost per frame
	TrailCap         int     // trail points kept per comet
	CometSpeed       float64 // velocity scale; surfaces with few pixels want less than 1
	SeedComets       int     // comets present at construction; negative for none
	Rand             Rand
	Logger           *log.Logger
}

func (o Options) withDefaults() Options {
	if o.StarCount <= 0 {
		o.StarCount = DefaultStarCount
	}
	if !usable(o.StarRadius) {
		o.StarRadius = DefaultStarRadius
	}
	if o.Color == (host.Paint{}) {
		o.Color = host.White
	}
	if !usable(o.CometProbability) {
		o.CometProbability = DefaultCometProbability
	}
	if !usable(o.CometFade) {
		o.CometFade = DefaultCometFade
	}
	if o.TrailCap <= 0 {
		o.TrailCap = DefaultTrailCap
	}
	if !usable(o.CometSpeed) {
		o.CometSpeed = 1
	}
	switch {
	case o.SeedComets == 0:
		o.SeedComets = DefaultSeedComets
	case o.SeedComets < 0:
		o.SeedComets = 0
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed))
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return o
}

// usable reports whether a tunable is positive and finite. Anything else
// takes the default.
func usable(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Field is an animated starfield bound to one canvas. Its methods must be
// called from the host's event thread.
type Field struct {
	canvas Canvas
	ctx    host.Context2D
	opts   Options
	rnd    Rand
	logger *log.Logger

	width, height float64

	stars  []Star
	comets []*Comet

	scheduler host.FrameScheduler
	frame     host.FrameID
	running   bool

	resizeSub host.Subscription
	closed    bool
}

// New binds a field to canvas and, when win is non-nil, to the window's
// resize events. A canvas without a 2D context yields an inert field: the
// failure is logged and every later call is a no-op.
func New(canvas Canvas, win host.Window, opts Options) *Field {
	opts = opts.withDefaults()
	f := &Field{
		canvas: canvas,
		opts:   opts,
		rnd:    opts.Rand,
		logger: opts.Logger,
	}

	ctx, ok := canvas.GetContext2D()
	if !ok || ctx == nil {
		f.logger.Error("starfield: 2D context unavailable, staying inert")
		return f
	}
	f.ctx = ctx

	f.width, f.height = canvas.ClientSize()
	f.initStars()
	f.resizeCanvas()
	f.initComets()

	if win != nil {
		f.resizeSub = win.OnResize(f.Resize)
	}
	return f
}

// Inert reports whether the field failed to obtain a drawing context.
func (f *Field) Inert() bool {
	return f.ctx == nil
}

// Size returns the surface dimensions the field currently draws into.
func (f *Field) Size() (w, h float64) {
	return f.width, f.height
}

// Stars returns a copy of the star population.
func (f *Field) Stars() []Star {
	out := make([]Star, len(f.stars))
	copy(out, f.stars)
	return out
}

// Comets returns the live comets. The slice is a copy; the comets are not.
func (f *Field) Comets() []*Comet {
	out := make([]*Comet, len(f.comets))
	copy(out, f.comets)
	return out
}

// Start requests animation frames from s until Stop or Close.
func (f *Field) Start(s host.FrameScheduler) {
	if f.Inert() || f.closed || f.running {
		return
	}
	f.scheduler = s
	f.running = true
	f.frame = s.RequestAnimationFrame(f.onFrame)
}

func (f *Field) onFrame(time.Time) {
	if !f.running {
		return
	}
	f.Tick()
	f.frame = f.scheduler.RequestAnimationFrame(f.onFrame)
}

// Stop cancels the pending animation frame.
func (f *Field) Stop() {
	if !f.running {
		return
	}
	f.running = false
	f.scheduler.CancelAnimationFrame(f.frame)
}

// Close stops the animation and detaches the resize listener.
func (f *Field) Close() {
	if f.closed {
		return
	}
	f.closed = true
	f.Stop()
	if f.resizeSub != nil {
		f.resizeSub.Cancel()
	}
}

// Tick draws one frame and advances both populations.
func (f *Field) Tick() {
	if f.Inert() {
		return
	}

	f.ctx.ClearRect(0, 0, f.width, f.height)
	f.drawStars()
	f.maybeSpawnComet()
	f.drawComets()
}

// Resize adopts the canvas's current layout size and scatters a fresh star
// population over it. Comets keep their positions.
func (f *Field) Resize() {
	if f.Inert() || f.closed {
		return
	}
	f.width, f.height = f.canvas.ClientSize()
	f.resizeCanvas()
	f.initStars()
}

func (f *Field) resizeCanvas() {
	f.canvas.SetSize(int(math.Round(f.width)), int(math.Round(f.height)))
}

func (f *Field) drawStars() {
	for i := range f.stars {
		s := &f.stars[i]
		s.twinkle()

		f.ctx.SetFillStyle(f.opts.Color.WithAlpha(s.Alpha))
		f.ctx.BeginPath()
		f.ctx.Arc(s.X, s.Y, f.opts.StarRadius, 0, 2*math.Pi)
		f.ctx.Fill()
	}
}

func (f *Field) drawComets() {
	live := f.comets[:0]
	for _, c := range f.comets {
		if c.Opacity > 0 {
			live = append(live, c)
		}
	}
	clear(f.comets[len(live):])
	f.comets = live

	for _, c := range f.comets {
		f.ctx.SetFillStyle(f.opts.Color.WithAlpha(c.Opacity))
		f.ctx.BeginPath()
		f.ctx.Arc(c.X, c.Y, f.opts.StarRadius*2, 0, 2*math.Pi)
		f.ctx.Fill()

		c.record(f.opts.TrailCap)

		f.ctx.SetStrokeStyle(f.opts.Color.WithAlpha(c.Opacity * trailAlpha))
		f.ctx.SetLineWidth(trailLineWidth)
		f.ctx.BeginPath()
		for i, p := range c.Trail {
			if i == 0 {
				f.ctx.MoveTo(p.X, p.Y)
				continue
			}
			f.ctx.LineTo(p.X, p.Y)
		}
		f.ctx.Stroke()

		c.advance(f.opts.CometFade)
	}
}
