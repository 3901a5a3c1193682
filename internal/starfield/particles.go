package starfield

// Point is a 2D position in surface pixels.
type Point struct {
	X, Y float64
}

// Star is a fixed point whose alpha oscillates between 0 and 1.
type Star struct {
	X, Y  float64
	Alpha float64
	Speed float64 // signed alpha change per frame
}

// twinkle steps the alpha and bounces it off the [0, 1] range.
func (s *Star) twinkle() {
	s.Alpha += s.Speed
	switch {
	case s.Alpha > 1:
		s.Alpha = 1
		s.Speed = -s.Speed
	case s.Alpha < 0:
		s.Alpha = 0
		s.Speed = -s.Speed
	}
}

// Comet is a transient particle with a fading head and a trail of its most
// recent positions, oldest first.
type Comet struct {
	X, Y    float64
	VX, VY  float64
	Trail   []Point
	Opacity float64
}

// record appends the current position to the trail, dropping the oldest
// points beyond limit.
func (c *Comet) record(limit int) {
	c.Trail = append(c.Trail, Point{X: c.X, Y: c.Y})
	if over := len(c.Trail) - limit; over > 0 {
		n := copy(c.Trail, c.Trail[over:])
		c.Trail = c.Trail[:n]
	}
}

// advance moves the comet by its velocity and fades it.
func (c *Comet) advance(fade float64) {
	c.X += c.VX
	c.Y += c.VY
	c.Opacity -= fade
}

// Edge is the side of the surface a comet enters from.
type Edge int

const (
	EdgeRight Edge = iota
	EdgeLeft
	EdgeTop
	EdgeBottom
)

func (f *Field) initStars() {
	f.stars = make([]Star, f.opts.StarCount)
	for i := range f.stars {
		f.stars[i] = Star{
			X:     f.rnd.Float64() * f.width,
			Y:     f.rnd.Float64() * f.height,
			Alpha: f.rnd.Float64(),
			Speed: f.rnd.Float64()*starSpeedRange + starMinSpeed,
		}
	}
}

func (f *Field) initComets() {
	for range f.opts.SeedComets {
		f.comets = append(f.comets, &Comet{
			X:       f.width,
			Y:       f.rnd.Float64() * f.height,
			VX:      -(f.rnd.Float64()*3 + 2) * f.opts.CometSpeed,
			VY:      -(f.rnd.Float64()*2 - 1) * f.opts.CometSpeed,
			Opacity: 1,
		})
	}
}

func (f *Field) maybeSpawnComet() {
	if f.rnd.Float64() >= f.opts.CometProbability {
		return
	}
	edge := Edge(min(int(f.rnd.Float64()*4), 3))
	f.comets = append(f.comets, f.newCometAt(edge))
}

// newCometAt places a comet on edge heading inward at 2..5 px/frame, with a
// perpendicular drift in [-1, 1). Both are scaled by CometSpeed.
func (f *Field) newCometAt(edge Edge) *Comet {
	c := &Comet{Opacity: 1}
	speed := f.opts.CometSpeed
	inward := (f.rnd.Float64()*3 + 2) * speed
	drift := func() float64 { return (f.rnd.Float64()*2 - 1) * speed }

	switch edge {
	case EdgeRight:
		c.X = f.width
		c.Y = f.rnd.Float64() * f.height
		c.VX = -inward
		c.VY = drift()
	case EdgeLeft:
		c.X = 0
		c.Y = f.rnd.Float64() * f.height
		c.VX = inward
		c.VY = drift()
	case EdgeTop:
		c.X = f.rnd.Float64() * f.width
		c.Y = 0
		c.VX = drift()
		c.VY = inward
	default:
		c.X = f.rnd.Float64() * f.width
		c.Y = f.height
		c.VX = drift()
		c.VY = -inward
	}
	return c
}
