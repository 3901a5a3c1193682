package site

import (
	"github.com/tomz197/nightsky/internal/config"
	"github.com/tomz197/nightsky/internal/starfield"
)

// Project is one entry of the projects section.
type Project struct {
	Name    string
	Summary string
}

// Config holds the page content and the effect tunables.
type Config struct {
	Title    string
	Tagline  string
	Projects []Project

	// Starfield, in canvas pixels.
	StarCount        int
	StarRadius       float64
	CometProbability float64
	CometFade        float64
	CometSpeed       float64
	TrailCap         int

	// Parallax, in layout cells.
	MaxDisplacement     float64
	VisibilityThreshold float64
}

// DefaultConfig suits hosts with real pixels.
func DefaultConfig() Config {
	return Config{
		Title:   "nightsky",
		Tagline: "a quiet page under a moving sky",
		Projects: []Project{
			{Name: "starfield", Summary: "Twinkling stars and the occasional comet on any 2D surface."},
			{Name: "parallax", Summary: "Mountain ridges that drift at their own depth as you scroll."},
			{Name: "ssh", Summary: "The same page served over SSH, one sky per visitor."},
		},
		StarCount:           starfield.DefaultStarCount,
		StarRadius:          starfield.DefaultStarRadius,
		CometProbability:    starfield.DefaultCometProbability,
		CometFade:           starfield.DefaultCometFade,
		CometSpeed:          1,
		TrailCap:            starfield.DefaultTrailCap,
		MaxDisplacement:     6,
		VisibilityThreshold: 0.1,
	}
}

// TerminalConfig scales the starfield down to half-block pixels.
func TerminalConfig() Config {
	c := DefaultConfig()
	c.StarCount = 120
	c.StarRadius = 0.5
	c.CometSpeed = 0.35
	c.TrailCap = 12
	return c
}

// ConfigFromEnv overrides base with any of the SITE_*, STARFIELD_* and
// PARALLAX_* environment variables that are set.
func ConfigFromEnv(base Config) Config {
	c := base
	c.Title = config.GetEnv("SITE_TITLE", c.Title)
	c.Tagline = config.GetEnv("SITE_TAGLINE", c.Tagline)

	c.StarCount = config.GetEnvInt("STARFIELD_STAR_COUNT", c.StarCount)
	c.StarRadius = config.GetEnvFloat("STARFIELD_STAR_RADIUS", c.StarRadius)
	c.CometProbability = config.GetEnvFloat("STARFIELD_COMET_PROBABILITY", c.CometProbability)
	c.CometFade = config.GetEnvFloat("STARFIELD_COMET_FADE", c.CometFade)
	c.CometSpeed = config.GetEnvFloat("STARFIELD_COMET_SPEED", c.CometSpeed)
	c.TrailCap = config.GetEnvInt("STARFIELD_TRAIL_CAP", c.TrailCap)

	c.MaxDisplacement = config.GetEnvFloat("PARALLAX_MAX_DISPLACEMENT", c.MaxDisplacement)
	c.VisibilityThreshold = config.GetEnvFloat("PARALLAX_THRESHOLD", c.VisibilityThreshold)
	return c
}
