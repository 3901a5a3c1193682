// Package loop runs the page for a local terminal.
package loop

import (
	"bufio"
	"io"

	"github.com/charmbracelet/log"

	"github.com/tomz197/nightsky/internal/config"
	"github.com/tomz197/nightsky/internal/loop/client"
	"github.com/tomz197/nightsky/internal/loop/hub"
	"github.com/tomz197/nightsky/internal/site"
)

// Run shows the page on the local terminal with the standard
// Input → Update → Draw cycle until the viewer quits.
func Run(r *bufio.Reader, w io.Writer, logger *log.Logger) error {
	c, err := client.NewClient(hub.New(), r, w, client.ClientOptions{
		Username: config.GetEnv("USER", ""),
		Site:     site.ConfigFromEnv(site.TerminalConfig()),
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	return c.Run()
}
