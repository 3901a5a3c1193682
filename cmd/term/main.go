package main

import (
	"bufio"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/nightsky/internal/loop"
)

func main() {
	// Logs go to stderr; redirect it to keep them off the page.
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "nightsky"})

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Fatal("Failed to enable raw mode", "err", err)
	}

	reader := bufio.NewReader(os.Stdin)
	runErr := loop.Run(reader, os.Stdout, logger)
	_ = term.Restore(fd, oldState)
	if runErr != nil {
		logger.Fatal("Viewer error", "err", runErr)
	}
}
