package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderPage(t *testing.T) {
	tmpl := "ssh {{.SSHPortFlag}}{{.SSHHost}}"
	assert.Equal(t, "ssh -p 2222 sky.example", renderPage(tmpl, "sky.example", "2222"))
	assert.Equal(t, "ssh sky.example", renderPage(tmpl, "sky.example", "22"))
	assert.Equal(t, "ssh sky.example", renderPage(tmpl, "sky.example", ""))
}

func TestEmbeddedPageHasPlaceholders(t *testing.T) {
	assert.Contains(t, htmlPage, "{{.SSHHost}}")
	assert.Contains(t, htmlPage, "{{.SSHPortFlag}}")
}
