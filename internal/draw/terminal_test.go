package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingWriter records the size of every write it receives.
type countingWriter struct {
	buf    bytes.Buffer
	writes []int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes = append(w.writes, len(p))
	return w.buf.Write(p)
}

func TestChunkWriterOffset(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 3, 2)

	cw.WriteAt(1, 1, "hi")
	cw.SetOffset(0, 0)
	cw.WriteAt(5, 7, "yo")
	cw.ClearScreen()
	assert.Empty(t, out.String(), "nothing is sent before Flush")

	require.NoError(t, cw.Flush())
	assert.Equal(t, "\033[3;4Hhi\033[7;5Hyo\033[H\033[2J", out.String())
	assert.Zero(t, cw.Pending())
}

func TestWriteChunked(t *testing.T) {
	var w countingWriter
	data := strings.Repeat("x", 2*maxChunkSize+10)

	require.NoError(t, writeChunked(&w, data))
	assert.Equal(t, []int{maxChunkSize, maxChunkSize, 10}, w.writes)
	assert.Equal(t, data, w.buf.String())
}

func TestAppendCursor(t *testing.T) {
	assert.Equal(t, "\033[12;40H", string(appendCursor(nil, 40, 12)))
	assert.Equal(t, "ab\033[1;1H", string(appendCursor([]byte("ab"), 1, 1)))
}

func TestCursorHelpers(t *testing.T) {
	var out bytes.Buffer
	HideCursor(&out)
	ShowCursor(&out)
	ClearScreen(&out)
	assert.Equal(t, "\033[?25l\033[?25h\033[H\033[2J", out.String())
}
