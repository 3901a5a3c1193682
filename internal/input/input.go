package input

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// WheelLines is how far one mouse wheel notch scrolls.
const WheelLines = 3

// Mouse reporting: button events (1000) in SGR encoding (1006).
const (
	enableMouseSeq  = "\033[?1000h\033[?1006h"
	disableMouseSeq = "\033[?1006l\033[?1000l"
)

// SGR mouse button codes for the wheel.
const (
	wheelUp   = 64
	wheelDown = 65
)

// Input represents the current frame's input state.
type Input struct {
	Quit        bool
	ScrollLines int  // Positive scrolls down
	Pages       int  // Positive pages down
	Top         bool // Jump to the top of the page
	Bottom      bool // Jump to the bottom of the page
	Pressed     []byte
}

// Idle reports whether the frame carried no scroll or quit intent.
func (in Input) Idle() bool {
	return !in.Quit && in.ScrollLines == 0 && in.Pages == 0 && !in.Top && !in.Bottom
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch     chan byte
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended. It is only
// meaningful after ReadInput has drained the stream.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// parses them into scroll intents.
func ReadInput(s *Stream) Input {
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := Parse(buf)
	if s.closed {
		in.Quit = true
	}
	return in
}

// Parse interprets one frame's worth of raw terminal input. Incomplete
// escape sequences at the end of buf are dropped.
func Parse(buf []byte) Input {
	in := Input{Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+1 < len(buf) && buf[i+1] == '[' {
			params, final, end, ok := scanCSI(buf, i+2)
			if !ok {
				break
			}
			applyCSI(&in, params, final)
			i = end
			continue
		}

		applyByte(&in, b)
	}
	return in
}

// scanCSI reads the parameter and final bytes of a control sequence that
// starts at buf[start]. end is the index of the final byte.
func scanCSI(buf []byte, start int) (params string, final byte, end int, ok bool) {
	j := start
	for j < len(buf) && buf[j] >= 0x20 && buf[j] <= 0x3f {
		j++
	}
	if j >= len(buf) || buf[j] < 0x40 || buf[j] > 0x7e {
		return "", 0, 0, false
	}
	return string(buf[start:j]), buf[j], j, true
}

func applyCSI(in *Input, params string, final byte) {
	switch final {
	case 'A': // Up arrow
		in.ScrollLines--
	case 'B': // Down arrow
		in.ScrollLines++
	case 'H': // Home
		in.Top = true
	case 'F': // End
		in.Bottom = true
	case '~':
		switch params {
		case "5": // PgUp
			in.Pages--
		case "6": // PgDn
			in.Pages++
		case "1", "7":
			in.Top = true
		case "4", "8":
			in.Bottom = true
		}
	case 'M', 'm':
		if final == 'M' && strings.HasPrefix(params, "<") {
			applyMouse(in, params[1:])
		}
	}
}

// applyMouse handles an SGR mouse report "button;x;y". Only wheel presses
// are used.
func applyMouse(in *Input, params string) {
	button, _, _ := strings.Cut(params, ";")
	code, err := strconv.Atoi(button)
	if err != nil {
		return
	}
	switch code {
	case wheelUp:
		in.ScrollLines -= WheelLines
	case wheelDown:
		in.ScrollLines += WheelLines
	}
}

func applyByte(in *Input, b byte) {
	switch b {
	case 'q', 'Q', '\x03':
		in.Quit = true
	case 'j':
		in.ScrollLines++
	case 'k':
		in.ScrollLines--
	case ' ', 'f':
		in.Pages++
	case 'b':
		in.Pages--
	case 'g':
		in.Top = true
	case 'G':
		in.Bottom = true
	}
}

// EnableMouse turns on wheel reporting.
func EnableMouse(w io.Writer) {
	io.WriteString(w, enableMouseSeq)
}

// DisableMouse turns wheel reporting off again.
func DisableMouse(w io.Writer) {
	io.WriteString(w, disableMouseSeq)
}
