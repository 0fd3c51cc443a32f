// Package input turns raw terminal bytes into per-frame input state.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report repeats, so a held arrow key arrives as a stream of
// presses.
const keyHoldDuration = 60 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Quit   bool // Q pressed or the input stream ended
	Left   bool // held
	Right  bool // held
	Up     bool // held
	Down   bool // held
	Space  bool // pressed this frame
	Enter  bool // pressed this frame
	Number int  // digit pressed this frame, -1 if none

	Clicks  []Mouse // left button presses this frame
	Pointer Mouse   // last reported mouse position
	Moved   bool    // Pointer changed this frame

	Pressed []byte // keyboard bytes this frame, mouse reports excluded
}

// AnyKey reports whether any key or mouse button was pressed this frame.
func (in Input) AnyKey() bool {
	return len(in.Pressed) > 0 || len(in.Clicks) > 0
}

// keyState tracks the last time each held key was pressed.
type keyState struct {
	left  time.Time
	right time.Time
	up    time.Time
	down  time.Time
}

// Stream delivers input bytes via a channel and tracks key state for held keys.
type Stream struct {
	ch      chan byte
	state   keyState
	pointer Mouse
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 256),
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

// ReadInput drains all available bytes from the stream (non-blocking).
func ReadInput(s *Stream) Input {
	return s.read(time.Now())
}

func (s *Stream) read(now time.Time) Input {
	var buf []byte

drain:
	for !s.closed {
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

	ev := parse(buf)
	return s.apply(ev, now)
}

// apply folds one frame of parsed events into the held-key state.
func (s *Stream) apply(ev events, now time.Time) Input {
	if ev.left {
		s.state.left = now
	}
	if ev.right {
		s.state.right = now
	}
	if ev.up {
		s.state.up = now
	}
	if ev.down {
		s.state.down = now
	}
	moved := false
	if ev.pointer != nil {
		moved = *ev.pointer != s.pointer
		s.pointer = *ev.pointer
	}

	return Input{
		Quit:    ev.quit || s.closed,
		Left:    now.Sub(s.state.left) < keyHoldDuration,
		Right:   now.Sub(s.state.right) < keyHoldDuration,
		Up:      now.Sub(s.state.up) < keyHoldDuration,
		Down:    now.Sub(s.state.down) < keyHoldDuration,
		Space:   ev.space,
		Enter:   ev.enter,
		Number:  ev.number,
		Clicks:  ev.clicks,
		Pointer: s.pointer,
		Moved:   moved,
		Pressed: ev.keys,
	}
}
