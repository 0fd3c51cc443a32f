// Package draw renders to ANSI terminals using a half-block sub-pixel canvas.
package draw

import (
	"fmt"
	"io"
)

// Point represents a 2D coordinate in canvas logical space.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockLight     = '░'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Bar renders a progress bar of width cells filled to ratio (0..1).
func Bar(ratio float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(ratio * float64(width))
	if filled < 0 {
		filled = 0
	} else if filled > width {
		filled = width
	}
	buf := make([]rune, width)
	for i := range buf {
		if i < filled {
			buf[i] = BlockFull
		} else {
			buf[i] = BlockLight
		}
	}
	return string(buf)
}

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// EnableMouse turns on button and motion reporting in SGR encoding.
func EnableMouse(w io.Writer) {
	fmt.Fprint(w, "\033[?1000h\033[?1003h\033[?1006h")
}

// DisableMouse undoes EnableMouse.
func DisableMouse(w io.Writer) {
	fmt.Fprint(w, "\033[?1006l\033[?1003l\033[?1000l")
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
