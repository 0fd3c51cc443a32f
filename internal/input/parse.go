package input

// MouseButton identifies the button in a mouse report.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
	MouseNone // motion with no button held
)

// Mouse is a mouse report in 0-indexed terminal cells.
type Mouse struct {
	Col, Row int
}

// events is what one batch of bytes contained.
type events struct {
	quit, left, right, up, down bool
	space, enter                bool
	number                      int
	clicks                      []Mouse
	pointer                     *Mouse
	keys                        []byte
}

// parse splits buf into key presses and SGR mouse reports.
func parse(buf []byte) events {
	ev := events{number: -1}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			if buf[i+2] == '<' {
				if n, m, btn, press, ok := parseSGRMouse(buf[i:]); ok {
					ev.pointer = &m
					if press && btn == MouseLeft {
						ev.clicks = append(ev.clicks, m)
					}
					i += n - 1
					continue
				}
			}

			// CSI sequence: ESC [ <code>
			handled := true
			switch buf[i+2] {
			case 'A':
				ev.up = true
			case 'B':
				ev.down = true
			case 'C':
				ev.right = true
			case 'D':
				ev.left = true
			default:
				handled = false
			}
			if handled {
				ev.keys = append(ev.keys, buf[i:i+3]...)
				i += 2
				continue
			}
		}

		ev.keys = append(ev.keys, b)
		applyByte(&ev, b)
	}
	return ev
}

// applyByte records a single-byte key press.
func applyByte(ev *events, b byte) {
	switch b {
	case 'q', 'Q':
		ev.quit = true
	case 'a', 'A', 'h', 'H':
		ev.left = true
	case 'd', 'D', 'l', 'L':
		ev.right = true
	case 'w', 'W', 'k', 'K':
		ev.up = true
	case 's', 'S', 'j', 'J':
		ev.down = true
	case ' ':
		ev.space = true
	case '\n', '\r':
		ev.enter = true
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		ev.number = int(b - '0')
	}
}

// parseSGRMouse parses ESC [ < Btn ; X ; Y (M|m) at the start of data.
// It returns the number of bytes consumed.
func parseSGRMouse(data []byte) (n int, m Mouse, btn MouseButton, press bool, ok bool) {
	// Minimum: ESC [ < 0 ; 1 ; 1 M
	if len(data) < 9 {
		return 0, Mouse{}, 0, false, false
	}

	end := 3
	for end < len(data) && end < 32 && data[end] != 'M' && data[end] != 'm' {
		end++
	}
	if end >= len(data) || (data[end] != 'M' && data[end] != 'm') {
		return 0, Mouse{}, 0, false, false
	}

	var params [3]int
	field := 0
	digits := 0
	for _, c := range data[3:end] {
		switch {
		case c >= '0' && c <= '9':
			params[field] = params[field]*10 + int(c-'0')
			digits++
		case c == ';' && field < 2 && digits > 0:
			field++
			digits = 0
		default:
			return 0, Mouse{}, 0, false, false
		}
	}
	if field != 2 || digits == 0 {
		return 0, Mouse{}, 0, false, false
	}

	code := params[0]
	m = Mouse{Col: params[1] - 1, Row: params[2] - 1}

	// Bits 0-1: button (3 = none), bit 5: motion, bit 6: scroll
	btn = MouseButton(code & 0x03)
	isMotion := code&32 != 0
	isScroll := code&64 != 0
	press = data[end] == 'M' && !isMotion && !isScroll

	return end + 1, m, btn, press, true
}
