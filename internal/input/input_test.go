package input

import (
	"bufio"
	"strings"
	"testing"
	"time"
)

func TestParseKeys(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		check func(events) bool
	}{
		{"quit", "q", func(e events) bool { return e.quit }},
		{"space", " ", func(e events) bool { return e.space }},
		{"enter", "\r", func(e events) bool { return e.enter }},
		{"digit", "2", func(e events) bool { return e.number == 2 }},
		{"wasd left", "a", func(e events) bool { return e.left }},
		{"arrow up", "\x1b[A", func(e events) bool { return e.up && !e.quit }},
		{"arrow right", "\x1b[C", func(e events) bool { return e.right }},
		{"no digit", "x", func(e events) bool { return e.number == -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if ev := parse([]byte(tt.in)); !tt.check(ev) {
				t.Errorf("parse(%q) = %+v", tt.in, ev)
			}
		})
	}
}

func TestParseSGRMouse(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		n      int
		mouse  Mouse
		btn    MouseButton
		press  bool
		wantOK bool
	}{
		{"left press", "\x1b[<0;10;5M", 10, Mouse{Col: 9, Row: 4}, MouseLeft, true, true},
		{"left release", "\x1b[<0;10;5m", 10, Mouse{Col: 9, Row: 4}, MouseLeft, false, true},
		{"right press", "\x1b[<2;1;1M", 9, Mouse{}, MouseRight, true, true},
		{"motion", "\x1b[<35;120;40M", 13, Mouse{Col: 119, Row: 39}, MouseNone, false, true},
		{"scroll", "\x1b[<64;3;3M", 10, Mouse{Col: 2, Row: 2}, MouseLeft, false, true},
		{"truncated", "\x1b[<0;10", 0, Mouse{}, 0, false, false},
		{"garbage", "\x1b[<0;x;5M", 0, Mouse{}, 0, false, false},
		{"missing field", "\x1b[<0;105M", 0, Mouse{}, 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, m, btn, press, ok := parseSGRMouse([]byte(tt.in))
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if n != tt.n || m != tt.mouse || btn != tt.btn || press != tt.press {
				t.Errorf("got n=%d m=%+v btn=%d press=%v", n, m, btn, press)
			}
		})
	}
}

func TestParseMixedBatch(t *testing.T) {
	ev := parse([]byte("\x1b[<0;4;2Ma\x1b[<35;6;3M\x1b[<0;8;8M "))
	if len(ev.clicks) != 2 {
		t.Fatalf("got %d clicks, want 2", len(ev.clicks))
	}
	if ev.clicks[0] != (Mouse{Col: 3, Row: 1}) || ev.clicks[1] != (Mouse{Col: 7, Row: 7}) {
		t.Errorf("clicks = %+v", ev.clicks)
	}
	if ev.pointer == nil || *ev.pointer != (Mouse{Col: 7, Row: 7}) {
		t.Errorf("pointer = %+v", ev.pointer)
	}
	if !ev.left || !ev.space {
		t.Error("keys between mouse reports were lost")
	}
	if string(ev.keys) != "a " {
		t.Errorf("keys = %q, want mouse reports excluded", ev.keys)
	}
}

func TestHeldKeysExpire(t *testing.T) {
	s := &Stream{ch: make(chan byte)}
	now := time.Now()

	in := s.apply(parse([]byte("\x1b[D")), now)
	if !in.Left {
		t.Fatal("left should be held right after the press")
	}
	in = s.apply(parse(nil), now.Add(keyHoldDuration/2))
	if !in.Left {
		t.Error("left should still be held within the hold window")
	}
	in = s.apply(parse(nil), now.Add(2*keyHoldDuration))
	if in.Left {
		t.Error("left should be released after the hold window")
	}
	if in.AnyKey() {
		t.Error("empty frame reported a key")
	}
}

func TestStreamEndQuits(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("x")))

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if in := ReadInput(s); in.Quit {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("closed stream never reported quit")
}
