package draw

import (
	"bytes"
	"strings"
	"testing"
)

func countSet(c *Canvas) int {
	n := 0
	for _, p := range c.pixels {
		if p {
			n++
		}
	}
	return n
}

func TestFillRectCoversArea(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10) // 1:1 logical to sub-pixel
	c.FillRect(2, 2, 3, 4)
	if got := countSet(c); got != 12 {
		t.Errorf("set %d pixels, want 12", got)
	}
	if !c.pixels[2*10+2] || c.pixels[6*10+2] {
		t.Error("rectangle edges misplaced")
	}
}

func TestDrawCircleStaysOnRadius(t *testing.T) {
	c := NewScaledCanvas(40, 20, 40, 40)
	c.DrawCircle(Point{X: 20, Y: 20}, 10)
	if countSet(c) == 0 {
		t.Fatal("circle drew nothing")
	}
	for y := 0; y < c.subPixelHeight; y++ {
		for x := 0; x < c.termWidth; x++ {
			if !c.pixels[y*c.termWidth+x] {
				continue
			}
			dx, dy := float64(x-20), float64(y-20)
			if d := dx*dx + dy*dy; d < 81 || d > 121 {
				t.Fatalf("pixel (%d,%d) is off the circle", x, y)
			}
		}
	}
}

func TestRenderUsesHalfBlocks(t *testing.T) {
	c := NewScaledCanvas(3, 1, 3, 2)
	c.setPixel(0, 0)
	c.setPixel(1, 1)
	c.setPixel(2, 0)
	c.setPixel(2, 1)

	var buf bytes.Buffer
	c.Render(&buf)
	out := buf.String()
	if !strings.HasPrefix(out, "\033[1;1H") {
		t.Errorf("render should start at the top-left cell: %q", out)
	}
	if !strings.Contains(out, string([]rune{BlockUpperHalf, BlockLowerHalf, BlockFull})) {
		t.Errorf("unexpected cells in %q", out)
	}
	if strings.Count(out, "H") != 1 {
		t.Errorf("contiguous run should position the cursor once: %q", out)
	}
}

func TestTerminalRoundTrip(t *testing.T) {
	c := NewScaledCanvas(80, 30, 800, 600)
	c.SetOffset(5, 2)

	p, ok := c.TerminalToLogical(5+40, 2+15)
	if !ok {
		t.Fatal("cell inside the canvas reported outside")
	}
	col, row := c.LogicalToTerminal(p.X, p.Y)
	if col != 41 || row != 16 {
		t.Errorf("round trip landed on (%d,%d), want (41,16)", col, row)
	}

	if _, ok := c.TerminalToLogical(2, 1); ok {
		t.Error("cell in the border reported inside")
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{0, "░░░░"},
		{0.5, "██░░"},
		{1, "████"},
		{2, "████"},
		{-1, "░░░░"},
	}
	for _, tt := range tests {
		if got := Bar(tt.ratio, 4); got != tt.want {
			t.Errorf("Bar(%v) = %q, want %q", tt.ratio, got, tt.want)
		}
	}
}

func TestRenderWritesOnlyChanges(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.setPixel(1, 0)

	var buf bytes.Buffer
	c.Render(&buf)

	buf.Reset()
	c.Render(&buf)
	if buf.Len() != 0 {
		t.Fatalf("unchanged frame wrote %q", buf.String())
	}

	c.Clear()
	c.setPixel(3, 3)
	buf.Reset()
	c.Render(&buf)
	want := "\033[1;2H \033[2;4H" + string(BlockLowerHalf)
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}

	c.ForceRedraw()
	buf.Reset()
	c.Render(&buf)
	if strings.Count(buf.String(), "H") != 2 {
		t.Errorf("forced redraw should rewrite both rows: %q", buf.String())
	}
}
