package loop

import (
	"math"
	"testing"

	"github.com/tomz197/missiles/internal/physics"
)

func TestFitTerminal(t *testing.T) {
	tests := []struct {
		name                   string
		termW, termH           int
		wantW, wantH           int
		wantOffCol, wantOffRow int
	}{
		{"exact max", 160, 60, 160, 60, 0, 0},
		{"height bound", 80, 24, 64, 24, 8, 0},
		{"width bound", 80, 50, 80, 30, 0, 10},
		{"larger than max", 200, 70, 160, 60, 20, 5},
		{"degenerate", 0, 0, 1, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, oc, or := fitTerminal(tt.termW, tt.termH)
			if w != tt.wantW || h != tt.wantH || oc != tt.wantOffCol || or != tt.wantOffRow {
				t.Errorf("fitTerminal(%d, %d) = %d, %d, %d, %d; want %d, %d, %d, %d",
					tt.termW, tt.termH, w, h, oc, or, tt.wantW, tt.wantH, tt.wantOffCol, tt.wantOffRow)
			}
		})
	}
}

func TestViewportRoundTrip(t *testing.T) {
	v := newViewport(physics.Rect{X: -400, Y: -300, W: 800, H: 600})

	corner := v.toLogical(physics.V(-400, -300))
	if corner.X != 0 || corner.Y != 0 {
		t.Errorf("top-left maps to %+v, want origin", corner)
	}
	far := v.toLogical(physics.V(400, 300))
	if far.X != 160 || far.Y != 120 {
		t.Errorf("bottom-right maps to %+v, want (160, 120)", far)
	}

	p := physics.V(123, -45)
	back := v.toField(v.toLogical(p))
	if math.Abs(back.X-p.X) > 1e-9 || math.Abs(back.Y-p.Y) > 1e-9 {
		t.Errorf("round trip = %+v, want %+v", back, p)
	}
	if got := v.length(50); got != 10 {
		t.Errorf("length(50) = %v, want 10", got)
	}
}
