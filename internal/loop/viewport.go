package loop

import (
	"github.com/tomz197/missiles/internal/config"
	"github.com/tomz197/missiles/internal/draw"
	"github.com/tomz197/missiles/internal/physics"
)

// viewport maps the play field onto the canvas's fixed logical space.
type viewport struct {
	field  physics.Rect
	scaleX float64 // logical units per field unit
	scaleY float64
}

func newViewport(field physics.Rect) viewport {
	return viewport{
		field:  field,
		scaleX: config.ViewWidth / field.W,
		scaleY: config.ViewHeight / field.H,
	}
}

// toLogical converts a field position to canvas logical coordinates.
func (v viewport) toLogical(p physics.Vec2) draw.Point {
	return draw.Point{
		X: (p.X - v.field.X) * v.scaleX,
		Y: (p.Y - v.field.Y) * v.scaleY,
	}
}

// toField converts canvas logical coordinates back to the field.
func (v viewport) toField(p draw.Point) physics.Vec2 {
	return physics.V(p.X/v.scaleX+v.field.X, p.Y/v.scaleY+v.field.Y)
}

// length scales a field distance to logical units.
func (v viewport) length(d float64) float64 {
	return d * v.scaleX
}

// fitTerminal picks the largest render area that fits the terminal, keeps
// the logical aspect ratio (a cell is two sub-pixels tall) and stays within
// the max render resolution. The area is centred in the terminal.
func fitTerminal(termWidth, termHeight int) (width, height, offsetCol, offsetRow int) {
	maxHeight := min(termHeight, config.MaxTermHeight)

	width = min(termWidth, config.MaxTermWidth)
	height = width * config.ViewHeight / config.ViewWidth / 2
	if height > maxHeight {
		height = maxHeight
		width = height * 2 * config.ViewWidth / config.ViewHeight
	}
	width = max(width, 1)
	height = max(height, 1)

	offsetCol = max((termWidth-width)/2, 0)
	offsetRow = max((termHeight-height)/2, 0)
	return width, height, offsetCol, offsetRow
}
