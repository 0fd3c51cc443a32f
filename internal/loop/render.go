package loop

import (
	"math"

	"github.com/tomz197/missiles/internal/draw"
	"github.com/tomz197/missiles/internal/game"
	"github.com/tomz197/missiles/internal/physics"
)

// Bunker outline in field units, relative to the bunker position.
const (
	bunkerBaseHalfWidth = 24
	bunkerTopHalfWidth  = 12
	bunkerTopOffset     = 10 // height of the roof above the bunker position
)

// Smallest star half-size in logical units, so stars stay visible on
// small terminals.
const minStarSize = 1.5

const crosshairSize = 2.0 // logical units

// drawWorld draws the field contents of s onto the canvas.
func drawWorld(c *draw.Canvas, v viewport, s game.Snapshot) {
	drawGround(c, v, s.GroundY)
	for _, b := range s.Bunkers {
		drawBunker(c, v, b, s.GroundY)
	}
	for _, m := range s.Missiles {
		c.DrawLine(v.toLogical(m.Origin), v.toLogical(m.Pos))
	}
	for _, e := range s.Explosions {
		c.DrawCircle(v.toLogical(e.Pos), v.length(e.Radius))
	}
	for _, st := range s.Stars {
		if st.Active {
			drawStar(c, v, st)
		}
	}
}

func drawGround(c *draw.Canvas, v viewport, groundY float64) {
	top := v.toLogical(physics.V(v.field.X, groundY))
	bottom := v.toLogical(physics.V(v.field.X+v.field.W, v.field.Y+v.field.H))
	if bottom.Y <= top.Y {
		return
	}
	c.FillRect(top.X, top.Y, bottom.X-top.X, bottom.Y-top.Y)
}

// drawBunker draws an active bunker as a filled trapezoid on the ground, a
// firing one as its outline and a destroyed one as a flat mound.
func drawBunker(c *draw.Canvas, v viewport, b game.BunkerView, groundY float64) {
	if !b.Active {
		left := v.toLogical(physics.V(b.Pos.X-bunkerBaseHalfWidth, groundY))
		right := v.toLogical(physics.V(b.Pos.X+bunkerBaseHalfWidth, groundY))
		mid := v.toLogical(physics.V(b.Pos.X, groundY-bunkerTopOffset/2))
		c.DrawLine(left, mid)
		c.DrawLine(mid, right)
		return
	}

	roof := b.Pos.Y - bunkerTopOffset
	points := []draw.Point{
		v.toLogical(physics.V(b.Pos.X-bunkerBaseHalfWidth, groundY)),
		v.toLogical(physics.V(b.Pos.X-bunkerTopHalfWidth, roof)),
		v.toLogical(physics.V(b.Pos.X+bunkerTopHalfWidth, roof)),
		v.toLogical(physics.V(b.Pos.X+bunkerBaseHalfWidth, groundY)),
	}
	c.DrawPolygon(points, !b.Firing)
}

func drawStar(c *draw.Canvas, v viewport, st game.StarView) {
	center := v.toLogical(st.Pos)
	r := math.Max(v.length(st.Radius), minStarSize)
	c.DrawPolygon([]draw.Point{
		{X: center.X, Y: center.Y - r},
		{X: center.X + r, Y: center.Y},
		{X: center.X, Y: center.Y + r},
		{X: center.X - r, Y: center.Y},
	}, true)
}

func drawCrosshair(c *draw.Canvas, v viewport, p physics.Vec2) {
	center := v.toLogical(p)
	c.DrawLine(draw.Point{X: center.X - crosshairSize, Y: center.Y}, draw.Point{X: center.X + crosshairSize, Y: center.Y})
	c.DrawLine(draw.Point{X: center.X, Y: center.Y - crosshairSize}, draw.Point{X: center.X, Y: center.Y + crosshairSize})
}
