package gui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/tomz197/missiles/internal/game"
	"github.com/tomz197/missiles/internal/object"
	"github.com/tomz197/missiles/internal/physics"
)

var (
	colorGround    = color.RGBA{0x33, 0x55, 0x33, 0xff}
	colorBunker    = color.RGBA{0x66, 0xcc, 0x66, 0xff}
	colorFiring    = color.RGBA{0xaa, 0xaa, 0x66, 0xff}
	colorRubble    = color.RGBA{0x44, 0x44, 0x44, 0xff}
	colorFriendly  = color.RGBA{0x66, 0xcc, 0xff, 0xff}
	colorHostile   = color.RGBA{0xff, 0x55, 0x55, 0xff}
	colorBlast     = color.RGBA{0xff, 0xff, 0x66, 0xff}
	colorAfterglow = color.RGBA{0xff, 0xaa, 0x33, 0xff}
	colorStar      = color.RGBA{0xff, 0xff, 0x00, 0xff}
	colorText      = color.RGBA{0xcc, 0xcc, 0xcc, 0xff}
	colorHighlight = color.RGBA{0xff, 0xff, 0x00, 0xff}
)

var face font.Face = basicfont.Face7x13

// Bunker outline in field units, relative to the bunker position.
const (
	bunkerBaseHalfWidth = 24
	bunkerTopHalfWidth  = 12
	bunkerTopOffset     = 10
)

const minStarSize = 4 // pixels

// Draw renders the current state.
func (a *App) Draw(screen *ebiten.Image) {
	s := a.game.Snapshot()
	v := a.view

	_, groundY := v.toScreen(physics.V(v.field.X, s.GroundY))
	vector.DrawFilledRect(screen, 0, groundY, float32(v.width), float32(v.height)-groundY, colorGround, false)

	for _, b := range s.Bunkers {
		a.drawBunker(screen, b, s.GroundY)
	}
	for _, m := range s.Missiles {
		ox, oy := v.toScreen(m.Origin)
		x, y := v.toScreen(m.Pos)
		clr := colorHostile
		if m.Friendly {
			clr = colorFriendly
		}
		vector.StrokeLine(screen, ox, oy, x, y, 1, clr, true)
	}
	for _, e := range s.Explosions {
		x, y := v.toScreen(e.Pos)
		clr := colorBlast
		if e.Phase == object.PhaseStatic {
			clr = colorAfterglow
		}
		vector.StrokeCircle(screen, x, y, float32(e.Radius*v.scaleX), 1.5, clr, true)
	}
	for _, st := range s.Stars {
		if st.Active {
			a.drawStar(screen, st)
		}
	}

	a.drawHUD(screen, s)

	switch s.Mode {
	case game.ModeSkillChoice:
		a.drawSkillChoice(screen, s)
	case game.ModeGameOver:
		a.drawGameOver(screen, s)
	}
}

func (a *App) drawBunker(screen *ebiten.Image, b game.BunkerView, groundY float64) {
	v := a.view
	if !b.Active {
		lx, ly := v.toScreen(physics.V(b.Pos.X-bunkerBaseHalfWidth, groundY))
		mx, my := v.toScreen(physics.V(b.Pos.X, groundY-bunkerTopOffset/2))
		rx, ry := v.toScreen(physics.V(b.Pos.X+bunkerBaseHalfWidth, groundY))
		vector.StrokeLine(screen, lx, ly, mx, my, 2, colorRubble, true)
		vector.StrokeLine(screen, mx, my, rx, ry, 2, colorRubble, true)
		return
	}

	roof := b.Pos.Y - bunkerTopOffset
	clr := colorBunker
	if b.Firing {
		clr = colorFiring
	}
	a.fillPolygon(screen, clr,
		physics.V(b.Pos.X-bunkerBaseHalfWidth, groundY),
		physics.V(b.Pos.X-bunkerTopHalfWidth, roof),
		physics.V(b.Pos.X+bunkerTopHalfWidth, roof),
		physics.V(b.Pos.X+bunkerBaseHalfWidth, groundY),
	)
}

func (a *App) drawStar(screen *ebiten.Image, st game.StarView) {
	r := max(st.Radius*a.view.scaleX, minStarSize) / a.view.scaleX
	a.fillPolygon(screen, colorStar,
		physics.V(st.Pos.X, st.Pos.Y-r),
		physics.V(st.Pos.X+r, st.Pos.Y),
		physics.V(st.Pos.X, st.Pos.Y+r),
		physics.V(st.Pos.X-r, st.Pos.Y),
	)
}

// fillPolygon fills a convex polygon given in field coordinates.
func (a *App) fillPolygon(screen *ebiten.Image, clr color.RGBA, points ...physics.Vec2) {
	var path vector.Path
	for i, p := range points {
		x, y := a.view.toScreen(p)
		if i == 0 {
			path.MoveTo(x, y)
		} else {
			path.LineTo(x, y)
		}
	}
	path.Close()

	a.vertices, a.indices = path.AppendVerticesAndIndicesForFilling(a.vertices[:0], a.indices[:0])
	for i := range a.vertices {
		a.vertices[i].SrcX = 0
		a.vertices[i].SrcY = 0
		a.vertices[i].ColorR = float32(clr.R) / 0xff
		a.vertices[i].ColorG = float32(clr.G) / 0xff
		a.vertices[i].ColorB = float32(clr.B) / 0xff
		a.vertices[i].ColorA = float32(clr.A) / 0xff
	}
	screen.DrawTriangles(a.vertices, a.indices, a.fill, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (a *App) drawHUD(screen *ebiten.Image, s game.Snapshot) {
	text.Draw(screen, fmt.Sprintf("LVL %d", s.Progress.Level), face, 12, 22, colorText)

	const barX, barY, barW, barH = 70, 11, 160, 12
	vector.StrokeRect(screen, barX, barY, barW, barH, 1, colorText, false)
	vector.DrawFilledRect(screen, barX, barY, float32(barW*s.Progress.ExperienceRatio), barH, colorText, false)

	timer := game.FormatTime(s.GameTime)
	text.Draw(screen, timer, face, int(a.view.width)-12-textWidth(timer), 22, colorText)

	y := int(a.view.height) - 8
	x := 12
	for _, sk := range object.AllSkills {
		label := fmt.Sprintf("%s %d", sk, s.Progress.Skills[sk])
		text.Draw(screen, label, face, x, y, colorText)
		x += textWidth(label) + 24
	}
}

func (a *App) drawSkillChoice(screen *ebiten.Image, s game.Snapshot) {
	w := int(a.view.width)
	centered(screen, "STAR COLLECTED - CHOOSE A SKILL", w/2, 220, colorText)
	if s.Pending > 1 {
		centered(screen, fmt.Sprintf("%d choices pending", s.Pending), w/2, 240, colorText)
	}
	for i, sk := range s.Offer {
		x := w / 4
		if i == 1 {
			x = w * 3 / 4
		}
		clr := colorText
		if i == s.Hovered {
			clr = colorHighlight
		}
		centered(screen, fmt.Sprintf("[%d] %s", i+1, sk), x, 300, clr)
		centered(screen, fmt.Sprintf("level %d", s.Progress.Skills[sk]), x, 320, clr)
	}
	centered(screen, "Click, or press 1 or 2", w/2, 380, colorText)
}

func (a *App) drawGameOver(screen *ebiten.Image, s game.Snapshot) {
	w := int(a.view.width)
	centered(screen, "GAME OVER", w/2, 260, colorHostile)
	centered(screen, fmt.Sprintf("Survived %s, reached level %d", game.FormatTime(s.GameTime), s.Progress.Level), w/2, 290, colorText)
	centered(screen, "Click or press any key to play again", w/2, 320, colorText)
}

func centered(screen *ebiten.Image, s string, x, y int, clr color.Color) {
	text.Draw(screen, s, face, x-textWidth(s)/2, y, clr)
}

func textWidth(s string) int {
	return font.MeasureString(face, s).Ceil()
}
