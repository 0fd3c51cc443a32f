// Package gui runs the game in a desktop window with ebiten.
package gui

import (
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/missiles/internal/config"
	"github.com/tomz197/missiles/internal/game"
	"github.com/tomz197/missiles/internal/physics"
)

// App implements ebiten.Game around a single game.
type App struct {
	game     *game.Game
	view     view
	last     time.Time
	log      *log.Logger
	fill     *ebiten.Image // 1x1 white source for filled paths
	vertices []ebiten.Vertex
	indices  []uint16
	keys     []ebiten.Key
	cursorX  int
	cursorY  int
}

// NewApp creates the desktop frontend.
func NewApp(opts game.Options) *App {
	g := game.New(opts)
	fill := ebiten.NewImage(1, 1)
	fill.Fill(color.White)
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &App{
		game: g,
		view: newView(g.Snapshot().Field, config.WindowWidth, config.WindowHeight),
		last: time.Now(),
		log:  logger,
		fill: fill,
	}
}

// Run opens the window and blocks until it is closed.
func Run(opts game.Options) error {
	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("Missiles")
	return ebiten.RunGame(NewApp(opts))
}

// Update handles input, then advances the game by the wall time since the
// previous update.
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	cx, cy := ebiten.CursorPosition()
	cursor := a.view.toField(float64(cx), float64(cy))
	clicked := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)

	switch a.game.Mode() {
	case game.ModePlaying:
		if clicked {
			a.game.Fire(cursor)
		}
	case game.ModeSkillChoice:
		a.updateSkillChoice(cursor, clicked, cx != a.cursorX || cy != a.cursorY)
	case game.ModeGameOver:
		a.keys = inpututil.AppendJustPressedKeys(a.keys[:0])
		if clicked || len(a.keys) > 0 {
			a.log.Debug("restarting")
			a.game.Reset()
		}
	}

	a.cursorX, a.cursorY = cx, cy

	now := time.Now()
	a.game.Tick(game.Frame{Delta: now.Sub(a.last)})
	a.last = now
	return nil
}

func (a *App) updateSkillChoice(cursor physics.Vec2, clicked, moved bool) {
	option := a.view.optionAt(cursor)
	if moved {
		a.game.HoverSkill(option)
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft), inpututil.IsKeyJustPressed(ebiten.KeyA):
		a.game.HoverSkill(0)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight), inpututil.IsKeyJustPressed(ebiten.KeyD):
		a.game.HoverSkill(1)
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.Key1):
		a.game.ChooseSkill(0)
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		a.game.ChooseSkill(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		a.game.ChooseSkill(a.game.HoveredSkill())
	case clicked:
		a.game.ChooseSkill(option)
	}
}

// Layout fixes the logical screen to the window size.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

// view maps the field onto the window.
type view struct {
	field         physics.Rect
	scaleX        float64
	scaleY        float64
	width, height float64
}

func newView(field physics.Rect, width, height int) view {
	return view{
		field:  field,
		scaleX: float64(width) / field.W,
		scaleY: float64(height) / field.H,
		width:  float64(width),
		height: float64(height),
	}
}

func (v view) toScreen(p physics.Vec2) (float32, float32) {
	return float32((p.X - v.field.X) * v.scaleX), float32((p.Y - v.field.Y) * v.scaleY)
}

func (v view) toField(x, y float64) physics.Vec2 {
	return physics.V(x/v.scaleX+v.field.X, y/v.scaleY+v.field.Y)
}

// optionAt picks the skill option under p: the left half of the field is
// the first option.
func (v view) optionAt(p physics.Vec2) int {
	if p.X < v.field.X+v.field.W/2 {
		return 0
	}
	return 1
}
