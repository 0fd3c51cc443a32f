// Package loop runs one player's game in a terminal: it reads keyboard and
// mouse input, ticks the simulation and draws it with half-block characters.
package loop

import (
	"bufio"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/missiles/internal/config"
	"github.com/tomz197/missiles/internal/draw"
	"github.com/tomz197/missiles/internal/game"
	"github.com/tomz197/missiles/internal/hub"
	"github.com/tomz197/missiles/internal/input"
	"github.com/tomz197/missiles/internal/physics"
)

// Options configures a terminal session.
type Options struct {
	TermSizeFunc draw.TermSizeFunc // nil reads the size of os.Stdout
	Tuning       config.Tuning     // zero value means config.Default()
	Logger       *log.Logger       // nil discards
	Rand         *rand.Rand        // nil seeds from the clock
	Events       <-chan hub.Event  // server events, nil if none
	Inactivity   bool              // warn and then disconnect idle players
}

// client owns one game and the terminal it is drawn on.
type client struct {
	game     *game.Game
	state    *clientState
	view     viewport
	canvas   *draw.Canvas
	cw       *draw.ChunkWriter
	writer   io.Writer
	stream   *input.Stream
	termSize draw.TermSizeFunc
	events   <-chan hub.Event
	idle     bool
	log      *log.Logger
}

func newClient(r *bufio.Reader, w io.Writer, opts Options) *client {
	termSize := opts.TermSizeFunc
	if termSize == nil {
		termSize = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	g := game.New(game.Options{Tuning: opts.Tuning, Rand: opts.Rand, Logger: logger})
	field := g.Snapshot().Field

	termWidth, termHeight, _ := termSize()
	width, height, offCol, offRow := fitTerminal(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(width, height, config.ViewWidth, config.ViewHeight)
	canvas.SetOffset(offCol, offRow)

	var stream *input.Stream
	if r != nil {
		stream = input.StartStream(r)
	}

	return &client{
		game:     g,
		state:    newClientState(field.Center()),
		view:     newViewport(field),
		canvas:   canvas,
		cw:       draw.NewChunkWriter(w, offCol, offRow),
		writer:   w,
		stream:   stream,
		termSize: termSize,
		events:   opts.Events,
		idle:     opts.Inactivity,
		log:      logger,
	}
}

// Run plays a game on the terminal behind r and w until the player quits,
// the input ends, or the session is shut down.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	c := newClient(r, w, opts)

	draw.HideCursor(w)
	draw.EnableMouse(w)
	defer draw.ShowCursor(w)
	defer draw.DisableMouse(w)
	draw.ClearScreen(w)

	lastTime := time.Now()

	for c.state.running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput(input.ReadInput(c.stream))
		c.processEvents()
		c.updateScreen()
		c.update()

		if err := c.drawFrame(); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(w)
	return nil
}

// processInput applies one frame of input to the session and the game.
func (c *client) processInput(in input.Input) {
	s := c.state
	s.input = in

	now := time.Now()
	if in.AnyKey() || in.Moved {
		s.lastInput = now
		s.inactive = false
	} else if c.idle {
		idle := now.Sub(s.lastInput).Seconds()
		if idle > config.InactivityDisconnectUser {
			c.log.Info("disconnecting idle player", "idle", math.Round(idle))
			s.running = false
		} else if idle > config.InactivityWarnUser {
			s.inactive = true
		}
	}

	if in.Quit {
		s.running = false
		return
	}
	if s.shuttingDown {
		return
	}

	switch c.game.Mode() {
	case game.ModePlaying:
		c.handlePlaying(in)
	case game.ModeSkillChoice:
		c.handleSkillChoice(in)
	case game.ModeGameOver:
		if in.AnyKey() {
			c.game.Reset()
			s.crosshair = c.view.field.Center()
		}
	}
}

func (c *client) handlePlaying(in input.Input) {
	s := c.state

	step := config.CrosshairSpeed * s.delta.Seconds()
	if in.Left {
		s.crosshair.X -= step
	}
	if in.Right {
		s.crosshair.X += step
	}
	if in.Up {
		s.crosshair.Y -= step
	}
	if in.Down {
		s.crosshair.Y += step
	}
	if in.Moved {
		if p, ok := c.pointerField(in.Pointer); ok {
			s.crosshair = p
		}
	}
	s.crosshair = c.view.field.Clamp(s.crosshair)

	for _, click := range in.Clicks {
		if p, ok := c.pointerField(click); ok {
			c.game.Fire(p)
		}
	}
	if in.Space {
		c.game.Fire(s.crosshair)
	}
}

func (c *client) handleSkillChoice(in input.Input) {
	switch {
	case in.Left:
		c.game.HoverSkill(0)
	case in.Right:
		c.game.HoverSkill(1)
	}
	if in.Moved {
		if i, ok := c.pointerOption(in.Pointer); ok {
			c.game.HoverSkill(i)
		}
	}

	switch {
	case in.Number == 1 || in.Number == 2:
		c.game.ChooseSkill(in.Number - 1)
	case in.Enter || in.Space:
		c.game.ChooseSkill(c.game.HoveredSkill())
	default:
		for _, click := range in.Clicks {
			if i, ok := c.pointerOption(click); ok {
				c.game.ChooseSkill(i)
				break
			}
		}
	}
}

// pointerField converts a mouse cell to a field position.
func (c *client) pointerField(m input.Mouse) (physics.Vec2, bool) {
	p, ok := c.canvas.TerminalToLogical(m.Col, m.Row)
	if !ok {
		return physics.Vec2{}, false
	}
	return c.view.toField(p), true
}

// pointerOption maps a mouse cell to the skill option under it: the left
// half of the canvas is the first option, the right half the second.
func (c *client) pointerOption(m input.Mouse) (int, bool) {
	p, ok := c.canvas.TerminalToLogical(m.Col, m.Row)
	if !ok {
		return 0, false
	}
	if p.X < config.ViewWidth/2 {
		return 0, true
	}
	return 1, true
}

// processEvents drains server events without blocking.
func (c *client) processEvents() {
	if c.events == nil {
		return
	}
	for {
		select {
		case ev, ok := <-c.events:
			if !ok {
				c.state.running = false
				return
			}
			if ev.Type == hub.EventShutdown && !c.state.shuttingDown {
				c.state.shuttingDown = true
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen follows terminal resizes. A change of render area clears the
// terminal so no stale border or cells remain outside the new area.
func (c *client) updateScreen() {
	termWidth, termHeight, err := c.termSize()
	if err != nil {
		return
	}
	width, height, offCol, offRow := fitTerminal(termWidth, termHeight)

	if width != c.canvas.TerminalWidth() || height != c.canvas.TerminalHeight() ||
		offCol != c.canvas.OffsetCol() || offRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(width, height)
	c.canvas.SetOffset(offCol, offRow)
	c.cw.SetOffset(offCol, offRow)
}

// update advances the game, or the shutdown countdown.
func (c *client) update() {
	s := c.state
	if s.shuttingDown {
		s.shutdownTimer -= s.delta.Seconds()
		if s.shutdownTimer <= 0 {
			s.running = false
		}
		return
	}
	c.game.Tick(game.Frame{Delta: s.delta})
}
