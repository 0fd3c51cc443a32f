// Package game runs the missile defense simulation. A Game is owned by a
// single goroutine: it is advanced with Tick and driven with Fire,
// HoverSkill and ChooseSkill, and renderers read it through Snapshot.
package game

import (
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/missiles/internal/config"
	"github.com/tomz197/missiles/internal/object"
	"github.com/tomz197/missiles/internal/physics"
)

// gridCellSize is the broad-phase cell size in field units.
const gridCellSize = 50

// Frame carries the time elapsed since the previous tick.
type Frame struct {
	Delta time.Duration
}

// Mode is the current phase of a game.
type Mode int

const (
	ModePlaying     Mode = iota // simulation running
	ModeSkillChoice             // waiting for the player to pick a skill
	ModeGameOver                // every bunker destroyed; frozen until Reset
)

func (m Mode) String() string {
	switch m {
	case ModePlaying:
		return "playing"
	case ModeSkillChoice:
		return "skill choice"
	case ModeGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Options configures a new Game.
type Options struct {
	Tuning config.Tuning // zero value means config.Default()
	Rand   *rand.Rand    // nil seeds from the clock
	Logger *log.Logger   // nil discards
}

// Game is the simulation state. It is not safe for concurrent use.
type Game struct {
	tuning config.Tuning
	rng    *rand.Rand
	log    *log.Logger
	field  physics.Rect
	grid   *physics.SpatialGrid

	bunkers    []object.Bunker
	missiles   []*object.Missile
	explosions []*object.Explosion
	stars      []*object.Star
	player     *object.Player

	spawnTimer float64
	gameTime   float64
	gameOver   bool

	pendingChoices int
	offer          object.SkillOffer
	hovered        int

	// Per-tick scratch buffers, reused to avoid allocations.
	queued        []*object.Explosion
	kills         []physics.Vec2
	activeBunkers []int
}

// New creates a game ready to play.
func New(opts Options) *Game {
	t := opts.Tuning
	if len(t.Field.Bunkers) == 0 {
		t = config.Default()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	field := physics.Rect{X: t.Field.Left, Y: t.Field.Top, W: t.Field.Width, H: t.Field.Height}
	g := &Game{
		tuning: t,
		rng:    rng,
		log:    logger,
		field:  field,
		grid:   physics.NewSpatialGrid(field, gridCellSize),
	}
	g.Reset()
	return g
}

// Reset restores the starting state: every bunker active, no missiles,
// explosions or stars, a fresh player and the initial spawn delay.
func (g *Game) Reset() {
	g.bunkers = g.bunkers[:0]
	for _, x := range g.tuning.Field.Bunkers {
		g.bunkers = append(g.bunkers, object.NewBunker(physics.V(x, g.tuning.Field.BunkerY)))
	}
	g.missiles = g.missiles[:0]
	g.explosions = g.explosions[:0]
	g.stars = g.stars[:0]
	g.player = object.NewPlayer(g.tuning.Progression)

	g.spawnTimer = g.tuning.Spawn.InitialDelay
	g.gameTime = 0
	g.gameOver = false
	g.pendingChoices = 0
	g.offer = object.SkillOffer{}
	g.hovered = 0
}

// Mode reports what the game is waiting on.
func (g *Game) Mode() Mode {
	switch {
	case g.gameOver:
		return ModeGameOver
	case g.pendingChoices > 0:
		return ModeSkillChoice
	default:
		return ModePlaying
	}
}

// GameOver reports whether every bunker has been destroyed.
func (g *Game) GameOver() bool {
	return g.gameOver
}

// Tick advances the simulation by f.Delta. Nothing moves while a skill
// choice is pending or the game is over.
//
// The delta is clamped to Frame.MaxDelta and integrated in equal substeps
// no longer than Frame.MaxStep. A substep that ends the game or opens a
// skill choice drops the rest of the frame.
func (g *Game) Tick(f Frame) {
	if g.Mode() != ModePlaying {
		return
	}

	dt := math.Min(f.Delta.Seconds(), g.tuning.Frame.MaxDelta)
	if dt <= 0 || math.IsNaN(dt) {
		return
	}
	steps := int(math.Ceil(dt/g.tuning.Frame.MaxStep - 1e-9))
	if steps < 1 {
		steps = 1
	}
	step := dt / float64(steps)

	for i := 0; i < steps; i++ {
		g.step(step)
		if g.Mode() != ModePlaying {
			return
		}
	}
}

// step runs one fixed integration step.
func (g *Game) step(dt float64) {
	g.gameTime += dt
	g.updateSpawner(dt)
	g.updateMissiles(dt)
	g.updateExplosions(dt)
	g.awardKills()
	g.prune()
	g.updateFiring()
	g.checkGameOver()
}

// Fire launches a player missile at target from the closest bunker that is
// active and not already firing. It reports whether a missile was launched.
func (g *Game) Fire(target physics.Vec2) bool {
	if g.Mode() != ModePlaying {
		return false
	}

	idx := g.closestReadyBunker(target)
	if idx < 0 {
		return false
	}

	b := &g.bunkers[idx]
	b.Firing = true
	speed := g.player.MissileSpeed(g.tuning.Missile.PlayerSpeed)
	g.missiles = append(g.missiles, object.NewMissile(b.Pos, target, speed, object.Friendly{}))
	return true
}

func (g *Game) closestReadyBunker(target physics.Vec2) int {
	best := -1
	bestDist := math.MaxFloat64
	for i := range g.bunkers {
		if !g.bunkers[i].CanFire() {
			continue
		}
		if d := g.bunkers[i].Pos.Distance(target); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// HoverSkill highlights entry i of the current offer. Out of range indices
// and calls outside skill choice are ignored.
func (g *Game) HoverSkill(i int) {
	if g.Mode() != ModeSkillChoice || i < 0 || i >= len(g.offer) {
		return
	}
	g.hovered = i
}

// HoveredSkill returns the highlighted offer index.
func (g *Game) HoveredSkill() int {
	return g.hovered
}

// ChooseSkill takes entry i of the current offer. It levels the player up,
// uses one pending choice and draws a new offer if more remain. It reports
// whether the choice was accepted.
func (g *Game) ChooseSkill(i int) bool {
	if g.Mode() != ModeSkillChoice || i < 0 || i >= len(g.offer) {
		return false
	}

	skill := g.offer[i]
	g.player.LevelUp(skill)
	g.pendingChoices--
	g.log.Debug("skill chosen", "skill", skill, "level", g.player.Level(), "pending", g.pendingChoices)

	g.hovered = 0
	if g.pendingChoices > 0 {
		g.offer = object.DrawSkillOffer(g.rng)
	}
	return true
}

// addPendingChoice records one collected star. The first pending choice
// opens a new offer.
func (g *Game) addPendingChoice() {
	if g.pendingChoices == 0 {
		g.offer = object.DrawSkillOffer(g.rng)
		g.hovered = 0
	}
	g.pendingChoices++
}

func (g *Game) checkGameOver() {
	for i := range g.bunkers {
		if g.bunkers[i].Active {
			return
		}
	}
	if !g.gameOver {
		g.log.Info("game over", "time", FormatTime(g.gameTime), "level", g.player.Level())
	}
	g.gameOver = true
}
