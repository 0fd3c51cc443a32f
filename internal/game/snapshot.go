package game

import (
	"fmt"

	"github.com/tomz197/missiles/internal/object"
	"github.com/tomz197/missiles/internal/physics"
)

// Snapshot is a read-only copy of everything a renderer needs. It shares no
// memory with the Game.
type Snapshot struct {
	Field      physics.Rect
	GroundY    float64
	Bunkers    []BunkerView
	Missiles   []MissileView
	Explosions []ExplosionView
	Stars      []StarView
	Progress   ProgressView
	Mode       Mode
	GameOver   bool
	Pending    int
	Offer      []object.Skill // empty unless a skill choice is pending
	Hovered    int
	GameTime   float64 // seconds, frozen while the game is over
}

type BunkerView struct {
	Pos    physics.Vec2
	Active bool
	Firing bool
}

type MissileView struct {
	Origin   physics.Vec2
	Pos      physics.Vec2
	Friendly bool
	Exploded bool
}

type ExplosionView struct {
	Pos    physics.Vec2
	Radius float64
	Phase  object.Phase
}

type StarView struct {
	Pos    physics.Vec2
	Radius float64
	Active bool
}

// ProgressView summarises the player's progression.
type ProgressView struct {
	Level           int
	ExperienceRatio float64 // progress toward the next star in [0, 1)
	Skills          [4]int  // indexed by object.Skill
}

// Snapshot copies the current state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Field:      g.field,
		GroundY:    g.tuning.Field.GroundY,
		Bunkers:    make([]BunkerView, len(g.bunkers)),
		Missiles:   make([]MissileView, len(g.missiles)),
		Explosions: make([]ExplosionView, len(g.explosions)),
		Stars:      make([]StarView, len(g.stars)),
		Progress: ProgressView{
			Level:           g.player.Level(),
			ExperienceRatio: g.player.ExperienceProgress(),
			Skills:          g.player.Skills(),
		},
		Mode:     g.Mode(),
		GameOver: g.gameOver,
		Pending:  g.pendingChoices,
		Hovered:  g.hovered,
		GameTime: g.gameTime,
	}

	for i, b := range g.bunkers {
		s.Bunkers[i] = BunkerView{Pos: b.Pos, Active: b.Active, Firing: b.Firing}
	}
	for i, m := range g.missiles {
		s.Missiles[i] = MissileView{Origin: m.Origin, Pos: m.Pos, Friendly: m.IsFriendly(), Exploded: m.Exploded}
	}
	for i, e := range g.explosions {
		s.Explosions[i] = ExplosionView{Pos: e.Pos, Radius: e.Radius, Phase: e.Phase}
	}
	for i, st := range g.stars {
		s.Stars[i] = StarView{Pos: st.Pos, Radius: st.Radius, Active: st.Active}
	}
	if g.pendingChoices > 0 && !g.gameOver {
		s.Offer = []object.Skill{g.offer[0], g.offer[1]}
	}
	return s
}

// FormatTime renders seconds as mm:ss.
func FormatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
