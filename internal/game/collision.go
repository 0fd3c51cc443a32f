package game

import (
	"math"

	"github.com/tomz197/missiles/internal/object"
	"github.com/tomz197/missiles/internal/physics"
)

// updateMissiles moves every live missile and resolves direct impacts.
// Explosions spawned here grow in the same step.
func (g *Game) updateMissiles(dt float64) {
	mt := g.tuning.Missile
	for _, m := range g.missiles {
		if m.Exploded {
			continue
		}
		m.Move(dt)

		switch owner := m.Owner.(type) {
		case object.Hostile:
			if owner.Bunker < 0 || owner.Bunker >= len(g.bunkers) {
				continue
			}
			b := &g.bunkers[owner.Bunker]
			if m.Pos.Distance(b.Pos) < mt.HitRadius {
				m.Explode()
				if b.Active {
					g.log.Debug("bunker destroyed", "bunker", owner.Bunker)
				}
				b.Active = false
				g.explosions = append(g.explosions, g.defaultExplosion(b.Pos))
			}
		case object.Friendly:
			if m.Pos.Distance(m.Target) < mt.ArriveRadius || m.Overshot() {
				m.Explode()
				g.explosions = append(g.explosions, g.playerExplosion(m.Pos))
			}
		}
	}
}

// updateExplosions grows every explosion, then sweeps them against missiles
// and stars. Explosions triggered by the sweep join only after it, so they
// cannot chain further in the step that created them.
func (g *Game) updateExplosions(dt float64) {
	for _, e := range g.explosions {
		e.Update(dt)
	}

	g.grid.Clear()
	for i, m := range g.missiles {
		if !m.Exploded {
			g.grid.Insert(m.Pos, i)
		}
	}

	g.queued = g.queued[:0]
	g.kills = g.kills[:0]
	for _, e := range g.explosions {
		g.grid.QueryCircle(e.Pos, e.Radius, func(i int) bool {
			m := g.missiles[i]
			if m.Exploded || !e.Covers(m.Pos) {
				return false
			}
			m.Explode()
			if m.IsFriendly() {
				g.queued = append(g.queued, g.playerExplosion(m.Pos))
			} else {
				g.queued = append(g.queued, g.defaultExplosion(m.Pos))
				g.kills = append(g.kills, m.Pos)
			}
			return false
		})

		for _, s := range g.stars {
			if s.IsHitByExplosion(e) {
				s.Active = false
				g.addPendingChoice()
			}
		}
	}

	g.explosions = append(g.explosions, g.queued...)
}

// awardKills grants experience for hostile missiles destroyed this step.
// Every threshold crossed spawns a star.
func (g *Game) awardKills() {
	for _, pos := range g.kills {
		stars := g.player.AddExperience(g.killExperience(pos))
		for i := 0; i < stars; i++ {
			g.spawnStar()
		}
		if stars > 0 {
			g.log.Debug("stars spawned", "count", stars, "experience", g.player.Experience())
		}
	}
	g.kills = g.kills[:0]
}

// killExperience scales linearly from 0 at the bunker line to MaxAward at
// the top of the field.
func (g *Game) killExperience(pos physics.Vec2) float64 {
	f := g.tuning.Field
	span := f.BunkerY - f.Top
	if span <= 0 {
		return 0
	}
	exp := g.tuning.Progression.MaxAward * (f.BunkerY - pos.Y) / span
	return math.Min(math.Max(exp, 0), g.tuning.Progression.MaxAward)
}

// prune drops finished explosions, exploded missiles and collected stars.
func (g *Game) prune() {
	explosions := g.explosions[:0]
	for _, e := range g.explosions {
		if !e.HasEnded() {
			explosions = append(explosions, e)
		}
	}
	clear(g.explosions[len(explosions):])
	g.explosions = explosions

	missiles := g.missiles[:0]
	for _, m := range g.missiles {
		if !m.Exploded {
			missiles = append(missiles, m)
		}
	}
	clear(g.missiles[len(missiles):])
	g.missiles = missiles

	stars := g.stars[:0]
	for _, s := range g.stars {
		if s.Active {
			stars = append(stars, s)
		}
	}
	clear(g.stars[len(stars):])
	g.stars = stars
}

// updateFiring marks a bunker as firing while a live player missile that
// started from it is still in flight.
func (g *Game) updateFiring() {
	r := g.tuning.Missile.FiringRadius
	for i := range g.bunkers {
		b := &g.bunkers[i]
		b.Firing = false
		for _, m := range g.missiles {
			if !m.Exploded && m.IsFriendly() && physics.PointInCircle(m.Origin, b.Pos, r) {
				b.Firing = true
				break
			}
		}
	}
}

func (g *Game) defaultExplosion(pos physics.Vec2) *object.Explosion {
	return object.NewExplosion(pos, object.DefaultExplosionParams(g.tuning.Explosion))
}

func (g *Game) playerExplosion(pos physics.Vec2) *object.Explosion {
	base := object.DefaultExplosionParams(g.tuning.Explosion)
	return object.NewExplosion(pos, g.player.ExplosionParams(base))
}
