package game

import (
	"math"

	"github.com/tomz197/missiles/internal/config"
	"github.com/tomz197/missiles/internal/object"
	"github.com/tomz197/missiles/internal/physics"
)

// SpawnInterval returns the base time between hostile missiles after
// elapsed seconds of play. It shrinks linearly over the ramp and bottoms
// out at MinIntervalFactor of the base interval.
func SpawnInterval(elapsed float64, t config.SpawnTuning) float64 {
	minInterval := t.BaseInterval * t.MinIntervalFactor
	multiplier := 1 - ramp(elapsed, t.RampSeconds)*(1-t.MinIntervalFactor)
	return math.Max(t.BaseInterval*multiplier, minInterval)
}

// EnemySpeed returns the speed of a hostile missile spawned after elapsed
// seconds. It grows from EnemySpeedFactor of the player speed to
// EnemyMaxMultiplier times that over the ramp.
func EnemySpeed(elapsed float64, m config.MissileTuning, s config.SpawnTuning) float64 {
	base := m.PlayerSpeed * m.EnemySpeedFactor
	multiplier := 1 + ramp(elapsed, s.RampSeconds)*(m.EnemyMaxMultiplier-1)
	return base * math.Min(multiplier, m.EnemyMaxMultiplier)
}

// ramp is the unclamped progress through the difficulty ramp.
func ramp(elapsed, seconds float64) float64 {
	if seconds <= 0 {
		return 1
	}
	return elapsed / seconds
}

// updateSpawner counts down to the next hostile missile.
func (g *Game) updateSpawner(dt float64) {
	g.spawnTimer -= dt
	if g.spawnTimer > 0 {
		return
	}

	g.spawnEnemyMissile()

	s := g.tuning.Spawn
	jitter := s.JitterMin + g.rng.Float64()*(s.JitterMax-s.JitterMin)
	g.spawnTimer = SpawnInterval(g.gameTime, s) * jitter
}

// spawnEnemyMissile launches a hostile missile from the top of the field at
// a random active bunker. Nothing spawns once every bunker is gone.
func (g *Game) spawnEnemyMissile() {
	active := g.activeBunkers[:0]
	for i := range g.bunkers {
		if g.bunkers[i].Active {
			active = append(active, i)
		}
	}
	g.activeBunkers = active
	if len(active) == 0 {
		return
	}

	s := g.tuning.Spawn
	start := physics.V(s.StartXMin+g.rng.Float64()*(s.StartXMax-s.StartXMin), s.StartY)
	idx := active[g.rng.Intn(len(active))]
	speed := EnemySpeed(g.gameTime, g.tuning.Missile, s)

	g.missiles = append(g.missiles, object.NewMissile(start, g.bunkers[idx].Pos, speed, object.Hostile{Bunker: idx}))
}

// spawnStar places a bonus star at a random point in the upper band.
func (g *Game) spawnStar() {
	st := g.tuning.Star
	pos := physics.V(
		st.XMin+g.rng.Float64()*(st.XMax-st.XMin),
		st.YMin+g.rng.Float64()*(st.YMax-st.YMin),
	)
	g.stars = append(g.stars, object.NewStar(pos, st.Radius))
}
