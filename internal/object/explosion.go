package object

import (
	"math"

	"github.com/tomz197/missiles/internal/config"
	"github.com/tomz197/missiles/internal/physics"
)

// Phase is the growth stage of an explosion.
type Phase int

const (
	PhaseLinear     Phase = iota // constant growth up to the transition radius
	PhaseDecelerate              // eases out toward the max radius
	PhaseStatic                  // held at max radius for the afterglow
)

func (p Phase) String() string {
	switch p {
	case PhaseLinear:
		return "linear"
	case PhaseDecelerate:
		return "decelerate"
	case PhaseStatic:
		return "static"
	default:
		return "unknown"
	}
}

const (
	transitionFraction = 0.8 // share of MaxRadius covered at constant speed
	snapDistance       = 0.1 // remaining distance at which the radius snaps to max
)

// ExplosionParams are fixed when an explosion is created.
type ExplosionParams struct {
	MaxRadius      float64
	GrowthRate     float64 // px/s during the linear phase
	StaticDuration float64 // seconds held at max radius
}

// DefaultExplosionParams returns the parameters used for enemy hits.
func DefaultExplosionParams(t config.ExplosionTuning) ExplosionParams {
	return ExplosionParams{
		MaxRadius:      t.MaxRadius,
		GrowthRate:     t.GrowthRate,
		StaticDuration: t.StaticDuration,
	}
}

// Explosion is an expanding blast that destroys whatever its radius covers.
type Explosion struct {
	Pos    physics.Vec2
	Radius float64
	Phase  Phase

	MaxRadius         float64
	TransitionRadius  float64
	InitialGrowthRate float64
	GrowthRate        float64 // current rate; decays during PhaseDecelerate
	StaticDuration    float64
	StaticElapsed     float64
}

// NewExplosion creates an explosion of radius 0 at pos.
// Non-positive max radius or growth rate skips straight to the static phase.
func NewExplosion(pos physics.Vec2, p ExplosionParams) *Explosion {
	e := &Explosion{
		Pos:               pos,
		Phase:             PhaseLinear,
		MaxRadius:         math.Max(p.MaxRadius, 0),
		TransitionRadius:  math.Max(p.MaxRadius, 0) * transitionFraction,
		InitialGrowthRate: p.GrowthRate,
		GrowthRate:        p.GrowthRate,
		StaticDuration:    p.StaticDuration,
	}
	if e.MaxRadius <= 0 || e.GrowthRate <= 0 {
		e.enterStatic()
	}
	return e
}

// Update advances the explosion by dt seconds.
func (e *Explosion) Update(dt float64) {
	if dt <= 0 {
		return
	}
	switch e.Phase {
	case PhaseLinear:
		e.updateLinear(dt)
	case PhaseDecelerate:
		e.updateDecelerate(dt)
	case PhaseStatic:
		e.StaticElapsed += dt
	}
}

// updateLinear grows at the initial rate. Time left over after reaching the
// transition radius is spent in deceleration so the blast does not stall at
// the phase boundary.
func (e *Explosion) updateLinear(dt float64) {
	raw := e.Radius + e.GrowthRate*dt
	if raw < e.TransitionRadius {
		e.Radius = raw
		return
	}

	e.Radius = e.TransitionRadius
	t := (raw - e.TransitionRadius) / e.InitialGrowthRate
	remaining := e.MaxRadius - e.TransitionRadius
	decel := e.InitialGrowthRate * e.InitialGrowthRate / (2 * remaining)

	e.Radius += brakingDistance(e.InitialGrowthRate, decel, t, remaining)
	e.GrowthRate = math.Max(e.InitialGrowthRate-decel*t, 0)
	e.Phase = PhaseDecelerate
}

// updateDecelerate re-derives the deceleration every tick from the current
// rate and the distance left, so the blast comes to rest exactly at MaxRadius.
func (e *Explosion) updateDecelerate(dt float64) {
	remaining := e.MaxRadius - e.Radius
	if remaining <= snapDistance || e.GrowthRate <= 0 {
		e.enterStatic()
		return
	}

	decel := e.GrowthRate * e.GrowthRate / (2 * remaining)
	e.Radius += brakingDistance(e.GrowthRate, decel, dt, remaining)
	e.GrowthRate = math.Max(e.GrowthRate-decel*dt, 0)
}

func (e *Explosion) enterStatic() {
	e.Radius = e.MaxRadius
	e.GrowthRate = 0
	e.StaticElapsed = 0
	e.Phase = PhaseStatic
}

// HasEnded reports whether the afterglow is over and the explosion can be
// removed.
func (e *Explosion) HasEnded() bool {
	return e.Phase == PhaseStatic && e.StaticElapsed >= e.StaticDuration
}

// Covers reports whether p lies inside the current radius.
func (e *Explosion) Covers(p physics.Vec2) bool {
	return physics.PointInCircle(p, e.Pos, e.Radius)
}

// brakingDistance is the distance covered in t seconds starting at speed v
// under constant deceleration a. Time past the stopping point adds nothing,
// and the result never exceeds limit.
func brakingDistance(v, a, t, limit float64) float64 {
	if a > 0 {
		if stop := v / a; t > stop {
			t = stop
		}
	}
	return math.Min(v*t-0.5*a*t*t, limit)
}
