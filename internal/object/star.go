package object

import "github.com/tomz197/missiles/internal/physics"

// Star is a bonus that appears on level-up. Catching it in an explosion
// grants one skill choice.
type Star struct {
	Pos    physics.Vec2
	Active bool
	Radius float64
}

// NewStar creates an active star at pos.
func NewStar(pos physics.Vec2, radius float64) *Star {
	return &Star{
		Pos:    pos,
		Active: true,
		Radius: radius,
	}
}

// IsHitByExplosion reports whether the explosion overlaps the star.
// Inactive stars are never hit.
func (s *Star) IsHitByExplosion(e *Explosion) bool {
	if !s.Active {
		return false
	}
	return physics.CirclesTouch(s.Pos, s.Radius, e.Pos, e.Radius)
}
