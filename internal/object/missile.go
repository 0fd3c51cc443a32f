package object

import "github.com/tomz197/missiles/internal/physics"

// Owner tells hostile missiles from the player's. It is one of Hostile or
// Friendly.
type Owner interface {
	isOwner()
}

// Hostile is an enemy missile aimed at the bunker with the given index.
type Hostile struct {
	Bunker int
}

// Friendly is a missile launched by the player.
type Friendly struct{}

func (Hostile) isOwner()  {}
func (Friendly) isOwner() {}

// Missile travels in a straight line from Origin toward Target.
type Missile struct {
	Origin   physics.Vec2
	Target   physics.Vec2
	Pos      physics.Vec2
	Dir      physics.Vec2 // unit vector, or zero when Origin == Target
	Speed    float64      // px/s
	Owner    Owner
	Exploded bool
}

// NewMissile creates a missile at origin heading for target.
// A missile whose origin equals its target gets a zero direction and stays
// put, so its first impact check treats it as already arrived.
func NewMissile(origin, target physics.Vec2, speed float64, owner Owner) *Missile {
	if owner == nil {
		owner = Friendly{}
	}
	return &Missile{
		Origin: origin,
		Target: target,
		Pos:    origin,
		Dir:    target.Sub(origin).Normalize(),
		Speed:  speed,
		Owner:  owner,
	}
}

// Move advances the missile by dt seconds. Exploded missiles are inert.
func (m *Missile) Move(dt float64) {
	if m.Exploded {
		return
	}
	m.Pos = m.Pos.Add(m.Dir.Scale(m.Speed * dt))
}

// Overshot reports whether the missile is level with or past its target
// along its heading. A missile with no heading has always overshot.
func (m *Missile) Overshot() bool {
	return m.Target.Sub(m.Pos).Dot(m.Dir) <= 0
}

// IsFriendly reports whether the player launched the missile.
func (m *Missile) IsFriendly() bool {
	_, ok := m.Owner.(Friendly)
	return ok
}

// Explode marks the missile for removal.
func (m *Missile) Explode() {
	m.Exploded = true
}
