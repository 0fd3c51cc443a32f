package object

import "github.com/tomz197/missiles/internal/physics"

// Bunker is a defense structure that launches the player's missiles.
type Bunker struct {
	Pos    physics.Vec2
	Active bool // false once hit; stays false until the game is reset
	Firing bool // true while a missile it launched is in flight
}

// NewBunker creates an active, idle bunker at pos.
func NewBunker(pos physics.Vec2) Bunker {
	return Bunker{
		Pos:    pos,
		Active: true,
	}
}

// Reset restores the bunker to its starting state.
func (b *Bunker) Reset() {
	b.Active = true
	b.Firing = false
}

// CanFire reports whether the bunker may launch a missile.
func (b *Bunker) CanFire() bool {
	return b.Active && !b.Firing
}
