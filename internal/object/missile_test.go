package object

import (
	"math"
	"testing"

	"github.com/tomz197/missiles/internal/physics"
)

func TestMissileMovesTowardTarget(t *testing.T) {
	m := NewMissile(physics.V(0, 0), physics.V(30, 40), 100, Friendly{})
	m.Move(0.25)
	if math.Abs(m.Pos.X-15) > 1e-9 || math.Abs(m.Pos.Y-20) > 1e-9 {
		t.Errorf("Pos = %v, want (15,20)", m.Pos)
	}
	if !m.IsFriendly() {
		t.Error("expected friendly missile")
	}
}

func TestMissileDegenerateTarget(t *testing.T) {
	m := NewMissile(physics.V(5, 5), physics.V(5, 5), 100, Hostile{Bunker: 1})
	m.Move(1)
	if m.Pos != physics.V(5, 5) {
		t.Errorf("Pos = %v, want unchanged", m.Pos)
	}
	if math.IsNaN(m.Dir.X) || math.IsNaN(m.Dir.Y) {
		t.Error("direction is NaN")
	}
	if h, ok := m.Owner.(Hostile); !ok || h.Bunker != 1 {
		t.Errorf("Owner = %#v", m.Owner)
	}
}

func TestExplodedMissileIsInert(t *testing.T) {
	m := NewMissile(physics.V(0, 0), physics.V(0, 100), 100, nil)
	m.Explode()
	m.Move(1)
	if m.Pos != physics.V(0, 0) {
		t.Errorf("exploded missile moved to %v", m.Pos)
	}
	if !m.IsFriendly() {
		t.Error("nil owner should default to friendly")
	}
}

func TestStarHitByExplosion(t *testing.T) {
	s := NewStar(physics.V(0, 0), 3)
	e := NewExplosion(physics.V(13, 0), testParams)
	e.Update(0.05) // radius 10, touching at distance 13
	if !s.IsHitByExplosion(e) {
		t.Error("touching explosion should hit the star")
	}
	s.Active = false
	if s.IsHitByExplosion(e) {
		t.Error("inactive star should never be hit")
	}
}

func TestBunkerCanFire(t *testing.T) {
	b := NewBunker(physics.V(0, 260))
	if !b.CanFire() {
		t.Fatal("new bunker should be able to fire")
	}
	b.Firing = true
	if b.CanFire() {
		t.Error("firing bunker cannot fire again")
	}
	b.Active = false
	b.Reset()
	if !b.Active || b.Firing {
		t.Error("Reset should restore an active idle bunker")
	}
}

func TestMissileOvershot(t *testing.T) {
	m := NewMissile(physics.V(0, 0), physics.V(0, 10), 100, Friendly{})
	if m.Overshot() {
		t.Fatal("fresh missile should not have overshot")
	}
	m.Move(0.2) // 20 units along a 10 unit path
	if !m.Overshot() {
		t.Error("missile past its target should report overshot")
	}
	if !NewMissile(physics.V(1, 1), physics.V(1, 1), 100, Friendly{}).Overshot() {
		t.Error("missile with no heading should report overshot")
	}
}
