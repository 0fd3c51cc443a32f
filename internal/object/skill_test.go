package object

import (
	"math/rand"
	"testing"
)

func TestDrawSkillOfferDistinct(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seen := make(map[Skill]int)
	for i := 0; i < 1000; i++ {
		offer := DrawSkillOffer(rng)
		if offer[0] == offer[1] {
			t.Fatalf("draw %d: duplicate skill %v", i, offer[0])
		}
		for _, s := range offer {
			if !s.Valid() {
				t.Fatalf("draw %d: invalid skill %d", i, s)
			}
			seen[s]++
		}
	}
	for _, s := range AllSkills {
		if seen[s] == 0 {
			t.Errorf("%v never offered", s)
		}
	}
}

func TestSkillString(t *testing.T) {
	if got := SkillExplosionAfterglow.String(); got != "Explosion Afterglow" {
		t.Errorf("String() = %q", got)
	}
	if got := Skill(-1).String(); got != "Unknown" {
		t.Errorf("String() = %q, want Unknown", got)
	}
}
