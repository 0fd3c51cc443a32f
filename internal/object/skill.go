package object

import "math/rand"

// Skill is one of the upgrades offered when a star is collected.
type Skill int

const (
	SkillExplosionSpeed Skill = iota
	SkillExplosionAfterglow
	SkillExplosionRadius
	SkillMissileSpeed

	skillCount
)

// AllSkills lists every skill in display order.
var AllSkills = [skillCount]Skill{
	SkillExplosionSpeed,
	SkillExplosionAfterglow,
	SkillExplosionRadius,
	SkillMissileSpeed,
}

func (s Skill) String() string {
	switch s {
	case SkillExplosionSpeed:
		return "Explosion Speed"
	case SkillExplosionAfterglow:
		return "Explosion Afterglow"
	case SkillExplosionRadius:
		return "Explosion Radius"
	case SkillMissileSpeed:
		return "Missile Speed"
	default:
		return "Unknown"
	}
}

// Valid reports whether s names a known skill.
func (s Skill) Valid() bool {
	return s >= 0 && s < skillCount
}

// SkillOffer is the pair of distinct skills shown to the player.
type SkillOffer [2]Skill

// DrawSkillOffer picks two different skills uniformly at random.
func DrawSkillOffer(rng *rand.Rand) SkillOffer {
	pool := AllSkills
	var offer SkillOffer
	for i := range offer {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
		offer[i] = pool[i]
	}
	return offer
}
