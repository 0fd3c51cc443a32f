package object

import (
	"math"

	"github.com/tomz197/missiles/internal/config"
)

// Player tracks experience, the level and every skill level.
type Player struct {
	level      int
	experience float64
	skills     [skillCount]int
	tuning     config.ProgressionTuning
}

// NewPlayer creates a level 0 player with no skills.
func NewPlayer(t config.ProgressionTuning) *Player {
	return &Player{tuning: t}
}

func (p *Player) Level() int {
	return p.level
}

func (p *Player) Experience() float64 {
	return p.experience
}

// ExperienceRequired is the experience needed for the next star at the
// current level.
func (p *Player) ExperienceRequired() float64 {
	return p.tuning.BaseExperience * (1 + p.tuning.LevelStep*float64(p.level))
}

// ExperienceProgress returns experience as a fraction of the requirement.
func (p *Player) ExperienceProgress() float64 {
	req := p.ExperienceRequired()
	if req <= 0 {
		return 0
	}
	return p.experience / req
}

// AddExperience adds amount and returns how many thresholds were crossed.
// Afterwards experience is below ExperienceRequired. The level itself does
// not change here; it rises when a skill is chosen.
func (p *Player) AddExperience(amount float64) int {
	if amount <= 0 || math.IsNaN(amount) {
		return 0
	}
	req := p.ExperienceRequired()
	if req <= 0 {
		return 0
	}

	p.experience += amount
	crossed := 0
	for p.experience >= req {
		p.experience -= req
		crossed++
	}
	return crossed
}

// SkillLevel returns the level of s, or 0 for an unknown skill.
func (p *Player) SkillLevel(s Skill) int {
	if !s.Valid() {
		return 0
	}
	return p.skills[s]
}

// Skills returns the level of every skill indexed by Skill.
func (p *Player) Skills() [4]int {
	return p.skills
}

// LevelUp raises s by one and the player level with it.
func (p *Player) LevelUp(s Skill) bool {
	if !s.Valid() {
		return false
	}
	p.skills[s]++
	p.level++
	return true
}

func (p *Player) multiplier(s Skill) float64 {
	return 1 + p.tuning.SkillStep*float64(p.skills[s])
}

// ExplosionParams scales base by the explosion skills. The result is a copy,
// so later level ups do not touch explosions already alive.
func (p *Player) ExplosionParams(base ExplosionParams) ExplosionParams {
	return ExplosionParams{
		MaxRadius:      base.MaxRadius * p.multiplier(SkillExplosionRadius),
		GrowthRate:     base.GrowthRate * p.multiplier(SkillExplosionSpeed),
		StaticDuration: base.StaticDuration * p.multiplier(SkillExplosionAfterglow),
	}
}

// MissileSpeed scales base by the missile speed skill.
func (p *Player) MissileSpeed(base float64) float64 {
	return base * p.multiplier(SkillMissileSpeed)
}
