package game

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/missiles/internal/config"
	"github.com/tomz197/missiles/internal/object"
	"github.com/tomz197/missiles/internal/physics"
)

const testStep = 1.0 / 120

// newQuietGame returns a game whose spawner will not fire during a test.
func newQuietGame(t *testing.T) *Game {
	t.Helper()
	g := New(Options{Rand: rand.New(rand.NewSource(42))})
	g.spawnTimer = math.Inf(1)
	return g
}

func defaultParams() object.ExplosionParams {
	return object.DefaultExplosionParams(config.Default().Explosion)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestNewGameStartsPlaying(t *testing.T) {
	g := New(Options{})
	s := g.Snapshot()
	if s.Mode != ModePlaying || s.GameOver {
		t.Fatalf("mode = %v, game over = %v", s.Mode, s.GameOver)
	}
	if len(s.Bunkers) != 3 {
		t.Fatalf("got %d bunkers, want 3", len(s.Bunkers))
	}
	for i, b := range s.Bunkers {
		if !b.Active || b.Firing || b.Pos.Y != 260 {
			t.Errorf("bunker %d = %+v", i, b)
		}
	}
}

func TestHostileHitDestroysBunker(t *testing.T) {
	g := newQuietGame(t)
	g.missiles = append(g.missiles, object.NewMissile(physics.V(0, 259), physics.V(0, 260), 50, object.Hostile{Bunker: 1}))

	g.step(testStep)

	if g.bunkers[1].Active {
		t.Fatal("bunker 1 should be destroyed")
	}
	if !g.bunkers[0].Active || !g.bunkers[2].Active {
		t.Error("other bunkers should be untouched")
	}
	if len(g.explosions) != 1 {
		t.Fatalf("got %d explosions, want 1", len(g.explosions))
	}
	if g.explosions[0].Pos != physics.V(0, 260) {
		t.Errorf("explosion at %v, want (0,260)", g.explosions[0].Pos)
	}
	if len(g.missiles) != 0 {
		t.Errorf("exploded missile not pruned: %d left", len(g.missiles))
	}
}

func TestHostileWithUnknownBunkerIsInert(t *testing.T) {
	g := newQuietGame(t)
	m := object.NewMissile(physics.V(0, 260), physics.V(0, 260), 50, object.Hostile{Bunker: -1})
	g.missiles = append(g.missiles, m)

	g.step(testStep)

	if m.Exploded {
		t.Error("missile bound to an unknown bunker should never impact")
	}
	for i, b := range g.bunkers {
		if !b.Active {
			t.Errorf("bunker %d destroyed", i)
		}
	}
}

func TestChainReactionUsesPlayerSkills(t *testing.T) {
	g := newQuietGame(t)
	g.player.LevelUp(object.SkillExplosionRadius)
	g.player.LevelUp(object.SkillExplosionRadius)

	g.explosions = append(g.explosions, object.NewExplosion(physics.V(100, 0), defaultParams()))
	friendly := object.NewMissile(physics.V(100, 0.5), physics.V(100, -200), 100, object.Friendly{})
	g.missiles = append(g.missiles, friendly)

	g.step(testStep)

	if !friendly.Exploded {
		t.Fatal("friendly missile inside the blast should explode")
	}
	if len(g.explosions) != 2 {
		t.Fatalf("got %d explosions, want 2", len(g.explosions))
	}
	if got := g.explosions[1].MaxRadius; !almostEqual(got, 70) {
		t.Errorf("chained explosion max radius = %v, want 70", got)
	}
	if got := g.explosions[0].MaxRadius; !almostEqual(got, 50) {
		t.Errorf("original explosion max radius changed to %v", got)
	}
}

func TestChainedHostileUsesDefaults(t *testing.T) {
	g := newQuietGame(t)
	g.player.LevelUp(object.SkillExplosionRadius)

	g.explosions = append(g.explosions, object.NewExplosion(physics.V(0, 0), defaultParams()))
	g.missiles = append(g.missiles, object.NewMissile(physics.V(0, 1), physics.V(0, 260), 0, object.Hostile{Bunker: 1}))

	g.step(testStep)

	if len(g.explosions) != 2 {
		t.Fatalf("got %d explosions, want 2", len(g.explosions))
	}
	if got := g.explosions[1].MaxRadius; !almostEqual(got, 50) {
		t.Errorf("hostile chain explosion max radius = %v, want 50", got)
	}
}

func TestNoSameStepRetrigger(t *testing.T) {
	g := newQuietGame(t)
	g.explosions = append(g.explosions, object.NewExplosion(physics.V(0, 0), defaultParams()))

	inside := object.NewMissile(physics.V(0, 1), physics.V(0, 1), 0, object.Hostile{Bunker: 99})
	nextTo := object.NewMissile(physics.V(0, 3), physics.V(0, 3), 0, object.Hostile{Bunker: 99})
	g.missiles = append(g.missiles, inside, nextTo)

	g.step(testStep)

	if !inside.Exploded {
		t.Fatal("missile inside the blast should explode")
	}
	if nextTo.Exploded {
		t.Fatal("new explosion must not chain in the step that created it")
	}

	// The queued explosion grows on the next step and catches it.
	for i := 0; i < 5 && !nextTo.Exploded; i++ {
		g.step(testStep)
	}
	if !nextTo.Exploded {
		t.Error("missile next to the chained blast should explode on a later step")
	}
}

func TestKillExperience(t *testing.T) {
	g := newQuietGame(t)
	tests := []struct {
		y    float64
		want float64
	}{
		{-300, 100},
		{260, 0},
		{-20, 50},
		{-500, 100},
		{300, 0},
	}
	for _, tt := range tests {
		if got := g.killExperience(physics.V(0, tt.y)); !almostEqual(got, tt.want) {
			t.Errorf("killExperience(y=%v) = %v, want %v", tt.y, got, tt.want)
		}
	}
}

func TestKillAtTopSpawnsTwoStars(t *testing.T) {
	g := newQuietGame(t)
	g.kills = append(g.kills, physics.V(0, -300))

	g.awardKills()

	if len(g.stars) != 2 {
		t.Fatalf("got %d stars, want 2", len(g.stars))
	}
	st := config.Default().Star
	for i, s := range g.stars {
		if s.Pos.X < st.XMin || s.Pos.X > st.XMax || s.Pos.Y < st.YMin || s.Pos.Y > st.YMax {
			t.Errorf("star %d at %v outside the upper band", i, s.Pos)
		}
	}
	if g.player.Level() != 0 {
		t.Errorf("level = %d, want 0 before any choice", g.player.Level())
	}
}

func TestCollectingStarOpensSkillChoice(t *testing.T) {
	g := newQuietGame(t)
	g.stars = append(g.stars, object.NewStar(physics.V(0, -200), 3))
	g.explosions = append(g.explosions, object.NewExplosion(physics.V(0, -200), defaultParams()))
	g.missiles = append(g.missiles, object.NewMissile(physics.V(300, 0), physics.V(300, 260), 100, object.Hostile{Bunker: 2}))

	g.Tick(Frame{Delta: 100 * time.Millisecond})

	if g.Mode() != ModeSkillChoice {
		t.Fatalf("mode = %v, want skill choice", g.Mode())
	}
	if !almostEqual(g.gameTime, testStep) {
		t.Errorf("game time = %v, want one step (%v)", g.gameTime, testStep)
	}
	if len(g.stars) != 0 {
		t.Errorf("collected star not pruned")
	}

	s := g.Snapshot()
	if len(s.Offer) != 2 || s.Offer[0] == s.Offer[1] {
		t.Fatalf("offer = %v, want two distinct skills", s.Offer)
	}

	// Suspended: nothing moves and the player cannot fire.
	pos := g.missiles[0].Pos
	g.Tick(Frame{Delta: 100 * time.Millisecond})
	if g.missiles[0].Pos != pos {
		t.Error("missile moved during skill choice")
	}
	if g.Fire(physics.V(0, 0)) {
		t.Error("fire should be rejected during skill choice")
	}

	g.HoverSkill(1)
	g.HoverSkill(7)
	if g.HoveredSkill() != 1 {
		t.Errorf("hovered = %d, want 1", g.HoveredSkill())
	}
	if g.ChooseSkill(2) || g.ChooseSkill(-1) {
		t.Error("out of range choice should be rejected")
	}

	chosen := s.Offer[1]
	if !g.ChooseSkill(1) {
		t.Fatal("valid choice rejected")
	}
	if g.player.SkillLevel(chosen) != 1 || g.player.Level() != 1 {
		t.Errorf("skill %v = %d, level = %d; want 1 and 1", chosen, g.player.SkillLevel(chosen), g.player.Level())
	}
	if g.Mode() != ModePlaying {
		t.Errorf("mode = %v, want playing", g.Mode())
	}
	if g.ChooseSkill(0) {
		t.Error("choice accepted with nothing pending")
	}
}

func TestTwoStarsQueueTwoChoices(t *testing.T) {
	g := newQuietGame(t)
	g.stars = append(g.stars,
		object.NewStar(physics.V(0, -200), 3),
		object.NewStar(physics.V(2, -200), 3),
	)
	g.explosions = append(g.explosions, object.NewExplosion(physics.V(1, -200), defaultParams()))

	g.step(testStep)

	if g.pendingChoices != 2 {
		t.Fatalf("pending = %d, want 2", g.pendingChoices)
	}
	g.ChooseSkill(0)
	if g.Mode() != ModeSkillChoice {
		t.Fatalf("mode = %v, want skill choice with one left", g.Mode())
	}
	if offer := g.Snapshot().Offer; len(offer) != 2 || offer[0] == offer[1] {
		t.Errorf("second offer = %v", offer)
	}
	g.ChooseSkill(1)
	if g.Mode() != ModePlaying || g.player.Level() != 2 {
		t.Errorf("mode = %v level = %d, want playing and 2", g.Mode(), g.player.Level())
	}
}

func TestGameOverOnLastBunker(t *testing.T) {
	g := newQuietGame(t)
	g.bunkers[0].Active = false
	g.bunkers[1].Active = false
	g.missiles = append(g.missiles, object.NewMissile(physics.V(200, 259), physics.V(200, 260), 50, object.Hostile{Bunker: 2}))

	g.Tick(Frame{Delta: 16 * time.Millisecond})

	if !g.GameOver() || g.Mode() != ModeGameOver {
		t.Fatal("game should be over the tick the last bunker falls")
	}
	frozen := g.gameTime
	for i := 0; i < 10; i++ {
		g.Tick(Frame{Delta: 16 * time.Millisecond})
	}
	if !g.GameOver() {
		t.Error("game over should persist until reset")
	}
	if g.gameTime != frozen {
		t.Errorf("game time advanced after game over: %v -> %v", frozen, g.gameTime)
	}
	if g.Fire(physics.V(0, 0)) {
		t.Error("fire accepted after game over")
	}

	g.Reset()
	if g.GameOver() {
		t.Fatal("reset should clear game over")
	}
	for i, b := range g.bunkers {
		if !b.Active {
			t.Errorf("bunker %d inactive after reset", i)
		}
	}
	if g.gameTime != 0 || len(g.missiles) != 0 || len(g.explosions) != 0 {
		t.Error("reset left state behind")
	}
}

func TestFirePicksClosestIdleBunker(t *testing.T) {
	g := newQuietGame(t)
	target := physics.V(10, 0)

	want := []int{1, 2, 0}
	for _, idx := range want {
		if !g.Fire(target) {
			t.Fatalf("fire rejected, want bunker %d", idx)
		}
		if !g.bunkers[idx].Firing {
			t.Fatalf("bunker %d not firing", idx)
		}
		if got := g.missiles[len(g.missiles)-1].Origin; got != g.bunkers[idx].Pos {
			t.Fatalf("missile origin %v, want bunker %d", got, idx)
		}
	}
	if g.Fire(target) {
		t.Fatal("fire accepted with every bunker busy")
	}

	for i := 0; i < 300 && len(g.missiles) > 0; i++ {
		g.Tick(Frame{Delta: 16 * time.Millisecond})
	}
	if len(g.missiles) != 0 {
		t.Fatalf("%d missiles still in flight", len(g.missiles))
	}
	for i, b := range g.bunkers {
		if b.Firing {
			t.Errorf("bunker %d still firing after its missile landed", i)
		}
	}
	if len(g.explosions) == 0 {
		t.Error("arrivals should leave explosions")
	}
}

func TestFireSkipsDestroyedBunker(t *testing.T) {
	g := newQuietGame(t)
	g.bunkers[1].Active = false
	if !g.Fire(physics.V(0, 0)) {
		t.Fatal("fire rejected")
	}
	if g.bunkers[1].Firing {
		t.Error("destroyed bunker fired")
	}
}

func TestPlayerMissileSpeedUsesSkill(t *testing.T) {
	g := newQuietGame(t)
	g.player.LevelUp(object.SkillMissileSpeed)
	g.Fire(physics.V(0, 0))
	if got := g.missiles[0].Speed; !almostEqual(got, 120) {
		t.Errorf("speed = %v, want 120", got)
	}
}

func TestTickClampsDelta(t *testing.T) {
	g := newQuietGame(t)
	g.Tick(Frame{Delta: 5 * time.Second})
	if !almostEqual(g.gameTime, 0.1) {
		t.Errorf("game time = %v, want 0.1", g.gameTime)
	}
	g.Tick(Frame{Delta: -time.Second})
	if !almostEqual(g.gameTime, 0.1) {
		t.Errorf("negative delta advanced time to %v", g.gameTime)
	}
}

func TestSpawnerHonorsInitialDelay(t *testing.T) {
	g := New(Options{Rand: rand.New(rand.NewSource(3))})
	for i := 0; i < 19; i++ {
		g.Tick(Frame{Delta: 100 * time.Millisecond})
	}
	if len(g.missiles) != 0 {
		t.Fatalf("%d missiles before the initial delay", len(g.missiles))
	}
	for i := 0; i < 2; i++ {
		g.Tick(Frame{Delta: 100 * time.Millisecond})
	}
	if len(g.missiles) != 1 {
		t.Fatalf("got %d missiles, want 1", len(g.missiles))
	}

	m := g.missiles[0]
	h, ok := m.Owner.(object.Hostile)
	if !ok {
		t.Fatalf("owner = %#v, want hostile", m.Owner)
	}
	if m.Target != g.bunkers[h.Bunker].Pos {
		t.Errorf("target %v is not bunker %d", m.Target, h.Bunker)
	}
	if m.Origin.Y != -280 || m.Origin.X < -380 || m.Origin.X >= 380 {
		t.Errorf("origin %v outside the spawn line", m.Origin)
	}
}

func TestSpawnerTargetsOnlyActiveBunkers(t *testing.T) {
	g := New(Options{Rand: rand.New(rand.NewSource(9))})
	g.bunkers[0].Active = false
	g.bunkers[2].Active = false
	for i := 0; i < 50; i++ {
		g.spawnEnemyMissile()
	}
	for _, m := range g.missiles {
		if h := m.Owner.(object.Hostile); h.Bunker != 1 {
			t.Fatalf("missile aimed at inactive bunker %d", h.Bunker)
		}
	}
}

func TestSpawnCurves(t *testing.T) {
	tun := config.Default()
	tests := []struct {
		elapsed  float64
		interval float64
		speed    float64
	}{
		{0, 4, 50},
		{150, 4 * (2.0 / 3.0), 100},
		{300, 4.0 / 3.0, 150},
		{1000, 4.0 / 3.0, 150},
	}
	for _, tt := range tests {
		if got := SpawnInterval(tt.elapsed, tun.Spawn); !almostEqual(got, tt.interval) {
			t.Errorf("SpawnInterval(%v) = %v, want %v", tt.elapsed, got, tt.interval)
		}
		if got := EnemySpeed(tt.elapsed, tun.Missile, tun.Spawn); !almostEqual(got, tt.speed) {
			t.Errorf("EnemySpeed(%v) = %v, want %v", tt.elapsed, got, tt.speed)
		}
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	g := newQuietGame(t)
	g.Fire(physics.V(0, 0))
	s := g.Snapshot()
	s.Bunkers[1].Active = false
	s.Missiles[0].Pos = physics.V(999, 999)
	if !g.bunkers[1].Active || g.missiles[0].Pos == physics.V(999, 999) {
		t.Error("snapshot shares memory with the game")
	}
	if !s.Missiles[0].Friendly {
		t.Error("player missile reported as hostile")
	}
}

func TestFormatTime(t *testing.T) {
	tests := map[float64]string{
		0:    "00:00",
		75.9: "01:15",
		3600: "60:00",
		-3:   "00:00",
	}
	for in, want := range tests {
		if got := FormatTime(in); got != want {
			t.Errorf("FormatTime(%v) = %q, want %q", in, got, want)
		}
	}
}
