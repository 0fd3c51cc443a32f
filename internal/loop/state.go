package loop

import (
	"time"

	"github.com/tomz197/missiles/internal/game"
	"github.com/tomz197/missiles/internal/input"
	"github.com/tomz197/missiles/internal/physics"
)

// screen is what the client is currently showing. It follows the game mode
// except while the server is shutting down.
type screen int

const (
	screenPlaying screen = iota
	screenSkillChoice
	screenGameOver
	screenShutdown
)

func screenFor(m game.Mode) screen {
	switch m {
	case game.ModeSkillChoice:
		return screenSkillChoice
	case game.ModeGameOver:
		return screenGameOver
	default:
		return screenPlaying
	}
}

// clientState holds per-session UI state around the game.
type clientState struct {
	input     input.Input
	crosshair physics.Vec2
	running   bool
	delta     time.Duration

	shuttingDown  bool
	shutdownTimer float64 // seconds before auto-disconnect

	lastInput   time.Time
	inactive    bool
	wasInactive bool
	prevScreen  screen
}

func newClientState(crosshair physics.Vec2) *clientState {
	return &clientState{
		crosshair: crosshair,
		running:   true,
		lastInput: time.Now(),
	}
}

// screen reports the screen to draw for mode m.
func (s *clientState) screen(m game.Mode) screen {
	if s.shuttingDown {
		return screenShutdown
	}
	return screenFor(m)
}
