package loop

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/missiles/internal/config"
	"github.com/tomz197/missiles/internal/draw"
	"github.com/tomz197/missiles/internal/game"
	"github.com/tomz197/missiles/internal/object"
)

const xpBarWidth = 16

// skillLabels are the short HUD names, indexed by object.Skill.
var skillLabels = [len(object.AllSkills)]string{"SPD", "GLOW", "RAD", "MSL"}

// drawFrame draws the current frame.
func (c *client) drawFrame() error {
	snap := c.game.Snapshot()
	scr := c.state.screen(snap.Mode)

	// Screen changes leave text from the previous screen behind, so they get
	// a full clear.
	if scr != c.state.prevScreen || c.state.inactive != c.state.wasInactive {
		c.cw.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevScreen = scr
		c.state.wasInactive = c.state.inactive
	}

	c.canvas.Clear()
	drawWorld(c.canvas, c.view, snap)
	if scr == screenPlaying {
		drawCrosshair(c.canvas, c.view, c.state.crosshair)
	}
	c.canvas.Render(c.cw)
	c.canvas.RenderBorder(c.cw)

	c.drawUI(scr, snap)

	return c.cw.Flush()
}

// drawUI draws the text overlay for the current screen.
func (c *client) drawUI(scr screen, snap game.Snapshot) {
	width := c.canvas.TerminalWidth()
	height := c.canvas.TerminalHeight()
	centerX := width / 2
	centerY := height / 2

	if scr == screenShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}
	if c.state.inactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch scr {
	case screenPlaying:
		c.drawHUD(width, height, snap)
	case screenSkillChoice:
		c.drawHUD(width, height, snap)
		c.drawSkillChoice(width, centerY, snap)
	case screenGameOver:
		c.drawGameOver(centerX, centerY, snap)
	}
}

// drawHUD draws level, experience and timer on the top row and skill
// levels on the bottom row. Fields are fixed width so shorter values
// overwrite longer ones.
func (c *client) drawHUD(width, height int, snap game.Snapshot) {
	cw := c.cw

	progress := fmt.Sprintf("LVL %-3d XP %s", snap.Progress.Level, draw.Bar(snap.Progress.ExperienceRatio, xpBarWidth))
	if fits(progress, width) {
		cw.WriteAt(2, 1, progress)
	}

	timer := game.FormatTime(snap.GameTime)
	cw.WriteAt(width-len(timer), 1, timer)

	var skills strings.Builder
	for i, lvl := range snap.Progress.Skills {
		if i > 0 {
			skills.WriteString("  ")
		}
		fmt.Fprintf(&skills, "%s %-2d", skillLabels[i], lvl)
	}
	if fits(skills.String(), width) {
		cw.WriteAt(2, height, skills.String())
	}
}

// drawSkillChoice draws the two offered skills, one per canvas half, with
// markers around the highlighted one.
func (c *client) drawSkillChoice(width, centerY int, snap game.Snapshot) {
	cw := c.cw

	title := "STAR COLLECTED - CHOOSE A SKILL"
	cw.WriteCentered(width/2, centerY-4, title)
	if snap.Pending > 1 {
		cw.WriteCentered(width/2, centerY-3, fmt.Sprintf("%d choices pending", snap.Pending))
	}

	for i, skill := range snap.Offer {
		col := width / 4
		if i == 1 {
			col = width * 3 / 4
		}
		left, right := "  ", "  "
		if i == snap.Hovered {
			left, right = "> ", " <"
		}
		cw.WriteCentered(col, centerY, fmt.Sprintf("%s[%d] %s%s", left, i+1, skill, right))
		cw.WriteCentered(col, centerY+1, fmt.Sprintf("level %d", snap.Progress.Skills[skill]))
	}

	hint := "A/D or mouse to select, ENTER, 1 or 2 to choose"
	if fits(hint, width) {
		cw.WriteCentered(width/2, centerY+4, hint)
	}
}

// drawGameOver draws the game over screen.
func (c *client) drawGameOver(centerX, centerY int, snap game.Snapshot) {
	titleArt := []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
	}

	cw := c.cw
	titleStartY := centerY - 5
	if fits(titleArt[0], c.canvas.TerminalWidth()) {
		for i, line := range titleArt {
			cw.WriteCentered(centerX, titleStartY+i, line)
		}
	} else {
		cw.WriteCentered(centerX, titleStartY+2, "GAME OVER")
	}

	summary := fmt.Sprintf("Survived %s, reached level %d", game.FormatTime(snap.GameTime), snap.Progress.Level)
	cw.WriteCentered(centerX, titleStartY+len(titleArt)+1, summary)

	// Blink by overwriting with spaces, since the canvas underneath is
	// frozen and would not repaint the cells.
	prompt := ">>  Press any key to play again  <<"
	if time.Now().UnixMilli()/600%2 != 0 {
		prompt = strings.Repeat(" ", len(prompt))
	}
	cw.WriteCentered(centerX, titleStartY+len(titleArt)+3, prompt)

	cw.WriteCentered(centerX, titleStartY+len(titleArt)+5, "Q to quit")
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *client) drawInactivityScreen(centerX, centerY int) {
	cw := c.cw
	cw.WriteCentered(centerX, centerY-2, "INACTIVITY WARNING")

	left := int(config.InactivityDisconnectUser - time.Since(c.state.lastInput).Seconds())
	cw.WriteCentered(centerX, centerY, fmt.Sprintf("You will be disconnected in %3d seconds.", max(left, 0)))

	cw.WriteCentered(centerX, centerY+2, "Press any key to continue")
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *client) drawShutdownScreen(centerX, centerY int) {
	cw := c.cw
	cw.WriteCentered(centerX, centerY-3, "SERVER SHUTTING DOWN")
	cw.WriteCentered(centerX, centerY-1, "The server is restarting for maintenance.")
	cw.WriteCentered(centerX, centerY, "Please reconnect in a moment.")

	remaining := int(c.state.shutdownTimer) + 1
	cw.WriteCentered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %2d seconds...", remaining))

	cw.WriteCentered(centerX, centerY+4, "Press Q to disconnect now")
}

// fits reports whether s fits on a row of width cells with a margin.
func fits(s string, width int) bool {
	return len([]rune(s))+2 <= width
}
