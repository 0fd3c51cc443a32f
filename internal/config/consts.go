package config

import "time"

// Frontend and session constants. Gameplay values live in Tuning.

// Canvas resolution - the logical drawing space of terminal frontends.
// Actual rendering scales to fit terminal size.
const (
	ViewWidth  = 160 // Logical canvas width
	ViewHeight = 120 // Logical canvas height (in sub-pixels, so 60 terminal rows)
)

// Max render resolution in terminal cells. Larger terminals get a centred,
// bordered play area.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 60
)

// Desktop window size in pixels; the field maps 1:1 onto it.
const (
	WindowWidth  = 800
	WindowHeight = 600
)

// Terminal crosshair movement speed in field units per second.
const CrosshairSpeed = 320.0

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
	ShutdownWaitTimeout    = 15 * time.Second
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Server tick rate for websocket sessions
const (
	ServerTickRate = 60
	ServerTickTime = time.Second / ServerTickRate
)
