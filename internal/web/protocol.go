// Package web serves the game to browsers over a websocket. Every
// connection plays its own game; the browser sends commands as JSON and
// receives a state message every server tick.
package web

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tomz197/missiles/internal/game"
	"github.com/tomz197/missiles/internal/physics"
)

// Message types.
const (
	TypeFire     = "fire"
	TypeReset    = "reset"
	TypeHover    = "hover"
	TypeChoose   = "choose"
	TypeState    = "state"
	TypeShutdown = "shutdown"
)

// ErrUnknownCommand is returned for commands with an unrecognised type.
var ErrUnknownCommand = errors.New("unknown command")

// Command is a message from the browser.
type Command struct {
	Type  string  `json:"type"`
	X     float64 `json:"x,omitempty"`     // fire target
	Y     float64 `json:"y,omitempty"`     // fire target
	Index int     `json:"index,omitempty"` // hover and choose
}

// DecodeCommand parses a browser message.
func DecodeCommand(b []byte) (Command, error) {
	var c Command
	if err := json.Unmarshal(b, &c); err != nil {
		return Command{}, fmt.Errorf("decode command: %w", err)
	}
	switch c.Type {
	case TypeFire, TypeReset, TypeHover, TypeChoose:
		return c, nil
	default:
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, c.Type)
	}
}

// Apply runs the command against g. Any fire or reset starts a new game
// once the current one is over.
func (c Command) Apply(g *game.Game) {
	switch c.Type {
	case TypeFire:
		if g.GameOver() {
			g.Reset()
			return
		}
		g.Fire(physics.V(c.X, c.Y))
	case TypeReset:
		if g.GameOver() {
			g.Reset()
		}
	case TypeHover:
		g.HoverSkill(c.Index)
	case TypeChoose:
		g.ChooseSkill(c.Index)
	}
}

// StateMsg is the per-tick game state sent to the browser.
type StateMsg struct {
	Type       string         `json:"type"`
	Field      RectMsg        `json:"field"`
	GroundY    float64        `json:"ground_y"`
	Bunkers    []BunkerMsg    `json:"bunkers"`
	Missiles   []MissileMsg   `json:"missiles"`
	Explosions []ExplosionMsg `json:"explosions"`
	Stars      []StarMsg      `json:"stars"`
	Level      int            `json:"level"`
	Experience float64        `json:"experience"` // progress toward the next star, 0..1
	Skills     [4]int         `json:"skills"`
	Mode       string         `json:"mode"`
	Pending    int            `json:"pending"`
	Offer      []OfferMsg     `json:"offer"`
	Hovered    int            `json:"hovered"`
	Time       string         `json:"time"`
}

type RectMsg struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type BunkerMsg struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Active bool    `json:"active"`
	Firing bool    `json:"firing"`
}

type MissileMsg struct {
	OX       float64 `json:"ox"`
	OY       float64 `json:"oy"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Friendly bool    `json:"friendly"`
}

type ExplosionMsg struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	R     float64 `json:"r"`
	Phase string  `json:"phase"`
}

type StarMsg struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	R float64 `json:"r"`
}

type OfferMsg struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// ShutdownMsg tells the browser the server is going away.
type ShutdownMsg struct {
	Type    string  `json:"type"`
	Seconds float64 `json:"seconds"`
}

// NewStateMsg converts a snapshot to its wire form.
func NewStateMsg(s game.Snapshot) StateMsg {
	m := StateMsg{
		Type:       TypeState,
		Field:      RectMsg{X: s.Field.X, Y: s.Field.Y, W: s.Field.W, H: s.Field.H},
		GroundY:    s.GroundY,
		Bunkers:    make([]BunkerMsg, 0, len(s.Bunkers)),
		Missiles:   make([]MissileMsg, 0, len(s.Missiles)),
		Explosions: make([]ExplosionMsg, 0, len(s.Explosions)),
		Stars:      make([]StarMsg, 0, len(s.Stars)),
		Level:      s.Progress.Level,
		Experience: s.Progress.ExperienceRatio,
		Skills:     s.Progress.Skills,
		Mode:       s.Mode.String(),
		Pending:    s.Pending,
		Offer:      make([]OfferMsg, 0, len(s.Offer)),
		Hovered:    s.Hovered,
		Time:       game.FormatTime(s.GameTime),
	}
	for _, b := range s.Bunkers {
		m.Bunkers = append(m.Bunkers, BunkerMsg{X: b.Pos.X, Y: b.Pos.Y, Active: b.Active, Firing: b.Firing})
	}
	for _, ms := range s.Missiles {
		m.Missiles = append(m.Missiles, MissileMsg{OX: ms.Origin.X, OY: ms.Origin.Y, X: ms.Pos.X, Y: ms.Pos.Y, Friendly: ms.Friendly})
	}
	for _, e := range s.Explosions {
		m.Explosions = append(m.Explosions, ExplosionMsg{X: e.Pos.X, Y: e.Pos.Y, R: e.Radius, Phase: e.Phase.String()})
	}
	for _, st := range s.Stars {
		if st.Active {
			m.Stars = append(m.Stars, StarMsg{X: st.Pos.X, Y: st.Pos.Y, R: st.Radius})
		}
	}
	for _, sk := range s.Offer {
		m.Offer = append(m.Offer, OfferMsg{Name: sk.String(), Level: s.Progress.Skills[sk]})
	}
	return m
}
