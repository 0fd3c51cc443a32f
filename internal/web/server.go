package web

import (
	"context"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/tomz197/missiles/internal/config"
	"github.com/tomz197/missiles/internal/game"
	"github.com/tomz197/missiles/internal/hub"
)

const (
	writeTimeout = 5 * time.Second
	readTimeout  = config.InactivityDisconnectUser * time.Second
	commandQueue = 32
)

// Server upgrades HTTP requests to game sessions.
type Server struct {
	tuning   config.Tuning
	sessions *hub.Hub
	log      *log.Logger
	upgrader websocket.Upgrader

	// newRand seeds each session's game; nil seeds from the clock.
	newRand func() *rand.Rand
}

// NewServer creates a websocket game server. Sessions are registered with h.
func NewServer(t config.Tuning, h *hub.Hub, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		tuning:   t,
		sessions: h,
		log:      logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:    4 * 1024,
			WriteBufferSize:   16 * 1024,
			EnableCompression: true,
			CheckOrigin:       func(r *http.Request) bool { return true },
		},
	}
}

// Handler serves one game per websocket connection.
func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			s.log.Debug("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
			return
		}
		defer conn.Close()

		handle := s.sessions.Register(r.RemoteAddr, "web")
		defer s.sessions.Unregister(handle.ID)

		logger := s.log.With("session", handle.ID)
		var rng *rand.Rand
		if s.newRand != nil {
			rng = s.newRand()
		}
		g := game.New(game.Options{Tuning: s.tuning, Rand: rng, Logger: logger})

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		cmds := make(chan Command, commandQueue)
		go readCommands(ctx, cancel, conn, cmds, logger)

		if err := play(ctx, conn, g, cmds, handle.Events); err != nil {
			logger.Debug("session closed", "err", err)
		}
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
	}
}

// readCommands decodes browser messages until the connection fails. It is
// the only reader of conn.
func readCommands(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, out chan<- Command, logger *log.Logger) {
	defer cancel()
	for {
		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		cmd, err := DecodeCommand(msg)
		if err != nil {
			logger.Debug("dropping command", "err", err)
			continue
		}
		select {
		case out <- cmd:
		case <-ctx.Done():
			return
		}
	}
}

// play owns g: it applies commands, ticks at the server rate and writes a
// state message every tick. It is the only writer of conn.
func play(ctx context.Context, conn *websocket.Conn, g *game.Game, cmds <-chan Command, events <-chan hub.Event) error {
	ticker := time.NewTicker(config.ServerTickTime)
	defer ticker.Stop()

	var shutdown <-chan time.Time
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-shutdown:
			return nil
		case ev := <-events:
			if ev.Type == hub.EventShutdown && shutdown == nil {
				shutdown = time.After(time.Duration(config.ShutdownDisplaySeconds * float64(time.Second)))
				if err := writeJSON(conn, ShutdownMsg{Type: TypeShutdown, Seconds: config.ShutdownDisplaySeconds}); err != nil {
					return err
				}
			}
		case cmd := <-cmds:
			cmd.Apply(g)
		case now := <-ticker.C:
			g.Tick(game.Frame{Delta: now.Sub(last)})
			last = now
			if err := writeJSON(conn, NewStateMsg(g.Snapshot())); err != nil {
				return err
			}
		}
	}
}

func writeJSON(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteMessage(websocket.TextMessage, b)
}
