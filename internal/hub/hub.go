// Package hub keeps track of live game sessions across frontends so a
// server can tell every player about a shutdown and wait for them to leave.
package hub

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// EventType identifies the type of session event.
type EventType int

const (
	EventShutdown EventType = iota // the server is going down
)

// Event is sent from the hub to a session.
type Event struct {
	Type EventType
}

// Session is one connected player.
type Session struct {
	ID      uuid.UUID
	User    string
	Kind    string // frontend name, e.g. "ssh" or "web"
	Started time.Time
	Events  chan Event
}

// Hub is a registry of sessions. It is safe for concurrent use.
type Hub struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	log      *log.Logger
}

// New creates an empty hub. A nil logger uses the default logger.
func New(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		sessions: make(map[uuid.UUID]*Session),
		log:      logger,
	}
}

// Register adds a session and returns its handle.
func (h *Hub) Register(user, kind string) *Session {
	s := &Session{
		ID:      uuid.New(),
		User:    user,
		Kind:    kind,
		Started: time.Now(),
		Events:  make(chan Event, 4),
	}

	h.mu.Lock()
	h.sessions[s.ID] = s
	n := len(h.sessions)
	h.mu.Unlock()

	h.log.Info("session started", "id", s.ID, "user", user, "kind", kind, "sessions", n)
	return s
}

// Unregister removes a session. Unknown IDs are ignored.
func (h *Hub) Unregister(id uuid.UUID) {
	h.mu.Lock()
	s, ok := h.sessions[id]
	delete(h.sessions, id)
	n := len(h.sessions)
	h.mu.Unlock()

	if ok {
		h.log.Info("session ended", "id", id, "user", s.User,
			"duration", time.Since(s.Started).Round(time.Second), "sessions", n)
	}
}

// Count returns the number of live sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Broadcast sends ev to every session without blocking. Sessions whose
// queue is full miss the event.
func (h *Hub) Broadcast(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, s := range h.sessions {
		select {
		case s.Events <- ev:
		default:
		}
	}
}

// Shutdown notifies every session and waits for all of them to unregister,
// up to timeout. It reports whether every session left in time.
func (h *Hub) Shutdown(timeout time.Duration) bool {
	h.log.Info("notifying sessions about shutdown", "sessions", h.Count())
	h.Broadcast(Event{Type: EventShutdown})

	deadline := time.After(timeout)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		if h.Count() == 0 {
			return true
		}
		select {
		case <-deadline:
			h.log.Warn("shutdown timed out", "remaining", h.Count())
			return false
		case <-ticker.C:
		}
	}
}
