package server

import (
	"context"
	"sync"
	"time"

	"wedbricks/internal/events"
	"wedbricks/pkg/logger"
)

// Presence is the optional best-effort mirror of registry state kept
// outside the process. Failures are logged and never affect delivery.
type Presence interface {
	SetOnline(ctx context.Context, participantID, sessionID string) error
	SetOffline(ctx context.Context, participantID string) error
}

// Hub is the connection registry and room router. It maps each
// participant to at most one live session and organizes sessions into
// named broadcast rooms. All state is in-memory and rebuilt from zero
// on restart.
type Hub struct {
	mu sync.RWMutex

	// clients maps session ID to client (for cleanup)
	clients map[string]*Client

	// registry maps participant ID to its single registered client.
	// Last registration wins; stale sockets are simply no longer
	// addressed.
	registry map[string]*Client

	// rooms maps room name to the set of member clients
	rooms map[string]map[*Client]struct{}

	presence Presence
	log      *logger.Logger
}

// NewHub creates a hub. presence may be nil.
func NewHub(log *logger.Logger, presence Presence) *Hub {
	return &Hub{
		clients:  make(map[string]*Client),
		registry: make(map[string]*Client),
		rooms:    make(map[string]map[*Client]struct{}),
		presence: presence,
		log:      log,
	}
}

// AddClient tracks a freshly upgraded connection.
func (h *Hub) AddClient(client *Client) {
	h.mu.Lock()
	h.clients[client.sessionID] = client
	h.mu.Unlock()
}

// RegisterParticipant binds a participant identity to a session and
// joins its personal notification room. Re-registration (reconnect,
// tab refresh) replaces the prior binding; the replaced session is
// evicted from its personal room so fan-out reaches only the new one.
func (h *Hub) RegisterParticipant(client *Client, participantID, room string) {
	h.mu.Lock()
	if prev, ok := h.registry[participantID]; ok && prev != client {
		h.leaveRoomLocked(prev, prev.personalRoom)
	}
	h.registry[participantID] = client
	client.participantID = participantID
	client.personalRoom = room
	h.joinRoomLocked(client, room)
	h.mu.Unlock()

	h.mirrorPresence(func(ctx context.Context) error {
		return h.presence.SetOnline(ctx, participantID, client.sessionID)
	})
}

// Join adds a session to a room. Idempotent. Chat rooms are joined by
// explicit client request and only torn down on disconnect.
func (h *Hub) Join(client *Client, room string) {
	h.mu.Lock()
	h.joinRoomLocked(client, room)
	h.mu.Unlock()
}

// RemoveClient tears down a disconnected session: every room
// membership goes, and so does every registry entry still pointing at
// this session (a session may have registered under more than one
// identity over its lifetime). Entries already taken over by a newer
// registration stay; a stale disconnect never evicts them.
func (h *Hub) RemoveClient(client *Client) {
	h.mu.Lock()
	for room := range client.rooms {
		if members, ok := h.rooms[room]; ok {
			delete(members, client)
			if len(members) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	client.rooms = make(map[string]struct{})

	var released []string
	for participantID, registered := range h.registry {
		if registered == client {
			delete(h.registry, participantID)
			released = append(released, participantID)
		}
	}
	delete(h.clients, client.sessionID)
	close(client.send)
	h.mu.Unlock()

	for _, participantID := range released {
		h.mirrorPresence(func(ctx context.Context) error {
			return h.presence.SetOffline(ctx, participantID)
		})
	}
}

// Broadcast delivers an event to every session currently joined to the
// room. Broadcasting to an empty room is a normal, silent no-op.
func (h *Hub) Broadcast(room, event string, payload any) {
	frame, err := events.Encode(event, payload)
	if err != nil {
		h.log.Errorf("broadcast encode failed for %s: %v", event, err)
		return
	}

	h.mu.RLock()
	for c := range h.rooms[room] {
		c.enqueue(frame)
	}
	h.mu.RUnlock()
}

// BroadcastToParticipant pushes an event to the participant's
// registered session, if any. Returns whether a session was found.
// The enqueue happens under the read lock; RemoveClient closes the
// send channel under the write lock, so the two cannot interleave.
func (h *Hub) BroadcastToParticipant(participantID, event string, payload any) bool {
	frame, err := events.Encode(event, payload)
	if err != nil {
		h.log.Errorf("broadcast encode failed for %s: %v", event, err)
		return false
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	client, ok := h.registry[participantID]
	if !ok {
		return false
	}
	client.enqueue(frame)
	return true
}

// IsOnline reports whether the participant has a registered session.
func (h *Hub) IsOnline(participantID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.registry[participantID]
	return ok
}

// ClientCount returns the number of connected sessions.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// RoomSize returns the number of sessions joined to a room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

func (h *Hub) joinRoomLocked(client *Client, room string) {
	if room == "" {
		return
	}
	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[*Client]struct{})
	}
	h.rooms[room][client] = struct{}{}
	client.rooms[room] = struct{}{}
}

func (h *Hub) leaveRoomLocked(client *Client, room string) {
	if room == "" {
		return
	}
	if members, ok := h.rooms[room]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(client.rooms, room)
}

// mirrorPresence runs a presence write off the hot path.
func (h *Hub) mirrorPresence(fn func(context.Context) error) {
	if h.presence == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := fn(ctx); err != nil {
			h.log.Warnf("presence mirror update failed: %v", err)
		}
	}()
}
