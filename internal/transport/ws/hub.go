package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/talentdesk/interview-signaling/lib/logger/sl"
)

// Hub is the connection abstraction: it tracks live connections, their
// transport-level room membership, and delivers named events to one
// connection or a whole room. Delivery is best-effort; a full send buffer or
// an unknown connection drops the message silently.
type Hub struct {
	mu           sync.RWMutex
	clients      map[string]*Client
	rooms        map[string]map[string]struct{}
	sendBuffer   int
	onDisconnect func(connID string)
	log          *slog.Logger
}

func NewHub(sendBuffer int, log *slog.Logger) *Hub {
	if sendBuffer <= 0 {
		sendBuffer = 16
	}
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		clients:    make(map[string]*Client),
		rooms:      make(map[string]map[string]struct{}),
		sendBuffer: sendBuffer,
		log:        log,
	}
}

// OnDisconnect installs the callback invoked after a connection is
// unregistered. Set once during wiring, before the hub serves traffic.
func (h *Hub) OnDisconnect(fn func(connID string)) {
	h.onDisconnect = fn
}

// Register adds an upgraded socket to the hub under a fresh connection id
// and starts its write pump.
func (h *Hub) Register(conn *websocket.Conn) *Client {
	client := &Client{
		ID:   uuid.New().String(),
		conn: conn,
		send: make(chan []byte, h.sendBuffer),
	}

	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()

	go client.WritePump()

	return client
}

// Unregister drops the connection, closes its send channel and then reports
// the disconnect so the coordinator can reconcile room state.
func (h *Hub) Unregister(connID string) {
	h.mu.Lock()
	client, ok := h.clients[connID]
	if ok {
		delete(h.clients, connID)
		close(client.send)
	}
	h.mu.Unlock()

	if !ok {
		return
	}

	if h.onDisconnect != nil {
		h.onDisconnect(connID)
	}

	// The disconnect callback leaves rooms through LeaveRoom; sweep whatever
	// membership is left in case the callback never ran for some room.
	h.mu.Lock()
	for roomID, members := range h.rooms {
		if _, ok := members[connID]; ok {
			delete(members, connID)
			if len(members) == 0 {
				delete(h.rooms, roomID)
			}
		}
	}
	h.mu.Unlock()
}

func (h *Hub) JoinRoom(connID, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.rooms[roomID]
	if !ok {
		members = make(map[string]struct{})
		h.rooms[roomID] = members
	}
	members[connID] = struct{}{}
}

func (h *Hub) LeaveRoom(connID, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if members, ok := h.rooms[roomID]; ok {
		delete(members, connID)
		if len(members) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

func (h *Hub) SendToConnection(connID, event string, payload any) {
	data, ok := h.encode(event, payload)
	if !ok {
		return
	}

	// Delivery happens under the read lock: Unregister closes the send
	// channel under the write lock, so a send can never hit a closed channel.
	h.mu.RLock()
	defer h.mu.RUnlock()

	if client, ok := h.clients[connID]; ok {
		h.deliver(client, data, event)
	}
}

func (h *Hub) SendToRoom(roomID, event string, payload any) {
	h.sendToRoom(roomID, "", event, payload)
}

func (h *Hub) SendToRoomExcept(roomID, exceptConnID, event string, payload any) {
	h.sendToRoom(roomID, exceptConnID, event, payload)
}

func (h *Hub) sendToRoom(roomID, exclude, event string, payload any) {
	data, ok := h.encode(event, payload)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for connID := range h.rooms[roomID] {
		if connID == exclude {
			continue
		}
		if client, ok := h.clients[connID]; ok {
			h.deliver(client, data, event)
		}
	}
}

func (h *Hub) encode(event string, payload any) ([]byte, bool) {
	data, err := json.Marshal(ServerMessage{Type: event, Payload: payload})
	if err != nil {
		h.log.Error("failed to marshal outbound event",
			slog.String("event", event),
			sl.Err(err),
		)
		return nil, false
	}
	return data, true
}

func (h *Hub) deliver(client *Client, data []byte, event string) {
	select {
	case client.send <- data:
	default:
		h.log.Debug("dropping outbound event, send buffer full",
			slog.String("conn_id", client.ID),
			slog.String("event", event),
		)
	}
}
