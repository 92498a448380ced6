// Package ws is the realtime gateway: one websocket per player, grouped into
// rooms by session code. Every persisted state change is pushed to the whole
// room as a full session document.
package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/sipcrew/partyround/internal/models"
)

// client is one connected player. Writes go through the send channel so a
// single goroutine owns the connection's write side.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn: conn,
		send: make(chan []byte, 16),
	}
}

// writeLoop drains the send channel onto the connection.
func (c *client) writeLoop() {
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// Hub tracks which clients sit in which session room and fans broadcasts out
// to them. It satisfies the round service's Broadcaster interface.
type Hub struct {
	log *logrus.Logger

	mu    sync.RWMutex
	rooms map[string]map[*client]struct{}
}

// NewHub creates an empty hub
func NewHub(log *logrus.Logger) *Hub {
	if log == nil {
		log = logrus.New()
	}
	return &Hub{
		log:   log,
		rooms: make(map[string]map[*client]struct{}),
	}
}

func (h *Hub) join(code string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[code]
	if !ok {
		room = make(map[*client]struct{})
		h.rooms[code] = room
	}
	room[c] = struct{}{}
}

func (h *Hub) leave(code string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[code]
	if !ok {
		return
	}
	if _, member := room[c]; !member {
		return
	}
	delete(room, c)
	close(c.send)
	if len(room) == 0 {
		delete(h.rooms, code)
	}
}

// sendTo delivers a message to one client if it is still in the room. The
// membership check runs under the hub lock, where all channel closes happen,
// so a send can never race a close.
func (h *Hub) sendTo(code string, c *client, msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[code]
	if !ok {
		return
	}
	if _, member := room[c]; !member {
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}

// RoomSize reports how many connections a session room currently has.
func (h *Hub) RoomSize(code string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[code])
}

// BroadcastSession pushes the full session document to every connection in
// the session's room. A client whose send buffer is full is dropped rather
// than allowed to stall the rest of the room.
func (h *Hub) BroadcastSession(sess *models.Session) {
	msg, err := json.Marshal(outbound{
		Type:    messageTypeSession,
		Session: sess,
	})
	if err != nil {
		h.log.WithError(err).WithField("code", sess.Code).Error("failed to marshal session broadcast")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	room := h.rooms[sess.Code]
	for c := range room {
		select {
		case c.send <- msg:
		default:
			delete(room, c)
			close(c.send)
			h.log.WithField("code", sess.Code).Warn("dropped slow websocket client")
		}
	}
	if len(room) == 0 {
		delete(h.rooms, sess.Code)
	}
}
