package handlers

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/pars-health/triage-api/models"
)

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // dashboards are served from a separate origin
	},
}

// queueEvent is one websocket frame pushed to dashboards.
type queueEvent struct {
	Type     string           `json:"type"`
	Patients []models.Patient `json:"patients"`
}

// Hub tracks connected dashboard clients and pushes them a fresh queue
// snapshot after every mutation.
type Hub struct {
	mutex   sync.Mutex
	clients map[*websocket.Conn]bool
}

// NewHub returns an empty hub
func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]bool)}
}

// QueueWebSocketHandler upgrades the connection and registers the client
// for queue updates
func (h *Hub) QueueWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().With(err).Error("websocket upgrade failed")
		return
	}

	h.mutex.Lock()
	h.clients[conn] = true
	h.mutex.Unlock()
	zap.S().Debugf("dashboard connected to /ws/queue (%v clients)", h.clientCount())

	conn.SetCloseHandler(func(code int, text string) error {
		h.drop(conn)
		return nil
	})

	// Keep connection alive; dashboards only listen
	go func() {
		for {
			if _, _, err := conn.NextReader(); err != nil {
				h.drop(conn)
				conn.Close()
				break
			}
		}
	}()
}

// BroadcastQueue pushes the given queue snapshot to every connected client.
// Write failures drop the client. The mutex is held for the whole broadcast:
// gorilla/websocket forbids concurrent writers on one connection, and queue
// mutations can arrive from handlers and the live-watch goroutine at once.
func (h *Hub) BroadcastQueue(patients []models.Patient) {
	event := queueEvent{Type: "queue", Patients: patients}

	h.mutex.Lock()
	defer h.mutex.Unlock()
	for conn := range h.clients {
		if err := conn.WriteJSON(event); err != nil {
			zap.S().With(err).Debug("dropping dead websocket client")
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mutex.Lock()
	delete(h.clients, conn)
	h.mutex.Unlock()
}

func (h *Hub) clientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}
