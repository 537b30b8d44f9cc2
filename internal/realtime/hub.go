// Package realtime empuja la vista del dashboard a los navegadores conectados por websocket.
package realtime

import (
	"context"
	"net/http"
	"sync"
	"time"

	"pet-welfare-dashboard/internal/platform/logger"

	"github.com/gorilla/websocket"
)

const (
	broadcastBuffer = 16

	// tiempo máximo para escribir un mensaje a un cliente
	writeWait = 10 * time.Second
)

type Hub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	done       chan struct{}
	mutex      sync.RWMutex
	log        logger.Logger

	writeWait time.Duration
}

func NewHub(log logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, broadcastBuffer),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
		log:        log,
		writeWait:  writeWait,
	}
}

// Run atiende altas, bajas y broadcasts hasta que ctx se cancele.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for client := range h.clients {
				client.Close()
				delete(h.clients, client)
			}
			h.mutex.Unlock()
			return

		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			n := len(h.clients)
			h.mutex.Unlock()
			h.log.Info("ws client connected", map[string]any{"clients": n})

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			n := len(h.clients)
			h.mutex.Unlock()
			h.log.Info("ws client disconnected", map[string]any{"clients": n})

		case message := <-h.broadcast:
			h.mutex.Lock()
			for client := range h.clients {
				// un navegador trabado no puede frenar el loop
				_ = client.SetWriteDeadline(time.Now().Add(h.writeWait))
				if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
					h.log.Warn("ws write failed", map[string]any{"error": err.Error()})
					delete(h.clients, client)
					client.Close()
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Register y Unregister no bloquean una vez que Run terminó.
func (h *Hub) Register(client *websocket.Conn) {
	select {
	case h.register <- client:
	case <-h.done:
		client.Close()
	}
}

func (h *Hub) Unregister(client *websocket.Conn) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast no bloquea: si el buffer está lleno el mensaje se descarta
// (el siguiente cambio manda la vista completa de nuevo).
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.log.Debug("ws broadcast dropped", nil)
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler hace el upgrade, manda la foto actual y registra la conexión.
// snapshot se llama una vez por conexión.
func Handler(h *Hub, snapshot func() ([]byte, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.log.Warn("ws upgrade failed", map[string]any{"error": err.Error()})
			return
		}

		// antes de Register: hasta acá nadie más escribe en conn
		if data, err := snapshot(); err == nil {
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				conn.Close()
				return
			}
		}

		h.Register(conn)
		defer h.Unregister(conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					h.log.Debug("ws read ended", map[string]any{"error": err.Error()})
				}
				return
			}
		}
	}
}
