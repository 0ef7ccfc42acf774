package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/coder/websocket"
)

// WriteTimeout bounds a single write to a watcher
const WriteTimeout = 3 * time.Second

// SendBuffer is how many messages may queue for one watcher before it is dropped
const SendBuffer = 16

// watcher owns the send queue of one connection. Only its writer goroutine
// touches the connection.
type watcher struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (w *watcher) stop() {
	w.once.Do(func() { close(w.send) })
}

// Hub fans generated layouts out to every connected watcher.
// Broadcast never waits on the network.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]*watcher
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]*watcher)}
}

func (h *Hub) Add(conn *websocket.Conn) {
	w := &watcher{conn: conn, send: make(chan []byte, SendBuffer)}
	h.mu.Lock()
	h.clients[conn] = w
	h.mu.Unlock()

	go h.writeLoop(w)
}

func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	w, ok := h.clients[conn]
	delete(h.clients, conn)
	h.mu.Unlock()

	if ok {
		w.stop()
	}
}

// Len returns the number of connected watchers
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast queues message for every watcher. A watcher whose queue is full
// is dropped.
func (h *Hub) Broadcast(message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn, w := range h.clients {
		select {
		case w.send <- message:
		default:
			delete(h.clients, conn)
			w.stop()
			go func() { _ = conn.Close(websocket.StatusPolicyViolation, "watcher too slow") }()
		}
	}
}

// BroadcastJSON encodes v and broadcasts it
func (h *Hub) BroadcastJSON(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("ws: failed to encode broadcast: %v", err)
		return
	}
	h.Broadcast(data)
}

// writeLoop drains a watcher's queue until it is stopped or a write fails
func (h *Hub) writeLoop(w *watcher) {
	for msg := range w.send {
		ctx, cancel := context.WithTimeout(context.Background(), WriteTimeout)
		err := w.conn.Write(ctx, websocket.MessageText, msg)
		cancel()
		if err != nil {
			h.Remove(w.conn)
			_ = w.conn.Close(websocket.StatusNormalClosure, "")
			return
		}
	}
}
