package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"levelgen.dev/internal/models"
	"levelgen.dev/internal/services"
	"levelgen.dev/internal/ws"
)

// requestTimeout bounds how long a stream client may take to send its request
const requestTimeout = 10 * time.Second

// StreamHandler serves the websocket endpoints
type StreamHandler struct {
	layoutService *services.LayoutService
	hub           *ws.Hub
}

// NewStreamHandler creates a new StreamHandler
func NewStreamHandler(ls *services.LayoutService, hub *ws.Hub) *StreamHandler {
	return &StreamHandler{layoutService: ls, hub: hub}
}

// Stream handles GET /api/layouts/stream.
// The client sends one GenerateRequest; every engine event is sent back as it
// happens, followed by the final layout or an error.
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Printf("stream: accept failed: %v", err)
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()

	var req models.GenerateRequest
	readCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	err = wsjson.Read(readCtx, conn, &req)
	cancel()
	if err != nil {
		_ = conn.Close(websocket.StatusUnsupportedData, "expected a generate request")
		return
	}

	var writeErr error
	send := func(msg models.StreamMessage) {
		if writeErr != nil {
			return
		}
		writeCtx, cancel := context.WithTimeout(ctx, ws.WriteTimeout)
		writeErr = wsjson.Write(writeCtx, conn, msg)
		cancel()
	}

	layout, err := h.layoutService.Stream(ctx, req, func(e models.LayoutEvent) {
		send(models.StreamMessage{Type: "event", Event: &e})
	})
	if layout != nil {
		send(models.StreamMessage{Type: "layout", Layout: layout})
	}
	if err != nil {
		send(models.StreamMessage{Type: "error", Error: err.Error()})
	}
	if writeErr != nil {
		log.Printf("stream: write failed: %v", writeErr)
		return
	}

	_ = conn.Close(websocket.StatusNormalClosure, "")
}

// Watch handles GET /api/layouts/watch. Watchers receive every layout the
// server generates until they disconnect.
func (h *StreamHandler) Watch(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Printf("watch: accept failed: %v", err)
		return
	}
	defer conn.CloseNow()

	h.hub.Add(conn)
	defer h.hub.Remove(conn)

	// CloseRead discards incoming frames and is done once the client goes away
	ctx := conn.CloseRead(r.Context())
	<-ctx.Done()
}
