package net

import (
	nethttp "net/http"
	"sync"

	"github.com/gorilla/websocket"

	"worldnav/internal/telemetry"
)

// streamUpgrader accepts connections from any origin: the diagnostics
// stream carries no credentials and is meant for local tooling.
var streamUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *nethttp.Request) bool { return true },
}

// streamHub fans completed /path query outcomes out to every connected
// /stream observer, the way the host repo's Hub fans simulation state out
// to every connected player socket.
type streamHub struct {
	mu          sync.Mutex
	subscribers map[*websocket.Conn]struct{}
}

func newStreamHub() *streamHub {
	return &streamHub{subscribers: make(map[*websocket.Conn]struct{})}
}

func (h *streamHub) subscribe(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscribers[conn] = struct{}{}
}

func (h *streamHub) unsubscribe(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subscribers, conn)
}

// broadcast pushes event to every connected observer, dropping any that
// fail to accept the write; a nil hub is a no-op so pathHandler can call
// it unconditionally.
func (h *streamHub) broadcast(event queryEvent) {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.subscribers {
		if err := conn.WriteJSON(event); err != nil {
			delete(h.subscribers, conn)
			conn.Close()
		}
	}
}

// streamHandler upgrades to a websocket connection and registers it as a
// passive observer of the hub: it receives one JSON queryEvent per
// completed /path query (cost, step count, duration, outcome) until it
// disconnects. It never issues queries of its own.
func streamHandler(hub *streamHub, logger *telemetry.EventLogger) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		conn, err := streamUpgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("http", "stream.upgrade_failed", err.Error(), nil)
			return
		}
		hub.subscribe(conn)
		defer func() {
			hub.unsubscribe(conn)
			conn.Close()
		}()

		// The only purpose of reading here is to notice the client going
		// away; subscribers never send anything meaningful.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}
