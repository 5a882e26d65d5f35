package devserver

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// reloadMessage tells connected bundler clients which files the
// compiler host currently considers changed and which generated
// modules exist, so they can schedule a rebuild.
type reloadMessage struct {
	Type      string   `json:"type"`
	Changed   []string `json:"changed"`
	Generated []string `json:"generated"`
}

// reloadHub tracks live-reload connections. It carries no state of its
// own: every broadcast is a fresh snapshot taken from the compiler
// host at notification time.
type reloadHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func newReloadHub() *reloadHub {
	return &reloadHub{conns: make(map[*websocket.Conn]struct{})}
}

// handleWS upgrades the connection and keeps it registered until the
// peer goes away.
func (h *reloadHub) handleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	// Drain incoming messages until the peer disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	_ = conn.Close()
}

// push sends msg to every connection, dropping the ones that fail.
func (h *reloadHub) push(msg reloadMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			delete(h.conns, conn)
			_ = conn.Close()
		}
	}
}
