// Package wsrelay carries relay traffic over websockets through a broadcast hub.
package wsrelay

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 64 * 1024
	sendBuffer     = 64
)

// Frame is what travels between the hub and its clients.
type Frame struct {
	Topic   string          `json:"topic"`
	Payload json.RawMessage `json:"payload"`
}

type peer struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub accepts websocket clients and forwards every frame to all other clients.
// A peer whose buffer is full misses the frame.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *zap.Logger

	mu    sync.RWMutex
	peers map[*peer]struct{}
}

// HubConfig configures a Hub
type HubConfig struct {
	Logger *zap.Logger
	// CheckOrigin overrides the upgrader's origin policy.
	CheckOrigin func(r *http.Request) bool
}

// NewHub creates a hub with no peers
func NewHub(cfg *HubConfig) *Hub {
	h := &Hub{peers: make(map[*peer]struct{})}
	if cfg != nil {
		h.logger = cfg.Logger
		h.upgrader.CheckOrigin = cfg.CheckOrigin
	}
	if h.logger == nil {
		h.logger = zap.NewNop()
	}
	return h
}

// PeerCount returns the number of connected peers
func (h *Hub) PeerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

// ServeHTTP upgrades the request and serves the peer until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	p := &peer{conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.peers[p] = struct{}{}
	h.mu.Unlock()
	h.logger.Debug("relay peer connected", zap.String("remote", r.RemoteAddr))

	go h.writePump(p)
	h.readPump(p)
}

// Close disconnects every peer. The hub keeps accepting new connections.
func (h *Hub) Close() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for p := range h.peers {
		_ = p.conn.Close()
	}
}

func (h *Hub) remove(p *peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.peers[p]; ok {
		delete(h.peers, p)
		close(p.send)
	}
}

func (h *Hub) readPump(p *peer) {
	defer func() {
		h.remove(p)
		_ = p.conn.Close()
	}()

	p.conn.SetReadLimit(maxMessageSize)
	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			return
		}

		var frame Frame
		if err := json.Unmarshal(data, &frame); err != nil || frame.Topic == "" {
			h.logger.Warn("dropping malformed frame", zap.Error(err))
			continue
		}
		h.broadcast(p, data)
	}
}

func (h *Hub) writePump(p *peer) {
	defer p.conn.Close()

	for data := range p.send {
		if err := p.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return
		}
		if err := p.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

func (h *Hub) broadcast(from *peer, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for p := range h.peers {
		if p == from {
			continue
		}
		select {
		case p.send <- data:
		default:
			h.logger.Warn("relay peer too slow, dropping frame")
		}
	}
}
