package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/FocuswithJustin/Scriptura/core/errors"
	"github.com/FocuswithJustin/Scriptura/core/passage"
	"github.com/FocuswithJustin/Scriptura/internal/logging"
)

// GlobalHub is the WebSocket hub instance.
var GlobalHub *Hub

const (
	wsWriteWait = 10 * time.Second
	wsPongWait  = 60 * time.Second
	// Pings must go out before the peer's read deadline expires.
	wsPingPeriod = 54 * time.Second

	wsMaxMessageSize    = 4096
	wsMessagesPerSecond = 10
	wsSendBuffer        = 256
)

// ParseFrame is one client request on the parse socket. Every frame gets a
// result frame back on the same connection.
type ParseFrame struct {
	Reference string `json:"reference"`
	Version   string `json:"version,omitempty"`
}

// Client is a connected WebSocket client.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	bucket *tokenBucket
}

// Hub tracks connected parse clients.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub builds an empty hub; call Run before registering clients.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run processes client registration. Call it in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			logging.WebSocketEvent("client_connected", count)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			logging.WebSocketEvent("client_disconnected", count)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// newMessageRateBucket builds the per-client message throttle: a sustained
// messagesPerSecond with bursts of twice that.
func newMessageRateBucket(messagesPerSecond int) *tokenBucket {
	return newTokenBucket(float64(messagesPerSecond)*2.0, float64(messagesPerSecond))
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return originAllowed(r.Header.Get("Origin"), ServerConfig.AllowedOrigins)
	},
}

// originAllowed reports whether an Origin header matches the allow list. An
// empty list admits every origin; "*.example.com" admits subdomains.
func originAllowed(origin string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	// Browsers always send Origin on WebSocket dials
	if origin == "" {
		return false
	}
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
		if strings.HasPrefix(a, "*.") && strings.HasSuffix(origin, a[1:]) {
			return true
		}
	}
	return false
}

// handleWebSocket upgrades GET /api/ws and starts the client pumps.
func handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if GlobalHub == nil {
		respondError(w, http.StatusInternalServerError, "WEBSOCKET_UNAVAILABLE", "WebSocket hub not initialized")
		return
	}
	if ServerConfig.Auth.Enabled && !wsAuthorized(r) {
		logging.SecurityEvent("unauthorized_request", "websocket",
			"remote", getClientIP(r))
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid API key")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error("websocket upgrade failed", "error", err)
		return
	}
	conn.SetReadLimit(wsMaxMessageSize)

	client := &Client{
		hub:    GlobalHub,
		conn:   conn,
		send:   make(chan []byte, wsSendBuffer),
		bucket: newMessageRateBucket(wsMessagesPerSecond),
	}
	GlobalHub.register <- client

	go client.writePump()
	go client.readPump()
}

// wsAuthorized checks the API key on the upgrade request. Browser clients
// cannot set headers on WebSocket dials, so the key may arrive as an
// api_key query parameter instead.
func wsAuthorized(r *http.Request) bool {
	key := r.Header.Get("X-API-Key")
	if key == "" {
		key = r.URL.Query().Get("api_key")
	}
	if key == "" {
		return false
	}
	return authorizeKey(r, ServerConfig.Auth, key)
}

// readPump reads parse frames and answers each one on the send channel.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.Error("websocket read error", "error", err)
			}
			break
		}

		if !c.bucket.allow() {
			logging.SecurityEvent("rate_limit_exceeded", "websocket")
			// WriteControl is safe alongside the write pump.
			c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "rate limit exceeded"),
				time.Now().Add(wsWriteWait))
			break
		}

		c.reply(handleParseFrame(message))
	}
}

// handleParseFrame runs one frame through the pipeline. Malformed frames
// come back as failed results instead of closing the connection.
func handleParseFrame(message []byte) passage.Result {
	var req ParseFrame
	if err := json.Unmarshal(message, &req); err != nil {
		return frameFailure("", "invalid JSON frame")
	}
	if strings.TrimSpace(req.Reference) == "" {
		return frameFailure(req.Reference, "reference is required")
	}
	v, err := serverStore.Resolve(req.Version)
	if err != nil {
		return frameFailure(req.Reference, err.Error())
	}
	return parseOne(v, req.Reference)
}

func frameFailure(reference, message string) passage.Result {
	return passage.Result{
		Reference: reference,
		Parsed:    false,
		Error:     errors.KindMalformedInput,
		Message:   message,
	}
}

// reply queues a result frame. A client that cannot drain its buffer loses
// the connection rather than blocking the read loop.
func (c *Client) reply(res passage.Result) {
	data, err := json.Marshal(res)
	if err != nil {
		logging.Error("websocket marshal failed", "error", err)
		return
	}
	select {
	case c.send <- data:
	default:
		c.conn.Close()
	}
}

// writePump writes queued frames and keeps the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
