package realtime

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 32
)

// Client is one live WebSocket session. It registers itself on start and
// is guaranteed to unregister on every exit path: read error, transport
// close frame, or write failure all funnel into shutdown.
type Client struct {
	userID   uint64
	conn     *websocket.Conn
	registry *Registry
	log      *slog.Logger

	send chan []byte
	done chan struct{}
	once sync.Once
}

func NewClient(userID uint64, conn *websocket.Conn, registry *Registry, log *slog.Logger) *Client {
	return &Client{
		userID:   userID,
		conn:     conn,
		registry: registry,
		log:      log.With("user_id", userID),
		send:     make(chan []byte, sendBuffer),
		done:     make(chan struct{}),
	}
}

// Run registers the client, starts both pumps, and pushes the welcome
// frame. Returns immediately; the pumps own the connection from here.
func (c *Client) Run() {
	c.registry.Register(c.userID, c)
	go c.writePump()
	go c.readPump()
	c.TrySend(Event{Type: "system", Payload: fmt.Sprintf("Connected as user %d", c.userID)})
}

// TrySend serializes ev and queues it without blocking. False means the
// session is closed or the buffer is full; a slow peer never stalls the
// caller.
func (c *Client) TrySend(ev Event) bool {
	data, err := json.Marshal(ev)
	if err != nil {
		return false
	}
	return c.enqueue(data)
}

func (c *Client) enqueue(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// shutdown unregisters first so no new deliveries target this session,
// then releases both pumps. Safe to call from either pump.
func (c *Client) shutdown() {
	c.once.Do(func() {
		c.registry.Unregister(c.userID, c)
		close(c.done)
		c.conn.Close()
	})
}

func (c *Client) readPump() {
	defer c.shutdown()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.log.Debug("websocket read failed", "err", err)
			}
			return
		}
		c.handleFrame(message)
	}
}

// handleFrame answers the application-level liveness probe and echoes
// every other text frame verbatim (reserved for future protocol use).
func (c *Client) handleFrame(raw []byte) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &probe); err == nil && probe.Type == "ping" {
		c.TrySend(Event{Type: "pong"})
		return
	}
	c.enqueue(raw)
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.shutdown()
	}()

	for {
		select {
		case data := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
