package ws

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/numguess/numguess/internal/model"
	"github.com/numguess/numguess/internal/services/room"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Outbound frame buffer per connection.
	sendBuffer = 256
)

// Client is a single websocket connection. It satisfies model.Conn so the
// room service can push frames to it without knowing about websockets.
type Client struct {
	id     string
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
	logger *slog.Logger

	closed    atomic.Bool
	closeOnce sync.Once
}

func newClient(id string, conn *websocket.Conn, logger *slog.Logger) *Client {
	return &Client{
		id:     id,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// ID returns the connection identifier assigned at upgrade time.
func (c *Client) ID() string {
	return c.id
}

// Send enqueues a frame for delivery. It never blocks: when the client is
// closed or its buffer is full the frame is dropped and
// model.ErrStaleConnection is returned so the caller can evict the player.
func (c *Client) Send(data []byte) error {
	if c.closed.Load() {
		return model.ErrStaleConnection
	}
	select {
	case c.send <- data:
		return nil
	default:
		return model.ErrStaleConnection
	}
}

// close tears the connection down exactly once. Safe to call from both pumps.
func (c *Client) close() {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		close(c.done)
		_ = c.conn.Close()
	})
}

// readPump reads client commands until the connection drops, then removes
// the player from the room. One goroutine per connection.
func (c *Client) readPump(session *room.Session) {
	defer func() {
		c.close()
		session.Close()
		c.logger.Info("connection closed")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Debug("websocket read failed", slog.Any("error", err))
			}
			return
		}
		session.HandleMessage(message)
	}
}

// writePump drains the send buffer onto the wire and keeps the connection
// alive with pings. One goroutine per connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

var _ model.Conn = (*Client)(nil)
