package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"agency-site-be/internal/dto"
	"agency-site-be/internal/entity"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20
	renderTimeout  = 5 * time.Second
)

// Renderer renders editor drafts without caching them.
type Renderer interface {
	RenderUncached(ctx context.Context, content json.RawMessage, format entity.RenderFormat) (*entity.RenderedDocument, error)
}

// Client is one editor socket.
type Client struct {
	Hub      *Hub
	Conn     *websocket.Conn
	EditorID string
	Send     chan []byte

	renderer Renderer

	// guards Send against a send after the hub closed it
	mu     sync.Mutex
	closed bool
}

// enqueue never blocks. It reports false when the buffer is full or the
// client was already dropped.
func (c *Client) enqueue(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}

// readPump renders every draft the editor sends and queues the reply.
func (c *Client) readPump() {
	defer func() {
		c.Hub.drop(c)
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("Client", "Unexpected close", map[string]interface{}{"editor_id": c.EditorID, "error": err.Error()})
			}
			return
		}

		reply, _ := json.Marshal(c.handle(raw))
		if !c.enqueue(reply) {
			c.Hub.logger.Warn("Client", "Send buffer full, dropping render", map[string]interface{}{"editor_id": c.EditorID})
		}
	}
}

func (c *Client) handle(raw []byte) dto.PreviewEvent {
	var msg dto.PreviewMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return dto.PreviewEvent{Type: "error", Error: "malformed message"}
	}

	format := entity.RenderFormat(msg.Format)
	if format == "" {
		format = entity.RenderFormatHTML
	}

	ctx, cancel := context.WithTimeout(context.Background(), renderTimeout)
	defer cancel()

	doc, err := c.renderer.RenderUncached(ctx, msg.Document, format)
	if err != nil {
		return dto.PreviewEvent{Type: "error", Id: msg.Id, Error: err.Error()}
	}
	return dto.PreviewEvent{Type: "rendered", Id: msg.Id, Data: doc}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// one JSON event per frame
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
