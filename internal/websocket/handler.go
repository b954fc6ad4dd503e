package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs runs an editor session until the socket closes.
func ServeWs(hub *Hub, c *websocket.Conn, editorID string, renderer Renderer) {
	client := &Client{
		Hub:      hub,
		Conn:     c,
		EditorID: editorID,
		Send:     make(chan []byte, 64),
		renderer: renderer,
	}
	client.Hub.register <- client

	go client.writePump()
	client.readPump()
}
